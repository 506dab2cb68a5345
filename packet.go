package clickhouse

import (
	"io"
	"time"
)

// Server packet kinds (§4.4/§6).
const (
	serverHello         = 0
	serverData          = 1
	serverException     = 2
	serverProgress      = 3
	serverPong          = 4
	serverEndOfStream   = 5
	serverProfileInfo   = 6
	serverTotals        = 7
	serverExtremes      = 8
)

// PacketKind identifies which variant a Packet holds.
type PacketKind int

const (
	PacketHello PacketKind = iota
	PacketData
	PacketException
	PacketProgress
	PacketPong
	PacketEndOfStream
	PacketProfileInfo
	PacketTotals
	PacketExtremes
)

// Progress reports query execution counters (§4.4).
type Progress struct {
	Rows      uint64
	Bytes     uint64
	TotalRows uint64
}

// ProfileInfo reports post-execution statistics (§4.4).
type ProfileInfo struct {
	Rows                      uint64
	Bytes                     uint64
	Blocks                    uint64
	AppliedLimit              bool
	RowsBeforeLimit           uint64
	CalculatedRowsBeforeLimit bool
}

// Packet is a tagged union over every packet kind the server may emit on a
// query response stream (§4.4).
type Packet struct {
	Kind        PacketKind
	ServerInfo  ServerInfo
	Block       Block
	Exception   *ServerError
	Progress    Progress
	ProfileInfo ProfileInfo
}

// readPacket reads one packet's kind byte and body, per the state machine
// in §4.4: ReadKind -> ReadBody(kind) -> Emit -> ReadKind. An EOF on the
// kind byte itself is end-of-stream; an EOF in the middle of a body is a
// *DriverError{Kind: ErrConnectionClosed} and marks the caller's transport
// inconsistent.
func readPacket(r io.Reader, tz *time.Location) (Packet, error) {
	kind, err := readUvarint(r)
	if err != nil {
		if err == io.EOF {
			return Packet{}, io.EOF
		}
		return Packet{}, err
	}
	switch kind {
	case serverHello:
		info, err := readServerInfo(r)
		if err != nil {
			return Packet{}, wrapMidPacket(err)
		}
		return Packet{Kind: PacketHello, ServerInfo: info}, nil
	case serverData:
		b, err := readBlock(r, tz)
		if err != nil {
			return Packet{}, wrapMidPacket(err)
		}
		return Packet{Kind: PacketData, Block: b}, nil
	case serverException:
		se, err := readException(r)
		if err != nil {
			return Packet{}, wrapMidPacket(err)
		}
		return Packet{Kind: PacketException, Exception: se}, nil
	case serverProgress:
		p, err := readProgress(r)
		if err != nil {
			return Packet{}, wrapMidPacket(err)
		}
		return Packet{Kind: PacketProgress, Progress: p}, nil
	case serverPong:
		return Packet{Kind: PacketPong}, nil
	case serverEndOfStream:
		return Packet{Kind: PacketEndOfStream}, nil
	case serverProfileInfo:
		pi, err := readProfileInfo(r)
		if err != nil {
			return Packet{}, wrapMidPacket(err)
		}
		return Packet{Kind: PacketProfileInfo, ProfileInfo: pi}, nil
	case serverTotals:
		b, err := readBlock(r, tz)
		if err != nil {
			return Packet{}, wrapMidPacket(err)
		}
		return Packet{Kind: PacketTotals, Block: b}, nil
	case serverExtremes:
		b, err := readBlock(r, tz)
		if err != nil {
			return Packet{}, wrapMidPacket(err)
		}
		return Packet{Kind: PacketExtremes, Block: b}, nil
	default:
		return Packet{}, &DriverError{Kind: ErrUnexpectedPacket, Msg: "unknown server packet kind"}
	}
}

func wrapMidPacket(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return &DriverError{Kind: ErrConnectionClosed, Msg: "connection closed mid-packet"}
	}
	return err
}

func readException(r io.Reader) (*ServerError, error) {
	code, err := readInt32(r)
	if err != nil {
		return nil, err
	}
	name, err := readString(r)
	if err != nil {
		return nil, err
	}
	message, err := readString(r)
	if err != nil {
		return nil, err
	}
	stack, err := readString(r)
	if err != nil {
		return nil, err
	}
	hasNested, err := readBool(r)
	if err != nil {
		return nil, err
	}
	se := &ServerError{Code: code, Name: name, Message: message, StackTrace: stack}
	if hasNested {
		nested, err := readException(r)
		if err != nil {
			return nil, err
		}
		se.Nested = nested
	}
	return se, nil
}

func readProgress(r io.Reader) (Progress, error) {
	rows, err := readUvarint(r)
	if err != nil {
		return Progress{}, err
	}
	bytes, err := readUvarint(r)
	if err != nil {
		return Progress{}, err
	}
	totalRows, err := readUvarint(r)
	if err != nil {
		return Progress{}, err
	}
	return Progress{Rows: rows, Bytes: bytes, TotalRows: totalRows}, nil
}

func readProfileInfo(r io.Reader) (ProfileInfo, error) {
	rows, err := readUvarint(r)
	if err != nil {
		return ProfileInfo{}, err
	}
	bytes, err := readUvarint(r)
	if err != nil {
		return ProfileInfo{}, err
	}
	blocks, err := readUvarint(r)
	if err != nil {
		return ProfileInfo{}, err
	}
	appliedLimit, err := readBool(r)
	if err != nil {
		return ProfileInfo{}, err
	}
	rowsBeforeLimit, err := readUvarint(r)
	if err != nil {
		return ProfileInfo{}, err
	}
	calculated, err := readBool(r)
	if err != nil {
		return ProfileInfo{}, err
	}
	return ProfileInfo{
		Rows:                      rows,
		Bytes:                     bytes,
		Blocks:                    blocks,
		AppliedLimit:              appliedLimit,
		RowsBeforeLimit:           rowsBeforeLimit,
		CalculatedRowsBeforeLimit: calculated,
	}, nil
}
