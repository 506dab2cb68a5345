package clickhouse

import (
	"context"
	"io"
	"net"
	"time"

	"github.com/clickhouse-native/ch/internal/atomic"
)

// Transport owns one socket and the packet parser layered over it. A
// command is written in full before its response packet stream is read;
// pipelining multiple commands on one Transport is not supported (§5).
type Transport struct {
	conn   net.Conn
	r      *reader
	tz     *time.Location
	inside atomic.Bool

	// inconsistent is set once a stream is abandoned mid-packet (Query's
	// caller drops a BlockStream early) or a parse error occurs; such a
	// Transport can never be reused and must be closed (§5, §9).
	inconsistent bool
}

func newTransport(conn net.Conn, tz *time.Location) *Transport {
	return &Transport{conn: conn, r: newReader(conn), tz: tz}
}

func (t *Transport) Close() error {
	return t.conn.Close()
}

// send writes a fully encoded command in one call.
func (t *Transport) send(body []byte) error {
	_, err := t.conn.Write(body)
	return err
}

// terminalPacketKind reports whether kind ends a command's response
// stream: EndOfStream always does, Pong ends a Ping, and Hello ends the
// handshake (§4.4).
func terminalPacketKind(k PacketKind) bool {
	switch k {
	case PacketEndOfStream, PacketPong, PacketHello:
		return true
	default:
		return false
	}
}

// readPacket reads the next packet from the response stream. A parse
// error or a mid-packet EOF poisons the Transport for any future use.
func (t *Transport) readPacket() (Packet, error) {
	p, err := readPacket(t.r, t.tz)
	if err != nil && err != io.EOF {
		t.inconsistent = true
	}
	return p, err
}

// call writes command and returns a function the caller repeatedly invokes
// to pull packets until a terminal one arrives or the stream ends. The
// Transport is marked inside for the duration; a caller that stops pulling
// before a terminal packet must treat the Transport as inconsistent.
func (t *Transport) call(ctx context.Context, command []byte) (func() (Packet, bool, error), error) {
	if t.inconsistent {
		return nil, ErrTransportInconsistent
	}
	if err := applyDeadline(t.conn, ctx); err != nil {
		return nil, err
	}
	if err := t.send(command); err != nil {
		t.inconsistent = true
		return nil, err
	}
	t.inside.Set(true)
	done := false
	next := func() (Packet, bool, error) {
		if done {
			return Packet{Kind: PacketEndOfStream}, true, nil
		}
		p, err := t.readPacket()
		if err != nil {
			t.inside.Set(false)
			if err == io.EOF {
				done = true
				return Packet{Kind: PacketEndOfStream}, true, nil
			}
			return Packet{}, true, err
		}
		if terminalPacketKind(p.Kind) {
			done = true
			t.inside.Set(false)
		}
		return p, done, nil
	}
	return next, nil
}

// drain abandons an in-flight response stream, marking the Transport
// inconsistent since the remaining packets were never read off the wire
// (§5 Cancel-on-drop semantics rely on this to force a reconnect instead of
// silently desyncing a pooled Transport).
func (t *Transport) drain() {
	if t.inside.IsSet() {
		t.inconsistent = true
		t.inside.Set(false)
	}
}

func applyDeadline(conn net.Conn, ctx context.Context) error {
	if dl, ok := ctx.Deadline(); ok {
		return conn.SetDeadline(dl)
	}
	return conn.SetDeadline(time.Time{})
}
