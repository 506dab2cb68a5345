package clickhouse

import (
	"errors"
	"fmt"
)

// DriverErrorKind classifies an internal protocol/driver failure, distinct
// from a server-reported exception. See ServerError for the latter.
type DriverErrorKind int

const (
	// ErrOverflow is returned when a uvarint needs more than 10 bytes, or a
	// 10th byte carries bits above bit 0.
	ErrOverflow DriverErrorKind = iota
	// ErrUnexpectedPacket is returned when a packet kind arrives that the
	// calling state did not expect (e.g. Data before Hello completes).
	ErrUnexpectedPacket
	// ErrConnectionClosed is returned when the peer closes the socket in
	// the middle of a packet; a close between packets is end-of-stream.
	ErrConnectionClosed
	// ErrBadResponse is returned when a handshake completes without the
	// packet it promised (e.g. Hello stream ends without a Hello packet).
	ErrBadResponse
)

func (k DriverErrorKind) String() string {
	switch k {
	case ErrOverflow:
		return "varint overflow"
	case ErrUnexpectedPacket:
		return "unexpected packet"
	case ErrConnectionClosed:
		return "connection closed"
	case ErrBadResponse:
		return "bad response"
	default:
		return "driver error"
	}
}

// DriverError is a protocol-level failure internal to this client.
type DriverError struct {
	Kind DriverErrorKind
	Msg  string
}

func (e *DriverError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("clickhouse: %s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("clickhouse: %s", e.Kind)
}

// ServerError is a server-reported exception, passed through verbatim,
// optionally chained through Nested.
type ServerError struct {
	Code       int32
	Name       string
	Message    string
	StackTrace string
	Nested     *ServerError
}

func (e *ServerError) Error() string {
	if e.Nested != nil {
		return fmt.Sprintf("clickhouse server error (code %d, %s): %s\ncaused by: %s", e.Code, e.Name, e.Message, e.Nested.Error())
	}
	return fmt.Sprintf("clickhouse server error (code %d, %s): %s", e.Code, e.Name, e.Message)
}

// FromSqlErrorKind classifies a failure extracting a typed value from a Row.
type FromSqlErrorKind int

const (
	// ErrOutOfRange is returned by Row.GetByName for an unknown column.
	ErrOutOfRange FromSqlErrorKind = iota
	// ErrInvalidType is returned when the caller requests a Go type that
	// does not match the column's declared SqlType.
	ErrInvalidType
	// ErrUnsupportedOperation is returned when column data cannot be
	// written to the wire (the read-only Concat/Chunk views).
	ErrUnsupportedOperation
	// ErrUnsupportedColumnType is returned for a type name the column
	// decoder does not recognize.
	ErrUnsupportedColumnType
)

// FromSqlError reports a per-cell extraction failure; it does not affect
// the surrounding block or row stream.
type FromSqlError struct {
	Kind FromSqlErrorKind
	Src  string
	Dst  string
	Type string
}

func (e *FromSqlError) Error() string {
	switch e.Kind {
	case ErrOutOfRange:
		return fmt.Sprintf("clickhouse: column %q not found", e.Src)
	case ErrInvalidType:
		return fmt.Sprintf("clickhouse: cannot represent %s as %s", e.Src, e.Dst)
	case ErrUnsupportedColumnType:
		return fmt.Sprintf("clickhouse: unsupported column type %q", e.Type)
	default:
		return "clickhouse: unsupported operation"
	}
}

// ErrTlsHostNotProvided is returned when PoolConfig.Hosts is empty: by
// ParsePoolConfig for a DSN without a host, by Open, and by the TLS setup
// of a Secure connection, which needs a host for certificate verification.
var ErrTlsHostNotProvided = errors.New("clickhouse: secure connection requested but no TLS host was provided")

// ErrPoolClosed is returned by Pool.Get after the Pool has been Closed.
var ErrPoolClosed = errors.New("clickhouse: pool is closed")

// ErrTransportInconsistent is returned when a caller attempts to reuse a
// transport that was poisoned by a dropped stream or mid-packet parse
// error (see Transport.inconsistent).
var ErrTransportInconsistent = errors.New("clickhouse: transport is inconsistent and must be reconnected")

// asServerError reports whether err is (or wraps) a *ServerError.
func asServerError(err error) (*ServerError, bool) {
	var se *ServerError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
