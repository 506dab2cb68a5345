package clickhouse

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetLogger(t *testing.T) {
	previous := logger
	defer func() { logger = previous }()

	const expected = "prefix: test\n"
	buf := bytes.NewBuffer(make([]byte, 0, 64))
	SetLogger(log.New(buf, "prefix: ", 0))
	logger.Print("test")
	assert.Equal(t, expected, buf.String())
}

func TestDriverError_Error(t *testing.T) {
	err := &DriverError{Kind: ErrOverflow}
	assert.Contains(t, err.Error(), "overflow")

	withMsg := &DriverError{Kind: ErrBadResponse, Msg: "no hello packet"}
	assert.Contains(t, withMsg.Error(), "no hello packet")
}

func TestServerError_Error(t *testing.T) {
	nested := &ServerError{Code: 1, Name: "INNER", Message: "inner failure"}
	outer := &ServerError{Code: 2, Name: "OUTER", Message: "outer failure", Nested: nested}

	assert.Contains(t, outer.Error(), "outer failure")
	assert.Contains(t, outer.Error(), "inner failure")
}

func TestFromSqlError_Error(t *testing.T) {
	err := &FromSqlError{Kind: ErrOutOfRange, Src: "missing_column"}
	assert.Contains(t, err.Error(), "missing_column")

	typeErr := &FromSqlError{Kind: ErrInvalidType, Src: "UInt8", Dst: "String"}
	assert.Contains(t, typeErr.Error(), "UInt8")
	assert.Contains(t, typeErr.Error(), "String")
}

func TestAsServerError(t *testing.T) {
	se := &ServerError{Code: 42, Name: "TEST", Message: "boom"}
	got, ok := asServerError(se)
	assert.True(t, ok)
	assert.Equal(t, se, got)

	_, ok = asServerError(&DriverError{Kind: ErrOverflow})
	assert.False(t, ok)
}
