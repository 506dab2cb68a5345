package clickhouse

import (
	"encoding/binary"
	"io"
	"math"
)

// Int256 holds a signed 256-bit ClickHouse integer as 32 little-endian
// bytes; arithmetic beyond equality/display is out of scope for this
// read-only client (see Non-goals).
type Int256 [32]byte

// IsNegative reports the sign of the two's-complement value.
func (v Int256) IsNegative() bool {
	return v[31]&0x80 != 0
}

func readFull(r io.Reader, buf []byte) error {
	_, err := io.ReadFull(r, buf)
	return err
}

func readUint8(r io.Reader) (uint8, error) {
	var b [1]byte
	if err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

func readUint16(r io.Reader) (uint16, error) {
	var b [2]byte
	if err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

func readUint32(r io.Reader) (uint32, error) {
	var b [4]byte
	if err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

func readUint64(r io.Reader) (uint64, error) {
	var b [8]byte
	if err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

func readInt8(r io.Reader) (int8, error) {
	v, err := readUint8(r)
	return int8(v), err
}

func readInt16(r io.Reader) (int16, error) {
	v, err := readUint16(r)
	return int16(v), err
}

func readInt32(r io.Reader) (int32, error) {
	v, err := readUint32(r)
	return int32(v), err
}

func readInt64(r io.Reader) (int64, error) {
	v, err := readUint64(r)
	return int64(v), err
}

func readFloat32(r io.Reader) (float32, error) {
	v, err := readUint32(r)
	return math.Float32frombits(v), err
}

func readFloat64(r io.Reader) (float64, error) {
	v, err := readUint64(r)
	return math.Float64frombits(v), err
}

func readBool(r io.Reader) (bool, error) {
	v, err := readUint8(r)
	return v != 0, err
}

func readInt256(r io.Reader) (Int256, error) {
	var v Int256
	err := readFull(r, v[:])
	return v, err
}

func putUint16(buf []byte, v uint16) { binary.LittleEndian.PutUint16(buf, v) }
func putUint32(buf []byte, v uint32) { binary.LittleEndian.PutUint32(buf, v) }
func putUint64(buf []byte, v uint64) { binary.LittleEndian.PutUint64(buf, v) }
