package clickhouse

import (
	"encoding/binary"
	"io"
)

// primitiveColumn stores a contiguous array of fixed-width little-endian
// values. A single raw byte buffer backs every numeric Kind; decoding
// happens on At.
type primitiveColumn struct {
	kind     Kind
	elemSize int
	raw      []byte
}

func primitiveSize(k Kind) int {
	switch k {
	case KindUInt8, KindInt8:
		return 1
	case KindUInt16, KindInt16:
		return 2
	case KindUInt32, KindInt32, KindFloat32:
		return 4
	case KindUInt64, KindInt64, KindFloat64:
		return 8
	case KindInt256:
		return 32
	default:
		return 0
	}
}

// readPrimitiveColumn reads n*sizeof(T) bytes per §4.2.
func readPrimitiveColumn(r io.Reader, kind Kind, rows int) (*primitiveColumn, error) {
	size := primitiveSize(kind)
	raw := make([]byte, rows*size)
	if err := readFull(r, raw); err != nil {
		return nil, err
	}
	return &primitiveColumn{kind: kind, elemSize: size, raw: raw}, nil
}

func (c *primitiveColumn) Type() SqlType {
	return SqlType{Kind: c.kind}
}

func (c *primitiveColumn) Len() int {
	if c.elemSize == 0 {
		return 0
	}
	return len(c.raw) / c.elemSize
}

func (c *primitiveColumn) At(i int) ValueRef {
	off := i * c.elemSize
	cell := c.raw[off : off+c.elemSize]
	v := ValueRef{Type: SqlType{Kind: c.kind}}
	switch c.kind {
	case KindUInt8:
		v.u64 = uint64(cell[0])
	case KindInt8:
		v.u64 = uint64(cell[0])
	case KindUInt16:
		v.u64 = uint64(binary.LittleEndian.Uint16(cell))
	case KindInt16:
		v.u64 = uint64(binary.LittleEndian.Uint16(cell))
	case KindUInt32:
		v.u64 = uint64(binary.LittleEndian.Uint32(cell))
	case KindInt32:
		v.u64 = uint64(binary.LittleEndian.Uint32(cell))
	case KindFloat32:
		v.u64 = uint64(binary.LittleEndian.Uint32(cell))
	case KindUInt64:
		v.u64 = binary.LittleEndian.Uint64(cell)
	case KindInt64:
		v.u64 = binary.LittleEndian.Uint64(cell)
	case KindFloat64:
		v.u64 = binary.LittleEndian.Uint64(cell)
	case KindInt256:
		copy(v.i256[:], cell)
	}
	return v
}

func (c *primitiveColumn) Save(w *writer) error {
	w.putRaw(c.raw)
	return nil
}

func (c *primitiveColumn) Clone() ColumnData {
	return &primitiveColumn{kind: c.kind, elemSize: c.elemSize, raw: append([]byte(nil), c.raw...)}
}
