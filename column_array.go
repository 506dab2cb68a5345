package clickhouse

import (
	"io"
	"time"
)

// arrayColumn pairs cumulative offsets of element counts with a flat
// inner column holding all elements concatenated (§3). offsets[i] is the
// total element count through row i.
type arrayColumn struct {
	offsets []uint64
	inner   ColumnData
}

func readArrayColumn(r io.Reader, innerType SqlType, rows int, tz *time.Location) (*arrayColumn, error) {
	offsets := make([]uint64, rows)
	for i := 0; i < rows; i++ {
		v, err := readUint64(r)
		if err != nil {
			return nil, err
		}
		offsets[i] = v
	}
	total := 0
	if rows > 0 {
		total = int(offsets[rows-1])
	}
	inner, err := readColumnData(r, innerType, total, tz)
	if err != nil {
		return nil, err
	}
	return &arrayColumn{offsets: offsets, inner: inner}, nil
}

func (c *arrayColumn) Type() SqlType {
	return ArrayType(c.inner.Type())
}

func (c *arrayColumn) Len() int { return len(c.offsets) }

func (c *arrayColumn) bounds(i int) (int, int) {
	start := 0
	if i > 0 {
		start = int(c.offsets[i-1])
	}
	return start, int(c.offsets[i])
}

func (c *arrayColumn) At(i int) ValueRef {
	start, end := c.bounds(i)
	items := make([]ValueRef, end-start)
	for j := start; j < end; j++ {
		items[j-start] = c.inner.At(j)
	}
	return ValueRef{Type: c.Type(), items: items}
}

func (c *arrayColumn) Save(w *writer) error {
	for _, off := range c.offsets {
		w.putUint64(off)
	}
	sv, ok := c.inner.(savableColumnData)
	if !ok {
		return &FromSqlError{Kind: ErrUnsupportedOperation}
	}
	return sv.Save(w)
}

func (c *arrayColumn) Clone() ColumnData {
	out := &arrayColumn{offsets: append([]uint64(nil), c.offsets...), inner: c.inner}
	if cl, ok := c.inner.(cloneableColumnData); ok {
		out.inner = cl.Clone()
	}
	return out
}
