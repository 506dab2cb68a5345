package clickhouse

import (
	"io"
	"time"
)

// nullableColumn pairs a null-flag byte array with the inner column (§3).
// On the wire a flag of 0 means present, nonzero means null.
type nullableColumn struct {
	nulls []byte
	inner ColumnData
}

func readNullableColumn(r io.Reader, innerType SqlType, rows int, tz *time.Location) (*nullableColumn, error) {
	nulls := make([]byte, rows)
	if err := readFull(r, nulls); err != nil {
		return nil, err
	}
	inner, err := readColumnData(r, innerType, rows, tz)
	if err != nil {
		return nil, err
	}
	return &nullableColumn{nulls: nulls, inner: inner}, nil
}

func (c *nullableColumn) Type() SqlType {
	inner := c.inner.Type()
	return NullableType(inner)
}

func (c *nullableColumn) Len() int { return len(c.nulls) }

func (c *nullableColumn) At(i int) ValueRef {
	t := c.Type()
	if c.nulls[i] != 0 {
		return ValueRef{Type: t, null: true}
	}
	inner := c.inner.At(i)
	return ValueRef{Type: t, inner: &inner}
}

func (c *nullableColumn) Save(w *writer) error {
	w.putRaw(c.nulls)
	sv, ok := c.inner.(savableColumnData)
	if !ok {
		return &FromSqlError{Kind: ErrUnsupportedOperation}
	}
	return sv.Save(w)
}

func (c *nullableColumn) Clone() ColumnData {
	out := &nullableColumn{nulls: append([]byte(nil), c.nulls...), inner: c.inner}
	if cl, ok := c.inner.(cloneableColumnData); ok {
		out.inner = cl.Clone()
	}
	return out
}
