package clickhouse

import "io"

// stringColumn is a string pool: one concatenated byte buffer plus a
// per-row offsets array. Cell i is buf[offsets[i]:offsets[i+1]]. Appends
// happen in order; random access is O(1) (§3).
type stringColumn struct {
	buf     []byte
	offsets []int // len == rows+1, offsets[0] == 0
}

func readStringColumn(r io.Reader, rows int) (*stringColumn, error) {
	sc := &stringColumn{offsets: make([]int, 1, rows+1)}
	for i := 0; i < rows; i++ {
		b, err := readLengthPrefixed(r)
		if err != nil {
			return nil, err
		}
		sc.append(b)
	}
	return sc, nil
}

func (c *stringColumn) append(b []byte) {
	c.buf = append(c.buf, b...)
	c.offsets = append(c.offsets, len(c.buf))
}

func (c *stringColumn) Type() SqlType { return TypeString }
func (c *stringColumn) Len() int      { return len(c.offsets) - 1 }

func (c *stringColumn) At(i int) ValueRef {
	return ValueRef{Type: TypeString, str: c.buf[c.offsets[i]:c.offsets[i+1]]}
}

func (c *stringColumn) Save(w *writer) error {
	for i := 0; i < c.Len(); i++ {
		w.putBytes(c.buf[c.offsets[i]:c.offsets[i+1]])
	}
	return nil
}

func (c *stringColumn) Clone() ColumnData {
	return &stringColumn{
		buf:     append([]byte(nil), c.buf...),
		offsets: append([]int(nil), c.offsets...),
	}
}
