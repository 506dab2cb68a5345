package clickhouse

import (
	"io"
	"sort"
	"time"
)

// ColumnData is the polymorphic backing store for a Column's cells (§9).
// Concat and Chunk implement only this base interface: they are read-only
// views and deliberately do not implement savableColumnData or
// cloneableColumnData.
type ColumnData interface {
	Type() SqlType
	Len() int
	At(i int) ValueRef
}

// savableColumnData is implemented by every ColumnData variant that can
// appear in an outgoing block.
type savableColumnData interface {
	ColumnData
	Save(w *writer) error
}

// cloneableColumnData is implemented by every mutable ColumnData variant;
// Column.CloneForWrite uses it for copy-on-write.
type cloneableColumnData interface {
	ColumnData
	Clone() ColumnData
}

// Column is a named, typed, ordered sequence of cells, shared by reference
// across blocks via Data.
type Column struct {
	Name string
	Typ  SqlType
	Data ColumnData
}

func (c Column) Len() int            { return c.Data.Len() }
func (c Column) At(i int) ValueRef   { return c.Data.At(i) }
func (c Column) SqlType() SqlType    { return c.Typ }

// CloneForWrite returns a Column backed by an independent copy of Data,
// cloning only when Data is cloneable (copy-on-write); Concat/Chunk views
// are returned unchanged since they are never mutated.
func (c Column) CloneForWrite() Column {
	if cl, ok := c.Data.(cloneableColumnData); ok {
		return Column{Name: c.Name, Typ: c.Typ, Data: cl.Clone()}
	}
	return c
}

func readColumn(r io.Reader, rows int, tz *time.Location) (Column, error) {
	name, err := readString(r)
	if err != nil {
		return Column{}, err
	}
	typeName, err := readString(r)
	if err != nil {
		return Column{}, err
	}
	sqlType, err := ParseSqlType(typeName)
	if err != nil {
		return Column{}, err
	}
	data, err := readColumnData(r, sqlType, rows, tz)
	if err != nil {
		return Column{}, err
	}
	return Column{Name: name, Typ: sqlType, Data: data}, nil
}

func writeColumn(w *writer, c Column) error {
	w.putString(c.Name)
	w.putString(c.Typ.String())
	sv, ok := c.Data.(savableColumnData)
	if !ok {
		return &FromSqlError{Kind: ErrUnsupportedOperation}
	}
	return sv.Save(w)
}

// readColumnData dispatches on the parsed SqlType and reads rows cells
// per §4.2's read protocol.
func readColumnData(r io.Reader, t SqlType, rows int, tz *time.Location) (ColumnData, error) {
	switch t.Kind {
	case KindUInt8, KindUInt16, KindUInt32, KindUInt64,
		KindInt8, KindInt16, KindInt32, KindInt64, KindInt256,
		KindFloat32, KindFloat64:
		return readPrimitiveColumn(r, t.Kind, rows)
	case KindString:
		return readStringColumn(r, rows)
	case KindFixedString:
		return readFixedStringColumn(r, rows, t.Len)
	case KindNullable:
		return readNullableColumn(r, *t.Inner, rows, tz)
	case KindArray:
		return readArrayColumn(r, *t.Inner, rows, tz)
	default:
		return nil, &FromSqlError{Kind: ErrUnsupportedColumnType, Type: t.String()}
	}
}

// newColumnData constructs an empty, capacity-hinted ColumnData for the
// given SqlType, used by emptyBlockFor to build a zero-row block for a
// schema.
func newColumnData(t SqlType, capacity int) ColumnData {
	switch t.Kind {
	case KindUInt8, KindUInt16, KindUInt32, KindUInt64,
		KindInt8, KindInt16, KindInt32, KindInt64, KindInt256,
		KindFloat32, KindFloat64:
		return &primitiveColumn{kind: t.Kind, elemSize: primitiveSize(t.Kind), raw: make([]byte, 0, capacity*primitiveSize(t.Kind))}
	case KindString:
		return &stringColumn{offsets: []int{0}}
	case KindFixedString:
		return &fixedStringColumn{ln: t.Len}
	case KindNullable:
		return &nullableColumn{inner: newColumnData(*t.Inner, capacity)}
	case KindArray:
		return &arrayColumn{inner: newColumnData(*t.Inner, capacity)}
	default:
		return nil
	}
}

// --- Concat -----------------------------------------------------------

// concatColumn is a read-only view over multiple source columns sharing
// one SqlType, locating the owner of global row i via binary search over
// a prefix-sum index (§3, §8 Quantified: Concat).
type concatColumn struct {
	typ     SqlType
	sources []ColumnData
	prefix  []int // len(sources)+1; prefix[0] == 0
}

// newConcatColumn builds a Concat view; all sources must share sqlType.
func newConcatColumn(sqlType SqlType, sources []ColumnData) *concatColumn {
	prefix := make([]int, len(sources)+1)
	for i, s := range sources {
		prefix[i+1] = prefix[i] + s.Len()
	}
	return &concatColumn{typ: sqlType, sources: sources, prefix: prefix}
}

func (c *concatColumn) Type() SqlType { return c.typ }
func (c *concatColumn) Len() int      { return c.prefix[len(c.prefix)-1] }

func (c *concatColumn) At(i int) ValueRef {
	// prefix[k] <= i < prefix[k+1]
	k := sort.Search(len(c.prefix), func(k int) bool { return c.prefix[k] > i }) - 1
	return c.sources[k].At(i - c.prefix[k])
}

// --- Chunk --------------------------------------------------------------

// chunkColumn is a view over a source column restricted to [lo, hi).
type chunkColumn struct {
	source ColumnData
	lo, hi int
}

func newChunkColumn(source ColumnData, lo, hi int) *chunkColumn {
	return &chunkColumn{source: source, lo: lo, hi: hi}
}

func (c *chunkColumn) Type() SqlType { return c.source.Type() }
func (c *chunkColumn) Len() int      { return c.hi - c.lo }
func (c *chunkColumn) At(i int) ValueRef {
	return c.source.At(c.lo + i)
}
