package clickhouse

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitiveColumn_ReadAt(t *testing.T) {
	w := newWriter()
	w.putUint32(1)
	w.putUint32(2)
	w.putUint32(3)
	col, err := readPrimitiveColumn(bytes.NewReader(w.Bytes()), KindUInt32, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, col.Len())
	v, err := col.At(1).UInt32()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), v)
}

func TestPrimitiveColumn_SaveRoundTrip(t *testing.T) {
	w := newWriter()
	w.putUint16(10)
	w.putUint16(20)
	col, err := readPrimitiveColumn(bytes.NewReader(w.Bytes()), KindUInt16, 2)
	require.NoError(t, err)

	out := newWriter()
	require.NoError(t, col.Save(out))
	assert.Equal(t, w.Bytes(), out.Bytes())
}

func TestStringColumn_ReadAt(t *testing.T) {
	w := newWriter()
	w.putBytes([]byte("foo"))
	w.putBytes([]byte(""))
	w.putBytes([]byte("bar"))
	col, err := readStringColumn(bytes.NewReader(w.Bytes()), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, col.Len())

	b, err := col.At(0).Bytes()
	require.NoError(t, err)
	assert.Equal(t, "foo", string(b))

	b, err = col.At(1).Bytes()
	require.NoError(t, err)
	assert.Equal(t, "", string(b))
}

func TestFixedStringColumn_ReadAt(t *testing.T) {
	w := newWriter()
	w.putRaw([]byte("ab"))
	w.putRaw([]byte("cd"))
	col, err := readFixedStringColumn(bytes.NewReader(w.Bytes()), 2, 2)
	require.NoError(t, err)
	b, err := col.At(1).Bytes()
	require.NoError(t, err)
	assert.Equal(t, "cd", string(b))
}

func TestNullableColumn_ReadAt(t *testing.T) {
	w := newWriter()
	w.putUint8(0)
	w.putUint8(1)
	w.putUint32(99)
	w.putUint32(0)
	col, err := readNullableColumn(bytes.NewReader(w.Bytes()), TypeUInt32, 2, time.UTC)
	require.NoError(t, err)

	assert.False(t, col.At(0).IsNull())
	assert.True(t, col.At(1).IsNull())
	inner, ok := col.At(0).Inner()
	require.True(t, ok)
	v, err := inner.UInt32()
	require.NoError(t, err)
	assert.Equal(t, uint32(99), v)
}

func TestArrayColumn_ReadAt(t *testing.T) {
	w := newWriter()
	w.putUint64(2) // row 0 has 2 elements
	w.putUint64(3) // row 1 has 1 more element
	w.putUint32(1)
	w.putUint32(2)
	w.putUint32(3)
	col, err := readArrayColumn(bytes.NewReader(w.Bytes()), TypeUInt32, 2, time.UTC)
	require.NoError(t, err)

	row0 := col.At(0).Items()
	require.Len(t, row0, 2)
	v0, _ := row0[0].UInt32()
	v1, _ := row0[1].UInt32()
	assert.Equal(t, uint32(1), v0)
	assert.Equal(t, uint32(2), v1)

	row1 := col.At(1).Items()
	require.Len(t, row1, 1)
	v2, _ := row1[0].UInt32()
	assert.Equal(t, uint32(3), v2)
}

func TestConcatColumn_LocatesSourceByPrefixSum(t *testing.T) {
	a, err := readPrimitiveColumn(bytes.NewReader(writeUint32s(1, 2)), KindUInt32, 2)
	require.NoError(t, err)
	b, err := readPrimitiveColumn(bytes.NewReader(writeUint32s(3, 4, 5)), KindUInt32, 3)
	require.NoError(t, err)

	cat := newConcatColumn(TypeUInt32, []ColumnData{a, b})
	assert.Equal(t, 5, cat.Len())
	for i, want := range []uint32{1, 2, 3, 4, 5} {
		v, err := cat.At(i).UInt32()
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}

	_, savable := ColumnData(cat).(savableColumnData)
	assert.False(t, savable, "Concat must not be savable")
	_, cloneable := ColumnData(cat).(cloneableColumnData)
	assert.False(t, cloneable, "Concat must not be cloneable")
}

func TestChunkColumn_RestrictsRange(t *testing.T) {
	src, err := readPrimitiveColumn(bytes.NewReader(writeUint32s(10, 20, 30, 40)), KindUInt32, 4)
	require.NoError(t, err)

	chunk := newChunkColumn(src, 1, 3)
	assert.Equal(t, 2, chunk.Len())
	v0, _ := chunk.At(0).UInt32()
	v1, _ := chunk.At(1).UInt32()
	assert.Equal(t, uint32(20), v0)
	assert.Equal(t, uint32(30), v1)

	_, savable := ColumnData(chunk).(savableColumnData)
	assert.False(t, savable, "Chunk must not be savable")
}

func writeUint32s(vals ...uint32) []byte {
	w := newWriter()
	for _, v := range vals {
		w.putUint32(v)
	}
	return w.Bytes()
}
