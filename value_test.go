package clickhouse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_TypedExtractors(t *testing.T) {
	v := NewUInt32(42)
	got, err := v.UInt32()
	require.NoError(t, err)
	assert.Equal(t, uint32(42), got)

	_, err = v.Int32()
	require.Error(t, err)
	var fse *FromSqlError
	require.ErrorAs(t, err, &fse)
	assert.Equal(t, ErrInvalidType, fse.Kind)
}

func TestValue_Equal(t *testing.T) {
	assert.True(t, NewInt64(-5).Equal(NewInt64(-5)))
	assert.False(t, NewInt64(-5).Equal(NewInt64(5)))
	assert.True(t, NewString([]byte("hi")).Equal(NewString([]byte("hi"))))
}

func TestValue_NullableRoundTrip(t *testing.T) {
	null := NewNull(TypeUInt8)
	assert.True(t, null.IsNull())
	_, ok := null.Inner()
	assert.False(t, ok)

	present := NewPresent(NewUInt8(7))
	assert.False(t, present.IsNull())
	inner, ok := present.Inner()
	require.True(t, ok)
	v, err := inner.UInt8()
	require.NoError(t, err)
	assert.Equal(t, uint8(7), v)
}

func TestValue_Array(t *testing.T) {
	arr := NewArrayValue(TypeString, []Value{NewString([]byte("a")), NewString([]byte("b"))})
	assert.Equal(t, "[a, b]", arr.String())
	assert.Len(t, arr.Items(), 2)
}

func TestValueRef_ToOwnedIsIndependent(t *testing.T) {
	buf := []byte("hello")
	ref := ValueRef{Type: TypeString, str: buf}
	owned := ref.ToOwned()
	buf[0] = 'H'
	got, err := owned.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "42", NewUInt32(42).String())
	assert.Equal(t, "-7", NewInt8(-7).String())
}
