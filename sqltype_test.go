package clickhouse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSqlType_Primitives(t *testing.T) {
	cases := map[string]SqlType{
		"UInt8":   TypeUInt8,
		"int":     TypeInt32,
		"BIGINT":  TypeInt64,
		"Float64": TypeFloat64,
		"varchar": TypeString,
	}
	for spelling, want := range cases {
		got, err := ParseSqlType(spelling)
		require.NoError(t, err, spelling)
		assert.True(t, got.Equal(want), spelling)
	}
}

func TestParseSqlType_Nullable(t *testing.T) {
	got, err := ParseSqlType("Nullable(UInt32)")
	require.NoError(t, err)
	assert.True(t, got.Equal(NullableType(TypeUInt32)))
}

func TestParseSqlType_NestedNullableRejected(t *testing.T) {
	_, err := ParseSqlType("Nullable(Nullable(UInt8))")
	require.Error(t, err)
}

func TestParseSqlType_Array(t *testing.T) {
	got, err := ParseSqlType("Array(String)")
	require.NoError(t, err)
	assert.True(t, got.Equal(ArrayType(TypeString)))
	assert.Equal(t, 1, got.Level())
}

func TestParseSqlType_FixedString(t *testing.T) {
	got, err := ParseSqlType("FixedString(16)")
	require.NoError(t, err)
	assert.Equal(t, 16, got.Len)
	assert.Equal(t, "FixedString(16)", got.String())
}

func TestParseSqlType_Unknown(t *testing.T) {
	_, err := ParseSqlType("NotARealType")
	require.Error(t, err)
	var fse *FromSqlError
	require.ErrorAs(t, err, &fse)
	assert.Equal(t, ErrUnsupportedColumnType, fse.Kind)
}

func TestSqlType_EqualIsStructural(t *testing.T) {
	a := ArrayType(NullableType(TypeInt32))
	b := ArrayType(NullableType(TypeInt32))
	assert.True(t, a.Equal(b))
	assert.NotSame(t, a.Inner, b.Inner)
}
