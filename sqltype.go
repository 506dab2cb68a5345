package clickhouse

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind tags the primitive shape a SqlType, Value or ValueRef carries.
type Kind uint8

const (
	KindUInt8 Kind = iota
	KindUInt16
	KindUInt32
	KindUInt64
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindInt256
	KindFloat32
	KindFloat64
	KindString
	KindFixedString
	KindNullable
	KindArray
)

// SqlType is a tagged descriptor of a ClickHouse column type. Nullable and
// Array variants reference an Inner descriptor; FixedString carries Len.
// Equality is structural, not pointer identity (see DESIGN.md).
type SqlType struct {
	Kind  Kind
	Inner *SqlType
	Len   int
}

var (
	TypeUInt8   = SqlType{Kind: KindUInt8}
	TypeUInt16  = SqlType{Kind: KindUInt16}
	TypeUInt32  = SqlType{Kind: KindUInt32}
	TypeUInt64  = SqlType{Kind: KindUInt64}
	TypeInt8    = SqlType{Kind: KindInt8}
	TypeInt16   = SqlType{Kind: KindInt16}
	TypeInt32   = SqlType{Kind: KindInt32}
	TypeInt64   = SqlType{Kind: KindInt64}
	TypeInt256  = SqlType{Kind: KindInt256}
	TypeFloat32 = SqlType{Kind: KindFloat32}
	TypeFloat64 = SqlType{Kind: KindFloat64}
	TypeString  = SqlType{Kind: KindString}
)

// FixedStringType returns the SqlType for FixedString(n).
func FixedStringType(n int) SqlType {
	return SqlType{Kind: KindFixedString, Len: n}
}

// NullableType returns the SqlType for Nullable(inner).
func NullableType(inner SqlType) SqlType {
	cp := inner
	return SqlType{Kind: KindNullable, Inner: &cp}
}

// ArrayType returns the SqlType for Array(inner).
func ArrayType(inner SqlType) SqlType {
	cp := inner
	return SqlType{Kind: KindArray, Inner: &cp}
}

// Level returns the nesting depth: primitives are 0, Nullable(T)/Array(T)
// are 1 + T.Level().
func (t SqlType) Level() int {
	if (t.Kind == KindNullable || t.Kind == KindArray) && t.Inner != nil {
		return 1 + t.Inner.Level()
	}
	return 0
}

// Equal reports structural equality, recursing through Inner.
func (t SqlType) Equal(o SqlType) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case KindFixedString:
		return t.Len == o.Len
	case KindNullable, KindArray:
		if t.Inner == nil || o.Inner == nil {
			return t.Inner == o.Inner
		}
		return t.Inner.Equal(*o.Inner)
	default:
		return true
	}
}

func (t SqlType) String() string {
	switch t.Kind {
	case KindUInt8:
		return "UInt8"
	case KindUInt16:
		return "UInt16"
	case KindUInt32:
		return "UInt32"
	case KindUInt64:
		return "UInt64"
	case KindInt8:
		return "Int8"
	case KindInt16:
		return "Int16"
	case KindInt32:
		return "Int32"
	case KindInt64:
		return "Int64"
	case KindInt256:
		return "Int256"
	case KindFloat32:
		return "Float32"
	case KindFloat64:
		return "Float64"
	case KindString:
		return "String"
	case KindFixedString:
		return fmt.Sprintf("FixedString(%d)", t.Len)
	case KindNullable:
		return fmt.Sprintf("Nullable(%s)", t.Inner)
	case KindArray:
		return fmt.Sprintf("Array(%s)", t.Inner)
	default:
		return "Unknown"
	}
}

// primitive spellings, including documented aliases (§4.2).
var primitiveAliases = map[string]SqlType{
	"uint8":  TypeUInt8,
	"uint16": TypeUInt16,
	"uint32": TypeUInt32,
	"uint64": TypeUInt64,

	"int8":    TypeInt8,
	"tinyint": TypeInt8,

	"int16":    TypeInt16,
	"smallint": TypeInt16,

	"int32":   TypeInt32,
	"int":     TypeInt32,
	"integer": TypeInt32,

	"int64":  TypeInt64,
	"bigint": TypeInt64,

	"int256": TypeInt256,

	"float32": TypeFloat32,
	"float":   TypeFloat32,

	"float64": TypeFloat64,
	"double":  TypeFloat64,

	"string":     TypeString,
	"char":       TypeString,
	"varchar":    TypeString,
	"text":       TypeString,
	"tinytext":   TypeString,
	"mediumtext": TypeString,
	"longtext":   TypeString,
	"blob":       TypeString,
	"tinyblob":   TypeString,
	"mediumblob": TypeString,
	"longblob":   TypeString,
}

// ParseSqlType dispatches case-insensitively on the ClickHouse type
// spelling, recursing into Nullable(X)/Array(X) and parsing
// FixedString(N). Nullable(Nullable(...)) is rejected. Unknown spellings
// yield FromSqlError{UnsupportedColumnType}.
func ParseSqlType(name string) (SqlType, error) {
	if t, ok := primitiveAliases[strings.ToLower(name)]; ok {
		return t, nil
	}
	if inner, ok := cutWrapper(name, "Nullable"); ok {
		if strings.HasPrefix(inner, "Nullable") || strings.HasPrefix(strings.ToLower(inner), "nullable") {
			return SqlType{}, &FromSqlError{Kind: ErrUnsupportedColumnType, Type: name}
		}
		innerType, err := ParseSqlType(inner)
		if err != nil {
			return SqlType{}, err
		}
		return NullableType(innerType), nil
	}
	if inner, ok := cutWrapper(name, "Array"); ok {
		innerType, err := ParseSqlType(inner)
		if err != nil {
			return SqlType{}, err
		}
		return ArrayType(innerType), nil
	}
	if n, ok := parseFixedString(name); ok {
		return FixedStringType(n), nil
	}
	return SqlType{}, &FromSqlError{Kind: ErrUnsupportedColumnType, Type: name}
}

// cutWrapper splits "Prefix(rest)" case-insensitively on the prefix,
// returning rest and true, or "", false if name doesn't start with prefix(.
func cutWrapper(name, prefix string) (string, bool) {
	if len(name) <= len(prefix)+1 {
		return "", false
	}
	if !strings.EqualFold(name[:len(prefix)], prefix) || name[len(prefix)] != '(' || name[len(name)-1] != ')' {
		return "", false
	}
	return name[len(prefix)+1 : len(name)-1], true
}

func parseFixedString(name string) (int, bool) {
	inner, ok := cutWrapper(name, "FixedString")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(inner)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
