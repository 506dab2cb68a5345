package clickhouse

import (
	"fmt"
	"math"
	"strings"
)

// Value is an owned cell of a column: it does not alias any column's
// internal storage. Compare ValueRef, which borrows from a Column for the
// duration of a row's lifetime.
type Value struct {
	Type  SqlType
	u64   uint64
	i256  Int256
	str   []byte
	null  bool
	inner *Value
	items []Value
}

// ValueRef borrows its String/Array payload from column storage; it is
// valid only as long as the owning Column is not mutated.
type ValueRef struct {
	Type  SqlType
	u64   uint64
	i256  Int256
	str   []byte
	null  bool
	inner *ValueRef
	items []ValueRef
}

func NewUInt8(v uint8) Value     { return Value{Type: TypeUInt8, u64: uint64(v)} }
func NewUInt16(v uint16) Value   { return Value{Type: TypeUInt16, u64: uint64(v)} }
func NewUInt32(v uint32) Value   { return Value{Type: TypeUInt32, u64: uint64(v)} }
func NewUInt64(v uint64) Value   { return Value{Type: TypeUInt64, u64: v} }
func NewInt8(v int8) Value       { return Value{Type: TypeInt8, u64: uint64(uint8(v))} }
func NewInt16(v int16) Value     { return Value{Type: TypeInt16, u64: uint64(uint16(v))} }
func NewInt32(v int32) Value     { return Value{Type: TypeInt32, u64: uint64(uint32(v))} }
func NewInt64(v int64) Value     { return Value{Type: TypeInt64, u64: uint64(v)} }
func NewFloat32(v float32) Value { return Value{Type: TypeFloat32, u64: uint64(math.Float32bits(v))} }
func NewFloat64(v float64) Value { return Value{Type: TypeFloat64, u64: math.Float64bits(v)} }
func NewString(b []byte) Value   { return Value{Type: TypeString, str: append([]byte(nil), b...)} }

func NewNull(inner SqlType) Value {
	return Value{Type: NullableType(inner), null: true}
}

func NewPresent(v Value) Value {
	cp := v
	return Value{Type: NullableType(v.Type), inner: &cp}
}

func NewArrayValue(elem SqlType, items []Value) Value {
	return Value{Type: ArrayType(elem), items: items}
}

// UInt8 and friends extract the typed payload, returning
// FromSqlError{InvalidType} when Type does not match.
func (v Value) UInt8() (uint8, error) {
	if v.Type.Kind != KindUInt8 {
		return 0, typeMismatch(v.Type, "UInt8")
	}
	return uint8(v.u64), nil
}

func (v Value) UInt16() (uint16, error) {
	if v.Type.Kind != KindUInt16 {
		return 0, typeMismatch(v.Type, "UInt16")
	}
	return uint16(v.u64), nil
}

func (v Value) UInt32() (uint32, error) {
	if v.Type.Kind != KindUInt32 {
		return 0, typeMismatch(v.Type, "UInt32")
	}
	return uint32(v.u64), nil
}

func (v Value) UInt64() (uint64, error) {
	if v.Type.Kind != KindUInt64 {
		return 0, typeMismatch(v.Type, "UInt64")
	}
	return v.u64, nil
}

func (v Value) Int8() (int8, error) {
	if v.Type.Kind != KindInt8 {
		return 0, typeMismatch(v.Type, "Int8")
	}
	return int8(v.u64), nil
}

func (v Value) Int16() (int16, error) {
	if v.Type.Kind != KindInt16 {
		return 0, typeMismatch(v.Type, "Int16")
	}
	return int16(v.u64), nil
}

func (v Value) Int32() (int32, error) {
	if v.Type.Kind != KindInt32 {
		return 0, typeMismatch(v.Type, "Int32")
	}
	return int32(v.u64), nil
}

func (v Value) Int64() (int64, error) {
	if v.Type.Kind != KindInt64 {
		return 0, typeMismatch(v.Type, "Int64")
	}
	return int64(v.u64), nil
}

func (v Value) Float32() (float32, error) {
	if v.Type.Kind != KindFloat32 {
		return 0, typeMismatch(v.Type, "Float32")
	}
	return math.Float32frombits(uint32(v.u64)), nil
}

func (v Value) Float64() (float64, error) {
	if v.Type.Kind != KindFloat64 {
		return 0, typeMismatch(v.Type, "Float64")
	}
	return math.Float64frombits(v.u64), nil
}

func (v Value) Bytes() ([]byte, error) {
	if v.Type.Kind != KindString && v.Type.Kind != KindFixedString {
		return nil, typeMismatch(v.Type, "String")
	}
	return v.str, nil
}

// IsNull reports whether a Nullable value holds no inner value.
func (v Value) IsNull() bool { return v.Type.Kind == KindNullable && v.null }

// Inner returns the present inner value of a Nullable, or ok=false if null
// or not Nullable.
func (v Value) Inner() (Value, bool) {
	if v.Type.Kind != KindNullable || v.null || v.inner == nil {
		return Value{}, false
	}
	return *v.inner, true
}

// Items returns the element values of an Array.
func (v Value) Items() []Value {
	if v.Type.Kind != KindArray {
		return nil
	}
	return v.items
}

// Equal is total equality on matching tags, recursing through Nullable and
// Array payloads.
func (v Value) Equal(o Value) bool {
	if !v.Type.Equal(o.Type) {
		return false
	}
	switch v.Type.Kind {
	case KindNullable:
		if v.null != o.null {
			return false
		}
		if v.null {
			return true
		}
		return v.inner.Equal(*o.inner)
	case KindArray:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case KindString, KindFixedString:
		return string(v.str) == string(o.str)
	case KindInt256:
		return v.i256 == o.i256
	default:
		return v.u64 == o.u64
	}
}

func (v Value) String() string {
	var b strings.Builder
	writeValueKind(&b, v.Type, v.null, v.u64, v.i256, v.str, len(v.items),
		func(i int) string { return v.items[i].String() },
		func() string {
			if v.inner == nil {
				return "NULL"
			}
			return v.inner.String()
		})
	return b.String()
}

func (v ValueRef) String() string {
	var b strings.Builder
	writeValueKind(&b, v.Type, v.null, v.u64, v.i256, v.str, len(v.items),
		func(i int) string { return v.items[i].String() },
		func() string {
			if v.inner == nil {
				return "NULL"
			}
			return v.inner.String()
		})
	return b.String()
}

func writeValueKind(b *strings.Builder, t SqlType, null bool, u64 uint64, i256 Int256, str []byte, nItems int, item func(int) string, inner func() string) {
	switch t.Kind {
	case KindUInt8, KindUInt16, KindUInt32, KindUInt64:
		fmt.Fprintf(b, "%d", u64)
	case KindInt8:
		fmt.Fprintf(b, "%d", int8(u64))
	case KindInt16:
		fmt.Fprintf(b, "%d", int16(u64))
	case KindInt32:
		fmt.Fprintf(b, "%d", int32(u64))
	case KindInt64:
		fmt.Fprintf(b, "%d", int64(u64))
	case KindInt256:
		if i256.IsNegative() {
			b.WriteByte('-')
		}
		b.WriteString("0x")
		for i := len(i256) - 1; i >= 0; i-- {
			fmt.Fprintf(b, "%02x", i256[i])
		}
	case KindFloat32:
		fmt.Fprintf(b, "%g", math.Float32frombits(uint32(u64)))
	case KindFloat64:
		fmt.Fprintf(b, "%g", math.Float64frombits(u64))
	case KindString, KindFixedString:
		b.Write(str)
	case KindNullable:
		if null {
			b.WriteString("NULL")
		} else {
			b.WriteString(inner())
		}
	case KindArray:
		b.WriteByte('[')
		for i := 0; i < nItems; i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(item(i))
		}
		b.WriteByte(']')
	default:
		b.WriteByte('?')
	}
}

// ToOwned copies any borrowed storage (String bytes, Array elements) so the
// result remains valid after the owning Column changes.
func (v ValueRef) ToOwned() Value {
	out := Value{Type: v.Type, u64: v.u64, i256: v.i256, null: v.null}
	if v.str != nil {
		out.str = append([]byte(nil), v.str...)
	}
	if v.inner != nil {
		owned := v.inner.ToOwned()
		out.inner = &owned
	}
	if v.items != nil {
		out.items = make([]Value, len(v.items))
		for i, it := range v.items {
			out.items[i] = it.ToOwned()
		}
	}
	return out
}

func (v ValueRef) IsNull() bool { return v.Type.Kind == KindNullable && v.null }

func (v ValueRef) Bytes() ([]byte, error) {
	if v.Type.Kind != KindString && v.Type.Kind != KindFixedString {
		return nil, typeMismatch(v.Type, "String")
	}
	return v.str, nil
}

func (v ValueRef) UInt8() (uint8, error) {
	if v.Type.Kind != KindUInt8 {
		return 0, typeMismatch(v.Type, "UInt8")
	}
	return uint8(v.u64), nil
}

func (v ValueRef) UInt16() (uint16, error) {
	if v.Type.Kind != KindUInt16 {
		return 0, typeMismatch(v.Type, "UInt16")
	}
	return uint16(v.u64), nil
}

func (v ValueRef) UInt32() (uint32, error) {
	if v.Type.Kind != KindUInt32 {
		return 0, typeMismatch(v.Type, "UInt32")
	}
	return uint32(v.u64), nil
}

func (v ValueRef) UInt64() (uint64, error) {
	if v.Type.Kind != KindUInt64 {
		return 0, typeMismatch(v.Type, "UInt64")
	}
	return v.u64, nil
}

func (v ValueRef) Int8() (int8, error) {
	if v.Type.Kind != KindInt8 {
		return 0, typeMismatch(v.Type, "Int8")
	}
	return int8(v.u64), nil
}

func (v ValueRef) Int16() (int16, error) {
	if v.Type.Kind != KindInt16 {
		return 0, typeMismatch(v.Type, "Int16")
	}
	return int16(v.u64), nil
}

func (v ValueRef) Int32() (int32, error) {
	if v.Type.Kind != KindInt32 {
		return 0, typeMismatch(v.Type, "Int32")
	}
	return int32(v.u64), nil
}

func (v ValueRef) Int64() (int64, error) {
	if v.Type.Kind != KindInt64 {
		return 0, typeMismatch(v.Type, "Int64")
	}
	return int64(v.u64), nil
}

func (v ValueRef) Float32() (float32, error) {
	if v.Type.Kind != KindFloat32 {
		return 0, typeMismatch(v.Type, "Float32")
	}
	return math.Float32frombits(uint32(v.u64)), nil
}

func (v ValueRef) Float64() (float64, error) {
	if v.Type.Kind != KindFloat64 {
		return 0, typeMismatch(v.Type, "Float64")
	}
	return math.Float64frombits(v.u64), nil
}

// Items returns the element ValueRefs of an Array.
func (v ValueRef) Items() []ValueRef {
	if v.Type.Kind != KindArray {
		return nil
	}
	return v.items
}

// Inner returns the present inner ValueRef of a Nullable, or ok=false if
// null or not Nullable.
func (v ValueRef) Inner() (ValueRef, bool) {
	if v.Type.Kind != KindNullable || v.null || v.inner == nil {
		return ValueRef{}, false
	}
	return *v.inner, true
}

func typeMismatch(src SqlType, dst string) error {
	return &FromSqlError{Kind: ErrInvalidType, Src: src.String(), Dst: dst}
}
