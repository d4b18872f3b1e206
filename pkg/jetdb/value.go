package jetdb

import (
	"encoding/binary"
	"encoding/json"
	"math"
)

// ColumnType identifies the on-disk type tag of a column, per spec.md
// §4.6 / §6.
type ColumnType uint8

const (
	ColumnTypeBool     ColumnType = 1
	ColumnTypeByte     ColumnType = 2
	ColumnTypeInt      ColumnType = 3
	ColumnTypeLongInt  ColumnType = 4
	ColumnTypeMoney    ColumnType = 5
	ColumnTypeFloat    ColumnType = 6
	ColumnTypeDouble   ColumnType = 7
	ColumnTypeDateTime ColumnType = 8
	ColumnTypeBinary   ColumnType = 9
	ColumnTypeText     ColumnType = 10
	ColumnTypeOLE      ColumnType = 11
	ColumnTypeMemo     ColumnType = 12
	ColumnTypeGUID     ColumnType = 15
	ColumnTypeDecimal  ColumnType = 16
)

// unknownTypeSentinel is returned for any column type spec.md does not
// direct this decoder to support. This is a deliberate policy, not an
// error: partial rows must stay usable. See DESIGN.md's Open Question
// decisions.
const unknownTypeSentinel = "[unknown type]"

// ColumnValue is a tagged value decoded from a row. Exactly one of the
// typed accessors is meaningful, selected by Kind.
type ColumnValue struct {
	Kind Kind
	b    bool
	u8   uint8
	u16  uint16
	u32  uint32
	f64  float64
	u64  uint64
	str  string
}

// Kind discriminates the representation held by a ColumnValue.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindByte
	KindInt16
	KindInt32
	KindFloat64
	KindRawDateTime // raw u64 bit pattern of an IEEE-754 double; see DESIGN.md
	KindString
	KindUnsupported // carries the "[unknown type]" sentinel in Str()
)

func nullValue() ColumnValue                { return ColumnValue{Kind: KindNull} }
func boolValue(v bool) ColumnValue          { return ColumnValue{Kind: KindBool, b: v} }
func byteValue(v uint8) ColumnValue         { return ColumnValue{Kind: KindByte, u8: v} }
func int16Value(v uint16) ColumnValue       { return ColumnValue{Kind: KindInt16, u16: v} }
func int32Value(v uint32) ColumnValue       { return ColumnValue{Kind: KindInt32, u32: v} }
func float64Value(v float64) ColumnValue    { return ColumnValue{Kind: KindFloat64, f64: v} }
func rawDateTimeValue(v uint64) ColumnValue { return ColumnValue{Kind: KindRawDateTime, u64: v} }
func stringValue(v string) ColumnValue      { return ColumnValue{Kind: KindString, str: v} }
func unsupportedValue() ColumnValue         { return ColumnValue{Kind: KindUnsupported, str: unknownTypeSentinel} }

func (v ColumnValue) Bool() bool          { return v.b }
func (v ColumnValue) Byte() uint8         { return v.u8 }
func (v ColumnValue) Int16() int16        { return int16(v.u16) }
func (v ColumnValue) Int32() int32        { return int32(v.u32) }
func (v ColumnValue) Uint32() uint32      { return v.u32 }
func (v ColumnValue) Float64() float64    { return v.f64 }
func (v ColumnValue) RawDateTime() uint64 { return v.u64 }
func (v ColumnValue) Str() string         { return v.str }
func (v ColumnValue) IsNull() bool        { return v.Kind == KindNull }

// MarshalJSON renders the value ColumnValue actually holds rather than
// its internal tagged-union storage, so callers that serialize a Row
// (pkg/jetstream's frames, for instance) get the decoded value instead
// of an opaque Kind number.
func (v ColumnValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindByte:
		return json.Marshal(v.u8)
	case KindInt16:
		return json.Marshal(v.Int16())
	case KindInt32:
		return json.Marshal(v.Int32())
	case KindFloat64:
		return json.Marshal(v.f64)
	case KindRawDateTime:
		return json.Marshal(v.u64)
	case KindString, KindUnsupported:
		return json.Marshal(v.str)
	default:
		return []byte("null"), nil
	}
}

// decodeValue decodes a single column's raw bytes per its type tag.
// Text decoding is delegated by version/config so the caller does not
// need to thread those through every call site.
func decodeValue(colType ColumnType, raw []byte, v Version, cfg textConfig) ColumnValue {
	switch colType {
	case ColumnTypeBool:
		if len(raw) < 1 {
			return unsupportedValue()
		}
		return boolValue(raw[0] != 0)
	case ColumnTypeByte:
		if len(raw) < 1 {
			return unsupportedValue()
		}
		return byteValue(raw[0])
	case ColumnTypeInt:
		if len(raw) < 2 {
			return unsupportedValue()
		}
		return int16Value(binary.LittleEndian.Uint16(raw))
	case ColumnTypeLongInt:
		if len(raw) < 4 {
			return unsupportedValue()
		}
		return int32Value(binary.LittleEndian.Uint32(raw))
	case ColumnTypeDouble:
		if len(raw) < 8 {
			return unsupportedValue()
		}
		return float64Value(math.Float64frombits(binary.LittleEndian.Uint64(raw)))
	case ColumnTypeDateTime:
		if len(raw) < 8 {
			return unsupportedValue()
		}
		return rawDateTimeValue(binary.LittleEndian.Uint64(raw))
	case ColumnTypeText:
		return stringValue(decodeText(raw, v, cfg))
	default:
		return unsupportedValue()
	}
}

// textConfig carries the caller-overridable single-byte text policy
// down into decodeValue without importing jetconfig from this package.
type textConfig struct {
	cp1252 bool
}

func decodeText(raw []byte, v Version, cfg textConfig) string {
	if v == JET3 {
		return decodeSingleByteText(raw, cfg.cp1252)
	}

	return decodeJET4Text(raw)
}
