package jetdb

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestDecodeValue(t *testing.T) {
	cfg := textConfig{}

	t.Run("bool true", func(t *testing.T) {
		v := decodeValue(ColumnTypeBool, []byte{1}, JET4, cfg)
		if !v.Bool() {
			t.Errorf("expected true")
		}
	})

	t.Run("byte", func(t *testing.T) {
		v := decodeValue(ColumnTypeByte, []byte{200}, JET4, cfg)
		if v.Byte() != 200 {
			t.Errorf("got %d, want 200", v.Byte())
		}
	})

	t.Run("int16 (Int)", func(t *testing.T) {
		raw := []byte{0xFF, 0xFF} // -1 as a signed 16-bit value
		v := decodeValue(ColumnTypeInt, raw, JET4, cfg)
		if v.Int16() != -1 {
			t.Errorf("got %d, want -1", v.Int16())
		}
	})

	t.Run("int32 (LongInt)", func(t *testing.T) {
		raw := make([]byte, 4)
		binary.LittleEndian.PutUint32(raw, 123456)
		v := decodeValue(ColumnTypeLongInt, raw, JET4, cfg)
		if v.Int32() != 123456 {
			t.Errorf("got %d, want 123456", v.Int32())
		}
	})

	t.Run("double", func(t *testing.T) {
		raw := make([]byte, 8)
		binary.LittleEndian.PutUint64(raw, math.Float64bits(3.25))
		v := decodeValue(ColumnTypeDouble, raw, JET4, cfg)
		if v.Float64() != 3.25 {
			t.Errorf("got %v, want 3.25", v.Float64())
		}
	})

	t.Run("datetime kept as raw bit pattern", func(t *testing.T) {
		raw := make([]byte, 8)
		binary.LittleEndian.PutUint64(raw, math.Float64bits(42000.5))
		v := decodeValue(ColumnTypeDateTime, raw, JET4, cfg)
		if v.RawDateTime() != math.Float64bits(42000.5) {
			t.Errorf("got 0x%x", v.RawDateTime())
		}
	})

	t.Run("text JET4", func(t *testing.T) {
		raw := []byte{'O', 0x00, 'K', 0x00}
		v := decodeValue(ColumnTypeText, raw, JET4, cfg)
		if v.Str() != "OK" {
			t.Errorf("got %q, want OK", v.Str())
		}
	})

	t.Run("unsupported column type", func(t *testing.T) {
		v := decodeValue(ColumnTypeOLE, []byte{1, 2, 3}, JET4, cfg)
		if v.Kind != KindUnsupported || v.Str() != unknownTypeSentinel {
			t.Errorf("got %+v, want the unsupported sentinel", v)
		}
	})

	t.Run("truncated bool yields sentinel, not an error", func(t *testing.T) {
		v := decodeValue(ColumnTypeBool, nil, JET4, cfg)
		if v.Kind != KindUnsupported {
			t.Errorf("expected a partial-row-safe sentinel for truncated data, got %+v", v)
		}
	})
}

func TestColumnValueMarshalJSON(t *testing.T) {
	cases := []struct {
		name string
		v    ColumnValue
		want string
	}{
		{"null", nullValue(), "null"},
		{"bool", boolValue(true), "true"},
		{"byte", byteValue(7), "7"},
		{"int32", int32Value(0xFFFFFFFF), "-1"},
		{"float", float64Value(1.5), "1.5"},
		{"string", stringValue("hi"), `"hi"`},
		{"unsupported", unsupportedValue(), `"[unknown type]"`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := c.v.MarshalJSON()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != c.want {
				t.Errorf("MarshalJSON() = %s, want %s", got, c.want)
			}
		})
	}
}
