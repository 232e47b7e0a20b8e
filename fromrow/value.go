package fromrow

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unsafe"

	"github.com/golang-sql/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind is the dynamic type of a cell as produced by the driver.
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindBool
	KindText
	KindBytes
	KindTime
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindText:
		return "text"
	case KindBytes:
		return "bytes"
	case KindTime:
		return "time"
	default:
		return "other"
	}
}

// timeLayouts are tried in order when a temporal cell arrives as text.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Value is one cell of a Row: a driver value plus the column it came from.
// The zero Value is a NULL cell.
type Value struct {
	column string
	raw    any
}

// ValueOf wraps a driver value.
func ValueOf(column string, raw any) Value {
	return Value{column: column, raw: raw}
}

// Column returns the name of the column the value was read from.
func (v Value) Column() string { return v.column }

// Raw returns the driver value.
func (v Value) Raw() any { return v.raw }

// IsNull reports whether the cell is SQL NULL.
func (v Value) IsNull() bool { return v.raw == nil }

// Kind classifies the driver value.
func (v Value) Kind() Kind {
	switch v.raw.(type) {
	case nil:
		return KindNull
	case int64, int, int32, int16, int8, uint64, uint, uint32, uint16, uint8:
		return KindInt
	case float64, float32:
		return KindFloat
	case bool:
		return KindBool
	case string:
		return KindText
	case []byte:
		return KindBytes
	case time.Time:
		return KindTime
	default:
		return KindOther
	}
}

func (v Value) String() string {
	if v.raw == nil {
		return "NULL"
	}

	if b, ok := v.raw.([]byte); ok {
		return fmt.Sprintf("%q", b)
	}

	return fmt.Sprint(v.raw)
}

func (v Value) fail(want string, err error) error {
	if v.raw == nil {
		return &CellError{Column: v.column}
	}

	return &NarrowError{Column: v.column, Want: want, Got: v.Kind(), Err: err}
}

func (v Value) mismatch(want string) error {
	return v.fail(want, nil)
}

// text returns textual driver values without copying.
func (v Value) text() (string, bool) {
	switch x := v.raw.(type) {
	case string:
		return x, true
	case []byte:
		return unsafe.String(unsafe.SliceData(x), len(x)), true
	default:
		return "", false
	}
}

func (v Value) signed(want string, bits int) (int64, error) {
	var n int64

	switch x := v.raw.(type) {
	case int64:
		n = x
	case int:
		n = int64(x)
	case int32:
		n = int64(x)
	case int16:
		n = int64(x)
	case int8:
		n = int64(x)
	case uint8:
		n = int64(x)
	case uint16:
		n = int64(x)
	case uint32:
		n = int64(x)
	case uint64:
		if x > math.MaxInt64 {
			return 0, v.fail(want, strconv.ErrRange)
		}

		n = int64(x)
	case uint:
		if uint64(x) > math.MaxInt64 {
			return 0, v.fail(want, strconv.ErrRange)
		}

		n = int64(x)
	default:
		s, ok := v.text()
		if !ok {
			return 0, v.mismatch(want)
		}

		parsed, err := strconv.ParseInt(strings.TrimSpace(s), 10, bits)
		if err != nil {
			return 0, v.fail(want, err)
		}

		return parsed, nil
	}

	if bits < 64 {
		limit := int64(1) << (bits - 1)
		if n < -limit || n >= limit {
			return 0, v.fail(want, strconv.ErrRange)
		}
	}

	return n, nil
}

// Uint8 narrows to an unsigned byte (tinyint).
func (v Value) Uint8() (uint8, error) {
	if s, ok := v.text(); ok {
		n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
		if err != nil {
			return 0, v.fail("uint8", err)
		}

		return uint8(n), nil
	}

	n, err := v.signed("uint8", 64)
	if err != nil {
		return 0, err
	}

	if n < 0 || n > math.MaxUint8 {
		return 0, v.fail("uint8", strconv.ErrRange)
	}

	return uint8(n), nil
}

// Int16 narrows to a smallint.
func (v Value) Int16() (int16, error) {
	n, err := v.signed("int16", 16)
	return int16(n), err
}

// Int32 narrows to an int.
func (v Value) Int32() (int32, error) {
	n, err := v.signed("int32", 32)
	return int32(n), err
}

// Int64 narrows to a bigint.
func (v Value) Int64() (int64, error) {
	return v.signed("int64", 64)
}

// Int narrows to a platform int.
func (v Value) Int() (int, error) {
	n, err := v.signed("int", strconv.IntSize)
	return int(n), err
}

func (v Value) float(want string, bits int) (float64, error) {
	switch x := v.raw.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case bool, time.Time, nil:
		return 0, v.mismatch(want)
	}

	if s, ok := v.text(); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), bits)
		if err != nil {
			return 0, v.fail(want, err)
		}

		return f, nil
	}

	if v.Kind() == KindInt {
		n, err := v.signed(want, 64)
		return float64(n), err
	}

	return 0, v.mismatch(want)
}

// Float32 narrows to a float(24).
func (v Value) Float32() (float32, error) {
	f, err := v.float("float32", 32)
	if err != nil {
		return 0, err
	}

	if !math.IsInf(f, 0) && math.Abs(f) > math.MaxFloat32 {
		return 0, v.fail("float32", strconv.ErrRange)
	}

	return float32(f), nil
}

// Float64 narrows to a float(53).
func (v Value) Float64() (float64, error) {
	return v.float("float64", 64)
}

// Bool narrows to a bit. Integers other than 0 and 1 are rejected.
func (v Value) Bool() (bool, error) {
	switch x := v.raw.(type) {
	case bool:
		return x, nil
	case nil:
		return false, v.mismatch("bool")
	}

	if s, ok := v.text(); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return false, v.fail("bool", err)
		}

		return b, nil
	}

	if v.Kind() != KindInt {
		return false, v.mismatch("bool")
	}

	n, err := v.signed("bool", 64)
	if err != nil {
		return false, err
	}

	switch n {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, v.fail("bool", fmt.Errorf("only numbers 0 and 1 are allowed for bool, got: %d", n))
	}
}

// Text narrows to a string without copying: when the driver produced
// []byte the result aliases that buffer and is only valid while the row is.
// Use OwnedText for values that outlive the row.
func (v Value) Text() (string, error) {
	s, ok := v.text()
	if !ok {
		return "", v.mismatch("string")
	}

	return s, nil
}

// OwnedText narrows to a string that shares no memory with the row.
func (v Value) OwnedText() (string, error) {
	s, err := v.Text()
	if err != nil {
		return "", err
	}

	return strings.Clone(s), nil
}

// Bytes narrows to binary data, aliasing the driver buffer when possible.
func (v Value) Bytes() ([]byte, error) {
	switch x := v.raw.(type) {
	case []byte:
		return x, nil
	case string:
		return []byte(x), nil
	default:
		return nil, v.mismatch("[]byte")
	}
}

// OwnedBytes narrows to binary data that shares no memory with the row.
func (v Value) OwnedBytes() ([]byte, error) {
	switch x := v.raw.(type) {
	case []byte:
		return bytes.Clone(x), nil
	case string:
		return []byte(x), nil
	default:
		return nil, v.mismatch("[]byte")
	}
}

// Decimal narrows to an arbitrary-precision numeric.
func (v Value) Decimal() (decimal.Decimal, error) {
	switch x := v.raw.(type) {
	case decimal.Decimal:
		return x, nil
	case float64:
		return decimal.NewFromFloat(x), nil
	case float32:
		return decimal.NewFromFloat32(x), nil
	case bool, time.Time, nil:
		return decimal.Zero, v.mismatch("decimal.Decimal")
	}

	if s, ok := v.text(); ok {
		d, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil {
			return decimal.Zero, v.fail("decimal.Decimal", err)
		}

		return d, nil
	}

	if v.Kind() == KindInt {
		n, err := v.signed("decimal.Decimal", 64)
		return decimal.NewFromInt(n), err
	}

	return decimal.Zero, v.mismatch("decimal.Decimal")
}

// UUID narrows to a uniqueidentifier.
func (v Value) UUID() (uuid.UUID, error) {
	switch x := v.raw.(type) {
	case uuid.UUID:
		return x, nil
	case [16]byte:
		return uuid.UUID(x), nil
	case []byte:
		if len(x) == 16 {
			id, err := uuid.FromBytes(x)
			if err != nil {
				return uuid.Nil, v.fail("uuid.UUID", err)
			}

			return id, nil
		}

		id, err := uuid.ParseBytes(x)
		if err != nil {
			return uuid.Nil, v.fail("uuid.UUID", err)
		}

		return id, nil
	case string:
		id, err := uuid.Parse(x)
		if err != nil {
			return uuid.Nil, v.fail("uuid.UUID", err)
		}

		return id, nil
	default:
		return uuid.Nil, v.mismatch("uuid.UUID")
	}
}

func (v Value) timestamp(want string) (time.Time, error) {
	if t, ok := v.raw.(time.Time); ok {
		return t, nil
	}

	s, ok := v.text()
	if !ok {
		return time.Time{}, v.mismatch(want)
	}

	s = strings.TrimSpace(s)

	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}

		lastErr = err
	}

	return time.Time{}, v.fail(want, lastErr)
}

// Time narrows to a date-time with offset (datetimeoffset, timestamptz).
func (v Value) Time() (time.Time, error) {
	return v.timestamp("time.Time")
}

// Date narrows to a calendar date.
func (v Value) Date() (civil.Date, error) {
	if s, ok := v.text(); ok {
		if d, err := civil.ParseDate(strings.TrimSpace(s)); err == nil {
			return d, nil
		}
	}

	t, err := v.timestamp("civil.Date")
	if err != nil {
		return civil.Date{}, err
	}

	return civil.DateOf(t), nil
}

// TimeOfDay narrows to a time column.
func (v Value) TimeOfDay() (civil.Time, error) {
	if s, ok := v.text(); ok {
		t, err := civil.ParseTime(strings.TrimSpace(s))
		if err != nil {
			return civil.Time{}, v.fail("civil.Time", err)
		}

		return t, nil
	}

	t, err := v.timestamp("civil.Time")
	if err != nil {
		return civil.Time{}, err
	}

	return civil.TimeOf(t), nil
}

// DateTime narrows to a date-time without offset (datetime, datetime2).
func (v Value) DateTime() (civil.DateTime, error) {
	if s, ok := v.text(); ok {
		if dt, err := civil.ParseDateTime(strings.TrimSpace(s)); err == nil {
			return dt, nil
		}
	}

	t, err := v.timestamp("civil.DateTime")
	if err != nil {
		return civil.DateTime{}, err
	}

	return civil.DateTimeOf(t), nil
}
