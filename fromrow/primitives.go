package fromrow

import (
	"time"

	"github.com/golang-sql/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Scalar builds a MapFunc reading the first column of a row. NULL and a
// row without columns both fail with a *CellError.
func Scalar[T any](narrow func(Value) (T, error)) MapFunc[T] {
	return func(row Row) (T, error) {
		var zero T

		v, ok := row.ByIndex(0)
		if !ok {
			return zero, &CellError{Index: 0, Missing: true}
		}

		if v.IsNull() {
			return zero, &CellError{Column: v.Column()}
		}

		return narrow(v)
	}
}

// MapFuncs for single-column results, e.g. "SELECT count(*) FROM t".
// Text and Bytes results own their memory.
var (
	Uint8     MapFunc[uint8]           = Scalar(Value.Uint8)
	Int16     MapFunc[int16]           = Scalar(Value.Int16)
	Int32     MapFunc[int32]           = Scalar(Value.Int32)
	Int64     MapFunc[int64]           = Scalar(Value.Int64)
	Int       MapFunc[int]             = Scalar(Value.Int)
	Float32   MapFunc[float32]         = Scalar(Value.Float32)
	Float64   MapFunc[float64]         = Scalar(Value.Float64)
	Bool      MapFunc[bool]            = Scalar(Value.Bool)
	Text      MapFunc[string]          = Scalar(Value.OwnedText)
	Bytes     MapFunc[[]byte]          = Scalar(Value.OwnedBytes)
	Decimal   MapFunc[decimal.Decimal] = Scalar(Value.Decimal)
	UUID      MapFunc[uuid.UUID]       = Scalar(Value.UUID)
	Date      MapFunc[civil.Date]      = Scalar(Value.Date)
	TimeOfDay MapFunc[civil.Time]      = Scalar(Value.TimeOfDay)
	DateTime  MapFunc[civil.DateTime]  = Scalar(Value.DateTime)
	Time      MapFunc[time.Time]       = Scalar(Value.Time)
)
