package primitive

import (
	"go/types"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

// KindEnum is a scalar type the row decoder can narrow a cell into.
type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (unsupported) value for KindEnum

	KindUint8
	KindInt16
	KindInt32
	KindInt64
	KindInt
	KindFloat32
	KindFloat64
	KindBool
	KindString
	KindBytes
	KindDecimal   // shopspring decimal.Decimal: numeric/decimal columns
	KindUUID      // google uuid.UUID: uniqueidentifier columns
	KindDate      // civil.Date: date columns
	KindTimeOfDay // civil.Time: time columns
	KindDateTime  // civil.DateTime: datetime without offset
	KindTime      // time.Time: datetime with offset

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

const (
	decimalPkg = "github.com/shopspring/decimal"
	uuidPkg    = "github.com/google/uuid"
	civilPkg   = "github.com/golang-sql/civil"
)

// namedKinds maps "<pkg path>.<type name>" of supported named types to their kind.
var namedKinds = map[string]KindEnum{
	"time.Time":             KindTime,
	decimalPkg + ".Decimal": KindDecimal,
	uuidPkg + ".UUID":       KindUUID,
	civilPkg + ".Date":      KindDate,
	civilPkg + ".Time":      KindTimeOfDay,
	civilPkg + ".DateTime":  KindDateTime,
}

func (k KindEnum) IsValid() bool {
	return k > 0 && int(k) < KindTotal
}

func (k KindEnum) IsNumber() bool {
	switch k {
	default:
		return false
	case KindUint8, KindInt16, KindInt32, KindInt64, KindInt,
		KindFloat32, KindFloat64, KindDecimal:
		return true
	}
}

func (k KindEnum) IsInteger() bool {
	switch k {
	default:
		return false
	case KindUint8, KindInt16, KindInt32, KindInt64, KindInt:
		return true
	}
}

func (k KindEnum) IsTemporal() bool {
	switch k {
	default:
		return false
	case KindDate, KindTimeOfDay, KindDateTime, KindTime:
		return true
	}
}

// IsText reports whether values of this kind are decoded from text and
// may alias the driver's buffers.
func (k KindEnum) IsText() bool {
	return k == KindString
}

// KindOf classifies a go/types type. It returns the zero KindEnum for
// types the decoder cannot narrow into, including named types declared
// over a basic type.
func KindOf(t types.Type) KindEnum {
	if t == nil {
		return 0
	}

	switch tt := types.Unalias(t).(type) {
	case *types.Basic:
		return basicKind(tt)

	case *types.Slice:
		if elem, ok := types.Unalias(tt.Elem()).(*types.Basic); ok && elem.Kind() == types.Uint8 {
			return KindBytes
		}

		return 0

	case *types.Named:
		obj := tt.Obj()
		if obj.Pkg() == nil || tt.TypeArgs().Len() > 0 {
			return 0
		}

		return namedKinds[obj.Pkg().Path()+"."+obj.Name()]

	default:
		return 0
	}
}

func basicKind(b *types.Basic) KindEnum {
	switch b.Kind() {
	default:
		return 0
	case types.Uint8:
		return KindUint8
	case types.Int16:
		return KindInt16
	case types.Int32:
		return KindInt32
	case types.Int64:
		return KindInt64
	case types.Int:
		return KindInt
	case types.Float32:
		return KindFloat32
	case types.Float64:
		return KindFloat64
	case types.Bool:
		return KindBool
	case types.String:
		return KindString
	}
}
