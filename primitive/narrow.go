package primitive

var narrowers map[KindEnum]string

func init() {
	narrowers = map[KindEnum]string{
		KindUint8:     "Uint8",
		KindInt16:     "Int16",
		KindInt32:     "Int32",
		KindInt64:     "Int64",
		KindInt:       "Int",
		KindFloat32:   "Float32",
		KindFloat64:   "Float64",
		KindBool:      "Bool",
		KindString:    "Text",
		KindBytes:     "OwnedBytes", // []byte fields never share the driver buffer
		KindDecimal:   "Decimal",
		KindUUID:      "UUID",
		KindDate:      "Date",
		KindTimeOfDay: "TimeOfDay",
		KindDateTime:  "DateTime",
		KindTime:      "Time",
	}
}

// Narrow returns the name of the fromrow.Value method that narrows a cell
// into this kind. With owned set, text kinds use the copying variant.
func (k KindEnum) Narrow(owned bool) string {
	if owned && k.IsText() {
		return "OwnedText"
	}

	return narrowers[k]
}

// NarrowExpr returns the method expression used by generated code, e.g.
// "fromrow.Value.Int32" for pkgAlias "fromrow".
func NarrowExpr(pkgAlias string, k KindEnum, owned bool) string {
	name := k.Narrow(owned)
	if name == "" {
		return ""
	}

	if pkgAlias == "" {
		return "Value." + name
	}

	return pkgAlias + ".Value." + name
}

// GoType returns the Go spelling of the kind as it appears in user code.
func (k KindEnum) GoType() string {
	switch k {
	case KindUint8:
		return "uint8"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindInt:
		return "int"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindBytes:
		return "[]byte"
	case KindDecimal:
		return "decimal.Decimal"
	case KindUUID:
		return "uuid.UUID"
	case KindDate:
		return "civil.Date"
	case KindTimeOfDay:
		return "civil.Time"
	case KindDateTime:
		return "civil.DateTime"
	case KindTime:
		return "time.Time"
	default:
		return ""
	}
}
