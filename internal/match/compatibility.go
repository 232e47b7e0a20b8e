package match

import (
	"slices"
	"strings"

	"fromrow-generator/primitive"
)

// TypeCompatibility is how well a column type fits a field kind.
type TypeCompatibility int

const (
	// TypeIncompatible means every non-NULL cell fails to narrow.
	TypeIncompatible TypeCompatibility = iota
	// TypeNeedsTransform means cells are parsed or range-checked and may fail at run time.
	TypeNeedsTransform
	// TypeConvertible means cells always convert, possibly widening.
	TypeConvertible
	// TypeIdentical means the column type is the natural type of the kind.
	TypeIdentical
)

const (
	VerdictIdentical      = "identical"
	VerdictConvertible    = "convertible"
	VerdictNeedsTransform = "needs_transform"
	VerdictIncompatible   = "incompatible"
)

func (c TypeCompatibility) String() string {
	switch c {
	case TypeIdentical:
		return VerdictIdentical
	case TypeConvertible:
		return VerdictConvertible
	case TypeNeedsTransform:
		return VerdictNeedsTransform
	case TypeIncompatible:
		return VerdictIncompatible
	default:
		return "unknown"
	}
}

// TypeCompatibilityResult explains a compatibility verdict.
type TypeCompatibilityResult struct {
	Compatibility TypeCompatibility
	Reason        string
	ColumnType    string
	FieldType     string
}

// family groups driver type names (sql.ColumnType.DatabaseTypeName) of
// sqlite, MySQL and PostgreSQL.
type family int

const (
	familyUnknown family = iota
	familyInteger
	familyFloat
	familyDecimal
	familyBool
	familyText
	familyBinary
	familyDate
	familyTimeOfDay
	familyDateTime
	familyTimestampTZ
	familyUUID
)

var families = map[string]family{
	"TINYINT": familyInteger, "SMALLINT": familyInteger, "MEDIUMINT": familyInteger,
	"INT": familyInteger, "INTEGER": familyInteger, "BIGINT": familyInteger,
	"INT2": familyInteger, "INT4": familyInteger, "INT8": familyInteger,
	"UNSIGNED TINYINT": familyInteger, "UNSIGNED INT": familyInteger, "UNSIGNED BIGINT": familyInteger,

	"REAL": familyFloat, "FLOAT": familyFloat, "DOUBLE": familyFloat,
	"FLOAT4": familyFloat, "FLOAT8": familyFloat,

	"DECIMAL": familyDecimal, "NUMERIC": familyDecimal, "MONEY": familyDecimal,

	"BOOL": familyBool, "BOOLEAN": familyBool, "BIT": familyBool,

	"TEXT": familyText, "VARCHAR": familyText, "CHAR": familyText, "BPCHAR": familyText,
	"NVARCHAR": familyText, "NCHAR": familyText, "TINYTEXT": familyText,
	"MEDIUMTEXT": familyText, "LONGTEXT": familyText, "JSON": familyText,

	"BLOB": familyBinary, "BYTEA": familyBinary, "BINARY": familyBinary, "VARBINARY": familyBinary,
	"TINYBLOB": familyBinary, "MEDIUMBLOB": familyBinary, "LONGBLOB": familyBinary,

	"DATE":        familyDate,
	"TIME":        familyTimeOfDay,
	"DATETIME":    familyDateTime,
	"TIMESTAMP":   familyDateTime,
	"TIMESTAMPTZ": familyTimestampTZ,
	"UUID":        familyUUID,
}

func familyOf(dbType string) family {
	name := strings.ToUpper(strings.TrimSpace(dbType))
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = strings.TrimSpace(name[:i])
	}

	return families[name]
}

// natural is the kind a column family decodes to without conversion.
var natural = map[family][]primitive.KindEnum{
	familyInteger:     {primitive.KindInt64, primitive.KindInt},
	familyFloat:       {primitive.KindFloat64},
	familyDecimal:     {primitive.KindDecimal},
	familyBool:        {primitive.KindBool},
	familyText:        {primitive.KindString},
	familyBinary:      {primitive.KindBytes},
	familyDate:        {primitive.KindDate},
	familyTimeOfDay:   {primitive.KindTimeOfDay},
	familyDateTime:    {primitive.KindDateTime, primitive.KindTime},
	familyTimestampTZ: {primitive.KindTime},
	familyUUID:        {primitive.KindUUID},
}

// ScoreColumnType reports whether cells of a column declared as dbType
// narrow into kind.
func ScoreColumnType(dbType string, kind primitive.KindEnum) TypeCompatibilityResult {
	res := TypeCompatibilityResult{ColumnType: dbType, FieldType: kind.GoType()}

	fam := familyOf(dbType)

	switch {
	case fam == familyUnknown:
		res.Compatibility = TypeNeedsTransform
		res.Reason = "column type is unknown, cells are checked at run time"
	case slices.Contains(natural[fam], kind):
		res.Compatibility = TypeIdentical
		res.Reason = "natural decoding of the column type"
	case fam == familyInteger && kind.IsInteger():
		res.Compatibility = TypeNeedsTransform
		res.Reason = "integer is range-checked into a narrower field"
	case fam == familyInteger && kind.IsNumber():
		res.Compatibility = TypeConvertible
		res.Reason = "integer widens to the field type"
	case fam == familyInteger && kind == primitive.KindBool:
		res.Compatibility = TypeNeedsTransform
		res.Reason = "only 0 and 1 narrow to bool"
	case fam == familyDecimal && kind.IsInteger():
		res.Compatibility = TypeNeedsTransform
		res.Reason = "decimal text is parsed and must hold an integral value"
	case fam == familyDecimal && kind == primitive.KindString:
		res.Compatibility = TypeConvertible
		res.Reason = "decimal arrives as text"
	case (fam == familyFloat || fam == familyDecimal) && kind.IsNumber():
		if kind.IsInteger() {
			res.Compatibility = TypeIncompatible
			res.Reason = "fractional column cannot narrow to an integer field"
		} else {
			res.Compatibility = TypeConvertible
			res.Reason = "numeric converts to the field type"
		}
	case fam == familyText && kind != primitive.KindBytes:
		res.Compatibility = TypeNeedsTransform
		res.Reason = "text is parsed into the field type"
	case (fam == familyText || fam == familyUUID) && kind == primitive.KindBytes,
		fam == familyUUID && kind == primitive.KindString,
		fam == familyBinary && (kind == primitive.KindString || kind == primitive.KindUUID):
		res.Compatibility = TypeConvertible
		res.Reason = "binary and text are interchangeable"
	case fam >= familyDate && fam <= familyTimestampTZ && kind.IsTemporal():
		res.Compatibility = TypeConvertible
		res.Reason = "temporal value is truncated to the field type"
	default:
		res.Compatibility = TypeIncompatible
		res.Reason = "column type cannot narrow to the field type"
	}

	return res
}
