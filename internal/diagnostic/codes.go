package diagnostic

// Diagnostic codes reported while planning record types.
const (
	CodeNotStruct        = "FR001" // target is an interface, func, named basic or other non-struct type
	CodeGeneric          = "FR002" // target declares type parameters
	CodeUnsupportedField = "FR003" // field type has no scalar kind
	CodeEmbeddedField    = "FR004" // embedded fields are not flattened
	CodeUnknownType      = "FR005" // schema file names a type that is not loaded
	CodeUnknownField     = "FR006" // schema file names a field the type lacks
	CodeUnknownNaming    = "FR007" // naming convention is not recognised
	CodeBadTag           = "FR008" // sql struct tag cannot be parsed
	CodeDuplicateColumn  = "FR009" // two fields read the same column
	CodeNoFields         = "FR010" // every field is skipped
	CodeDuplicateEntry   = "FR011" // schema file lists a type twice
	CodeColumnResolved   = "FR100" // info: column differs from the field name
)
