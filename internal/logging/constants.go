package logging

// Standardized field names for structured logging.
const (
	FieldFile       = "file_path"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldAccount    = "account"
	FieldLine       = "line"
	FieldCount      = "count"
	FieldMode       = "mode"
	FieldFormat     = "format"
	FieldFacility   = "facility"
	FieldPeriod     = "period"
	FieldKind       = "kind"
	FieldOperation  = "operation"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
)
