package logging

// Standardized field names for structured logging.
// Keep these stable: log pipelines filter on them.
const (
	FieldFile       = "file_path"
	FieldOwner      = "owner"
	FieldRawName    = "raw_name"
	FieldNormalized = "normalized_name"
	FieldVendorID   = "vendor_id"
	FieldVendorName = "vendor_name"
	FieldScore      = "score"
	FieldCategory   = "category"
	FieldGroup      = "group"
	FieldConfidence = "confidence"
	FieldReason     = "reason"
	FieldOperation  = "operation"
	FieldBackend    = "backend"
	FieldError      = "error"
	FieldCount      = "count"
	FieldRow        = "row"
	FieldDelimiter  = "delimiter"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
)
