package logging

// Standardized field names for structured logging.
// These constants ensure consistency across the application's log output,
// making logs easier to parse, filter, and analyze.
const (
	FieldFile      = "file_path"
	FieldCard      = "card_id"
	FieldStatement = "statement_id"
	FieldSession   = "session_id"
	FieldQuestion  = "question"
	FieldPattern   = "pattern"
	FieldQueryType = "query_type"
	FieldCategory  = "category"
	FieldMerchant  = "merchant"
	FieldReason    = "reason"
	FieldOperation = "operation"
	FieldStatus    = "status"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
	FieldCount     = "count"
	FieldSkipped   = "skipped"
	FieldCacheKey  = "cache_key"
	FieldPeriod    = "period"
)
