package parsererror

import "fmt"

// ParseError represents an error during parsing
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation failure
type ValidationError struct {
	FilePath string
	Reason   string
	Err      error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents an error where the input file does not conform
// to the expected format for a specific parser.
type InvalidFormatError struct {
	FilePath             string
	ExpectedFormat       string
	ActualContentSnippet string // Optional: a snippet of the actual content for debugging
	Msg                  string
}

func (e *InvalidFormatError) Error() string {
	if e.ActualContentSnippet != "" {
		return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s. Content snippet: '%s'",
			e.FilePath, e.Msg, e.ExpectedFormat, e.ActualContentSnippet)
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// DataExtractionError represents an error where specific required data could not be extracted
// from a file, even if the file format itself might be valid.
type DataExtractionError struct {
	FilePath       string
	FieldName      string
	RawDataSnippet string // Optional: a snippet of the raw data where extraction failed
	Reason         string
	Msg            string
}

func (e *DataExtractionError) Error() string {
	if e.RawDataSnippet != "" {
		return fmt.Sprintf("data extraction failed in file '%s' for field '%s': %s. Reason: %s. Raw data snippet: '%s'",
			e.FilePath, e.FieldName, e.Msg, e.Reason, e.RawDataSnippet)
	}
	return fmt.Sprintf("data extraction failed in file '%s' for field '%s': %s. Reason: %s",
		e.FilePath, e.FieldName, e.Msg, e.Reason)
}

// UnsupportedQueryError indicates a structured query whose type is not
// understood by the executor. It is a normal, recoverable outcome: the
// caller answers with a clarification message instead of failing.
type UnsupportedQueryError struct {
	QueryType string
}

func (e *UnsupportedQueryError) Error() string {
	return fmt.Sprintf("unsupported query type: %s", e.QueryType)
}

// QueryGenerationError indicates the LLM fallback failed to produce a
// valid structured query, either by transport failure or by returning a
// reply that does not validate against the expected schema.
type QueryGenerationError struct {
	Question string
	Reason   string
	Err      error
}

func (e *QueryGenerationError) Error() string {
	return fmt.Sprintf("query generation failed for %q: %s: %v", e.Question, e.Reason, e.Err)
}

func (e *QueryGenerationError) Unwrap() error {
	return e.Err
}
