package models

// ValidationError represents a single validation error
type ValidationError struct {
	Line    int         `json:"line,omitempty"`
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ImportResult summarizes a dashboard NDJSON import
type ImportResult struct {
	Total      int               `json:"total"`
	Successful int               `json:"successful"`
	Failed     int               `json:"failed"`
	DurationMs int64             `json:"duration_ms"`
	Errors     []ValidationError `json:"errors,omitempty"`
}

// MaxReportedImportErrors caps the errors returned in an ImportResult
const MaxReportedImportErrors = 100
