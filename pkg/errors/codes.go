package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidPeriod        ErrorCode = 102
	ErrCodeInvalidWindow        ErrorCode = 103
	ErrCodeInvalidMultiplier    ErrorCode = 104
	ErrCodeInvalidMACDWindows   ErrorCode = 105
	ErrCodeMissingAPIKey        ErrorCode = 106

	// Series errors (200-299)
	ErrCodeInvalidSeries   ErrorCode = 200
	ErrCodeSeriesNotFound  ErrorCode = 201
	ErrCodeMissingTimezone ErrorCode = 202

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound      ErrorCode = 300
	ErrCodeIndicatorAlreadyExists ErrorCode = 301
	ErrCodeIndicatorCalculation   ErrorCode = 302

	// Market data errors (400-499)
	ErrCodeFetchFailed     ErrorCode = 400
	ErrCodeParseFailed     ErrorCode = 401
	ErrCodeInvalidProvider ErrorCode = 402
	ErrCodeNoDataReturned  ErrorCode = 403

	// News errors (500-599)
	ErrCodeNewsSearchFailed ErrorCode = 500
	ErrCodeNewsNoResults    ErrorCode = 501

	// Narrative errors (600-699)
	ErrCodeNarrativeRequestFailed ErrorCode = 600
	ErrCodeNarrativeEmptyResponse ErrorCode = 601
)
