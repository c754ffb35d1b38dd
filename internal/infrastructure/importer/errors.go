package importer

import "errors"

// Row-level error codes surfaced on import session reports
const (
	ErrCodeMalformedRow    = "ERR_IMPORT_MALFORMED_ROW"
	ErrCodeRequiredField   = "ERR_IMPORT_REQUIRED_FIELD"
	ErrCodeInvalidValue    = "ERR_IMPORT_INVALID_VALUE"
	ErrCodeUnknownCountry  = "ERR_IMPORT_UNKNOWN_COUNTRY"
	ErrCodeUnknownCity     = "ERR_IMPORT_UNKNOWN_CITY"
	ErrCodeUnknownArea     = "ERR_IMPORT_UNKNOWN_AREA"
	ErrCodeUnknownCategory = "ERR_IMPORT_UNKNOWN_CATEGORY"
	ErrCodeDuplicateName   = "ERR_IMPORT_DUPLICATE_NAME"
)

var (
	// ErrEmptyFile is returned when the uploaded CSV has no content
	ErrEmptyFile = errors.New("CSV file is empty")

	// ErrInvalidEncoding is returned when the file is not valid UTF-8
	ErrInvalidEncoding = errors.New("invalid file encoding, expected UTF-8")

	// ErrMissingHeader is returned when the CSV has no header row
	ErrMissingHeader = errors.New("CSV file missing header row")

	// ErrFileTooLarge is returned when the file exceeds the configured limit
	ErrFileTooLarge = errors.New("file exceeds maximum allowed size")
)
