package scrapbook

import (
	"errors"
	"fmt"
	"time"
)

// Application error codes.
//
// These are meant to be generic and mappable to user-facing messages or
// exit codes. EFETCH and EPARSE carry the scraping failure taxonomy:
// a fetch failure is fatal for a root document but recoverable for
// individual articles and images, while a parse failure only ever occurs
// on markup that cannot be tokenized at all (missing structure degrades
// to empty fields instead).
const (
	ECONFIG   = "config"
	ECONFLICT = "conflict"
	EFETCH    = "fetch"
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
	EPARSE    = "parse"
)

// Error represents an application error with a machine-readable code and
// a human-readable message.
type Error struct {
	// Code is one of the application error code constants.
	Code string

	// Message is a human-readable description of the error.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("scrapbook error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode returns the code of the error, if available.
// Returns EINTERNAL for non-application errors and an empty string for nil.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the message of the error, if available.
// Returns a generic message for non-application errors and an empty
// string for nil.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf constructs an Error with the given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorRecord is the serialized form of a top-level scrape failure. When
// a whole page cannot be processed the record replaces the payload
// entirely; partial data is never mixed with a top-level error.
type ErrorRecord struct {
	Error     string    `json:"error"`
	URL       string    `json:"url"`
	ScrapedAt time.Time `json:"scrapedAt"`
}

// NewErrorRecord builds the error record for a failed scrape of url.
func NewErrorRecord(err error, url string, at time.Time) *ErrorRecord {
	return &ErrorRecord{
		Error:     fmt.Sprintf("Error processing page: %s", ErrorMessage(err)),
		URL:       url,
		ScrapedAt: at,
	}
}
