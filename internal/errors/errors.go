// Package errors provides structured error types for sheetboard.
package errors

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Code represents a unique error code.
type Code string

// Error codes for sheetboard.
const (
	// Task errors
	CodeTaskNotFound     Code = "TASK_NOT_FOUND"
	CodeTaskVanished     Code = "TASK_VANISHED"
	CodeBlockedByPred    Code = "PREDECESSOR_INCOMPLETE"
	CodeInvalidInput     Code = "INVALID_INPUT"
	CodeInvalidDateRange Code = "INVALID_DATE_RANGE"

	// Remote errors
	CodeRemoteUnavailable Code = "REMOTE_UNAVAILABLE"
	CodeUnauthorized      Code = "REMOTE_UNAUTHORIZED"
	CodeSheetMalformed    Code = "SHEET_MALFORMED"

	// Config errors
	CodeConfigInvalid Code = "CONFIG_INVALID"
	CodeConfigMissing Code = "CONFIG_MISSING"
)

// Category groups error codes for exit status mapping.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryNotFound
	CategoryBadRequest
	CategoryBlocked
	CategoryUnavailable
	CategoryMalformed
	CategoryConfig
)

// codeCategories maps error codes to their categories.
var codeCategories = map[Code]Category{
	CodeTaskNotFound:      CategoryNotFound,
	CodeTaskVanished:      CategoryNotFound,
	CodeBlockedByPred:     CategoryBlocked,
	CodeInvalidInput:      CategoryBadRequest,
	CodeInvalidDateRange:  CategoryBadRequest,
	CodeRemoteUnavailable: CategoryUnavailable,
	CodeUnauthorized:      CategoryUnavailable,
	CodeSheetMalformed:    CategoryMalformed,
	CodeConfigInvalid:     CategoryConfig,
	CodeConfigMissing:     CategoryConfig,
}

// ExitCode returns the process exit code for a category, so scripts
// can tell a blocked move from a network failure.
func (c Category) ExitCode() int {
	switch c {
	case CategoryNotFound:
		return 2
	case CategoryBadRequest:
		return 3
	case CategoryBlocked:
		return 4
	case CategoryUnavailable:
		return 5
	case CategoryMalformed:
		return 6
	case CategoryConfig:
		return 7
	default:
		return 1
	}
}

// BoardError is the structured error type for sheetboard.
type BoardError struct {
	Code    Code   `json:"code"`
	What    string `json:"what"`
	Why     string `json:"why,omitempty"`
	Fix     string `json:"fix,omitempty"`
	DocsURL string `json:"docs_url,omitempty"`
	Cause   error  `json:"-"`
}

// Error implements the error interface.
func (e *BoardError) Error() string {
	var b strings.Builder
	b.WriteString(e.What)
	if e.Why != "" {
		b.WriteString(": ")
		b.WriteString(e.Why)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *BoardError) Unwrap() error {
	return e.Cause
}

// UserMessage returns a user-friendly message for CLI output.
func (e *BoardError) UserMessage() string {
	var b strings.Builder
	b.WriteString("Error: ")
	b.WriteString(e.What)
	if e.Why != "" {
		b.WriteString("\n\nWhy: ")
		b.WriteString(e.Why)
	}
	if e.Fix != "" {
		b.WriteString("\n\nFix: ")
		b.WriteString(e.Fix)
	}
	if e.DocsURL != "" {
		b.WriteString("\n\nDocs: ")
		b.WriteString(e.DocsURL)
	}
	return b.String()
}

// Category returns the error category for exit status mapping.
func (e *BoardError) Category() Category {
	if cat, ok := codeCategories[e.Code]; ok {
		return cat
	}
	return CategoryUnknown
}

// ExitCode returns the appropriate process exit code for this error.
func (e *BoardError) ExitCode() int {
	return e.Category().ExitCode()
}

// MarshalJSON implements json.Marshaler.
func (e *BoardError) MarshalJSON() ([]byte, error) {
	type alias BoardError
	aux := struct {
		*alias
		CauseMsg string `json:"cause,omitempty"`
	}{
		alias: (*alias)(e),
	}
	if e.Cause != nil {
		aux.CauseMsg = e.Cause.Error()
	}
	return json.Marshal(aux)
}

// Is reports whether target is a BoardError with the same code.
func (e *BoardError) Is(target error) bool {
	t, ok := target.(*BoardError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause returns a copy of the error with the given cause.
func (e *BoardError) WithCause(err error) *BoardError {
	return &BoardError{
		Code:    e.Code,
		What:    e.What,
		Why:     e.Why,
		Fix:     e.Fix,
		DocsURL: e.DocsURL,
		Cause:   err,
	}
}

// --- Error constructors ---

// ErrTaskNotFound returns an error when a task doesn't exist locally.
func ErrTaskNotFound(id string) *BoardError {
	return &BoardError{
		Code: CodeTaskNotFound,
		What: fmt.Sprintf("task %s not found", id),
		Why:  "No task with this ID exists on the board",
		Fix:  "Run 'sheetboard list' to see available tasks",
	}
}

// ErrTaskVanished returns an error when a task existed locally but the
// remote store no longer has it.
func ErrTaskVanished(id string) *BoardError {
	return &BoardError{
		Code: CodeTaskVanished,
		What: fmt.Sprintf("task %s no longer exists remotely", id),
		Why:  "Another member deleted the task while this change was in flight",
		Fix:  "The board has been refreshed; re-check 'sheetboard list' before retrying",
	}
}

// ErrBlockedByPredecessor returns an error when a status change is
// gated by an incomplete predecessor.
func ErrBlockedByPredecessor(title, blockerTitle string) *BoardError {
	return &BoardError{
		Code: CodeBlockedByPred,
		What: fmt.Sprintf("cannot move %q forward", title),
		Why:  fmt.Sprintf("Its predecessor %q is not completed yet", blockerTitle),
		Fix:  "Complete the predecessor first, or clear the link with 'sheetboard edit --after \"\"'",
	}
}

// ErrInvalidInput returns an error for a rejected field value.
func ErrInvalidInput(reason string) *BoardError {
	return &BoardError{
		Code: CodeInvalidInput,
		What: "invalid task fields",
		Why:  reason,
		Fix:  "Fix the rejected fields and retry",
	}
}

// ErrInvalidDateRange returns an error when a date shift would put the
// start date after the due date.
func ErrInvalidDateRange(title string) *BoardError {
	return &BoardError{
		Code: CodeInvalidDateRange,
		What: fmt.Sprintf("cannot shift dates of %q", title),
		Why:  "The shift would leave the start date after the due date",
		Fix:  "Use a smaller shift, or move the whole bar with --mode move",
	}
}

// ErrRemoteUnavailable returns an error when the spreadsheet service
// cannot be reached or refuses the write.
func ErrRemoteUnavailable(op string) *BoardError {
	return &BoardError{
		Code: CodeRemoteUnavailable,
		What: fmt.Sprintf("could not %s on the remote board", op),
		Why:  "The spreadsheet service did not accept the request; your change was rolled back",
		Fix:  "Check your network, then run 'sheetboard sync' and retry",
	}
}

// ErrUnauthorized returns an error when the remote rejects credentials.
func ErrUnauthorized() *BoardError {
	return &BoardError{
		Code: CodeUnauthorized,
		What: "the remote board rejected your credentials",
		Why:  "The access token is missing, expired or lacks permission",
		Fix:  "Set a valid token (see 'sheetboard sync --help') and retry",
	}
}

// ErrSheetMalformed returns an error when remote rows fail to decode.
func ErrSheetMalformed(detail string) *BoardError {
	return &BoardError{
		Code: CodeSheetMalformed,
		What: "the remote sheet contains rows this client cannot read",
		Why:  detail,
		Fix:  "Fix the malformed cells in the sheet, or update sheetboard if the sheet layout changed",
	}
}

// ErrConfigInvalid returns an error for invalid configuration.
func ErrConfigInvalid(field, reason string) *BoardError {
	return &BoardError{
		Code: CodeConfigInvalid,
		What: fmt.Sprintf("invalid configuration: %s", field),
		Why:  reason,
		Fix:  "Check ~/.sheetboard/config.yaml and fix the invalid field",
	}
}

// ErrConfigMissing returns an error for missing configuration.
func ErrConfigMissing(field string) *BoardError {
	return &BoardError{
		Code: CodeConfigMissing,
		What: fmt.Sprintf("missing required configuration: %s", field),
		Why:  "This field is required but not set in configuration",
		Fix:  fmt.Sprintf("Add '%s' to ~/.sheetboard/config.yaml or set the matching SHEETBOARD_ env var", field),
	}
}

// AsBoardError attempts to convert an error to a BoardError.
// Returns nil if the error is not a BoardError.
func AsBoardError(err error) *BoardError {
	var boardErr *BoardError
	if As(err, &boardErr) {
		return boardErr
	}
	return nil
}

// As is a convenience wrapper for errors.As.
func As(err error, target any) bool {
	return asError(err, target)
}

// asError implements errors.As behavior.
func asError(err error, target any) bool {
	if err == nil {
		return false
	}
	if boardErr, ok := err.(*BoardError); ok {
		if t, ok := target.(**BoardError); ok {
			*t = boardErr
			return true
		}
	}
	// Check unwrapped error
	if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
		return asError(unwrapper.Unwrap(), target)
	}
	return false
}

// Wrap wraps a generic error into a BoardError with unknown code.
func Wrap(err error, what string) *BoardError {
	return &BoardError{
		Code:  Code("UNKNOWN"),
		What:  what,
		Cause: err,
	}
}
