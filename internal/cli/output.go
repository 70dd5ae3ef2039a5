package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Workflow failure (invalid event, empty dataset, bad query)
	ExitCommandError = 2 // Command error (missing artifacts, unreachable data service)
)

// Error codes reported in JSON output.
const (
	ErrCodeGeneric    = "E001" // Generic/unknown error
	ErrCodeConfig     = "E002" // Config load or validation error
	ErrCodeFetch      = "E101" // Observation fetch failed
	ErrCodeArtifact   = "E102" // Required workspace artifact missing
	ErrCodeEvent      = "E201" // Invalid event description
	ErrCodeDataset    = "E202" // Dataset build or read failed
	ErrCodeProvenance = "E301" // Provenance build or persist failed
	ErrCodeQuery      = "E401" // Query parse, validation, or execution failed
)

// ExitError represents an error with a specific exit code and a stable
// error code for JSON consumers.
type ExitError struct {
	Code    int    // Exit code (ExitFailure or ExitCommandError)
	ErrCode string // Stable error code ("E101", ...)
	Message string
	Err     error // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given exit code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, ErrCode: ErrCodeGeneric, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, ErrCode: ErrCodeGeneric, Message: message, Err: err}
}

// WrapCoded wraps an error with both an exit code and a stable error code.
func WrapCoded(code int, errCode, message string, err error) *ExitError {
	return &ExitError{Code: code, ErrCode: errCode, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error. Returns ExitFailure
// for plain errors.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// CLIResponse is the standard JSON envelope for command output.
type CLIResponse struct {
	Status string    `json:"status"` // "ok" or "error"
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

// CLIError is the error structure for JSON responses.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON emits a success envelope.
func writeJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(CLIResponse{Status: "ok", Data: data})
}

// WriteErrorResponse emits an error in the configured format. Used by
// main after a command fails so JSON consumers get an envelope rather
// than free text.
func WriteErrorResponse(w io.Writer, format string, err error) {
	if format != "json" {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	code := ErrCodeGeneric
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.ErrCode != "" {
		code = exitErr.ErrCode
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(CLIResponse{Status: "error", Error: &CLIError{Code: code, Message: err.Error()}})
}
