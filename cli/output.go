// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/danielhkuo/printvote/client"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitRejected     = 1 // The server refused the operation (already voted, bad credential, ...)
	ExitCommandError = 2 // Bad arguments, unreachable server, server fault
)

// ExitError represents an error with a specific exit code.
// Its message has already been written by the OutputFormatter.
type ExitError struct {
	Code    int
	Message string
	Err     error
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

// GetExitCode extracts the exit code from an error.
// Errors that are not ExitErrors come from argument parsing and map to
// ExitCommandError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the JSON envelope for --format json.
type CLIResponse struct {
	Status string    `json:"status"` // "ok" or "error"
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"` // HTTP status, when the server answered
}

// Success prints data as JSON, or calls text for human-readable output.
func (f *OutputFormatter) Success(data any, text func(w io.Writer)) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	text(f.Writer)
	return nil
}

// Fail reports err in the configured format and returns the ExitError the
// command should return. Server rejections exit with ExitRejected,
// everything else with ExitCommandError.
func (f *OutputFormatter) Fail(action string, err error) error {
	cliErr := CLIError{Code: "command_error", Message: err.Error()}
	code := ExitCommandError

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		cliErr.Message = apiErr.Message
		cliErr.Status = apiErr.StatusCode
		if apiErr.Code != "" {
			cliErr.Code = apiErr.Code
		} else {
			cliErr.Code = "http_error"
		}
		if apiErr.Rejected() {
			code = ExitRejected
		}
	}

	if f.Format == "json" {
		json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "error", Error: &cliErr})
	} else {
		fmt.Fprintf(f.Writer, "Error [%s]: %s failed: %s\n", cliErr.Code, action, cliErr.Message)
	}

	return &ExitError{Code: code, Message: action + " failed", Err: err}
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set so JSON output stays parseable.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}
