// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package errors provides structured error handling for the ctx-agent CLI.
//
// This package defines UserError, a type that carries structured error information
// including what went wrong, why it happened, and how to fix it. It also defines
// the exit codes and error kinds for the command surface's error taxonomy.
//
// # Usage Example
//
// Creating and displaying errors:
//
//	err := errors.NewStoreIOError(
//	 "Cannot open the project store",
//	 "The database file is locked by another process",
//	 "Close other ctx-agent instances and retry",
//	 underlyingErr,
//	)
//	if err != nil {
//	 errors.FatalError(err, false)
//	}
//
// # Formatted Output
//
// The Format() method provides colored terminal output:
//
//	fmt.Fprint(os.Stderr, err.Format(false))
//	// Output (with colors):
//	// Error: Cannot open the project store
//	// Cause: The database file is locked by another process
//	// Fix: Close other ctx-agent instances and retry
//
// For JSON output:
//
//	jsonData := err.ToJSON()
//	json.NewEncoder(os.Stderr).Encode(jsonData)
package errors

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Exit codes for the command surface.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitNotInitialized indicates a command other than init was run without a store.
	ExitNotInitialized = 1

	// ExitWrongProject indicates the store's recorded canonical root differs from
	// the current root.
	ExitWrongProject = 2

	// ExitStoreIO indicates a database open, migrate, or query failure.
	ExitStoreIO = 3

	// ExitScanIO indicates the walker encountered an error at the project root.
	ExitScanIO = 4

	// ExitInvalidPattern indicates a grep regex failed to compile.
	ExitInvalidPattern = 5

	// ExitInternal indicates an unexpected internal error.
	ExitInternal = 10
)

// Kind identifies which branch of the error taxonomy an error belongs to.
type Kind string

const (
	KindNotInitialized Kind = "not_initialized"
	KindWrongProject Kind = "wrong_project"
	KindStoreIO Kind = "store_io"
	KindScanIO Kind = "scan_io"
	KindInvalidPattern Kind = "invalid_pattern"
	KindNotAGitRepo Kind = "not_a_git_repo"
	KindInternal Kind = "internal"
)

// UserError represents an error with structured context for end users.
//
// It provides three levels of information:
// - Message: What went wrong (user-facing error description)
// - Cause: Why it happened (diagnostic information)
// - Fix: How to fix it (actionable suggestion)
//
// UserError also carries a Kind (the error taxonomy branch), an exit code
// for consistent CLI exit behavior, and optionally wraps an underlying
// error for error chain compatibility.
type UserError struct {
	Kind Kind
	Message string
	Cause string
	Fix string
	ExitCode int
	Err error
}

// Error implements the error interface.
func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements error unwrapping for compatibility with errors.Is/As.
func (e *UserError) Unwrap() error {
	return e.Err
}

// NewNotInitializedError creates the error for running a non-init command
// against a project with no store.
func NewNotInitializedError(projectRoot string) *UserError {
	return &UserError{
		Kind: KindNotInitialized,
		Message: "Project is not initialized",
		Cause: fmt.Sprintf("No store found under %s", projectRoot),
		Fix: "Run: ctx init",
		ExitCode: ExitNotInitialized,
	}
}

// NewWrongProjectError creates the error for a store whose recorded canonical
// root differs from the current root.
func NewWrongProjectError(boundRoot, currentRoot string) *UserError {
	return &UserError{
		Kind: KindWrongProject,
		Message: "Store is bound to a different project",
		Cause: fmt.Sprintf("Store root is %q, current root is %q",
			boundRoot, currentRoot),
		Fix: "Run ctx-agent from the original project root, or remove.ctx/ to rebind",
		ExitCode: ExitWrongProject,
	}
}

// NewStoreIOError creates a database open/migrate/query failure error.
func NewStoreIOError(msg, cause, fix string, err error) *UserError {
	return &UserError{
		Kind: KindStoreIO,
		Message: msg,
		Cause: cause,
		Fix: fix,
		ExitCode: ExitStoreIO,
		Err: err,
	}
}

// NewScanIOError creates an error for a walker failure at the project root.
func NewScanIOError(msg, cause, fix string, err error) *UserError {
	return &UserError{
		Kind: KindScanIO,
		Message: msg,
		Cause: cause,
		Fix: fix,
		ExitCode: ExitScanIO,
		Err: err,
	}
}

// NewInvalidPatternError creates an error for a grep pattern that failed to compile.
func NewInvalidPatternError(pattern string, err error) *UserError {
	return &UserError{
		Kind: KindInvalidPattern,
		Message: "Invalid grep pattern",
		Cause: fmt.Sprintf("Pattern %q did not compile: %v", pattern, err),
		Fix: "Check the regular expression syntax",
		ExitCode: ExitInvalidPattern,
		Err: err,
	}
}

// NewInternalError creates an error for unexpected internal failures.
func NewInternalError(msg, cause string, err error) *UserError {
	return &UserError{
		Kind: KindInternal,
		Message: msg,
		Cause: cause,
		Fix: "This is a bug; please report it",
		ExitCode: ExitInternal,
		Err: err,
	}
}

// Color definitions for error formatting.
var (
	colorError = color.New(color.FgRed, color.Bold)
	colorCause = color.New(color.FgYellow)
	colorFix = color.New(color.FgGreen)
)

// Format returns a formatted error message for terminal display.
//
// Empty Cause or Fix fields are omitted from the output. Color output
// respects NO_COLOR and the noColor parameter.
func (e *UserError) Format(noColor bool) string {
	originalNoColor := color.NoColor
	defer func() { color.NoColor = originalNoColor }()

	if noColor || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	var out strings.Builder
	out.WriteString(colorError.Sprint("Error: "))
	out.WriteString(e.Message)
	out.WriteString("\n")

	if e.Cause != "" {
		out.WriteString(colorCause.Sprint("Cause: "))
		out.WriteString(e.Cause)
		out.WriteString("\n")
	}

	if e.Fix != "" {
		out.WriteString(colorFix.Sprint("Fix: "))
		out.WriteString(e.Fix)
		out.WriteString("\n")
	}

	return out.String()
}

// ErrorJSON represents error information in JSON format for --json mode.
type ErrorJSON struct {
	Error string `json:"error"`
	Kind Kind `json:"kind,omitempty"`
	Cause string `json:"cause,omitempty"`
	Fix string `json:"fix,omitempty"`
	ExitCode int `json:"exit_code"`
}

// ToJSON converts the UserError to a JSON-serializable structure.
func (e *UserError) ToJSON() ErrorJSON {
	return ErrorJSON{
		Error: e.Message,
		Kind: e.Kind,
		Cause: e.Cause,
		Fix: e.Fix,
		ExitCode: e.ExitCode,
	}
}

// FatalError prints the error and exits with the appropriate code.
//
// If the error is a UserError, it uses Format() for colored output or
// ToJSON() for JSON mode. For non-UserError types, it prints a simple
// error message and exits with ExitInternal. Machine mode emits an object
// with a top-level "error" string and no partial result fields.
func FatalError(err error, jsonOutput bool) {
	if err == nil {
		return
	}

	if ue, ok := err.(*UserError); ok {
		if jsonOutput {
			enc := json.NewEncoder(os.Stderr)
			enc.SetIndent("", " ")
			_ = enc.Encode(ue.ToJSON())
		} else {
			fmt.Fprint(os.Stderr, ue.Format(false))
		}
		os.Exit(ue.ExitCode)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(ExitInternal)
}
