// Package tserr provides standardized error handling for tstruct.
// All errors have stable, machine-readable codes, structured context, and proper wrapping.
package tserr

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
)

// Code represents a stable, machine-readable error code.
// Format: E{category}{number} where category is 1-6 and number is 001-999.
type Code string

// Error codes organized by category.
const (
	// Lexical errors (E1xxx) - tokenization failures
	ErrLexInvalidByte Code = "E1001" // No matcher accepts the byte at the cursor

	// Syntactic errors (E2xxx) - parse failures
	ErrParseUnexpectedToken Code = "E2001" // Token present but not permitted here
	ErrParseEOF             Code = "E2002" // Token stream exhausted prematurely

	// Input errors (E3xxx) - problems reading source or configuration
	ErrSourceRead    Code = "E3001" // DDL source file could not be read
	ErrConfigInvalid Code = "E3002" // tstruct.yaml is malformed or invalid

	// Generation errors (E4xxx) - problems emitting output
	ErrGenWrite    Code = "E4001" // Generated output could not be written
	ErrGenTemplate Code = "E4002" // Generated source failed to format

	// SQL errors (E5xxx) - problems with database operations
	ErrSQLExecution  Code = "E5001" // SQL statement failed to execute
	ErrSQLConnection Code = "E5002" // Database connection failed

	// Cache errors (E6xxx) - problems with the local parse cache
	ErrCacheInit  Code = "E6001" // Cache initialization failed
	ErrCacheRead  Code = "E6002" // Cache read failed
	ErrCacheWrite Code = "E6003" // Cache write failed
)

// Error is the standard error type for tstruct.
// It provides structured error information with codes, context, and wrapping support.
type Error struct {
	code    Code           // Machine-readable error code
	message string         // Human-readable error message
	context map[string]any // Structured context data
	cause   error          // Wrapped underlying error
	stack   string         // Stack trace for debugging
}

// Error returns the formatted error string.
// Format:
//
//	[E1001] invalid byte in input
//	  byte: '@'
//	  position: 14
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.code, e.message))

	// Write context in sorted order for deterministic output
	if len(e.context) > 0 {
		keys := make([]string, 0, len(e.context))
		for k := range e.context {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			b.WriteString(fmt.Sprintf("\n  %s: %v", k, e.context[k]))
		}
	}

	if e.cause != nil {
		b.WriteString(fmt.Sprintf("\n  cause: %v", e.cause))
	}

	return b.String()
}

// Unwrap returns the underlying cause error for errors.Unwrap compatibility.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether the target error matches this error.
// Two *Error values match when they carry the same code.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.code == targetErr.code
	}

	return false
}

// GetCode returns the error code.
func (e *Error) GetCode() Code {
	return e.code
}

// GetMessage returns the error message.
func (e *Error) GetMessage() string {
	return e.message
}

// GetContext returns the error context map.
func (e *Error) GetContext() map[string]any {
	return e.context
}

// GetCause returns the underlying cause error.
func (e *Error) GetCause() error {
	return e.cause
}

// GetStack returns the stack trace.
func (e *Error) GetStack() string {
	return e.stack
}

// With adds a key-value pair to the error context.
// Returns the error for method chaining.
func (e *Error) With(key string, value any) *Error {
	if e.context == nil {
		e.context = make(map[string]any)
	}
	e.context[key] = value
	return e
}

// WithPos adds the byte offset in the source where the error occurred.
func (e *Error) WithPos(pos int) *Error {
	return e.With("position", pos)
}

// WithByte adds the offending input byte, rendered as a quoted character.
func (e *Error) WithByte(b byte) *Error {
	return e.With("byte", fmt.Sprintf("%q", string(b)))
}

// WithToken adds the offending token's rendering to the error.
func (e *Error) WithToken(token string) *Error {
	return e.With("token", token)
}

// WithTable adds table context to the error.
func (e *Error) WithTable(table string) *Error {
	return e.With("table", table)
}

// WithColumn adds column context to the error.
func (e *Error) WithColumn(name string) *Error {
	return e.With("column", name)
}

// WithSQL adds SQL statement context to the error.
func (e *Error) WithSQL(sql string) *Error {
	return e.With("sql", sql)
}

// WithFile adds file location context to the error.
func (e *Error) WithFile(path string) *Error {
	return e.With("file", path)
}

// WithSource adds the source text for display in error messages.
func (e *Error) WithSource(source string) *Error {
	return e.With("source", source)
}

// WithSpan adds the span (start, end byte offsets) for highlighting in error messages.
func (e *Error) WithSpan(start, end int) *Error {
	e.With("span_start", start)
	e.With("span_end", end)
	return e
}

// WithNote adds a note to the error (displayed as "note: ...").
func (e *Error) WithNote(note string) *Error {
	notes, _ := e.context["notes"].([]string)
	notes = append(notes, note)
	return e.With("notes", notes)
}

// WithHelp adds a help suggestion to the error (displayed as "help: ...").
func (e *Error) WithHelp(help string) *Error {
	helps, _ := e.context["helps"].([]string)
	helps = append(helps, help)
	return e.With("helps", helps)
}

// Pos returns the source position if set.
func (e *Error) Pos() (pos int, ok bool) {
	pos, ok = e.context["position"].(int)
	return
}

// Span returns the highlight span if set.
func (e *Error) Span() (start, end int, ok bool) {
	start, _ = e.context["span_start"].(int)
	end, ok = e.context["span_end"].(int)
	return
}

// Source returns the source text if set.
func (e *Error) Source() (string, bool) {
	src, ok := e.context["source"].(string)
	return src, ok
}

// Notes returns all notes attached to this error.
func (e *Error) Notes() []string {
	notes, _ := e.context["notes"].([]string)
	return notes
}

// Helps returns all help suggestions attached to this error.
func (e *Error) Helps() []string {
	helps, _ := e.context["helps"].([]string)
	return helps
}

// captureStack captures a stack trace for debugging.
func captureStack(skip int) string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(skip, pcs[:])
	if n == 0 {
		return ""
	}

	var b strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		// Skip runtime internals
		if strings.Contains(frame.File, "runtime/") {
			if !more {
				break
			}
			continue
		}
		b.WriteString(fmt.Sprintf("%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line))
		if !more {
			break
		}
	}
	return b.String()
}

// New creates a new Error with the given code and message.
func New(code Code, msg string) *Error {
	return &Error{
		code:    code,
		message: msg,
		context: make(map[string]any),
		stack:   captureStack(3),
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		code:    code,
		message: fmt.Sprintf(format, args...),
		context: make(map[string]any),
		stack:   captureStack(3),
	}
}

// Wrap creates a new Error that wraps an existing error.
func Wrap(code Code, err error, msg string) *Error {
	if err == nil {
		return New(code, msg)
	}
	return &Error{
		code:    code,
		message: msg,
		context: make(map[string]any),
		cause:   err,
		stack:   captureStack(3),
	}
}

// Wrapf creates a new Error that wraps an existing error with a formatted message.
func Wrapf(code Code, err error, format string, args ...any) *Error {
	return Wrap(code, err, fmt.Sprintf(format, args...))
}

// GetErrorCode extracts the error code from an error chain.
// Returns empty string if no code is found.
func GetErrorCode(err error) Code {
	if err == nil {
		return ""
	}

	var tserr *Error
	if errors.As(err, &tserr) {
		return tserr.code
	}

	return ""
}

// Is checks if an error has the specified code.
func Is(err error, code Code) bool {
	return GetErrorCode(err) == code
}

// HasCode checks if an error has any error code.
func HasCode(err error) bool {
	return GetErrorCode(err) != ""
}
