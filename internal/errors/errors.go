// Package errors provides a lightweight structured error type (SiteError)
// for classifying build diagnostics and deciding, run-wide, whether they
// warn or abort.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a build diagnostic.
type Kind string

const (
	// KindMissingIndex: no index.dj/index.djot/index.md at the source root.
	KindMissingIndex Kind = "missing_index"
	// KindPathNotUnderRoot: a walked entry could not be expressed relative to
	// the source root.
	KindPathNotUnderRoot Kind = "path_not_under_root"
	// KindWalkEntry: the filesystem walk failed to yield an entry.
	KindWalkEntry Kind = "walk_entry"
	// KindDanglingLink: a rewritten link target does not exist on disk.
	KindDanglingLink Kind = "dangling_link"
)

// Severity indicates how critical a diagnostic is.
type Severity string

const (
	SeverityFatal   Severity = "fatal"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// SiteError is a structured build diagnostic with kind, severity and an
// optional offending path.
type SiteError struct {
	Kind     Kind
	Severity Severity
	Message  string
	Path     string
	Cause    error
}

// Error implements the error interface.
func (e *SiteError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Kind, e.Severity, msg, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Severity, msg)
}

// Unwrap supports errors.Is/errors.As chains.
func (e *SiteError) Unwrap() error {
	return e.Cause
}

// New creates a new SiteError.
func New(kind Kind, severity Severity, message string) *SiteError {
	return &SiteError{Kind: kind, Severity: severity, Message: message}
}

// Wrap creates a new SiteError that wraps an existing error.
func Wrap(err error, kind Kind, severity Severity, message string) *SiteError {
	return &SiteError{Kind: kind, Severity: severity, Message: message, Cause: err}
}

// WithPath attaches the offending path to the error.
func (e *SiteError) WithPath(path string) *SiteError {
	e.Path = path
	return e
}

// IsKind checks whether err (or anything it wraps) is a SiteError of the
// given kind.
func IsKind(err error, kind Kind) bool {
	var se *SiteError
	if errors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}

// GetKind extracts the kind from an error, or "" for non-SiteErrors.
func GetKind(err error) Kind {
	var se *SiteError
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

// MissingIndex constructs the missing-index diagnostic.
func MissingIndex(root string) *SiteError {
	return &SiteError{
		Kind:     KindMissingIndex,
		Severity: SeverityWarning,
		Message:  "no index.dj, index.djot or index.md found; consider creating one as the default page",
		Path:     root,
	}
}

// PathNotUnderRoot constructs the traversal-inconsistency diagnostic.
func PathNotUnderRoot(path string) *SiteError {
	return &SiteError{
		Kind:     KindPathNotUnderRoot,
		Severity: SeverityWarning,
		Message:  "entry is not relative to the source root",
		Path:     path,
	}
}

// WalkEntry constructs the traversal-entry diagnostic.
func WalkEntry(path string, cause error) *SiteError {
	return &SiteError{
		Kind:     KindWalkEntry,
		Severity: SeverityWarning,
		Message:  "could not read entry",
		Path:     path,
		Cause:    cause,
	}
}

// DanglingLink constructs the dangling cross-document link diagnostic.
func DanglingLink(target string) *SiteError {
	return &SiteError{
		Kind:     KindDanglingLink,
		Severity: SeverityWarning,
		Message:  "referenced document does not exist",
		Path:     target,
	}
}
