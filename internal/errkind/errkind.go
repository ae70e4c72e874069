// Package errkind classifies core errors into the small taxonomy callers
// use to decide whether an operation is retryable, fatal, or caller-decided.
package errkind

import "errors"

// Kind is one of the error categories from the core error taxonomy.
type Kind string

const (
	Parse             Kind = "parse"
	SchemaValidation  Kind = "schema-validation"
	Invariant         Kind = "invariant"
	NotFound          Kind = "not-found"
	AlreadyExists     Kind = "already-exists"
	IO                Kind = "io"
	Catalog           Kind = "catalog"
	Config            Kind = "config"
	Cancelled         Kind = "cancelled"
)

// Error wraps an underlying error with a Kind, a subsystem-stable message,
// and an optional structured payload (file, line, column, entity id).
type Error struct {
	Kind     Kind
	Message  string
	Path     string
	Line     int
	Column   int
	EntityID string
	Err      error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is allows errors.Is(err, errkind.Parse) style classification by kind.
func (e *Error) Is(target error) bool {
	var k *kindSentinel
	if errors.As(target, &k) {
		return e.Kind == k.kind
	}
	return false
}

// kindSentinel is a sentinel wrapper so callers can write
// errors.Is(err, errkind.Sentinel(errkind.NotFound)).
type kindSentinel struct{ kind Kind }

func (k *kindSentinel) Error() string { return string(k.kind) }

// Sentinel returns a comparable sentinel error for the given kind, for use
// with errors.Is against values produced by New/Wrap.
func Sentinel(k Kind) error { return &kindSentinel{kind: k} }

// New constructs an *Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a kind to an existing error without losing it (via Unwrap).
func Wrap(kind Kind, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// WithLocation attaches a structured source location to an *Error, returning
// the same error for chaining.
func (e *Error) WithLocation(path string, line, column int) *Error {
	e.Path = path
	e.Line = line
	e.Column = column
	return e
}

// WithEntity attaches the owning entity id to an *Error.
func (e *Error) WithEntity(id string) *Error {
	e.EntityID = id
	return e
}

// KindOf extracts the Kind from err, returning ok=false if err (or a wrapped
// cause) is not an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
