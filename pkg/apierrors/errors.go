package apierrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a request-time failure so the HTTP boundary can map it
// to a status code without inspecting error strings.
type Kind int

// Failure kinds produced by the routing and access-control layer.
const (
	// BadRequest marks malformed or missing routing headers. Caller error.
	BadRequest Kind = iota
	// NotFound marks a plant identifier that is not in the registry.
	NotFound
	// Forbidden marks an authenticated user without a grant for the plant.
	Forbidden
	// ServiceUnavailable marks an unreachable or slow central/plant database.
	ServiceUnavailable
)

var kindNames = map[Kind]string{
	BadRequest:         "bad request",
	NotFound:           "not found",
	Forbidden:          "forbidden",
	ServiceUnavailable: "service unavailable",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// HTTPStatus returns the status code this kind translates to at the boundary.
func (k Kind) HTTPStatus() int {
	switch k {
	case BadRequest:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Forbidden:
		return http.StatusForbidden
	case ServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified error carrying the operation that produced it.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a classified error with a message.
func New(kind Kind, op, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies an underlying error.
func Wrap(kind Kind, op, msg string, err error) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg, Err: err}
}

// KindOf extracts the kind from err. Unclassified errors report ok=false and
// are treated as internal at the boundary.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
