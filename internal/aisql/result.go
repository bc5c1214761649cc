package aisql

import "fmt"

// Status classifies the outcome of a single AI function invocation.
// A filtered response is not an error: the guard layer suppressed the
// output, which callers usually want to record and move past.
type Status int

const (
	StatusSuccess Status = iota
	StatusFiltered
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "Success"
	case StatusFiltered:
		return "Filtered"
	case StatusError:
		return "Error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ServiceError wraps a transport or service failure from the remote
// provider. It is never used for guard-filtered responses.
type ServiceError struct {
	Function string
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: service error: %v", e.Function, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Result holds the outcome of one invocation: a value on success, nothing
// when the guard filtered the output, or the original error. The remote
// call behind a Result happens exactly once; reading the value and reading
// the status never re-invoke it.
type Result[T any] struct {
	status    Status
	value     T
	err       error
	requestID string
}

func success[T any](requestID string, v T) Result[T] {
	return Result[T]{status: StatusSuccess, value: v, requestID: requestID}
}

func filtered[T any](requestID string) Result[T] {
	return Result[T]{status: StatusFiltered, requestID: requestID}
}

func failure[T any](requestID string, err error) Result[T] {
	return Result[T]{status: StatusError, err: err, requestID: requestID}
}

func (r Result[T]) Status() Status { return r.status }

// Value returns the success value. ok is false for filtered and failed
// results, with the zero value.
func (r Result[T]) Value() (T, bool) {
	if r.status != StatusSuccess {
		var zero T
		return zero, false
	}
	return r.value, true
}

// Err returns the preserved error for StatusError results, nil otherwise.
func (r Result[T]) Err() error { return r.err }

// RequestID identifies this invocation in logs and derived tables.
func (r Result[T]) RequestID() string { return r.requestID }

// recast converts a non-success Result to another value type, keeping the
// status, error, and request id.
func recast[T, U any](r Result[U]) Result[T] {
	switch r.Status() {
	case StatusFiltered:
		return filtered[T](r.RequestID())
	default:
		return failure[T](r.RequestID(), r.Err())
	}
}
