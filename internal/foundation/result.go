// Package foundation provides generic utilities for type-safe operations.
package foundation

// Result represents an operation that either succeeded with value T or failed with error E.
// Callers branch on it explicitly; there is no panicking unwrap.
type Result[T any, E error] struct {
	value T
	err   E
	isOk  bool
}

// Ok creates a successful Result with the given value.
func Ok[T any, E error](value T) Result[T, E] {
	return Result[T, E]{
		value: value,
		isOk:  true,
	}
}

// Err creates a failed Result with the given error.
func Err[T any, E error](err E) Result[T, E] {
	return Result[T, E]{
		err:  err,
		isOk: false,
	}
}

// IsOk returns true if the Result represents a successful operation.
func (r Result[T, E]) IsOk() bool {
	return r.isOk
}

// Value returns the value and true if Ok, the zero value and false otherwise.
func (r Result[T, E]) Value() (T, bool) {
	if r.isOk {
		return r.value, true
	}
	var zero T
	return zero, false
}

// Error returns the error and true if Err, the zero error and false otherwise.
func (r Result[T, E]) Error() (E, bool) {
	if r.isOk {
		var zero E
		return zero, false
	}
	return r.err, true
}

// Match executes onOk if successful, onErr if failed.
func (r Result[T, E]) Match(onOk func(T), onErr func(E)) {
	if r.isOk {
		onOk(r.value)
	} else {
		onErr(r.err)
	}
}

// ToTuple converts Result to the traditional Go (value, error) pattern.
// The error is returned as the error interface so a failed Result never
// produces a typed nil.
func (r Result[T, E]) ToTuple() (T, error) {
	if r.isOk {
		return r.value, nil
	}
	var zeroVal T
	return zeroVal, r.err
}

// Fold collapses per-item results into a single all-or-nothing Result.
// If every item is Ok the values are returned in order. If any item failed,
// every failure is handed to combine and the successful values are discarded.
func Fold[T any, E error](items []Result[T, error], combine func([]error) E) Result[[]T, E] {
	values := make([]T, 0, len(items))
	var errs []error
	for _, item := range items {
		if item.isOk {
			values = append(values, item.value)
			continue
		}
		errs = append(errs, item.err)
	}
	if len(errs) > 0 {
		return Err[[]T, E](combine(errs))
	}
	return Ok[[]T, E](values)
}
