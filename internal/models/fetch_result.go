package models

// FetchResult holds either a value or the error that prevented obtaining it.
// A result with a non-nil Err is a failure; Value must then be ignored.
type FetchResult[T any] struct {
	Value T
	Err   error
}

// Success wraps v in a successful FetchResult.
func Success[T any](v T) FetchResult[T] {
	return FetchResult[T]{Value: v}
}

// Failure wraps err in a failed FetchResult.
func Failure[T any](err error) FetchResult[T] {
	return FetchResult[T]{Err: err}
}

// IsSuccess reports whether the result carries a value.
func (r FetchResult[T]) IsSuccess() bool {
	return r.Err == nil
}

// Unwrap returns the value and error as a Go pair.
func (r FetchResult[T]) Unwrap() (T, error) {
	if r.Err != nil {
		var zero T
		return zero, r.Err
	}
	return r.Value, nil
}
