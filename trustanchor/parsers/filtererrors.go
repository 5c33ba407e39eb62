package parsers

import (
	"context"
	"errors"
)

// NoErrorLimit can be used to continue parsing until EOF.
const NoErrorLimit = -1

var ErrTooManyErrors = errors.New("too many parse errors")

type FilteredSeriesParser[T any] interface {
	SeriesParser[T]

	// OnErr registers a callback invoked for each filtered error.
	// The error passed to the callback includes the parser position.
	OnErr(func(error))
}

// FilterErrors returns a parser that wraps `inner` and consults `filter`
// for each resumable error: a nil result skips the item and continues,
// a non-nil result stops parsing with that error.
func FilterErrors[T any](inner SeriesParser[T], filter func(error) error) FilteredSeriesParser[T] {
	return &errorFilter[T]{inner: inner, filter: filter}
}

// AllowErrors returns a parser that wraps `inner` and skips up to `n`
// erroneous items before giving up with ErrTooManyErrors.
func AllowErrors[T any](inner SeriesParser[T], n int) FilteredSeriesParser[T] {
	if n == NoErrorLimit {
		return FilterErrors(inner, func(error) error { return nil })
	}

	count := 0

	return FilterErrors(inner, func(err error) error {
		count++

		if count > n {
			return ErrTooManyErrors
		}

		return nil
	})
}

type errorFilter[T any] struct {
	inner    SeriesParser[T]
	filter   func(error) error
	callback func(error)
}

func (f *errorFilter[T]) OnErr(callback func(error)) {
	f.callback = callback
}

func (f *errorFilter[T]) Position() string {
	return f.inner.Position()
}

func (f *errorFilter[T]) Next(ctx context.Context) (T, error) {
	var zero T

	for {
		res, err := f.inner.Next(ctx)
		if err == nil {
			return res, nil
		}

		if IsNonResumableErr(err) {
			// bypass the filter, and just propagate the error
			return zero, err
		}

		if f.callback != nil {
			f.callback(ErrWithPosition(f.inner, err))
		}

		if err := f.filter(err); err != nil {
			return zero, err
		}
	}
}
