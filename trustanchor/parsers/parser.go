// Package parsers implements tolerant parsing of line oriented
// configuration sources.
//
// A parse failure on one item does not invalidate the rest of the
// series: callers decide, via FilterErrors or AllowErrors, whether to
// skip the item or stop.
package parsers

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// SeriesParser parses a series of `T`.
type SeriesParser[T any] interface {
	// Next advances the cursor in the underlying data source,
	// and returns a `T`, or an error.
	//
	// Fatal errors, after which no more calls to `Next` should be
	// made, are of type `NonResumableError`. Other errors apply
	// only to the item being parsed, and have no impact on the
	// rest of the series.
	Next(context.Context) (T, error)

	// Position returns a human readable indication of where in the
	// underlying data source the cursor currently is.
	Position() string
}

// ForEach consumes parser, invoking callback for each parsed item.
//
// Iteration stops at the first error. `io.EOF` is mapped to `nil`;
// any other error is returned wrapped with the parser's position.
//
// To keep iterating over resumable errors, wrap the parser with
// `AllowErrors` or `FilterErrors`.
func ForEach[T any](ctx context.Context, parser SeriesParser[T], callback func(T) error) (rerr error) {
	defer func() {
		rerr = ErrWithPosition(parser, rerr)
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		res, err := parser.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			return err
		}

		if err := callback(res); err != nil {
			return err
		}
	}
}

// ErrWithPosition adds the parser's position to the given error.
func ErrWithPosition[T any](parser SeriesParser[T], err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s: %w", parser.Position(), err)
}

// IsNonResumableErr reports whether err means the parser must not be used anymore.
func IsNonResumableErr(err error) bool {
	var nonResumableError *NonResumableError

	return errors.As(err, &nonResumableError)
}

// NonResumableError represents an error from which a parser cannot recover.
type NonResumableError struct {
	inner error
}

// NewNonResumableError creates and returns a new `NonResumableError`.
func NewNonResumableError(inner error) error {
	return &NonResumableError{inner}
}

func (e *NonResumableError) Error() string {
	return fmt.Sprintf("non resumable parse error: %s", e.inner.Error())
}

func (e *NonResumableError) Unwrap() error {
	return e.inner
}
