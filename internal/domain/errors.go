package domain

import "errors"

var (
	// ErrInvalidInput reports a non-finite number or an unknown option passed
	// to a converter.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidMetric reports a unit system other than metric or imperial.
	ErrInvalidMetric = errors.New("invalid metric")
)
