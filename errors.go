package glmath

import "errors"

var (
	// ErrInsufficientComponents is returned when a vector is built from fewer than 3 values.
	ErrInsufficientComponents = errors.New("glmath: need at least 3 components")

	// ErrSingularMatrix is returned when inverting a matrix with a zero determinant.
	ErrSingularMatrix = errors.New("glmath: matrix is singular")

	ErrAxesNotOrthogonal = errors.New("glmath: axes are not orthogonal")
)
