package glmath

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// ConvertDoublesToFloats narrows a flat matrix to float32 for GPU upload.
func ConvertDoublesToFloats(in [16]float64) [16]float32 {
	var out [16]float32
	for i, v := range in {
		out[i] = float32(v)
	}
	return out
}

func ConvertFloatsToDoubles(in [16]float32) [16]float64 {
	var out [16]float64
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

// ArrayEqualWithin compares two slices element by element with an absolute tolerance.
func ArrayEqualWithin(a, b []float64, tolerance float64) bool {
	return floats.EqualFunc(a, b, func(x, y float64) bool {
		return scalar.EqualWithinAbs(x, y, tolerance)
	})
}
