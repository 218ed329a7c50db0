package glmath

import "math"

const float64EqualityThreshold = 1e-12

func almostEqual(a, b float64) bool {
	return almostEqualWithin(a, b, float64EqualityThreshold)
}

func almostEqualWithin(a, b, threshold float64) bool {
	return math.Abs(a-b) <= threshold
}

// sameRotation compares q and p component-wise, allowing for the sign
// ambiguity between antipodal quaternions.
func sameRotation(q, p *Quaternion, threshold float64) bool {
	s := 1.0
	if q.Dot(p) < 0 {
		s = -1
	}
	return almostEqualWithin(q.W, s*p.W, threshold) &&
		almostEqualWithin(q.X, s*p.X, threshold) &&
		almostEqualWithin(q.Y, s*p.Y, threshold) &&
		almostEqualWithin(q.Z, s*p.Z, threshold)
}
