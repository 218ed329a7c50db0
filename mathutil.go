package glmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	PI     = math.Pi
	TwoPI  = 2 * math.Pi
	HalfPI = math.Pi / 2

	// LUTPrecision is the number of entries in the sine lookup table.
	LUTPrecision = 0x020000

	lutModulus = LUTPrecision - 1
	radToIndex = LUTPrecision / TwoPI
)

var sinTable = buildSinTable()

func buildSinTable() [LUTPrecision]float64 {
	var t [LUTPrecision]float64
	for i := range t {
		t[i] = math.Sin(float64(i) * TwoPI / LUTPrecision)
	}
	return t
}

func sinLookup(index int) float64 {
	index &= lutModulus
	return sinTable[index]
}

// Sin is a table driven sine. It trades precision for speed; use math.Sin
// where accuracy matters.
func Sin(rad float64) float64 {
	return sinLookup(int(rad * radToIndex))
}

// Cos is the table driven counterpart of Sin.
func Cos(rad float64) float64 {
	return sinLookup(int(rad*radToIndex) + LUTPrecision/4)
}

func Tan(rad float64) float64 {
	return Sin(rad) / Cos(rad)
}

func DegreesToRadians(deg float64) float64 {
	return mgl64.DegToRad(deg)
}

func RadiansToDegrees(rad float64) float64 {
	return mgl64.RadToDeg(rad)
}

func Clamp(value, lo, hi float64) float64 {
	return mgl64.Clamp(value, lo, hi)
}

// RealEqual reports whether a and b differ by no more than tolerance.
func RealEqual(a, b, tolerance float64) bool {
	return math.Abs(b-a) <= tolerance
}
