package glmath

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Axis selects one of the three cardinal axes.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

// Vector3 is a 3 component double precision vector. Most methods mutate
// the receiver and return it so calls can be chained; the AndCreate
// functions leave their arguments alone and return a new vector.
type Vector3 struct {
	X float64
	Y float64
	Z float64
}

func NewVector3(x, y, z float64) *Vector3 {
	return &Vector3{X: x, Y: y, Z: z}
}

// NewVector3Scalar sets all three components to s.
func NewVector3Scalar(s float64) *Vector3 {
	return &Vector3{X: s, Y: s, Z: s}
}

func NewVector3From(v *Vector3) *Vector3 {
	return &Vector3{X: v.X, Y: v.Y, Z: v.Z}
}

// NewVector3FromSlice reads the first three values of values.
func NewVector3FromSlice(values []float64) (*Vector3, error) {
	if len(values) < 3 {
		return nil, fmt.Errorf("vector from %d values: %w", len(values), ErrInsufficientComponents)
	}
	return &Vector3{X: values[0], Y: values[1], Z: values[2]}, nil
}

// NewVector3FromStrings parses the first three strings as floats.
func NewVector3FromStrings(values []string) (*Vector3, error) {
	if len(values) < 3 {
		return nil, fmt.Errorf("vector from %d strings: %w", len(values), ErrInsufficientComponents)
	}
	var c [3]float64
	for i := range c {
		f, err := strconv.ParseFloat(strings.TrimSpace(values[i]), 64)
		if err != nil {
			return nil, fmt.Errorf("could not parse component %d %q: %w", i, values[i], err)
		}
		c[i] = f
	}
	return &Vector3{X: c[0], Y: c[1], Z: c[2]}, nil
}

func Zero() *Vector3     { return &Vector3{} }
func One() *Vector3      { return &Vector3{X: 1, Y: 1, Z: 1} }
func UnitX() *Vector3    { return &Vector3{X: 1} }
func UnitY() *Vector3    { return &Vector3{Y: 1} }
func UnitZ() *Vector3    { return &Vector3{Z: 1} }
func NegUnitX() *Vector3 { return &Vector3{X: -1} }
func NegUnitY() *Vector3 { return &Vector3{Y: -1} }
func NegUnitZ() *Vector3 { return &Vector3{Z: -1} }

// AxisVector returns the unit vector along axis.
func AxisVector(axis Axis) *Vector3 {
	return new(Vector3).SetAxis(axis)
}

func (v *Vector3) SetAll(x, y, z float64) *Vector3 {
	v.X = x
	v.Y = y
	v.Z = z
	return v
}

func (v *Vector3) SetAllFrom(other *Vector3) *Vector3 {
	return v.SetAll(other.X, other.Y, other.Z)
}

func (v *Vector3) SetAxis(axis Axis) *Vector3 {
	switch axis {
	case X:
		return v.SetAll(1, 0, 0)
	case Y:
		return v.SetAll(0, 1, 0)
	default:
		return v.SetAll(0, 0, 1)
	}
}

// --- Addition ---

func (v *Vector3) Add(u *Vector3) *Vector3 {
	v.X += u.X
	v.Y += u.Y
	v.Z += u.Z
	return v
}

func (v *Vector3) AddXYZ(x, y, z float64) *Vector3 {
	v.X += x
	v.Y += y
	v.Z += z
	return v
}

func (v *Vector3) AddScalar(s float64) *Vector3 {
	return v.AddXYZ(s, s, s)
}

// AddAndSet stores a + b in v.
func (v *Vector3) AddAndSet(a, b *Vector3) *Vector3 {
	return v.SetAll(a.X+b.X, a.Y+b.Y, a.Z+b.Z)
}

func AddAndCreate(a, b *Vector3) *Vector3 {
	return &Vector3{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z}
}

// --- Subtraction ---

func (v *Vector3) Subtract(u *Vector3) *Vector3 {
	v.X -= u.X
	v.Y -= u.Y
	v.Z -= u.Z
	return v
}

func (v *Vector3) SubtractXYZ(x, y, z float64) *Vector3 {
	v.X -= x
	v.Y -= y
	v.Z -= z
	return v
}

func (v *Vector3) SubtractScalar(s float64) *Vector3 {
	return v.SubtractXYZ(s, s, s)
}

// SubtractAndSet stores a - b in v.
func (v *Vector3) SubtractAndSet(a, b *Vector3) *Vector3 {
	return v.SetAll(a.X-b.X, a.Y-b.Y, a.Z-b.Z)
}

func SubtractAndCreate(a, b *Vector3) *Vector3 {
	return &Vector3{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
}

// --- Multiplication ---

// Multiply multiplies component-wise.
func (v *Vector3) Multiply(u *Vector3) *Vector3 {
	v.X *= u.X
	v.Y *= u.Y
	v.Z *= u.Z
	return v
}

func (v *Vector3) MultiplyXYZ(x, y, z float64) *Vector3 {
	v.X *= x
	v.Y *= y
	v.Z *= z
	return v
}

func (v *Vector3) MultiplyScalar(s float64) *Vector3 {
	return v.MultiplyXYZ(s, s, s)
}

func (v *Vector3) MultiplyAndSet(a, b *Vector3) *Vector3 {
	return v.SetAll(a.X*b.X, a.Y*b.Y, a.Z*b.Z)
}

// ScaleAndSet stores a * s in v.
func (v *Vector3) ScaleAndSet(a *Vector3, s float64) *Vector3 {
	return v.SetAll(a.X*s, a.Y*s, a.Z*s)
}

func MultiplyAndCreate(a, b *Vector3) *Vector3 {
	return &Vector3{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z}
}

func ScaleAndCreate(a *Vector3, s float64) *Vector3 {
	return &Vector3{X: a.X * s, Y: a.Y * s, Z: a.Z * s}
}

// MultiplyMatrix transforms v as a point by the affine part of m; the
// bottom row of m is ignored.
func (v *Vector3) MultiplyMatrix(m *Matrix4) *Vector3 {
	return v.MultiplyArray(&m.m)
}

// MultiplyArray is MultiplyMatrix over a raw column-major array.
func (v *Vector3) MultiplyArray(m *[16]float64) *Vector3 {
	vx, vy, vz := v.X, v.Y, v.Z
	v.X = vx*m[M00] + vy*m[M01] + vz*m[M02] + m[M03]
	v.Y = vx*m[M10] + vy*m[M11] + vz*m[M12] + m[M13]
	v.Z = vx*m[M20] + vy*m[M21] + vz*m[M22] + m[M23]
	return v
}

// --- Division ---

func (v *Vector3) Divide(u *Vector3) *Vector3 {
	v.X /= u.X
	v.Y /= u.Y
	v.Z /= u.Z
	return v
}

func (v *Vector3) DivideXYZ(x, y, z float64) *Vector3 {
	v.X /= x
	v.Y /= y
	v.Z /= z
	return v
}

func (v *Vector3) DivideScalar(s float64) *Vector3 {
	return v.DivideXYZ(s, s, s)
}

// --- Sign and magnitude ---

// Negate flips the sign of every component.
func (v *Vector3) Negate() *Vector3 {
	v.X = -v.X
	v.Y = -v.Y
	v.Z = -v.Z
	return v
}

func NegateAndCreate(v *Vector3) *Vector3 {
	return &Vector3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

func (v *Vector3) Absolute() *Vector3 {
	v.X = math.Abs(v.X)
	v.Y = math.Abs(v.Y)
	v.Z = math.Abs(v.Z)
	return v
}

func (v *Vector3) Length() float64 {
	return math.Sqrt(v.Length2())
}

// Length2 is the squared length.
func (v *Vector3) Length2() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v *Vector3) DistanceTo(u *Vector3) float64 {
	return math.Sqrt(v.DistanceTo2(u))
}

func (v *Vector3) DistanceTo2(u *Vector3) float64 {
	dx := v.X - u.X
	dy := v.Y - u.Y
	dz := v.Z - u.Z
	return dx*dx + dy*dy + dz*dz
}

// Normalize scales v to unit length and returns the length it had before.
// A vector whose length is exactly 0 or exactly 1 is left untouched.
func (v *Vector3) Normalize() float64 {
	mag := v.Length()
	if mag != 0 && mag != 1 {
		v.X /= mag
		v.Y /= mag
		v.Z /= mag
	}
	return mag
}

// IsUnit reports whether v has unit length within 1e-8.
func (v *Vector3) IsUnit() bool {
	return v.IsUnitWithin(1e-8)
}

func (v *Vector3) IsUnitWithin(margin float64) bool {
	return math.Abs(v.Length2()-1) < margin*margin
}

// IsZero is an exact test; see IsZeroWithin for a tolerant one.
func (v *Vector3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

func (v *Vector3) IsZeroWithin(margin float64) bool {
	return v.Length2() < margin*margin
}

// --- Products ---

func (v *Vector3) Dot(u *Vector3) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

func (v *Vector3) DotXYZ(x, y, z float64) float64 {
	return v.X*x + v.Y*y + v.Z*z
}

// Cross replaces v with v × u.
func (v *Vector3) Cross(u *Vector3) *Vector3 {
	return v.CrossXYZ(u.X, u.Y, u.Z)
}

func (v *Vector3) CrossXYZ(x, y, z float64) *Vector3 {
	t := *v
	v.X = t.Y*z - t.Z*y
	v.Y = t.Z*x - t.X*z
	v.Z = t.X*y - t.Y*x
	return v
}

// CrossAndSet stores a × b in v. v may alias a or b.
func (v *Vector3) CrossAndSet(a, b *Vector3) *Vector3 {
	return v.SetAll(
		a.Y*b.Z-a.Z*b.Y,
		a.Z*b.X-a.X*b.Z,
		a.X*b.Y-a.Y*b.X,
	)
}

func CrossAndCreate(a, b *Vector3) *Vector3 {
	return new(Vector3).CrossAndSet(a, b)
}

// ProjectOnto replaces v with its projection onto u.
func (v *Vector3) ProjectOnto(u *Vector3) *Vector3 {
	d := v.Dot(u) / u.Length2()
	return v.ScaleAndSet(u, d)
}

// ProjectAndCreate returns the projection of a onto b.
func ProjectAndCreate(a, b *Vector3) *Vector3 {
	d := a.Dot(b) / b.Length2()
	return ScaleAndCreate(b, d)
}

// Project transforms v by m and divides by the resulting w.
func (v *Vector3) Project(m *Matrix4) *Vector3 {
	a := &m.m
	vx, vy, vz := v.X, v.Y, v.Z
	inv := 1.0 / (vx*a[M30] + vy*a[M31] + vz*a[M32] + a[M33])
	v.X = (vx*a[M00] + vy*a[M01] + vz*a[M02] + a[M03]) * inv
	v.Y = (vx*a[M10] + vy*a[M11] + vz*a[M12] + a[M13]) * inv
	v.Z = (vx*a[M20] + vy*a[M21] + vz*a[M22] + a[M23]) * inv
	return v
}

// Angle returns the angle between v and u in degrees.
func (v *Vector3) Angle(u *Vector3) float64 {
	d := v.Dot(u) / (v.Length() * u.Length())
	return RadiansToDegrees(math.Acos(Clamp(d, -1, 1)))
}

// --- Rotation ---

// RotateX rotates v about the X axis by angle radians.
func (v *Vector3) RotateX(angle float64) *Vector3 {
	s, c := math.Sincos(angle)
	t := *v
	v.Y = t.Y*c - t.Z*s
	v.Z = t.Y*s + t.Z*c
	return v
}

func (v *Vector3) RotateY(angle float64) *Vector3 {
	s, c := math.Sincos(angle)
	t := *v
	v.X = t.X*c + t.Z*s
	v.Z = t.X*-s + t.Z*c
	return v
}

func (v *Vector3) RotateZ(angle float64) *Vector3 {
	s, c := math.Sincos(angle)
	t := *v
	v.X = t.X*c - t.Y*s
	v.Y = t.X*s + t.Y*c
	return v
}

// RotateBy applies the rotation q to v.
func (v *Vector3) RotateBy(q *Quaternion) *Vector3 {
	return v.SetAllFrom(q.MultiplyVector(v))
}

// RotationTo returns the shortest rotation taking v onto direction.
func (v *Vector3) RotationTo(direction *Vector3) *Quaternion {
	return CreateFromRotationBetween(v, direction)
}

// OrthoNormalize runs Gram-Schmidt over vecs in order.
func OrthoNormalize(vecs []*Vector3) {
	for i, v := range vecs {
		v.Normalize()
		for j := 0; j < i; j++ {
			v.Subtract(ProjectAndCreate(v, vecs[j]))
		}
		v.Normalize()
	}
}

// OrthoNormalizePair normalizes v1 and makes v2 a unit vector perpendicular to it.
func OrthoNormalizePair(v1, v2 *Vector3) {
	v1.Normalize()
	v2.Normalize()
	v2.Subtract(ProjectAndCreate(v2, v1))
	v2.Normalize()
}

// --- Interpolation ---

// Lerp moves v toward to by t.
func (v *Vector3) Lerp(to *Vector3, t float64) *Vector3 {
	v.X += (to.X - v.X) * t
	v.Y += (to.Y - v.Y) * t
	v.Z += (to.Z - v.Z) * t
	return v
}

func (v *Vector3) LerpAndSet(from, to *Vector3, t float64) *Vector3 {
	return v.SetAll(
		from.X+(to.X-from.X)*t,
		from.Y+(to.Y-from.Y)*t,
		from.Z+(to.Z-from.Z)*t,
	)
}

// --- Comparison and export ---

// Equals is an exact component comparison.
func (v *Vector3) Equals(u *Vector3) bool {
	return v.X == u.X && v.Y == u.Y && v.Z == u.Z
}

// EqualsWithin bounds each component difference by tolerance independently.
func (v *Vector3) EqualsWithin(u *Vector3, tolerance float64) bool {
	return math.Abs(u.X-v.X) <= tolerance &&
		math.Abs(u.Y-v.Y) <= tolerance &&
		math.Abs(u.Z-v.Z) <= tolerance
}

func (v *Vector3) Clone() *Vector3 {
	return &Vector3{X: v.X, Y: v.Y, Z: v.Z}
}

func (v *Vector3) Array() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func (v *Vector3) Float32Array() [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

func (v *Vector3) String() string {
	return fmt.Sprintf("Vector3 <x, y, z>: <%f, %f, %f>", v.X, v.Y, v.Z)
}
