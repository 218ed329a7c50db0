package glmath

import (
	"fmt"
	"math"
)

const (
	// NormalizationTolerance is how far the squared length may drift from 1
	// before Normalize rescales.
	NormalizationTolerance = 1e-6

	// parallelTolerance decides when two directions are treated as
	// parallel or anti-parallel.
	parallelTolerance = 1e-6

	// slerpLinearThreshold is the 1-cos(theta) below which Slerp falls
	// back to normalized linear interpolation.
	slerpLinearThreshold = 0.1

	gimbalPoleThreshold = 0.499

	expEpsilon = 1e-3
)

// Quaternion is w + xi + yj + zk. Rotation related methods assume unit
// length and never normalize on their own.
type Quaternion struct {
	W float64
	X float64
	Y float64
	Z float64
}

func NewQuaternion(w, x, y, z float64) *Quaternion {
	return &Quaternion{W: w, X: x, Y: y, Z: z}
}

func NewQuaternionFrom(q *Quaternion) *Quaternion {
	return &Quaternion{W: q.W, X: q.X, Y: q.Y, Z: q.Z}
}

// NewQuaternionAxisAngle builds a rotation of angle degrees about axis.
func NewQuaternionAxisAngle(axis *Vector3, angle float64) *Quaternion {
	return new(Quaternion).FromAngleAxis(axis, angle)
}

func IdentityQuaternion() *Quaternion {
	return &Quaternion{W: 1}
}

// CreateFromRotationBetween returns the shortest rotation taking u onto v.
func CreateFromRotationBetween(u, v *Vector3) *Quaternion {
	return new(Quaternion).FromRotationBetween(u, v)
}

func (q *Quaternion) SetAll(w, x, y, z float64) *Quaternion {
	q.W = w
	q.X = x
	q.Y = y
	q.Z = z
	return q
}

func (q *Quaternion) SetAllFrom(o *Quaternion) *Quaternion {
	return q.SetAll(o.W, o.X, o.Y, o.Z)
}

func (q *Quaternion) Identity() *Quaternion {
	return q.SetAll(1, 0, 0, 0)
}

// --- Construction ---

// FromAngleAxis sets q to a rotation of angle degrees about axis. A zero
// axis yields the identity.
func (q *Quaternion) FromAngleAxis(axis *Vector3, angle float64) *Quaternion {
	if axis.IsZero() {
		return q.Identity()
	}
	a := *axis
	if !a.IsUnit() {
		a.Normalize()
	}
	s, c := math.Sincos(DegreesToRadians(angle) * 0.5)
	return q.SetAll(c, s*a.X, s*a.Y, s*a.Z)
}

func (q *Quaternion) FromAngleAxisXYZ(x, y, z, angle float64) *Quaternion {
	return q.FromAngleAxis(&Vector3{X: x, Y: y, Z: z}, angle)
}

func (q *Quaternion) FromAxisAngle(axis Axis, angle float64) *Quaternion {
	return q.FromAngleAxis(AxisVector(axis), angle)
}

// FromAxes sets q to the rotation that carries the unit X, Y and Z axes
// onto xAxis, yAxis and zAxis. The axes must be orthonormal.
func (q *Quaternion) FromAxes(xAxis, yAxis, zAxis *Vector3) *Quaternion {
	return q.FromAxesXYZ(
		xAxis.X, xAxis.Y, xAxis.Z,
		yAxis.X, yAxis.Y, yAxis.Z,
		zAxis.X, zAxis.Y, zAxis.Z,
	)
}

// FromAxesXYZ takes the components of the three basis images; xy is the
// y component of the x axis, and so on. The branch is chosen from the
// trace so the square root argument stays >= 1.
func (q *Quaternion) FromAxesXYZ(xx, xy, xz, yx, yy, yz, zx, zy, zz float64) *Quaternion {
	t := xx + yy + zz
	switch {
	case t >= 0:
		s := math.Sqrt(t + 1)
		q.W = 0.5 * s
		s = 0.5 / s
		q.X = (yz - zy) * s
		q.Y = (zx - xz) * s
		q.Z = (xy - yx) * s
	case xx > yy && xx > zz:
		s := math.Sqrt(1 + xx - yy - zz)
		q.X = s * 0.5
		s = 0.5 / s
		q.Y = (yx + xy) * s
		q.Z = (zx + xz) * s
		q.W = (yz - zy) * s
	case yy > zz:
		s := math.Sqrt(1 + yy - xx - zz)
		q.Y = s * 0.5
		s = 0.5 / s
		q.X = (yx + xy) * s
		q.Z = (zy + yz) * s
		q.W = (zx - xz) * s
	default:
		s := math.Sqrt(1 + zz - xx - yy)
		q.Z = s * 0.5
		s = 0.5 / s
		q.X = (zx + xz) * s
		q.Y = (zy + yz) * s
		q.W = (xy - yx) * s
	}
	return q
}

// FromMatrix extracts the rotation held in the upper 3x3 block of m.
func (q *Quaternion) FromMatrix(m *Matrix4) *Quaternion {
	return q.FromArray(&m.m)
}

func (q *Quaternion) FromArray(m *[16]float64) *Quaternion {
	return q.FromAxesXYZ(
		m[M00], m[M10], m[M20],
		m[M01], m[M11], m[M21],
		m[M02], m[M12], m[M22],
	)
}

// FromEuler sets q from yaw (about Y), pitch (about X) and roll (about Z),
// all in degrees.
func (q *Quaternion) FromEuler(yaw, pitch, roll float64) *Quaternion {
	shr, chr := math.Sincos(DegreesToRadians(roll) * 0.5)
	shp, chp := math.Sincos(DegreesToRadians(pitch) * 0.5)
	shy, chy := math.Sincos(DegreesToRadians(yaw) * 0.5)
	chyShp := chy * shp
	shyChp := shy * chp
	chyChp := chy * chp
	shyShp := shy * shp

	q.X = chyShp*chr + shyChp*shr
	q.Y = shyChp*chr - chyShp*shr
	q.Z = chyChp*shr - shyShp*chr
	q.W = chyChp*chr + shyShp*shr
	return q
}

// FromRotationBetween sets q to the shortest rotation taking u onto v,
// using DefaultFrame for the anti-parallel fallback axis.
func (q *Quaternion) FromRotationBetween(u, v *Vector3) *Quaternion {
	return q.FromRotationBetweenIn(DefaultFrame, u, v)
}

func (q *Quaternion) FromRotationBetweenIn(frame CoordinateFrame, u, v *Vector3) *Quaternion {
	a, b := *u, *v
	a.Normalize()
	b.Normalize()
	dot := a.Dot(&b)
	dotError := 1 - math.Abs(Clamp(dot, -1, 1))
	if dotError <= parallelTolerance {
		if dot >= 0 {
			return q.Identity()
		}
		var axis Vector3
		axis.CrossAndSet(&frame.Right, &a)
		if axis.Length() < parallelTolerance {
			axis.CrossAndSet(&frame.Up, &a)
		}
		axis.Normalize()
		return q.FromAngleAxis(&axis, 180)
	}
	var axis Vector3
	axis.CrossAndSet(&a, &b)
	q.SetAll(1+dot, axis.X, axis.Y, axis.Z)
	q.Normalize()
	return q
}

// LookAt orients q so that its forward axis points along lookAt with up
// as the approximate up direction, in DefaultFrame.
func (q *Quaternion) LookAt(lookAt, up *Vector3) *Quaternion {
	return q.LookAtIn(DefaultFrame, lookAt, up)
}

func (q *Quaternion) LookAtIn(frame CoordinateFrame, lookAt, up *Vector3) *Quaternion {
	forward, upward := *lookAt, *up
	dot := forward.Dot(&upward)
	dotError := math.Abs(math.Abs(dot) - forward.Length()*upward.Length())
	if dotError <= parallelTolerance {
		// look and up are parallel, any roll will do
		if dot < 0 {
			forward.Negate()
		}
		return q.FromRotationBetweenIn(frame, &frame.Forward, &forward)
	}
	OrthoNormalizePair(&forward, &upward)
	var right Vector3
	right.CrossAndSet(&upward, &forward)
	return q.FromAxes(&right, &upward, &forward)
}

func LookAtAndCreate(lookAt, up *Vector3) *Quaternion {
	return new(Quaternion).LookAt(lookAt, up)
}

// --- Algebra ---

func (q *Quaternion) Add(o *Quaternion) *Quaternion {
	q.W += o.W
	q.X += o.X
	q.Y += o.Y
	q.Z += o.Z
	return q
}

func (q *Quaternion) Subtract(o *Quaternion) *Quaternion {
	q.W -= o.W
	q.X -= o.X
	q.Y -= o.Y
	q.Z -= o.Z
	return q
}

func (q *Quaternion) MultiplyScalar(s float64) *Quaternion {
	q.W *= s
	q.X *= s
	q.Y *= s
	q.Z *= s
	return q
}

// Multiply replaces q with the Hamilton product q * o.
func (q *Quaternion) Multiply(other *Quaternion) *Quaternion {
	w, x, y, z := q.W, q.X, q.Y, q.Z
	o := *other
	q.W = w*o.W - x*o.X - y*o.Y - z*o.Z
	q.X = w*o.X + x*o.W + y*o.Z - z*o.Y
	q.Y = w*o.Y + y*o.W + z*o.X - x*o.Z
	q.Z = w*o.Z + z*o.W + x*o.Y - y*o.X
	return q
}

// MultiplyLeft replaces q with o * q.
func (q *Quaternion) MultiplyLeft(other *Quaternion) *Quaternion {
	w, x, y, z := q.W, q.X, q.Y, q.Z
	o := *other
	q.W = o.W*w - o.X*x - o.Y*y - o.Z*z
	q.X = o.W*x + o.X*w + o.Y*z - o.Z*y
	q.Y = o.W*y + o.Y*w + o.Z*x - o.X*z
	q.Z = o.W*z + o.Z*w + o.X*y - o.Y*x
	return q
}

// MultiplyVector returns a new vector holding v rotated by q. It expands
// q v q^-1 without forming the inverse.
func (q *Quaternion) MultiplyVector(v *Vector3) *Vector3 {
	qv := Vector3{X: q.X, Y: q.Y, Z: q.Z}
	var uv, uuv Vector3
	uv.CrossAndSet(&qv, v)
	uuv.CrossAndSet(&qv, &uv)
	uv.MultiplyScalar(2 * q.W)
	uuv.MultiplyScalar(2)
	return uv.Add(&uuv).Add(v)
}

func (q *Quaternion) Dot(o *Quaternion) float64 {
	return q.W*o.W + q.X*o.X + q.Y*o.Y + q.Z*o.Z
}

func (q *Quaternion) Length() float64 {
	return math.Sqrt(q.Length2())
}

func (q *Quaternion) Length2() float64 {
	return q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z
}

// Normalize rescales q to unit length when its squared length is more
// than NormalizationTolerance away from 1. It returns the squared length
// before normalization.
func (q *Quaternion) Normalize() float64 {
	l2 := q.Length2()
	if l2 != 0 && math.Abs(l2-1) > NormalizationTolerance {
		q.MultiplyScalar(1 / math.Sqrt(l2))
	}
	return l2
}

func (q *Quaternion) Conjugate() *Quaternion {
	q.X = -q.X
	q.Y = -q.Y
	q.Z = -q.Z
	return q
}

// Inverse replaces q with its multiplicative inverse.
func (q *Quaternion) Inverse() *Quaternion {
	inv := 1 / q.Length2()
	return q.SetAll(q.W*inv, -q.X*inv, -q.Y*inv, -q.Z*inv)
}

func InvertAndCreate(q *Quaternion) *Quaternion {
	return q.Clone().Inverse()
}

// Exp replaces q with e^q.
func (q *Quaternion) Exp() *Quaternion {
	vNorm := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	e := math.Exp(q.W)
	s, c := math.Sincos(vNorm)
	q.W = e * c
	var k float64
	if vNorm < expEpsilon {
		// series for sin(v)/v
		k = e * (1 - vNorm*vNorm/6)
	} else {
		k = e * s / vNorm
	}
	q.X *= k
	q.Y *= k
	q.Z *= k
	return q
}

func ExpAndCreate(q *Quaternion) *Quaternion {
	return q.Clone().Exp()
}

// Log replaces q with its natural logarithm. The zero quaternion is left
// unchanged.
func (q *Quaternion) Log() *Quaternion {
	qNorm := q.Length()
	if qNorm > 0 {
		vNorm := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z)
		w := q.W
		q.W = math.Log(qNorm)
		if vNorm > 0 {
			k := math.Atan2(vNorm, w) / vNorm
			q.X *= k
			q.Y *= k
			q.Z *= k
		}
	}
	return q
}

func LogAndCreate(q *Quaternion) *Quaternion {
	return q.Clone().Log()
}

// Pow raises q to the real power p. The magnitude is carried separately
// so that a non unit q scales by |q|^p.
func (q *Quaternion) Pow(p float64) *Quaternion {
	l := q.Length()
	q.Normalize()
	return q.Log().MultiplyScalar(p).Exp().MultiplyScalar(math.Pow(l, p))
}

// PowQuaternion computes exp(log(q) * p).
func (q *Quaternion) PowQuaternion(p *Quaternion) *Quaternion {
	return q.Log().Multiply(p).Exp()
}

func PowAndCreate(q *Quaternion, p float64) *Quaternion {
	return q.Clone().Pow(p)
}

// --- Interpolation ---

// Slerp stores the spherical interpolation between start and end in q.
// When shortestPath is set and the two are more than 90 degrees apart in
// 4-space, end is negated in place first.
func (q *Quaternion) Slerp(start, end *Quaternion, t float64, shortestPath bool) *Quaternion {
	cosTheta := start.Dot(end)
	if shortestPath && cosTheta < 0 {
		end.SetAll(-end.W, -end.X, -end.Y, -end.Z)
		cosTheta = -cosTheta
	}
	switch t {
	case 0:
		return q.SetAllFrom(start)
	case 1:
		return q.SetAllFrom(end)
	}
	if 1-cosTheta <= slerpLinearThreshold {
		return q.Lerp(start, end, t, false)
	}
	theta := math.Acos(Clamp(cosTheta, -1, 1))
	sinTheta := math.Sin(theta)
	if sinTheta < parallelTolerance {
		// antipodal: start and end are the same rotation
		return q.SetAllFrom(start)
	}
	invSin := 1 / sinTheta
	c1 := math.Sin((1-t)*theta) * invSin
	c2 := math.Sin(t*theta) * invSin
	return q.SetAll(
		c1*start.W+c2*end.W,
		c1*start.X+c2*end.X,
		c1*start.Y+c2*end.Y,
		c1*start.Z+c2*end.Z,
	)
}

// SlerpTo interpolates from q toward end along the shortest path. end is
// not modified.
func (q *Quaternion) SlerpTo(end *Quaternion, t float64) *Quaternion {
	start := *q
	e := *end
	return q.Slerp(&start, &e, t, true)
}

// Lerp stores the normalized linear interpolation of start and end in q.
func (q *Quaternion) Lerp(start, end *Quaternion, t float64, shortestPath bool) *Quaternion {
	e := *end
	if shortestPath && start.Dot(end) < 0 {
		e.SetAll(-e.W, -e.X, -e.Y, -e.Z)
	}
	q.SetAll(
		start.W+(e.W-start.W)*t,
		start.X+(e.X-start.X)*t,
		start.Y+(e.Y-start.Y)*t,
		start.Z+(e.Z-start.Z)*t,
	)
	q.Normalize()
	return q
}

// Nlerp blends q1 and q2 and normalizes the result.
func Nlerp(q1, q2 *Quaternion, t float64) *Quaternion {
	dot := q1.Dot(q2)
	blend := 1 - t
	var r Quaternion
	if dot < 0 {
		r.SetAll(blend*q1.W-t*q2.W, blend*q1.X-t*q2.X, blend*q1.Y-t*q2.Y, blend*q1.Z-t*q2.Z)
	} else {
		r.SetAll(blend*q1.W+t*q2.W, blend*q1.X+t*q2.X, blend*q1.Y+t*q2.Y, blend*q1.Z+t*q2.Z)
	}
	r.Normalize()
	return &r
}

// --- Extraction ---

// GimbalPole returns 1 at the north pole, -1 at the south pole and 0
// elsewhere.
func (q *Quaternion) GimbalPole() int {
	t := q.Y*q.X + q.Z*q.W
	switch {
	case t > gimbalPoleThreshold:
		return 1
	case t < -gimbalPoleThreshold:
		return -1
	}
	return 0
}

// RotationX is the pitch in radians.
func (q *Quaternion) RotationX() float64 {
	if pole := q.GimbalPole(); pole != 0 {
		return float64(pole) * HalfPI
	}
	return math.Asin(Clamp(2*(q.W*q.X-q.Z*q.Y), -1, 1))
}

// RotationY is the yaw in radians.
func (q *Quaternion) RotationY() float64 {
	if q.GimbalPole() != 0 {
		return 0
	}
	return math.Atan2(2*(q.Y*q.W+q.X*q.Z), 1-2*(q.Y*q.Y+q.X*q.X))
}

// RotationZ is the roll in radians.
func (q *Quaternion) RotationZ() float64 {
	if pole := q.GimbalPole(); pole != 0 {
		return float64(pole) * 2 * math.Atan2(q.Y, q.W)
	}
	return math.Atan2(2*(q.W*q.Z+q.Y*q.X), 1-2*(q.X*q.X+q.Z*q.Z))
}

// XAxis is the image of the unit X axis under q.
func (q *Quaternion) XAxis() *Vector3 {
	fTy := 2 * q.Y
	fTz := 2 * q.Z
	return NewVector3(
		1-(fTy*q.Y+fTz*q.Z),
		fTy*q.X+fTz*q.W,
		fTz*q.X-fTy*q.W,
	)
}

func (q *Quaternion) YAxis() *Vector3 {
	fTx := 2 * q.X
	fTy := 2 * q.Y
	fTz := 2 * q.Z
	return NewVector3(
		fTy*q.X-fTz*q.W,
		1-(fTx*q.X+fTz*q.Z),
		fTz*q.Y+fTx*q.W,
	)
}

func (q *Quaternion) ZAxis() *Vector3 {
	fTx := 2 * q.X
	fTy := 2 * q.Y
	fTz := 2 * q.Z
	return NewVector3(
		fTz*q.X+fTy*q.W,
		fTz*q.Y-fTx*q.W,
		1-(fTx*q.X+fTy*q.Y),
	)
}

func (q *Quaternion) Axis(axis Axis) *Vector3 {
	switch axis {
	case X:
		return q.XAxis()
	case Y:
		return q.YAxis()
	default:
		return q.ZAxis()
	}
}

// AngleBetween returns the rotation angle, in radians, that takes q to o.
func (q *Quaternion) AngleBetween(o *Quaternion) float64 {
	d := q.Clone().Inverse().Multiply(o)
	return 2 * math.Acos(Clamp(d.W, -1, 1))
}

// ToRotationMatrix returns a new matrix holding the rotation q.
func (q *Quaternion) ToRotationMatrix() *Matrix4 {
	m := &Matrix4{}
	q.ToRotationArray(&m.m)
	return m
}

// ToRotationArray writes q as a column-major rotation matrix. q must be
// unit length.
func (q *Quaternion) ToRotationArray(m *[16]float64) {
	x2 := q.X * q.X
	y2 := q.Y * q.Y
	z2 := q.Z * q.Z
	xy := q.X * q.Y
	xz := q.X * q.Z
	yz := q.Y * q.Z
	xw := q.X * q.W
	yw := q.Y * q.W
	zw := q.Z * q.W

	m[M00] = 1 - 2*(y2+z2)
	m[M01] = 2 * (xy - zw)
	m[M02] = 2 * (xz + yw)
	m[M03] = 0

	m[M10] = 2 * (xy + zw)
	m[M11] = 1 - 2*(x2+z2)
	m[M12] = 2 * (yz - xw)
	m[M13] = 0

	m[M20] = 2 * (xz - yw)
	m[M21] = 2 * (yz + xw)
	m[M22] = 1 - 2*(x2+y2)
	m[M23] = 0

	m[M30] = 0
	m[M31] = 0
	m[M32] = 0
	m[M33] = 1
}

// --- Comparison ---

func (q *Quaternion) Equals(o *Quaternion) bool {
	return q.W == o.W && q.X == o.X && q.Y == o.Y && q.Z == o.Z
}

// EqualsWithin reports whether q and o describe the same orientation.
// Antipodal quaternions compare equal.
func (q *Quaternion) EqualsWithin(o *Quaternion, tolerance float64) bool {
	fCos := q.Dot(o)
	if fCos > 1 && fCos-1 < tolerance {
		return true
	}
	angle := math.Acos(Clamp(fCos, -1, 1))
	return math.Abs(angle) <= tolerance || RealEqual(angle, PI, tolerance)
}

func (q *Quaternion) Clone() *Quaternion {
	return &Quaternion{W: q.W, X: q.X, Y: q.Y, Z: q.Z}
}

func (q *Quaternion) String() string {
	return fmt.Sprintf("Quaternion <w, x, y, z>: <%f, %f, %f, %f>", q.W, q.X, q.Y, q.Z)
}
