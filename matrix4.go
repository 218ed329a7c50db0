package glmath

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Flat indices of the elements of a column-major 4x4 matrix. Mrc is row
// r, column c.
const (
	M00 = 0
	M10 = 1
	M20 = 2
	M30 = 3
	M01 = 4
	M11 = 5
	M21 = 6
	M31 = 7
	M02 = 8
	M12 = 9
	M22 = 10
	M32 = 11
	M03 = 12
	M13 = 13
	M23 = 14
	M33 = 15
)

var identityArray = [16]float64{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// Matrix4 is a column-major 4x4 matrix. Like Vector3 and Quaternion its
// methods mutate the receiver and return it.
type Matrix4 struct {
	m [16]float64
}

// NewMatrix4 returns an identity matrix.
func NewMatrix4() *Matrix4 {
	return &Matrix4{m: identityArray}
}

func NewMatrix4From(o *Matrix4) *Matrix4 {
	return &Matrix4{m: o.m}
}

func NewMatrix4FromArray(values [16]float64) *Matrix4 {
	return &Matrix4{m: values}
}

func NewMatrix4FromFloat32(values [16]float32) *Matrix4 {
	return &Matrix4{m: ConvertFloatsToDoubles(values)}
}

// NewMatrix4FromQuaternion returns the pure rotation q.
func NewMatrix4FromQuaternion(q *Quaternion) *Matrix4 {
	return q.ToRotationMatrix()
}

func (m *Matrix4) At(index int) float64 {
	return m.m[index]
}

func (m *Matrix4) Set(index int, value float64) *Matrix4 {
	m.m[index] = value
	return m
}

func (m *Matrix4) SetAll(values [16]float64) *Matrix4 {
	m.m = values
	return m
}

func (m *Matrix4) SetAllFrom(o *Matrix4) *Matrix4 {
	m.m = o.m
	return m
}

func (m *Matrix4) Identity() *Matrix4 {
	m.m = identityArray
	return m
}

func (m *Matrix4) Zero() *Matrix4 {
	m.m = [16]float64{}
	return m
}

// SetAllTRS builds translate * rotate * scale directly from the
// quaternion terms. The bottom row is always (0, 0, 0, 1).
func (m *Matrix4) SetAllTRS(position, scale *Vector3, rotation *Quaternion) *Matrix4 {
	x2 := rotation.X * rotation.X
	y2 := rotation.Y * rotation.Y
	z2 := rotation.Z * rotation.Z
	xy := rotation.X * rotation.Y
	xz := rotation.X * rotation.Z
	yz := rotation.Y * rotation.Z
	xw := rotation.X * rotation.W
	yw := rotation.Y * rotation.W
	zw := rotation.Z * rotation.W

	// Column 0
	m.m[M00] = scale.X * (1 - 2*(y2+z2))
	m.m[M10] = 2 * scale.X * (xy + zw)
	m.m[M20] = 2 * scale.X * (xz - yw)
	m.m[M30] = 0

	// Column 1
	m.m[M01] = 2 * scale.Y * (xy - zw)
	m.m[M11] = scale.Y * (1 - 2*(x2+z2))
	m.m[M21] = 2 * scale.Y * (yz + xw)
	m.m[M31] = 0

	// Column 2
	m.m[M02] = 2 * scale.Z * (xz + yw)
	m.m[M12] = 2 * scale.Z * (yz - xw)
	m.m[M22] = scale.Z * (1 - 2*(x2+y2))
	m.m[M32] = 0

	// Column 3
	m.m[M03] = position.X
	m.m[M13] = position.Y
	m.m[M23] = position.Z
	m.m[M33] = 1
	return m
}

// SetAllAxes writes the three axes and the position as columns.
func (m *Matrix4) SetAllAxes(xAxis, yAxis, zAxis, position *Vector3) *Matrix4 {
	m.m = [16]float64{
		xAxis.X, xAxis.Y, xAxis.Z, 0,
		yAxis.X, yAxis.Y, yAxis.Z, 0,
		zAxis.X, zAxis.Y, zAxis.Z, 0,
		position.X, position.Y, position.Z, 1,
	}
	return m
}

// Determinant expands along cofactors.
func (m *Matrix4) Determinant() float64 {
	a := &m.m
	return a[M30]*a[M21]*a[M12]*a[M03] - a[M20]*a[M31]*a[M12]*a[M03] - a[M30]*a[M11]*a[M22]*a[M03] +
		a[M10]*a[M31]*a[M22]*a[M03] + a[M20]*a[M11]*a[M32]*a[M03] - a[M10]*a[M21]*a[M32]*a[M03] -
		a[M30]*a[M21]*a[M02]*a[M13] + a[M20]*a[M31]*a[M02]*a[M13] + a[M30]*a[M01]*a[M22]*a[M13] -
		a[M00]*a[M31]*a[M22]*a[M13] - a[M20]*a[M01]*a[M32]*a[M13] + a[M00]*a[M21]*a[M32]*a[M13] +
		a[M30]*a[M11]*a[M02]*a[M23] - a[M10]*a[M31]*a[M02]*a[M23] - a[M30]*a[M01]*a[M12]*a[M23] +
		a[M00]*a[M31]*a[M12]*a[M23] + a[M10]*a[M01]*a[M32]*a[M23] - a[M00]*a[M11]*a[M32]*a[M23] -
		a[M20]*a[M11]*a[M02]*a[M33] + a[M10]*a[M21]*a[M02]*a[M33] + a[M20]*a[M01]*a[M12]*a[M33] -
		a[M00]*a[M21]*a[M12]*a[M33] - a[M10]*a[M01]*a[M22]*a[M33] + a[M00]*a[M11]*a[M22]*a[M33]
}

// Inverse inverts m in place. A matrix whose determinant is exactly zero
// is left unchanged and ErrSingularMatrix is returned.
func (m *Matrix4) Inverse() error {
	mg := mgl64.Mat4(m.m)
	det := mg.Det()
	if det == 0 {
		return fmt.Errorf("inverse: %w", ErrSingularMatrix)
	}
	if mgl64.FloatEqual(det, 0) {
		// mgl64 refuses tiny determinants, so invert k*m and scale back.
		// k is a power of two so the scaling is exact.
		_, exp := math.Frexp(det)
		k := math.Ldexp(1, -exp/4)
		m.m = mg.Mul(k).Inv().Mul(k)
		return nil
	}
	m.m = mg.Inv()
	return nil
}

// InverseAndCreate returns the inverse of m without touching it.
func InverseAndCreate(m *Matrix4) (*Matrix4, error) {
	r := m.Clone()
	if err := r.Inverse(); err != nil {
		return nil, err
	}
	return r, nil
}

func (m *Matrix4) Transpose() *Matrix4 {
	m.m = mgl64.Mat4(m.m).Transpose()
	return m
}

func (m *Matrix4) Add(o *Matrix4) *Matrix4 {
	for i := range m.m {
		m.m[i] += o.m[i]
	}
	return m
}

func (m *Matrix4) Subtract(o *Matrix4) *Matrix4 {
	for i := range m.m {
		m.m[i] -= o.m[i]
	}
	return m
}

// Multiply replaces m with m * o.
func (m *Matrix4) Multiply(o *Matrix4) *Matrix4 {
	m.m = mgl64.Mat4(m.m).Mul4(mgl64.Mat4(o.m))
	return m
}

// LeftMultiply replaces m with o * m.
func (m *Matrix4) LeftMultiply(o *Matrix4) *Matrix4 {
	m.m = mgl64.Mat4(o.m).Mul4(mgl64.Mat4(m.m))
	return m
}

func (m *Matrix4) MultiplyScalar(s float64) *Matrix4 {
	for i := range m.m {
		m.m[i] *= s
	}
	return m
}

// Lerp moves every element of m toward o by t.
func (m *Matrix4) Lerp(o *Matrix4, t float64) *Matrix4 {
	for i := range m.m {
		m.m[i] += (o.m[i] - m.m[i]) * t
	}
	return m
}

// --- Affine composition ---

// Translate adds v to the translation column. The existing rotation and
// scale are kept.
func (m *Matrix4) Translate(v *Vector3) *Matrix4 {
	return m.TranslateXYZ(v.X, v.Y, v.Z)
}

func (m *Matrix4) TranslateXYZ(x, y, z float64) *Matrix4 {
	m.m[M03] += x
	m.m[M13] += y
	m.m[M23] += z
	return m
}

func (m *Matrix4) NegTranslate(v *Vector3) *Matrix4 {
	return m.TranslateXYZ(-v.X, -v.Y, -v.Z)
}

// Scale post-multiplies m by a scale matrix.
func (m *Matrix4) Scale(v *Vector3) *Matrix4 {
	return m.ScaleXYZ(v.X, v.Y, v.Z)
}

func (m *Matrix4) ScaleXYZ(x, y, z float64) *Matrix4 {
	for i := 0; i < 4; i++ {
		m.m[i] *= x
		m.m[4+i] *= y
		m.m[8+i] *= z
	}
	return m
}

func (m *Matrix4) ScaleUniform(s float64) *Matrix4 {
	return m.ScaleXYZ(s, s, s)
}

// Rotate post-multiplies m by the rotation matrix of q.
func (m *Matrix4) Rotate(q *Quaternion) *Matrix4 {
	var r Matrix4
	q.ToRotationArray(&r.m)
	return m.Multiply(&r)
}

// RotateAxisAngle rotates by angle degrees about axis. A zero angle is a no-op.
func (m *Matrix4) RotateAxisAngle(axis *Vector3, angle float64) *Matrix4 {
	if angle == 0 {
		return m
	}
	var q Quaternion
	return m.Rotate(q.FromAngleAxis(axis, angle))
}

func (m *Matrix4) RotateAxis(axis Axis, angle float64) *Matrix4 {
	return m.RotateAxisAngle(AxisVector(axis), angle)
}

func (m *Matrix4) RotateXYZ(x, y, z, angle float64) *Matrix4 {
	return m.RotateAxisAngle(&Vector3{X: x, Y: y, Z: z}, angle)
}

// --- Builders ---

func (m *Matrix4) SetTranslation(v *Vector3) *Matrix4 {
	return m.SetTranslationXYZ(v.X, v.Y, v.Z)
}

func (m *Matrix4) SetTranslationXYZ(x, y, z float64) *Matrix4 {
	m.m[M03] = x
	m.m[M13] = y
	m.m[M23] = z
	return m
}

func (m *Matrix4) SetToTranslation(v *Vector3) *Matrix4 {
	return m.Identity().SetTranslation(v)
}

func (m *Matrix4) SetToScale(v *Vector3) *Matrix4 {
	m.Identity()
	m.m[M00] = v.X
	m.m[M11] = v.Y
	m.m[M22] = v.Z
	return m
}

func (m *Matrix4) SetToTranslationAndScale(translation, scale *Vector3) *Matrix4 {
	return m.SetToScale(scale).SetTranslation(translation)
}

// SetToRotation overwrites m with the pure rotation q.
func (m *Matrix4) SetToRotation(q *Quaternion) *Matrix4 {
	q.ToRotationArray(&m.m)
	return m
}

func (m *Matrix4) SetToRotationAxisAngle(axis *Vector3, angle float64) *Matrix4 {
	if angle == 0 {
		return m.Identity()
	}
	var q Quaternion
	return m.SetToRotation(q.FromAngleAxis(axis, angle))
}

// SetToRotationBetween sets m to the shortest rotation taking v1 onto v2.
func (m *Matrix4) SetToRotationBetween(v1, v2 *Vector3) *Matrix4 {
	var q Quaternion
	return m.SetToRotation(q.FromRotationBetween(v1, v2))
}

// SetToRotationEuler takes yaw, pitch and roll in degrees.
func (m *Matrix4) SetToRotationEuler(yaw, pitch, roll float64) *Matrix4 {
	var q Quaternion
	return m.SetToRotation(q.FromEuler(yaw, pitch, roll))
}

// SetToPerspective builds a perspective projection. fov is the vertical
// field of view in degrees.
func (m *Matrix4) SetToPerspective(near, far, fov, aspect float64) *Matrix4 {
	m.m = mgl64.Perspective(DegreesToRadians(fov), aspect, near, far)
	return m
}

func (m *Matrix4) SetToOrthographic(left, right, bottom, top, near, far float64) *Matrix4 {
	m.m = mgl64.Ortho(left, right, bottom, top, near, far)
	return m
}

// SetToOrthographic2D maps the rectangle at (x, y) with the given size
// to clip space.
func (m *Matrix4) SetToOrthographic2D(x, y, width, height, near, far float64) *Matrix4 {
	return m.SetToOrthographic(x, x+width, y, y+height, near, far)
}

// SetToLookAt sets the rotation block of a view matrix looking along
// direction. Rows 0-2 hold right, up and the reversed direction.
func (m *Matrix4) SetToLookAt(direction, up *Vector3) *Matrix4 {
	f := *direction
	f.Normalize()
	var s, u Vector3
	s.CrossAndSet(&f, up).Normalize()
	u.CrossAndSet(&s, &f).Normalize()

	m.Identity()
	m.m[M00] = s.X
	m.m[M01] = s.Y
	m.m[M02] = s.Z
	m.m[M10] = u.X
	m.m[M11] = u.Y
	m.m[M12] = u.Z
	m.m[M20] = -f.X
	m.m[M21] = -f.Y
	m.m[M22] = -f.Z
	return m
}

// SetToLookAtPosition builds the view matrix of an eye at position
// looking at target.
func (m *Matrix4) SetToLookAtPosition(position, target, up *Vector3) *Matrix4 {
	m.m = mgl64.LookAtV(position.Mgl(), target.Mgl(), up.Mgl())
	return m
}

// SetToWorld places an object at position facing forward. It is the
// inverse of the view matrix of a camera with the same pose.
func (m *Matrix4) SetToWorld(position, forward, up *Vector3) *Matrix4 {
	f := *forward
	f.Normalize()
	var right, upward Vector3
	right.CrossAndSet(&f, up).Normalize()
	upward.CrossAndSet(&right, &f).Normalize()
	return m.SetAllAxes(&right, &upward, f.Negate(), position)
}

// SetToNormalMatrix replaces m with the inverse transpose of its linear
// part. On a singular matrix m is left unchanged.
func (m *Matrix4) SetToNormalMatrix() error {
	n := *m
	n.m[M03] = 0
	n.m[M13] = 0
	n.m[M23] = 0
	if err := n.Inverse(); err != nil {
		return fmt.Errorf("normal matrix: %w", err)
	}
	*m = *n.Transpose()
	return nil
}

// --- Decomposition ---

func (m *Matrix4) Translation() *Vector3 {
	return NewVector3(m.m[M03], m.m[M13], m.m[M23])
}

// Scaling returns the lengths of the three basis columns.
func (m *Matrix4) Scaling() *Vector3 {
	return NewVector3(
		math.Sqrt(m.m[M00]*m.m[M00]+m.m[M10]*m.m[M10]+m.m[M20]*m.m[M20]),
		math.Sqrt(m.m[M01]*m.m[M01]+m.m[M11]*m.m[M11]+m.m[M21]*m.m[M21]),
		math.Sqrt(m.m[M02]*m.m[M02]+m.m[M12]*m.m[M12]+m.m[M22]*m.m[M22]),
	)
}

// Rotation extracts the rotation of an unscaled matrix.
func (m *Matrix4) Rotation() *Quaternion {
	return new(Quaternion).FromMatrix(m)
}

// RotateVector applies the upper 3x3 block of m to v, ignoring translation.
func (m *Matrix4) RotateVector(v *Vector3) *Vector3 {
	a := &m.m
	return v.SetAll(
		v.X*a[M00]+v.Y*a[M01]+v.Z*a[M02],
		v.X*a[M10]+v.Y*a[M11]+v.Z*a[M12],
		v.X*a[M20]+v.Y*a[M21]+v.Z*a[M22],
	)
}

// ProjectVector transforms v by m with a perspective divide.
func (m *Matrix4) ProjectVector(v *Vector3) *Vector3 {
	return v.Project(m)
}

// --- Comparison and export ---

// Equals compares all sixteen elements exactly.
func (m *Matrix4) Equals(o *Matrix4) bool {
	return m.m == o.m
}

func (m *Matrix4) EqualsWithin(o *Matrix4, tolerance float64) bool {
	return ArrayEqualWithin(m.m[:], o.m[:], tolerance)
}

func (m *Matrix4) Clone() *Matrix4 {
	return &Matrix4{m: m.m}
}

// Array returns a copy of the elements in column-major order.
func (m *Matrix4) Array() [16]float64 {
	return m.m
}

// Float32Array returns the elements narrowed to float32, ready for upload
// as a uniform.
func (m *Matrix4) Float32Array() [16]float32 {
	return ConvertDoublesToFloats(m.m)
}

// String prints one matrix row per line.
func (m *Matrix4) String() string {
	var sb strings.Builder
	for r := 0; r < 4; r++ {
		if r > 0 {
			sb.WriteString("\n")
		}
		for c := 0; c < 4; c++ {
			if c > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(fmt.Sprintf("%f", m.m[c*4+r]))
		}
	}
	return sb.String()
}
