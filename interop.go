package glmath

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/num/quat"
)

func (v *Vector3) Mgl() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func Vector3FromMgl(v mgl64.Vec3) *Vector3 {
	return NewVector3(v[0], v[1], v[2])
}

func (q *Quaternion) Mgl() mgl64.Quat {
	return mgl64.Quat{W: q.W, V: mgl64.Vec3{q.X, q.Y, q.Z}}
}

func QuaternionFromMgl(q mgl64.Quat) *Quaternion {
	return NewQuaternion(q.W, q.V[0], q.V[1], q.V[2])
}

// Number converts q to a gonum quaternion.
func (q *Quaternion) Number() quat.Number {
	return quat.Number{Real: q.W, Imag: q.X, Jmag: q.Y, Kmag: q.Z}
}

func QuaternionFromNumber(n quat.Number) *Quaternion {
	return NewQuaternion(n.Real, n.Imag, n.Jmag, n.Kmag)
}

func (m *Matrix4) Mgl() mgl64.Mat4 {
	return mgl64.Mat4(m.m)
}

func Matrix4FromMgl(m mgl64.Mat4) *Matrix4 {
	return &Matrix4{m: m}
}

// Mgl32 narrows m for float32 consumers such as shader uniforms.
func (m *Matrix4) Mgl32() mgl32.Mat4 {
	return mgl32.Mat4(m.Float32Array())
}
