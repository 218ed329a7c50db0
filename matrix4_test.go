package glmath

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

var scenarioMatrix = [16]float64{
	16, 5, 9, 4,
	2, 11, 7, 8,
	3, 10, 6, 12,
	13, 8, 12, 19,
}

var scenarioInverse = [16]float64{
	0.11220043572984749, -0.19281045751633988, 0.2222222222222222, -0.08278867102396514,
	0.08088235294117647, -0.0661764705882353, 0.25, -0.14705882352941177,
	-0.11683006535947713, 0.42892156862745096, -0.5833333333333334, 0.21241830065359477,
	-0.037037037037037035, -0.1111111111111111, 0.1111111111111111, 0.037037037037037035,
}

func TestMatrix4IdentityAndZero(t *testing.T) {
	m := NewMatrix4()
	for i := 0; i < 16; i++ {
		want := 0.0
		if i%5 == 0 {
			want = 1
		}
		if m.At(i) != want {
			t.Errorf("identity[%d]: expected %v, got %v", i, want, m.At(i))
		}
	}

	m.Zero()
	if m.Array() != [16]float64{} {
		t.Errorf("expected the zero matrix, got\n%v", m)
	}

	if !m.Identity().Equals(NewMatrix4()) {
		t.Errorf("Identity did not reset the matrix")
	}
}

func TestMatrix4Perspective(t *testing.T) {
	m := NewMatrix4().SetToPerspective(1, 1000, 60, 1.3)

	want := map[int]float64{
		0:  1.3323467750529825,
		5:  1.7320508075688774,
		10: -1.002002002002002,
		11: -1,
		14: -2.002002002002002,
	}
	for i := 0; i < 16; i++ {
		w := want[i]
		if !almostEqualWithin(m.At(i), w, scenarioTolerance) {
			t.Errorf("[%d]: expected %v, got %v", i, w, m.At(i))
		}
	}
}

func TestMatrix4Inverse(t *testing.T) {
	m := NewMatrix4FromArray(scenarioMatrix)

	inv, err := InverseAndCreate(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Array() != scenarioMatrix {
		t.Fatalf("InverseAndCreate modified its input")
	}

	got := inv.Array()
	if !ArrayEqualWithin(got[:], scenarioInverse[:], scenarioTolerance) {
		t.Errorf("expected\n%v\ngot\n%v", NewMatrix4FromArray(scenarioInverse), inv)
	}

	if p := m.Clone().Multiply(inv); !p.EqualsWithin(NewMatrix4(), scenarioTolerance) {
		t.Errorf("m * inv: expected identity, got\n%v", p)
	}
	if p := inv.Clone().Multiply(m); !p.EqualsWithin(NewMatrix4(), scenarioTolerance) {
		t.Errorf("inv * m: expected identity, got\n%v", p)
	}

	inPlace := m.Clone()
	if err := inPlace.Inverse(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !inPlace.Equals(inv) {
		t.Errorf("in place inverse differs from InverseAndCreate")
	}
}

func TestMatrix4InverseTinyScale(t *testing.T) {
	m := NewMatrix4().SetToScale(NewVector3(1e-7, 1e-7, 1e-7)).SetTranslationXYZ(2e-7, 0, -1e-7)
	inv, err := InverseAndCreate(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, idx := range []int{M00, M11, M22} {
		if !almostEqualWithin(inv.Array()[idx], 1e7, 1e-5) {
			t.Errorf("element %d: expected 1e7, got %v", idx, inv.Array()[idx])
		}
	}
	if got := inv.Translation(); !got.EqualsWithin(NewVector3(-2, 0, 1), 1e-12) {
		t.Errorf("expected translation (-2, 0, 1), got %v", got)
	}
	if p := m.Clone().Multiply(inv); !p.EqualsWithin(NewMatrix4(), 1e-12) {
		t.Errorf("m * inv: expected identity, got\n%v", p)
	}
}

func TestMatrix4InverseSingular(t *testing.T) {
	testCases := []struct {
		name string
		m    *Matrix4
	}{
		{"Zero", NewMatrix4().Zero()},
		{"Repeated column", NewMatrix4FromArray([16]float64{
			1, 2, 3, 4,
			1, 2, 3, 4,
			0, 1, 0, 0,
			0, 0, 0, 1,
		})},
		{"Flattened", NewMatrix4().SetToScale(NewVector3(1, 0, 1))},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			before := tc.m.Array()
			err := tc.m.Inverse()
			if !errors.Is(err, ErrSingularMatrix) {
				t.Fatalf("expected ErrSingularMatrix, got %v", err)
			}
			if tc.m.Array() != before {
				t.Errorf("singular matrix was modified:\n%v", tc.m)
			}

			if _, err := InverseAndCreate(tc.m); !errors.Is(err, ErrSingularMatrix) {
				t.Errorf("InverseAndCreate: expected ErrSingularMatrix, got %v", err)
			}
		})
	}
}

func TestMatrix4Determinant(t *testing.T) {
	testCases := []struct {
		name string
		m    *Matrix4
		want float64
	}{
		{"Identity", NewMatrix4(), 1},
		{"Scenario", NewMatrix4FromArray(scenarioMatrix), -3672},
		{"Scale", NewMatrix4().SetToScale(NewVector3(2, 3, 4)), 24},
		{"Rotation", NewQuaternionAxisAngle(NewVector3(1, 1, 1), 77).ToRotationMatrix(), 1},
		{"TRS", NewMatrix4().SetAllTRS(NewVector3(5, -2, 1), NewVector3(2, 0.5, 3), NewQuaternionAxisAngle(UnitY(), 20)), 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.m.Determinant()
			if !almostEqualWithin(got, tc.want, 1e-12) {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
			if ref := tc.m.Mgl().Det(); !almostEqualWithin(got, ref, 1e-12) {
				t.Errorf("disagrees with mgl64: %v vs %v", got, ref)
			}
		})
	}
}

func TestMatrix4Multiply(t *testing.T) {
	a := NewMatrix4FromArray(scenarioMatrix)
	b := NewMatrix4().SetAllTRS(NewVector3(1, 2, 3), NewVector3(1, 2, 1), NewQuaternionAxisAngle(UnitX(), 30))

	ab := a.Clone().Multiply(b)
	if left := b.Clone().LeftMultiply(a); !left.Equals(ab) {
		t.Errorf("LeftMultiply should give a * b:\n%v\nvs\n%v", left, ab)
	}

	ref := a.Mgl().Mul4(b.Mgl())
	if !ab.EqualsWithin(Matrix4FromMgl(ref), 1e-12) {
		t.Errorf("expected\n%v\ngot\n%v", Matrix4FromMgl(ref), ab)
	}

	if ba := b.Clone().Multiply(a); ba.EqualsWithin(ab, 1e-6) {
		t.Errorf("matrix product should not commute here")
	}

	if id := a.Clone().Multiply(NewMatrix4()); !id.Equals(a) {
		t.Errorf("m * I should be m")
	}
}

func TestMatrix4ElementWise(t *testing.T) {
	a := NewMatrix4FromArray(scenarioMatrix)

	if sum := a.Clone().Add(a); !sum.Equals(a.Clone().MultiplyScalar(2)) {
		t.Errorf("a + a should be 2a")
	}
	if diff := a.Clone().Subtract(a); !diff.Equals(NewMatrix4().Zero()) {
		t.Errorf("a - a should be zero")
	}

	half := NewMatrix4().Zero().Lerp(a, 0.5)
	if !half.Equals(a.Clone().MultiplyScalar(0.5)) {
		t.Errorf("lerp from zero by 0.5 should halve a, got\n%v", half)
	}

	c := NewMatrix4().Set(M12, 7)
	if c.At(9) != 7 {
		t.Errorf("M12 should be flat index 9")
	}
}

func TestMatrix4Transforms(t *testing.T) {
	position := NewVector3(5, -3, 2)
	scale := NewVector3(2, 3, 0.5)
	rotation := NewQuaternionAxisAngle(NewVector3(1, 2, -1), 40)

	t.Run("Chain matches SetAllTRS", func(t *testing.T) {
		chained := NewMatrix4().Translate(position).Rotate(rotation).Scale(scale)
		direct := NewMatrix4().SetAllTRS(position, scale, rotation)
		if !chained.EqualsWithin(direct, float64EqualityThreshold) {
			t.Errorf("expected\n%v\ngot\n%v", direct, chained)
		}
	})

	t.Run("Translate adds to the translation", func(t *testing.T) {
		m := NewMatrix4().Rotate(rotation).Translate(position).TranslateXYZ(1, 1, 1)
		if got := m.Translation(); !got.Equals(NewVector3(6, -2, 3)) {
			t.Errorf("expected (6, -2, 3), got %v", got)
		}
		m.NegTranslate(position)
		if got := m.Translation(); !got.Equals(One()) {
			t.Errorf("expected (1, 1, 1), got %v", got)
		}
	})

	t.Run("Zero angle is a no-op", func(t *testing.T) {
		m := NewMatrix4FromArray(scenarioMatrix)
		if !m.RotateAxisAngle(UnitY(), 0).Equals(NewMatrix4FromArray(scenarioMatrix)) {
			t.Errorf("rotating by zero changed the matrix")
		}
	})

	t.Run("Rotate about axis", func(t *testing.T) {
		testCases := []struct {
			name string
			m    *Matrix4
		}{
			{"RotateAxis", NewMatrix4().RotateAxis(Z, 90)},
			{"RotateXYZ", NewMatrix4().RotateXYZ(0, 0, 2, 90)},
			{"RotateAxisAngle", NewMatrix4().RotateAxisAngle(UnitZ(), 90)},
			{"SetToRotationAxisAngle", NewMatrix4().SetToRotationAxisAngle(UnitZ(), 90)},
			{"SetToRotationBetween", NewMatrix4().SetToRotationBetween(UnitX(), NewVector3(0, 4, 0))},
		}
		for _, tc := range testCases {
			if got := UnitX().MultiplyMatrix(tc.m); !got.EqualsWithin(UnitY(), float64EqualityThreshold) {
				t.Errorf("%s: expected +Y, got %v", tc.name, got)
			}
		}
	})

	t.Run("SetToRotation overwrites", func(t *testing.T) {
		m := NewMatrix4().SetToTranslation(position).ScaleUniform(3)
		m.SetToRotation(rotation)
		if !m.Equals(NewMatrix4FromQuaternion(rotation)) {
			t.Errorf("expected the pure rotation, got\n%v", m)
		}
		if !m.Translation().IsZero() {
			t.Errorf("translation should be cleared, got %v", m.Translation())
		}
	})

	t.Run("Euler", func(t *testing.T) {
		m := NewMatrix4().SetToRotationEuler(30, 20, 10)
		want := new(Quaternion).FromEuler(30, 20, 10).ToRotationMatrix()
		if !m.Equals(want) {
			t.Errorf("expected\n%v\ngot\n%v", want, m)
		}
	})

	t.Run("Translation and scale", func(t *testing.T) {
		m := NewMatrix4().SetToTranslationAndScale(position, scale)
		got := NewVector3(1, 1, 1).MultiplyMatrix(m)
		if !got.Equals(NewVector3(7, 0, 2.5)) {
			t.Errorf("expected (7, 0, 2.5), got %v", got)
		}
	})
}

func TestMatrix4Decomposition(t *testing.T) {
	position := NewVector3(-1, 4, 9)
	rotation := NewQuaternionAxisAngle(NewVector3(0.2, -1, 0.4), 135)

	scaled := NewMatrix4().SetAllTRS(position, NewVector3(2, 0.5, 4), rotation)
	if got := scaled.Translation(); !got.Equals(position) {
		t.Errorf("translation: expected %v, got %v", position, got)
	}
	if got := scaled.Scaling(); !got.EqualsWithin(NewVector3(2, 0.5, 4), float64EqualityThreshold) {
		t.Errorf("scaling: expected (2, 0.5, 4), got %v", got)
	}

	unscaled := NewMatrix4().SetAllTRS(position, One(), rotation)
	if got := unscaled.Rotation(); !sameRotation(got, rotation, 1e-12) {
		t.Errorf("rotation: expected %v, got %v", rotation, got)
	}

	v := NewVector3(1, -2, 3)
	rotated := unscaled.RotateVector(v.Clone())
	if want := rotation.MultiplyVector(v); !rotated.EqualsWithin(want, float64EqualityThreshold) {
		t.Errorf("RotateVector: expected %v, got %v", want, rotated)
	}
}

func TestMatrix4SetAllAxes(t *testing.T) {
	m := NewMatrix4().SetAllAxes(UnitY(), NegUnitX(), UnitZ(), NewVector3(1, 2, 3))
	want := NewMatrix4().SetToRotationAxisAngle(UnitZ(), 90).SetTranslationXYZ(1, 2, 3)
	if !m.EqualsWithin(want, float64EqualityThreshold) {
		t.Errorf("expected\n%v\ngot\n%v", want, m)
	}
}

func TestMatrix4LookAt(t *testing.T) {
	direction := NewVector3(1, -2, 3)
	up := UnitY()

	m := NewMatrix4().SetToLookAt(direction, up)
	f := direction.Clone()
	f.Normalize()
	if got := m.RotateVector(f); !got.EqualsWithin(NegUnitZ(), float64EqualityThreshold) {
		t.Errorf("look direction should map to -Z, got %v", got)
	}

	eye := NewVector3(4, 5, -6)
	target := AddAndCreate(eye, direction)
	view := NewMatrix4().SetToLookAtPosition(eye, target, up)

	want := NewMatrix4().SetToLookAt(direction, up).Multiply(NewMatrix4().SetToTranslation(NegateAndCreate(eye)))
	if !view.EqualsWithin(want, float64EqualityThreshold) {
		t.Errorf("expected\n%v\ngot\n%v", want, view)
	}

	if got := eye.Clone().MultiplyMatrix(view); !got.EqualsWithin(Zero(), float64EqualityThreshold) {
		t.Errorf("eye should map to the origin, got %v", got)
	}

	world := NewMatrix4().SetToWorld(eye, direction, up)
	if p := world.Clone().Multiply(view); !p.EqualsWithin(NewMatrix4(), float64EqualityThreshold) {
		t.Errorf("world * view should be identity, got\n%v", p)
	}
}

func TestMatrix4Projections(t *testing.T) {
	ortho := NewMatrix4().SetToOrthographic(0, 800, 0, 600, -1, 1)
	if o2 := NewMatrix4().SetToOrthographic2D(0, 0, 800, 600, -1, 1); !o2.Equals(ortho) {
		t.Errorf("2D orthographic should match\n%v\ngot\n%v", ortho, o2)
	}

	testCases := []struct {
		name  string
		input *Vector3
		want  *Vector3
	}{
		{"Top right", NewVector3(800, 600, 0), NewVector3(1, 1, 0)},
		{"Bottom left", NewVector3(0, 0, 0), NewVector3(-1, -1, 0)},
		{"Centre", NewVector3(400, 300, 0), NewVector3(0, 0, 0)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ortho.ProjectVector(tc.input.Clone())
			if !got.EqualsWithin(tc.want, float64EqualityThreshold) {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}

	ref := Matrix4FromMgl(mgl64.Ortho(-2, 2, -1, 1, 0.1, 50))
	if got := NewMatrix4().SetToOrthographic(-2, 2, -1, 1, 0.1, 50); !got.Equals(ref) {
		t.Errorf("expected\n%v\ngot\n%v", ref, got)
	}
}

func TestMatrix4NormalMatrix(t *testing.T) {
	m := NewMatrix4().SetToScale(NewVector3(2, 4, 8)).SetTranslationXYZ(10, 20, 30)
	if err := m.SetToNormalMatrix(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := NewMatrix4().SetToScale(NewVector3(0.5, 0.25, 0.125))
	if !m.EqualsWithin(want, float64EqualityThreshold) {
		t.Errorf("expected\n%v\ngot\n%v", want, m)
	}

	rot := NewQuaternionAxisAngle(NewVector3(1, 3, -2), 65).ToRotationMatrix()
	n := rot.Clone()
	if err := n.SetToNormalMatrix(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !n.EqualsWithin(rot, float64EqualityThreshold) {
		t.Errorf("normal matrix of a rotation is the rotation, got\n%v", n)
	}

	flat := NewMatrix4().SetToScale(NewVector3(1, 1, 0)).SetTranslationXYZ(1, 2, 3)
	before := flat.Array()
	if err := flat.SetToNormalMatrix(); !errors.Is(err, ErrSingularMatrix) {
		t.Fatalf("expected ErrSingularMatrix, got %v", err)
	}
	if flat.Array() != before {
		t.Errorf("singular matrix was modified")
	}
}

func TestMatrix4Transpose(t *testing.T) {
	m := NewMatrix4FromArray(scenarioMatrix)
	tr := m.Clone().Transpose()
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if tr.At(c*4+r) != m.At(r*4+c) {
				t.Errorf("(%d, %d) not transposed", r, c)
			}
		}
	}
	if !tr.Transpose().Equals(m) {
		t.Errorf("double transpose should restore the matrix")
	}
}

func TestMatrix4Export(t *testing.T) {
	m := NewMatrix4FromArray(scenarioInverse)

	f := m.Float32Array()
	g := m.Mgl32()
	for i := range f {
		if f[i] != float32(scenarioInverse[i]) || g[i] != f[i] {
			t.Errorf("[%d]: expected %v, got %v and %v", i, float32(scenarioInverse[i]), f[i], g[i])
		}
	}

	back := NewMatrix4FromFloat32(f)
	if !back.EqualsWithin(m, 1e-7) {
		t.Errorf("float32 round trip lost too much precision:\n%v", back)
	}

	if c := NewMatrix4From(m); !c.Equals(m) || c == m {
		t.Errorf("NewMatrix4From should copy")
	}
	if c := NewMatrix4().SetAllFrom(m); !c.Equals(m) {
		t.Errorf("SetAllFrom should copy the elements")
	}
	if c := NewMatrix4().SetAll(scenarioMatrix); c.Array() != scenarioMatrix {
		t.Errorf("SetAll should copy the elements")
	}
}

func TestMatrix4String(t *testing.T) {
	m := NewMatrix4().SetTranslationXYZ(1, 2, 3)
	want := "1.000000 0.000000 0.000000 1.000000\n" +
		"0.000000 1.000000 0.000000 2.000000\n" +
		"0.000000 0.000000 1.000000 3.000000\n" +
		"0.000000 0.000000 0.000000 1.000000"
	if got := m.String(); got != want {
		t.Errorf("expected\n%s\ngot\n%s", want, got)
	}
}
