package glmath

import "fmt"

// CoordinateFrame names the world axes used where an operation needs a
// reference direction. It is a value; copies never alias.
type CoordinateFrame struct {
	Right   Vector3
	Up      Vector3
	Forward Vector3
}

// DefaultFrame is the right-handed frame with +X right, +Y up and +Z forward.
var DefaultFrame = CoordinateFrame{
	Right:   Vector3{X: 1},
	Up:      Vector3{Y: 1},
	Forward: Vector3{Z: 1},
}

const frameOrthogonalityTolerance = 1e-8

// NewCoordinateFrame normalizes the three axes and checks that they are
// mutually orthogonal.
func NewCoordinateFrame(right, up, forward Vector3) (CoordinateFrame, error) {
	r, u, f := right, up, forward
	r.Normalize()
	u.Normalize()
	f.Normalize()
	if r.IsZero() || u.IsZero() || f.IsZero() {
		return CoordinateFrame{}, fmt.Errorf("zero length axis: %w", ErrAxesNotOrthogonal)
	}
	if !RealEqual(r.Dot(&u), 0, frameOrthogonalityTolerance) ||
		!RealEqual(r.Dot(&f), 0, frameOrthogonalityTolerance) ||
		!RealEqual(u.Dot(&f), 0, frameOrthogonalityTolerance) {
		return CoordinateFrame{}, fmt.Errorf("right %v, up %v, forward %v: %w", &right, &up, &forward, ErrAxesNotOrthogonal)
	}
	return CoordinateFrame{Right: r, Up: u, Forward: f}, nil
}

func (f CoordinateFrame) NegForward() Vector3 {
	return Vector3{X: -f.Forward.X, Y: -f.Forward.Y, Z: -f.Forward.Z}
}
