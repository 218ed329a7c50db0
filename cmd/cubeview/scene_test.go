package main

import (
	"image/color"
	"math"
	"testing"

	"github.com/smasonuk/glmath"
)

type polygon struct {
	xp, yp    []float32
	fillClr   color.RGBA
	strokeClr color.RGBA
}

// recordingBatcher stands in for the screen in tests.
type recordingBatcher struct {
	polygons []polygon
	lines    int
}

func (b *recordingBatcher) AddPolygonAndOutline(xp, yp []float32, fillClr, strokeClr color.RGBA, strokeWidth float32) {
	b.polygons = append(b.polygons, polygon{xp: xp, yp: yp, fillClr: fillClr, strokeClr: strokeClr})
}

func (b *recordingBatcher) AddLine(x0, y0, x1, y1 float32, clr color.RGBA) {
	b.lines++
}

var testConfig = config{width: 640, height: 480, fov: 60, speed: 1, seed: 1}

func TestToScreen(t *testing.T) {
	testCases := []struct {
		name         string
		ndc          *glmath.Vector3
		wantX, wantY float32
	}{
		{"Centre", glmath.Zero(), 320, 240},
		{"Top left", glmath.NewVector3(-1, 1, 0), 0, 0},
		{"Bottom right", glmath.NewVector3(1, -1, 0), 640, 480},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			x, y := toScreen(tc.ndc, 640, 480)
			if x != tc.wantX || y != tc.wantY {
				t.Errorf("expected (%v, %v), got (%v, %v)", tc.wantX, tc.wantY, x, y)
			}
		})
	}
}

func TestShade(t *testing.T) {
	got := shade(color.RGBA{200, 100, 50, 255}, 0.5)
	if got != (color.RGBA{100, 50, 25, 255}) {
		t.Errorf("got %v", got)
	}
}

func TestNextKeyframe(t *testing.T) {
	q := glmath.IdentityQuaternion()
	for step := 0; step < 4; step++ {
		next := nextKeyframe(q, step)
		if angle := q.AngleBetween(next); math.Abs(angle-glmath.DegreesToRadians(keyframeAngle)) > 1e-9 {
			t.Errorf("step %d: expected a %v degree turn, got %v", step, keyframeAngle, glmath.RadiansToDegrees(angle))
		}
		if math.Abs(next.Length()-1) > 1e-9 {
			t.Errorf("step %d: keyframe drifted off unit length: %v", step, next.Length())
		}
		q = next
	}
}

func TestGameAdvance(t *testing.T) {
	g := NewGame(testConfig)
	first := g.to.Clone()

	g.advance(0.25)
	turned := g.from.AngleBetween(g.orientation)
	if want := glmath.DegreesToRadians(keyframeAngle) / 4; math.Abs(turned-want) > 1e-9 {
		t.Errorf("expected a quarter of the keyframe turn (%v), got %v", want, turned)
	}

	g.advance(0.75)
	if g.step != 1 {
		t.Fatalf("expected to reach the next keyframe, step is %d", g.step)
	}
	if !g.from.EqualsWithin(first, 1e-9) {
		t.Errorf("expected the old target %v to become the start, got %v", first, g.from)
	}
	if !g.orientation.EqualsWithin(g.from, 1e-9) {
		t.Errorf("orientation should sit on the keyframe, got %v", g.orientation)
	}

	rotation := g.model.Rotation()
	if !rotation.EqualsWithin(g.orientation, 1e-9) {
		t.Errorf("model matrix holds %v, expected %v", rotation, g.orientation)
	}
}

func TestGameView(t *testing.T) {
	g := NewGame(testConfig)

	if got := g.eye().MultiplyMatrix(g.view); !got.EqualsWithin(glmath.Zero(), 1e-12) {
		t.Errorf("eye should map to the origin of eye space, got %v", got)
	}

	vp := g.projection.Clone().Multiply(g.view)
	x, y := toScreen(glmath.Zero().Project(vp), testConfig.width, testConfig.height)
	if math.Abs(float64(x)-320) > 1e-3 || math.Abs(float64(y)-240) > 1e-3 {
		t.Errorf("the cube centre should be in the middle of the screen, got (%v, %v)", x, y)
	}

	g.orbit(10000, 10000)
	if g.pitch != -maxPitch {
		t.Errorf("pitch should clamp at %v, got %v", -maxPitch, g.pitch)
	}
	g.updateView()
	if d := g.eye().Length(); math.Abs(d-orbitDistance) > 1e-9 {
		t.Errorf("orbit changed the camera distance to %v", d)
	}
}

func TestPaintCube(t *testing.T) {
	g := NewGame(testConfig)
	b := &recordingBatcher{}

	modelView := g.view.Clone().Multiply(g.model)
	drawn := paintCube(b, modelView, g.projection, g.orientation, testConfig.width, testConfig.height)

	// the camera starts in front of and above the cube
	if drawn != 2 || len(b.polygons) != 2 {
		t.Fatalf("expected the front and top faces, got %d", drawn)
	}

	for i, p := range b.polygons {
		if len(p.xp) != 4 || len(p.yp) != 4 {
			t.Errorf("polygon %d: expected 4 points, got %d", i, len(p.xp))
		}
		for j := range p.xp {
			if p.xp[j] < 0 || p.xp[j] > float32(testConfig.width) || p.yp[j] < 0 || p.yp[j] > float32(testConfig.height) {
				t.Errorf("polygon %d point %d is off screen: (%v, %v)", i, j, p.xp[j], p.yp[j])
			}
		}
		if p.strokeClr != outlineColor {
			t.Errorf("polygon %d: unexpected outline %v", i, p.strokeClr)
		}
	}

	// top face is lit at ambient + (1-ambient) * cos(angle to the light)
	top := b.polygons[1]
	want := shade(color.RGBA{255, 255, 0, 255}, ambient+(1-ambient)/math.Sqrt(3))
	if top.fillClr != want {
		t.Errorf("expected the top face to be %v, got %v", want, top.fillClr)
	}

	paintAxes(b, g.projection.Clone().Multiply(g.view), testConfig.width, testConfig.height)
	if b.lines != 3 {
		t.Errorf("expected 3 axis lines, got %d", b.lines)
	}
}
