package main

import (
	"image/color"
	"math"

	"github.com/smasonuk/glmath"
)

const (
	ambient    = 0.2
	axisLength = 2.5
)

type face struct {
	indices [4]int
	normal  glmath.Vector3
	col     color.RGBA
}

// Vertices 0-3 lie on the Z- face, 4-7 on Z+.
var cubeVertices = [8]glmath.Vector3{
	{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1},
	{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1},
}

var cubeFaces = []face{
	{[4]int{4, 5, 6, 7}, glmath.Vector3{Z: 1}, color.RGBA{0, 0, 255, 255}},
	{[4]int{1, 0, 3, 2}, glmath.Vector3{Z: -1}, color.RGBA{255, 0, 0, 255}},
	{[4]int{0, 1, 5, 4}, glmath.Vector3{Y: -1}, color.RGBA{0, 255, 0, 255}},
	{[4]int{3, 7, 6, 2}, glmath.Vector3{Y: 1}, color.RGBA{255, 255, 0, 255}},
	{[4]int{1, 2, 6, 5}, glmath.Vector3{X: 1}, color.RGBA{0, 255, 255, 255}},
	{[4]int{0, 4, 7, 3}, glmath.Vector3{X: -1}, color.RGBA{255, 0, 255, 255}},
}

var (
	outlineColor = color.RGBA{0, 0, 0, 255}

	// lightDirection points from a surface toward the light, in world space.
	lightDirection = func() glmath.Vector3 {
		v := glmath.Vector3{X: 1, Y: 1, Z: 1}
		v.Normalize()
		return v
	}()
)

// polygonBatcher receives screen space primitives. The ebiten screen is one
// implementation; tests record the calls instead.
type polygonBatcher interface {
	AddPolygonAndOutline(xp, yp []float32, fillClr, strokeClr color.RGBA, strokeWidth float32)
	AddLine(x0, y0, x1, y1 float32, clr color.RGBA)
}

// toScreen maps normalized device coordinates to pixels, flipping y.
func toScreen(ndc *glmath.Vector3, width, height int) (float32, float32) {
	return float32((ndc.X + 1) * 0.5 * float64(width)),
		float32((1 - ndc.Y) * 0.5 * float64(height))
}

func shade(c color.RGBA, intensity float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * intensity),
		G: uint8(float64(c.G) * intensity),
		B: uint8(float64(c.B) * intensity),
		A: c.A,
	}
}

// paintCube sends the camera facing faces of the cube to b and returns how
// many were drawn. The camera sits at the origin of eye space, so a face is
// visible when its normal points back against the centre.
func paintCube(b polygonBatcher, modelView, projection *glmath.Matrix4, orientation *glmath.Quaternion, width, height int) int {
	mvp := projection.Clone().Multiply(modelView)

	var eye [len(cubeVertices)]glmath.Vector3
	var xs, ys [len(cubeVertices)]float32
	for i := range cubeVertices {
		eye[i] = *cubeVertices[i].Clone().MultiplyMatrix(modelView)
		xs[i], ys[i] = toScreen(cubeVertices[i].Clone().Project(mvp), width, height)
	}

	drawn := 0
	for _, f := range cubeFaces {
		var centre glmath.Vector3
		for _, idx := range f.indices {
			centre.Add(&eye[idx])
		}
		centre.DivideScalar(float64(len(f.indices)))

		n := modelView.RotateVector(f.normal.Clone())
		if n.Dot(&centre) >= 0 {
			continue
		}

		world := orientation.MultiplyVector(&f.normal)
		intensity := ambient + (1-ambient)*math.Max(0, world.Dot(&lightDirection))

		xp := make([]float32, len(f.indices))
		yp := make([]float32, len(f.indices))
		for i, idx := range f.indices {
			xp[i], yp[i] = xs[idx], ys[idx]
		}
		b.AddPolygonAndOutline(xp, yp, shade(f.col, intensity), outlineColor, 1.5)
		drawn++
	}
	return drawn
}

// paintAxes draws the world X, Y and Z axes in red, green and blue.
func paintAxes(b polygonBatcher, viewProjection *glmath.Matrix4, width, height int) {
	ox, oy := toScreen(glmath.Zero().Project(viewProjection), width, height)

	axes := []struct {
		axis glmath.Axis
		col  color.RGBA
	}{
		{glmath.X, color.RGBA{255, 64, 64, 255}},
		{glmath.Y, color.RGBA{64, 255, 64, 255}},
		{glmath.Z, color.RGBA{64, 64, 255, 255}},
	}
	for _, a := range axes {
		tip := glmath.AxisVector(a.axis).MultiplyScalar(axisLength).Project(viewProjection)
		tx, ty := toScreen(tip, width, height)
		b.AddLine(ox, oy, tx, ty, a.col)
	}
}
