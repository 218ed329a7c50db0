package main

import (
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteOnce sync.Once
	whiteSub  *ebiten.Image
)

// solidSource returns a 1x1 white image for DrawTriangles. It is taken from
// the middle of a 3x3 image so that filtering never samples an edge.
func solidSource() *ebiten.Image {
	whiteOnce.Do(func() {
		whiteImage := ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSub
}

// screenBatcher draws straight onto an ebiten image.
type screenBatcher struct {
	screen *ebiten.Image
}

func (b *screenBatcher) AddPolygonAndOutline(xp, yp []float32, fillClr, strokeClr color.RGBA, strokeWidth float32) {
	fillConvexPolygon(b.screen, xp, yp, fillClr)
	drawPolygonOutline(b.screen, xp, yp, strokeWidth, strokeClr)
}

func (b *screenBatcher) AddLine(x0, y0, x1, y1 float32, clr color.RGBA) {
	vector.StrokeLine(b.screen, x0, y0, x1, y1, 2, clr, true)
}

func colorScale(clr color.RGBA) (r, g, b, a float32) {
	return float32(clr.R) / 255.0, float32(clr.G) / 255.0, float32(clr.B) / 255.0, float32(clr.A) / 255.0
}

func fillConvexPolygon(screen *ebiten.Image, xp, yp []float32, clr color.RGBA) {
	if len(xp) < 3 {
		return
	}

	indices := make([]uint16, 0, (len(xp)-2)*3)
	for i := 2; i < len(xp); i++ {
		indices = append(indices, 0, uint16(i-1), uint16(i))
	}

	cr, cg, cb, ca := colorScale(clr)
	vertices := make([]ebiten.Vertex, len(xp))
	for i := range xp {
		vertices[i] = ebiten.Vertex{
			DstX:   xp[i],
			DstY:   yp[i],
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		}
	}

	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	screen.DrawTriangles(vertices, indices, solidSource(), op)
}

// drawPolygonOutline strokes the closed outline through the given points.
func drawPolygonOutline(screen *ebiten.Image, xp, yp []float32, strokeWidth float32, clr color.RGBA) {
	if len(xp) < 2 {
		return
	}

	var path vector.Path
	path.MoveTo(xp[0], yp[0])
	for i := 1; i < len(xp); i++ {
		path.LineTo(xp[i], yp[i])
	}
	path.Close()

	strokeOp := &vector.StrokeOptions{
		Width:    strokeWidth,
		LineJoin: vector.LineJoinRound,
	}
	vertices, indices := path.AppendVerticesAndIndicesForStroke(nil, nil, strokeOp)

	cr, cg, cb, ca := colorScale(clr)
	for i := range vertices {
		vertices[i].ColorR = cr
		vertices[i].ColorG = cg
		vertices[i].ColorB = cb
		vertices[i].ColorA = ca
		vertices[i].SrcX = 1
		vertices[i].SrcY = 1
	}

	screen.DrawTriangles(vertices, indices, solidSource(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}
