package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/aquilax/go-perlin"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/smasonuk/glmath"
)

const (
	nearPlane     = 0.1
	farPlane      = 100.0
	orbitDistance = 6.0

	// degrees of orbit per pixel dragged
	dragScale = 0.4
	maxPitch  = 89.0

	keyframeAngle  = 120.0
	driftAmplitude = 0.6
	driftRate      = 0.3
)

var spinAxes = []*glmath.Vector3{
	glmath.NewVector3(1, 1, 0),
	glmath.NewVector3(0, 1, 1),
	glmath.NewVector3(1, 0, -1),
}

type Game struct {
	cfg config

	projection *glmath.Matrix4
	view       *glmath.Matrix4
	model      *glmath.Matrix4

	// camera orbit in degrees
	yaw, pitch float64

	from, to    *glmath.Quaternion
	orientation *glmath.Quaternion
	progress    float64
	step        int

	noise *perlin.Perlin
	drift bool
	clock float64

	dragging     bool
	lastX, lastY int
}

func NewGame(cfg config) *Game {
	log.Println("Initializing cube viewer...")
	aspect := float64(cfg.width) / float64(cfg.height)

	g := &Game{
		cfg:         cfg,
		projection:  glmath.NewMatrix4().SetToPerspective(nearPlane, farPlane, cfg.fov, aspect),
		view:        glmath.NewMatrix4(),
		model:       glmath.NewMatrix4(),
		pitch:       -20,
		from:        glmath.IdentityQuaternion(),
		to:          nextKeyframe(glmath.IdentityQuaternion(), 0),
		orientation: glmath.IdentityQuaternion(),
		noise:       perlin.NewPerlin(2, 2, 3, cfg.seed),
	}
	g.updateView()

	log.Printf("Initialization Complete. %dx%d, fov %.1f", cfg.width, cfg.height, cfg.fov)
	return g
}

// nextKeyframe turns q a further keyframeAngle degrees about the axis
// chosen by step.
func nextKeyframe(q *glmath.Quaternion, step int) *glmath.Quaternion {
	turn := glmath.NewQuaternionAxisAngle(spinAxes[step%len(spinAxes)], keyframeAngle)
	next := q.Clone().Multiply(turn)
	next.Normalize()
	return next
}

// advance moves the cube dt seconds along its keyframe path.
func (g *Game) advance(dt float64) {
	g.clock += dt
	g.progress += dt * g.cfg.speed
	for g.progress >= 1 {
		g.progress--
		g.step++
		g.from.SetAllFrom(g.to)
		g.to = nextKeyframe(g.to, g.step)
	}
	g.orientation.Slerp(g.from, g.to, g.progress, true)
	g.model.SetAllTRS(glmath.Zero(), glmath.One(), g.orientation)
}

func (g *Game) eye() *glmath.Vector3 {
	orbit := new(glmath.Quaternion).FromEuler(g.yaw, g.pitch, 0)
	return orbit.MultiplyVector(glmath.NewVector3(0, 0, orbitDistance))
}

func (g *Game) updateView() {
	g.view.SetToLookAtPosition(g.eye(), glmath.Zero(), glmath.UnitY())
	if g.drift {
		// shifts in eye space, so the cube wanders across the screen
		g.view.TranslateXYZ(
			driftAmplitude*g.noise.Noise1D(g.clock*driftRate),
			driftAmplitude*g.noise.Noise1D(g.clock*driftRate+100),
			0,
		)
	}
}

func (g *Game) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.drift = !g.drift
		log.Printf("Camera drift: %v", g.drift)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.dragging = true
		g.lastX, g.lastY = ebiten.CursorPosition()
	}
	if g.dragging {
		x, y := ebiten.CursorPosition()
		g.orbit(x-g.lastX, y-g.lastY)
		g.lastX, g.lastY = x, y
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.dragging = false
	}
}

// orbit swings the camera by a mouse movement in pixels.
func (g *Game) orbit(dx, dy int) {
	g.yaw -= float64(dx) * dragScale
	g.pitch = glmath.Clamp(g.pitch-float64(dy)*dragScale, -maxPitch, maxPitch)
}

func (g *Game) Update() error {
	g.advance(1 / float64(ebiten.TPS()))
	g.handleInput()
	g.updateView()
	return nil
}

func (g *Game) status(drawn int) string {
	return fmt.Sprintf("FPS: %0.2f  faces: %d\ncube yaw %.1f pitch %.1f roll %.1f\ncamera yaw %.0f pitch %.0f drift %v\ndrag to orbit, space toggles drift",
		ebiten.ActualFPS(), drawn,
		glmath.RadiansToDegrees(g.orientation.RotationY()),
		glmath.RadiansToDegrees(g.orientation.RotationX()),
		glmath.RadiansToDegrees(g.orientation.RotationZ()),
		g.yaw, g.pitch, g.drift,
	)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	b := &screenBatcher{screen: screen}

	modelView := g.view.Clone().Multiply(g.model)
	drawn := paintCube(b, modelView, g.projection, g.orientation, g.cfg.width, g.cfg.height)
	paintAxes(b, g.projection.Clone().Multiply(g.view), g.cfg.width, g.cfg.height)

	ebitenutil.DebugPrint(screen, g.status(drawn))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.width, g.cfg.height
}
