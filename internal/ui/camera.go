package ui

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera defaults: eye at (0, 15, 30) looking at center court
const (
	DefaultFOV      = 75.0
	DefaultYaw      = 0.0
	DefaultPitch    = 26.565 // atan(15/30) in degrees
	DefaultDistance = 33.541 // |(0, 15, 30)|

	MinPitch = 5.0
	MaxPitch = 85.0

	// Terminal cells are roughly twice as tall as they are wide
	CellAspect = 2.0

	yawPerCell   = 2.0 // degrees per column dragged
	pitchPerCell = 3.0 // degrees per row dragged
)

// Camera is an orbiting perspective camera around a fixed target
type Camera struct {
	Target   mgl64.Vec3
	Yaw      float64 // degrees around +Y, 0 puts the eye on +Z
	Pitch    float64 // degrees above the floor plane
	Distance float64
	FOV      float64

	// Enabled gates drag-to-orbit
	Enabled bool

	dragging     bool
	lastX, lastY int
}

func NewCamera() *Camera {
	return &Camera{
		Yaw:      DefaultYaw,
		Pitch:    DefaultPitch,
		Distance: DefaultDistance,
		FOV:      DefaultFOV,
		Enabled:  true,
	}
}

// Eye returns the camera position in world space
func (c *Camera) Eye() mgl64.Vec3 {
	yaw := mgl64.DegToRad(c.Yaw)
	pitch := mgl64.DegToRad(c.Pitch)
	offset := mgl64.Vec3{
		math.Cos(pitch) * math.Sin(yaw),
		math.Sin(pitch),
		math.Cos(pitch) * math.Cos(yaw),
	}
	return c.Target.Add(offset.Mul(c.Distance))
}

// Orbit rotates the eye around the target. Ignored while disabled.
func (c *Camera) Orbit(dYaw, dPitch float64) {
	if !c.Enabled {
		return
	}
	c.Yaw = math.Mod(c.Yaw+dYaw, 360)
	c.Pitch = math.Max(MinPitch, math.Min(MaxPitch, c.Pitch+dPitch))
}

// Drag feeds mouse state; a held button moves the orbit
func (c *Camera) Drag(x, y int, pressed bool) {
	if !pressed {
		c.dragging = false
		return
	}
	if c.dragging {
		c.Orbit(float64(x-c.lastX)*-yawPerCell, float64(y-c.lastY)*pitchPerCell)
	}
	c.dragging = true
	c.lastX, c.lastY = x, y
}

// Projection maps world points onto a w x h cell viewport
type Projection struct {
	viewProj mgl64.Mat4
	w, h     int
}

// Projection builds the view-projection for a viewport of w x h cells
func (c *Camera) Projection(w, h int) Projection {
	aspect := 1.0
	if h > 0 {
		aspect = float64(w) / (float64(h) * CellAspect)
	}
	proj := mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, 0.1, 1000)
	view := mgl64.LookAtV(c.Eye(), c.Target, mgl64.Vec3{0, 1, 0})
	return Projection{viewProj: proj.Mul4(view), w: w, h: h}
}

// Project returns the cell for a world point and whether it is in front of
// the camera. Cells may fall outside the viewport.
func (p Projection) Project(v mgl64.Vec3) (x, y int, ok bool) {
	clip := p.viewProj.Mul4x1(v.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	x = int(math.Floor((ndc.X() + 1) / 2 * float64(p.w)))
	y = int(math.Floor((1 - ndc.Y()) / 2 * float64(p.h)))
	return x, y, true
}
