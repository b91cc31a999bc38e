package game

import "github.com/go-gl/mathgl/mgl64"

// Display receives the ball pose every tick and transient scene cues.
// Implementations must not block the tick.
type Display interface {
	DrawBall(pos mgl64.Vec3, rot mgl64.Quat)
	FlashHoop(hoop int)
	SetOrbit(enabled bool)
}

// HUD receives score and shot power updates
type HUD interface {
	SetScore(score int)
	SetPower(power float64)
}

// NopDisplay discards everything, for headless runs
type NopDisplay struct{}

func (NopDisplay) DrawBall(mgl64.Vec3, mgl64.Quat) {}
func (NopDisplay) FlashHoop(int)                   {}
func (NopDisplay) SetOrbit(bool)                   {}

// NopHUD discards everything
type NopHUD struct{}

func (NopHUD) SetScore(int)       {}
func (NopHUD) SetPower(float64) {}
