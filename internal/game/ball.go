package game

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Mode is what currently drives the ball
type Mode int

const (
	// ModeControlled: steered directly by input, no gravity
	ModeControlled Mode = iota
	// ModeShot: ballistic, ignores direction input
	ModeShot
)

func (m Mode) String() string {
	if m == ModeShot {
		return "shot"
	}
	return "controlled"
}

// StartPosition is where the ball sits after a reset
var StartPosition = mgl64.Vec3{0, 4, 0}

// BallState is the single mutable entity of the simulation
type BallState struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Rotation mgl64.Quat
	Mode     Mode

	// Held movement intent, each in {-1, 0, 1}
	DirX, DirZ int

	Power       float64
	Bounces     int
	LastScoreAt time.Time
}

// NewBall creates a ball at the start position with the given shot power
func NewBall(power float64) *BallState {
	b := &BallState{
		Rotation: mgl64.QuatIdent(),
		Power:    power,
	}
	b.Reset()
	return b
}

// Reset puts the ball back under control at the start position.
// Power, spin orientation and the scoring debounce survive a reset.
func (b *BallState) Reset() {
	b.Position = StartPosition
	b.Velocity = mgl64.Vec3{}
	b.Mode = ModeControlled
	b.Bounces = 0
}

// AdjustPower changes shot power by delta, snapped to the power grid.
// Returns false when the ball is not under control.
func (b *BallState) AdjustPower(delta float64, t *Tuning) bool {
	if b.Mode != ModeControlled {
		return false
	}
	p := b.Power + delta
	if t.PowerStep > 0 {
		p = math.Round(p/t.PowerStep) * t.PowerStep
	}
	b.Power = clamp(p, t.MinPower, t.MaxPower)
	return true
}

// TargetHoop picks the hoop a shot from the current position aims at:
// index 1 when the ball is on the negative-X half, index 0 otherwise.
func (b *BallState) TargetHoop() int {
	if b.Position.X() < 0 {
		return 1
	}
	return 0
}

// Shoot launches the ball toward the target hoop's aim point.
// Returns false when the ball is already in flight.
func (b *BallState) Shoot(hoops [2]Hoop, t *Tuning) bool {
	if b.Mode != ModeControlled {
		return false
	}

	target := b.TargetHoop()
	aim := hoops[target].Center.Add(mgl64.Vec3{0, t.AimHeight, 0})
	dir := aim.Sub(b.Position)
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}

	b.Velocity = dir.Mul(b.Power * t.ShotScale)
	b.Mode = ModeShot
	b.Bounces = 0
	return true
}

// StepEvents reports what happened during one Step
type StepEvents struct {
	Moved   bool
	Bounced bool
	WallHit bool
	Reset   bool
}

// Step advances the ball by one tick
func Step(b *BallState, t *Tuning) StepEvents {
	if b.Mode == ModeControlled {
		return stepControlled(b, t)
	}
	return stepShot(b, t)
}

func stepControlled(b *BallState, t *Tuning) StepEvents {
	if b.DirX == 0 && b.DirZ == 0 {
		return StepEvents{}
	}

	move := mgl64.Vec3{float64(b.DirX), 0, float64(b.DirZ)}.Mul(t.MoveSpeed)
	p := b.Position.Add(move)
	p[0] = clamp(p[0], -t.BoundX, t.BoundX)
	p[2] = clamp(p[2], -t.BoundZ, t.BoundZ)
	b.Position = p

	return StepEvents{Moved: true}
}

func stepShot(b *BallState, t *Tuning) StepEvents {
	var ev StepEvents

	b.Velocity = b.Velocity.Add(t.GravityVec())
	b.Position = b.Position.Add(b.Velocity)
	spin(b, t.SpinFactor)

	if b.Position.Y() < t.BallRadius && b.Velocity.Y() < 0 {
		b.Velocity[1] *= -t.Restitution
		b.Velocity[0] *= t.Friction
		b.Velocity[2] *= t.Friction
		b.Bounces++
		ev.Bounced = true

		if b.Bounces > t.MaxBounces || nearStop(b.Velocity, t) {
			b.Reset()
			ev.Reset = true
			return ev
		}
	}

	// Only velocity is redirected; the ball may sit briefly outside the bounds
	if outward(b.Position.X(), b.Velocity.X(), t.BoundX) {
		b.Velocity[0] *= -t.Restitution
		ev.WallHit = true
	}
	if outward(b.Position.Z(), b.Velocity.Z(), t.BoundZ) {
		b.Velocity[2] *= -t.Restitution
		ev.WallHit = true
	}

	return ev
}

// spin rolls the displayed ball around its local X and Z axes from horizontal velocity
func spin(b *BallState, k float64) {
	rx := mgl64.QuatRotate(b.Velocity.Z()*k, mgl64.Vec3{1, 0, 0})
	rz := mgl64.QuatRotate(-b.Velocity.X()*k, mgl64.Vec3{0, 0, 1})
	b.Rotation = b.Rotation.Mul(rx).Mul(rz).Normalize()
}

func nearStop(v mgl64.Vec3, t *Tuning) bool {
	return math.Abs(v.X()) < t.StopVX && math.Abs(v.Z()) < t.StopVZ && math.Abs(v.Y()) < t.StopVY
}

// outward reports a wall contact that is still moving through the wall.
// A zero velocity component never counts.
func outward(p, v, bound float64) bool {
	if math.Abs(p) <= bound {
		return false
	}
	return (p > 0 && v > 0) || (p < 0 && v < 0)
}

func clamp(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
