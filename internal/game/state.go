package game

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/diegok/hoopsim/internal/protocol"
)

// ScoringRule selects how a basket is detected
type ScoringRule int

const (
	// ScoringProximity counts any pass close enough to the rim center,
	// from any direction.
	ScoringProximity ScoringRule = iota
	// ScoringRimPlane also requires the ball to be falling through the
	// rim plane on this tick.
	ScoringRimPlane
)

func (r ScoringRule) String() string {
	if r == ScoringRimPlane {
		return "rim"
	}
	return "proximity"
}

// ParseScoringRule parses the --scoring flag value
func ParseScoringRule(s string) (ScoringRule, error) {
	switch s {
	case "", "proximity":
		return ScoringProximity, nil
	case "rim":
		return ScoringRimPlane, nil
	}
	return ScoringProximity, fmt.Errorf("unknown scoring rule %q (want proximity or rim)", s)
}

// Game owns the ball, the court and the score
type Game struct {
	Ball   *BallState
	Court  *Court
	Hoops  [2]Hoop
	Score  int
	Tick   int
	Orbit  bool
	Tuning Tuning
	Rule   ScoringRule

	display Display
	hud     HUD
}

// UpdateResult reports what happened during one Update
type UpdateResult struct {
	StepEvents
	Scored bool
	Hoop   int
}

// NewGame creates a game with the ball under control at the start position
func NewGame(t Tuning, power float64, display Display, hud HUD) *Game {
	if display == nil {
		display = NopDisplay{}
	}
	if hud == nil {
		hud = NopHUD{}
	}

	court := NewCourt()
	g := &Game{
		Ball:    NewBall(clamp(power, t.MinPower, t.MaxPower)),
		Court:   court,
		Hoops:   court.Hoops(),
		Orbit:   true,
		Tuning:  t,
		display: display,
		hud:     hud,
	}

	hud.SetScore(g.Score)
	hud.SetPower(g.Ball.Power)
	display.SetOrbit(g.Orbit)
	display.DrawBall(g.Ball.Position, g.Ball.Rotation)
	return g
}

// Update runs one game tick
func (g *Game) Update(now time.Time) UpdateResult {
	g.Tick++

	prev := g.Ball.Position
	res := UpdateResult{StepEvents: Step(g.Ball, &g.Tuning), Hoop: -1}

	if g.Ball.Mode == ModeShot {
		if hoop, ok := g.CheckScore(now, prev); ok {
			res.Scored = true
			res.Hoop = hoop
		}
	}

	g.display.DrawBall(g.Ball.Position, g.Ball.Rotation)
	return res
}

// CheckScore awards a basket when the ball is inside a hoop's scoring zone
// and the debounce window has passed. prev is the ball position before this
// tick's integration. Returns the hoop index that scored.
func (g *Game) CheckScore(now time.Time, prev mgl64.Vec3) (int, bool) {
	b := g.Ball
	t := &g.Tuning

	if now.Sub(b.LastScoreAt) < t.ScoreCooldown {
		return -1, false
	}

	for i, h := range g.Hoops {
		if !g.inScoringZone(h, prev) {
			continue
		}

		g.Score += t.ScorePoints
		b.LastScoreAt = now
		g.hud.SetScore(g.Score)
		g.display.FlashHoop(i)
		return i, true
	}

	return -1, false
}

func (g *Game) inScoringZone(h Hoop, prev mgl64.Vec3) bool {
	b := g.Ball
	t := &g.Tuning

	if b.Position.Sub(h.Center).Len() >= h.RimRadius+t.RimTolerance {
		return false
	}
	if math.Abs(b.Position.Y()-h.Center.Y()) >= t.HeightTolerance {
		return false
	}

	if g.Rule == ScoringRimPlane {
		return b.Velocity.Y() < 0 && prev.Y() >= h.Center.Y() && b.Position.Y() < h.Center.Y()
	}
	return true
}

// Shoot launches the ball at the target hoop if it is under control
func (g *Game) Shoot() bool {
	return g.Ball.Shoot(g.Hoops, &g.Tuning)
}

// Reset returns the ball to the start position. Always allowed.
func (g *Game) Reset() {
	g.Ball.Reset()
}

// AdjustPower changes shot power and reports the new value to the HUD
func (g *Game) AdjustPower(delta float64) bool {
	if !g.Ball.AdjustPower(delta, &g.Tuning) {
		return false
	}
	g.hud.SetPower(g.Ball.Power)
	return true
}

// HandleKey applies one key edge to the ball's intent.
// Disallowed actions are ignored silently.
func (g *Game) HandleKey(ev protocol.KeyEvent) {
	b := g.Ball
	controlled := b.Mode == ModeControlled

	switch ev.Key {
	case protocol.KeyLeft, protocol.KeyRight:
		if ev.Edge == protocol.EdgeUp {
			b.DirX = 0
		} else if controlled {
			b.DirX = keyAxis(ev.Key == protocol.KeyRight)
		}

	case protocol.KeyUp, protocol.KeyDown:
		if ev.Edge == protocol.EdgeUp {
			b.DirZ = 0
		} else if controlled {
			b.DirZ = keyAxis(ev.Key == protocol.KeyDown)
		}

	case protocol.KeyPowerUp:
		if ev.Edge == protocol.EdgeDown {
			g.AdjustPower(g.Tuning.PowerStep)
		}

	case protocol.KeyPowerDown:
		if ev.Edge == protocol.EdgeDown {
			g.AdjustPower(-g.Tuning.PowerStep)
		}

	case protocol.KeyShoot:
		if ev.Edge == protocol.EdgeDown {
			g.Shoot()
		}

	case protocol.KeyReset:
		if ev.Edge == protocol.EdgeDown {
			g.Reset()
		}

	case protocol.KeyOrbit:
		if ev.Edge == protocol.EdgeDown {
			g.Orbit = !g.Orbit
			g.display.SetOrbit(g.Orbit)
		}
	}
}

func keyAxis(positive bool) int {
	if positive {
		return 1
	}
	return -1
}

// Snapshot converts to a serializable frame
func (g *Game) Snapshot() protocol.Frame {
	b := g.Ball
	mode := protocol.ModeControlled
	if b.Mode == ModeShot {
		mode = protocol.ModeShot
	}

	return protocol.Frame{
		Tick: g.Tick,
		Ball: protocol.BallState{
			X: b.Position.X(), Y: b.Position.Y(), Z: b.Position.Z(),
			VX: b.Velocity.X(), VY: b.Velocity.Y(), VZ: b.Velocity.Z(),
		},
		Mode:    mode,
		Power:   b.Power,
		Bounces: b.Bounces,
		Score:   g.Score,
		Orbit:   g.Orbit,
	}
}
