package game

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func shotBall(pos, vel mgl64.Vec3) *BallState {
	ball := NewBall(DefaultPower)
	ball.Mode = ModeShot
	ball.Position = pos
	ball.Velocity = vel
	return ball
}

func TestStep_ControlledMove(t *testing.T) {
	tuning := DefaultTuning()
	ball := NewBall(DefaultPower)
	ball.DirX = -1

	ev := Step(ball, &tuning)

	if !ev.Moved {
		t.Error("expected Moved event")
	}
	want := mgl64.Vec3{-0.2, 4, 0}
	if !vecApprox(ball.Position, want) {
		t.Errorf("expected position %v, got %v", want, ball.Position)
	}
	if ball.Velocity != (mgl64.Vec3{}) {
		t.Errorf("expected velocity to stay zero, got %v", ball.Velocity)
	}
}

func TestStep_ControlledIdle(t *testing.T) {
	tuning := DefaultTuning()
	ball := NewBall(DefaultPower)

	for i := 0; i < 100; i++ {
		Step(ball, &tuning)
	}

	if ball.Position != StartPosition {
		t.Errorf("expected ball to hover at %v without gravity, got %v", StartPosition, ball.Position)
	}
}

func TestStep_ControlledStaysInBounds(t *testing.T) {
	tuning := DefaultTuning()

	dirs := []struct{ x, z int }{
		{1, 1}, {-1, -1}, {1, -1}, {-1, 1}, {1, 0}, {0, -1},
	}

	for _, d := range dirs {
		ball := NewBall(DefaultPower)
		ball.DirX, ball.DirZ = d.x, d.z

		for i := 0; i < 200; i++ {
			Step(ball, &tuning)
			x, z := ball.Position.X(), ball.Position.Z()
			if x < -14 || x > 14 || z < -7 || z > 7 {
				t.Fatalf("dir %v: ball left the court at tick %d: (%f, %f)", d, i, x, z)
			}
		}

		if d.x != 0 && math.Abs(ball.Position.X()) != 14 {
			t.Errorf("dir %v: expected ball pinned at |x|=14, got %f", d, ball.Position.X())
		}
		if d.z != 0 && math.Abs(ball.Position.Z()) != 7 {
			t.Errorf("dir %v: expected ball pinned at |z|=7, got %f", d, ball.Position.Z())
		}
	}
}

func TestStep_GravityBeforePosition(t *testing.T) {
	tuning := DefaultTuning()
	ball := shotBall(mgl64.Vec3{0, 5, 0}, mgl64.Vec3{})

	Step(ball, &tuning)

	if !approx(ball.Velocity.Y(), -0.05) {
		t.Errorf("expected VY=-0.05, got %f", ball.Velocity.Y())
	}
	if !approx(ball.Position.Y(), 4.95) {
		t.Errorf("expected Y=4.95 (semi-implicit), got %f", ball.Position.Y())
	}
}

func TestStep_ShotIgnoresDirection(t *testing.T) {
	tuning := DefaultTuning()
	ball := shotBall(mgl64.Vec3{0, 5, 0}, mgl64.Vec3{})
	ball.DirX = 1

	Step(ball, &tuning)

	if ball.Position.X() != 0 {
		t.Errorf("expected X unchanged during shot, got %f", ball.Position.X())
	}
}

func TestStep_FloorBounce(t *testing.T) {
	tuning := DefaultTuning()
	ball := shotBall(mgl64.Vec3{0, 1.02, 0}, mgl64.Vec3{0.5, -0.1, 0.3})

	ev := Step(ball, &tuning)

	if !ev.Bounced {
		t.Fatal("expected Bounced event")
	}
	if ev.Reset {
		t.Fatal("did not expect reset")
	}
	if ball.Bounces != 1 {
		t.Errorf("expected 1 bounce, got %d", ball.Bounces)
	}
	want := mgl64.Vec3{0.45, 0.105, 0.27}
	if !vecApprox(ball.Velocity, want) {
		t.Errorf("expected velocity %v, got %v", want, ball.Velocity)
	}
}

func TestStep_NoBounceWhenRising(t *testing.T) {
	tuning := DefaultTuning()
	ball := shotBall(mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{0, 0.3, 0})

	ev := Step(ball, &tuning)

	if ev.Bounced {
		t.Error("expected no bounce while moving up")
	}
	if ball.Bounces != 0 {
		t.Errorf("expected 0 bounces, got %d", ball.Bounces)
	}
}

func TestStep_NearStopResets(t *testing.T) {
	tuning := DefaultTuning()
	ball := shotBall(mgl64.Vec3{0, 1.0, 0}, mgl64.Vec3{0.005, -0.05, 0.005})

	ev := Step(ball, &tuning)

	if !ev.Reset {
		t.Fatal("expected near-stop reset")
	}
	assertResetState(t, ball)
}

func TestStep_MaxBouncesResets(t *testing.T) {
	tuning := DefaultTuning()
	ball := shotBall(mgl64.Vec3{0, 1.02, 0}, mgl64.Vec3{0.5, -0.1, 0})
	ball.Bounces = tuning.MaxBounces

	ev := Step(ball, &tuning)

	if !ev.Reset {
		t.Fatal("expected reset after exceeding max bounces")
	}
	assertResetState(t, ball)
}

func TestStep_WallBounce(t *testing.T) {
	tuning := DefaultTuning()
	ball := shotBall(mgl64.Vec3{14.05, 5, 0}, mgl64.Vec3{0.2, 0, 0})

	ev := Step(ball, &tuning)

	if !ev.WallHit {
		t.Fatal("expected WallHit event")
	}
	if !approx(ball.Velocity.X(), -0.14) {
		t.Errorf("expected VX=-0.14, got %f", ball.Velocity.X())
	}
	// No position correction
	if !approx(ball.Position.X(), 14.25) {
		t.Errorf("expected X=14.25 left outside the wall, got %f", ball.Position.X())
	}
}

func TestStep_WallBounceZ(t *testing.T) {
	tuning := DefaultTuning()
	ball := shotBall(mgl64.Vec3{0, 5, -6.9}, mgl64.Vec3{0, 0, -0.3})

	Step(ball, &tuning)

	if !approx(ball.Velocity.Z(), 0.21) {
		t.Errorf("expected VZ=0.21, got %f", ball.Velocity.Z())
	}
}

func TestStep_WallIgnoredWhenMovingInward(t *testing.T) {
	tuning := DefaultTuning()

	tests := []struct {
		name string
		vx   float64
	}{
		{"moving inward", -0.2},
		{"zero velocity", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ball := shotBall(mgl64.Vec3{14.5, 5, 0}, mgl64.Vec3{tt.vx, 0, 0})

			ev := Step(ball, &tuning)

			if ev.WallHit {
				t.Error("did not expect a wall hit")
			}
			if ball.Velocity.X() != tt.vx {
				t.Errorf("expected VX unchanged at %f, got %f", tt.vx, ball.Velocity.X())
			}
		})
	}
}

func TestStep_SpinFollowsHorizontalVelocity(t *testing.T) {
	tuning := DefaultTuning()

	still := shotBall(mgl64.Vec3{0, 8, 0}, mgl64.Vec3{0, 0.5, 0})
	Step(still, &tuning)
	if !still.Rotation.ApproxEqual(mgl64.QuatIdent()) {
		t.Errorf("expected no spin without horizontal velocity, got %v", still.Rotation)
	}

	rolling := shotBall(mgl64.Vec3{0, 8, 0}, mgl64.Vec3{0, 0.5, 0.5})
	Step(rolling, &tuning)
	up := rolling.Rotation.Rotate(mgl64.Vec3{0, 1, 0})
	if up.Z() <= 0 {
		t.Errorf("expected top of ball to roll toward +Z, got %v", up)
	}
	if !approx(rolling.Rotation.Len(), 1) {
		t.Errorf("expected unit rotation, got length %f", rolling.Rotation.Len())
	}
}

func TestStep_EveryShotSettles(t *testing.T) {
	tuning := DefaultTuning()
	hoops := NewCourt().Hoops()

	starts := []mgl64.Vec3{
		{0, 4, 0},
		{-10, 4, 5},
		{14, 4, -7},
		{-14, 4, 7},
		{6, 4, 0},
	}
	powers := []float64{0.1, 0.5, 1.0}

	for _, start := range starts {
		for _, power := range powers {
			ball := NewBall(power)
			ball.Position = start
			ball.Shoot(hoops, &tuning)

			settled := false
			var firstBounceVY, lastBounceVY float64
			for i := 0; i < 10000; i++ {
				ev := Step(ball, &tuning)
				if ev.Bounced && !ev.Reset {
					if firstBounceVY == 0 {
						firstBounceVY = ball.Velocity.Y()
					}
					lastBounceVY = ball.Velocity.Y()
				}
				if ev.Reset {
					settled = true
					break
				}
			}

			if !settled {
				t.Errorf("start %v power %.1f: shot never settled", start, power)
				continue
			}
			if lastBounceVY > firstBounceVY {
				t.Errorf("start %v power %.1f: bounce energy grew from %f to %f", start, power, firstBounceVY, lastBounceVY)
			}
			assertResetState(t, ball)
		}
	}
}

func assertResetState(t *testing.T, ball *BallState) {
	t.Helper()
	if ball.Position != StartPosition {
		t.Errorf("expected position %v after reset, got %v", StartPosition, ball.Position)
	}
	if ball.Velocity != (mgl64.Vec3{}) {
		t.Errorf("expected zero velocity after reset, got %v", ball.Velocity)
	}
	if ball.Mode != ModeControlled {
		t.Errorf("expected ModeControlled after reset, got %v", ball.Mode)
	}
	if ball.Bounces != 0 {
		t.Errorf("expected 0 bounces after reset, got %d", ball.Bounces)
	}
}
