package game

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewBall(t *testing.T) {
	ball := NewBall(DefaultPower)

	if ball.Position != StartPosition {
		t.Errorf("expected position %v, got %v", StartPosition, ball.Position)
	}
	if ball.Velocity != (mgl64.Vec3{}) {
		t.Errorf("expected zero velocity, got %v", ball.Velocity)
	}
	if ball.Mode != ModeControlled {
		t.Errorf("expected ModeControlled, got %v", ball.Mode)
	}
	if ball.Power != DefaultPower {
		t.Errorf("expected power %f, got %f", DefaultPower, ball.Power)
	}
	if ball.Rotation != mgl64.QuatIdent() {
		t.Errorf("expected identity rotation, got %v", ball.Rotation)
	}
}

func TestBall_ResetIdempotent(t *testing.T) {
	ball := NewBall(0.8)
	ball.Position = mgl64.Vec3{7, 2, -3}
	ball.Velocity = mgl64.Vec3{0.4, -0.2, 0.1}
	ball.Mode = ModeShot
	ball.Bounces = 4
	ball.LastScoreAt = time.Unix(100, 0)

	ball.Reset()
	once := *ball
	ball.Reset()
	twice := *ball

	if once != twice {
		t.Errorf("second reset changed state: %+v vs %+v", once, twice)
	}
	if twice.Position != (mgl64.Vec3{0, 4, 0}) {
		t.Errorf("expected position (0,4,0), got %v", twice.Position)
	}
	if twice.Velocity != (mgl64.Vec3{}) {
		t.Errorf("expected zero velocity, got %v", twice.Velocity)
	}
	if twice.Mode != ModeControlled {
		t.Errorf("expected ModeControlled, got %v", twice.Mode)
	}
	if twice.Bounces != 0 {
		t.Errorf("expected 0 bounces, got %d", twice.Bounces)
	}
	if twice.Power != 0.8 {
		t.Errorf("expected power kept at 0.8, got %f", twice.Power)
	}
}

func TestBall_AdjustPower(t *testing.T) {
	tuning := DefaultTuning()

	tests := []struct {
		name  string
		start float64
		delta float64
		want  float64
	}{
		{"step up", 0.5, 0.05, 0.55},
		{"step down", 0.5, -0.05, 0.45},
		{"up to max", 0.95, 0.05, 1.0},
		{"past max", 1.0, 0.05, 1.0},
		{"large up", 0.2, 5, 1.0},
		{"down to min", 0.15, -0.05, 0.1},
		{"past min", 0.1, -0.05, 0.1},
		{"large down", 0.9, -5, 0.1},
		{"snaps to grid", 0.5, 0.07, 0.55},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ball := NewBall(tt.start)
			if !ball.AdjustPower(tt.delta, &tuning) {
				t.Fatal("expected adjustment while controlled")
			}
			if !approx(ball.Power, tt.want) {
				t.Errorf("expected power %f, got %f", tt.want, ball.Power)
			}
		})
	}
}

func TestBall_AdjustPowerSaturates(t *testing.T) {
	tuning := DefaultTuning()
	ball := NewBall(DefaultPower)

	for i := 0; i < 40; i++ {
		ball.AdjustPower(tuning.PowerStep, &tuning)
		if ball.Power < tuning.MinPower || ball.Power > tuning.MaxPower {
			t.Fatalf("power left range after %d increments: %f", i+1, ball.Power)
		}
	}
	if ball.Power != 1.0 {
		t.Errorf("expected power to saturate at 1.0, got %f", ball.Power)
	}

	for i := 0; i < 40; i++ {
		ball.AdjustPower(-tuning.PowerStep, &tuning)
		if ball.Power < tuning.MinPower || ball.Power > tuning.MaxPower {
			t.Fatalf("power left range after %d decrements: %f", i+1, ball.Power)
		}
	}
	if ball.Power != 0.1 {
		t.Errorf("expected power to saturate at 0.1, got %f", ball.Power)
	}
}

func TestBall_AdjustPowerIgnoredInFlight(t *testing.T) {
	tuning := DefaultTuning()
	ball := NewBall(DefaultPower)
	ball.Mode = ModeShot

	if ball.AdjustPower(0.05, &tuning) {
		t.Error("expected adjustment to be refused during a shot")
	}
	if ball.Power != DefaultPower {
		t.Errorf("expected power unchanged at %f, got %f", DefaultPower, ball.Power)
	}
}

// rightFirstHoops lists the +X hoop at index 0, the target of a ball at the origin
func rightFirstHoops() [2]Hoop {
	return [2]Hoop{
		{Center: mgl64.Vec3{12.5, 10, 0}, RimRadius: RimRadius},
		{Center: mgl64.Vec3{-12.5, 10, 0}, RimRadius: RimRadius},
	}
}

func TestBall_ShootAtHoop(t *testing.T) {
	tuning := DefaultTuning()
	hoops := rightFirstHoops()
	ball := NewBall(0.5)

	if !ball.Shoot(hoops, &tuning) {
		t.Fatal("expected shot to be taken")
	}

	want := mgl64.Vec3{12.5, 9, 0}.Normalize().Mul(1.5)
	if !vecApprox(ball.Velocity, want) {
		t.Errorf("expected velocity %v, got %v", want, ball.Velocity)
	}
	if ball.Mode != ModeShot {
		t.Errorf("expected ModeShot, got %v", ball.Mode)
	}
	if ball.Bounces != 0 {
		t.Errorf("expected bounces reset to 0, got %d", ball.Bounces)
	}

	// Rises, then falls under gravity
	rose, fell := false, false
	prevY := ball.Position.Y()
	for i := 0; i < 60 && ball.Mode == ModeShot; i++ {
		Step(ball, &tuning)
		y := ball.Position.Y()
		if y > prevY && !fell {
			rose = true
		}
		if y < prevY && rose {
			fell = true
		}
		prevY = y
	}
	if !rose || !fell {
		t.Errorf("expected y to rise then fall, rose=%v fell=%v", rose, fell)
	}
}

func TestBall_ShootTargetsBySide(t *testing.T) {
	tuning := DefaultTuning()
	hoops := NewCourt().Hoops()

	tests := []struct {
		name     string
		x        float64
		wantHoop int
	}{
		{"center", 0, 0},
		{"positive half", 5, 0},
		{"negative half", -5, 1},
		{"negative corner", -14, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ball := NewBall(DefaultPower)
			ball.Position[0] = tt.x

			if got := ball.TargetHoop(); got != tt.wantHoop {
				t.Fatalf("expected hoop %d, got %d", tt.wantHoop, got)
			}

			ball.Shoot(hoops, &tuning)
			toHoop := hoops[tt.wantHoop].Center.X() - tt.x
			if toHoop*ball.Velocity.X() <= 0 {
				t.Errorf("expected VX toward hoop %d, got %f", tt.wantHoop, ball.Velocity.X())
			}
			if ball.Velocity.Y() <= 0 {
				t.Errorf("expected upward launch, got VY=%f", ball.Velocity.Y())
			}
		})
	}
}

func TestBall_ShootAimsAcrossCourt(t *testing.T) {
	tuning := DefaultTuning()
	hoops := NewCourt().Hoops()

	for _, x := range []float64{-10, 10} {
		ball := NewBall(DefaultPower)
		ball.Position[0] = x
		ball.Shoot(hoops, &tuning)

		hoopX := hoops[ball.TargetHoop()].Center.X()
		if hoopX*x >= 0 {
			t.Errorf("ball at x=%v aimed at hoop x=%v on its own half", x, hoopX)
		}
		if ball.Velocity.X()*x >= 0 {
			t.Errorf("ball at x=%v should travel across center court, VX=%f", x, ball.Velocity.X())
		}
	}
}

func TestBall_ShootIgnoredInFlight(t *testing.T) {
	tuning := DefaultTuning()
	hoops := NewCourt().Hoops()
	ball := NewBall(DefaultPower)

	ball.Shoot(hoops, &tuning)
	ball.Bounces = 2
	v := ball.Velocity

	if ball.Shoot(hoops, &tuning) {
		t.Error("expected second shot to be refused")
	}
	if ball.Velocity != v {
		t.Errorf("expected velocity unchanged, got %v", ball.Velocity)
	}
	if ball.Bounces != 2 {
		t.Errorf("expected bounces unchanged, got %d", ball.Bounces)
	}
}

func TestBall_ShootFromAimPoint(t *testing.T) {
	tuning := DefaultTuning()
	hoops := rightFirstHoops()
	ball := NewBall(DefaultPower)
	ball.Position = hoops[0].Center.Add(mgl64.Vec3{0, tuning.AimHeight, 0})

	ball.Shoot(hoops, &tuning)

	if ball.Velocity != (mgl64.Vec3{}) {
		t.Errorf("expected zero velocity at the aim point, got %v", ball.Velocity)
	}
	if ball.Mode != ModeShot {
		t.Errorf("expected ModeShot, got %v", ball.Mode)
	}
}
