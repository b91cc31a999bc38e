package game

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Physics constants, tuned for one tick per frame at ~60Hz
const (
	DefaultPower = 0.5
	BallRadius   = 1.0
)

// Tuning holds every constant the integrator and scoring check read.
// The zero value is not usable; start from DefaultTuning.
type Tuning struct {
	Gravity     float64 `toml:"gravity"`
	MoveSpeed   float64 `toml:"move_speed"`
	BoundX      float64 `toml:"bound_x"`
	BoundZ      float64 `toml:"bound_z"`
	BallRadius  float64 `toml:"ball_radius"`
	Restitution float64 `toml:"restitution"`
	Friction    float64 `toml:"friction"`
	MaxBounces  int     `toml:"max_bounces"`
	SpinFactor  float64 `toml:"spin_factor"`

	ShotScale float64 `toml:"shot_scale"`
	AimHeight float64 `toml:"aim_height"`

	RimTolerance    float64       `toml:"rim_tolerance"`
	HeightTolerance float64       `toml:"height_tolerance"`
	ScoreCooldown   time.Duration `toml:"score_cooldown"`
	ScorePoints     int           `toml:"score_points"`

	// Near-stop thresholds checked after a floor bounce
	StopVX float64 `toml:"stop_vx"`
	StopVY float64 `toml:"stop_vy"`
	StopVZ float64 `toml:"stop_vz"`

	PowerStep float64 `toml:"power_step"`
	MinPower  float64 `toml:"min_power"`
	MaxPower  float64 `toml:"max_power"`
}

// DefaultTuning returns the stock constants
func DefaultTuning() Tuning {
	return Tuning{
		Gravity:     0.05,
		MoveSpeed:   0.2,
		BoundX:      14,
		BoundZ:      7,
		BallRadius:  BallRadius,
		Restitution: 0.7,
		Friction:    0.9,
		MaxBounces:  5,
		SpinFactor:  0.1,

		ShotScale: 3,
		AimHeight: 3,

		RimTolerance:    0.2,
		HeightTolerance: 0.7,
		ScoreCooldown:   2000 * time.Millisecond,
		ScorePoints:     2,

		StopVX: 0.01,
		StopVY: 0.1,
		StopVZ: 0.01,

		PowerStep: 0.05,
		MinPower:  0.1,
		MaxPower:  1.0,
	}
}

// GravityVec is the per-tick acceleration applied while a shot is in flight
func (t *Tuning) GravityVec() mgl64.Vec3 {
	return mgl64.Vec3{0, -t.Gravity, 0}
}
