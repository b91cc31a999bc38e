package config

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/diegok/hoopsim/internal/game"
)

// Default values for configuration
const (
	DefaultFPS       = 60
	DefaultHoldTicks = 30 // 500ms at 60Hz, longer than typical key auto-repeat delay
	MaxFPS           = 240
	MaxHoldTicks     = 120
)

// Config holds the application configuration
type Config struct {
	FPS          int
	Power        float64
	HoldTicks    int
	Scoring      game.ScoringRule
	Tuning       game.Tuning
	TuningPath   string
	Mute         bool
	SpectateAddr string
	LogPath      string
}

// ParseArgs parses command line arguments and returns a Config
func ParseArgs(args []string) (*Config, error) {
	fs := flag.NewFlagSet("hoopsim", flag.ContinueOnError)

	fps := fs.Int("fps", DefaultFPS, "ticks per second (1-240)")
	power := fs.Float64("power", game.DefaultPower, "initial shot power (0.1-1.0)")
	hold := fs.Int("hold", DefaultHoldTicks, "ticks before an unrepeated movement key counts as released")
	scoring := fs.String("scoring", "proximity", "scoring rule: proximity or rim")
	tuningPath := fs.String("tuning", "", "TOML file overriding physics constants")
	mute := fs.Bool("mute", false, "disable sound")
	spectate := fs.String("spectate", "", "address to stream frames to spectators on, e.g. :8090")
	logPath := fs.String("log", "", "write logs to this file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	if *fps < 1 || *fps > MaxFPS {
		return nil, fmt.Errorf("fps must be between 1 and %d, got %d", MaxFPS, *fps)
	}

	if *hold < 1 || *hold > MaxHoldTicks {
		return nil, fmt.Errorf("hold must be between 1 and %d, got %d", MaxHoldTicks, *hold)
	}

	rule, err := game.ParseScoringRule(*scoring)
	if err != nil {
		return nil, err
	}

	tuning := game.DefaultTuning()
	if *tuningPath != "" {
		tuning, err = LoadTuning(*tuningPath)
		if err != nil {
			return nil, err
		}
	}

	// Validate power against the (possibly overridden) range
	if *power < tuning.MinPower || *power > tuning.MaxPower {
		return nil, fmt.Errorf("power must be between %.2f and %.2f, got %.2f", tuning.MinPower, tuning.MaxPower, *power)
	}

	cfg := &Config{
		FPS:          *fps,
		Power:        *power,
		HoldTicks:    *hold,
		Scoring:      rule,
		Tuning:       tuning,
		TuningPath:   *tuningPath,
		Mute:         *mute,
		SpectateAddr: *spectate,
		LogPath:      *logPath,
	}

	return cfg, nil
}

// LoadTuning reads physics overrides from a TOML file on top of the defaults.
// Keys that do not name a tuning field are rejected.
func LoadTuning(path string) (game.Tuning, error) {
	t := game.DefaultTuning()

	md, err := toml.DecodeFile(path, &t)
	if err != nil {
		return t, errors.Wrapf(err, "failed to read tuning file %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return t, fmt.Errorf("unknown tuning keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if err := ValidateTuning(t); err != nil {
		return t, errors.Wrapf(err, "invalid tuning file %s", path)
	}
	return t, nil
}

// ValidateTuning rejects constants that would break the simulation,
// in particular anything that lets a shot bounce forever.
func ValidateTuning(t game.Tuning) error {
	switch {
	case t.Gravity <= 0:
		return errors.New("gravity must be positive")
	case t.MoveSpeed <= 0:
		return errors.New("move_speed must be positive")
	case t.BoundX <= 0 || t.BoundZ <= 0:
		return errors.New("bound_x and bound_z must be positive")
	case t.BallRadius <= 0:
		return errors.New("ball_radius must be positive")
	case t.Restitution <= 0 || t.Restitution >= 1:
		return fmt.Errorf("restitution must be in (0, 1), got %g", t.Restitution)
	case t.Friction <= 0 || t.Friction > 1:
		return fmt.Errorf("friction must be in (0, 1], got %g", t.Friction)
	case t.MaxBounces < 0:
		return fmt.Errorf("max_bounces must be at least 0, got %d", t.MaxBounces)
	case t.ShotScale <= 0:
		return errors.New("shot_scale must be positive")
	case t.ScoreCooldown < 0:
		return errors.New("score_cooldown must not be negative")
	case t.ScorePoints < 1:
		return fmt.Errorf("score_points must be at least 1, got %d", t.ScorePoints)
	case t.PowerStep <= 0:
		return errors.New("power_step must be positive")
	case t.MinPower <= 0 || t.MinPower > t.MaxPower:
		return fmt.Errorf("power range [%g, %g] is invalid", t.MinPower, t.MaxPower)
	}
	return nil
}
