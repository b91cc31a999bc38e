package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	volume     = 0.2
)

var (
	initialized bool
)

// Init initializes the audio system
func Init() error {
	if initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Second/30))
	if err != nil {
		return err
	}

	initialized = true
	return nil
}

// Close shuts down the audio system
func Close() {
	if initialized {
		speaker.Close()
		initialized = false
	}
}

// squareWave generates a square wave tone (retro/8-bit feel)
func squareWave(freq float64, duration time.Duration) beep.Streamer {
	numSamples := sampleRate.N(duration)
	phase := 0.0
	phaseStep := freq / float64(sampleRate)

	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			if numSamples <= 0 {
				return i, false
			}
			val := volume
			if math.Mod(phase, 1.0) > 0.5 {
				val = -val
			}
			samples[i][0] = val
			samples[i][1] = val
			phase += phaseStep
			numSamples--
		}
		return len(samples), true
	})
}

// sweep glides linearly from one frequency to another
func sweep(from, to float64, duration time.Duration) beep.Streamer {
	total := sampleRate.N(duration)
	left := total
	phase := 0.0

	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			if left <= 0 {
				return i, false
			}
			progress := float64(total-left) / float64(total)
			freq := from + (to-from)*progress
			val := math.Sin(2*math.Pi*phase) * volume
			samples[i][0] = val
			samples[i][1] = val
			phase += freq / float64(sampleRate)
			left--
		}
		return len(samples), true
	})
}

// PlayShot plays the rising whoosh of a shot leaving the hands
func PlayShot() {
	if !initialized {
		return
	}
	speaker.Play(sweep(220, 660, 120*time.Millisecond))
}

// PlayBounce plays a floor bounce, quieter as the ball loses energy
func PlayBounce(bounce int) {
	if !initialized {
		return
	}
	freq := 180 - float64(bounce)*15
	if freq < 90 {
		freq = 90
	}
	speaker.Play(squareWave(freq, 40*time.Millisecond))
}

// PlayWall plays the ball hitting a side wall
func PlayWall() {
	if !initialized {
		return
	}
	speaker.Play(squareWave(330, 30*time.Millisecond))
}

// PlayScore plays a rising arpeggio for a basket
func PlayScore() {
	if !initialized {
		return
	}
	speaker.Play(beep.Seq(
		squareWave(523, 90*time.Millisecond),
		squareWave(659, 90*time.Millisecond),
		squareWave(784, 160*time.Millisecond),
	))
}
