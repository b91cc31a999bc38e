package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const eps = 1e-9

type recordDisplay struct {
	draws   int
	lastPos mgl64.Vec3
	lastRot mgl64.Quat
	flashes []int
	orbit   []bool
}

func (d *recordDisplay) DrawBall(pos mgl64.Vec3, rot mgl64.Quat) {
	d.draws++
	d.lastPos = pos
	d.lastRot = rot
}

func (d *recordDisplay) FlashHoop(hoop int) {
	d.flashes = append(d.flashes, hoop)
}

func (d *recordDisplay) SetOrbit(enabled bool) {
	d.orbit = append(d.orbit, enabled)
}

type recordHUD struct {
	scores []int
	powers []float64
}

func (h *recordHUD) SetScore(score int) {
	h.scores = append(h.scores, score)
}

func (h *recordHUD) SetPower(power float64) {
	h.powers = append(h.powers, power)
}

func newTestGame() (*Game, *recordDisplay, *recordHUD) {
	d := &recordDisplay{}
	h := &recordHUD{}
	return NewGame(DefaultTuning(), DefaultPower, d, h), d, h
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func vecApprox(a, b mgl64.Vec3) bool {
	return approx(a[0], b[0]) && approx(a[1], b[1]) && approx(a[2], b[2])
}
