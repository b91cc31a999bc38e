package ui

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/diegok/hoopsim/internal/game"
)

const (
	BallChar   = '●'
	BallFill   = '█'
	ShadowChar = '·'
	LineChar   = '·'
	RimChar    = 'o'
	NetChar    = ':'
	BoardChar  = '#'
	PoleChar   = '|'
	BaseChar   = '='

	// segments used to sample a full circle
	circleSegments = 48
)

var helpLines = []string{
	"Arrows  move",
	"w / s   power",
	"Space   shoot",
	"r       reset",
	"o       orbit",
	"drag    rotate",
	"q       quit",
}

// Renderer draws the court, the ball and the HUD. It implements both
// game.Display and game.HUD; the sinks only record state and Render paints it.
type Renderer struct {
	screen *Screen
	camera *Camera
	court  *game.Court

	ballPos mgl64.Vec3
	ballRot mgl64.Quat

	score int
	power float64
	orbit bool

	flashUntil      [2]time.Time
	scoreFlashUntil time.Time

	now func() time.Time
}

// NewRenderer creates a new renderer with the given screen
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{
		screen:  screen,
		camera:  NewCamera(),
		ballRot: mgl64.QuatIdent(),
		power:   game.DefaultPower,
		orbit:   true,
		now:     time.Now,
	}
}

// SetCourt sets the static scene drawn under the ball
func (r *Renderer) SetCourt(c *game.Court) {
	r.court = c
}

func (r *Renderer) Camera() *Camera {
	return r.camera
}

func (r *Renderer) DrawBall(pos mgl64.Vec3, rot mgl64.Quat) {
	r.ballPos = pos
	r.ballRot = rot
}

// FlashHoop highlights a rim and the score for FlashDuration
func (r *Renderer) FlashHoop(hoop int) {
	until := r.now().Add(FlashDuration)
	if hoop >= 0 && hoop < len(r.flashUntil) {
		r.flashUntil[hoop] = until
	}
	r.scoreFlashUntil = until
}

func (r *Renderer) SetOrbit(enabled bool) {
	r.orbit = enabled
	r.camera.Enabled = enabled
}

func (r *Renderer) SetScore(score int) {
	r.score = score
}

func (r *Renderer) SetPower(power float64) {
	r.power = power
}

// Render paints one frame
func (r *Renderer) Render(mode game.Mode, bounces int) {
	r.screen.Clear()
	screenW, screenH := r.screen.Size()
	if screenW <= 0 || screenH <= 1 {
		r.screen.Show()
		return
	}

	// Scene viewport leaves the bottom row to the status bar
	proj := r.camera.Projection(screenW, screenH-1)
	now := r.now()

	if r.court != nil {
		r.renderCourt(proj, now)
	}
	r.renderBall(proj)

	r.renderHUD(mode, bounces, screenW, screenH, now)
	r.screen.Show()
}

func (r *Renderer) renderCourt(proj Projection, now time.Time) {
	c := r.court
	halfL, halfW := c.Length/2, c.Width/2
	lineStyle := tcell.StyleDefault.Foreground(toTcell(floorColor))

	// Boundary and center line
	corners := []mgl64.Vec3{
		{-halfL, 0, -halfW}, {halfL, 0, -halfW}, {halfL, 0, halfW}, {-halfL, 0, halfW},
	}
	for i := range corners {
		r.worldLine(proj, corners[i], corners[(i+1)%len(corners)], lineStyle, LineChar)
	}
	r.worldLine(proj, mgl64.Vec3{0, 0, -halfW}, mgl64.Vec3{0, 0, halfW}, lineStyle, LineChar)

	// Center circle
	r.worldArc(proj, mgl64.Vec3{}, game.CenterCircleInner, 0, 2*math.Pi, lineStyle)
	r.worldArc(proj, mgl64.Vec3{}, game.CenterCircleOuter, 0, 2*math.Pi, lineStyle)

	for i, b := range c.Baskets {
		r.renderKey(proj, b, lineStyle)
		r.renderBasket(proj, b, r.flashRemaining(r.flashUntil[i], now))
	}
}

// renderKey draws the three-point arc, lane and free-throw circle of one end
func (r *Renderer) renderKey(proj Projection, b game.Basket, style tcell.Style) {
	base := mgl64.Vec3{b.BackboardX, 0, 0}

	// The arc opens toward center court
	start := -math.Pi / 2
	if b.Facing < 0 {
		start = math.Pi / 2
	}
	r.worldArc(proj, base, game.ThreePointRadius, start, start+math.Pi, style)

	ftX := b.BackboardX + b.Facing*game.FreeThrowDistance
	half := game.FreeThrowWidth / 2
	r.worldLine(proj, mgl64.Vec3{ftX, 0, -half}, mgl64.Vec3{ftX, 0, half}, style, LineChar)
	r.worldLine(proj, mgl64.Vec3{b.BackboardX, 0, -game.LaneZ}, mgl64.Vec3{ftX, 0, -game.LaneZ}, style, LineChar)
	r.worldLine(proj, mgl64.Vec3{b.BackboardX, 0, game.LaneZ}, mgl64.Vec3{ftX, 0, game.LaneZ}, style, LineChar)
	r.worldArc(proj, mgl64.Vec3{ftX, 0, 0}, game.FreeThrowRadius, 0, 2*math.Pi, style)
}

func (r *Renderer) renderBasket(proj Projection, b game.Basket, flash float64) {
	boardStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	poleStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	rimStyle := tcell.StyleDefault.Foreground(flashBlend(rimColor, flash)).Bold(flash > 0)
	netStyle := tcell.StyleDefault.Foreground(tcell.ColorSilver)

	// Backboard outline
	x := b.BackboardX
	halfW := game.BackboardWidth / 2
	bottom := game.BackboardTop - game.BackboardHeight
	board := []mgl64.Vec3{
		{x, bottom, -halfW}, {x, game.BackboardTop, -halfW}, {x, game.BackboardTop, halfW}, {x, bottom, halfW},
	}
	for i := range board {
		r.worldLine(proj, board[i], board[(i+1)%len(board)], boardStyle, BoardChar)
	}

	// Pole, base plate, arm to the top of the board and the diagonal brace
	r.worldLine(proj, mgl64.Vec3{b.PoleX, 0, 0}, mgl64.Vec3{b.PoleX, game.PoleHeight, 0}, poleStyle, PoleChar)
	r.worldArcChar(proj, mgl64.Vec3{b.PoleX, 0, 0}, game.BaseRadius, 0, 2*math.Pi, poleStyle, BaseChar)
	r.worldLine(proj, mgl64.Vec3{b.PoleX, game.BackboardTop, 0}, mgl64.Vec3{x, game.BackboardTop, 0}, poleStyle, '-')
	brace := '/'
	if b.Facing < 0 {
		brace = '\\'
	}
	r.worldLine(proj, mgl64.Vec3{b.PoleX, game.BackboardTop - game.BraceDrop, 0}, mgl64.Vec3{x, game.BackboardTop, 0}, poleStyle, brace)

	// Net hangs below the rim and narrows
	center := b.Hoop.Center
	netBottom := center.Sub(mgl64.Vec3{0, game.NetHeight, 0})
	for i := 0; i < game.NetStrands; i++ {
		a := float64(i) * 2 * math.Pi / game.NetStrands
		top := center.Add(mgl64.Vec3{math.Cos(a) * b.Hoop.RimRadius, 0, math.Sin(a) * b.Hoop.RimRadius})
		low := netBottom.Add(mgl64.Vec3{math.Cos(a) * game.NetBottomRadius, 0, math.Sin(a) * game.NetBottomRadius})
		r.worldLine(proj, top, low, netStyle, NetChar)
	}

	r.worldArcChar(proj, center, b.Hoop.RimRadius, 0, 2*math.Pi, rimStyle, RimChar)
}

func (r *Renderer) renderBall(proj Projection) {
	pos := r.ballPos

	// Shadow straight below on the floor
	if sx, sy, ok := proj.Project(mgl64.Vec3{pos.X(), 0, pos.Z()}); ok {
		r.screen.SetCell(sx, sy, tcell.StyleDefault.Foreground(tcell.ColorDarkGray), ShadowChar)
	}

	cx, cy, ok := proj.Project(pos)
	if !ok {
		return
	}
	ballStyle := tcell.StyleDefault.Foreground(toTcell(ballColor))

	// Fill the projected disk when the ball is large enough on screen
	_, ty, topOK := proj.Project(pos.Add(mgl64.Vec3{0, game.BallRadius, 0}))
	if topOK && abs(cy-ty) >= 1 {
		rx, ry := diskRadii(float64(abs(cy-ty)), proj.w, proj.h)
		for dy := -int(ry); dy <= int(ry); dy++ {
			for dx := -int(rx); dx <= int(rx); dx++ {
				fx, fy := float64(dx)/rx, float64(dy)/ry
				if fx*fx+fy*fy <= 1 {
					r.screen.SetCell(cx+dx, cy+dy, ballStyle, BallFill)
				}
			}
		}
		seamStyle := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(toTcell(ballColor))
		r.screen.SetCell(cx, cy, seamStyle, SeamGlyph(r.ballRot))
		return
	}

	r.screen.SetCell(cx, cy, ballStyle, BallChar)
}

// diskRadii converts the projected vertical radius to cell radii, capped to
// the viewport so a ball right in front of the eye stays cheap to fill.
func diskRadii(ry float64, w, h int) (float64, float64) {
	ry = math.Min(ry, float64(h))
	rx := math.Min(ry*CellAspect, float64(w))
	return rx, ry
}

// SeamGlyph picks a line glyph following the ball's seam as it rolls
func SeamGlyph(rot mgl64.Quat) rune {
	seam := rot.Rotate(mgl64.Vec3{1, 0, 0})
	angle := math.Atan2(seam.Y(), seam.X())
	// Fold into [0, pi) since a seam has no direction
	if angle < 0 {
		angle += math.Pi
	}
	if angle >= math.Pi {
		angle -= math.Pi
	}
	switch int(math.Floor(angle/(math.Pi/4) + 0.5)) {
	case 1:
		return '╱'
	case 2:
		return '│'
	case 3:
		return '╲'
	default:
		return '─'
	}
}

func (r *Renderer) renderHUD(mode game.Mode, bounces, screenW, screenH int, now time.Time) {
	// Score, top left
	flash := r.flashRemaining(r.scoreFlashUntil, now)
	scoreStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	if flash > 0 {
		// Starts green and fades to white
		scoreStyle = scoreStyle.Foreground(flashBlend(bandColors[BandHigh], 1-flash))
	}
	r.screen.DrawText(1, 0, fmt.Sprintf("Score: %d", r.score), scoreStyle)

	// Orbit status, top right
	orbitText := "Orbit: off"
	orbitStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	if r.orbit {
		orbitText = "Orbit: on"
		orbitStyle = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	}
	r.screen.DrawText(screenW-len(orbitText)-1, 0, orbitText, orbitStyle)

	// Controls help panel when there is room
	boxW, boxH := 18, len(helpLines)+2
	if screenH >= boxH+4 && screenW >= boxW+24 {
		boxX, boxY := screenW-boxW-1, 2
		helpStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
		r.screen.DrawBox(boxX, boxY, boxW, boxH, helpStyle)
		r.screen.DrawText(boxX+2, boxY, " Controls ", helpStyle)
		for i, line := range helpLines {
			r.screen.DrawText(boxX+2, boxY+1+i, line, helpStyle)
		}
	}

	// Status bar at bottom
	statusY := screenH - 1
	statusStyle := tcell.StyleDefault.Background(tcell.ColorDarkGray).Foreground(tcell.ColorWhite)
	for x := 0; x < screenW; x++ {
		r.screen.SetCell(x, statusY, statusStyle, ' ')
	}
	modeText := fmt.Sprintf(" Mode: %s | Power ", mode)
	r.screen.DrawText(0, statusY, modeText, statusStyle)

	barX := len(modeText)
	filled, empty := PowerBar(r.power, 10)
	barStyle := statusStyle.Foreground(BandColor(PowerBand(r.power)))
	for i := 0; i < filled; i++ {
		r.screen.SetCell(barX+i, statusY, barStyle, BallFill)
	}
	for i := 0; i < empty; i++ {
		r.screen.SetCell(barX+filled+i, statusY, statusStyle, '-')
	}
	rest := fmt.Sprintf(" %.2f | Bounces: %d", r.power, bounces)
	r.screen.DrawText(barX+filled+empty, statusY, rest, statusStyle)
}

// flashRemaining returns the unexpired fraction of a flash in [0, 1]
func (r *Renderer) flashRemaining(until, now time.Time) float64 {
	left := until.Sub(now)
	if left <= 0 {
		return 0
	}
	return math.Min(1, float64(left)/float64(FlashDuration))
}

func (r *Renderer) worldLine(proj Projection, a, b mgl64.Vec3, style tcell.Style, ch rune) {
	x0, y0, ok0 := proj.Project(a)
	x1, y1, ok1 := proj.Project(b)
	if !ok0 || !ok1 {
		return
	}
	r.screen.DrawLine(x0, y0, x1, y1, style, ch)
}

// worldArc samples a horizontal arc around center from angle a0 to a1
func (r *Renderer) worldArc(proj Projection, center mgl64.Vec3, radius, a0, a1 float64, style tcell.Style) {
	r.worldArcChar(proj, center, radius, a0, a1, style, LineChar)
}

func (r *Renderer) worldArcChar(proj Projection, center mgl64.Vec3, radius, a0, a1 float64, style tcell.Style, ch rune) {
	steps := int(math.Ceil(float64(circleSegments) * (a1 - a0) / (2 * math.Pi)))
	if steps < 1 {
		steps = 1
	}
	point := func(a float64) mgl64.Vec3 {
		return center.Add(mgl64.Vec3{math.Cos(a) * radius, 0, math.Sin(a) * radius})
	}
	prev := point(a0)
	for i := 1; i <= steps; i++ {
		next := point(a0 + (a1-a0)*float64(i)/float64(steps))
		r.worldLine(proj, prev, next, style, ch)
		prev = next
	}
}
