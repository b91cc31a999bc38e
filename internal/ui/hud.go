package ui

import (
	"time"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Band is the color band of the power bar
type Band int

const (
	BandLow Band = iota
	BandMid
	BandHigh
)

// Power bar thresholds
const (
	MidPower  = 0.3
	HighPower = 0.7
)

const FlashDuration = 600 * time.Millisecond

var (
	bandColors = map[Band]colorful.Color{
		BandLow:  mustHex("#e74c3c"),
		BandMid:  mustHex("#f1c40f"),
		BandHigh: mustHex("#2ecc71"),
	}

	rimColor   = mustHex("#f97316")
	flashColor = mustHex("#ffffff")
	ballColor  = mustHex("#d97706")
	floorColor = mustHex("#c68642")
)

// mustHex parses a palette entry; the palette is fixed so a bad value is a bug
func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// PowerBand classifies shot power for the HUD bar
func PowerBand(power float64) Band {
	switch {
	case power < MidPower:
		return BandLow
	case power < HighPower:
		return BandMid
	default:
		return BandHigh
	}
}

// BandColor returns the terminal color for a band
func BandColor(b Band) tcell.Color {
	return toTcell(bandColors[b])
}

// flashBlend fades from the flash color back to base as remaining goes 1 -> 0
func flashBlend(base colorful.Color, remaining float64) tcell.Color {
	if remaining <= 0 {
		return toTcell(base)
	}
	if remaining > 1 {
		remaining = 1
	}
	return toTcell(base.BlendLab(flashColor, remaining).Clamped())
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// PowerBar renders power as a fixed-width bar of filled and empty cells
func PowerBar(power float64, width int) (filled, empty int) {
	if width <= 0 {
		return 0, 0
	}
	filled = int(power*float64(width) + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return filled, width - filled
}
