package ui

import "github.com/gdamore/tcell/v2"

type Screen struct {
	screen tcell.Screen
}

func NewScreen(s tcell.Screen) *Screen {
	return &Screen{screen: s}
}

// InitScreen opens the terminal with mouse reporting on, for orbit drags
func InitScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.EnableMouse()
	s.HideCursor()
	return NewScreen(s), nil
}

func (s *Screen) Size() (int, int) {
	return s.screen.Size()
}

func (s *Screen) Clear() {
	s.screen.Clear()
}

func (s *Screen) Show() {
	s.screen.Show()
}

func (s *Screen) Sync() {
	s.screen.Sync()
}

func (s *Screen) Fini() {
	s.screen.Fini()
}

// SetCell draws one rune, silently dropping anything off screen
func (s *Screen) SetCell(x, y int, style tcell.Style, r rune) {
	w, h := s.screen.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	s.screen.SetContent(x, y, r, nil, style)
}

func (s *Screen) DrawText(x, y int, text string, style tcell.Style) {
	i := 0
	for _, r := range text {
		s.SetCell(x+i, y, style, r)
		i++
	}
}

func (s *Screen) DrawBox(x, y, w, h int, style tcell.Style) {
	const (
		topLeft     = '┌'
		topRight    = '┐'
		bottomLeft  = '└'
		bottomRight = '┘'
		horizontal  = '─'
		vertical    = '│'
	)

	s.SetCell(x, y, style, topLeft)
	s.SetCell(x+w-1, y, style, topRight)
	s.SetCell(x, y+h-1, style, bottomLeft)
	s.SetCell(x+w-1, y+h-1, style, bottomRight)

	for i := x + 1; i < x+w-1; i++ {
		s.SetCell(i, y, style, horizontal)
		s.SetCell(i, y+h-1, style, horizontal)
	}

	for j := y + 1; j < y+h-1; j++ {
		s.SetCell(x, j, style, vertical)
		s.SetCell(x+w-1, j, style, vertical)
	}
}

func (s *Screen) FillRect(x, y, w, h int, style tcell.Style, r rune) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			s.SetCell(x+dx, y+dy, style, r)
		}
	}
}

// DrawLine plots a straight run of cells between two screen points
func (s *Screen) DrawLine(x0, y0, x1, y1 int, style tcell.Style, r rune) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	e := dx + dy
	for {
		s.SetCell(x0, y0, style, r)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
