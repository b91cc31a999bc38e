package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/diegok/hoopsim/internal/protocol"
)

// KeyToCommand converts a terminal key to a simulation key
func KeyToCommand(key tcell.Key, r rune) protocol.Key {
	switch key {
	case tcell.KeyLeft:
		return protocol.KeyLeft
	case tcell.KeyRight:
		return protocol.KeyRight
	case tcell.KeyUp:
		return protocol.KeyUp
	case tcell.KeyDown:
		return protocol.KeyDown
	case tcell.KeyRune:
		switch r {
		case 'w', 'W', '+', '=':
			return protocol.KeyPowerUp
		case 's', 'S', '-', '_':
			return protocol.KeyPowerDown
		case ' ':
			return protocol.KeyShoot
		case 'r', 'R':
			return protocol.KeyReset
		case 'o', 'O':
			return protocol.KeyOrbit
		}
	}
	return protocol.KeyNone
}

// IsQuitKey returns true if the key should quit the application
func IsQuitKey(key tcell.Key, r rune) bool {
	if key == tcell.KeyEscape || key == tcell.KeyCtrlC {
		return true
	}
	if key == tcell.KeyRune && (r == 'q' || r == 'Q') {
		return true
	}
	return false
}

// movementKeys in the order releases are reported
var movementKeys = []protocol.Key{protocol.KeyLeft, protocol.KeyRight, protocol.KeyUp, protocol.KeyDown}

// KeyHolder turns terminal key presses, which arrive as auto-repeats with no
// release, into down/up edges. A movement key counts as held until holdTicks
// ticks pass without a repeat.
type KeyHolder struct {
	holdTicks int
	held      map[protocol.Key]int // ticks left before release
}

func NewKeyHolder(holdTicks int) *KeyHolder {
	if holdTicks < 1 {
		holdTicks = 1
	}
	return &KeyHolder{
		holdTicks: holdTicks,
		held:      make(map[protocol.Key]int),
	}
}

// Press records a key press and returns the edges to apply
func (k *KeyHolder) Press(key protocol.Key) []protocol.KeyEvent {
	if key == protocol.KeyNone {
		return nil
	}
	if !key.IsMovement() {
		return []protocol.KeyEvent{protocol.Down(key)}
	}

	// The opposite key on the same axis is superseded, not released;
	// releasing it later would clear the new direction.
	delete(k.held, opposite(key))
	k.held[key] = k.holdTicks
	return []protocol.KeyEvent{protocol.Down(key)}
}

// Tick ages held keys and returns releases for the ones that timed out
func (k *KeyHolder) Tick() []protocol.KeyEvent {
	var released []protocol.KeyEvent
	for _, key := range movementKeys {
		left, ok := k.held[key]
		if !ok {
			continue
		}
		left--
		if left <= 0 {
			delete(k.held, key)
			released = append(released, protocol.Up(key))
			continue
		}
		k.held[key] = left
	}
	return released
}

// Held reports whether a movement key is currently considered down
func (k *KeyHolder) Held(key protocol.Key) bool {
	_, ok := k.held[key]
	return ok
}

func opposite(key protocol.Key) protocol.Key {
	switch key {
	case protocol.KeyLeft:
		return protocol.KeyRight
	case protocol.KeyRight:
		return protocol.KeyLeft
	case protocol.KeyUp:
		return protocol.KeyDown
	case protocol.KeyDown:
		return protocol.KeyUp
	}
	return protocol.KeyNone
}
