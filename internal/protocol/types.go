package protocol

// Key identifies a control the simulation reacts to.
// Front ends translate their own key codes into these.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPowerUp
	KeyPowerDown
	KeyShoot
	KeyReset
	KeyOrbit
)

var keyNames = map[Key]string{
	KeyNone:      "none",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyPowerUp:   "power-up",
	KeyPowerDown: "power-down",
	KeyShoot:     "shoot",
	KeyReset:     "reset",
	KeyOrbit:     "orbit",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsMovement reports whether the key steers the ball.
func (k Key) IsMovement() bool {
	return k == KeyLeft || k == KeyRight || k == KeyUp || k == KeyDown
}

// Edge is the transition a key went through
type Edge int

const (
	EdgeDown Edge = iota
	EdgeUp
)

func (e Edge) String() string {
	if e == EdgeUp {
		return "up"
	}
	return "down"
}

// KeyEvent is a single key-down or key-up edge
type KeyEvent struct {
	Key  Key
	Edge Edge
}

// Down builds a key-down event
func Down(k Key) KeyEvent {
	return KeyEvent{Key: k, Edge: EdgeDown}
}

// Up builds a key-up event
func Up(k Key) KeyEvent {
	return KeyEvent{Key: k, Edge: EdgeUp}
}

// Mode names sent to spectators
const (
	ModeControlled = "controlled"
	ModeShot       = "shot"
)

// BallState is the ball's position and velocity as seen by spectators
type BallState struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	Z  float64 `json:"z"`
	VX float64 `json:"vx"`
	VY float64 `json:"vy"`
	VZ float64 `json:"vz"`
}

// Frame is a snapshot of the simulation after one tick
type Frame struct {
	Tick    int       `json:"tick"`
	Ball    BallState `json:"ball"`
	Mode    string    `json:"mode"`
	Power   float64   `json:"power"`
	Bounces int       `json:"bounces"`
	Score   int       `json:"score"`
	Orbit   bool      `json:"orbit"`
}
