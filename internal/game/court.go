package game

import "github.com/go-gl/mathgl/mgl64"

// Court dimensions in world units. The floor is centered on the origin with
// its length along X.
const (
	CourtLength = 30.0
	CourtWidth  = 15.0

	CenterCircleInner = 1.8
	CenterCircleOuter = 2.0

	ThreePointRadius = 6.75
	BasketX          = 13.5 // backboard plane, both ends

	FreeThrowDistance = 4.57
	FreeThrowRadius   = 1.8
	FreeThrowWidth    = 4.9
	LaneZ             = 2.45

	RimHeight       = 10.0
	RimRadius       = 0.8
	RimOffset       = 1.0 // rim sits in front of the backboard
	BackboardWidth  = 6.0
	BackboardHeight = 4.0
	PoleOffset      = 0.7
	BackboardTop    = RimHeight + 2
	PoleHeight      = BackboardTop + 3
	BraceDrop       = 4.0 // the diagonal brace meets the pole this far below the arm
	BaseRadius      = 1.2

	NetStrands      = 16
	NetHeight       = 1.5
	NetBottomRadius = 0.4
)

// Hoop is a scoring target. Created once with the court and never mutated.
type Hoop struct {
	Center    mgl64.Vec3
	RimRadius float64
}

// Basket is the static geometry of one end of the court
type Basket struct {
	Hoop       Hoop
	BackboardX float64
	PoleX      float64
	Facing     float64 // +1 when the rim faces +X
}

// Court is the static scene the renderer draws once per frame
type Court struct {
	Length  float64
	Width   float64
	Baskets [2]Basket
}

// NewCourt builds the standard court. Basket 0 is the -X end, so a ball on
// the negative half targets basket 1 across the court.
func NewCourt() *Court {
	return &Court{
		Length: CourtLength,
		Width:  CourtWidth,
		Baskets: [2]Basket{
			newBasket(-BasketX, 1),
			newBasket(BasketX, -1),
		},
	}
}

func newBasket(x, facing float64) Basket {
	return Basket{
		Hoop: Hoop{
			Center:    mgl64.Vec3{x + facing*RimOffset, RimHeight, 0},
			RimRadius: RimRadius,
		},
		BackboardX: x,
		PoleX:      x - facing*PoleOffset,
		Facing:     facing,
	}
}

// Hoops returns the two scoring targets in basket order
func (c *Court) Hoops() [2]Hoop {
	return [2]Hoop{c.Baskets[0].Hoop, c.Baskets[1].Hoop}
}
