package dynamics

import "github.com/mkarren/nbodies/internal/geometry"

// Direction is an 8-way interactive direction, plus Hold for no input.
type Direction int

const (
	Hold Direction = iota
	Left
	Right
	Up
	Down
	UpLeft
	UpRight
	DownLeft
	DownRight
)

var directionVectors = map[Direction]geometry.Vector2{
	Hold:      {},
	Left:      {X: -1},
	Right:     {X: 1},
	Up:        {Y: 1},
	Down:      {Y: -1},
	UpLeft:    {X: -1, Y: 1},
	UpRight:   {X: 1, Y: 1},
	DownLeft:  {X: -1, Y: -1},
	DownRight: {X: 1, Y: -1},
}

var opposites = map[Direction]Direction{
	Hold:      Hold,
	Left:      Right,
	Right:     Left,
	Up:        Down,
	Down:      Up,
	UpLeft:    DownRight,
	UpRight:   DownLeft,
	DownLeft:  UpRight,
	DownRight: UpLeft,
}

// Vector is the unit-component vector of d. Diagonals are not
// normalized: an UpRight nudge moves one unit on each axis.
func (d Direction) Vector() geometry.Vector2 {
	return directionVectors[d]
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return opposites[d]
}

// IsOpposite reports whether d and other point opposite ways.
func (d Direction) IsOpposite(other Direction) bool {
	return d != Hold && opposites[d] == other
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	case UpLeft:
		return "up-left"
	case UpRight:
		return "up-right"
	case DownLeft:
		return "down-left"
	case DownRight:
		return "down-right"
	default:
		return "hold"
	}
}
