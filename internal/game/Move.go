package game

// Move is one of the four cardinal directions the head can advance in.
type Move int

const (
	North Move = iota
	East
	South
	West
)

// Moves lists every move in the canonical order used for tie-breaking.
var Moves = [4]Move{North, East, South, West}

var moveVectors = [4]Direction{
	{Dx: 0, Dy: -1},
	{Dx: 1, Dy: 0},
	{Dx: 0, Dy: 1},
	{Dx: -1, Dy: 0},
}

// Valid reports whether m is one of the four defined moves.
func (m Move) Valid() bool {
	return m >= North && m <= West
}

// Vector returns the per-tick (dx, dy) offset for the move.
func (m Move) Vector() Direction {
	return moveVectors[m]
}

func (m Move) String() string {
	switch m {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "invalid"
	}
}

// moveByName is the reverse of String, used by the Lua strategy bridge.
func moveByName(name string) (Move, bool) {
	for _, m := range Moves {
		if m.String() == name {
			return m, true
		}
	}
	return North, false
}
