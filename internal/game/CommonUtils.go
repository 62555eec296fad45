package game

import "math"

// Cell is a single grid position.
type Cell struct {
	X int
	Y int
}

// Direction is a per-tick head offset. Zero before the first move.
type Direction struct {
	Dx int
	Dy int
}

func getManhattanDistance(a, b Cell) int {
	dx := math.Abs(float64(a.X - b.X))
	dy := math.Abs(float64(a.Y - b.Y))
	return int(dx + dy)
}

// manhattanToPoint measures against a real-valued point, used for the
// grid-center bias where the center sits between cells on even grids.
func manhattanToPoint(c Cell, x, y float64) float64 {
	return math.Abs(float64(c.X)-x) + math.Abs(float64(c.Y)-y)
}
