package game

import (
	"errors"
	"math/rand"
)

// ErrInvalidMove is returned by Step for a move outside the four directions.
// All call sites are internal, so hitting this means a caller bug.
var ErrInvalidMove = errors.New("invalid move")

// GameState owns one session of the self-playing snake: the grid bounds, the
// body, the food, and the termination flags. It is fully synchronous; the
// Director is the only writer and hands read-only snapshots to the UI.
type GameState struct {
	cols int
	rows int

	// Head first. The occupied set mirrors the slice so membership checks
	// stay O(1) as the body grows.
	snake    []Cell
	occupied map[Cell]struct{}

	food           Cell
	dir            Direction
	stepsSinceFood int
	score          int
	alive          bool

	rng *rand.Rand
}

func NewGameState(cols, rows int, rng *rand.Rand) *GameState {
	// Same floor as Resize: a degenerate PTY must not reach placeFood with
	// an empty sampling range.
	if cols < 2 {
		cols = 2
	}
	if rows < 2 {
		rows = 2
	}
	s := &GameState{cols: cols, rows: rows, rng: rng}
	s.Reset()
	return s
}

// Reset reinitializes the session: length-1 snake on the grid center, fresh
// food, zero score. Cumulative game counting belongs to the Director, not here.
func (s *GameState) Reset() {
	start := Cell{X: s.cols / 2, Y: s.rows / 2}
	s.snake = []Cell{start}
	s.occupied = map[Cell]struct{}{start: {}}
	s.dir = Direction{}
	s.stepsSinceFood = 0
	s.score = 0
	s.alive = true
	s.placeFood()
}

// Step advances the session by one tick in the given direction. Calling it on
// a dead session is a no-op; the Director resets before stepping again.
func (s *GameState) Step(m Move) error {
	if !m.Valid() {
		return ErrInvalidMove
	}
	if !s.alive {
		return nil
	}

	s.stepsSinceFood++
	s.dir = m.Vector()

	head := s.snake[0]
	next := Cell{X: head.X + s.dir.Dx, Y: head.Y + s.dir.Dy}

	// Wall, body, or starvation all end the session. The starvation cut-off
	// keeps a wandering snake from animating forever without progress.
	if !s.inBounds(next) || s.hits(next) || s.stepsSinceFood > MaxStepsWithoutFood {
		s.alive = false
		return nil
	}

	s.snake = append([]Cell{next}, s.snake...)
	s.occupied[next] = struct{}{}

	if next == s.food {
		s.score++
		s.stepsSinceFood = 0
		s.placeFood()
		return nil
	}

	tail := s.snake[len(s.snake)-1]
	s.snake = s.snake[:len(s.snake)-1]
	delete(s.occupied, tail)
	return nil
}

// SafeMoves returns, in canonical order, every move whose candidate head cell
// is inside the grid and off the current body. May be empty.
func (s *GameState) SafeMoves() []Move {
	head := s.snake[0]
	safe := make([]Move, 0, 4)
	for _, m := range Moves {
		v := m.Vector()
		next := Cell{X: head.X + v.Dx, Y: head.Y + v.Dy}
		if s.inBounds(next) && !s.hits(next) {
			safe = append(safe, m)
		}
	}
	return safe
}

// Resize adjusts the grid bounds mid-session. Body cells that fall outside
// are not touched; they kill the session on a later step like any wall hit.
// Food stranded out of bounds is replaced so it stays reachable.
func (s *GameState) Resize(cols, rows int) {
	if cols < 2 || rows < 2 {
		return
	}
	s.cols = cols
	s.rows = rows
	if !s.inBounds(s.food) {
		s.placeFood()
	}
}

// placeFood draws a free cell by rejection sampling, falling back to a grid
// scan so a crowded grid cannot spin forever. A fully occupied grid leaves
// the food where it was; the starvation cap makes that state unreachable in
// practice.
func (s *GameState) placeFood() {
	for range foodSampleAttempts {
		c := Cell{X: s.rng.Intn(s.cols), Y: s.rng.Intn(s.rows)}
		if !s.hits(c) {
			s.food = c
			return
		}
	}
	for y := range s.rows {
		for x := range s.cols {
			c := Cell{X: x, Y: y}
			if !s.hits(c) {
				s.food = c
				return
			}
		}
	}
}

func (s *GameState) inBounds(c Cell) bool {
	return c.X >= 0 && c.X < s.cols && c.Y >= 0 && c.Y < s.rows
}

func (s *GameState) hits(c Cell) bool {
	_, ok := s.occupied[c]
	return ok
}

func (s *GameState) Head() Cell          { return s.snake[0] }
func (s *GameState) Food() Cell          { return s.food }
func (s *GameState) Score() int          { return s.score }
func (s *GameState) Alive() bool         { return s.alive }
func (s *GameState) StepsSinceFood() int { return s.stepsSinceFood }
func (s *GameState) Dir() Direction      { return s.dir }
func (s *GameState) Cols() int           { return s.cols }
func (s *GameState) Rows() int           { return s.rows }

// Snake returns a copy of the body, head first.
func (s *GameState) Snake() []Cell {
	out := make([]Cell, len(s.snake))
	copy(out, s.snake)
	return out
}
