package game

import (
	"math/rand"
	"testing"
)

const (
	testCols = 10
	testRows = 10
)

func newTestState(t *testing.T) *GameState {
	t.Helper()
	return NewGameState(testCols, testRows, rand.New(rand.NewSource(1)))
}

func cloneState(s *GameState) *GameState {
	c := *s
	c.snake = append([]Cell(nil), s.snake...)
	c.occupied = make(map[Cell]struct{}, len(s.occupied))
	for cell := range s.occupied {
		c.occupied[cell] = struct{}{}
	}
	return &c
}

// forceState rebuilds the body and food of a session for scenario tests.
func forceState(s *GameState, snake []Cell, food Cell) {
	s.snake = append([]Cell(nil), snake...)
	s.occupied = make(map[Cell]struct{}, len(snake))
	for _, cell := range snake {
		s.occupied[cell] = struct{}{}
	}
	s.food = food
	s.score = len(snake) - 1
}

func assertInvariants(t *testing.T, s *GameState) {
	t.Helper()
	if !s.Alive() {
		return
	}
	if len(s.snake) != s.score+1 {
		t.Fatalf("expected length %d for score %d, got %d", s.score+1, s.score, len(s.snake))
	}
	seen := make(map[Cell]struct{}, len(s.snake))
	for _, cell := range s.snake {
		if _, dup := seen[cell]; dup {
			t.Fatalf("snake overlaps itself at (%d, %d)", cell.X, cell.Y)
		}
		seen[cell] = struct{}{}
	}
	if s.hits(s.food) {
		t.Fatalf("food at (%d, %d) sits on the snake", s.food.X, s.food.Y)
	}
}

func TestInitialShape(t *testing.T) {
	s := newTestState(t)

	if len(s.Snake()) != 1 {
		t.Errorf("expected length 1, got %d", len(s.Snake()))
	}
	if s.Head() != (Cell{X: testCols / 2, Y: testRows / 2}) {
		t.Errorf("expected centered head, got (%d, %d)", s.Head().X, s.Head().Y)
	}
	if s.Score() != 0 {
		t.Errorf("expected score 0, got %d", s.Score())
	}
	if !s.Alive() {
		t.Error("expected a fresh session to be alive")
	}
	if d := s.Dir(); d.Dx != 0 || d.Dy != 0 {
		t.Errorf("expected zero direction before the first move, got (%d, %d)", d.Dx, d.Dy)
	}
	assertInvariants(t, s)
}

func TestInvariantsHoldUnderAgentPlay(t *testing.T) {
	s := newTestState(t)
	agent := NewAgent(rand.New(rand.NewSource(2)))

	for i := 0; i < 2000 && s.Alive(); i++ {
		if err := s.Step(agent.NextMove(s)); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		assertInvariants(t, s)
	}
}

func TestSafeMovesSoundness(t *testing.T) {
	s := newTestState(t)
	agent := NewAgent(rand.New(rand.NewSource(3)))

	for i := 0; i < 1000 && s.Alive(); i++ {
		for _, m := range s.SafeMoves() {
			probe := cloneState(s)
			probe.stepsSinceFood = 0 // isolate collisions from the starvation cap
			if err := probe.Step(m); err != nil {
				t.Fatalf("step %d: %v", i, err)
			}
			if !probe.Alive() {
				t.Fatalf("step %d: safe move %s killed the session", i, m)
			}
		}
		s.Step(agent.NextMove(s))
	}
}

func TestGrowthOnFood(t *testing.T) {
	s := newTestState(t)
	forceState(s, []Cell{{X: 4, Y: 4}}, Cell{X: 5, Y: 4})
	s.stepsSinceFood = 42

	if err := s.Step(East); err != nil {
		t.Fatalf("step: %v", err)
	}

	if len(s.Snake()) != 2 {
		t.Errorf("expected length 2 after eating, got %d", len(s.Snake()))
	}
	if s.Score() != 1 {
		t.Errorf("expected score 1 after eating, got %d", s.Score())
	}
	if s.StepsSinceFood() != 0 {
		t.Errorf("expected steps-since-food reset, got %d", s.StepsSinceFood())
	}
	if s.hits(s.Food()) {
		t.Errorf("new food at (%d, %d) overlaps the grown snake", s.Food().X, s.Food().Y)
	}
	assertInvariants(t, s)
}

func TestStarvationTermination(t *testing.T) {
	s := newTestState(t)
	forceState(s, []Cell{{X: 5, Y: 5}}, Cell{X: 9, Y: 9})

	// Shuttle between two cells far from the food.
	moves := [2]Move{West, East}
	for i := 0; i < MaxStepsWithoutFood; i++ {
		if err := s.Step(moves[i%2]); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if !s.Alive() {
			t.Fatalf("session died early at step %d", i+1)
		}
	}

	if s.StepsSinceFood() != MaxStepsWithoutFood {
		t.Fatalf("expected counter at the cap, got %d", s.StepsSinceFood())
	}
	if err := s.Step(moves[0]); err != nil {
		t.Fatalf("final step: %v", err)
	}
	if s.Alive() {
		t.Error("expected starvation to end the session one step past the cap")
	}
}

func TestWallCollision(t *testing.T) {
	s := newTestState(t)
	forceState(s, []Cell{{X: 0, Y: 5}}, Cell{X: 9, Y: 9})

	if err := s.Step(West); err != nil {
		t.Fatalf("step: %v", err)
	}
	if s.Alive() {
		t.Error("expected a wall hit to end the session")
	}
	if len(s.Snake()) != 1 {
		t.Errorf("expected the body untouched on death, got length %d", len(s.Snake()))
	}
}

func TestSelfCollision(t *testing.T) {
	s := newTestState(t)
	// Head at (5,5) with the body hooked around to block East.
	forceState(s, []Cell{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 6, Y: 6}, {X: 6, Y: 5}}, Cell{X: 9, Y: 9})

	if err := s.Step(East); err != nil {
		t.Fatalf("step: %v", err)
	}
	if s.Alive() {
		t.Error("expected a self hit to end the session")
	}
}

func TestStepAfterDeathIsNoop(t *testing.T) {
	s := newTestState(t)
	forceState(s, []Cell{{X: 0, Y: 5}}, Cell{X: 9, Y: 9})
	s.Step(West)
	if s.Alive() {
		t.Fatal("setup: session should be dead")
	}

	before := s.Snake()
	if err := s.Step(East); err != nil {
		t.Fatalf("step on dead session: %v", err)
	}
	after := s.Snake()
	if len(before) != len(after) || before[0] != after[0] {
		t.Error("step on a dead session changed the body")
	}
}

func TestInvalidMoveFailsFast(t *testing.T) {
	s := newTestState(t)
	if err := s.Step(Move(7)); err != ErrInvalidMove {
		t.Errorf("expected ErrInvalidMove, got %v", err)
	}
	if err := s.Step(Move(-1)); err != ErrInvalidMove {
		t.Errorf("expected ErrInvalidMove, got %v", err)
	}
}

func TestResetRestoresInitialShape(t *testing.T) {
	s := newTestState(t)
	forceState(s, []Cell{{X: 0, Y: 5}}, Cell{X: 9, Y: 9})
	s.Step(West)

	s.Reset()

	if !s.Alive() {
		t.Error("expected reset session to be alive")
	}
	if len(s.Snake()) != 1 || s.Score() != 0 || s.StepsSinceFood() != 0 {
		t.Errorf("reset left state dirty: length %d score %d steps %d",
			len(s.Snake()), s.Score(), s.StepsSinceFood())
	}
	assertInvariants(t, s)
}

func TestSafeMovesOrderAndContent(t *testing.T) {
	s := newTestState(t)
	forceState(s, []Cell{{X: 0, Y: 0}}, Cell{X: 9, Y: 9})

	safe := s.SafeMoves()
	if len(safe) != 2 || safe[0] != East || safe[1] != South {
		t.Errorf("expected [east south] from the corner, got %v", safe)
	}
}

func TestResizeReplacesStrandedFood(t *testing.T) {
	s := NewGameState(20, 20, rand.New(rand.NewSource(4)))
	forceState(s, []Cell{{X: 2, Y: 2}}, Cell{X: 19, Y: 19})

	s.Resize(8, 8)

	if s.Cols() != 8 || s.Rows() != 8 {
		t.Fatalf("expected 8x8 after resize, got %dx%d", s.Cols(), s.Rows())
	}
	if !s.inBounds(s.Food()) {
		t.Errorf("food left out of bounds at (%d, %d)", s.Food().X, s.Food().Y)
	}
	if s.hits(s.Food()) {
		t.Errorf("replacement food overlaps the snake")
	}
}

func TestDegenerateGridsAreClamped(t *testing.T) {
	// SSH clients can report PTY sizes that leave no playable area after
	// the chrome is subtracted; the constructor must floor them.
	for _, dims := range [][2]int{{0, 5}, {5, 0}, {-3, -3}, {1, 1}} {
		s := NewGameState(dims[0], dims[1], rand.New(rand.NewSource(14)))
		if s.Cols() < 2 || s.Rows() < 2 {
			t.Errorf("grid %v: expected at least 2x2, got %dx%d", dims, s.Cols(), s.Rows())
		}
		if !s.inBounds(s.Food()) {
			t.Errorf("grid %v: food out of bounds at (%d, %d)", dims, s.Food().X, s.Food().Y)
		}
		assertInvariants(t, s)
	}
}

func TestPlaceFoodOnCrowdedGrid(t *testing.T) {
	s := NewGameState(3, 3, rand.New(rand.NewSource(5)))

	// Occupy everything except one cell; the scan fallback must find it.
	var body []Cell
	for y := range 3 {
		for x := range 3 {
			if x == 2 && y == 2 {
				continue
			}
			body = append(body, Cell{X: x, Y: y})
		}
	}
	forceState(s, body, Cell{X: 0, Y: 0})
	s.food = Cell{X: 0, Y: 0}

	s.placeFood()
	if s.food != (Cell{X: 2, Y: 2}) {
		t.Errorf("expected food on the only free cell, got (%d, %d)", s.food.X, s.food.Y)
	}
}
