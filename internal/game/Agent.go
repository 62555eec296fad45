package game

import "math/rand"

// Memory is the Agent's only cross-tick state: the last move returned and
// how many consecutive picks repeated it. It belongs to one session and is
// cleared on restart together with the GameState.
type Memory struct {
	LastMove    Move
	HasLast     bool
	RepeatCount int
}

// Agent drives the snake with a weighted one-step heuristic: prefer moves
// that close the Manhattan distance to the food, nudge toward the grid
// center, and break out of repetition before the snake settles into a loop.
type Agent struct {
	mem Memory
	rng *rand.Rand
}

func NewAgent(rng *rand.Rand) *Agent {
	return &Agent{rng: rng}
}

// ResetMemory clears the cross-tick state alongside a session restart.
func (a *Agent) ResetMemory() {
	a.mem = Memory{}
}

// Memory exposes the current cross-tick state, read-only.
func (a *Agent) Memory() Memory {
	return a.mem
}

// NextMove implements Strategy.
func (a *Agent) NextMove(s *GameState) Move {
	safe := s.SafeMoves()

	// Boxed in. Any move loses on the next step, so keep the loop moving
	// with a random pick rather than stalling.
	if len(safe) == 0 {
		return a.record(Moves[a.rng.Intn(len(Moves))])
	}
	if len(safe) == 1 {
		return a.record(safe[0])
	}

	best := safe[0]
	bestScore := a.scoreMove(s, safe[0])
	for _, m := range safe[1:] {
		if score := a.scoreMove(s, m); score > bestScore {
			best = m
			bestScore = score
		}
	}

	// Breaking the pick when it repeats too long keeps the snake from
	// shuttling between two cells when the scores plateau.
	if a.mem.HasLast && best == a.mem.LastMove {
		a.mem.RepeatCount++
		if a.mem.RepeatCount > maxMoveRepeats {
			a.mem.RepeatCount = 0
			alternates := make([]Move, 0, len(safe)-1)
			for _, m := range safe {
				if m != best {
					alternates = append(alternates, m)
				}
			}
			if len(alternates) > 0 {
				best = alternates[a.rng.Intn(len(alternates))]
			}
		}
	}

	return a.record(best)
}

func (a *Agent) scoreMove(s *GameState, m Move) float64 {
	head := s.Head()
	food := s.Food()
	v := m.Vector()
	candidate := Cell{X: head.X + v.Dx, Y: head.Y + v.Dy}

	score := 0.0

	newDist := getManhattanDistance(candidate, food)
	curDist := getManhattanDistance(head, food)
	if newDist < curDist {
		score += progressReward
	} else if newDist > curDist {
		score += progressPenalty
	}

	// Reward moving along an axis whose sign agrees with the food offset.
	if (v.Dx > 0 && food.X > head.X) || (v.Dx < 0 && food.X < head.X) ||
		(v.Dy > 0 && food.Y > head.Y) || (v.Dy < 0 && food.Y < head.Y) {
		score += alignmentBonus
	}

	if a.mem.HasLast && m == a.mem.LastMove {
		score += repetitionPenalty
	}

	// Bias away from edges and corners, where the safe-move count shrinks.
	centerX := float64(s.Cols()) / 2
	centerY := float64(s.Rows()) / 2
	score += centeringBase - manhattanToPoint(candidate, centerX, centerY)

	return score
}

// record tracks the returned move. A change of move always zeroes the repeat
// counter, including on the single-safe and no-safe shortcuts, so a count
// built up before a forced corridor cannot trip the re-pick early once
// scoring resumes.
func (a *Agent) record(m Move) Move {
	if !a.mem.HasLast || m != a.mem.LastMove {
		a.mem.RepeatCount = 0
	}
	a.mem.LastMove = m
	a.mem.HasLast = true
	return m
}
