package game

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// TickMsg carries one rendered-ready frame to the UI.
type TickMsg struct {
	Frame Snapshot
}

// SessionEndedMsg is published once per session, right after the terminal
// transition and before the restart countdown begins.
type SessionEndedMsg struct {
	FinalScore  int
	FinalLength int
	Games       int
}

// Snapshot is a read-only copy of everything the UI paints. Handing copies
// to the renderer keeps the loop the sole owner of the GameState, so neither
// side ever needs a lock.
type Snapshot struct {
	Cols      int
	Rows      int
	Snake     []Cell
	Food      Cell
	Dir       Direction
	Score     int
	Alive     bool
	Games     int
	Interval  time.Duration
	RestartIn int
}

type resizeRequest struct {
	cols int
	rows int
}

// Director owns one GameState/Agent pair and drives it from a single
// goroutine: choose a move, step the state, publish a frame. Each Director
// is independent; concurrent sessions (one per SSH client) never share state.
type Director struct {
	state    *GameState
	agent    *Agent
	strategy Strategy
	scores   *ScoreService

	games        atomic.Int64
	interval     time.Duration
	restartTicks int

	// Updates is drained by the UI. Sends never block: a slow renderer
	// drops frames instead of stalling the simulation.
	Updates  chan tea.Msg
	resize   chan resizeRequest
	done     chan struct{}
	stopOnce sync.Once
}

func NewDirector(cols, rows int, scores *ScoreService) *Director {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	agent := NewAgent(rng)
	return &Director{
		state:    NewGameState(cols, rows, rng),
		agent:    agent,
		strategy: agent,
		scores:   scores,
		interval: BaseTickDuration,
		Updates:  make(chan tea.Msg, 8),
		resize:   make(chan resizeRequest, 1),
		done:     make(chan struct{}),
	}
}

// UseStrategy swaps the decision procedure. Call before Start.
func (d *Director) UseStrategy(s Strategy) {
	d.strategy = s
}

// UseLuaStrategy routes decisions through a user script, with the built-in
// agent as the fallback so its memory still resets with the session.
func (d *Director) UseLuaStrategy(source string) {
	d.strategy = NewLuaStrategy(source, d.agent)
}

// Start runs the tick loop until Stop is called.
func (d *Director) Start() {
	go d.loop()
}

func (d *Director) Stop() {
	d.stopOnce.Do(func() { close(d.done) })
}

// Resize requests new grid bounds; the loop applies them between ticks so the
// state pair stays single-threaded.
func (d *Director) Resize(cols, rows int) {
	select {
	case d.resize <- resizeRequest{cols: cols, rows: rows}:
	default:
	}
}

func (d *Director) loop() {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-d.done:
			return
		case req := <-d.resize:
			d.state.Resize(req.cols, req.rows)
		case <-ticker.C:
			d.tick()
			if next := d.tickInterval(); next != d.interval {
				d.interval = next
				ticker.Reset(next)
			}
		}
	}
}

// tick advances exactly one frame: restart countdown when dead, otherwise
// agent then state, strictly sequentially.
func (d *Director) tick() {
	if !d.state.Alive() {
		d.restartTicks--
		if d.restartTicks <= 0 {
			d.state.Reset()
			d.agent.ResetMemory()
		}
		d.publish(TickMsg{Frame: d.snapshot()})
		return
	}

	move := d.strategy.NextMove(d.state)
	if err := d.state.Step(move); err != nil {
		log.Error("strategy produced an invalid move", "move", move, "error", err)
		d.publish(TickMsg{Frame: d.snapshot()})
		return
	}

	if !d.state.Alive() {
		games := int(d.games.Add(1))
		d.restartTicks = int(RestartDelay / d.interval)
		if err := d.scores.SaveScore(d.state.Score(), len(d.state.Snake()), games); err != nil {
			log.Warn("session score persist failed", "error", err)
		}
		d.publish(SessionEndedMsg{
			FinalScore:  d.state.Score(),
			FinalLength: len(d.state.Snake()),
			Games:       games,
		})
	}

	d.publish(TickMsg{Frame: d.snapshot()})
}

// tickInterval speeds the animation up as the score grows.
func (d *Director) tickInterval() time.Duration {
	interval := BaseTickDuration - time.Duration(d.state.Score())*speedupPerPoint
	if interval < MinTickDuration {
		interval = MinTickDuration
	}
	return interval
}

func (d *Director) snapshot() Snapshot {
	return Snapshot{
		Cols:      d.state.Cols(),
		Rows:      d.state.Rows(),
		Snake:     d.state.Snake(),
		Food:      d.state.Food(),
		Dir:       d.state.Dir(),
		Score:     d.state.Score(),
		Alive:     d.state.Alive(),
		Games:     int(d.games.Load()),
		Interval:  d.interval,
		RestartIn: d.restartTicks,
	}
}

func (d *Director) publish(msg tea.Msg) {
	select {
	case d.Updates <- msg:
	default:
	}
}

// Games reports how many sessions have reached their terminal state.
func (d *Director) Games() int {
	return int(d.games.Load())
}
