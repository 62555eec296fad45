package game

// Strategy picks the next move for a session. The heuristic Agent is the
// default implementation; LuaStrategy wraps a user-supplied script.
type Strategy interface {
	NextMove(s *GameState) Move
}
