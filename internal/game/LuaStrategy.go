package game

import (
	"fmt"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"
)

// LuaStrategy runs a user-supplied Lua chunk that defines
//
//	function chooseMove(head, food, safe)
//
// where head and food are tables with x/y fields and safe is an array of
// direction names in canonical order. The function must return one of the
// names from safe. Any load, call, or conversion problem falls back to the
// wrapped strategy, so a broken script degrades to the built-in heuristic
// instead of freezing the screensaver.
type LuaStrategy struct {
	source   string
	fallback Strategy
}

func NewLuaStrategy(source string, fallback Strategy) *LuaStrategy {
	return &LuaStrategy{source: source, fallback: fallback}
}

// NextMove implements Strategy.
func (ls *LuaStrategy) NextMove(s *GameState) Move {
	m, err := ls.eval(s)
	if err != nil {
		log.Debug("lua strategy fell back to heuristic", "error", err)
		return ls.fallback.NextMove(s)
	}
	return m
}

func (ls *LuaStrategy) eval(s *GameState) (Move, error) {
	luaState := lua.NewState()
	defer luaState.Close()

	if err := luaState.DoString(ls.source); err != nil {
		return North, fmt.Errorf("could not load lua strategy: %w", err)
	}

	fn, ok := luaState.GetGlobal("chooseMove").(*lua.LFunction)
	if !ok {
		return North, fmt.Errorf("lua strategy does not define chooseMove")
	}

	safe := s.SafeMoves()
	safeTable := luaState.NewTable()
	for _, m := range safe {
		safeTable.Append(lua.LString(m.String()))
	}

	err := luaState.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true},
		cellToLuaTable(luaState, s.Head()),
		cellToLuaTable(luaState, s.Food()),
		safeTable,
	)
	if err != nil {
		return North, fmt.Errorf("could not execute lua strategy: %w", err)
	}

	ret := luaState.Get(-1)
	luaState.Pop(1)

	name, ok := ret.(lua.LString)
	if !ok {
		return North, fmt.Errorf("lua strategy returned %s, expected string", ret.Type())
	}

	move, ok := moveByName(string(name))
	if !ok {
		return North, fmt.Errorf("lua strategy returned unknown move %q", string(name))
	}
	return move, nil
}

func cellToLuaTable(luaState *lua.LState, c Cell) *lua.LTable {
	tbl := luaState.NewTable()
	tbl.RawSetString("x", lua.LNumber(c.X))
	tbl.RawSetString("y", lua.LNumber(c.Y))
	return tbl
}
