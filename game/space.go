package game

import "github.com/mielpeeters/whister/qlearn"

// Table is the value table learned over this game's states and actions.
type Table = qlearn.Table[State, Action]

// NewTable returns an empty value table for this game.
func NewTable() *Table {
	return qlearn.NewTable[State, Action]()
}

// Game implements qlearn.Space over its own State and Action types.
var _ qlearn.Space[State, Action] = (*Game)(nil)

// NewSpace returns a fresh game to learn in.
func (g *Game) NewSpace() qlearn.Space[State, Action] {
	return New()
}

// Reward returns 1 when the learning seat took the last trick.
func (g *Game) Reward() float64 {
	if g.lastWinner == agentSeat {
		return 1
	}
	return 0
}

// TakeAction resolves the abstract action to a card and plays a full
// round with it. A non-nil table puts the opposing seats in self-play.
func (g *Game) TakeAction(a Action, table *Table) {
	g.AgentPlaysRound(g.ActionCardID(a), table)
}
