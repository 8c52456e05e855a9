package game

import "github.com/mielpeeters/whister/cards"

// State is the compact observation a learner sees when deciding a card.
// It deliberately discards hand composition beyond follow/higher/trump
// adjacency and the per-suit "provably best" flags, keeping the state
// space small enough for a tabular method to converge.
//
// State is a flat comparable value type so it can key the value table
// directly.
type State struct {
	// CanFollow is true when the table is empty or the hand holds the
	// led suit.
	CanFollow bool
	// HaveHigher is true when some legal play beats the current trick
	// winner; vacuously true when leading.
	HaveHigher bool
	// FirstSuit is the led suit's index, or -1 when leading.
	FirstSuit int8
	// HasHighest[suit] is true when the hand's best card of that suit is
	// provably the highest one still in play.
	HasHighest [cards.NumSuits]bool
	// HaveTrump is true when the hand holds any trump card.
	HaveTrump bool
	// CantFollow packs the per-suit cannot-follow counters, two bits per
	// suit.
	CantFollow uint8
}

// State derives the acting player's observation from the game. It is a
// pure function of the player's hand, the table, the gone-cards memory
// and the turn pointer; nothing is cached between calls.
func (g *Game) State() State {
	player := g.turn
	hand := g.hands[player]

	st := State{
		CanFollow:  g.CanFollow(player),
		HaveHigher: true,
		FirstSuit:  -1,
		HasHighest: [cards.NumSuits]bool{true, true, true, true},
		HaveTrump:  hand.HasSuit(trump),
	}

	if !g.First() {
		st.FirstSuit = int8(g.table.Card(0).Suit)

		best := g.table.Card(g.winnerPos())
		st.HaveHigher = false
		for _, id := range g.AllowedCards() {
			if hand.Card(id).Winning(best, trump) > 0 {
				st.HaveHigher = true
				break
			}
		}
	}

	// I provably hold the best remaining card of a suit when every card
	// scoring above my highest has already gone.
	for _, s := range cards.Suits() {
		myBest, ok := hand.MaxScoreOfSuit(s)
		if !ok {
			st.HasHighest[s] = false
			continue
		}
		for score := myBest + 1; score <= 14; score++ {
			if !g.goneCards[s][score-2] {
				st.HasHighest[s] = false
				break
			}
		}
	}

	for i, nb := range g.cantFollow {
		st.CantFollow |= nb << (2 * i)
	}

	return st
}
