package game

import "github.com/mielpeeters/whister/cards"

// Strategy chooses a legal card for a non-learning seat. It is the
// contract any external opponent — rule-based, human-backed, or a
// frozen model — must satisfy; the returned position must be one of the
// game's allowed cards for that seat.
type Strategy interface {
	ChooseCard(g *Game, seat int) cards.CardID
}

// Easy is the default rule-based opponent: lead with the strongest
// card, beat the table as cheaply as possible, and otherwise dump the
// weakest legal card.
type Easy struct{}

// ChooseCard implements Strategy.
func (Easy) ChooseCard(g *Game, seat int) cards.CardID {
	playable := g.AllowedCards()

	if g.First() {
		if id, ok := g.HighestCardOf(seat, playable); ok {
			return id
		}
		return playable[0]
	}

	if better := g.BetterCardsOf(seat, playable); len(better) > 0 {
		if id, ok := g.LowestCardOf(seat, better); ok {
			return id
		}
		return better[0]
	}

	if id, ok := g.LowestCardOf(seat, playable); ok {
		return id
	}
	return playable[0]
}
