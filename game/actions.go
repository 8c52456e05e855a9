package game

import (
	"fmt"

	"github.com/mielpeeters/whister/cards"
)

// Action is an abstract move: a semantically meaningful play rather
// than a raw card identity, keeping the state-action space tractable.
// Parametrized actions are packed into a dense index range, so Action
// doubles as a table key and a serialization format.
type Action uint8

// Action index layout.
const (
	ActionBasePlayWorst Action = 0 // PlayWorst(Spades)..PlayWorst(Hearts), 4 entries
	ActionRaiseLow      Action = 4
	ActionRaiseHigh     Action = 5
	ActionTrumpHigh     Action = 6
	ActionTrumpLow      Action = 7
	ActionBasePlayBest  Action = 8 // PlayBest(Spades)..PlayBest(Hearts), 4 entries
	ActionComeBest      Action = 12

	NumActions = 13
)

// PlayWorst returns the action that dumps the lowest card of the suit.
func PlayWorst(s cards.Suit) Action { return ActionBasePlayWorst + Action(s) }

// PlayBest returns the action that plays the highest card of the suit.
func PlayBest(s cards.Suit) Action { return ActionBasePlayBest + Action(s) }

// IsPlayWorst returns the suit parameter if a encodes a PlayWorst action.
func (a Action) IsPlayWorst() (cards.Suit, bool) {
	if a < ActionRaiseLow {
		return cards.Suit(a - ActionBasePlayWorst), true
	}
	return 0, false
}

// IsPlayBest returns the suit parameter if a encodes a PlayBest action.
func (a Action) IsPlayBest() (cards.Suit, bool) {
	if a >= ActionBasePlayBest && a < ActionComeBest {
		return cards.Suit(a - ActionBasePlayBest), true
	}
	return 0, false
}

func (a Action) String() string {
	if s, ok := a.IsPlayWorst(); ok {
		return fmt.Sprintf("PlayWorst(%v)", s)
	}
	if s, ok := a.IsPlayBest(); ok {
		return fmt.Sprintf("PlayBest(%v)", s)
	}
	switch a {
	case ActionRaiseLow:
		return "RaiseLow"
	case ActionRaiseHigh:
		return "RaiseHigh"
	case ActionTrumpHigh:
		return "TrumpHigh"
	case ActionTrumpLow:
		return "TrumpLow"
	case ActionComeBest:
		return "ComeBest"
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// Actions enumerates the abstract actions legal in the current state:
//
//   - PlayWorst is always legal, for every suit.
//   - ComeBest only when leading with a provably best card to come out with.
//   - Trump moves when holding trump and either leading, unable to
//     follow, or following a trump lead.
//   - Raise moves when following with a strictly better card in hand.
//
// PlayBest is resolvable (imported models may contain it) but is never
// enumerated for exploration. The result is never empty.
func (g *Game) Actions() []Action {
	player := g.turn
	playable := g.AllowedCards()
	better := g.BetterCardsOf(player, playable)
	st := g.State()
	first := st.FirstSuit == -1
	canFollow := g.CanFollow(player)

	actions := make([]Action, 0, 9)
	for _, s := range cards.Suits() {
		actions = append(actions, PlayWorst(s))
	}

	if first {
		for _, has := range st.HasHighest {
			if has {
				actions = append(actions, ActionComeBest)
				break
			}
		}
	}

	if g.hands[player].HasSuit(trump) && (first || !canFollow || st.FirstSuit == int8(trump)) {
		actions = append(actions, ActionTrumpHigh, ActionTrumpLow)
	}

	if canFollow && len(better) > 0 && !first {
		actions = append(actions, ActionRaiseLow, ActionRaiseHigh)
	}

	return actions
}

// ActionCardID resolves an abstract action to a playable hand position.
// Every path falls back to the first legal card, so resolution always
// yields a legal play even when the action's preferred subset is empty.
func (g *Game) ActionCardID(a Action) cards.CardID {
	player := g.turn
	playable := g.AllowedCards()

	if suit, ok := a.IsPlayWorst(); ok {
		suitCards := g.OfWhichSuit(player, playable, suit)
		if len(suitCards) == 0 {
			suitCards = playable
		}
		if id, ok := g.LowestCardOf(player, suitCards); ok {
			return id
		}
		return playable[0]
	}

	if suit, ok := a.IsPlayBest(); ok {
		suitCards := g.OfWhichSuit(player, playable, suit)
		if len(suitCards) == 0 {
			suitCards = playable
		}
		if id, ok := g.HighestCardOf(player, suitCards); ok {
			return id
		}
		return playable[0]
	}

	switch a {
	case ActionRaiseLow:
		better := g.BetterCardsOf(player, playable)
		if id, ok := g.LowestCardOf(player, better); ok {
			return id
		}

	case ActionRaiseHigh:
		better := g.BetterCardsOf(player, playable)
		if id, ok := g.HighestCardOf(player, better); ok {
			return id
		}

	case ActionTrumpHigh:
		trumps := g.OfWhichSuit(player, playable, trump)
		if id, ok := g.HighestCardOf(player, trumps); ok {
			return id
		}

	case ActionTrumpLow:
		trumps := g.OfWhichSuit(player, playable, trump)
		if id, ok := g.LowestCardOf(player, trumps); ok {
			return id
		}

	case ActionComeBest:
		st := g.State()
		for _, s := range cards.Suits() {
			if !st.HasHighest[s] {
				continue
			}
			suitCards := g.OfWhichSuit(player, playable, s)
			if id, ok := g.HighestCardOf(player, suitCards); ok {
				return id
			}
			break
		}
	}

	return playable[0]
}
