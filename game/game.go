// Package game implements a four-player game of colour whist: hands,
// the table, trick resolution and score accounting, together with the
// compact observed state and abstract action space a tabular learner
// uses to play it.
package game

import (
	"math/rand/v2"

	"github.com/pkg/errors"

	"github.com/mielpeeters/whister/cards"
)

const (
	// NumSeats is the number of players at the table.
	NumSeats = 4
	// TricksPerDeal is the number of tricks in one full deal.
	TricksPerDeal = 13

	// agentSeat is the learning seat. Rewards and round-advancement are
	// defined from its perspective.
	agentSeat = 0
)

// trump is the fixed trump suit.
const trump = cards.Hearts

// Sentinel errors for the two recoverable rule violations. Externally
// triggered violations (a caller submitting a bad card id, a trick
// resolved at the wrong time) surface as these; the engine's own
// internal play paths treat them as programming errors and panic.
var (
	// ErrIllegalMove reports a play that is out of range or breaks the
	// follow-suit rule.
	ErrIllegalMove = errors.New("illegal move")
	// ErrIncompleteTrick reports a trick resolution attempted without
	// exactly four cards on the table.
	ErrIncompleteTrick = errors.New("incomplete trick")
)

// Game is one mutable colour whist session: four hands, the cards
// currently on the table, the history of completed tricks, and the
// card-counting memory derived from it.
type Game struct {
	hands  [NumSeats]*cards.Deck
	table  *cards.Deck
	tricks []*cards.Deck

	turn       int
	lastWinner int

	scores     [NumSeats]uint32 // lifetime, accumulated per deal
	dealScores [NumSeats]uint32 // tricks won in the current deal

	// goneCards[suit][score-2] is true once that card has appeared in a
	// completed trick.
	goneCards [cards.NumSuits][TricksPerDeal]bool
	// cantFollow[suit] counts how many players failed to follow the last
	// time that suit was led. Counters reset lazily when the suit is
	// next led, so stale values persist until then.
	cantFollow [cards.NumSuits]uint8

	opponent Strategy
	rng      *rand.Rand
}

// New creates a game with freshly dealt, sorted hands and the
// rule-based default opponent.
func New() *Game {
	return NewSeeded(rand.Uint64())
}

// NewSeeded creates a game whose shuffles derive from the given seed.
func NewSeeded(seed uint64) *Game {
	g := &Game{
		table:    cards.NewEmpty(),
		opponent: Easy{},
		rng:      rand.New(rand.NewPCG(seed, 0x9e3779b97f4a7c15)),
	}
	g.deal()
	return g
}

// deal shuffles a full pack and distributes four sorted 13-card hands.
func (g *Game) deal() {
	deck := cards.NewFull()
	deck.Shuffle(g.rng)
	for seat := 0; seat < NumSeats; seat++ {
		hand := deck.Pull(TricksPerDeal)
		hand.Sort()
		g.hands[seat] = hand
	}
}

// NewDeal folds the per-deal scores into the lifetime scores, clears
// the trick history and card-counting memory, and redeals. The trick
// winner keeps the lead into the new deal.
func (g *Game) NewDeal() {
	for seat, s := range g.dealScores {
		g.scores[seat] += s
	}
	g.dealScores = [NumSeats]uint32{}
	g.tricks = nil
	g.goneCards = [cards.NumSuits][TricksPerDeal]bool{}
	g.deal()
}

// SetOpponent replaces the default strategy used for non-learning seats.
func (g *Game) SetOpponent(s Strategy) { g.opponent = s }

// Turn returns the seat currently expected to play.
func (g *Game) Turn() int { return g.turn }

// Hand returns the given seat's hand.
func (g *Game) Hand(seat int) *cards.Deck { return g.hands[seat] }

// Table returns the cards currently in play.
func (g *Game) Table() *cards.Deck { return g.table }

// TricksPlayed returns the number of completed tricks this deal.
func (g *Game) TricksPlayed() int { return len(g.tricks) }

// Scores returns the lifetime scores. Tricks won in the current,
// unfinished deal are not yet included.
func (g *Game) Scores() [NumSeats]uint32 { return g.scores }

// DealScores returns the tricks won so far in the current deal.
func (g *Game) DealScores() [NumSeats]uint32 { return g.dealScores }

// AgentScore returns the learning seat's lifetime score.
func (g *Game) AgentScore() uint32 { return g.scores[agentSeat] }

// First reports whether the acting player leads the trick.
func (g *Game) First() bool { return g.table.IsEmpty() }

// CanFollow reports whether the seat can follow the led suit. It is
// vacuously true when the table is empty.
func (g *Game) CanFollow(seat int) bool {
	if g.table.IsEmpty() {
		return true
	}
	return g.hands[seat].HasSuit(g.table.Card(0).Suit)
}

// GoneCard reports whether the card of the given suit and score has
// already appeared in a completed trick this deal.
func (g *Game) GoneCard(suit cards.Suit, score int) bool {
	return g.goneCards[suit][score-2]
}

// AllowedCards returns the hand positions the acting player may legally
// play: the led suit when it can be followed, otherwise the whole hand.
// The result is never empty for a non-empty hand.
func (g *Game) AllowedCards() []cards.CardID {
	hand := g.hands[g.turn]
	if !g.table.IsEmpty() && hand.HasSuit(g.table.Card(0).Suit) {
		return hand.SuitIndices(g.table.Card(0).Suit)
	}
	all := make([]cards.CardID, hand.Size())
	for i := range all {
		all[i] = i
	}
	return all
}

// winnerPos returns the table position of the card currently winning
// the trick. Ties between different non-trump suits resolve to the
// earlier-played card.
func (g *Game) winnerPos() int {
	pos := 0
	for i := 1; i < g.table.Size(); i++ {
		if g.table.Card(pos).Winning(g.table.Card(i), trump) < 0 {
			pos = i
		}
	}
	return pos
}

// BetterCardsOf filters playable down to the positions whose card
// strictly beats the current table winner. An empty table means there
// is no winner to beat, so playable is returned unchanged.
func (g *Game) BetterCardsOf(seat int, playable []cards.CardID) []cards.CardID {
	if g.table.IsEmpty() {
		out := make([]cards.CardID, len(playable))
		copy(out, playable)
		return out
	}

	hand := g.hands[seat]
	best := g.table.Card(g.winnerPos())
	better := make([]cards.CardID, 0, len(playable))
	for _, id := range playable {
		if hand.Card(id).Winning(best, trump) > 0 {
			better = append(better, id)
		}
	}
	return better
}

// HighestCardOf returns the strongest card among the seat's given hand
// positions. ok is false for an empty subset.
func (g *Game) HighestCardOf(seat int, outOf []cards.CardID) (cards.CardID, bool) {
	return g.hands[seat].Highest(outOf, trump)
}

// LowestCardOf returns the weakest card among the seat's given hand
// positions. ok is false for an empty subset.
func (g *Game) LowestCardOf(seat int, outOf []cards.CardID) (cards.CardID, bool) {
	return g.hands[seat].Lowest(outOf, trump)
}

// OfWhichSuit filters the seat's hand positions down to the given suit.
func (g *Game) OfWhichSuit(seat int, outOf []cards.CardID, suit cards.Suit) []cards.CardID {
	hand := g.hands[seat]
	ids := make([]cards.CardID, 0, len(outOf))
	for _, id := range outOf {
		if hand.Card(id).Suit == suit {
			ids = append(ids, id)
		}
	}
	return ids
}

// play puts the card on the table and advances the turn.
func (g *Game) play(c cards.Card) error {
	if g.table.Size() >= NumSeats {
		return errors.Wrap(ErrIllegalMove, "table already holds four cards")
	}
	g.table.Add(c)
	g.turn = (g.turn + 1) % NumSeats
	return nil
}

// PlayerPlays plays the acting player's card at the given hand
// position. It returns ErrIllegalMove when the position is out of range
// or the card breaks the follow-suit rule.
func (g *Game) PlayerPlays(id cards.CardID) error {
	hand := g.hands[g.turn]
	if id < 0 || id >= hand.Size() {
		return errors.Wrapf(ErrIllegalMove, "card %d out of range for a hand of %d", id, hand.Size())
	}

	allowed := false
	for _, a := range g.AllowedCards() {
		if a == id {
			allowed = true
			break
		}
	}
	if !allowed {
		return errors.Wrapf(ErrIllegalMove, "seat %d can follow %v but card %d does not", g.turn, g.table.Card(0).Suit, id)
	}

	return g.play(hand.Remove(id))
}

// Trick resolves the four cards on the table: the winning seat takes
// the lead and a point, the cards fold into the trick history, and the
// card-counting memory updates. After the 13th trick the per-deal
// scores accumulate into the lifetime scores and fresh hands are dealt.
//
// It returns ErrIncompleteTrick unless exactly four cards are in play.
func (g *Game) Trick() error {
	if g.table.Size() != NumSeats {
		return errors.Wrapf(ErrIncompleteTrick, "table holds %d cards", g.table.Size())
	}

	// Table position 0 was played by the previous trick's winner.
	winner := (g.winnerPos() + g.lastWinner) % NumSeats
	g.turn = winner
	g.lastWinner = winner
	g.dealScores[winner]++

	taken := g.table.Pull(NumSeats)
	ledSuit := taken.Card(0).Suit
	g.cantFollow[ledSuit] = 0
	for i := 0; i < taken.Size(); i++ {
		c := taken.Card(i)
		if i > 0 && c.Suit != ledSuit {
			g.cantFollow[ledSuit]++
		}
		g.goneCards[c.Suit][c.Score()-2] = true
	}
	g.tricks = append(g.tricks, taken)

	if len(g.tricks) == TricksPerDeal {
		g.NewDeal()
	}
	return nil
}

// opponentPlays lets the acting non-learning seat play: from the shared
// value table under self-play, otherwise via the configured strategy.
func (g *Game) opponentPlays(table *Table) {
	var id cards.CardID
	if table != nil {
		id = g.BestCardID(table)
	} else {
		id = g.opponent.ChooseCard(g, g.turn)
	}
	if err := g.PlayerPlays(id); err != nil {
		panic(errors.Wrap(err, "opponent produced an illegal card"))
	}
}

// AgentPlaysRound plays one full round from the learning seat's
// perspective: the agent's card goes down, the remaining seats fill the
// trick, the trick resolves (redealing after the 13th), and the leading
// seats of the next trick play until control returns to the agent.
//
// The card id must come from the action resolver; an illegal id is a
// programming error and panics. Both advancement loops are bounded by
// the seat count so a broken turn-rotation invariant fails fast instead
// of spinning.
func (g *Game) AgentPlaysRound(id cards.CardID, table *Table) {
	if err := g.PlayerPlays(id); err != nil {
		panic(errors.Wrap(err, "agent played an illegal card"))
	}

	for i := 0; g.table.Size() < NumSeats; i++ {
		if i >= NumSeats {
			panic("turn rotation failed to fill the trick")
		}
		g.opponentPlays(table)
	}

	if err := g.Trick(); err != nil {
		panic(errors.Wrap(err, "trick resolution failed mid-round"))
	}

	for i := 0; g.turn != agentSeat; i++ {
		if i >= NumSeats {
			panic("turn rotation never returned to the agent")
		}
		g.opponentPlays(table)
	}
}

// BestCardID resolves the table's best known action for the current
// state to a playable card, falling back to a random legal action when
// the state has never been visited.
func (g *Game) BestCardID(table *Table) cards.CardID {
	if action, _, ok := table.BestAction(g.State()); ok {
		return g.ActionCardID(action)
	}
	actions := g.Actions()
	return g.ActionCardID(actions[g.rng.IntN(len(actions))])
}
