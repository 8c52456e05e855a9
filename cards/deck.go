package cards

import (
	"math/rand/v2"
	"slices"
	"strings"
)

// CardID indexes a card within a Deck. IDs are positional: removing a
// card shifts the IDs of every card after it.
type CardID = int

// Deck is an ordered collection of cards — a full pack, a hand, or the
// cards on the table. It keeps a per-suit count that is maintained
// incrementally by Add and Remove, so suit queries are O(1).
//
// The suit counts are only correct as long as all mutation goes through
// the Deck's own methods.
type Deck struct {
	cards      []Card
	suitCounts [NumSuits]int
}

// NewFull returns the full 52-card pack in suit order, unshuffled.
func NewFull() *Deck {
	d := &Deck{cards: make([]Card, 0, 52)}
	for _, s := range Suits() {
		for r := uint8(1); r <= 13; r++ {
			d.cards = append(d.cards, Card{Suit: s, Rank: r})
		}
		d.suitCounts[s] = 13
	}
	return d
}

// NewEmpty returns a deck with no cards.
func NewEmpty() *Deck {
	return &Deck{}
}

// NewFrom builds a deck from the given cards, taking ownership of the slice.
func NewFrom(cs []Card) *Deck {
	d := &Deck{cards: cs}
	for _, c := range cs {
		d.suitCounts[c.Suit]++
	}
	return d
}

// Shuffle randomizes the deck order using rng.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Sort orders the deck by suit first, then by ascending score within
// each suit.
func (d *Deck) Sort() {
	slices.SortFunc(d.cards, func(a, b Card) int {
		if a.Less(b) {
			return -1
		}
		if b.Less(a) {
			return 1
		}
		return 0
	})
}

// Pull removes the first n cards from the deck and returns them as a new
// deck, preserving order. Both decks' suit counts are updated.
func (d *Deck) Pull(n int) *Deck {
	pulled := NewFrom(slices.Clone(d.cards[:n]))
	d.cards = d.cards[n:]
	for _, s := range Suits() {
		d.suitCounts[s] -= pulled.suitCounts[s]
	}
	return pulled
}

// Size returns the number of cards in the deck.
func (d *Deck) Size() int { return len(d.cards) }

// IsEmpty reports whether the deck holds no cards.
func (d *Deck) IsEmpty() bool { return len(d.cards) == 0 }

// Card returns the card at the given position.
func (d *Deck) Card(id CardID) Card { return d.cards[id] }

// HasSuit reports whether the deck holds at least one card of the suit.
func (d *Deck) HasSuit(s Suit) bool { return d.suitCounts[s] > 0 }

// SuitCount returns the number of cards of the given suit.
func (d *Deck) SuitCount(s Suit) int { return d.suitCounts[s] }

// Contains reports whether the deck holds the exact card.
func (d *Deck) Contains(c Card) bool { return slices.Contains(d.cards, c) }

// IDOf returns the position of the exact card, if present.
func (d *Deck) IDOf(c Card) (CardID, bool) {
	i := slices.Index(d.cards, c)
	return i, i >= 0
}

// Add appends the card to the deck.
func (d *Deck) Add(c Card) {
	d.suitCounts[c.Suit]++
	d.cards = append(d.cards, c)
}

// Remove deletes the card at the given position and returns it.
func (d *Deck) Remove(id CardID) Card {
	c := d.cards[id]
	d.suitCounts[c.Suit]--
	d.cards = slices.Delete(d.cards, id, id+1)
	return c
}

// SuitIndices returns the positions of all cards of the given suit.
func (d *Deck) SuitIndices(s Suit) []CardID {
	ids := make([]CardID, 0, d.suitCounts[s])
	for i, c := range d.cards {
		if c.Suit == s {
			ids = append(ids, i)
		}
	}
	return ids
}

// MaxScoreOfSuit returns the highest score the deck holds in the given
// suit. ok is false when the deck has no cards of that suit.
func (d *Deck) MaxScoreOfSuit(s Suit) (score int, ok bool) {
	for _, c := range d.cards {
		if c.Suit == s && c.Score() > score {
			score = c.Score()
			ok = true
		}
	}
	return score, ok
}

// Highest returns the strongest card among the given positions by the
// Higher comparator. ok is false when the subset is empty; callers are
// expected to fall back to their first legal card.
func (d *Deck) Highest(available []CardID, trump Suit) (CardID, bool) {
	if len(available) == 0 {
		return 0, false
	}
	best := available[0]
	for _, id := range available[1:] {
		if d.cards[id].Higher(d.cards[best], trump) > 0 {
			best = id
		}
	}
	return best, true
}

// Lowest returns the weakest card among the given positions by the
// Higher comparator. ok is false when the subset is empty.
func (d *Deck) Lowest(available []CardID, trump Suit) (CardID, bool) {
	if len(available) == 0 {
		return 0, false
	}
	best := available[0]
	for _, id := range available[1:] {
		if d.cards[id].Higher(d.cards[best], trump) < 0 {
			best = id
		}
	}
	return best, true
}

func (d *Deck) String() string {
	if d.IsEmpty() {
		return "empty"
	}
	var b strings.Builder
	for i, c := range d.cards {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.String())
	}
	return b.String()
}
