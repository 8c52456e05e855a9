// Package cards implements playing cards, suits, and ordered card
// collections for the colour whist engine.
package cards

// Suit is one of the four card suits. The numeric order (Spades lowest,
// Hearts highest) is the storage order used when sorting a hand.
type Suit uint8

const (
	Spades Suit = iota
	Clubs
	Diamonds
	Hearts
)

// NumSuits is the number of suits in a standard deck.
const NumSuits = 4

// Suits returns all suits in storage order.
func Suits() [NumSuits]Suit {
	return [NumSuits]Suit{Spades, Clubs, Diamonds, Hearts}
}

func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	}
	return "?"
}
