package cards

import "cmp"

// Card is an immutable playing card: a suit and a rank in 1..13,
// where rank 1 is the Ace.
type Card struct {
	Suit Suit
	Rank uint8
}

// Score returns the card's comparison score. The Ace scores highest (14);
// every other rank scores as itself, so scores range over 2..14.
func (c Card) Score() int {
	if c.Rank == 1 {
		return 14
	}
	return int(c.Rank)
}

// Less is the storage order used for sorting a hand: by suit first,
// then by ascending score.
func (c Card) Less(o Card) bool {
	if c.Suit != o.Suit {
		return c.Suit < o.Suit
	}
	return c.Score() < o.Score()
}

// Higher compares two cards by playing strength, ignoring play order.
// Within a suit the higher score wins; a trump beats any non-trump;
// two non-trump suits compare by score. Returns -1, 0 or +1.
func (c Card) Higher(o Card, trump Suit) int {
	if c.Suit == o.Suit {
		return cmp.Compare(c.Score(), o.Score())
	}
	if c.Suit == trump {
		return 1
	}
	if o.Suit == trump {
		return -1
	}
	return cmp.Compare(c.Score(), o.Score())
}

// Winning compares two cards as played in a trick, with c played before o.
// Within a suit the higher score wins and a trump beats any non-trump,
// but between two different non-trump suits the earlier card (c) always
// dominates. Returns -1, 0 or +1.
func (c Card) Winning(o Card, trump Suit) int {
	if c.Suit == o.Suit {
		return cmp.Compare(c.Score(), o.Score())
	}
	if c.Suit == trump {
		return 1
	}
	if o.Suit == trump {
		return -1
	}
	return 1
}

func (c Card) String() string {
	var rank string
	switch c.Rank {
	case 1:
		rank = "A"
	case 10:
		rank = "T"
	case 11:
		rank = "J"
	case 12:
		rank = "Q"
	case 13:
		rank = "K"
	default:
		rank = string('0' + c.Rank)
	}
	return rank + c.Suit.String()
}
