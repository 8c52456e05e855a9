package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mielpeeters/whister/cards"
)

func TestStateLeadingDefaults(t *testing.T) {
	g := NewSeeded(20)
	st := g.State()

	assert.True(t, st.CanFollow)
	assert.True(t, st.HaveHigher, "vacuously true when leading")
	assert.Equal(t, int8(-1), st.FirstSuit)
	assert.Zero(t, st.CantFollow)
}

func TestStateHasHighestWithAce(t *testing.T) {
	g := NewSeeded(21)
	g.hands[0] = cards.NewFrom([]cards.Card{
		{Suit: cards.Spades, Rank: 1},
		{Suit: cards.Clubs, Rank: 2},
	})

	st := g.State()
	assert.True(t, st.HasHighest[cards.Spades])
	assert.False(t, st.HasHighest[cards.Clubs])
	assert.False(t, st.HasHighest[cards.Diamonds], "suit not in hand")
	assert.False(t, st.HaveTrump)
}

func TestStateHasHighestAfterAceGone(t *testing.T) {
	g := NewSeeded(22)
	g.hands[0] = cards.NewFrom([]cards.Card{
		{Suit: cards.Clubs, Rank: 13},
	})

	assert.False(t, g.State().HasHighest[cards.Clubs])

	// Once the ace is in the trick history the king is the best left.
	g.goneCards[cards.Clubs][14-2] = true
	assert.True(t, g.State().HasHighest[cards.Clubs])
}

func TestStateFollowingWithoutHigher(t *testing.T) {
	g := NewSeeded(23)
	require.NoError(t, g.play(cards.Card{Suit: cards.Clubs, Rank: 1}))
	g.hands[g.Turn()] = cards.NewFrom([]cards.Card{
		{Suit: cards.Clubs, Rank: 2},
		{Suit: cards.Clubs, Rank: 3},
	})

	st := g.State()
	assert.True(t, st.CanFollow)
	assert.False(t, st.HaveHigher, "nothing beats a led ace in suit")
	assert.Equal(t, int8(cards.Clubs), st.FirstSuit)
}

func TestStateFollowingWithTrump(t *testing.T) {
	g := NewSeeded(24)
	require.NoError(t, g.play(cards.Card{Suit: cards.Clubs, Rank: 1}))
	g.hands[g.Turn()] = cards.NewFrom([]cards.Card{
		{Suit: cards.Hearts, Rank: 2},
	})

	st := g.State()
	assert.False(t, st.CanFollow)
	assert.True(t, st.HaveHigher, "a trump beats the led ace")
	assert.True(t, st.HaveTrump)
}

func TestStateCantFollowPacking(t *testing.T) {
	g := NewSeeded(25)
	g.cantFollow = [cards.NumSuits]uint8{1, 2, 3, 0}

	// 1 + 2<<2 + 3<<4 = 57.
	assert.Equal(t, uint8(57), g.State().CantFollow)
}
