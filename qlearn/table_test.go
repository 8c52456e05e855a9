package qlearn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableGetDistinguishesMissingFromZero(t *testing.T) {
	tab := NewTable[int, string]()

	_, ok := tab.Get(1, "a")
	assert.False(t, ok)

	tab.Set(1, "a", 0)
	v, ok := tab.Get(1, "a")
	require.True(t, ok)
	assert.Zero(t, v)
}

func TestTableSetOverwrites(t *testing.T) {
	tab := NewTable[int, string]()
	tab.Set(1, "a", 0.25)
	tab.Set(1, "a", 0.75)

	v, ok := tab.Get(1, "a")
	require.True(t, ok)
	assert.Equal(t, 0.75, v)
	assert.Equal(t, 1, tab.Len())
}

func TestBestAction(t *testing.T) {
	tab := NewTable[int, string]()

	_, _, ok := tab.BestAction(1)
	assert.False(t, ok, "unvisited state has no best action")

	tab.Set(1, "a", 0.2)
	tab.Set(1, "b", 0.9)
	tab.Set(1, "c", -0.3)

	a, v, ok := tab.BestAction(1)
	require.True(t, ok)
	assert.Equal(t, "b", a)
	assert.Equal(t, 0.9, v)
}

func TestBestActionAllNegative(t *testing.T) {
	tab := NewTable[int, string]()
	tab.Set(1, "a", -0.5)
	tab.Set(1, "b", -0.1)

	a, v, ok := tab.BestAction(1)
	require.True(t, ok)
	assert.Equal(t, "b", a)
	assert.Equal(t, -0.1, v)
}

func TestCloneIsIndependent(t *testing.T) {
	tab := NewTable[int, string]()
	tab.Set(1, "a", 0.5)

	c := tab.Clone()
	c.Set(1, "a", 9)
	c.Set(2, "b", 1)

	v, _ := tab.Get(1, "a")
	assert.Equal(t, 0.5, v)
	assert.Equal(t, 1, tab.Len())
	assert.Equal(t, 2, c.Len())
}

func TestReduceRoundTrip(t *testing.T) {
	tab := NewTable[int, string]()
	tab.Set(1, "a", 0.2)
	tab.Set(1, "b", 0.9)
	tab.Set(2, "c", -0.4)

	rebuilt := FromReduced(tab.Reduce())

	a, _, ok := rebuilt.BestAction(1)
	require.True(t, ok)
	assert.Equal(t, "b", a)

	a, _, ok = rebuilt.BestAction(2)
	require.True(t, ok)
	assert.Equal(t, "c", a)
}
