// Package qlearn implements concurrent tabular Q-learning over a
// generic discrete state/action space.
//
// A Space is any turn-based environment exposing its compact observed
// state, the legal abstract actions, and a reward signal. The Trainer
// runs several producer goroutines, each simulating an independent
// Space instance, and a single consumer that batches their transitions
// into a shared value Table.
package qlearn

import "math/rand/v2"

// Space is a turn-based environment with discrete states and actions.
// S must be a compact comparable value type so it can key the value
// table; A is the abstract action type.
//
// Implementations are not required to be safe for concurrent use: the
// trainer gives each producer its own instance via NewSpace.
type Space[S comparable, A comparable] interface {
	// NewSpace returns a fresh, independent instance of this
	// environment to learn in.
	NewSpace() Space[S, A]

	// Reward returns the reward coupled with reaching the current state.
	Reward() float64

	// State returns the current observed state.
	State() S

	// Actions returns the abstract actions legal in the current state.
	// It must never return an empty slice for a non-terminal state.
	Actions() []A

	// TakeAction applies the action and advances the environment until
	// the learning seat must decide again. When table is non-nil the
	// opposing seats consult it for their own moves (self-play);
	// otherwise they fall back to the environment's default opponent.
	TakeAction(a A, table *Table[S, A])
}

// RandomAction picks a uniformly random legal action, the exploration
// policy used during training.
func RandomAction[S comparable, A comparable](sp Space[S, A]) A {
	actions := sp.Actions()
	return actions[rand.IntN(len(actions))]
}
