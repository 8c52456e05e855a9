package qlearn

// Table maps every visited (state, action) pair to its expected
// discounted future reward. Entries are created lazily on first update,
// so a missing state is meaningful: it has never been visited.
//
// Table itself is not synchronized; the Trainer guards its shared table
// with a read/write lock.
type Table[S comparable, A comparable] struct {
	entries map[S]map[A]float64
}

// reducedValue is the value assigned to the argmax action when a table
// is rebuilt from a reduced state→action map. The magnitude is
// arbitrary; only the argmax survives reduction.
const reducedValue = 10.0

// NewTable returns an empty value table.
func NewTable[S comparable, A comparable]() *Table[S, A] {
	return &Table[S, A]{entries: make(map[S]map[A]float64)}
}

// Len returns the number of distinct states in the table.
func (t *Table[S, A]) Len() int { return len(t.entries) }

// Get returns the value stored for (state, action). ok is false when no
// entry exists, which is distinct from an entry holding zero.
func (t *Table[S, A]) Get(state S, action A) (value float64, ok bool) {
	value, ok = t.entries[state][action]
	return value, ok
}

// Set stores the value for (state, action), creating the state entry if
// needed.
func (t *Table[S, A]) Set(state S, action A, value float64) {
	m, ok := t.entries[state]
	if !ok {
		m = make(map[A]float64)
		t.entries[state] = m
	}
	m[action] = value
}

// BestAction returns the highest-valued action recorded for the state.
// ok is false when the state has never been visited; callers fall back
// to the initial value (bootstrapping) or to exploration (play).
func (t *Table[S, A]) BestAction(state S) (action A, value float64, ok bool) {
	m, present := t.entries[state]
	if !present || len(m) == 0 {
		return action, 0, false
	}
	first := true
	for a, v := range m {
		if first || v > value {
			action, value = a, v
			first = false
		}
	}
	return action, value, true
}

// Clone returns a deep copy of the table.
func (t *Table[S, A]) Clone() *Table[S, A] {
	c := &Table[S, A]{entries: make(map[S]map[A]float64, len(t.entries))}
	for s, m := range t.entries {
		cm := make(map[A]float64, len(m))
		for a, v := range m {
			cm[a] = v
		}
		c.entries[s] = cm
	}
	return c
}

// Reduce collapses the table to its greedy policy: one argmax action per
// state. Value magnitudes are lost.
func (t *Table[S, A]) Reduce() map[S]A {
	optimal := make(map[S]A, len(t.entries))
	for s := range t.entries {
		if a, _, ok := t.BestAction(s); ok {
			optimal[s] = a
		}
	}
	return optimal
}

// FromReduced rebuilds a table from a reduced state→action map. Each
// stored action gets a fixed positive value so BestAction recovers it.
func FromReduced[S comparable, A comparable](optimal map[S]A) *Table[S, A] {
	t := NewTable[S, A]()
	for s, a := range optimal {
		t.Set(s, a, reducedValue)
	}
	return t
}
