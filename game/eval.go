package game

// Evaluate plays the table's greedy policy for the given number of
// agent rounds against the rule-based opponent and returns the learning
// seat's lifetime score. Tricks from the final, unfinished deal are not
// counted.
func Evaluate(table *Table, rounds int) uint32 {
	g := New()
	for i := 0; i < rounds; i++ {
		g.AgentPlaysRound(g.BestCardID(table), nil)
	}
	return g.AgentScore()
}
