package game

// IsPartition reports whether the groups together hold each of the 40 cards
// exactly once.
func IsPartition(groups ...[]Card) bool {
	seen := make(map[Card]int, DeckSize)
	total := 0
	for _, g := range groups {
		for _, c := range g {
			if !c.Valid() {
				return false
			}
			seen[c]++
			total++
		}
	}
	if total != DeckSize || len(seen) != DeckSize {
		return false
	}
	for _, n := range seen {
		if n != 1 {
			return false
		}
	}
	return true
}
