package game

// ChoosePlay picks a card for an automated player. Among the playable cards it
// prefers the one whose color is most common in hand, so that later turns keep
// a matching color; ties go to the higher value, then the lower index.
func ChoosePlay(hand []Card, top Card) (int, bool) {
	colorCount := make(map[Color]int, len(Colors))
	for _, c := range hand {
		colorCount[c.Color]++
	}

	best, bestScore := -1, -1
	for _, i := range PlayableIndexes(hand, top) {
		c := hand[i]
		score := colorCount[c.Color]*10 + valueRank(c.Value)
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best, best >= 0
}

func valueRank(v string) int {
	if len(v) != 1 || v[0] < '0' || v[0] > '9' {
		return 0
	}
	return int(v[0] - '0')
}
