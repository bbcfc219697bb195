package game

// CanPlay reports whether card may be laid on top: same color or same value.
func CanPlay(card, top Card) bool {
	return card.Color == top.Color || card.Value == top.Value
}

// PlayableIndexes returns the positions in hand that can be laid on top.
func PlayableIndexes(hand []Card, top Card) []int {
	var idx []int
	for i, c := range hand {
		if CanPlay(c, top) {
			idx = append(idx, i)
		}
	}
	return idx
}

// RemoveAt returns hand without the card at i, keeping the order of the rest.
func RemoveAt(hand []Card, i int) []Card {
	out := make([]Card, 0, len(hand)-1)
	out = append(out, hand[:i]...)
	return append(out, hand[i+1:]...)
}
