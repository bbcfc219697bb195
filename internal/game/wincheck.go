package game

// HasWon reports whether a hand has been played out.
func HasWon(hand []Card) bool {
	return len(hand) == 0
}
