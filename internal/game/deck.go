package game

import (
	"math/rand/v2"
)

// Deck is the face-down draw pile. Cards are drawn from the end.
type Deck []Card

// FullSet returns the 40 cards in color-major order, unshuffled.
func FullSet() []Card {
	cards := make([]Card, 0, DeckSize)
	for _, c := range Colors {
		for _, v := range Values {
			cards = append(cards, Card{Color: c, Value: v})
		}
	}
	return cards
}

// NewDeck creates a shuffled deck of all 40 cards.
func NewDeck() Deck {
	return NewDeckWithRand(nil)
}

// NewDeckWithRand shuffles with r, or with the global source when r is nil.
func NewDeckWithRand(r *rand.Rand) Deck {
	d := Deck(FullSet())
	d.Shuffle(r)
	return d
}

// Shuffle permutes the deck in place (Fisher-Yates).
func (d Deck) Shuffle(r *rand.Rand) {
	swap := func(i, j int) { d[i], d[j] = d[j], d[i] }
	if r == nil {
		rand.Shuffle(len(d), swap)
		return
	}
	r.Shuffle(len(d), swap)
}

func (d Deck) Len() int {
	return len(d)
}

// Draw removes and returns the last card.
func (d *Deck) Draw() (Card, bool) {
	n := len(*d)
	if n == 0 {
		return Card{}, false
	}
	c := (*d)[n-1]
	*d = (*d)[:n-1]
	return c, true
}

// Deal draws up to n cards; fewer when the deck runs short.
func (d *Deck) Deal(n int) []Card {
	out := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		c, ok := d.Draw()
		if !ok {
			break
		}
		out = append(out, c)
	}
	return out
}

// PutBottom slides cards under the deck so they are drawn last.
func (d *Deck) PutBottom(cards ...Card) {
	if len(cards) == 0 {
		return
	}
	merged := make(Deck, 0, len(cards)+len(*d))
	merged = append(merged, cards...)
	merged = append(merged, (*d)...)
	*d = merged
}
