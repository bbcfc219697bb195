package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanPlay(t *testing.T) {
	top := Card{Red, "5"}
	tests := []struct {
		name string
		card Card
		want bool
	}{
		{"same color", Card{Red, "1"}, true},
		{"same value", Card{Blue, "5"}, true},
		{"identical", Card{Red, "5"}, true},
		{"neither", Card{Green, "7"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanPlay(tt.card, top))
		})
	}
}

func TestPlayableIndexes(t *testing.T) {
	hand := []Card{{Green, "7"}, {Red, "1"}, {Blue, "5"}, {Yellow, "0"}}
	assert.Equal(t, []int{1, 2}, PlayableIndexes(hand, Card{Red, "5"}))
	assert.Equal(t, []int{1}, PlayableIndexes(hand, Card{Red, "9"}))
}

func TestRemoveAtKeepsOrder(t *testing.T) {
	hand := []Card{{Green, "7"}, {Red, "1"}, {Blue, "5"}}
	out := RemoveAt(hand, 1)
	assert.Equal(t, []Card{{Green, "7"}, {Blue, "5"}}, out)
	assert.Len(t, hand, 3)
}

func TestChoosePlay(t *testing.T) {
	top := Card{Red, "5"}

	_, ok := ChoosePlay([]Card{{Green, "7"}, {Blue, "1"}}, top)
	assert.False(t, ok)

	// Blue is the majority color, so the blue 5 beats the red 9.
	hand := []Card{{Red, "9"}, {Blue, "5"}, {Blue, "2"}, {Blue, "3"}}
	i, ok := ChoosePlay(hand, top)
	assert.True(t, ok)
	assert.Equal(t, 1, i)
}

func TestHasWon(t *testing.T) {
	assert.True(t, HasWon(nil))
	assert.False(t, HasWon([]Card{{Red, "1"}}))
}

func TestIsPartition(t *testing.T) {
	all := FullSet()
	assert.True(t, IsPartition(all[:10], all[10:35], all[35:]))
	assert.False(t, IsPartition(all[:39]))
	dup := append([]Card{all[0]}, all[1:]...)
	dup[1] = all[0]
	assert.False(t, IsPartition(dup))
	assert.False(t, IsPartition(all[:39], []Card{{"purple", "1"}}))
}
