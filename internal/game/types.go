package game

import "fmt"

type Color string

const (
	Red    Color = "red"
	Blue   Color = "blue"
	Green  Color = "green"
	Yellow Color = "yellow"
)

// Colors and Values list the card faces in deck-building order.
var (
	Colors = []Color{Red, Blue, Green, Yellow}
	Values = []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}
)

// DeckSize is the number of distinct cards in a full set.
const DeckSize = 40

type Card struct {
	Color Color  `json:"color"`
	Value string `json:"value"`
}

func (c Card) String() string {
	return fmt.Sprintf("%s %s", c.Color, c.Value)
}

// Valid reports whether the card is one of the 40 faces of the set.
func (c Card) Valid() bool {
	okColor, okValue := false, false
	for _, col := range Colors {
		if c.Color == col {
			okColor = true
			break
		}
	}
	for _, v := range Values {
		if c.Value == v {
			okValue = true
			break
		}
	}
	return okColor && okValue
}
