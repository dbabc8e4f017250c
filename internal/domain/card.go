package domain

import (
	"fmt"
	"strings"
)

// Colour is one of the four suit colours, or Wild for cards that have no colour.
type Colour int

const (
	Red Colour = iota
	Blue
	Green
	Yellow
	Wild
)

// Colours lists the playable colours in table order.
var Colours = [...]Colour{Red, Blue, Green, Yellow}

func (c Colour) String() string {
	switch c {
	case Red:
		return "red"
	case Blue:
		return "blue"
	case Green:
		return "green"
	case Yellow:
		return "yellow"
	case Wild:
		return "wild"
	}
	return fmt.Sprintf("colour(%d)", int(c))
}

// Valid reports whether c is a colour a player may choose for a wild card.
func (c Colour) Valid() bool {
	return c >= Red && c <= Yellow
}

// ParseColour accepts the names produced by Colour.String for the four
// playable colours.
func ParseColour(name string) (Colour, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, c := range Colours {
		if c.String() == name {
			return c, nil
		}
	}
	return Wild, fmt.Errorf("unknown colour: %q", name)
}

// Face values. 0..9 are number cards.
const (
	FacePlus2   = 10
	FaceSkip    = 11
	FaceReverse = 12
	FacePlus4   = 13
	FaceWild    = 14

	MaxFace = FaceWild
)

// Card is a single card. IDs are unique across every refill of the deck.
type Card struct {
	ID     int
	Face   int
	Colour Colour
}

// IsWild reports whether the card can be played on any colour.
func (c Card) IsWild() bool {
	return c.Face >= FacePlus4
}

// Score is the value of the card when left in a losing hand.
func (c Card) Score() int {
	switch {
	case c.Face < FacePlus2:
		return c.Face
	case c.IsWild():
		return 50
	default:
		return 20
	}
}

// Matches reports whether the card may be played on a pile showing face and colour.
func (c Card) Matches(face int, colour Colour) bool {
	return c.Face == face || c.Colour == colour || c.IsWild()
}

func (c Card) String() string {
	names := map[int]string{
		FacePlus2:   "+2",
		FaceSkip:    "skip",
		FaceReverse: "reverse",
		FacePlus4:   "+4",
		FaceWild:    "wild",
	}
	if n, ok := names[c.Face]; ok {
		return fmt.Sprintf("%s %s#%d", c.Colour, n, c.ID)
	}
	return fmt.Sprintf("%s %d#%d", c.Colour, c.Face, c.ID)
}
