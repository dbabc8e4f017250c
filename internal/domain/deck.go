package domain

import (
	"math/rand"
	"sort"
)

// DeckSize is the number of cards in one full deck.
const DeckSize = 108

// Deck is a draw pile that refills itself with a fresh shuffled deck when exhausted.
type Deck struct {
	rng    *rand.Rand
	cards  []Card
	nextID int
}

// NewDeck returns a shuffled deck drawing randomness from rng.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	d.refill()
	return d
}

// Draw removes the top card, refilling the pile first when it is empty.
func (d *Deck) Draw() Card {
	if len(d.cards) == 0 {
		d.refill()
	}
	c := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return c
}

// Remaining returns the number of cards left before the next refill.
func (d *Deck) Remaining() int {
	return len(d.cards)
}

func (d *Deck) refill() {
	d.cards = make([]Card, 0, DeckSize)
	for _, colour := range Colours {
		d.add(0, colour)
		for face := 1; face <= FaceReverse; face++ {
			d.add(face, colour)
			d.add(face, colour)
		}
	}
	for i := 0; i < 4; i++ {
		d.add(FacePlus4, Wild)
		d.add(FaceWild, Wild)
	}
	d.rng.Shuffle(len(d.cards), func(i, j int) { d.cards[i], d.cards[j] = d.cards[j], d.cards[i] })
}

func (d *Deck) add(face int, colour Colour) {
	d.cards = append(d.cards, Card{ID: d.nextID, Face: face, Colour: colour})
	d.nextID++
}

// SortHand orders a hand by colour, then by face.
func SortHand(cards []Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		if cards[i].Colour != cards[j].Colour {
			return cards[i].Colour < cards[j].Colour
		}
		return cards[i].Face < cards[j].Face
	})
}
