package domain

import (
	"math/rand"
	"testing"
)

func TestDeckComposition(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(1)))
	if d.Remaining() != DeckSize {
		t.Fatalf("expected %d cards, got %d", DeckSize, d.Remaining())
	}

	faces := make(map[int]int)
	colours := make(map[Colour]int)
	ids := make(map[int]bool)
	for i := 0; i < DeckSize; i++ {
		c := d.Draw()
		faces[c.Face]++
		colours[c.Colour]++
		if ids[c.ID] {
			t.Fatalf("duplicate card id %d", c.ID)
		}
		ids[c.ID] = true
		if c.IsWild() && c.Colour != Wild {
			t.Errorf("wild card %v should have no colour", c)
		}
	}
	if faces[0] != 4 {
		t.Errorf("expected 4 zeros, got %d", faces[0])
	}
	for face := 1; face <= FaceReverse; face++ {
		if faces[face] != 8 {
			t.Errorf("expected 8 cards of face %d, got %d", face, faces[face])
		}
	}
	if faces[FacePlus4] != 4 || faces[FaceWild] != 4 {
		t.Errorf("expected 4 of each wild, got %d and %d", faces[FacePlus4], faces[FaceWild])
	}
	for _, c := range Colours {
		if colours[c] != 25 {
			t.Errorf("expected 25 %v cards, got %d", c, colours[c])
		}
	}
}

func TestDeckRefillKeepsIDsUnique(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(2)))
	seen := make(map[int]bool)
	for i := 0; i < DeckSize*2+5; i++ {
		c := d.Draw()
		if seen[c.ID] {
			t.Fatalf("card id %d drawn twice across refills", c.ID)
		}
		seen[c.ID] = true
	}
	if d.Remaining() != DeckSize-5 {
		t.Fatalf("expected %d remaining after third fill, got %d", DeckSize-5, d.Remaining())
	}
}

func TestCardScore(t *testing.T) {
	tests := []struct {
		card     Card
		expected int
	}{
		{Card{Face: 0, Colour: Red}, 0},
		{Card{Face: 9, Colour: Blue}, 9},
		{Card{Face: FacePlus2, Colour: Green}, 20},
		{Card{Face: FaceSkip, Colour: Yellow}, 20},
		{Card{Face: FaceReverse, Colour: Red}, 20},
		{Card{Face: FacePlus4, Colour: Wild}, 50},
		{Card{Face: FaceWild, Colour: Wild}, 50},
	}
	for _, tt := range tests {
		if got := tt.card.Score(); got != tt.expected {
			t.Errorf("%v: expected %d, got %d", tt.card, tt.expected, got)
		}
	}
}

func TestSortHand(t *testing.T) {
	hand := []Card{
		{ID: 1, Face: 5, Colour: Yellow},
		{ID: 2, Face: FaceWild, Colour: Wild},
		{ID: 3, Face: 9, Colour: Red},
		{ID: 4, Face: 2, Colour: Red},
		{ID: 5, Face: 1, Colour: Blue},
	}
	SortHand(hand)
	want := []int{4, 3, 5, 1, 2}
	for i, id := range want {
		if hand[i].ID != id {
			t.Fatalf("position %d: expected card %d, got %v", i, id, hand[i])
		}
	}
}

func TestParseColour(t *testing.T) {
	tests := []struct {
		in      string
		want    Colour
		wantErr bool
	}{
		{in: "red", want: Red},
		{in: " Yellow ", want: Yellow},
		{in: "wild", wantErr: true},
		{in: "purple", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColour(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %t", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Fatalf("colour = %s, want %s", got, tt.want)
			}
		})
	}
}
