package domain

// Player is a seat at the table together with its hand and scores.
type Player struct {
	ID         int
	Name       string
	Kind       PlayerKind
	TotalScore int
	RoundScore int
	Wins       int

	hand []Card
	uno  UnoState
}

// NewPlayer returns a player with an empty hand.
func NewPlayer(id int, name string, kind PlayerKind) *Player {
	return &Player{ID: id, Name: name, Kind: kind}
}

// Hand returns a copy of the cards held.
func (p *Player) Hand() []Card {
	return append([]Card(nil), p.hand...)
}

// HandSize returns the number of cards held.
func (p *Player) HandSize() int {
	return len(p.hand)
}

// AddCard puts c into the hand.
func (p *Player) AddCard(c Card) {
	p.hand = append(p.hand, c)
}

// CardByID looks up a held card.
func (p *Player) CardByID(id int) (Card, bool) {
	for _, c := range p.hand {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}

// RemoveCard takes the card with the given id out of the hand.
func (p *Player) RemoveCard(id int) (Card, bool) {
	for i, c := range p.hand {
		if c.ID == id {
			p.hand = append(p.hand[:i], p.hand[i+1:]...)
			return c, true
		}
	}
	return Card{}, false
}

// TakeHand empties the hand and returns what it held.
func (p *Player) TakeHand() []Card {
	h := p.hand
	p.hand = nil
	return h
}

// SetHand replaces the hand.
func (p *Player) SetHand(cards []Card) {
	p.hand = cards
}

// HasFace reports whether the hand holds any card with the given face.
func (p *Player) HasFace(face int) bool {
	for _, c := range p.hand {
		if c.Face == face {
			return true
		}
	}
	return false
}

// ValidMoves returns the held cards that may be played on face and colour.
func (p *Player) ValidMoves(face int, colour Colour) []Card {
	var out []Card
	for _, c := range p.hand {
		if c.Matches(face, colour) {
			out = append(out, c)
		}
	}
	return out
}

// SortHand orders the hand by colour then face.
func (p *Player) SortHand() {
	SortHand(p.hand)
}

// HandScore sums the score of every held card.
func (p *Player) HandScore() int {
	total := 0
	for _, c := range p.hand {
		total += c.Score()
	}
	return total
}

// SetRoundScore records the score of the round just won and adds it to the total.
func (p *Player) SetRoundScore(score int) {
	p.RoundScore = score
	p.TotalScore += score
}

// ResetScores clears every score and win counter.
func (p *Player) ResetScores() {
	p.RoundScore = 0
	p.TotalScore = 0
	p.Wins = 0
}

// UnoState returns the current anti-UNO exposure.
func (p *Player) UnoState() UnoState {
	return p.uno
}

// SetUnoState moves the exposure state. A player who called UNO is not made
// unsafe until their state is reset to safe.
func (p *Player) SetUnoState(s UnoState) {
	if p.uno == UnoCalled && s == UnoNotSafe {
		return
	}
	p.uno = s
}

// IsSafe reports whether the player cannot be called out.
func (p *Player) IsSafe() bool {
	return p.uno != UnoNotSafe
}
