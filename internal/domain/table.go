package domain

import (
	"errors"
	"math/rand"
)

const (
	// HandSize is the number of cards dealt to every player.
	HandSize = 7
	// MaxCardHistory bounds the recent-card pile.
	MaxCardHistory = 10
)

var (
	ErrPlayerCount = errors.New("a table seats 2 or 4 players")
	ErrHumanCount  = errors.New("a table seats exactly one human player")
)

// Table is the shared state of one round: seats, turn order, deck and discard pile.
type Table struct {
	rng        *rand.Rand
	rules      *RuleSet
	deck       *Deck
	players    []*Player
	recent     []Card
	current    int
	increasing bool
}

// NewTable deals a new round to players. Player IDs must equal their index.
// The first player and the play direction are chosen at random and a first
// card is turned over without any action.
func NewTable(players []*Player, rules *RuleSet, rng *rand.Rand) (*Table, error) {
	if len(players) != 2 && len(players) != 4 {
		return nil, ErrPlayerCount
	}
	humans := 0
	for i, p := range players {
		p.ID = i
		if p.Kind == KindHuman {
			humans++
		}
	}
	if humans != 1 {
		return nil, ErrHumanCount
	}
	rules.SetTwoPlayers(len(players) == 2)

	t := &Table{
		rng:     rng,
		rules:   rules,
		deck:    NewDeck(rng),
		players: players,
	}
	for _, p := range players {
		p.TakeHand()
		p.SetUnoState(UnoSafe)
		for i := 0; i < HandSize; i++ {
			p.AddCard(t.deck.Draw())
		}
	}
	t.current = rng.Intn(len(players))
	t.increasing = rng.Intn(2) == 0
	t.ForcePlayCard(t.deck.Draw())
	return t, nil
}

// Rules returns the house rules in force.
func (t *Table) Rules() *RuleSet { return t.rules }

// Players returns the seats in ID order.
func (t *Table) Players() []*Player { return t.players }

// Player returns the player with the given id, or nil.
func (t *Table) Player(id int) *Player {
	if id < 0 || id >= len(t.players) {
		return nil
	}
	return t.players[id]
}

// Human returns the single human seat.
func (t *Table) Human() *Player {
	for _, p := range t.players {
		if p.Kind == KindHuman {
			return p
		}
	}
	return nil
}

// CurrentPlayer returns the player whose turn it is.
func (t *Table) CurrentPlayer() *Player { return t.players[t.current] }

// SetCurrentPlayer hands the turn to id, as happens on a jump-in.
func (t *Table) SetCurrentPlayer(id int) {
	if t.Player(id) != nil {
		t.current = id
	}
}

// Increasing reports whether play moves towards higher player ids.
func (t *Table) Increasing() bool { return t.increasing }

// ToggleDirection reverses the order of play.
func (t *Table) ToggleDirection() { t.increasing = !t.increasing }

// MoveToNextPlayer refreshes the UNO exposure of every player, then advances
// the turn one seat in the current direction.
func (t *Table) MoveToNextPlayer() {
	t.updateUnoState()
	n := len(t.players)
	if t.increasing {
		t.current = (t.current + 1) % n
	} else {
		t.current = (t.current - 1 + n) % n
	}
}

func (t *Table) updateUnoState() {
	for _, p := range t.players {
		if p.ID != t.current {
			p.SetUnoState(UnoSafe)
			continue
		}
		if p.HandSize() == 1 {
			p.SetUnoState(UnoNotSafe)
		} else {
			p.SetUnoState(UnoSafe)
		}
	}
}

// DrawCard takes the top card of the deck.
func (t *Table) DrawCard() Card { return t.deck.Draw() }

// Deck exposes the draw pile.
func (t *Table) Deck() *Deck { return t.deck }

// PlaceCard puts c on top of the discard pile.
func (t *Table) PlaceCard(c Card) {
	t.recent = append(t.recent, c)
	if len(t.recent) > MaxCardHistory {
		t.recent = t.recent[1:]
	}
}

// ForcePlayCard places c without triggering any action. A wild card gets a random colour.
func (t *Table) ForcePlayCard(c Card) {
	t.PlaceCard(c)
	if c.IsWild() {
		t.SetTopColour(t.RandomColour())
	}
}

// TopCard returns the card on top of the discard pile.
func (t *Table) TopCard() Card {
	return t.recent[len(t.recent)-1]
}

// CardBeforeLast returns the card that was on top before the current top
// card. ok is false when the history holds fewer than two cards.
func (t *Table) CardBeforeLast() (Card, bool) {
	if len(t.recent) < 2 {
		return Card{}, false
	}
	return t.recent[len(t.recent)-2], true
}

// RecentCards returns a copy of the discard history, oldest first.
func (t *Table) RecentCards() []Card {
	return append([]Card(nil), t.recent...)
}

// SetTopColour recolours the top card, used after a wild is played.
func (t *Table) SetTopColour(c Colour) {
	t.recent[len(t.recent)-1].Colour = c
}

// ApplyAntiUno makes the called-out player draw two cards and marks them safe.
func (t *Table) ApplyAntiUno(id int) {
	p := t.Player(id)
	if p == nil {
		return
	}
	p.SetUnoState(UnoSafe)
	p.AddCard(t.deck.Draw())
	p.AddCard(t.deck.Draw())
}

// CanJumpIn reports whether c is an exact match of the top card and may be
// played out of turn by id.
func (t *Table) CanJumpIn(id int, c Card) bool {
	top := t.TopCard()
	return id != t.current && top.Face == c.Face && top.Colour == c.Colour
}

// Winner returns the first player with an empty hand, or nil.
func (t *Table) Winner() *Player {
	for _, p := range t.players {
		if p.HandSize() == 0 {
			return p
		}
	}
	return nil
}

// SettleRound scores the winner with the sum of every other hand. The
// returned flag reports whether the score limit has been reached.
func (t *Table) SettleRound(winner *Player) bool {
	total := 0
	for _, p := range t.players {
		if p == winner {
			continue
		}
		p.RoundScore = 0
		total += p.HandScore()
	}
	winner.SetRoundScore(total)
	winner.Wins++
	return t.rules.ScoreLimit.Reached(winner.TotalScore)
}

// FewestCardsOpponent returns the other player holding the fewest cards.
// Ties go to the lowest id.
func (t *Table) FewestCardsOpponent(id int) *Player {
	var best *Player
	for _, p := range t.players {
		if p.ID == id {
			continue
		}
		if best == nil || p.HandSize() < best.HandSize() {
			best = p
		}
	}
	return best
}

// Exposed returns the players other than id who hold one card without having called UNO.
func (t *Table) Exposed(id int) []*Player {
	var out []*Player
	for _, p := range t.players {
		if p.ID != id && !p.IsSafe() && p.HandSize() == 1 {
			out = append(out, p)
		}
	}
	return out
}

// RandomColour picks one of the four playable colours.
func (t *Table) RandomColour() Colour {
	return Colours[t.rng.Intn(len(Colours))]
}
