package turn

import (
	"github.com/google/uuid"

	"uno/internal/domain"
)

// Flag names a decision written into a sequence's State.
type Flag string

const (
	FlagCardPlayable          Flag = "cardPlayable"
	FlagForcedPlay            Flag = "isForcedPlay"
	FlagKeepOrPlay            Flag = "keepOrPlay"
	FlagDrawTillCanPlay       Flag = "drawTillCanPlay"
	FlagHasPlus2AndCanRespond Flag = "hasPlus2AndResponseAllowed"
	FlagStacking              Flag = "isStacking"
	FlagCouldPreviousPlay     Flag = "couldPreviousPlayCard"
	FlagWildColour            Flag = "wildColour"
	FlagCanChallenge          Flag = "canChallenge"
	FlagChallenging           Flag = "isChallenging"
	FlagChaining              Flag = "isChaining"
	FlagOtherPlayer           Flag = "otherPlayer"
)

// Decision values. Any non-zero value takes the alternate branch; FlagYes is
// the one the engine writes itself.
const (
	FlagNo  = 0
	FlagYes = 1
)

// State is the bag shared by every node of one sequence. It starts with the
// card that triggered the sequence and collects decisions as they are made.
type State struct {
	ID        string
	PlayerID  int
	Card      domain.Card
	DrawCount int

	colour    domain.Colour
	hasColour bool
	flags     map[Flag]int
}

// NewState returns an empty bag for a sequence started by playerID with card.
func NewState(playerID int, card domain.Card) *State {
	return &State{
		ID:       uuid.NewString(),
		PlayerID: playerID,
		Card:     card,
		flags:    make(map[Flag]int),
	}
}

// Flag returns the value written for f, if any.
func (s *State) Flag(f Flag) (int, bool) {
	v, ok := s.flags[f]
	return v, ok
}

// ChosenColour returns the colour picked for a wild card, if one was picked.
func (s *State) ChosenColour() (domain.Colour, bool) {
	return s.colour, s.hasColour
}

// setFlag records v under f. A flag is written at most once; later writes
// are dropped and reported as false.
func (s *State) setFlag(f Flag, v int) bool {
	if _, ok := s.flags[f]; ok {
		return false
	}
	s.flags[f] = v
	return true
}

func boolFlag(b bool) int {
	if b {
		return FlagYes
	}
	return FlagNo
}

// Property is an auxiliary value injected alongside a decision.
type Property func(*State)

// WithCard replaces the card carried by the sequence, as when a stacked or
// chained card is chosen.
func WithCard(c domain.Card) Property {
	return func(s *State) { s.Card = c }
}

// WithColour records the colour chosen for a wild card.
func WithColour(c domain.Colour) Property {
	return func(s *State) {
		s.colour = c
		s.hasColour = true
	}
}

// WithDrawCount sets the pending number of cards to draw.
func WithDrawCount(n int) Property {
	return func(s *State) { s.DrawCount = n }
}

// WithFlag writes a secondary decision, such as FlagChaining from a challenge prompt.
func WithFlag(f Flag, v int) Property {
	return func(s *State) { s.setFlag(f, v) }
}
