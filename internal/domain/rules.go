package domain

import (
	"fmt"
	"strings"
	"time"
)

// CardAction names the turn sequence a card face triggers.
type CardAction int

const (
	ActionUnknown CardAction = iota
	ActionNothing
	ActionPlus2
	ActionPlus4
	ActionWild
	ActionSkip
	ActionReverse
	ActionSwap
	ActionPassAll
)

func (a CardAction) String() string {
	switch a {
	case ActionNothing:
		return "nothing"
	case ActionPlus2:
		return "plus2"
	case ActionPlus4:
		return "plus4"
	case ActionWild:
		return "wild"
	case ActionSkip:
		return "skip"
	case ActionReverse:
		return "reverse"
	case ActionSwap:
		return "swap"
	case ActionPassAll:
		return "pass_all"
	}
	return "unknown"
}

// ScoreLimit decides when a sequence of rounds is over.
type ScoreLimit int

const (
	OneRound ScoreLimit = iota
	Score200
	Score300
	Score500
	Unlimited
)

var scoreLimitNames = map[ScoreLimit]string{
	OneRound:  "one_round",
	Score200:  "score_200",
	Score300:  "score_300",
	Score500:  "score_500",
	Unlimited: "unlimited",
}

func (s ScoreLimit) String() string {
	if n, ok := scoreLimitNames[s]; ok {
		return n
	}
	return fmt.Sprintf("score_limit(%d)", int(s))
}

// ParseScoreLimit accepts the names produced by ScoreLimit.String.
func ParseScoreLimit(name string) (ScoreLimit, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, v := range scoreLimitNames {
		if v == name {
			return k, nil
		}
	}
	return OneRound, fmt.Errorf("unknown score limit: %q", name)
}

// Reached reports whether a player with the given total has ended the game.
func (s ScoreLimit) Reached(total int) bool {
	switch s {
	case OneRound:
		return true
	case Score200:
		return total >= 200
	case Score300:
		return total >= 300
	case Score500:
		return total >= 500
	}
	return false
}

// DefaultDecisionTimeout bounds every timed decision.
const DefaultDecisionTimeout = 25 * time.Second

// RuleSet holds the house rules of a game. The turn engine only reads it.
type RuleSet struct {
	CanStack        bool
	DrawTillCanPlay bool
	ForcedPlay      bool
	JumpIn          bool
	NoBluffing      bool
	SevenZero       bool
	ScoreLimit      ScoreLimit
	DecisionTimeout time.Duration

	twoPlayers bool
}

// NewRuleSet returns the default rules: stacking and drawing until a card is playable.
func NewRuleSet() *RuleSet {
	return &RuleSet{
		CanStack:        true,
		DrawTillCanPlay: true,
		ScoreLimit:      OneRound,
		DecisionTimeout: DefaultDecisionTimeout,
	}
}

// SetTwoPlayers changes reverse into skip for heads-up games.
func (r *RuleSet) SetTwoPlayers(two bool) {
	r.twoPlayers = two
}

// TwoPlayers reports whether reverse behaves as skip.
func (r *RuleSet) TwoPlayers() bool {
	return r.twoPlayers
}

// ActionFor maps a face to the action it triggers. Faces outside 0..MaxFace
// map to ActionUnknown.
func (r *RuleSet) ActionFor(face int) CardAction {
	switch {
	case face < 0 || face > MaxFace:
		return ActionUnknown
	case r.SevenZero && face == 0:
		return ActionSwap
	case r.SevenZero && face == 7:
		return ActionPassAll
	case face < FacePlus2:
		return ActionNothing
	case face == FacePlus2:
		return ActionPlus2
	case face == FaceSkip:
		return ActionSkip
	case face == FaceReverse:
		if r.twoPlayers {
			return ActionSkip
		}
		return ActionReverse
	case face == FacePlus4:
		return ActionPlus4
	}
	return ActionWild
}
