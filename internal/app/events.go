package app

import (
	"time"

	"uno/internal/domain"
	"uno/internal/turn"
)

// EventKind identifies emitted game events for Nakama dispatch.
type EventKind string

const (
	EventRoundStarted      EventKind = "round_started"
	EventHandUpdated       EventKind = "hand_updated"
	EventTurnChanged       EventKind = "turn_changed"
	EventCardPlayed        EventKind = "card_played"
	EventCardsDrawn        EventKind = "cards_drawn"
	EventPlayerSkipped     EventKind = "player_skipped"
	EventDirectionChanged  EventKind = "direction_changed"
	EventColourChosen      EventKind = "colour_chosen"
	EventHandsSwapped      EventKind = "hands_swapped"
	EventHandsPassed       EventKind = "hands_passed"
	EventChallengeResolved EventKind = "challenge_resolved"
	EventDecisionRequested EventKind = "decision_requested"
	EventDecisionMade      EventKind = "decision_made"
	EventJumpIn            EventKind = "jump_in"
	EventUnoCalled         EventKind = "uno_called"
	EventAntiUno           EventKind = "anti_uno"
	EventRoundEnded        EventKind = "round_ended"
)

// Event is a game event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []int // player IDs; empty means broadcast
}

// PlayerSummary is the public view of a seat.
type PlayerSummary struct {
	ID         int
	Name       string
	Human      bool
	HandSize   int
	TotalScore int
	RoundScore int
	Wins       int
}

type RoundStartedPayload struct {
	Round         int
	FirstPlayerID int
	Increasing    bool
	TopCard       domain.Card
	Players       []PlayerSummary
}

type HandUpdatedPayload struct {
	PlayerID int
	Hand     []domain.Card
}

type TurnChangedPayload struct {
	PlayerID   int
	Increasing bool
}

type CardPlayedPayload struct {
	PlayerID int
	Card     domain.Card
	HandSize int
}

type CardsDrawnPayload struct {
	PlayerID int
	Count    int
	HandSize int
}

type PlayerSkippedPayload struct {
	PlayerID int
}

type DirectionChangedPayload struct {
	Increasing bool
}

type ColourChosenPayload struct {
	PlayerID int
	Colour   domain.Colour
}

type HandsSwappedPayload struct {
	PlayerID int
	TargetID int
}

type HandsPassedPayload struct {
	Increasing bool
}

// ChallengeResolvedPayload reports a +4 challenge. PlayerID is the challenger.
type ChallengeResolvedPayload struct {
	PlayerID int
	Success  bool
}

type DecisionRequestedPayload struct {
	PlayerID   int
	SequenceID string
	Flag       turn.Flag
	Timeout    time.Duration
	Card       domain.Card
	DrawCount  int
}

type DecisionMadePayload struct {
	PlayerID   int
	SequenceID string
	Flag       turn.Flag
	Value      int
	TimedOut   bool
}

type JumpInPayload struct {
	PlayerID int
	Card     domain.Card
}

type UnoCalledPayload struct {
	PlayerID int
}

type AntiUnoPayload struct {
	CallerID int
	TargetID int
}

type RoundEndedPayload struct {
	WinnerID   int
	RoundScore int
	Players    []PlayerSummary
	GameOver   bool
}

// Snapshot is the full view of a session for one player, sent on (re)join.
type Snapshot struct {
	Phase           domain.Phase
	Round           int
	CurrentPlayerID int
	Increasing      bool
	TopCard         domain.Card
	Players         []PlayerSummary
	Hand            []domain.Card
	Pending         *DecisionRequestedPayload
}
