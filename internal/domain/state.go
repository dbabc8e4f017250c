package domain

// Phase represents the lifecycle stage of a round.
type Phase string

const (
	// PhaseLobby is the state before any card has been dealt.
	PhaseLobby Phase = "lobby"
	// PhasePlaying is the active state where turns are taken.
	PhasePlaying Phase = "playing"
	// PhaseRoundEnded is reached when a player empties their hand.
	PhaseRoundEnded Phase = "round_ended"
	// PhaseEnded is the state after the score limit has been reached.
	PhaseEnded Phase = "ended"
)

// PlayerKind distinguishes the single human seat from AI seats.
type PlayerKind int

const (
	KindHuman PlayerKind = iota
	KindAI
)

func (k PlayerKind) String() string {
	if k == KindHuman {
		return "human"
	}
	return "ai"
}

// UnoState tracks whether a player holding one card is exposed to an anti-UNO call.
type UnoState int

const (
	// UnoSafe means the player cannot be called out.
	UnoSafe UnoState = iota
	// UnoCalled means the player declared UNO while holding two cards.
	UnoCalled
	// UnoNotSafe means the player holds one card without having called UNO.
	UnoNotSafe
)

func (u UnoState) String() string {
	switch u {
	case UnoCalled:
		return "called"
	case UnoNotSafe:
		return "not_safe"
	default:
		return "safe"
	}
}
