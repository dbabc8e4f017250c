package turn

import (
	"fmt"

	"uno/internal/domain"
)

// Table is the game state the sequences act on.
type Table interface {
	Rules() *domain.RuleSet
	CurrentPlayer() *domain.Player
	Player(id int) *domain.Player
	Players() []*domain.Player
	DrawCard() domain.Card
	PlaceCard(c domain.Card)
	TopCard() domain.Card
	CardBeforeLast() (domain.Card, bool)
	SetTopColour(c domain.Colour)
	MoveToNextPlayer()
	ToggleDirection()
	Increasing() bool
}

// Host drives the sequences built by a Factory.
type Host interface {
	// Install starts root now, or queues it behind the sequence that is running.
	Install(root *Node)
	// PromptDecision asks the decision surface to resolve the pending flag.
	PromptDecision(flag Flag)
	// Notify reports something players should see.
	Notify(n Notice)
}

// NoticeKind identifies a transient message raised by a sequence.
type NoticeKind string

const (
	NoticeCardPlaced       NoticeKind = "card_placed"
	NoticeCardDrawn        NoticeKind = "card_drawn"
	NoticeDrawN            NoticeKind = "draw_n"
	NoticeSkip             NoticeKind = "skip"
	NoticeDirection        NoticeKind = "direction"
	NoticeColourChosen     NoticeKind = "colour_chosen"
	NoticeHandsSwapped     NoticeKind = "hands_swapped"
	NoticeHandsPassed      NoticeKind = "hands_passed"
	NoticeChallengeSuccess NoticeKind = "challenge_success"
	NoticeChallengeFailed  NoticeKind = "challenge_failed"
)

// Notice is a message for the players at the table.
type Notice struct {
	Kind     NoticeKind
	PlayerID int
	TargetID int
	Card     domain.Card
	Count    int
	Colour   domain.Colour
}

// ChallengePenalty is drawn by a player caught playing +4 while holding a
// card of the previous colour or face.
const ChallengePenalty = 6

// Factory builds turn sequences bound to a table and a host.
type Factory struct {
	table Table
	host  Host
}

// NewFactory returns a Factory acting on table and reporting to host.
func NewFactory(table Table, host Host) *Factory {
	return &Factory{table: table, host: host}
}

// PlayCard builds the sequence for playerID playing card: the card is moved
// from the current player's hand to the pile, then its action runs.
func (f *Factory) PlayCard(playerID int, card domain.Card) *Node {
	return f.playCard(NewState(playerID, card))
}

// DrawCard builds the sequence for playerID drawing instead of playing.
func (f *Factory) DrawCard(playerID int) *Node {
	s := NewState(playerID, domain.Card{})

	moveNext := NewAction("Move to next turn", s, f.moveNext, nil)
	playDrawn := NewAction("Play the drawn card", s, f.playFromState, nil)
	keepDrawing := NewAction("Draw another card", s, f.drawAgain, nil)
	keepOrPlay := NewDecision("Keep or play", s, FlagKeepOrPlay, true, f.prompt(FlagKeepOrPlay), moveNext, playDrawn)
	forced := NewDecision("Is forced play on", s, FlagForcedPlay, false, f.checkForcedPlay, keepOrPlay, playDrawn)
	drawTill := NewDecision("Is draw till can play on", s, FlagDrawTillCanPlay, false, f.checkDrawTillCanPlay, moveNext, keepDrawing)
	playable := NewDecision("Is the card playable", s, FlagCardPlayable, false, f.checkCardPlayable, drawTill, forced)
	return NewAction("Draw a card", s, f.drawCard, playable)
}

func (f *Factory) playCard(s *State) *Node {
	return NewAction("Place card", s, f.placeCard, f.forCard(s))
}

func (f *Factory) forCard(s *State) *Node {
	switch a := f.table.Rules().ActionFor(s.Card.Face); a {
	case domain.ActionNothing:
		return f.nothing(s)
	case domain.ActionPlus2:
		return f.plus2(s)
	case domain.ActionPlus4:
		return f.plus4(s)
	case domain.ActionWild:
		return f.wild(s)
	case domain.ActionSkip:
		return f.skip(s)
	case domain.ActionReverse:
		return f.reverse(s)
	case domain.ActionSwap:
		return f.swap(s)
	case domain.ActionPassAll:
		return f.passAll(s)
	default:
		panic(fmt.Sprintf("turn: no sequence for face %d (%v)", s.Card.Face, a))
	}
}

func (f *Factory) nothing(s *State) *Node {
	return NewAction("Move to next turn", s, f.moveNext, nil)
}

func (f *Factory) plus2(s *State) *Node {
	moveNext := NewAction("Move to next turn", s, f.moveNext, nil)
	penalty := NewAction("Draw pending cards", s, f.drawPending, moveNext)
	stack := NewAction("Stack a +2", s, f.playFromState, nil)
	stacking := NewDecision("Stack or take the cards", s, FlagStacking, true, f.prompt(FlagStacking), penalty, stack)
	canRespond := NewDecision("Can respond with a +2", s, FlagHasPlus2AndCanRespond, false, f.checkCanRespondToPlus2, penalty, stacking)
	increase := NewAction("Increase draw count by 2", s, f.increaseDrawCount(2), canRespond)
	return NewAction("Move to next turn", s, f.moveNext, increase)
}

func (f *Factory) plus4(s *State) *Node {
	// Challenge failed or declined: the target takes the pending cards.
	moveNext := NewAction("Move to next turn", s, f.moveNext, nil)
	drawPending := NewAction("Draw pending cards", s, f.drawPending, moveNext)
	increase := NewAction("Increase draw count by 4", s, f.increaseDrawCount(4), drawPending)

	// Challenge succeeded: the +4 player takes the penalty and loses the turn.
	afterPenalty := NewAction("Draw pending cards", s, f.drawPending, nil)
	backToNext := NewAction("Move to next turn", s, f.moveNext, afterPenalty)
	penalty := NewAction("Draw challenge penalty", s, f.drawChallengePenalty, backToNext)
	movePrevious := NewAction("Move to previous player", s, f.movePrevious, penalty)
	result := NewDecision("Could the previous player have played", s, FlagCouldPreviousPlay, false, f.showChallengeResult, increase, movePrevious)

	chain := NewAction("Chain a +4", s, f.playFromState, nil)
	chainIncrease := NewAction("Increase draw count by 4", s, f.increaseDrawCount(4), chain)
	chaining := NewDecision("Chaining a +4", s, FlagChaining, false, f.defaultFlag(FlagChaining), increase, chainIncrease)
	challenging := NewDecision("Challenge or decline", s, FlagChallenging, true, f.prompt(FlagChallenging), chaining, result)
	canChallenge := NewDecision("Can challenge or chain", s, FlagCanChallenge, false, f.checkCanChallenge, increase, challenging)

	afterColour := NewAction("Move to next turn", s, f.moveNext, canChallenge)
	setColour := NewAction("Set top colour", s, f.setTopColour, afterColour)
	chooseColour := NewDecision("Choose a colour", s, FlagWildColour, true, f.prompt(FlagWildColour), setColour, setColour)
	return NewAction("Check if the previous colour could be played", s, f.checkCouldPlayCard, chooseColour)
}

func (f *Factory) wild(s *State) *Node {
	moveNext := NewAction("Move to next turn", s, f.moveNext, nil)
	setColour := NewAction("Set top colour", s, f.setTopColour, moveNext)
	return NewDecision("Choose a colour", s, FlagWildColour, true, f.prompt(FlagWildColour), setColour, setColour)
}

func (f *Factory) skip(s *State) *Node {
	skipped := NewAction("Move past the skipped player", s, f.moveNext, nil)
	show := NewAction("Show skip", s, f.showSkip, skipped)
	return NewAction("Move to next turn", s, f.moveNext, show)
}

func (f *Factory) reverse(s *State) *Node {
	moveNext := NewAction("Move to next turn", s, f.moveNext, nil)
	return NewAction("Reverse direction", s, f.toggleDirection, moveNext)
}

func (f *Factory) swap(s *State) *Node {
	moveNext := NewAction("Move to next turn", s, f.moveNext, nil)
	swap := NewAction("Swap hands", s, f.swapHands, moveNext)
	return NewDecision("Choose a player to swap with", s, FlagOtherPlayer, true, f.prompt(FlagOtherPlayer), swap, swap)
}

func (f *Factory) passAll(s *State) *Node {
	moveNext := NewAction("Move to next turn", s, f.moveNext, nil)
	return NewAction("Pass all hands", s, f.passHands, moveNext)
}
