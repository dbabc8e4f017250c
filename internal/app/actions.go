package app

import (
	"fmt"

	"uno/internal/domain"
	"uno/internal/turn"
)

// Decision is a player's answer to the pending timed decision.
type Decision struct {
	Flag  turn.Flag
	Value int
	// CardID names the +2 to stack or the +4 to chain with.
	CardID *int
	Colour *domain.Colour
	// Chain answers a +4 with another +4 instead of challenging.
	Chain bool
}

// Install starts root when nothing is running, or queues it to replace the
// running sequence once that one finishes.
func (s *Session) Install(root *turn.Node) {
	if s.debug {
		s.logger.Debug("installing sequence %s\n%s", root.State().ID, turn.DumpString(root))
	}
	if s.current == nil {
		s.current = root
		return
	}
	if s.queued != nil {
		s.logger.Warn("sequence %s replaces queued sequence %s", root.State().ID, s.queued.State().ID)
	}
	s.queued = root
}

// PromptDecision starts the clock on the current decision and tells the
// table who has to answer it.
func (s *Session) PromptDecision(flag turn.Flag) {
	n := s.current
	if n == nil || n.Flag() != flag {
		s.logger.Error("prompt for %s without a matching current node", flag)
		return
	}
	s.clock.start(n, s.rules.DecisionTimeout)
	s.emit(Event{Kind: EventDecisionRequested, Payload: s.decisionRequest(n)})
}

// Notify turns a sequence notice into a table event.
func (s *Session) Notify(n turn.Notice) {
	handSize := 0
	if p := s.table.Player(n.PlayerID); p != nil {
		handSize = p.HandSize()
	}
	var ev Event
	switch n.Kind {
	case turn.NoticeCardPlaced:
		ev = Event{Kind: EventCardPlayed, Payload: CardPlayedPayload{PlayerID: n.PlayerID, Card: n.Card, HandSize: handSize}}
	case turn.NoticeCardDrawn, turn.NoticeDrawN:
		count := n.Count
		if count == 0 {
			count = 1
		}
		ev = Event{Kind: EventCardsDrawn, Payload: CardsDrawnPayload{PlayerID: n.PlayerID, Count: count, HandSize: handSize}}
	case turn.NoticeSkip:
		ev = Event{Kind: EventPlayerSkipped, Payload: PlayerSkippedPayload{PlayerID: n.PlayerID}}
	case turn.NoticeDirection:
		ev = Event{Kind: EventDirectionChanged, Payload: DirectionChangedPayload{Increasing: s.table.Increasing()}}
	case turn.NoticeColourChosen:
		ev = Event{Kind: EventColourChosen, Payload: ColourChosenPayload{PlayerID: n.PlayerID, Colour: n.Colour}}
	case turn.NoticeHandsSwapped:
		ev = Event{Kind: EventHandsSwapped, Payload: HandsSwappedPayload{PlayerID: n.PlayerID, TargetID: n.TargetID}}
	case turn.NoticeHandsPassed:
		ev = Event{Kind: EventHandsPassed, Payload: HandsPassedPayload{Increasing: s.table.Increasing()}}
	case turn.NoticeChallengeSuccess, turn.NoticeChallengeFailed:
		ev = Event{Kind: EventChallengeResolved, Payload: ChallengeResolvedPayload{
			PlayerID: n.PlayerID,
			Success:  n.Kind == turn.NoticeChallengeSuccess,
		}}
	default:
		s.logger.Warn("unhandled notice %s", n.Kind)
		return
	}
	s.emit(ev)
}

// turnPlayer returns the player if they may start a sequence now.
func (s *Session) turnPlayer(playerID int) (*domain.Player, error) {
	if s.phase != domain.PhasePlaying {
		return nil, ErrNotPlaying
	}
	p := s.table.Player(playerID)
	if p == nil {
		return nil, ErrUnknownPlayer
	}
	if s.current != nil {
		return nil, ErrSequenceRunning
	}
	if s.table.CurrentPlayer().ID != playerID {
		return nil, ErrNotYourTurn
	}
	return p, nil
}

// PlayCard plays cardID from the current player's hand.
func (s *Session) PlayCard(playerID, cardID int) error {
	p, err := s.turnPlayer(playerID)
	if err != nil {
		return err
	}
	c, ok := p.CardByID(cardID)
	if !ok {
		return ErrUnknownCard
	}
	top := s.table.TopCard()
	if !c.Matches(top.Face, top.Colour) {
		return fmt.Errorf("%s on %s: %w", c, top, ErrIllegalCard)
	}
	s.Install(s.factory.PlayCard(playerID, c))
	return nil
}

// DrawCard draws for the current player instead of playing.
func (s *Session) DrawCard(playerID int) error {
	if _, err := s.turnPlayer(playerID); err != nil {
		return err
	}
	s.Install(s.factory.DrawCard(playerID))
	return nil
}

// Decide answers the pending timed decision on behalf of playerID.
func (s *Session) Decide(playerID int, d Decision) error {
	if s.phase != domain.PhasePlaying {
		return ErrNotPlaying
	}
	p := s.table.Player(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	if s.table.CurrentPlayer().ID != playerID {
		return ErrNotYourTurn
	}
	n := s.current
	if n == nil || !n.TimeBounded() {
		return ErrNoDecision
	}
	if n.Resolved() {
		return ErrDecisionResolved
	}
	if n.Flag() != d.Flag {
		return fmt.Errorf("pending %s, got %s: %w", n.Flag(), d.Flag, ErrWrongDecision)
	}

	value := d.Value
	switch d.Flag {
	case turn.FlagWildColour:
		if d.Colour == nil || !d.Colour.Valid() {
			return ErrIllegalColour
		}
		n.InjectProperty(turn.WithColour(*d.Colour))
		value = turn.FlagYes
	case turn.FlagStacking:
		if value == turn.FlagNo {
			break
		}
		c, err := s.responseCard(p, d.CardID, domain.FacePlus2)
		if err != nil {
			return err
		}
		n.InjectProperty(turn.WithCard(c))
	case turn.FlagChallenging:
		if !d.Chain {
			n.InjectProperty(turn.WithFlag(turn.FlagChaining, turn.FlagNo))
			break
		}
		c, err := s.responseCard(p, d.CardID, domain.FacePlus4)
		if err != nil {
			return err
		}
		n.InjectProperty(turn.WithCard(c), turn.WithFlag(turn.FlagChaining, turn.FlagYes))
		value = turn.FlagNo
	case turn.FlagOtherPlayer:
		if s.table.Player(value) == nil {
			return ErrUnknownPlayer
		}
	}

	if !n.InjectFlag(value) {
		s.logger.Warn("decision %s already resolved for sequence %s", d.Flag, n.State().ID)
		return ErrDecisionResolved
	}
	return nil
}

func (s *Session) responseCard(p *domain.Player, cardID *int, face int) (domain.Card, error) {
	if !s.rules.CanStack {
		return domain.Card{}, ErrIllegalCard
	}
	if cardID == nil {
		return domain.Card{}, ErrUnknownCard
	}
	c, ok := p.CardByID(*cardID)
	if !ok {
		return domain.Card{}, ErrUnknownCard
	}
	if c.Face != face {
		return domain.Card{}, ErrIllegalCard
	}
	return c, nil
}

// JumpIn plays an exact match of the top card out of turn. The player
// takes the turn and the card's sequence starts from them.
func (s *Session) JumpIn(playerID, cardID int) error {
	if s.phase != domain.PhasePlaying {
		return ErrNotPlaying
	}
	if !s.rules.JumpIn {
		return ErrJumpInDisabled
	}
	p := s.table.Player(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	if s.current != nil {
		return ErrSequenceRunning
	}
	c, ok := p.CardByID(cardID)
	if !ok {
		return ErrUnknownCard
	}
	if !s.table.CanJumpIn(playerID, c) {
		return ErrIllegalCard
	}
	s.table.SetCurrentPlayer(playerID)
	s.lastTurn = playerID
	s.emit(Event{Kind: EventJumpIn, Payload: JumpInPayload{PlayerID: playerID, Card: c}})
	s.Install(s.factory.PlayCard(playerID, c))
	return nil
}

// CallUno declares UNO. It is accepted from the current player holding two
// cards, or from a player still exposed with one card.
func (s *Session) CallUno(playerID int) error {
	if s.phase != domain.PhasePlaying {
		return ErrNotPlaying
	}
	p := s.table.Player(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	switch {
	case p.UnoState() == domain.UnoNotSafe:
	case p.UnoState() == domain.UnoSafe && p.HandSize() == 2 && s.table.CurrentPlayer().ID == playerID:
	default:
		return ErrCannotCallUno
	}
	p.SetUnoState(domain.UnoCalled)
	s.emit(Event{Kind: EventUnoCalled, Payload: UnoCalledPayload{PlayerID: playerID}})
	return nil
}

// AntiUno calls out targetID for holding one card without having called UNO.
func (s *Session) AntiUno(callerID, targetID int) error {
	if s.phase != domain.PhasePlaying {
		return ErrNotPlaying
	}
	if s.table.Player(callerID) == nil {
		return ErrUnknownPlayer
	}
	target := s.table.Player(targetID)
	if target == nil {
		return ErrUnknownPlayer
	}
	if callerID == targetID || target.IsSafe() || target.HandSize() != 1 {
		return ErrNotExposed
	}
	s.table.ApplyAntiUno(targetID)
	s.emit(Event{Kind: EventAntiUno, Payload: AntiUnoPayload{CallerID: callerID, TargetID: targetID}})
	return nil
}

// CallOut calls anti-UNO on every player currently exposed to callerID.
func (s *Session) CallOut(callerID int) error {
	if s.phase != domain.PhasePlaying {
		return ErrNotPlaying
	}
	exposed := s.table.Exposed(callerID)
	if len(exposed) == 0 {
		return ErrNotExposed
	}
	for _, p := range exposed {
		if err := s.AntiUno(callerID, p.ID); err != nil {
			return err
		}
	}
	return nil
}

// SortHand orders the player's hand by colour then face.
func (s *Session) SortHand(playerID int) error {
	p := s.table.Player(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	p.SortHand()
	s.syncHands()
	return nil
}
