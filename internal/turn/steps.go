package turn

import "uno/internal/domain"

func (f *Factory) placeCard(s *State) {
	cur := f.table.CurrentPlayer()
	if c, ok := cur.RemoveCard(s.Card.ID); ok {
		s.Card = c
	}
	f.table.PlaceCard(s.Card)
	f.host.Notify(Notice{Kind: NoticeCardPlaced, PlayerID: cur.ID, Card: s.Card})
}

func (f *Factory) drawCard(s *State) {
	cur := f.table.CurrentPlayer()
	s.Card = f.table.DrawCard()
	cur.AddCard(s.Card)
	f.host.Notify(Notice{Kind: NoticeCardDrawn, PlayerID: cur.ID, Count: 1})
}

func (f *Factory) moveNext(*State) {
	f.table.MoveToNextPlayer()
}

func (f *Factory) movePrevious(*State) {
	f.table.ToggleDirection()
	f.table.MoveToNextPlayer()
	f.table.ToggleDirection()
}

func (f *Factory) toggleDirection(*State) {
	f.table.ToggleDirection()
	f.host.Notify(Notice{Kind: NoticeDirection, PlayerID: f.table.CurrentPlayer().ID})
}

func (f *Factory) increaseDrawCount(n int) Step {
	return func(s *State) { s.DrawCount += n }
}

func (f *Factory) drawPending(s *State) {
	if s.DrawCount <= 0 {
		return
	}
	f.drawN(f.table.CurrentPlayer(), s.DrawCount)
	s.DrawCount = 0
}

func (f *Factory) drawChallengePenalty(*State) {
	f.drawN(f.table.CurrentPlayer(), ChallengePenalty)
}

func (f *Factory) drawN(p *domain.Player, n int) {
	for i := 0; i < n; i++ {
		p.AddCard(f.table.DrawCard())
	}
	f.host.Notify(Notice{Kind: NoticeDrawN, PlayerID: p.ID, Count: n})
}

func (f *Factory) prompt(flag Flag) Step {
	return func(*State) { f.host.PromptDecision(flag) }
}

func (f *Factory) defaultFlag(flag Flag) Step {
	return func(s *State) { s.setFlag(flag, FlagNo) }
}

func (f *Factory) checkCardPlayable(s *State) {
	top := f.table.TopCard()
	s.setFlag(FlagCardPlayable, boolFlag(s.Card.Matches(top.Face, top.Colour)))
}

func (f *Factory) checkForcedPlay(s *State) {
	s.setFlag(FlagForcedPlay, boolFlag(f.table.Rules().ForcedPlay))
}

func (f *Factory) checkDrawTillCanPlay(s *State) {
	s.setFlag(FlagDrawTillCanPlay, boolFlag(f.table.Rules().DrawTillCanPlay))
}

func (f *Factory) checkCanRespondToPlus2(s *State) {
	ok := f.table.Rules().CanStack && f.table.CurrentPlayer().HasFace(domain.FacePlus2)
	s.setFlag(FlagHasPlus2AndCanRespond, boolFlag(ok))
}

// checkCanChallenge allows a response to +4 unless bluffing is disabled and
// the target cannot chain a +4 of their own.
func (f *Factory) checkCanChallenge(s *State) {
	rules := f.table.Rules()
	ok := !rules.NoBluffing || (rules.CanStack && f.table.CurrentPlayer().HasFace(domain.FacePlus4))
	s.setFlag(FlagCanChallenge, boolFlag(ok))
}

// checkCouldPlayCard runs while the +4 player is still current, with the +4
// already on the pile.
func (f *Factory) checkCouldPlayCard(s *State) {
	before, ok := f.table.CardBeforeLast()
	could := false
	if ok {
		for _, c := range f.table.CurrentPlayer().ValidMoves(before.Face, before.Colour) {
			if !c.IsWild() {
				could = true
				break
			}
		}
	}
	s.setFlag(FlagCouldPreviousPlay, boolFlag(could))
}

func (f *Factory) showChallengeResult(s *State) {
	kind := NoticeChallengeFailed
	if v, _ := s.Flag(FlagCouldPreviousPlay); v != FlagNo {
		kind = NoticeChallengeSuccess
	}
	f.host.Notify(Notice{Kind: kind, PlayerID: f.table.CurrentPlayer().ID})
}

// setTopColour keeps the pile as it is when no colour was injected.
func (f *Factory) setTopColour(s *State) {
	c, ok := s.ChosenColour()
	if !ok || !c.Valid() {
		return
	}
	f.table.SetTopColour(c)
	f.host.Notify(Notice{Kind: NoticeColourChosen, PlayerID: f.table.CurrentPlayer().ID, Colour: c})
}

func (f *Factory) showSkip(*State) {
	f.host.Notify(Notice{Kind: NoticeSkip, PlayerID: f.table.CurrentPlayer().ID})
}

func (f *Factory) swapHands(s *State) {
	cur := f.table.CurrentPlayer()
	id, _ := s.Flag(FlagOtherPlayer)
	other := f.table.Player(id)
	if other == nil || other == cur {
		return
	}
	mine := cur.TakeHand()
	cur.SetHand(other.TakeHand())
	other.SetHand(mine)
	f.host.Notify(Notice{Kind: NoticeHandsSwapped, PlayerID: cur.ID, TargetID: other.ID})
}

// passHands moves every hand one seat along the direction of play.
func (f *Factory) passHands(*State) {
	players := f.table.Players()
	n := len(players)
	hands := make([][]domain.Card, n)
	for i, p := range players {
		hands[i] = p.TakeHand()
	}
	for i, p := range players {
		if f.table.Increasing() {
			p.SetHand(hands[(i-1+n)%n])
		} else {
			p.SetHand(hands[(i+1)%n])
		}
	}
	f.host.Notify(Notice{Kind: NoticeHandsPassed, PlayerID: f.table.CurrentPlayer().ID})
}

// playFromState starts a new play sequence for the current player with the
// card and pending draw count carried by s. A card the player does not hold
// is refused and the pending cards are drawn instead.
func (f *Factory) playFromState(s *State) {
	cur := f.table.CurrentPlayer()
	next := NewState(cur.ID, s.Card)
	next.DrawCount = s.DrawCount
	if _, ok := cur.CardByID(s.Card.ID); !ok {
		moveNext := NewAction("Move to next turn", next, f.moveNext, nil)
		f.host.Install(NewAction("Draw pending cards", next, f.drawPending, moveNext))
		return
	}
	f.host.Install(f.playCard(next))
}

func (f *Factory) drawAgain(s *State) {
	f.host.Install(f.DrawCard(f.table.CurrentPlayer().ID))
}
