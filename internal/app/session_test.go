package app

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"uno/internal/bot"
	"uno/internal/domain"
	"uno/internal/turn"
)

const frame = 16 * time.Millisecond

func card(id, face int, colour domain.Colour) domain.Card {
	return domain.Card{ID: id, Face: face, Colour: colour}
}

// newTestSession starts a session whose bots never act on their own, so
// every seat is driven by the test.
func newTestSession(t *testing.T, seats int, configure func(*domain.RuleSet)) *Session {
	t.Helper()
	rules := domain.NewRuleSet()
	if configure != nil {
		configure(rules)
	}
	s, _, err := NewService(rand.New(rand.NewSource(7))).StartGame(botSeats(seats), rules, Options{})
	if err != nil {
		t.Fatalf("start game error: %v", err)
	}
	s.agents = nil
	return s
}

// rig puts current on turn with play increasing, top on the pile and the
// given hands in place.
func rig(s *Session, current int, top domain.Card, hands map[int][]domain.Card) {
	s.table.SetCurrentPlayer(current)
	s.lastTurn = current
	if !s.table.Increasing() {
		s.table.ToggleDirection()
	}
	s.table.PlaceCard(top)
	for id, hand := range hands {
		s.table.Player(id).SetHand(hand)
	}
	s.Drain()
}

// settle ticks until nothing runs, a decision waits for input or the round ends.
func settle(t *testing.T, s *Session) []Event {
	t.Helper()
	var evs []Event
	for i := 0; i < 200; i++ {
		evs = append(evs, s.Tick(frame)...)
		if s.Phase() != domain.PhasePlaying || s.CurrentNode() == nil {
			return evs
		}
		if _, ok := s.PendingDecision(); ok {
			return evs
		}
	}
	t.Fatal("session did not settle")
	return nil
}

func findEvent(evs []Event, kind EventKind) (Event, bool) {
	for _, ev := range evs {
		if ev.Kind == kind {
			return ev, true
		}
	}
	return Event{}, false
}

func TestPlayNumberCardAdvancesTurn(t *testing.T) {
	s := newTestSession(t, 4, nil)
	rig(s, 0, card(500, 5, domain.Red), map[int][]domain.Card{
		0: {card(1, 7, domain.Red), card(2, 1, domain.Blue), card(3, 2, domain.Blue)},
	})

	if err := s.PlayCard(0, 1); err != nil {
		t.Fatalf("play card error: %v", err)
	}
	evs := settle(t, s)

	if top := s.Table().TopCard(); top.ID != 1 {
		t.Fatalf("top card = %v, want the red 7", top)
	}
	if cur := s.Table().CurrentPlayer().ID; cur != 1 {
		t.Fatalf("current player = %d, want 1", cur)
	}
	ev, ok := findEvent(evs, EventCardPlayed)
	if !ok {
		t.Fatalf("expected card played event")
	}
	if p := ev.Payload.(CardPlayedPayload); p.PlayerID != 0 || p.HandSize != 2 {
		t.Fatalf("card played payload = %+v", p)
	}
	if _, ok := findEvent(evs, EventTurnChanged); !ok {
		t.Fatalf("expected turn changed event")
	}
	ev, ok = findEvent(evs, EventHandUpdated)
	if !ok {
		t.Fatalf("expected hand updated event")
	}
	if got := len(ev.Payload.(HandUpdatedPayload).Hand); got != 2 {
		t.Fatalf("hand update size = %d, want 2", got)
	}
}

func TestPlayCardRejections(t *testing.T) {
	tests := []struct {
		name    string
		player  int
		cardID  int
		running bool
		want    error
	}{
		{name: "not your turn", player: 1, cardID: 10, want: ErrNotYourTurn},
		{name: "unknown player", player: 9, cardID: 1, want: ErrUnknownPlayer},
		{name: "card not in hand", player: 0, cardID: 99, want: ErrUnknownCard},
		{name: "card does not match", player: 0, cardID: 2, want: ErrIllegalCard},
		{name: "sequence running", player: 0, cardID: 1, running: true, want: ErrSequenceRunning},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, 2, nil)
			rig(s, 0, card(500, 5, domain.Red), map[int][]domain.Card{
				0: {card(1, 7, domain.Red), card(2, 1, domain.Blue)},
				1: {card(10, 5, domain.Green)},
			})
			if tt.running {
				s.Install(turn.NewAction("busy", turn.NewState(0, domain.Card{}), nil, nil))
			}
			if err := s.PlayCard(tt.player, tt.cardID); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDrawCardAddsToHand(t *testing.T) {
	s := newTestSession(t, 4, func(r *domain.RuleSet) { r.DrawTillCanPlay = false })
	rig(s, 0, card(500, 5, domain.Red), map[int][]domain.Card{
		0: {card(1, 1, domain.Blue), card(2, 2, domain.Blue)},
	})

	if err := s.DrawCard(0); err != nil {
		t.Fatalf("draw card error: %v", err)
	}
	evs := settle(t, s)
	if n, ok := s.PendingDecision(); ok {
		// Drew something playable: keep it.
		if err := s.Decide(0, Decision{Flag: n.Flag(), Value: turn.FlagNo}); err != nil {
			t.Fatalf("decide error: %v", err)
		}
		evs = append(evs, settle(t, s)...)
	}

	if got := s.Table().Player(0).HandSize(); got != 3 {
		t.Fatalf("hand size = %d, want 3", got)
	}
	if cur := s.Table().CurrentPlayer().ID; cur != 1 {
		t.Fatalf("current player = %d, want 1", cur)
	}
	if _, ok := findEvent(evs, EventCardsDrawn); !ok {
		t.Fatalf("expected cards drawn event")
	}
}

func TestInstallQueuesBehindRunningSequence(t *testing.T) {
	s := newTestSession(t, 2, nil)
	var ran []string
	step := func(name string) turn.Step {
		return func(*turn.State) { ran = append(ran, name) }
	}
	st := turn.NewState(0, domain.Card{})
	second := turn.NewAction("second", st, step("second"), nil)
	first := turn.NewAction("first", st, step("first"), turn.NewAction("first again", st, step("first again"), nil))

	s.Install(first)
	s.Install(second)
	if s.CurrentNode() != first {
		t.Fatalf("first sequence should be current")
	}

	for i := 0; i < 3; i++ {
		s.advance()
	}
	want := []string{"first", "first again", "second"}
	if len(ran) != len(want) {
		t.Fatalf("ran = %v, want %v", ran, want)
	}
	for i := range want {
		if ran[i] != want[i] {
			t.Fatalf("ran = %v, want %v", ran, want)
		}
	}
	if s.CurrentNode() != nil {
		t.Fatalf("nothing should be left to run")
	}
}

func TestDecideWildColour(t *testing.T) {
	s := newTestSession(t, 4, nil)
	rig(s, 0, card(500, 5, domain.Red), map[int][]domain.Card{
		0: {card(1, domain.FaceWild, domain.Wild), card(2, 1, domain.Blue)},
	})
	if err := s.PlayCard(0, 1); err != nil {
		t.Fatalf("play card error: %v", err)
	}
	evs := settle(t, s)
	ev, ok := findEvent(evs, EventDecisionRequested)
	if !ok {
		t.Fatalf("expected decision requested event")
	}
	req := ev.Payload.(DecisionRequestedPayload)
	if req.Flag != turn.FlagWildColour || req.PlayerID != 0 {
		t.Fatalf("decision request = %+v", req)
	}

	blue, wild := domain.Blue, domain.Wild
	checks := []struct {
		name string
		d    Decision
		want error
	}{
		{name: "wrong flag", d: Decision{Flag: turn.FlagStacking}, want: ErrWrongDecision},
		{name: "no colour", d: Decision{Flag: turn.FlagWildColour}, want: ErrIllegalColour},
		{name: "wild is not a colour", d: Decision{Flag: turn.FlagWildColour, Colour: &wild}, want: ErrIllegalColour},
	}
	for _, c := range checks {
		if err := s.Decide(0, c.d); !errors.Is(err, c.want) {
			t.Fatalf("%s: err = %v, want %v", c.name, err, c.want)
		}
	}
	if err := s.Decide(1, Decision{Flag: turn.FlagWildColour, Colour: &blue}); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("other player err = %v, want %v", err, ErrNotYourTurn)
	}

	if err := s.Decide(0, Decision{Flag: turn.FlagWildColour, Colour: &blue}); err != nil {
		t.Fatalf("decide error: %v", err)
	}
	if err := s.Decide(0, Decision{Flag: turn.FlagWildColour, Colour: &blue}); !errors.Is(err, ErrDecisionResolved) {
		t.Fatalf("second decide err = %v, want %v", err, ErrDecisionResolved)
	}

	evs = settle(t, s)
	if top := s.Table().TopCard(); top.Colour != domain.Blue {
		t.Fatalf("top colour = %s, want blue", top.Colour)
	}
	ev, ok = findEvent(evs, EventDecisionMade)
	if !ok {
		t.Fatalf("expected decision made event")
	}
	if made := ev.Payload.(DecisionMadePayload); made.TimedOut || made.SequenceID != req.SequenceID {
		t.Fatalf("decision made = %+v", made)
	}
	if _, ok := findEvent(evs, EventColourChosen); !ok {
		t.Fatalf("expected colour chosen event")
	}
	if err := s.Decide(1, Decision{Flag: turn.FlagWildColour, Colour: &blue}); !errors.Is(err, ErrNoDecision) {
		t.Fatalf("decide without prompt err = %v, want %v", err, ErrNoDecision)
	}
}

func TestDecisionTimesOut(t *testing.T) {
	s := newTestSession(t, 4, nil)
	rig(s, 0, card(500, 5, domain.Red), map[int][]domain.Card{
		0: {card(1, domain.FaceWild, domain.Wild), card(2, 1, domain.Blue)},
	})
	if err := s.PlayCard(0, 1); err != nil {
		t.Fatalf("play card error: %v", err)
	}
	settle(t, s)

	timeout := s.rules.DecisionTimeout
	s.Tick(timeout / 2)
	if _, ok := s.PendingDecision(); !ok {
		t.Fatalf("decision should still be pending after half the timeout")
	}

	evs := s.Tick(timeout)
	ev, ok := findEvent(evs, EventDecisionMade)
	if !ok {
		t.Fatalf("expected decision made event")
	}
	if made := ev.Payload.(DecisionMadePayload); !made.TimedOut || made.Value != turn.FlagYes {
		t.Fatalf("decision made = %+v, want a timed out yes", made)
	}
	settle(t, s)
	if top := s.Table().TopCard(); !top.Colour.Valid() {
		t.Fatalf("top colour = %s, want a playable colour", top.Colour)
	}
	if cur := s.Table().CurrentPlayer().ID; cur != 1 {
		t.Fatalf("current player = %d, want 1", cur)
	}
}

func TestApplyDefault(t *testing.T) {
	s := newTestSession(t, 4, nil)
	rig(s, 0, card(500, 5, domain.Red), map[int][]domain.Card{
		0: {card(1, 1, domain.Red), card(2, 2, domain.Red)},
		1: {card(10, 1, domain.Blue), card(11, 2, domain.Blue), card(12, 3, domain.Blue)},
		2: {card(20, 1, domain.Green)},
		3: {card(30, 1, domain.Yellow), card(31, 2, domain.Yellow)},
	})

	tests := []struct {
		flag turn.Flag
		want int
	}{
		{flag: turn.FlagKeepOrPlay, want: turn.FlagNo},
		{flag: turn.FlagStacking, want: turn.FlagNo},
		{flag: turn.FlagChallenging, want: turn.FlagNo},
		{flag: turn.FlagWildColour, want: turn.FlagYes},
		{flag: turn.FlagOtherPlayer, want: 2},
	}
	for _, tt := range tests {
		t.Run(string(tt.flag), func(t *testing.T) {
			st := turn.NewState(0, domain.Card{})
			n := turn.NewDecision("pending", st, tt.flag, true, nil, nil, nil)
			s.applyDefault(n)
			got, ok := st.Flag(tt.flag)
			if !ok || got != tt.want {
				t.Fatalf("flag = %d (set %t), want %d", got, ok, tt.want)
			}
			switch tt.flag {
			case turn.FlagWildColour:
				if c, ok := st.ChosenColour(); !ok || !c.Valid() {
					t.Fatalf("chosen colour = %s (set %t)", c, ok)
				}
			case turn.FlagChallenging:
				if v, ok := st.Flag(turn.FlagChaining); !ok || v != turn.FlagNo {
					t.Fatalf("chaining = %d (set %t), want declined", v, ok)
				}
			}
		})
	}
}

func TestStackPlus2ThroughDecide(t *testing.T) {
	s := newTestSession(t, 4, nil)
	rig(s, 0, card(500, 5, domain.Red), map[int][]domain.Card{
		0: {card(1, domain.FacePlus2, domain.Red), card(2, 3, domain.Green), card(3, 4, domain.Green)},
		1: {card(10, domain.FacePlus2, domain.Blue), card(11, 1, domain.Yellow), card(12, 2, domain.Yellow)},
	})
	if err := s.PlayCard(0, 1); err != nil {
		t.Fatalf("play card error: %v", err)
	}
	settle(t, s)
	n, ok := s.PendingDecision()
	if !ok || n.Flag() != turn.FlagStacking {
		t.Fatalf("expected a pending stacking decision")
	}

	wrong := 11
	if err := s.Decide(1, Decision{Flag: turn.FlagStacking, Value: turn.FlagYes, CardID: &wrong}); !errors.Is(err, ErrIllegalCard) {
		t.Fatalf("stack with a number card err = %v, want %v", err, ErrIllegalCard)
	}
	plus2 := 10
	if err := s.Decide(1, Decision{Flag: turn.FlagStacking, Value: turn.FlagYes, CardID: &plus2}); err != nil {
		t.Fatalf("decide error: %v", err)
	}
	settle(t, s)

	if got := s.Table().Player(0).HandSize(); got != 6 {
		t.Fatalf("human hand = %d, want 6 after taking 4", got)
	}
	if got := s.Table().Player(1).HandSize(); got != 2 {
		t.Fatalf("stacking player hand = %d, want 2", got)
	}
	if top := s.Table().TopCard(); top.ID != 10 {
		t.Fatalf("top card = %v, want the stacked +2", top)
	}
	if cur := s.Table().CurrentPlayer().ID; cur != 1 {
		t.Fatalf("current player = %d, want 1", cur)
	}
}

func TestJumpIn(t *testing.T) {
	tests := []struct {
		name    string
		jumpIn  bool
		cardID  int
		want    error
		running bool
	}{
		{name: "exact match", jumpIn: true, cardID: 20},
		{name: "rule off", jumpIn: false, cardID: 20, want: ErrJumpInDisabled},
		{name: "colour only", jumpIn: true, cardID: 21, want: ErrIllegalCard},
		{name: "not held", jumpIn: true, cardID: 1, want: ErrUnknownCard},
		{name: "sequence running", jumpIn: true, cardID: 20, running: true, want: ErrSequenceRunning},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, 4, func(r *domain.RuleSet) { r.JumpIn = tt.jumpIn })
			rig(s, 0, card(500, 5, domain.Red), map[int][]domain.Card{
				0: {card(1, 7, domain.Red), card(2, 8, domain.Red)},
				2: {card(20, 5, domain.Red), card(21, 6, domain.Red)},
			})
			if tt.running {
				s.Install(turn.NewAction("busy", turn.NewState(0, domain.Card{}), nil, nil))
			}
			err := s.JumpIn(2, tt.cardID)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if tt.want != nil {
				return
			}
			evs := s.Drain()
			if _, ok := findEvent(evs, EventJumpIn); !ok {
				t.Fatalf("expected jump in event")
			}
			settle(t, s)
			if top := s.Table().TopCard(); top.ID != 20 {
				t.Fatalf("top card = %v, want the jumped card", top)
			}
			if cur := s.Table().CurrentPlayer().ID; cur != 3 {
				t.Fatalf("current player = %d, want 3", cur)
			}
		})
	}
}

func TestCallUno(t *testing.T) {
	s := newTestSession(t, 4, nil)
	rig(s, 0, card(500, 5, domain.Red), map[int][]domain.Card{
		0: {card(1, 7, domain.Red), card(2, 8, domain.Blue)},
		1: {card(10, 1, domain.Blue), card(11, 2, domain.Blue)},
	})

	if err := s.CallUno(1); !errors.Is(err, ErrCannotCallUno) {
		t.Fatalf("off-turn call err = %v, want %v", err, ErrCannotCallUno)
	}
	if err := s.CallUno(0); err != nil {
		t.Fatalf("call uno error: %v", err)
	}
	if _, ok := findEvent(s.Drain(), EventUnoCalled); !ok {
		t.Fatalf("expected uno called event")
	}
	if err := s.CallUno(0); !errors.Is(err, ErrCannotCallUno) {
		t.Fatalf("second call err = %v, want %v", err, ErrCannotCallUno)
	}

	if err := s.PlayCard(0, 1); err != nil {
		t.Fatalf("play card error: %v", err)
	}
	settle(t, s)
	if !s.Table().Player(0).IsSafe() {
		t.Fatalf("player who called uno should be safe")
	}
	if err := s.AntiUno(1, 0); !errors.Is(err, ErrNotExposed) {
		t.Fatalf("anti uno on safe player err = %v, want %v", err, ErrNotExposed)
	}
}

func TestAntiUno(t *testing.T) {
	s := newTestSession(t, 4, nil)
	rig(s, 0, card(500, 5, domain.Red), map[int][]domain.Card{
		0: {card(1, 7, domain.Red), card(2, 8, domain.Blue)},
		1: {card(10, 1, domain.Blue), card(11, 2, domain.Blue)},
	})
	if err := s.PlayCard(0, 1); err != nil {
		t.Fatalf("play card error: %v", err)
	}
	settle(t, s)

	human := s.Table().Player(0)
	if human.IsSafe() {
		t.Fatalf("player ending a turn on one card without calling should be exposed")
	}
	if err := s.AntiUno(0, 0); !errors.Is(err, ErrNotExposed) {
		t.Fatalf("self call err = %v, want %v", err, ErrNotExposed)
	}
	if err := s.CallOut(1); err != nil {
		t.Fatalf("call out error: %v", err)
	}
	if human.HandSize() != 3 || !human.IsSafe() {
		t.Fatalf("called out player holds %d cards (safe %t), want 3 and safe", human.HandSize(), human.IsSafe())
	}
	ev, ok := findEvent(s.Drain(), EventAntiUno)
	if !ok {
		t.Fatalf("expected anti uno event")
	}
	if p := ev.Payload.(AntiUnoPayload); p.CallerID != 1 || p.TargetID != 0 {
		t.Fatalf("anti uno payload = %+v", p)
	}
	if err := s.CallOut(1); !errors.Is(err, ErrNotExposed) {
		t.Fatalf("second call out err = %v, want %v", err, ErrNotExposed)
	}
}

func TestLateUnoCallProtects(t *testing.T) {
	s := newTestSession(t, 4, nil)
	rig(s, 0, card(500, 5, domain.Red), map[int][]domain.Card{
		0: {card(1, 7, domain.Red), card(2, 8, domain.Blue)},
	})
	if err := s.PlayCard(0, 1); err != nil {
		t.Fatalf("play card error: %v", err)
	}
	settle(t, s)

	if err := s.CallUno(0); err != nil {
		t.Fatalf("late call error: %v", err)
	}
	if err := s.AntiUno(1, 0); !errors.Is(err, ErrNotExposed) {
		t.Fatalf("anti uno after late call err = %v, want %v", err, ErrNotExposed)
	}
}

func TestEndOfRound(t *testing.T) {
	tests := []struct {
		name      string
		limit     domain.ScoreLimit
		wantPhase domain.Phase
		wantRound int
		wantTotal int
	}{
		{name: "one round", limit: domain.OneRound, wantPhase: domain.PhaseEnded, wantRound: 1, wantTotal: 0},
		{name: "to 200", limit: domain.Score200, wantPhase: domain.PhaseRoundEnded, wantRound: 2, wantTotal: 73},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, 4, func(r *domain.RuleSet) { r.ScoreLimit = tt.limit })
			rig(s, 0, card(500, 5, domain.Red), map[int][]domain.Card{
				0: {card(1, 7, domain.Red)},
				1: {card(10, domain.FaceWild, domain.Wild), card(11, 3, domain.Blue)},
				2: {card(20, domain.FaceSkip, domain.Red)},
				3: {card(30, 0, domain.Green)},
			})
			if _, err := s.NextRound(); !errors.Is(err, ErrRoundNotOver) {
				t.Fatalf("next round while playing err = %v, want %v", err, ErrRoundNotOver)
			}
			if err := s.PlayCard(0, 1); err != nil {
				t.Fatalf("play card error: %v", err)
			}
			evs := settle(t, s)

			if s.Phase() != tt.wantPhase {
				t.Fatalf("phase = %s, want %s", s.Phase(), tt.wantPhase)
			}
			ev, ok := findEvent(evs, EventRoundEnded)
			if !ok {
				t.Fatalf("expected round ended event")
			}
			p := ev.Payload.(RoundEndedPayload)
			if p.WinnerID != 0 || p.RoundScore != 73 {
				t.Fatalf("round ended = %+v, want player 0 with 73", p)
			}
			if p.GameOver != (tt.wantPhase == domain.PhaseEnded) {
				t.Fatalf("game over = %t", p.GameOver)
			}
			if err := s.PlayCard(1, 11); !errors.Is(err, ErrNotPlaying) {
				t.Fatalf("play after round err = %v, want %v", err, ErrNotPlaying)
			}

			evs, err := s.NextRound()
			if err != nil {
				t.Fatalf("next round error: %v", err)
			}
			if _, ok := findEvent(evs, EventRoundStarted); !ok {
				t.Fatalf("expected round started event")
			}
			if s.Round() != tt.wantRound {
				t.Fatalf("round = %d, want %d", s.Round(), tt.wantRound)
			}
			if got := s.Table().Player(0).TotalScore; got != tt.wantTotal {
				t.Fatalf("total score = %d, want %d", got, tt.wantTotal)
			}
			if s.Phase() != domain.PhasePlaying {
				t.Fatalf("phase = %s, want playing", s.Phase())
			}
		})
	}
}

func TestSnapshot(t *testing.T) {
	s := newTestSession(t, 4, nil)
	rig(s, 0, card(500, 5, domain.Red), map[int][]domain.Card{
		0: {card(1, domain.FaceWild, domain.Wild), card(2, 1, domain.Blue)},
	})
	if snap := s.Snapshot(0); snap.Pending != nil || len(snap.Hand) != 2 {
		t.Fatalf("snapshot before play = %+v", snap)
	}
	if err := s.PlayCard(0, 1); err != nil {
		t.Fatalf("play card error: %v", err)
	}
	settle(t, s)

	snap := s.Snapshot(0)
	if snap.Pending == nil || snap.Pending.Flag != turn.FlagWildColour {
		t.Fatalf("snapshot should carry the pending colour choice, got %+v", snap.Pending)
	}
	if snap.TopCard.ID != 1 || len(snap.Hand) != 1 || len(snap.Players) != 4 {
		t.Fatalf("snapshot = %+v", snap)
	}
	if other := s.Snapshot(2); other.Hand == nil || len(other.Hand) != s.Table().Player(2).HandSize() {
		t.Fatalf("snapshot for player 2 should show their own hand")
	}
}

func TestSortHandSendsUpdate(t *testing.T) {
	s := newTestSession(t, 2, nil)
	rig(s, 1, card(500, 5, domain.Red), map[int][]domain.Card{
		0: {card(2, 9, domain.Blue), card(1, 3, domain.Red)},
	})
	s.hands[0] = []int{2, 1}

	if err := s.SortHand(0); err != nil {
		t.Fatalf("sort hand error: %v", err)
	}
	ev, ok := findEvent(s.Drain(), EventHandUpdated)
	if !ok {
		t.Fatalf("expected hand updated event")
	}
	hand := ev.Payload.(HandUpdatedPayload).Hand
	if hand[0].ID != 1 || hand[1].ID != 2 {
		t.Fatalf("sorted hand = %v, want red before blue", hand)
	}
	if err := s.SortHand(7); !errors.Is(err, ErrUnknownPlayer) {
		t.Fatalf("err = %v, want %v", err, ErrUnknownPlayer)
	}
}

// A whole round played by bots on every seat, the human's included, must
// end with a winner.
func TestBotsFinishRound(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	chaotic, err := bot.NewBrain(bot.StrategyChaotic, rng)
	if err != nil {
		t.Fatalf("new brain error: %v", err)
	}
	seats := []Seat{
		{Name: "you", Human: true},
		{Name: "ada", Brain: &bot.OffensiveBot{}},
		{Name: "bruno", Brain: &bot.DefensiveBot{}},
		{Name: "chidi", Brain: chaotic},
	}
	rules := domain.NewRuleSet()
	rules.JumpIn = true
	rules.SevenZero = true
	s, _, err := NewService(rng).StartGame(seats, rules, Options{})
	if err != nil {
		t.Fatalf("start game error: %v", err)
	}
	stand := bot.NewAgent(HumanPlayerID, "you", &bot.OffensiveBot{}, rng)

	var ended *RoundEndedPayload
	for i := 0; i < 200000 && ended == nil; i++ {
		_ = stand.Update(s, 100*time.Millisecond)
		for _, ev := range s.Tick(100 * time.Millisecond) {
			if ev.Kind == EventRoundEnded {
				p := ev.Payload.(RoundEndedPayload)
				ended = &p
			}
		}
	}
	if ended == nil {
		t.Fatalf("round did not end")
	}
	if got := s.Table().Player(ended.WinnerID).HandSize(); got != 0 {
		t.Fatalf("winner holds %d cards", got)
	}
	if s.Phase() != domain.PhaseEnded {
		t.Fatalf("phase = %s, want ended", s.Phase())
	}
}
