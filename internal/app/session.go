package app

import (
	"math/rand"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"uno/internal/bot"
	"uno/internal/domain"
	"uno/internal/turn"
)

// Session drives one game: it runs at most one turn sequence at a time,
// keeps at most one queued behind it, times out pending decisions and lets
// the AI seats act on every tick.
type Session struct {
	rng     *rand.Rand
	logger  runtime.Logger
	debug   bool
	rules   *domain.RuleSet
	players []*domain.Player
	agents  []*bot.Agent

	table   *domain.Table
	factory *turn.Factory
	phase   domain.Phase
	round   int

	current *turn.Node
	queued  *turn.Node
	clock   decisionClock

	events   []Event
	lastTurn int
	hands    map[int][]int
}

// deal starts a new round on a fresh table with the same players.
func (s *Session) deal() error {
	table, err := domain.NewTable(s.players, s.rules, s.rng)
	if err != nil {
		return err
	}
	s.table = table
	s.factory = turn.NewFactory(table, s)
	s.phase = domain.PhasePlaying
	s.round++
	s.current, s.queued = nil, nil
	s.clock = decisionClock{}
	s.hands = make(map[int][]int)
	s.lastTurn = table.CurrentPlayer().ID

	s.emit(Event{
		Kind: EventRoundStarted,
		Payload: RoundStartedPayload{
			Round:         s.round,
			FirstPlayerID: table.CurrentPlayer().ID,
			Increasing:    table.Increasing(),
			TopCard:       table.TopCard(),
			Players:       s.summaries(),
		},
	})
	s.syncHands()
	s.logger.Info("round %d started, player %d to play", s.round, s.lastTurn)
	return nil
}

// NextRound deals again after a round has ended. Once the score limit has
// been reached a new game starts with every score cleared.
func (s *Session) NextRound() ([]Event, error) {
	switch s.phase {
	case domain.PhaseRoundEnded:
	case domain.PhaseEnded:
		for _, p := range s.players {
			p.ResetScores()
		}
		s.round = 0
	default:
		return nil, ErrRoundNotOver
	}
	if err := s.deal(); err != nil {
		return nil, err
	}
	return s.Drain(), nil
}

// Tick advances the session by delta: agents act, the decision clock runs,
// and the current sequence moves one node forward.
func (s *Session) Tick(delta time.Duration) []Event {
	if s.phase != domain.PhasePlaying {
		return s.Drain()
	}
	for _, a := range s.agents {
		if err := a.Update(s, delta); err != nil {
			s.logger.Warn("bot %d action rejected: %v", a.ID, err)
		}
	}
	s.checkTimeout(delta)
	s.advance()
	s.syncTurn()
	s.syncHands()
	s.checkEndOfRound()
	return s.Drain()
}

func (s *Session) advance() {
	n := s.current
	if n == nil {
		return
	}
	if s.debug && !n.Executed() {
		s.logger.Debug("[%s] %s", n.State().ID, n.Label())
	}
	n.Execute()
	next := n.Next()
	if n.TimeBounded() && next != n {
		s.decisionMade(n)
	}
	s.current = next
	if s.current == nil && s.queued != nil {
		s.current = s.queued
		s.queued = nil
	}
}

func (s *Session) decisionMade(n *turn.Node) {
	v, _ := n.State().Flag(n.Flag())
	s.emit(Event{
		Kind: EventDecisionMade,
		Payload: DecisionMadePayload{
			PlayerID:   s.table.CurrentPlayer().ID,
			SequenceID: n.State().ID,
			Flag:       n.Flag(),
			Value:      v,
			TimedOut:   s.clock.expired == n,
		},
	})
}

func (s *Session) checkEndOfRound() {
	w := s.table.Winner()
	if w == nil {
		return
	}
	over := s.table.SettleRound(w)
	s.current, s.queued = nil, nil
	s.clock.stop()
	s.phase = domain.PhaseRoundEnded
	if over {
		s.phase = domain.PhaseEnded
	}
	s.logger.Info("player %d won round %d with %d points", w.ID, s.round, w.RoundScore)
	s.emit(Event{
		Kind: EventRoundEnded,
		Payload: RoundEndedPayload{
			WinnerID:   w.ID,
			RoundScore: w.RoundScore,
			Players:    s.summaries(),
			GameOver:   over,
		},
	})
}

func (s *Session) syncTurn() {
	cur := s.table.CurrentPlayer().ID
	if cur == s.lastTurn {
		return
	}
	s.lastTurn = cur
	s.emit(Event{
		Kind:    EventTurnChanged,
		Payload: TurnChangedPayload{PlayerID: cur, Increasing: s.table.Increasing()},
	})
}

// syncHands privately sends the human player their hand whenever it changed.
func (s *Session) syncHands() {
	for _, p := range s.players {
		if p.Kind != domain.KindHuman {
			continue
		}
		hand := p.Hand()
		ids := make([]int, len(hand))
		for i, c := range hand {
			ids[i] = c.ID
		}
		if sameIDs(s.hands[p.ID], ids) && s.hands[p.ID] != nil {
			continue
		}
		s.hands[p.ID] = ids
		s.emit(Event{
			Kind:       EventHandUpdated,
			Payload:    HandUpdatedPayload{PlayerID: p.ID, Hand: hand},
			Recipients: []int{p.ID},
		})
	}
}

func sameIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (s *Session) summaries() []PlayerSummary {
	out := make([]PlayerSummary, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, PlayerSummary{
			ID:         p.ID,
			Name:       p.Name,
			Human:      p.Kind == domain.KindHuman,
			HandSize:   p.HandSize(),
			TotalScore: p.TotalScore,
			RoundScore: p.RoundScore,
			Wins:       p.Wins,
		})
	}
	return out
}

func (s *Session) emit(ev Event) {
	s.events = append(s.events, ev)
}

// Drain returns and clears the events raised since the last call.
func (s *Session) Drain() []Event {
	out := s.events
	s.events = nil
	return out
}

// Table exposes the game state. Callers must treat it as read only.
func (s *Session) Table() *domain.Table { return s.table }

// CurrentNode returns the node of the running sequence, or nil between turns.
func (s *Session) CurrentNode() *turn.Node { return s.current }

// Phase returns the lifecycle stage of the session.
func (s *Session) Phase() domain.Phase { return s.phase }

// Round returns the 1-based number of the round being played.
func (s *Session) Round() int { return s.round }

// PendingDecision returns the timed decision waiting on the current player.
func (s *Session) PendingDecision() (*turn.Node, bool) {
	n := s.current
	if n == nil || !n.TimeBounded() || n.Resolved() {
		return nil, false
	}
	return n, true
}

// Snapshot returns the state of the session as seen by viewerID.
func (s *Session) Snapshot(viewerID int) Snapshot {
	snap := Snapshot{
		Phase:           s.phase,
		Round:           s.round,
		CurrentPlayerID: s.table.CurrentPlayer().ID,
		Increasing:      s.table.Increasing(),
		TopCard:         s.table.TopCard(),
		Players:         s.summaries(),
	}
	if p := s.table.Player(viewerID); p != nil {
		snap.Hand = p.Hand()
	}
	if n, ok := s.PendingDecision(); ok {
		req := s.decisionRequest(n)
		snap.Pending = &req
	}
	return snap
}

func (s *Session) decisionRequest(n *turn.Node) DecisionRequestedPayload {
	return DecisionRequestedPayload{
		PlayerID:   s.table.CurrentPlayer().ID,
		SequenceID: n.State().ID,
		Flag:       n.Flag(),
		Timeout:    s.clock.remaining,
		Card:       n.State().Card,
		DrawCount:  n.State().DrawCount,
	}
}
