package app

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"uno/internal/bot"
	"uno/internal/domain"
)

// Service starts Uno sessions.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

var (
	ErrNotPlaying       = errors.New("round not in playing phase")
	ErrRoundNotOver     = errors.New("round has not ended")
	ErrUnknownPlayer    = errors.New("player not found")
	ErrNotYourTurn      = errors.New("not the player's turn")
	ErrSequenceRunning  = errors.New("a turn sequence is still running")
	ErrUnknownCard      = errors.New("card not in hand")
	ErrIllegalCard      = errors.New("card cannot be played on the pile")
	ErrNoDecision       = errors.New("no decision is pending")
	ErrWrongDecision    = errors.New("pending decision has a different flag")
	ErrDecisionResolved = errors.New("decision already resolved")
	ErrIllegalColour    = errors.New("colour cannot be chosen")
	ErrJumpInDisabled   = errors.New("jump in is not allowed by the rules")
	ErrCannotCallUno    = errors.New("player cannot call uno now")
	ErrNotExposed       = errors.New("no player can be called out")
	ErrMissingBrain     = errors.New("ai seat has no brain")
)

// Seat describes a player to seat at a new table.
type Seat struct {
	Name  string
	Human bool
	Brain bot.Brain
}

// Options tunes a Session. Zero values pick sensible defaults.
type Options struct {
	Logger runtime.Logger
	Tuning *bot.Tuning
	// Debug logs every step and dumps every installed sequence.
	Debug bool
}

// StartGame seats players, deals the first round and returns the session
// with its opening events.
func (s *Service) StartGame(seats []Seat, rules *domain.RuleSet, opts Options) (*Session, []Event, error) {
	if opts.Logger == nil {
		opts.Logger = NopLogger{}
	}
	tuning := bot.DefaultTuning
	if opts.Tuning != nil {
		tuning = *opts.Tuning
	}

	players := make([]*domain.Player, 0, len(seats))
	var agents []*bot.Agent
	for i, seat := range seats {
		kind := domain.KindAI
		if seat.Human {
			kind = domain.KindHuman
		}
		players = append(players, domain.NewPlayer(i, seat.Name, kind))
		if seat.Human {
			continue
		}
		if seat.Brain == nil {
			return nil, nil, fmt.Errorf("seat %d: %w", i, ErrMissingBrain)
		}
		agent := bot.NewAgent(i, seat.Name, seat.Brain, s.rng)
		agent.Tuning = tuning
		agents = append(agents, agent)
	}

	session := &Session{
		rng:     s.rng,
		logger:  opts.Logger,
		debug:   opts.Debug,
		rules:   rules,
		players: players,
		agents:  agents,
	}
	if err := session.deal(); err != nil {
		return nil, nil, err
	}
	return session, session.Drain(), nil
}
