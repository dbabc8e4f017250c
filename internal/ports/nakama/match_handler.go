package nakama

import (
	"context"
	"database/sql"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/runtime"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"uno/internal/app"
	"uno/internal/bot"
	"uno/internal/config"
	"uno/internal/domain"
	"uno/internal/ports"
	"uno/internal/turn"
)

// MatchState holds the authoritative runtime state for one table: a single
// human seat and AI opponents in every other seat.
type MatchState struct {
	UserID   string           // Human player; empty until someone joins
	Presence runtime.Presence // Connection of the human player
	Tick     int64            // Last match loop tick
	Phase    domain.Phase     // Phase published in the label

	Config   *config.GameConfig
	App      *app.Service
	Session  *app.Session // nil until the human joins
	Tickets  *TicketService
	Accounts ports.AccountPort
	Script   string // Lua source for scripted bots, empty for built-in strategies

	rng *rand.Rand
}

// OpenSeats reports how many human seats are free.
func (ms *MatchState) OpenSeats() int {
	if ms.UserID == "" {
		return 1
	}
	return 0
}

type matchHandler struct{}

func newMatchHandler() *matchHandler {
	return &matchHandler{}
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	cfg, err := matchConfig(env)
	if err != nil {
		logger.Error("MatchInit: Invalid game config, using defaults: %v", err)
		cfg = config.Default()
	}

	if cfg.BotIdentitiesPath != "" {
		if err := bot.LoadIdentities(cfg.BotIdentitiesPath); err != nil {
			logger.Warn("MatchInit: Could not load bot identities: %v", err)
		}
	}

	secret := cfg.TicketSecret
	if secret == "" {
		secret = uuid.NewString()
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	state := &MatchState{
		Tick:    time.Now().Unix(),
		Phase:   domain.PhaseLobby,
		Config:  cfg,
		App:     app.NewService(rng),
		Tickets: NewTicketService(secret),
		rng:     rng,
	}
	if nk != nil {
		state.Accounts = NewNakamaAccountAdapter(nk)
	}
	if cfg.BotScriptPath != "" {
		source, err := os.ReadFile(cfg.BotScriptPath)
		if err != nil {
			logger.Warn("MatchInit: Could not read bot script, using built-in strategies: %v", err)
		} else {
			state.Script = string(source)
		}
	}

	label, err := matchLabel(state)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}
	return state, cfg.TickRate, label
}

// matchConfig applies the Nakama runtime environment over the loaded game config.
func matchConfig(env map[string]string) (*config.GameConfig, error) {
	cfg := *config.GetGameConfig()
	if env == nil {
		env = map[string]string{}
	}
	if err := cfg.ApplyEnv(env); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}
	if matchState.UserID != "" && matchState.UserID != presence.GetUserId() {
		return state, false, "Match full"
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		if matchState.UserID != "" && matchState.UserID != p.GetUserId() {
			logger.Warn("MatchJoin: User %s joined but the human seat is taken.", p.GetUserId())
			continue
		}
		matchState.UserID = p.GetUserId()
		matchState.Presence = p

		if matchState.Session == nil {
			mh.startSession(ctx, matchState, dispatcher, logger, p)
		} else {
			logger.Info("MatchJoin: User %s rejoined.", p.GetUserId())
			mh.sendSnapshot(matchState, dispatcher, logger)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) startSession(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, p runtime.Presence) {
	name := p.GetUsername()
	if state.Accounts != nil {
		if displayName, err := state.Accounts.DisplayName(ctx, p.GetUserId()); err != nil {
			logger.Warn("MatchJoin: Could not read account of %s: %v", p.GetUserId(), err)
		} else if displayName != "" {
			name = displayName
		}
	}

	seats := []app.Seat{{Name: name, Human: true}}
	for i := 0; i < state.Config.Opponents; i++ {
		seats = append(seats, mh.botSeat(state, logger, i))
	}

	rules, err := state.Config.RuleSet()
	if err != nil {
		logger.Error("MatchJoin: Invalid rules: %v", err)
		return
	}
	tuning := state.Config.BotTuning()
	session, events, err := state.App.StartGame(seats, rules, app.Options{
		Logger: logger.WithField("user_id", p.GetUserId()),
		Debug:  state.Config.Debug,
		Tuning: &tuning,
	})
	if err != nil {
		logger.Error("MatchJoin: Failed to start game: %v", err)
		return
	}
	state.Session = session
	logger.Info("MatchJoin: Game started for %s against %d bots.", p.GetUserId(), state.Config.Opponents)

	mh.sendSnapshot(state, dispatcher, logger)
	mh.dispatchEvents(state, dispatcher, logger, events)
}

// botSeat builds the AI opponent for the i-th bot seat from its identity.
func (mh *matchHandler) botSeat(state *MatchState, logger runtime.Logger, i int) app.Seat {
	identity := bot.GetBotIdentity(i)
	name := identity.Strategy
	if name == "" {
		name = state.Config.BotStrategy
	}
	strategy, err := bot.ParseStrategy(name)
	if err != nil {
		logger.Warn("MatchJoin: Bot %s has an invalid strategy, playing random: %v", identity.Name, err)
		strategy = bot.StrategyRandom
	}
	brain, _ := bot.NewBrain(strategy, state.rng)

	if state.Script != "" {
		scripted, err := bot.NewScriptBrain(state.Script, brain)
		if err != nil {
			logger.Warn("MatchJoin: Bot script rejected, %s plays %s: %v", identity.Name, strategy, err)
		} else {
			brain = scripted
		}
	}
	return app.Seat{Name: identity.Name, Brain: brain}
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		if p.GetUserId() == matchState.UserID {
			logger.Info("MatchLeave: Terminating match, %s left.", p.GetUserId())
			return nil
		}
	}
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}
	matchState.Tick = tick

	for _, msg := range messages {
		mh.handleMessage(matchState, dispatcher, logger, msg)
	}

	if matchState.Session == nil {
		return matchState
	}
	events := matchState.Session.Tick(matchState.Config.TickInterval())
	mh.dispatchEvents(matchState, dispatcher, logger, events)

	if matchState.Session.Phase() != matchState.Phase {
		mh.updateLabel(matchState, dispatcher, logger)
	}
	return matchState
}

func (mh *matchHandler) handleMessage(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if senderID != state.UserID {
		logger.Warn("handleMessage: Ignoring message from %s, not seated.", senderID)
		return
	}
	if state.Session == nil {
		logger.Warn("handleMessage: Game not started.")
		return
	}

	request, err := decodeMessage(msg.GetData())
	if err != nil {
		logger.Warn("handleMessage: Invalid payload from %s (op %d): %v", senderID, msg.GetOpCode(), err)
		mh.sendError(state, dispatcher, logger, 400, "invalid payload")
		return
	}

	session := state.Session
	human := app.HumanPlayerID
	switch msg.GetOpCode() {
	case OpPlayCard:
		err = withCard(request, func(id int) error { return session.PlayCard(human, id) })
	case OpDrawCard:
		err = session.DrawCard(human)
	case OpDecide:
		err = mh.decide(state, request)
	case OpJumpIn:
		err = withCard(request, func(id int) error { return session.JumpIn(human, id) })
	case OpCallUno:
		err = session.CallUno(human)
	case OpAntiUno:
		if target, ok := intField(request, "target_id"); ok {
			err = session.AntiUno(human, target)
		} else {
			err = session.CallOut(human)
		}
	case OpSortHand:
		err = session.SortHand(human)
	case OpNextRound:
		var events []app.Event
		events, err = session.NextRound()
		if err == nil {
			mh.sendSnapshot(state, dispatcher, logger)
			mh.dispatchEvents(state, dispatcher, logger, events)
		}
	default:
		logger.Warn("handleMessage: Unknown opcode received: %d", msg.GetOpCode())
		return
	}

	if err != nil {
		logger.Warn("handleMessage: User %s (op %d) rejected: %v", senderID, msg.GetOpCode(), err)
		mh.sendError(state, dispatcher, logger, 400, err.Error())
	}
}

func withCard(request *structpb.Struct, play func(id int) error) error {
	id, ok := intField(request, "card_id")
	if !ok {
		return app.ErrUnknownCard
	}
	return play(id)
}

// decide checks the ticket of the answered prompt, then hands the answer
// to the session.
func (mh *matchHandler) decide(state *MatchState, request *structpb.Struct) error {
	pending, ok := state.Session.PendingDecision()
	if !ok {
		return app.ErrNoDecision
	}
	if err := state.Tickets.Verify(stringField(request, "ticket"), state.UserID, pending.State().ID, pending.Flag()); err != nil {
		return err
	}

	d := app.Decision{
		Flag:  turn.Flag(stringField(request, "flag")),
		Chain: boolField(request, "chain"),
	}
	d.Value, _ = intField(request, "value")
	if id, ok := intField(request, "card_id"); ok {
		d.CardID = &id
	}
	if name := stringField(request, "colour"); name != "" {
		c, err := domain.ParseColour(name)
		if err != nil {
			return err
		}
		d.Colour = &c
	}
	return state.Session.Decide(app.HumanPlayerID, d)
}

// dispatchEvents handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) dispatchEvents(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		opCode, payload, err := eventToProto(ev)
		if err != nil {
			logger.Error("Failed to convert event %s: %v", ev.Kind, err)
			continue
		}
		if req, ok := ev.Payload.(app.DecisionRequestedPayload); ok && req.PlayerID == app.HumanPlayerID {
			mh.attachTicket(state, logger, payload, req)
		}

		// Events addressed to bots only are never sent.
		if len(ev.Recipients) > 0 && !addressedToHuman(ev.Recipients) {
			continue
		}
		mh.send(state, dispatcher, logger, opCode, payload)
	}
}

func addressedToHuman(recipients []int) bool {
	for _, id := range recipients {
		if id == app.HumanPlayerID {
			return true
		}
	}
	return false
}

func (mh *matchHandler) attachTicket(state *MatchState, logger runtime.Logger, payload *structpb.Struct, req app.DecisionRequestedPayload) {
	ticket, err := state.Tickets.Issue(state.UserID, req.SequenceID, req.Flag, req.Timeout+time.Second)
	if err != nil {
		logger.Error("Failed to issue decision ticket: %v", err)
		return
	}
	payload.Fields["ticket"] = structpb.NewStringValue(ticket)
}

func (mh *matchHandler) sendSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	snap := state.Session.Snapshot(app.HumanPlayerID)
	payload, err := snapshotToProto(snap)
	if err != nil {
		logger.Error("Failed to convert snapshot: %v", err)
		return
	}
	if snap.Pending != nil && snap.Pending.PlayerID == app.HumanPlayerID {
		mh.attachTicket(state, logger, payload.Fields["pending"].GetStructValue(), *snap.Pending)
	}
	mh.send(state, dispatcher, logger, OpSnapshot, payload)
}

// sendError sends a game error to the human player.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, code int, message string) {
	payload, err := structpb.NewStruct(map[string]interface{}{
		"code":    code,
		"message": message,
	})
	if err != nil {
		logger.Error("Failed to build game error: %v", err)
		return
	}
	mh.send(state, dispatcher, logger, OpGameError, payload)
}

func (mh *matchHandler) send(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, opCode int64, payload *structpb.Struct) {
	if state.Presence == nil {
		return
	}
	bytes, err := proto.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal message %d: %v", opCode, err)
		return
	}
	if err := dispatcher.BroadcastMessage(opCode, bytes, []runtime.Presence{state.Presence}, nil, true); err != nil {
		logger.Warn("Failed to send message %d: %v", opCode, err)
	}
}

func matchLabel(state *MatchState) (string, error) {
	label, err := structpb.NewStruct(map[string]interface{}{
		"game":            "uno",
		MatchLabelKeyOpen: state.OpenSeats(),
		"phase":           string(state.Phase),
	})
	if err != nil {
		return "", err
	}
	b, err := (&protojson.MarshalOptions{EmitUnpopulated: true}).Marshal(label)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Session != nil {
		state.Phase = state.Session.Phase()
	}
	label, err := matchLabel(state)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminated with %d grace seconds", graceSeconds)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
