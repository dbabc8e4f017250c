package nakama

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"uno/internal/app"
	"uno/internal/domain"
)

var eventOpCodes = map[app.EventKind]int64{
	app.EventRoundStarted:      OpRoundStarted,
	app.EventHandUpdated:       OpHandUpdated,
	app.EventTurnChanged:       OpTurnChanged,
	app.EventCardPlayed:        OpCardPlayed,
	app.EventCardsDrawn:        OpCardsDrawn,
	app.EventPlayerSkipped:     OpPlayerSkipped,
	app.EventDirectionChanged:  OpDirectionChanged,
	app.EventColourChosen:      OpColourChosen,
	app.EventHandsSwapped:      OpHandsSwapped,
	app.EventHandsPassed:       OpHandsPassed,
	app.EventChallengeResolved: OpChallengeResolved,
	app.EventDecisionRequested: OpDecisionRequested,
	app.EventDecisionMade:      OpDecisionMade,
	app.EventJumpIn:            OpJumpedIn,
	app.EventUnoCalled:         OpUnoCalled,
	app.EventAntiUno:           OpAntiUnoCalled,
	app.EventRoundEnded:        OpRoundEnded,
}

// eventToProto maps an app event to its op code and wire payload.
func eventToProto(ev app.Event) (int64, *structpb.Struct, error) {
	opCode, ok := eventOpCodes[ev.Kind]
	if !ok {
		return 0, nil, fmt.Errorf("unknown event kind: %s", ev.Kind)
	}

	var fields map[string]interface{}
	switch p := ev.Payload.(type) {
	case app.RoundStartedPayload:
		fields = map[string]interface{}{
			"round":           p.Round,
			"first_player_id": p.FirstPlayerID,
			"increasing":      p.Increasing,
			"top_card":        cardToMap(p.TopCard),
			"players":         playersToList(p.Players),
		}
	case app.HandUpdatedPayload:
		fields = map[string]interface{}{"player_id": p.PlayerID, "hand": cardsToList(p.Hand)}
	case app.TurnChangedPayload:
		fields = map[string]interface{}{"player_id": p.PlayerID, "increasing": p.Increasing}
	case app.CardPlayedPayload:
		fields = map[string]interface{}{"player_id": p.PlayerID, "card": cardToMap(p.Card), "hand_size": p.HandSize}
	case app.CardsDrawnPayload:
		fields = map[string]interface{}{"player_id": p.PlayerID, "count": p.Count, "hand_size": p.HandSize}
	case app.PlayerSkippedPayload:
		fields = map[string]interface{}{"player_id": p.PlayerID}
	case app.DirectionChangedPayload:
		fields = map[string]interface{}{"increasing": p.Increasing}
	case app.ColourChosenPayload:
		fields = map[string]interface{}{"player_id": p.PlayerID, "colour": p.Colour.String()}
	case app.HandsSwappedPayload:
		fields = map[string]interface{}{"player_id": p.PlayerID, "target_id": p.TargetID}
	case app.HandsPassedPayload:
		fields = map[string]interface{}{"increasing": p.Increasing}
	case app.ChallengeResolvedPayload:
		fields = map[string]interface{}{"player_id": p.PlayerID, "success": p.Success}
	case app.DecisionRequestedPayload:
		fields = decisionToMap(p)
	case app.DecisionMadePayload:
		fields = map[string]interface{}{
			"player_id":   p.PlayerID,
			"sequence_id": p.SequenceID,
			"flag":        string(p.Flag),
			"value":       p.Value,
			"timed_out":   p.TimedOut,
		}
	case app.JumpInPayload:
		fields = map[string]interface{}{"player_id": p.PlayerID, "card": cardToMap(p.Card)}
	case app.UnoCalledPayload:
		fields = map[string]interface{}{"player_id": p.PlayerID}
	case app.AntiUnoPayload:
		fields = map[string]interface{}{"caller_id": p.CallerID, "target_id": p.TargetID}
	case app.RoundEndedPayload:
		fields = map[string]interface{}{
			"winner_id":   p.WinnerID,
			"round_score": p.RoundScore,
			"players":     playersToList(p.Players),
			"game_over":   p.GameOver,
		}
	default:
		return 0, nil, fmt.Errorf("unexpected payload %T for %s", ev.Payload, ev.Kind)
	}

	s, err := structpb.NewStruct(fields)
	if err != nil {
		return 0, nil, err
	}
	return opCode, s, nil
}

func snapshotToProto(snap app.Snapshot) (*structpb.Struct, error) {
	fields := map[string]interface{}{
		"phase":             string(snap.Phase),
		"round":             snap.Round,
		"current_player_id": snap.CurrentPlayerID,
		"increasing":        snap.Increasing,
		"top_card":          cardToMap(snap.TopCard),
		"players":           playersToList(snap.Players),
		"hand":              cardsToList(snap.Hand),
	}
	if snap.Pending != nil {
		fields["pending"] = decisionToMap(*snap.Pending)
	}
	return structpb.NewStruct(fields)
}

func decisionToMap(p app.DecisionRequestedPayload) map[string]interface{} {
	return map[string]interface{}{
		"player_id":   p.PlayerID,
		"sequence_id": p.SequenceID,
		"flag":        string(p.Flag),
		"timeout_ms":  p.Timeout.Milliseconds(),
		"card":        cardToMap(p.Card),
		"draw_count":  p.DrawCount,
	}
}

func cardToMap(c domain.Card) map[string]interface{} {
	return map[string]interface{}{
		"id":     c.ID,
		"face":   c.Face,
		"colour": c.Colour.String(),
	}
}

func cardsToList(cards []domain.Card) []interface{} {
	out := make([]interface{}, 0, len(cards))
	for _, c := range cards {
		out = append(out, cardToMap(c))
	}
	return out
}

func playersToList(players []app.PlayerSummary) []interface{} {
	out := make([]interface{}, 0, len(players))
	for _, p := range players {
		out = append(out, map[string]interface{}{
			"id":          p.ID,
			"name":        p.Name,
			"human":       p.Human,
			"hand_size":   p.HandSize,
			"total_score": p.TotalScore,
			"round_score": p.RoundScore,
			"wins":        p.Wins,
		})
	}
	return out
}

// decodeMessage reads a client message. Clients send JSON objects; an empty
// body is an empty message.
func decodeMessage(data []byte) (*structpb.Struct, error) {
	msg := &structpb.Struct{}
	if len(data) == 0 {
		return msg, nil
	}
	if err := protojson.Unmarshal(data, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func intField(msg *structpb.Struct, key string) (int, bool) {
	v, ok := msg.GetFields()[key]
	if !ok {
		return 0, false
	}
	if _, ok := v.GetKind().(*structpb.Value_NumberValue); !ok {
		return 0, false
	}
	return int(v.GetNumberValue()), true
}

func stringField(msg *structpb.Struct, key string) string {
	return msg.GetFields()[key].GetStringValue()
}

func boolField(msg *structpb.Struct, key string) bool {
	return msg.GetFields()[key].GetBoolValue()
}
