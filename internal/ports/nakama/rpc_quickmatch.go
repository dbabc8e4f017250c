package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/heroiclabs/nakama-common/runtime"
)

// QuickMatchResponse is the payload returned to clients when requesting a table.
type QuickMatchResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	return initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch)
}

// rpcQuickMatch always creates a new table: each match seats one human
// against bots, so there is never an open seat to share.
func rpcQuickMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	matchID, err := nk.MatchCreate(ctx, MatchNameUno, map[string]interface{}{})
	if err != nil {
		logger.Error("rpcQuickMatch [User:%s]: MatchCreate error: %v", userID, err)
		return "", err
	}
	logger.Info("rpcQuickMatch [User:%s]: Created new match %s", userID, matchID)

	resp := QuickMatchResponse{MatchID: matchID, IsNew: true}
	b, _ := json.Marshal(resp)
	return string(b), nil
}
