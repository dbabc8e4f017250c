package nakama

import (
	"context"

	"uno/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// NakamaAccountAdapter implements ports.AccountPort using Nakama's account API.
type NakamaAccountAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaAccountAdapter creates a new account adapter.
func NewNakamaAccountAdapter(nk runtime.NakamaModule) *NakamaAccountAdapter {
	return &NakamaAccountAdapter{nk: nk}
}

// DisplayName prefers the account display name and falls back to the username.
func (a *NakamaAccountAdapter) DisplayName(ctx context.Context, userID string) (string, error) {
	account, err := a.nk.AccountGetId(ctx, userID)
	if err != nil {
		return "", err
	}
	user := account.GetUser()
	if user == nil {
		return "", nil
	}
	if name := user.GetDisplayName(); name != "" {
		return name, nil
	}
	return user.GetUsername(), nil
}

var _ ports.AccountPort = (*NakamaAccountAdapter)(nil)
