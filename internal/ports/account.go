package ports

import "context"

// AccountPort reads account profiles.
type AccountPort interface {
	// DisplayName returns the name shown at the table for userID. An empty
	// name means the account has none set.
	DisplayName(ctx context.Context, userID string) (string, error)
}
