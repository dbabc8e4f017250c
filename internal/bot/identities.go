package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// BotIdentity is the persona of an AI seat.
type BotIdentity struct {
	Name        string `json:"name"`
	Strategy    string `json:"strategy"` // "offensive", "defensive", "chaotic", "random"
	AvatarIndex int    `json:"avatar_index"`
}

var (
	botIdentities []BotIdentity
	loadOnce      sync.Once
	loadErr       error
)

// LoadIdentities loads the bot profiles from the given path.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}
		loadErr = setIdentities(data)
	})
	return loadErr
}

func setIdentities(data []byte) error {
	var ids []BotIdentity
	if err := json.Unmarshal(data, &ids); err != nil {
		return fmt.Errorf("failed to unmarshal bot identities: %w", err)
	}
	for i, id := range ids {
		if id.Strategy == "" {
			continue
		}
		if _, err := ParseStrategy(id.Strategy); err != nil {
			return fmt.Errorf("bot identity %d: %w", i, err)
		}
	}
	botIdentities = ids
	return nil
}

// GetBotIdentity returns an identity for a bot by index (mod pool size).
func GetBotIdentity(index int) BotIdentity {
	if len(botIdentities) == 0 {
		return BotIdentity{Name: fmt.Sprintf("AI Player %d", index)}
	}
	return botIdentities[index%len(botIdentities)]
}
