package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"

	"uno/internal/bot"
	"uno/internal/domain"
)

// RulesConfig mirrors domain.RuleSet in a file and environment friendly form.
type RulesConfig struct {
	CanStackCards   bool   `json:"can_stack_cards" env:"UNO_CAN_STACK_CARDS"`
	DrawTillCanPlay bool   `json:"draw_till_can_play" env:"UNO_DRAW_TILL_CAN_PLAY"`
	ForcedPlay      bool   `json:"forced_play" env:"UNO_FORCED_PLAY"`
	JumpIn          bool   `json:"jump_in" env:"UNO_JUMP_IN"`
	NoBluffing      bool   `json:"no_bluffing" env:"UNO_NO_BLUFFING"`
	SevenZero       bool   `json:"seven_zero" env:"UNO_SEVEN_ZERO"`
	ScoreLimit      string `json:"score_limit" env:"UNO_SCORE_LIMIT"`
}

type GameConfig struct {
	Rules                  RulesConfig `json:"rules"`
	DecisionTimeoutSeconds int         `json:"decision_timeout_seconds" env:"UNO_DECISION_TIMEOUT_SECONDS"`
	// TickRate is the number of match loop ticks per second.
	TickRate  int `json:"tick_rate" env:"UNO_TICK_RATE"`
	Opponents int `json:"opponents" env:"UNO_OPPONENTS"`

	BotStrategy        string `json:"bot_strategy" env:"UNO_BOT_STRATEGY"`
	BotTurnDelayMillis int    `json:"bot_turn_delay_ms" env:"UNO_BOT_TURN_DELAY_MS"`
	BotScriptPath      string `json:"bot_script_path" env:"UNO_BOT_SCRIPT_PATH"`
	BotIdentitiesPath  string `json:"bot_identities_path" env:"UNO_BOT_IDENTITIES_PATH"`

	// TicketSecret signs decision tickets. It is never read from the file.
	TicketSecret string `json:"-" env:"UNO_TICKET_SECRET"`
	Debug        bool   `json:"debug" env:"UNO_DEBUG"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// Default returns the configuration used when no file is present.
func Default() *GameConfig {
	return &GameConfig{
		Rules: RulesConfig{
			CanStackCards:   true,
			DrawTillCanPlay: true,
			ScoreLimit:      domain.OneRound.String(),
		},
		DecisionTimeoutSeconds: int(domain.DefaultDecisionTimeout / time.Second),
		TickRate:               10,
		Opponents:              3,
		BotStrategy:            string(bot.StrategyRandom),
		BotTurnDelayMillis:     int(bot.DefaultTuning.TurnDelay / time.Millisecond),
	}
}

// LoadGameConfig loads the game configuration from the given path, then
// applies environment overrides.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}
		c, err := Parse(data, nil)
		if err != nil {
			loadErr = err
			return
		}
		cfg = c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, or the defaults if
// none was loaded.
func GetGameConfig() *GameConfig {
	if cfg == nil {
		return Default()
	}
	return cfg
}

// Parse reads a JSON document over the defaults and applies overrides from
// environ, or from the process environment when environ is nil.
func Parse(data []byte, environ map[string]string) (*GameConfig, error) {
	c := Default()
	if len(data) > 0 {
		if err := json.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game config: %w", err)
		}
	}
	if err := c.ApplyEnv(environ); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// ApplyEnv overrides fields from environ, or from the process environment
// when environ is nil. Unset variables leave fields untouched.
func (c *GameConfig) ApplyEnv(environ map[string]string) error {
	var err error
	if environ == nil {
		err = env.Parse(c)
	} else {
		err = env.ParseWithOptions(c, env.Options{Environment: environ})
	}
	if err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate reports the first setting that cannot be used.
func (c *GameConfig) Validate() error {
	if c.DecisionTimeoutSeconds <= 0 {
		return fmt.Errorf("decision_timeout_seconds must be positive, got %d", c.DecisionTimeoutSeconds)
	}
	if c.TickRate < 1 || c.TickRate > 60 {
		return fmt.Errorf("tick_rate must be between 1 and 60, got %d", c.TickRate)
	}
	if c.Opponents != 1 && c.Opponents != 3 {
		return fmt.Errorf("opponents must be 1 or 3, got %d", c.Opponents)
	}
	if c.BotTurnDelayMillis < 0 {
		return fmt.Errorf("bot_turn_delay_ms must not be negative, got %d", c.BotTurnDelayMillis)
	}
	if _, err := bot.ParseStrategy(c.BotStrategy); err != nil {
		return err
	}
	if _, err := domain.ParseScoreLimit(c.Rules.ScoreLimit); err != nil {
		return err
	}
	return nil
}

// RuleSet builds the house rules for a new game.
func (c *GameConfig) RuleSet() (*domain.RuleSet, error) {
	limit, err := domain.ParseScoreLimit(c.Rules.ScoreLimit)
	if err != nil {
		return nil, err
	}
	r := domain.NewRuleSet()
	r.CanStack = c.Rules.CanStackCards
	r.DrawTillCanPlay = c.Rules.DrawTillCanPlay
	r.ForcedPlay = c.Rules.ForcedPlay
	r.JumpIn = c.Rules.JumpIn
	r.NoBluffing = c.Rules.NoBluffing
	r.SevenZero = c.Rules.SevenZero
	r.ScoreLimit = limit
	r.DecisionTimeout = c.DecisionTimeout()
	return r, nil
}

// DecisionTimeout bounds every timed decision.
func (c *GameConfig) DecisionTimeout() time.Duration {
	return time.Duration(c.DecisionTimeoutSeconds) * time.Second
}

// TickInterval is the simulated time that passes on every match loop tick.
func (c *GameConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// BotTuning returns the agent tuning with the configured turn delay.
func (c *GameConfig) BotTuning() bot.Tuning {
	t := bot.DefaultTuning
	t.TurnDelay = time.Duration(c.BotTurnDelayMillis) * time.Millisecond
	return t
}
