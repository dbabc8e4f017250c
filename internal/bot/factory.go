package bot

import (
	"fmt"
	"math/rand"
	"strings"
)

// Strategy names a card choosing policy.
type Strategy string

const (
	StrategyOffensive Strategy = "offensive"
	StrategyDefensive Strategy = "defensive"
	StrategyChaotic   Strategy = "chaotic"
	StrategyRandom    Strategy = "random"
	StrategyScript    Strategy = "script"
)

// ParseStrategy accepts any casing of the built-in strategy names.
func ParseStrategy(name string) (Strategy, error) {
	s := Strategy(strings.ToLower(strings.TrimSpace(name)))
	switch s {
	case StrategyOffensive, StrategyDefensive, StrategyChaotic, StrategyRandom:
		return s, nil
	}
	return "", fmt.Errorf("unknown bot strategy: %q", name)
}

// NewBrain creates a new AI brain for the given strategy. StrategyRandom
// settles on one of the other three once, at creation.
func NewBrain(strategy Strategy, rng *rand.Rand) (Brain, error) {
	switch strategy {
	case StrategyOffensive:
		return &OffensiveBot{}, nil
	case StrategyDefensive:
		return &DefensiveBot{}, nil
	case StrategyChaotic:
		return &ChaoticBot{rng: rng}, nil
	case StrategyRandom:
		picks := []Strategy{StrategyOffensive, StrategyDefensive, StrategyChaotic}
		return NewBrain(picks[rng.Intn(len(picks))], rng)
	default:
		return nil, fmt.Errorf("unknown bot strategy: %q", strategy)
	}
}
