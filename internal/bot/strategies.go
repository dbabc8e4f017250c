package bot

import (
	"math/rand"
	"sort"

	"uno/internal/domain"
)

// OffensiveBot gets rid of its cheapest card first.
type OffensiveBot struct{}

func (b *OffensiveBot) ChooseCard(valid []domain.Card) domain.Card {
	return byScore(valid)[0]
}

func (b *OffensiveBot) Strategy() Strategy { return StrategyOffensive }

// DefensiveBot sheds its most valuable card first to limit the points it gives away.
type DefensiveBot struct{}

func (b *DefensiveBot) ChooseCard(valid []domain.Card) domain.Card {
	sorted := byScore(valid)
	return sorted[len(sorted)-1]
}

func (b *DefensiveBot) Strategy() Strategy { return StrategyDefensive }

// ChaoticBot plays any valid card.
type ChaoticBot struct {
	rng *rand.Rand
}

func (b *ChaoticBot) ChooseCard(valid []domain.Card) domain.Card {
	return valid[b.rng.Intn(len(valid))]
}

func (b *ChaoticBot) Strategy() Strategy { return StrategyChaotic }

func byScore(cards []domain.Card) []domain.Card {
	out := append([]domain.Card(nil), cards...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score() < out[j].Score()
	})
	return out
}
