package bot

import (
	"errors"
	"fmt"

	"github.com/Shopify/go-lua"

	"uno/internal/domain"
)

var ErrNoChooseCard = errors.New("bot script must define choose_card")

// ScriptBrain delegates card choice to a Lua script. The script defines
// choose_card(cards) returning a 1-based index into cards, and may define
// choose_colour(hand) returning a colour from 0 to 3. Every card is a table
// with id, face, colour and score fields. Errors and out of range answers
// fall back to another brain.
type ScriptBrain struct {
	state     *lua.State
	fallback  Brain
	hasColour bool
}

// NewScriptBrain loads source. fallback must not be nil.
func NewScriptBrain(source string, fallback Brain) (*ScriptBrain, error) {
	l := lua.NewState()
	lua.OpenLibraries(l)
	if err := lua.DoString(l, source); err != nil {
		return nil, fmt.Errorf("load bot script: %w", err)
	}
	if !hasFunction(l, "choose_card") {
		return nil, ErrNoChooseCard
	}
	return &ScriptBrain{
		state:     l,
		fallback:  fallback,
		hasColour: hasFunction(l, "choose_colour"),
	}, nil
}

func hasFunction(l *lua.State, name string) bool {
	l.Global(name)
	defer l.Pop(1)
	return l.IsFunction(-1)
}

func (b *ScriptBrain) ChooseCard(valid []domain.Card) domain.Card {
	i, ok := b.call("choose_card", valid)
	if !ok || i < 1 || i > len(valid) {
		return b.fallback.ChooseCard(valid)
	}
	return valid[i-1]
}

func (b *ScriptBrain) ChooseColour(hand []domain.Card) (domain.Colour, bool) {
	if !b.hasColour {
		return 0, false
	}
	i, ok := b.call("choose_colour", hand)
	c := domain.Colour(i)
	if !ok || !c.Valid() {
		return 0, false
	}
	return c, true
}

func (b *ScriptBrain) Strategy() Strategy { return StrategyScript }

func (b *ScriptBrain) call(fn string, cards []domain.Card) (int, bool) {
	l := b.state
	top := l.Top()
	defer l.SetTop(top)

	l.Global(fn)
	pushCards(l, cards)
	if err := l.ProtectedCall(1, 1, 0); err != nil {
		return 0, false
	}
	return l.ToInteger(-1)
}

func pushCards(l *lua.State, cards []domain.Card) {
	l.CreateTable(len(cards), 0)
	for i, c := range cards {
		l.CreateTable(0, 4)
		l.PushInteger(c.ID)
		l.SetField(-2, "id")
		l.PushInteger(c.Face)
		l.SetField(-2, "face")
		l.PushInteger(int(c.Colour))
		l.SetField(-2, "colour")
		l.PushInteger(c.Score())
		l.SetField(-2, "score")
		l.RawSetInt(-2, i+1)
	}
}
