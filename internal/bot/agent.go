package bot

import (
	"math/rand"
	"time"

	"uno/internal/domain"
	"uno/internal/turn"
)

// Agent represents an autonomous bot player.
type Agent struct {
	ID     int
	Name   string
	Brain  Brain
	Tuning Tuning

	rng   *rand.Rand
	delay time.Duration

	considering   int
	considerDelay time.Duration

	canJumpIn         bool
	consideringJumpIn bool
	jumpInDelay       time.Duration
}

// NewAgent returns an agent for seat id using DefaultTuning.
func NewAgent(id int, name string, brain Brain, rng *rand.Rand) *Agent {
	return &Agent{
		ID:          id,
		Name:        name,
		Brain:       brain,
		Tuning:      DefaultTuning,
		rng:         rng,
		delay:       DefaultTuning.TurnDelay,
		considering: -1,
	}
}

// Update advances the agent's timers and acts when it is allowed to. Calling
// out other players and jumping in can happen on any tick; turns and
// decisions only when the agent is the current player and its turn delay
// has elapsed.
func (a *Agent) Update(g Game, delta time.Duration) error {
	if err := a.checkAntiUno(g, delta); err != nil {
		return err
	}
	if err := a.checkJumpIn(g, delta); err != nil {
		return err
	}

	if g.Table().CurrentPlayer().ID != a.ID {
		return nil
	}
	a.delay -= delta
	if a.delay > 0 {
		return nil
	}
	a.delay = a.Tuning.TurnDelay

	node := g.CurrentNode()
	if node == nil {
		return a.performTurn(g)
	}
	if node.TimeBounded() && !node.Resolved() {
		a.decide(g, node)
	}
	return nil
}

func (a *Agent) self(t *domain.Table) *domain.Player {
	return t.Player(a.ID)
}

func (a *Agent) performTurn(g Game) error {
	top := g.Table().TopCard()
	valid := a.self(g.Table()).ValidMoves(top.Face, top.Colour)
	if len(valid) == 0 {
		return g.DrawCard(a.ID)
	}
	c := a.Brain.ChooseCard(valid)
	a.maybeCallUno(g)
	return g.PlayCard(a.ID, c.ID)
}

// decide answers the timed decision node on behalf of the agent.
func (a *Agent) decide(g Game, node *turn.Node) {
	t := g.Table()
	me := a.self(t)
	switch node.Flag() {
	case turn.FlagWildColour:
		node.InjectProperty(turn.WithColour(a.chooseColour(me.Hand())))
		node.InjectFlag(turn.FlagYes)
	case turn.FlagKeepOrPlay:
		a.maybeCallUno(g)
		node.InjectFlag(turn.FlagYes)
	case turn.FlagOtherPlayer:
		node.InjectFlag(t.FewestCardsOpponent(a.ID).ID)
	case turn.FlagChallenging:
		if c, ok := a.findFace(g, domain.FacePlus4); ok {
			a.maybeCallUno(g)
			node.InjectProperty(turn.WithCard(c), turn.WithFlag(turn.FlagChaining, turn.FlagYes))
			node.InjectFlag(turn.FlagNo)
			return
		}
		node.InjectProperty(turn.WithFlag(turn.FlagChaining, turn.FlagNo))
		node.InjectFlag(a.rng.Intn(2))
	case turn.FlagStacking:
		if c, ok := a.findFace(g, domain.FacePlus2); ok {
			a.maybeCallUno(g)
			node.InjectProperty(turn.WithCard(c))
			node.InjectFlag(turn.FlagYes)
			return
		}
		node.InjectFlag(turn.FlagNo)
	}
}

// findFace returns a held card to stack or chain with, if the rules allow it.
func (a *Agent) findFace(g Game, face int) (domain.Card, bool) {
	if !g.Table().Rules().CanStack {
		return domain.Card{}, false
	}
	for _, c := range a.self(g.Table()).Hand() {
		if c.Face == face {
			return c, true
		}
	}
	return domain.Card{}, false
}

func (a *Agent) chooseColour(hand []domain.Card) domain.Colour {
	if cc, ok := a.Brain.(ColourChooser); ok {
		if c, ok := cc.ChooseColour(hand); ok {
			return c
		}
	}
	if a.rng.Intn(100) >= a.Tuning.RandomColourChance {
		for _, c := range hand {
			if c.Colour.Valid() {
				return c.Colour
			}
		}
	}
	return domain.Colours[a.rng.Intn(len(domain.Colours))]
}

func (a *Agent) maybeCallUno(g Game) {
	if a.self(g.Table()).HandSize() != 2 {
		return
	}
	if a.rng.Intn(100) < a.Tuning.CallUnoChance {
		_ = g.CallUno(a.ID)
	}
}

func (a *Agent) checkAntiUno(g Game, delta time.Duration) error {
	t := g.Table()
	for _, p := range t.Exposed(a.ID) {
		if a.considering != p.ID {
			a.considerDelay = a.between(a.Tuning.AntiUnoFirstMin, a.Tuning.AntiUnoFirstMax)
		}
		a.considering = p.ID
	}
	if a.considering < 0 {
		return nil
	}
	target := t.Player(a.considering)
	if target == nil || target.IsSafe() {
		a.considering = -1
		return nil
	}
	a.considerDelay -= delta
	if a.considerDelay > 0 {
		return nil
	}
	a.considerDelay = a.between(a.Tuning.AntiUnoRetryMin, a.Tuning.AntiUnoRetryMax)
	if a.rng.Intn(100) < a.Tuning.AntiUnoChance {
		return g.AntiUno(a.ID, target.ID)
	}
	return nil
}

func (a *Agent) checkJumpIn(g Game, delta time.Duration) error {
	t := g.Table()
	var match *domain.Card
	if t.Rules().JumpIn && g.CurrentNode() == nil && t.CurrentPlayer().ID != a.ID {
		match = a.jumpInCard(t)
	}
	if match == nil {
		a.canJumpIn = false
		a.consideringJumpIn = false
		return nil
	}
	if !a.canJumpIn {
		a.consideringJumpIn = a.rng.Intn(100) < a.Tuning.JumpInChance
		a.jumpInDelay = a.between(a.Tuning.JumpInMin, a.Tuning.JumpInMax)
	}
	a.canJumpIn = true
	if !a.consideringJumpIn {
		return nil
	}
	a.jumpInDelay -= delta
	if a.jumpInDelay > 0 {
		return nil
	}
	a.canJumpIn = false
	a.consideringJumpIn = false
	return g.JumpIn(a.ID, match.ID)
}

func (a *Agent) jumpInCard(t *domain.Table) *domain.Card {
	for _, c := range a.self(t).Hand() {
		if t.CanJumpIn(a.ID, c) {
			return &c
		}
	}
	return nil
}

func (a *Agent) between(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(a.rng.Int63n(int64(hi-lo)))
}
