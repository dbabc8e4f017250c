package app

import (
	"time"

	"uno/internal/turn"
)

// decisionClock bounds the pending timed decision.
type decisionClock struct {
	node      *turn.Node
	remaining time.Duration
	// expired is the last node resolved by a timeout.
	expired *turn.Node
}

func (c *decisionClock) start(n *turn.Node, d time.Duration) {
	c.node = n
	c.remaining = d
}

func (c *decisionClock) stop() {
	c.node = nil
	c.remaining = 0
}

// checkTimeout resolves the pending decision with its default once the
// clock runs out.
func (s *Session) checkTimeout(delta time.Duration) {
	c := &s.clock
	if c.node == nil {
		return
	}
	if c.node != s.current || c.node.Resolved() {
		c.stop()
		return
	}
	c.remaining -= delta
	if c.remaining > 0 {
		return
	}
	n := c.node
	c.stop()
	c.expired = n
	s.logger.Info("decision %s timed out for player %d", n.Flag(), s.table.CurrentPlayer().ID)
	s.applyDefault(n)
}

// applyDefault answers n the way a player who never responds would: keep
// the drawn card, take the cards, decline the challenge.
func (s *Session) applyDefault(n *turn.Node) {
	cur := s.table.CurrentPlayer()
	switch n.Flag() {
	case turn.FlagWildColour:
		n.InjectProperty(turn.WithColour(s.table.RandomColour()))
		n.InjectFlag(turn.FlagYes)
	case turn.FlagOtherPlayer:
		n.InjectFlag(s.table.FewestCardsOpponent(cur.ID).ID)
	case turn.FlagChallenging:
		n.InjectProperty(turn.WithFlag(turn.FlagChaining, turn.FlagNo))
		n.InjectFlag(turn.FlagNo)
	default:
		n.InjectFlag(turn.FlagNo)
	}
}
