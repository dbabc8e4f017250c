package bot

import (
	"uno/internal/domain"
	"uno/internal/turn"
)

// Brain is the interface that all bot strategies must implement.
type Brain interface {
	// ChooseCard picks one of the valid moves. valid is never empty.
	ChooseCard(valid []domain.Card) domain.Card
	Strategy() Strategy
}

// ColourChooser is implemented by brains that pick the colour for a wild
// card themselves. ok is false to fall back to the default choice.
type ColourChooser interface {
	ChooseColour(hand []domain.Card) (c domain.Colour, ok bool)
}

// Game is the part of a session an agent may observe and act on.
type Game interface {
	Table() *domain.Table
	CurrentNode() *turn.Node
	PlayCard(playerID, cardID int) error
	DrawCard(playerID int) error
	JumpIn(playerID, cardID int) error
	CallUno(playerID int) error
	AntiUno(callerID, targetID int) error
}
