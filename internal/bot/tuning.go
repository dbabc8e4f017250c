package bot

import "time"

// Tuning holds the timings and odds that make agents feel less mechanical.
// Chances are percentages.
type Tuning struct {
	TurnDelay time.Duration

	AntiUnoChance   int
	AntiUnoFirstMin time.Duration
	AntiUnoFirstMax time.Duration
	AntiUnoRetryMin time.Duration
	AntiUnoRetryMax time.Duration

	JumpInChance int
	JumpInMin    time.Duration
	JumpInMax    time.Duration

	CallUnoChance      int
	RandomColourChance int
}

// DefaultTuning paces agents at a comfortable speed for a human opponent.
var DefaultTuning = Tuning{
	TurnDelay: 1500 * time.Millisecond,

	AntiUnoChance:   30,
	AntiUnoFirstMin: 200 * time.Millisecond,
	AntiUnoFirstMax: 1000 * time.Millisecond,
	AntiUnoRetryMin: 300 * time.Millisecond,
	AntiUnoRetryMax: 1500 * time.Millisecond,

	JumpInChance: 80,
	JumpInMin:    100 * time.Millisecond,
	JumpInMax:    300 * time.Millisecond,

	CallUnoChance:      70,
	RandomColourChance: 10,
}
