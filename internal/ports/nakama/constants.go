package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to get a fresh table.
	RpcQuickMatch = "quick_match"

	// MatchNameUno is the authoritative match handler name registered with Nakama.
	MatchNameUno = "uno_match"

	// MatchLabelKeyOpen is the label key holding the number of free human seats.
	MatchLabelKeyOpen = "open"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpPlayCard  int64 = 1
	OpDrawCard  int64 = 2
	OpDecide    int64 = 3
	OpJumpIn    int64 = 4
	OpCallUno   int64 = 5
	OpAntiUno   int64 = 6
	OpSortHand  int64 = 7
	OpNextRound int64 = 8

	// Server -> Client events
	OpSnapshot          int64 = 100
	OpRoundStarted      int64 = 101
	OpHandUpdated       int64 = 102 // send privately
	OpTurnChanged       int64 = 103
	OpCardPlayed        int64 = 104
	OpCardsDrawn        int64 = 105
	OpPlayerSkipped     int64 = 106
	OpDirectionChanged  int64 = 107
	OpColourChosen      int64 = 108
	OpHandsSwapped      int64 = 109
	OpHandsPassed       int64 = 110
	OpChallengeResolved int64 = 111
	OpDecisionRequested int64 = 112
	OpDecisionMade      int64 = 113
	OpJumpedIn          int64 = 114
	OpUnoCalled         int64 = 115
	OpAntiUnoCalled     int64 = 116
	OpRoundEnded        int64 = 117
	OpGameError         int64 = 199
)
