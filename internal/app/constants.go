package app

// HumanPlayerID is the seat the single human player always occupies.
const HumanPlayerID = 0
