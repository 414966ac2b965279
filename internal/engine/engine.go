// Package engine is the simulation core: the event scheduler, the effect
// dispatcher, the simulation clock and the GameSession that ties the ledger,
// ship and crew together.
//
// ARCHITECTURAL RULE: choice effects are data. Only ApplyEffect mutates state
// in response to a player's choice, and every random draw goes through the
// session's rng.Source.
package engine
