package services

import "errors"

// Sentinel errors shared across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Result recording
	ErrMatchWinnerUnresolved = errors.New("match has no resolvable winner: needs at least one decided set, an explicit winner, or an outcome override")
	ErrTooManySets           = errors.New("set list exceeds the best-of format upper bound")
	ErrNegativeSetScore      = errors.New("set scores must be non-negative")
	ErrOutcomeSideRequired   = errors.New("walkover or injury outcome requires the retiring side")

	// Slot swaps
	ErrSwapNotPlayoff        = errors.New("slot swap is only defined for playoff matches")
	ErrSwapCategoryMismatch  = errors.New("slot swap requires both matches to belong to the same category")
	ErrSwapSlotEmpty         = errors.New("slot swap requires both slots to be occupied")
	ErrSwapSameSlot          = errors.New("cannot swap a slot with itself")
	ErrSwapIdenticalOccupant = errors.New("both slots already hold the same registration")

	// Group balancing
	ErrDrawHasNoGroups   = errors.New("category draw type has no group stage")
	ErrGroupStageStarted = errors.New("group assignment is frozen once group matches exist")

	// Auth
	ErrInvalidCredentials = errors.New("invalid credentials")
)
