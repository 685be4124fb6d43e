package models

import "time"

type MatchStage string

const (
	StageGroup   MatchStage = "GROUP"
	StagePlayoff MatchStage = "PLAYOFF"
)

type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
)

// Other returns the opposite side of a match.
func (s Side) Other() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

type OutcomeType string

const (
	OutcomePlayed   OutcomeType = "PLAYED"
	OutcomeWalkover OutcomeType = "WALKOVER"
	OutcomeInjury   OutcomeType = "INJURY"
)

// SetScore is one set of a match as it travels over the wire.
type SetScore struct {
	A int `json:"a"`
	B int `json:"b"`
}

// MaxSetsPerMatch caps the set list (best-of format upper bound).
const MaxSetsPerMatch = 7

type SlotKind string

const (
	SlotEmpty   SlotKind = "empty"   // round-1 slot with no opponent assigned
	SlotBye     SlotKind = "bye"     // round-1 slot that is a free pass
	SlotPending SlotKind = "pending" // later round, winner not yet known
	SlotTaken   SlotKind = "taken"   // holds a real registration
)

// Slot is one side of a match. It replaces the string-tagged placeholder ids
// ("bye-…", "empty-…", "pending-…") with a tagged variant: RegistrationID is
// set if and only if Kind is SlotTaken.
type Slot struct {
	Kind           SlotKind `json:"kind"`
	RegistrationID *int     `json:"registration_id,omitempty"`
}

func TakenSlot(registrationID int) Slot {
	return Slot{Kind: SlotTaken, RegistrationID: &registrationID}
}

func PlaceholderSlot(kind SlotKind) Slot {
	return Slot{Kind: kind}
}

// IsTaken reports whether the slot holds a real registration.
func (s Slot) IsTaken() bool {
	return s.Kind == SlotTaken && s.RegistrationID != nil
}

// Holds reports whether the slot holds exactly the given registration.
func (s Slot) Holds(registrationID int) bool {
	return s.IsTaken() && *s.RegistrationID == registrationID
}

type Match struct {
	ID            int          `json:"id"`
	CategoryID    int          `json:"category_id"`
	Stage         MatchStage   `json:"stage"`
	GroupName     *string      `json:"group_name,omitempty"`
	RoundNumber   *int         `json:"round_number,omitempty"`
	IsBronzeMatch bool         `json:"is_bronze_match"`
	SlotA         Slot         `json:"slot_a"`
	SlotB         Slot         `json:"slot_b"`
	Games         []SetScore   `json:"games,omitempty"`
	WinnerSide    *Side        `json:"winner_side,omitempty"`
	OutcomeType   *OutcomeType `json:"outcome_type,omitempty"`
	OutcomeSide   *Side        `json:"outcome_side,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

// Slot returns the slot on the given side.
func (m *Match) Slot(side Side) Slot {
	if side == SideA {
		return m.SlotA
	}
	return m.SlotB
}

// SetSlot replaces the slot on the given side.
func (m *Match) SetSlot(side Side, slot Slot) {
	if side == SideA {
		m.SlotA = slot
	} else {
		m.SlotB = slot
	}
}

// Round returns the playoff round number, defaulting to 1 when unset.
func (m *Match) Round() int {
	if m.RoundNumber == nil || *m.RoundNumber < 1 {
		return 1
	}
	return *m.RoundNumber
}
