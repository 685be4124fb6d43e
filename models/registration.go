package models

import "time"

// Registration is one entry in a category: a single player, a doubles pair,
// or a triple. Players lists the one to three member player ids.
type Registration struct {
	ID            int       `json:"id"`
	CategoryID    int       `json:"category_id"`
	Players       []int     `json:"players"`
	Seed          *int      `json:"seed,omitempty"`
	RankingNumber *int      `json:"ranking_number,omitempty"`
	GroupName     *string   `json:"group_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// SeedValue is the effective seeding key: the explicit seed when present,
// otherwise the ranking number, otherwise nil.
func (r *Registration) SeedValue() *int {
	if r.Seed != nil {
		return r.Seed
	}
	return r.RankingNumber
}
