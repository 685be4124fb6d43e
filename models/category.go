package models

// DrawType selects how a category is played out.
type DrawType string

const (
	DrawRoundRobin    DrawType = "ROUND_ROBIN"
	DrawGroupsPlayoff DrawType = "GROUPS_PLAYOFF"
	DrawPlayoff       DrawType = "PLAYOFF"
)

// HasGroups reports whether the draw includes a group stage.
func (d DrawType) HasGroups() bool {
	return d == DrawRoundRobin || d == DrawGroupsPlayoff
}

// HasPlayoff reports whether the draw includes a knockout bracket.
func (d DrawType) HasPlayoff() bool {
	return d == DrawGroupsPlayoff || d == DrawPlayoff
}

// Category is one competitive event inside a tournament, e.g. "badminton MS".
// Sport and name together identify sibling categories across the tournaments
// of a league season.
type Category struct {
	ID           int      `json:"id"`
	TournamentID int      `json:"tournament_id"`
	Sport        string   `json:"sport"`
	Name         string   `json:"name"`
	DrawType     DrawType `json:"draw_type"`
	MinGroupSize int      `json:"min_group_size"`
	MaxGroupSize int      `json:"max_group_size"`
}
