package models

// StandingEntry is the accumulated group-stage record of one registration,
// scoped to one category+group. Derived data, recomputed on every query.
type StandingEntry struct {
	RegistrationID int    `json:"registration_id"`
	GroupName      string `json:"group_name"`
	Points         int    `json:"points"`
	MatchesWon     int    `json:"matches_won"`
	MatchesLost    int    `json:"matches_lost"`
	SetsWon        int    `json:"sets_won"`
	SetsLost       int    `json:"sets_lost"`
	PointsFor      int    `json:"points_for"`
	PointsAgainst  int    `json:"points_against"`
}

// SetsDiff is the SETS_DIFF tiebreaker metric.
func (e *StandingEntry) SetsDiff() int { return e.SetsWon - e.SetsLost }

// PointsDiff is the POINTS_DIFF tiebreaker metric.
func (e *StandingEntry) PointsDiff() int { return e.PointsFor - e.PointsAgainst }

// PlayerRank is one row of a league/season player ranking.
type PlayerRank struct {
	PlayerID int `json:"player_id"`
	Points   int `json:"points"`
}
