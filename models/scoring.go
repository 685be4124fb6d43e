package models

type Tiebreaker string

const (
	TiebreakSetsDiff       Tiebreaker = "SETS_DIFF"
	TiebreakMatchesWon     Tiebreaker = "MATCHES_WON"
	TiebreakPointsPerMatch Tiebreaker = "POINTS_PER_MATCH"
	TiebreakPointsDiff     Tiebreaker = "POINTS_DIFF"
)

// DefaultTiebreakers is the canonical tiebreaker chain, used verbatim when a
// tournament has no chain configured or the configured one is malformed.
func DefaultTiebreakers() []Tiebreaker {
	return []Tiebreaker{
		TiebreakSetsDiff,
		TiebreakMatchesWon,
		TiebreakPointsPerMatch,
		TiebreakPointsDiff,
	}
}

// DefaultScoringRules is the fallback used when a tournament has no scoring
// configuration row: two points per win, one consolation point for losing
// with a set won, the canonical tiebreaker chain.
func DefaultScoringRules() ScoringRules {
	return ScoringRules{
		WinPoints:                2,
		WinWithoutGameLossPoints: 2,
		LossPoints:               0,
		LossWithGameWinPoints:    1,
		Tiebreakers:              DefaultTiebreakers(),
	}
}

// ScoringRules is the per-tournament scoring configuration. It is configured
// once and read-only during computation; calculators receive it as an explicit
// value, never as ambient state.
type ScoringRules struct {
	TournamentID             int          `json:"tournament_id"`
	WinPoints                int          `json:"win_points"`
	WinWithoutGameLossPoints int          `json:"win_without_game_loss_points"`
	LossPoints               int          `json:"loss_points"`
	LossWithGameWinPoints    int          `json:"loss_with_game_win_points"`
	Tiebreakers              []Tiebreaker `json:"tiebreakers,omitempty"`
}

// NormalizedTiebreakers returns the configured chain if it is a permutation of
// the four known metrics, otherwise the canonical default. The second result
// reports whether the configured chain was usable as-is.
func (r ScoringRules) NormalizedTiebreakers() ([]Tiebreaker, bool) {
	if len(r.Tiebreakers) != len(DefaultTiebreakers()) {
		return DefaultTiebreakers(), len(r.Tiebreakers) == 0
	}
	seen := make(map[Tiebreaker]bool, len(r.Tiebreakers))
	for _, tb := range r.Tiebreakers {
		switch tb {
		case TiebreakSetsDiff, TiebreakMatchesWon, TiebreakPointsPerMatch, TiebreakPointsDiff:
		default:
			return DefaultTiebreakers(), false
		}
		if seen[tb] {
			return DefaultTiebreakers(), false
		}
		seen[tb] = true
	}
	return r.Tiebreakers, true
}

// PlacementRange maps a run of final placements to a point award. Ranges are
// assumed non-overlapping; a nil PlaceTo collapses the range to PlaceFrom.
type PlacementRange struct {
	PlaceFrom int  `json:"place_from"`
	PlaceTo   *int `json:"place_to,omitempty"`
	Points    int  `json:"points"`
}

// Covers reports whether the 1-indexed place falls inside the range.
func (pr PlacementRange) Covers(place int) bool {
	to := pr.PlaceFrom
	if pr.PlaceTo != nil {
		to = *pr.PlaceTo
	}
	return pr.PlaceFrom <= place && place <= to
}
