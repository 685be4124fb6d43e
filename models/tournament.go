package models

import "time"

type Tournament struct {
	ID        int       `json:"id"`
	LeagueID  int       `json:"league_id"`
	SeasonID  int       `json:"season_id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
}
