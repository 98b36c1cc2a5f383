package nfl

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Season labels the part of the schedule a game log belongs to
type Season string

const (
	SeasonRegular Season = "Regular Season"
	SeasonPost    Season = "Postseason"
	SeasonPre     Season = "Preseason"
)

// NoStat is the sentinel the game-log dataset uses for an empty stat cell
const NoStat = "--"

// GameLog represents one player-game row of a position-group stat table
type GameLog struct {
	PlayerID    string            `json:"player_id"`
	Name        string            `json:"name"` // "Last, First" as published
	Position    string            `json:"position,omitempty"`
	Year        int               `json:"year"`
	Season      Season            `json:"season"`
	Week        int               `json:"week"`
	GameDate    string            `json:"game_date,omitempty"`
	HomeOrAway  string            `json:"home_or_away,omitempty"`
	Opponent    string            `json:"opponent,omitempty"`
	Outcome     string            `json:"outcome,omitempty"`
	Score       string            `json:"score,omitempty"`
	GamesPlayed string            `json:"games_played,omitempty"`
	Stats       map[string]string `json:"stats"` // stat column -> raw cell, "--" means no data
}

// StatTable holds the parsed rows of one position-group game-log file
type StatTable struct {
	Name    string    `json:"name"` // position group, e.g. "quarterbacks"
	File    string    `json:"file"` // source filename
	Columns []string  `json:"columns"`
	Rows    []GameLog `json:"rows"`
}

// PlayerRows returns every row whose Name matches the normalized
// "Last, First" key, regardless of season or week.
func (t *StatTable) PlayerRows(key string) []GameLog {
	var rows []GameLog
	for _, r := range t.Rows {
		if NormalizeName(r.Name) == key {
			rows = append(rows, r)
		}
	}
	return rows
}

// YearPoints is one season's fantasy-point total for a player
type YearPoints struct {
	Year   int     `json:"year"`
	Points float64 `json:"points"`
}

// PlayerBio carries roster attributes from Basic_Stats.csv
type PlayerBio struct {
	PlayerID      string `json:"player_id"`
	Position      string `json:"position,omitempty"`
	Number        string `json:"number,omitempty"`
	CurrentStatus string `json:"current_status,omitempty"`
	YearsPlayed   string `json:"years_played,omitempty"`
}

// PlayerProfile is a registered player together with the scored
// points-by-year series computed from the stat tables
type PlayerProfile struct {
	ID             uuid.UUID    `json:"id"`
	Name           string       `json:"name"`            // as supplied, "First Last"
	NormalizedName string       `json:"normalized_name"` // "Last, First" lookup key
	SourceTable    string       `json:"source_table,omitempty"`
	Series         []YearPoints `json:"points_by_year"`
	Bio            *PlayerBio   `json:"bio,omitempty"`
}

// CloneSeries returns a copy of the profile's series so callers cannot
// mutate registry state through it.
func (p *PlayerProfile) CloneSeries() []YearPoints {
	if p.Series == nil {
		return nil
	}
	out := make([]YearPoints, len(p.Series))
	copy(out, p.Series)
	return out
}

// LastFirst converts a "First Last" display name into the "Last, First"
// convention the stat tables use. Everything after the first space counts
// as the last name, so suffixes survive ("Odell Beckham Jr." becomes
// "Beckham Jr., Odell"). Names without both parts are rejected.
func LastFirst(name string) (string, error) {
	first, rest, found := strings.Cut(strings.TrimSpace(name), " ")
	if !found || first == "" || strings.TrimSpace(rest) == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidPlayerName, name)
	}
	return strings.TrimSpace(rest) + ", " + first, nil
}

// NormalizeName upper-cases and trims a name for case-insensitive matching
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
