package scoring

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jstittsworth/ffb-trends/internal/nfl"
)

// Options control which parts of the schedule count toward yearly totals.
// The zero value keeps regular-season games only and drops week 17, the
// week most leagues have already finished by.
type Options struct {
	IncludePostseason bool `json:"include_postseason"`
	KeepWeek17        bool `json:"keep_week17"`
}

// Columns that record a single longest play rather than an additive
// total. Summing them across games would inflate yearly numbers, so they
// are dropped before aggregation.
var nonAdditiveColumns = map[string]struct{}{
	"longest reception":   {},
	"longest rushing run": {},
}

// CalculatePoints scores a player's career against the given rules.
//
// The name is converted to the tables' "Last, First" form and looked up
// in table order; the first table containing the player serves the whole
// series. Rows are filtered by season and week, stat cells are summed per
// year, and each year's totals are scored. The returned series is sorted
// by ascending year and may be empty when every row was filtered out.
// The second return value names the table the player was found in.
func CalculatePoints(name string, tables []*nfl.StatTable, rules *Rules, opts Options) ([]nfl.YearPoints, string, error) {
	listed, err := nfl.LastFirst(name)
	if err != nil {
		return nil, "", err
	}
	key := nfl.NormalizeName(listed)

	var rows []nfl.GameLog
	var source string
	for _, t := range tables {
		if found := t.PlayerRows(key); len(found) > 0 {
			rows, source = found, t.Name
			break
		}
	}
	if rows == nil {
		return nil, "", fmt.Errorf("%w: %s", nfl.ErrPlayerNotFound, name)
	}
	if rules == nil {
		rules = DefaultRules()
	}

	totals := make(map[int]map[string]float64)
	for _, row := range rows {
		if row.Season != nfl.SeasonRegular && !(opts.IncludePostseason && row.Season == nfl.SeasonPost) {
			continue
		}
		if !opts.KeepWeek17 && row.Week == 17 {
			continue
		}
		year := totals[row.Year]
		if year == nil {
			year = make(map[string]float64)
			totals[row.Year] = year
		}
		for col, cell := range row.Stats {
			if _, skip := nonAdditiveColumns[matchKey(col)]; skip {
				continue
			}
			year[col] += parseStat(cell)
		}
	}

	years := make([]int, 0, len(totals))
	for y := range totals {
		years = append(years, y)
	}
	sort.Ints(years)

	series := make([]nfl.YearPoints, 0, len(years))
	for _, y := range years {
		series = append(series, nfl.YearPoints{Year: y, Points: rules.Score(totals[y])})
	}
	return series, source, nil
}

// parseStat converts a raw stat cell to a number. The dataset's "--"
// sentinel and anything else unparseable count as zero.
func parseStat(cell string) float64 {
	cell = strings.TrimSpace(cell)
	if cell == "" || cell == nfl.NoStat {
		return 0
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0
	}
	return v
}
