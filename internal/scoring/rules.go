package scoring

import (
	"sort"
	"strings"
)

// Weight pairs a scoring category with its per-unit point value
type Weight struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

// defaultWeights is the standard league scoring table. Category ids use
// snake_case; each resolves to a stat-table column by title-casing its
// words, so "passing_yards" reads the "Passing Yards" column.
var defaultWeights = []Weight{
	{"passing_yards", 0.04},
	{"passing_tds", 4},
	{"interceptions", -1},
	{"rushing_yards", 0.1},
	{"rushing_tds", 6},
	{"receptions", 0.5},
	{"receiving_yards", 0.1},
	{"receiving_tds", 6},
	{"two_pt_conversions", 2},
	{"fumbles_lost", -2},
	{"offensive_fumble_return_tds", 6},
	{"yards_40_plus", 0},
	{"tds_40_plus", 0},
	{"fg_20", 3},
	{"fg_30", 3},
	{"fg_40", 3},
	{"fg_50", 4},
	{"fg_50_plus", 5},
	{"extra_point", 1},
}

// Rules is an immutable scoring table. Column matching is resolved once
// at construction, so scoring a season is a plain map lookup per category.
type Rules struct {
	weights map[string]float64 // match key -> weight
	display map[string]string  // category id -> stat-column spelling
	order   []string           // category ids, stable iteration order
}

// DefaultRules returns the standard league scoring table
func DefaultRules() *Rules {
	return NewRules(nil)
}

// NewRules builds a scoring table from the defaults plus overrides.
// Override keys may use either form ("passing_yards" or "Passing Yards").
// Ids outside the default set are added as new categories; they only
// score if a stat column of the same name exists.
func NewRules(overrides map[string]float64) *Rules {
	r := &Rules{
		weights: make(map[string]float64, len(defaultWeights)+len(overrides)),
		display: make(map[string]string, len(defaultWeights)+len(overrides)),
	}
	for _, w := range defaultWeights {
		r.add(w.Category, w.Value)
	}
	extras := make([]string, 0, len(overrides))
	for cat := range overrides {
		extras = append(extras, cat)
	}
	sort.Strings(extras)
	for _, cat := range extras {
		r.add(canonicalID(cat), overrides[cat])
	}
	return r
}

func (r *Rules) add(id string, value float64) {
	key := matchKey(id)
	if _, exists := r.weights[key]; !exists {
		r.order = append(r.order, id)
		r.display[id] = displayName(id)
	}
	r.weights[key] = value
}

// Weight reports the point value for a category, by id or column name
func (r *Rules) Weight(category string) (float64, bool) {
	v, ok := r.weights[matchKey(category)]
	return v, ok
}

// Categories returns the category ids in stable order
func (r *Rules) Categories() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// DisplayName returns the stat-column spelling of a category id
func (r *Rules) DisplayName(id string) string {
	return r.display[id]
}

// Weights returns a copy of the full table in Categories order
func (r *Rules) Weights() []Weight {
	out := make([]Weight, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, Weight{Category: id, Value: r.weights[matchKey(id)]})
	}
	return out
}

// Score computes fantasy points for one season's aggregated stat totals,
// keyed by raw column header. Categories without a matching column
// contribute nothing, and columns without a category are ignored.
func (r *Rules) Score(totals map[string]float64) float64 {
	folded := make(map[string]float64, len(totals))
	for col, v := range totals {
		folded[matchKey(col)] = v
	}
	var points float64
	for _, id := range r.order {
		key := matchKey(id)
		if v, ok := folded[key]; ok {
			points += r.weights[key] * v
		}
	}
	return points
}

// canonicalID folds a category name to snake_case
func canonicalID(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.ReplaceAll(s, "_", " "))), "_")
}

// matchKey folds a category id or column header to lower-cased words so
// "passing_yards" and "Passing Yards" compare equal
func matchKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.ReplaceAll(s, "_", " "))), " ")
}

// displayName rebuilds the stat-column spelling of a category id,
// title-casing each word ("fg_50_plus" -> "Fg 50 Plus")
func displayName(id string) string {
	words := strings.Split(id, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
