package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/ffb-trends/internal/charts"
	"github.com/jstittsworth/ffb-trends/internal/gamelogs"
	"github.com/jstittsworth/ffb-trends/internal/nfl"
	"github.com/jstittsworth/ffb-trends/internal/scoring"
)

// PlayerRegistry tracks a roster of players and keeps each one's
// points-by-year series consistent with the active scoring rules
type PlayerRegistry struct {
	logger *logrus.Logger
	opts   scoring.Options

	mu      sync.Mutex
	tables  []*nfl.StatTable
	roster  map[string]nfl.PlayerBio
	rules   *scoring.Rules
	players []*nfl.PlayerProfile          // insertion order
	byName  map[string]*nfl.PlayerProfile // normalized "Last, First" -> profile
}

// NewPlayerRegistry creates a registry with the given scoring rules and
// season options. Nil rules mean the default table.
func NewPlayerRegistry(rules *scoring.Rules, opts scoring.Options, logger *logrus.Logger) *PlayerRegistry {
	if rules == nil {
		rules = scoring.DefaultRules()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &PlayerRegistry{
		logger: logger,
		opts:   opts,
		rules:  rules,
		byName: make(map[string]*nfl.PlayerProfile),
	}
}

// LoadGameLogs reads the seven position-group files plus the optional
// roster file from dir. Players registered before a reload are rescored
// against the new tables; if any of them fails, the registry keeps its
// previous tables.
func (r *PlayerRegistry) LoadGameLogs(dir string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	loader := gamelogs.NewLoader(r.logger)
	tables, err := loader.LoadDirectory(dir)
	if err != nil {
		return err
	}
	roster, err := loader.LoadRoster(dir)
	if err != nil {
		r.logger.Warnf("Roster load failed, continuing without bios: %v", err)
		roster = nil
	}
	return r.installTablesLocked(tables, roster)
}

// SetStatTables installs caller-built stat tables, with the same rescore
// semantics as LoadGameLogs
func (r *PlayerRegistry) SetStatTables(tables []*nfl.StatTable) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.installTablesLocked(tables, nil)
}

func (r *PlayerRegistry) installTablesLocked(tables []*nfl.StatTable, roster map[string]nfl.PlayerBio) error {
	recomputed, err := r.recomputeLocked(tables, r.rules)
	if err != nil {
		return fmt.Errorf("stat tables unchanged: %w", err)
	}
	r.tables = tables
	if roster != nil {
		r.roster = roster
	}
	for i, p := range r.players {
		p.Series = recomputed[i]
	}
	return nil
}

// AddPlayer registers a player by display name ("First Last") and
// computes their points-by-year series. Adding a name that is already
// registered is a no-op returning the existing profile.
func (r *PlayerRegistry) AddPlayer(name string) (nfl.PlayerProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.addLocked(name)
	if err != nil {
		return nfl.PlayerProfile{}, err
	}
	return snapshot(p), nil
}

// AddPlayers registers each name in order, skipping the ones that fail.
// The returned profiles cover the successes; the error joins every
// per-player failure and is nil when all names were added.
func (r *PlayerRegistry) AddPlayers(names []string) ([]nfl.PlayerProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profiles := make([]nfl.PlayerProfile, 0, len(names))
	var errs []error
	for _, name := range names {
		p, err := r.addLocked(name)
		if err != nil {
			r.logger.WithField("player", name).Warnf("Skipping player: %v", err)
			errs = append(errs, err)
			continue
		}
		profiles = append(profiles, snapshot(p))
	}
	return profiles, errors.Join(errs...)
}

// RemovePlayer drops a registered player. Removing an unknown or
// malformed name is a harmless no-op returning false.
func (r *PlayerRegistry) RemovePlayer(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	listed, err := nfl.LastFirst(name)
	if err != nil {
		return false
	}
	key := nfl.NormalizeName(listed)
	p, ok := r.byName[key]
	if !ok {
		return false
	}
	delete(r.byName, key)
	for i, q := range r.players {
		if q == p {
			r.players = append(r.players[:i], r.players[i+1:]...)
			break
		}
	}
	r.logger.WithField("player", p.Name).Info("Removed player")
	return true
}

// ChangeScoringRules swaps the scoring table and rescores every
// registered player. The swap is all-or-nothing: if any player fails to
// rescore, the registry keeps its previous rules and series. Nil rules
// mean the default table.
func (r *PlayerRegistry) ChangeScoringRules(rules *scoring.Rules) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rules == nil {
		rules = scoring.DefaultRules()
	}
	recomputed, err := r.recomputeLocked(r.tables, rules)
	if err != nil {
		return fmt.Errorf("scoring rules unchanged: %w", err)
	}
	r.rules = rules
	for i, p := range r.players {
		p.Series = recomputed[i]
	}
	r.logger.WithField("players", len(r.players)).Info("Scoring rules changed, series recomputed")
	return nil
}

// GetPlayers returns a snapshot of every registered profile in insertion
// order. Mutating the result does not affect the registry.
func (r *PlayerRegistry) GetPlayers() []nfl.PlayerProfile {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]nfl.PlayerProfile, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, snapshot(p))
	}
	return out
}

// RenderTrends draws the points-by-year chart for the named players,
// registering any that are missing first. Empty names means every
// registered player.
func (r *PlayerRegistry) RenderTrends(names []string, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	profiles, err := r.resolveLocked(names)
	if err != nil {
		return err
	}
	series := make([]charts.Series, 0, len(profiles))
	for _, p := range profiles {
		series = append(series, charts.Series{Label: p.Name, Points: p.CloneSeries()})
	}
	if err := charts.RenderTrend(series, path); err != nil {
		return err
	}
	r.logger.WithFields(logrus.Fields{"players": len(series), "path": path}).Info("Rendered trend chart")
	return nil
}

// Summaries computes trend statistics for the named players, registering
// any that are missing first. Empty names means every registered player.
func (r *PlayerRegistry) Summaries(names []string) ([]scoring.TrendSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profiles, err := r.resolveLocked(names)
	if err != nil {
		return nil, err
	}
	out := make([]scoring.TrendSummary, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, scoring.Summarize(p.Name, p.Series))
	}
	return out, nil
}

func (r *PlayerRegistry) addLocked(name string) (*nfl.PlayerProfile, error) {
	if r.tables == nil {
		return nil, fmt.Errorf("%w: load game logs first", nfl.ErrDataNotLoaded)
	}
	listed, err := nfl.LastFirst(name)
	if err != nil {
		return nil, err
	}
	key := nfl.NormalizeName(listed)
	if existing, ok := r.byName[key]; ok {
		r.logger.WithField("player", existing.Name).Debug("Player already registered")
		return existing, nil
	}

	series, source, err := scoring.CalculatePoints(name, r.tables, r.rules, r.opts)
	if err != nil {
		return nil, err
	}
	profile := &nfl.PlayerProfile{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(name),
		NormalizedName: listed,
		SourceTable:    source,
		Series:         series,
	}
	if bio, ok := r.roster[key]; ok {
		profile.Bio = &bio
	}
	r.players = append(r.players, profile)
	r.byName[key] = profile
	r.logger.WithFields(logrus.Fields{
		"player":  profile.Name,
		"table":   source,
		"seasons": len(series),
	}).Info("Added player")
	return profile, nil
}

// resolveLocked maps names to registered profiles, adding any that are
// missing. Empty names means every registered player.
func (r *PlayerRegistry) resolveLocked(names []string) ([]*nfl.PlayerProfile, error) {
	if len(names) == 0 {
		return append([]*nfl.PlayerProfile(nil), r.players...), nil
	}
	out := make([]*nfl.PlayerProfile, 0, len(names))
	for _, name := range names {
		p, err := r.addLocked(name)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// recomputeLocked scores every registered player against the given
// tables and rules without touching registry state, so callers can swap
// atomically once all players succeed.
func (r *PlayerRegistry) recomputeLocked(tables []*nfl.StatTable, rules *scoring.Rules) ([][]nfl.YearPoints, error) {
	if len(r.players) == 0 {
		return nil, nil
	}
	if tables == nil {
		return nil, nfl.ErrDataNotLoaded
	}
	out := make([][]nfl.YearPoints, len(r.players))
	for i, p := range r.players {
		series, _, err := scoring.CalculatePoints(p.Name, tables, rules, r.opts)
		if err != nil {
			return nil, fmt.Errorf("failed to rescore %s: %w", p.Name, err)
		}
		out[i] = series
	}
	return out, nil
}

func snapshot(p *nfl.PlayerProfile) nfl.PlayerProfile {
	out := *p
	out.Series = p.CloneSeries()
	if p.Bio != nil {
		bio := *p.Bio
		out.Bio = &bio
	}
	return out
}
