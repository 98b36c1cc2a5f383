package gamelogs

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/ffb-trends/internal/nfl"
)

// The seven position-group files, in the order tables are searched for a
// player. A player appearing in more than one group is served by the
// first match.
var tableFiles = []struct {
	Key  string
	File string
}{
	{"kickers", "Game_Logs_Kickers.csv"},
	{"punters", "Game_Logs_Punters.csv"},
	{"quarterbacks", "Game_Logs_Quarterback.csv"},
	{"running backs", "Game_Logs_Runningback.csv"},
	{"wide receivers and tight ends", "Game_Logs_Wide_Receiver_and_Tight_End.csv"},
	{"defensive linemen", "Game_Logs_Defensive_Lineman.csv"},
	{"offensive linemen", "Game_Logs_Offensive_Line.csv"},
}

// rosterFile carries bio attributes for enrichment and is optional
const rosterFile = "Basic_Stats.csv"

// identityColumnCount is the fixed prefix of identity/context columns in
// every game-log file; everything after it is a stat category.
const identityColumnCount = 12

// Loader reads the game-log dataset from a directory of CSV files
type Loader struct {
	logger *logrus.Logger
}

// NewLoader creates a loader. A nil logger falls back to the standard one.
func NewLoader(logger *logrus.Logger) *Loader {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Loader{logger: logger}
}

// LoadDirectory parses all seven position-group files from dir, in
// priority order. Every file must be present; a missing one fails the
// whole load with ErrMissingFile.
func (l *Loader) LoadDirectory(dir string) ([]*nfl.StatTable, error) {
	tables := make([]*nfl.StatTable, 0, len(tableFiles))
	for _, tf := range tableFiles {
		table, err := l.loadTable(tf.Key, filepath.Join(dir, tf.File))
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, nil
}

func (l *Loader) loadTable(key, path string) (*nfl.StatTable, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", nfl.ErrMissingFile, filepath.Base(path))
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, required := range []string{"Name", "Year", "Season", "Week"} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("%s: required column %q not found", filepath.Base(path), required)
		}
	}

	var statColumns []string
	if len(header) > identityColumnCount {
		statColumns = header[identityColumnCount:]
	}

	table := &nfl.StatTable{
		Name:    key,
		File:    filepath.Base(path),
		Columns: statColumns,
	}

	skipped := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			l.logger.WithField("file", table.File).Debugf("Skipping unreadable row: %v", err)
			skipped++
			continue
		}
		if len(rec) < identityColumnCount {
			l.logger.WithField("file", table.File).Debugf("Skipping short row with %d fields", len(rec))
			skipped++
			continue
		}
		year, err := strconv.Atoi(strings.TrimSpace(rec[idx["Year"]]))
		if err != nil {
			l.logger.WithField("file", table.File).Debugf("Skipping row with unparseable year %q", rec[idx["Year"]])
			skipped++
			continue
		}
		week, _ := strconv.Atoi(strings.TrimSpace(rec[idx["Week"]]))

		row := nfl.GameLog{
			PlayerID:    field(rec, idx, "Player Id"),
			Name:        strings.TrimSpace(rec[idx["Name"]]),
			Position:    field(rec, idx, "Position"),
			Year:        year,
			Season:      nfl.Season(field(rec, idx, "Season")),
			Week:        week,
			GameDate:    field(rec, idx, "Game Date"),
			HomeOrAway:  field(rec, idx, "Home or Away"),
			Opponent:    field(rec, idx, "Opponent"),
			Outcome:     field(rec, idx, "Outcome"),
			Score:       field(rec, idx, "Score"),
			GamesPlayed: field(rec, idx, "Games Played"),
			Stats:       make(map[string]string, len(statColumns)),
		}
		for i, col := range statColumns {
			pos := identityColumnCount + i
			if pos < len(rec) {
				row.Stats[col] = rec[pos]
			}
		}
		table.Rows = append(table.Rows, row)
	}

	if skipped > 0 {
		l.logger.WithFields(logrus.Fields{"table": key, "skipped": skipped}).Warn("Dropped malformed game log rows")
	}
	l.logger.WithFields(logrus.Fields{"table": key, "file": table.File, "rows": len(table.Rows)}).Info("Loaded game log table")
	return table, nil
}

// LoadRoster parses the optional Basic_Stats.csv roster file, keyed by
// normalized "Last, First" name. A missing file is not an error.
func (l *Loader) LoadRoster(dir string) (map[string]nfl.PlayerBio, error) {
	path := filepath.Join(dir, rosterFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.logger.WithField("file", rosterFile).Debug("No roster file, skipping bio enrichment")
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	if _, ok := idx["Name"]; !ok {
		return nil, fmt.Errorf("%s: required column %q not found", rosterFile, "Name")
	}

	roster := make(map[string]nfl.PlayerBio)
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			l.logger.WithField("file", rosterFile).Debugf("Skipping unreadable roster row: %v", err)
			continue
		}
		name := field(rec, idx, "Name")
		if name == "" {
			continue
		}
		roster[rosterKey(name)] = nfl.PlayerBio{
			PlayerID:      field(rec, idx, "Player Id"),
			Position:      field(rec, idx, "Position"),
			Number:        field(rec, idx, "Number"),
			CurrentStatus: field(rec, idx, "Current Status"),
			YearsPlayed:   field(rec, idx, "Years Played"),
		}
	}

	l.logger.WithFields(logrus.Fields{"file": rosterFile, "players": len(roster)}).Info("Loaded roster bios")
	return roster, nil
}

// field reads an optional column, returning "" when absent
func field(rec []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// rosterKey normalizes a roster name, which may come in either
// "Last, First" or "First Last" form
func rosterKey(name string) string {
	if strings.Contains(name, ",") {
		return nfl.NormalizeName(name)
	}
	if listed, err := nfl.LastFirst(name); err == nil {
		return nfl.NormalizeName(listed)
	}
	return nfl.NormalizeName(name)
}
