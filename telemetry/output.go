package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/skirmish/config"
)

// csvSink is an append-only CSV file that writes its header once.
type csvSink struct {
	name   string
	file   *os.File
	header bool
}

func openSink(dir, name string) (*csvSink, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvSink{name: name, file: f}, nil
}

func writeRows[T any](s *csvSink, rows []T) error {
	var err error
	if !s.header {
		err = gocsv.Marshal(rows, s.file)
		s.header = err == nil
	} else {
		err = gocsv.MarshalWithoutHeaders(rows, s.file)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", s.name, err)
	}
	return nil
}

// UnitRow is the CSV form of a CombatRecord.
type UnitRow struct {
	Kind        string  `csv:"kind"`
	Team        string  `csv:"team"`
	SpawnTick   int64   `csv:"spawn_tick"`
	DeathTick   int64   `csv:"death_tick"`
	Attacks     int     `csv:"attacks"`
	DamageDealt float64 `csv:"damage_dealt"`
	DamageTaken float64 `csv:"damage_taken"`
	Kills       int     `csv:"kills"`
}

// OutputManager writes battle output into a directory. A nil manager
// discards everything, so callers need not check whether output is enabled.
type OutputManager struct {
	dir       string
	telemetry *csvSink
	perf      *csvSink
	bookmarks *csvSink
}

// NewOutputManager creates the output directory and its CSV files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	for _, s := range []struct {
		dst  **csvSink
		name string
	}{
		{&om.telemetry, "telemetry.csv"},
		{&om.perf, "perf.csv"},
		{&om.bookmarks, "bookmarks.csv"},
	} {
		sink, err := openSink(dir, s.name)
		if err != nil {
			om.Close()
			return nil, err
		}
		*s.dst = sink
	}
	return om, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry appends a window stats row to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return writeRows(om.telemetry, []WindowStats{stats})
}

// WritePerf appends a performance row to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int64) error {
	if om == nil {
		return nil
	}
	return writeRows(om.perf, []PerfStatsCSV{stats.ToCSV(windowEnd)})
}

// WriteBookmark appends a bookmark row to bookmarks.csv.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	return writeRows(om.bookmarks, []Bookmark{b})
}

// WriteUnits writes units.csv with one row per record.
func (om *OutputManager) WriteUnits(records []*CombatRecord) error {
	if om == nil {
		return nil
	}
	rows := make([]UnitRow, len(records))
	for i, r := range records {
		rows[i] = UnitRow{
			Kind:        r.Kind.String(),
			Team:        r.Team.String(),
			SpawnTick:   r.SpawnTick,
			DeathTick:   r.DeathTick,
			Attacks:     r.Attacks,
			DamageDealt: r.DamageDealt,
			DamageTaken: r.DamageTaken,
			Kills:       r.Kills,
		}
	}
	f, err := os.Create(filepath.Join(om.dir, "units.csv"))
	if err != nil {
		return fmt.Errorf("creating units.csv: %w", err)
	}
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		f.Close()
		return fmt.Errorf("writing units.csv: %w", err)
	}
	return f.Close()
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var errs []error
	for _, s := range []*csvSink{om.telemetry, om.perf, om.bookmarks} {
		if s != nil {
			errs = append(errs, s.file.Close())
		}
	}
	return errors.Join(errs...)
}
