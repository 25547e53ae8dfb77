package results

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/game"
	"github.com/pthm-cable/skirmish/telemetry"
)

// Store is a results database.
type Store struct {
	db   *gorm.DB
	path string
}

// Open opens (creating if needed) the SQLite database at path and migrates
// the schema. An empty path opens a private in-memory database.
func Open(path string) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        500,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening results db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("opening results db: %w", err)
	}
	// Every pooled connection to :memory: would get its own empty database.
	if path == "" {
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(Models...); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrating results db: %w", err)
	}
	slog.Debug("results db ready", "path", dsn)
	return &Store{db: db, path: path}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NewBattleRecord converts a battle outcome and its unit records into rows.
func NewBattleRecord(label string, seed uint64, res game.Result, units []*telemetry.CombatRecord) *BattleRecord {
	rec := &BattleRecord{
		Label:         label,
		Seed:          int64(seed),
		Winner:        res.Winner.String(),
		Decided:       res.Decided,
		Draw:          res.Draw(),
		Ticks:         res.Ticks,
		SimTime:       res.SimTime,
		RedInitial:    res.Initial[components.TeamRed],
		BlueInitial:   res.Initial[components.TeamBlue],
		RedSurvivors:  res.Survivors[components.TeamRed],
		BlueSurvivors: res.Survivors[components.TeamBlue],
		Units:         make([]UnitRecord, 0, len(units)),
	}
	for _, u := range units {
		rec.Units = append(rec.Units, UnitRecord{
			Kind:        u.Kind.String(),
			Team:        u.Team.String(),
			SpawnTick:   u.SpawnTick,
			DeathTick:   u.DeathTick,
			Attacks:     u.Attacks,
			DamageDealt: u.DamageDealt,
			DamageTaken: u.DamageTaken,
			Kills:       u.Kills,
		})
	}
	return rec
}

// SaveBattle stores a finished battle with all of its unit records.
func (s *Store) SaveBattle(label string, seed uint64, b *game.Battle) (*BattleRecord, error) {
	if b == nil {
		return nil, errors.New("saving battle: nil battle")
	}
	rec := NewBattleRecord(label, seed, b.Outcome(), b.Records().All())
	if err := s.db.Create(rec).Error; err != nil {
		return nil, fmt.Errorf("saving battle: %w", err)
	}
	return rec, nil
}

// SaveRuns stores every successful run of a batch in one transaction and
// returns how many were written. Failed runs are skipped.
func (s *Store) SaveRuns(label string, runs []game.BatchRun) (int, error) {
	saved := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, r := range runs {
			if r.Err != nil || r.Battle == nil {
				continue
			}
			rec := NewBattleRecord(label, r.Seed, r.Result, r.Battle.Records().All())
			if err := tx.Create(rec).Error; err != nil {
				return fmt.Errorf("run %d: %w", r.Index, err)
			}
			saved++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("saving runs: %w", err)
	}
	return saved, nil
}

// Battle loads one battle with its units.
func (s *Store) Battle(id uint) (*BattleRecord, error) {
	var rec BattleRecord
	if err := s.db.Preload("Units").First(&rec, id).Error; err != nil {
		return nil, fmt.Errorf("loading battle %d: %w", id, err)
	}
	return &rec, nil
}

// Recent returns the last n battles, newest first, without their units.
func (s *Store) Recent(n int) ([]BattleRecord, error) {
	var recs []BattleRecord
	if err := s.db.Order("id DESC").Limit(n).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("listing battles: %w", err)
	}
	return recs, nil
}

// WinCount is the number of battles a team won under a label.
type WinCount struct {
	Winner string
	Wins   int
}

// WinCounts returns decided, non-draw wins per team for label. An empty
// label counts every battle.
func (s *Store) WinCounts(label string) (map[string]int, error) {
	q := s.db.Model(&BattleRecord{}).
		Select("winner, count(*) AS wins").
		Where("decided = ? AND draw = ?", true, false)
	if label != "" {
		q = q.Where("label = ?", label)
	}
	var rows []WinCount
	if err := q.Group("winner").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("counting wins: %w", err)
	}
	wins := make(map[string]int, len(rows))
	for _, r := range rows {
		wins[r.Winner] = r.Wins
	}
	return wins, nil
}

// KindSummary aggregates unit records of one kind.
type KindSummary struct {
	Kind           string
	Units          int
	Kills          int
	AvgDamageDealt float64
	SurvivalRate   float64
}

// KindSummaries aggregates unit performance per kind for label, sorted by
// kind. An empty label covers every battle.
func (s *Store) KindSummaries(label string) ([]KindSummary, error) {
	q := s.db.Model(&UnitRecord{}).
		Select("unit_records.kind AS kind, " +
			"count(*) AS units, " +
			"sum(unit_records.kills) AS kills, " +
			"avg(unit_records.damage_dealt) AS avg_damage_dealt, " +
			"avg(CASE WHEN unit_records.death_tick < 0 THEN 1.0 ELSE 0.0 END) AS survival_rate")
	if label != "" {
		q = q.Joins("JOIN battle_records ON battle_records.id = unit_records.battle_id").
			Where("battle_records.label = ?", label)
	}
	var out []KindSummary
	if err := q.Group("unit_records.kind").Order("unit_records.kind").Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("summarizing kinds: %w", err)
	}
	return out, nil
}

// Prune deletes all but the newest keep battles and their units.
func (s *Store) Prune(keep int) (int64, error) {
	var deleted int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		newest := tx.Model(&BattleRecord{}).Select("id").Order("id DESC").Limit(keep)
		if err := tx.Where("battle_id NOT IN (?)", newest).Delete(&UnitRecord{}).Error; err != nil {
			return err
		}
		res := tx.Where("id NOT IN (?)", newest).Delete(&BattleRecord{})
		deleted = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, fmt.Errorf("pruning battles: %w", err)
	}
	return deleted, nil
}

// Dump writes a consistent copy of the database to path with VACUUM INTO.
// It is how an in-memory store gets persisted.
func (s *Store) Dump(path string) error {
	if path == "" {
		return errors.New("dump path not set")
	}
	if err := s.db.Exec("VACUUM INTO ?", path).Error; err != nil {
		return fmt.Errorf("dumping results db: %w", err)
	}
	return nil
}
