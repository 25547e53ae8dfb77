// Package results persists battle outcomes and per-unit combat records in
// SQLite so many runs can be compared after the fact.
package results

import "time"

// Models lists every table the store migrates.
var Models = []any{
	&BattleRecord{},
	&UnitRecord{},
}

// BattleRecord is one finished (or tick-limited) battle.
type BattleRecord struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index"`

	// Label groups battles that share a setup, e.g. the setup file name.
	Label string `gorm:"index;size:128"`
	// Seed is stored bit for bit as a signed integer; SQLite has no uint64.
	Seed int64

	Winner  string `gorm:"size:16"` // team name, "unknown" for draws and undecided
	Decided bool
	Draw    bool
	Ticks   int64
	SimTime float64

	RedInitial    int
	BlueInitial   int
	RedSurvivors  int
	BlueSurvivors int

	Units []UnitRecord `gorm:"foreignKey:BattleID;constraint:OnDelete:CASCADE"`
}

// UnitRecord is the combat record of one unit in a battle.
type UnitRecord struct {
	ID       uint `gorm:"primaryKey"`
	BattleID uint `gorm:"index"`

	Kind        string `gorm:"size:32;index"`
	Team        string `gorm:"size:16"`
	SpawnTick   int64
	DeathTick   int64 // -1 if the unit survived
	Attacks     int
	DamageDealt float64
	DamageTaken float64
	Kills       int
}

// SeedValue returns the seed as it was passed to the battle.
func (b BattleRecord) SeedValue() uint64 {
	return uint64(b.Seed)
}
