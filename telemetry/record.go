package telemetry

import (
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/skirmish/components"
)

// CombatRecord tracks one unit's statistics over its lifetime.
type CombatRecord struct {
	Entity    ecs.Entity
	Kind      components.Kind
	Team      components.Team
	SpawnTick int64
	DeathTick int64 // -1 while alive

	Attacks     int
	DamageDealt float64
	DamageTaken float64
	Kills       int

	lastHitBy ecs.Entity
}

// Alive reports whether the unit has not died yet.
func (r *CombatRecord) Alive() bool {
	return r.DeathTick < 0
}

// RecordBook keeps a CombatRecord for every unit spawned in a battle.
// Records outlive their units so a finished battle can be summarized.
type RecordBook struct {
	records map[ecs.Entity]*CombatRecord
	order   []ecs.Entity
}

// NewRecordBook creates an empty record book.
func NewRecordBook() *RecordBook {
	return &RecordBook{records: make(map[ecs.Entity]*CombatRecord)}
}

// Record applies an event to the affected records.
func (b *RecordBook) Record(ev Event) {
	switch ev.Type {
	case EventSpawn:
		if _, ok := b.records[ev.Entity]; ok {
			return
		}
		b.records[ev.Entity] = &CombatRecord{
			Entity:    ev.Entity,
			Kind:      ev.Kind,
			Team:      ev.Team,
			SpawnTick: ev.Tick,
			DeathTick: -1,
		}
		b.order = append(b.order, ev.Entity)
	case EventAttack:
		if r := b.records[ev.Entity]; r != nil {
			r.Attacks++
			r.DamageDealt += ev.Amount
		}
		if r := b.records[ev.Target]; r != nil {
			r.DamageTaken += ev.Amount
			r.lastHitBy = ev.Entity
		}
	case EventDeath:
		r := b.records[ev.Entity]
		if r == nil || !r.Alive() {
			return
		}
		r.DeathTick = ev.Tick
		if killer := b.records[r.lastHitBy]; killer != nil && r.lastHitBy != (ecs.Entity{}) {
			killer.Kills++
		}
	}
}

// Get returns the record for a unit, or nil if it was never seen.
func (b *RecordBook) Get(e ecs.Entity) *CombatRecord {
	return b.records[e]
}

// All returns records in spawn order.
func (b *RecordBook) All() []*CombatRecord {
	out := make([]*CombatRecord, 0, len(b.order))
	for _, e := range b.order {
		out = append(out, b.records[e])
	}
	return out
}

// Top returns up to n records ranked by kills, then damage dealt.
func (b *RecordBook) Top(n int) []*CombatRecord {
	all := b.All()
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Kills != all[j].Kills {
			return all[i].Kills > all[j].Kills
		}
		return all[i].DamageDealt > all[j].DamageDealt
	})
	if n < len(all) {
		all = all[:n]
	}
	return all
}

// Count returns the number of tracked units.
func (b *RecordBook) Count() int {
	return len(b.order)
}

// Reset forgets all records.
func (b *RecordBook) Reset() {
	clear(b.records)
	b.order = b.order[:0]
}
