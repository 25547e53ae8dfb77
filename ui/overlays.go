package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID names a toggleable debug overlay.
type OverlayID string

const (
	OverlayTargets     OverlayID = "targets"
	OverlayRanges      OverlayID = "ranges"
	OverlayBattleStats OverlayID = "battle_stats"
	OverlayVelocity    OverlayID = "velocity"
	OverlayAvoidance   OverlayID = "avoidance"
	OverlayPerf        OverlayID = "perf"
	OverlayInspector   OverlayID = "inspector"
)

// OverlayDescriptor describes one overlay and the key that toggles it.
type OverlayDescriptor struct {
	ID          OverlayID
	Name        string
	Description string
	Key         int32  // 0 = toggled from the panel only
	KeyLabel    string // shown next to the name, e.g. "T"
	Category    string // panel group: combat, motion, debug
	Exclusive   []OverlayID
}

// defaultOverlays are registered by NewOverlayRegistry, in panel order.
var defaultOverlays = []OverlayDescriptor{
	{ID: OverlayTargets, Name: "Targets", Description: "Line from each unit to its current target",
		Key: rl.KeyT, KeyLabel: "T", Category: "combat"},
	{ID: OverlayRanges, Name: "Attack Ranges", Description: "Attack range circle around each live unit",
		Key: rl.KeyR, KeyLabel: "R", Category: "combat"},
	{ID: OverlayBattleStats, Name: "Battle Stats", Description: "Latest telemetry window and bookmarks",
		Key: rl.KeyB, KeyLabel: "B", Category: "combat"},

	// Velocity and avoidance draw the same arrows; only one at a time.
	{ID: OverlayVelocity, Name: "Velocity", Description: "Applied velocity of each moving unit",
		Key: rl.KeyV, KeyLabel: "V", Category: "motion", Exclusive: []OverlayID{OverlayAvoidance}},
	{ID: OverlayAvoidance, Name: "Avoidance", Description: "Desired velocity against applied velocity",
		Key: rl.KeyA, KeyLabel: "A", Category: "motion", Exclusive: []OverlayID{OverlayVelocity}},

	{ID: OverlayPerf, Name: "Performance", Description: "Per-phase tick timings",
		Key: rl.KeyP, KeyLabel: "P", Category: "debug"},
	{ID: OverlayInspector, Name: "Inspector", Description: "Details of the unit under the cursor",
		Key: rl.KeyI, KeyLabel: "I", Category: "debug"},
}

type overlayEntry struct {
	desc OverlayDescriptor
	on   bool
}

// OverlayRegistry tracks which overlays are on.
type OverlayRegistry struct {
	entries []overlayEntry
	index   map[OverlayID]int
}

// NewOverlayRegistry returns a registry holding the default overlays, all off.
func NewOverlayRegistry() *OverlayRegistry {
	r := &OverlayRegistry{index: make(map[OverlayID]int, len(defaultOverlays))}
	for _, d := range defaultOverlays {
		r.Register(d)
	}
	return r
}

// Register adds an overlay, switched off. Registering an existing ID
// replaces its descriptor.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	if i, ok := r.index[desc.ID]; ok {
		r.entries[i] = overlayEntry{desc: desc}
		return
	}
	r.index[desc.ID] = len(r.entries)
	r.entries = append(r.entries, overlayEntry{desc: desc})
}

func (r *OverlayRegistry) entry(id OverlayID) *overlayEntry {
	i, ok := r.index[id]
	if !ok {
		return nil
	}
	return &r.entries[i]
}

// Toggle flips an overlay and returns its new state. Unknown IDs stay off.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	e := r.entry(id)
	if e == nil {
		return false
	}
	r.SetEnabled(id, !e.on)
	return e.on
}

// SetEnabled switches an overlay on or off. Turning one on switches off
// the overlays it excludes.
func (r *OverlayRegistry) SetEnabled(id OverlayID, on bool) {
	e := r.entry(id)
	if e == nil {
		return
	}
	e.on = on
	if !on {
		return
	}
	for _, other := range e.desc.Exclusive {
		if o := r.entry(other); o != nil {
			o.on = false
		}
	}
}

// IsEnabled reports whether an overlay is on.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	e := r.entry(id)
	return e != nil && e.on
}

// ByCategory returns the overlays of one panel group in registration order.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var out []OverlayDescriptor
	for _, e := range r.entries {
		if e.desc.Category == category {
			out = append(out, e.desc)
		}
	}
	return out
}

// Categories lists the panel groups in the order they first appear.
func (r *OverlayRegistry) Categories() []string {
	var cats []string
	for i, e := range r.entries {
		first := true
		for _, prev := range r.entries[:i] {
			if prev.desc.Category == e.desc.Category {
				first = false
				break
			}
		}
		if first {
			cats = append(cats, e.desc.Category)
		}
	}
	return cats
}

// HandleKeyPress toggles the overlay bound to key and reports which one
// changed and its new state. ok is false when no overlay uses the key.
func (r *OverlayRegistry) HandleKeyPress(key int32) (id OverlayID, on, ok bool) {
	if key == 0 {
		return "", false, false
	}
	for _, e := range r.entries {
		if e.desc.Key == key {
			return e.desc.ID, r.Toggle(e.desc.ID), true
		}
	}
	return "", false, false
}

// Keys returns the toggle keys to poll each frame.
func (r *OverlayRegistry) Keys() []int32 {
	var keys []int32
	for _, e := range r.entries {
		if e.desc.Key != 0 {
			keys = append(keys, e.desc.Key)
		}
	}
	return keys
}
