package systems

// Phase identifiers reported to a PhaseTimer during Sim.Step.
const (
	PhaseTargeting = "targeting"
	PhaseBehavior  = "behavior"
	PhaseCleanup   = "cleanup"
)

// PhaseTimer receives phase boundaries from Sim.Step. Starting a phase ends
// the previous one.
type PhaseTimer interface {
	StartPhase(phase string)
}

type nopTimer struct{}

func (nopTimer) StartPhase(string) {}

// SystemInfo describes a simulation phase for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this phase does
	Category    string // Grouping (e.g., "core", "ai")
}

// SystemRegistry holds metadata about all phases.
// This centralizes naming so the viewer and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known phases.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.Register(SystemInfo{ID: PhaseTargeting, Name: "Targeting", Description: "Validates and acquires targets", Category: "ai"})
	reg.Register(SystemInfo{ID: PhaseBehavior, Name: "Behavior", Description: "Avoidance, motion and state transitions", Category: "ai"})
	reg.Register(SystemInfo{ID: PhaseCleanup, Name: "Cleanup", Description: "Removes dead entities", Category: "core"})
	return reg
}

// Register adds a phase to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// GetName returns the display name for a phase ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// IDs returns all phase IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
