package game

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/config"
)

// Placement is a resolved setup entry ready to spawn.
type Placement struct {
	Kind     components.Kind
	Team     components.Team
	Position r2.Vec
}

// Setup lists the units a battle starts with.
type Setup struct {
	Units []config.SetupEntry `yaml:"units"`
}

// SetupFromConfig returns the configured default skirmish.
func SetupFromConfig(cfg *config.Config) Setup {
	units := make([]config.SetupEntry, len(cfg.Battle.DefaultSetup))
	copy(units, cfg.Battle.DefaultSetup)
	return Setup{Units: units}
}

// LoadSetup reads a battle setup from a YAML file.
func LoadSetup(path string) (Setup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Setup{}, fmt.Errorf("reading setup file: %w", err)
	}
	var s Setup
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Setup{}, fmt.Errorf("parsing setup file: %w", err)
	}
	if _, err := s.Placements(); err != nil {
		return Setup{}, fmt.Errorf("setup %s: %w", path, err)
	}
	return s, nil
}

// WriteYAML writes the setup to a YAML file.
func (s Setup) WriteYAML(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling setup: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing setup file: %w", err)
	}
	return nil
}

// Add appends a unit to the setup.
func (s *Setup) Add(kind components.Kind, team components.Team, pos r2.Vec) {
	s.Units = append(s.Units, config.SetupEntry{
		Unit: kind.String(),
		Team: team.String(),
		X:    pos.X,
		Y:    pos.Y,
	})
}

// Placements resolves unit and team names. It fails on the first entry that
// names an unknown unit type or team.
func (s Setup) Placements() ([]Placement, error) {
	out := make([]Placement, 0, len(s.Units))
	for i, u := range s.Units {
		kind, err := components.ParseKind(u.Unit)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		team, err := components.ParseTeam(u.Team)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out = append(out, Placement{Kind: kind, Team: team, Position: r2.Vec{X: u.X, Y: u.Y}})
	}
	return out, nil
}

// TeamCounts returns the number of entries per team.
func (s Setup) TeamCounts() [components.TeamCount]int {
	var counts [components.TeamCount]int
	for _, u := range s.Units {
		if team, err := components.ParseTeam(u.Team); err == nil {
			counts[team]++
		}
	}
	return counts
}
