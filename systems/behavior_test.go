package systems

import (
	"testing"

	"github.com/pthm-cable/skirmish/components"
)

func TestNextStateTotal(t *testing.T) {
	for state := components.State(0); state < components.StateCount+2; state++ {
		for mask := 0; mask < 1<<6; mask++ {
			c := Conditions{
				Dead:      mask&1 != 0,
				HasTarget: mask&2 != 0,
				InRange:   mask&4 != 0,
				Moving:    mask&8 != 0,
				Settled:   mask&16 != 0,
				TimerDone: mask&32 != 0,
			}
			next := NextState(state, c)
			if next >= components.StateCount {
				t.Fatalf("NextState(%s, %+v) = %d, outside the state set", state, c, next)
			}
			if c.Dead && next != components.StateDead {
				t.Errorf("NextState(%s, %+v) = %s, want dead", state, c, next)
			}
			if state == components.StateDead && next != components.StateDead {
				t.Errorf("dead is terminal, got %s", next)
			}
		}
	}
}

func TestNextStateTable(t *testing.T) {
	const (
		idle   = components.StateIdle
		move   = components.StateMove
		reload = components.StateReload
		attack = components.StateAttack
		dead   = components.StateDead
	)

	tests := []struct {
		name  string
		state components.State
		c     Conditions
		want  components.State
	}{
		{"idle stays idle", idle, Conditions{Settled: true}, idle},
		{"idle pushed into move", idle, Conditions{Moving: true}, move},
		{"idle target out of range", idle, Conditions{HasTarget: true, Settled: true}, move},
		{"idle target in range", idle, Conditions{HasTarget: true, InRange: true, Settled: true}, reload},
		{"idle moving beats in range", idle, Conditions{HasTarget: true, InRange: true, Moving: true}, move},

		{"move keeps moving", move, Conditions{Moving: true}, move},
		{"move between thresholds", move, Conditions{}, move},
		{"move settles without target", move, Conditions{Settled: true}, idle},
		{"move settles in range", move, Conditions{HasTarget: true, InRange: true, Settled: true}, reload},
		{"move blocked short of range", move, Conditions{HasTarget: true, Settled: true}, move},

		{"reload waiting", reload, Conditions{HasTarget: true, InRange: true}, reload},
		{"reload done in range", reload, Conditions{HasTarget: true, InRange: true, TimerDone: true}, attack},
		{"reload done out of range", reload, Conditions{HasTarget: true, TimerDone: true}, idle},
		{"reload done no target", reload, Conditions{TimerDone: true}, idle},

		{"attack resolving", attack, Conditions{}, attack},
		{"attack done with target", attack, Conditions{HasTarget: true, TimerDone: true}, reload},
		{"attack done no target", attack, Conditions{TimerDone: true}, idle},

		{"any state dies", reload, Conditions{Dead: true, HasTarget: true}, dead},
		{"dead stays dead", dead, Conditions{HasTarget: true, InRange: true, TimerDone: true}, dead},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NextState(tc.state, tc.c); got != tc.want {
				t.Errorf("NextState(%s, %+v) = %s, want %s", tc.state, tc.c, got, tc.want)
			}
		})
	}
}
