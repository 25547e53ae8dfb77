package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/skirmish/components"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFirstBlood BookmarkType = "first_blood"
	BookmarkLeadChange BookmarkType = "lead_change"
	BookmarkLastStand  BookmarkType = "last_stand"
	BookmarkRout       BookmarkType = "rout"
	BookmarkStalemate  BookmarkType = "stalemate"
)

// stalemateWindows is the number of consecutive windows without attacks
// that counts as a stalemate.
const stalemateWindows = 3

// Bookmark marks a notable moment in a battle.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int64        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects notable moments from successive window stats.
type BookmarkDetector struct {
	prev      WindowStats
	seen      bool
	bloodied  bool
	leader    components.Team
	lastStand [components.TeamCount]bool
	quiet     int
}

// NewBookmarkDetector creates a detector for a fresh battle.
func NewBookmarkDetector() *BookmarkDetector {
	return &BookmarkDetector{leader: components.TeamUnknown}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark
	add := func(b *Bookmark) {
		if b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	add(bd.checkFirstBlood(stats))
	add(bd.checkLeadChange(stats))
	add(bd.checkLastStand(stats, components.TeamRed, stats.RedAlive))
	add(bd.checkLastStand(stats, components.TeamBlue, stats.BlueAlive))
	if bd.seen {
		add(bd.checkRout(stats, components.TeamRed, bd.prev.RedAlive, stats.RedDeaths))
		add(bd.checkRout(stats, components.TeamBlue, bd.prev.BlueAlive, stats.BlueDeaths))
	}
	add(bd.checkStalemate(stats))

	bd.prev = stats
	bd.seen = true
	return bookmarks
}

func (bd *BookmarkDetector) checkFirstBlood(stats WindowStats) *Bookmark {
	if bd.bloodied || stats.RedDeaths+stats.BlueDeaths == 0 {
		return nil
	}
	bd.bloodied = true

	victim := components.TeamRed
	if stats.BlueDeaths > 0 && stats.RedDeaths == 0 {
		victim = components.TeamBlue
	}
	return &Bookmark{
		Type:        BookmarkFirstBlood,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("First casualty on %s", victim),
	}
}

func (bd *BookmarkDetector) checkLeadChange(stats WindowStats) *Bookmark {
	leader := stats.Leader()
	if leader == components.TeamUnknown {
		return nil
	}
	prev := bd.leader
	bd.leader = leader
	if prev == components.TeamUnknown || prev == leader {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkLeadChange,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%s takes the lead %d to %d", leader, max(stats.RedAlive, stats.BlueAlive), min(stats.RedAlive, stats.BlueAlive)),
	}
}

func (bd *BookmarkDetector) checkLastStand(stats WindowStats, team components.Team, alive int) *Bookmark {
	if alive != 1 || bd.lastStand[team] {
		return nil
	}
	bd.lastStand[team] = true
	return &Bookmark{
		Type:        BookmarkLastStand,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%s is down to its last unit", team),
	}
}

// checkRout fires when a team loses at least half of the units it had at the
// start of the window.
func (bd *BookmarkDetector) checkRout(stats WindowStats, team components.Team, before, deaths int) *Bookmark {
	if before < 4 || deaths*2 < before {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkRout,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%s lost %d of %d units in one window", team, deaths, before),
	}
}

func (bd *BookmarkDetector) checkStalemate(stats WindowStats) *Bookmark {
	if stats.RedAttacks+stats.BlueAttacks > 0 || stats.RedAlive == 0 || stats.BlueAlive == 0 {
		bd.quiet = 0
		return nil
	}
	bd.quiet++
	if bd.quiet != stalemateWindows {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkStalemate,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("No attacks for %d windows with %d red and %d blue alive", stalemateWindows, stats.RedAlive, stats.BlueAlive),
	}
}
