package catapult

import (
	"time"
	"unicode/utf8"
)

// MaxNameLen is the longest display name stored with a run.
const MaxNameLen = 10

// Run is the state of one attempt, from creation in Idle to its reset.
type Run struct {
	ID         string
	Score      int
	Hits       int
	Boosting   bool
	LaunchedAt time.Time
	EndedAt    time.Time
	Outcome    Outcome
}

// RunResult is the record persisted once a run ends.
type RunResult struct {
	ID       string
	Start    time.Time
	End      time.Time
	Score    int
	Hits     int
	Distance float64
	Name     string
	Outcome  Outcome
}

// DisplayName truncates a player name to MaxNameLen characters.
func DisplayName(name string) string {
	if utf8.RuneCountInString(name) <= MaxNameLen {
		return name
	}
	return string([]rune(name)[:MaxNameLen])
}
