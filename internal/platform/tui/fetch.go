package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/catapult/internal/config"
	"github.com/vovakirdan/catapult/internal/storage"
)

// fetchTimeout bounds one remote read.
const fetchTimeout = 3 * time.Second

// leaderMsg carries the best run of the week.
type leaderMsg struct {
	entry storage.RunEntry
	ok    bool
	err   error
}

// paramsMsg carries the remote parameters together with the holder version
// they were merged over.
type paramsMsg struct {
	params  config.Params
	version uint64
	err     error
}

// scoresMsg carries a leaderboard page.
type scoresMsg struct {
	entries []storage.RunEntry
	week    bool
	err     error
}

// fetchLeaderCmd reads the weekly top score in the background.
func fetchLeaderCmd(store *storage.Store) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		entry, ok, err := store.TopScore(ctx, time.Now().Add(-storage.Week))
		return leaderMsg{entry: entry, ok: ok, err: err}
	}
}

// reloadParamsCmd merges the stored parameters over the holder's current
// snapshot in the background.
func reloadParamsCmd(store *storage.Store, holder *config.Holder) tea.Cmd {
	if store == nil || holder == nil {
		return nil
	}
	return func() tea.Msg {
		version := holder.Version()
		base := holder.Snapshot()
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		p, err := store.LoadParams(ctx, base)
		return paramsMsg{params: p, version: version, err: err}
	}
}

// loadScoresCmd reads the leaderboard, either for the last week or all time.
func loadScoresCmd(store *storage.Store, week bool, limit int) tea.Cmd {
	if store == nil {
		return func() tea.Msg { return scoresMsg{week: week} }
	}
	return func() tea.Msg {
		var since time.Time
		if week {
			since = time.Now().Add(-storage.Week)
		}
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		entries, err := store.TopRuns(ctx, limit, since)
		return scoresMsg{entries: entries, week: week, err: err}
	}
}
