package calc

import "time"

// MaxHistory bounds the calculation log.
const MaxHistory = 50

// Entry is one completed calculation in the history log.
type Entry struct {
	ID         int64     `json:"id"`
	Expression string    `json:"expression"`
	Result     string    `json:"result"`
	CreatedAt  time.Time `json:"created_at"`
}

// HistoryStore is the persistence collaborator for the calculation log.
// Save is best-effort; Load returns an empty list when nothing usable is
// stored.
type HistoryStore interface {
	Save(entries []Entry) error
	Load() ([]Entry, error)
}

// prependEntry returns a new slice with e at the front, trimmed to MaxHistory.
// The input slice is never modified so earlier snapshots stay intact.
func prependEntry(entries []Entry, e Entry) []Entry {
	n := len(entries) + 1
	if n > MaxHistory {
		n = MaxHistory
	}
	out := make([]Entry, 0, n)
	out = append(out, e)
	out = append(out, entries[:n-1]...)
	return out
}

// normalizeHistory trims a loaded list to the bound and drops entries that
// could never have been produced by the engine.
func normalizeHistory(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Expression == "" || e.Result == "" {
			continue
		}
		out = append(out, e)
		if len(out) == MaxHistory {
			break
		}
	}
	return out
}
