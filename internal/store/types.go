package store

import "time"

// Run is one recorded analysis of a repository.
type Run struct {
	ID         int64     `json:"id"`
	Repository string    `json:"repository"`
	TakenAt    time.Time `json:"taken_at"`
	Source     string    `json:"source"`
	Score      float64   `json:"score"`
	Raw        float64   `json:"raw"`
	Verdict    string    `json:"verdict"`
	Commits    int       `json:"commits"`
	Version    string    `json:"version"`

	// Signals are the per-signal points in evaluation order.
	Signals []SignalPoints `json:"signals"`
}

// SignalPoints is one signal's contribution to a run.
type SignalPoints struct {
	Name   string  `json:"name"`
	Points float64 `json:"points"`
}

// Points returns the named signal's points, or 0 when absent.
func (r Run) Points(name string) float64 {
	for _, s := range r.Signals {
		if s.Name == name {
			return s.Points
		}
	}
	return 0
}

// SignalDelta is the change in one signal between two runs.
type SignalDelta struct {
	Name     string  `json:"name"`
	Previous float64 `json:"previous"`
	Current  float64 `json:"current"`
	Delta    float64 `json:"delta"`
}

// Compare lists per-signal changes from prev to cur. Signals appear in
// cur's order, followed by any that only prev recorded.
func Compare(prev, cur Run) []SignalDelta {
	seen := make(map[string]bool, len(cur.Signals))
	var out []SignalDelta
	for _, s := range cur.Signals {
		seen[s.Name] = true
		p := prev.Points(s.Name)
		out = append(out, SignalDelta{Name: s.Name, Previous: p, Current: s.Points, Delta: s.Points - p})
	}
	for _, s := range prev.Signals {
		if !seen[s.Name] {
			out = append(out, SignalDelta{Name: s.Name, Previous: s.Points, Delta: -s.Points})
		}
	}
	return out
}
