package analyzer

import (
	"time"

	"github.com/blackwell-systems/commitprobe/internal/commits"
)

// AnalyzeScale relates the project's total authored lines to its lifespan.
// The lifespan starts at createdAt when known, or at the earliest commit if
// that is earlier (imported history predates the hosted repository), and
// ends at the latest commit. records must be sorted ascending.
func AnalyzeScale(records []commits.CommitRecord, createdAt *time.Time, minCommits int) ProjectScale {
	result := ProjectScale{Commits: len(records)}
	if len(records) == 0 || len(records) < minCommits {
		return result
	}
	result.Sufficient = true

	for _, c := range records {
		result.TotalLines += c.AuthoredTotal
	}

	result.Start = records[0].Timestamp
	result.End = records[len(records)-1].Timestamp
	if createdAt != nil && !createdAt.IsZero() && createdAt.Before(result.Start) {
		result.Start = *createdAt
		result.StartFromCreation = true
	}

	result.CalendarDays = max(int(result.End.Sub(result.Start).Hours()/24), 1)

	active := make(map[string]struct{})
	for _, c := range records {
		if c.Bot {
			continue
		}
		active[c.Timestamp.Format(time.DateOnly)] = struct{}{}
	}
	result.ActiveDays = max(len(active), 1)

	result.LinesPerActiveDay = float64(result.TotalLines) / float64(result.ActiveDays)
	result.LinesPerCalendarDay = float64(result.TotalLines) / float64(result.CalendarDays)
	return result
}
