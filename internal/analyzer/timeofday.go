package analyzer

import "github.com/blackwell-systems/commitprobe/internal/commits"

// AnalyzeTimeOfDay buckets non-bot commits by hour in the offset each
// commit was recorded with. Hours in [0, offHoursEnd) are off-hours.
func AnalyzeTimeOfDay(records []commits.CommitRecord, offHoursEnd int) TimeOfDay {
	var result TimeOfDay

	for _, c := range records {
		if c.Bot {
			continue
		}
		h := c.Timestamp.Hour()
		result.Histogram[h]++
		result.Commits++
		if h < offHoursEnd {
			result.OffHours++
		}
	}

	if result.Commits > 0 {
		result.OffHoursShare = float64(result.OffHours) / float64(result.Commits)
	}
	return result
}
