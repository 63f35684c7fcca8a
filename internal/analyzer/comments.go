package analyzer

import (
	"strings"

	"github.com/blackwell-systems/commitprobe/internal/commits"
)

// AddedLines extracts the added lines of a unified diff with the leading
// marker removed. File header lines ("+++ b/path") are not additions.
func AddedLines(patch string) []string {
	var lines []string
	for _, line := range strings.Split(patch, "\n") {
		if !strings.HasPrefix(line, "+") || strings.HasPrefix(line, "+++") {
			continue
		}
		lines = append(lines, strings.TrimSuffix(line[1:], "\r"))
	}
	return lines
}

// AnalyzeComments classifies every non-blank added line across authored
// patches as comment-like or code using the ordered comment patterns.
func AnalyzeComments(records []commits.CommitRecord, patterns Matcher) CommentDensity {
	var result CommentDensity

	for _, c := range records {
		for _, patch := range c.Patches {
			for _, line := range AddedLines(patch) {
				if strings.TrimSpace(line) == "" {
					continue
				}
				if patterns.Match(line) {
					result.CommentLines++
				} else {
					result.CodeLines++
				}
			}
		}
	}

	if total := result.Total(); total > 0 {
		result.Ratio = float64(result.CommentLines) / float64(total)
	}
	return result
}
