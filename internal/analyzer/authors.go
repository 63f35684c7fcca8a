package analyzer

import (
	"sort"

	"github.com/blackwell-systems/commitprobe/internal/commits"
)

// AnalyzeAuthors counts distinct human and bot identities and returns the
// topN most active identities (ties broken by name).
func AnalyzeAuthors(records []commits.CommitRecord, topN int) AuthorStats {
	counts := make(map[string]*AuthorCount)
	for _, c := range records {
		ac, ok := counts[c.Author]
		if !ok {
			ac = &AuthorCount{Author: c.Author, Bot: c.Bot}
			counts[c.Author] = ac
		}
		ac.Commits++
	}

	var stats AuthorStats
	all := make([]AuthorCount, 0, len(counts))
	for _, ac := range counts {
		if ac.Bot {
			stats.Bots++
		} else {
			stats.Distinct++
		}
		all = append(all, *ac)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].Commits != all[j].Commits {
			return all[i].Commits > all[j].Commits
		}
		return all[i].Author < all[j].Author
	})
	if topN >= 0 && len(all) > topN {
		all = all[:topN]
	}
	stats.Top = all
	return stats
}

// AnalyzeGenerated returns the share of all changed lines that fell in
// generated files.
func AnalyzeGenerated(records []commits.CommitRecord) GeneratedShare {
	var result GeneratedShare
	for _, c := range records {
		result.AuthoredLines += c.AuthoredTotal
		result.GeneratedLines += c.GeneratedTotal
	}
	if total := result.AuthoredLines + result.GeneratedLines; total > 0 {
		result.Share = float64(result.GeneratedLines) / float64(total)
	}
	return result
}
