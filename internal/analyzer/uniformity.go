package analyzer

import "github.com/blackwell-systems/commitprobe/internal/commits"

// AnalyzeUniformity computes mean, sample standard deviation and the
// coefficient of variation over commits with authored changes. Fewer than
// minCommits sized commits leave the result marked insufficient.
func AnalyzeUniformity(records []commits.CommitRecord, minCommits int) SizeUniformity {
	var sizes []float64
	for _, c := range records {
		if c.AuthoredTotal > 0 {
			sizes = append(sizes, float64(c.AuthoredTotal))
		}
	}

	result := SizeUniformity{Commits: len(sizes)}
	if len(sizes) < minCommits || len(sizes) < 2 {
		return result
	}

	result.Sufficient = true
	result.Mean = mean(sizes)
	result.StdDev = sampleStdDev(sizes)
	if result.Mean > 0 {
		result.CV = result.StdDev / result.Mean
	}
	return result
}
