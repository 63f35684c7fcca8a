package classify

import (
	"fmt"
	"strings"
)

// Classifier labels file paths as generated/vendored and author identities
// as bots. The zero value matches nothing.
type Classifier struct {
	generated   *PatternSet
	botSuffixes []string
}

// New builds a Classifier from generated-file pattern sources and a list of
// bot identity suffixes.
func New(generatedPatterns, botSuffixes []string) (*Classifier, error) {
	generated, err := Compile(generatedPatterns)
	if err != nil {
		return nil, fmt.Errorf("generated file patterns: %w", err)
	}

	suffixes := make([]string, 0, len(botSuffixes))
	for _, s := range botSuffixes {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			suffixes = append(suffixes, s)
		}
	}

	return &Classifier{generated: generated, botSuffixes: suffixes}, nil
}

// IsGeneratedFile reports whether path looks like a lockfile, vendored
// dependency, build artifact, binary asset or code generator output.
func (c *Classifier) IsGeneratedFile(path string) bool {
	if c == nil || path == "" {
		return false
	}
	return c.generated.Match(path)
}

// IsBotAuthor reports whether identity ends with a known bot suffix.
func (c *Classifier) IsBotAuthor(identity string) bool {
	if c == nil || identity == "" {
		return false
	}
	id := strings.ToLower(strings.TrimSpace(identity))
	for _, suffix := range c.botSuffixes {
		if strings.HasSuffix(id, suffix) {
			return true
		}
	}
	return false
}
