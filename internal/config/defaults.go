// Package config provides configuration loading and defaults for commitprobe.
package config

// DefaultConfigDir is the default location for commitprobe configuration.
const DefaultConfigDir = "~/.config/commitprobe"

// DefaultDBName is the filename for the run history database.
const DefaultDBName = "commitprobe.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultEnvFile is loaded from the working directory before the config
// file so a GITHUB_TOKEN can live next to the project.
const DefaultEnvFile = ".env"

// EnvPrefix prefixes every environment override, e.g.
// COMMITPROBE_GITHUB_MAX_COMMITS.
const EnvPrefix = "COMMITPROBE"

// DefaultGitHub holds the default fetch settings.
var DefaultGitHub = GitHub{
	APIURL:     "",
	Workers:    8,
	MaxCommits: 200,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color:   true,
	Width:   60,
	Samples: 10,
	Top:     5,
}

// DefaultHistory keeps run tracking opt-in.
var DefaultHistory = History{
	Enabled: false,
	Path:    "",
}

// DefaultGeneratedFilePatterns match lockfiles, vendored dependencies,
// build output, binary assets and code generator output.
var DefaultGeneratedFilePatterns = []string{
	`(^|/)(package-lock\.json|npm-shrinkwrap\.json|yarn\.lock|pnpm-lock\.yaml|bun\.lockb)$`,
	`(^|/)(go\.sum|cargo\.lock|gemfile\.lock|composer\.lock|poetry\.lock|pipfile\.lock|uv\.lock|podfile\.lock|mix\.lock|pubspec\.lock|flake\.lock)$`,
	`(^|/)(vendor|node_modules|third_party|bower_components|\.yarn)/`,
	`(^|/)(dist|build|out|target|\.next|coverage)/`,
	`\.min\.(js|css)$`,
	`\.(js|css)\.map$`,
	`\.(png|jpe?g|gif|ico|svg|webp|bmp|pdf|woff2?|ttf|otf|eot|zip|gz|tgz|tar|jar|exe|dll|so|dylib|wasm|mp3|mp4|mov)$`,
	`\.pb\.go$`,
	`\.pb\.(cc|h)$`,
	`_pb2(_grpc)?\.pyi?$`,
	`(^|[/_.])generated[/_.]`,
	`_string\.go$`,
}

// DefaultBotSuffixes identify automation accounts by the end of the
// identity.
var DefaultBotSuffixes = []string{
	"[bot]",
	"-bot",
	"_bot",
	"dependabot",
	"renovate",
	"github-actions",
	"greenkeeper",
}

// DefaultMessagePatterns describe overly formal commit subjects. They are
// tested against the lower-cased first line and the first match wins.
var DefaultMessagePatterns = []string{
	`^implement\s+\w+`,
	`^(add|create|introduce|enhance|improve|refactor|optimize|update)\s+(comprehensive|robust|proper|complete|full|enhanced|improved|detailed)\b`,
	`^(feat|fix|docs|style|refactor|perf|test|chore|build|ci)\([^)]+,[^)]+\)!?:\s`,
	`^(feat|fix|docs|style|refactor|perf|test|chore|build|ci)(\([^)]*\))?!?:\s.{50,}`,
	`^(add|create|implement|update|fix|refactor|improve|enhance)\s.+\s(and|&)\s.+`,
	`^\s*[-*•]\s+\w+`,
	`initial commit`,
	`\b(comprehensive|robust|seamless(ly)?|streamline[ds]?|leverag(e|es|ing))\b`,
	`^update \S+$`,
	`^add \S+$`,
}

// DefaultCommentPatterns recognise comment-like added lines across common
// languages. Order matters only for readability; any match counts.
var DefaultCommentPatterns = []string{
	`^\s*//`,
	`^\s*#([^!]|$)`,
	`^\s*/\*`,
	`^\s*\*/`,
	`^\s*\*(\s|$)`,
	`^\s*<!--`,
	`^\s*--(\s|$)`,
	`^\s*("""|''')`,
}
