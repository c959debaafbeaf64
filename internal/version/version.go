// Package version exposes build information injected with -ldflags.
package version

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// These variables are populated by the Go linker (LDFLAGS) at build time.
var (
	Version    = "dev"     // `git describe --tags`, e.g. v1.2.3 or v1.2.3-5-gabcdef0
	CommitHash = "unknown" // Default value
	BuildDate  = "unknown" // Default value
)

// Info is the parsed build information.
type Info struct {
	Major       int    `json:"major"`
	Minor       int    `json:"minor"`
	Patch       int    `json:"patch"`
	TagDistance int    `json:"tag_distance"`
	Commit      string `json:"commit"`
	BuildDate   string `json:"build_date"`
	Semver      string `json:"semver"`
	// Dev is true when Version was not set at build time or not parseable.
	Dev bool `json:"dev"`
}

var describeRe = regexp.MustCompile(`^(?:cifmt/)?v?(\d+)\.(\d+)\.(\d+)(?:-(\d+)-g([0-9a-f]+))?(?:-dirty)?$`)

// Get returns the build information for this binary.
func Get() Info {
	return Parse(Version, CommitHash, BuildDate)
}

// Parse interprets a `git describe` string.
func Parse(describe, commit, date string) Info {
	info := Info{Commit: commit, BuildDate: date}
	m := describeRe.FindStringSubmatch(strings.TrimSpace(describe))
	if m == nil {
		info.Dev = true
		info.Semver = "0.0.0-" + describe
		return info
	}
	// The pattern only admits digits in these groups.
	info.Major, _ = strconv.Atoi(m[1])
	info.Minor, _ = strconv.Atoi(m[2])
	info.Patch, _ = strconv.Atoi(m[3])
	if m[4] != "" {
		info.TagDistance, _ = strconv.Atoi(m[4])
		if info.Commit == "" || info.Commit == "unknown" {
			info.Commit = m[5]
		}
	}

	info.Semver = fmt.Sprintf("%d.%d.%d", info.Major, info.Minor, info.Patch)
	if info.TagDistance > 0 {
		info.Semver += fmt.Sprintf("-dev%d+%s", info.TagDistance, shortHash(info.Commit))
	}
	return info
}

// String formats the version as "X.Y.Z[.devN] (hash date)".
func (i Info) String() string {
	if i.Dev {
		return fmt.Sprintf("%s (%s %s)", i.Semver, shortHash(i.Commit), i.BuildDate)
	}
	s := fmt.Sprintf("%d.%d.%d", i.Major, i.Minor, i.Patch)
	if i.TagDistance > 0 {
		s += fmt.Sprintf(".dev%d", i.TagDistance)
	}
	return fmt.Sprintf("%s (%s %s)", s, shortHash(i.Commit), i.BuildDate)
}

func shortHash(h string) string {
	if len(h) > 7 {
		return h[:7]
	}
	return h
}
