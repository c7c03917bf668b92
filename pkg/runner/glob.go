package runner

import (
	"path"
	"path/filepath"
	"strings"
)

// matchGlob reports whether rel, a path relative to the working directory,
// matches pattern. A pattern without a slash matches any single path
// component ("*.inc", "build"). Otherwise it is matched segment by segment,
// with "**" standing for zero or more segments ("vendor/**", "**/gen/*.s").
func matchGlob(rel, pattern string) bool {
	rel = filepath.ToSlash(rel)
	pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")

	segments := strings.Split(rel, "/")
	if !strings.Contains(pattern, "/") {
		if pattern == "**" {
			return true
		}
		for _, segment := range segments {
			if ok, err := path.Match(pattern, segment); err == nil && ok {
				return true
			}
		}
		return false
	}

	return matchSegments(strings.Split(pattern, "/"), segments)
}

func matchSegments(pattern, segments []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			if len(rest) == 0 {
				return true
			}
			for i := 0; i <= len(segments); i++ {
				if matchSegments(rest, segments[i:]) {
					return true
				}
			}
			return false
		}

		if len(segments) == 0 {
			return false
		}
		if ok, err := path.Match(pattern[0], segments[0]); err != nil || !ok {
			return false
		}
		pattern, segments = pattern[1:], segments[1:]
	}
	return len(segments) == 0
}

func matchesAny(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchGlob(rel, pattern) {
			return true
		}
	}
	return false
}
