// Package scope implements the glob matcher that decides whether a
// POSIX-normalized file path falls inside an intent's owned_scope.
package scope

import (
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// compiledCache memoizes pattern -> compiled regexp, since the same
// owned_scope patterns are matched against many candidate paths in a
// single hook invocation.
var (
	compiledCache   = map[string]*regexp.Regexp{}
	compiledCacheMu sync.Mutex
)

// Matches reports whether path satisfies pattern, per spec.md §4.4:
//   - exact string equality;
//   - pattern compiled to a regex where "**" matches any substring
//     (including "/") and "*" matches any run of non-"/" characters,
//     other regex metacharacters escaped, fully matching path;
//   - pattern treated as a directory (trailing "/" appended if absent)
//     is a prefix of path.
func Matches(path, pattern string) bool {
	path = normalize(path)
	pattern = normalize(pattern)

	if path == pattern {
		return true
	}

	if compileGlob(pattern).MatchString(path) {
		return true
	}

	dirPrefix := pattern
	if !strings.HasSuffix(dirPrefix, "/") {
		dirPrefix += "/"
	}
	return strings.HasPrefix(path, dirPrefix)
}

// AnyMatch reports whether path matches any pattern in patterns.
func AnyMatch(path string, patterns []string) bool {
	for _, p := range patterns {
		if Matches(path, p) {
			return true
		}
	}
	return false
}

// normalize converts path separators to POSIX forward slashes, mirroring
// the normalization every hook performs before consulting the matcher.
func normalize(p string) string {
	return filepath.ToSlash(p)
}

// compileGlob translates a glob pattern into a fully-anchored regexp,
// caching the result since the same owned_scope list is matched
// repeatedly.
func compileGlob(pattern string) *regexp.Regexp {
	compiledCacheMu.Lock()
	defer compiledCacheMu.Unlock()

	if re, ok := compiledCache[pattern]; ok {
		return re
	}

	re := regexp.MustCompile("^" + globToRegex(pattern) + "$")
	compiledCache[pattern] = re
	return re
}

// globToRegex escapes regex metacharacters in pattern, then reinstates "**"
// (any substring) and "*" (any non-"/" run) semantics.
func globToRegex(pattern string) string {
	const (
		doubleStarToken = "\x00DOUBLESTAR\x00"
		starToken       = "\x00STAR\x00"
	)

	placeholder := strings.ReplaceAll(pattern, "**", doubleStarToken)
	placeholder = strings.ReplaceAll(placeholder, "*", starToken)

	escaped := regexp.QuoteMeta(placeholder)

	escaped = strings.ReplaceAll(escaped, doubleStarToken, ".*")
	escaped = strings.ReplaceAll(escaped, starToken, "[^/]*")

	return escaped
}
