package scope

import "testing"

func TestMatchesExactEquality(t *testing.T) {
	if !Matches("src/auth/login.ts", "src/auth/login.ts") {
		t.Error("exact path should match itself")
	}
}

func TestMatchesDoubleStar(t *testing.T) {
	if !Matches("a/b/c/d", "a/**") {
		t.Error("a/** should match a/b/c/d")
	}
	if !Matches("a/d", "a/**") {
		t.Error("a/** should match a/d")
	}
}

func TestMatchesSingleStarNoSlashCrossing(t *testing.T) {
	if !Matches("a/b", "a/*") {
		t.Error("a/* should match a/b")
	}
	if Matches("a/b/c", "a/*") {
		t.Error("a/* should not match a/b/c")
	}
}

func TestMatchesTrailingSlashDirectoryPrefix(t *testing.T) {
	if !Matches("src/auth/login.ts", "src/auth/") {
		t.Error("trailing-slash pattern should match as directory prefix")
	}
	if !Matches("src/auth/login.ts", "src/auth") {
		t.Error("directory pattern without trailing slash should still match as prefix")
	}
	if Matches("src/authorization/x.ts", "src/auth") {
		t.Error("directory-prefix match must respect the path separator boundary")
	}
}

func TestMatchesRegexMetacharactersEscaped(t *testing.T) {
	if Matches("src/autha/login.ts", "src/auth.ts") {
		t.Error("literal dot in pattern should not act as regex wildcard")
	}
}

func TestAnyMatch(t *testing.T) {
	patterns := []string{"src/payments/**", "src/auth/**"}
	if !AnyMatch("src/auth/login.ts", patterns) {
		t.Error("AnyMatch should succeed when one pattern matches")
	}
	if AnyMatch("src/billing/x.ts", patterns) {
		t.Error("AnyMatch should fail when no pattern matches")
	}
}

func TestMatchesBackslashPathsNormalized(t *testing.T) {
	if !Matches(`src\auth\login.ts`, "src/auth/**") {
		t.Error("backslash-separated path should normalize to POSIX before matching")
	}
}
