package igkhash

import "testing"

func TestHashDeterministic(t *testing.T) {
	a := Hash("package main\n")
	b := Hash("package main\n")
	if a != b {
		t.Errorf("Hash() not deterministic: %q != %q", a, b)
	}
}

func TestHashDistinctInputs(t *testing.T) {
	a := Hash("alpha")
	b := Hash("beta")
	if a == b {
		t.Errorf("Hash(%q) == Hash(%q) = %q, want distinct digests", "alpha", "beta", a)
	}
}

func TestHashCanonicalForm(t *testing.T) {
	cases := []string{"", "x", "a much longer body of text\nwith several\nlines\n"}
	for _, c := range cases {
		h := Hash(c)
		if !Valid(h) {
			t.Errorf("Hash(%q) = %q, does not match canonical form", c, h)
		}
	}
}

func TestHashLinesJoinsWithNewline(t *testing.T) {
	lines := []string{"a", "b", "c"}
	if got, want := HashLines(lines), Hash("a\nb\nc"); got != want {
		t.Errorf("HashLines() = %q, want %q", got, want)
	}
}

func TestVerify(t *testing.T) {
	text := "some file content"
	h := Hash(text)
	if !Verify(text, h) {
		t.Error("Verify() = false for matching hash")
	}
	if Verify(text, Hash("other content")) {
		t.Error("Verify() = true for mismatched hash")
	}
}

func TestValid(t *testing.T) {
	cases := map[string]bool{
		Hash("x"):                             true,
		"sha256:abc":                          false,
		"md5:" + Hash("x")[len(Prefix):]:      false,
		"":                                    false,
		"sha256:" + repeatHex(64, 'A'):        false, // uppercase not allowed
		"sha256:" + repeatHex(63, 'a'):        false, // too short
		"sha256:" + repeatHex(64, 'a'):        true,
	}
	for in, want := range cases {
		if got := Valid(in); got != want {
			t.Errorf("Valid(%q) = %v, want %v", in, got, want)
		}
	}
}

func repeatHex(n int, c byte) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = c
	}
	return string(b)
}
