package mutation

import "testing"

func TestClassifyExplicitWins(t *testing.T) {
	content := "func NewThing() {}\n" // would otherwise be evolution
	if got := Classify("AST_REFACTOR", content, false); got != ASTRefactor {
		t.Errorf("Classify() = %v, want ASTRefactor (explicit override)", got)
	}
	if got := Classify("bogus-value", content, false); got != IntentEvolution {
		t.Errorf("Classify() with invalid explicit class = %v, want evolution signal to decide", got)
	}
}

func TestClassifyNewFileIsEvolution(t *testing.T) {
	content := "+ // just a comment\n+ \n" // would otherwise look like refactor
	if got := Classify("", content, true); got != IntentEvolution {
		t.Errorf("Classify() for new file = %v, want IntentEvolution", got)
	}
}

func TestClassifyEvolutionSignalsDominate(t *testing.T) {
	content := "+ // a comment\n+ \nfunc Handle() {}\n"
	if got := Classify("", content, false); got != IntentEvolution {
		t.Errorf("Classify() = %v, want IntentEvolution when an evolution signal is present", got)
	}
}

func TestClassifyTwoRefactorSignalsNoEvolution(t *testing.T) {
	content := "+ import \"fmt\"\n+ \n+ // tidy up\n"
	if got := Classify("", content, false); got != ASTRefactor {
		t.Errorf("Classify() = %v, want ASTRefactor with >=2 refactor signals and no evolution signal", got)
	}
}

func TestClassifyDefaultsToEvolution(t *testing.T) {
	content := "just some prose with no recognizable signal at all"
	if got := Classify("", content, false); got != IntentEvolution {
		t.Errorf("Classify() = %v, want IntentEvolution default", got)
	}
}

func TestClassifySingleRefactorSignalIsNotEnough(t *testing.T) {
	content := "+ import \"fmt\"\n"
	if got := Classify("", content, false); got != IntentEvolution {
		t.Errorf("Classify() = %v, want IntentEvolution when only one refactor signal matches", got)
	}
}

func TestLineCount(t *testing.T) {
	cases := map[string]int{
		"":        1,
		"a":       1,
		"a\nb":    2,
		"a\nb\nc": 3,
	}
	for in, want := range cases {
		if got := LineCount(in); got != want {
			t.Errorf("LineCount(%q) = %d, want %d", in, got, want)
		}
	}
}
