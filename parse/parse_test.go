package parse

import (
	"testing"

	"github.com/npillmayer/lr0gen/grammar"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestParseSimple(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lr0gen.parse")
	defer teardown()

	g, errs := ParseCustom([]byte("S : a ;"))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(g.Rules) != 2 { // augmentation + S -> a
		t.Fatalf("expected 2 rules, got %d: %v", len(g.Rules), g.Dump())
	}
}

func TestParseForwardReference(t *testing.T) {
	g, errs := ParseCustom([]byte("S : A ; A : b ;"))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(g.Rules) != 3 {
		t.Fatalf("expected 3 rules, got %d: %v", len(g.Rules), g.Dump())
	}
}

func TestParseUndefinedVariableFails(t *testing.T) {
	_, errs := ParseCustom([]byte("S : A ;"))
	if len(errs) == 0 {
		t.Fatalf("expected an unresolved-variable error")
	}
}

func TestParseEscape(t *testing.T) {
	g, errs := ParseCustom([]byte(`S : \: ;`))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	var found bool
	for _, r := range g.Rules {
		if r.LHS() != grammar.StartSymbol && len(r.RHS()) == 1 && r.RHS()[0] == grammar.Symbol(':') {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a rule with RHS [':'], got %v", g.Dump())
	}
}

func TestParseEmptyAlternative(t *testing.T) {
	g, errs := ParseCustom([]byte("S : ( S ) | ;"))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	var hasEmpty bool
	for _, r := range g.Rules {
		if r.LHS() != grammar.StartSymbol && r.RHSLen() == 0 {
			hasEmpty = true
		}
	}
	if !hasEmpty {
		t.Fatalf("expected an empty-RHS rule, got %v", g.Dump())
	}
}

func TestParseMissingColonRecovers(t *testing.T) {
	_, errs := ParseCustom([]byte("S a ; A : b ;"))
	if len(errs) == 0 {
		t.Fatalf("expected a missing ':' diagnostic")
	}
}

func TestParseEmptyGrammarIsRejected(t *testing.T) {
	g, errs := ParseCustom([]byte(""))
	if len(errs) == 0 {
		t.Fatalf("expected empty grammar (zero user productions) to be rejected")
	}
	if g != nil {
		t.Fatalf("expected nil grammar on error")
	}
}

func TestParseBNFBasic(t *testing.T) {
	src := "<S> ::= \"a\"\n"
	g, errs := ParseBNF([]byte(src))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(g.Rules) != 2 {
		t.Fatalf("expected 2 rules, got %d: %v", len(g.Rules), g.Dump())
	}
}

func TestParseBNFAlternativesAndContinuation(t *testing.T) {
	src := "<S> ::= <S> \"a\"\n| \"a\"\n"
	g, errs := ParseBNF([]byte(src))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(g.Rules) != 3 {
		t.Fatalf("expected 3 rules, got %d: %v", len(g.Rules), g.Dump())
	}
}
