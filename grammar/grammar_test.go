package grammar

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestSymbolTableRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lr0gen.grammar")
	defer teardown()

	st := NewSymbolTable()
	a := st.DeclareVariable("A")
	b := st.DeclareVariable("B")
	a2 := st.DeclareVariable("A")
	if a != a2 {
		t.Errorf("expected repeated declaration to reuse code, got %d != %d", a, a2)
	}
	if a != FirstUserVariable {
		t.Errorf("expected first user variable to be code %d, got %d", FirstUserVariable, a)
	}
	if b != FirstUserVariable+1 {
		t.Errorf("expected second user variable to be code %d, got %d", FirstUserVariable+1, b)
	}
	if st.Name(a) != "A" || st.Name(b) != "B" {
		t.Errorf("name lookup mismatch: Name(a)=%q Name(b)=%q", st.Name(a), st.Name(b))
	}
	if _, ok := st.LookupVariable("C"); ok {
		t.Errorf("expected unseen variable C to fail lookup")
	}
}

func TestIsVariableIsTerminal(t *testing.T) {
	if IsVariable(Symbol('a')) {
		t.Errorf("byte symbol should not be a variable")
	}
	if !IsTerminal(Symbol('a')) {
		t.Errorf("byte symbol should be a terminal")
	}
	if IsTerminal(StartSymbol) || !IsVariable(StartSymbol) {
		t.Errorf("StartSymbol must classify as a variable, not a terminal")
	}
	if IsVariable(SymbolEnd) || IsTerminal(SymbolEnd) {
		t.Errorf("SymbolEnd must classify as neither terminal nor variable")
	}
}

// buildSimpleGrammar builds `S : a ;`, augmented.
func buildSimpleGrammar(t *testing.T) *Grammar {
	t.Helper()
	st := NewSymbolTable()
	g := NewGrammar(st)
	s := st.DeclareVariable("S")
	g.AddRule(s, []Symbol{Symbol('a')})
	g.Augment(s)
	g.Finalize()
	return g
}

func TestRuleGroupingInvariant(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lr0gen.grammar")
	defer teardown()

	st := NewSymbolTable()
	g := NewGrammar(st)
	s := st.DeclareVariable("S")
	a := st.DeclareVariable("A")
	g.AddRule(s, []Symbol{a, Symbol('a')})
	g.AddRule(a, []Symbol{Symbol('b')})
	g.AddRule(s, []Symbol{Symbol('c')})
	g.Augment(s)
	g.Finalize()

	for _, v := range []Symbol{s, a, StartSymbol} {
		rng := g.RulesForLHS(v)
		for _, r := range rng {
			if r.LHS() != v {
				t.Errorf("RulesForLHS(%v) returned rule with LHS %v", v, r.LHS())
			}
		}
	}
	// StartSymbol must sort first: id 0.
	if g.Rules[0].LHS() != StartSymbol {
		t.Errorf("expected augmentation rule to sort first, got LHS=%v", g.Rules[0].LHS())
	}
	for i, r := range g.Rules {
		if r.ID != i {
			t.Errorf("rule %d has stale ID %d after Finalize", i, r.ID)
		}
	}
}

func TestEmptyRHS(t *testing.T) {
	st := NewSymbolTable()
	g := NewGrammar(st)
	s := st.DeclareVariable("S")
	r := g.AddRule(s, nil)
	if r.RHSLen() != 0 {
		t.Errorf("expected empty RHS, got length %d", r.RHSLen())
	}
	if r.SymbolAt(1) != SymbolEnd {
		t.Errorf("expected dot=1 on empty rule to rest on SymbolEnd")
	}
}

func TestAugmentationFirstUserVariable(t *testing.T) {
	g := buildSimpleGrammar(t)
	start := g.StartRule()
	if start.LHS() != StartSymbol {
		t.Fatalf("expected start rule LHS = StartSymbol")
	}
	if len(start.RHS()) != 1 || start.RHS()[0] != FirstUserVariable {
		t.Errorf("expected start rule RHS = [FirstUserVariable], got %v", start.RHS())
	}
}
