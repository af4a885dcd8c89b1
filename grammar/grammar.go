package grammar

import "sort"

// Rule is a finite ordered sequence of symbols [lhs, b1 ... bk, SymbolEnd].
// The trailing SymbolEnd is the in-band "dot past the end" marker; an empty
// production is represented as [lhs, SymbolEnd]. ID is the rule's position
// in the grammar's finalized, ordered rule set (stable once Finalize has
// run, since rules are never moved afterwards, only their slice of pointers
// is sorted once).
type Rule struct {
	ID      int
	Symbols []Symbol
}

// LHS returns the rule's left-hand-side variable.
func (r *Rule) LHS() Symbol { return r.Symbols[0] }

// RHS returns the rule's right-hand side, excluding the LHS and the
// trailing SymbolEnd.
func (r *Rule) RHS() []Symbol { return r.Symbols[1 : len(r.Symbols)-1] }

// RHSLen returns the length of the right-hand side.
func (r *Rule) RHSLen() int { return len(r.Symbols) - 2 }

// SymbolAt returns the symbol at index dot (0 is the LHS).
func (r *Rule) SymbolAt(dot int) Symbol { return r.Symbols[dot] }

// Len returns the total length of the rule's symbol sequence, LHS and
// SymbolEnd included.
func (r *Rule) Len() int { return len(r.Symbols) }

func (r *Rule) String() string {
	s := ""
	for i, sym := range r.Symbols {
		if i > 0 {
			s += " "
		}
		s += sym.String()
	}
	return s
}

// compareSymbols orders two symbol sequences lexicographically by integer
// value, the ordering Grammar.Finalize uses to sort rules so that all rules
// sharing an LHS form a contiguous range.
func compareSymbols(a, b []Symbol) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// Grammar is an ordered set of Rules plus the symbol-name table used to
// render them. It is built once (AddRule, then Finalize) and is read-only
// thereafter: items and states reference rules by stable *Rule pointers and
// never cause them to move.
type Grammar struct {
	Symbols *SymbolTable
	Rules   []*Rule

	finalized bool
	ruleRange map[Symbol][2]int // [start,end) into Rules, for a finalized grammar
}

// NewGrammar creates an empty grammar over symtab.
func NewGrammar(symtab *SymbolTable) *Grammar {
	return &Grammar{Symbols: symtab}
}

// AddRule appends a rule lhs -> rhs. Rules may be added in any order; they
// are sorted once by Finalize.
func (g *Grammar) AddRule(lhs Symbol, rhs []Symbol) *Rule {
	if g.finalized {
		panic("grammar: AddRule called after Finalize")
	}
	symbols := make([]Symbol, 0, len(rhs)+2)
	symbols = append(symbols, lhs)
	symbols = append(symbols, rhs...)
	symbols = append(symbols, SymbolEnd)
	r := &Rule{Symbols: symbols}
	g.Rules = append(g.Rules, r)
	tracer().Debugf("added rule %s", r)
	return r
}

// DefinedVariables returns the set of variables appearing as some rule's
// LHS.
func (g *Grammar) DefinedVariables() map[Symbol]bool {
	defined := make(map[Symbol]bool)
	for _, r := range g.Rules {
		defined[r.LHS()] = true
	}
	return defined
}

// ReferencedVariables returns, in first-occurrence order, every variable
// referenced anywhere on a rule's right-hand side.
func (g *Grammar) ReferencedVariables() []Symbol {
	var order []Symbol
	seen := make(map[Symbol]bool)
	for _, r := range g.Rules {
		for _, s := range r.RHS() {
			if IsVariable(s) && !seen[s] {
				seen[s] = true
				order = append(order, s)
			}
		}
	}
	return order
}

// Augment appends the synthetic start rule START -> start, where start is
// normally the first user variable (code FirstUserVariable). Must be called
// before Finalize.
func (g *Grammar) Augment(start Symbol) *Rule {
	g.Symbols.SetStartName("<start>")
	return g.AddRule(StartSymbol, []Symbol{start})
}

// Finalize sorts the rule set lexicographically by symbol sequence (LHS
// first), assigns stable rule IDs equal to the sorted position, and builds
// the per-LHS contiguous-range index used by closure. After Finalize the
// grammar is read-only: AddRule and Augment may no longer be called.
func (g *Grammar) Finalize() {
	sort.SliceStable(g.Rules, func(i, j int) bool {
		return compareSymbols(g.Rules[i].Symbols, g.Rules[j].Symbols) < 0
	})
	g.ruleRange = make(map[Symbol][2]int)
	for i, r := range g.Rules {
		r.ID = i
		lhs := r.LHS()
		if rng, ok := g.ruleRange[lhs]; ok {
			rng[1] = i + 1
			g.ruleRange[lhs] = rng
		} else {
			g.ruleRange[lhs] = [2]int{i, i + 1}
		}
	}
	g.finalized = true
	tracer().Infof("grammar finalized: %d rules", len(g.Rules))
}

// RulesForLHS returns the contiguous slice of rules whose LHS is v. Requires
// a finalized grammar.
func (g *Grammar) RulesForLHS(v Symbol) []*Rule {
	rng, ok := g.ruleRange[v]
	if !ok {
		return nil
	}
	return g.Rules[rng[0]:rng[1]]
}

// StartRule returns the synthetic augmentation rule, which sorts first
// because StartSymbol is numerically below every user variable.
func (g *Grammar) StartRule() *Rule {
	return g.Rules[0]
}

// Dump renders the grammar, one rule per line, in "<lhs> -> <rhs...>" form.
func (g *Grammar) Dump() []string {
	lines := make([]string, 0, len(g.Rules))
	for _, r := range g.Rules {
		line := g.Symbols.Name(r.LHS()) + " ->"
		for _, s := range r.RHS() {
			line += " " + g.Symbols.Name(s)
		}
		lines = append(lines, line)
	}
	return lines
}
