package lr

import "github.com/npillmayer/lr0gen/grammar"

// closure computes the closure of an item set: for every item whose symbol
// at dot is a variable v, every rule defining v is added with dot=1. A
// worklist of not-yet-expanded variables (ordered by first discovery) keeps
// each variable's rules from being scanned more than once.
func closure(g *grammar.Grammar, items *ItemSet) *ItemSet {
	result := newItemSet()
	for _, it := range items.Values() {
		result.Add(it)
	}
	seen := make(map[grammar.Symbol]bool)
	var worklist []grammar.Symbol
	enqueue := func(sym grammar.Symbol) {
		if grammar.IsVariable(sym) && !seen[sym] {
			seen[sym] = true
			worklist = append(worklist, sym)
		}
	}
	for _, it := range result.Values() {
		enqueue(it.SymbolAtDot())
	}
	for len(worklist) > 0 {
		v := worklist[0]
		worklist = worklist[1:]
		for _, r := range g.RulesForLHS(v) {
			ni := Item{Rule: r, Dot: 1}
			if !result.Contains(ni) {
				result.Add(ni)
				enqueue(ni.SymbolAtDot())
			}
		}
	}
	return result
}

// gotoAll computes goto(I, X) for every symbol X appearing at a dot in I,
// in a single linear scan over I's items: because items are ordered by
// symbol-at-dot, items sharing a symbol form a contiguous run, so each run
// is shifted once into a fresh set and closed.
func gotoAll(g *grammar.Grammar, items *ItemSet) map[grammar.Symbol]*ItemSet {
	shifted := make(map[grammar.Symbol]*ItemSet)
	for _, it := range items.Values() {
		sym := it.SymbolAtDot()
		if sym == grammar.SymbolEnd {
			continue
		}
		s := shifted[sym]
		if s == nil {
			s = newItemSet()
			shifted[sym] = s
		}
		s.Add(it.Advance())
	}
	result := make(map[grammar.Symbol]*ItemSet, len(shifted))
	for sym, s := range shifted {
		result[sym] = closure(g, s)
	}
	return result
}
