package lr

import (
	"fmt"

	"github.com/npillmayer/lr0gen/grammar"
)

// Item is an LR(0) item: a stable reference to a rule plus a dot position.
// Dot indexes into Rule.Symbols the same way the rule itself does (0 is the
// LHS, 1 is just after it); the item is complete once the symbol at Dot is
// grammar.SymbolEnd.
type Item struct {
	Rule *grammar.Rule
	Dot  int
}

// StartItem builds the kernel item of the initial state: the augmentation
// rule with the dot just after its LHS.
func StartItem(startRule *grammar.Rule) Item {
	return Item{Rule: startRule, Dot: 1}
}

// SymbolAtDot returns the symbol immediately after the dot, or
// grammar.SymbolEnd if the item is complete.
func (i Item) SymbolAtDot() grammar.Symbol {
	return i.Rule.SymbolAt(i.Dot)
}

// Complete reports whether the dot has reached the end of the rule.
func (i Item) Complete() bool {
	return i.SymbolAtDot() == grammar.SymbolEnd
}

// Advance returns the item with the dot moved one position to the right.
// Advancing a complete item is a no-op (callers must not call Advance on an
// item whose symbol at dot is grammar.SymbolEnd; gotoAll never does).
func (i Item) Advance() Item {
	if i.Complete() {
		return i
	}
	return Item{Rule: i.Rule, Dot: i.Dot + 1}
}

func (i Item) String() string {
	s := i.Rule.LHS().String() + " ->"
	for k := 1; k < i.Rule.Len(); k++ {
		if k == i.Dot {
			s += " ."
		}
		s += " " + i.Rule.SymbolAt(k).String()
	}
	if i.Dot == i.Rule.Len() {
		s += " ."
	}
	return s
}

// itemComparator orders items by the triple (symbol-at-dot, dot,
// rule-id). grammar.SymbolEnd == 0 sorts lowest, so complete items always
// come first within an item set, then items are grouped by the symbol to be
// shifted (the ordering goto's single linear scan relies on).
func itemComparator(a, b interface{}) int {
	ia, ib := a.(Item), b.(Item)
	sa, sb := ia.SymbolAtDot(), ib.SymbolAtDot()
	switch {
	case sa != sb:
		if sa < sb {
			return -1
		}
		return 1
	case ia.Dot != ib.Dot:
		if ia.Dot < ib.Dot {
			return -1
		}
		return 1
	case ia.Rule.ID != ib.Rule.ID:
		if ia.Rule.ID < ib.Rule.ID {
			return -1
		}
		return 1
	default:
		return 0
	}
}

func asItem(x interface{}) Item {
	it, ok := x.(Item)
	if !ok {
		panic(fmt.Sprintf("lr: expected Item in item set, got %T", x))
	}
	return it
}
