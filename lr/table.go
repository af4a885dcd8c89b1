/*
Package lr builds the canonical LR(0) collection of item sets and the
associated shift/goto/reduce table for an augmented grammar: closure, goto,
and the state-construction fixpoint that turns a finalized grammar into a
deterministic characteristic finite state machine.

Each state is built by dedup-against-existing-states (a content hash
pre-filter, then an exact item-set comparison), the same shape a
hand-rolled CFSM builder takes, but here each transition is emitted as a
single structured Action value rather than a pair of sparse-matrix
lookups, so a whole table can be walked or serialized without a second
data structure alongside it.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package lr

import (
	"fmt"
	"sort"

	"github.com/npillmayer/lr0gen/grammar"
	"github.com/npillmayer/lr0gen/lr/sparse"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lr0gen.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lr0gen.lr")
}

// ActionKind distinguishes the three kinds of table entry.
type ActionKind int

const (
	Shift ActionKind = iota
	Goto
	Reduce
)

func (k ActionKind) String() string {
	switch k {
	case Shift:
		return "shift"
	case Goto:
		return "goto"
	case Reduce:
		return "reduce"
	default:
		return "?"
	}
}

// Action is a tagged union of Shift(label, target), Goto(label, target), and
// Reduce(rule). Shift and Goto share structure, differing only in whether
// Label is a terminal or a variable.
type Action struct {
	Kind   ActionKind
	Label  grammar.Symbol // meaningful for Shift/Goto
	Target int            // target state id, meaningful for Shift/Goto
	Rule   *grammar.Rule  // meaningful for Reduce
}

func (a Action) String() string {
	switch a.Kind {
	case Reduce:
		return fmt.Sprintf("reduce %s", a.Rule)
	default:
		return fmt.Sprintf("%s %s -> s%d", a.Kind, a.Label, a.Target)
	}
}

// State is one state of the characteristic finite state machine: its item
// set, the ordered actions leaving it, and flags summarizing whether it
// holds shift and/or reduce items (detectConflicts records a shift/reduce
// conflict when both are set; the recognizer still drives such a state,
// see lr/driver).
type State struct {
	ID        int
	Items     *ItemSet
	Actions   []Action
	HasShift  bool
	HasReduce bool
	// Accept marks a state containing the completed augmentation item
	// (START -> S .). Because nothing ever references START on a RHS,
	// there is no Goto(START) edge to follow after this item completes:
	// its completion is the distinguished "reduction of the accept rule"
	// the driver checks for directly, rather than a generic Reduce
	// action, so it never shows up as a shift/reduce conflict against a
	// sibling shiftable item in the same state (see lr/driver).
	Accept bool
}

// ShiftOn returns the Shift action for terminal b, if any.
func (s *State) ShiftOn(b grammar.Symbol) (Action, bool) {
	for _, a := range s.Actions {
		if a.Kind == Shift && a.Label == b {
			return a, true
		}
	}
	return Action{}, false
}

// GotoOn returns the Goto action for variable v, if any.
func (s *State) GotoOn(v grammar.Symbol) (Action, bool) {
	for _, a := range s.Actions {
		if a.Kind == Goto && a.Label == v {
			return a, true
		}
	}
	return Action{}, false
}

// Reduces returns every Reduce action in the state. In an LR(0) state free
// of conflicts this has at most one element.
func (s *State) Reduces() []Action {
	var rs []Action
	for _, a := range s.Actions {
		if a.Kind == Reduce {
			rs = append(rs, a)
		}
	}
	return rs
}

func (s *State) String() string {
	return fmt.Sprintf("s%d %s", s.ID, s.Items)
}

// ConflictKind distinguishes the two ways a state can be non-deterministic.
type ConflictKind int

const (
	ShiftReduce ConflictKind = iota
	ReduceReduce
)

func (k ConflictKind) String() string {
	if k == ShiftReduce {
		return "shift/reduce"
	}
	return "reduce/reduce"
}

// Conflict records a state admitting more than one possible action. The
// builder only records conflicts; resolving them (via lookahead, precedence,
// or any other disambiguation scheme) is out of scope here. The two kinds
// differ in severity: a reduce/reduce state leaves a driver no way to pick
// a rule, while a shift/reduce state is still driveable by preferring the
// shift (see lr/driver).
type Conflict struct {
	StateID int
	Kind    ConflictKind
}

func (c Conflict) String() string {
	return fmt.Sprintf("state %d: %s conflict", c.StateID, c.Kind)
}

// Table is the canonical LR(0) collection plus its action table: an
// ordered collection of States indexed by ID, referencing each other by ID
// rather than by pointer so that growth of the state list never
// invalidates a reference.
type Table struct {
	Grammar   *grammar.Grammar
	States    []*State
	Conflicts []Conflict
}

// Start returns the initial state, s0.
func (t *Table) Start() *State { return t.States[0] }

// State returns the state with the given id.
func (t *Table) State(id int) *State { return t.States[id] }

// HasConflicts reports whether any state of the table admits more than one
// action for some input.
func (t *Table) HasConflicts() bool { return len(t.Conflicts) > 0 }

// TransitionMatrix packs every Shift and Goto edge of the table into a
// sparse, row-per-state, column-per-symbol matrix of target state ids
// (a compact form for dumping or serializing the whole automaton without
// walking every state's Actions slice by hand). Reduce actions carry no
// target state and are not represented here; callers needing them still
// go through State.Reduces.
func (t *Table) TransitionMatrix() *sparse.Matrix {
	m := sparse.New()
	for _, st := range t.States {
		for _, a := range st.Actions {
			if a.Kind == Reduce {
				continue
			}
			m.Put(st.ID, int(a.Label), int32(a.Target))
		}
	}
	return m
}

// Build computes the canonical LR(0) collection and action table for an
// augmented, finalized grammar. g must have at least the augmentation rule;
// an empty grammar reaching this point is an internal invariant violation
// (a grammar parser must reject an empty grammar before it ever reaches the
// table builder), not a recoverable error, so Build panics rather than
// returning one.
func Build(g *grammar.Grammar) *Table {
	if len(g.Rules) == 0 {
		panic("lr: cannot build a table for an empty grammar")
	}
	tracer().Infof("building LR(0) table for %d rules", len(g.Rules))

	startItems := newItemSet()
	startItems.Add(StartItem(g.StartRule()))
	s0items := closure(g, startItems)

	states := make([]*State, 0, 16)
	byHash := make(map[string][]*State)

	addState := func(items *ItemSet) (*State, bool) {
		h := items.Hash()
		for _, cand := range byHash[h] {
			if cand.Items.Equals(items) {
				return cand, false
			}
		}
		st := &State{ID: len(states), Items: items}
		states = append(states, st)
		byHash[h] = append(byHash[h], st)
		return st, true
	}

	s0, _ := addState(s0items)
	queue := []*State{s0}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		gotoSets := gotoAll(g, cur.Items)
		syms := make([]grammar.Symbol, 0, len(gotoSets))
		for sym := range gotoSets {
			syms = append(syms, sym)
		}
		sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })

		for _, sym := range syms {
			target, isNew := addState(gotoSets[sym])
			if isNew {
				queue = append(queue, target)
			}
			kind := Shift
			if grammar.IsVariable(sym) {
				kind = Goto
			}
			cur.Actions = append(cur.Actions, Action{Kind: kind, Label: sym, Target: target.ID})
			if kind == Shift {
				cur.HasShift = true
			}
			tracer().Debugf("%s --%s--> s%d", cur, sym, target.ID)
		}
		for _, it := range cur.Items.Values() {
			if !it.Complete() {
				continue
			}
			if it.Rule.LHS() == grammar.StartSymbol {
				// Completing the augmentation rule means the whole input has
				// derived from the start symbol; whether that's acceptance
				// depends on whether any input remains, which only the driver
				// knows. Keep it out of Actions/HasReduce so it never reads as
				// a spurious shift/reduce conflict against a sibling item
				// still expecting more of the start symbol's RHS.
				cur.Accept = true
				continue
			}
			cur.Actions = append(cur.Actions, Action{Kind: Reduce, Rule: it.Rule})
			cur.HasReduce = true
		}
	}

	t := &Table{Grammar: g, States: states}
	t.Conflicts = detectConflicts(states)
	tracer().Infof("built %d states, %d conflicts", len(states), len(t.Conflicts))
	return t
}

// shiftMarker occupies a conflict cell's slot for "this state also has a
// live shift"; rule IDs are never negative, so it can't be mistaken for one.
const shiftMarker int32 = -1

// detectConflicts finds every state admitting more than one action by
// running each state's shift/reduce actions through a single-column sparse
// matrix, one row per state. Add accumulates at most two values per cell:
// the first competing action claims the cell's primary slot, and a second
// one landing in the same slot is the conflict itself, already paired up by
// the matrix rather than recomputed from Actions afterwards. Reduces claim
// their slots first, so two reduce rules always read back as reduce/reduce
// even when the state shifts too.
func detectConflicts(states []*State) []Conflict {
	cells := sparse.New()
	for _, st := range states {
		reduces := st.Reduces()
		for _, r := range reduces {
			cells.Add(st.ID, 0, int32(r.Rule.ID))
		}
		if len(reduces) < 2 && st.HasShift {
			cells.Add(st.ID, 0, shiftMarker)
		}
	}
	var conflicts []Conflict
	for _, st := range states {
		a, b := cells.Pair(st.ID, 0)
		if b == sparse.None {
			continue // at most one action claimed this state's cell
		}
		kind := ReduceReduce
		if a == shiftMarker || b == shiftMarker {
			kind = ShiftReduce
		}
		conflicts = append(conflicts, Conflict{StateID: st.ID, Kind: kind})
	}
	return conflicts
}
