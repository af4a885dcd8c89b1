/*
Package driver runs an LR(0) table over a byte string: a small pushdown
automaton pushing (state, symbol) pairs exactly the way an SLR(1) parser
stack does, but trading a token scanner for a plain byte cursor and
trading semantic actions for an optional step trace.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package driver

import (
	"fmt"

	"github.com/npillmayer/lr0gen/grammar"
	"github.com/npillmayer/lr0gen/lr"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lr0gen.driver'.
func tracer() tracing.Trace {
	return tracing.Select("lr0gen.driver")
}

// ConflictError is returned when the driver cannot proceed
// deterministically: a state offering more than one reduce rule
// (reduce/reduce), or a shift/reduce state whose reduce fallback has
// stopped making progress (see Match).
type ConflictError struct {
	StateID int
	Kind    lr.ConflictKind
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("state %d: %s conflict, cannot drive deterministically", e.StateID, e.Kind)
}

// stackitem mirrors an SLR(1) parser stack entry: the CFSM state reached
// plus the grammar symbol that got us there. The bottom entry carries
// grammar.SymbolEnd as a sentinel symbol; nothing ever pops it.
type stackitem struct {
	stateID int
	symbol  grammar.Symbol
}

// Step is one entry of a recognition trace: either a Shift of one input
// byte, a Reduce applying a rule (recording its left-hand side's name and
// how many symbols it consumed), or the terminal Finish record.
type Step struct {
	Kind     string // "shift", "reduce", or "finish"
	Byte     byte   // meaningful for "shift"
	LHS      string // meaningful for "reduce"
	RHSLen   int    // meaningful for "reduce"
	Accepted bool   // meaningful for "finish"
}

func (s Step) String() string {
	switch s.Kind {
	case "shift":
		return fmt.Sprintf("shift %q", s.Byte)
	case "reduce":
		return fmt.Sprintf("reduce %s (%d)", s.LHS, s.RHSLen)
	default:
		if s.Accepted {
			return "accept"
		}
		return "reject"
	}
}

// Machine drives a Table over an input string, a stack of (state, symbol)
// pairs plus a byte cursor standing in for the scanner an SLR(1) parser
// would otherwise consult.
type Machine struct {
	table  *lr.Table
	stack  []stackitem
	input  []byte
	cursor int
	trace  []Step
}

// New creates a Machine ready to recognize input against tbl.
func New(tbl *lr.Table, input []byte) *Machine {
	return &Machine{
		table: tbl,
		stack: []stackitem{{stateID: tbl.Start().ID, symbol: grammar.SymbolEnd}},
		input: input,
	}
}

// Trace returns the steps recorded by the most recent call to Match.
func (m *Machine) Trace() []Step { return m.trace }

// Match drives the machine to completion, returning whether the whole
// input was recognized by the table's grammar.
//
// A state with more than one reduce rule aborts the run with a
// reduce/reduce ConflictError the moment it is entered: there is no way to
// pick a rule without lookahead. A state carrying both a shift and a
// single reduce is still driveable: the shift wins whenever the current
// input byte matches one, and the reduce is the fallback otherwise. That
// fallback is what makes empty alternatives usable at all (the item `V ->
// .` completes in every state that can start a V, right next to live
// shifts), at the price that a grammar whose empty rules feed a goto cycle
// can reduce forever without consuming input; a run of reduces long enough
// to have provably revisited a configuration aborts with a shift/reduce
// ConflictError instead of spinning.
func (m *Machine) Match() (bool, error) {
	run, runLimit := 0, 0
	for {
		top := m.stack[len(m.stack)-1]
		state := m.table.State(top.stateID)
		if len(state.Reduces()) > 1 {
			return false, &ConflictError{StateID: state.ID, Kind: lr.ReduceReduce}
		}
		if run > 0 && run >= runLimit {
			return false, &ConflictError{StateID: state.ID, Kind: lr.ShiftReduce}
		}

		atEnd := m.cursor >= len(m.input)
		if atEnd {
			if state.Accept {
				m.finish(true)
				return true, nil
			}
			if reduces := state.Reduces(); len(reduces) == 1 {
				m.startRun(&run, &runLimit)
				m.reduce(reduces[0])
				continue
			}
			m.finish(false)
			return false, nil
		}

		b := grammar.Symbol(m.input[m.cursor])
		if shift, ok := state.ShiftOn(b); ok {
			m.shift(shift)
			run = 0
			continue
		}
		if reduces := state.Reduces(); len(reduces) == 1 {
			m.startRun(&run, &runLimit)
			m.reduce(reduces[0])
			continue
		}
		m.finish(false)
		return false, nil
	}
}

// startRun bounds a run of consecutive reduces. Reduces consume no input,
// so a terminating run only rearranges the symbols already on the stack:
// its length is bounded by the stack height at the start of the run times
// the longest chain of unit and empty rules, which the grammar and state
// counts dominate by a wide margin. A run past the limit has revisited a
// configuration (empty rules feeding a goto cycle) and will never make
// progress again.
func (m *Machine) startRun(run, runLimit *int) {
	if *run == 0 {
		*runLimit = (len(m.stack) + 2) * (len(m.table.Grammar.Rules) + 2) * (len(m.table.States) + 2)
	}
	*run++
}

func (m *Machine) shift(a lr.Action) {
	tracer().Debugf("shift %q -> s%d", byte(a.Label), a.Target)
	m.stack = append(m.stack, stackitem{stateID: a.Target, symbol: a.Label})
	m.cursor++
	m.trace = append(m.trace, Step{Kind: "shift", Byte: byte(a.Label)})
}

func (m *Machine) reduce(a lr.Action) {
	rule := a.Rule
	tracer().Debugf("reduce %s", rule)
	n := rule.RHSLen()
	m.stack = m.stack[:len(m.stack)-n]
	below := m.stack[len(m.stack)-1]
	belowState := m.table.State(below.stateID)
	g, ok := belowState.GotoOn(rule.LHS())
	if !ok {
		panic(fmt.Sprintf("driver: no goto on %s from state %d after reducing %s", rule.LHS(), below.stateID, rule))
	}
	m.stack = append(m.stack, stackitem{stateID: g.Target, symbol: rule.LHS()})
	m.trace = append(m.trace, Step{Kind: "reduce", LHS: m.table.Grammar.Symbols.Name(rule.LHS()), RHSLen: n})
}

func (m *Machine) finish(accepted bool) {
	tracer().Infof("finished, accepted=%v", accepted)
	m.trace = append(m.trace, Step{Kind: "finish", Accepted: accepted})
}

// Match is a convenience wrapper building a fresh Machine and running it,
// discarding the trace.
func Match(tbl *lr.Table, input []byte) (bool, error) {
	return New(tbl, input).Match()
}

// MatchWithTrace is like Match but also returns the recorded steps.
func MatchWithTrace(tbl *lr.Table, input []byte) (bool, []Step, error) {
	m := New(tbl, input)
	ok, err := m.Match()
	return ok, m.Trace(), err
}
