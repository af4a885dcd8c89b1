/*
Package dump renders a grammar and an LR(0) table as human-readable
output: a flat listing for the grammar's rules, and a pterm tree for the
characteristic finite state machine.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package dump

import (
	"fmt"

	"github.com/npillmayer/lr0gen/grammar"
	"github.com/npillmayer/lr0gen/lr"
	"github.com/npillmayer/lr0gen/lr/driver"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
)

// tracer traces with key 'lr0gen.dump'.
func tracer() tracing.Trace {
	return tracing.Select("lr0gen.dump")
}

// Grammar prints every rule of g, one per line, in finalized (sorted, ID)
// order.
func Grammar(g *grammar.Grammar) {
	for _, line := range g.Dump() {
		pterm.Println(line)
	}
}

// Table renders the table's states as a tree rooted at s0: each state is
// labeled with its item set and accept/conflict status, children are its
// outgoing shift/goto edges, and reduce-only states are leaves.
func Table(t *lr.Table) {
	root := stateNode(t, t.Start(), make(map[int]bool))
	pterm.DefaultTree.WithRoot(root).Render()
}

func stateNode(t *lr.Table, s *lr.State, visited map[int]bool) pterm.TreeNode {
	node := pterm.TreeNode{Text: stateLabel(s)}
	if visited[s.ID] {
		return node
	}
	visited[s.ID] = true
	for _, a := range s.Actions {
		if a.Kind == lr.Reduce {
			continue
		}
		child := stateNode(t, t.State(a.Target), visited)
		child.Text = fmt.Sprintf("--%s--> %s", a.Label, child.Text)
		node.Children = append(node.Children, child)
	}
	return node
}

func stateLabel(s *lr.State) string {
	label := fmt.Sprintf("s%d %s", s.ID, s.Items)
	if s.Accept {
		label += " [accept]"
	}
	for _, r := range s.Reduces() {
		label += fmt.Sprintf(" [reduce %s]", r.Rule)
	}
	return label
}

// Conflicts prints every recorded conflict, one per line, or a single
// "no conflicts" line if the table is deterministic.
func Conflicts(t *lr.Table) {
	if !t.HasConflicts() {
		pterm.Println("no conflicts")
		return
	}
	for _, c := range t.Conflicts {
		pterm.Println(c.String())
	}
}

// Trace prints a recognition trace, one step per line.
func Trace(steps []driver.Step) {
	for _, s := range steps {
		pterm.Println(s.String())
	}
}
