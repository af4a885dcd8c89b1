/*
Command lr0gen parses a grammar, builds its LR(0) table, and decides
membership of zero or more candidate strings against it, optionally
dumping the automaton and per-string step traces as JSON for
visualization.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/npillmayer/lr0gen/dump"
	"github.com/npillmayer/lr0gen/grammar"
	"github.com/npillmayer/lr0gen/lr"
	"github.com/npillmayer/lr0gen/lr/driver"
	"github.com/npillmayer/lr0gen/parse"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
)

func tracer() tracing.Trace {
	return tracing.Select("lr0gen.cmd")
}

func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()

	form := flag.String("f", "custom", "grammar surface syntax: bnf or custom")
	automatonPath := flag.String("generate-automaton", "", "write the automaton as JSON to this path")
	stepsPrefix := flag.String("generate-steps", "", "write a step trace for each candidate string to <prefix><i>")
	tlevel := flag.String("trace", "Info", "trace level [Debug|Info|Error]")
	interactive := flag.Bool("i", false, "drop into an interactive REPL after building the table")
	flag.BoolVar(interactive, "interactive", false, "alias for -i")
	flag.Parse()

	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))

	args := flag.Args()
	if len(args) < 1 {
		fatalUsage("missing grammar source string")
	}
	if *form != "bnf" && *form != "custom" {
		fatalUsage("-f must be \"bnf\" or \"custom\"")
	}

	src := args[0]
	candidates := args[1:]

	g, errs := parseGrammar(*form, src)
	if len(errs) != 0 {
		for _, e := range errs {
			pterm.Error.Println(e.Error())
		}
		os.Exit(1)
	}

	tbl := lr.Build(g)
	structural := false
	for _, c := range tbl.Conflicts {
		if c.Kind == lr.ReduceReduce {
			// No driver can pick between two reduce rules without
			// lookahead; the grammar is unusable as written.
			pterm.Error.Println(c.String())
			structural = true
		} else {
			pterm.Warning.Println(c.String())
		}
	}
	if structural {
		os.Exit(1)
	}
	pterm.Info.Println(fmt.Sprintf("built %d states for %d rules", len(tbl.States), len(g.Rules)))

	if *automatonPath != "" {
		if err := writeAutomaton(tbl, *automatonPath); err != nil {
			fatalIO(err)
		}
	}
	exit := 0
	for i, cand := range candidates {
		ok, steps, err := driver.MatchWithTrace(tbl, []byte(cand))
		if err != nil {
			pterm.Error.Println(err.Error())
			exit = 1
			continue
		}
		pterm.Info.Println(fmt.Sprintf("%q: accepted=%v", cand, ok))
		if *stepsPrefix != "" {
			path := fmt.Sprintf("%s%d", *stepsPrefix, i)
			if err := writeSteps(cand, steps, path); err != nil {
				fatalIO(err)
			}
		}
	}

	if *interactive {
		repl(g, tbl)
	}
	if exit != 0 {
		os.Exit(exit)
	}
}

func parseGrammar(form, src string) (*grammar.Grammar, []error) {
	if form == "bnf" {
		return parse.ParseBNF([]byte(src))
	}
	return parse.ParseCustom([]byte(src))
}

// automatonEdge is one shift/goto edge in the JSON automaton export.
type automatonEdge struct {
	Label int `json:"label"`
	Dst   int `json:"dst"`
}

func writeAutomaton(tbl *lr.Table, path string) error {
	states := make([][]automatonEdge, len(tbl.States))
	for _, st := range tbl.States {
		edges := make([]automatonEdge, 0, len(st.Actions))
		for _, a := range st.Actions {
			if a.Kind == lr.Reduce {
				continue
			}
			edges = append(edges, automatonEdge{Label: int(a.Label), Dst: a.Target})
		}
		states[st.ID] = edges
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	return enc.Encode(states)
}

type stepAction struct {
	Type   string      `json:"type"`
	To     *reduceInfo `json:"to,omitempty"`
	Result *int        `json:"result,omitempty"`
}

type reduceInfo struct {
	Symbol string `json:"symbol"`
	Size   int    `json:"size"`
}

func writeSteps(input string, steps []driver.Step, path string) error {
	actions := make([]stepAction, 0, len(steps))
	for _, s := range steps {
		switch s.Kind {
		case "shift":
			actions = append(actions, stepAction{Type: "shift"})
		case "reduce":
			actions = append(actions, stepAction{Type: "reduce", To: &reduceInfo{Symbol: s.LHS, Size: s.RHSLen}})
		case "finish":
			result := 0
			if s.Accepted {
				result = 1
			}
			actions = append(actions, stepAction{Type: "finish", Result: &result})
		}
	}
	payload := struct {
		String  string       `json:"string"`
		Actions []stepAction `json:"actions"`
	}{String: input, Actions: actions}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	return enc.Encode(payload)
}

func repl(g *grammar.Grammar, tbl *lr.Table) {
	rl, err := readline.New("lr0gen> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer rl.Close()
	pterm.Info.Println("enter a candidate string, or \"grammar\"/\"table\" to dump; <ctrl>D to quit")
	for {
		line, err := rl.Readline()
		if err != nil {
			break
		}
		switch line {
		case "grammar":
			dump.Grammar(g)
		case "table":
			dump.Table(tbl)
		default:
			ok, steps, err := driver.MatchWithTrace(tbl, []byte(line))
			if err != nil {
				pterm.Error.Println(err.Error())
				continue
			}
			dump.Trace(steps)
			pterm.Info.Println(fmt.Sprintf("accepted=%v", ok))
		}
	}
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func fatalUsage(msg string) {
	pterm.Error.Println("usage error: " + msg)
	flag.Usage()
	os.Exit(2)
}

func fatalIO(err error) {
	pterm.Error.Println("I/O error: " + err.Error())
	os.Exit(4)
}
