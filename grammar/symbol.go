/*
Package grammar implements the symbol space and the rule/grammar data model
for an LR(0) grammar: a single integer code space shared by terminals (bytes)
and variables (non-terminals), plus the augmented, ordered set of rules built
from it.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package grammar

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lr0gen.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("lr0gen.grammar")
}

// Symbol is a code drawn from a single space partitioned into three regions:
// the end-of-rule sentinel (0), terminals (a terminal's code is its byte
// value, [1,255]), and variables (the reserved augmented start variable at
// 256, followed by user variables from 257 up).
type Symbol int

const (
	// SymbolEnd is the rule terminator / "dot past the end" sentinel. It is
	// never a real symbol.
	SymbolEnd Symbol = 0
	// StartSymbol is the reserved code for the synthetic augmented start
	// variable, injected by the grammar parser after parsing completes.
	StartSymbol Symbol = 256
	// FirstUserVariable is the code assigned to the first variable seen in
	// source order.
	FirstUserVariable Symbol = 257
)

// IsVariable reports whether s names a variable (the start symbol or a user
// variable), as opposed to a terminal or the end sentinel.
func IsVariable(s Symbol) bool { return s >= StartSymbol }

// IsTerminal reports whether s is a terminal, i.e. a byte value in [1,255].
func IsTerminal(s Symbol) bool { return s > SymbolEnd && s < StartSymbol }

// String renders a symbol without requiring a SymbolTable: terminals render
// as their byte, the start symbol and end sentinel get fixed labels, and
// user variables render as "$<code>" (use SymbolTable.Name for a real name).
func (s Symbol) String() string {
	switch {
	case s == SymbolEnd:
		return "<end>"
	case s == StartSymbol:
		return "<start>"
	case IsTerminal(s):
		return fmt.Sprintf("%q", byte(s))
	default:
		return fmt.Sprintf("$%d", int(s))
	}
}

// SymbolTable assigns fresh variable codes to never-seen-before names and
// maintains the bidirectional (name <-> code) lookup for the variable half
// of the symbol space. Terminals need no table: their code is their byte
// value.
type SymbolTable struct {
	names []string // names[0] is reserved for StartSymbol; names[i] (i>=1) names code StartSymbol+i
	codes map[string]Symbol
	next  Symbol
}

// NewSymbolTable creates an empty symbol table with StartSymbol's name slot
// reserved (but not yet set: the grammar parser sets it once augmentation
// happens).
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		names: []string{""},
		codes: make(map[string]Symbol),
		next:  FirstUserVariable,
	}
}

// DeclareVariable returns the code for name, assigning a fresh one on first
// sight and reusing it on every subsequent call.
func (t *SymbolTable) DeclareVariable(name string) Symbol {
	if code, ok := t.codes[name]; ok {
		return code
	}
	code := t.next
	t.next++
	t.codes[name] = code
	t.names = append(t.names, name)
	tracer().Debugf("declared variable %q = %d", name, code)
	return code
}

// LookupVariable returns the code of an already-declared variable, failing
// if the name has never been seen.
func (t *SymbolTable) LookupVariable(name string) (Symbol, bool) {
	code, ok := t.codes[name]
	return code, ok
}

// SetStartName records the display name of the reserved start symbol. A
// grammar parser calls this once, when augmenting, to record names[0] =
// "<start>".
func (t *SymbolTable) SetStartName(name string) {
	t.names[0] = name
}

// Name renders a symbol as text: a variable's declared identifier, a
// terminal's byte as a printable character (or its escape), or a fixed
// label for the end sentinel.
func (t *SymbolTable) Name(s Symbol) string {
	switch {
	case s == SymbolEnd:
		return "<end>"
	case IsVariable(s):
		idx := int(s - StartSymbol)
		if idx >= 0 && idx < len(t.names) {
			return t.names[idx]
		}
		return s.String()
	default:
		return terminalText(byte(s))
	}
}

// terminalText renders a terminal byte the way the tokenizer would have had
// to escape it on the way in.
func terminalText(b byte) string {
	if isReservedByte(b) || b == '\\' {
		return "\\" + string(b)
	}
	return string(b)
}

// isReservedByte reports whether b must be backslash-escaped inside a
// terminal sequence: an uppercase letter (would start a Variable token), the
// three punctuation tokens, or a space (would end the sequence).
func isReservedByte(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z':
		return true
	case b == ':' || b == ';' || b == '|':
		return true
	case b == ' ':
		return true
	}
	return false
}
