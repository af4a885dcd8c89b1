/*
Package parse turns grammar source into a *grammar.Grammar: the custom
surface syntax (ParseCustom, over a lex.Tokenizer token stream) and the BNF
surface syntax (ParseBNF, scanned line by line) both converge on the same
grammar.Grammar construction path.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package parse

import (
	"fmt"

	"github.com/npillmayer/lr0gen/grammar"
	"github.com/npillmayer/lr0gen/lex"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lr0gen.parse'.
func tracer() tracing.Trace {
	return tracing.Select("lr0gen.parse")
}

// ParseError reports a syntax problem in the grammar source: a missing or
// misplaced ':', an unresolved variable, or an unexpected token.
type ParseError struct {
	Line   int
	Col    int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: error: %s", e.Line, e.Col, e.Reason)
}

// parser holds the state shared by the recursive-descent parse of the
// custom grammar syntax.
type parser struct {
	tz   *lex.Tokenizer
	st   *grammar.SymbolTable
	g    *grammar.Grammar
	errs []error
}

// ParseCustom parses the custom grammar surface syntax: uppercase Variable
// names, ':' '|' ';' punctuation, byte-level terminal runs with backslash
// escapes.
//
// On success it returns a finalized, augmented Grammar. On any lex or parse
// error it returns the accumulated diagnostics and a nil Grammar: callers
// must not proceed to table construction.
func ParseCustom(src []byte) (*grammar.Grammar, []error) {
	st := grammar.NewSymbolTable()
	p := &parser{
		tz: lex.New(src),
		st: st,
		g:  grammar.NewGrammar(st),
	}
	p.parseGrammar()
	if len(p.g.Rules) == 0 {
		p.fail(0, 0, "empty grammar: no productions to augment")
	}
	if len(p.errs) > 0 {
		return nil, p.errs
	}
	p.g.Augment(grammar.FirstUserVariable)
	p.g.Finalize()
	tracer().Infof("parsed grammar with %d rules", len(p.g.Rules))
	return p.g, nil
}

func (p *parser) fail(line, col int, format string, args ...interface{}) {
	p.errs = append(p.errs, &ParseError{Line: line, Col: col, Reason: fmt.Sprintf(format, args...)})
}

// next/peek wrap the tokenizer, turning lex errors into accumulated parse
// diagnostics and an EOF token so the parser can keep going (lex errors are
// not recoverable mid-token, so we stop scanning further productions).
func (p *parser) peek(offset int) lex.Token {
	tok, err := p.tz.Peek(offset)
	if err != nil {
		p.errs = append(p.errs, err)
		return lex.Token{Kind: lex.EndOfFile}
	}
	return tok
}

func (p *parser) next() lex.Token {
	tok, err := p.tz.Next()
	if err != nil {
		p.errs = append(p.errs, err)
		return lex.Token{Kind: lex.EndOfFile}
	}
	return tok
}

func (p *parser) parseGrammar() {
	for {
		tok := p.peek(0)
		if tok.Kind == lex.EndOfFile {
			break
		}
		p.parseProduction()
	}
	p.checkUndefinedVariables()
}

func (p *parser) parseProduction() {
	lhsTok := p.peek(0)
	if lhsTok.Kind != lex.Variable {
		p.fail(lhsTok.Line, lhsTok.Col, "unexpected token %s, expected a variable", lhsTok.Kind)
		p.resync()
		return
	}
	p.next()
	lhs := p.st.DeclareVariable(lhsTok.Text)

	colonTok := p.peek(0)
	if colonTok.Kind != lex.Colon {
		p.fail(colonTok.Line, colonTok.Col, "missing ':' after variable %q", lhsTok.Text)
		p.resync()
		return
	}
	p.next()

	for {
		seq := p.parseSequence()
		r := p.g.AddRule(lhs, seq)
		tracer().Debugf("parsed rule %s", r)
		nxt := p.peek(0)
		if nxt.Kind == lex.Bar {
			p.next()
			continue
		}
		break
	}
	if p.peek(0).Kind == lex.Semicolon {
		p.next()
	}
}

// parseSequence consumes (Variable | TerminalsSequence)* up to a '|', ';',
// EOF, or the start of the next production. A Variable followed by ':'
// always starts the next production rather than extending this sequence
// (this is exactly why the tokenizer offers two-token lookahead).
func (p *parser) parseSequence() []grammar.Symbol {
	var seq []grammar.Symbol
	for {
		tok := p.peek(0)
		switch tok.Kind {
		case lex.Bar, lex.Semicolon, lex.EndOfFile:
			return seq
		case lex.Colon:
			p.fail(tok.Line, tok.Col, "unexpected ':' inside a sequence")
			p.resync()
			return seq
		case lex.Variable:
			next := p.peek(1)
			if next.Kind == lex.Colon {
				return seq
			}
			p.next()
			seq = append(seq, p.st.DeclareVariable(tok.Text))
		case lex.TerminalsSequence:
			p.next()
			for _, b := range []byte(tok.Text) {
				seq = append(seq, grammar.Symbol(b))
			}
		default:
			p.fail(tok.Line, tok.Col, "unexpected token %s in sequence", tok.Kind)
			p.resync()
			return seq
		}
	}
}

// resync discards tokens up to and including the next ';', or up to EOF,
// so that one bad production does not abort diagnostic collection for the
// rest of the grammar.
func (p *parser) resync() {
	for {
		tok := p.peek(0)
		if tok.Kind == lex.EndOfFile {
			return
		}
		p.next()
		if tok.Kind == lex.Semicolon {
			return
		}
	}
}

func (p *parser) checkUndefinedVariables() {
	defined := p.g.DefinedVariables()
	for _, v := range p.g.ReferencedVariables() {
		if !defined[v] {
			p.fail(0, 0, "undefined variable %q", p.st.Name(v))
		}
	}
}
