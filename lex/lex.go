/*
Package lex implements the tokenizer for the custom grammar surface syntax:
uppercase Variable names, punctuation (':' ';' '|'), and byte-level
TerminalsSequence runs with backslash-escaping of reserved bytes.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package lex

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lr0gen.lex'.
func tracer() tracing.Trace {
	return tracing.Select("lr0gen.lex")
}

// Kind identifies one of the six token kinds the grammar tokenizer produces.
type Kind int

const (
	Variable Kind = iota
	TerminalsSequence
	Colon
	Semicolon
	Bar
	EndOfFile
)

func (k Kind) String() string {
	switch k {
	case Variable:
		return "Variable"
	case TerminalsSequence:
		return "TerminalsSequence"
	case Colon:
		return "Colon"
	case Semicolon:
		return "Semicolon"
	case Bar:
		return "Bar"
	case EndOfFile:
		return "EndOfFile"
	default:
		return "?"
	}
}

// Token is one lexical unit, carrying its source position for diagnostics.
// Text holds the variable name for a Variable token, or the byte-decoded
// (escapes resolved) run for a TerminalsSequence; it is empty for
// punctuation and EOF.
type Token struct {
	Kind Kind
	Text string
	Line int
	Col  int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Kind, t.Text, t.Line, t.Col)
}

// LexError reports an invalid escape sequence or an unescaped non-printable
// byte, located by line and column.
type LexError struct {
	Line   int
	Col    int
	Reason string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%d:%d: error: %s", e.Line, e.Col, e.Reason)
}

// Tokenizer turns grammar source bytes into a token stream with one-token
// lookahead at offsets 0 and 1.
type Tokenizer struct {
	src  []byte
	pos  int
	line int
	col  int
	buf  []Token // pending lookahead tokens, at most 2
}

// New creates a Tokenizer over src.
func New(src []byte) *Tokenizer {
	return &Tokenizer{src: src, line: 1, col: 1}
}

// Peek returns the token at lookahead offset 0 or 1 without consuming it.
func (t *Tokenizer) Peek(offset int) (Token, error) {
	if offset < 0 || offset > 1 {
		panic("lex: Peek offset must be 0 or 1")
	}
	for len(t.buf) <= offset {
		tok, err := t.scanOne()
		if err != nil {
			return Token{}, err
		}
		t.buf = append(t.buf, tok)
	}
	return t.buf[offset], nil
}

// Next consumes and returns the current token (the one at lookahead offset
// 0).
func (t *Tokenizer) Next() (Token, error) {
	tok, err := t.Peek(0)
	if err != nil {
		return Token{}, err
	}
	t.buf = t.buf[1:]
	return tok, nil
}

func (t *Tokenizer) atEnd() bool { return t.pos >= len(t.src) }

func (t *Tokenizer) peekByte(ahead int) (byte, bool) {
	if t.pos+ahead >= len(t.src) {
		return 0, false
	}
	return t.src[t.pos+ahead], true
}

func (t *Tokenizer) advance() byte {
	b := t.src[t.pos]
	t.pos++
	if b == '\n' {
		t.line++
		t.col = 1
	} else {
		t.col++
	}
	return b
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isAlnum(b byte) bool {
	return isUpper(b) || (b >= 'a' && b <= 'z') || isDigit(b)
}

func isVarCont(b byte) bool {
	return isAlnum(b) || b == '\'' || b == '-' || b == '_'
}

func isPunct(b byte) bool { return b == ':' || b == ';' || b == '|' }

// isReservedByte is a byte a backslash may legally escape inside a
// TerminalsSequence: an uppercase letter, one of the three punctuation
// bytes, a space, or a literal backslash.
func isReservedByte(b byte) bool {
	return isUpper(b) || isPunct(b) || b == ' ' || b == '\\'
}

func isPrintable(b byte) bool { return b >= 0x21 && b <= 0x7e }

func (t *Tokenizer) scanOne() (Token, error) {
	for !t.atEnd() && isSpace(t.src[t.pos]) {
		t.advance()
	}
	if t.atEnd() {
		return Token{Kind: EndOfFile, Line: t.line, Col: t.col}, nil
	}
	startLine, startCol := t.line, t.col
	b := t.src[t.pos]
	switch {
	case b == ':':
		t.advance()
		return Token{Kind: Colon, Line: startLine, Col: startCol}, nil
	case b == ';':
		t.advance()
		return Token{Kind: Semicolon, Line: startLine, Col: startCol}, nil
	case b == '|':
		t.advance()
		return Token{Kind: Bar, Line: startLine, Col: startCol}, nil
	case isUpper(b):
		return t.scanVariable(startLine, startCol)
	default:
		return t.scanTerminals(startLine, startCol)
	}
}

func (t *Tokenizer) scanVariable(line, col int) (Token, error) {
	start := t.pos
	t.advance()
	for !t.atEnd() && isVarCont(t.src[t.pos]) {
		t.advance()
	}
	name := string(t.src[start:t.pos])
	tok := Token{Kind: Variable, Text: name, Line: line, Col: col}
	tracer().Debugf("scanned %s", tok)
	return tok, nil
}

func (t *Tokenizer) scanTerminals(line, col int) (Token, error) {
	var decoded []byte
	for !t.atEnd() {
		b := t.src[t.pos]
		if b == '\\' {
			nb, ok := t.peekByte(1)
			if !ok {
				return Token{}, &LexError{Line: t.line, Col: t.col, Reason: "trailing backslash at end of input"}
			}
			if !isReservedByte(nb) {
				return Token{}, &LexError{
					Line: t.line, Col: t.col,
					Reason: fmt.Sprintf("invalid escape sequence \\%c", nb),
				}
			}
			t.advance() // consume backslash
			t.advance() // consume escaped byte
			decoded = append(decoded, nb)
			continue
		}
		if isSpace(b) || isUpper(b) || isPunct(b) {
			break
		}
		if !isPrintable(b) {
			return Token{}, &LexError{Line: t.line, Col: t.col, Reason: fmt.Sprintf("non-printable byte 0x%02x", b)}
		}
		t.advance()
		decoded = append(decoded, b)
	}
	if len(decoded) == 0 {
		return Token{}, &LexError{Line: line, Col: col, Reason: "empty terminal sequence"}
	}
	tok := Token{Kind: TerminalsSequence, Text: string(decoded), Line: line, Col: col}
	tracer().Debugf("scanned %s", tok)
	return tok, nil
}
