package parse

import (
	"fmt"
	"strings"

	"github.com/npillmayer/lr0gen/grammar"
)

// ParseBNF parses the BNF surface syntax: `<name> ::= "terminals" | <other>`,
// one production per (possibly continued) line, a significant newline
// terminating a production instead of ';'. Continuation lines begin with
// '|' and extend the previous line's alternatives.
//
// It shares the custom parser's error accumulation and undefined-variable
// check, and produces the same finalized, augmented Grammar.
func ParseBNF(src []byte) (*grammar.Grammar, []error) {
	st := grammar.NewSymbolTable()
	p := &parser{st: st, g: grammar.NewGrammar(st)}

	var currentLHS grammar.Symbol
	haveLHS := false
	lineNo := 0
	for _, raw := range strings.Split(string(src), "\n") {
		lineNo++
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "|") {
			if !haveLHS {
				p.fail(lineNo, 1, "continuation line '|' with no preceding production")
				continue
			}
			alts, err := bnfAlternative(trimmed[1:], lineNo, st)
			if err != nil {
				p.errs = append(p.errs, err)
				continue
			}
			p.g.AddRule(currentLHS, alts)
			continue
		}
		name, rest, err := bnfSplitHeader(trimmed, lineNo)
		if err != nil {
			p.errs = append(p.errs, err)
			continue
		}
		currentLHS = st.DeclareVariable(name)
		haveLHS = true
		// Split on '|' outside string literals only, so a literal may hold '|'.
		var parts []string
		inLit, from := false, 0
		for k := 0; k < len(rest); k++ {
			switch {
			case inLit && rest[k] == '\\':
				k++
			case rest[k] == '"':
				inLit = !inLit
			case !inLit && rest[k] == '|':
				parts = append(parts, rest[from:k])
				from = k + 1
			}
		}
		parts = append(parts, rest[from:])
		for _, part := range parts {
			alts, err := bnfAlternative(part, lineNo, st)
			if err != nil {
				p.errs = append(p.errs, err)
				continue
			}
			p.g.AddRule(currentLHS, alts)
		}
	}
	p.checkUndefinedVariables()
	if len(p.g.Rules) == 0 {
		p.fail(0, 0, "empty grammar: no productions to augment")
	}
	if len(p.errs) > 0 {
		return nil, p.errs
	}
	p.g.Augment(grammar.FirstUserVariable)
	p.g.Finalize()
	tracer().Infof("parsed BNF grammar with %d rules", len(p.g.Rules))
	return p.g, nil
}

// bnfSplitHeader splits "<name> ::= rest" into (name, rest).
func bnfSplitHeader(line string, lineNo int) (string, string, error) {
	if !strings.HasPrefix(line, "<") {
		return "", "", &ParseError{Line: lineNo, Col: 1, Reason: "expected '<name>' at start of production"}
	}
	end := strings.Index(line, ">")
	if end < 0 {
		return "", "", &ParseError{Line: lineNo, Col: 1, Reason: "unterminated '<name>'"}
	}
	name := line[1:end]
	rest := strings.TrimSpace(line[end+1:])
	const sep = "::="
	if !strings.HasPrefix(rest, sep) {
		return "", "", &ParseError{Line: lineNo, Col: end + 2, Reason: "missing '::=' after '<" + name + ">'"}
	}
	return name, rest[len(sep):], nil
}

// bnfAlternative parses one alternative: a sequence of `<name>` variable
// references and "..." string literals.
func bnfAlternative(part string, lineNo int, st *grammar.SymbolTable) ([]grammar.Symbol, error) {
	var seq []grammar.Symbol
	s := strings.TrimSpace(part)
	i := 0
	for i < len(s) {
		switch {
		case s[i] == ' ' || s[i] == '\t':
			i++
		case s[i] == '<':
			end := strings.IndexByte(s[i:], '>')
			if end < 0 {
				return nil, &ParseError{Line: lineNo, Col: i + 1, Reason: "unterminated '<name>'"}
			}
			name := s[i+1 : i+end]
			seq = append(seq, st.DeclareVariable(name))
			i += end + 1
		case s[i] == '"':
			j := i + 1
			var lit []byte
			for j < len(s) && s[j] != '"' {
				if s[j] == '\\' && j+1 < len(s) {
					j++
					lit = append(lit, s[j])
					j++
					continue
				}
				lit = append(lit, s[j])
				j++
			}
			if j >= len(s) {
				return nil, &ParseError{Line: lineNo, Col: i + 1, Reason: "unterminated string literal"}
			}
			for _, b := range lit {
				seq = append(seq, grammar.Symbol(b))
			}
			i = j + 1
		default:
			return nil, &ParseError{Line: lineNo, Col: i + 1, Reason: fmt.Sprintf("unexpected character %q in alternative", s[i])}
		}
	}
	return seq, nil
}
