package lex

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func scanAll(t *testing.T, src string) []Token {
	t.Helper()
	tz := New([]byte(src))
	var toks []Token
	for {
		tok, err := tz.Next()
		if err != nil {
			t.Fatalf("unexpected lex error: %v", err)
		}
		toks = append(toks, tok)
		if tok.Kind == EndOfFile {
			break
		}
	}
	return toks
}

func TestBasicProduction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lr0gen.lex")
	defer teardown()

	toks := scanAll(t, "S : a ;")
	want := []Kind{Variable, Colon, TerminalsSequence, Semicolon, EndOfFile}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(toks), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: expected kind %v, got %v", i, k, toks[i].Kind)
		}
	}
	if toks[0].Text != "S" || toks[2].Text != "a" {
		t.Errorf("unexpected token text: %v", toks)
	}
}

func TestEscapeOfReservedByte(t *testing.T) {
	toks := scanAll(t, `S : \: ;`)
	if toks[2].Kind != TerminalsSequence || toks[2].Text != ":" {
		t.Fatalf("expected escaped colon to decode to single byte ':', got %v", toks[2])
	}
}

func TestInvalidEscapeIsLexError(t *testing.T) {
	tz := New([]byte(`S : \x ;`))
	for i := 0; i < 2; i++ {
		if _, err := tz.Next(); err != nil {
			t.Fatalf("unexpected error scanning prefix: %v", err)
		}
	}
	if _, err := tz.Next(); err == nil {
		t.Fatalf("expected lex error on invalid escape \\x")
	}
}

func TestTrailingBackslashIsLexError(t *testing.T) {
	tz := New([]byte(`S : a\`))
	for i := 0; i < 2; i++ {
		if _, err := tz.Next(); err != nil {
			t.Fatalf("unexpected error scanning prefix: %v", err)
		}
	}
	if _, err := tz.Next(); err == nil {
		t.Fatalf("expected lex error on trailing backslash")
	}
}

func TestTwoTokenLookahead(t *testing.T) {
	tz := New([]byte("S : a | b ;"))
	first, err := tz.Peek(0)
	if err != nil {
		t.Fatal(err)
	}
	second, err := tz.Peek(1)
	if err != nil {
		t.Fatal(err)
	}
	if first.Kind != Variable || second.Kind != Colon {
		t.Fatalf("unexpected lookahead: %v / %v", first, second)
	}
	// Peek must be idempotent.
	again, _ := tz.Peek(0)
	if again != first {
		t.Fatalf("Peek(0) not idempotent: %v != %v", again, first)
	}
}

func TestEOFRepeats(t *testing.T) {
	tz := New([]byte("S")) // will hit EOF partway through scanning a variable
	for i := 0; i < 4; i++ {
		tok, err := tz.Next()
		if err != nil {
			t.Fatal(err)
		}
		if i >= 1 && tok.Kind != EndOfFile {
			t.Fatalf("expected EndOfFile to repeat, got %v at iteration %d", tok, i)
		}
	}
}

func TestVariableCharset(t *testing.T) {
	toks := scanAll(t, "My-Var'_1 : x ;")
	if toks[0].Kind != Variable || toks[0].Text != "My-Var'_1" {
		t.Fatalf("unexpected variable token: %v", toks[0])
	}
}
