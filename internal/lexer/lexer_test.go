package lexer

import "testing"

func TestKeywordRoundTrip(t *testing.T) {
	for kw := range keywords {
		if !IsKeyword(kw) {
			t.Fatalf("expected %q to be a keyword", kw)
		}
	}
	for _, ident := range []string{"foo", "x", "Luka", "s321", "structure"} {
		if IsKeyword(ident) {
			t.Fatalf("expected %q to not be a keyword", ident)
		}
	}
}

func TestNumericLiterals(t *testing.T) {
	cases := []struct {
		src  string
		kind TokenType
	}{
		{"123", INT},
		{"0", INT},
		{"3.14", FLOAT},
		{"3.14f", FLOAT},
		{"2f", FLOAT},
	}
	for _, c := range cases {
		l := New(c.src, "t.luka")
		tok := l.NextToken()
		if tok.Kind != c.kind {
			t.Fatalf("%q: expected kind %s, got %s", c.src, c.kind, tok.Kind)
		}
		if tok.Lexeme != c.src {
			t.Fatalf("%q: expected lexeme %q, got %q", c.src, c.src, tok.Lexeme)
		}
		if len(l.Errors) != 0 {
			t.Fatalf("%q: unexpected errors %v", c.src, l.Errors)
		}
	}
}

func TestMalformedFloatIsLexError(t *testing.T) {
	l := New("1. x", "t.luka")
	tok := l.NextToken()
	if tok.Kind != ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %s", tok.Kind)
	}
	if len(l.Errors) != 1 || l.Errors[0].Kind != ErrMalformedFloat {
		t.Fatalf("expected one ErrMalformedFloat, got %v", l.Errors)
	}
}

func TestFloatEmbeddedInSource(t *testing.T) {
	l := New("let x = 1.5; let y = 2f;", "t.luka")
	var kinds []TokenType
	for {
		tok := l.NextToken()
		if tok.Kind == EOF {
			break
		}
		kinds = append(kinds, tok.Kind)
	}
	want := []TokenType{LET, IDENT, ASSIGN, FLOAT, SEMICOLON, LET, IDENT, ASSIGN, FLOAT, SEMICOLON}
	if len(kinds) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(kinds), kinds)
	}
	for i, k := range kinds {
		if k != want[i] {
			t.Fatalf("token %d: expected %s, got %s", i, want[i], k)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`"\n"`, "\n"},
		{`"\t"`, "\t"},
		{`"\\"`, "\\"},
		{`"\""`, "\""},
	}
	for _, c := range cases {
		l := New(c.src, "t.luka")
		tok := l.NextToken()
		if tok.Kind != STRING {
			t.Fatalf("%q: expected STRING, got %s", c.src, tok.Kind)
		}
		if tok.Lexeme != c.want {
			t.Fatalf("%q: expected decoded %q, got %q", c.src, c.want, tok.Lexeme)
		}
	}
}

func TestInvalidEscapeIsLexError(t *testing.T) {
	l := New(`"\q"`, "t.luka")
	tok := l.NextToken()
	if tok.Kind != ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %s", tok.Kind)
	}
	if len(l.Errors) != 1 || l.Errors[0].Kind != ErrInvalidEscape {
		t.Fatalf("expected one ErrInvalidEscape, got %v", l.Errors)
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"abc`, "t.luka")
	tok := l.NextToken()
	if tok.Kind != ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %s", tok.Kind)
	}
	if len(l.Errors) != 1 || l.Errors[0].Kind != ErrUnterminatedString {
		t.Fatalf("expected one ErrUnterminatedString, got %v", l.Errors)
	}
}

func TestMultiCharOperators(t *testing.T) {
	src := "== != <= >= :: ..."
	want := []TokenType{EQ, NE, LE, GE, DCOLON, ELLIPSIS}
	l := New(src, "t.luka")
	for i, w := range want {
		tok := l.NextToken()
		if tok.Kind != w {
			t.Fatalf("token %d: expected %s, got %s", i, w, tok.Kind)
		}
	}
}

func TestLineCommentsDiscarded(t *testing.T) {
	src := "let x = 1; // a comment\nlet y = 2;"
	l := New(src, "t.luka")
	var kinds []TokenType
	for {
		tok := l.NextToken()
		if tok.Kind == EOF {
			break
		}
		kinds = append(kinds, tok.Kind)
	}
	want := []TokenType{LET, IDENT, ASSIGN, INT, SEMICOLON, LET, IDENT, ASSIGN, INT, SEMICOLON}
	if len(kinds) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(kinds), kinds)
	}
}

func TestEOFIsExplicit(t *testing.T) {
	l := New("", "t.luka")
	tok := l.NextToken()
	if tok.Kind != EOF {
		t.Fatalf("expected EOF, got %s", tok.Kind)
	}
	tok2 := l.NextToken()
	if tok2.Kind != EOF {
		t.Fatalf("expected EOF again at end of stream, got %s", tok2.Kind)
	}
}

func TestLineAndOffsetTracking(t *testing.T) {
	src := "let x = 1;\nlet y = 2;"
	l := New(src, "t.luka")
	tok := l.NextToken() // let (line 1)
	if tok.Span.Line != 1 {
		t.Fatalf("expected line 1, got %d", tok.Span.Line)
	}
	if tok.Span.Offset != 0 {
		t.Fatalf("expected offset 0 for the first 'let', got %d", tok.Span.Offset)
	}
	for {
		tok = l.NextToken()
		if tok.Kind == LET && tok.Span.Line == 2 {
			if tok.Span.Offset != 0 {
				t.Fatalf("expected offset 0 for the second 'let', got %d", tok.Span.Offset)
			}
			break
		}
		if tok.Kind == EOF {
			t.Fatalf("did not find second 'let' on line 2")
		}
	}
}
