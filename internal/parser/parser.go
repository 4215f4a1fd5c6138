// Package parser implements Luka's recursive-descent parser: the
// precedence-climbing expression grammar and statement/declaration
// grammar of spec §4.2, producing internal/ast nodes and a
// internal/module.Module. Parser errors are fatal — the first one
// aborts parsing via panic/recover, matching the "no partial tree is
// exposed" contract the lexer already keeps.
package parser

import (
	"fmt"

	"github.com/luka-lang/lukac/internal/diag"
	"github.com/luka-lang/lukac/internal/lexer"
	"github.com/luka-lang/lukac/internal/module"
)

// ParseError is the fatal error a Parser reports: location plus a
// human message, matching spec §4.2's {file, line, offset, near-token
// lexeme, message} contract.
type ParseError struct {
	diag.Diagnostic
}

func (e *ParseError) Error() string { return e.Diagnostic.Error() }

// abort is the internal panic payload a Parser raises to unwind out of
// arbitrarily nested recursive-descent calls back to Parse.
type abort struct{ err *ParseError }

// Parser walks a pre-lexed token slice with a two-token lookahead
// window (curTok, peekTok), matching the teacher's Pratt-parser
// bookkeeping discipline.
type Parser struct {
	filePath string
	tokens   []lexer.Token
	pos      int

	curTok  lexer.Token
	peekTok lexer.Token

	structNames map[string]bool
	enumNames   map[string]bool
}

// New creates a Parser over the full source text of filePath,
// pre-lexing it and pre-scanning for struct/enum names so type
// positions and `identifier {` struct literals can be disambiguated
// even under forward reference.
func New(input, filePath string) (*Parser, error) {
	lx := lexer.New(input, filePath)
	var tokens []lexer.Token
	for {
		tok := lx.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == lexer.EOF {
			break
		}
	}
	if len(lx.Errors) > 0 {
		first := lx.Errors[0]
		d := first.ToDiagnostic()
		return nil, &ParseError{d}
	}

	p := &Parser{
		filePath:    filePath,
		tokens:      tokens,
		structNames: map[string]bool{},
		enumNames:   map[string]bool{},
	}
	p.prescanNames()
	p.pos = 0
	p.curTok = p.tokens[0]
	if len(p.tokens) > 1 {
		p.peekTok = p.tokens[1]
	} else {
		p.peekTok = p.tokens[0]
	}
	return p, nil
}

// prescanNames walks the whole token stream once looking for `struct
// IDENT` and `enum IDENT` so later type parsing and `identifier {}`
// struct-literal disambiguation see every name regardless of
// declaration order.
func (p *Parser) prescanNames() {
	for i := 0; i+1 < len(p.tokens); i++ {
		switch p.tokens[i].Kind {
		case lexer.STRUCT:
			p.structNames[p.tokens[i+1].Lexeme] = true
		case lexer.ENUM:
			p.enumNames[p.tokens[i+1].Lexeme] = true
		}
	}
}

func (p *Parser) nextToken() {
	p.pos++
	p.curTok = p.peekTok
	next := p.pos + 1
	if next < len(p.tokens) {
		p.peekTok = p.tokens[next]
	} else {
		p.peekTok = p.tokens[len(p.tokens)-1] // EOF, repeats
	}
}

func (p *Parser) toSpan(tok lexer.Token) diag.Span {
	return diag.Span{
		Filename: tok.Span.FilePath,
		Line:     tok.Span.Line,
		Offset:   tok.Span.Offset,
		Start:    tok.Span.Start,
		End:      tok.Span.End,
	}
}

// fail raises a fatal parse error at curTok, unwinding to Parse.
func (p *Parser) fail(format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	if p.curTok.Kind != lexer.EOF {
		msg = fmt.Sprintf("%s (near `%s`)", msg, p.curTok.Lexeme)
	}
	d := diag.Diagnostic{
		Stage:    diag.StageParse,
		Severity: diag.SeverityError,
		Code:     diag.CodeParseUnexpectedToken,
		Message:  msg,
		Span:     p.toSpan(p.curTok),
	}
	panic(abort{&ParseError{d}})
}

// expect asserts curTok.Kind == kind, consumes it, and returns it;
// otherwise it raises a fatal parse error.
func (p *Parser) expect(kind lexer.TokenType) lexer.Token {
	if p.curTok.Kind != kind {
		p.fail("expected %s", kind)
	}
	tok := p.curTok
	p.nextToken()
	return tok
}

func (p *Parser) at(kind lexer.TokenType) bool { return p.curTok.Kind == kind }

func (p *Parser) accept(kind lexer.TokenType) bool {
	if p.at(kind) {
		p.nextToken()
		return true
	}
	return false
}

// Parse consumes the whole token stream and returns the resulting
// Module, recovering a raised abort into a returned error.
func (p *Parser) Parse() (mod *module.Module, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ab, ok := r.(abort); ok {
				err = ab.err
				return
			}
			panic(r)
		}
	}()

	mod = module.New(p.filePath)
	for !p.at(lexer.EOF) {
		p.parseTopLevel(mod)
	}
	return mod, nil
}

// ParseFile is a convenience wrapper combining New and Parse.
func ParseFile(input, filePath string) (*module.Module, error) {
	p, err := New(input, filePath)
	if err != nil {
		return nil, err
	}
	return p.Parse()
}
