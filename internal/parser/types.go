package parser

import (
	"github.com/luka-lang/lukac/internal/lexer"
	"github.com/luka-lang/lukac/internal/types"
)

var keywordBase = map[lexer.TokenType]types.Base{
	lexer.KW_INT:    types.S32, // bare `int` means signed 32-bit, matching an integer literal without a suffix
	lexer.KW_CHAR:   types.U8,
	lexer.KW_STRING: types.String,
	lexer.KW_VOID:   types.Void,
	lexer.KW_FLOAT:  types.F32,
	lexer.KW_DOUBLE: types.F64,
	lexer.KW_ANY:    types.Any,
	lexer.KW_BOOL:   types.Bool,
	lexer.KW_U8:     types.U8,
	lexer.KW_U16:    types.U16,
	lexer.KW_U32:    types.U32,
	lexer.KW_U64:    types.U64,
	lexer.KW_S8:     types.S8,
	lexer.KW_S16:    types.S16,
	lexer.KW_S32:    types.S32,
	lexer.KW_S64:    types.S64,
	lexer.KW_F32:    types.F32,
	lexer.KW_F64:    types.F64,
}

// parseType parses a base type followed by any chain of suffix
// operators (`*` pointer, `[]` array, `mut` mutability — the rightmost
// `mut` in the chain wins per spec §4.2).
func (p *Parser) parseType() *types.Type {
	var base *types.Type

	leadingMut := p.accept(lexer.MUT)

	switch {
	case lexer.TypeKeywords[p.curTok.Kind]:
		b, ok := keywordBase[p.curTok.Kind]
		if !ok {
			p.fail("unrecognized base type keyword")
		}
		p.nextToken()
		base = types.New(b)
	case p.at(lexer.IDENT):
		name := p.curTok.Lexeme
		p.nextToken()
		switch {
		case p.structNames[name]:
			base = types.NewNamed(types.Struct, name)
		case p.enumNames[name]:
			base = types.NewNamed(types.Enum, name)
		default:
			base = types.NewAlias(name)
		}
	default:
		p.fail("expected a type")
		return nil
	}

	if leadingMut {
		base.Mutable = true
	}

	for {
		switch {
		case p.accept(lexer.STAR):
			base = types.NewPtr(base)
		case p.at(lexer.LBRACKET) && p.peekTok.Kind == lexer.RBRACKET:
			p.nextToken()
			p.nextToken()
			base = types.NewArray(base)
		case p.accept(lexer.MUT):
			base.Mutable = true
		default:
			return base
		}
	}
}

// parseTypeAnnotation parses an optional `: <type>` suffix, returning
// nil if absent.
func (p *Parser) parseTypeAnnotation() *types.Type {
	if !p.accept(lexer.COLON) {
		return nil
	}
	return p.parseType()
}
