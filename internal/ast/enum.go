package ast

import (
	"github.com/luka-lang/lukac/internal/lexer"
	"github.com/luka-lang/lukac/internal/types"
)

// RawEnumField is a parsed enum field before auto-increment: Init is
// nil when the source omitted an explicit initializer.
type RawEnumField struct {
	Name string
	Init *Number
	Tok  *lexer.Token
}

// BuildEnumDef assigns each field without an explicit initializer the
// previous field's value plus one (the first field defaults to 0),
// exactly as the original enum-field builder does; an explicit
// initializer resets the running counter.
func BuildEnumDef(name string, raw []RawEnumField, tok *lexer.Token) *EnumDef {
	fields := make([]EnumField, len(raw))
	var next int64
	for i, r := range raw {
		var num *Number
		if r.Init != nil {
			num = r.Init
			next = r.Init.Value.S64
		} else {
			num = NewNumber(types.New(types.S32), NumberValue{S64: next}, r.Tok)
		}
		fields[i] = EnumField{Name: r.Name, Value: num}
		next++
	}
	return NewEnumDef(name, fields, tok)
}
