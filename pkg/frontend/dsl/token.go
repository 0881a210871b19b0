package dsl

import "github.com/chipforge/drivergen/pkg/source"

// TokenKind tags a lexical token of the bespoke manifest DSL (spec §6
// "DSL": "a bespoke syntax recognizable by braces and const KEY = VALUE
// statements").
type TokenKind int

// Token kinds.
const (
	TokEOF TokenKind = iota
	TokIdent
	TokInt
	TokString
	TokLBrace
	TokRBrace
	TokLBracket
	TokRBracket
	TokEquals
	TokSemicolon
	TokComma
)

// Token is one lexed unit together with its source span.
type Token struct {
	Kind TokenKind
	Text string
	Int  int64
	Span source.Span
}
