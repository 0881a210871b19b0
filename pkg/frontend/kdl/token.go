package kdl

import "github.com/chipforge/drivergen/pkg/source"

// TokenKind tags a lexical token of the KDL front-end's document grammar
// (spec §6 "KDL": "document tree where each node names an object kind;
// children and entries specify attributes").
type TokenKind int

// Token kinds. Newline and Semicolon are significant: KDL terminates a
// node's entry list at end-of-line, a semicolon, or an opening/closing
// brace, rather than requiring a fixed arity.
const (
	TokEOF TokenKind = iota
	TokIdent
	TokString
	TokInt
	TokEquals
	TokLBrace
	TokRBrace
	TokNewline
	TokSemicolon
)

// Token is one lexed unit together with its source span.
type Token struct {
	Kind TokenKind
	Text string
	Int  int64
	Span source.Span
}
