package kdl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chipforge/drivergen/pkg/source"
)

// lexer scans the KDL token stream one rune at a time, matching the direct
// hand-scan style used by the DSL front-end (pkg/frontend/dsl/lexer.go)
// rather than the teacher's generic rule-table lexer: both grammars here
// are small and fixed, so a handful of switch cases reads more plainly than
// a table of scanner combinators.
type lexer struct {
	runes []rune
	pos   int
}

func newLexer(contents []byte) *lexer {
	return &lexer{runes: []rune(string(contents))}
}

func (l *lexer) peek() (rune, bool) {
	if l.pos >= len(l.runes) {
		return 0, false
	}

	return l.runes[l.pos], true
}

func (l *lexer) at(offset int) (rune, bool) {
	if l.pos+offset >= len(l.runes) {
		return 0, false
	}

	return l.runes[l.pos+offset], true
}

func (l *lexer) next() (Token, error) {
	l.skipSpaceAndComments()

	start := l.pos

	r, ok := l.peek()
	if !ok {
		return Token{Kind: TokEOF, Span: source.NewSpan(start, start)}, nil
	}

	switch {
	case r == '\n':
		l.pos++
		return l.tok(TokNewline, "\n", start), nil
	case r == '\r':
		l.pos++

		if r2, ok := l.peek(); ok && r2 == '\n' {
			l.pos++
		}

		return l.tok(TokNewline, "\n", start), nil
	case r == ';':
		l.pos++
		return l.tok(TokSemicolon, ";", start), nil
	case r == '{':
		l.pos++
		return l.tok(TokLBrace, "{", start), nil
	case r == '}':
		l.pos++
		return l.tok(TokRBrace, "}", start), nil
	case r == '=':
		l.pos++
		return l.tok(TokEquals, "=", start), nil
	case r == '"':
		return l.lexString(start)
	case r == '-' && isDigitAt(l, 1):
		return l.lexInt(start)
	case isDigit(r):
		return l.lexInt(start)
	case isIdentStart(r):
		return l.lexIdent(start), nil
	default:
		return Token{}, fmt.Errorf("unexpected character %q at offset %d", r, start)
	}
}

func isDigitAt(l *lexer, offset int) bool {
	r, ok := l.at(offset)
	return ok && isDigit(r)
}

func (l *lexer) tok(kind TokenKind, text string, start int) Token {
	return Token{Kind: kind, Text: text, Span: source.NewSpan(start, l.pos)}
}

// skipSpaceAndComments skips horizontal whitespace and `//` line comments,
// but never a newline: newlines are a significant token here.
func (l *lexer) skipSpaceAndComments() {
	for {
		r, ok := l.peek()
		if !ok {
			return
		}

		switch {
		case r == ' ' || r == '\t':
			l.pos++
		case r == '/' && peekIs(l, 1, '/'):
			for {
				r, ok := l.peek()
				if !ok || r == '\n' {
					return
				}

				l.pos++
			}
		default:
			return
		}
	}
}

func peekIs(l *lexer, offset int, want rune) bool {
	r, ok := l.at(offset)
	return ok && r == want
}

func (l *lexer) lexIdent(start int) Token {
	var b strings.Builder

	for {
		r, ok := l.peek()
		if !ok || !isIdentCont(r) {
			break
		}

		b.WriteRune(r)
		l.pos++
	}

	return l.tok(TokIdent, b.String(), start)
}

func (l *lexer) lexInt(start int) (Token, error) {
	var b strings.Builder

	if r, ok := l.peek(); ok && r == '-' {
		b.WriteRune(r)
		l.pos++
	}

	for {
		r, ok := l.peek()
		if !ok || !isDigit(r) {
			break
		}

		b.WriteRune(r)
		l.pos++
	}

	tok := l.tok(TokInt, b.String(), start)

	i, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return Token{}, fmt.Errorf("invalid integer literal %q: %w", b.String(), err)
	}

	tok.Int = i

	return tok, nil
}

func (l *lexer) lexString(start int) (Token, error) {
	l.pos++

	var b strings.Builder

	for {
		r, ok := l.peek()
		if !ok {
			return Token{}, fmt.Errorf("unterminated string literal starting at offset %d", start)
		}

		if r == '"' {
			l.pos++
			break
		}

		if r == '\\' {
			l.pos++

			esc, ok := l.peek()
			if !ok {
				return Token{}, fmt.Errorf("unterminated escape in string literal starting at offset %d", start)
			}

			switch esc {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			default:
				b.WriteRune(esc)
			}

			l.pos++

			continue
		}

		b.WriteRune(r)
		l.pos++
	}

	return l.tok(TokString, b.String(), start), nil
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || isDigit(r) || r == '-'
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
