package dsl

import (
	"fmt"

	strcase "github.com/stoewer/go-strcase"

	"github.com/chipforge/drivergen/pkg/frontend/tree"
	"github.com/chipforge/drivergen/pkg/source"
)

// parser is a hand-written recursive-descent parser over the DSL's token
// stream, producing the same tree.Node shape the KDL and document-tree
// front-ends build (spec §4.1).
type parser struct {
	lex  *lexer
	peek *Token
}

func newParser(contents []byte) *parser {
	return &parser{lex: newLexer(contents)}
}

func (p *parser) next() (Token, error) {
	if p.peek != nil {
		t := *p.peek
		p.peek = nil

		return t, nil
	}

	return p.lex.next()
}

func (p *parser) peekTok() (Token, error) {
	if p.peek == nil {
		t, err := p.lex.next()
		if err != nil {
			return Token{}, err
		}

		p.peek = &t
	}

	return *p.peek, nil
}

func (p *parser) expect(kind TokenKind, what string) (Token, error) {
	t, err := p.next()
	if err != nil {
		return Token{}, err
	}

	if t.Kind != kind {
		return Token{}, fmt.Errorf("expected %s, got %q at offset %d", what, t.Text, t.Span.Start())
	}

	return t, nil
}

// parseDocument parses a sequence of top-level object declarations into a
// synthetic "root" node, matching tree.Build's expectations.
func parseDocument(contents []byte) (*tree.Node, error) {
	p := newParser(contents)
	root := &tree.Node{Keyword: "root"}

	for {
		t, err := p.peekTok()
		if err != nil {
			return nil, err
		}

		if t.Kind == TokEOF {
			break
		}

		obj, err := p.parseObject()
		if err != nil {
			return nil, err
		}

		root.Children = append(root.Children, obj)
	}

	return root, nil
}

// parseObject parses `keyword Name { members... }`. A leading keyword with
// no following identifier name (as with an anonymous "in"/"out" command
// side) is also accepted.
func (p *parser) parseObject() (*tree.Node, error) {
	keywordTok, err := p.expect(TokIdent, "a keyword (device, block, register, ...)")
	if err != nil {
		return nil, err
	}

	n := &tree.Node{
		Keyword: keywordTok.Text,
		Span:    keywordTok.Span,
		Attrs:   map[string]tree.Value{},
	}

	nameTok, err := p.peekTok()
	if err != nil {
		return nil, err
	}

	if nameTok.Kind == TokIdent {
		if _, err := p.next(); err != nil {
			return nil, err
		}

		n.Name = nameTok.Text
		n.NameSpan = nameTok.Span
	}

	if _, err := p.expect(TokLBrace, "\"{\""); err != nil {
		return nil, err
	}

	for {
		t, err := p.peekTok()
		if err != nil {
			return nil, err
		}

		if t.Kind == TokRBrace {
			if _, err := p.next(); err != nil {
				return nil, err
			}

			break
		}

		if t.Kind == TokIdent && t.Text == "const" {
			if err := p.parseConst(n); err != nil {
				return nil, err
			}

			continue
		}

		child, err := p.parseObject()
		if err != nil {
			return nil, err
		}

		n.Children = append(n.Children, child)
	}

	return n, nil
}

func (p *parser) parseConst(n *tree.Node) error {
	if _, err := p.next(); err != nil { // "const"
		return err
	}

	keyTok, err := p.expect(TokIdent, "a configuration key")
	if err != nil {
		return err
	}

	if _, err := p.expect(TokEquals, "\"=\""); err != nil {
		return err
	}

	val, err := p.parseValue()
	if err != nil {
		return err
	}

	if _, err := p.expect(TokSemicolon, "\";\""); err != nil {
		return err
	}

	n.Attrs[strcase.SnakeCase(keyTok.Text)] = val

	return nil
}

func (p *parser) parseValue() (tree.Value, error) {
	t, err := p.next()
	if err != nil {
		return tree.Value{}, err
	}

	switch t.Kind {
	case TokInt:
		return tree.Int(t.Int, t.Span), nil
	case TokString:
		return tree.String(t.Text, t.Span), nil
	case TokIdent:
		switch t.Text {
		case "true":
			return tree.Bool(true, t.Span), nil
		case "false":
			return tree.Bool(false, t.Span), nil
		default:
			return tree.String(t.Text, t.Span), nil
		}
	case TokLBracket:
		return p.parseList(t.Span)
	default:
		return tree.Value{}, fmt.Errorf("expected a value, got %q at offset %d", t.Text, t.Span.Start())
	}
}

func (p *parser) parseList(start source.Span) (tree.Value, error) {
	var items []tree.Value

	for {
		t, err := p.peekTok()
		if err != nil {
			return tree.Value{}, err
		}

		if t.Kind == TokRBracket {
			if _, err := p.next(); err != nil {
				return tree.Value{}, err
			}

			return tree.List(items, start.Union(t.Span)), nil
		}

		val, err := p.parseValue()
		if err != nil {
			return tree.Value{}, err
		}

		items = append(items, val)

		sep, err := p.peekTok()
		if err != nil {
			return tree.Value{}, err
		}

		if sep.Kind == TokComma {
			if _, err := p.next(); err != nil {
				return tree.Value{}, err
			}
		}
	}
}
