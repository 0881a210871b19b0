package kdl

import (
	"fmt"

	"github.com/chipforge/drivergen/pkg/frontend/tree"
)

// parser is a hand-written recursive-descent parser over the KDL token
// stream, producing the shared tree.Node shape (spec §4.1).
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

func isTerminator(t Token) bool {
	return t.Kind == TokNewline || t.Kind == TokSemicolon
}

// parseDocument parses a sequence of top-level nodes into a synthetic
// "root" node.
func parseDocument(contents []byte) (*tree.Node, error) {
	p := newParser(contents)
	root := &tree.Node{Keyword: "root"}

	children, err := p.parseNodeList(true)
	if err != nil {
		return nil, err
	}

	root.Children = children

	return root, nil
}

// parseNodeList parses nodes until a closing brace (or EOF, at the document
// top level), skipping terminator tokens between them.
func (p *parser) parseNodeList(topLevel bool) ([]*tree.Node, error) {
	var nodes []*tree.Node

	for {
		t, err := p.peekTok()
		if err != nil {
			return nil, err
		}

		if isTerminator(t) {
			if _, err := p.next(); err != nil {
				return nil, err
			}

			continue
		}

		if t.Kind == TokEOF {
			if !topLevel {
				return nil, fmt.Errorf("unexpected end of input inside a node block")
			}

			return nodes, nil
		}

		if t.Kind == TokRBrace {
			if topLevel {
				return nil, fmt.Errorf("unexpected %q at offset %d", "}", t.Span.Start())
			}

			return nodes, nil
		}

		n, err := p.parseNode()
		if err != nil {
			return nil, err
		}

		nodes = append(nodes, n)
	}
}

func (p *parser) parseNode() (*tree.Node, error) {
	nameTok, err := p.next()
	if err != nil {
		return nil, err
	}

	if nameTok.Kind != TokIdent && nameTok.Kind != TokString {
		return nil, fmt.Errorf("expected a node name, got %q at offset %d", nameTok.Text, nameTok.Span.Start())
	}

	n := &tree.Node{Keyword: nameTok.Text, Span: nameTok.Span, Attrs: map[string]tree.Value{}}

	for {
		t, err := p.peekTok()
		if err != nil {
			return nil, err
		}

		switch t.Kind {
		case TokLBrace:
			if _, err := p.next(); err != nil {
				return nil, err
			}

			children, err := p.parseNodeList(false)
			if err != nil {
				return nil, err
			}

			if _, err := p.expect(TokRBrace); err != nil {
				return nil, err
			}

			n.Children = children

			return n, nil
		case TokNewline, TokSemicolon, TokEOF, TokRBrace:
			return n, nil
		default:
			if err := p.parseEntry(n); err != nil {
				return nil, err
			}
		}
	}
}

// parseEntry consumes one positional argument or `key=value` property. The
// first bare positional argument becomes the node's Name, matching how KDL
// manifests name the object a node declares (e.g. `register "Ctrl" ...`).
func (p *parser) parseEntry(n *tree.Node) error {
	first, err := p.next()
	if err != nil {
		return err
	}

	nextTok, err := p.peekTok()
	if err != nil {
		return err
	}

	if nextTok.Kind == TokEquals {
		if _, err := p.next(); err != nil {
			return err
		}

		val, err := p.parseValueToken()
		if err != nil {
			return err
		}

		key, ok := first.Text, first.Kind == TokIdent || first.Kind == TokString
		if !ok {
			return fmt.Errorf("expected a property key, got %q at offset %d", first.Text, first.Span.Start())
		}

		n.Attrs[key] = val

		return nil
	}

	// Bare positional argument: the first one names the object.
	val, err := valueOfToken(first)
	if err != nil {
		return err
	}

	if n.Name == "" {
		if s, ok := val.AsString(); ok {
			n.Name = s
			n.NameSpan = first.Span

			return nil
		}
	}

	return fmt.Errorf("unexpected extra positional argument %q at offset %d", first.Text, first.Span.Start())
}

func (p *parser) parseValueToken() (tree.Value, error) {
	t, err := p.next()
	if err != nil {
		return tree.Value{}, err
	}

	return valueOfToken(t)
}

func valueOfToken(t Token) (tree.Value, error) {
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
	default:
		return tree.Value{}, fmt.Errorf("expected a value, got %q at offset %d", t.Text, t.Span.Start())
	}
}

func (p *parser) expect(kind TokenKind) (Token, error) {
	t, err := p.next()
	if err != nil {
		return Token{}, err
	}

	if t.Kind != kind {
		return Token{}, fmt.Errorf("unexpected token %q at offset %d", t.Text, t.Span.Start())
	}

	return t, nil
}
