package backend

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"objtree/options"
	"objtree/primitive"
	"objtree/tree"
)

const TextName = "text"

// Text persists the tree in the bracketed format:
//
//	{root [TypeName:Simple Version:0]
//		{Items [ElementCount:2 ElementType:int32 Element0:1 Element1:2]}
//	}
//
// Names and values that contain blanks or delimiters are written quoted.
type Text struct {
	base
}

func NewText() *Text { return &Text{base: newBase()} }

func (*Text) ImplementationName() string { return TextName }

func (t *Text) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	writeTextNode(bw, t.root, 0)
	bw.WriteByte('\n')

	return errors.Wrap(bw.Flush(), "failed to write tree text")
}

func writeTextNode(w *bufio.Writer, n *tree.Node, depth int) {
	w.WriteString(strings.Repeat("\t", depth))
	w.WriteByte('{')
	w.WriteString(quoteText(n.Name()))

	attrs := n.Attributes()
	written := 0
	for _, a := range attrs {
		if !a.Value.IsValid() {
			continue
		}

		if written == 0 {
			w.WriteString(" [")
		} else {
			w.WriteByte(' ')
		}

		w.WriteString(quoteText(a.Name))
		w.WriteByte(':')
		w.WriteString(quoteValue(a.Value))
		written++
	}

	if written > 0 {
		w.WriteByte(']')
	}

	if n.NumChildren() == 0 {
		w.WriteByte('}')
		return
	}

	for _, c := range n.Children() {
		w.WriteByte('\n')
		writeTextNode(w, c, depth+1)
	}

	w.WriteByte('\n')
	w.WriteString(strings.Repeat("\t", depth))
	w.WriteByte('}')
}

func quoteValue(v primitive.Value) string {
	text := v.Text()
	if v.Kind() == primitive.KindString || v.IsRaw() {
		return quoteText(text)
	}

	return text
}

// quoteText leaves bare words alone and quotes everything else.
func quoteText(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\r\n{}[]:\"") {
		return strconv.Quote(s)
	}

	return s
}

// Read parses the bracketed format. Attributes come back as raw values.
func (t *Text) Read(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "failed to read tree text")
	}

	p := &textParser{src: string(data), line: 1, col: 1}

	p.skipSpace()
	root, err := p.parseNode(nil)
	if err != nil {
		return err
	}

	p.skipSpace()
	if !p.eof() {
		return p.errorf("unexpected trailing content")
	}

	t.root = root
	return nil
}

// TextError is a syntax error with its position in the input.
type TextError struct {
	Message string
	Line    int
	Column  int
}

func (e *TextError) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Message, e.Line, e.Column)
}

type textParser struct {
	src       string
	pos       int
	line, col int
}

func (p *textParser) eof() bool { return p.pos >= len(p.src) }

func (p *textParser) peek() byte {
	if p.eof() {
		return 0
	}

	return p.src[p.pos]
}

func (p *textParser) advance() {
	if p.eof() {
		return
	}

	if p.src[p.pos] == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}

	p.pos++
}

func (p *textParser) skipSpace() {
	for !p.eof() && strings.IndexByte(" \t\r\n", p.peek()) >= 0 {
		p.advance()
	}
}

func (p *textParser) errorf(format string, args ...any) error {
	return &TextError{Message: fmt.Sprintf(format, args...), Line: p.line, Column: p.col}
}

func (p *textParser) expect(c byte) error {
	if p.peek() != c {
		if p.eof() {
			return p.errorf("expected %q, got end of input", c)
		}

		return p.errorf("expected %q, got %q", c, p.peek())
	}

	p.advance()
	return nil
}

func (p *textParser) parseNode(parent *tree.Node) (*tree.Node, error) {
	if err := p.expect('{'); err != nil {
		return nil, err
	}

	p.skipSpace()
	name, err := p.parseWord()
	if err != nil {
		return nil, err
	}

	var node *tree.Node
	if parent == nil {
		node = tree.NewNode(name)
	} else {
		var ok bool
		if node, ok = parent.AddChild(name, options.TagNone); !ok {
			return nil, p.errorf("duplicate child %q", name)
		}
	}

	p.skipSpace()
	if p.peek() == '[' {
		p.advance()
		if err := p.parseAttributes(node); err != nil {
			return nil, err
		}
	}

	for {
		p.skipSpace()
		switch p.peek() {
		case '}':
			p.advance()
			return node, nil
		case '{':
			if _, err := p.parseNode(node); err != nil {
				return nil, err
			}
		default:
			if p.eof() {
				return nil, p.errorf("unterminated node %q", name)
			}

			return nil, p.errorf("unexpected %q in node %q", p.peek(), name)
		}
	}
}

func (p *textParser) parseAttributes(node *tree.Node) error {
	for {
		p.skipSpace()
		if p.peek() == ']' {
			p.advance()
			return nil
		}

		if p.eof() {
			return p.errorf("unterminated attribute list")
		}

		name, value, err := p.parseAttribute()
		if err != nil {
			return err
		}

		if _, ok := node.AddAttribute(name, options.TagNone, primitive.Raw(value)); !ok {
			return p.errorf("duplicate attribute %q", name)
		}
	}
}

// parseAttribute reads name:value.
func (p *textParser) parseAttribute() (name, value string, err error) {
	if name, err = p.parseWord(); err != nil {
		return "", "", err
	}

	if err = p.expect(':'); err != nil {
		return "", "", err
	}

	if value, err = p.parseWord(); err != nil {
		return "", "", err
	}

	return name, value, nil
}

// parseWord reads a bare word or a Go quoted string.
func (p *textParser) parseWord() (string, error) {
	if p.peek() == '"' {
		return p.parseQuoted()
	}

	start := p.pos
	for !p.eof() && strings.IndexByte(" \t\r\n{}[]:\"", p.peek()) < 0 {
		p.advance()
	}

	if p.pos == start {
		if p.eof() {
			return "", p.errorf("expected a name, got end of input")
		}

		return "", p.errorf("expected a name, got %q", p.peek())
	}

	return p.src[start:p.pos], nil
}

func (p *textParser) parseQuoted() (string, error) {
	start := p.pos
	p.advance()

	for !p.eof() {
		switch p.peek() {
		case '\\':
			p.advance()
			p.advance()
		case '"':
			p.advance()

			s, err := strconv.Unquote(p.src[start:p.pos])
			if err != nil {
				return "", p.errorf("invalid quoted string: %v", err)
			}

			return s, nil
		default:
			p.advance()
		}
	}

	return "", p.errorf("unterminated quoted string")
}
