package annotation

import (
	"fmt"
	"go/scanner"
	"go/token"
	"strconv"
	"strings"
)

// Shape is the outer form of an annotation's argument part.
type Shape int

const (
	_ Shape = iota
	// ShapeList is the parenthesized form: name(a = 1, b = "x").
	ShapeList
	// ShapePath is the bare form: name.
	ShapePath
	// ShapeNameValue is the single value form: name = "x".
	ShapeNameValue
)

// String returns a human-readable shape name.
func (s Shape) String() string {
	switch s {
	case ShapeList:
		return "list"
	case ShapePath:
		return "bare"
	case ShapeNameValue:
		return "name/value"
	default:
		return "invalid"
	}
}

// EntryKind classifies one entry inside a list-form annotation.
type EntryKind int

const (
	_ EntryKind = iota
	// EntryNameValue is key = literal.
	EntryNameValue
	// EntryFlag is a bare key.
	EntryFlag
	// EntryList is a nested list: key(...).
	EntryList
	// EntryLiteral is a positional literal.
	EntryLiteral
	// EntryNameExpr is key = <something that is not a literal>.
	EntryNameExpr
)

// String returns a human-readable entry kind.
func (k EntryKind) String() string {
	switch k {
	case EntryNameValue:
		return "name/value pair"
	case EntryFlag:
		return "bare flag"
	case EntryList:
		return "nested list"
	case EntryLiteral:
		return "positional literal"
	case EntryNameExpr:
		return "non-literal value"
	default:
		return "invalid entry"
	}
}

// Entry is one element of a list-form annotation.
type Entry struct {
	Kind EntryKind
	// Name is the key; empty for positional literals.
	Name string
	// Value is set for name/value pairs and positional literals.
	Value Literal
	// Text is the entry's source text.
	Text string
	// Offset is the entry's byte offset within the argument text.
	Offset int
}

// Meta is the parsed argument part of an annotation.
type Meta struct {
	Shape Shape
	// Entries holds the list elements of a ShapeList annotation.
	Entries []Entry
	// Value holds the literal of a ShapeNameValue annotation.
	Value Literal
}

// SyntaxError reports argument text that does not tokenize or nest properly.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Msg)
}

// ParseMeta parses the argument text of a directive:
//
//	""                      bare
//	"(a = 1, b, c(x), 2)"   list
//	" = \"x\"" or " \"x\""  name/value
func ParseMeta(args string) (Meta, error) {
	p, err := newParser(args)
	if err != nil {
		return Meta{}, err
	}

	return p.parseMeta()
}

type item struct {
	tok token.Token
	lit string
	off int
}

type parser struct {
	src   string
	items []item
	pos   int
}

func newParser(src string) (*parser, error) {
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))

	var (
		s    scanner.Scanner
		errs scanner.ErrorList
	)

	s.Init(file, []byte(src), func(pos token.Position, msg string) { errs.Add(pos, msg) }, 0)

	p := &parser{src: src}
	for {
		pos, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}

		// Automatic semicolons inserted at end of input.
		if tok == token.SEMICOLON && lit == "\n" {
			continue
		}

		p.items = append(p.items, item{tok: tok, lit: lit, off: file.Offset(pos)})
	}

	if len(errs) > 0 {
		return nil, &SyntaxError{Offset: errs[0].Pos.Offset, Msg: errs[0].Msg}
	}

	return p, nil
}

func (p *parser) done() bool {
	return p.pos >= len(p.items)
}

func (p *parser) peek() item {
	if p.done() {
		return item{tok: token.EOF, off: len(p.src)}
	}

	return p.items[p.pos]
}

func (p *parser) next() item {
	it := p.peek()
	if !p.done() {
		p.pos++
	}

	return it
}

func (p *parser) errorf(off int, format string, args ...any) error {
	return &SyntaxError{Offset: off, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parseMeta() (Meta, error) {
	if p.done() {
		return Meta{Shape: ShapePath}, nil
	}

	var meta Meta

	switch first := p.peek(); first.tok {
	case token.LPAREN:
		p.next()

		entries, err := p.parseEntries()
		if err != nil {
			return Meta{}, err
		}

		if closing := p.next(); closing.tok != token.RPAREN {
			return Meta{}, p.errorf(closing.off, "missing ')'")
		}

		meta = Meta{Shape: ShapeList, Entries: entries}

	default:
		if first.tok == token.ASSIGN {
			p.next()
		}

		lit, ok, err := p.parseLiteral()
		if err != nil {
			return Meta{}, err
		}

		if !ok {
			return Meta{}, p.errorf(p.peek().off, "unexpected %s", describe(p.peek()))
		}

		meta = Meta{Shape: ShapeNameValue, Value: lit}
	}

	if !p.done() {
		return Meta{}, p.errorf(p.peek().off, "unexpected %s after annotation", describe(p.peek()))
	}

	return meta, nil
}

func (p *parser) parseEntries() ([]Entry, error) {
	var entries []Entry

	for {
		if p.peek().tok == token.RPAREN || p.done() {
			return entries, nil
		}

		e, err := p.parseEntry()
		if err != nil {
			return nil, err
		}

		entries = append(entries, e)

		switch sep := p.peek(); sep.tok {
		case token.COMMA:
			p.next()
		case token.RPAREN:
			return entries, nil
		default:
			return nil, p.errorf(sep.off, "expected ',' or ')', found %s", describe(sep))
		}
	}
}

func (p *parser) parseEntry() (Entry, error) {
	start := p.peek()

	if start.tok == token.IDENT && (!isBoolIdent(start.lit) || p.peekAt(1).tok == token.ASSIGN) {
		p.next()

		switch p.peek().tok {
		case token.ASSIGN:
			p.next()

			lit, ok, err := p.parseLiteral()
			if err != nil {
				return Entry{}, err
			}

			if ok && p.atEntryEnd() {
				return p.entry(EntryNameValue, start, lit), nil
			}

			if err := p.skipExpr(); err != nil {
				return Entry{}, err
			}

			return p.entry(EntryNameExpr, start, Literal{}), nil

		case token.LPAREN:
			if err := p.skipExpr(); err != nil {
				return Entry{}, err
			}

			return p.entry(EntryList, start, Literal{}), nil

		default:
			if !p.atEntryEnd() {
				return Entry{}, p.errorf(p.peek().off, "unexpected %s after %q", describe(p.peek()), start.lit)
			}

			return p.entry(EntryFlag, start, Literal{}), nil
		}
	}

	lit, ok, err := p.parseLiteral()
	if err != nil {
		return Entry{}, err
	}

	if !ok || !p.atEntryEnd() {
		return Entry{}, p.errorf(p.peek().off, "unexpected %s", describe(p.peek()))
	}

	e := p.entry(EntryLiteral, start, lit)
	e.Name = ""

	return e, nil
}

func (p *parser) entry(kind EntryKind, start item, lit Literal) Entry {
	return Entry{
		Kind:   kind,
		Name:   start.lit,
		Value:  lit,
		Text:   strings.TrimSpace(p.src[start.off:p.peek().off]),
		Offset: start.off,
	}
}

func (p *parser) peekAt(n int) item {
	if p.pos+n >= len(p.items) {
		return item{tok: token.EOF, off: len(p.src)}
	}

	return p.items[p.pos+n]
}

func (p *parser) atEntryEnd() bool {
	tok := p.peek().tok
	return tok == token.COMMA || tok == token.RPAREN || tok == token.EOF
}

// skipExpr consumes tokens up to the next ',' or ')' at nesting depth zero.
func (p *parser) skipExpr() error {
	depth := 0

	for {
		it := p.peek()

		switch it.tok {
		case token.EOF:
			if depth > 0 {
				return p.errorf(it.off, "unbalanced brackets")
			}

			return nil
		case token.LPAREN, token.LBRACK, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACK, token.RBRACE:
			if depth == 0 {
				return nil
			}

			depth--
		case token.COMMA:
			if depth == 0 {
				return nil
			}
		}

		p.next()
	}
}

// parseLiteral consumes a literal if one starts at the current token.
func (p *parser) parseLiteral() (Literal, bool, error) {
	save := p.pos

	sign := ""
	if t := p.peek().tok; t == token.SUB || t == token.ADD {
		sign = p.next().tok.String()
	}

	it := p.peek()
	raw := sign + it.lit

	switch {
	case it.tok == token.INT:
		v, err := strconv.ParseInt(raw, 0, 64)
		if err != nil {
			return Literal{}, false, p.errorf(it.off, "integer literal %s out of range", raw)
		}

		p.next()

		return Literal{Kind: LitInt, Raw: raw, i: v}, true, nil

	case it.tok == token.FLOAT:
		v, err := strconv.ParseFloat(strings.ReplaceAll(raw, "_", ""), 64)
		if err != nil {
			return Literal{}, false, p.errorf(it.off, "invalid float literal %s", raw)
		}

		p.next()

		return Literal{Kind: LitFloat, Raw: raw, f: v}, true, nil

	case it.tok == token.STRING && sign == "":
		v, err := strconv.Unquote(it.lit)
		if err != nil {
			return Literal{}, false, p.errorf(it.off, "invalid string literal %s", it.lit)
		}

		p.next()

		return Literal{Kind: LitString, Raw: it.lit, str: v}, true, nil

	case it.tok == token.IDENT && isBoolIdent(it.lit) && sign == "":
		p.next()

		return Literal{Kind: LitBool, Raw: it.lit, b: it.lit == "true"}, true, nil
	}

	p.pos = save

	return Literal{}, false, nil
}

func isBoolIdent(s string) bool {
	return s == "true" || s == "false"
}

func describe(it item) string {
	switch {
	case it.tok == token.EOF:
		return "end of annotation"
	case it.lit != "":
		return strconv.Quote(it.lit)
	default:
		return "'" + it.tok.String() + "'"
	}
}
