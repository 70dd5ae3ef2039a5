package rdf

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/aeronote/aeronote/internal/vocab"
)

// Parse reads a serialized graph from r. Only FormatTurtle is implemented.
//
// The accepted syntax is the Turtle subset Serialize emits plus common
// hand-written variations: @prefix declarations, the "a" keyword,
// ";" and "," continuations, quoted literals with language tags or ^^
// datatypes, bare integer and decimal tokens, and # comments. Undeclared
// prefixes fall back to the built-in vocab table. Blank nodes are not
// supported and fail with a ParseError.
func Parse(r io.Reader, format Format) (*Graph, error) {
	if format != FormatTurtle {
		return nil, &UnsupportedFormatError{Format: format}
	}
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	p := &turtleParser{
		lex:      newLexer(string(src)),
		prefixes: make(map[string]string),
		graph:    NewGraph(),
	}
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.graph, nil
}

// ParseString is Parse over an in-memory document.
func ParseString(src string, format Format) (*Graph, error) {
	return Parse(strings.NewReader(src), format)
}

type turtleParser struct {
	lex      *lexer
	prefixes map[string]string
	graph    *Graph
}

func (p *turtleParser) run() error {
	for {
		tok, err := p.lex.next()
		if err != nil {
			return err
		}
		switch tok.kind {
		case tokEOF:
			return nil
		case tokWord:
			if tok.text == "@prefix" {
				if err := p.parsePrefix(); err != nil {
					return err
				}
				continue
			}
			return p.errf(tok, "unexpected token %q at statement start", tok.text)
		case tokIRIRef, tokPName:
			subject, err := p.resolveIRI(tok)
			if err != nil {
				return err
			}
			if err := p.parsePredicateObjectList(subject); err != nil {
				return err
			}
		default:
			return p.errf(tok, "expected subject, got %q", tok.text)
		}
	}
}

func (p *turtleParser) parsePrefix() error {
	name, err := p.lex.next()
	if err != nil {
		return err
	}
	if name.kind != tokPName || name.local != "" {
		return p.errf(name, "expected prefix name before IRI, got %q", name.text)
	}
	iri, err := p.lex.next()
	if err != nil {
		return err
	}
	if iri.kind != tokIRIRef {
		return p.errf(iri, "expected <IRI> in @prefix, got %q", iri.text)
	}
	dot, err := p.lex.next()
	if err != nil {
		return err
	}
	if dot.kind != tokDot {
		return p.errf(dot, "expected '.' after @prefix, got %q", dot.text)
	}
	p.prefixes[name.prefix] = iri.text
	return nil
}

func (p *turtleParser) parsePredicateObjectList(subject IRI) error {
	for {
		verb, err := p.lex.next()
		if err != nil {
			return err
		}
		var predicate IRI
		switch {
		case verb.kind == tokWord && verb.text == "a":
			predicate = IRI(vocab.RDFType)
		case verb.kind == tokIRIRef || verb.kind == tokPName:
			predicate, err = p.resolveIRI(verb)
			if err != nil {
				return err
			}
		default:
			return p.errf(verb, "expected predicate, got %q", verb.text)
		}

		for {
			object, err := p.parseObject()
			if err != nil {
				return err
			}
			p.graph.Add(Triple{S: subject, P: predicate, O: object})

			sep, err := p.lex.next()
			if err != nil {
				return err
			}
			switch sep.kind {
			case tokComma:
				continue
			case tokSemicolon:
				// Tolerate a trailing ";" before the closing dot.
				peek, err := p.lex.next()
				if err != nil {
					return err
				}
				if peek.kind == tokDot {
					return nil
				}
				p.lex.pushback(peek)
			case tokDot:
				return nil
			default:
				return p.errf(sep, "expected ',', ';' or '.', got %q", sep.text)
			}
			break
		}
	}
}

func (p *turtleParser) parseObject() (Term, error) {
	tok, err := p.lex.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokIRIRef, tokPName:
		return p.resolveIRI(tok)
	case tokInteger:
		return NewTypedLiteral(tok.text, IRI(vocab.XSDInteger)), nil
	case tokDecimal:
		return NewTypedLiteral(tok.text, IRI(vocab.XSDDecimal)), nil
	case tokString:
		return p.parseLiteralTail(tok.text)
	default:
		return nil, p.errf(tok, "expected object term, got %q", tok.text)
	}
}

// parseLiteralTail handles the optional language tag or datatype following
// a quoted string.
func (p *turtleParser) parseLiteralTail(lexical string) (Term, error) {
	tok, err := p.lex.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokLangTag:
		return NewLangLiteral(lexical, tok.text), nil
	case tokHatHat:
		dt, err := p.lex.next()
		if err != nil {
			return nil, err
		}
		if dt.kind != tokIRIRef && dt.kind != tokPName {
			return nil, p.errf(dt, "expected datatype IRI after ^^, got %q", dt.text)
		}
		iri, err := p.resolveIRI(dt)
		if err != nil {
			return nil, err
		}
		return NewTypedLiteral(lexical, iri), nil
	default:
		p.lex.pushback(tok)
		return NewLiteral(lexical), nil
	}
}

func (p *turtleParser) resolveIRI(tok token) (IRI, error) {
	if tok.kind == tokIRIRef {
		return IRI(tok.text), nil
	}
	ns, ok := p.prefixes[tok.prefix]
	if !ok {
		ns, ok = vocab.Prefixes[tok.prefix]
	}
	if !ok {
		return "", p.errf(tok, "undeclared prefix %q", tok.prefix)
	}
	return IRI(ns + tok.local), nil
}

func (p *turtleParser) errf(tok token, format string, args ...any) error {
	return &ParseError{Line: tok.line, Msg: fmt.Sprintf(format, args...)}
}

// --- lexer ---

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIRIRef
	tokPName
	tokString
	tokLangTag
	tokHatHat
	tokInteger
	tokDecimal
	tokDot
	tokSemicolon
	tokComma
	tokWord
)

type token struct {
	kind   tokenKind
	text   string // IRI body, unescaped string, lexical form, or raw word
	prefix string // PName prefix (may be "")
	local  string // PName local part
	line   int
}

type lexer struct {
	src    []rune
	pos    int
	line   int
	pushed []token
}

func newLexer(src string) *lexer {
	return &lexer{src: []rune(src), line: 1}
}

func (l *lexer) pushback(t token) {
	l.pushed = append(l.pushed, t)
}

func (l *lexer) next() (token, error) {
	if n := len(l.pushed); n > 0 {
		t := l.pushed[n-1]
		l.pushed = l.pushed[:n-1]
		return t, nil
	}
	l.skipSpace()
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, line: l.line}, nil
	}

	start := l.line
	c := l.src[l.pos]
	switch {
	case c == '<':
		return l.lexIRIRef()
	case c == '"':
		return l.lexString()
	case c == '^':
		if l.pos+1 < len(l.src) && l.src[l.pos+1] == '^' {
			l.pos += 2
			return token{kind: tokHatHat, text: "^^", line: start}, nil
		}
		return token{}, &ParseError{Line: start, Msg: "stray '^'"}
	case c == '@':
		return l.lexAtWord()
	case c == '.':
		l.pos++
		return token{kind: tokDot, text: ".", line: start}, nil
	case c == ';':
		l.pos++
		return token{kind: tokSemicolon, text: ";", line: start}, nil
	case c == ',':
		l.pos++
		return token{kind: tokComma, text: ",", line: start}, nil
	case c == '_':
		return token{}, &ParseError{Line: start, Msg: "blank nodes are not supported"}
	case c == '+' || c == '-' || unicode.IsDigit(c):
		return l.lexNumber()
	default:
		return l.lexWordOrPName()
	}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.line++
			l.pos++
		case unicode.IsSpace(c):
			l.pos++
		case c == '#':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

func (l *lexer) lexIRIRef() (token, error) {
	start := l.line
	l.pos++ // consume '<'
	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '>' {
			l.pos++
			return token{kind: tokIRIRef, text: b.String(), line: start}, nil
		}
		if c == '\n' {
			break
		}
		b.WriteRune(c)
		l.pos++
	}
	return token{}, &ParseError{Line: start, Msg: "unterminated IRI"}
}

func (l *lexer) lexString() (token, error) {
	start := l.line
	l.pos++ // consume opening quote
	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch c {
		case '"':
			l.pos++
			return token{kind: tokString, text: b.String(), line: start}, nil
		case '\\':
			l.pos++
			if l.pos >= len(l.src) {
				return token{}, &ParseError{Line: start, Msg: "dangling escape in string"}
			}
			switch l.src[l.pos] {
			case '\\':
				b.WriteByte('\\')
			case '"':
				b.WriteByte('"')
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			default:
				return token{}, &ParseError{Line: start, Msg: fmt.Sprintf("unsupported escape \\%c", l.src[l.pos])}
			}
			l.pos++
		case '\n':
			return token{}, &ParseError{Line: start, Msg: "unterminated string"}
		default:
			b.WriteRune(c)
			l.pos++
		}
	}
	return token{}, &ParseError{Line: start, Msg: "unterminated string"}
}

// lexAtWord handles @prefix directives and @lang tags.
func (l *lexer) lexAtWord() (token, error) {
	start := l.line
	l.pos++ // consume '@'
	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if !unicode.IsLetter(c) && c != '-' {
			break
		}
		b.WriteRune(c)
		l.pos++
	}
	word := b.String()
	if word == "" {
		return token{}, &ParseError{Line: start, Msg: "stray '@'"}
	}
	if word == "prefix" || word == "base" {
		return token{kind: tokWord, text: "@" + word, line: start}, nil
	}
	return token{kind: tokLangTag, text: word, line: start}, nil
}

func (l *lexer) lexNumber() (token, error) {
	start := l.line
	var b strings.Builder
	if c := l.src[l.pos]; c == '+' || c == '-' {
		b.WriteRune(c)
		l.pos++
	}
	kind := tokInteger
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if unicode.IsDigit(c) {
			b.WriteRune(c)
			l.pos++
			continue
		}
		// A '.' followed by a digit continues a decimal; otherwise it is
		// the statement terminator.
		if c == '.' && kind == tokInteger && l.pos+1 < len(l.src) && unicode.IsDigit(l.src[l.pos+1]) {
			kind = tokDecimal
			b.WriteRune(c)
			l.pos++
			continue
		}
		break
	}
	text := b.String()
	if text == "" || text == "+" || text == "-" {
		return token{}, &ParseError{Line: start, Msg: "malformed numeric literal"}
	}
	return token{kind: kind, text: text, line: start}, nil
}

// lexWordOrPName reads a bare word ("a") or a prefixed name ("prov:used").
// Local parts are restricted to [A-Za-z0-9_-], the subset Serialize emits.
func (l *lexer) lexWordOrPName() (token, error) {
	start := l.line
	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' || c == '-' {
			b.WriteRune(c)
			l.pos++
			continue
		}
		break
	}
	word := b.String()
	if word == "" {
		return token{}, &ParseError{Line: start, Msg: fmt.Sprintf("unexpected character %q", l.src[l.pos])}
	}
	if l.pos < len(l.src) && l.src[l.pos] == ':' {
		l.pos++ // consume ':'
		var local strings.Builder
		for l.pos < len(l.src) {
			c := l.src[l.pos]
			if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' || c == '-' {
				local.WriteRune(c)
				l.pos++
				continue
			}
			break
		}
		return token{kind: tokPName, prefix: word, local: local.String(), text: word + ":" + local.String(), line: start}, nil
	}
	return token{kind: tokWord, text: word, line: start}, nil
}
