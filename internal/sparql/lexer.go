package sparql

import (
	"fmt"
	"strings"
	"unicode"
)

// SyntaxError reports malformed query text. Line is 1-based.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("query syntax error at line %d: %s", e.Line, e.Msg)
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIRIRef
	tokPName
	tokVar
	tokString
	tokInteger
	tokDecimal
	tokLParen
	tokRParen
	tokLBrace
	tokRBrace
	tokDot
	tokEq
	tokHatHat
	tokWord
)

type token struct {
	kind   tokenKind
	text   string
	prefix string
	local  string
	line   int
}

// keyword reports whether the token is the given keyword, matched
// case-insensitively per SPARQL.
func (t token) keyword(kw string) bool {
	return t.kind == tokWord && strings.EqualFold(t.text, kw)
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

func (l *lexer) errf(format string, args ...any) error {
	return &SyntaxError{Line: l.line, Msg: fmt.Sprintf(format, args...)}
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
	switch c := l.src[l.pos]; {
	case c == '<':
		return l.lexIRIRef()
	case c == '"':
		return l.lexString()
	case c == '?' || c == '$':
		return l.lexVar()
	case c == '(':
		l.pos++
		return token{kind: tokLParen, text: "(", line: start}, nil
	case c == ')':
		l.pos++
		return token{kind: tokRParen, text: ")", line: start}, nil
	case c == '{':
		l.pos++
		return token{kind: tokLBrace, text: "{", line: start}, nil
	case c == '}':
		l.pos++
		return token{kind: tokRBrace, text: "}", line: start}, nil
	case c == '.':
		l.pos++
		return token{kind: tokDot, text: ".", line: start}, nil
	case c == '=':
		l.pos++
		return token{kind: tokEq, text: "=", line: start}, nil
	case c == '^':
		if l.pos+1 < len(l.src) && l.src[l.pos+1] == '^' {
			l.pos += 2
			return token{kind: tokHatHat, text: "^^", line: start}, nil
		}
		return token{}, l.errf("stray '^'")
	case c == '+' || c == '-' || unicode.IsDigit(c):
		return l.lexNumber()
	case unicode.IsLetter(c) || c == '_':
		return l.lexWordOrPName()
	default:
		return token{}, l.errf("unexpected character %q", c)
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
	l.pos++
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
	return token{}, &SyntaxError{Line: start, Msg: "unterminated IRI"}
}

func (l *lexer) lexString() (token, error) {
	start := l.line
	l.pos++
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
				return token{}, &SyntaxError{Line: start, Msg: "dangling escape in string"}
			}
			switch l.src[l.pos] {
			case '\\':
				b.WriteByte('\\')
			case '"':
				b.WriteByte('"')
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				return token{}, &SyntaxError{Line: start, Msg: fmt.Sprintf("unsupported escape \\%c", l.src[l.pos])}
			}
			l.pos++
		case '\n':
			return token{}, &SyntaxError{Line: start, Msg: "unterminated string"}
		default:
			b.WriteRune(c)
			l.pos++
		}
	}
	return token{}, &SyntaxError{Line: start, Msg: "unterminated string"}
}

func (l *lexer) lexVar() (token, error) {
	start := l.line
	l.pos++ // consume '?' or '$'
	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' {
			b.WriteRune(c)
			l.pos++
			continue
		}
		break
	}
	if b.Len() == 0 {
		return token{}, &SyntaxError{Line: start, Msg: "empty variable name"}
	}
	return token{kind: tokVar, text: b.String(), line: start}, nil
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
		return token{}, &SyntaxError{Line: start, Msg: "malformed numeric literal"}
	}
	return token{kind: kind, text: text, line: start}, nil
}

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
	if l.pos < len(l.src) && l.src[l.pos] == ':' {
		l.pos++
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
