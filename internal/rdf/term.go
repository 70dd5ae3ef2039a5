package rdf

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/aeronote/aeronote/internal/vocab"
)

// Term is a sealed interface over the two RDF term kinds the store supports.
// Only IRI and Literal implement it. The marker method enables exhaustive
// type switches in the serializer and the query backend.
type Term interface {
	termNode() // Marker method - seals interface to this package

	// Encoded returns the N-Triples encoding of the term. Encodings are
	// unique per term and are used as map keys and as the join columns of
	// the SQL query backend.
	Encoded() string
}

// IRI is an absolute IRI term. IRIs identify every subject and predicate,
// and object positions that reference other nodes.
type IRI string

func (IRI) termNode() {}

// Encoded returns the IRI in N-Triples angle-bracket form.
func (i IRI) Encoded() string {
	return "<" + string(i) + ">"
}

// Literal is an RDF literal: a lexical form plus a datatype IRI, with an
// optional language tag. Lexical forms are NFC-normalized on construction
// so equal-looking literals compare equal.
type Literal struct {
	Lexical  string
	Datatype IRI
	Lang     string
}

func (Literal) termNode() {}

// NewLiteral creates a plain (xsd:string) literal.
func NewLiteral(lexical string) Literal {
	return Literal{Lexical: norm.NFC.String(lexical), Datatype: IRI(vocab.XSDString)}
}

// NewTypedLiteral creates a literal with an explicit datatype.
func NewTypedLiteral(lexical string, datatype IRI) Literal {
	return Literal{Lexical: norm.NFC.String(lexical), Datatype: datatype}
}

// NewLangLiteral creates a language-tagged string literal.
func NewLangLiteral(lexical, lang string) Literal {
	return Literal{Lexical: norm.NFC.String(lexical), Datatype: IRI(vocab.XSDString), Lang: lang}
}

// Encoded returns the literal in N-Triples form: the escaped lexical form,
// then the language tag or the datatype (omitted for plain xsd:string).
func (l Literal) Encoded() string {
	var b strings.Builder
	b.WriteByte('"')
	b.WriteString(escapeLexical(l.Lexical))
	b.WriteByte('"')
	if l.Lang != "" {
		b.WriteByte('@')
		b.WriteString(l.Lang)
	} else if l.Datatype != "" && string(l.Datatype) != vocab.XSDString {
		b.WriteString("^^<")
		b.WriteString(string(l.Datatype))
		b.WriteByte('>')
	}
	return b.String()
}

// escapeLexical applies the Turtle/N-Triples string escapes.
func escapeLexical(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DecodeTerm parses an N-Triples-encoded term back into a Term. It is the
// inverse of Encoded and is used by the query backend to decode bound
// values coming back from SQLite.
func DecodeTerm(s string) (Term, error) {
	switch {
	case strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">"):
		return IRI(s[1 : len(s)-1]), nil
	case strings.HasPrefix(s, `"`):
		return decodeLiteral(s)
	default:
		return nil, fmt.Errorf("malformed encoded term: %q", s)
	}
}

func decodeLiteral(s string) (Term, error) {
	// Find the closing unescaped quote.
	end := -1
	for i := 1; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] == '"' {
			end = i
			break
		}
	}
	if end < 0 {
		return nil, fmt.Errorf("unterminated literal: %q", s)
	}
	lexical, err := unescapeLexical(s[1:end])
	if err != nil {
		return nil, err
	}
	rest := s[end+1:]
	switch {
	case rest == "":
		return NewLiteral(lexical), nil
	case strings.HasPrefix(rest, "@"):
		return NewLangLiteral(lexical, rest[1:]), nil
	case strings.HasPrefix(rest, "^^<") && strings.HasSuffix(rest, ">"):
		return NewTypedLiteral(lexical, IRI(rest[3:len(rest)-1])), nil
	default:
		return nil, fmt.Errorf("malformed literal suffix: %q", rest)
	}
}

func unescapeLexical(s string) (string, error) {
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			continue
		}
		i++
		if i >= len(s) {
			return "", fmt.Errorf("dangling escape in literal %q", s)
		}
		switch s[i] {
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
			return "", fmt.Errorf("unsupported escape \\%c in literal %q", s[i], s)
		}
	}
	return b.String(), nil
}
