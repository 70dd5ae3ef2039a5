package rdf

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/aeronote/aeronote/internal/vocab"
)

// Format identifies a serialization syntax.
type Format string

// FormatTurtle is the only format the store implements. Requesting any
// other format fails with UnsupportedFormatError.
const FormatTurtle Format = "turtle"

// Bare token forms must survive re-parsing. The number lexer requires a
// leading digit, so decimals with an empty integer part (".5") stay in
// the quoted form.
var (
	integerLexical = regexp.MustCompile(`^[+-]?[0-9]+$`)
	decimalLexical = regexp.MustCompile(`^[+-]?[0-9]+\.[0-9]+$`)
	safeLocalPart  = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)
)

// Serialize writes the graph to w in the requested format. Output is
// deterministic: prefixes sorted by name, subjects sorted by IRI,
// rdf:type first within a subject, remaining predicates sorted, objects
// sorted within a predicate.
func (g *Graph) Serialize(w io.Writer, format Format) error {
	if format != FormatTurtle {
		return &UnsupportedFormatError{Format: format}
	}

	prefixNames := make([]string, 0, len(vocab.Prefixes))
	for name := range vocab.Prefixes {
		prefixNames = append(prefixNames, name)
	}
	sort.Strings(prefixNames)
	for _, name := range prefixNames {
		if _, err := fmt.Fprintf(w, "@prefix %s: <%s> .\n", name, vocab.Prefixes[name]); err != nil {
			return err
		}
	}

	// Group statements by subject, then by predicate.
	bySubject := make(map[IRI]map[IRI][]Term)
	for _, t := range g.triples {
		preds, ok := bySubject[t.S]
		if !ok {
			preds = make(map[IRI][]Term)
			bySubject[t.S] = preds
		}
		preds[t.P] = append(preds[t.P], t.O)
	}

	subjects := make([]IRI, 0, len(bySubject))
	for s := range bySubject {
		subjects = append(subjects, s)
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i] < subjects[j] })

	for _, s := range subjects {
		preds := bySubject[s]
		names := make([]IRI, 0, len(preds))
		for p := range preds {
			names = append(names, p)
		}
		sort.Slice(names, func(i, j int) bool {
			// rdf:type leads, conventional Turtle layout.
			if names[i] == IRI(vocab.RDFType) {
				return names[j] != IRI(vocab.RDFType)
			}
			if names[j] == IRI(vocab.RDFType) {
				return false
			}
			return names[i] < names[j]
		})

		if _, err := fmt.Fprintf(w, "\n%s", renderIRI(s)); err != nil {
			return err
		}
		for pi, p := range names {
			objects := preds[p]
			rendered := make([]string, len(objects))
			for i, o := range objects {
				rendered[i] = renderTerm(o)
			}
			sort.Strings(rendered)

			sep := " "
			if pi > 0 {
				sep = " ;\n    "
			}
			if _, err := fmt.Fprintf(w, "%s%s %s", sep, renderPredicate(p), strings.Join(rendered, ", ")); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, " .\n"); err != nil {
			return err
		}
	}
	return nil
}

// renderIRI abbreviates an IRI to a prefixed name when a known namespace
// matches and the local part is safe, else emits the full bracketed form.
func renderIRI(i IRI) string {
	s := string(i)
	for name, ns := range vocab.Prefixes {
		if strings.HasPrefix(s, ns) {
			local := s[len(ns):]
			if safeLocalPart.MatchString(local) {
				return name + ":" + local
			}
		}
	}
	return "<" + s + ">"
}

// renderPredicate abbreviates rdf:type to the Turtle "a" keyword.
func renderPredicate(p IRI) string {
	if p == IRI(vocab.RDFType) {
		return "a"
	}
	return renderIRI(p)
}

func renderTerm(t Term) string {
	switch v := t.(type) {
	case IRI:
		return renderIRI(v)
	case Literal:
		return renderLiteral(v)
	default:
		// Unreachable: Term is sealed.
		return t.Encoded()
	}
}

func renderLiteral(l Literal) string {
	if l.Lang == "" {
		// Numeric literals get the bare Turtle token form.
		switch string(l.Datatype) {
		case vocab.XSDInteger:
			if integerLexical.MatchString(l.Lexical) {
				return l.Lexical
			}
		case vocab.XSDDecimal:
			if decimalLexical.MatchString(l.Lexical) {
				return l.Lexical
			}
		}
	}
	quoted := `"` + escapeLexical(l.Lexical) + `"`
	if l.Lang != "" {
		return quoted + "@" + l.Lang
	}
	if l.Datatype != "" && string(l.Datatype) != vocab.XSDString {
		return quoted + "^^" + renderIRI(l.Datatype)
	}
	return quoted
}
