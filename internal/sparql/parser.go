package sparql

import (
	"fmt"

	"github.com/aeronote/aeronote/internal/rdf"
	"github.com/aeronote/aeronote/internal/vocab"
)

// Parse builds the query IR from query text. Syntax failures return a
// *SyntaxError. The result is not yet validated; call Query.Validate
// before handing it to a backend.
func Parse(src string) (*Query, error) {
	p := &parser{
		lex: newLexer(src),
		q:   &Query{Prefixes: make(map[string]string)},
	}
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.q, nil
}

type parser struct {
	lex *lexer
	q   *Query
}

func (p *parser) errf(tok token, format string, args ...any) error {
	return &SyntaxError{Line: tok.line, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) run() error {
	if err := p.parsePrologue(); err != nil {
		return err
	}
	if err := p.parseSelect(); err != nil {
		return err
	}
	if err := p.parseWhere(); err != nil {
		return err
	}
	if err := p.parseOrderBy(); err != nil {
		return err
	}
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	if tok.kind != tokEOF {
		return p.errf(tok, "unexpected trailing token %q", tok.text)
	}
	return nil
}

func (p *parser) parsePrologue() error {
	for {
		tok, err := p.lex.next()
		if err != nil {
			return err
		}
		if !tok.keyword("PREFIX") {
			p.lex.pushback(tok)
			return nil
		}
		name, err := p.lex.next()
		if err != nil {
			return err
		}
		if name.kind != tokPName || name.local != "" {
			return p.errf(name, "expected prefix name after PREFIX, got %q", name.text)
		}
		iri, err := p.lex.next()
		if err != nil {
			return err
		}
		if iri.kind != tokIRIRef {
			return p.errf(iri, "expected <IRI> in PREFIX declaration, got %q", iri.text)
		}
		p.q.Prefixes[name.prefix] = iri.text
	}
}

func (p *parser) parseSelect() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	if !tok.keyword("SELECT") {
		return p.errf(tok, "expected SELECT, got %q", tok.text)
	}

	for {
		tok, err := p.lex.next()
		if err != nil {
			return err
		}
		switch {
		case tok.kind == tokVar:
			p.q.Select = append(p.q.Select, Projection{Expr: VarExpr{Name: tok.text}, As: tok.text})
		case tok.kind == tokLParen:
			proj, err := p.parseAliasedProjection()
			if err != nil {
				return err
			}
			p.q.Select = append(p.q.Select, proj)
		case tok.keyword("WHERE") || tok.kind == tokLBrace:
			if len(p.q.Select) == 0 {
				return p.errf(tok, "SELECT requires at least one projection")
			}
			p.lex.pushback(tok)
			return nil
		default:
			return p.errf(tok, "expected projection, got %q", tok.text)
		}
	}
}

// parseAliasedProjection parses "expr AS ?var )" after the opening paren.
func (p *parser) parseAliasedProjection() (Projection, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return Projection{}, err
	}
	as, err := p.lex.next()
	if err != nil {
		return Projection{}, err
	}
	if !as.keyword("AS") {
		return Projection{}, p.errf(as, "expected AS in projection, got %q", as.text)
	}
	v, err := p.lex.next()
	if err != nil {
		return Projection{}, err
	}
	if v.kind != tokVar {
		return Projection{}, p.errf(v, "expected variable after AS, got %q", v.text)
	}
	closing, err := p.lex.next()
	if err != nil {
		return Projection{}, err
	}
	if closing.kind != tokRParen {
		return Projection{}, p.errf(closing, "expected ')' closing projection, got %q", closing.text)
	}
	return Projection{Expr: expr, As: v.text}, nil
}

func (p *parser) parseExpr() (Expr, error) {
	tok, err := p.lex.next()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokVar {
		return VarExpr{Name: tok.text}, nil
	}
	if tok.kind != tokWord {
		return nil, p.errf(tok, "expected expression, got %q", tok.text)
	}

	var fn FuncName
	switch {
	case tok.keyword("AVG"):
		fn = FuncAvg
	case tok.keyword("HOURS"):
		fn = FuncHours
	case tok.keyword("MINUTES"):
		fn = FuncMinutes
	case tok.keyword("SECONDS"):
		fn = FuncSeconds
	default:
		return nil, p.errf(tok, "unsupported function %q", tok.text)
	}

	open, err := p.lex.next()
	if err != nil {
		return nil, err
	}
	if open.kind != tokLParen {
		return nil, p.errf(open, "expected '(' after %s", string(fn))
	}
	arg, err := p.lex.next()
	if err != nil {
		return nil, err
	}
	if arg.kind != tokVar {
		return nil, p.errf(arg, "expected variable argument to %s, got %q", string(fn), arg.text)
	}
	closing, err := p.lex.next()
	if err != nil {
		return nil, err
	}
	if closing.kind != tokRParen {
		return nil, p.errf(closing, "expected ')' closing %s call", string(fn))
	}
	return CallExpr{Fn: fn, Arg: arg.text}, nil
}

func (p *parser) parseWhere() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	// The WHERE keyword is optional before the group, as in SPARQL.
	if tok.keyword("WHERE") {
		tok, err = p.lex.next()
		if err != nil {
			return err
		}
	}
	if tok.kind != tokLBrace {
		return p.errf(tok, "expected '{' opening the pattern group, got %q", tok.text)
	}

	for {
		tok, err := p.lex.next()
		if err != nil {
			return err
		}
		switch {
		case tok.kind == tokRBrace:
			return nil
		case tok.keyword("FILTER"):
			if err := p.parseFilter(); err != nil {
				return err
			}
		default:
			p.lex.pushback(tok)
			if err := p.parseTriplePattern(); err != nil {
				return err
			}
		}

		// Optional '.' separator between group entries.
		sep, err := p.lex.next()
		if err != nil {
			return err
		}
		if sep.kind != tokDot {
			p.lex.pushback(sep)
		}
	}
}

func (p *parser) parseTriplePattern() error {
	s, err := p.parsePatternTerm(false)
	if err != nil {
		return err
	}
	pred, err := p.parsePatternTerm(false)
	if err != nil {
		return err
	}
	o, err := p.parsePatternTerm(true)
	if err != nil {
		return err
	}
	p.q.Where = append(p.q.Where, TriplePattern{S: s, P: pred, O: o})
	return nil
}

// parsePatternTerm reads one pattern position. Literals are only accepted
// in object position.
func (p *parser) parsePatternTerm(allowLiteral bool) (PatternTerm, error) {
	tok, err := p.lex.next()
	if err != nil {
		return nil, err
	}
	switch {
	case tok.kind == tokVar:
		return Var{Name: tok.text}, nil
	case tok.kind == tokWord && tok.text == "a":
		return IRITerm{IRI: rdf.IRI(vocab.RDFType)}, nil
	case tok.kind == tokIRIRef:
		return IRITerm{IRI: rdf.IRI(tok.text)}, nil
	case tok.kind == tokPName:
		iri, err := p.resolveIRI(tok)
		if err != nil {
			return nil, err
		}
		return IRITerm{IRI: iri}, nil
	case tok.kind == tokString && allowLiteral:
		return p.parseLiteralTail(tok.text)
	case tok.kind == tokInteger && allowLiteral:
		return LiteralTerm{Literal: rdf.Literal{Lexical: tok.text, Datatype: rdf.IRI(vocab.XSDInteger)}}, nil
	case tok.kind == tokDecimal && allowLiteral:
		return LiteralTerm{Literal: rdf.Literal{Lexical: tok.text, Datatype: rdf.IRI(vocab.XSDDecimal)}}, nil
	default:
		return nil, p.errf(tok, "unexpected term %q in pattern", tok.text)
	}
}

func (p *parser) parseLiteralTail(lexical string) (PatternTerm, error) {
	tok, err := p.lex.next()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokHatHat {
		dt, err := p.lex.next()
		if err != nil {
			return nil, err
		}
		var iri rdf.IRI
		switch dt.kind {
		case tokIRIRef:
			iri = rdf.IRI(dt.text)
		case tokPName:
			iri, err = p.resolveIRI(dt)
			if err != nil {
				return nil, err
			}
		default:
			return nil, p.errf(dt, "expected datatype IRI after ^^, got %q", dt.text)
		}
		return LiteralTerm{Literal: rdf.Literal{Lexical: lexical, Datatype: iri}}, nil
	}
	p.lex.pushback(tok)
	return LiteralTerm{Literal: rdf.Literal{Lexical: lexical, Datatype: rdf.IRI(vocab.XSDString)}}, nil
}

// parseFilter parses "( ?var = term )" after the FILTER keyword.
func (p *parser) parseFilter() error {
	open, err := p.lex.next()
	if err != nil {
		return err
	}
	if open.kind != tokLParen {
		return p.errf(open, "expected '(' after FILTER")
	}
	v, err := p.lex.next()
	if err != nil {
		return err
	}
	if v.kind != tokVar {
		return p.errf(v, "expected variable in FILTER, got %q", v.text)
	}
	eq, err := p.lex.next()
	if err != nil {
		return err
	}
	if eq.kind != tokEq {
		return p.errf(eq, "only equality filters are supported, got %q", eq.text)
	}
	term, err := p.parsePatternTerm(true)
	if err != nil {
		return err
	}
	if _, isVar := term.(Var); isVar {
		return p.errf(eq, "FILTER must compare against a fixed term")
	}
	closing, err := p.lex.next()
	if err != nil {
		return err
	}
	if closing.kind != tokRParen {
		return p.errf(closing, "expected ')' closing FILTER")
	}
	p.q.Filters = append(p.q.Filters, Filter{Var: v.text, Term: term})
	return nil
}

func (p *parser) parseOrderBy() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	if !tok.keyword("ORDER") {
		p.lex.pushback(tok)
		return nil
	}
	by, err := p.lex.next()
	if err != nil {
		return err
	}
	if !by.keyword("BY") {
		return p.errf(by, "expected BY after ORDER, got %q", by.text)
	}

	for {
		tok, err := p.lex.next()
		if err != nil {
			return err
		}
		switch {
		case tok.kind == tokVar:
			p.q.OrderBy = append(p.q.OrderBy, OrderKey{Var: tok.text})
		case tok.keyword("ASC") || tok.keyword("DESC"):
			desc := tok.keyword("DESC")
			open, err := p.lex.next()
			if err != nil {
				return err
			}
			if open.kind != tokLParen {
				return p.errf(open, "expected '(' after %s", tok.text)
			}
			v, err := p.lex.next()
			if err != nil {
				return err
			}
			if v.kind != tokVar {
				return p.errf(v, "expected variable in %s(), got %q", tok.text, v.text)
			}
			closing, err := p.lex.next()
			if err != nil {
				return err
			}
			if closing.kind != tokRParen {
				return p.errf(closing, "expected ')' closing %s()", tok.text)
			}
			p.q.OrderBy = append(p.q.OrderBy, OrderKey{Var: v.text, Desc: desc})
		default:
			if len(p.q.OrderBy) == 0 {
				return p.errf(tok, "expected ordering key after ORDER BY, got %q", tok.text)
			}
			p.lex.pushback(tok)
			return nil
		}
	}
}

func (p *parser) resolveIRI(tok token) (rdf.IRI, error) {
	ns, ok := p.q.Prefixes[tok.prefix]
	if !ok {
		ns, ok = vocab.Prefixes[tok.prefix]
	}
	if !ok {
		return "", p.errf(tok, "undeclared prefix %q", tok.prefix)
	}
	return rdf.IRI(ns + tok.local), nil
}
