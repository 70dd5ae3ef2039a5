package querysql

import (
	"fmt"
	"strings"

	"github.com/aeronote/aeronote/internal/sparql"
)

// Compile converts a validated sparql query to parameterized SQL over the
// triples table. Returns (sql, params, error).
//
// Fixed terms are always parameterized, never interpolated. Every
// non-aggregate query gets a deterministic ORDER BY.
func Compile(q *sparql.Query) (string, []any, error) {
	if err := q.Validate(); err != nil {
		return "", nil, err
	}

	// First column binding wins; later occurrences become join equalities.
	varRefs := make(map[string]string)
	var conds []string
	var params []any

	bindPosition := func(alias, column string, term sparql.PatternTerm) error {
		ref := alias + "." + column
		switch t := term.(type) {
		case sparql.Var:
			if prev, seen := varRefs[t.Name]; seen {
				conds = append(conds, ref+" = "+prev)
			} else {
				varRefs[t.Name] = ref
			}
		case sparql.IRITerm:
			conds = append(conds, ref+" = ?")
			params = append(params, t.IRI.Encoded())
		case sparql.LiteralTerm:
			conds = append(conds, ref+" = ?")
			params = append(params, t.Literal.Encoded())
		default:
			return fmt.Errorf("unsupported pattern term %T", term)
		}
		return nil
	}

	fromParts := make([]string, len(q.Where))
	for i, tp := range q.Where {
		alias := fmt.Sprintf("t%d", i)
		fromParts[i] = "triples AS " + alias
		if err := bindPosition(alias, "s", tp.S); err != nil {
			return "", nil, err
		}
		if err := bindPosition(alias, "p", tp.P); err != nil {
			return "", nil, err
		}
		if err := bindPosition(alias, "o", tp.O); err != nil {
			return "", nil, err
		}
	}

	for _, f := range q.Filters {
		ref := varRefs[f.Var]
		conds = append(conds, ref+" = ?")
		switch t := f.Term.(type) {
		case sparql.IRITerm:
			params = append(params, t.IRI.Encoded())
		case sparql.LiteralTerm:
			params = append(params, t.Literal.Encoded())
		default:
			return "", nil, fmt.Errorf("unsupported filter term %T", f.Term)
		}
	}

	selectParts := make([]string, len(q.Select))
	for i, proj := range q.Select {
		expr, err := compileExpr(proj.Expr, varRefs)
		if err != nil {
			return "", nil, err
		}
		// Aliases are quoted: variable names like "end" are SQL keywords.
		selectParts[i] = expr + ` AS "` + proj.As + `"`
	}

	sqlText := "SELECT " + strings.Join(selectParts, ", ") +
		" FROM " + strings.Join(fromParts, ", ")
	if len(conds) > 0 {
		sqlText += " WHERE " + strings.Join(conds, " AND ")
	}
	if orderBy := compileOrderBy(q, varRefs); orderBy != "" {
		sqlText += " ORDER BY " + orderBy
	}
	return sqlText, params, nil
}

func compileExpr(e sparql.Expr, varRefs map[string]string) (string, error) {
	switch expr := e.(type) {
	case sparql.VarExpr:
		return varRefs[expr.Name], nil
	case sparql.CallExpr:
		ref := varRefs[expr.Arg]
		switch expr.Fn {
		case sparql.FuncAvg:
			return "avg(term_number(" + ref + "))", nil
		case sparql.FuncHours:
			return "term_hours(" + ref + ")", nil
		case sparql.FuncMinutes:
			return "term_minutes(" + ref + ")", nil
		case sparql.FuncSeconds:
			return "term_seconds(" + ref + ")", nil
		default:
			return "", fmt.Errorf("unsupported function %s", string(expr.Fn))
		}
	default:
		return "", fmt.Errorf("unsupported projection expression %T", e)
	}
}

// compileOrderBy emits the query's keys followed by every projected column
// not already listed, so equal stores produce identical tables. Aggregate
// queries produce one row and take no ORDER BY.
func compileOrderBy(q *sparql.Query, varRefs map[string]string) string {
	if isAggregate(q) {
		return ""
	}

	var keys []string
	covered := make(map[string]bool)
	for _, key := range q.OrderBy {
		ref := `"` + key.Var + `"`
		if !isProjected(q, key.Var) {
			ref = varRefs[key.Var]
		}
		dir := " ASC"
		if key.Desc {
			dir = " DESC"
		}
		keys = append(keys, ref+dir)
		covered[key.Var] = true
	}
	for _, proj := range q.Select {
		if !covered[proj.As] {
			keys = append(keys, `"`+proj.As+`" ASC`)
		}
	}
	return strings.Join(keys, ", ")
}

func isProjected(q *sparql.Query, name string) bool {
	for _, proj := range q.Select {
		if proj.As == name {
			return true
		}
	}
	return false
}

func isAggregate(q *sparql.Query) bool {
	for _, proj := range q.Select {
		if call, ok := proj.Expr.(sparql.CallExpr); ok && call.Fn.IsAggregate() {
			return true
		}
	}
	return false
}
