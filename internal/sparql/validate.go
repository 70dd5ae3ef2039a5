package sparql

import "fmt"

// ValidationError reports a structurally well-formed query the backend
// cannot answer.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return "invalid query: " + e.Msg
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// Validate checks the query against the backend's rules:
//
//   - the pattern group must be non-empty,
//   - every projected or filtered variable must be bound by a pattern,
//   - projection aliases must be unique,
//   - aggregate projections must not mix with row-wise projections,
//   - a query with aggregates takes no ORDER BY,
//   - ORDER BY keys must be projected or pattern-bound.
//
// Validate is a pure function with no side effects.
func (q *Query) Validate() error {
	if len(q.Where) == 0 {
		return validationErrorf("pattern group is empty")
	}

	bound := make(map[string]bool)
	for _, tp := range q.Where {
		for _, term := range []PatternTerm{tp.S, tp.P, tp.O} {
			if v, ok := term.(Var); ok {
				bound[v.Name] = true
			}
		}
	}

	if len(q.Select) == 0 {
		return validationErrorf("projection is empty")
	}

	aggregates := 0
	aliases := make(map[string]bool)
	for _, proj := range q.Select {
		if aliases[proj.As] {
			return validationErrorf("duplicate projection name ?%s", proj.As)
		}
		aliases[proj.As] = true

		switch e := proj.Expr.(type) {
		case VarExpr:
			if !bound[e.Name] {
				return validationErrorf("projected variable ?%s is not bound by any pattern", e.Name)
			}
		case CallExpr:
			if !bound[e.Arg] {
				return validationErrorf("variable ?%s in %s() is not bound by any pattern", e.Arg, string(e.Fn))
			}
			if e.Fn.IsAggregate() {
				aggregates++
			}
		}
	}
	if aggregates > 0 {
		if aggregates != len(q.Select) {
			return validationErrorf("aggregate and row-wise projections cannot mix")
		}
		if len(q.OrderBy) > 0 {
			return validationErrorf("ORDER BY is not supported on aggregate queries")
		}
	}

	for _, f := range q.Filters {
		if !bound[f.Var] {
			return validationErrorf("filtered variable ?%s is not bound by any pattern", f.Var)
		}
	}

	for _, key := range q.OrderBy {
		if !bound[key.Var] && !aliases[key.Var] {
			return validationErrorf("ORDER BY variable ?%s is neither bound nor projected", key.Var)
		}
	}
	return nil
}
