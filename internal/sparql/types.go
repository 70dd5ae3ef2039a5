package sparql

import "github.com/aeronote/aeronote/internal/rdf"

// Query is the IR for one parsed SELECT query. Projection order is the
// declaration order in the query text; the façade's result columns follow
// it.
type Query struct {
	// Prefixes are the declared prefix bindings, already folded into every
	// IRI during parsing. Kept for diagnostics.
	Prefixes map[string]string

	// Select is the projection list, in declaration order.
	Select []Projection

	// Where is the basic graph pattern.
	Where []TriplePattern

	// Filters constrain pattern variables to fixed terms.
	Filters []Filter

	// OrderBy lists the result ordering keys, outermost first.
	OrderBy []OrderKey
}

// Projection is one SELECT column: a bare variable or an expression with
// an AS alias.
type Projection struct {
	Expr Expr
	// As is the result column name. For a bare variable it is the
	// variable's own name.
	As string
}

// Expr is a sealed interface over projection expressions.
type Expr interface {
	exprNode() // Marker method - seals interface to this package
}

// VarExpr projects a pattern variable unchanged.
type VarExpr struct {
	Name string
}

func (VarExpr) exprNode() {}

// FuncName identifies a built-in projection function.
type FuncName string

const (
	// FuncAvg aggregates the numeric values bound to a variable into
	// their mean. A query containing FuncAvg aggregates over the whole
	// solution sequence.
	FuncAvg FuncName = "AVG"

	// FuncHours extracts the hour component of a dateTime or time bound
	// value, row-wise.
	FuncHours FuncName = "HOURS"

	// FuncMinutes extracts the minute component, row-wise.
	FuncMinutes FuncName = "MINUTES"

	// FuncSeconds extracts the second component, row-wise.
	FuncSeconds FuncName = "SECONDS"
)

// IsAggregate reports whether the function folds the whole solution
// sequence into one row.
func (f FuncName) IsAggregate() bool {
	return f == FuncAvg
}

// CallExpr applies a built-in function to a pattern variable.
type CallExpr struct {
	Fn  FuncName
	Arg string // variable name
}

func (CallExpr) exprNode() {}

// PatternTerm is a sealed interface over the three term kinds a triple
// pattern position can hold.
type PatternTerm interface {
	patternTerm() // Marker method - seals interface to this package
}

// Var is a pattern variable.
type Var struct {
	Name string
}

func (Var) patternTerm() {}

// IRITerm is a fixed IRI in a pattern position.
type IRITerm struct {
	IRI rdf.IRI
}

func (IRITerm) patternTerm() {}

// LiteralTerm is a fixed literal in an object or filter position.
type LiteralTerm struct {
	Literal rdf.Literal
}

func (LiteralTerm) patternTerm() {}

// TriplePattern matches statements. Any position may be a Var; subjects
// and predicates are otherwise IRIs.
type TriplePattern struct {
	S PatternTerm
	P PatternTerm
	O PatternTerm
}

// Filter constrains a variable to equal a fixed term.
type Filter struct {
	Var  string
	Term PatternTerm // IRITerm or LiteralTerm
}

// OrderKey is one ORDER BY key.
type OrderKey struct {
	Var  string
	Desc bool
}
