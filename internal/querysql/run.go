package querysql

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/aeronote/aeronote/internal/rdf"
	"github.com/aeronote/aeronote/internal/sparql"
)

// Result is one fully materialized query answer. Vars holds the column
// names in projection order; every row holds the display form of each
// bound value (IRI string, literal lexical form, or computed number).
type Result struct {
	Vars []string
	Rows [][]string
}

// Run parses, compiles, and executes queryText against the graph.
//
// The graph is loaded into a fresh in-memory SQLite database per call; no
// state survives between runs and the store is never mutated.
func Run(ctx context.Context, g *rdf.Graph, queryText string) (*Result, error) {
	q, err := sparql.Parse(queryText)
	if err != nil {
		return nil, err
	}
	sqlText, params, err := Compile(q)
	if err != nil {
		return nil, err
	}

	register()
	db, err := sql.Open(driverName, ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open query database: %w", err)
	}
	defer db.Close()
	// An in-memory database exists per connection; the pool must never
	// hand out a second one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := loadTriples(ctx, db, g); err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, sqlText, params...)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer rows.Close()

	result := &Result{Vars: make([]string, len(q.Select))}
	for i, proj := range q.Select {
		result.Vars[i] = proj.As
	}

	for rows.Next() {
		cells := make([]any, len(result.Vars))
		for i := range cells {
			cells[i] = new(any)
		}
		if err := rows.Scan(cells...); err != nil {
			return nil, fmt.Errorf("scan result row: %w", err)
		}
		row := make([]string, len(cells))
		for i, c := range cells {
			row[i] = formatCell(*c.(*any))
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read result rows: %w", err)
	}
	return result, nil
}

func loadTriples(ctx context.Context, db *sql.DB, g *rdf.Graph) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE triples (
			s TEXT NOT NULL,
			p TEXT NOT NULL,
			o TEXT NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("create triples table: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("load triples: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO triples (s, p, o) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("load triples: prepare: %w", err)
	}
	defer stmt.Close()

	for _, t := range g.Triples() {
		if _, err := stmt.ExecContext(ctx, t.S.Encoded(), t.P.Encoded(), t.O.Encoded()); err != nil {
			return fmt.Errorf("load triples: insert: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("load triples: commit: %w", err)
	}
	return nil
}

// formatCell renders one scanned SQL value for the result table. Column
// values are encoded terms; computed columns come back as numbers.
func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return formatEncoded(val)
	case []byte:
		return formatEncoded(string(val))
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func formatEncoded(s string) string {
	term, err := rdf.DecodeTerm(s)
	if err != nil {
		return s
	}
	switch t := term.(type) {
	case rdf.IRI:
		return string(t)
	case rdf.Literal:
		return t.Lexical
	default:
		return s
	}
}
