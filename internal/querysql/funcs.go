package querysql

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/mattn/go-sqlite3"

	"github.com/aeronote/aeronote/internal/rdf"
)

// driverName is the sqlite3 driver instance carrying the term functions.
const driverName = "sqlite3_querysql"

var registerDriver sync.Once

// register installs the term extraction functions on a dedicated driver.
// sql.Register panics on duplicate names, hence the Once.
func register() {
	registerDriver.Do(func() {
		sql.Register(driverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				funcs := map[string]any{
					"term_number":  termNumber,
					"term_hours":   termHours,
					"term_minutes": termMinutes,
					"term_seconds": termSeconds,
				}
				for name, fn := range funcs {
					if err := conn.RegisterFunc(name, fn, true); err != nil {
						return fmt.Errorf("register %s: %w", name, err)
					}
				}
				return nil
			},
		})
	})
}

// lexical extracts the value text of an encoded term: the lexical form of
// a literal, the IRI string otherwise.
func lexical(encoded string) (string, error) {
	term, err := rdf.DecodeTerm(encoded)
	if err != nil {
		return "", err
	}
	switch v := term.(type) {
	case rdf.Literal:
		return v.Lexical, nil
	case rdf.IRI:
		return string(v), nil
	default:
		return "", fmt.Errorf("unsupported term %q", encoded)
	}
}

// termNumber converts a bound value to a float for aggregation.
func termNumber(encoded string) (float64, error) {
	lex, err := lexical(encoded)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseFloat(lex, 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric value %q", lex)
	}
	return n, nil
}

func termHours(encoded string) (int64, error)   { return timeComponent(encoded, 0) }
func termMinutes(encoded string) (int64, error) { return timeComponent(encoded, 1) }
func termSeconds(encoded string) (int64, error) { return timeComponent(encoded, 2) }

// timeComponent extracts the hour, minute, or second field of an
// xsd:dateTime or xsd:time lexical form.
func timeComponent(encoded string, index int) (int64, error) {
	lex, err := lexical(encoded)
	if err != nil {
		return 0, err
	}
	clock := lex
	if t := strings.IndexByte(clock, 'T'); t >= 0 {
		clock = clock[t+1:]
	}
	// Strip a trailing zone designator ("Z" or an ±HH:MM offset after the
	// HH:MM:SS core).
	clock = strings.TrimSuffix(clock, "Z")
	if len(clock) > 8 && (clock[8] == '+' || clock[8] == '-') {
		clock = clock[:8]
	}

	parts := strings.Split(clock, ":")
	if len(parts) <= index {
		return 0, fmt.Errorf("value %q has no time component", lex)
	}
	// Seconds may carry a fraction.
	field := parts[index]
	if dot := strings.IndexByte(field, '.'); dot >= 0 {
		field = field[:dot]
	}
	n, err := strconv.ParseInt(field, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed time component in %q", lex)
	}
	return n, nil
}
