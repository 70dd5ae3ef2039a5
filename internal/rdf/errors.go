package rdf

import "fmt"

// ParseError reports malformed serialized input. Line is 1-based and
// refers to the input handed to Parse.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("parse error: %s", e.Msg)
}

// UnsupportedFormatError reports a serialization or parse format the store
// does not implement.
type UnsupportedFormatError struct {
	Format Format
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported serialization format %q", string(e.Format))
}
