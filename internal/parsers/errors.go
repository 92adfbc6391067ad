package parsers

import "fmt"

// ParseError reports source text that does not conform to the supported grammar.
// It is recovered per file by the pipeline.
type ParseError struct {
	Path   string
	Line   int // 1-indexed, 0 when unknown
	Column int // 1-indexed, 0 when unknown
	Msg    string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s:%d:%d: %s", e.Path, e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("parse %s: %s", e.Path, e.Msg)
}
