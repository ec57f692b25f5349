// Package srcloc carries the source-location metadata that the external
// lexer/parser attaches to every statement and expression node. The
// toolchain never inspects source text itself; it only threads these
// coordinates through to error messages.
package srcloc

import "fmt"

// Location identifies a line/column pair in the original program source.
type Location struct {
	Line   int
	Column int
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// IsZero reports whether the location was never set by the parser.
func (l Location) IsZero() bool {
	return l.Line == 0 && l.Column == 0
}
