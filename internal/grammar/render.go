package grammar

import (
	"fmt"
	"strings"
)

// Render returns an indented dump of the parse tree, one node per line,
// with byte offsets:
//
//	query
//	  clause @0
//	    operator @0 "+"
//	    term @1 "ham"
func Render(q *Query) string {
	var b strings.Builder
	b.WriteString("query\n")
	for _, c := range q.Clauses {
		fmt.Fprintf(&b, "  clause @%d\n", c.Offset)
		if c.Operator != nil {
			fmt.Fprintf(&b, "    operator @%d %q\n", c.Operator.Offset, c.Operator.Symbol)
		}
		switch body := c.Body.(type) {
		case *Term:
			fmt.Fprintf(&b, "    term @%d %q\n", body.Offset, body.Text)
		case *Phrase:
			fmt.Fprintf(&b, "    phrase @%d..%d\n", body.Offset, body.End)
			for _, t := range body.Terms {
				fmt.Fprintf(&b, "      term @%d %q\n", t.Offset, t.Text)
			}
		}
	}
	return b.String()
}
