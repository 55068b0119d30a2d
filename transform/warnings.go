package transform

import (
	"fmt"

	"github.com/jsphpgen/transpiler/phpast"
)

// unhandled records a best-effort-lowering warning and returns the marker
// identifier expression spec §4.3.7/§7 category 3 describes: unknown IL
// node kinds never fail the transform, they produce
// `UNHANDLED_EXPRESSION_<Type>` so the generated PHP fails to parse
// loudly rather than silently miscompiling.
func (s *State) unhandled(nodeKind string) phpast.Expr {
	s.reporter.ReportUnhandledNode(nodeKind)
	return &phpast.Identifier{Name: fmt.Sprintf("UNHANDLED_EXPRESSION_%s", nodeKind)}
}
