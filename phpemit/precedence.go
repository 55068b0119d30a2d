package phpemit

import "github.com/jsphpgen/transpiler/phpast"

// binaryPrecedence is PHP's binary-operator precedence table (higher
// number binds tighter). Only operators phpast.BinaryExpr can carry are
// listed; anything absent is treated as lowest (always parenthesized when
// nested).
// loosePrec is the parent-precedence sentinel for a rendering position
// that imposes no grouping requirement of its own (a statement's
// expression, a call argument, an array element, a condition already
// wrapped in literal parens by its keyword). It sits below every real
// operator and below Assignment/Ternary/NullCoalescing/ShortTernary too,
// so none of them ever gain a spurious wrapping paren merely for being
// rendered in isolation; Ternary still parenthesizes itself via its own
// literal "(" ")" in emitExprBare.
const loosePrec = -(1 << 30)

var binaryPrecedence = map[string]int{
	"**": 11,
	"*":  9, "/": 9, "%": 9,
	"+": 8, "-": 8, ".": 8,
	"<<": 7, ">>": 7,
	"<": 6, "<=": 6, ">": 6, ">=": 6,
	"==": 5, "!=": 5, "===": 5, "!==": 5, "<>": 5, "<=>": 5,
	"&": 4,
	"^": 3,
	"|": 2,
	"&&": 1,
	"||": 0,
}

// exprPrecedence returns the binding strength of e as a sub-expression;
// atoms (literals, variables, calls, access chains) return the maximum so
// they never need defensive parens.
func exprPrecedence(e phpast.Expr) int {
	switch v := e.(type) {
	case *phpast.BinaryExpr:
		if p, ok := binaryPrecedence[v.Operator]; ok {
			return p
		}
		return -1
	case *phpast.Ternary, *phpast.ShortTernary, *phpast.NullCoalescing:
		return -2
	case *phpast.StringInterpolation:
		if len(v.Parts) > 1 {
			return 8 // renders as a `.` concatenation chain
		}
		return 1 << 30
	case *phpast.Assignment:
		return -3
	default:
		return 1 << 30
	}
}

// needsParens reports whether child, rendered as a direct operand of a
// binary/ternary parent with precedence parentPrec, requires
// parenthesization. Equal precedence on the right-hand side is always
// parenthesized too: the emitter never relies on left-associativity
// alone to reproduce the original grouping (spec §4.1 "minimal but
// unambiguous parenthesization" — minimal here means "no more than this
// rule requires", not "fewest characters possible").
func needsParens(child phpast.Expr, parentPrec int, isRightOperand bool) bool {
	cp := exprPrecedence(child)
	if cp > parentPrec {
		return false
	}
	if cp < parentPrec {
		return true
	}
	return isRightOperand
}
