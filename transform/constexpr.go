package transform

import "github.com/jsphpgen/transpiler/ilast"

// IsConstantExpression implements spec §4.3.2: a value is a constant
// expression if it is a literal; a unary expression over a constant
// operand; a binary expression whose both operands are constants (no
// calls); an array expression whose every element is a constant (or
// hole); an object expression whose every value is a non-function
// constant (recursively); or a call `Object.freeze(<constant>)`, in
// which case the inner value is what gets promoted.
func IsConstantExpression(n *ilast.Node) bool {
	_, ok := UnwrapConstant(n)
	return ok
}

// UnwrapConstant returns the constant value to promote and true when n is
// a constant expression per spec §4.3.2. For everything except
// `Object.freeze(x)` this is n itself.
func UnwrapConstant(n *ilast.Node) (*ilast.Node, bool) {
	if n == nil {
		return nil, false
	}
	switch n.Type() {
	case "Literal":
		return n, true
	case "UnaryExpression":
		if IsConstantExpression(n.Child("argument")) {
			return n, true
		}
		return nil, false
	case "BinaryExpression":
		if IsConstantExpression(n.Child("left")) && IsConstantExpression(n.Child("right")) {
			return n, true
		}
		return nil, false
	case "ArrayExpression":
		for _, el := range n.ChildList("elements") {
			if el == nil {
				continue // hole
			}
			if !IsConstantExpression(el) {
				return nil, false
			}
		}
		return n, true
	case "ObjectExpression":
		for _, prop := range n.ChildList("properties") {
			val := prop.Child("value")
			if val != nil && (val.Type() == "FunctionExpression" || val.Type() == "ArrowFunctionExpression") {
				return nil, false
			}
			if !IsConstantExpression(val) {
				return nil, false
			}
		}
		return n, true
	case "CallExpression":
		callee := n.Child("callee")
		if callee != nil && callee.Type() == "MemberExpression" {
			obj := callee.Child("object")
			prop := callee.Child("property")
			if obj != nil && obj.Type() == "Identifier" && obj.Str("name") == "Object" &&
				prop != nil && prop.Str("name") == "freeze" {
				args := n.ChildList("arguments")
				if len(args) == 1 {
					return UnwrapConstant(args[0])
				}
			}
		}
		return nil, false
	default:
		return nil, false
	}
}
