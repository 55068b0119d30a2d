package transform

import (
	"github.com/jsphpgen/transpiler/ilast"
	"github.com/jsphpgen/transpiler/phpast"
	"github.com/jsphpgen/transpiler/phptype"
)

// lowerExpr lowers one IL expression node to a PHP AST expression (spec
// §4.3.6). Unknown node kinds never fail the transform; they produce an
// UNHANDLED_EXPRESSION_<Type> marker and a warning (spec §4.3.7).
func (s *State) lowerExpr(n *ilast.Node) phpast.Expr {
	if n == nil {
		return phpast.NullLiteral()
	}
	switch n.Type() {
	case "Literal":
		return s.lowerLiteral(n)
	case "Identifier":
		return s.lowerIdentifier(n)
	case "ThisExpression":
		return &phpast.Variable{Name: "this"}
	case "MemberExpression":
		return s.lowerMemberExpression(n)
	case "BinaryExpression":
		return s.lowerBinaryExpression(n)
	case "LogicalExpression":
		return s.lowerLogicalExpression(n)
	case "UnaryExpression":
		return s.lowerUnaryExpression(n)
	case "UpdateExpression":
		return s.lowerUpdateExpression(n)
	case "AssignmentExpression":
		return s.lowerAssignmentExpression(n)
	case "ConditionalExpression":
		return &phpast.Ternary{
			Cond: s.lowerExpr(n.Child("test")),
			Then: s.lowerExpr(n.Child("consequent")),
			Else: s.lowerExpr(n.Child("alternate")),
		}
	case "CallExpression":
		return s.lowerCallExpression(n)
	case "NewExpression":
		return s.lowerNewExpression(n)
	case "ArrayExpression":
		return s.lowerArrayExpression(n)
	case "ObjectExpression":
		return s.lowerObjectExpression(n)
	case "TemplateLiteral":
		return s.lowerTemplateLiteral(n)
	case "ArrowFunctionExpression":
		return s.lowerArrowFunction(n)
	case "FunctionExpression":
		return s.lowerClosure(n)
	case "SpreadElement":
		return &phpast.SpreadElement{Operand: s.lowerExpr(n.Child("argument"))}
	case "SequenceExpression":
		exprs := n.ChildList("expressions")
		if len(exprs) == 0 {
			return phpast.NullLiteral()
		}
		return s.lowerExpr(exprs[len(exprs)-1])
	default:
		return s.unhandled(n.Type())
	}
}

func (s *State) lowerLiteral(n *ilast.Node) phpast.Expr {
	switch n.Str("kind") {
	case "string":
		return phpast.StringLiteral(n.Str("value"))
	case "bool":
		return phpast.BoolLiteral(n.Bool("value"))
	case "null":
		return phpast.NullLiteral()
	case "float":
		return phpast.FloatLiteral(n.Num("value"))
	default: // "int" or unspecified numeric literal
		f := n.Num("value")
		if raw := nonDecimalRaw(n.Str("raw")); raw != "" {
			return phpast.IntLiteralRaw(int64(f), raw)
		}
		return phpast.IntLiteral(int64(f))
	}
}

// nonDecimalRaw returns raw verbatim when it is hex/octal/binary notation
// (spec §8: `0x63` must round-trip as `0x63`, not `99`), else "".
func nonDecimalRaw(raw string) string {
	if len(raw) < 2 || raw[0] != '0' {
		return ""
	}
	switch raw[1] {
	case 'x', 'X', 'b', 'B', 'o', 'O':
		return raw
	default:
		return ""
	}
}

// lowerIdentifier implements spec §4.3.6: a declaredConstants reference
// emits the mapped constant name (no `$`); otherwise `$` + snake_case.
func (s *State) lowerIdentifier(n *ilast.Node) phpast.Expr {
	name := n.Str("name")
	if mapped, ok := s.declaredConstants[name]; ok {
		return &phpast.Identifier{Name: mapped}
	}
	if name == "parent" || name == "self" || name == "static" {
		return &phpast.Identifier{Name: name}
	}
	return &phpast.Variable{Name: SnakeCase(name)}
}

// mathConstants / numberConstants implement the Math.*/Number.* inline
// constant mapping of spec §4.3.6.
var mathConstants = map[string]string{
	"PI": "M_PI", "E": "M_E", "LN2": "M_LN2", "LN10": "M_LN10",
	"LOG2E": "M_LOG2E", "LOG10E": "M_LOG10E", "SQRT2": "M_SQRT2",
	"SQRT1_2": "M_SQRT1_2",
}

var numberConstants = map[string]string{
	"MAX_SAFE_INTEGER": "PHP_INT_MAX", "MIN_SAFE_INTEGER": "PHP_INT_MIN",
	"MAX_VALUE": "PHP_FLOAT_MAX", "MIN_VALUE": "PHP_FLOAT_MIN",
	"EPSILON": "PHP_FLOAT_EPSILON", "POSITIVE_INFINITY": "INF",
	"NEGATIVE_INFINITY": "-INF", "NaN": "NAN",
}

// opCodesMasks implements the `global.OpCodes.MASK32`-style inlining of
// spec §4.3.6.
var opCodesMasks = map[string]string{
	"MASK32": "0xFFFFFFFF", "MASK16": "0xFFFF", "MASK8": "0xFF",
	"MASK64": "0xFFFFFFFFFFFFFFFF",
}

// lowerMemberExpression implements the hard property-access case of
// spec §4.3.6.
func (s *State) lowerMemberExpression(n *ilast.Node) phpast.Expr {
	obj := n.Child("object")
	prop := n.Child("property")
	computed := n.Bool("computed")

	if obj != nil && obj.Type() == "Identifier" {
		base := obj.Str("name")
		propName := prop.Str("name")
		if !computed {
			switch base {
			case "Math":
				if mapped, ok := mathConstants[propName]; ok {
					return &phpast.Identifier{Name: mapped}
				}
				return &phpast.Identifier{Name: "M_" + propName}
			case "Number":
				if mapped, ok := numberConstants[propName]; ok {
					return &phpast.Identifier{Name: mapped}
				}
			}
		}
		// global.OpCodes.MASK32 and friends.
		if base == "global" && prop != nil && !computed {
			if opProp := firstLevelOpCodesProperty(n); opProp != "" {
				if mapped, ok := opCodesMasks[opProp]; ok {
					return &phpast.Identifier{Name: mapped}
				}
			}
		}
		// AlgorithmFramework.X.MEMBER where X is an enum object.
		if nestedObj := obj; nestedObj != nil {
			_ = nestedObj
		}
	}

	// AlgorithmFramework.X.MEMBER: obj itself is a MemberExpression whose
	// object is `AlgorithmFramework` and whose property is in ENUM_OBJECTS.
	if obj != nil && obj.Type() == "MemberExpression" && !obj.Bool("computed") {
		outer := obj.Child("object")
		mid := obj.Child("property")
		if outer != nil && outer.Type() == "Identifier" && outer.Str("name") == "AlgorithmFramework" &&
			mid != nil && EnumObjects[mid.Str("name")] {
			return phpast.StringLiteral(prop.Str("name"))
		}
	}

	return s.disambiguateMemberAccess(n, obj, prop, computed)
}

// firstLevelOpCodesProperty extracts "MASK32" from `global.OpCodes.MASK32`.
func firstLevelOpCodesProperty(n *ilast.Node) string {
	obj := n.Child("object")
	prop := n.Child("property")
	if obj == nil || obj.Type() != "MemberExpression" {
		return ""
	}
	inner := obj.Child("property")
	if inner == nil || inner.Str("name") != "OpCodes" {
		return ""
	}
	return prop.Str("name")
}

// disambiguateMemberAccess runs the array-vs-object disambiguation of
// spec §4.3.6.
func (s *State) disambiguateMemberAccess(n, obj, prop *ilast.Node, computed bool) phpast.Expr {
	objExpr := s.lowerExpr(obj)
	propName := ""
	if !computed {
		propName = prop.Str("name")
	}

	baseIsThis := obj != nil && obj.Type() == "ThisExpression"
	baseName := ""
	if obj != nil && obj.Type() == "Identifier" {
		baseName = obj.Str("name")
	}

	// Force `->` for tracked class instances.
	if baseName != "" && s.classInstances[baseName] {
		if computed {
			return &phpast.ArrayAccess{Array: objExpr, Index: s.lowerExpr(prop)}
		}
		return &phpast.PropertyAccess{Object: objExpr, Property: SnakeCase(propName)}
	}

	// PascalCase base not known as a variable and not a framework helper
	// type => static property access.
	if baseName != "" && IsPascalCase(baseName) && !s.isKnownVariable(baseName) && !FrameworkTypes[baseName] {
		return &phpast.StaticPropertyAccess{ClassName: baseName, Property: SnakeCase(propName)}
	}

	if computed {
		return &phpast.ArrayAccess{Array: objExpr, Index: s.lowerExpr(prop)}
	}

	// `.length` gets its own disambiguation (see lowerLengthAccess).
	if propName == "length" {
		return s.lowerLengthAccess(obj, objExpr, baseName)
	}

	if baseName != "" && s.isArray(baseName) {
		return &phpast.ArrayAccess{Array: objExpr, Index: phpast.StringLiteral(propName)}
	}

	if IsAllCaps(propName) && !baseIsThis && !IsPascalCase(baseName) && !s.classInstances[baseName] {
		return &phpast.ArrayAccess{Array: objExpr, Index: phpast.StringLiteral(propName)}
	}

	if baseIsThis && s.isArray("this."+propName) {
		return &phpast.ArrayAccess{Array: objExpr, Index: phpast.StringLiteral(propName)}
	}
	if baseIsThis {
		return &phpast.PropertyAccess{Object: objExpr, Property: SnakeCase(propName)}
	}

	// Heuristic final rule: a call-expression-rooted base projects array
	// access (the call is assumed to return an array-of-records).
	if obj != nil && obj.Type() == "CallExpression" {
		return &phpast.ArrayAccess{Array: objExpr, Index: phpast.StringLiteral(propName)}
	}

	return &phpast.PropertyAccess{Object: objExpr, Property: SnakeCase(propName)}
}

func (s *State) isKnownVariable(name string) bool {
	if _, ok := s.variableTypes[name]; ok {
		return true
	}
	return s.moduleVariables[name] || s.declaredConstants[name] != ""
}

// IsPascalCase reports whether name starts with an uppercase ASCII letter.
func IsPascalCase(name string) bool {
	return len(name) > 0 && name[0] >= 'A' && name[0] <= 'Z'
}

func (s *State) lowerLengthAccess(obj *ilast.Node, objExpr phpast.Expr, baseName string) phpast.Expr {
	if baseName != "" && (phptype.IsStringLengthName(baseName) || s.isStringTyped(baseName)) {
		return &phpast.FunctionCall{Callee: "strlen", Args: []phpast.Expr{objExpr}}
	}
	if baseName != "" && s.classFieldTypes[SnakeCase(baseName)].Equal(phptype.NewPrimitive(phptype.String)) {
		return &phpast.FunctionCall{Callee: "strlen", Args: []phpast.Expr{objExpr}}
	}
	return &phpast.FunctionCall{Callee: "count", Args: []phpast.Expr{objExpr}}
}

// lowerBinaryExpression implements spec §4.3.6's remapping table.
func (s *State) lowerBinaryExpression(n *ilast.Node) phpast.Expr {
	op := n.Str("operator")
	left := n.Child("left")
	right := n.Child("right")

	if op == "===" || op == "!==" {
		if tr, ok := s.typeofPattern(op, left, right); ok {
			if _, isCall := tr.(*phpast.FunctionCall); isCall && op == "!==" {
				return &phpast.UnaryExpr{Operator: "!", Operand: tr}
			}
			return tr
		}
	}
	if op == "in" {
		return &phpast.FunctionCall{Callee: "array_key_exists", Args: []phpast.Expr{s.lowerExpr(left), s.lowerExpr(right)}}
	}
	if op == ">>>" {
		return &phpast.BinaryExpr{Operator: ">>", Left: s.lowerExpr(left), Right: s.lowerExpr(right)}
	}
	if op == "+" && s.exprIsStringTyped(left, right) {
		return &phpast.BinaryExpr{Operator: ".", Left: s.lowerExpr(left), Right: s.lowerExpr(right)}
	}

	phpOp := op
	switch op {
	case "===":
		phpOp = "==="
	case "!==":
		phpOp = "!=="
	}
	return &phpast.BinaryExpr{Operator: phpOp, Left: s.lowerExpr(left), Right: s.lowerExpr(right)}
}

// typeofPattern recognizes `typeof x === 'kind'` / `typeof x !== 'kind'`.
// A kind check lowers to the matching is_*() call (the caller negates it
// for `!==`); `'undefined'` compares x against null with op itself.
func (s *State) typeofPattern(op string, left, right *ilast.Node) (phpast.Expr, bool) {
	var typeofExpr, litExpr *ilast.Node
	if left != nil && left.Type() == "UnaryExpression" && left.Str("operator") == "typeof" {
		typeofExpr, litExpr = left, right
	} else if right != nil && right.Type() == "UnaryExpression" && right.Str("operator") == "typeof" {
		typeofExpr, litExpr = right, left
	} else {
		return nil, false
	}
	if litExpr == nil || litExpr.Type() != "Literal" || litExpr.Str("kind") != "string" {
		return nil, false
	}
	operand := s.lowerExpr(typeofExpr.Child("argument"))
	switch litExpr.Str("value") {
	case "string":
		return &phpast.FunctionCall{Callee: "is_string", Args: []phpast.Expr{operand}}, true
	case "number":
		return &phpast.FunctionCall{Callee: "is_numeric", Args: []phpast.Expr{operand}}, true
	case "boolean":
		return &phpast.FunctionCall{Callee: "is_bool", Args: []phpast.Expr{operand}}, true
	case "object":
		return &phpast.FunctionCall{Callee: "is_array", Args: []phpast.Expr{operand}}, true
	case "function":
		return &phpast.FunctionCall{Callee: "is_callable", Args: []phpast.Expr{operand}}, true
	case "undefined":
		return &phpast.BinaryExpr{Operator: op, Left: operand, Right: phpast.NullLiteral()}, true
	}
	return nil, false
}

// exprIsStringTyped implements the transitive `+`-to-`.` string
// inference of spec §4.3.6: a string literal operand, a string-returning
// call, a string-typed variable, or an ancestor `+` with a string child.
func (s *State) exprIsStringTyped(nodes ...*ilast.Node) bool {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		switch n.Type() {
		case "Literal":
			if n.Str("kind") == "string" {
				return true
			}
		case "Identifier":
			if s.isStringTyped(n.Str("name")) {
				return true
			}
		case "CallExpression":
			if callee := calleeName(n); callee != "" && phptype.CallShape(callee) == phptype.ShapeString {
				return true
			}
			if isToStringCall(n) {
				return true
			}
		case "BinaryExpression":
			if n.Str("operator") == "+" && s.exprIsStringTyped(n.Child("left"), n.Child("right")) {
				return true
			}
		case "TemplateLiteral":
			return true
		}
	}
	return false
}

func isToStringCall(n *ilast.Node) bool {
	callee := n.Child("callee")
	if callee == nil || callee.Type() != "MemberExpression" {
		return false
	}
	prop := callee.Child("property")
	return prop != nil && prop.Str("name") == "toString"
}

func calleeName(call *ilast.Node) string {
	callee := call.Child("callee")
	if callee == nil {
		return ""
	}
	if callee.Type() == "Identifier" {
		return callee.Str("name")
	}
	return ""
}

// lowerLogicalExpression implements the `||`-to-Elvis lowering of spec
// §4.3.6: `||` between value-context operands (member access, identifier,
// property access, call) lowers to `?:`; in boolean contexts it stays
// `||`. `&&` is always passed through.
func (s *State) lowerLogicalExpression(n *ilast.Node) phpast.Expr {
	op := n.Str("operator")
	left := n.Child("left")
	right := n.Child("right")
	if op == "||" && isValueContext(left) {
		return &phpast.ShortTernary{Left: s.lowerExpr(left), Right: s.lowerExpr(right)}
	}
	return &phpast.BinaryExpr{Operator: op, Left: s.lowerExpr(left), Right: s.lowerExpr(right)}
}

func isValueContext(n *ilast.Node) bool {
	if n == nil {
		return false
	}
	switch n.Type() {
	case "MemberExpression", "Identifier", "CallExpression":
		return true
	default:
		return false
	}
}

func (s *State) lowerUnaryExpression(n *ilast.Node) phpast.Expr {
	op := n.Str("operator")
	arg := n.Child("argument")
	switch op {
	case "typeof":
		// Bare `typeof x` with no comparison: fall back to gettype().
		return &phpast.FunctionCall{Callee: "gettype", Args: []phpast.Expr{s.lowerExpr(arg)}}
	case "!":
		return &phpast.UnaryExpr{Operator: "!", Operand: s.lowerExpr(arg)}
	case "-", "+", "~":
		return &phpast.UnaryExpr{Operator: op, Operand: s.lowerExpr(arg)}
	default:
		return &phpast.UnaryExpr{Operator: op, Operand: s.lowerExpr(arg)}
	}
}

func (s *State) lowerUpdateExpression(n *ilast.Node) phpast.Expr {
	return &phpast.UnaryExpr{
		Operator: n.Str("operator"),
		Operand:  s.lowerExpr(n.Child("argument")),
		Postfix:  !n.Bool("prefix"),
	}
}

// lowerAssignmentExpression implements spec §4.3.6: `arr.length = 0`
// lowers to `$arr = []`; `+=` with a string right side becomes `.=`.
func (s *State) lowerAssignmentExpression(n *ilast.Node) phpast.Expr {
	left := n.Child("left")
	right := n.Child("right")
	op := n.Str("operator")

	if left != nil && left.Type() == "MemberExpression" && !left.Bool("computed") {
		if prop := left.Child("property"); prop != nil && prop.Str("name") == "length" {
			obj := left.Child("object")
			if lit := n.Child("right"); lit != nil && lit.Type() == "Literal" && lit.Num("value") == 0 {
				return &phpast.Assignment{Operator: "=", Target: s.lowerExpr(obj), Value: &phpast.ArrayLiteral{}}
			}
		}
	}

	s.trackAssignmentShape(left, right)

	targetExpr := s.lowerExpr(left)
	if op == "+=" && s.exprIsStringTyped(right) {
		return &phpast.Assignment{Operator: ".=", Target: targetExpr, Value: s.lowerExpr(right)}
	}
	if op == "=" && right != nil && right.Type() == "Literal" && right.Str("kind") == "string" {
		if left != nil && left.Type() == "Identifier" {
			s.markString(left.Str("name"))
		}
	}
	return &phpast.Assignment{Operator: op, Target: targetExpr, Value: s.lowerExpr(right)}
}

// trackAssignmentShape implements the array-vs-object monotonic tracking
// of spec §4.3.4 for plain (non-`this.`) identifier bindings, mirroring
// the `this.x=` tracking done in class.go across every method body.
func (s *State) trackAssignmentShape(left, right *ilast.Node) {
	if left == nil || left.Type() != "Identifier" || right == nil {
		return
	}
	name := left.Str("name")
	switch right.Type() {
	case "ObjectExpression", "CallExpression":
		s.markArray(name)
	case "ArrayExpression":
		s.markArray(name)
	case "MemberExpression":
		if base := right.Child("object"); base != nil && base.Type() == "Identifier" && s.isArray(base.Str("name")) {
			s.markArray(name)
		}
	case "FunctionExpression", "ArrowFunctionExpression":
		s.closureVariables[name] = true
	}
}
