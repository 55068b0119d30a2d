package transform

import "github.com/jsphpgen/transpiler/ilast"

// prepassVisitor implements ilast.Visitor to collect reassignedVariables
// during the first traversal (spec §4.3.1 step 1).
type prepassVisitor struct {
	state *State
}

func (pv *prepassVisitor) Visit(n *ilast.Node) bool {
	switch n.Type() {
	case "AssignmentExpression":
		pv.recordWriteTarget(n.Child("left"))
	case "UpdateExpression":
		pv.recordWriteTarget(n.Child("argument"))
	}
	return true
}

func (pv *prepassVisitor) recordWriteTarget(target *ilast.Node) {
	if target == nil {
		return
	}
	switch target.Type() {
	case "Identifier":
		pv.state.reassignedVariables[target.Str("name")] = true
	case "ArrayPattern":
		for _, el := range target.ChildList("elements") {
			pv.recordWriteTarget(el)
		}
	case "ObjectPattern":
		for _, prop := range target.ChildList("properties") {
			pv.recordWriteTarget(prop.Child("value"))
		}
	case "MemberExpression":
		// `p[i] = ...` / `p.f = ...` writes through p, not a reassignment
		// of p itself; handled separately by the pass-by-reference
		// pre-analysis in method.go.
	}
}

// runPrePass walks the whole program once, populating
// state.reassignedVariables, then walks it again to populate
// state.declaredConstants for every qualifying top-level-or-nested
// binding whose initializer is a constant expression and whose name was
// not marked reassigned (spec §4.3.1 step 1, §4.3.2). Running this twice
// on the same document yields an identical declaredConstants map (spec
// §8 idempotence property) because both passes are pure functions of the
// document and state.reassignedVariables is fully populated before the
// second pass starts.
func runPrePass(state *State, program *ilast.Node) {
	ilast.Walk(&prepassVisitor{state: state}, program)
	collectConstants(state, program)
}

// collectConstants descends into IIFE wrappers and arbitrary nested
// blocks, recording every const-like binding with a constant-expression
// initializer whose name was never reassigned.
func collectConstants(state *State, n *ilast.Node) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "Program", "BlockStatement":
		for _, stmt := range n.ChildList("body") {
			collectConstants(state, stmt)
		}
	case "ExpressionStatement":
		if iife := unwrapIIFE(n.Child("expression")); iife != nil {
			collectConstants(state, iife)
		}
	case "VariableDeclaration":
		if n.Str("kind") != "const" {
			return
		}
		for _, decl := range n.ChildList("declarations") {
			id := decl.Child("id")
			init := decl.Child("init")
			if id == nil || init == nil {
				continue
			}
			recordDeclarator(state, id, init)
		}
	case "ClassDeclaration":
		// class bodies are walked separately in class.go; constants
		// declared via `static x = <const>` are handled there too.
	}
}

func recordDeclarator(state *State, id, init *ilast.Node) {
	switch id.Type() {
	case "Identifier":
		name := id.Str("name")
		if state.reassignedVariables[name] {
			return
		}
		if IsConstantExpression(init) {
			state.declaredConstants[name] = ScreamingSnakeCase(name)
		}
	case "ArrayPattern":
		// Destructured array constants: `const [a, b] = source;` emits a
		// sequence of `const A = SOURCE[0]; const B = SOURCE[1];` — each
		// element name qualifies independently provided the overall
		// initializer is itself constant-shaped (an array/identifier),
		// since indexing a constant array element is itself constant.
		if init.Type() != "Identifier" && init.Type() != "ArrayExpression" {
			return
		}
		for _, el := range id.ChildList("elements") {
			if el == nil || el.Type() != "Identifier" {
				continue
			}
			name := el.Str("name")
			if state.reassignedVariables[name] {
				continue
			}
			state.declaredConstants[name] = ScreamingSnakeCase(name)
		}
	}
}

// unwrapIIFE recognizes `(function(){ ... })()` and `(function(){...}(...))`
// UMD/IIFE wrappers (spec §4.3.1 step 3, §9 "IIFE unwrapping") and returns
// the factory body's BlockStatement, or nil if expr is not that shape.
func unwrapIIFE(expr *ilast.Node) *ilast.Node {
	if expr == nil || expr.Type() != "CallExpression" {
		return nil
	}
	callee := expr.Child("callee")
	if callee == nil {
		return nil
	}
	var fn *ilast.Node
	switch callee.Type() {
	case "FunctionExpression":
		fn = callee
	case "ArrowFunctionExpression":
		fn = callee
	default:
		return nil
	}
	body := fn.Child("body")
	if body == nil || body.Type() != "BlockStatement" {
		return nil
	}
	return body
}
