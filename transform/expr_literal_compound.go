package transform

import (
	"github.com/jsphpgen/transpiler/ilast"
	"github.com/jsphpgen/transpiler/phpast"
)

// lowerArrayExpression lowers an ArrayExpression to a phpast.ArrayLiteral,
// preserving holes as null elements and spreads as SpreadElement items.
func (s *State) lowerArrayExpression(n *ilast.Node) phpast.Expr {
	elements := n.ChildList("elements")
	items := make([]*phpast.ArrayItem, len(elements))
	for i, el := range elements {
		if el == nil {
			items[i] = &phpast.ArrayItem{Value: phpast.NullLiteral()}
			continue
		}
		if el.Type() == "SpreadElement" {
			items[i] = &phpast.ArrayItem{Value: s.lowerExpr(el.Child("argument")), Spread: true}
			continue
		}
		items[i] = &phpast.ArrayItem{Value: s.lowerExpr(el)}
	}
	return &phpast.ArrayLiteral{Items: items}
}

// lowerObjectExpression lowers an ObjectExpression to a phpast.ArrayLiteral
// keyed by the original (un-snake-cased) JS property spelling, since an
// object literal here represents a data map rather than a class instance
// (spec §4.3.6).
func (s *State) lowerObjectExpression(n *ilast.Node) phpast.Expr {
	props := n.ChildList("properties")
	items := make([]*phpast.ArrayItem, 0, len(props))
	for _, p := range props {
		if p.Type() == "SpreadElement" {
			items = append(items, &phpast.ArrayItem{Value: s.lowerExpr(p.Child("argument")), Spread: true})
			continue
		}
		value := s.lowerExpr(p.Child("value"))
		if p.Bool("computed") {
			key := s.lowerExpr(p.Child("key"))
			items = append(items, &phpast.ArrayItem{Key: key, Value: value})
			continue
		}
		key := p.Child("key")
		var keyName string
		if key.Type() == "Identifier" {
			keyName = key.Str("name")
		} else {
			keyName = key.Str("value")
		}
		items = append(items, &phpast.ArrayItem{Key: phpast.StringLiteral(keyName), Value: value})
	}
	return &phpast.ArrayLiteral{Items: items}
}

// lowerTemplateLiteral lowers a TemplateLiteral to a StringInterpolation,
// merging adjacent literal runs and dropping empty quasi segments (spec
// §4.3.6).
func (s *State) lowerTemplateLiteral(n *ilast.Node) phpast.Expr {
	quasis := n.ChildList("quasis")
	exprs := n.ChildList("expressions")
	parts := make([]*phpast.InterpolationPart, 0, len(quasis)+len(exprs))
	for i, q := range quasis {
		raw := q.Str("value")
		if raw != "" {
			parts = append(parts, &phpast.InterpolationPart{Literal: raw})
		}
		if i < len(exprs) {
			parts = append(parts, &phpast.InterpolationPart{Expression: s.lowerExpr(exprs[i])})
		}
	}
	return &phpast.StringInterpolation{Parts: parts}
}

// lowerParameters lowers IL function parameters to by-value
// phpast.Parameters. Pass-by-reference (spec §4.3.5) is set afterwards
// by lowerMethod and lowerFunctionDeclaration from a body analysis;
// arrow-function and closure parameters stay by value.
func (s *State) lowerParameters(paramNodes []*ilast.Node) []*phpast.Parameter {
	out := make([]*phpast.Parameter, len(paramNodes))
	for i, p := range paramNodes {
		switch p.Type() {
		case "Identifier":
			out[i] = &phpast.Parameter{Name: SnakeCase(p.Str("name"))}
		case "AssignmentPattern":
			left := p.Child("left")
			out[i] = &phpast.Parameter{
				Name:         SnakeCase(left.Str("name")),
				DefaultValue: s.lowerExpr(p.Child("right")),
			}
		case "RestElement":
			out[i] = &phpast.Parameter{Name: SnakeCase(p.Child("argument").Str("name")), IsVariadic: true}
		default:
			out[i] = &phpast.Parameter{Name: "arg"}
		}
	}
	return out
}

// lowerArrowFunction lowers an ArrowFunctionExpression. An expression body
// becomes a phpast.ArrowFunction (`fn(...) => expr`) when
// UseArrowFunctions is set, else a phpast.Closure returning the
// expression; a block body always becomes a phpast.Closure with a
// computed `use (...)` list, since PHP arrow functions cannot carry
// statements.
func (s *State) lowerArrowFunction(n *ilast.Node) phpast.Expr {
	params := n.ChildList("params")
	body := n.Child("body")
	if body != nil && body.Type() == "BlockStatement" {
		return s.lowerFunctionLikeToClosure(params, body)
	}
	if !s.opts.UseArrowFunctions {
		s.pushScope()
		defer s.popScope()
		uses := s.computeClosureCaptures(body, params)
		return &phpast.Closure{
			Parameters: s.lowerParameters(params),
			UseVars:    uses,
			Body:       &phpast.Block{Statements: []phpast.Stmt{&phpast.Return{Value: s.lowerExpr(body)}}},
		}
	}
	return &phpast.ArrowFunction{Parameters: s.lowerParameters(params), Body: s.lowerExpr(body)}
}

// lowerClosure lowers a FunctionExpression to a phpast.Closure.
func (s *State) lowerClosure(n *ilast.Node) phpast.Expr {
	params := n.ChildList("params")
	body := n.Child("body")
	return s.lowerFunctionLikeToClosure(params, body)
}

func (s *State) lowerFunctionLikeToClosure(params []*ilast.Node, body *ilast.Node) phpast.Expr {
	s.pushScope()
	defer s.popScope()
	uses := s.computeClosureCaptures(body, params)
	return &phpast.Closure{
		Parameters: s.lowerParameters(params),
		UseVars:    uses,
		Body:       s.lowerBlock(body),
	}
}

// computeClosureCaptures implements spec §4.3.6's "computed use(...)
// capture list": every identifier referenced in body, minus the
// function's own parameters, minus names it locally declares, minus a
// small JS global built-ins set, captured by reference iff the body also
// writes to it.
func (s *State) computeClosureCaptures(body *ilast.Node, params []*ilast.Node) []*phpast.UseVar {
	bound := map[string]bool{}
	for _, p := range params {
		collectPatternNames(p, bound)
	}
	referenced := map[string]bool{}
	written := map[string]bool{}
	declared := map[string]bool{}
	var walk func(n *ilast.Node)
	walk = func(n *ilast.Node) {
		if n == nil {
			return
		}
		switch n.Type() {
		case "Identifier":
			referenced[n.Str("name")] = true
			return
		case "MemberExpression":
			walk(n.Child("object"))
			if n.Bool("computed") {
				walk(n.Child("property"))
			}
			return
		case "VariableDeclarator":
			collectPatternNames(n.Child("id"), declared)
			walk(n.Child("init"))
			return
		case "FunctionExpression", "ArrowFunctionExpression":
			// Nested closures resolve their own captures independently.
			return
		case "AssignmentExpression":
			markWriteNames(n.Child("left"), written)
			walk(n.Child("left"))
			walk(n.Child("right"))
			return
		case "UpdateExpression":
			markWriteNames(n.Child("argument"), written)
			walk(n.Child("argument"))
			return
		case "CatchClause":
			collectPatternNames(n.Child("param"), declared)
			walk(n.Child("body"))
			return
		}
		for _, name := range ilastChildFieldNames(n) {
			field := n.Field(name)
			switch v := field.(type) {
			case map[string]interface{}:
				walk(n.Child(name))
			case []interface{}:
				for _, c := range n.ChildList(name) {
					walk(c)
				}
			default:
				_ = v
			}
		}
	}
	walk(body)

	var result []*phpast.UseVar
	for name := range referenced {
		if bound[name] || declared[name] || jsBuiltinGlobals[name] {
			continue
		}
		result = append(result, &phpast.UseVar{Name: SnakeCase(name), ByReference: written[name] && !bound[name]})
	}
	return result
}

func collectPatternNames(n *ilast.Node, into map[string]bool) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "Identifier":
		into[n.Str("name")] = true
	case "AssignmentPattern":
		collectPatternNames(n.Child("left"), into)
	case "RestElement":
		collectPatternNames(n.Child("argument"), into)
	case "ArrayPattern":
		for _, el := range n.ChildList("elements") {
			collectPatternNames(el, into)
		}
	case "ObjectPattern":
		for _, p := range n.ChildList("properties") {
			collectPatternNames(p.Child("value"), into)
		}
	}
}

func markWriteNames(n *ilast.Node, into map[string]bool) {
	if n == nil {
		return
	}
	if n.Type() == "Identifier" {
		into[n.Str("name")] = true
	}
}

var jsBuiltinGlobals = map[string]bool{
	"Math": true, "JSON": true, "Object": true, "Array": true,
	"String": true, "Number": true, "console": true, "undefined": true,
	"globalThis": true, "global": true,
}

// ilastChildFieldNames enumerates the field names a generic walk should
// recurse into for an arbitrary node; non-node-valued entries are
// filtered out by the caller via a type switch on the raw field value.
func ilastChildFieldNames(n *ilast.Node) []string {
	if n == nil {
		return nil
	}
	names := make([]string, 0, len(n.Fields))
	for k := range n.Fields {
		names = append(names, k)
	}
	return names
}
