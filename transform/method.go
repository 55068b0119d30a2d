package transform

import (
	"sort"

	"github.com/jsphpgen/transpiler/ilast"
	"github.com/jsphpgen/transpiler/phpast"
	"github.com/jsphpgen/transpiler/phptype"
)

// lowerMethod lowers one MethodDefinition to a phpast.Method, applying
// spec §4.3.3's getter/setter renaming (`get foo()` -> `get_foo()`,
// `set foo(v)` -> `set_foo($v): void`), the `_impl` collision suffix for a
// regular method whose snake_cased name would otherwise shadow an
// already-used name in the same class, the pass-by-reference
// pre-analysis of spec §4.3.5, and the global-capture pass for
// references to module-scope bindings.
func (s *State) lowerMethod(n *ilast.Node, usedNames map[string]bool) *phpast.Method {
	kind := n.Str("kind")
	key := n.Child("key")
	fn := n.Child("value")
	params := fn.ChildList("params")
	body := fn.Child("body")
	rawName := key.Str("name")

	var name string
	var returnType *phpast.Type
	switch kind {
	case "constructor":
		name = "__construct"
	case "get":
		name = "get_" + SnakeCase(rawName)
	case "set":
		name = "set_" + SnakeCase(rawName)
		if s.opts.AddTypeHints {
			returnType = phptype.NewPrimitive(phptype.Void)
		}
	default:
		name = SnakeCase(rawName)
		if usedNames[name] {
			name += "_impl"
		}
	}
	usedNames[name] = true

	byRef := computePassByReference(params, body)

	s.pushScope()
	paramList := make([]*phpast.Parameter, len(params))
	for i, p := range params {
		lowered := s.lowerParameters([]*ilast.Node{p})[0]
		if byRef[lowered.Name] {
			lowered.IsReference = true
		}
		paramList[i] = lowered
	}

	globals := s.collectGlobalCaptures(body, params)
	block := s.lowerBlock(body)
	if len(globals) > 0 {
		block.Prepend(&phpast.Global{Names: globals})
	}
	s.popScope()

	return &phpast.Method{
		Visibility: phpast.Public,
		IsStatic:   n.Bool("static"),
		Name:       name,
		Parameters: paramList,
		ReturnType: returnType,
		Body:       block,
	}
}

// computePassByReference implements spec §4.3.5: parameter p is promoted
// to by-reference iff the body writes through it (`p[i] = ...`,
// `p.f = ...`, `++p[i]`) and p is array-shaped by the name heuristic — a
// plain reassignment `p = ...` never qualifies.
func computePassByReference(params []*ilast.Node, body *ilast.Node) map[string]bool {
	paramNames := map[string]bool{}
	for _, p := range params {
		if p.Type() == "Identifier" {
			paramNames[p.Str("name")] = true
		}
	}
	writtenThrough := map[string]bool{}
	ilast.Walk(&throughWriteVisitor{paramNames: paramNames, into: writtenThrough}, body)

	result := map[string]bool{}
	for name := range writtenThrough {
		if phptype.IsArrayLikeParamName(name) {
			result[SnakeCase(name)] = true
		}
	}
	return result
}

// throughWriteVisitor records identifiers written through (member-access
// assignment or update target), stopping at nested function boundaries
// since those resolve their own parameters independently.
type throughWriteVisitor struct {
	paramNames map[string]bool
	into       map[string]bool
}

func (v *throughWriteVisitor) Visit(n *ilast.Node) bool {
	switch n.Type() {
	case "AssignmentExpression":
		markThroughWrite(n.Child("left"), v.paramNames, v.into)
	case "UpdateExpression":
		markThroughWrite(n.Child("argument"), v.paramNames, v.into)
	case "FunctionExpression", "ArrowFunctionExpression":
		return false
	}
	return true
}

func markThroughWrite(target *ilast.Node, paramNames, into map[string]bool) {
	if target == nil || target.Type() != "MemberExpression" {
		return
	}
	obj := target.Child("object")
	if obj != nil && obj.Type() == "Identifier" && paramNames[obj.Str("name")] {
		into[obj.Str("name")] = true
	}
}

// collectGlobalCaptures implements spec §4.3.3's "global $x;" capture:
// any reference to a tracked module-scope variable, or to one of the
// fixed EnumObjects names (spec §3.2), not shadowed by a parameter or a
// local declaration, gets a `global` statement prepended to the method
// body.
func (s *State) collectGlobalCaptures(body *ilast.Node, params []*ilast.Node) []string {
	shadowed := map[string]bool{}
	for _, p := range params {
		collectPatternNames(p, shadowed)
	}
	referenced := map[string]bool{}
	ilast.Walk(&moduleRefVisitor{shadowed: shadowed, into: referenced}, body)

	var out []string
	for name := range s.moduleVariables {
		if referenced[name] && !shadowed[name] {
			out = append(out, SnakeCase(name))
		}
	}
	for name := range EnumObjects {
		if referenced[name] && !shadowed[name] {
			out = append(out, SnakeCase(name))
		}
	}
	sort.Strings(out)
	return out
}

type moduleRefVisitor struct {
	shadowed map[string]bool
	into     map[string]bool
}

func (v *moduleRefVisitor) Visit(n *ilast.Node) bool {
	switch n.Type() {
	case "Identifier":
		v.into[n.Str("name")] = true
	case "VariableDeclarator":
		collectPatternNames(n.Child("id"), v.shadowed)
	case "FunctionExpression", "ArrowFunctionExpression":
		return false
	}
	return true
}
