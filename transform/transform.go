package transform

import (
	"fmt"
	"sort"

	"github.com/jsphpgen/transpiler/errors"
	"github.com/jsphpgen/transpiler/ilast"
	"github.com/jsphpgen/transpiler/phpast"
)

// Transform lowers a decoded IL AST document to a PHP AST (spec §3, §4).
// It never panics on malformed-but-well-typed input: anything it cannot
// confidently lower becomes an UNHANDLED_EXPRESSION_<Type> marker plus a
// warning in the returned diagnostics list (spec §4.3.7, §7 category 3).
// A non-nil error return is reserved for spec §7 category 1 (the root is
// not a valid Program node).
func Transform(program *ilast.Node, opts Options) (*phpast.File, errors.List, error) {
	if program == nil || program.Type() != "Program" {
		return nil, nil, fmt.Errorf("transform: root node must be of type Program")
	}

	state := NewState(opts)
	runPrePass(state, program)

	file := &phpast.File{StrictTypes: opts.StrictTypes}
	if opts.Namespace != "" {
		file.Namespace = &phpast.Namespace{Name: opts.Namespace}
	}

	for _, stmt := range program.ChildList("body") {
		file.Items = append(file.Items, state.lowerTopLevel(stmt)...)
	}

	if !opts.SkipFrameworkStubs {
		file.Items = append(state.frameworkStubs(), file.Items...)
	}

	return file, state.reporter.Diagnostics(), nil
}

// lowerTopLevel lowers one Program-body statement to zero or more file
// items. Top-level IIFE wrappers are unwrapped transparently (spec §4.3.1
// step 3): their contents splice directly into the file.
func (s *State) lowerTopLevel(n *ilast.Node) []phpast.Node {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "ExpressionStatement":
		if iife := unwrapIIFE(n.Child("expression")); iife != nil {
			var items []phpast.Node
			for _, inner := range iife.ChildList("body") {
				items = append(items, s.lowerTopLevel(inner)...)
			}
			return items
		}
		return []phpast.Node{&phpast.ExpressionStatement{Expression: s.lowerExpr(n.Child("expression"))}}
	case "VariableDeclaration":
		return s.lowerTopLevelVarDecl(n)
	case "FunctionDeclaration":
		return []phpast.Node{s.lowerFunctionDeclaration(n)}
	case "ClassDeclaration":
		return []phpast.Node{s.lowerClass(n)}
	default:
		if stmt := s.lowerStmt(n); stmt != nil {
			return []phpast.Node{stmt}
		}
		return nil
	}
}

func (s *State) lowerTopLevelVarDecl(n *ilast.Node) []phpast.Node {
	isConst := n.Str("kind") == "const"
	var items []phpast.Node
	for _, decl := range n.ChildList("declarations") {
		id := decl.Child("id")
		init := decl.Child("init")

		if isConst && id.Type() == "Identifier" {
			if mapped, ok := s.declaredConstants[id.Str("name")]; ok {
				items = append(items, &phpast.Const{Name: mapped, Value: s.lowerExpr(init)})
				continue
			}
		}
		if isConst && id.Type() == "ArrayPattern" {
			initExpr := s.lowerExpr(init)
			for i, el := range id.ChildList("elements") {
				if el == nil {
					continue
				}
				if mapped, ok := s.declaredConstants[el.Str("name")]; ok {
					items = append(items, &phpast.Const{
						Name:  mapped,
						Value: &phpast.ArrayAccess{Array: initExpr, Index: phpast.IntLiteral(int64(i))},
					})
				}
			}
			continue
		}

		if id.Type() != "Identifier" {
			continue
		}
		name := id.Str("name")
		s.moduleVariables[name] = true
		s.trackAssignmentShape(id, init)
		value := phpast.Expr(phpast.NullLiteral())
		if init != nil {
			value = s.lowerExpr(init)
		}
		items = append(items, &phpast.ExpressionStatement{Expression: &phpast.Assignment{
			Operator: "=",
			Target:   &phpast.Variable{Name: SnakeCase(name)},
			Value:    value,
		}})
	}
	return items
}

func (s *State) lowerFunctionDeclaration(n *ilast.Node) *phpast.Function {
	id := n.Child("id")
	params := n.ChildList("params")
	body := n.Child("body")

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

	return &phpast.Function{
		Name:       SnakeCase(id.Str("name")),
		Parameters: paramList,
		Body:       block,
	}
}

// frameworkStubs implements spec §4.3.3's "framework stub generation for
// recognized extends targets": every recognized framework base class
// referenced by an `extends` clause gets a minimal stand-in so the
// emitted PHP is self-contained. The document is not checked for its own
// declaration of that class.
func (s *State) frameworkStubs() []phpast.Node {
	names := make([]string, 0, len(s.frameworkClasses))
	for name := range s.frameworkClasses {
		names = append(names, name)
	}
	sort.Strings(names)
	items := make([]phpast.Node, 0, len(names))
	for _, name := range names {
		if name == "IAlgorithmInstance" {
			items = append(items, &phpast.Interface{Name: name})
			continue
		}
		items = append(items, &phpast.Class{Name: name, IsAbstract: true})
	}
	return items
}
