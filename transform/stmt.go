package transform

import (
	"github.com/jsphpgen/transpiler/ilast"
	"github.com/jsphpgen/transpiler/phpast"
)

// lowerBlock lowers a BlockStatement (or any single statement used where a
// block is expected) to a phpast.Block.
func (s *State) lowerBlock(n *ilast.Node) *phpast.Block {
	if n == nil {
		return &phpast.Block{}
	}
	if n.Type() != "BlockStatement" {
		return &phpast.Block{Statements: []phpast.Stmt{s.lowerStmt(n)}}
	}
	stmts := n.ChildList("body")
	out := make([]phpast.Stmt, 0, len(stmts))
	for _, st := range stmts {
		if lowered := s.lowerStmt(st); lowered != nil {
			out = append(out, lowered)
		}
	}
	return &phpast.Block{Statements: out}
}

// lowerStmt lowers one IL statement node to a phpast.Stmt (spec §4.3.6).
func (s *State) lowerStmt(n *ilast.Node) phpast.Stmt {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "ExpressionStatement":
		return &phpast.ExpressionStatement{Expression: s.lowerExpr(n.Child("expression"))}
	case "VariableDeclaration":
		return s.lowerVariableDeclarationStmt(n)
	case "ReturnStatement":
		var val phpast.Expr
		if arg := n.Child("argument"); arg != nil {
			val = s.lowerExpr(arg)
		}
		return &phpast.Return{Value: val}
	case "IfStatement":
		return s.lowerIf(n)
	case "ForStatement":
		return s.lowerFor(n)
	case "ForOfStatement", "ForInStatement":
		return s.lowerForEach(n)
	case "WhileStatement":
		return &phpast.While{Cond: s.lowerExpr(n.Child("test")), Body: s.lowerBlock(n.Child("body"))}
	case "DoWhileStatement":
		return &phpast.DoWhile{Body: s.lowerBlock(n.Child("body")), Cond: s.lowerExpr(n.Child("test"))}
	case "SwitchStatement":
		return s.lowerSwitch(n)
	case "BreakStatement":
		return &phpast.Break{Level: 1}
	case "ContinueStatement":
		return &phpast.Continue{Level: 1}
	case "TryStatement":
		return s.lowerTry(n)
	case "ThrowStatement":
		return &phpast.Throw{Value: s.lowerExpr(n.Child("argument"))}
	case "BlockStatement":
		return s.lowerBlock(n)
	case "FunctionDeclaration":
		// Nested function declarations are hoisted to closures bound to a
		// same-named local variable (PHP has no nested function
		// declarations).
		name := n.Child("id").Str("name")
		return &phpast.ExpressionStatement{Expression: &phpast.Assignment{
			Operator: "=",
			Target:   &phpast.Variable{Name: SnakeCase(name)},
			Value:    s.lowerFunctionLikeToClosure(n.ChildList("params"), n.Child("body")),
		}}
	default:
		return &phpast.ExpressionStatement{Expression: s.lowerExpr(n)}
	}
}

func (s *State) lowerVariableDeclarationStmt(n *ilast.Node) phpast.Stmt {
	decls := n.ChildList("declarations")
	var stmts []phpast.Stmt
	for _, d := range decls {
		id := d.Child("id")
		init := d.Child("init")
		if n.Str("kind") == "const" && id.Type() == "Identifier" {
			name := id.Str("name")
			if _, isConst := s.declaredConstants[name]; isConst {
				// Already emitted as a `const` declaration at module scope
				// by transform.go; a local const binding with the same
				// shape is simply skipped here since references resolve
				// to the constant name directly.
				continue
			}
		}
		if id.Type() != "Identifier" {
			// Destructuring declarations lower to one assignment per
			// bound name, each reading the corresponding array element.
			stmts = append(stmts, s.lowerDestructuringDeclaration(id, init)...)
			continue
		}
		var value phpast.Expr
		if init != nil {
			value = s.lowerExpr(init)
		} else {
			value = phpast.NullLiteral()
		}
		s.trackAssignmentShape(id, init)
		stmts = append(stmts, &phpast.ExpressionStatement{Expression: &phpast.Assignment{
			Operator: "=",
			Target:   &phpast.Variable{Name: SnakeCase(id.Str("name"))},
			Value:    value,
		}})
	}
	if len(stmts) == 1 {
		return stmts[0]
	}
	return &phpast.Block{Statements: stmts}
}

func (s *State) lowerDestructuringDeclaration(id, init *ilast.Node) []phpast.Stmt {
	var out []phpast.Stmt
	initExpr := s.lowerExpr(init)
	switch id.Type() {
	case "ArrayPattern":
		for i, el := range id.ChildList("elements") {
			if el == nil {
				continue
			}
			out = append(out, &phpast.ExpressionStatement{Expression: &phpast.Assignment{
				Operator: "=",
				Target:   &phpast.Variable{Name: SnakeCase(el.Str("name"))},
				Value:    &phpast.ArrayAccess{Array: initExpr, Index: phpast.IntLiteral(int64(i))},
			}})
		}
	case "ObjectPattern":
		for _, p := range id.ChildList("properties") {
			key := p.Child("key")
			val := p.Child("value")
			out = append(out, &phpast.ExpressionStatement{Expression: &phpast.Assignment{
				Operator: "=",
				Target:   &phpast.Variable{Name: SnakeCase(val.Str("name"))},
				Value:    &phpast.ArrayAccess{Array: initExpr, Index: phpast.StringLiteral(key.Str("name"))},
			}})
		}
	}
	return out
}

func (s *State) lowerIf(n *ilast.Node) phpast.Stmt {
	cond := s.lowerExpr(n.Child("test"))
	then := s.lowerBlock(n.Child("consequent"))
	alt := n.Child("alternate")
	if alt == nil {
		return &phpast.If{Cond: cond, Then: then}
	}
	if alt.Type() == "IfStatement" {
		return &phpast.If{Cond: cond, Then: then, Else: s.lowerIf(alt)}
	}
	return &phpast.If{Cond: cond, Then: then, Else: s.lowerBlock(alt)}
}

func (s *State) lowerFor(n *ilast.Node) phpast.Stmt {
	var init []phpast.Expr
	if initNode := n.Child("init"); initNode != nil {
		if initNode.Type() == "VariableDeclaration" {
			for _, d := range initNode.ChildList("declarations") {
				id := d.Child("id")
				var value phpast.Expr = phpast.NullLiteral()
				if iv := d.Child("init"); iv != nil {
					value = s.lowerExpr(iv)
				}
				init = append(init, &phpast.Assignment{Operator: "=", Target: &phpast.Variable{Name: SnakeCase(id.Str("name"))}, Value: value})
			}
		} else {
			init = append(init, s.lowerExpr(initNode))
		}
	}
	var cond []phpast.Expr
	if testNode := n.Child("test"); testNode != nil {
		cond = append(cond, s.lowerExpr(testNode))
	}
	var post []phpast.Expr
	if updateNode := n.Child("update"); updateNode != nil {
		post = append(post, s.lowerExpr(updateNode))
	}
	return &phpast.For{Init: init, Cond: cond, Post: post, Body: s.lowerBlock(n.Child("body"))}
}

// lowerForEach handles both `for (const x of arr)` and `for (const k in
// obj)` forms (spec treats both as PHP foreach, the latter over keys).
func (s *State) lowerForEach(n *ilast.Node) phpast.Stmt {
	left := n.Child("left")
	var decl *ilast.Node
	if left.Type() == "VariableDeclaration" {
		decl = left.ChildList("declarations")[0].Child("id")
	} else {
		decl = left
	}

	byRef := false
	var keyVar, valueVar *phpast.Variable
	if n.Type() == "ForInStatement" {
		keyVar = &phpast.Variable{Name: SnakeCase(decl.Str("name"))}
	} else if decl.Type() == "ArrayPattern" {
		els := decl.ChildList("elements")
		if len(els) >= 1 && els[0] != nil {
			keyVar = &phpast.Variable{Name: SnakeCase(els[0].Str("name"))}
		}
		if len(els) >= 2 && els[1] != nil {
			valueVar = &phpast.Variable{Name: SnakeCase(els[1].Str("name"))}
		}
	} else {
		valueVar = &phpast.Variable{Name: SnakeCase(decl.Str("name"))}
	}

	return &phpast.Foreach{
		Iterable:    s.lowerExpr(n.Child("right")),
		KeyVar:      keyVar,
		ValueVar:    valueVar,
		ByReference: byRef,
		Body:        s.lowerBlock(n.Child("body")),
	}
}

func (s *State) lowerSwitch(n *ilast.Node) phpast.Stmt {
	cases := n.ChildList("cases")
	out := make([]*phpast.SwitchCase, len(cases))
	for i, c := range cases {
		var test phpast.Expr
		if t := c.Child("test"); t != nil {
			test = s.lowerExpr(t)
		}
		stmts := c.ChildList("consequent")
		body := make([]phpast.Stmt, 0, len(stmts))
		for _, st := range stmts {
			if lowered := s.lowerStmt(st); lowered != nil {
				body = append(body, lowered)
			}
		}
		out[i] = &phpast.SwitchCase{Test: test, Statements: body}
	}
	return &phpast.Switch{Discriminant: s.lowerExpr(n.Child("discriminant")), Cases: out}
}

func (s *State) lowerTry(n *ilast.Node) phpast.Stmt {
	body := s.lowerBlock(n.Child("block"))
	var catches []*phpast.Catch
	if handler := n.Child("handler"); handler != nil {
		variable := ""
		if param := handler.Child("param"); param != nil {
			variable = SnakeCase(param.Str("name"))
		}
		catches = append(catches, &phpast.Catch{
			ExceptionTypes: []string{"Throwable"},
			Variable:       variable,
			Body:           s.lowerBlock(handler.Child("body")),
		})
	}
	var finallyBlock *phpast.Block
	if f := n.Child("finalizer"); f != nil {
		finallyBlock = s.lowerBlock(f)
	}
	return &phpast.Try{Body: body, Catches: catches, Finally: finallyBlock}
}
