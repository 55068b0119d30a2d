// Package phpast is the PHP AST (C1): a closed set of node variants for
// everything PHP 8.1+ can express at statement/expression granularity.
// Every variant has a fully specified shape; there are no free-form
// fields (spec §3.1, §4.1). The only behaviour here is the Type.String()
// renderer and a Visitor/Walk pair mirroring wudi-hey/ast/visitor.go;
// pretty-printing lives entirely in package phpemit.
package phpast

// Node is the common interface every PHP AST variant implements,
// mirroring wudi-hey/ast.Node's GetKind/GetChildren/Accept shape.
type Node interface {
	Kind() Kind
	Children() []Node
	Accept(v Visitor)
}

// Stmt marks a statement-position node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr marks an expression-position node.
type Expr interface {
	Node
	exprNode()
}

// Visitor is implemented by anything that walks a phpast tree (the
// emitter implements it internally; external callers may too).
type Visitor interface {
	Visit(n Node) bool
}

// Walk traverses the tree depth-first, visiting n and then its children
// whenever v.Visit(n) returns true.
func Walk(v Visitor, n Node) {
	if n == nil || !v.Visit(n) {
		return
	}
	for _, c := range n.Children() {
		Walk(v, c)
	}
}
