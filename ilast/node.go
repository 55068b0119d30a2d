// Package ilast represents the IL AST: the already type-inferred,
// language-agnostic input to the transformer (spec §6 "External
// Interfaces"). It is a closed external contract, not a component the
// transpiler owns — every node is an untyped JSON object carrying a
// `type` tag (spec: "Every node has a type tag"), so ilast models it as a
// thin, reflective wrapper rather than one Go struct per JS node kind.
// This mirrors wudi-hey/ast.Node's GetKind/GetChildren/Accept contract
// (spec-C1's own AST uses exactly that shape) while staying faithful to
// the fact that the IL AST is produced by an upstream component we do
// not control the Go representation of.
package ilast

import (
	"encoding/json"
	"fmt"
)

// Node is one IL AST node: a `type` tag plus an arbitrary field bag.
type Node struct {
	NodeType string
	Fields   map[string]interface{}
}

// Type returns the node's `type` tag (e.g. "Program", "CallExpression").
func (n *Node) Type() string {
	if n == nil {
		return ""
	}
	return n.NodeType
}

// Decode parses a root IL AST document. Per spec §7 category 1, a
// missing/malformed root or a root whose type is not "Program" is an
// invalid-input error, not a panic.
func Decode(raw []byte) (*Node, error) {
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("invalid AST: %w", err)
	}
	n, ok := toNode(generic)
	if !ok {
		return nil, fmt.Errorf("invalid AST: root is not an object")
	}
	if n.Type() != "Program" {
		return nil, fmt.Errorf("invalid AST: root type is %q, want \"Program\"", n.Type())
	}
	return n, nil
}

func toNode(v interface{}) (*Node, bool) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, false
	}
	t, _ := m["type"].(string)
	if t == "" {
		return nil, false
	}
	return &Node{NodeType: t, Fields: m}, true
}

// Field returns a raw field value, or nil if absent.
func (n *Node) Field(name string) interface{} {
	if n == nil || n.Fields == nil {
		return nil
	}
	return n.Fields[name]
}

// Str returns a string field, or "" if absent/wrong type.
func (n *Node) Str(name string) string {
	s, _ := n.Field(name).(string)
	return s
}

// Bool returns a bool field, defaulting to false.
func (n *Node) Bool(name string) bool {
	b, _ := n.Field(name).(bool)
	return b
}

// Num returns a numeric field as float64 (JSON numbers decode to
// float64), or 0 if absent/wrong type.
func (n *Node) Num(name string) float64 {
	f, _ := n.Field(name).(float64)
	return f
}

// Child returns a single node-valued field, or nil if absent/not a node.
func (n *Node) Child(name string) *Node {
	c, _ := toNode(n.Field(name))
	return c
}

// ChildList returns a node-array field. Array holes (JS allows `[a, , c]`
// in destructuring/array literal targets) decode as nil entries.
func (n *Node) ChildList(name string) []*Node {
	raw, ok := n.Field(name).([]interface{})
	if !ok {
		return nil
	}
	out := make([]*Node, len(raw))
	for i, e := range raw {
		if e == nil {
			continue
		}
		c, ok := toNode(e)
		if ok {
			out[i] = c
		}
	}
	return out
}

// IsNil reports whether n is the nil pointer (helper for readable
// transform-package guards).
func (n *Node) IsNil() bool { return n == nil }
