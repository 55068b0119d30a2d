package ilast

// Visitor is implemented by pre-pass/analysis code that walks the IL AST
// (mirrors wudi-hey/ast.Visitor's Visit-returns-bool-to-descend shape).
type Visitor interface {
	Visit(n *Node) bool
}

// Walk traverses n depth-first in a stable field order, descending into
// every node-shaped or node-array-shaped field whenever v.Visit(n)
// returns true. Field order is sorted so that two Walk calls over the
// same document produce the same traversal (spec §8 "running the
// constant-extraction pre-pass twice... produces an identical map").
func Walk(v Visitor, n *Node) {
	if n == nil || !v.Visit(n) {
		return
	}
	for _, name := range sortedFieldNames(n) {
		val := n.Fields[name]
		switch t := val.(type) {
		case map[string]interface{}:
			if c, ok := toNode(t); ok {
				Walk(v, c)
			}
		case []interface{}:
			for _, e := range t {
				if em, ok := e.(map[string]interface{}); ok {
					if c, ok := toNode(em); ok {
						Walk(v, c)
					}
				}
			}
		}
	}
}

func sortedFieldNames(n *Node) []string {
	names := make([]string, 0, len(n.Fields))
	for k := range n.Fields {
		if k == "type" {
			continue
		}
		names = append(names, k)
	}
	// Simple insertion sort: field counts per node are tiny (<20), and we
	// avoid importing sort for one call site used on every node.
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j-1] > names[j]; j-- {
			names[j-1], names[j] = names[j], names[j-1]
		}
	}
	return names
}
