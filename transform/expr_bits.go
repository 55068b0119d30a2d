package transform

import (
	"strings"

	"github.com/jsphpgen/transpiler/ilast"
	"github.com/jsphpgen/transpiler/phpast"
	"github.com/jsphpgen/transpiler/phptype"
)

// lowerRotate implements the RotL/RotR domain helper lowering of spec
// §4.3.6: `RotL(v, n)` / `RotL(v, n, bits)` become the classic
// `((v << n) | (v >> (bits - n))) & mask` bit-rotation idiom, with bits
// defaulting to 32 (matching the OpCodes.MASK32 convention used
// throughout the corpus this module draws its bit-manipulation style
// from).
func (s *State) lowerRotate(args []*ilast.Node, primary, secondary string) phpast.Expr {
	if len(args) < 2 {
		return s.unhandled("CallExpression")
	}
	value := s.lowerExpr(args[0])
	amount := s.lowerExpr(args[1])
	bits := int64(32)
	if len(args) == 3 && args[2].Type() == "Literal" {
		bits = int64(args[2].Num("value"))
	}
	mask := maskForBits(bits)
	bitsExpr := phpast.IntLiteral(bits)

	primaryTerm := &phpast.BinaryExpr{Operator: primary, Left: value, Right: amount}
	secondaryTerm := &phpast.BinaryExpr{
		Operator: secondary,
		Left:     value,
		Right:    &phpast.BinaryExpr{Operator: "-", Left: bitsExpr, Right: amount},
	}
	rotated := &phpast.BinaryExpr{Operator: "|", Left: primaryTerm, Right: secondaryTerm}
	return &phpast.BinaryExpr{Operator: "&", Left: rotated, Right: &phpast.Identifier{Name: mask}}
}

func maskForBits(bits int64) string {
	switch bits {
	case 8:
		return "0xFF"
	case 16:
		return "0xFFFF"
	case 64:
		return "0xFFFFFFFFFFFFFFFF"
	default:
		return "0xFFFFFFFF"
	}
}

// lowerPackBytes implements `PackBytes(b0, b1, ..., bN)` (MSB first): each
// byte is shifted into place and OR'd together. A constant-hex spread
// (every argument a numeric literal) folds to a single literal at
// transform time rather than emitting a runtime shift chain.
func (s *State) lowerPackBytes(args []*ilast.Node) phpast.Expr {
	if len(args) == 0 {
		return phpast.IntLiteral(0)
	}
	if allLiteralInts(args) {
		var packed int64
		for _, a := range args {
			packed = (packed << 8) | (int64(a.Num("value")) & 0xFF)
		}
		return phpast.IntLiteral(packed)
	}
	n := len(args)
	var result phpast.Expr
	for i, a := range args {
		shift := int64(n-1-i) * 8
		byteExpr := s.lowerExpr(a)
		var term phpast.Expr
		if shift == 0 {
			// The low byte needs no shift; wrapping it in `>> 0` guards
			// against the surrounding `|` chain being misread as
			// left-associating over a bare operand.
			term = &phpast.BinaryExpr{Operator: ">>", Left: byteExpr, Right: phpast.IntLiteral(0)}
		} else {
			term = &phpast.BinaryExpr{Operator: "<<", Left: byteExpr, Right: phpast.IntLiteral(shift)}
		}
		if result == nil {
			result = term
		} else {
			result = &phpast.BinaryExpr{Operator: "|", Left: result, Right: term}
		}
	}
	return result
}

func allLiteralInts(args []*ilast.Node) bool {
	for _, a := range args {
		if a.Type() != "Literal" || (a.Str("kind") != "int" && a.Str("kind") != "") {
			return false
		}
	}
	return true
}

// lowerUnpackBytes implements `UnpackBytes(value, count)` (default count
// 4): emits an array literal of MSB-first byte extractions.
func (s *State) lowerUnpackBytes(args []*ilast.Node) phpast.Expr {
	if len(args) == 0 {
		return &phpast.ArrayLiteral{}
	}
	value := s.lowerExpr(args[0])
	count := int64(4)
	if len(args) == 2 && args[1].Type() == "Literal" {
		count = int64(args[1].Num("value"))
	}
	items := make([]*phpast.ArrayItem, count)
	for i := int64(0); i < count; i++ {
		shift := (count - 1 - i) * 8
		var byteExpr phpast.Expr
		if shift == 0 {
			byteExpr = &phpast.BinaryExpr{Operator: "&", Left: value, Right: phpast.IntLiteral(0xFF)}
		} else {
			byteExpr = &phpast.BinaryExpr{
				Operator: "&",
				Left:     &phpast.BinaryExpr{Operator: ">>", Left: value, Right: phpast.IntLiteral(shift)},
				Right:    phpast.IntLiteral(0xFF),
			}
		}
		items[i] = &phpast.ArrayItem{Value: byteExpr}
	}
	return &phpast.ArrayLiteral{Items: items}
}

// lowerNewExpression implements `new ClassName(...)` including the
// typed-array constructor disambiguation of spec §4.3.6 and §8's boundary
// tests: a SCREAMING_SNAKE_CASE argument name is a size
// (`array_fill(0, (int)$KS, 0)`); a `key`-shaped or buffer-heuristic
// argument name is a buffer copy (`array_values($key)`); anything else
// falls back by literal/identifier shape.
func (s *State) lowerNewExpression(n *ilast.Node) phpast.Expr {
	callee := n.Child("callee")
	args := n.ChildList("arguments")
	if callee != nil && callee.Type() == "Identifier" && isTypedArrayName(callee.Str("name")) {
		return s.lowerTypedArrayConstructor(args)
	}
	if callee == nil || callee.Type() != "Identifier" {
		return &phpast.New{ClassExpr: s.lowerExpr(callee), Args: s.lowerArgs(args)}
	}
	return &phpast.New{ClassName: callee.Str("name"), Args: s.lowerArgs(args)}
}

func (s *State) lowerTypedArrayConstructor(args []*ilast.Node) phpast.Expr {
	if len(args) == 0 {
		return &phpast.ArrayLiteral{}
	}
	arg := args[0]
	switch arg.Type() {
	case "Literal":
		return &phpast.FunctionCall{
			Callee: "array_fill",
			Args:   []phpast.Expr{phpast.IntLiteral(0), phpast.IntLiteral(int64(arg.Num("value"))), phpast.IntLiteral(0)},
		}
	case "Identifier":
		name := arg.Str("name")
		argExpr := s.lowerExpr(arg)
		if IsAllCaps(name) {
			return &phpast.FunctionCall{
				Callee: "array_fill",
				Args:   []phpast.Expr{phpast.IntLiteral(0), &phpast.Cast{TargetType: "int", Operand: argExpr}, phpast.IntLiteral(0)},
			}
		}
		lower := strings.ToLower(name)
		for _, frag := range phptype.TypedArraySizeNameSubstrings {
			if strings.Contains(lower, frag) {
				return &phpast.FunctionCall{
					Callee: "array_fill",
					Args:   []phpast.Expr{phpast.IntLiteral(0), &phpast.Cast{TargetType: "int", Operand: argExpr}, phpast.IntLiteral(0)},
				}
			}
		}
		for _, frag := range phptype.TypedArrayBufferNameSubstrings {
			if strings.Contains(lower, frag) {
				return &phpast.FunctionCall{Callee: "array_values", Args: []phpast.Expr{argExpr}}
			}
		}
		return &phpast.FunctionCall{Callee: "array_values", Args: []phpast.Expr{argExpr}}
	case "CallExpression":
		argExpr := s.lowerExpr(arg)
		if phptype.CallShape(calleeName(arg)) == phptype.ShapeInt {
			return &phpast.FunctionCall{
				Callee: "array_fill",
				Args:   []phpast.Expr{phpast.IntLiteral(0), &phpast.Cast{TargetType: "int", Operand: argExpr}, phpast.IntLiteral(0)},
			}
		}
		return &phpast.FunctionCall{Callee: "array_values", Args: []phpast.Expr{argExpr}}
	default:
		return &phpast.FunctionCall{Callee: "array_values", Args: []phpast.Expr{s.lowerExpr(arg)}}
	}
}
