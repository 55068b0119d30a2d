package phpemit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsphpgen/transpiler/phpast"
	"github.com/jsphpgen/transpiler/phptype"
)

func emit(t *testing.T, file *phpast.File) string {
	t.Helper()
	code, err := Emit(file, DefaultConfig())
	require.NoError(t, err)
	return code
}

func TestEmitFileHeader(t *testing.T) {
	file := &phpast.File{
		StrictTypes: true,
		Namespace:   &phpast.Namespace{Name: "App\\Generated"},
		Uses: []*phpast.UseDeclaration{
			{Path: "Sodium\\CryptoBox"},
			{Path: "Psr\\Log\\LoggerInterface", Alias: "Logger"},
		},
	}
	code := emit(t, file)
	require.Contains(t, code, "<?php\n")
	require.Contains(t, code, "declare(strict_types=1);\n")
	require.Contains(t, code, "namespace App\\Generated;\n")
	require.Contains(t, code, "use Sodium\\CryptoBox;\n")
	require.Contains(t, code, "use Psr\\Log\\LoggerInterface as Logger;\n")
}

func TestEmitIntLiteralPreservesRawRadix(t *testing.T) {
	file := &phpast.File{Items: []phpast.Node{
		&phpast.ExpressionStatement{Expression: phpast.IntLiteralRaw(99, "0x63")},
	}}
	code := emit(t, file)
	require.Contains(t, code, "0x63")
	require.NotContains(t, code, "99;")
}

func TestEmitIntLiteralWithoutRawUsesDecimal(t *testing.T) {
	file := &phpast.File{Items: []phpast.Node{
		&phpast.ExpressionStatement{Expression: phpast.IntLiteral(42)},
	}}
	code := emit(t, file)
	require.Contains(t, code, "42;")
}

func TestEmitBinaryPrecedence(t *testing.T) {
	// (1 + 2) * 3 must keep its parens; 1 + 2 * 3 must not add any.
	mulOfSum := &phpast.BinaryExpr{
		Operator: "*",
		Left: &phpast.BinaryExpr{
			Operator: "+",
			Left:     phpast.IntLiteral(1),
			Right:    phpast.IntLiteral(2),
		},
		Right: phpast.IntLiteral(3),
	}
	sumOfMul := &phpast.BinaryExpr{
		Operator: "+",
		Left:     phpast.IntLiteral(1),
		Right: &phpast.BinaryExpr{
			Operator: "*",
			Left:     phpast.IntLiteral(2),
			Right:    phpast.IntLiteral(3),
		},
	}

	file := &phpast.File{Items: []phpast.Node{
		&phpast.ExpressionStatement{Expression: mulOfSum},
		&phpast.ExpressionStatement{Expression: sumOfMul},
	}}
	code := emit(t, file)
	require.Contains(t, code, "(1 + 2) * 3;")
	require.Contains(t, code, "1 + 2 * 3;")
	require.NotContains(t, code, "1 + (2 * 3)")
}

func TestEmitTernaryAlwaysParenthesized(t *testing.T) {
	file := &phpast.File{Items: []phpast.Node{
		&phpast.ExpressionStatement{Expression: &phpast.Ternary{
			Cond: &phpast.Variable{Name: "ok"},
			Then: phpast.IntLiteral(1),
			Else: phpast.IntLiteral(0),
		}},
	}}
	code := emit(t, file)
	require.Contains(t, code, "($ok ? 1 : 0);")
}

func TestEmitStringInterpolationAsConcatenation(t *testing.T) {
	file := &phpast.File{Items: []phpast.Node{
		&phpast.ExpressionStatement{Expression: &phpast.StringInterpolation{
			Parts: []*phpast.InterpolationPart{
				{Literal: "hello "},
				{Expression: &phpast.Variable{Name: "name"}},
				{Literal: "!"},
			},
		}},
	}}
	code := emit(t, file)
	require.Contains(t, code, "'hello ' . $name . '!';")
	require.NotContains(t, code, "\"hello")
}

func TestEmitRightAssociativeAssignmentChain(t *testing.T) {
	file := &phpast.File{Items: []phpast.Node{
		&phpast.ExpressionStatement{Expression: &phpast.Assignment{
			Operator: "=",
			Target:   &phpast.Variable{Name: "a"},
			Value: &phpast.Assignment{
				Operator: "=",
				Target:   &phpast.Variable{Name: "b"},
				Value:    phpast.IntLiteral(1),
			},
		}},
	}}
	code := emit(t, file)
	require.Contains(t, code, "$a = $b = 1;")
}

func TestEmitClassMembersOrder(t *testing.T) {
	class := &phpast.Class{
		Name: "Widget",
		Consts: []*phpast.Const{
			{Name: "MAX", Value: phpast.IntLiteral(10), ClassConst: true, Visibility: phpast.Public},
		},
		Properties: []*phpast.Property{
			{Name: "count", Visibility: phpast.Private, Type: phptype.NewPrimitive(phptype.Int)},
		},
		Methods: []*phpast.Method{
			{
				Name:       "getCount",
				Visibility: phpast.Public,
				Body:       &phpast.Block{Statements: []phpast.Stmt{&phpast.Return{Value: &phpast.PropertyAccess{Object: &phpast.Variable{Name: "this"}, Property: "count"}}}},
			},
		},
	}
	file := &phpast.File{Items: []phpast.Node{class}}
	code := emit(t, file)
	require.Contains(t, code, "class Widget {")
	require.Contains(t, code, "public const MAX = 10;")
	require.Contains(t, code, "private int $count;")
	require.Contains(t, code, "public function getCount()")
	require.Contains(t, code, "return $this->count;")
}

func TestEmitClosureUseByReference(t *testing.T) {
	cl := &phpast.Closure{
		UseVars: []*phpast.UseVar{
			{Name: "total", ByReference: true},
			{Name: "label"},
		},
		Body: &phpast.Block{},
	}
	file := &phpast.File{Items: []phpast.Node{&phpast.ExpressionStatement{Expression: cl}}}
	code := emit(t, file)
	require.Contains(t, code, "use (&$total, $label)")
}

func TestEmitNullCoalescingChainRightAssociative(t *testing.T) {
	file := &phpast.File{Items: []phpast.Node{
		&phpast.ExpressionStatement{Expression: &phpast.NullCoalescing{
			Left: &phpast.Variable{Name: "a"},
			Right: &phpast.NullCoalescing{
				Left:  &phpast.Variable{Name: "b"},
				Right: &phpast.Variable{Name: "c"},
			},
		}},
	}}
	code := emit(t, file)
	require.Contains(t, code, "$a ?? $b ?? $c;")
}

func TestEmitShortTernaryAlwaysParenthesized(t *testing.T) {
	file := &phpast.File{Items: []phpast.Node{
		&phpast.ExpressionStatement{Expression: &phpast.ShortTernary{
			Left:  &phpast.Variable{Name: "a"},
			Right: &phpast.Variable{Name: "b"},
		}},
	}}
	code := emit(t, file)
	require.Contains(t, code, "($a ?: $b);")
}

func TestEmitArrayAccessMethodCallAndNew(t *testing.T) {
	file := &phpast.File{Items: []phpast.Node{
		&phpast.ExpressionStatement{Expression: &phpast.ArrayAccess{
			Array: &phpast.Variable{Name: "items"},
			Index: phpast.IntLiteral(0),
		}},
		&phpast.ExpressionStatement{Expression: &phpast.MethodCall{
			Object: &phpast.Variable{Name: "obj"},
			Method: "doThing",
			Args:   []phpast.Expr{&phpast.Variable{Name: "x"}},
		}},
		&phpast.ExpressionStatement{Expression: &phpast.New{
			ClassName: "Widget",
			Args:      []phpast.Expr{phpast.StringLiteral("foo")},
		}},
	}}
	code := emit(t, file)
	require.Contains(t, code, "$items[0];")
	require.Contains(t, code, "$obj->doThing($x);")
	require.Contains(t, code, "new Widget('foo');")
}

func TestEmitCastAndInstanceof(t *testing.T) {
	file := &phpast.File{Items: []phpast.Node{
		&phpast.ExpressionStatement{Expression: &phpast.Cast{
			TargetType: "int",
			Operand:    &phpast.Variable{Name: "raw"},
		}},
		&phpast.ExpressionStatement{Expression: &phpast.Instanceof{
			Expr:      &phpast.Variable{Name: "x"},
			ClassName: "Widget",
		}},
	}}
	code := emit(t, file)
	require.Contains(t, code, "(int)$raw;")
	require.Contains(t, code, "$x instanceof Widget;")
}

func TestEmitMatchExpression(t *testing.T) {
	file := &phpast.File{Items: []phpast.Node{
		&phpast.ExpressionStatement{Expression: &phpast.Match{
			Discriminant: &phpast.Variable{Name: "x"},
			Arms: []*phpast.MatchArm{
				{Conditions: []phpast.Expr{phpast.IntLiteral(1), phpast.IntLiteral(2)}, Result: phpast.StringLiteral("low")},
				{Conditions: nil, Result: phpast.StringLiteral("other")},
			},
		}},
	}}
	code := emit(t, file)
	require.Contains(t, code, "match ($x) {")
	require.Contains(t, code, "1, 2 => 'low'")
	require.Contains(t, code, "default => 'other'")
}

func TestEmitArrayLiteralLongSyntax(t *testing.T) {
	file := &phpast.File{Items: []phpast.Node{
		&phpast.ExpressionStatement{Expression: &phpast.ArrayLiteral{Items: []*phpast.ArrayItem{
			{Value: phpast.IntLiteral(1)},
			{Key: phpast.StringLiteral("k"), Value: phpast.IntLiteral(2)},
		}}},
	}}
	cfg := DefaultConfig()
	cfg.ShortArrays = false
	code, err := Emit(file, cfg)
	require.NoError(t, err)
	require.Contains(t, code, "array(1, 'k' => 2);")
}

func TestEmitArrowFunction(t *testing.T) {
	fn := &phpast.ArrowFunction{
		Parameters: []*phpast.Parameter{{Name: "x"}},
		Body: &phpast.BinaryExpr{
			Operator: "*",
			Left:     &phpast.Variable{Name: "x"},
			Right:    phpast.IntLiteral(2),
		},
	}
	file := &phpast.File{Items: []phpast.Node{&phpast.ExpressionStatement{Expression: fn}}}
	code := emit(t, file)
	require.Contains(t, code, "fn($x) => $x * 2;")
}
