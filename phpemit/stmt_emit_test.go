package phpemit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsphpgen/transpiler/phpast"
)

func TestEmitIfElseIfElseFlat(t *testing.T) {
	stmt := &phpast.If{
		Cond: &phpast.Variable{Name: "a"},
		Then: &phpast.Block{},
		Else: &phpast.If{
			Cond: &phpast.Variable{Name: "b"},
			Then: &phpast.Block{},
			Else: &phpast.Block{},
		},
	}
	file := &phpast.File{Items: []phpast.Node{stmt}}
	code := emit(t, file)
	require.Contains(t, code, "if ($a) {\n}")
	require.Contains(t, code, "} else if ($b) {\n}")
	require.Contains(t, code, "} else {\n}")
}

func TestEmitForLoop(t *testing.T) {
	stmt := &phpast.For{
		Init: []phpast.Expr{&phpast.Assignment{Operator: "=", Target: &phpast.Variable{Name: "i"}, Value: phpast.IntLiteral(0)}},
		Cond: []phpast.Expr{&phpast.BinaryExpr{Operator: "<", Left: &phpast.Variable{Name: "i"}, Right: phpast.IntLiteral(10)}},
		Post: []phpast.Expr{&phpast.UnaryExpr{Operator: "++", Operand: &phpast.Variable{Name: "i"}, Postfix: true}},
		Body: &phpast.Block{},
	}
	file := &phpast.File{Items: []phpast.Node{stmt}}
	code := emit(t, file)
	require.Contains(t, code, "for ($i = 0; $i < 10; $i++) {")
}

func TestEmitForeachWithKey(t *testing.T) {
	stmt := &phpast.Foreach{
		Iterable: &phpast.Variable{Name: "items"},
		KeyVar:   &phpast.Variable{Name: "k"},
		ValueVar: &phpast.Variable{Name: "v"},
		Body:     &phpast.Block{},
	}
	file := &phpast.File{Items: []phpast.Node{stmt}}
	code := emit(t, file)
	require.Contains(t, code, "foreach ($items as $k => $v) {")
}

func TestEmitWhileAndDoWhile(t *testing.T) {
	file := &phpast.File{Items: []phpast.Node{
		&phpast.While{Cond: &phpast.Variable{Name: "running"}, Body: &phpast.Block{}},
		&phpast.DoWhile{Cond: &phpast.Variable{Name: "again"}, Body: &phpast.Block{}},
	}}
	code := emit(t, file)
	require.Contains(t, code, "while ($running) {")
	require.Contains(t, code, "do {\n} while ($again);")
}

func TestEmitSwitchWithDefault(t *testing.T) {
	stmt := &phpast.Switch{
		Discriminant: &phpast.Variable{Name: "x"},
		Cases: []*phpast.SwitchCase{
			{Test: phpast.IntLiteral(1), Statements: []phpast.Stmt{&phpast.Break{}}},
			{Test: nil, Statements: []phpast.Stmt{&phpast.Break{}}},
		},
	}
	file := &phpast.File{Items: []phpast.Node{stmt}}
	code := emit(t, file)
	require.Contains(t, code, "switch ($x) {")
	require.Contains(t, code, "case 1:")
	require.Contains(t, code, "default:")
}

func TestEmitTryCatchFinally(t *testing.T) {
	stmt := &phpast.Try{
		Body: &phpast.Block{},
		Catches: []*phpast.Catch{
			{ExceptionTypes: []string{"RuntimeException", "LogicException"}, Variable: "e", Body: &phpast.Block{}},
		},
		Finally: &phpast.Block{},
	}
	file := &phpast.File{Items: []phpast.Node{stmt}}
	code := emit(t, file)
	require.Contains(t, code, "try {")
	require.Contains(t, code, "} catch (RuntimeException|LogicException $e) {")
	require.Contains(t, code, "} finally {")
}

func TestEmitBreakContinueWithLevel(t *testing.T) {
	file := &phpast.File{Items: []phpast.Node{
		&phpast.Break{Level: 2},
		&phpast.Continue{Level: 2},
	}}
	code := emit(t, file)
	require.Contains(t, code, "break 2;")
	require.Contains(t, code, "continue 2;")
}

func TestEmitGlobalAndStaticVar(t *testing.T) {
	file := &phpast.File{Items: []phpast.Node{
		&phpast.Global{Names: []string{"config", "db"}},
		&phpast.StaticVar{Name: "count", Default: phpast.IntLiteral(0)},
	}}
	code := emit(t, file)
	require.Contains(t, code, "global $config, $db;")
	require.Contains(t, code, "static $count = 0;")
}
