package transform

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsphpgen/transpiler/ilast"
	"github.com/jsphpgen/transpiler/phpast"
)

func decode(t *testing.T, json string) *ilast.Node {
	t.Helper()
	n, err := ilast.Decode([]byte(json))
	require.NoError(t, err)
	return n
}

func TestTransformRejectsNonProgramRoot(t *testing.T) {
	_, _, err := Transform(nil, DefaultOptions())
	require.Error(t, err)
}

func TestTransformConstantPromotion(t *testing.T) {
	program := decode(t, `{
		"type": "Program",
		"body": [
			{"type": "VariableDeclaration", "kind": "const", "declarations": [
				{"type": "VariableDeclarator", "id": {"type": "Identifier", "name": "MAX_RETRIES"}, "init": {"type": "Literal", "kind": "int", "value": 3}}
			]}
		]
	}`)
	opts := DefaultOptions()
	opts.SkipFrameworkStubs = true
	file, diags, err := Transform(program, opts)
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Len(t, file.Items, 1)
	c, ok := file.Items[0].(*phpast.Const)
	require.True(t, ok)
	require.Equal(t, "MAX_RETRIES", c.Name)
}

func TestTransformTopLevelIIFEUnwrapped(t *testing.T) {
	program := decode(t, `{
		"type": "Program",
		"body": [
			{"type": "ExpressionStatement", "expression": {
				"type": "CallExpression",
				"callee": {
					"type": "FunctionExpression",
					"params": [],
					"body": {"type": "BlockStatement", "body": [
						{"type": "ExpressionStatement", "expression": {
							"type": "CallExpression",
							"callee": {"type": "Identifier", "name": "doSetup"},
							"arguments": []
						}}
					]}
				},
				"arguments": []
			}}
		]
	}`)
	opts := DefaultOptions()
	opts.SkipFrameworkStubs = true
	file, _, err := Transform(program, opts)
	require.NoError(t, err)
	require.Len(t, file.Items, 1)
	stmt, ok := file.Items[0].(*phpast.ExpressionStatement)
	require.True(t, ok)
	call, ok := stmt.Expression.(*phpast.FunctionCall)
	require.True(t, ok)
	require.Equal(t, "do_setup", call.Callee)
}

func TestTransformFunctionDeclarationPassByReference(t *testing.T) {
	// `mutate(arr)` writes an element of its array-named parameter, so the
	// parameter must be emitted as `&$arr`.
	program := decode(t, `{
		"type": "Program",
		"body": [
			{"type": "FunctionDeclaration", "id": {"type": "Identifier", "name": "mutate"}, "params": [
				{"type": "Identifier", "name": "arr"}
			], "body": {"type": "BlockStatement", "body": [
				{"type": "ExpressionStatement", "expression": {
					"type": "AssignmentExpression", "operator": "=",
					"left": {"type": "MemberExpression", "computed": true,
						"object": {"type": "Identifier", "name": "arr"},
						"property": {"type": "Literal", "kind": "int", "value": 0}},
					"right": {"type": "Literal", "kind": "int", "value": 1}
				}}
			]}}
		]
	}`)
	opts := DefaultOptions()
	opts.SkipFrameworkStubs = true
	file, _, err := Transform(program, opts)
	require.NoError(t, err)
	require.Len(t, file.Items, 1)
	fn, ok := file.Items[0].(*phpast.Function)
	require.True(t, ok)
	require.Equal(t, "mutate", fn.Name)
	require.Len(t, fn.Parameters, 1)
	require.True(t, fn.Parameters[0].IsReference)
}

func TestTransformArrowFunctionDisabledLowersToClosure(t *testing.T) {
	program := decode(t, `{
		"type": "Program",
		"body": [
			{"type": "VariableDeclaration", "kind": "var", "declarations": [
				{"type": "VariableDeclarator", "id": {"type": "Identifier", "name": "double"}, "init": {
					"type": "ArrowFunctionExpression",
					"params": [{"type": "Identifier", "name": "x"}],
					"body": {"type": "BinaryExpression", "operator": "*",
						"left": {"type": "Identifier", "name": "x"},
						"right": {"type": "Literal", "kind": "int", "value": 2}}
				}}
			]}
		]
	}`)
	opts := DefaultOptions()
	opts.SkipFrameworkStubs = true
	opts.UseArrowFunctions = false
	file, _, err := Transform(program, opts)
	require.NoError(t, err)
	require.Len(t, file.Items, 1)
	stmt, ok := file.Items[0].(*phpast.ExpressionStatement)
	require.True(t, ok)
	assign, ok := stmt.Expression.(*phpast.Assignment)
	require.True(t, ok)
	closure, ok := assign.Value.(*phpast.Closure)
	require.True(t, ok)
	require.Len(t, closure.Body.Statements, 1)
	_, ok = closure.Body.Statements[0].(*phpast.Return)
	require.True(t, ok)
}

func TestTransformAddTypeHintsDisabledOmitsPropertyTypes(t *testing.T) {
	program := decode(t, `{
		"type": "Program",
		"body": [
			{"type": "ClassDeclaration", "id": {"type": "Identifier", "name": "Widget"},
				"body": {"type": "ClassBody", "body": [
					{"type": "MethodDefinition", "kind": "constructor",
						"key": {"type": "Identifier", "name": "constructor"},
						"value": {"type": "FunctionExpression", "params": [], "body": {"type": "BlockStatement", "body": [
							{"type": "ExpressionStatement", "expression": {
								"type": "AssignmentExpression", "operator": "=",
								"left": {"type": "MemberExpression", "computed": false,
									"object": {"type": "ThisExpression"},
									"property": {"type": "Identifier", "name": "count"}},
								"right": {"type": "Literal", "kind": "int", "value": 0}
							}}
						]}}}
				]}}
		]
	}`)
	opts := DefaultOptions()
	opts.SkipFrameworkStubs = true
	opts.AddTypeHints = false
	file, _, err := Transform(program, opts)
	require.NoError(t, err)
	require.Len(t, file.Items, 1)
	class, ok := file.Items[0].(*phpast.Class)
	require.True(t, ok)
	require.Len(t, class.Properties, 1)
	require.Nil(t, class.Properties[0].Type)
}

func TestTransformNullablePropertyType(t *testing.T) {
	// `this.total = null` in the constructor should produce the
	// name-heuristic type made nullable (`?int`), not a bare
	// non-nullable type.
	program := decode(t, `{
		"type": "Program",
		"body": [
			{"type": "ClassDeclaration", "id": {"type": "Identifier", "name": "Widget"},
				"body": {"type": "ClassBody", "body": [
					{"type": "MethodDefinition", "kind": "constructor",
						"key": {"type": "Identifier", "name": "constructor"},
						"value": {"type": "FunctionExpression", "params": [], "body": {"type": "BlockStatement", "body": [
							{"type": "ExpressionStatement", "expression": {
								"type": "AssignmentExpression", "operator": "=",
								"left": {"type": "MemberExpression", "computed": false,
									"object": {"type": "ThisExpression"},
									"property": {"type": "Identifier", "name": "total"}},
								"right": {"type": "Literal", "kind": "null"}
							}}
						]}}}
				]}}
		]
	}`)
	opts := DefaultOptions()
	opts.SkipFrameworkStubs = true
	file, _, err := Transform(program, opts)
	require.NoError(t, err)
	require.Len(t, file.Items, 1)
	class, ok := file.Items[0].(*phpast.Class)
	require.True(t, ok)
	require.Len(t, class.Properties, 1)
	require.Equal(t, "?int", class.Properties[0].Type.String())
}

func TestTransformBaseClassPropertiesFiltered(t *testing.T) {
	// A class extending a recognized framework base that sets
	// `this.name = ...` must not redeclare `name` as its own property.
	program := decode(t, `{
		"type": "Program",
		"body": [
			{"type": "ClassDeclaration", "id": {"type": "Identifier", "name": "MyHash"},
				"superClass": {"type": "Identifier", "name": "HashAlgorithm"},
				"body": {"type": "ClassBody", "body": [
					{"type": "MethodDefinition", "kind": "constructor",
						"key": {"type": "Identifier", "name": "constructor"},
						"value": {"type": "FunctionExpression", "params": [], "body": {"type": "BlockStatement", "body": [
							{"type": "ExpressionStatement", "expression": {
								"type": "AssignmentExpression", "operator": "=",
								"left": {"type": "MemberExpression", "computed": false,
									"object": {"type": "ThisExpression"},
									"property": {"type": "Identifier", "name": "name"}},
								"right": {"type": "Literal", "kind": "string", "value": "MyHash"}
							}},
							{"type": "ExpressionStatement", "expression": {
								"type": "AssignmentExpression", "operator": "=",
								"left": {"type": "MemberExpression", "computed": false,
									"object": {"type": "ThisExpression"},
									"property": {"type": "Identifier", "name": "digestSize"}},
								"right": {"type": "Literal", "kind": "int", "value": 32}
							}}
						]}}}
				]}}
		]
	}`)
	opts := DefaultOptions()
	opts.SkipFrameworkStubs = true
	file, _, err := Transform(program, opts)
	require.NoError(t, err)
	var class *phpast.Class
	for _, item := range file.Items {
		if c, ok := item.(*phpast.Class); ok && c.Name == "MyHash" {
			class = c
		}
	}
	require.NotNil(t, class)
	names := map[string]bool{}
	for _, p := range class.Properties {
		names[p.Name] = true
	}
	require.False(t, names["name"], "base-class property `name` should not be redeclared")
	require.True(t, names["digest_size"])
}

func TestTransformEnumObjectGlobalCapture(t *testing.T) {
	// A function body referencing an EnumObjects name (SecurityLevel) must
	// get a `global $security_level;` capture, even though SecurityLevel
	// is never a moduleVariables entry.
	program := decode(t, `{
		"type": "Program",
		"body": [
			{"type": "FunctionDeclaration", "id": {"type": "Identifier", "name": "classify"}, "params": [],
				"body": {"type": "BlockStatement", "body": [
					{"type": "ExpressionStatement", "expression": {
						"type": "AssignmentExpression", "operator": "=",
						"left": {"type": "Identifier", "name": "level"},
						"right": {"type": "MemberExpression", "computed": false,
							"object": {"type": "MemberExpression", "computed": false,
								"object": {"type": "Identifier", "name": "AlgorithmFramework"},
								"property": {"type": "Identifier", "name": "SecurityLevel"}},
							"property": {"type": "Identifier", "name": "BASIC"}}
					}},
					{"type": "ExpressionStatement", "expression": {
						"type": "CallExpression",
						"callee": {"type": "Identifier", "name": "use"},
						"arguments": [{"type": "Identifier", "name": "SecurityLevel"}]
					}}
				]}}
		]
	}`)
	opts := DefaultOptions()
	opts.SkipFrameworkStubs = true
	file, _, err := Transform(program, opts)
	require.NoError(t, err)
	require.Len(t, file.Items, 1)
	fn, ok := file.Items[0].(*phpast.Function)
	require.True(t, ok)
	require.NotEmpty(t, fn.Body.Statements)
	global, ok := fn.Body.Statements[0].(*phpast.Global)
	require.True(t, ok, "expected a global capture for the referenced SecurityLevel enum object")
	require.Contains(t, global.Names, "security_level")
}

func TestTransformTypedArrayConstructorSizeNamePriority(t *testing.T) {
	// `new Uint8Array(block_size)` must be sized (array_fill), not
	// treated as a buffer copy, even though "block_size" also contains a
	// buffer-name fragment ("block").
	program := decode(t, `{
		"type": "Program",
		"body": [
			{"type": "VariableDeclaration", "kind": "var", "declarations": [
				{"type": "VariableDeclarator", "id": {"type": "Identifier", "name": "buf"}, "init": {
					"type": "NewExpression",
					"callee": {"type": "Identifier", "name": "Uint8Array"},
					"arguments": [{"type": "Identifier", "name": "block_size"}]
				}}
			]}
		]
	}`)
	opts := DefaultOptions()
	opts.SkipFrameworkStubs = true
	file, _, err := Transform(program, opts)
	require.NoError(t, err)
	require.Len(t, file.Items, 1)
	stmt, ok := file.Items[0].(*phpast.ExpressionStatement)
	require.True(t, ok)
	assign, ok := stmt.Expression.(*phpast.Assignment)
	require.True(t, ok)
	call, ok := assign.Value.(*phpast.FunctionCall)
	require.True(t, ok)
	require.Equal(t, "array_fill", call.Callee)
}

func TestTransformIntLiteralPreservesHexRadix(t *testing.T) {
	program := decode(t, `{
		"type": "Program",
		"body": [
			{"type": "VariableDeclaration", "kind": "var", "declarations": [
				{"type": "VariableDeclarator", "id": {"type": "Identifier", "name": "sbox"}, "init": {
					"type": "Literal", "kind": "int", "value": 99, "raw": "0x63"
				}}
			]}
		]
	}`)
	opts := DefaultOptions()
	opts.SkipFrameworkStubs = true
	file, _, err := Transform(program, opts)
	require.NoError(t, err)
	require.Len(t, file.Items, 1)
	stmt, ok := file.Items[0].(*phpast.ExpressionStatement)
	require.True(t, ok)
	assign, ok := stmt.Expression.(*phpast.Assignment)
	require.True(t, ok)
	lit, ok := assign.Value.(*phpast.Literal)
	require.True(t, ok)
	require.Equal(t, "0x63", lit.Raw)
	require.Equal(t, int64(99), lit.Int)
}

func TestTransformToStringWithRadixLowersToCast(t *testing.T) {
	// `n.toString(16)` lowers to a bare `(string)$n` cast; the radix
	// argument is dropped rather than driving a base_convert call.
	program := decode(t, `{
		"type": "Program",
		"body": [
			{"type": "ExpressionStatement", "expression": {
				"type": "CallExpression",
				"callee": {"type": "MemberExpression", "computed": false,
					"object": {"type": "Identifier", "name": "n"},
					"property": {"type": "Identifier", "name": "toString"}},
				"arguments": [{"type": "Literal", "kind": "int", "value": 16}]
			}}
		]
	}`)
	opts := DefaultOptions()
	opts.SkipFrameworkStubs = true
	file, _, err := Transform(program, opts)
	require.NoError(t, err)
	require.Len(t, file.Items, 1)
	stmt, ok := file.Items[0].(*phpast.ExpressionStatement)
	require.True(t, ok)
	cast, ok := stmt.Expression.(*phpast.Cast)
	require.True(t, ok, "expected toString(16) to lower to a cast, not a base_convert call")
	require.Equal(t, "string", cast.TargetType)
}

func TestTransformFrameworkStubGeneration(t *testing.T) {
	program := decode(t, `{
		"type": "Program",
		"body": [
			{"type": "ClassDeclaration", "id": {"type": "Identifier", "name": "Widget"},
				"superClass": {"type": "Identifier", "name": "Algorithm"},
				"body": {"type": "ClassBody", "body": []}}
		]
	}`)
	file, _, err := Transform(program, DefaultOptions())
	require.NoError(t, err)
	var sawStub, sawClass bool
	for _, item := range file.Items {
		if c, ok := item.(*phpast.Class); ok {
			if c.Name == "Algorithm" && c.IsAbstract {
				sawStub = true
			}
			if c.Name == "Widget" {
				require.Equal(t, "Algorithm", c.ExtendsClass)
				sawClass = true
			}
		}
	}
	require.True(t, sawStub, "expected a generated stub for Algorithm")
	require.True(t, sawClass, "expected the Widget class itself")
}
