package generate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsphpgen/transpiler/ilast"
	"github.com/jsphpgen/transpiler/transform"
)

func TestGenerateSuccess(t *testing.T) {
	program, err := ilast.Decode([]byte(`{
		"type": "Program",
		"body": [
			{"type": "FunctionDeclaration", "id": {"type": "Identifier", "name": "add"}, "params": [
				{"type": "Identifier", "name": "a"}, {"type": "Identifier", "name": "b"}
			], "body": {"type": "BlockStatement", "body": [
				{"type": "ReturnStatement", "argument": {
					"type": "BinaryExpression", "operator": "+",
					"left": {"type": "Identifier", "name": "a"},
					"right": {"type": "Identifier", "name": "b"}
				}}
			]}}
		]
	}`))
	require.NoError(t, err)

	opts := transform.DefaultOptions()
	opts.SkipFrameworkStubs = true
	result := Generate(program, opts)

	require.True(t, result.Success)
	require.Contains(t, result.Code, "function add($a, $b)")
	require.Contains(t, result.Code, "return $a + $b;")
	require.Contains(t, result.Dependencies, "ext-sodium")
	require.Contains(t, result.Dependencies, "ext-openssl")
	require.Contains(t, result.Dependencies, "ext-mbstring")
}

func TestGenerateInvalidRoot(t *testing.T) {
	result := Generate(nil, transform.DefaultOptions())
	require.False(t, result.Success)
	require.NotEmpty(t, result.Error)
	require.Empty(t, result.Code)
}

func TestGenerateMandatoryDependencies(t *testing.T) {
	program, err := ilast.Decode([]byte(`{
		"type": "Program",
		"body": []
	}`))
	require.NoError(t, err)

	opts := transform.DefaultOptions()
	opts.SkipFrameworkStubs = true
	opts.Namespace = "App\\Generated"
	result := Generate(program, opts)

	require.True(t, result.Success)
	// Mandatory extensions always lead, regardless of what the file uses.
	require.Equal(t, []string{"ext-sodium", "ext-openssl", "ext-mbstring"}, result.Dependencies)
}
