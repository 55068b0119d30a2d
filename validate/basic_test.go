package validate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBasicCheckBalanced(t *testing.T) {
	result := BasicCheck("<?php\nfunction f($a) {\n    return [$a, 1];\n}\n")
	require.True(t, result.Success)
	require.Equal(t, Basic, result.Method)
}

func TestBasicCheckUnbalancedBrace(t *testing.T) {
	result := BasicCheck("<?php\nfunction f() {\n    return 1;\n")
	require.False(t, result.Success)
	require.Contains(t, result.Error, "'{'")
}

func TestBasicCheckUnbalancedParen(t *testing.T) {
	result := BasicCheck("<?php\necho strlen('x';\n")
	require.False(t, result.Success)
	require.Contains(t, result.Error, "'('")
}

func TestBasicCheckIgnoresDelimitersInsideStrings(t *testing.T) {
	result := BasicCheck(`<?php echo "unbalanced ( and { here";`)
	require.True(t, result.Success)
}

func TestBasicCheckIgnoresDelimitersInsideComments(t *testing.T) {
	result := BasicCheck("<?php\n// a ( b { c\n/* d ) e } f */\necho 1;\n")
	require.True(t, result.Success)
}

func TestBasicCheckUnterminatedString(t *testing.T) {
	result := BasicCheck(`<?php echo 'unterminated;`)
	require.False(t, result.Success)
	require.Contains(t, result.Error, "unterminated string")
}

func TestBasicCheckHeredocBalanced(t *testing.T) {
	result := BasicCheck("<?php\n$x = <<<EOT\n( { [ unbalanced inside\nEOT;\n")
	require.True(t, result.Success)
}

func TestBasicCheckUnterminatedHeredoc(t *testing.T) {
	result := BasicCheck("<?php\n$x = <<<EOT\nmissing terminator\n")
	require.False(t, result.Success)
	require.Contains(t, result.Error, "here-doc")
}
