package validate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNativeCheckValidSource(t *testing.T) {
	result := NativeCheck("<?php\nfunction add($a, $b) {\n    return $a + $b;\n}\n")
	require.True(t, result.Success)
	require.Equal(t, Native, result.Method)
}

func TestNativeCheckSyntaxError(t *testing.T) {
	result := NativeCheck("<?php\nfunction add($a, $b) {\n    return $a +;\n}\n")
	require.False(t, result.Success)
	require.Equal(t, Native, result.Method)
	require.NotEmpty(t, result.Error)
}

func TestNativeCheckClassWithNullableProperty(t *testing.T) {
	result := NativeCheck("<?php\nclass Widget {\n    private ?int $count = null;\n    public function getCount(): ?int {\n        return $this->count;\n    }\n}\n")
	require.True(t, result.Success)
}
