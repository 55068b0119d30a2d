// Package generate is the outermost entry point spec §6 documents as
// `generate(ast, options) -> Result`: it wires transform (C3) and phpemit
// (C4) together and converts a recovered panic into the spec §7 category 2
// "translation failure" result shape.
package generate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jsphpgen/transpiler/errors"
	"github.com/jsphpgen/transpiler/ilast"
	"github.com/jsphpgen/transpiler/phpast"
	"github.com/jsphpgen/transpiler/phpemit"
	"github.com/jsphpgen/transpiler/transform"
)

// mandatoryExtensions are always listed, per spec §6, regardless of what
// the generated file actually uses.
var mandatoryExtensions = []string{"ext-sodium", "ext-openssl", "ext-mbstring"}

// extensionNamespacePrefixes maps a `use` declaration's leading namespace
// segment to the PHP extension it implies, completing spec §6's "plus
// anything implied by use declarations" (SPEC_FULL §12).
var extensionNamespacePrefixes = map[string]string{
	"Sodium":    "ext-sodium",
	"Random":    "ext-random",
	"PDO":       "ext-pdo",
	"mysqli":    "ext-mysqli",
	"Redis":     "ext-redis",
	"Memcached": "ext-memcached",
	"Swoole":    "ext-swoole",
}

// Result mirrors spec §6's `Result` union: Success true carries Code,
// Dependencies and Warnings; Success false carries Error and Warnings.
type Result struct {
	Success      bool
	Code         string
	Dependencies []string
	Warnings     errors.List
	Error        string
}

// Generate lowers an IL AST to PHP source text, recovering any panic from
// either the transformer or the emitter as a translation-failure result
// rather than letting it escape to the caller (spec §7 category 2).
func Generate(program *ilast.Node, opts transform.Options) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = Result{Success: false, Error: fmt.Sprintf("translation failure: %v", r)}
		}
	}()

	file, diagnostics, err := transform.Transform(program, opts)
	if err != nil {
		return Result{Success: false, Error: err.Error(), Warnings: diagnostics}
	}

	cfg := phpemit.DefaultConfig()
	if opts.Indent != "" {
		cfg.Indent = opts.Indent
	}
	if opts.Newline != "" {
		cfg.Newline = opts.Newline
	}
	cfg.ShortArrays = opts.UseShortArraySyntax

	code, err := phpemit.Emit(file, cfg)
	if err != nil {
		return Result{Success: false, Error: err.Error(), Warnings: diagnostics}
	}

	return Result{
		Success:      true,
		Code:         code,
		Dependencies: deriveDependencies(file),
		Warnings:     diagnostics,
	}
}

// deriveDependencies builds the dependency list spec §6 describes: the
// mandatory extensions, plus one entry per `use` declaration whose
// namespace root is a known extension-backed prefix, deduplicated and
// sorted for deterministic output.
func deriveDependencies(file *phpast.File) []string {
	seen := make(map[string]bool, len(mandatoryExtensions))
	var out []string
	add := func(dep string) {
		if !seen[dep] {
			seen[dep] = true
			out = append(out, dep)
		}
	}
	for _, m := range mandatoryExtensions {
		add(m)
	}
	for _, u := range file.Uses {
		root := u.Path
		if idx := strings.IndexByte(root, '\\'); idx >= 0 {
			root = root[:idx]
		}
		if ext, ok := extensionNamespacePrefixes[root]; ok {
			add(ext)
		}
	}
	sort.Strings(out[len(mandatoryExtensions):])
	return out
}
