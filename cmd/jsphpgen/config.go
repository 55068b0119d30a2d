package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jsphpgen/transpiler/transform"
)

// fileConfig is the optional `jsphpgen.yaml` override for transform.Options
// (spec §6's recognized options), loaded when present in the current
// directory or pointed to via `--config`.
type fileConfig struct {
	Indent              string `yaml:"indent"`
	Newline             string `yaml:"newline"`
	StrictTypes         *bool  `yaml:"strict_types"`
	AddTypeHints        *bool  `yaml:"add_type_hints"`
	AddDocBlocks        *bool  `yaml:"add_doc_blocks"`
	UseShortArraySyntax *bool  `yaml:"use_short_array_syntax"`
	Namespace           string `yaml:"namespace"`
	SkipFrameworkStubs  bool   `yaml:"skip_framework_stubs"`
	UseArrowFunctions   *bool  `yaml:"use_arrow_functions"`
}

// loadOptions starts from transform.DefaultOptions and applies path's YAML
// contents on top, when path is non-empty and the file exists.
func loadOptions(path string) (transform.Options, error) {
	opts := transform.DefaultOptions()
	if path == "" {
		return opts, nil
	}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return opts, nil
	}
	if err != nil {
		return opts, err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return opts, err
	}

	if fc.Indent != "" {
		opts.Indent = fc.Indent
	}
	if fc.Newline != "" {
		opts.Newline = fc.Newline
	}
	if fc.StrictTypes != nil {
		opts.StrictTypes = *fc.StrictTypes
	}
	if fc.AddTypeHints != nil {
		opts.AddTypeHints = *fc.AddTypeHints
	}
	if fc.AddDocBlocks != nil {
		opts.AddDocBlocks = *fc.AddDocBlocks
	}
	if fc.UseShortArraySyntax != nil {
		opts.UseShortArraySyntax = *fc.UseShortArraySyntax
	}
	if fc.Namespace != "" {
		opts.Namespace = fc.Namespace
	}
	opts.SkipFrameworkStubs = fc.SkipFrameworkStubs
	if fc.UseArrowFunctions != nil {
		opts.UseArrowFunctions = *fc.UseArrowFunctions
	}

	return opts, nil
}
