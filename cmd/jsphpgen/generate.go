package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"

	"github.com/jsphpgen/transpiler/generate"
	"github.com/jsphpgen/transpiler/ilast"
)

var generateCommand = &cli.Command{
	Name:  "generate",
	Usage: "Translate an IL AST document (JSON) into PHP source",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "in",
			Aliases: []string{"i"},
			Usage:   "Path to the IL AST JSON document (defaults to stdin)",
		},
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "Path to write the generated PHP source (defaults to stdout)",
		},
		&cli.StringFlag{
			Name:  "config",
			Value: "jsphpgen.yaml",
			Usage: "Path to a jsphpgen.yaml options override",
		},
		&cli.StringFlag{
			Name:  "namespace",
			Usage: "Override the emitted file's namespace",
		},
		&cli.BoolFlag{
			Name:  "skip-framework-stubs",
			Usage: "Omit AlgorithmFramework base-class stubs from the output",
		},
	},
	Action: generateAction,
}

func generateAction(ctx context.Context, cmd *cli.Command) error {
	opts, err := loadOptions(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if ns := cmd.String("namespace"); ns != "" {
		opts.Namespace = ns
	}
	if cmd.Bool("skip-framework-stubs") {
		opts.SkipFrameworkStubs = true
	}

	raw, err := readInput(cmd.String("in"))
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	program, err := ilast.Decode(raw)
	if err != nil {
		return err
	}

	result := generate.Generate(program, opts)
	printWarnings(result.Warnings.Messages())

	if !result.Success {
		return fmt.Errorf("generation failed: %s", result.Error)
	}

	return writeOutput(cmd.String("out"), result.Code)
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path, code string) error {
	if path == "" {
		_, err := fmt.Print(code)
		return err
	}
	return os.WriteFile(path, []byte(code), 0o644)
}

// printWarnings prints each warning to stderr, colored yellow when stderr
// is an interactive terminal.
func printWarnings(messages []string) {
	if len(messages) == 0 {
		return
	}
	colorize := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	for _, m := range messages {
		if colorize {
			fmt.Fprintf(os.Stderr, "\x1b[33mwarning:\x1b[0m %s\n", m)
		} else {
			fmt.Fprintf(os.Stderr, "warning: %s\n", m)
		}
	}
}
