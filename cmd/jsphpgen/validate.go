package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/jsphpgen/transpiler/validate"
)

var validateCommand = &cli.Command{
	Name:  "validate",
	Usage: "Check generated PHP source for syntax errors",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "in",
			Aliases: []string{"i"},
			Usage:   "Path to the PHP source file (defaults to stdin)",
		},
		&cli.BoolFlag{
			Name:  "basic",
			Usage: "Use the balanced-delimiter basic validator instead of the native PHP grammar",
		},
	},
	Action: validateAction,
}

func validateAction(ctx context.Context, cmd *cli.Command) error {
	raw, err := readInput(cmd.String("in"))
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	var result validate.Result
	if cmd.Bool("basic") {
		result = validate.BasicCheck(string(raw))
	} else {
		result = validate.NativeCheck(string(raw))
	}

	if !result.Success {
		fmt.Fprintf(os.Stderr, "%s validation failed: %s\n", result.Method, result.Error)
		os.Exit(1)
	}
	fmt.Printf("%s validation passed\n", result.Method)
	return nil
}
