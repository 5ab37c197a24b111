// Command binconf converts binconf configuration documents to JSON.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	binconf "github.com/binconf/go"
	"github.com/urfave/cli/v2"
)

var version = "1.0.0"

func newApp() *cli.App {
	return &cli.App{
		Name:      "binconf",
		Usage:     "convert binconf configuration documents to JSON",
		Version:   version,
		ArgsUsage: "<input-file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write JSON to `FILE` instead of stdout",
			},
		},
		Action: run,
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: binconf [-o FILE] <input-file>", 1)
	}
	inputPath := c.Args().First()

	data, err := os.ReadFile(inputPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cli.Exit(fmt.Sprintf("error: file %q not found", inputPath), 1)
		}
		return cli.Exit(fmt.Sprintf("error: %v", err), 1)
	}

	src := string(data)
	result, err := binconf.Parse(src)
	if err != nil {
		var perr *binconf.ParseError
		if errors.As(err, &perr) {
			fmt.Fprintf(c.App.ErrWriter, "Syntax error: %s", binconf.FormatErrorWithSource(perr, src))
			return cli.Exit("", 1)
		}
		return cli.Exit(fmt.Sprintf("error: %v", err), 1)
	}

	out, err := binconf.MarshalIndent(result)
	if err != nil {
		return cli.Exit(fmt.Sprintf("error: %v", err), 1)
	}

	if outputPath := c.String("output"); outputPath != "" {
		if dir := filepath.Dir(outputPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
		}
		if err := os.WriteFile(outputPath, append(out, '\n'), 0o644); err != nil {
			return cli.Exit(fmt.Sprintf("error: %v", err), 1)
		}
		fmt.Fprintf(c.App.ErrWriter, "wrote %s\n", outputPath)
		return nil
	}

	fmt.Fprintln(c.App.Writer, string(out))
	return nil
}
