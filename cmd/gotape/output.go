package main

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/seuros/gopher-tape/src/ast"
)

func (c *cli) fmtCommand(args []string) error {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	indentFlag := fs.String("indent", "", "Put loop bodies on their own lines, indented by this string")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return &exitError{code: exitOK}
		}
		return usageErrorf("%v", err)
	}
	if fs.NArg() != 1 {
		return usageErrorf("Usage: gotape fmt [--indent s] <file>")
	}

	prog, err := c.loadProgram(fs.Arg(0))
	if err != nil {
		return err
	}

	formatted := ast.FormatIndented(prog.Body, *indentFlag)
	if !strings.HasSuffix(formatted, "\n") {
		formatted += "\n"
	}
	_, err = io.WriteString(c.stdout, formatted)
	return err
}

func (c *cli) inspectCommand(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	formatFlag := fs.String("format", "yaml", "Output format: yaml|tree|stats")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return &exitError{code: exitOK}
		}
		return usageErrorf("%v", err)
	}
	if fs.NArg() != 1 {
		return usageErrorf("Usage: gotape inspect [--format yaml|tree|stats] <file>")
	}

	prog, err := c.loadProgram(fs.Arg(0))
	if err != nil {
		return err
	}

	switch strings.ToLower(*formatFlag) {
	case "yaml":
		return writeYAML(c.stdout, prog)
	case "tree":
		_, err = io.WriteString(c.stdout, ast.Dump(prog.Body))
		return err
	case "stats":
		return writeStats(c.stdout, prog)
	default:
		return usageErrorf("Unknown --format %q (expected yaml|tree|stats)", *formatFlag)
	}
}

func writeYAML(w io.Writer, prog *ast.Program) error {
	b, err := prog.YAML()
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func writeStats(w io.Writer, prog *ast.Program) error {
	counts := map[string]int{}
	ast.Walk(prog.Body, func(n ast.Node) {
		counts[n.Name()]++
	})

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "instruction\tcount")
	for _, name := range []string{"incr", "decr", "left", "right", "output", "input", "loop"} {
		_, _ = fmt.Fprintf(tw, "%s\t%d\n", name, counts[name])
	}
	_, _ = fmt.Fprintf(tw, "total\t%d\n", prog.Len())
	_, _ = fmt.Fprintf(tw, "depth\t%d\n", prog.Depth())
	return tw.Flush()
}
