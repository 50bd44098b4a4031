package main

import (
	"fmt"
	"io"
	"os"

	"github.com/seuros/gopher-tape/src/ast"
	"github.com/seuros/gopher-tape/src/interpreter"
	"github.com/seuros/gopher-tape/src/parser"
)

// cli carries the process streams so commands can run against buffers in
// tests.
type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	c := &cli{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	os.Exit(c.main(os.Args[1:]))
}

func (c *cli) main(args []string) int {
	if len(args) < 1 {
		c.printUsage(c.stderr)
		return exitUsage
	}

	command := args[0]
	rest := args[1:]

	var err error
	switch command {
	case "run":
		err = c.runCommand(rest)
	case "lint":
		err = c.lintCommand(rest)
	case "fmt":
		err = c.fmtCommand(rest)
	case "inspect":
		err = c.inspectCommand(rest)
	case "version", "--version", "-v":
		err = c.versionCommand()
	case "help", "--help", "-h":
		c.printUsage(c.stdout)
		return exitOK
	default:
		// gotape <file> runs the file.
		err = c.runCommand(args)
	}

	if err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(c.stderr, msg)
		}
		return exitCode(err)
	}
	return exitOK
}

func (c *cli) printUsage(w io.Writer) {
	fmt.Fprintln(w, "gotape - tape language interpreter")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  gotape <file>                      - Run a program")
	fmt.Fprintln(w, "  gotape run [flags] <file|->        - Run a program")
	fmt.Fprintln(w, "  gotape lint <file>                 - Check loop structure")
	fmt.Fprintln(w, "  gotape fmt [--indent s] <file>     - Print canonical source")
	fmt.Fprintln(w, "  gotape inspect [--format f] <file> - Print the instruction tree (yaml|tree|stats)")
	fmt.Fprintln(w, "  gotape version                     - Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run flags:")
	fmt.Fprintln(w, "  --tape-size 30000                  - Number of cells")
	fmt.Fprintln(w, "  --eof unchanged|zero|max|error     - Input behavior at end of stream")
	fmt.Fprintln(w, "  --input <path>                     - Read program input from a file instead of stdin")
	fmt.Fprintln(w, "  --log-level off|debug|info|warn|error")
	fmt.Fprintln(w, "  --log-format text|json             - Log format on stderr (default: text)")
	fmt.Fprintln(w, "  --log-file <path>                  - Also write JSON logs to a file")
	fmt.Fprintln(w, "  --trace                            - Export traces and metrics to stderr")
	fmt.Fprintln(w, "  --stats                            - Print a run summary to stderr")
	fmt.Fprintln(w, "  --timeout 10s                      - Optional run timeout (default: none)")
}

func (c *cli) versionCommand() error {
	fmt.Fprintf(c.stdout, "gotape version %s\n", interpreter.Version())
	fmt.Fprintf(c.stdout, "User agent: %s\n", interpreter.UserAgent())
	fmt.Fprintf(c.stdout, "Platform: %s\n", interpreter.Platform())
	return nil
}

// loadProgram reads and parses filename; "-" reads the program from stdin.
func (c *cli) loadProgram(filename string) (*ast.Program, error) {
	var content []byte
	var err error
	if filename == "-" {
		content, err = io.ReadAll(c.stdin)
	} else {
		content, err = os.ReadFile(filename)
	}
	if err != nil {
		return nil, err
	}

	prog, err := parser.ParseNamed(filename, string(content))
	if err != nil {
		return nil, failuref("Syntax error: %v", err)
	}
	return prog, nil
}

func (c *cli) lintCommand(args []string) error {
	if len(args) != 1 {
		return usageErrorf("Usage: gotape lint <file>")
	}

	filename := args[0]
	prog, err := c.loadProgram(filename)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.stdout, "%s: OK (%d instructions, %d loops, depth %d)\n",
		filename, prog.Len(), prog.Loops(), prog.Depth())
	return nil
}
