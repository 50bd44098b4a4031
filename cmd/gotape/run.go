package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/seuros/gopher-tape/src/interpreter"
)

func (c *cli) runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(c.stderr)

	tapeSizeFlag := fs.Int("tape-size", interpreter.DefaultTapeSize, "Number of tape cells")
	eofFlag := fs.String("eof", "unchanged", "Input behavior at end of stream: unchanged|zero|max|error")
	inputFlag := fs.String("input", "", "Read program input from this file instead of stdin")
	logLevelFlag := fs.String("log-level", "off", "Log level: off|debug|info|warn|error")
	logFormatFlag := fs.String("log-format", "text", "Log format on stderr: text|json")
	logFileFlag := fs.String("log-file", "", "Also write JSON logs to this file")
	traceFlag := fs.Bool("trace", false, "Export traces and metrics to stderr")
	statsFlag := fs.Bool("stats", false, "Print a run summary to stderr")
	timeoutFlag := fs.Duration("timeout", 0, "Optional run timeout (e.g. 10s, 1m). 0 disables.")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return &exitError{code: exitOK}
		}
		return usageErrorf("%v", err)
	}
	if fs.NArg() != 1 {
		return usageErrorf("Usage: gotape run [flags] <file|->")
	}

	cfg := interpreter.DefaultConfig()
	cfg.TapeSize = *tapeSizeFlag
	eof, err := interpreter.ParseEOFPolicy(*eofFlag)
	if err != nil {
		return usageErrorf("%v", err)
	}
	cfg.EOF = eof
	if err := cfg.Validate(); err != nil {
		return usageErrorf("%v", err)
	}

	logger, closeLog, err := c.buildLogger(*logLevelFlag, *logFormatFlag, *logFileFlag)
	if err != nil {
		return err
	}
	defer closeLog()
	cfg.Logging.Logger = logger

	if *traceFlag {
		shutdown, err := setupTelemetry(c.stderr, cfg.Observability)
		if err != nil {
			return err
		}
		defer func() { _ = shutdown(context.Background()) }()
	}

	filename := fs.Arg(0)
	prog, err := c.loadProgram(filename)
	if err != nil {
		return err
	}

	input, closeInput, err := c.resolveInput(*inputFlag, filename)
	if err != nil {
		return err
	}
	defer closeInput()

	ctx := context.Background()
	if *timeoutFlag > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeoutFlag)
		defer cancel()
	}

	interp, err := interpreter.New(cfg)
	if err != nil {
		return err
	}

	summary, runErr := interp.Run(ctx, prog, input, c.stdout)
	if *statsFlag && summary != nil {
		fmt.Fprintln(c.stderr, summary.String())
	}
	if runErr != nil {
		if errors.Is(runErr, context.DeadlineExceeded) {
			return failuref("Run timed out after %s: %v", *timeoutFlag, runErr)
		}
		return failuref("Runtime error: %v", runErr)
	}
	return nil
}

// resolveInput picks the byte stream for input instructions. A program read
// from stdin leaves no stdin for input, so it gets an empty stream unless
// --input is set.
func (c *cli) resolveInput(inputPath, programPath string) (io.Reader, func(), error) {
	if inputPath != "" {
		f, err := os.Open(inputPath)
		if err != nil {
			return nil, nil, err
		}
		return f, func() { _ = f.Close() }, nil
	}
	if programPath == "-" {
		return strings.NewReader(""), func() {}, nil
	}
	return c.stdin, func() {}, nil
}

// buildLogger fans records out to stderr and, when logFile is set, to a JSON
// file. With the level off, only the file is written, at info.
func (c *cli) buildLogger(levelName, format, logFile string) (interpreter.Logger, func(), error) {
	level, err := interpreter.ParseLogLevel(levelName)
	if err != nil {
		return nil, nil, usageErrorf("%v", err)
	}
	toStderr := level != interpreter.LogLevelOff
	if !toStderr && logFile == "" {
		return &interpreter.NoOpLogger{}, func() {}, nil
	}
	if !toStderr {
		level = interpreter.LogLevelInfo
	}

	var handlers []slog.Handler
	if toStderr {
		switch strings.ToLower(format) {
		case "text":
			handlers = append(handlers, interpreter.TextHandler(level, c.stderr))
		case "json":
			handlers = append(handlers, interpreter.JSONHandler(level, c.stderr))
		default:
			return nil, nil, usageErrorf("Unknown --log-format %q (expected text|json)", format)
		}
	}

	closeFn := func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		handlers = append(handlers, interpreter.JSONHandler(level, f))
		closeFn = func() { _ = f.Close() }
	}

	return interpreter.NewSlogLogger(level, handlers...), closeFn, nil
}
