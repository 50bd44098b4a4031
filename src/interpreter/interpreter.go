package interpreter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/seuros/gopher-tape/src/ast"
	"github.com/seuros/gopher-tape/src/parser"
)

// Interpreter executes parsed programs. It holds only configuration and
// telemetry instruments, so one Interpreter may run programs concurrently;
// every run gets its own tape.
type Interpreter struct {
	config        *Config
	logger        Logger
	observability *observabilityInstruments
	cache         *parser.Cache
}

// New creates an Interpreter. A nil config means DefaultConfig().
func New(config *Config) (*Interpreter, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	config = config.withDefaults()

	interp := &Interpreter{
		config:        config,
		logger:        config.Logging.Logger,
		observability: initObservability(config.Observability),
	}
	if config.ParseCacheSize >= 0 {
		interp.cache = parser.NewCache(config.ParseCacheSize)
	}
	return interp, nil
}

// Config returns the configuration the interpreter runs with.
func (i *Interpreter) Config() *Config {
	return i.config
}

// Run executes prog on a fresh zeroed tape.
func (i *Interpreter) Run(ctx context.Context, prog *ast.Program, in io.Reader, out io.Writer) (*Summary, error) {
	return i.Execute(ctx, prog, NewTape(i.config.TapeSize), in, out)
}

// Execute runs prog against tape, reading input bytes from in and writing
// output bytes to out. The returned summary is never nil; on failure it
// describes the run up to the failing instruction.
func (i *Interpreter) Execute(ctx context.Context, prog *ast.Program, tape *Tape, in io.Reader, out io.Writer) (*Summary, error) {
	ctx, spanCtx := i.observability.startRunSpan(ctx, prog, tape.Len(), i.config.Observability)

	if i.logger.IsDebugEnabled() {
		i.logger.Debug("Run started",
			"program", prog.Name,
			"instructions", prog.Len(),
			"tape_size", tape.Len(),
			"eof", i.config.EOF.String())
	}

	if out == nil {
		out = io.Discard
	}

	m := &machine{
		ctx:   ctx,
		done:  ctx.Done(),
		tape:  tape,
		in:    newByteSource(in),
		out:   bufio.NewWriter(out),
		eof:   i.config.EOF,
		stats: &Summary{TapeSize: tape.Len()},
	}

	start := time.Now()
	err := m.exec(prog.Body)
	if flushErr := m.out.Flush(); flushErr != nil && err == nil {
		err = &RuntimeError{Err: fmt.Errorf("write output: %w", flushErr), Pointer: tape.Pointer(), Instruction: "output"}
	}

	summary := m.stats
	summary.ExecutionTime = time.Since(start)
	summary.Pointer = tape.Pointer()
	summary.MaxPointer = tape.MaxPointer()

	i.observability.finishRunSpan(spanCtx, summary, err, i.config.Observability)

	if err != nil {
		i.logger.Error("Run failed", "program", prog.Name, "error", err, "instructions", summary.Instructions)
		return summary, err
	}
	if i.logger.IsInfoEnabled() {
		i.logger.Info("Run finished",
			"program", prog.Name,
			"instructions", summary.Instructions,
			"bytes_read", summary.BytesRead,
			"bytes_written", summary.BytesWritten,
			"duration", summary.ExecutionTime)
	}
	return summary, nil
}

// Interpret parses source and runs it. Parsed programs are cached per
// interpreter.
func (i *Interpreter) Interpret(ctx context.Context, source string, in io.Reader, out io.Writer) (*Summary, error) {
	var prog *ast.Program
	var err error
	if i.cache != nil {
		prog, err = i.cache.Parse(source)
	} else {
		prog, err = parser.Parse(source)
	}
	if err != nil {
		return nil, err
	}
	return i.Run(ctx, prog, in, out)
}

// ParseCache returns the cache used by Interpret, or nil when disabled.
func (i *Interpreter) ParseCache() *parser.Cache {
	return i.cache
}

// Run executes prog with the default configuration.
func Run(ctx context.Context, prog *ast.Program, in io.Reader, out io.Writer) (*Summary, error) {
	interp, err := New(nil)
	if err != nil {
		return nil, err
	}
	return interp.Run(ctx, prog, in, out)
}

// Interpret parses and runs source with the default configuration.
func Interpret(ctx context.Context, source string, in io.Reader, out io.Writer) (*Summary, error) {
	interp, err := New(nil)
	if err != nil {
		return nil, err
	}
	return interp.Interpret(ctx, source, in, out)
}

// machine is the state of one run.
type machine struct {
	ctx   context.Context
	done  <-chan struct{}
	tape  *Tape
	in    io.ByteReader
	out   *bufio.Writer
	eof   EOFPolicy
	stats *Summary
}

func (m *machine) exec(nodes []ast.Node) error {
	for _, node := range nodes {
		m.stats.Instructions++

		switch n := node.(type) {
		case *ast.IncrNode:
			m.tape.Incr()
		case *ast.DecrNode:
			m.tape.Decr()
		case *ast.ShiftRightNode:
			if err := m.tape.Right(); err != nil {
				return m.fail(n, err)
			}
		case *ast.ShiftLeftNode:
			if err := m.tape.Left(); err != nil {
				return m.fail(n, err)
			}
		case *ast.OutputNode:
			if err := m.out.WriteByte(m.tape.Get()); err != nil {
				return m.fail(n, fmt.Errorf("write output: %w", err))
			}
			m.stats.BytesWritten++
		case *ast.InputNode:
			if err := m.input(); err != nil {
				return m.fail(n, err)
			}
		case *ast.LoopNode:
			for m.tape.Get() != 0 {
				if err := m.checkCancelled(); err != nil {
					return m.fail(n, err)
				}
				m.stats.LoopIterations++
				if err := m.exec(n.Body); err != nil {
					return err
				}
			}
		default:
			return m.fail(node, fmt.Errorf("unsupported node %T", node))
		}
	}
	return nil
}

// input reads one byte into the current cell, applying the EOF policy at
// end of stream. Buffered output is flushed first so prompts appear before
// the read blocks.
func (m *machine) input() error {
	if err := m.out.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	b, err := m.in.ReadByte()
	switch {
	case err == nil:
		m.tape.Set(b)
		m.stats.BytesRead++
		return nil
	case errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF):
		m.stats.EOFReached = true
		switch m.eof {
		case EOFZero:
			m.tape.Set(0)
		case EOFMax:
			m.tape.Set(0xff)
		case EOFError:
			return ErrInputExhausted
		}
		return nil
	default:
		return fmt.Errorf("read input: %w", err)
	}
}

func (m *machine) checkCancelled() error {
	if m.done == nil {
		return nil
	}
	select {
	case <-m.done:
		return m.ctx.Err()
	default:
		return nil
	}
}

func (m *machine) fail(node ast.Node, err error) error {
	return &RuntimeError{
		Err:         err,
		Pos:         node.Position(),
		Pointer:     m.tape.Pointer(),
		Instruction: node.Name(),
	}
}

// byteSource reads exactly one byte per call from a reader that does not
// implement io.ByteReader itself.
type byteSource struct {
	r   io.Reader
	buf [1]byte
}

func newByteSource(r io.Reader) io.ByteReader {
	if r == nil {
		return &byteSource{r: eofReader{}}
	}
	if br, ok := r.(io.ByteReader); ok {
		return br
	}
	return &byteSource{r: r}
}

func (s *byteSource) ReadByte() (byte, error) {
	if _, err := io.ReadFull(s.r, s.buf[:]); err != nil {
		return 0, err
	}
	return s.buf[0], nil
}

type eofReader struct{}

func (eofReader) Read([]byte) (int, error) { return 0, io.EOF }
