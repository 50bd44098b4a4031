package interpreter

import (
	"fmt"
	"strings"

	"github.com/seuros/gopher-tape/src/parser"
)

// DefaultTapeSize is the number of cells on the tape unless configured.
const DefaultTapeSize = 30000

// EOFPolicy decides what an input instruction does when the input stream
// is exhausted.
type EOFPolicy int

const (
	// EOFUnchanged leaves the current cell as it was.
	EOFUnchanged EOFPolicy = iota
	// EOFZero stores 0 in the current cell.
	EOFZero
	// EOFMax stores 255 in the current cell.
	EOFMax
	// EOFError stops the run with ErrInputExhausted.
	EOFError
)

// String returns the flag spelling of the policy.
func (p EOFPolicy) String() string {
	switch p {
	case EOFUnchanged:
		return "unchanged"
	case EOFZero:
		return "zero"
	case EOFMax:
		return "max"
	case EOFError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseEOFPolicy parses the flag spelling of a policy.
func ParseEOFPolicy(s string) (EOFPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unchanged", "keep":
		return EOFUnchanged, nil
	case "zero", "0":
		return EOFZero, nil
	case "max", "255", "-1":
		return EOFMax, nil
	case "error", "fail":
		return EOFError, nil
	default:
		return EOFUnchanged, fmt.Errorf("unknown EOF policy %q (expected unchanged|zero|max|error)", s)
	}
}

// Config holds configuration options for the interpreter
type Config struct {
	// TapeSize is the fixed number of cells. Default: 30000
	TapeSize int

	// EOF selects the input behavior at end of stream. Default: EOFUnchanged
	EOF EOFPolicy

	// ParseCacheSize bounds the programs Interpret keeps parsed.
	// Default: 256. Negative disables the cache.
	ParseCacheSize int

	// Observability holds telemetry configuration
	Observability *ObservabilityConfig

	// Logging holds logging configuration
	Logging *LoggingConfig
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		TapeSize:       DefaultTapeSize,
		EOF:            EOFUnchanged,
		ParseCacheSize: parser.DefaultCacheSize,
		Observability:  DefaultObservabilityConfig(),
		Logging:        DefaultLoggingConfig(),
	}
}

// Validate reports configuration values the interpreter cannot run with.
func (c *Config) Validate() error {
	if c.TapeSize <= 0 {
		return fmt.Errorf("tape size must be positive, got %d", c.TapeSize)
	}
	switch c.EOF {
	case EOFUnchanged, EOFZero, EOFMax, EOFError:
	default:
		return fmt.Errorf("invalid EOF policy %d", int(c.EOF))
	}
	return nil
}

// withDefaults fills the nil sub-configurations.
func (c *Config) withDefaults() *Config {
	cfg := *c
	if cfg.Observability == nil {
		cfg.Observability = DefaultObservabilityConfig()
	}
	if cfg.Logging == nil {
		cfg.Logging = DefaultLoggingConfig()
	} else {
		logging := *cfg.Logging
		cfg.Logging = &logging
	}
	if cfg.Logging.Logger == nil {
		cfg.Logging.Logger = &NoOpLogger{}
	}
	return &cfg
}
