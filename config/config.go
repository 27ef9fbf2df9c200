package config

import (
	"fmt"
	"math"

	"github.com/spacemeshos/vdfcost/shared"
)

const (
	// DefaultMultSquareRatio assumes a multiplication has 1.2 times the latency of a squaring,
	// with 4 multiplications running in parallel.
	DefaultMultSquareRatio = 1.2 / 4

	DefaultModulusLength = 2048

	// DefaultMemoryBound allows 8 MB of precomputed data. The unit is the one of ModulusLength (bits).
	DefaultMemoryBound = 8 * 8 * (1 << 20)

	DefaultSecurityLevel = 128

	// DefaultWork is 2^39 squarings, around 9 minutes of evaluation at 1ns per squaring.
	DefaultWork = 1 << 39
)

// Config holds the parameters of the prover cost model. It is treated as an immutable value
// and passed by value to every function that needs it.
type Config struct {
	MultSquareRatio float64 `mapstructure:"mult-square-ratio"`
	ModulusLength   int     `mapstructure:"modulus-length"`

	// MemoryBound is the space allowed for precomputed tables; 0 means unbounded.
	MemoryBound   int64 `mapstructure:"memory-bound"`
	SecurityLevel int   `mapstructure:"security-level"`
}

func DefaultConfig() Config {
	return Config{
		MultSquareRatio: DefaultMultSquareRatio,
		ModulusLength:   DefaultModulusLength,
		MemoryBound:     DefaultMemoryBound,
		SecurityLevel:   DefaultSecurityLevel,
	}
}

// ValidationError describes a single invalid Config field.
type ValidationError struct {
	Param    string
	Expected string
	Given    string
}

func (err ValidationError) Error() string {
	return fmt.Sprintf("invalid `%s`; expected: %s, given: %s", err.Param, err.Expected, err.Given)
}

func (err ValidationError) Unwrap() error {
	return shared.ErrInvalidConfig
}

func (cfg Config) Validate() error {
	if math.IsNaN(cfg.MultSquareRatio) || math.IsInf(cfg.MultSquareRatio, 0) || cfg.MultSquareRatio <= 0 {
		return ValidationError{
			Param:    "MultSquareRatio",
			Expected: "> 0",
			Given:    fmt.Sprintf("%v", cfg.MultSquareRatio),
		}
	}

	if cfg.ModulusLength <= 0 {
		return ValidationError{
			Param:    "ModulusLength",
			Expected: "> 0",
			Given:    fmt.Sprintf("%d", cfg.ModulusLength),
		}
	}

	if cfg.MemoryBound < 0 {
		return ValidationError{
			Param:    "MemoryBound",
			Expected: ">= 0",
			Given:    fmt.Sprintf("%d", cfg.MemoryBound),
		}
	}

	if cfg.SecurityLevel <= 0 {
		return ValidationError{
			Param:    "SecurityLevel",
			Expected: "> 0",
			Given:    fmt.Sprintf("%d", cfg.SecurityLevel),
		}
	}

	return nil
}

// Bounded reports whether the precomputed table size is limited by MemoryBound.
func (cfg Config) Bounded() bool {
	return cfg.MemoryBound > 0
}
