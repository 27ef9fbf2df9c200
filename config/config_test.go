package config_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/vdfcost/config"
	"github.com/spacemeshos/vdfcost/shared"
)

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()
	cfg := config.DefaultConfig()

	require.NoError(t, cfg.Validate())
	require.Equal(t, 0.3, cfg.MultSquareRatio)
	require.Equal(t, 2048, cfg.ModulusLength)
	require.Equal(t, int64(67108864), cfg.MemoryBound)
	require.Equal(t, 128, cfg.SecurityLevel)
	require.True(t, cfg.Bounded())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*config.Config)
		param  string
	}{
		{"zero ratio", func(c *config.Config) { c.MultSquareRatio = 0 }, "MultSquareRatio"},
		{"negative ratio", func(c *config.Config) { c.MultSquareRatio = -0.3 }, "MultSquareRatio"},
		{"NaN ratio", func(c *config.Config) { c.MultSquareRatio = math.NaN() }, "MultSquareRatio"},
		{"infinite ratio", func(c *config.Config) { c.MultSquareRatio = math.Inf(1) }, "MultSquareRatio"},
		{"zero modulus", func(c *config.Config) { c.ModulusLength = 0 }, "ModulusLength"},
		{"negative modulus", func(c *config.Config) { c.ModulusLength = -2048 }, "ModulusLength"},
		{"negative memory bound", func(c *config.Config) { c.MemoryBound = -1 }, "MemoryBound"},
		{"zero security level", func(c *config.Config) { c.SecurityLevel = 0 }, "SecurityLevel"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.DefaultConfig()
			tc.modify(&cfg)

			err := cfg.Validate()
			require.ErrorIs(t, err, shared.ErrInvalidConfig)

			var verr config.ValidationError
			require.True(t, errors.As(err, &verr))
			require.Equal(t, tc.param, verr.Param)
		})
	}
}

func TestValidate_UnboundedMemory(t *testing.T) {
	t.Parallel()
	cfg := config.DefaultConfig()
	cfg.MemoryBound = 0

	require.NoError(t, cfg.Validate())
	require.False(t, cfg.Bounded())
}

func TestValidationError_Message(t *testing.T) {
	t.Parallel()
	cfg := config.DefaultConfig()
	cfg.SecurityLevel = -1

	require.EqualError(t, cfg.Validate(), "invalid `SecurityLevel`; expected: > 0, given: -1")
}

func TestMemoryBoundFromAvailable(t *testing.T) {
	t.Parallel()

	// Sanity test.
	bound, err := config.MemoryBoundFromAvailable(0.5)
	require.NoError(t, err)
	require.Greater(t, bound, int64(0))

	_, err = config.MemoryBoundFromAvailable(0)
	require.ErrorIs(t, err, shared.ErrInvalidConfig)

	_, err = config.MemoryBoundFromAvailable(1.5)
	require.ErrorIs(t, err, shared.ErrInvalidConfig)
}
