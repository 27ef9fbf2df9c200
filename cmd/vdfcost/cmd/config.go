package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spacemeshos/smutil"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/vdfcost/config"
)

const (
	defaultConfigFileName = "config.toml"
	defaultLogLevel       = "info"
)

var (
	defaultHomeDir    = filepath.Join(smutil.GetUserHomeDirectory(), ".vdfcost")
	defaultConfigFile = filepath.Join(defaultHomeDir, defaultConfigFileName)
)

// flagValues holds the flags that are not part of config.Config.
var flagValues struct {
	configFile string
	logLevel   string
	autoMemory float64
}

func setFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	flags := cmd.PersistentFlags()

	flags.StringVar(&flagValues.configFile, "config", "",
		fmt.Sprintf("path to configuration file (default %s, if it exists)", defaultConfigFile))
	flags.StringVar(&flagValues.logLevel, "log-level", defaultLogLevel,
		"log level (debug, info, warn, error, dpanic, panic, fatal)")
	flags.Float64Var(&flagValues.autoMemory, "auto-memory", 0,
		"derive the memory bound from this fraction of the available memory (0 to disable)")

	// Protocol params. Bound to viper by their names, which match the mapstructure tags of config.Config.
	flags.Float64("mult-square-ratio", def.MultSquareRatio,
		"cost of a multiplication relative to a squaring")
	flags.Int("modulus-length", def.ModulusLength, "bit length of the group modulus")
	flags.Int64("memory-bound", def.MemoryBound, "memory allowed for precomputed tables, in bits (0 for unbounded)")
	flags.Int("security-level", def.SecurityLevel, "bits of security")
}

// loadConfig resolves the configuration from, in order of precedence: command line flags,
// the configuration file and the defaults.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	vip := viper.New()
	if err := vip.BindPFlags(cmd.Flags()); err != nil {
		return config.Config{}, fmt.Errorf("failed to bind flags: %w", err)
	}

	if err := loadConfigFile(flagValues.configFile, vip); err != nil {
		return config.Config{}, err
	}

	cfg := config.DefaultConfig()
	if err := vip.Unmarshal(&cfg); err != nil {
		return config.Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if flagValues.autoMemory > 0 {
		bound, err := config.MemoryBoundFromAvailable(flagValues.autoMemory)
		if err != nil {
			return config.Config{}, err
		}
		cfg.MemoryBound = bound
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func loadConfigFile(fileLocation string, vip *viper.Viper) error {
	if fileLocation == "" {
		if _, err := os.Stat(defaultConfigFile); errors.Is(err, os.ErrNotExist) {
			return nil
		}
		fileLocation = defaultConfigFile
	}

	vip.SetConfigFile(smutil.GetCanonicalPath(fileLocation))
	if err := vip.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	zapCfg := zap.Config{
		Level:    zap.NewAtomicLevelAt(lvl),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "T",
			LevelKey:       "L",
			NameKey:        "N",
			MessageKey:     "M",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	return zapCfg.Build()
}
