package engine

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/bayes/factor"
)

// Kind names an inference engine.
type Kind string

const (
	// JunctionTree is the exact engine.
	JunctionTree Kind = "junction_tree"
	// Sampling is the likelihood-weighting engine.
	Sampling Kind = "sampling"
)

// Decomposition strategy names.
const (
	StrategyNone     = ""
	StrategyLatent   = "latent"
	StrategySmoothed = "smoothed"
)

// Config selects and tunes an engine.
type Config struct {
	Kind     Kind   `yaml:"kind"`
	LogLevel string `yaml:"log_level"`

	JunctionTree  JunctionTreeConfig  `yaml:"junction_tree"`
	Sampling      SamplingConfig      `yaml:"sampling"`
	Decomposition DecompositionConfig `yaml:"decomposition"`
}

// JunctionTreeConfig tunes the exact engine.
type JunctionTreeConfig struct {
	Precision         string  `yaml:"precision"`
	Concurrency       int     `yaml:"concurrency"`
	EvidenceSmoothing float64 `yaml:"evidence_smoothing"`
}

// SamplingConfig tunes the sampler.
type SamplingConfig struct {
	Samples int   `yaml:"samples"`
	Seed    int64 `yaml:"seed"`
	Workers int   `yaml:"workers"`
}

// DecompositionConfig enables the Transformed decorator.
type DecompositionConfig struct {
	// Strategy is "", "latent" or "smoothed". Empty disables decomposition.
	Strategy string `yaml:"strategy"`
	// MinTableSize is the smallest CPT (in cells) worth decomposing.
	MinTableSize int `yaml:"min_table_size"`
	// Fallback retries with the smoothed strategy when "latent" fails.
	Fallback  bool    `yaml:"fallback"`
	Tolerance float64 `yaml:"tolerance"`
	MaxBasis  int     `yaml:"max_basis"`
}

// DefaultConfig returns the configuration used when nothing is specified.
func DefaultConfig() Config {
	return Config{
		Kind:     JunctionTree,
		LogLevel: "info",
		JunctionTree: JunctionTreeConfig{
			Precision:   factor.Float64.String(),
			Concurrency: 1,
		},
		Sampling: SamplingConfig{
			Samples: 10000,
			Workers: 1,
		},
		Decomposition: DecompositionConfig{
			MinTableSize: 64,
			Tolerance:    1e-3,
		},
	}
}

// LoadConfig loads configuration with priority: env > file > defaults.
// An empty path or a missing file leaves the defaults in place.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := loadConfigFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("engine: load config file: %w", err)
		}
	}

	loadConfigFromEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func loadConfigFromEnv(cfg *Config) {
	if v := os.Getenv("BAYES_KIND"); v != "" {
		cfg.Kind = Kind(v)
	}
	if v := os.Getenv("BAYES_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	// junction tree
	if v := os.Getenv("BAYES_PRECISION"); v != "" {
		cfg.JunctionTree.Precision = v
	}
	if v := os.Getenv("BAYES_CONCURRENCY"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.JunctionTree.Concurrency = i
		}
	}
	if v := os.Getenv("BAYES_EVIDENCE_SMOOTHING"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.JunctionTree.EvidenceSmoothing = f
		}
	}

	// sampling
	if v := os.Getenv("BAYES_SAMPLES"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Sampling.Samples = i
		}
	}
	if v := os.Getenv("BAYES_SEED"); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Sampling.Seed = i
		}
	}
	if v := os.Getenv("BAYES_WORKERS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Sampling.Workers = i
		}
	}

	// decomposition
	if v, ok := os.LookupEnv("BAYES_DECOMPOSITION"); ok {
		cfg.Decomposition.Strategy = v
	}
	if v := os.Getenv("BAYES_MIN_TABLE_SIZE"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Decomposition.MinTableSize = i
		}
	}
	if v := os.Getenv("BAYES_DECOMPOSITION_FALLBACK"); v != "" {
		cfg.Decomposition.Fallback = v == "true" || v == "1"
	}
	if v := os.Getenv("BAYES_TOLERANCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Decomposition.Tolerance = f
		}
	}
	if v := os.Getenv("BAYES_MAX_BASIS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Decomposition.MaxBasis = i
		}
	}
}

// Validate checks that every value is in range. Errors wrap ErrUnknownKind,
// ErrUnknownStrategy or ErrInvalidConfig.
func (c Config) Validate() error {
	switch c.Kind {
	case JunctionTree, Sampling:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, c.Kind)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalidConfig, err)
	}
	if _, err := factor.ParsePrecision(c.JunctionTree.Precision); err != nil {
		return fmt.Errorf("%w: precision: %v", ErrInvalidConfig, err)
	}
	if c.JunctionTree.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be >= 1", ErrInvalidConfig)
	}
	if s := c.JunctionTree.EvidenceSmoothing; s < 0 || s >= 1 {
		return fmt.Errorf("%w: evidence_smoothing must be in [0, 1)", ErrInvalidConfig)
	}
	if c.Sampling.Samples < 1 {
		return fmt.Errorf("%w: samples must be >= 1", ErrInvalidConfig)
	}
	if c.Sampling.Workers < 1 {
		return fmt.Errorf("%w: workers must be >= 1", ErrInvalidConfig)
	}
	switch c.Decomposition.Strategy {
	case StrategyNone, StrategyLatent, StrategySmoothed:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStrategy, c.Decomposition.Strategy)
	}
	if c.Decomposition.MinTableSize < 0 || c.Decomposition.MaxBasis < 0 {
		return fmt.Errorf("%w: min_table_size and max_basis must be >= 0", ErrInvalidConfig)
	}
	if c.Decomposition.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance must be >= 0", ErrInvalidConfig)
	}
	return nil
}

// Logger returns a logrus logger at the configured level (info when the
// level does not parse).
func (c Config) Logger() *logrus.Logger {
	l := logrus.New()
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}
