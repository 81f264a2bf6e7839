package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"galab/internal/eval"
)

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid config")

// Config is the root configuration structure
type Config struct {
	Seed        int64              `yaml:"seed"`
	GA          GAConfig           `yaml:"ga"`
	Logging     LogConfig          `yaml:"logging"`
	Storage     StorageConfig      `yaml:"storage"`
	Experiments []ExperimentConfig `yaml:"experiments"`
}

// GAConfig defines genetic algorithm parameters shared by all experiments
type GAConfig struct {
	Dimension     int     `yaml:"dimension"`
	Population    int     `yaml:"population"`     // mu
	LambdaRatio   float64 `yaml:"lambda_ratio"`   // lambda = int(population * ratio)
	Generations   int     `yaml:"generations"`
	CrossoverRate float64 `yaml:"crossover_rate"` // cxpb
	MutationRate  float64 `yaml:"mutation_rate"`  // mutpb
	TournamentK   int     `yaml:"tournament_k"`
	HallOfFame    int     `yaml:"hall_of_fame"`
	Goal          string  `yaml:"goal"`      // maximize|minimize
	Function      string  `yaml:"function"`  // rastrigin|sphere|ackley|rosenbrock
	Crossover     string  `yaml:"crossover"` // onepoint|uniform
}

// InheritGenerations marks an experiment that runs GAConfig.Generations
const InheritGenerations = -1

// ExperimentConfig names one run variant. Empty strings and a zero Seed
// inherit from the root config. Generations inherits only when it is
// InheritGenerations, which is also what an omitted YAML key decodes to.
type ExperimentConfig struct {
	Name        string `yaml:"name"`
	Label       string `yaml:"label"`
	Init        string `yaml:"init"`     // wide|narrow
	Mutation    string `yaml:"mutation"` // elementwise|single|gaussian
	Function    string `yaml:"function"`
	Generations int    `yaml:"generations"`
	Seed        int64  `yaml:"seed"`
}

// UnmarshalYAML keeps an explicit "generations: 0" apart from an omitted key
func (e *ExperimentConfig) UnmarshalYAML(node *yaml.Node) error {
	type plain ExperimentConfig
	p := plain{Generations: InheritGenerations}
	if err := node.Decode(&p); err != nil {
		return err
	}
	*e = ExperimentConfig(p)
	return nil
}

// LogConfig defines logging parameters
type LogConfig struct {
	Quiet     bool   `yaml:"quiet"`
	Level     string `yaml:"level"`
	Dir       string `yaml:"dir"`
	Plot      string `yaml:"plot"` // png|svg|pdf, "none" disables plotting
	TopNDebug int    `yaml:"topn_debug"`
}

// StorageConfig selects the run store backend
type StorageConfig struct {
	Kind string `yaml:"kind"` // memory|sqlite
	Path string `yaml:"path"`
}

// Load reads a YAML config file and returns a Config
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Keys present in the file overwrite the defaults, explicit zeros included
	cfg := baseConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// Apply defaults
	applyDefaults(cfg)
	return cfg, nil
}

// Default returns the configuration of the reference experiments
func Default() *Config {
	cfg := baseConfig()
	applyDefaults(cfg)
	return cfg
}

// baseConfig holds the numeric defaults a config file decodes over
func baseConfig() *Config {
	return &Config{
		Seed: 1337,
		GA: GAConfig{
			Dimension:     100,
			Population:    100,
			LambdaRatio:   0.8,
			Generations:   1000,
			CrossoverRate: 0.3,
			MutationRate:  0.6,
			TournamentK:   4,
			HallOfFame:    3,
		},
		Logging: LogConfig{TopNDebug: 3},
	}
}

func applyDefaults(cfg *Config) {
	if cfg.GA.Goal == "" {
		cfg.GA.Goal = "maximize"
	}
	if cfg.GA.Function == "" {
		cfg.GA.Function = "rastrigin"
	}
	if cfg.GA.Crossover == "" {
		cfg.GA.Crossover = "onepoint"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Dir == "" {
		cfg.Logging.Dir = "runs"
	}
	if cfg.Logging.Plot == "" {
		cfg.Logging.Plot = "png"
	}
	if cfg.Storage.Kind == "" {
		cfg.Storage.Kind = "memory"
	}
	if cfg.Storage.Kind == "sqlite" && cfg.Storage.Path == "" {
		cfg.Storage.Path = "runs/galab.db"
	}
	if len(cfg.Experiments) == 0 {
		cfg.Experiments = []ExperimentConfig{
			{Name: "original", Label: "Original algorithm", Init: "wide", Mutation: "elementwise", Generations: InheritGenerations},
			{Name: "modified", Label: "Modified algorithm", Init: "narrow", Mutation: "single", Generations: InheritGenerations},
		}
	}
	for i := range cfg.Experiments {
		e := &cfg.Experiments[i]
		if e.Label == "" {
			e.Label = e.Name
		}
		if e.Init == "" {
			e.Init = "wide"
		}
		if e.Mutation == "" {
			e.Mutation = "elementwise"
		}
		if e.Function == "" {
			e.Function = cfg.GA.Function
		}
		if e.Generations == InheritGenerations {
			e.Generations = cfg.GA.Generations
		}
		if e.Seed == 0 {
			e.Seed = cfg.Seed
		}
	}
}

// Lambda returns the number of offspring per generation
func (c *Config) Lambda() int {
	return int(float64(c.GA.Population) * c.GA.LambdaRatio)
}

// Weight returns +1 when fitness is maximised and -1 when minimised
func (c *Config) Weight() float64 {
	if c.GA.Goal == "minimize" {
		return -1
	}
	return 1
}

// Experiment returns the experiment with the given name
func (c *Config) Experiment(name string) (ExperimentConfig, bool) {
	for _, e := range c.Experiments {
		if e.Name == name {
			return e, true
		}
	}
	return ExperimentConfig{}, false
}

// Validate rejects configurations that cannot run
func (c *Config) Validate() error {
	if c.GA.Dimension <= 0 {
		return fmt.Errorf("%w: dimension must be positive, got %d", ErrInvalidConfig, c.GA.Dimension)
	}
	if c.GA.Population < 0 {
		return fmt.Errorf("%w: population must not be negative, got %d", ErrInvalidConfig, c.GA.Population)
	}
	if c.GA.LambdaRatio < 0 {
		return fmt.Errorf("%w: lambda_ratio must not be negative, got %g", ErrInvalidConfig, c.GA.LambdaRatio)
	}
	if c.GA.CrossoverRate < 0 || c.GA.MutationRate < 0 || c.GA.CrossoverRate+c.GA.MutationRate > 1 {
		return fmt.Errorf("%w: crossover_rate + mutation_rate must lie in [0, 1]", ErrInvalidConfig)
	}
	if c.GA.TournamentK < 1 {
		return fmt.Errorf("%w: tournament_k must be at least 1", ErrInvalidConfig)
	}
	if c.GA.HallOfFame < 0 {
		return fmt.Errorf("%w: hall_of_fame must not be negative", ErrInvalidConfig)
	}
	if c.GA.Goal != "maximize" && c.GA.Goal != "minimize" {
		return fmt.Errorf("%w: unknown goal %q", ErrInvalidConfig, c.GA.Goal)
	}
	if c.GA.Crossover != "onepoint" && c.GA.Crossover != "uniform" {
		return fmt.Errorf("%w: unknown crossover %q", ErrInvalidConfig, c.GA.Crossover)
	}
	switch c.Storage.Kind {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("%w: unknown storage kind %q", ErrInvalidConfig, c.Storage.Kind)
	}

	seen := make(map[string]bool)
	for _, e := range c.Experiments {
		if e.Name == "" {
			return fmt.Errorf("%w: experiment without a name", ErrInvalidConfig)
		}
		if seen[e.Name] {
			return fmt.Errorf("%w: duplicate experiment %q", ErrInvalidConfig, e.Name)
		}
		seen[e.Name] = true
		if e.Init != "wide" && e.Init != "narrow" {
			return fmt.Errorf("%w: experiment %s: unknown init %q", ErrInvalidConfig, e.Name, e.Init)
		}
		switch e.Mutation {
		case "elementwise", "single", "gaussian":
		default:
			return fmt.Errorf("%w: experiment %s: unknown mutation %q", ErrInvalidConfig, e.Name, e.Mutation)
		}
		if _, err := eval.Lookup(e.Function); err != nil {
			return fmt.Errorf("%w: experiment %s: %v", ErrInvalidConfig, e.Name, err)
		}
		if e.Generations < 0 {
			return fmt.Errorf("%w: experiment %s: generations must not be negative", ErrInvalidConfig, e.Name)
		}
	}
	return nil
}
