package solver

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/graphsat/flow"
)

// Config is the file form of Options.
//
//	max_rounds: 0
//	learn_propagations: true
//	flow_algorithm: dinic        # or edmonds-karp
//	acyclic_flow_witness: false
//	log_level: warning
type Config struct {
	MaxRounds          int    `yaml:"max_rounds"`
	LearnPropagations  bool   `yaml:"learn_propagations"`
	FlowAlgorithm      string `yaml:"flow_algorithm"`
	AcyclicFlowWitness bool   `yaml:"acyclic_flow_witness"`
	LogLevel           string `yaml:"log_level"`
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "reading solver config")
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "parsing %s", path)
	}

	return cfg, nil
}

// ParseConfig decodes YAML into a Config. Unknown keys are rejected; an
// empty document is the zero Config.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "decoding solver config")
	}
	if cfg.MaxRounds < 0 {
		return Config{}, errors.Errorf("max_rounds must be >= 0, got %d", cfg.MaxRounds)
	}

	return cfg, nil
}

// Options converts the config into solver options. A non-empty log_level
// installs a stderr logger at that level.
func (c Config) Options() ([]Option, error) {
	alg, err := flow.ParseAlgorithm(c.FlowAlgorithm)
	if err != nil {
		return nil, errors.Wrap(err, "flow_algorithm")
	}
	opts := []Option{
		WithMaxRounds(c.MaxRounds),
		WithLearnPropagations(c.LearnPropagations),
		WithFlowAlgorithm(alg),
		WithAcyclicFlowWitness(c.AcyclicFlowWitness),
	}
	if c.LogLevel != "" {
		lvl, err := logrus.ParseLevel(c.LogLevel)
		if err != nil {
			return nil, errors.Wrap(err, "log_level")
		}
		l := logrus.New()
		l.SetLevel(lvl)
		opts = append(opts, WithLogger(l))
	}

	return opts, nil
}
