package bench

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	recipediff "github.com/jamesainslie/go-recipediff"
	"github.com/jamesainslie/go-recipediff/diff"
	"github.com/jamesainslie/go-recipediff/hints"
)

// Config holds harness parameters.
type Config struct {
	Policies           []string         `yaml:"policies"`
	ExactMatch         bool             `yaml:"exact_match"`
	IgnoreOtherArgs    bool             `yaml:"ignore_other_args"`
	InterSentenceEdges bool             `yaml:"inter_sentence_edges"`
	CountPredicates    bool             `yaml:"count_predicates"`
	StopOnError        bool             `yaml:"stop_on_error"`
	Lexicon            string           `yaml:"lexicon"`
	Classifier         ClassifierConfig `yaml:"classifier"`
}

// ClassifierConfig points at an ONNX ingredient classifier.
type ClassifierConfig struct {
	Model     string  `yaml:"model"`
	Threshold float64 `yaml:"threshold"`
	PoolSize  int     `yaml:"pool_size"`
}

// DefaultConfig returns the default harness configuration.
func DefaultConfig() Config {
	return Config{
		Policies:           []string{diff.PolicyEdges.String()},
		InterSentenceEdges: true,
		Classifier: ClassifierConfig{
			Threshold: 0.5,
			PoolSize:  1,
		},
	}
}

// LoadConfig reads the YAML file at path over the defaults, then applies
// RECIPEDIFF_* environment overrides. A .env file in the working directory
// is loaded first if present. An empty path skips the file.
func LoadConfig(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	flag := func(name string, dst *bool) {
		if v, ok := lookup(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				return
			}
			*dst = b
		}
	}

	if v, ok := lookup("RECIPEDIFF_POLICIES"); ok {
		c.Policies = nil
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				c.Policies = append(c.Policies, p)
			}
		}
	}
	flag("RECIPEDIFF_EXACT_MATCH", &c.ExactMatch)
	flag("RECIPEDIFF_IGNORE_OTHER_ARGS", &c.IgnoreOtherArgs)
	flag("RECIPEDIFF_INTER_SENTENCE_EDGES", &c.InterSentenceEdges)
	flag("RECIPEDIFF_COUNT_PREDICATES", &c.CountPredicates)
	flag("RECIPEDIFF_STOP_ON_ERROR", &c.StopOnError)
	if v, ok := lookup("RECIPEDIFF_LEXICON"); ok {
		c.Lexicon = v
	}
	if v, ok := lookup("RECIPEDIFF_CLASSIFIER_MODEL"); ok {
		c.Classifier.Model = v
	}
	if v, ok := lookup("RECIPEDIFF_CLASSIFIER_THRESHOLD"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("RECIPEDIFF_CLASSIFIER_THRESHOLD: %w", err))
		} else {
			c.Classifier.Threshold = f
		}
	}
	if v, ok := lookup("RECIPEDIFF_CLASSIFIER_POOL_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("RECIPEDIFF_CLASSIFIER_POOL_SIZE: %w", err))
		} else {
			c.Classifier.PoolSize = n
		}
	}
	return errors.Join(errs...)
}

// ParsedPolicies resolves the policy names.
func (c Config) ParsedPolicies() ([]diff.Policy, error) {
	out := make([]diff.Policy, 0, len(c.Policies))
	for _, name := range c.Policies {
		p, err := diff.ParsePolicy(name)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Hints builds the configured provider: the classifier when a model is set,
// falling back to the lexicon for locations, or the lexicon alone. It
// returns nil when neither is configured.
func (c Config) Hints() (hints.Provider, error) {
	var lex *hints.Lexicon
	if c.Lexicon != "" {
		var err error
		lex, err = hints.LoadLexicon(c.Lexicon)
		if err != nil {
			return nil, err
		}
	}

	if c.Classifier.Model == "" {
		if lex == nil {
			return nil, nil
		}
		return lex, nil
	}

	opts := []hints.ClassifierOption{
		hints.WithThreshold(c.Classifier.Threshold),
		hints.WithPoolSize(c.Classifier.PoolSize),
	}
	if lex != nil {
		opts = append(opts, hints.WithFallback(lex))
	}
	clf, err := hints.NewClassifier(c.Classifier.Model, opts...)
	if err != nil {
		return nil, err
	}
	return clf, nil
}

// Options translates the comparison flags into evaluator options.
func (c Config) Options() []recipediff.Option {
	return []recipediff.Option{
		recipediff.WithExactMatch(c.ExactMatch),
		recipediff.WithIgnoreOtherArgs(c.IgnoreOtherArgs),
		recipediff.WithInterSentenceEdges(c.InterSentenceEdges),
		recipediff.WithPredicateCounts(c.CountPredicates),
	}
}
