// Package config turns viper state into validated CLI settings.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/starfeel/star/internal/tokenizer"
)

// EnvPrefix is the environment variable prefix, e.g. STAR_SERVE_ADDR.
const EnvPrefix = "STAR"

// FileName is the config file looked up in the home directory.
const FileName = ".star"

type TokenizerSettings struct {
	Backend   string `yaml:"backend" mapstructure:"backend"`
	MecabPath string `yaml:"mecab_path" mapstructure:"mecab_path"`
}

type AnalysisSettings struct {
	// Lexicon is a path to an analysis document; empty uses the embedded one.
	Lexicon string `yaml:"lexicon" mapstructure:"lexicon"`
}

type ServeSettings struct {
	Addr        string   `yaml:"addr" mapstructure:"addr"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`

	// MaxBatch caps texts per batch request; 0 uses the server default.
	MaxBatch int `yaml:"max_batch" mapstructure:"max_batch"`
}

type BatchSettings struct {
	// Workers <= 0 means one per CPU.
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// Settings is the effective CLI configuration.
type Settings struct {
	Debug     bool              `yaml:"debug" mapstructure:"debug"`
	Tokenizer TokenizerSettings `yaml:"tokenizer" mapstructure:"tokenizer"`
	Analysis  AnalysisSettings  `yaml:"analysis" mapstructure:"analysis"`
	Serve     ServeSettings     `yaml:"serve" mapstructure:"serve"`
	Batch     BatchSettings     `yaml:"batch" mapstructure:"batch"`
}

// SetDefaults registers default values and the environment mapping on v.
func SetDefaults(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("debug", false)
	v.SetDefault("tokenizer.backend", tokenizer.BackendAuto)
	v.SetDefault("tokenizer.mecab_path", "")
	v.SetDefault("analysis.lexicon", "")
	v.SetDefault("serve.addr", ":8080")
	v.SetDefault("serve.cors_origins", []string{"*"})
	v.SetDefault("serve.max_batch", 1000)
	v.SetDefault("batch.workers", 0)
}

// Load reads the settings from v and validates them.
func Load(v *viper.Viper) (Settings, error) {
	s := Settings{
		Debug: v.GetBool("debug"),
		Tokenizer: TokenizerSettings{
			Backend:   strings.ToLower(strings.TrimSpace(v.GetString("tokenizer.backend"))),
			MecabPath: v.GetString("tokenizer.mecab_path"),
		},
		Analysis: AnalysisSettings{
			Lexicon: v.GetString("analysis.lexicon"),
		},
		Serve: ServeSettings{
			Addr:        v.GetString("serve.addr"),
			CORSOrigins: v.GetStringSlice("serve.cors_origins"),
			MaxBatch:    v.GetInt("serve.max_batch"),
		},
		Batch: BatchSettings{
			Workers: v.GetInt("batch.workers"),
		},
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate reports every invalid setting at once.
func (s Settings) Validate() error {
	var errs []error
	switch s.Tokenizer.Backend {
	case tokenizer.BackendAuto, tokenizer.BackendKagome, tokenizer.BackendMecab, tokenizer.BackendNone:
	default:
		errs = append(errs, fmt.Errorf("tokenizer.backend %q is not one of auto, %s", s.Tokenizer.Backend, strings.Join(tokenizer.Backends, ", ")))
	}
	if strings.TrimSpace(s.Serve.Addr) == "" {
		errs = append(errs, errors.New("serve.addr must not be empty"))
	}
	if s.Serve.MaxBatch < 0 {
		errs = append(errs, fmt.Errorf("serve.max_batch must be >= 0, got %d", s.Serve.MaxBatch))
	}
	if s.Batch.Workers < 0 {
		errs = append(errs, fmt.Errorf("batch.workers must be >= 0, got %d", s.Batch.Workers))
	}
	for _, o := range s.Serve.CORSOrigins {
		if strings.TrimSpace(o) == "" {
			errs = append(errs, errors.New("serve.cors_origins contains an empty origin"))
			break
		}
	}
	return errors.Join(errs...)
}

// DefaultFile is the commented config written by `star config init`.
const DefaultFile = `# star configuration
# Every key can also be set through the environment, e.g. STAR_SERVE_ADDR=:9090

# Print diagnostics ([tokenizer], [analyzer], [serve], [batch]) to stderr
debug: false

tokenizer:
  backend: auto        # auto, kagome, mecab or none (keyword-only)
  mecab_path: ""       # mecab binary; empty searches PATH

analysis:
  lexicon: ""          # analysis document (YAML); empty uses the built-in one

serve:
  addr: ":8080"
  cors_origins:
    - "*"
  max_batch: 1000      # texts per batch request

batch:
  workers: 0           # 0 uses one worker per CPU
`
