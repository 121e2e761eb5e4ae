package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"improver/internal/customdict"
	"improver/pkg/options"
)

const (
	// EnvPrefix prefixes the environment variables, e.g. IMPROVER_HTTP_ADDR.
	EnvPrefix = "IMPROVER"

	DefaultHTTPAddr     = ":8080"
	DefaultLogLevel     = "info"
	DefaultLanguage     = "en-US"
	DefaultMaxBodyBytes = 10 * 1024 * 1024 // 10MB
)

// Config holds the configuration of the improver binaries.
type Config struct {
	// Server
	HTTPAddr        string        `validate:"required"`
	MaxBodyBytes    int64         `validate:"gt=0"`
	ShutdownTimeout time.Duration `validate:"gt=0"`

	// Resources. An empty LexiconPath selects the built-in lexicon and an
	// empty DictionaryPath disables spelling correction.
	LexiconPath    string
	DictionaryPath string

	// Redis custom dictionary, disabled when RedisAddr is empty.
	RedisAddr     string
	RedisPassword string
	RedisDB       int    `validate:"min=0"`
	RedisKey      string `validate:"required"`

	// LanguageTool server; the built-in rules are used when the URL is empty.
	LanguageToolURL      string `validate:"omitempty,url"`
	LanguageToolLanguage string `validate:"required"`

	// Pipeline
	LongSentenceWords  int           `validate:"min=1"`
	NegativePolarity   float64       `validate:"min=-1,max=1"`
	ReadabilityMetrics []string      `validate:"dive,oneof=ease grade fog complexity"`
	CallTimeout        time.Duration `validate:"gt=0"`
	NoCorrection       bool

	LogLevel string `validate:"oneof=debug info warn error"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		HTTPAddr:             DefaultHTTPAddr,
		MaxBodyBytes:         DefaultMaxBodyBytes,
		ShutdownTimeout:      10 * time.Second,
		RedisKey:             customdict.DefaultKey,
		LanguageToolLanguage: DefaultLanguage,
		LongSentenceWords:    options.DefaultOptions.LongSentenceWords,
		NegativePolarity:     options.DefaultOptions.NegativePolarity,
		ReadabilityMetrics:   append([]string(nil), options.DefaultOptions.ReadabilityMetrics...),
		CallTimeout:          options.DefaultOptions.CallTimeout,
		LogLevel:             DefaultLogLevel,
	}
}

// Load builds the configuration from defaults, an optional config file
// (--config), IMPROVER_* environment variables and args, in increasing
// precedence.
func Load(args []string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	fs := pflag.NewFlagSet("improver", pflag.ContinueOnError)
	defineFlags(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	populate(v, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func defineFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.String("config", "", "Config file (yaml, json or toml)")
	fs.String("http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.Int64("max-body-bytes", cfg.MaxBodyBytes, "Maximum request body size in bytes")
	fs.Duration("shutdown-timeout", cfg.ShutdownTimeout, "Graceful shutdown timeout")
	fs.String("lexicon", cfg.LexiconPath, "Lexicon file (json or yaml); built-in lexicon when empty")
	fs.String("dictionary", cfg.DictionaryPath, "Word frequency dictionary; spelling correction is off when empty")
	fs.String("redis-addr", cfg.RedisAddr, "Redis address for the custom dictionary")
	fs.String("redis-password", cfg.RedisPassword, "Redis password")
	fs.Int("redis-db", cfg.RedisDB, "Redis database")
	fs.String("redis-key", cfg.RedisKey, "Redis set holding custom words")
	fs.String("languagetool-url", cfg.LanguageToolURL, "LanguageTool server URL; built-in rules when empty")
	fs.String("languagetool-language", cfg.LanguageToolLanguage, "LanguageTool language code")
	fs.Int("long-sentence-words", cfg.LongSentenceWords, "Sentences with more words are flagged")
	fs.Float64("negative-polarity", cfg.NegativePolarity, "Polarity below this is a negative tone")
	fs.StringSlice("readability-metrics", cfg.ReadabilityMetrics, "Readability metrics: ease, grade, fog, complexity")
	fs.Duration("call-timeout", cfg.CallTimeout, "Timeout of each engine call")
	fs.Bool("no-correction", cfg.NoCorrection, "Analyze the input as is, without grammar and spelling correction")
	fs.String("log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
}

func populate(v *viper.Viper, cfg *Config) {
	cfg.HTTPAddr = v.GetString("http-addr")
	cfg.MaxBodyBytes = v.GetInt64("max-body-bytes")
	cfg.ShutdownTimeout = v.GetDuration("shutdown-timeout")
	cfg.LexiconPath = v.GetString("lexicon")
	cfg.DictionaryPath = v.GetString("dictionary")
	cfg.RedisAddr = v.GetString("redis-addr")
	cfg.RedisPassword = v.GetString("redis-password")
	cfg.RedisDB = v.GetInt("redis-db")
	cfg.RedisKey = v.GetString("redis-key")
	cfg.LanguageToolURL = v.GetString("languagetool-url")
	cfg.LanguageToolLanguage = v.GetString("languagetool-language")
	cfg.LongSentenceWords = v.GetInt("long-sentence-words")
	cfg.NegativePolarity = v.GetFloat64("negative-polarity")
	cfg.ReadabilityMetrics = splitList(v.GetStringSlice("readability-metrics"))
	cfg.CallTimeout = v.GetDuration("call-timeout")
	cfg.NoCorrection = v.GetBool("no-correction")
	cfg.LogLevel = strings.ToLower(v.GetString("log-level"))
}

// splitList flattens comma separated entries, as environment variables
// arrive as one string.
func splitList(in []string) []string {
	out := []string{}
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

var validate = validator.New()

// Validate checks the configuration against its field constraints.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s (got %v)", fe.Namespace(), fe.Param(), fe.Value())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a URL", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// PipelineOptions translates the pipeline settings into options.
func (c *Config) PipelineOptions() []options.Options {
	opts := []options.Options{
		options.WithLongSentenceWords(c.LongSentenceWords),
		options.WithNegativePolarity(c.NegativePolarity),
		options.WithReadabilityMetrics(c.ReadabilityMetrics...),
		options.WithCallTimeout(c.CallTimeout),
	}
	if c.NoCorrection {
		opts = append(opts, options.WithoutCorrection())
	}
	return opts
}

// IsDebug reports whether debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String renders the configuration without secrets.
func (c *Config) String() string {
	return fmt.Sprintf("Config{HTTPAddr: %s, Lexicon: %q, Dictionary: %q, Redis: %q, LanguageTool: %q, LogLevel: %s}",
		c.HTTPAddr, c.LexiconPath, c.DictionaryPath, c.RedisAddr, c.LanguageToolURL, c.LogLevel)
}
