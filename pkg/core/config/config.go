// ============================================================================
// llrec - LL(1) Recognizer
// ============================================================================
//
// Package:     config
// Description: Typed application configuration loaded from TOML or YAML
// Author:      msto63
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	llerror "github.com/msto63/llrec/foundation/core/error"
	lllog "github.com/msto63/llrec/foundation/core/log"
	"github.com/msto63/llrec/foundation/ll1/grammar"
)

// EnvConfig names the environment variable holding the config file path
const EnvConfig = "LLREC_CONFIG"

// EnvPrefix prefixes the per-key environment overrides
const EnvPrefix = "LLREC"

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Grammar GrammarConfig `toml:"grammar" yaml:"grammar"`
	Parser  ParserConfig  `toml:"parser" yaml:"parser"`
	Lexer   LexerConfig   `toml:"lexer" yaml:"lexer"`
	Source  SourceConfig  `toml:"source" yaml:"source"`
	History HistoryConfig `toml:"history" yaml:"history"`
	Server  ServerConfig  `toml:"server" yaml:"server"`

	path string
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name" yaml:"name"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
	LogOutput string `toml:"log_output" yaml:"log_output"`
}

// GrammarConfig selects the parse table
type GrammarConfig struct {
	Table string `toml:"table" yaml:"table"`
}

// ParserConfig holds the engine limits
type ParserConfig struct {
	MaxStack            int `toml:"max_stack" yaml:"max_stack"`
	MaxProductionTokens int `toml:"max_production_tokens" yaml:"max_production_tokens"`
	MaxInputTokens      int `toml:"max_input_tokens" yaml:"max_input_tokens"`
}

// LexerConfig holds lexer settings
type LexerConfig struct {
	LegacyEquality bool `toml:"legacy_equality" yaml:"legacy_equality"`
}

// SourceConfig holds source file settings
type SourceConfig struct {
	MaxBytes int `toml:"max_bytes" yaml:"max_bytes"`
}

// HistoryConfig holds run history settings
type HistoryConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Path    string `toml:"path" yaml:"path"`
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Host         string   `toml:"host" yaml:"host"`
	Port         int      `toml:"port" yaml:"port"`
	ReadTimeout  Duration `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout" yaml:"write_timeout"`
	MaxBodyBytes int64    `toml:"max_body_bytes" yaml:"max_body_bytes"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// Format is the file format of a config file
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// DetectFormat determines the format from the file extension, TOML unless
// the extension is .yaml or .yml
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Default returns a configuration with all defaults applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if err != nil {
		code := llerror.CodeConfigError
		msg := "failed to read config file"
		if os.IsNotExist(err) {
			code = llerror.CodeMissingConfig
			msg = "config file not found"
		}
		return nil, llerror.Wrap(err, msg).
			WithCode(code).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	cfg, err := Parse(content, DetectFormat(path))
	if err != nil {
		return nil, llerror.Wrap(err, "failed to parse config").
			WithOperation("config.Load").
			WithDetail("path", path)
	}
	cfg.path = path
	return cfg, nil
}

// Parse decodes content in the given format and applies defaults and
// environment overrides
func Parse(content []byte, format Format) (*Config, error) {
	var cfg Config

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return nil, llerror.Wrap(err, "YAML parse error").
				WithCode(llerror.CodeInvalidConfig).
				WithOperation("config.Parse")
		}
	case FormatTOML:
		if _, err := toml.Decode(string(content), &cfg); err != nil {
			return nil, llerror.Wrap(err, "TOML parse error").
				WithCode(llerror.CodeInvalidConfig).
				WithOperation("config.Parse")
		}
	default:
		return nil, llerror.Newf("unsupported format: %s", format).
			WithCode(llerror.CodeInvalidConfig).
			WithOperation("config.Parse")
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()
	cfg.expandEnvVars()
	return &cfg, nil
}

// LoadFromEnv loads configuration from LLREC_CONFIG or the default
// locations. When no file exists the defaults are returned.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvConfig); path != "" {
		return Load(path)
	}

	if path := findDefault(); path != "" {
		return Load(path)
	}

	cfg := Default()
	cfg.applyEnvOverrides()
	cfg.expandEnvVars()
	return cfg, nil
}

func findDefault() string {
	defaultPaths := []string{
		"./configs/config.toml",
		"./config.toml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		defaultPaths = append(defaultPaths, filepath.Join(home, ".config", "llrec", "config.toml"))
	}

	for _, p := range defaultPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Path returns the file the configuration was loaded from, if any
func (c *Config) Path() string { return c.path }

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "llrec"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "console"
	}
	if c.General.LogOutput == "" {
		c.General.LogOutput = "stderr"
	}

	// Grammar
	if c.Grammar.Table == "" {
		c.Grammar.Table = string(grammar.VariantDerived)
	}

	// Parser
	if c.Parser.MaxStack == 0 {
		c.Parser.MaxStack = 500
	}
	if c.Parser.MaxProductionTokens == 0 {
		c.Parser.MaxProductionTokens = 50
	}
	if c.Parser.MaxInputTokens == 0 {
		c.Parser.MaxInputTokens = 300
	}

	// Source
	if c.Source.MaxBytes == 0 {
		c.Source.MaxBytes = 8192
	}

	// History
	if c.History.Path == "" {
		c.History.Path = "./data/history.db"
	}

	// Server
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8095
	}
	if c.Server.ReadTimeout.Duration == 0 {
		c.Server.ReadTimeout.Duration = 10 * time.Second
	}
	if c.Server.WriteTimeout.Duration == 0 {
		c.Server.WriteTimeout.Duration = 30 * time.Second
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = 64 * 1024
	}
}

// envKey converts a config key to environment variable format:
// server.port -> LLREC_SERVER_PORT
func envKey(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// applyEnvOverrides lets selected keys be overridden from the environment.
// Values that do not parse are ignored.
func (c *Config) applyEnvOverrides() {
	strs := map[string]*string{
		"general.log_level":  &c.General.LogLevel,
		"general.log_format": &c.General.LogFormat,
		"grammar.table":      &c.Grammar.Table,
		"history.path":       &c.History.Path,
		"server.host":        &c.Server.Host,
	}
	for key, dst := range strs {
		if v := os.Getenv(envKey(key)); v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"parser.max_stack":        &c.Parser.MaxStack,
		"parser.max_input_tokens": &c.Parser.MaxInputTokens,
		"source.max_bytes":        &c.Source.MaxBytes,
		"server.port":             &c.Server.Port,
	}
	for key, dst := range ints {
		if v := os.Getenv(envKey(key)); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	if v := os.Getenv(envKey("history.enabled")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.History.Enabled = b
		}
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.History.Path = os.ExpandEnv(c.History.Path)
	c.General.LogOutput = os.ExpandEnv(c.General.LogOutput)
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	var problems []string

	if _, err := lllog.ParseLevel(c.General.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}
	if _, err := lllog.ParseFormat(c.General.LogFormat); err != nil {
		problems = append(problems, err.Error())
	}
	if _, err := grammar.ParseVariant(c.Grammar.Table); err != nil {
		problems = append(problems, fmt.Sprintf("grammar.table: unknown table %q", c.Grammar.Table))
	}
	if c.Parser.MaxStack == 1 {
		problems = append(problems, "parser.max_stack must be at least 2")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port out of range: %d", c.Server.Port))
	}
	if c.History.Enabled && c.History.Path == "" {
		problems = append(problems, "history.path is required when history is enabled")
	}

	if len(problems) > 0 {
		return llerror.New("invalid configuration: "+strings.Join(problems, "; ")).
			WithCode(llerror.CodeInvalidConfig).
			WithOperation("config.Validate").
			WithDetail("problems", len(problems))
	}
	return nil
}

// ServerAddress returns the listen address of the HTTP API
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
