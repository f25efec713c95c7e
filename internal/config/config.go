package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the spotfinder configuration.
type Config struct {
	Paths     PathsConfig     `yaml:"paths"`
	Encoder   EncoderConfig   `yaml:"encoder"`
	Generator GeneratorConfig `yaml:"generator"`
	Cache     CacheConfig     `yaml:"cache"`
	Keywords  KeywordsConfig  `yaml:"keywords"`
	Search    SearchConfig    `yaml:"search"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// PathsConfig holds the data file locations.
type PathsConfig struct {
	Catalog       string `yaml:"catalog"`
	TextVectors   string `yaml:"text_vectors"`
	ImageVectors  string `yaml:"image_vectors"`
	QueryImageDir string `yaml:"query_image_dir"`
}

// EncoderConfig holds the embedding provider settings.
type EncoderConfig struct {
	Provider   string `yaml:"provider"`
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	TextModel  string `yaml:"text_model"`
	ImageModel string `yaml:"image_model"`
	Dimensions int    `yaml:"dimensions"`
}

// GeneratorConfig holds the query-image generator settings.
type GeneratorConfig struct {
	Enabled bool   `yaml:"enabled"`
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// CacheConfig holds the optional encode-cache backend. Empty addrs disables it.
type CacheConfig struct {
	Addrs    []string `yaml:"addrs"`
	Password string   `yaml:"password"`
	TTLHours int      `yaml:"ttl_hours"`
}

// KeywordsConfig holds the morphological extraction settings.
type KeywordsConfig struct {
	MinLength int      `yaml:"min_length"`
	TargetPOS []string `yaml:"target_pos"`
}

// SearchConfig holds ranking output settings.
type SearchConfig struct {
	MaxResults int `yaml:"max_results"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: from env)
}

// Load reads configuration from a YAML file by environment name (local, dev,
// prod). A .env file next to the working directory, if present, is loaded
// first so ${VAR} expansion can see it.
func Load(env string) (Config, error) {
	_ = godotenv.Load() // absent .env is fine

	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Paths.QueryImageDir == "" {
		c.Paths.QueryImageDir = "data/query"
	}
	if c.Encoder.Dimensions <= 0 {
		c.Encoder.Dimensions = 768
	}
	if c.Cache.TTLHours <= 0 {
		c.Cache.TTLHours = 24
	}
	if c.Keywords.MinLength <= 0 {
		c.Keywords.MinLength = 2
	}
	if len(c.Keywords.TargetPOS) == 0 {
		c.Keywords.TargetPOS = []string{"名詞", "形容詞", "動詞", "形容動詞", "形状詞"}
	}
	if c.Search.MaxResults <= 0 {
		c.Search.MaxResults = 20
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.Paths.Catalog == "" {
		return fmt.Errorf("paths.catalog is required")
	}
	if c.Paths.TextVectors == "" {
		return fmt.Errorf("paths.text_vectors is required")
	}
	if c.Paths.ImageVectors == "" {
		return fmt.Errorf("paths.image_vectors is required")
	}
	if c.Encoder.TextModel == "" {
		return fmt.Errorf("encoder.text_model is required")
	}
	if c.Generator.Enabled && c.Generator.Model == "" {
		return fmt.Errorf("generator.model is required when generator is enabled")
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
