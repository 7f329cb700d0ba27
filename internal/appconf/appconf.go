// Package appconf loads the proxy service configuration. Sources apply in
// order: built-in defaults, a YAML file, a .env file and the environment,
// then command-line flags. The result is validated once at the end.
package appconf

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"sptrans.olhovivo.dev/olhovivo"
)

type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	Production  Environment = "production"
)

// EnvFlagToEnvironment normalizes an environment name. Unknown names are
// returned lowercased so that validation reports them.
func EnvFlagToEnvironment(env string) Environment {
	switch e := strings.ToLower(strings.TrimSpace(env)); e {
	case "", "dev", "development":
		return Development
	case "test", "testing":
		return Test
	case "prod", "production":
		return Production
	default:
		return Environment(e)
	}
}

type Config struct {
	Port     int         `yaml:"port" validate:"min=1,max=65535"`
	Env      Environment `yaml:"env" validate:"oneof=development test production"`
	ApiKeys  []string    `yaml:"apiKeys" validate:"min=1,dive,required"`
	LogLevel string      `yaml:"logLevel" validate:"omitempty,oneof=debug info warn warning error"`
	Upstream Upstream    `yaml:"upstream"`
}

// Upstream configures the connection to the Olho Vivo service.
type Upstream struct {
	BaseURL string        `yaml:"baseURL" validate:"required,url"`
	Token   string        `yaml:"token" validate:"required"`
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
	// Timezone is the IANA zone clock times are read in.
	Timezone string `yaml:"timezone" validate:"required"`
}

func Default() Config {
	return Config{
		Port:     4000,
		Env:      Development,
		ApiKeys:  []string{"test"},
		LogLevel: "info",
		Upstream: Upstream{
			BaseURL:  olhovivo.DefaultBaseURL,
			Timeout:  olhovivo.DefaultConfig().Timeout,
			Timezone: "America/Sao_Paulo",
		},
	}
}

// LoadFile merges the YAML file at path into c. Keys absent from the file
// keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	c.Env = EnvFlagToEnvironment(string(c.Env))
	return nil
}

// ApplyEnv overrides c with the variables SPTRANS_TOKEN, OLHOVIVO_BASE_URL,
// PORT, API_KEYS and LOG_LEVEL when they are set.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("SPTRANS_TOKEN"); v != "" {
		c.Upstream.Token = v
	}
	if v := getenv("OLHOVIVO_BASE_URL"); v != "" {
		c.Upstream.BaseURL = v
	}
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Port = port
	}
	if v := getenv("API_KEYS"); v != "" {
		c.ApiKeys = SplitAPIKeys(v)
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return err
	}
	if _, err := time.LoadLocation(c.Upstream.Timezone); err != nil {
		return fmt.Errorf("invalid configuration: timezone: %w", err)
	}
	return nil
}

// Location returns the configured time zone. Call after Validate.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Upstream.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// SplitAPIKeys splits a comma separated key list, dropping blanks.
func SplitAPIKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// Parse builds the configuration from args (without the program name) and
// the environment. A .env file in the working directory is loaded if present.
func Parse(args []string, getenv func(string) string) (Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet("olhovivo-proxy", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to a YAML config file")
	dotenv := fs.String("dotenv", ".env", "Path to a .env file, loaded if it exists")
	port := fs.Int("port", cfg.Port, "API server port")
	env := fs.String("env", string(cfg.Env), "Environment (development|test|production)")
	apiKeys := fs.String("api-keys", "", "Comma Separated API Keys (test, etc)")
	logLevel := fs.String("log-level", "", "Log level (debug|info|warn|error)")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if *configPath != "" {
		if err := cfg.LoadFile(*configPath); err != nil {
			return cfg, err
		}
	}

	if *dotenv != "" {
		if err := godotenv.Load(*dotenv); err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("loading %s: %w", *dotenv, err)
		}
	}
	if err := cfg.ApplyEnv(getenv); err != nil {
		return cfg, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			cfg.Port = *port
		case "env":
			cfg.Env = EnvFlagToEnvironment(*env)
		case "api-keys":
			cfg.ApiKeys = SplitAPIKeys(*apiKeys)
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	return cfg, cfg.Validate()
}
