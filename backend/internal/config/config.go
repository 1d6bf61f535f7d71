package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	TransportBrowser = "browser"
	TransportHTTP    = "http"

	DefaultPath = "configs/app.yaml"
)

type Config struct {
	App      AppConfig      `yaml:"app"`
	Scraping ScrapingConfig `yaml:"scraping"`
	Output   OutputConfig   `yaml:"output"`
	API      APIConfig      `yaml:"api"`
}

type AppConfig struct {
	Name     string `yaml:"name"`
	Env      string `yaml:"env"`
	LogLevel string `yaml:"log_level"`
	LogJSON  bool   `yaml:"log_json"`
}

type ScrapingConfig struct {
	BaseURL     string        `yaml:"base_url"`
	Suburbs     []string      `yaml:"suburbs"`
	Transport   string        `yaml:"transport"`
	Selector    string        `yaml:"selector"`
	Delay       time.Duration `yaml:"delay"`
	PageTimeout time.Duration `yaml:"page_timeout"`
	Headless    bool          `yaml:"headless"`
	UserAgent   string        `yaml:"user_agent"`
}

type OutputConfig struct {
	File string `yaml:"file"`
}

type APIConfig struct {
	Port int `yaml:"port"`
}

// Default returns the configuration used when no file or environment is present.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:     "sales-events",
			Env:      "development",
			LogLevel: "info",
		},
		Scraping: ScrapingConfig{
			BaseURL: "https://sales-events-api.realestate.com.au/sales-events/location/",
			Suburbs: []string{
				"abbotsford-vic-3067",
				"aberfeldie-vic-3040",
				"ascot-vale-vic-3032",
				"mont-albert-vic-3127",
			},
			Transport:   TransportBrowser,
			Selector:    "pre",
			Delay:       3 * time.Second,
			PageTimeout: 30 * time.Second,
			Headless:    true,
			UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
				"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		},
		Output: OutputConfig{
			File: "real_estate_private_sales.csv",
		},
		API: APIConfig{
			Port: 8080,
		},
	}
}

// LoadConfig layers the YAML file at path, then .env and process
// environment, over Default. A missing file or .env is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	yamlFile, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(yamlFile, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	// godotenv never overrides variables already set in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("SALES_BASE_URL"); ok {
		c.Scraping.BaseURL = v
	}
	if v, ok := os.LookupEnv("SALES_SUBURBS"); ok {
		c.Scraping.Suburbs = splitList(v)
	}
	if v, ok := os.LookupEnv("SALES_TRANSPORT"); ok {
		c.Scraping.Transport = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := os.LookupEnv("SALES_SELECTOR"); ok {
		c.Scraping.Selector = v
	}
	if v, ok := os.LookupEnv("SALES_OUTPUT_FILE"); ok {
		c.Output.File = v
	}
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok {
		c.App.LogLevel = v
	}

	var err error
	if c.Scraping.Delay, err = envDuration("SALES_DELAY", c.Scraping.Delay); err != nil {
		return err
	}
	if c.Scraping.PageTimeout, err = envDuration("SALES_PAGE_TIMEOUT", c.Scraping.PageTimeout); err != nil {
		return err
	}
	if c.Scraping.Headless, err = envBool("SALES_HEADLESS", c.Scraping.Headless); err != nil {
		return err
	}
	if c.App.LogJSON, err = envBool("LOG_JSON", c.App.LogJSON); err != nil {
		return err
	}
	if v, ok := os.LookupEnv("API_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("API_PORT %q: %w", v, err)
		}
		c.API.Port = port
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Scraping.BaseURL == "" {
		return errors.New("scraping.base_url is required")
	}
	switch c.Scraping.Transport {
	case TransportBrowser, TransportHTTP:
	default:
		return fmt.Errorf("scraping.transport %q: must be %q or %q",
			c.Scraping.Transport, TransportBrowser, TransportHTTP)
	}
	if c.Scraping.Selector == "" {
		return errors.New("scraping.selector is required")
	}
	if c.Scraping.Delay < 0 {
		return fmt.Errorf("scraping.delay must not be negative, got %s", c.Scraping.Delay)
	}
	if c.Scraping.PageTimeout <= 0 {
		return fmt.Errorf("scraping.page_timeout must be positive, got %s", c.Scraping.PageTimeout)
	}
	if c.Output.File == "" {
		return errors.New("output.file is required")
	}
	if c.API.Port <= 0 || c.API.Port > 65535 {
		return fmt.Errorf("api.port %d out of range", c.API.Port)
	}
	return nil
}

// URLFor builds the sales-events URL for a suburb slug.
func (s ScrapingConfig) URLFor(slug string) string {
	return s.BaseURL + slug
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", key, v, err)
	}
	return d, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s %q: %w", key, v, err)
	}
	return b, nil
}
