package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAPIBaseURL  = "https://api.stackexchange.com/2.3"
	defaultSite        = "stackoverflow"
	defaultPageSize    = 20
	defaultHTTPTimeout = 10 * time.Second
	maxPageSize        = 100
)

// Config holds runtime settings for the CLI app.
type Config struct {
	APIBaseURL  string
	Site        string
	PageSize    int
	APIKey      string
	HTTPTimeout time.Duration
	DebugLog    string
}

// LoadFromEnv reads STACKQ_* variables. A .env file in the working directory
// is loaded first when present; variables already set in the environment win.
func LoadFromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		APIBaseURL: os.Getenv("STACKQ_API_BASE_URL"),
		Site:       os.Getenv("STACKQ_SITE"),
		APIKey:     os.Getenv("STACKQ_API_KEY"),
		DebugLog:   os.Getenv("STACKQ_DEBUG_LOG"),
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	if cfg.Site == "" {
		cfg.Site = defaultSite
	}

	cfg.PageSize = defaultPageSize
	if raw := strings.TrimSpace(os.Getenv("STACKQ_PAGE_SIZE")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("STACKQ_PAGE_SIZE must be an integer: %s", raw)
		}
		cfg.PageSize = n
	}

	cfg.HTTPTimeout = defaultHTTPTimeout
	if raw := strings.TrimSpace(os.Getenv("STACKQ_HTTP_TIMEOUT")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("STACKQ_HTTP_TIMEOUT must be a duration: %w", err)
		}
		cfg.HTTPTimeout = d
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("APIBaseURL is required")
	}
	if c.APIBaseURL[len(c.APIBaseURL)-1] == '/' {
		return fmt.Errorf("APIBaseURL must not end with '/': %s", c.APIBaseURL)
	}
	if strings.TrimSpace(c.Site) == "" {
		return errors.New("Site is required")
	}
	if c.PageSize < 1 || c.PageSize > maxPageSize {
		return fmt.Errorf("PageSize must be between 1 and %d: %d", maxPageSize, c.PageSize)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTPTimeout must be positive: %s", c.HTTPTimeout)
	}
	return nil
}
