package config

import (
	"fmt"
	"time"

	"journalrank/internal/scrapers/scimago"
	"journalrank/pkg/configutil"
)

const DefaultPath = "journalrank.json5"

type Config struct {
	BaseUrl   string `json:"base_url"`
	UserAgent string `json:"user_agent"`
	// RequestTimeout and PageDelay are go duration strings, ex. "30s", "1s"
	RequestTimeout string `json:"request_timeout"`
	PageDelay      string `json:"page_delay"`
	MaxPages       int    `json:"max_pages"`
	PageSize       int    `json:"page_size"`
	Match          string `json:"match"`
	ListenAddress  string `json:"listen_address"`
}

func Default() Config {
	opts := scimago.DefaultClientOptions()
	return Config{
		BaseUrl:        opts.BaseUrl,
		UserAgent:      opts.UserAgent,
		RequestTimeout: opts.Timeout.String(),
		PageDelay:      opts.PageDelay.String(),
		MaxPages:       opts.MaxPages,
		PageSize:       opts.PageSize,
		Match:          string(opts.Match),
		ListenAddress:  "127.0.0.1:8501",
	}
}

// Read reads the config at path (and its .local override), a missing file
// yields the defaults.
func Read(path string) (Config, error) {
	cfg, err := configutil.ReadOrDefault(path, Default())
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) ClientOptions() (scimago.ClientOptions, error) {
	timeout, err := time.ParseDuration(c.RequestTimeout)
	if err != nil {
		return scimago.ClientOptions{}, fmt.Errorf("request_timeout: %w", err)
	}
	if timeout <= 0 {
		return scimago.ClientOptions{}, fmt.Errorf("request_timeout must be positive, got %s", timeout)
	}
	delay, err := time.ParseDuration(c.PageDelay)
	if err != nil {
		return scimago.ClientOptions{}, fmt.Errorf("page_delay: %w", err)
	}
	match, err := scimago.ParseMatchStrategy(c.Match)
	if err != nil {
		return scimago.ClientOptions{}, fmt.Errorf("match: %w", err)
	}

	return scimago.ClientOptions{
		BaseUrl:   c.BaseUrl,
		UserAgent: c.UserAgent,
		Timeout:   timeout,
		PageDelay: delay,
		MaxPages:  c.MaxPages,
		PageSize:  c.PageSize,
		Match:     match,
	}, nil
}
