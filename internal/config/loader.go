package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".quotecrawl"

// ErrConfigNotFound is returned when the configuration file does not
// exist. Callers decide whether that is fatal: an explicitly requested
// file must exist, a discovered one is optional.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .quotecrawl configuration file.
// Every field is optional; unset fields leave the flag/default value
// untouched. Durations are strings in time.ParseDuration syntax
// (e.g. "250ms", "2s") because YAML has no native duration type.
type File struct {
	// BaseURL overrides the listing URL the crawl starts from.
	BaseURL string `yaml:"base_url,omitempty"`

	// Timeout overrides the per-request deadline.
	Timeout string `yaml:"timeout,omitempty"`

	// PageDelay overrides the pause between listing-page fetches.
	PageDelay string `yaml:"page_delay,omitempty"`

	// AuthorDelay overrides the pause after each author fetch.
	AuthorDelay string `yaml:"author_delay,omitempty"`

	// MaxPages overrides the listing-page limit.
	MaxPages int `yaml:"max_pages,omitempty"`

	// Workers overrides the author-fetch concurrency.
	Workers int `yaml:"workers,omitempty"`

	// UserAgent overrides the HTTP User-Agent header.
	UserAgent string `yaml:"user_agent,omitempty"`
}

// LoadConfigFile loads crawl settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in order:
// 1. The explicit path, if one was given
// 2. .quotecrawl in the current directory
// 3. .quotecrawl in the user's home directory
//
// Returns the path if found, or empty string if not.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

// Apply overlays the file's settings onto cfg. Only fields the file
// actually sets are copied; duration strings are parsed here so the
// error can name the offending key.
func (f *File) Apply(cfg *Config) error {
	if f.BaseURL != "" {
		cfg.BaseURL = f.BaseURL
	}
	if f.UserAgent != "" {
		cfg.UserAgent = f.UserAgent
	}
	if f.MaxPages != 0 {
		cfg.MaxPages = f.MaxPages
	}
	if f.Workers != 0 {
		cfg.Workers = f.Workers
	}

	if f.Timeout != "" {
		d, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return fmt.Errorf("config file: invalid timeout %q: %w", f.Timeout, err)
		}
		cfg.Timeout = d
	}
	if f.PageDelay != "" {
		d, err := time.ParseDuration(f.PageDelay)
		if err != nil {
			return fmt.Errorf("config file: invalid page_delay %q: %w", f.PageDelay, err)
		}
		cfg.PageDelay = d
	}
	if f.AuthorDelay != "" {
		d, err := time.ParseDuration(f.AuthorDelay)
		if err != nil {
			return fmt.Errorf("config file: invalid author_delay %q: %w", f.AuthorDelay, err)
		}
		cfg.AuthorDelay = d
	}

	return nil
}
