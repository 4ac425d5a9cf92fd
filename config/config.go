package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the root configuration structure.
type Config struct {
	Identity  IdentityConfig  `json:"identity"`
	Changelog ChangelogConfig `json:"changelog"`
	Filters   FilterConfig    `json:"filters"`
	Strict    bool            `json:"strict"`
}

// IdentityConfig collapses additional author identities beyond email
// matching, in the spirit of a .mailmap.
type IdentityConfig struct {
	// EmailAliases maps alternate addresses to a canonical address.
	EmailAliases map[string]string `json:"emailAliases"`
	// NameAliases maps display names to a canonical address, for
	// commits recorded without a usable email.
	NameAliases map[string]string `json:"nameAliases"`
}

// ChangelogConfig holds changelog assembly options.
type ChangelogConfig struct {
	AbbrevLength    int      `json:"abbrevLength"`
	FeaturePatterns []string `json:"featurePatterns"` // Regex patterns for feature commits
	FixPatterns     []string `json:"fixPatterns"`     // Regex patterns for bugfix commits
}

// FilterConfig holds file path filtering options applied to diff stats.
type FilterConfig struct {
	Include []string `json:"include"`
	Exclude []string `json:"exclude"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Identity: IdentityConfig{
			EmailAliases: map[string]string{},
			NameAliases:  map[string]string{},
		},
		Changelog: ChangelogConfig{
			AbbrevLength: 7,
			FeaturePatterns: []string{
				`(?i)^(feat|feature|task)\b`,
				`^Merged PR`,
			},
			FixPatterns: []string{
				`(?i)^(fix|bug|hotfix)\b`,
			},
		},
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
		Strict: false,
	}
}

// LoadConfig loads configuration from a file, merging with defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		// Try default locations
		candidates := []string{".gitstats.json"}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, ".gitstats.json"))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig saves configuration to a file.
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
