// Package store provides loading and saving of categorization rule data.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"hsouza/julius/internal/config"
	"hsouza/julius/internal/models"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Use the centralized logger from config package
var log = config.Logger

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// CategoryRule binds keywords to one category. Rules are matched against
// the accent-stripped, lowercased description, in file order.
type CategoryRule struct {
	Category models.Category `yaml:"category"`
	Keywords []string        `yaml:"keywords"`
}

// MerchantRule maps a description pattern to a canonical merchant name.
type MerchantRule struct {
	Pattern string `yaml:"pattern"`
	Name    string `yaml:"name"`
}

// RulesConfig is the on-disk shape of the rules file. Order is
// significant for both lists: first match wins.
type RulesConfig struct {
	Categories []CategoryRule `yaml:"categories"`
	Merchants  []MerchantRule `yaml:"merchants"`
}

// RuleStoreReader is the read surface consumed by the normalizer.
type RuleStoreReader interface {
	LoadRules() (RulesConfig, error)
}

// RuleStore manages loading and saving of categorization rule data.
type RuleStore struct {
	RulesFile string
}

// NewRuleStore creates a new store for categorization rules.
func NewRuleStore(rulesFile string) *RuleStore {
	return &RuleStore{RulesFile: rulesFile}
}

// FindConfigFile looks for a configuration file in standard locations
func (s *RuleStore) FindConfigFile(filename string) (string, error) {
	// Check if it's an absolute path
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	// Common locations to check for config files
	locations := []string{
		filename,                          // Current directory
		filepath.Join("config", filename), // ./config/ directory
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	// If still not found, check in user's home directory under .config/julius/
	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "julius", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadRules loads the categorization rules from the YAML file. A missing
// file is not an error: the caller falls back to the built-in rule set.
func (s *RuleStore) LoadRules() (RulesConfig, error) {
	filename := s.RulesFile
	if filename == "" {
		filename = "rules.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) || err == os.ErrNotExist {
			log.Debugf("Rules file not found: %s, using built-in rules", filename)
			return RulesConfig{}, nil
		}
		return RulesConfig{}, fmt.Errorf("error resolving rules file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return RulesConfig{}, fmt.Errorf("error reading rules file: %w", err)
	}

	var rules RulesConfig
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return RulesConfig{}, fmt.Errorf("error parsing rules file: %w", err)
	}

	for _, rule := range rules.Categories {
		if !rule.Category.IsValid() {
			return RulesConfig{}, fmt.Errorf("rules file %s references unknown category %q", filePath, rule.Category)
		}
	}

	log.Debugf("Loaded %d category rules and %d merchant rules from %s",
		len(rules.Categories), len(rules.Merchants), filePath)
	return rules, nil
}

// SaveRules saves the categorization rules to the YAML file.
func (s *RuleStore) SaveRules(rules RulesConfig) error {
	filename := s.RulesFile
	if filename == "" {
		filename = "rules.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil && err != os.ErrNotExist {
		return fmt.Errorf("error resolving rules file: %w", err)
	}

	// If file not found, write next to the working directory by default
	if err == os.ErrNotExist {
		if !filepath.IsAbs(filename) {
			filePath = filepath.Join("config", filename)
		} else {
			filePath = filename
		}
	}

	// Create parent directory if it doesn't exist
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(rules)
	if err != nil {
		return fmt.Errorf("error marshaling rules: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing rules file: %w", err)
	}

	log.Debugf("Saved %d category rules to %s", len(rules.Categories), filePath)
	return nil
}
