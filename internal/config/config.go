// Package config reads and writes tally.yaml, the per-workspace
// configuration. The workspace root is always an explicit value threaded
// into constructors, never process-wide state.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file at the workspace root.
const FileName = "tally.yaml"

// Config represents the top-level tally.yaml configuration.
type Config struct {
	Business  BusinessConfig  `yaml:"business"`
	Workspace WorkspaceConfig `yaml:"workspace"`
	Close     CloseConfig     `yaml:"close"`
	Git       GitConfig       `yaml:"git"`
}

// BusinessConfig identifies the business entity.
type BusinessConfig struct {
	Name string `yaml:"name"`
}

// WorkspaceConfig names the workspace areas, relative to the root:
// ledger state, incoming transaction data, generated reports, and
// operational logs.
type WorkspaceConfig struct {
	Ledger  string `yaml:"ledger"`
	Ingest  string `yaml:"ingest"`
	Reports string `yaml:"reports"`
	Logs    string `yaml:"logs"`
}

// CloseConfig controls period-end closing.
type CloseConfig struct {
	// RetainedEarnings is the equity account code closing entries post to.
	RetainedEarnings string `yaml:"retained_earnings"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a tally.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new workspace.
func Default(businessName string) *Config {
	return &Config{
		Business: BusinessConfig{Name: businessName},
		Workspace: WorkspaceConfig{
			Ledger:  "ledger",
			Ingest:  "ingest",
			Reports: "reports",
			Logs:    "logs",
		},
		Close: CloseConfig{RetainedEarnings: "3000"},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Tally",
			AuthorEmail: "ledger@tallybook.dev",
		},
	}
}

// LedgerDir resolves the ledger area under root.
func (c *Config) LedgerDir(root string) string { return filepath.Join(root, c.Workspace.Ledger) }

// IngestDir resolves the incoming-data area under root.
func (c *Config) IngestDir(root string) string { return filepath.Join(root, c.Workspace.Ingest) }

// ReportsDir resolves the generated-reports area under root.
func (c *Config) ReportsDir(root string) string { return filepath.Join(root, c.Workspace.Reports) }

// LogsDir resolves the operational-logs area under root.
func (c *Config) LogsDir(root string) string { return filepath.Join(root, c.Workspace.Logs) }

// EnsureWorkspace creates the workspace areas under root.
func (c *Config) EnsureWorkspace(root string) error {
	for _, dir := range []string{
		c.LedgerDir(root), c.IngestDir(root), c.ReportsDir(root), c.LogsDir(root),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating workspace dir %s: %w", dir, err)
		}
	}
	return nil
}
