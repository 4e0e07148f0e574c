package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/crisslavik/nox-file-manager/internal/backup"
	"github.com/crisslavik/nox-file-manager/internal/dcc"
	"github.com/crisslavik/nox-file-manager/internal/template"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	ProjectRoot string `toml:"project_root"`
	LogDir      string `toml:"log_dir"`
	HistoryDB   string `toml:"history_db"`
}

// Naming contains the filename convention. Overrides map a task name to a
// template used instead of the global one for that task.
type Naming struct {
	Template  string            `toml:"template"`
	Overrides map[string]string `toml:"overrides"`
}

// Backup contains the backup retention policy applied before overwrites.
type Backup struct {
	Enabled      bool `toml:"enabled"`
	MaxCount     int  `toml:"max_count"`
	FatalOnError bool `toml:"fatal_on_error"`
}

// DCC contains host-application configuration. Extensions entries replace
// the built-in table for the named host.
type DCC struct {
	Default    string              `toml:"default"`
	Extensions map[string][]string `toml:"extensions"`
}

// ShotGrid contains connection parameters for the production-tracking
// service. They are passed through to external tooling and never
// interpreted by the engine.
type ShotGrid struct {
	URL        string `toml:"url"`
	ScriptName string `toml:"script_name"`
	APIKey     string `toml:"api_key"`
	ProjectID  int    `toml:"project_id"`
}

// Logging contains log output configuration.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for NOX.
//
// Configuration sections by subsystem:
//   - Paths: project root and state directories
//   - Naming: filename templates and per-task overrides
//   - Backup: rotation policy for overwrites
//   - DCC: default host application and extension tables
//   - ShotGrid: pass-through tracking-service credentials
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Naming   Naming   `toml:"naming"`
	Backup   Backup   `toml:"backup"`
	DCC      DCC      `toml:"dcc"`
	ShotGrid ShotGrid `toml:"shotgrid"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/nox/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		path = os.Getenv("NOX_CONFIG_PATH")
	}
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("nox.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state directories. The project root is
// created on a best-effort basis so the CLI can run while network storage
// is temporarily unavailable.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LogDir, filepath.Dir(c.Paths.HistoryDB)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if strings.TrimSpace(c.Paths.ProjectRoot) != "" {
		_ = os.MkdirAll(c.Paths.ProjectRoot, 0o755)
	}
	return nil
}

// BackupPolicy converts the backup section into the policy the rotation
// code consumes.
func (c *Config) BackupPolicy() backup.Policy {
	return backup.Policy{
		Enabled:      c.Backup.Enabled,
		MaxCount:     c.Backup.MaxCount,
		FatalOnError: c.Backup.FatalOnError,
	}
}

// TemplateFor compiles the naming template for a task, honouring per-task
// overrides. Validate has already proven the sources compile.
func (c *Config) TemplateFor(task string) (*template.Template, error) {
	source := c.Naming.Template
	if override, ok := c.Naming.Overrides[task]; ok {
		source = override
	}
	return template.Compile(source)
}

// ExtensionsFor returns the allowed extensions for a host application,
// preferring a config override over the built-in table. Unknown hosts get
// no extensions, which browsing treats as allow-everything.
func (c *Config) ExtensionsFor(host string) []string {
	if exts, ok := c.DCC.Extensions[host]; ok {
		return exts
	}
	if h, ok := dcc.Lookup(host); ok {
		return h.Extensions
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
