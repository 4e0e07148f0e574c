package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeNaming()
	c.normalizeDCC()
	c.normalizeShotGrid()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.ProjectRoot) == "" {
		if value, ok := os.LookupEnv("NOX_PROJECT_ROOT"); ok {
			c.Paths.ProjectRoot = value
		}
	}
	var err error
	if c.Paths.ProjectRoot, err = expandPath(c.Paths.ProjectRoot); err != nil {
		return fmt.Errorf("paths.project_root: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.HistoryDB) == "" {
		c.Paths.HistoryDB = defaultHistoryDB
	}
	if c.Paths.HistoryDB, err = expandPath(c.Paths.HistoryDB); err != nil {
		return fmt.Errorf("paths.history_db: %w", err)
	}
	return nil
}

func (c *Config) normalizeNaming() {
	c.Naming.Template = strings.TrimSpace(c.Naming.Template)
	if c.Naming.Template == "" {
		c.Naming.Template = defaultTemplate
	}
	for task, tmpl := range c.Naming.Overrides {
		c.Naming.Overrides[task] = strings.TrimSpace(tmpl)
	}
}

func (c *Config) normalizeDCC() {
	c.DCC.Default = strings.ToLower(strings.TrimSpace(c.DCC.Default))
	normalized := make(map[string][]string, len(c.DCC.Extensions))
	for host, exts := range c.DCC.Extensions {
		normalized[strings.ToLower(strings.TrimSpace(host))] = exts
	}
	c.DCC.Extensions = normalized
}

func (c *Config) normalizeShotGrid() {
	if c.ShotGrid.APIKey == "" {
		if value, ok := os.LookupEnv("SHOTGRID_API_KEY"); ok {
			c.ShotGrid.APIKey = value
		}
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
