package config

import (
	"fmt"

	"github.com/crisslavik/nox-file-manager/internal/dcc"
	"github.com/crisslavik/nox-file-manager/internal/engine"
	"github.com/crisslavik/nox-file-manager/internal/template"
)

// Validate ensures the configuration is usable. Template syntax problems
// surface here, before any scan runs.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateNaming(); err != nil {
		return err
	}
	if err := c.validateBackup(); err != nil {
		return err
	}
	if err := c.validateDCC(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.ProjectRoot == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/nox/config.toml"
		}
		return engine.Wrap(engine.ErrConfiguration, "config", "validate",
			fmt.Sprintf("paths.project_root is required. Set NOX_PROJECT_ROOT or edit %s (create with 'nox config init')", defaultPath), nil)
	}
	return nil
}

func (c *Config) validateNaming() error {
	if _, err := template.Compile(c.Naming.Template); err != nil {
		return engine.Wrap(engine.ErrConfiguration, "config", "validate",
			fmt.Sprintf("naming.template %q", c.Naming.Template), err)
	}
	for task, source := range c.Naming.Overrides {
		if _, err := template.Compile(source); err != nil {
			return engine.Wrap(engine.ErrConfiguration, "config", "validate",
				fmt.Sprintf("naming.overrides.%s %q", task, source), err)
		}
	}
	return nil
}

func (c *Config) validateBackup() error {
	if c.Backup.MaxCount < 0 {
		return engine.Wrap(engine.ErrConfiguration, "config", "validate",
			fmt.Sprintf("backup.max_count must be >= 0, got %d", c.Backup.MaxCount), nil)
	}
	return nil
}

func (c *Config) validateDCC() error {
	if c.DCC.Default == "" {
		return nil
	}
	if _, ok := dcc.Lookup(c.DCC.Default); ok {
		return nil
	}
	if _, ok := c.DCC.Extensions[c.DCC.Default]; ok {
		return nil
	}
	return engine.Wrap(engine.ErrConfiguration, "config", "validate",
		fmt.Sprintf("dcc.default %q is not a known application and has no dcc.extensions entry", c.DCC.Default), nil)
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return engine.Wrap(engine.ErrConfiguration, "config", "validate",
			fmt.Sprintf("logging.format must be console or json, got %q", c.Logging.Format), nil)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return engine.Wrap(engine.ErrConfiguration, "config", "validate",
			fmt.Sprintf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level), nil)
	}
	return nil
}
