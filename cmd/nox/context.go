package main

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/crisslavik/nox-file-manager/internal/config"
	"github.com/crisslavik/nox-file-manager/internal/history"
	"github.com/crisslavik/nox-file-manager/internal/logging"
	"github.com/crisslavik/nox-file-manager/internal/pipeline"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.New(logging.Options{
			Level:       cfg.Logging.Level,
			Format:      cfg.Logging.Format,
			OutputPaths: []string{"stderr", filepath.Join(cfg.Paths.LogDir, "nox.log")},
		})
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) openHistory() (*history.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return history.Open(cfg.Paths.HistoryDB)
}

// contextFlags collects the pipeline-selection flags shared by browse,
// plan, save, and versions.
type contextFlags struct {
	show     string
	sequence string
	shot     string
	asset    string
	kind     string
	task     string
	dcc      string
	publish  bool
}

func addContextFlags(cmd *cobra.Command, flags *contextFlags) {
	cmd.Flags().StringVar(&flags.show, "show", "", "Show code")
	cmd.Flags().StringVar(&flags.sequence, "seq", "", "Sequence name")
	cmd.Flags().StringVar(&flags.shot, "shot", "", "Shot name")
	cmd.Flags().StringVar(&flags.asset, "asset", "", "Asset name (asset-centric contexts)")
	cmd.Flags().StringVar(&flags.kind, "type", "", "Asset type, e.g. prop or char")
	cmd.Flags().StringVar(&flags.task, "task", "", "Task name, e.g. comp or model")
	cmd.Flags().StringVar(&flags.dcc, "dcc", "", "Host application (defaults to dcc.default)")
	cmd.Flags().BoolVar(&flags.publish, "publish", false, "Address the publish area instead of work")
}

func (f *contextFlags) pipelineContext() pipeline.Context {
	pctx := pipeline.Context{
		Show:     f.show,
		Sequence: f.sequence,
		Task:     f.task,
	}
	if f.asset != "" {
		pctx.ShotOrAsset = f.asset
		pctx.AssetType = f.kind
		if pctx.AssetType == "" {
			pctx.AssetType = "misc"
		}
	} else {
		pctx.ShotOrAsset = f.shot
	}
	return pctx
}

func (f *contextFlags) workKind() pipeline.WorkKind {
	if f.publish {
		return pipeline.PublishArea
	}
	return pipeline.WorkArea
}

func (f *contextFlags) dccName(cfg *config.Config) string {
	if f.dcc != "" {
		return strings.ToLower(f.dcc)
	}
	return cfg.DCC.Default
}

// resolveScope builds the scope the given flags address.
func (f *contextFlags) resolveScope(cfg *config.Config, op pipeline.Operation) (pipeline.Scope, error) {
	tmpl, err := cfg.TemplateFor(f.task)
	if err != nil {
		return pipeline.Scope{}, err
	}
	name := f.dccName(cfg)
	return pipeline.Resolve(f.pipelineContext(), op, pipeline.ResolveInput{
		ProjectRoot: cfg.Paths.ProjectRoot,
		DCC:         name,
		Extensions:  cfg.ExtensionsFor(name),
		Template:    tmpl,
		Kind:        f.workKind(),
	})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
