package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crisslavik/nox-file-manager/internal/config"
	"github.com/crisslavik/nox-file-manager/internal/pipeline"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var flags contextFlags
	var fromPath string
	var forSave bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Show the scope a pipeline context maps to",
		Long: `Resolve prints the directory, allowed extensions, and naming template
for a context without touching the disk. With --from-path the context is
recovered from a scene file inside the project tree, the way host
integrations detect the context of an open scene.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			if fromPath != "" {
				expanded, err := config.ExpandPath(fromPath)
				if err != nil {
					return err
				}
				pctx, ok := pipeline.ContextFromPath(expanded, cfg.Paths.ProjectRoot)
				if !ok {
					return fmt.Errorf("%s is not inside a recognizable shots/ or assets/ branch of %s",
						expanded, cfg.Paths.ProjectRoot)
				}
				flags.sequence = pctx.Sequence
				flags.task = pctx.Task
				if pctx.IsAsset() {
					flags.asset = pctx.ShotOrAsset
					flags.kind = pctx.AssetType
				} else {
					flags.shot = pctx.ShotOrAsset
				}
			}

			op := pipeline.OpLoad
			if forSave {
				op = pipeline.OpSave
			}
			scope, err := flags.resolveScope(cfg, op)
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, struct {
					Context    pipeline.Context `json:"context"`
					Root       string           `json:"root"`
					Extensions []string         `json:"extensions,omitempty"`
					Template   string           `json:"template"`
					Kind       string           `json:"kind"`
				}{flags.pipelineContext(), scope.Root, scope.AllowedExtensions, scope.Template.String(), string(scope.Kind)})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Context:    %s\n", flags.pipelineContext())
			fmt.Fprintf(out, "Root:       %s\n", scope.Root)
			fmt.Fprintf(out, "Area:       %s\n", scope.Kind)
			fmt.Fprintf(out, "Template:   %s\n", scope.Template)
			if len(scope.AllowedExtensions) > 0 {
				fmt.Fprintf(out, "Extensions: %s\n", strings.Join(scope.AllowedExtensions, ", "))
			} else {
				fmt.Fprintln(out, "Extensions: (all)")
			}
			return nil
		},
	}

	addContextFlags(cmd, &flags)
	cmd.Flags().StringVar(&fromPath, "from-path", "", "Recover the context from a scene path")
	cmd.Flags().BoolVar(&forSave, "for-save", false, "Resolve with save requirements (complete context)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON")
	return cmd
}
