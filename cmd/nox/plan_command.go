package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crisslavik/nox-file-manager/internal/catalog"
	"github.com/crisslavik/nox-file-manager/internal/pipeline"
	"github.com/crisslavik/nox-file-manager/internal/planner"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var flags contextFlags
	var extFlag string
	var versionFlag int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute the next save target without writing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if extFlag == "" {
				return fmt.Errorf("--ext is required")
			}
			scope, err := flags.resolveScope(cfg, pipeline.OpSave)
			if err != nil {
				return err
			}
			snap, err := catalog.Scan(cmd.Context(), scope)
			if err != nil {
				return err
			}

			pctx := flags.pipelineContext()
			var plan planner.Plan
			if versionFlag > 0 {
				plan, err = planner.PlanOverwrite(snap, pctx.ShotOrAsset, pctx.Task, extFlag, versionFlag)
			} else {
				plan, err = planner.PlanSave(snap, pctx.ShotOrAsset, pctx.Task, extFlag)
			}
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, plan)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Target:   %s\n", plan.TargetPath)
			fmt.Fprintf(out, "Version:  %d\n", plan.Version)
			fmt.Fprintf(out, "Collides: %s\n", yesNo(plan.CollidesWithExisting))
			for _, warning := range plan.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", warning)
			}
			return nil
		},
	}

	addContextFlags(cmd, &flags)
	cmd.Flags().StringVar(&extFlag, "ext", "", "Extension of the file to be saved (required)")
	cmd.Flags().IntVar(&versionFlag, "version", 0, "Plan an overwrite of this exact version")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON")
	return cmd
}
