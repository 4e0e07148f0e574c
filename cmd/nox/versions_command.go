package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crisslavik/nox-file-manager/internal/catalog"
	"github.com/crisslavik/nox-file-manager/internal/pipeline"
)

func newVersionsCommand(ctx *commandContext) *cobra.Command {
	var flags contextFlags
	var extFlag string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "versions",
		Short: "List the saved versions of one entity and task",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
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
			var entries []catalog.Entry
			for _, e := range snap.Sorted(catalog.SortVersion) {
				if e.Kind != catalog.KindVersionedFile || e.Parsed == nil {
					continue
				}
				if e.Parsed.Entity != pctx.ShotOrAsset || e.Parsed.Task != pctx.Task {
					continue
				}
				if extFlag != "" && !matchesExt(e.Parsed.Ext, extFlag) {
					continue
				}
				entries = append(entries, e)
			}

			if jsonOut {
				return writeJSON(cmd, entries)
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					entryVersionLabel(e),
					e.Name,
					formatSize(e.Size),
					formatTime(e.ModTime),
					yesNo(e.HasSidecar),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Version", "File", "Size", "Updated", "Sidecar"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	addContextFlags(cmd, &flags)
	cmd.Flags().StringVar(&extFlag, "ext", "", "Only this extension")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON")
	return cmd
}
