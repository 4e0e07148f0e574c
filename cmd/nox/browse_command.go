package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crisslavik/nox-file-manager/internal/catalog"
	"github.com/crisslavik/nox-file-manager/internal/pipeline"
)

func newBrowseCommand(ctx *commandContext) *cobra.Command {
	var flags contextFlags
	var sortFlag string
	var filterFlag string
	var extFlag string
	var compatibleOnly bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "List the assets in a pipeline context",
		Long: `Browse resolves the context given by the flags into a scope and lists
what lives there. Partial contexts resolve to a broader directory, so
"nox browse --seq SEQ01" lists the shots of a sequence.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			scope, err := flags.resolveScope(cfg, pipeline.OpLoad)
			if err != nil {
				return err
			}
			snap, err := catalog.Scan(cmd.Context(), scope)
			if err != nil {
				return err
			}

			sortKey, ok := catalog.ParseSortKey(sortFlag)
			if !ok {
				return fmt.Errorf("unknown sort key %q (name, task, version, size, updated)", sortFlag)
			}
			view := &catalog.Snapshot{
				Scope:     snap.Scope,
				Entries:   snap.Sorted(sortKey),
				Warnings:  snap.Warnings,
				ScannedAt: snap.ScannedAt,
			}
			entries := view.Filtered(catalog.Filter{
				Query:          filterFlag,
				Ext:            extFlag,
				CompatibleOnly: compatibleOnly,
			})

			if jsonOut {
				return writeJSON(cmd, struct {
					Root     string            `json:"root"`
					Entries  []catalog.Entry   `json:"entries"`
					Warnings []catalog.Warning `json:"warnings,omitempty"`
				}{snap.Scope.Root, entries, snap.Warnings})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%d compatible)\n", scope.Root, snap.CompatibleCount())
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				size := ""
				if e.Kind != catalog.KindDirectory {
					size = formatSize(e.Size)
				}
				rows = append(rows, []string{
					e.Name,
					entryKindLabel(e),
					entryTaskLabel(e),
					entryVersionLabel(e),
					size,
					formatTime(e.ModTime),
					yesNo(e.HasSidecar),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Name", "Kind", "Task", "Version", "Size", "Updated", "Sidecar"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft},
			))
			for _, warning := range snap.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %s\n", warning.Path, warning.Reason)
			}
			return nil
		},
	}

	addContextFlags(cmd, &flags)
	cmd.Flags().StringVar(&sortFlag, "sort", "name", "Sort key: name, task, version, size, updated")
	cmd.Flags().StringVar(&filterFlag, "filter", "", "Substring filter on entry names")
	cmd.Flags().StringVar(&extFlag, "ext", "", "Only list files with this extension")
	cmd.Flags().BoolVar(&compatibleOnly, "compatible-only", false, "Hide files foreign to the active application")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}
