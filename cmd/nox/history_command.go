package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crisslavik/nox-file-manager/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var entity string
	var task string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the ledger of completed saves",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			var records []history.Record
			if entity != "" {
				if task == "" {
					return fmt.Errorf("--task is required with --entity")
				}
				records, err = store.ForEntity(cmd.Context(), entity, task)
			} else {
				records, err = store.List(cmd.Context(), limit)
			}
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, records)
			}
			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				rows = append(rows, []string{
					formatTime(rec.SavedAt),
					rec.Entity,
					taskLabel(rec.Task),
					fmt.Sprintf("v%03d", rec.Version),
					rec.DCC,
					formatSize(rec.SizeBytes),
					rec.Path,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Saved", "Entity", "Task", "Version", "DCC", "Size", "Path"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum rows to show (0 = all)")
	cmd.Flags().StringVar(&entity, "entity", "", "Only saves of this entity")
	cmd.Flags().StringVar(&task, "task", "", "Task to pair with --entity")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON")
	return cmd
}
