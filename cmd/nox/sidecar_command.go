package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crisslavik/nox-file-manager/internal/config"
	"github.com/crisslavik/nox-file-manager/internal/sidecar"
)

func newSidecarCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:         "sidecar <asset-file>",
		Short:       "Show the metadata sidecar of an asset file",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			meta, err := sidecar.Read(path)
			if err != nil {
				return err
			}
			if meta == nil {
				return fmt.Errorf("no sidecar next to %s", path)
			}

			if jsonOut {
				return writeJSON(cmd, meta)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "File:        %s\n", meta.File)
			fmt.Fprintf(out, "Saved:       %s\n", formatTime(meta.SavedAt))
			if meta.Software != "" {
				fmt.Fprintf(out, "Software:    %s\n", meta.Software)
			}
			if meta.User != "" {
				fmt.Fprintf(out, "User:        %s@%s\n", meta.User, meta.Host)
			}
			if meta.FrameRange != "" {
				fmt.Fprintf(out, "Frame range: %s\n", meta.FrameRange)
			}
			if meta.FPS != 0 {
				fmt.Fprintf(out, "FPS:         %g\n", meta.FPS)
			}
			if meta.OperationID != "" {
				fmt.Fprintf(out, "Operation:   %s\n", meta.OperationID)
			}
			for key, value := range meta.Extra {
				fmt.Fprintf(out, "Extra:       %s=%s\n", key, value)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON")
	return cmd
}
