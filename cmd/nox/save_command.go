package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crisslavik/nox-file-manager/internal/config"
	"github.com/crisslavik/nox-file-manager/internal/saver"
)

func newSaveCommand(ctx *commandContext) *cobra.Command {
	var flags contextFlags
	var versionFlag int
	var frameRange string
	var fps float64
	var extraPairs []string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "save <staged-file>",
		Short: "Commit a staged scene file as the next version",
		Long: `Save takes a file the host application already wrote to a staging
location and commits it into the pipeline: the next version number is
planned under an exclusive lock, backups rotate if the target exists, the
payload is copied with checksum verification, and a metadata sidecar plus
a history record are written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			source, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			extra, err := parseExtraPairs(extraPairs)
			if err != nil {
				return err
			}

			store, err := ctx.openHistory()
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: history unavailable: %v\n", err)
				store = nil
			} else {
				defer store.Close()
			}

			s := saver.New(cfg, store, ctx.ensureLogger())
			result, err := s.Save(cmd.Context(), saver.Request{
				Context:    flags.pipelineContext(),
				DCC:        flags.dccName(cfg),
				SourcePath: source,
				Version:    versionFlag,
				FrameRange: frameRange,
				FPS:        fps,
				Extra:      extra,
			})
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, result)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Saved %s (v%d)\n", result.Path, result.Version)
			if result.Overwrote {
				fmt.Fprintf(out, "Overwrote existing version; %d backup slot(s) rotated\n", len(result.Backups.Backups))
			}
			for _, warning := range result.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", warning)
			}
			return nil
		},
	}

	addContextFlags(cmd, &flags)
	cmd.Flags().IntVar(&versionFlag, "version", 0, "Overwrite this exact version instead of planning the next")
	cmd.Flags().StringVar(&frameRange, "frame-range", "", "Frame range recorded in the sidecar, e.g. 1001-1120")
	cmd.Flags().Float64Var(&fps, "fps", 0, "Frames per second recorded in the sidecar")
	cmd.Flags().StringArrayVar(&extraPairs, "extra", nil, "Extra sidecar metadata as key=value (repeatable)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON")
	return cmd
}
