package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"vidslim/internal/batch"
	"vidslim/internal/config"
	"vidslim/internal/encoder"
	"vidslim/internal/logging"
	"vidslim/internal/naming"
	"vidslim/internal/queue"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var profileFlag string
	var recurse bool
	var stripAudio bool
	var deleteSource bool
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run [path...]",
		Short: "Process the queue, optionally enqueueing paths first",
		Long: "Run drains the queue one item at a time. Paths given as arguments " +
			"are enqueued before processing starts, so `vidslim run movie.mkv` " +
			"compresses a single file end to end.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *queue.Store) error {
				if len(args) > 0 {
					if _, _, err := enqueuePaths(cmd, cfg, store, args, profileFlag, recurse); err != nil {
						return err
					}
				}

				if dryRun {
					return printPlannedCommands(cmd, cfg, store, stripAudio)
				}

				logger, err := ctx.newLogger(cfg)
				if err != nil {
					return fmt.Errorf("initialize logging: %w", err)
				}
				logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays, logging.RetentionTarget{
					Dir:     cfg.Paths.LogDir,
					Pattern: "*.log",
					Exclude: []string{filepath.Join(cfg.Paths.LogDir, "vidslim.log")},
				})

				runner, err := batch.New(cfg, store, logger)
				if err != nil {
					return err
				}

				summary, err := runner.Run(cmd.Context(), batch.Options{
					StripAudio:   stripAudio,
					DeleteSource: deleteSource,
				})
				if err != nil {
					return err
				}

				printSummary(cmd, summary)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&profileFlag, "profile", "p", "", "Compression profile for newly added paths")
	cmd.Flags().BoolVarP(&recurse, "recurse", "r", false, "Descend into subdirectories when adding folders")
	cmd.Flags().BoolVar(&stripAudio, "strip-audio", false, "Drop all audio streams from outputs")
	cmd.Flags().BoolVar(&deleteSource, "delete-source", false, "Delete each source file after successful compression")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the ffmpeg command for each pending item without encoding")
	return cmd
}

func printPlannedCommands(cmd *cobra.Command, cfg *config.Config, store *queue.Store, stripAudio bool) error {
	items, err := store.List(cmd.Context(), queue.StatusPending)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(items) == 0 {
		fmt.Fprintln(out, "Queue is empty; nothing to do")
		return nil
	}
	for _, item := range items {
		profile, _, err := cfg.LookupProfile(item.Profile)
		if err != nil {
			return err
		}
		args := encoder.BuildArgs(encoder.Plan{
			Input:        item.SourcePath,
			Output:       naming.OutputPath(item.SourcePath, cfg.Output.Suffix, cfg.Output.Container),
			Profile:      profile,
			AudioBitrate: cfg.Encoder.AudioBitrate,
			StripAudio:   stripAudio,
		})
		fmt.Fprintf(out, "#%d %s %s\n", item.ID, cfg.Encoder.FFmpegBinary, strings.Join(args, " "))
	}
	return nil
}

func printSummary(cmd *cobra.Command, summary batch.Summary) {
	out := cmd.OutOrStdout()
	if summary.Processed == 0 {
		fmt.Fprintln(out, "Queue is empty; nothing to do")
		return
	}
	rows := [][]string{
		{"Processed", fmt.Sprintf("%d", summary.Processed)},
		{"Completed", fmt.Sprintf("%d", summary.Completed)},
		{"Failed", fmt.Sprintf("%d", summary.Failed)},
		{"Space saved", formatBytes(summary.SavedBytes)},
		{"Duration", summary.Duration.Round(time.Second).String()},
	}
	fmt.Fprintln(out, renderTable(out, []string{"Result", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
	if summary.Failed > 0 {
		fmt.Fprintln(out, "Some items failed; inspect them with `vidslim queue list --status failed`")
	}
}

func formatBytes(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%s%d B", sign, n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%s%.1f %ciB", sign, float64(n)/float64(div), "KMGTPE"[exp])
}
