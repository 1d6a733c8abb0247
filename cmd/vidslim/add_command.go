package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vidslim/internal/config"
	"vidslim/internal/discover"
	"vidslim/internal/queue"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var profileFlag string
	var recurse bool

	cmd := &cobra.Command{
		Use:   "add [path...]",
		Short: "Enqueue video files or folders for compression",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *queue.Store) error {
				added, skipped, err := enqueuePaths(cmd, cfg, store, args, profileFlag, recurse)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Added %d item(s) to the queue", added)
				if skipped > 0 {
					fmt.Fprintf(out, " (%d already queued)", skipped)
				}
				fmt.Fprintln(out)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&profileFlag, "profile", "p", "", "Compression profile (defaults to the configured default)")
	cmd.Flags().BoolVarP(&recurse, "recurse", "r", false, "Descend into subdirectories when adding folders")
	return cmd
}

func enqueuePaths(cmd *cobra.Command, cfg *config.Config, store *queue.Store, paths []string, profileFlag string, recurse bool) (added, skipped int, err error) {
	_, profileName, err := cfg.LookupProfile(profileFlag)
	if err != nil {
		return 0, 0, err
	}

	files, err := discover.Collect(paths, recurse, cfg.Output.Suffix)
	if err != nil {
		return 0, 0, err
	}
	if len(files) == 0 {
		return 0, 0, fmt.Errorf("no video files found under the given paths")
	}

	for _, file := range files {
		var size int64
		if info, statErr := os.Stat(file); statErr == nil {
			size = info.Size()
		}
		item, created, addErr := store.Add(cmd.Context(), file, profileName, size)
		if addErr != nil {
			return added, skipped, addErr
		}
		if created {
			added++
			fmt.Fprintf(cmd.OutOrStdout(), "  #%d %s (%s)\n", item.ID, file, profileName)
		} else {
			skipped++
		}
	}
	return added, skipped, nil
}
