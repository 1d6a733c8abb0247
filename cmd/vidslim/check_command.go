package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vidslim/internal/deps"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify external tools and hardware acceleration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			results := deps.CheckBinaries(deps.Requirements(cfg))
			rows := make([][]string, 0, len(results))
			missing := 0
			for _, status := range results {
				state := "ok"
				detail := status.Description
				if !status.Available {
					state = "missing"
					detail = status.Detail
					if !status.Optional {
						missing++
					}
				}
				rows = append(rows, []string{status.Name, status.Command, state, detail})
			}
			out := cmd.OutOrStdout()
			table := renderTable(
				out,
				[]string{"Tool", "Command", "State", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			)
			fmt.Fprintln(out, table)

			accels, err := deps.DetectHWAccels(cmd.Context(), cfg.Encoder.FFmpegBinary)
			if err != nil {
				fmt.Fprintln(out, "Hardware acceleration: could not query ffmpeg")
			} else if len(accels) == 0 {
				fmt.Fprintln(out, "Hardware acceleration: none detected (software encoding)")
			} else {
				fmt.Fprintf(out, "Hardware acceleration: %s\n", strings.Join(accels, ", "))
			}

			if missing > 0 {
				return fmt.Errorf("%d required tool(s) missing", missing)
			}
			return nil
		},
	}
}
