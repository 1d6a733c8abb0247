package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newProfilesCommand(ctx *commandContext) *cobra.Command {
	profilesCmd := &cobra.Command{
		Use:   "profiles",
		Short: "List the configured compression profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listProfiles(ctx, cmd)
		},
	}

	profilesCmd.AddCommand(&cobra.Command{
		Use:   "show <name>",
		Short: "Show a single profile in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			profile, name, err := cfg.LookupProfile(args[0])
			if err != nil {
				return err
			}
			rows := [][]string{
				{"quality (CRF)", strconv.FormatFloat(profile.Quality, 'f', -1, 64)},
				{"preset", profile.Preset},
				{"keyframe_interval", strconv.Itoa(profile.KeyframeInterval)},
				{"ref_frames", strconv.Itoa(profile.RefFrames)},
				{"b_frames", strconv.Itoa(profile.BFrames)},
				{"hardware_accel", yesNo(profile.HardwareAccel)},
				{"strip_audio", yesNo(profile.StripAudio)},
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile %s\n", name)
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(cmd.OutOrStdout(), []string{"Setting", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
			return nil
		},
	})

	return profilesCmd
}

func listProfiles(ctx *commandContext, cmd *cobra.Command) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(cfg.Profiles))
	for _, name := range cfg.ProfileNames() {
		profile := cfg.Profiles[name]
		display := name
		if name == cfg.DefaultProfile {
			display += " (default)"
		}
		rows = append(rows, []string{
			display,
			strconv.FormatFloat(profile.Quality, 'f', -1, 64),
			profile.Preset,
			strconv.Itoa(profile.KeyframeInterval),
			strconv.Itoa(profile.RefFrames),
			strconv.Itoa(profile.BFrames),
			yesNo(profile.HardwareAccel),
			yesNo(profile.StripAudio),
		})
	}

	table := renderTable(
		cmd.OutOrStdout(),
		[]string{"Profile", "CRF", "Preset", "Keyint", "Refs", "B-frames", "HW accel", "No audio"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignRight, alignRight, alignRight, alignLeft, alignLeft},
	)
	fmt.Fprintln(cmd.OutOrStdout(), table)
	return nil
}
