package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"av1studio/internal/av1an"
)

func newCommandCommand(ctx *commandContext) *cobra.Command {
	flags := &settingsFlags{}

	cmd := &cobra.Command{
		Use:   "command",
		Short: "Synthesize and print the Av1an command line",
		Long: "Resolves settings from the configured default preset, an optional\n" +
			"--settings file, and individual flags, then prints the exact Av1an\n" +
			"invocation without running it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			resolved, err := resolveSettings(cmd, cfg, flags)
			if err != nil {
				return err
			}
			inv, err := av1an.BuildCommand(cfg.Tools.Av1an, resolved)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), inv.String())
			return nil
		},
	}

	registerSettingsFlags(cmd, flags)
	return cmd
}
