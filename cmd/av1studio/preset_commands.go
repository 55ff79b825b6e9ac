package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"av1studio/internal/config"
	"av1studio/internal/presetstore"
	"av1studio/internal/settings"
)

func newPresetCommand(ctx *commandContext) *cobra.Command {
	presetCmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage the preset catalog",
	}

	presetCmd.AddCommand(newPresetSaveCommand(ctx))
	presetCmd.AddCommand(newPresetShowCommand(ctx))
	presetCmd.AddCommand(newPresetListCommand(ctx))
	presetCmd.AddCommand(newPresetDeleteCommand(ctx))
	presetCmd.AddCommand(newPresetExportCommand(ctx))

	return presetCmd
}

func withPresetStore(ctx *commandContext, fn func(*presetstore.Store) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	store, err := presetstore.Open(cfg.Paths.PresetDB)
	if err != nil {
		return fmt.Errorf("open preset catalog: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func newPresetSaveCommand(ctx *commandContext) *cobra.Command {
	flags := &settingsFlags{}

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save the resolved settings under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			resolved, err := resolveSettings(cmd, cfg, flags)
			if err != nil {
				return err
			}
			return withPresetStore(ctx, func(store *presetstore.Store) error {
				if err := store.Save(cmd.Context(), args[0], resolved); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved preset %q\n", args[0])
				return nil
			})
		},
	}

	registerSettingsFlags(cmd, flags)
	return cmd
}

func newPresetShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Display a saved preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPresetStore(ctx, func(store *presetstore.Store) error {
				loaded, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				table := renderKeyValueTable("Setting", "Value", settingsRows(loaded))
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}
}

func newPresetListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPresetStore(ctx, func(store *presetstore.Store) error {
				entries, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "No presets saved")
					return nil
				}
				rows := make([][2]string, 0, len(entries))
				for _, entry := range entries {
					rows = append(rows, [2]string{
						entry.Name,
						entry.UpdatedAt.Local().Format(time.RFC3339),
					})
				}
				fmt.Fprintln(out, renderKeyValueTable("Name", "Updated", rows))
				return nil
			})
		},
	}
}

func newPresetDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPresetStore(ctx, func(store *presetstore.Store) error {
				if err := store.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted preset %q\n", args[0])
				return nil
			})
		},
	}
}

func newPresetExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export <name> <file>",
		Short: "Export a saved preset to a settings file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPresetStore(ctx, func(store *presetstore.Store) error {
				loaded, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				target, err := config.ExpandPath(args[1])
				if err != nil {
					return err
				}
				if err := settings.Save(target, loaded); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported preset %q to %s\n", args[0], target)
				return nil
			})
		},
	}
}
