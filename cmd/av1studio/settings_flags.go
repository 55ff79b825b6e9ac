package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"av1studio/internal/config"
	"av1studio/internal/settings"
)

// settingsFlags carries the raw flag values for every tunable encoding
// parameter. Values are applied over the resolved base settings only when
// the flag was set on the command line, so file-provided values survive.
type settingsFlags struct {
	settingsPath string

	input  string
	output string
	scenes string
	zones  string

	sourceLibrary string
	concatenation string
	pixelFormat   string

	width  int
	height int

	preset      int
	crf         float64
	filmGrain   int
	extraParams string

	colorPrimaries          int
	transferCharacteristics int
	matrixCoefficients      int
	colorRange              int

	threadAffinity int
	workers        int
}

func registerSettingsFlags(cmd *cobra.Command, flags *settingsFlags) {
	fs := cmd.Flags()

	fs.StringVar(&flags.settingsPath, "settings", "", "Settings file (TOML) to load before applying flags")

	fs.StringVarP(&flags.input, "input", "i", "", "Input video file")
	fs.StringVarP(&flags.output, "output", "o", "", "Output video file")
	fs.StringVar(&flags.scenes, "scenes", "", "Scenes file for reuse across runs")
	fs.StringVar(&flags.zones, "zones", "", "Zones file with per-range overrides")

	fs.StringVar(&flags.sourceLibrary, "source-library", "", "Chunking source library (bestsource, lsmash, ffms2)")
	fs.StringVar(&flags.concatenation, "concat", "", "Concatenation method (mkvmerge, ffmpeg, ivf)")
	fs.StringVar(&flags.pixelFormat, "pix-format", "", "Output pixel format (yuv420p10le, yuv420p)")

	fs.IntVar(&flags.width, "width", 0, "Output width (0 keeps source)")
	fs.IntVar(&flags.height, "height", 0, "Output height (0 keeps source)")

	fs.IntVar(&flags.preset, "preset", settings.DefaultPreset, "Encoder preset (0-13, lower is slower)")
	fs.Float64Var(&flags.crf, "crf", settings.DefaultCRF, "Constant rate factor (0-70 in 0.25 steps)")
	fs.IntVar(&flags.filmGrain, "film-grain", settings.DefaultFilmGrain, "Film grain synthesis strength")
	fs.StringVar(&flags.extraParams, "extra-params", "", "Raw encoder parameters replacing the synthesized ones")

	fs.IntVar(&flags.colorPrimaries, "color-primaries", settings.ColorUnspecified, "Color primaries code")
	fs.IntVar(&flags.transferCharacteristics, "transfer-characteristics", settings.ColorUnspecified, "Transfer characteristics code")
	fs.IntVar(&flags.matrixCoefficients, "matrix-coefficients", settings.ColorUnspecified, "Matrix coefficients code")
	fs.IntVar(&flags.colorRange, "color-range", settings.ColorRangeStudio, "Color range (0 studio, 1 full)")

	fs.IntVar(&flags.threadAffinity, "thread-affinity", 0, "Pin each worker to this many threads (0 disables)")
	fs.IntVar(&flags.workers, "workers", 0, "Number of encode workers (0 lets Av1an decide)")
}

// resolveSettings layers the settings sources lowest to highest: defaults,
// the configured default preset file, an explicit --settings file, then
// individual flags. The result is validated; nothing is ever clamped.
func resolveSettings(cmd *cobra.Command, cfg *config.Config, flags *settingsFlags) (settings.Settings, error) {
	resolved := settings.Default()

	if base := strings.TrimSpace(cfg.Paths.DefaultPreset); base != "" {
		loaded, err := settings.Load(base)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: default preset %s ignored: %v\n", base, err)
		} else {
			resolved = loaded
		}
	}

	if path := strings.TrimSpace(flags.settingsPath); path != "" {
		expanded, err := config.ExpandPath(path)
		if err != nil {
			return settings.Settings{}, err
		}
		loaded, err := settings.Load(expanded)
		if err != nil {
			return settings.Settings{}, fmt.Errorf("load settings file: %w", err)
		}
		resolved = loaded
	}

	if err := applyFlagOverrides(cmd, flags, &resolved); err != nil {
		return settings.Settings{}, err
	}
	if err := resolved.Validate(); err != nil {
		return settings.Settings{}, err
	}
	return resolved, nil
}

func applyFlagOverrides(cmd *cobra.Command, flags *settingsFlags, resolved *settings.Settings) error {
	fs := cmd.Flags()

	if fs.Changed("input") {
		expanded, err := config.ExpandPath(flags.input)
		if err != nil {
			return err
		}
		resolved.InputFile = expanded
	}
	if fs.Changed("output") {
		expanded, err := config.ExpandPath(flags.output)
		if err != nil {
			return err
		}
		resolved.OutputFile = expanded
	}
	if fs.Changed("scenes") {
		expanded, err := config.ExpandPath(flags.scenes)
		if err != nil {
			return err
		}
		resolved.ScenesFile = expanded
	}
	if fs.Changed("zones") {
		expanded, err := config.ExpandPath(flags.zones)
		if err != nil {
			return err
		}
		resolved.ZonesFile = expanded
	}

	if fs.Changed("source-library") {
		library, err := settings.ParseSourceLibrary(flags.sourceLibrary)
		if err != nil {
			return err
		}
		resolved.SourceLibrary = library
	}
	if fs.Changed("concat") {
		method, err := settings.ParseConcatMethod(flags.concatenation)
		if err != nil {
			return err
		}
		resolved.Concatenation = method
	}
	if fs.Changed("pix-format") {
		format, err := settings.ParsePixelFormat(flags.pixelFormat)
		if err != nil {
			return err
		}
		resolved.PixelFormat = format
	}

	if fs.Changed("width") {
		resolved.Width = flags.width
	}
	if fs.Changed("height") {
		resolved.Height = flags.height
	}
	if fs.Changed("preset") {
		resolved.Preset = flags.preset
	}
	if fs.Changed("crf") {
		resolved.CRF = flags.crf
	}
	if fs.Changed("film-grain") {
		resolved.FilmGrain = flags.filmGrain
	}
	if fs.Changed("extra-params") {
		resolved.ExtraParams = flags.extraParams
	}
	if fs.Changed("color-primaries") {
		resolved.ColorPrimaries = flags.colorPrimaries
	}
	if fs.Changed("transfer-characteristics") {
		resolved.TransferCharacteristics = flags.transferCharacteristics
	}
	if fs.Changed("matrix-coefficients") {
		resolved.MatrixCoefficients = flags.matrixCoefficients
	}
	if fs.Changed("color-range") {
		resolved.ColorRange = flags.colorRange
	}
	if fs.Changed("thread-affinity") {
		resolved.ThreadAffinity = flags.threadAffinity
	}
	if fs.Changed("workers") {
		resolved.Workers = flags.workers
	}
	return nil
}
