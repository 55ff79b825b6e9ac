package settings

import "strconv"

// Defaults for the tunable fields. CRF and preset follow the SVT-AV1-PSY
// community sweet spots the original tool shipped with.
const (
	DefaultPreset      = 4
	DefaultCRF         = 27.0
	DefaultFilmGrain   = 0
	PresetMin          = 0
	PresetMax          = 13
	CRFMin             = 0.0
	CRFMax             = 70.0
	CRFStep            = 0.25
	DefaultPixelFormat = PixelFormat420P10LE
)

// Settings is the full set of encoding parameters consumed by the command
// synthesizer. Zero values mean "unset" for optional fields; Width and
// Height of 0 keep the source resolution, Workers and ThreadAffinity of 0
// leave scheduling to Av1an and the OS.
type Settings struct {
	InputFile  string `toml:"input_file"`
	OutputFile string `toml:"output_file"`
	ScenesFile string `toml:"scenes_file"`
	ZonesFile  string `toml:"zones_file"`

	SourceLibrary SourceLibrary `toml:"source_library"`
	Concatenation ConcatMethod  `toml:"concatenation"`

	Width       int         `toml:"width"`
	Height      int         `toml:"height"`
	PixelFormat PixelFormat `toml:"pixel_format"`

	Preset      int     `toml:"preset"`
	CRF         float64 `toml:"crf"`
	FilmGrain   int     `toml:"film_grain"`
	ExtraParams string  `toml:"extra_params"`

	ColorPrimaries          int `toml:"color_primaries"`
	TransferCharacteristics int `toml:"transfer_characteristics"`
	MatrixCoefficients      int `toml:"matrix_coefficients"`
	ColorRange              int `toml:"color_range"`

	ThreadAffinity int `toml:"thread_affinity"`
	Workers        int `toml:"workers"`
}

// Default returns Settings populated with the documented defaults.
func Default() Settings {
	return Settings{
		SourceLibrary:           SourceBestSource,
		Concatenation:           ConcatMkvmerge,
		PixelFormat:             DefaultPixelFormat,
		Preset:                  DefaultPreset,
		CRF:                     DefaultCRF,
		FilmGrain:               DefaultFilmGrain,
		ColorPrimaries:          ColorUnspecified,
		TransferCharacteristics: ColorUnspecified,
		MatrixCoefficients:      ColorUnspecified,
		ColorRange:              ColorRangeStudio,
	}
}

// HasResolution reports whether the output is rescaled.
func (s Settings) HasResolution() bool {
	return s.Width > 0 && s.Height > 0
}

// FormatCRF renders a CRF value without trailing zeros, matching what the
// encoder expects on its command line ("27", "23.25").
func FormatCRF(crf float64) string {
	return strconv.FormatFloat(crf, 'f', -1, 64)
}
