package config

const (
	defaultLogDir       = "~/.local/share/av1studio/logs"
	defaultPresetDB     = "~/.local/share/av1studio/presets.db"
	defaultAv1anBinary  = "av1an-verbosity"
	defaultSVTAV1Binary = "SvtAv1EncApp"
	defaultMkvmergeName = "mkvmerge"
	defaultFFmpegName   = "ffmpeg"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:   defaultLogDir,
			PresetDB: defaultPresetDB,
		},
		Tools: Tools{
			Av1an:    defaultAv1anBinary,
			SVTAV1:   defaultSVTAV1Binary,
			Mkvmerge: defaultMkvmergeName,
			FFmpeg:   defaultFFmpegName,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
