package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.PresetDB) == "" {
		c.Paths.PresetDB = defaultPresetDB
	}
	if c.Paths.PresetDB, err = expandPath(c.Paths.PresetDB); err != nil {
		return fmt.Errorf("paths.preset_db: %w", err)
	}
	c.Paths.DefaultPreset = strings.TrimSpace(c.Paths.DefaultPreset)
	if c.Paths.DefaultPreset != "" {
		if c.Paths.DefaultPreset, err = expandPath(c.Paths.DefaultPreset); err != nil {
			return fmt.Errorf("paths.default_preset: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.Av1an = strings.TrimSpace(c.Tools.Av1an)
	if c.Tools.Av1an == "" {
		if value, ok := os.LookupEnv("AV1AN_BINARY"); ok && strings.TrimSpace(value) != "" {
			c.Tools.Av1an = strings.TrimSpace(value)
		} else {
			c.Tools.Av1an = defaultAv1anBinary
		}
	}
	c.Tools.SVTAV1 = strings.TrimSpace(c.Tools.SVTAV1)
	if c.Tools.SVTAV1 == "" {
		c.Tools.SVTAV1 = defaultSVTAV1Binary
	}
	c.Tools.Mkvmerge = strings.TrimSpace(c.Tools.Mkvmerge)
	if c.Tools.Mkvmerge == "" {
		c.Tools.Mkvmerge = defaultMkvmergeName
	}
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = defaultFFmpegName
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
