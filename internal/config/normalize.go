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
	c.normalizeFFmpeg()
	c.normalizeEncoding()
	c.normalizeMerge()
	c.normalizeStyle()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		if value, ok := os.LookupEnv(EnvWorkDir); ok {
			c.Paths.WorkDir = strings.TrimSpace(value)
		}
	}
	if c.Paths.WorkDir, err = expandPath(strings.TrimSpace(c.Paths.WorkDir)); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeFFmpeg() {
	c.FFmpeg.FFmpegBinary = strings.TrimSpace(c.FFmpeg.FFmpegBinary)
	if c.FFmpeg.FFmpegBinary == "" {
		if value, ok := os.LookupEnv(EnvFFmpeg); ok {
			c.FFmpeg.FFmpegBinary = strings.TrimSpace(value)
		}
	}
	if c.FFmpeg.FFmpegBinary == "" {
		c.FFmpeg.FFmpegBinary = defaultFFmpegBinary
	}
	c.FFmpeg.FFprobeBinary = strings.TrimSpace(c.FFmpeg.FFprobeBinary)
	if c.FFmpeg.FFprobeBinary == "" {
		if value, ok := os.LookupEnv(EnvFFprobe); ok {
			c.FFmpeg.FFprobeBinary = strings.TrimSpace(value)
		}
	}
	if c.FFmpeg.FFprobeBinary == "" {
		c.FFmpeg.FFprobeBinary = defaultFFprobeBinary
	}
	if c.FFmpeg.CapabilityTTLSeconds <= 0 {
		c.FFmpeg.CapabilityTTLSeconds = defaultCapabilityTTLSeconds
	}
}

func (c *Config) normalizeEncoding() {
	c.Encoding.VideoCodec = strings.TrimSpace(c.Encoding.VideoCodec)
	if c.Encoding.VideoCodec == "" {
		c.Encoding.VideoCodec = defaultVideoCodec
	}
	c.Encoding.Preset = strings.ToLower(strings.TrimSpace(c.Encoding.Preset))
	if c.Encoding.Preset == "" {
		c.Encoding.Preset = defaultPreset
	}
	c.Encoding.AudioCodec = strings.TrimSpace(c.Encoding.AudioCodec)
	if c.Encoding.AudioCodec == "" {
		c.Encoding.AudioCodec = defaultAudioCodec
	}
	c.Encoding.AudioBitrate = strings.TrimSpace(c.Encoding.AudioBitrate)
	if c.Encoding.AudioBitrate == "" {
		c.Encoding.AudioBitrate = defaultAudioBitrate
	}
}

func (c *Config) normalizeMerge() {
	c.Merge.Mode = strings.ToLower(strings.TrimSpace(c.Merge.Mode))
	if c.Merge.Mode == "" {
		c.Merge.Mode = defaultMode
	}
	if c.Merge.MarginFraction == 0 {
		c.Merge.MarginFraction = defaultMarginFraction
	}
	if c.Merge.MinVideoBytes <= 0 {
		c.Merge.MinVideoBytes = defaultMinVideoBytes
	}
	if c.Merge.MinSubtitleBytes <= 0 {
		c.Merge.MinSubtitleBytes = defaultMinSubtitleBytes
	}
	if c.Merge.MinOutputBytes <= 0 {
		c.Merge.MinOutputBytes = defaultMinOutputBytes
	}
	c.Merge.SubtitleLanguage = strings.ToLower(strings.TrimSpace(c.Merge.SubtitleLanguage))
	if c.Merge.SubtitleLanguage == "" {
		c.Merge.SubtitleLanguage = defaultSubtitleLanguage
	}
}

func (c *Config) normalizeStyle() {
	c.Style.CJKFont = strings.TrimSpace(c.Style.CJKFont)
	if c.Style.CJKFont == "" {
		c.Style.CJKFont = defaultCJKFont
	}
	c.Style.LatinFont = strings.TrimSpace(c.Style.LatinFont)
	if c.Style.LatinFont == "" {
		c.Style.LatinFont = defaultLatinFont
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
