package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateFFmpeg(); err != nil {
		return err
	}
	if err := c.validateEncoding(); err != nil {
		return err
	}
	if err := c.validateMerge(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateFFmpeg() error {
	if strings.TrimSpace(c.FFmpeg.FFmpegBinary) == "" {
		return errors.New("ffmpeg.ffmpeg_binary must be set")
	}
	if strings.TrimSpace(c.FFmpeg.FFprobeBinary) == "" {
		return errors.New("ffmpeg.ffprobe_binary must be set")
	}
	timeouts := []struct {
		key   string
		value int
	}{
		{"ffmpeg.probe_timeout_seconds", c.FFmpeg.ProbeTimeoutSeconds},
		{"ffmpeg.convert_timeout_seconds", c.FFmpeg.ConvertTimeoutSeconds},
		{"ffmpeg.encode_timeout_seconds", c.FFmpeg.EncodeTimeoutSeconds},
		{"ffmpeg.mux_timeout_seconds", c.FFmpeg.MuxTimeoutSeconds},
	}
	for _, timeout := range timeouts {
		if timeout.value <= 0 {
			return fmt.Errorf("%s must be positive", timeout.key)
		}
	}
	return nil
}

func (c *Config) validateEncoding() error {
	if c.Encoding.CRF < 0 || c.Encoding.CRF > 51 {
		return fmt.Errorf("encoding.crf must be between 0 and 51, got %d", c.Encoding.CRF)
	}
	return nil
}

func (c *Config) validateMerge() error {
	switch c.Merge.Mode {
	case ModeHard, ModeSoft:
	default:
		return fmt.Errorf("merge.mode must be %q or %q, got %q", ModeHard, ModeSoft, c.Merge.Mode)
	}
	if c.Merge.MarginFraction < minMarginFraction || c.Merge.MarginFraction > maxMarginFraction {
		return fmt.Errorf("merge.margin_fraction must be between %.2f and %.2f, got %v", minMarginFraction, maxMarginFraction, c.Merge.MarginFraction)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}
