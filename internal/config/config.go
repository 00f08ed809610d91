package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	WorkDir   string `toml:"work_dir"`
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
}

// FFmpeg contains external tool locations and per-operation time limits.
type FFmpeg struct {
	FFmpegBinary          string `toml:"ffmpeg_binary"`
	FFprobeBinary         string `toml:"ffprobe_binary"`
	ProbeTimeoutSeconds   int    `toml:"probe_timeout_seconds"`
	ConvertTimeoutSeconds int    `toml:"convert_timeout_seconds"`
	EncodeTimeoutSeconds  int    `toml:"encode_timeout_seconds"`
	MuxTimeoutSeconds     int    `toml:"mux_timeout_seconds"`
	CapabilityTTLSeconds  int    `toml:"capability_ttl_seconds"`
}

// Encoding contains the burn-in encode profile.
type Encoding struct {
	VideoCodec   string `toml:"video_codec"`
	CRF          int    `toml:"crf"`
	Preset       string `toml:"preset"`
	AudioCodec   string `toml:"audio_codec"`
	AudioBitrate string `toml:"audio_bitrate"`
}

// Merge contains per-job defaults and validation thresholds.
type Merge struct {
	Mode             string  `toml:"mode"`
	MarginFraction   float64 `toml:"margin_fraction"`
	MinVideoBytes    int64   `toml:"min_video_bytes"`
	MinSubtitleBytes int64   `toml:"min_subtitle_bytes"`
	MinOutputBytes   int64   `toml:"min_output_bytes"`
	SubtitleLanguage string  `toml:"subtitle_language"`
}

// Style contains font families used in generated ASS scripts.
type Style struct {
	CJKFont   string `toml:"cjk_font"`
	LatinFont string `toml:"latin_font"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for submerge.
//
// Configuration sections by subsystem:
//   - Paths: scratch, output, and log directories
//   - FFmpeg: binaries and timeouts for probing, conversion, encoding, muxing
//   - Encoding: the burn-in encode profile
//   - Merge: default mode, margin, and size thresholds
//   - Style: fonts for the CJK and Latin subtitle styles
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	FFmpeg   FFmpeg   `toml:"ffmpeg"`
	Encoding Encoding `toml:"encoding"`
	Merge    Merge    `toml:"merge"`
	Style    Style    `toml:"style"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized. A .env file in the working directory is read
// first so its values can feed the environment fallbacks.
func Load(path string) (*Config, string, bool, error) {
	if err := loadDotEnv(dotEnvFile); err != nil {
		return nil, "", false, err
	}

	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigFile)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the work, output, and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.WorkDir, c.Paths.OutputDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// ProbeTimeout bounds a single ffprobe invocation.
func (c *Config) ProbeTimeout() time.Duration {
	return seconds(c.FFmpeg.ProbeTimeoutSeconds, defaultProbeTimeoutSeconds)
}

// ConvertTimeout bounds subtitle format conversion.
func (c *Config) ConvertTimeout() time.Duration {
	return seconds(c.FFmpeg.ConvertTimeoutSeconds, defaultConvertTimeoutSeconds)
}

// EncodeTimeout bounds a burn-in encode.
func (c *Config) EncodeTimeout() time.Duration {
	return seconds(c.FFmpeg.EncodeTimeoutSeconds, defaultEncodeTimeoutSeconds)
}

// MuxTimeout bounds a soft-subtitle mux.
func (c *Config) MuxTimeout() time.Duration {
	return seconds(c.FFmpeg.MuxTimeoutSeconds, defaultMuxTimeoutSeconds)
}

// CapabilityTTL is how long filter capability results are reused.
func (c *Config) CapabilityTTL() time.Duration {
	return seconds(c.FFmpeg.CapabilityTTLSeconds, defaultCapabilityTTLSeconds)
}

func seconds(value, fallback int) time.Duration {
	if value <= 0 {
		value = fallback
	}
	return time.Duration(value) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// SampleConfig returns the embedded sample configuration.
func SampleConfig() string {
	return sampleConfig
}
