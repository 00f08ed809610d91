package config

const (
	defaultConfigPath            = "~/.config/submerge/config.toml"
	projectConfigFile            = "submerge.toml"
	dotEnvFile                   = ".env"
	defaultOutputDir             = "."
	defaultLogDir                = "~/.local/share/submerge/logs"
	defaultFFmpegBinary          = "ffmpeg"
	defaultFFprobeBinary         = "ffprobe"
	defaultProbeTimeoutSeconds   = 30
	defaultConvertTimeoutSeconds = 60
	defaultEncodeTimeoutSeconds  = 7200
	defaultMuxTimeoutSeconds     = 3600
	defaultCapabilityTTLSeconds  = 60
	defaultVideoCodec            = "libx264"
	defaultCRF                   = 20
	defaultPreset                = "fast"
	defaultAudioCodec            = "aac"
	defaultAudioBitrate          = "192k"
	defaultMode                  = ModeHard
	defaultMarginFraction        = 0.18
	defaultMinVideoBytes         = 1000
	defaultMinSubtitleBytes      = 5
	defaultMinOutputBytes        = 10000
	defaultSubtitleLanguage      = "eng"
	defaultCJKFont               = "Arial Unicode MS"
	defaultLatinFont             = "Arial"
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"

	minMarginFraction = 0.05
	maxMarginFraction = 0.45
)

// Merge modes.
const (
	ModeHard = "hard"
	ModeSoft = "soft"
)

// Environment variables consulted when the matching setting is unset.
const (
	EnvFFmpeg  = "SUBMERGE_FFMPEG"
	EnvFFprobe = "SUBMERGE_FFPROBE"
	EnvWorkDir = "SUBMERGE_WORK_DIR"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		FFmpeg: FFmpeg{
			ProbeTimeoutSeconds:   defaultProbeTimeoutSeconds,
			ConvertTimeoutSeconds: defaultConvertTimeoutSeconds,
			EncodeTimeoutSeconds:  defaultEncodeTimeoutSeconds,
			MuxTimeoutSeconds:     defaultMuxTimeoutSeconds,
			CapabilityTTLSeconds:  defaultCapabilityTTLSeconds,
		},
		Encoding: Encoding{
			VideoCodec:   defaultVideoCodec,
			CRF:          defaultCRF,
			Preset:       defaultPreset,
			AudioCodec:   defaultAudioCodec,
			AudioBitrate: defaultAudioBitrate,
		},
		Merge: Merge{
			Mode:             defaultMode,
			MarginFraction:   defaultMarginFraction,
			MinVideoBytes:    defaultMinVideoBytes,
			MinSubtitleBytes: defaultMinSubtitleBytes,
			MinOutputBytes:   defaultMinOutputBytes,
			SubtitleLanguage: defaultSubtitleLanguage,
		},
		Style: Style{
			CJKFont:   defaultCJKFont,
			LatinFont: defaultLatinFont,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
