package merge

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"submerge/internal/config"
	"submerge/internal/deps"
	"submerge/internal/language"
	"submerge/internal/logging"
	"submerge/internal/media/ffprobe"
	"submerge/internal/services"
	"submerge/internal/subtitles"
	"submerge/internal/textutil"
)

const (
	stageValidate = "validate"
	stageFinalize = "finalize"
)

// Prober inspects a media file. It matches ffprobe.Inspect.
type Prober func(ctx context.Context, binary, path string) (ffprobe.Result, error)

// Merger runs merge jobs. It is safe for sequential reuse; callers that run
// jobs concurrently should expect each job to spawn its own ffmpeg processes.
type Merger struct {
	cfg           *config.Config
	logger        *slog.Logger
	run           CommandRunner
	probe         Prober
	capabilities  deps.Filters
	trackLanguage string
	now           func() time.Time
	newJobID      func() string
}

// Option customizes a Merger.
type Option func(*Merger)

// WithCommandRunner overrides how external commands run.
func WithCommandRunner(runner CommandRunner) Option {
	return func(m *Merger) {
		if runner != nil {
			m.run = runner
		}
	}
}

// WithProber overrides media inspection.
func WithProber(probe Prober) Option {
	return func(m *Merger) {
		if probe != nil {
			m.probe = probe
		}
	}
}

// WithCapabilities sets the filter capabilities used when an Episode carries none.
func WithCapabilities(filters deps.Filters) Option {
	return func(m *Merger) {
		m.capabilities = filters
	}
}

// WithClock overrides the time source used for attempt timing.
func WithClock(now func() time.Time) Option {
	return func(m *Merger) {
		if now != nil {
			m.now = now
		}
	}
}

// WithJobIDs overrides job identifier generation.
func WithJobIDs(next func() string) Option {
	return func(m *Merger) {
		if next != nil {
			m.newJobID = next
		}
	}
}

// New builds a Merger. A nil cfg uses config.Default with binaries resolved
// from PATH.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Merger {
	if cfg == nil {
		def := config.Default()
		def.FFmpeg.FFmpegBinary = "ffmpeg"
		def.FFmpeg.FFprobeBinary = "ffprobe"
		cfg = &def
	}
	m := &Merger{
		cfg:           cfg,
		logger:        logging.NewComponentLogger(logger, "merge"),
		run:           runProcess,
		probe:         ffprobe.Inspect,
		trackLanguage: language.ToISO3(cfg.Merge.SubtitleLanguage),
		now:           time.Now,
		newJobID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// job is the per-episode state threaded through the strategies.
type job struct {
	id             string
	stage          string
	ws             *workspace
	safe           string
	videoPath      string
	subtitlePath   string
	subtitleExt    string
	script         subtitles.Script
	width          int
	height         int
	duration       float64
	marginFraction float64
	progress       ProgressFunc
}

func (j *job) report(message string) {
	if j.progress != nil {
		j.progress(message)
	}
}

// ProcessEpisode runs one job to completion. The workspace is removed and any
// panic is converted into a failed Result before returning.
func (m *Merger) ProcessEpisode(ctx context.Context, ep Episode) (result Result) {
	j := &job{
		id:       m.newJobID(),
		safe:     textutil.SanitizeEpisodeName(ep.Name),
		progress: ep.Progress,
	}
	ctx = services.WithJobID(ctx, j.id)
	ctx = services.WithEpisode(ctx, j.safe)
	logger := logging.WithContext(ctx, m.logger)
	start := m.now()

	defer func() {
		if j.ws == nil {
			return
		}
		if err := j.ws.remove(); err != nil {
			logging.WarnWithContext(logger, "workspace cleanup failed", "workspace_cleanup_failed",
				logging.String("workspace", j.ws.dir),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "remove the directory manually"),
				logging.String(logging.FieldImpact, "scratch files left on disk"),
			)
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			err := services.Wrap(services.ErrInternal, j.stage, "panic", fmt.Sprint(r), nil)
			logging.ErrorWithContext(logger, "merge panicked", "merge_panic",
				logging.Error(err),
				logging.String("stack", string(debug.Stack())),
			)
			result = Result{Message: fmt.Sprint(r), Err: err, Attempts: result.Attempts}
		}
	}()

	result = m.process(ctx, j, ep)
	attrs := []logging.Attr{
		logging.Bool("success", result.Success),
		logging.String("message", result.Message),
		logging.Duration("elapsed", elapsedSince(m.now, start)),
	}
	if result.Success {
		attrs = append(attrs, logging.String(logging.FieldEventType, "merge_complete"), logging.String(logging.FieldStrategy, result.Strategy))
		logger.Info("merge finished", logging.Args(attrs...)...)
	} else {
		attrs = append(attrs, logging.String("failure_kind", services.FailureKind(result.Err)))
		logger.Info("merge finished", logging.Args(attrs...)...)
	}
	return result
}

func (m *Merger) process(ctx context.Context, j *job, ep Episode) Result {
	j.stage = stageValidate
	ws, err := newWorkspace(m.cfg.Paths.WorkDir, j.id)
	if err != nil {
		return m.fail(ctx, j, err.Error(), services.Wrap(services.ErrInternal, j.stage, "workspace", "create", err))
	}
	j.ws = ws

	if res, ok := m.validate(ctx, j, ep); !ok {
		return res
	}

	mode := ep.Mode
	if mode == "" {
		mode = Mode(m.cfg.Merge.Mode)
	}
	j.stage = string(mode)
	ctx = services.WithStage(ctx, j.stage)

	var (
		chain      []strategy
		initialErr string
		prefix     string
	)
	switch mode {
	case ModeHard:
		caps := m.capabilities
		if ep.Capabilities != nil {
			caps = *ep.Capabilities
		}
		if !caps.Any() {
			const msg = "No subtitle filters available in FFmpeg"
			return m.fail(ctx, j, msg, services.Wrap(services.ErrCapability, j.stage, "filters", msg, nil))
		}
		chain, initialErr, prefix = m.hardChain(), "No methods ran", "All methods failed: "
	case ModeSoft:
		chain, prefix = m.softChain(), "Soft-sub failed: "
	default:
		msg := fmt.Sprintf("unknown merge mode %q", mode)
		return m.fail(ctx, j, msg, services.Wrap(services.ErrValidation, j.stage, "mode", msg, nil))
	}

	outcome := m.runChain(ctx, j, chain, initialErr)
	if outcome.winner == nil {
		msg := prefix + headRunes(outcome.lastErr, diagnosticTailRunes)
		res := m.fail(ctx, j, msg, services.Wrap(services.ErrExhausted, j.stage, "chain", headRunes(outcome.lastErr, diagnosticTailRunes), nil))
		res.Attempts = outcome.attempts
		return res
	}

	j.stage = stageFinalize
	data, err := os.ReadFile(outcome.output)
	if err != nil {
		res := m.fail(ctx, j, err.Error(), services.Wrap(services.ErrInternal, j.stage, "read output", "", err))
		res.Attempts = outcome.attempts
		return res
	}
	sizeMB := float64(len(data)) / 1024 / 1024
	j.report(fmt.Sprintf("Done! %.1f MB", sizeMB))
	return Result{
		Success:  true,
		Output:   data,
		Filename: j.safe + outcome.winner.ext,
		Message:  fmt.Sprintf("Done! (%.1f MB)", sizeMB),
		Strategy: outcome.winner.name,
		Attempts: outcome.attempts,
	}
}

// validate checks payload sizes before anything runs, stages the inputs in the
// workspace, parses the script, and probes the video.
func (m *Merger) validate(ctx context.Context, j *job, ep Episode) (Result, bool) {
	ctx = services.WithStage(ctx, stageValidate)
	if int64(len(ep.Video)) < m.cfg.Merge.MinVideoBytes {
		const msg = "Video file too small or corrupt"
		return m.fail(ctx, j, msg, services.Wrap(services.ErrValidation, j.stage, "video", msg, nil)), false
	}
	if int64(len(ep.Subtitle)) < m.cfg.Merge.MinSubtitleBytes {
		const msg = "Subtitle file too small or corrupt"
		return m.fail(ctx, j, msg, services.Wrap(services.ErrValidation, j.stage, "subtitle", msg, nil)), false
	}

	var err error
	if j.videoPath, err = j.ws.write("video"+inputExt(ep.VideoName, defaultVideoExt), ep.Video); err != nil {
		return m.fail(ctx, j, err.Error(), services.Wrap(services.ErrInternal, j.stage, "stage video", "", err)), false
	}
	j.subtitleExt = inputExt(ep.SubtitleName, defaultSubtitleExt)
	if j.subtitlePath, err = j.ws.write("subs"+j.subtitleExt, ep.Subtitle); err != nil {
		return m.fail(ctx, j, err.Error(), services.Wrap(services.ErrInternal, j.stage, "stage subtitle", "", err)), false
	}

	j.script = subtitles.Parse(ep.Subtitle)
	if j.script.Len() == 0 {
		const msg = "No subtitle entries found - check SRT format"
		return m.fail(ctx, j, msg, services.Wrap(services.ErrValidation, j.stage, "parse", msg, nil)), false
	}
	j.report(fmt.Sprintf("Subtitles: %d entries", j.script.Len()))

	j.marginFraction = ep.MarginFraction
	if j.marginFraction == 0 {
		j.marginFraction = m.cfg.Merge.MarginFraction
	}
	j.marginFraction = subtitles.ClampMarginFraction(j.marginFraction)

	video := m.probeVideo(ctx, j.videoPath)
	j.width, j.height, j.duration = video.width, video.height, video.duration
	j.report(fmt.Sprintf("Video: %dx%d  %.0fs", j.width, j.height, j.duration))
	attrs := []logging.Attr{
		logging.Int("entries", j.script.Len()),
		logging.String("encoding", j.script.Encoding),
		logging.String("resolution", fmt.Sprintf("%dx%d", j.width, j.height)),
		logging.Float64("duration_seconds", j.duration),
	}
	if video.probed {
		attrs = append(attrs, logging.Group("ffprobe",
			logging.Int("video_streams", video.videoStreams),
			logging.Int("audio_streams", video.audioStreams),
			logging.String("format_name", video.format),
		))
		// Both modes map audio optionally; a silent source yields a silent output.
		if video.audioStreams == 0 {
			attrs = append(attrs, logging.Alert("video has no audio stream"))
		}
	}
	logging.WithContext(ctx, m.logger).Info("inputs validated", logging.Args(attrs...)...)
	return Result{}, true
}

type videoInfo struct {
	width, height int
	duration      float64
	probed        bool
	videoStreams  int
	audioStreams  int
	format        string
}

// probeVideo returns dimensions and duration, substituting 1920x1080 and 0
// when ffprobe fails. Only layout quality depends on these values.
func (m *Merger) probeVideo(ctx context.Context, path string) videoInfo {
	video := videoInfo{width: subtitles.DefaultWidth, height: subtitles.DefaultHeight}
	probeCtx, cancel := context.WithTimeout(ctx, m.cfg.ProbeTimeout())
	defer cancel()

	info, err := m.probe(probeCtx, m.cfg.FFmpeg.FFprobeBinary, path)
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, m.logger), "video probe failed", "probe_failed",
			logging.Error(err),
			logging.Alert("layout defaults in use"),
			logging.String(logging.FieldErrorHint, "check that ffprobe is installed"),
			logging.String(logging.FieldImpact, "subtitle layout uses 1920x1080"),
		)
		return video
	}
	if w, h, ok := info.VideoDimensions(); ok {
		video.width, video.height = w, h
	}
	video.duration = info.VideoDurationSeconds()
	video.probed = true
	video.videoStreams = info.VideoStreamCount()
	video.audioStreams = info.AudioStreamCount()
	video.format = info.Format.FormatName
	return video
}

func (m *Merger) fail(ctx context.Context, j *job, message string, err error) Result {
	logger := logging.WithContext(ctx, m.logger)
	eventType := "merge_failed"
	switch services.FailureKind(err) {
	case services.KindValidation, services.KindCapability:
		eventType = "merge_validate_failed"
	case services.KindExhausted:
		eventType = "merge_exhausted"
	}
	logging.ErrorWithContext(logger, "merge failed", eventType,
		logging.String("message", message),
		logging.Error(err),
	)
	j.report(message)
	return Result{Message: message, Err: err}
}
