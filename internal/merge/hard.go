package merge

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"submerge/internal/fileutil"
	"submerge/internal/subtitles"
)

const (
	styledASSName    = "styled.ass"
	convertedASSName = "conv.ass"
)

var errNoDialogue = errors.New("no dialogue events generated")

func (m *Merger) hardChain() []strategy {
	return []strategy{
		{name: "Dual-style ASS burn", ext: ".mp4", silent: "failed silently", run: m.burnStyledASS},
		{name: "Subtitles filter", ext: ".mp4", silent: "failed silently", run: m.burnSubtitlesFilter},
		{name: "FFmpeg ASS convert", ext: ".mp4", silent: "failed silently", run: m.burnConvertedASS},
	}
}

// burnStyledASS renders the dual-style script and burns it with the ass filter.
func (m *Merger) burnStyledASS(ctx context.Context, j *job, out string) (ProcessResult, error) {
	layout := subtitles.ComputeLayout(j.width, j.height, j.marginFraction)
	assPath := j.ws.path(styledASSName)
	events, err := subtitles.WriteASS(assPath, j.script, layout, m.styleOptions())
	if err != nil {
		return ProcessResult{ExitCode: -1}, err
	}
	if events == 0 {
		return ProcessResult{ExitCode: -1, Err: errNoDialogue}, nil
	}
	return m.burn(ctx, j.videoPath, "ass='"+escapeFilterPath(assPath)+"'", out), nil
}

// burnSubtitlesFilter hands the original subtitle file to ffmpeg unchanged.
func (m *Merger) burnSubtitlesFilter(ctx context.Context, j *job, out string) (ProcessResult, error) {
	filter := "subtitles"
	if isASS(j.subtitleExt) {
		filter = "ass"
	}
	return m.burn(ctx, j.videoPath, filter+"='"+escapeFilterPath(j.subtitlePath)+"'", out), nil
}

// burnConvertedASS lets ffmpeg convert the subtitle to ASS first, then burns that.
func (m *Merger) burnConvertedASS(ctx context.Context, j *job, out string) (ProcessResult, error) {
	converted := j.ws.path(convertedASSName)
	conv := m.run(ctx, m.cfg.ConvertTimeout(), m.cfg.FFmpeg.FFmpegBinary, "-y", "-i", j.subtitlePath, converted)
	if !conv.OK() {
		return conv, nil
	}
	if fileutil.FileSize(converted) == 0 {
		return ProcessResult{ExitCode: -1, Stderr: conv.Stderr, Err: errors.New("conversion produced no output")}, nil
	}
	return m.burn(ctx, j.videoPath, "ass='"+escapeFilterPath(converted)+"'", out), nil
}

func (m *Merger) burn(ctx context.Context, video, filter, out string) ProcessResult {
	return m.run(ctx, m.cfg.EncodeTimeout(), m.cfg.FFmpeg.FFmpegBinary, m.burnArgs(video, filter, out)...)
}

// burnArgs builds the re-encode command line shared by every hard strategy.
func (m *Merger) burnArgs(video, filter, out string) []string {
	enc := m.cfg.Encoding
	return []string{
		"-y",
		"-i", video,
		"-vf", filter,
		"-c:v", enc.VideoCodec, "-crf", strconv.Itoa(enc.CRF), "-preset", enc.Preset,
		"-c:a", enc.AudioCodec, "-b:a", enc.AudioBitrate,
		"-movflags", "+faststart",
		out,
	}
}

func (m *Merger) styleOptions() subtitles.StyleOptions {
	return subtitles.StyleOptions{CJKFont: m.cfg.Style.CJKFont, LatinFont: m.cfg.Style.LatinFont}
}

// escapeFilterPath makes a path safe inside a single-quoted filtergraph
// argument: backslashes become forward slashes and colons are escaped.
func escapeFilterPath(path string) string {
	path = strings.ReplaceAll(path, `\`, "/")
	return strings.ReplaceAll(path, ":", `\:`)
}

func isASS(ext string) bool {
	return ext == ".ass" || ext == ".ssa"
}
