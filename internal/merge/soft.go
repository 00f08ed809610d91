package merge

import (
	"context"

	"submerge/internal/subtitles"
)

const cleanSRTName = "clean.srt"

func (m *Merger) softChain() []strategy {
	return []strategy{
		{name: "Matroska mux", ext: ".mkv", silent: "mkv failed", run: m.muxMatroska},
		{name: "MP4 mux", ext: ".mp4", silent: "mp4 failed", run: m.muxMP4},
	}
}

// muxMatroska copies audio and video and attaches the subtitle as-is.
func (m *Merger) muxMatroska(ctx context.Context, j *job, out string) (ProcessResult, error) {
	codec := "srt"
	if isASS(j.subtitleExt) {
		codec = "ass"
	}
	return m.run(ctx, m.cfg.MuxTimeout(), m.cfg.FFmpeg.FFmpegBinary, m.muxArgs(j.videoPath, j.subtitlePath, codec, out)...), nil
}

// muxMP4 normalizes the script to clean SRT and attaches it as mov_text.
func (m *Merger) muxMP4(ctx context.Context, j *job, out string) (ProcessResult, error) {
	clean := j.ws.path(cleanSRTName)
	if _, err := subtitles.WriteSRT(clean, j.script); err != nil {
		return ProcessResult{ExitCode: -1}, err
	}
	args := m.muxArgs(j.videoPath, clean, "mov_text", out)
	args = append(args[:len(args)-1], "-movflags", "+faststart", out)
	return m.run(ctx, m.cfg.MuxTimeout(), m.cfg.FFmpeg.FFmpegBinary, args...), nil
}

func (m *Merger) muxArgs(video, subtitle, codec, out string) []string {
	return []string{
		"-y",
		"-i", video,
		"-i", subtitle,
		"-map", "0:v", "-map", "0:a?", "-map", "1:0",
		"-c:v", "copy", "-c:a", "copy", "-c:s", codec,
		"-metadata:s:s:0", "language=" + m.trackLanguage,
		"-disposition:s:0", "default",
		out,
	}
}
