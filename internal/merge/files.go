package merge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"submerge/internal/logging"
	"submerge/internal/services"
)

// LoadEpisode reads a video and subtitle from disk into an Episode named name.
func LoadEpisode(videoPath, subtitlePath, name string) (Episode, error) {
	video, err := os.ReadFile(videoPath)
	if err != nil {
		return Episode{}, fmt.Errorf("read video: %w", err)
	}
	subtitle, err := os.ReadFile(subtitlePath)
	if err != nil {
		return Episode{}, fmt.Errorf("read subtitle: %w", err)
	}
	return Episode{
		VideoName:    filepath.Base(videoPath),
		Video:        video,
		SubtitleName: filepath.Base(subtitlePath),
		Subtitle:     subtitle,
		Name:         name,
	}, nil
}

// ProcessFiles loads the inputs from disk into opts and runs the job. Read
// failures come back as a failed Result rather than an error.
func (m *Merger) ProcessFiles(ctx context.Context, videoPath, subtitlePath string, opts Episode) Result {
	ep, err := LoadEpisode(videoPath, subtitlePath, opts.Name)
	if err != nil {
		err = services.Wrap(services.ErrValidation, stageValidate, "load inputs", "", err)
		logging.ErrorWithContext(logging.WithContext(ctx, m.logger), "merge inputs unreadable", "merge_validate_failed", logging.Error(err))
		return Result{Message: err.Error(), Err: err}
	}
	ep.Mode = opts.Mode
	ep.MarginFraction = opts.MarginFraction
	ep.Capabilities = opts.Capabilities
	ep.Progress = opts.Progress
	return m.ProcessEpisode(ctx, ep)
}
