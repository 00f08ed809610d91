package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"submerge/internal/merge"
	"submerge/internal/textutil"
)

// batchManifest lists the episodes of one batch run. Top-level mode and
// margin apply to every episode that does not set its own. Margins may be
// written as numbers (18, 0.18) or strings ("18%").
//
//	mode = "hard"
//	margin = 18
//
//	[[episode]]
//	name = "Pilot"
//	video = "ep01.mp4"
//	subtitles = "ep01.srt"
type batchManifest struct {
	Mode     string         `toml:"mode"`
	Margin   any            `toml:"margin"`
	Episodes []batchEpisode `toml:"episode"`
}

type batchEpisode struct {
	Name      string `toml:"name"`
	Video     string `toml:"video"`
	Subtitles string `toml:"subtitles"`
	Mode      string `toml:"mode"`
	Margin    any    `toml:"margin"`
}

type batchJob struct {
	index     int
	name      string
	video     string
	subtitles string
	mode      merge.Mode
	margin    float64
}

// loadBatchManifest parses the manifest at path and resolves relative input
// paths against its directory.
func loadBatchManifest(path string) ([]batchJob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var manifest batchManifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if len(manifest.Episodes) == 0 {
		return nil, errors.New("manifest lists no [[episode]] entries")
	}

	base := filepath.Dir(path)
	jobs := make([]batchJob, 0, len(manifest.Episodes))
	for i, ep := range manifest.Episodes {
		n := i + 1
		if strings.TrimSpace(ep.Video) == "" || strings.TrimSpace(ep.Subtitles) == "" {
			return nil, fmt.Errorf("episode %d: video and subtitles are required", n)
		}
		mode, err := merge.ParseMode(firstNonEmpty(ep.Mode, manifest.Mode))
		if err != nil {
			return nil, fmt.Errorf("episode %d: %w", n, err)
		}
		margin, err := parseMargin(firstNonEmpty(marginText(ep.Margin), marginText(manifest.Margin)))
		if err != nil {
			return nil, fmt.Errorf("episode %d: %w", n, err)
		}
		name := strings.TrimSpace(ep.Name)
		if name == "" {
			name = textutil.EpisodeName(n)
		}
		jobs = append(jobs, batchJob{
			index:     n,
			name:      name,
			video:     resolveRelative(base, ep.Video),
			subtitles: resolveRelative(base, ep.Subtitles),
			mode:      mode,
			margin:    margin,
		})
	}
	return jobs, nil
}

func resolveRelative(base, path string) string {
	path = strings.TrimSpace(path)
	if filepath.IsAbs(path) || strings.HasPrefix(path, "~") {
		return path
	}
	return filepath.Join(base, path)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func marginText(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}
