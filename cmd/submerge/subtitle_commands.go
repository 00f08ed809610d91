package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"submerge/internal/fileutil"
	"submerge/internal/subtitles"
)

func newASSCommand(ctx *commandContext) *cobra.Command {
	var width, height int
	var marginFlag, outPath string

	cmd := &cobra.Command{
		Use:   "ass <subtitle>",
		Short: "Write the dual-style ASS script for a subtitle file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			margin, err := parseMargin(marginFlag)
			if err != nil {
				return err
			}
			if margin == 0 {
				margin = cfg.Merge.MarginFraction
			}
			script, err := readScript(args[0])
			if err != nil {
				return err
			}

			layout := subtitles.ComputeLayout(width, height, margin)
			opts := subtitles.StyleOptions{CJKFont: cfg.Style.CJKFont, LatinFont: cfg.Style.LatinFont}
			content, events := subtitles.GenerateASS(script, layout, opts)

			target := outputPathFor(args[0], outPath, ".ass")
			if err := fileutil.WriteFileAtomic(target, []byte(content), 0o644); err != nil {
				return fmt.Errorf("write ass: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d entries to %s\n", events, target)
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", subtitles.DefaultWidth, "Video width")
	cmd.Flags().IntVar(&height, "height", subtitles.DefaultHeight, "Video height")
	cmd.Flags().StringVar(&marginFlag, "margin", "", "Bottom margin as percent (5-45) or fraction; defaults to config")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output path (default: input with .ass extension)")
	return cmd
}

func newCleanCommand() *cobra.Command {
	var outPath string
	var stripAds bool

	cmd := &cobra.Command{
		Use:         "clean <subtitle>",
		Short:       "Rewrite a subtitle file as normalized UTF-8 SRT",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := readScript(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if stripAds {
				var removed int
				script, removed = subtitles.DropAdvertisements(script)
				fmt.Fprintf(out, "Removed %d advertisement entries\n", removed)
			}
			target := outputPathFor(args[0], outPath, ".clean.srt")
			if err := fileutil.WriteFileAtomic(target, []byte(subtitles.FormatSRT(script)), 0o644); err != nil {
				return fmt.Errorf("write srt: %w", err)
			}
			fmt.Fprintf(out, "Wrote %d entries (%s input) to %s\n", script.Len(), script.Encoding, target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output path (default: input with .clean.srt extension)")
	cmd.Flags().BoolVar(&stripAds, "strip-ads", false, "Drop release-group and site credit entries")
	return cmd
}

func readScript(path string) (subtitles.Script, error) {
	script, err := subtitles.ParseFile(path)
	if err != nil {
		return subtitles.Script{}, err
	}
	if script.Len() == 0 {
		return subtitles.Script{}, fmt.Errorf("%s: no subtitle entries found - check SRT format", path)
	}
	return script, nil
}

func outputPathFor(input, explicit, suffix string) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if base+suffix == input {
		return base + ".styled" + suffix
	}
	return base + suffix
}
