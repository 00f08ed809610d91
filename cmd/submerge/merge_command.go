package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"submerge/internal/merge"
	"submerge/internal/textutil"
)

func newMergeCommand(ctx *commandContext) *cobra.Command {
	var videoPath, subsPath, name, modeFlag, marginFlag, outDir string

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge one video with a subtitle file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(videoPath) == "" || strings.TrimSpace(subsPath) == "" {
				return errors.New("--video and --subs are required")
			}
			mode, err := merge.ParseMode(modeFlag)
			if err != nil {
				return err
			}
			margin, err := parseMargin(marginFlag)
			if err != nil {
				return err
			}

			merger, cfg, logger, err := ctx.newMerger()
			if err != nil {
				return err
			}
			dir, err := resolveOutputDir(outDir, cfg)
			if err != nil {
				return err
			}
			lock, err := lockOutputDir(dir)
			if err != nil {
				return err
			}
			defer func() { _ = lock.Unlock() }()

			out := cmd.OutOrStdout()
			res := merger.ProcessFiles(cmd.Context(), videoPath, subsPath, merge.Episode{
				Name:           name,
				Mode:           mode,
				MarginFraction: margin,
				Capabilities:   resolveCapabilities(cmd.Context(), ctx, cfg, logger, mode),
				Progress:       progressPrinter(out, "  "),
			})
			if !res.Success {
				return fmt.Errorf("merge failed: %s", res.Message)
			}
			target, err := writeResult(dir, res)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s via %s\n", res.Message, res.Strategy)
			fmt.Fprintf(out, "Wrote %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVar(&videoPath, "video", "", "Video file")
	cmd.Flags().StringVar(&subsPath, "subs", "", "Subtitle file (SRT, ASS)")
	cmd.Flags().StringVar(&name, "name", textutil.EpisodeName(1), "Episode name used for the output file")
	cmd.Flags().StringVar(&modeFlag, "mode", "", "hard (burn in) or soft (subtitle track); defaults to config")
	cmd.Flags().StringVar(&marginFlag, "margin", "", "Bottom margin as percent (5-45) or fraction; defaults to config")
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "Output directory; defaults to config")
	return cmd
}
