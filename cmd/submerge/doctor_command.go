package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"submerge/internal/language"
	"submerge/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check ffmpeg, filter support, and directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			results := preflight.RunAll(cmd.Context(), cfg)
			filterResult, filters := preflight.CheckFilters(cmd.Context(), ctx.capabilities(), cfg.FFmpeg.FFmpegBinary)
			// Soft mode still works without burn-in filters.
			filterResult.Optional = true
			results = append(results, filterResult)

			for _, line := range renderSectionHeader("Environment", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, r := range results {
				fmt.Fprintln(out, preflightLine(r, colorize))
			}

			for _, line := range renderSectionHeader("Modes", colorize) {
				fmt.Fprintln(out, line)
			}
			hard := statusOK
			if !filters.Any() {
				hard = statusWarn
			}
			fmt.Fprintln(out, renderStatusLine("Hard subtitles", hard, fmt.Sprintf("subtitles filter: %s, ass filter: %s", yesNo(filters.Subtitles), yesNo(filters.ASS)), colorize))
			fmt.Fprintln(out, renderStatusLine("Default mode", statusInfo, cfg.Merge.Mode, colorize))
			lang := cfg.Merge.SubtitleLanguage
			fmt.Fprintln(out, renderStatusLine("Subtitle track", statusInfo, fmt.Sprintf("%s (%s)", language.DisplayName(lang), language.ToISO3(lang)), colorize))

			if failed, ok := preflight.FirstFailure(results); ok {
				return fmt.Errorf("%s check failed: %s", failed.Name, failed.Detail)
			}
			return nil
		},
	}
}
