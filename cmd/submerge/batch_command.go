package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"submerge/internal/config"
	"submerge/internal/logging"
	"submerge/internal/merge"
)

type batchOutcome struct {
	job    batchJob
	result merge.Result
	target string
}

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "batch <manifest.toml>",
		Short: "Merge every episode listed in a manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifestPath, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			jobs, err := loadBatchManifest(manifestPath)
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
			outcomes := make([]batchOutcome, 0, len(jobs))
			for _, job := range jobs {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				fmt.Fprintf(out, "[%d/%d] %s\n", job.index, len(jobs), job.name)
				res := merger.ProcessFiles(cmd.Context(), job.video, job.subtitles, merge.Episode{
					Name:           job.name,
					Mode:           job.mode,
					MarginFraction: job.margin,
					Capabilities:   resolveCapabilities(cmd.Context(), ctx, cfg, logger, job.mode),
					Progress:       progressPrinter(out, "  "),
				})
				outcome := batchOutcome{job: job, result: res}
				if res.Success {
					target, err := writeResult(dir, res)
					if err != nil {
						outcome.result.Success = false
						outcome.result.Message = err.Error()
					}
					outcome.target = target
				}
				outcomes = append(outcomes, outcome)
			}

			completed, failed := renderBatchSummary(out, outcomes)
			logger.Info("batch finished",
				logging.String(logging.FieldEventType, "batch_complete"),
				logging.Int("completed", completed),
				logging.Int("failed", failed),
				logging.Int("total", len(outcomes)),
			)
			if failed > 0 {
				return fmt.Errorf("%d of %d episodes failed", failed, len(outcomes))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "Output directory; defaults to config")
	return cmd
}

func renderBatchSummary(out io.Writer, outcomes []batchOutcome) (completed, failed int) {
	rows := make([][]string, 0, len(outcomes))
	for _, o := range outcomes {
		status, detail, strategy := "failed", o.result.Message, "-"
		if o.result.Success {
			completed++
			status, detail, strategy = "done", o.target, o.result.Strategy
		} else {
			failed++
		}
		rows = append(rows, []string{fmt.Sprintf("%d", o.job.index), o.job.name, status, strategy, detail})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Episode", "Status", "Strategy", "Output / Error"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
	))
	fmt.Fprintf(out, "Completed: %d  Failed: %d  Total: %d\n", completed, failed, len(outcomes))
	return completed, failed
}
