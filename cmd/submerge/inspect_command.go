package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abadojack/whatlanggo"
	"github.com/saintfish/chardet"
	"github.com/spf13/cobra"

	"submerge/internal/subtitles"
)

// subtitleReport summarizes what the merger will see in a subtitle file.
type subtitleReport struct {
	Entries         int
	Encoding        string
	DetectedCharset string
	CJKLines        int
	LatinLines      int
	CJKLanguage     string
	LatinLanguage   string
	Layout          subtitles.Layout
}

func analyzeSubtitle(data []byte, width, height int, margin float64) subtitleReport {
	script := subtitles.Parse(data)
	report := subtitleReport{
		Entries:         script.Len(),
		Encoding:        script.Encoding,
		DetectedCharset: detectCharset(data),
		Layout:          subtitles.ComputeLayout(width, height, margin),
	}

	var cjkText, latinText []string
	for _, entry := range script.Entries {
		cjk, latin := subtitles.Split(entry.Text)
		if cjk != "" {
			report.CJKLines += strings.Count(cjk, "\n") + 1
			cjkText = append(cjkText, cjk)
		}
		if latin != "" {
			report.LatinLines += strings.Count(latin, "\n") + 1
			latinText = append(latinText, latin)
		}
	}
	report.CJKLanguage = detectLanguage(strings.Join(cjkText, "\n"))
	report.LatinLanguage = detectLanguage(strings.Join(latinText, "\n"))
	return report
}

func detectCharset(data []byte) string {
	if len(data) == 0 {
		return "-"
	}
	best, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || best == nil {
		return "unknown"
	}
	return fmt.Sprintf("%s (%d%%)", best.Charset, best.Confidence)
}

func detectLanguage(text string) string {
	if strings.TrimSpace(text) == "" {
		return "-"
	}
	info := whatlanggo.Detect(text)
	if code := info.Lang.Iso6391(); code != "" {
		return fmt.Sprintf("%s (%s)", info.Lang.String(), code)
	}
	return info.Lang.String()
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var width, height int
	var marginFlag string

	cmd := &cobra.Command{
		Use:   "inspect <subtitle>",
		Short: "Show how a subtitle file parses and splits",
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
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read subtitle: %w", err)
			}
			printSubtitleReport(cmd.OutOrStdout(), analyzeSubtitle(data, width, height, margin))
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", subtitles.DefaultWidth, "Video width used for the layout preview")
	cmd.Flags().IntVar(&height, "height", subtitles.DefaultHeight, "Video height used for the layout preview")
	cmd.Flags().StringVar(&marginFlag, "margin", "", "Bottom margin as percent (5-45) or fraction; defaults to config")
	return cmd
}

func printSubtitleReport(out io.Writer, r subtitleReport) {
	rows := [][]string{
		{"Entries", fmt.Sprintf("%d", r.Entries)},
		{"Decoded as", r.Encoding},
		{"Detected charset", r.DetectedCharset},
		{"CJK lines", fmt.Sprintf("%d", r.CJKLines)},
		{"Latin lines", fmt.Sprintf("%d", r.LatinLines)},
		{"CJK language", r.CJKLanguage},
		{"Latin language", r.LatinLanguage},
		{"Resolution", fmt.Sprintf("%dx%d", r.Layout.Width, r.Layout.Height)},
		{"Font sizes", fmt.Sprintf("CJK %d / Latin %d", r.Layout.CJKFontSize, r.Layout.LatinFontSize)},
		{"Vertical margins", fmt.Sprintf("CJK %d / Latin %d", r.Layout.CJKMarginV, r.Layout.LatinMarginV)},
		{"Side margin", fmt.Sprintf("%d", r.Layout.SideMargin)},
	}
	fmt.Fprintln(out, renderTable([]string{"Property", "Value"}, rows, []columnAlignment{alignLeft, alignLeft}))
	if r.Entries == 0 {
		fmt.Fprintln(out, "No subtitle entries found - check SRT format")
	}
}
