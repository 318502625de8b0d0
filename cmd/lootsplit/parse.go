package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/susu3304/lootsplit/internal/hunt"
	"github.com/susu3304/lootsplit/internal/termview"
	"gopkg.in/yaml.v3"
)

var (
	outputFormat  string
	fromClipboard bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file...]",
	Short: "Parse session reports and print the summary",
	Long: `Parses one or more session reports and prints the full summary,
including the transfers that even out the balances.

Reads stdin when no file is given ("-" also means stdin).

Example:
  lootsplit parse session.txt --format yaml
  lootsplit parse --clipboard --format table`,
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format: json, yaml or table")
	parseCmd.Flags().BoolVar(&fromClipboard, "clipboard", false, "Read the report from the clipboard")
}

func runParse(cmd *cobra.Command, args []string) error {
	inputs, err := readInputs(args, fromClipboard, cmd.InOrStdin(), cfg.MaxInputBytes)
	if err != nil {
		return err
	}
	summaries, err := hunt.ParseAll(cmd.Context(), texts(inputs), huntOpts)
	if err != nil {
		return reportError(err)
	}
	return writeSummaries(cmd.OutOrStdout(), outputFormat, summaries)
}

func writeSummaries(w io.Writer, format string, summaries []*hunt.Summary) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if len(summaries) == 1 {
			return enc.Encode(summaries[0])
		}
		return enc.Encode(summaries)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		if len(summaries) == 1 {
			return enc.Encode(summaries[0])
		}
		return enc.Encode(summaries)
	case "table":
		styles := termview.DefaultStyles()
		for i, s := range summaries {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprint(w, termview.Render(s, styles))
		}
		return nil
	}
	return fmt.Errorf("unknown format %q (want json, yaml or table)", format)
}
