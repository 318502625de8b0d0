package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/susu3304/lootsplit/internal/hunt"
)

var errInvalidReports = errors.New("some reports are invalid")

var validateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Check that session reports are well formed",
	Long: `Checks each report without computing the split. Prints "ok" or the line
that is wrong, and exits non-zero when any report is invalid.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&fromClipboard, "clipboard", false, "Read the report from the clipboard")
}

func runValidate(cmd *cobra.Command, args []string) error {
	inputs, err := readInputs(args, fromClipboard, cmd.InOrStdin(), cfg.MaxInputBytes)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := false
	for _, in := range inputs {
		if err := hunt.Check(in.text); err != nil {
			failed = true
			if msg := hunt.UserMessage(err); msg != "" {
				fmt.Fprintf(out, "%s: %s (%v)\n", in.name, msg, err)
			} else {
				fmt.Fprintf(out, "%s: %v\n", in.name, err)
			}
			continue
		}
		fmt.Fprintf(out, "%s: ok\n", in.name)
	}
	if failed {
		return errInvalidReports
	}
	return nil
}
