package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/susu3304/lootsplit/internal/hunt"
	"github.com/susu3304/lootsplit/internal/sharetext"
	"go.uber.org/zap"
)

var (
	groupDigits bool
	copyShare   bool
)

var writeClipboard = clipboard.WriteAll

var shareCmd = &cobra.Command{
	Use:   "share [file]",
	Short: "Print the Discord message for a session",
	Long: `Prints the message to paste into the party's Discord channel: the
session totals and one transfer command per payment.

Example:
  lootsplit share --clipboard --copy`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShare,
}

func init() {
	shareCmd.Flags().BoolVar(&fromClipboard, "clipboard", false, "Read the report from the clipboard")
	shareCmd.Flags().BoolVar(&groupDigits, "group-digits", false, "Print totals with the locale's thousands separators")
	shareCmd.Flags().BoolVar(&copyShare, "copy", false, "Copy the message to the clipboard as well")
}

func runShare(cmd *cobra.Command, args []string) error {
	inputs, err := readInputs(args, fromClipboard, cmd.InOrStdin(), cfg.MaxInputBytes)
	if err != nil {
		return err
	}
	summary, err := hunt.Parse(inputs[0].text, huntOpts)
	if err != nil {
		return reportError(err)
	}

	text := sharetext.Render(summary, sharetext.Options{
		GroupDigits: groupDigits,
		Locale:      cfg.Locale(),
		Footer:      cfg.ShareFooter,
	})
	fmt.Fprintln(cmd.OutOrStdout(), text)

	if copyShare {
		if err := writeClipboard(text); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		logger.Info("copied share message to clipboard", zap.Int("transfers", len(summary.TransferInstructions)))
	}
	return nil
}
