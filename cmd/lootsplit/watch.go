package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/susu3304/lootsplit/internal/hunt"
	"github.com/susu3304/lootsplit/internal/termview"
	"github.com/susu3304/lootsplit/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Reprint the split every time a report file is saved",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(args[0], huntOpts, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	styles := termview.DefaultStyles()
	return w.Run(ctx, func(s *hunt.Summary, err error) {
		if err != nil {
			if msg := hunt.UserMessage(err); msg != "" {
				fmt.Fprintln(out, msg)
			}
			fmt.Fprintf(out, "%s: %v\n\n", args[0], err)
			return
		}
		fmt.Fprintln(out, termview.Render(s, styles))
	})
}
