package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/susu3304/lootsplit/internal/config"
	"github.com/susu3304/lootsplit/internal/hunt"
	"github.com/susu3304/lootsplit/internal/logging"
	"go.uber.org/zap"

	_ "time/tzdata"
)

var (
	// Global flags
	logLevel    string
	development bool
	timezone    string
	order       string
	strict      bool

	cfg      *config.Config
	huntOpts hunt.Options
	logger   *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lootsplit",
	Short: "Split party hunt loot evenly",
	Long: `lootsplit reads the party hunt analyser text copied from the game client
and works out who has to transfer how much gold to whom so that every member
ends the session with the same balance.

Run "lootsplit serve" to start the web page and the Discord bot.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if flags.Changed("development") {
			cfg.LogDevelopment = development
		}
		if flags.Changed("timezone") {
			cfg.SessionTimezone = timezone
		}
		if flags.Changed("order") {
			cfg.SettlementOrder = order
		}
		if flags.Changed("strict") {
			cfg.StrictParsing = strict
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		if logger, err = logging.New(cfg.LogLevel, cfg.LogDevelopment); err != nil {
			return err
		}
		huntOpts, err = cfg.HuntOptions()
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error (or set LOG_LEVEL)")
	rootCmd.PersistentFlags().BoolVar(&development, "development", false, "Human readable console logs (or set LOG_DEVELOPMENT)")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "UTC", "IANA zone the report timestamps were written in (or set SESSION_TIMEZONE)")
	rootCmd.PersistentFlags().StringVar(&order, "order", "input", "Settlement order: input or largest-first (or set SETTLEMENT_ORDER)")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Reject reports where nobody dealt damage or healed (or set STRICT_PARSING)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
