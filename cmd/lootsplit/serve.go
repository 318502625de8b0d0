package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/susu3304/lootsplit/internal/api"
	"github.com/susu3304/lootsplit/internal/bot"
	"github.com/susu3304/lootsplit/internal/commands"
	"github.com/susu3304/lootsplit/internal/sharetext"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web page, the JSON API and the Discord bot",
	Long: `Serves the web page and the JSON API on WEB_BIND. When DISCORD_TOKEN is
set the Discord bot is started as well.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Discord bot
	if cfg.DiscordToken != "" {
		splitLoot := &commands.SplitLoot{
			Options: huntOpts,
			Share:   sharetext.Options{Locale: cfg.Locale(), Footer: cfg.ShareFooter},
		}
		discordBot, err := bot.New(cfg.DiscordToken, splitLoot, logger)
		if err != nil {
			return err
		}
		if err := discordBot.Start(); err != nil {
			return err
		}
		defer discordBot.Stop()
	} else {
		logger.Info("DISCORD_TOKEN not set, Discord bot disabled")
	}

	// Start API server
	apiServer := api.New(cfg, huntOpts, logger)
	errCh := make(chan error, 1)
	go func() {
		errCh <- apiServer.Start()
	}()

	// Wait for signal to stop
	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("API server shutdown", zap.Error(err))
	}
	return nil
}
