package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/susu3304/lootsplit/internal/commands"
	"github.com/susu3304/lootsplit/internal/logging"
	"go.uber.org/zap"
)

type Bot struct {
	session   *discordgo.Session
	splitLoot *commands.SplitLoot
	logger    *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

func New(token string, splitLoot *commands.SplitLoot, logger *zap.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	bot := &Bot{
		session:   session,
		splitLoot: splitLoot,
		logger:    logging.OrNop(logger).Named("bot"),
		ctx:       ctx,
		cancel:    cancel,
	}
	if splitLoot.Logger == nil {
		splitLoot.Logger = bot.logger
	}

	// Register event handlers
	session.AddHandler(bot.onReady)
	session.AddHandler(bot.onGuildCreate)
	session.AddHandler(bot.onMessageCreate)
	session.AddHandler(bot.onInteractionCreate)

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	return bot, nil
}

func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	b.logger.Info("discord bot is running")
	return nil
}

// Stop cancels pending follow-up sends and closes the gateway connection.
func (b *Bot) Stop() error {
	b.cancel()
	return b.session.Close()
}
