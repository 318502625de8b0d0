package bot

import (
	"github.com/bwmarrin/discordgo"
	"github.com/susu3304/lootsplit/internal/commands"
	"go.uber.org/zap"
)

func (b *Bot) onReady(s *discordgo.Session, event *discordgo.Ready) {
	b.logger.Info("connected", zap.String("user", event.User.Username))

	// Register commands for all guilds
	for _, guild := range event.Guilds {
		if err := b.registerGuildCommands(s, guild.ID); err != nil {
			b.logger.Error("failed to register commands", zap.String("guild_id", guild.ID), zap.Error(err))
		}
	}
}

func (b *Bot) onGuildCreate(s *discordgo.Session, event *discordgo.GuildCreate) {
	b.logger.Info("guild available, ensuring commands", zap.String("guild", event.Name), zap.String("guild_id", event.ID))
	if err := b.registerGuildCommands(s, event.ID); err != nil {
		b.logger.Error("failed to register commands", zap.String("guild_id", event.ID), zap.Error(err))
	}
}

func (b *Bot) registerGuildCommands(s *discordgo.Session, guildID string) error {
	// Delete existing commands and register new ones
	_, err := s.ApplicationCommandBulkOverwrite(s.State.User.ID, guildID, commands.GetCommands())
	if err != nil {
		return err
	}

	b.logger.Debug("registered application commands", zap.String("guild_id", guildID))
	return nil
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	b.splitLoot.HandlePrefixMessage(b.ctx, s, m)
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	dispatch(b.ctx, b.splitLoot, s, i)
}
