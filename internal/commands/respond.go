package commands

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Session is the part of *discordgo.Session the handlers use.
type Session interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

func respondText(s Session, i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
}

// respondEphemeral replies so that only the invoking user sees the message.
func respondEphemeral(s Session, i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// respondChunks answers the interaction with the first chunk and posts the
// rest to the channel.
func respondChunks(ctx context.Context, s Session, i *discordgo.InteractionCreate, chunks []string, logger *zap.Logger) {
	if len(chunks) == 0 {
		return
	}
	if err := respondText(s, i, chunks[0]); err != nil {
		logger.Error("failed to respond to interaction", zap.String("channel_id", i.ChannelID), zap.Error(err))
		return
	}
	for _, c := range chunks[1:] {
		if err := sendWithRetry(ctx, s, i.ChannelID, c); err != nil {
			logger.Error("failed to send follow-up message", zap.String("channel_id", i.ChannelID), zap.Error(err))
			return
		}
	}
}

func sendWithRetry(ctx context.Context, s Session, channelID, content string) error {
	const attemptTimeout = 12 * time.Second
	const maxAttempts = 2

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		sendCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
		_, err := s.ChannelMessageSend(channelID, content, discordgo.WithContext(sendCtx))
		cancel()
		if err == nil {
			return nil
		}
		lastErr = err
		if !isTemporaryOrTimeout(err) {
			return err
		}
		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryBackoff()):
		}
	}
	return lastErr
}

var retryBackoff = func() time.Duration {
	return time.Duration(300+rand.Intn(500)) * time.Millisecond
}

func isTemporaryOrTimeout(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) {
		return ne.Timeout()
	}
	return false
}
