package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/susu3304/lootsplit/internal/hunt"
	"github.com/susu3304/lootsplit/internal/logging"
	"github.com/susu3304/lootsplit/internal/sharetext"
	"go.uber.org/zap"
)

const (
	msgNoReport    = "No session report found. Paste the party hunt analyser text."
	msgModalFailed = "Could not open the report form."
	// Discord caps paragraph inputs at 4000 characters.
	maxReportLength = 4000
)

// SplitLoot answers the loot splitting commands.
type SplitLoot struct {
	Options hunt.Options
	Share   sharetext.Options
	Logger  *zap.Logger
}

// Reply renders the share message for a report, or the user-facing reason it
// could not be parsed.
func (h *SplitLoot) Reply(text string, grouped bool) (string, error) {
	summary, err := hunt.Parse(text, h.Options)
	if err != nil {
		if errors.Is(err, hunt.ErrEmptyInput) {
			return msgNoReport, err
		}
		return hunt.UserMessage(err), err
	}
	opts := h.Share
	opts.GroupDigits = grouped
	return sharetext.Render(summary, opts), nil
}

// HandleSlash opens a modal for the report; slash command options cannot
// carry multi-line text.
func (h *SplitLoot) HandleSlash(s Session, i *discordgo.InteractionCreate) {
	customID := splitLootModalID
	if getBoolOption(i.ApplicationCommandData().Options, groupedOption) {
		customID += ":grouped"
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: customID,
			Title:    "Party hunt session",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    reportInputID,
							Label:       "Session report",
							Style:       discordgo.TextInputParagraph,
							Placeholder: "Session data: From ...",
							Required:    true,
							MaxLength:   maxReportLength,
						},
					},
				},
			},
		},
	})
	if err != nil {
		h.logger().Error("failed to create modal", zap.Error(err))
		h.respondEphemeral(s, i, msgModalFailed)
	}
}

// HandleModalSubmit handles the report modal. Other modals are ignored.
func (h *SplitLoot) HandleModalSubmit(ctx context.Context, s Session, i *discordgo.InteractionCreate) {
	data := i.ModalSubmitData()
	if !strings.HasPrefix(data.CustomID, splitLootModalID) {
		return
	}
	grouped := strings.HasSuffix(data.CustomID, ":grouped")

	var report string
	for _, component := range data.Components {
		if actionRow, ok := component.(*discordgo.ActionsRow); ok {
			for _, c := range actionRow.Components {
				if input, ok := c.(*discordgo.TextInput); ok && input.CustomID == reportInputID {
					report = input.Value
				}
			}
		}
	}

	h.reply(ctx, s, i, report, grouped)
}

// HandleMessage splits the report contained in the message the command was
// used on.
func (h *SplitLoot) HandleMessage(ctx context.Context, s Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if data.Resolved == nil || len(data.Resolved.Messages) == 0 {
		h.respondEphemeral(s, i, msgNoReport)
		return
	}

	var message *discordgo.Message
	for _, msg := range data.Resolved.Messages {
		message = msg
		break
	}
	h.reply(ctx, s, i, message.Content, false)
}

func (h *SplitLoot) reply(ctx context.Context, s Session, i *discordgo.InteractionCreate, report string, grouped bool) {
	text, err := h.Reply(report, grouped)
	if err != nil {
		h.logger().Debug("rejected session report", zap.String("channel_id", i.ChannelID), zap.Error(err))
		h.respondEphemeral(s, i, text)
		return
	}
	respondChunks(ctx, s, i, sharetext.Chunks(text, sharetext.DiscordMessageLimit), h.logger())
}

func (h *SplitLoot) respondEphemeral(s Session, i *discordgo.InteractionCreate, content string) {
	if err := respondEphemeral(s, i, content); err != nil {
		h.logger().Error("failed to respond to interaction", zap.String("channel_id", i.ChannelID), zap.Error(err))
	}
}

func (h *SplitLoot) logger() *zap.Logger {
	return logging.OrNop(h.Logger)
}

func getBoolOption(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) bool {
	for _, o := range opts {
		if o.Name == name && o.Type == discordgo.ApplicationCommandOptionBoolean {
			return o.BoolValue()
		}
	}
	return false
}

// SplitPrefix starts a chat message carrying a report, e.g. "!split" followed
// by the pasted analyser text on the next lines.
const SplitPrefix = "!split"

// HandlePrefixMessage answers a SplitPrefix message in the same channel. It
// reports whether the message was addressed to the splitter.
func (h *SplitLoot) HandlePrefixMessage(ctx context.Context, s Session, m *discordgo.MessageCreate) bool {
	if m.Author == nil || m.Author.Bot {
		return false
	}
	report, ok := strings.CutPrefix(strings.TrimSpace(m.Content), SplitPrefix)
	if !ok || (report != "" && report[0] != '\n' && report[0] != '\r' && report[0] != ' ') {
		return false
	}

	text, err := h.Reply(strings.TrimLeft(report, " \r\n"), false)
	if err != nil {
		h.logger().Debug("rejected session report", zap.String("channel_id", m.ChannelID), zap.Error(err))
	}
	for _, c := range sharetext.Chunks(text, sharetext.DiscordMessageLimit) {
		if err := sendWithRetry(ctx, s, m.ChannelID, c); err != nil {
			h.logger().Error("failed to send message", zap.String("channel_id", m.ChannelID), zap.Error(err))
			break
		}
	}
	return true
}
