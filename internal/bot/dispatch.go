package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/susu3304/lootsplit/internal/commands"
)

// dispatch routes an interaction to its handler. Unknown commands are ignored.
func dispatch(ctx context.Context, h *commands.SplitLoot, s commands.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		switch i.ApplicationCommandData().Name {
		case commands.SplitLootCommand:
			h.HandleSlash(s, i)
		case commands.SplitLootMessageCommand:
			h.HandleMessage(ctx, s, i)
		}
	case discordgo.InteractionModalSubmit:
		h.HandleModalSubmit(ctx, s, i)
	}
}
