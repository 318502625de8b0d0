package commands

import "github.com/bwmarrin/discordgo"

const (
	SplitLootCommand        = "splitloot"
	SplitLootMessageCommand = "Split loot"

	splitLootModalID = "splitloot"
	reportInputID    = "report"
	groupedOption    = "grouped"
)

func GetCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        SplitLootCommand,
			Description: "Paste a party hunt session report and get the transfers to even out the loot",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        groupedOption,
					Description: "Print totals with thousands separators",
					Required:    false,
				},
			},
		},
		{
			Name: SplitLootMessageCommand,
			Type: discordgo.MessageApplicationCommand,
		},
	}
}
