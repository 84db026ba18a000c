package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// slashCommands is every command the bot serves
func slashCommands() []*discordgo.ApplicationCommand {
	minAmount := 1.0

	return []*discordgo.ApplicationCommand{
		{
			Name:        "daily",
			Description: "Claim your daily coins",
		},
		{
			Name:        "balance",
			Description: "Check a coin balance",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Whose balance to check (defaults to you)",
				},
			},
		},
		{
			Name:        "transfer",
			Description: "Send coins to another player",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Who receives the coins",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "How many coins to send",
					Required:    true,
					MinValue:    &minAmount,
				},
			},
		},
		{
			Name:        "coinflip",
			Description: "Call heads or tails. A correct call pays 2x",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "call",
					Description: "Your call",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Heads", Value: "heads"},
						{Name: "Tails", Value: "tails"},
					},
				},
				stakeOption(),
			},
		},
		{
			Name:        "lottery",
			Description: "Spin the lottery reel (minimum 1,000 coins)",
			Options: []*discordgo.ApplicationCommandOption{
				stakeOption(),
			},
		},
		{
			Name:        "threecard",
			Description: "Find the winning card out of three. A hit pays 3x (minimum 1,000 coins)",
			Options: []*discordgo.ApplicationCommandOption{
				stakeOption(),
			},
		},
		{
			Name:        "leaderboard",
			Description: "Show the richest players",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "server",
					Description: "Only rank members of this server",
				},
			},
		},
		{
			Name:        "admin",
			Description: "Bot administration",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "grant",
					Description: "Give coins to a player",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "Who receives the coins",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "amount",
							Description: "How many coins to grant",
							Required:    true,
							MinValue:    &minAmount,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "reset",
					Description: "Reset a player's balance, daily claim or both",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "Whose account to reset",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "scope",
							Description: "What to reset (default: everything)",
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "Balances", Value: "balance"},
								{Name: "Daily claims", Value: "grant"},
								{Name: "Everything", Value: "all"},
							},
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "mode",
					Description: "Turn admin mode on or off",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "state",
							Description: "on or off",
							Required:    true,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "On", Value: "on"},
								{Name: "Off", Value: "off"},
							},
						},
					},
				},
			},
		},
	}
}

// stakeOption accepts a number or all-in
func stakeOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "amount",
		Description: "Coins to stake, or \"all\" to go all-in",
		Required:    true,
	}
}

// registerCommands registers all slash commands with Discord, in one guild when GuildID is set
func (b *Bot) registerCommands() error {
	for _, cmd := range slashCommands() {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}
