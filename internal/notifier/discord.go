package notifier

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/readmarathon/reading-marathon-api/internal/engine"
)

type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(botToken, channelID string) (*DiscordNotifier, error) {
	if botToken == "" || channelID == "" {
		return nil, fmt.Errorf("discord bot token or channel ID not configured")
	}
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, err
	}
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}, nil
}

func (n *DiscordNotifier) NotifyCycleSummary(report *engine.CycleReport) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}

	message := fmt.Sprintf("📚 **Reading Marathon Update**\n**Rows processed:** %d\n**New logs:** %d\n**New achievements:** %d\n**Skipped rows:** %d",
		report.RowsSeen,
		report.LogsAdded,
		report.AchievementsAdded,
		report.RowsSkipped,
	)
	if len(report.Diagnostics) > 0 {
		message += fmt.Sprintf("\n**Warnings:** %d (see server log)", len(report.Diagnostics))
	}

	_, err := n.session.ChannelMessageSend(n.channelID, message)
	if err != nil {
		log.Printf("Failed to send discord message: %v", err)
		return err
	}

	return nil
}
