package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

const activityURL = "https://mineskin.org"

// Presence maintains the bot's gateway connection, used only for
// status/activity updates. All messaging goes over the REST queue.
type Presence struct {
	session *discordgo.Session
}

// NewPresence creates a gateway session for the given bot token.
func NewPresence(token string) (*Presence, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	// No message events needed, just presence.
	session.Identify.Intents = discordgo.IntentsNone
	return &Presence{session: session}, nil
}

// Start opens the gateway connection.
func (p *Presence) Start() error {
	if err := p.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	user, err := p.session.User("@me")
	if err == nil {
		slog.Info("discord gateway connected", "username", user.Username, "id", user.ID)
	}
	return nil
}

// Stop closes the gateway connection.
func (p *Presence) Stop() error {
	return p.session.Close()
}

// SetWatching updates the bot's status ("online"/"idle") and its
// "Watching …" activity text.
func (p *Presence) SetWatching(status, activity string) error {
	data := discordgo.UpdateStatusData{
		Status: status,
		Activities: []*discordgo.Activity{{
			Name: activity,
			Type: discordgo.ActivityTypeWatching,
			URL:  activityURL,
		}},
	}
	return p.session.UpdateStatusComplex(data)
}
