package bot

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mineskin/skinbot/internal/discord"
	"github.com/mineskin/skinbot/internal/mineskin"
)

// Generic failure text shown to users; the underlying error is only logged.
const msgGenerateFailed = "Failed to generate. Please check your command & try again later."

const (
	skinPermalinkBase = "https://minesk.in/"
	headRenderURL     = "https://api.mineskin.org/render/head?url="
	embedCampaign     = "?utm_source=discord&utm_medium=embed&utm_campaign=mineskin_discord_bot"
	authorIconURL     = "https://res.cloudinary.com/inventivetalent/image/upload/brand/mineskin/mineskin-x128.png"
)

// Dispatcher turns generation results into messages and delivers them by
// editing the deferred acknowledgment, always through the REST queue.
type Dispatcher struct {
	discord *discord.Client
}

// NewDispatcher creates a Dispatcher delivering through the given client.
func NewDispatcher(dc *discord.Client) *Dispatcher {
	return &Dispatcher{discord: dc}
}

// Deliver edits the original deferred response with the result. Blocks
// until the REST queue resolves the edit; callers run it on the async
// tail, off any request's critical path.
func (d *Dispatcher) Deliver(res *mineskin.GenerateResult) {
	if res.Errored() {
		slog.Warn("skin generation failed",
			"interaction", res.InteractionID,
			"code", res.Failure.Code,
			"error", res.Failure.Message,
		)
		d.edit(res, &discord.MessageData{Content: msgGenerateFailed})
		return
	}

	slog.Info("skin generated",
		"interaction", res.InteractionID,
		"skin", res.Skin.IDStr,
		"duration_ms", res.Skin.Duration,
	)
	d.edit(res, successMessage(res))
}

func (d *Dispatcher) edit(res *mineskin.GenerateResult, msg *discord.MessageData) {
	if qres := <-d.discord.EditOriginalResponse(res.Token, msg); qres.Err != nil {
		slog.Warn("deferred response edit failed",
			"interaction", res.InteractionID,
			"error", qres.Err,
		)
	}
}

func successMessage(res *mineskin.GenerateResult) *discord.MessageData {
	skin := res.Skin

	title := skin.Name
	if title == "" {
		title = "#" + skin.IDStr
	}

	return &discord.MessageData{
		Content: "Successfully Generated!",
		Embeds: []discord.Embed{{
			Type:  "rich",
			Title: title,
			URL:   skinPermalinkBase + skin.IDStr + embedCampaign,
			Fields: []discord.EmbedField{
				{Name: "Type", Value: string(res.Kind), Inline: true},
				{Name: "Variant", Value: skin.Variant, Inline: true},
			},
			Thumbnail: &discord.EmbedMedia{URL: headRenderURL + skin.Data.Texture.URL},
			Image:     &discord.EmbedMedia{URL: skin.Data.Texture.URL, Width: 128},
			Timestamp: time.Unix(skin.Timestamp, 0).UTC().Format(time.RFC3339),
			Footer:    &discord.EmbedFooter{Text: fmt.Sprintf("Generated in %dms", skin.Duration)},
			Author: &discord.EmbedAuthor{
				Name:    "MineSkin",
				URL:     "https://mineskin.org" + embedCampaign,
				IconURL: authorIconURL,
			},
		}},
	}
}
