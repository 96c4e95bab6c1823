// Package discord implements the thin slice of the Discord interactions
// and webhook REST API the bot needs: inbound interaction payloads,
// ed25519 request verification, and a paced authenticated REST client.
package discord

// Interaction types received on the webhook endpoint.
const (
	InteractionTypePing               = 1
	InteractionTypeApplicationCommand = 2
)

// Interaction response types (API v8).
const (
	ResponseTypePong                     = 1
	ResponseTypeAcknowledge              = 2
	ResponseTypeChannelMessageWithSource = 4
)

// Interaction is an inbound interaction payload. Immutable once received.
type Interaction struct {
	ID    string           `json:"id"`
	Type  int              `json:"type"`
	Token string           `json:"token"`
	Data  *InteractionData `json:"data,omitempty"`
}

// InteractionData is the command portion of an application-command interaction.
type InteractionData struct {
	Name    string              `json:"name"`
	Options []InteractionOption `json:"options,omitempty"`
}

// InteractionOption is a single named command argument. Per the protocol
// contract each name appears at most once.
type InteractionOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// InteractionResponse is the body returned to Discord from the webhook
// endpoint, and also the payload of deferred-response edits.
type InteractionResponse struct {
	Type int          `json:"type"`
	Data *MessageData `json:"data,omitempty"`
}

// MessageData is message content for an interaction response or webhook edit.
type MessageData struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds,omitempty"`
}

// Embed is a rich message embed.
type Embed struct {
	Type      string       `json:"type,omitempty"`
	Title     string       `json:"title,omitempty"`
	URL       string       `json:"url,omitempty"`
	Fields    []EmbedField `json:"fields,omitempty"`
	Thumbnail *EmbedMedia  `json:"thumbnail,omitempty"`
	Image     *EmbedMedia  `json:"image,omitempty"`
	Timestamp string       `json:"timestamp,omitempty"` // RFC3339
	Footer    *EmbedFooter `json:"footer,omitempty"`
	Author    *EmbedAuthor `json:"author,omitempty"`
}

// EmbedField is a single titled value inside an embed.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// EmbedMedia references an image by URL (thumbnail or full image).
type EmbedMedia struct {
	URL   string `json:"url"`
	Width int    `json:"width,omitempty"`
}

// EmbedFooter is the small text line at the bottom of an embed.
type EmbedFooter struct {
	Text string `json:"text"`
}

// EmbedAuthor is the attribution block at the top of an embed.
type EmbedAuthor struct {
	Name    string `json:"name"`
	URL     string `json:"url,omitempty"`
	IconURL string `json:"icon_url,omitempty"`
}

// ApplicationCommand is the slash-command schema registered with Discord.
type ApplicationCommand struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Options     []CommandOption `json:"options,omitempty"`
}

// Command option types. Only STRING is used here.
const OptionTypeString = 3

// CommandOption describes one argument of an application command.
type CommandOption struct {
	Type        int             `json:"type"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Required    bool            `json:"required,omitempty"`
	Choices     []CommandChoice `json:"choices,omitempty"`
}

// CommandChoice is a fixed selectable value for a command option.
type CommandChoice struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
