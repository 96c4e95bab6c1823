// Package bot wires the webhook endpoint to the MineSkin generation queue:
// command interpretation, result delivery, and the presence status loop.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/mineskin/skinbot/internal/discord"
	"github.com/mineskin/skinbot/internal/mineskin"
)

// User-facing validation messages.
const (
	msgInvalidUser  = "Invalid user"
	msgInvalidURL   = "Invalid url"
	msgCheckCommand = "That didn't work. Please check your command."
)

const maxSkinNameLen = 20

// NameValidator resolves a Minecraft username to an account UUID.
// Implemented by mineskin.Client.
type NameValidator interface {
	ValidateName(ctx context.Context, name string) (*mineskin.NameValidation, error)
}

// Interpreter turns validated interaction payloads into generation jobs.
type Interpreter struct {
	validator NameValidator
}

// NewInterpreter creates an Interpreter backed by the given validator.
func NewInterpreter(validator NameValidator) *Interpreter {
	return &Interpreter{validator: validator}
}

// Interpret parses a command interaction. It always returns the response to
// send immediately; job is non-nil only when the command parsed into work,
// in which case the response is the "generating…" acknowledgment and the
// job must be enqueued by the caller.
func (p *Interpreter) Interpret(ctx context.Context, in *discord.Interaction) (*discord.InteractionResponse, *mineskin.Job) {
	if in.Data == nil {
		return ack(), nil
	}
	if in.Data.Name != discord.CommandName {
		slog.Warn("ignoring unrecognized command", "command", in.Data.Name)
		return ack(), nil
	}

	var kind mineskin.Kind
	value := ""
	variant := mineskin.VariantAuto
	name := ""

	for _, opt := range in.Data.Options {
		switch opt.Name {
		case discord.OptionURLOrUser:
			if strings.HasPrefix(opt.Value, "http") {
				u, err := url.Parse(strings.TrimSpace(opt.Value))
				if err != nil || !strings.HasPrefix(u.Scheme, "http") || u.Host == "" {
					return message(msgInvalidURL), nil
				}
				kind = mineskin.KindURL
				value = u.String()
				break
			}
			switch l := len(opt.Value); {
			case l >= 32 && l <= 36: // account UUID, with or without dashes
				kind = mineskin.KindUser
				value = strings.TrimSpace(opt.Value)
			case l <= 16: // username, resolve via the validation endpoint
				validation, err := p.validator.ValidateName(ctx, opt.Value)
				if err != nil {
					slog.Warn("username validation failed", "username", opt.Value, "error", err)
					return message(msgInvalidUser), nil
				}
				if !validation.Valid || validation.UUID == "" {
					return message(msgInvalidUser), nil
				}
				kind = mineskin.KindUser
				value = validation.UUID
			}
			// Lengths 17–31 or >36 without a scheme stay unclassified and
			// fall through to the final check below.
		case discord.OptionVariant:
			if opt.Value != "" {
				// Passed through as-is; the command schema offers fixed
				// choices and the API rejects values it does not know.
				variant = mineskin.Variant(opt.Value)
			}
		case discord.OptionName:
			if opt.Value != "" {
				name = truncateRunes(opt.Value, maxSkinNameLen)
			}
		}
	}

	if kind == "" || value == "" || in.Token == "" || in.ID == "" {
		return message(msgCheckCommand), nil
	}

	msg := fmt.Sprintf("Generating `%s` skin for `%s` with `%s` variant", kind, value, variant)
	if name != "" {
		msg += fmt.Sprintf(" and name `%s`", name)
	}

	slog.Info("accepted generation command",
		"interaction", in.ID,
		"kind", kind,
		"value", value,
		"variant", variant,
		"name", name,
	)

	return message(msg), &mineskin.Job{
		Token:         in.Token,
		InteractionID: in.ID,
		Kind:          kind,
		Value:         value,
		Variant:       variant,
		Name:          name,
	}
}

func ack() *discord.InteractionResponse {
	return &discord.InteractionResponse{Type: discord.ResponseTypeAcknowledge}
}

func message(content string) *discord.InteractionResponse {
	return &discord.InteractionResponse{
		Type: discord.ResponseTypeChannelMessageWithSource,
		Data: &discord.MessageData{Content: content},
	}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
