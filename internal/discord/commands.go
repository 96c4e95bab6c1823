package discord

// CommandName is the single slash command the bot responds to.
const CommandName = "mineskin"

// Option names of the mineskin command.
const (
	OptionURLOrUser = "url-or-user"
	OptionVariant   = "variant"
	OptionName      = "name"
)

// SkinCommand returns the /mineskin application-command schema registered
// with Discord on startup.
func SkinCommand() ApplicationCommand {
	return ApplicationCommand{
		Name:        CommandName,
		Description: "Interact with the MineSkin.org API",
		Options: []CommandOption{
			{
				Type:        OptionTypeString,
				Name:        OptionURLOrUser,
				Description: "url or uuid",
				Required:    true,
			},
			{
				Type:        OptionTypeString,
				Name:        OptionVariant,
				Description: "skin variant to generate",
				Choices: []CommandChoice{
					{Name: "auto", Value: "auto"},
					{Name: "classic", Value: "classic"},
					{Name: "slim", Value: "slim"},
				},
			},
			{
				Type:        OptionTypeString,
				Name:        OptionName,
				Description: "skin name",
			},
		},
	}
}
