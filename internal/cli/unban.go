package cli

import (
	"fmt"

	"banctl/internal/tui"
	"banctl/internal/tui/styles"

	"github.com/spf13/cobra"
)

func newUnbanCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unban [email]",
		Short: "Clear the ban entry for a user",
		Long: "Resolve an email address to a user and remove that user's entry from\n" +
			"the bans namespace. The removal is idempotent: the command succeeds\n" +
			"whether or not a ban entry exists.\n\n" +
			"Ban entries keyed by network address are not cleared; only the entry\n" +
			"keyed by the user identifier is removed (see `banctl guide`).",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := emailArg(args)
			if err != nil {
				return err
			}

			result, err := app.admin.Unban(cmd.Context(), email)
			if err != nil {
				return err
			}

			cmd.Println(styles.SuccessStyle.Render(
				fmt.Sprintf("Unbanned %s (cleared %s entry for id %s)",
					result.User.Email, result.Namespace, result.ClearedKey)))
			cmd.Println(styles.HelpStyle.Render(
				"address-keyed ban entries, if any, remain until they expire"))
			return nil
		},
	}
}

// emailArg takes the email from the argument list or falls back to the
// interactive prompt when none was given.
func emailArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return tui.PromptEmail()
}
