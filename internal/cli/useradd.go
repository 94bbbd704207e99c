package cli

import (
	"fmt"

	"banctl/internal/tui/styles"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newUserAddCmd(app *App) *cobra.Command {
	var usernameFlag string

	cmd := &cobra.Command{
		Use:   "useradd <email>",
		Short: "Add a user to the directory",
		Long: "Create a directory entry with a fresh identifier. Intended for seeding\n" +
			"local and test deployments; production directories are populated by the\n" +
			"chat runtime itself.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.admin.CreateUser(cmd.Context(), uuid.NewString(), args[0], usernameFlag)
			if err != nil {
				return err
			}

			cmd.Println(styles.SuccessStyle.Render(
				fmt.Sprintf("Created user %s (id %s)", user.Email, user.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&usernameFlag, "username", "", "display name for the new user")

	return cmd
}
