package cli

import (
	"fmt"

	"banctl/internal/tui/styles"

	"github.com/spf13/cobra"
)

func newPurgeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Remove expired violation records",
		Long: "Delete records whose expiry has lapsed, across all namespaces. Reads\n" +
			"already treat expired records as absent; purge reclaims the rows.",
		RunE: func(cmd *cobra.Command, args []string) error {
			purged, err := app.admin.Purge(cmd.Context())
			if err != nil {
				return err
			}

			cmd.Println(styles.SuccessStyle.Render(
				fmt.Sprintf("Purged %d expired record(s)", purged)))
			return nil
		},
	}
}
