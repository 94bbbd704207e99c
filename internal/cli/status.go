package cli

import (
	"fmt"
	"time"

	"banctl/internal/tui/styles"

	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <email>",
		Short: "Report whether a user is currently banned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := app.admin.Status(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if !status.Banned {
				cmd.Println(styles.SuccessStyle.Render(
					fmt.Sprintf("%s (id %s) is not banned", status.User.Email, status.User.ID)))
				return nil
			}

			rec := status.Record
			if rec.Permanent() {
				cmd.Println(styles.ErrorStyle.Render(
					fmt.Sprintf("%s (id %s) is banned permanently", status.User.Email, status.User.ID)))
			} else {
				cmd.Println(styles.ErrorStyle.Render(
					fmt.Sprintf("%s (id %s) is banned until %s",
						status.User.Email, status.User.ID, rec.ExpiresAt.Format(time.RFC3339))))
			}
			if rec.Reason != "" {
				cmd.Println(styles.HelpStyle.Render("reason: " + rec.Reason))
			}
			return nil
		},
	}
}
