package cli

import (
	"fmt"
	"time"

	"banctl/internal/tui/styles"

	"github.com/spf13/cobra"
)

func newBanCmd(app *App) *cobra.Command {
	var (
		durationFlag string
		reasonFlag   string
	)

	cmd := &cobra.Command{
		Use:   "ban <email>",
		Short: "Write a ban entry for a user",
		Long: "Resolve an email address to a user and write a ban entry keyed by the\n" +
			"user identifier. Without --duration the default from the configuration\n" +
			"applies; a duration of 0 makes the ban permanent.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			duration, err := app.banDuration(durationFlag)
			if err != nil {
				return err
			}

			rec, err := app.admin.Ban(cmd.Context(), args[0], duration, reasonFlag)
			if err != nil {
				return err
			}

			if rec.Permanent() {
				cmd.Println(styles.SuccessStyle.Render(
					fmt.Sprintf("Banned %s permanently (key %s)", args[0], rec.Key)))
			} else {
				cmd.Println(styles.SuccessStyle.Render(
					fmt.Sprintf("Banned %s until %s (key %s)",
						args[0], rec.ExpiresAt.Format(time.RFC3339), rec.Key)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&durationFlag, "duration", "",
		"ban duration (e.g. 2h, 30m); 0 for permanent; defaults to config ban_duration")
	cmd.Flags().StringVar(&reasonFlag, "reason", "", "reason recorded on the ban entry")

	return cmd
}

// banDuration resolves the effective expiry: explicit flag first, then the
// configured default.
func (a *App) banDuration(flag string) (time.Duration, error) {
	if flag == "" {
		return a.cfg.ParseBanDuration()
	}
	if flag == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(flag)
	if err != nil {
		return 0, fmt.Errorf("invalid --duration %q: %w", flag, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("--duration must not be negative")
	}
	return d, nil
}
