package cli

import (
	"fmt"
	"time"

	"banctl/internal/store"
	"banctl/internal/tui/styles"

	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	var (
		namespaceFlag string
		pageFlag      int
		pageSizeFlag  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List live violation records in a namespace",
		RunE: func(cmd *cobra.Command, args []string) error {
			ns := store.Namespace(namespaceFlag)

			page, err := app.admin.ListBans(cmd.Context(), ns, pageFlag, pageSizeFlag)
			if err != nil {
				return err
			}

			if page.TotalItems == 0 {
				cmd.Println(styles.HelpStyle.Render(
					fmt.Sprintf("no live records in namespace %q", ns)))
				return nil
			}

			cmd.Println(styles.TitleStyle.Render(
				fmt.Sprintf("%s — page %d/%d (%d records)",
					ns, page.Page, page.TotalPages, page.TotalItems)))

			for _, rec := range page.Records {
				expiry := "permanent"
				if !rec.Permanent() {
					expiry = "until " + rec.ExpiresAt.Format(time.RFC3339)
				}
				line := fmt.Sprintf("%-36s  %-10s  %s", rec.Key, expiry, rec.Reason)
				cmd.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&namespaceFlag, "namespace", store.NamespaceBans.String(),
		"violation namespace to list")
	cmd.Flags().IntVar(&pageFlag, "page", 1, "page number (1-based)")
	cmd.Flags().IntVar(&pageSizeFlag, "page-size", 100, "records per page")

	return cmd
}
