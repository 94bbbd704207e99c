package cli

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed guide.md
var guideMarkdown string

func newGuideCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "guide",
		Short: "Show the operational guide",
		Long: "Render the embedded operational guide, including the semantics of the\n" +
			"violation store and the known limitation around address-keyed bans.",
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(100),
			)
			if err != nil {
				return fmt.Errorf("failed to create renderer: %w", err)
			}

			out, err := renderer.Render(guideMarkdown)
			if err != nil {
				return fmt.Errorf("failed to render guide: %w", err)
			}

			cmd.Print(out)
			return nil
		},
	}
}
