package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"tracklog-cli/internal/docs"
)

func topicNames() []string {
	topics := docs.Topics()
	names := make([]string, 0, len(topics))
	for _, t := range topics {
		names = append(names, t.Name)
	}
	return names
}

func newDocsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show built-in documentation",
		Long:  "Render a built-in documentation topic. Without a topic, lists the available ones.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Available topics:")
				for _, t := range docs.Topics() {
					fmt.Fprintf(cmd.OutOrStdout(), "  %-18s %s\n", t.Name, t.Title)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "\nRun: tracklog docs <topic>")
				return nil
			}
			body, ok := docs.Get(args[0])
			if !ok {
				return fmt.Errorf("unknown topic %q (available: %s)", args[0], strings.Join(topicNames(), ", "))
			}
			r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
			if err != nil {
				fmt.Fprint(cmd.OutOrStdout(), body)
				return nil
			}
			out, err := r.Render(body)
			if err != nil {
				fmt.Fprint(cmd.OutOrStdout(), body)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
