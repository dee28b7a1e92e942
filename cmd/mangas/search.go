package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/kerbaras/mangaverse/pkg/services"
	"github.com/spf13/cobra"
)

var (
	searchAll   bool
	searchLimit int
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the catalog",
	Long:  "Search titles, alternate titles and genres. Without a query, recent and trending searches are listed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		controller, err := newController(cmd.Context())
		if err != nil {
			return err
		}
		defer controller.Close()

		result := controller.Search(query)
		if !result.Active {
			state, err := services.NewState(cfg, logger)
			if err != nil {
				return err
			}
			suggestions := state.Suggestions()
			fmt.Println("🕘 Recent:   " + strings.Join(suggestions.Recent, ", "))
			fmt.Println("🔥 Trending: " + strings.Join(suggestions.Trending, ", "))
			return nil
		}

		if len(result.Entries) == 0 {
			fmt.Printf("No results for %q.\n", result.Query)
			return nil
		}

		limit := searchLimit
		if limit == 0 {
			limit = cfg.Search.DisplayLimit
		}
		if searchAll {
			limit = 0
		}
		entries, hidden := result.Top(limit)

		var (
			purple = lipgloss.Color("99")

			headerStyle = lipgloss.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center)
			cellStyle   = lipgloss.NewStyle().Padding(0, 1)
		)

		t := table.New().
			Border(lipgloss.HiddenBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(purple)).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return headerStyle
				default:
					return cellStyle
				}
			}).
			Headers("ID", "Title", "Genres", "Rating", "Status")

		for _, e := range entries {
			t.Row(
				e.ID,
				truncateString(e.Title, 40),
				truncateString(strings.Join(e.Genres, ", "), 30),
				fmt.Sprintf("%.1f", e.Rating),
				string(e.Status),
			)
		}

		fmt.Println(t)
		if hidden > 0 {
			fmt.Printf("+%d more (use --all to show everything)\n", hidden)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().BoolVarP(&searchAll, "all", "a", false, "show every match")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum matches to show (default from config)")
}
