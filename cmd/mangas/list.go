package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/mangaverse/pkg/data"
	"github.com/spf13/cobra"
)

var (
	listGenre  string
	listStatus string
	listSort   string
	listTitle  string
	listQuery  string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the catalog",
	Long:  "Display the catalog filtered by genre, status and title, in the chosen order",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := data.BrowseQuery{Query: listQuery, Title: listTitle, Genre: listGenre}
		if listStatus != "" {
			status, err := data.ParseStatus(listStatus)
			if err != nil {
				return err
			}
			q.Status = status
		}
		sort, err := data.ParseSortKey(listSort)
		if err != nil {
			return err
		}
		q.Sort = sort

		controller, err := newController(cmd.Context())
		if err != nil {
			return err
		}
		defer controller.Close()

		entries, err := controller.Browse(cmd.Context(), q)
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Println("📚 Nothing matches those filters.")
			return nil
		}

		columns := []table.Column{
			{Title: "ID", Width: 4},
			{Title: "Title", Width: 40},
			{Title: "Status", Width: 10},
			{Title: "Rating", Width: 7},
			{Title: "Chapters", Width: 9},
			{Title: "Updated", Width: 11},
		}

		rows := []table.Row{}
		for _, e := range entries {
			updated := "-"
			if !e.UpdatedAt.IsZero() {
				updated = e.UpdatedAt.Format("2006-01-02")
			}
			rows = append(rows, table.Row{
				e.ID,
				truncateString(e.Title, 38),
				string(e.Status),
				fmt.Sprintf("%.1f", e.Rating),
				fmt.Sprintf("%d", e.ChapterCount),
				updated,
			})
		}

		t := table.New(
			table.WithColumns(columns),
			table.WithRows(rows),
			table.WithFocused(false),
			table.WithHeight(len(rows)),
		)

		s := table.DefaultStyles()
		s.Header = s.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true)
		s.Selected = lipgloss.NewStyle()
		t.SetStyles(s)

		fmt.Printf("\n📚 Catalog (%d titles, sorted by %s)\n\n", len(entries), q.Sort)
		fmt.Println(t.View())
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listGenre, "genre", "g", "", "only titles with this genre")
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "only titles with this status (ongoing, completed, hiatus)")
	listCmd.Flags().StringVarP(&listSort, "sort", "o", "updated", "order: updated, title, rating, views, chapters, catalog")
	listCmd.Flags().StringVarP(&listTitle, "title", "t", "", "only titles containing this text")
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "only titles a search for this text matches")
}
