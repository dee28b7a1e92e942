package cmd

import (
	"github.com/kerbaras/mangaverse/pkg/app/screens"
	"github.com/kerbaras/mangaverse/pkg/sources"
	"github.com/spf13/cobra"
)

var (
	readChapter int
	readPage    int
)

var readCmd = &cobra.Command{
	Use:   "read <entry-id>",
	Short: "Open a chapter straight in the reader",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		controller, err := newController(cmd.Context())
		if err != nil {
			return err
		}
		// fail before the TUI takes the terminal
		if _, err := controller.GetManga(cmd.Context(), args[0]); err != nil {
			controller.Close()
			return err
		}
		controller.Close()

		chapterID := sources.ChapterID(args[0], readChapter)
		return runTUI(cmd.Context(), screens.StartInReader(chapterID, readPage))
	},
}

func init() {
	readCmd.Flags().IntVarP(&readChapter, "chapter", "c", 1, "chapter number")
	readCmd.Flags().IntVarP(&readPage, "page", "p", 1, "page to open at")
}
