package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "List the indexed manuals",
	Long: `Lists every manual in the vector database with its page count and
when it was indexed. The indexed-at time is the way to spot a database
that predates changes to the documents directory; run
'manualqa index --rebuild' to bring it up to date.`,
	Args: cobra.NoArgs,
	RunE: runDocs,
}

func init() {
	rootCmd.AddCommand(docsCmd)
}

func runDocs(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	manuals, err := libraryService.Manuals(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list manuals: %w", err)
	}

	if len(manuals) == 0 {
		cmd.Println("No manuals indexed yet. Run 'manualqa index' first.")
		return nil
	}

	cmd.Println("Indexed manuals:")
	cmd.Println()
	for i, manual := range manuals {
		cmd.Printf("  [%d] %s\n", i+1, manual.Title)
		cmd.Printf("      File: %s\n", manual.Basename())
		cmd.Printf("      Pages: %d  Indexed: %s\n",
			manual.Pages, manual.IngestedAt.Format("2006-01-02 15:04"))
		cmd.Println()
	}

	info, err := libraryService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get index stats: %w", err)
	}
	cmd.Printf("%d manual(s), %d pages, %d chunks\n", info.Documents, info.Pages, info.Chunks)
	cmd.Printf("Database: %s\n", info.Path)

	return nil
}
