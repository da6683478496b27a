package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/manualqa-cli/internal/core/domain"
)

var (
	askTopK        int
	askShowSources bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the indexed manuals",
	Long: `Answers a question using the indexed PDF manuals.

The question is embedded, the most similar manual excerpts are retrieved
from the vector database, and the Gemini chat model writes an answer
grounded in them. The excerpts used are cited with file and page.

The vector database is prepared on first use: an existing database is
loaded as-is, otherwise every manual in the documents directory is
ingested first.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "sources", "k", 0, "chunks to retrieve (0 = configured default)")
	askCmd.Flags().BoolVar(&askShowSources, "show-sources", true, "print the cited sources under the answer")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	if answerService == nil || indexService == nil {
		return errors.New("answer service not configured")
	}

	if err := reportIndexStatus(cmd); err != nil {
		return err
	}

	answer, err := answerService.Answer(cmd.Context(), question, askTopK)
	if err != nil {
		return err
	}

	cmd.Println()
	cmd.Println(answer.Text)

	if askShowSources && len(answer.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for i, src := range answer.Sources {
			cmd.Printf("  [%d] %s, page %d\n", i+1, src.Chunk.SourceBase(), src.Chunk.Page)
			cmd.Printf("      %s\n", src.Chunk.Excerpt(domain.ExcerptLength))
		}
	}

	return nil
}
