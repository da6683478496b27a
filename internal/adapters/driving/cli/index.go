package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var indexRebuild bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build or load the vector database",
	Long: `Prepares the vector database used to answer questions.

An existing database is loaded as-is, without re-reading the documents
directory. Otherwise every PDF manual is loaded, split into chunks,
embedded with the Gemini embedding model and persisted.

The database is never updated in place. Use --rebuild after adding,
removing, or editing manuals to discard it and ingest from scratch.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&indexRebuild, "rebuild", false, "discard the existing database and re-ingest")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	if indexRebuild {
		cmd.Println("Rebuilding vector database...")
		info, err := indexService.Rebuild(cmd.Context())
		if err != nil {
			return err
		}
		cmd.Printf("New vector database created with %d chunks from %d manual(s).\n",
			info.Chunks, info.Documents)
		return nil
	}

	return reportIndexStatus(cmd)
}

// reportIndexStatus makes the index ready and prints the outcome: loaded
// as-is, or freshly created with its ingestion totals.
func reportIndexStatus(cmd *cobra.Command) error {
	if indexExisted {
		cmd.Println("Loading existing vector database...")
	}

	info, err := indexService.Ensure(cmd.Context())
	if err != nil {
		return err
	}

	if info.Created {
		cmd.Printf("New vector database created with %d chunks from %d manual(s).\n",
			info.Chunks, info.Documents)
	} else {
		cmd.Println("Vector database loaded.")
	}
	return nil
}
