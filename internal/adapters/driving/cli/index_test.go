package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/manualqa-cli/internal/core/domain"
)

func TestIndexCmd_Use(t *testing.T) {
	assert.Equal(t, "index", indexCmd.Use)
	assert.Equal(t, "Build or load the vector database", indexCmd.Short)
}

func TestIndexCmd_RebuildFlag(t *testing.T) {
	flag := indexCmd.Flags().Lookup("rebuild")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}

func TestIndexCmd_LoadsExistingDatabase(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	output, err := executeCommand("index")

	require.NoError(t, err)
	assert.Contains(t, output, "Loading existing vector database...")
	assert.Contains(t, output, "Vector database loaded.")

	fake := indexService.(*fakeIndexService)
	assert.Equal(t, 1, fake.ensureCalls)
	assert.Equal(t, 0, fake.rebuildCalls)
}

func TestIndexCmd_ReportsFreshIngestion(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	indexExisted = false
	indexService.(*fakeIndexService).info.Created = true

	output, err := executeCommand("index")

	require.NoError(t, err)
	assert.NotContains(t, output, "Loading existing vector database...")
	assert.Contains(t, output, "New vector database created with 12 chunks from 2 manual(s).")
}

func TestIndexCmd_Rebuild(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	output, err := executeCommand("index", "--rebuild")
	indexRebuild = false // Reset flag

	require.NoError(t, err)
	assert.Contains(t, output, "Rebuilding vector database...")
	assert.Contains(t, output, "New vector database created with 12 chunks from 2 manual(s).")

	fake := indexService.(*fakeIndexService)
	assert.Equal(t, 1, fake.rebuildCalls)
	assert.Equal(t, 0, fake.ensureCalls)
}

func TestIndexCmd_PropagatesIngestError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	indexService.(*fakeIndexService).err = domain.NewIngestError(
		domain.StageEmbed, errors.New("quota exhausted"))

	_, err := executeCommand("index")

	require.Error(t, err)
	var ingestErr *domain.IngestError
	assert.ErrorAs(t, err, &ingestErr)
	assert.Equal(t, domain.StageEmbed, ingestErr.Stage)
}

func TestIndexCmd_RejectsArgs(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("index", "extra")

	require.Error(t, err)
}

func TestIndexCmd_ErrorsWithoutServices(t *testing.T) {
	oldIndex := indexService
	indexService = nil
	defer func() { indexService = oldIndex }()

	_, err := executeCommand("index")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "index service not configured")
}
