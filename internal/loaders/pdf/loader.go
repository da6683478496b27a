// Package pdf loads manuals from a directory of PDF files.
package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	lpdf "github.com/ledongthuc/pdf"

	"github.com/custodia-labs/manualqa-cli/internal/core/domain"
	"github.com/custodia-labs/manualqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/manualqa-cli/internal/logger"
)

// Loader reads every PDF manual in a directory.
// It implements the driven.DocumentLoader interface.
type Loader struct {
	dir string
}

var _ driven.DocumentLoader = (*Loader)(nil)

// New creates a loader for the given directory.
func New(dir string) *Loader {
	return &Loader{dir: dir}
}

// Load reads every PDF in the directory in filename order and extracts the
// text of each page. Pages without extractable text are skipped. Returns
// domain.ErrNoDocuments (wrapped) when the directory holds no PDF files.
func (l *Loader) Load(ctx context.Context) ([]driven.LoadedDocument, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("reading documents directory %q: %w", l.dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			paths = append(paths, filepath.Join(l.dir, entry.Name()))
		}
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no PDF manuals in %q: %w", l.dir, domain.ErrNoDocuments)
	}

	docs := make([]driven.LoadedDocument, 0, len(paths))
	for _, path := range paths {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		loaded, err := l.loadFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", filepath.Base(path), err)
		}
		docs = append(docs, loaded)
	}

	return docs, nil
}

// loadFile extracts the text-bearing pages of one PDF. The pdf library
// panics on some malformed files, so panics are converted into errors.
func (l *Loader) loadFile(path string) (loaded driven.LoadedDocument, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parsing pdf: %v", r)
		}
	}()

	f, reader, err := lpdf.Open(path)
	if err != nil {
		return driven.LoadedDocument{}, fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	base := filepath.Base(path)
	numPages := reader.NumPage()
	pages := make([]domain.Page, 0, numPages)

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return driven.LoadedDocument{}, fmt.Errorf("extracting text from page %d: %w", i, err)
		}
		if strings.TrimSpace(text) == "" {
			logger.Debug("skipping page %d of %s: no extractable text", i, base)
			continue
		}

		pages = append(pages, domain.Page{
			SourceFile: path,
			Number:     i,
			Text:       text,
		})
	}

	doc := domain.Document{
		ID:         uuid.New().String(),
		Path:       path,
		Title:      domain.TitleFromPath(path),
		Pages:      len(pages),
		IngestedAt: time.Now().UTC(),
	}

	logger.Debug("loaded %s: %d of %d pages carry text", base, len(pages), numPages)

	return driven.LoadedDocument{Document: doc, Pages: pages}, nil
}
