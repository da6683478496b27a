package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/custodia-labs/manualqa-cli/internal/core/domain"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		s := New()
		if s.chunkSize != domain.DefaultChunkSize {
			t.Errorf("expected chunkSize %d, got %d", domain.DefaultChunkSize, s.chunkSize)
		}
		if s.overlap != domain.DefaultChunkOverlap {
			t.Errorf("expected overlap %d, got %d", domain.DefaultChunkOverlap, s.overlap)
		}
	})

	t.Run("custom chunk size", func(t *testing.T) {
		s := New(WithChunkSize(500))
		if s.chunkSize != 500 {
			t.Errorf("expected chunkSize 500, got %d", s.chunkSize)
		}
	})

	t.Run("custom overlap", func(t *testing.T) {
		s := New(WithOverlap(50))
		if s.overlap != 50 {
			t.Errorf("expected overlap 50, got %d", s.overlap)
		}
	})

	t.Run("overlap exceeds chunk size", func(t *testing.T) {
		s := New(WithChunkSize(100), WithOverlap(150))
		if s.overlap >= s.chunkSize {
			t.Error("overlap should be reduced when it exceeds chunk size")
		}
	})

	t.Run("zero values ignored", func(t *testing.T) {
		s := New(WithChunkSize(0), WithOverlap(-1))
		if s.chunkSize != domain.DefaultChunkSize {
			t.Errorf("expected default chunkSize, got %d", s.chunkSize)
		}
		if s.overlap != domain.DefaultChunkOverlap {
			t.Errorf("expected default overlap, got %d", s.overlap)
		}
	})
}

func TestSplitter_Split_BlankPage(t *testing.T) {
	s := New()
	doc := domain.Document{ID: "doc-1"}
	pages := []domain.Page{
		{SourceFile: "manual.pdf", Number: 1, Text: "  \n\t "},
	}

	chunks, err := s.Split(doc, pages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected 0 chunks for blank page, got %d", len(chunks))
	}
}

func TestSplitter_Split_SmallPage(t *testing.T) {
	s := New(WithChunkSize(100), WithOverlap(20))
	doc := domain.Document{ID: "doc-1"}
	pages := []domain.Page{
		{SourceFile: "manual.pdf", Number: 4, Text: "Press the reset button for five seconds."},
	}

	chunks, err := s.Split(doc, pages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk for small page, got %d", len(chunks))
	}

	chunk := chunks[0]
	if chunk.Content != "Press the reset button for five seconds." {
		t.Errorf("unexpected content: %q", chunk.Content)
	}
	if chunk.DocumentID != "doc-1" {
		t.Errorf("expected DocumentID 'doc-1', got %q", chunk.DocumentID)
	}
	if chunk.SourceFile != "manual.pdf" {
		t.Errorf("expected SourceFile 'manual.pdf', got %q", chunk.SourceFile)
	}
	if chunk.Page != 4 {
		t.Errorf("expected Page 4, got %d", chunk.Page)
	}
	if chunk.Position != 0 {
		t.Errorf("expected Position 0, got %d", chunk.Position)
	}
}

func TestSplitter_Split_RespectsChunkSize(t *testing.T) {
	s := New(WithChunkSize(100), WithOverlap(20))
	doc := domain.Document{ID: "doc-1"}

	var sb strings.Builder
	for i := 0; i < 40; i++ {
		sb.WriteString("The quick brown fox jumps over the lazy dog. ")
	}
	pages := []domain.Page{
		{SourceFile: "manual.pdf", Number: 1, Text: sb.String()},
	}

	chunks, err := s.Split(doc, pages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i, chunk := range chunks {
		if utf8.RuneCountInString(chunk.Content) > 100 {
			t.Errorf("chunk %d exceeds size limit: %d runes", i, utf8.RuneCountInString(chunk.Content))
		}
	}
}

func TestSplitter_Split_PrefersParagraphBreaks(t *testing.T) {
	s := New(WithChunkSize(50), WithOverlap(0))
	doc := domain.Document{ID: "doc-1"}

	para1 := "Install the filter before first use."
	para2 := "Replace the filter every three months."
	pages := []domain.Page{
		{SourceFile: "manual.pdf", Number: 1, Text: para1 + "\n\n" + para2},
	}

	chunks, err := s.Split(doc, pages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks split at the paragraph break, got %d", len(chunks))
	}
	if chunks[0].Content != para1 {
		t.Errorf("expected first chunk %q, got %q", para1, chunks[0].Content)
	}
	if chunks[1].Content != para2 {
		t.Errorf("expected second chunk %q, got %q", para2, chunks[1].Content)
	}
}

func TestSplitter_Split_OverlapCarried(t *testing.T) {
	s := New(WithChunkSize(50), WithOverlap(10))
	doc := domain.Document{ID: "doc-1"}

	var sb strings.Builder
	for i := 0; i < 10; i++ {
		sb.WriteString("Check the hose for kinks. ")
	}
	pages := []domain.Page{
		{SourceFile: "manual.pdf", Number: 1, Text: sb.String()},
	}

	chunks, err := s.Split(doc, pages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1].Content)
		seed := string(prev[len(prev)-10:])
		if !strings.HasPrefix(chunks[i].Content, seed) {
			t.Errorf("chunk %d does not start with the tail of chunk %d: %q vs %q",
				i, i-1, seed, chunks[i].Content)
		}
	}
}

func TestSplitter_Split_OversizedWordKeptWhole(t *testing.T) {
	s := New(WithChunkSize(20), WithOverlap(0))
	doc := domain.Document{ID: "doc-1"}

	longWord := strings.Repeat("x", 50)
	pages := []domain.Page{
		{SourceFile: "manual.pdf", Number: 1, Text: "short words " + longWord + " more words"},
	}

	chunks, err := s.Split(doc, pages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, chunk := range chunks {
		if chunk.Content == longWord {
			found = true
			continue
		}
		if utf8.RuneCountInString(chunk.Content) > 20 {
			t.Errorf("divisible chunk exceeds size limit: %q", chunk.Content)
		}
	}
	if !found {
		t.Error("expected the oversized word to be kept whole as its own chunk")
	}
}

func TestSplitter_Split_PositionsSequentialAcrossPages(t *testing.T) {
	s := New(WithChunkSize(100), WithOverlap(10))
	doc := domain.Document{ID: "doc-1"}
	pages := []domain.Page{
		{SourceFile: "manual.pdf", Number: 1, Text: "First page contents."},
		{SourceFile: "manual.pdf", Number: 2, Text: "Second page contents."},
		{SourceFile: "manual.pdf", Number: 5, Text: "A later page, after some blank ones."},
	}

	chunks, err := s.Split(doc, pages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) < len(pages) {
		t.Fatalf("expected at least one chunk per page, got %d chunks for %d pages",
			len(chunks), len(pages))
	}

	for i, chunk := range chunks {
		if chunk.Position != i {
			t.Errorf("expected position %d, got %d", i, chunk.Position)
		}
	}

	wantPages := []int{1, 2, 5}
	for i, chunk := range chunks {
		if chunk.Page != wantPages[i] {
			t.Errorf("chunk %d: expected page %d, got %d", i, wantPages[i], chunk.Page)
		}
	}
}

func TestSplitter_Split_UniqueIDs(t *testing.T) {
	s := New(WithChunkSize(30), WithOverlap(5))
	doc := domain.Document{ID: "doc-1"}

	pages := []domain.Page{
		{SourceFile: "manual.pdf", Number: 1, Text: strings.Repeat("one two three four five. ", 20)},
	}

	chunks, err := s.Split(doc, pages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := make(map[string]bool)
	for _, chunk := range chunks {
		if chunk.ID == "" {
			t.Error("expected chunk ID to be set")
		}
		if seen[chunk.ID] {
			t.Errorf("duplicate chunk ID: %s", chunk.ID)
		}
		seen[chunk.ID] = true
	}
}

func TestSplitKeep(t *testing.T) {
	parts := splitKeep("one. two. three.", ". ")
	if len(parts) != 3 {
		t.Fatalf("expected 3 parts, got %d: %v", len(parts), parts)
	}
	if strings.Join(parts, "") != "one. two. three." {
		t.Errorf("parts do not reassemble the input: %v", parts)
	}
}
