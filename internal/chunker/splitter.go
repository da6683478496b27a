// Package chunker provides recursive text splitting for manual pages.
//
// Text is broken along progressively finer separators (paragraphs, lines,
// sentences, words) until the pieces fit the chunk size, then packed back
// together with a configurable overlap between consecutive chunks. A piece
// that no separator can break is kept whole even when it exceeds the
// chunk size.
package chunker

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/manualqa-cli/internal/core/domain"
	"github.com/custodia-labs/manualqa-cli/internal/core/ports/driven"
)

// separators are tried coarsest first.
var separators = []string{"\n\n", "\n", ". ", " "}

// Splitter breaks page text into overlapping chunks.
// It implements the driven.Chunker interface.
type Splitter struct {
	chunkSize int
	overlap   int
}

var _ driven.Chunker = (*Splitter)(nil)

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a new splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		chunkSize: domain.DefaultChunkSize,
		overlap:   domain.DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Ensure overlap doesn't exceed chunk size
	if s.overlap >= s.chunkSize {
		s.overlap = s.chunkSize / 4
	}

	return s
}

// Split breaks the pages of one document into chunks. Splitting never
// crosses a page boundary, so every chunk cites exactly one page.
func (s *Splitter) Split(doc domain.Document, pages []domain.Page) ([]domain.Chunk, error) {
	chunks := make([]domain.Chunk, 0, len(pages))
	position := 0

	for _, page := range pages {
		if strings.TrimSpace(page.Text) == "" {
			continue
		}

		for _, content := range s.splitText(page.Text) {
			chunks = append(chunks, domain.Chunk{
				ID:         uuid.New().String(),
				DocumentID: doc.ID,
				Content:    content,
				SourceFile: page.SourceFile,
				Page:       page.Number,
				Position:   position,
			})
			position++
		}
	}

	return chunks, nil
}

// splitText produces the chunk contents for one page of text.
func (s *Splitter) splitText(text string) []string {
	return s.merge(s.divide(text, 0))
}

// divide recursively breaks text into units no longer than the chunk size.
// A unit that the finest separator cannot break is returned whole.
func (s *Splitter) divide(text string, level int) []string {
	if utf8.RuneCountInString(text) <= s.chunkSize || level == len(separators) {
		return []string{text}
	}

	var units []string
	for _, part := range splitKeep(text, separators[level]) {
		if utf8.RuneCountInString(part) <= s.chunkSize {
			units = append(units, part)
		} else {
			units = append(units, s.divide(part, level+1)...)
		}
	}
	return units
}

// merge packs units into chunks up to the chunk size. Each chunk is seeded
// with the tail of the previous one so consecutive chunks overlap, unless
// the seed would push the chunk past the size limit. Oversized indivisible
// units become chunks of their own.
func (s *Splitter) merge(units []string) []string {
	var (
		out   []string
		b     strings.Builder
		bLen  int
		carry string
	)

	emit := func(content string) {
		content = strings.TrimSpace(content)
		if content == "" {
			return
		}
		out = append(out, content)
		carry = tail(content, s.overlap)
	}

	flush := func() {
		if bLen == 0 {
			return
		}
		emit(b.String())
		b.Reset()
		bLen = 0
	}

	for _, unit := range units {
		unitLen := utf8.RuneCountInString(unit)

		if unitLen > s.chunkSize {
			flush()
			emit(unit)
			continue
		}

		if bLen > 0 && bLen+unitLen > s.chunkSize {
			flush()
		}

		if bLen == 0 && carry != "" {
			carryLen := utf8.RuneCountInString(carry)
			if carryLen+1+unitLen <= s.chunkSize {
				b.WriteString(carry)
				b.WriteString(" ")
				bLen = carryLen + 1
			}
			carry = ""
		}

		b.WriteString(unit)
		bLen += unitLen
	}
	flush()

	return out
}

// splitKeep splits text by sep, keeping the separator attached to the
// preceding part so that concatenating the parts reproduces the input.
func splitKeep(text, sep string) []string {
	parts := strings.Split(text, sep)
	out := make([]string, 0, len(parts))
	for i, part := range parts {
		if i < len(parts)-1 {
			part += sep
		}
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// tail returns the last n runes of text.
func tail(text string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[len(runes)-n:])
}
