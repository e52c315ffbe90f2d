package service

import (
	"errors"
	"strings"

	"github.com/taxdesk/docintel/dto"
)

const (
	// DefaultChunkSize is the default chunk length in bytes.
	DefaultChunkSize = 100000
	// DefaultOverlap is the default overlap between adjacent chunks.
	DefaultOverlap = 500

	// boundarySnapRatio limits how far back a chunk may be cut to land
	// on a paragraph or sentence boundary: snapping is skipped if it
	// would shrink the chunk below 70% of chunkSize.
	boundarySnapRatio = 0.7
)

// ChunkText splits text into bounded, overlapping segments, preferring
// paragraph and sentence boundaries. Empty text yields an empty slice.
// chunkSize must be positive and overlap strictly smaller than
// chunkSize; violating either is an error.
func ChunkText(text string, chunkSize, overlap int) ([]dto.Chunk, error) {
	if chunkSize <= 0 {
		return nil, errors.New("chunkSize must be positive")
	}
	if overlap >= chunkSize {
		return nil, errors.New("overlap must be smaller than chunkSize")
	}
	if text == "" {
		return []dto.Chunk{}, nil
	}

	if len(text) <= chunkSize {
		return []dto.Chunk{{
			Text:      text,
			Index:     0,
			Total:     1,
			StartChar: 0,
			EndChar:   len(text),
		}}, nil
	}

	var chunks []dto.Chunk
	start := 0

	for start < len(text) {
		end := start + chunkSize
		if end > len(text) {
			end = len(text)
		}

		if end < len(text) {
			// Not the final slice: try to snap to a natural boundary,
			// paragraph break first, then sentence break.
			threshold := start + int(boundarySnapRatio*float64(chunkSize))
			if idx := strings.LastIndex(text[start:end], "\n\n"); idx >= 0 && start+idx > threshold {
				end = start + idx + 2
			} else if idx := strings.LastIndex(text[start:end], ". "); idx >= 0 && start+idx > threshold {
				end = start + idx + 2
			}
		}

		chunks = append(chunks, dto.Chunk{
			Text:      text[start:end],
			Index:     len(chunks),
			StartChar: start,
			EndChar:   end,
		})

		if end == len(text) {
			break
		}

		next := end - overlap
		if next <= start {
			// Overlap would step back to or before this chunk's own
			// start; force progress instead of looping forever.
			next = end
		}
		start = next
	}

	for i := range chunks {
		chunks[i].Total = len(chunks)
	}

	return chunks, nil
}
