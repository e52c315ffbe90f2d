package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareValidDocument(t *testing.T) {
	text := "Section 143(1) intimation for A.Y. 2023-24, PAN ABCDE1234F. " +
		strings.Repeat("Computation details follow. ", 10)
	svc := NewDocumentService(&fakePDFProcessor{
		pageCount: 2,
		content:   &ExtractedContent{Text: text, NumPages: 2, Producer: "ITBA"},
	})

	result := svc.Prepare(pdfBytes(2048), ChunkOptions{})

	require.True(t, result.IsValid)
	assert.Empty(t, result.Error)
	assert.Equal(t, 2, result.PageCount)
	assert.Equal(t, 2048, result.FileSize)
	assert.True(t, result.HasTextLayer)
	assert.Equal(t, "ITBA", result.Metadata.Producer)
	assert.Equal(t, "Intimation", result.DocumentInfo.DocumentType)
	assert.Equal(t, []string{"ABCDE1234F"}, result.DocumentInfo.PANNumbers)
	assert.Equal(t, []string{"2023-24"}, result.DocumentInfo.AssessmentYears)
	require.Len(t, result.Chunks, 1)
	assert.Equal(t, strings.TrimSpace(text), result.Chunks[0].Text)
}

func TestPrepareInvalidDocument(t *testing.T) {
	svc := NewDocumentService(&fakePDFProcessor{})

	result := svc.Prepare([]byte("not a pdf at all"), ChunkOptions{})

	assert.False(t, result.IsValid)
	assert.Contains(t, result.Error, "valid PDF header")
	assert.Empty(t, result.Text)
	assert.Empty(t, result.Chunks)
	assert.Equal(t, "Unknown", result.DocumentInfo.DocumentType)
	assert.Equal(t, 16, result.FileSize)
}

func TestPrepareExtractionFailure(t *testing.T) {
	svc := NewDocumentService(&fakePDFProcessor{
		pageCount:  4,
		contentErr: errors.New("bad stream"),
	})

	result := svc.Prepare(pdfBytes(512), ChunkOptions{})

	assert.False(t, result.IsValid)
	assert.Contains(t, result.Error, "PDF processing failed")
	assert.Contains(t, result.Error, "bad stream")
	// Page count from validation is preserved.
	assert.Equal(t, 4, result.PageCount)
	assert.Empty(t, result.Chunks)
}

func TestPrepareBadChunkOptions(t *testing.T) {
	svc := NewDocumentService(&fakePDFProcessor{
		pageCount: 1,
		content:   &ExtractedContent{Text: "some text", NumPages: 1},
	})

	result := svc.Prepare(pdfBytes(512), ChunkOptions{ChunkSize: 100, Overlap: 100})

	assert.False(t, result.IsValid)
	assert.Contains(t, result.Error, "PDF processing failed")
}

func TestPrepareCustomChunkOptions(t *testing.T) {
	svc := NewDocumentService(&fakePDFProcessor{
		pageCount: 1,
		content:   &ExtractedContent{Text: strings.Repeat("A", 250), NumPages: 1},
	})

	result := svc.Prepare(pdfBytes(512), ChunkOptions{ChunkSize: 100, Overlap: 10})

	require.True(t, result.IsValid)
	assert.Len(t, result.Chunks, 3)
	for _, chunk := range result.Chunks {
		assert.Equal(t, 3, chunk.Total)
	}
}

func TestPrepareRecoversFromPanic(t *testing.T) {
	svc := NewDocumentService(&panickyProcessor{})

	result := svc.Prepare(pdfBytes(512), ChunkOptions{})

	assert.False(t, result.IsValid)
	assert.Contains(t, result.Error, "PDF processing failed")
}

func TestSummarizeValidDocument(t *testing.T) {
	text := "Notice of demand under section 156 for A.Y. 2022-23. " + strings.Repeat("x", 600)
	svc := NewDocumentService(&fakePDFProcessor{
		pageCount: 1,
		content:   &ExtractedContent{Text: text, NumPages: 1},
	})

	summary := svc.Summarize(pdfBytes(1024))

	require.True(t, summary.IsValid)
	assert.Equal(t, len(text), summary.CharacterCount)
	assert.Len(t, summary.Preview, 500)
	assert.Equal(t, text[:500], summary.Preview)
	assert.Equal(t, "Demand Notice", summary.DocumentType)
	assert.Equal(t, []string{"156"}, summary.Sections)
	assert.Equal(t, []string{"2022-23"}, summary.AssessmentYears)
	assert.Empty(t, summary.Error)
}

func TestSummarizeInvalidDocument(t *testing.T) {
	svc := NewDocumentService(&fakePDFProcessor{})

	summary := svc.Summarize([]byte{})

	assert.False(t, summary.IsValid)
	assert.Contains(t, summary.Error, "empty")
	assert.Empty(t, summary.Preview)
	assert.Zero(t, summary.CharacterCount)
}

// panickyProcessor simulates a PDF library panic.
type panickyProcessor struct {
	fakePDFProcessor
}

func (p *panickyProcessor) ExtractContent(pdfData []byte) (*ExtractedContent, error) {
	panic("slice bounds out of range")
}
