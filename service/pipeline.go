package service

import (
	"fmt"
	"unicode/utf8"

	"github.com/taxdesk/docintel/dto"
	"github.com/taxdesk/docintel/utils"
)

// summaryPreviewLength bounds DocumentSummary.Preview.
const summaryPreviewLength = 500

// ChunkOptions tunes the chunking stage of Prepare. Zero values select
// DefaultChunkSize and DefaultOverlap.
type ChunkOptions struct {
	ChunkSize int
	Overlap   int
}

func (o ChunkOptions) withDefaults() ChunkOptions {
	if o.ChunkSize == 0 {
		o.ChunkSize = DefaultChunkSize
	}
	if o.Overlap == 0 {
		o.Overlap = DefaultOverlap
	}
	return o
}

// Prepare runs the full pipeline: validate, extract, classify, chunk.
// All failures, including panics out of the PDF libraries, are folded
// into the returned record; callers never need their own recover.
func (s *DocumentService) Prepare(pdfData []byte, opts ChunkOptions) (prepared *dto.PreparedDocument) {
	invalid := func(message string, pageCount int) *dto.PreparedDocument {
		return &dto.PreparedDocument{
			Error:        message,
			PageCount:    pageCount,
			Metadata:     dto.DocumentMetadata{},
			DocumentInfo: utils.ClassifyText(""),
			Chunks:       []dto.Chunk{},
			FileSize:     len(pdfData),
		}
	}

	defer func() {
		if r := recover(); r != nil {
			prepared = invalid(fmt.Sprintf("PDF processing failed: %v", r), 0)
		}
	}()

	validation := s.Validate(pdfData)
	if !validation.IsValid {
		return invalid(validation.Error, validation.PageCount)
	}

	extraction, err := s.ExtractFullText(pdfData)
	if err != nil {
		return invalid("PDF processing failed: "+err.Error(), validation.PageCount)
	}

	classification := utils.ClassifyText(extraction.Text)

	opts = opts.withDefaults()
	chunks, err := ChunkText(extraction.Text, opts.ChunkSize, opts.Overlap)
	if err != nil {
		return invalid("PDF processing failed: "+err.Error(), validation.PageCount)
	}

	return &dto.PreparedDocument{
		IsValid:      true,
		Text:         extraction.Text,
		PageCount:    extraction.PageCount,
		HasTextLayer: extraction.HasTextLayer,
		Metadata:     extraction.Metadata,
		DocumentInfo: classification,
		Chunks:       chunks,
		FileSize:     len(pdfData),
	}
}

// Summarize runs Prepare and trims the result to a lightweight preview:
// no full text, no chunks.
func (s *DocumentService) Summarize(pdfData []byte) (summary *dto.DocumentSummary) {
	defer func() {
		if r := recover(); r != nil {
			summary = &dto.DocumentSummary{
				Sections:        []string{},
				AssessmentYears: []string{},
				DocumentType:    utils.UnknownDocumentType,
				Error:           fmt.Sprintf("failed to summarize PDF: %v", r),
			}
		}
	}()

	prepared := s.Prepare(pdfData, ChunkOptions{})
	if !prepared.IsValid {
		return &dto.DocumentSummary{
			PageCount:       prepared.PageCount,
			FileSize:        prepared.FileSize,
			DocumentType:    prepared.DocumentInfo.DocumentType,
			Sections:        []string{},
			AssessmentYears: []string{},
			Error:           prepared.Error,
		}
	}

	preview := prepared.Text
	if runes := []rune(preview); len(runes) > summaryPreviewLength {
		preview = string(runes[:summaryPreviewLength])
	}

	return &dto.DocumentSummary{
		IsValid:         true,
		PageCount:       prepared.PageCount,
		FileSize:        prepared.FileSize,
		CharacterCount:  utf8.RuneCountInString(prepared.Text),
		HasTextLayer:    prepared.HasTextLayer,
		DocumentType:    prepared.DocumentInfo.DocumentType,
		Sections:        prepared.DocumentInfo.Sections,
		AssessmentYears: prepared.DocumentInfo.AssessmentYears,
		Preview:         preview,
	}
}
