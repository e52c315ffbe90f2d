package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/taxdesk/docintel/dto"
)

const (
	// MaxPDFSize is the largest accepted upload, 50 MiB.
	MaxPDFSize = 50 * 1024 * 1024
	// MinTextThreshold is the minimum trimmed text length for a
	// document to count as having a real text layer.
	MinTextThreshold = 50

	pdfHeader = "%PDF-"
)

var (
	errNilInput    = errors.New("input must be a byte buffer containing PDF data")
	errEmptyBuffer = errors.New("PDF buffer is empty")
)

func oversizeError(size int) error {
	return fmt.Errorf("PDF file size (%.1f MB) exceeds the maximum allowed size (%.1f MB)",
		float64(size)/(1024*1024), float64(MaxPDFSize)/(1024*1024))
}

// DocumentService runs the document intelligence pipeline over an
// injected set of PDF primitives. It holds no state between calls;
// concurrent use on independent inputs is safe.
type DocumentService struct {
	processor PDFProcessor
}

func NewDocumentService(processor PDFProcessor) *DocumentService {
	return &DocumentService{
		processor: processor,
	}
}

// Validate runs byte-level and structural sanity checks. Failures are
// reported in the result, never as an error.
func (s *DocumentService) Validate(pdfData []byte) *dto.ValidationResult {
	if pdfData == nil {
		return &dto.ValidationResult{Error: errNilInput.Error()}
	}
	if len(pdfData) == 0 {
		return &dto.ValidationResult{Error: errEmptyBuffer.Error()}
	}
	if len(pdfData) > MaxPDFSize {
		return &dto.ValidationResult{
			FileSize: len(pdfData),
			Error:    oversizeError(len(pdfData)).Error(),
		}
	}
	if len(pdfData) < len(pdfHeader) || string(pdfData[:len(pdfHeader)]) != pdfHeader {
		return &dto.ValidationResult{
			FileSize: len(pdfData),
			Error:    "file does not have a valid PDF header, ensure this is a PDF file",
		}
	}

	pageCount, err := s.processor.PageCount(pdfData)
	if err != nil {
		return &dto.ValidationResult{
			FileSize: len(pdfData),
			Error:    "PDF structure is corrupted or unreadable: " + err.Error(),
		}
	}

	return &dto.ValidationResult{
		IsValid:   true,
		FileSize:  len(pdfData),
		PageCount: pageCount,
	}
}

// ExtractFullText pulls the whole text layer plus metadata. Unlike
// Validate, structurally wrong arguments are reported as errors.
func (s *DocumentService) ExtractFullText(pdfData []byte) (*dto.ExtractionResult, error) {
	if pdfData == nil {
		return nil, errNilInput
	}
	if len(pdfData) == 0 {
		return nil, errEmptyBuffer
	}
	if len(pdfData) > MaxPDFSize {
		return nil, oversizeError(len(pdfData))
	}

	content, err := s.processor.ExtractContent(pdfData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PDF: %w", err)
	}

	text := strings.TrimSpace(content.Text)
	return &dto.ExtractionResult{
		Text:         text,
		PageCount:    content.NumPages,
		HasTextLayer: utf8.RuneCountInString(text) >= MinTextThreshold,
		Metadata: dto.DocumentMetadata{
			Title:    content.Title,
			Author:   content.Author,
			Creator:  content.Creator,
			Producer: content.Producer,
		},
	}, nil
}

// ExtractPageRange extracts text from a 1-indexed inclusive page range.
// Both bounds are clamped to the document length; the returned record
// reports the bounds actually used.
func (s *DocumentService) ExtractPageRange(pdfData []byte, startPage, endPage int) (*dto.PageRangeExtraction, error) {
	if pdfData == nil {
		return nil, errNilInput
	}
	if startPage < 1 {
		return nil, errors.New("startPage must be at least 1")
	}
	if endPage < startPage {
		return nil, errors.New("endPage must not be less than startPage")
	}

	totalPages, err := s.processor.PageCount(pdfData)
	if err != nil {
		return nil, fmt.Errorf("failed to extract page range: %w", err)
	}
	if startPage > totalPages {
		startPage = totalPages
	}
	if endPage > totalPages {
		endPage = totalPages
	}

	subset, err := s.processor.ExtractPageRange(pdfData, startPage, endPage)
	if err != nil {
		return nil, fmt.Errorf("failed to extract page range: %w", err)
	}

	content, err := s.processor.ExtractContent(subset)
	if err != nil {
		return nil, fmt.Errorf("failed to extract page range: %w", err)
	}

	return &dto.PageRangeExtraction{
		Text:      strings.TrimSpace(content.Text),
		PageCount: totalPages,
		StartPage: startPage,
		EndPage:   endPage,
	}, nil
}
