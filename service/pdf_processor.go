package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ExtractedContent is the raw output of the text-extraction primitive.
type ExtractedContent struct {
	Text     string
	NumPages int
	Title    string
	Author   string
	Creator  string
	Producer string
}

// PDFProcessor abstracts the delegated PDF primitives so the pipeline
// can be unit-tested without real PDF bytes.
type PDFProcessor interface {
	// PageCount structurally loads the document and returns its page count.
	PageCount(pdfData []byte) (int, error)
	// ExtractContent pulls the text layer and Info metadata.
	ExtractContent(pdfData []byte) (*ExtractedContent, error)
	// ExtractPageRange serializes a new document containing only pages
	// startPage..endPage (1-indexed, inclusive).
	ExtractPageRange(pdfData []byte, startPage, endPage int) ([]byte, error)
	// ExtractImages decodes the embedded raster images.
	ExtractImages(pdfData []byte) ([]image.Image, error)
}

type pdfProcessor struct{}

func NewPDFProcessor() PDFProcessor {
	return &pdfProcessor{}
}

func relaxedConfiguration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

func (p *pdfProcessor) PageCount(pdfData []byte) (int, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(pdfData), relaxedConfiguration())
	if err != nil {
		return 0, err
	}
	return ctx.PageCount, nil
}

func (p *pdfProcessor) ExtractContent(pdfData []byte) (content *ExtractedContent, err error) {
	// The pdf reader panics on some malformed xref tables.
	defer func() {
		if r := recover(); r != nil {
			content = nil
			err = fmt.Errorf("pdf reader failed: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return nil, err
	}

	var textBuilder strings.Builder
	totalPages := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPages; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			for _, word := range row.Content {
				textBuilder.WriteString(word.S)
			}
			textBuilder.WriteString("\n")
		}
	}

	content = &ExtractedContent{
		Text:     textBuilder.String(),
		NumPages: totalPages,
	}

	info := r.Trailer().Key("Info")
	if info.Kind() == pdf.Dict {
		content.Title = infoString(info, "Title")
		content.Author = infoString(info, "Author")
		content.Creator = infoString(info, "Creator")
		content.Producer = infoString(info, "Producer")
	}

	return content, nil
}

func infoString(info pdf.Value, key string) string {
	v := info.Key(key)
	if v.Kind() != pdf.String {
		return ""
	}
	return v.Text()
}

func (p *pdfProcessor) ExtractPageRange(pdfData []byte, startPage, endPage int) ([]byte, error) {
	var buf bytes.Buffer
	selectedPages := []string{fmt.Sprintf("%d-%d", startPage, endPage)}
	if err := api.Trim(bytes.NewReader(pdfData), &buf, selectedPages, relaxedConfiguration()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (p *pdfProcessor) ExtractImages(pdfData []byte) ([]image.Image, error) {
	tempDir, err := os.MkdirTemp("", "docintel_images")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	tempFile, err := os.CreateTemp("", "doc-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(pdfData); err != nil {
		tempFile.Close()
		return nil, fmt.Errorf("failed to write pdf data: %w", err)
	}
	tempFile.Close()

	if err := api.ExtractImagesFile(tempFile.Name(), tempDir, nil, relaxedConfiguration()); err != nil {
		return nil, fmt.Errorf("failed to extract images: %w", err)
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read temp dir: %w", err)
	}

	var images []image.Image
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		imgFile, err := os.Open(filepath.Join(tempDir, entry.Name()))
		if err != nil {
			continue
		}
		img, _, err := image.Decode(imgFile)
		imgFile.Close()
		if err != nil {
			continue
		}
		images = append(images, img)
	}

	return images, nil
}
