package service

import (
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	"github.com/taxdesk/docintel/dto"
	"github.com/taxdesk/docintel/utils"
)

// DINService finds Document Identification Numbers on income-tax
// communications. Since October 2019 every departmental notice carries
// a DIN, printed in the body and embedded in a QR code; this service
// checks both.
type DINService struct {
	processor PDFProcessor
}

func NewDINService(processor PDFProcessor) *DINService {
	return &DINService{
		processor: processor,
	}
}

// DetectDIN scans the text layer and any embedded QR codes. Text and
// image extraction failures are tolerated independently: a scanned
// notice with no text layer can still yield a DIN from its QR code.
func (s *DINService) DetectDIN(pdfData []byte) (*dto.DINDetectionResult, error) {
	if pdfData == nil {
		return nil, errNilInput
	}
	if len(pdfData) == 0 {
		return nil, errEmptyBuffer
	}
	if len(pdfData) > MaxPDFSize {
		return nil, oversizeError(len(pdfData))
	}

	result := &dto.DINDetectionResult{
		DINs:       []string{},
		QRPayloads: []string{},
	}

	content, textErr := s.processor.ExtractContent(pdfData)
	if textErr == nil {
		result.DINs = utils.ExtractDINs(content.Text)
	}

	images, imgErr := s.processor.ExtractImages(pdfData)
	if textErr != nil && imgErr != nil {
		return nil, fmt.Errorf("failed to scan for DIN: %w", textErr)
	}

	for _, img := range images {
		payload, err := decodeQRCode(img)
		if err != nil {
			continue
		}
		result.QRPayloads = append(result.QRPayloads, payload)
		for _, din := range utils.ExtractDINs(payload) {
			result.DINs = appendMissing(result.DINs, din)
		}
	}

	return result, nil
}

func decodeQRCode(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("failed to create binary bitmap: %w", err)
	}
	decoded, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decode QR code: %w", err)
	}
	return decoded.GetText(), nil
}

func appendMissing(values []string, v string) []string {
	for _, existing := range values {
		if existing == v {
			return values
		}
	}
	return append(values, v)
}
