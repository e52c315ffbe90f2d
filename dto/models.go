package dto

// DocumentMetadata holds the PDF Info dictionary fields.
// Missing fields stay empty strings.
type DocumentMetadata struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Creator  string `json:"creator"`
	Producer string `json:"producer"`
}

// ValidationResult is the outcome of byte-level and structural checks.
// IsValid and Error are mutually exclusive: a valid result carries no
// error message and an invalid one always does.
type ValidationResult struct {
	IsValid   bool   `json:"is_valid"`
	FileSize  int    `json:"file_size"`
	PageCount int    `json:"page_count"`
	Error     string `json:"error,omitempty"`
}

// ExtractionResult is the full-text extraction of a PDF.
type ExtractionResult struct {
	Text         string           `json:"text"`
	PageCount    int              `json:"page_count"`
	HasTextLayer bool             `json:"has_text_layer"`
	Metadata     DocumentMetadata `json:"metadata"`
}

// PageRangeExtraction is the text of a page subset. StartPage and
// EndPage are the clamped 1-indexed bounds actually used, which may be
// smaller than what the caller asked for. PageCount is the total page
// count of the source document.
type PageRangeExtraction struct {
	Text      string `json:"text"`
	PageCount int    `json:"page_count"`
	StartPage int    `json:"start_page"`
	EndPage   int    `json:"end_page"`
}

// Chunk is one bounded segment of a longer text. StartChar and EndChar
// are byte offsets into the source text; Index is zero-based and Total
// is shared by all chunks of one call.
type Chunk struct {
	Text      string `json:"text"`
	Index     int    `json:"index"`
	Total     int    `json:"total"`
	StartChar int    `json:"start_char"`
	EndChar   int    `json:"end_char"`
}

// DocumentClassification is the result of matching text against the
// Income-Tax section catalog and entity patterns.
type DocumentClassification struct {
	Sections            []string `json:"sections"`
	DocumentType        string   `json:"document_type"`
	PANNumbers          []string `json:"pan_numbers"`
	AssessmentYears     []string `json:"assessment_years"`
	DINNumbers          []string `json:"din_numbers"`
	IsIncomeTaxDocument bool     `json:"is_income_tax_document"`
}

// PreparedDocument is the unified output of the full pipeline
// (validate, extract, classify, chunk). When IsValid is false, Text is
// empty, Chunks is empty and DocumentInfo holds the default
// classification.
type PreparedDocument struct {
	IsValid      bool                   `json:"is_valid"`
	Error        string                 `json:"error,omitempty"`
	Text         string                 `json:"text"`
	PageCount    int                    `json:"page_count"`
	HasTextLayer bool                   `json:"has_text_layer"`
	Metadata     DocumentMetadata       `json:"metadata"`
	DocumentInfo DocumentClassification `json:"document_info"`
	Chunks       []Chunk                `json:"chunks"`
	FileSize     int                    `json:"file_size"`
}

// DocumentSummary is a lightweight projection of PreparedDocument:
// the full text is replaced by a bounded preview plus its length, and
// chunks are omitted.
type DocumentSummary struct {
	IsValid         bool     `json:"is_valid"`
	PageCount       int      `json:"page_count"`
	FileSize        int      `json:"file_size"`
	CharacterCount  int      `json:"character_count"`
	HasTextLayer    bool     `json:"has_text_layer"`
	DocumentType    string   `json:"document_type"`
	Sections        []string `json:"sections"`
	AssessmentYears []string `json:"assessment_years"`
	Preview         string   `json:"preview"`
	Error           string   `json:"error,omitempty"`
}

// DINDetectionResult carries Document Identification Numbers found in
// a notice, from both the text layer and decoded QR codes.
type DINDetectionResult struct {
	DINs       []string `json:"dins"`
	QRPayloads []string `json:"qr_payloads"`
}

// StoredDocument is the record shape exchanged with the external
// document store.
type StoredDocument struct {
	ID              string   `json:"id,omitempty"`
	FileName        string   `json:"file_name"`
	DocumentType    string   `json:"document_type"`
	Sections        []string `json:"sections"`
	PANNumbers      []string `json:"pan_numbers"`
	AssessmentYears []string `json:"assessment_years"`
	PageCount       int      `json:"page_count"`
	CharacterCount  int      `json:"character_count"`
	Text            string   `json:"text"`
	CreatedAt       string   `json:"created_at,omitempty"`
}
