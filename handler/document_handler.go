package handler

import (
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taxdesk/docintel/client"
	"github.com/taxdesk/docintel/dto"
	"github.com/taxdesk/docintel/service"
	"github.com/taxdesk/docintel/utils"
)

type DocumentHandler struct {
	docService *service.DocumentService
	dinService *service.DINService
	store      *client.StoreClient
	defaults   service.ChunkOptions
}

// NewDocumentHandler wires the pipeline services; store may be nil when
// no document store is configured.
func NewDocumentHandler(docService *service.DocumentService, dinService *service.DINService, store *client.StoreClient, defaults service.ChunkOptions) *DocumentHandler {
	return &DocumentHandler{
		docService: docService,
		dinService: dinService,
		store:      store,
		defaults:   defaults,
	}
}

// Validate handles POST /documents/validate
func (h *DocumentHandler) Validate(c *gin.Context) {
	pdfData, ok := h.readUpload(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.docService.Validate(pdfData))
}

// Extract handles POST /documents/extract
func (h *DocumentHandler) Extract(c *gin.Context) {
	pdfData, ok := h.readUpload(c)
	if !ok {
		return
	}
	result, err := h.docService.ExtractFullText(pdfData)
	if err != nil {
		h.sendError(c, http.StatusUnprocessableEntity, "Failed to extract text", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ExtractRange handles POST /documents/extract-range
func (h *DocumentHandler) ExtractRange(c *gin.Context) {
	pdfData, ok := h.readUpload(c)
	if !ok {
		return
	}
	startPage, err := strconv.Atoi(c.PostForm("start_page"))
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "start_page must be an integer", err)
		return
	}
	endPage, err := strconv.Atoi(c.PostForm("end_page"))
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "end_page must be an integer", err)
		return
	}

	result, err := h.docService.ExtractPageRange(pdfData, startPage, endPage)
	if err != nil {
		h.sendError(c, http.StatusUnprocessableEntity, "Failed to extract page range", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Classify handles POST /documents/classify
func (h *DocumentHandler) Classify(c *gin.Context) {
	var req dto.ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendError(c, http.StatusBadRequest, "text is required", err)
		return
	}
	c.JSON(http.StatusOK, utils.ClassifyText(req.Text))
}

// Chunk handles POST /documents/chunk
func (h *DocumentHandler) Chunk(c *gin.Context) {
	var req dto.ChunkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := req.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	chunkSize := req.ChunkSize
	if chunkSize == 0 {
		chunkSize = h.defaults.ChunkSize
	}
	if chunkSize == 0 {
		chunkSize = service.DefaultChunkSize
	}
	overlap := req.Overlap
	if overlap == 0 {
		overlap = h.defaults.Overlap
	}
	if overlap == 0 {
		overlap = service.DefaultOverlap
	}

	chunks, err := service.ChunkText(req.Text, chunkSize, overlap)
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to chunk text", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chunks": chunks})
}

// Prepare handles POST /documents/prepare
func (h *DocumentHandler) Prepare(c *gin.Context) {
	pdfData, fileName, ok := h.readUploadNamed(c)
	if !ok {
		return
	}

	opts := h.defaults
	if raw := c.PostForm("chunk_size"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			h.sendError(c, http.StatusBadRequest, "chunk_size must be an integer", err)
			return
		}
		opts.ChunkSize = value
	}
	if raw := c.PostForm("overlap"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			h.sendError(c, http.StatusBadRequest, "overlap must be an integer", err)
			return
		}
		opts.Overlap = value
	}

	prepared := h.docService.Prepare(pdfData, opts)

	if prepared.IsValid && h.store != nil && c.PostForm("persist") == "true" {
		id, err := h.store.SaveDocument(&dto.StoredDocument{
			FileName:        fileName,
			DocumentType:    prepared.DocumentInfo.DocumentType,
			Sections:        prepared.DocumentInfo.Sections,
			PANNumbers:      prepared.DocumentInfo.PANNumbers,
			AssessmentYears: prepared.DocumentInfo.AssessmentYears,
			PageCount:       prepared.PageCount,
			CharacterCount:  len(prepared.Text),
			Text:            prepared.Text,
			CreatedAt:       time.Now().UTC().Format(time.RFC3339),
		})
		if err != nil {
			log.Printf("Failed to persist document %s: %v", fileName, err)
		} else {
			c.Header("X-Document-ID", id)
		}
	}

	c.JSON(http.StatusOK, prepared)
}

// Summary handles POST /documents/summary
func (h *DocumentHandler) Summary(c *gin.Context) {
	pdfData, ok := h.readUpload(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.docService.Summarize(pdfData))
}

// DetectDIN handles POST /documents/din
func (h *DocumentHandler) DetectDIN(c *gin.Context) {
	pdfData, ok := h.readUpload(c)
	if !ok {
		return
	}
	result, err := h.dinService.DetectDIN(pdfData)
	if err != nil {
		h.sendError(c, http.StatusUnprocessableEntity, "Failed to detect DIN", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetDocument handles GET /documents/:id
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	if h.store == nil {
		h.sendError(c, http.StatusNotImplemented, "No document store configured", nil)
		return
	}
	doc, err := h.store.GetDocument(c.Param("id"))
	if err != nil {
		h.sendError(c, http.StatusNotFound, "Document not found", err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *DocumentHandler) readUpload(c *gin.Context) ([]byte, bool) {
	pdfData, _, ok := h.readUploadNamed(c)
	return pdfData, ok
}

func (h *DocumentHandler) readUploadNamed(c *gin.Context) ([]byte, string, bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "file missing", err)
		return nil, "", false
	}
	defer file.Close()

	pdfData, err := io.ReadAll(file)
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to read uploaded file", err)
		return nil, "", false
	}

	return pdfData, header.Filename, true
}

// sendError sends a structured error response
func (h *DocumentHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "DOCUMENT_PROCESSING_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
