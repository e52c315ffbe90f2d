package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/taxdesk/docintel/client"
	"github.com/taxdesk/docintel/config"
	"github.com/taxdesk/docintel/handler"
	"github.com/taxdesk/docintel/service"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()

	// Initialize PDF processor and services
	processor := service.NewPDFProcessor()
	docService := service.NewDocumentService(processor)
	dinService := service.NewDINService(processor)

	// Document store is optional; the pipeline works without it
	var store *client.StoreClient
	if cfg.StoreURL != "" {
		store = client.NewStoreClient(cfg.StoreURL, cfg.StoreAPIKey)
		log.Printf("Document store configured at %s", cfg.StoreURL)
	}

	// Initialize handler layer
	chunkDefaults := service.ChunkOptions{
		ChunkSize: cfg.ChunkSize,
		Overlap:   cfg.ChunkOverlap,
	}
	documentHandler := handler.NewDocumentHandler(docService, dinService, store, chunkDefaults)

	// Setup Gin router
	router := gin.Default()

	// Configure max multipart memory (64 MB)
	router.MaxMultipartMemory = 64 << 20

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Document Intelligence",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		documents := api.Group("/documents")
		{
			documents.POST("/validate", documentHandler.Validate)
			documents.POST("/extract", documentHandler.Extract)
			documents.POST("/extract-range", documentHandler.ExtractRange)
			documents.POST("/classify", documentHandler.Classify)
			documents.POST("/chunk", documentHandler.Chunk)
			documents.POST("/prepare", documentHandler.Prepare)
			documents.POST("/summary", documentHandler.Summary)
			documents.POST("/din", documentHandler.DetectDIN)
			documents.GET("/:id", documentHandler.GetDocument)
		}
	}

	// Start server
	log.Printf("Starting Document Intelligence Service on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
