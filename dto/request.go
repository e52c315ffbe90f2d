package dto

import "errors"

// ClassifyRequest is the JSON body for text classification.
type ClassifyRequest struct {
	Text string `json:"text" binding:"required"`
}

// ChunkRequest is the JSON body for text chunking. ChunkSize and
// Overlap of zero select the service defaults.
type ChunkRequest struct {
	Text      string `json:"text"`
	ChunkSize int    `json:"chunk_size"`
	Overlap   int    `json:"overlap"`
}

// Validate performs basic validation on the request
func (r *ChunkRequest) Validate() error {
	if r.ChunkSize < 0 {
		return errors.New("chunk_size must not be negative")
	}
	if r.Overlap < 0 {
		return errors.New("overlap must not be negative")
	}
	return nil
}
