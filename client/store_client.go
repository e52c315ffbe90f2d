package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/taxdesk/docintel/dto"
)

// StoreClient talks to the external document store's REST API. The
// pipeline itself never persists anything; this client is for callers
// that want prepared documents saved.
type StoreClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewStoreClient creates a client for the document store at baseURL.
func NewStoreClient(baseURL, apiKey string) *StoreClient {
	return &StoreClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SaveDocument stores an extracted document record and returns the id
// assigned by the store.
func (c *StoreClient) SaveDocument(doc *dto.StoredDocument) (string, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/rest/v1/documents", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build store request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call document store: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("document store returned status %d: %s", resp.StatusCode, string(body))
	}

	var saved []dto.StoredDocument
	if err := json.NewDecoder(resp.Body).Decode(&saved); err != nil {
		return "", fmt.Errorf("failed to decode store response: %w", err)
	}
	if len(saved) == 0 {
		return "", fmt.Errorf("document store returned no record")
	}

	return saved[0].ID, nil
}

// GetDocument fetches a previously stored document by id.
func (c *StoreClient) GetDocument(id string) (*dto.StoredDocument, error) {
	endpoint := c.baseURL + "/rest/v1/documents?id=eq." + url.QueryEscape(id)
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build store request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call document store: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("document store returned status %d: %s", resp.StatusCode, string(body))
	}

	var docs []dto.StoredDocument
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		return nil, fmt.Errorf("failed to decode store response: %w", err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("document %s not found", id)
	}

	return &docs[0], nil
}

func (c *StoreClient) setHeaders(req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}
