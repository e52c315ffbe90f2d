package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxdesk/docintel/dto"
)

func TestSaveDocument(t *testing.T) {
	var gotPath, gotAPIKey, gotPrefer string
	var gotBody dto.StoredDocument

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("apikey")
		gotPrefer = r.Header.Get("Prefer")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode([]dto.StoredDocument{{ID: "doc-123"}})
	}))
	defer server.Close()

	client := NewStoreClient(server.URL, "secret-key")
	id, err := client.SaveDocument(&dto.StoredDocument{
		FileName:     "notice.pdf",
		DocumentType: "Demand Notice",
	})

	require.NoError(t, err)
	assert.Equal(t, "doc-123", id)
	assert.Equal(t, "/rest/v1/documents", gotPath)
	assert.Equal(t, "secret-key", gotAPIKey)
	assert.Equal(t, "return=representation", gotPrefer)
	assert.Equal(t, "notice.pdf", gotBody.FileName)
}

func TestSaveDocumentServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"permission denied"}`, http.StatusForbidden)
	}))
	defer server.Close()

	client := NewStoreClient(server.URL, "secret-key")
	_, err := client.SaveDocument(&dto.StoredDocument{FileName: "notice.pdf"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestSaveDocumentEmptyRepresentation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := NewStoreClient(server.URL, "secret-key")
	_, err := client.SaveDocument(&dto.StoredDocument{FileName: "notice.pdf"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no record")
}

func TestGetDocument(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]dto.StoredDocument{{
			ID:           "doc-123",
			FileName:     "notice.pdf",
			DocumentType: "Demand Notice",
		}})
	}))
	defer server.Close()

	client := NewStoreClient(server.URL, "secret-key")
	doc, err := client.GetDocument("doc-123")

	require.NoError(t, err)
	assert.Equal(t, "id=eq.doc-123", gotQuery)
	assert.Equal(t, "notice.pdf", doc.FileName)
	assert.Equal(t, "Demand Notice", doc.DocumentType)
}

func TestGetDocumentNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := NewStoreClient(server.URL, "secret-key")
	_, err := client.GetDocument("missing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
