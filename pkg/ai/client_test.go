package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamChatCollectsDeltas(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte("data: {\"choices\":[{\"delta\":{\"content\":\"Fleet \"}}]}\n\n"))
		w.Write([]byte("data: {\"choices\":[{\"delta\":{\"content\":\"looks healthy.\"}}]}\n\n"))
		w.Write([]byte("data: [DONE]\n\n"))
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL, APIKey: "test-key", Model: "test-model"})

	out, err := client.Chat(context.Background(), []Message{{Role: "user", Content: "status?"}})
	require.NoError(t, err)
	assert.Equal(t, "Fleet looks healthy.", out)
}

func TestStreamChatUnconfigured(t *testing.T) {
	client := NewClient(&Config{BaseURL: "http://localhost:1", APIKey: ""})

	err := client.StreamChat(context.Background(), nil, func(string) error { return nil })
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestStreamChatSurfacesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL, APIKey: "k"})

	err := client.StreamChat(context.Background(), nil, func(string) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
