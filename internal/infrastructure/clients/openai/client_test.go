package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityakhanna/shopwise/internal/domain/providers"
	"github.com/adityakhanna/shopwise/pkg/config"
	apperrors "github.com/adityakhanna/shopwise/pkg/errors"
)

func TestParseExtractionPayload(t *testing.T) {
	names, err := parseExtractionPayload([]byte(`{"products": ["iPhone 15", " Galaxy S24 ", ""]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"iPhone 15", "Galaxy S24"}, names)

	names, err = parseExtractionPayload([]byte(`{"products": []}`))
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = parseExtractionPayload([]byte(`not json`))
	assert.Error(t, err)
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(&config.OpenAIConfig{})
	assert.Error(t, err)

	_, err = NewClient(nil)
	assert.Error(t, err)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&config.OpenAIConfig{APIKey: "test-key", RateLimitRPM: -1})
	require.NoError(t, err)
	client.baseURL = server.URL
	return client
}

func extractionResponse(text string) []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"output": []map[string]interface{}{
			{"content": []map[string]string{{"type": "output_text", "text": text}}},
		},
	})
	return body
}

func TestExtractProductNames(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/responses", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "gpt-4o-mini", payload["model"])

		w.Write(extractionResponse(`{"products": ["iPhone 15", "Galaxy S24"]}`))
	})

	names, err := client.ExtractProductNames(context.Background(), "compare iPhone 15 and Galaxy S24")
	require.NoError(t, err)
	assert.Equal(t, []string{"iPhone 15", "Galaxy S24"}, names)
}

func TestExtractProductNamesStripsMarkdownFence(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(extractionResponse("```json\n{\"products\": [\"Pixel 8\"]}\n```"))
	})

	names, err := client.ExtractProductNames(context.Background(), "what about the Pixel 8?")
	require.NoError(t, err)
	assert.Equal(t, []string{"Pixel 8"}, names)
}

func TestExtractProductNamesServerErrorIsUnavailable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.ExtractProductNames(context.Background(), "compare phones")
	assert.True(t, errors.Is(err, providers.ErrExtractionUnavailable))

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrorTypeExternal, appErr.Type)
}

func TestExtractProductNamesRejectsEmptyQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := client.ExtractProductNames(context.Background(), "   ")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
}

func TestTokenBucketHonorsBurstAndContext(t *testing.T) {
	bucket := newTokenBucketWithRate(1, 2)
	defer bucket.Close()

	ctx := context.Background()
	require.NoError(t, bucket.Wait(ctx))
	require.NoError(t, bucket.Wait(ctx))

	// Burst exhausted and the refill interval is a minute away
	short, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	assert.Error(t, bucket.Wait(short))
}

func TestTokenBucketCloseStopsRefill(t *testing.T) {
	// 1ms refill interval so a live bucket would refill well within
	// the wait below
	bucket := newTokenBucketWithRate(60000, 1)

	require.NoError(t, bucket.Wait(context.Background()))
	bucket.Close()
	bucket.Close()

	short, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	assert.Error(t, bucket.Wait(short))
}

func TestClientCloseIsSafeWithoutLimiter(t *testing.T) {
	client, err := NewClient(&config.OpenAIConfig{APIKey: "test-key", RateLimitRPM: -1})
	require.NoError(t, err)
	client.Close()
}
