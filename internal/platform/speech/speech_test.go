package speech

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fskogh/lingai/internal/config"
	"github.com/fskogh/lingai/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(testLogger(), config.SpeechConfig{
		APIKey:                "speech-key",
		BaseURL:               baseURL,
		Voice:                 "de-DE-standard",
		StyleInstructions:     "calm narrator",
		RequestTimeoutSeconds: 5,
	})
	require.NoError(t, err)
	return client
}

func TestSynthesize(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/audio/speech", r.URL.Path)
		assert.Equal(t, "Bearer speech-key", r.Header.Get("Authorization"))

		var req synthesisRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Anna wohnt in Berlin.", req.Input)
		assert.Equal(t, "de-DE-standard", req.Voice)
		assert.Equal(t, "calm narrator", req.Instructions)

		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("fake-mp3-bytes"))
	}))
	t.Cleanup(srv.Close)

	client := newTestClient(t, srv.URL)
	audio, err := client.Synthesize(context.Background(), "Anna wohnt in Berlin.")
	require.NoError(t, err)
	assert.Equal(t, []byte("fake-mp3-bytes"), audio)
}

func TestSynthesizeRejectsEmptyText(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, "http://unused.invalid")
	_, err := client.Synthesize(context.Background(), "")
	assert.ErrorIs(t, err, generation.ErrGenerationFailed)
}

func TestSynthesizeNonOKStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	client := newTestClient(t, srv.URL)
	_, err := client.Synthesize(context.Background(), "text")
	assert.ErrorIs(t, err, generation.ErrNetwork)
}

func TestSynthesizeEmptyAudio(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	client := newTestClient(t, srv.URL)
	_, err := client.Synthesize(context.Background(), "text")
	assert.ErrorIs(t, err, generation.ErrInvalidResponse)
}

func TestNewClientValidation(t *testing.T) {
	t.Parallel()

	_, err := NewClient(nil, config.SpeechConfig{APIKey: "k", BaseURL: "u", Voice: "v"})
	assert.Error(t, err)

	_, err = NewClient(testLogger(), config.SpeechConfig{BaseURL: "u", Voice: "v"})
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	_, err = NewClient(testLogger(), config.SpeechConfig{APIKey: "k", Voice: "v"})
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	_, err = NewClient(testLogger(), config.SpeechConfig{APIKey: "k", BaseURL: "u"})
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}
