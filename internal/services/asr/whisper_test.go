package asr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, os.WriteFile(path, []byte("fake-audio-bytes"), 0600))
	return path
}

func TestNewWhisperEngine_Validation(t *testing.T) {
	_, err := NewWhisperEngine(WhisperConfig{APIURL: "https://example.com"})
	assert.Error(t, err)

	_, err = NewWhisperEngine(WhisperConfig{APIKey: "key"})
	assert.Error(t, err)

	engine, err := NewWhisperEngine(WhisperConfig{APIKey: "key", APIURL: "https://example.com"})
	require.NoError(t, err)
	assert.Equal(t, "whisper-1", engine.config.Model)
}

func TestTranscribe_ParsesVerboseJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))
		assert.Equal(t, "verbose_json", r.FormValue("response_format"))
		assert.Equal(t, "en", r.FormValue("language"))

		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "clip.wav", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"text": "hello there general",
			"language": "en",
			"segments": [
				{"start": 0.0, "end": 1.2, "text": " hello there"},
				{"start": 1.2, "end": 2.4, "text": " general"}
			]
		}`))
	}))
	defer server.Close()

	engine, err := NewWhisperEngine(WhisperConfig{APIKey: "test-key", APIURL: server.URL})
	require.NoError(t, err)

	result, err := engine.Transcribe(context.Background(), writeTestAudio(t), "en")
	require.NoError(t, err)

	assert.Equal(t, "hello there general", result.Text)
	assert.Equal(t, "en", result.Language)
	require.Len(t, result.Segments, 2)
	assert.Equal(t, Segment{Start: 0.0, End: 1.2, Text: " hello there"}, result.Segments[0])
	assert.Equal(t, Segment{Start: 1.2, End: 2.4, Text: " general"}, result.Segments[1])
}

func TestTranscribe_OmitsEmptyLanguage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, present := r.MultipartForm.Value["language"]
		assert.False(t, present)
		_, _ = w.Write([]byte(`{"text": "", "language": "", "segments": []}`))
	}))
	defer server.Close()

	engine, err := NewWhisperEngine(WhisperConfig{APIKey: "test-key", APIURL: server.URL})
	require.NoError(t, err)

	_, err = engine.Transcribe(context.Background(), writeTestAudio(t), "")
	require.NoError(t, err)
}

func TestTranscribe_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	engine, err := NewWhisperEngine(WhisperConfig{APIKey: "test-key", APIURL: server.URL})
	require.NoError(t, err)

	_, err = engine.Transcribe(context.Background(), writeTestAudio(t), "en")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestTranscribe_MissingAudioFile(t *testing.T) {
	engine, err := NewWhisperEngine(WhisperConfig{APIKey: "test-key", APIURL: "https://example.com"})
	require.NoError(t, err)

	_, err = engine.Transcribe(context.Background(), filepath.Join(t.TempDir(), "missing.wav"), "en")
	require.Error(t, err)
}
