package diarize

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

func TestNewPyannoteEngine_Validation(t *testing.T) {
	_, err := NewPyannoteEngine(PyannoteConfig{AuthToken: "token"})
	assert.Error(t, err)

	_, err = NewPyannoteEngine(PyannoteConfig{APIURL: "https://example.com"})
	assert.Error(t, err)
}

func TestDiarize_ParsesTurnsInNativeOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer hf-token", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "pyannote/speaker-diarization-3.1", r.FormValue("model"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"segments": [
				{"start": 3.0, "end": 5.0, "speaker": "SPEAKER_01"},
				{"start": 0.0, "end": 3.0, "speaker": "SPEAKER_00"}
			]
		}`))
	}))
	defer server.Close()

	engine, err := NewPyannoteEngine(PyannoteConfig{
		APIURL:    server.URL,
		AuthToken: "hf-token",
		Model:     "pyannote/speaker-diarization-3.1",
	})
	require.NoError(t, err)

	turns, err := engine.Diarize(context.Background(), writeTestAudio(t))
	require.NoError(t, err)

	// The wire order is preserved; alignment depends on it.
	require.Len(t, turns, 2)
	assert.Equal(t, Turn{Start: 3.0, End: 5.0, Speaker: "SPEAKER_01"}, turns[0])
	assert.Equal(t, Turn{Start: 0.0, End: 3.0, Speaker: "SPEAKER_00"}, turns[1])
}

func TestDiarize_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	engine, err := NewPyannoteEngine(PyannoteConfig{APIURL: server.URL, AuthToken: "hf-token"})
	require.NoError(t, err)

	_, err = engine.Diarize(context.Background(), writeTestAudio(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestDiarize_MissingAudioFile(t *testing.T) {
	engine, err := NewPyannoteEngine(PyannoteConfig{APIURL: "https://example.com", AuthToken: "hf-token"})
	require.NoError(t, err)

	_, err = engine.Diarize(context.Background(), filepath.Join(t.TempDir(), "missing.wav"))
	require.Error(t, err)
}
