package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_DownloadFile(t *testing.T) {
	body := strings.Repeat("x", 3*DefaultChunkSize+17)
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte(body))
		case "/created":
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte("created"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewClient(Options{UserAgent: "test-agent", ChunkSize: 1024})
	dir := t.TempDir()

	t.Run("streams body to disk", func(t *testing.T) {
		dest := filepath.Join(dir, "ok.jpg")
		var updates int
		n, err := client.DownloadFile(context.Background(), srv.URL+"/ok", dest, func(written, total int64) {
			updates++
		})
		require.NoError(t, err)
		assert.Equal(t, int64(len(body)), n)
		assert.Equal(t, "test-agent", gotUA)
		assert.Greater(t, updates, 1, "body should arrive in several chunks")

		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, body, string(data))
	})

	t.Run("any 2xx is accepted", func(t *testing.T) {
		dest := filepath.Join(dir, "created.jpg")
		n, err := client.DownloadFile(context.Background(), srv.URL+"/created", dest, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(len("created")), n)
	})

	t.Run("non 2xx returns StatusError and writes nothing", func(t *testing.T) {
		dest := filepath.Join(dir, "missing.jpg")
		_, err := client.DownloadFile(context.Background(), srv.URL+"/missing", dest, nil)

		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
		assert.Contains(t, err.Error(), "HTTP 404")

		_, statErr := os.Stat(dest)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("transport error", func(t *testing.T) {
		dest := filepath.Join(dir, "bad.jpg")
		_, err := client.DownloadFile(context.Background(), "#N/A", dest, nil)
		assert.Error(t, err)
	})
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Options{})
	assert.Equal(t, DefaultChunkSize, client.chunkSize)

	opts := DefaultOptions()
	assert.Equal(t, DefaultChunkSize, opts.ChunkSize)
	assert.NotEmpty(t, opts.UserAgent)
}
