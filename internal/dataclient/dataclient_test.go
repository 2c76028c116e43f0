package dataclient

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ai-village-agents/villagepulse/internal/contract"
	"github.com/ai-village-agents/villagepulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSourceFetch(t *testing.T) {
	dir := t.TempDir()
	payload := []byte(`[{"date":"2024-01-01","total":10}]`)
	path := filepath.Join(dir, string(schema.DailyContributionsKey)+".json")
	require.NoError(t, os.WriteFile(path, payload, 0o644))

	src := NewFileSource(dir)

	t.Run("existing dataset", func(t *testing.T) {
		data, err := src.Fetch(context.Background(), schema.DailyContributionsKey)
		require.NoError(t, err)
		assert.Equal(t, payload, data)
	})

	t.Run("missing dataset", func(t *testing.T) {
		_, err := src.Fetch(context.Background(), schema.AgentActivityKey)
		assert.ErrorContains(t, err, "failed to read dataset")
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := src.Fetch(context.Background(), schema.DatasetKey("secrets"))
		assert.ErrorContains(t, err, "unknown dataset key")
	})
}

func TestHTTPSourceFetch(t *testing.T) {
	payload := []byte(`[{"agent":"A","total":5}]`)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/" + string(schema.AgentActivityKey) + ".json":
			_, _ = w.Write(payload)
		case "/" + string(schema.DailyContributionsKey) + ".json":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	// Trailing slash in the base URL must not produce a double slash.
	src := NewHTTPSource(server.URL+"/", time.Second)

	t.Run("successful fetch", func(t *testing.T) {
		data, err := src.Fetch(context.Background(), schema.AgentActivityKey)
		require.NoError(t, err)
		assert.Equal(t, payload, data)
	})

	t.Run("non-2xx is a failure", func(t *testing.T) {
		_, err := src.Fetch(context.Background(), schema.DailyContributionsKey)
		assert.ErrorContains(t, err, "status 404")
	})

	t.Run("unknown key never hits the network", func(t *testing.T) {
		_, err := src.Fetch(context.Background(), schema.DatasetKey("secrets"))
		assert.ErrorContains(t, err, "unknown dataset key")
	})
}

func TestHTTPSourceBodyCap(t *testing.T) {
	oversize := bytes.Repeat([]byte("x"), maxBodyBytes+1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(oversize)
	}))
	defer server.Close()

	src := NewHTTPSource(server.URL, 10*time.Second)
	data, err := src.Fetch(context.Background(), schema.DailyContributionsKey)
	require.NoError(t, err)
	assert.Len(t, data, maxBodyBytes)
}

func TestForConfig(t *testing.T) {
	t.Run("url selects http transport", func(t *testing.T) {
		cfg := &contract.Config{DataURL: "https://example.com/data", FetchTimeout: time.Second}
		assert.IsType(t, &HTTPSource{}, ForConfig(cfg))
	})

	t.Run("directory selects file transport", func(t *testing.T) {
		cfg := &contract.Config{DataDir: "data"}
		assert.IsType(t, &FileSource{}, ForConfig(cfg))
	})
}
