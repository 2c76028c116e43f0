// Package dataclient implements the data source transports for dashboard
// datasets: a local data directory and an HTTP endpoint.
package dataclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ai-village-agents/villagepulse/internal/contract"
	"github.com/ai-village-agents/villagepulse/schema"
)

// maxBodyBytes caps how much of a dataset response is read. The dashboard
// datasets are small; anything past this is a malformed or hostile payload.
const maxBodyBytes = 16 << 20

// checkKey rejects dataset keys outside the known set. Hitting this is a
// caller bug, not a runtime condition.
func checkKey(key schema.DatasetKey) error {
	if _, ok := schema.ValidDatasetKeys[key]; !ok {
		return fmt.Errorf("unknown dataset key %q", key)
	}
	return nil
}

// FileSource fetches datasets from a local directory of JSON files.
type FileSource struct {
	dir string
}

var _ contract.DataSource = &FileSource{} // Compile-time check

// NewFileSource creates a DataSource reading <dir>/<key>.json per fetch.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// Fetch implements the DataSource interface. Each call re-reads the file;
// there is no caching across calls.
func (s *FileSource) Fetch(_ context.Context, key schema.DatasetKey) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	path := filepath.Join(s.dir, string(key)+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", key, err)
	}
	return data, nil
}

// HTTPSource fetches datasets from a base URL, one GET per call.
type HTTPSource struct {
	baseURL string
	client  *http.Client
}

var _ contract.DataSource = &HTTPSource{} // Compile-time check

// NewHTTPSource creates a DataSource issuing GET <baseURL>/<key>.json with the
// given per-request timeout.
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Fetch implements the DataSource interface. Non-2xx responses are failures.
func (s *HTTPSource) Fetch(ctx context.Context, key schema.DatasetKey) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/%s.json", s.baseURL, key)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for dataset %s: %w", key, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset %s: %w", key, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("failed to fetch dataset %s: status %d", key, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s body: %w", key, err)
	}
	return data, nil
}

// ForConfig picks the transport implied by the config: HTTP when a base URL is
// set, the data directory otherwise.
func ForConfig(cfg *contract.Config) contract.DataSource {
	if cfg.DataURL != "" {
		return NewHTTPSource(cfg.DataURL, cfg.FetchTimeout)
	}
	return NewFileSource(cfg.DataDir)
}
