package ingestion

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fetch failure classes. A network-level failure and a non-success HTTP
// status are reported separately so the job error message names the real
// problem.
var (
	ErrFetchNetwork = fmt.Errorf("csv source unreachable")
	ErrFetchStatus  = fmt.Errorf("csv source returned non-success status")
)

//go:generate mockgen -source=fetcher.go -destination=mock/fetcher_mock.go -package=mock
type Fetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

type httpFetcher struct {
	client *http.Client
}

func NewHTTPFetcher(client *http.Client) Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &httpFetcher{client: client}
}

func (f *httpFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchNetwork, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %d", ErrFetchStatus, resp.StatusCode)
	}

	return resp.Body, nil
}
