package news

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/exp/slog"
)

// maxBodySize limits the size of a response body accepted from the endpoint.
const maxBodySize = 10 << 20

// FetcherParams contains parameters for Fetcher.
type FetcherParams struct {
	// Endpoint is a base URL of the news API, "/news" is appended to it.
	Endpoint string
	// Page and PerPage are sent as query parameters if positive.
	Page    int
	PerPage int
}

// Fetcher reads raw article lists from the news endpoint.
type Fetcher struct {
	log    *slog.Logger
	cl     *http.Client
	params FetcherParams
}

// NewFetcher creates new Fetcher.
func NewFetcher(lg *slog.Logger, cl *http.Client, params FetcherParams) *Fetcher {
	return &Fetcher{log: lg, cl: cl, params: params}
}

// URL returns the address the fetcher reads from.
func (f *Fetcher) URL() (string, error) {
	u, err := url.Parse(f.params.Endpoint)
	if err != nil {
		return "", fmt.Errorf("parse endpoint: %w", err)
	}

	u = u.JoinPath("news")

	q := u.Query()
	if f.params.Page > 0 {
		q.Set("page", strconv.Itoa(f.params.Page))
	}
	if f.params.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(f.params.PerPage))
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Fetch performs a single GET request to the endpoint and returns the
// response body as is. It never retries. All failures are returned
// as *FetchError.
func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	u, err := f.URL()
	if err != nil {
		return nil, &FetchError{Cause: err}
	}

	f.log.DebugCtx(ctx, "fetching articles", slog.String("url", u))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, &FetchError{Cause: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.cl.Do(req)
	if err != nil {
		return nil, &FetchError{Cause: fmt.Errorf("do request: %w", err)}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			f.log.WarnCtx(ctx, "failed to close response body", slog.Any("err", err))
		}
	}()

	ok := resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices
	if !ok {
		return nil, &FetchError{
			StatusCode: resp.StatusCode,
			Cause:      fmt.Errorf("bad status code: %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, &FetchError{Cause: fmt.Errorf("read body: %w", err)}
	}

	if len(body) > maxBodySize {
		return nil, &FetchError{Cause: fmt.Errorf("response body exceeds %d bytes", maxBodySize)}
	}

	return body, nil
}
