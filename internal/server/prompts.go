package server

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"
)

var errPromptUnavailable = errors.New("prompt source unavailable")

// promptClient resolves one image prompt per round from an external source.
type promptClient struct {
	url     string
	timeout time.Duration
	client  *http.Client
}

func newPromptClient(url string, timeout time.Duration) *promptClient {
	return &promptClient{
		url:     url,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}
}

// Fetch requests the configured source with a random cache-buster and returns
// the final image URL after redirects (Lorem Picsum redirects each request to
// a stable per-image URL). Any failure maps to errPromptUnavailable; callers
// proceed with an empty prompt.
func (p *promptClient) Fetch(ctx context.Context) (string, error) {
	if p.url == "" {
		return "", errPromptUnavailable
	}

	sep := "?"
	if strings.Contains(p.url, "?") {
		sep = "&"
	}
	url := fmt.Sprintf("%s%srandom=%d", p.url, sep, rand.Int64())

	reqCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return "", errPromptUnavailable
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return "", errPromptUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errPromptUnavailable
	}
	return resp.Request.URL.String(), nil
}
