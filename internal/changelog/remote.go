package changelog

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// DefaultRemoteTimeout is the default timeout for remote changelog fetches.
const DefaultRemoteTimeout = 5 * time.Second

// FetchRemote downloads a changelog from url with an HTTP GET.
// A zero timeout uses DefaultRemoteTimeout. Transport failures and
// non-200 responses are reported as InputNotFoundError.
func FetchRemote(ctx context.Context, url string, timeout time.Duration) (*Document, error) {
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logDebug("[changelog] fetching %s (timeout %s)", url, timeout)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, &InputNotFoundError{Source: url, Err: fmt.Errorf("making request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &InputNotFoundError{
			Source: url,
			Err:    fmt.Errorf("unexpected status code: %d", resp.StatusCode),
		}
	}

	return LoadFromReader(resp.Body, url)
}
