package changelog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRemote(t *testing.T) {
	tests := map[string]struct {
		handler    http.HandlerFunc
		wantErr    bool
		wantErrMsg string
		wantLines  int
	}{
		"successful fetch": {
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(sampleChangelog))
			},
			wantLines: 11,
		},
		"server error": {
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr:    true,
			wantErrMsg: "unexpected status code: 500",
		},
		"not found": {
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			wantErr:    true,
			wantErrMsg: "unexpected status code: 404",
		},
		"empty body": {
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
			wantLines: 0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			doc, err := FetchRemote(context.Background(), server.URL, time.Second)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorAs(t, err, new(*InputNotFoundError))
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, server.URL, doc.Source)
			assert.Len(t, doc.Lines, tt.wantLines)
		})
	}
}

func TestFetchRemote_Extract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(sampleChangelog))
	}))
	defer server.Close()

	doc, err := FetchRemote(context.Background(), server.URL, 0)
	require.NoError(t, err)

	got, err := NewExcerptor().Extract(doc)
	require.NoError(t, err)
	assert.Equal(t, "## Changelog\n- Added feature X\n- Fixed bug Y\n", got)
}

func TestFetchRemote_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	start := time.Now()
	_, err := FetchRemote(context.Background(), server.URL, 50*time.Millisecond)
	require.Error(t, err)
	assert.ErrorAs(t, err, new(*InputNotFoundError))
	assert.Less(t, time.Since(start), time.Second)
}

func TestFetchRemote_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(sampleChangelog))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FetchRemote(ctx, server.URL, time.Second)
	require.Error(t, err)
	assert.ErrorAs(t, err, new(*InputNotFoundError))
}

func TestFetchRemote_InvalidURL(t *testing.T) {
	_, err := FetchRemote(context.Background(), "://bad", time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating request")
}
