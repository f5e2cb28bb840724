package catalog

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchFixture = `{
	"kind": "books#volumes",
	"totalItems": 2,
	"items": [
		{
			"kind": "books#volume",
			"id": "abc123",
			"volumeInfo": {
				"title": "Dune",
				"authors": ["Frank Herbert"],
				"publishedDate": "1965-08-01",
				"pageCount": 412,
				"categories": ["Fiction"],
				"imageLinks": {"thumbnail": "https://example.com/dune.jpg"}
			}
		},
		{
			"kind": "books#volume",
			"id": "def456",
			"volumeInfo": {
				"title": "Dune Messiah",
				"authors": ["Frank Herbert"]
			}
		}
	]
}`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	client := NewClient(server.URL, "", 20, testLogger())
	client.httpClient = server.Client()
	return client, server
}

func TestClient_Search(t *testing.T) {
	tests := []struct {
		name       string
		response   string
		statusCode int
		wantTotal  int
		wantItems  int
		wantErr    error
	}{
		{
			name:       "successful search",
			response:   searchFixture,
			statusCode: http.StatusOK,
			wantTotal:  2,
			wantItems:  2,
		},
		{
			name:       "no results",
			response:   `{"kind": "books#volumes", "totalItems": 0}`,
			statusCode: http.StatusOK,
			wantTotal:  0,
			wantItems:  0,
		},
		{
			name:       "upstream server error",
			statusCode: http.StatusInternalServerError,
			wantErr:    ErrUpstream,
		},
		{
			name:       "upstream quota rejection",
			response:   `{"error": {"code": 429}}`,
			statusCode: http.StatusTooManyRequests,
			wantErr:    ErrUpstream,
		},
		{
			name:       "malformed payload",
			response:   `{"kind": `,
			statusCode: http.StatusOK,
			wantErr:    ErrUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				if tt.response != "" {
					w.Write([]byte(tt.response))
				}
			}

			client, server := newTestClient(t, handler)
			defer server.Close()

			volumes, err := client.Search(context.Background(), "dune")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, volumes.TotalItems)
			assert.Len(t, volumes.Items, tt.wantItems)
		})
	}
}

func TestClient_SearchParsesVolumeFields(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(searchFixture))
	})
	defer server.Close()

	volumes, err := client.Search(context.Background(), "dune")
	require.NoError(t, err)
	require.Len(t, volumes.Items, 2)

	dune := volumes.Items[0]
	assert.Equal(t, "abc123", dune.ID)
	assert.Equal(t, "Dune", dune.VolumeInfo.Title)
	assert.Equal(t, []string{"Frank Herbert"}, dune.VolumeInfo.Authors)
	assert.Equal(t, 412, dune.VolumeInfo.PageCount)
	assert.Equal(t, "https://example.com/dune.jpg", dune.VolumeInfo.ImageLinks.Thumbnail)
}

func TestClient_SearchSendsQueryParams(t *testing.T) {
	var gotQuery, gotMax, gotPrintType string
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotMax = r.URL.Query().Get("maxResults")
		gotPrintType = r.URL.Query().Get("printType")
		w.Write([]byte(`{"totalItems": 0}`))
	})
	defer server.Close()

	_, err := client.Search(context.Background(), "dune messiah")
	require.NoError(t, err)
	assert.Equal(t, "dune messiah", gotQuery)
	assert.Equal(t, "20", gotMax)
	assert.Equal(t, "books", gotPrintType)
}

func TestClient_EmptyQueryMakesNoUpstreamCall(t *testing.T) {
	var calls atomic.Int32
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"totalItems": 0}`))
	})
	defer server.Close()

	for _, q := range []string{"", "   ", "\t"} {
		_, err := client.Search(context.Background(), q)
		assert.ErrorIs(t, err, ErrEmptyQuery)
	}
	assert.EqualValues(t, 0, calls.Load())
}
