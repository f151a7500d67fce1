// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openplates/platewatch/internal/history"
	"github.com/openplates/platewatch/internal/normalize"
	"github.com/openplates/platewatch/pkg/types"
)

func geoclientStub(t *testing.T, borough string, calls *int) *Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		assert.Equal(t, "/search.json", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("Ocp-Apim-Subscription-Key"))
		if borough == "" {
			w.Write([]byte(`{"results":[]}`))
			return
		}
		w.Write([]byte(`{"results":[{"response":{"firstBoroughName":"` + borough + `"}}]}`))
	}))
	t.Cleanup(server.Close)
	return NewClient(types.GeocodeConfig{BaseURL: server.URL + "/", APIKey: "test-key"})
}

func TestClientResolve(t *testing.T) {
	var calls int
	client := geoclientStub(t, "QUEENS", &calls)

	borough, err := client.Resolve(context.Background(), "Queens Blvd", "63rd Dr")
	require.NoError(t, err)
	assert.Equal(t, normalize.BoroughQueens, borough)
}

func TestClientResolve_NoMatch(t *testing.T) {
	var calls int
	client := geoclientStub(t, "", &calls)

	borough, err := client.Resolve(context.Background(), "Nowhere St", "")
	require.NoError(t, err)
	assert.Empty(t, borough)
}

func TestClientResolve_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()
	client := NewClient(types.GeocodeConfig{BaseURL: server.URL + "/"})

	_, err := client.Resolve(context.Background(), "Queens Blvd", "")
	assert.Error(t, err)
}

func TestLookupString(t *testing.T) {
	tests := []struct {
		name        string
		street      string
		crossStreet string
		want        string
	}{
		{"street only", "Queens Blvd", "", "queens blvd"},
		{"with cross street", "Queens Blvd", "63rd Dr", "queens blvd & 63rd dr"},
		{"whitespace collapsed", "  Queens   Blvd ", " 63rd  Dr", "queens blvd & 63rd dr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lookupString(tt.street, tt.crossStreet); got != tt.want {
				t.Errorf("lookupString(%q, %q) = %q, want %q", tt.street, tt.crossStreet, got, tt.want)
			}
		})
	}
}

func TestResolver_CachesAnswers(t *testing.T) {
	store, err := history.Open(types.StorageConfig{
		DBPath: filepath.Join(t.TempDir(), "geocode.db"),
	}, zerolog.Nop())
	require.NoError(t, err)
	defer store.Close()

	var calls int
	resolver := NewResolver(geoclientStub(t, "BROOKLYN", &calls), store, zerolog.Nop())

	for i := 0; i < 3; i++ {
		borough, err := resolver.Resolve(context.Background(), "Flatbush Ave", "Atlantic Ave")
		require.NoError(t, err)
		assert.Equal(t, normalize.BoroughBrooklyn, borough)
	}
	assert.Equal(t, 1, calls, "repeat lookups stay in the cache")
}

func TestResolver_NoMatchNotCached(t *testing.T) {
	store, err := history.Open(types.StorageConfig{
		DBPath: filepath.Join(t.TempDir(), "geocode.db"),
	}, zerolog.Nop())
	require.NoError(t, err)
	defer store.Close()

	var calls int
	resolver := NewResolver(geoclientStub(t, "", &calls), store, zerolog.Nop())

	for i := 0; i < 2; i++ {
		borough, err := resolver.Resolve(context.Background(), "Nowhere St", "")
		require.NoError(t, err)
		assert.Empty(t, borough)
	}
	assert.Equal(t, 2, calls, "empty answers are retried")
}
