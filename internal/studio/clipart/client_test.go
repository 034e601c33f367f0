package clipart

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garment-studio/internal/studio/scene"
	"garment-studio/internal/studio/studioerr"
)

func iconServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "50", r.URL.Query().Get("limit"))

		// сервис игнорирует limit и отдаёт больше
		icons := make([]string, 60)
		for i := range icons {
			icons[i] = fmt.Sprintf("set:icon-%d", i)
		}
		json.NewEncoder(w).Encode(map[string]any{"icons": icons})
	})

	mux.HandleFunc("/icon/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml")
		fmt.Fprint(w, sampleIcon)
	})

	return httptest.NewServer(mux)
}

func TestSearchBounded(t *testing.T) {
	srv := iconServer(t)
	defer srv.Close()

	c := NewClient(srv.URL)
	icons, err := c.Search(context.Background(), "star")
	require.NoError(t, err)
	assert.Len(t, icons, 50, "results are capped at the search limit")
}

func TestSearchEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"icons": []string{}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Search(context.Background(), "nothing")
	assert.ErrorIs(t, err, studioerr.ErrRemoteFetch)
}

func TestSearchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Search(context.Background(), "star")
	assert.ErrorIs(t, err, studioerr.ErrRemoteFetch)
}

func TestPlaceObject(t *testing.T) {
	srv := iconServer(t)
	defer srv.Close()

	c := NewClient(srv.URL)
	obj, err := c.PlaceObject(context.Background(), "set:star")
	require.NoError(t, err)

	assert.Equal(t, scene.TypeGroup, obj.Type)
	assert.Equal(t, float64(defaultIconScale), obj.ScaleX)
	assert.Equal(t, float64(defaultIconScale), obj.ScaleY)
	assert.Len(t, obj.Paths, 2, "all icon paths land in one group")
	assert.Equal(t, 24.0, obj.Width)
}

func TestPlaceObjectFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.PlaceObject(context.Background(), "set:missing")
	assert.ErrorIs(t, err, studioerr.ErrRemoteFetch)
}
