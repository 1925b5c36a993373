package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatastoreClient_Cities(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/datastore_search", r.URL.Path)
		gotQuery = map[string]string{
			"resource_id": r.URL.Query().Get("resource_id"),
			"q":           r.URL.Query().Get("q"),
			"limit":       r.URL.Query().Get("limit"),
			"city_code":   r.URL.Query().Get("city_code"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"result": {"records": [
				{"code": "5000", "name": "Tel Aviv"},
				{"code": "3000", "name": "Jerusalem"}
			]}
		}`))
	}))
	defer server.Close()

	client := NewDatastoreClient(DatastoreOptions{
		BaseURL:          server.URL,
		CityResourceID:   "cities-resource",
		StreetResourceID: "streets-resource",
		Timeout:          time.Second,
	})

	candidates, err := client.Cities(context.Background(), "tel", 64)

	require.NoError(t, err)
	assert.Equal(t, []Candidate{
		{Code: "5000", Name: "Tel Aviv"},
		{Code: "3000", Name: "Jerusalem"},
	}, candidates)
	assert.Equal(t, "cities-resource", gotQuery["resource_id"])
	assert.Equal(t, "tel", gotQuery["q"])
	assert.Equal(t, "64", gotQuery["limit"])
	assert.Empty(t, gotQuery["city_code"], "city searches do not scope by city")
}

func TestDatastoreClient_StreetsScopedToCity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "streets-resource", r.URL.Query().Get("resource_id"))
		assert.Equal(t, "5000", r.URL.Query().Get("city_code"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "result": {"records": [{"code": "100", "name": "Herzl", "city_code": "5000"}]}}`))
	}))
	defer server.Close()

	client := NewDatastoreClient(DatastoreOptions{
		BaseURL:          server.URL,
		CityResourceID:   "cities-resource",
		StreetResourceID: "streets-resource",
		Timeout:          time.Second,
	})

	candidates, err := client.Streets(context.Background(), "herzl", "5000", 10)

	require.NoError(t, err)
	assert.Equal(t, []Candidate{{Code: "100", Name: "Herzl"}}, candidates)
}

func TestDatastoreClient_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewDatastoreClient(DatastoreOptions{BaseURL: server.URL, Timeout: time.Second})

	_, err := client.Cities(context.Background(), "tel", 10)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestDatastoreClient_ProviderReportedFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": false, "result": {"records": []}}`))
	}))
	defer server.Close()

	client := NewDatastoreClient(DatastoreOptions{BaseURL: server.URL, Timeout: time.Second})

	_, err := client.Cities(context.Background(), "tel", 10)

	require.Error(t, err)
}

func TestDatastoreClient_HonorsContext(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewDatastoreClient(DatastoreOptions{BaseURL: server.URL, Timeout: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := client.Cities(ctx, "tel", 10)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
