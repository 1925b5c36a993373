package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patient-intake/internal/patient"
	"patient-intake/pkg/apperrors"
)

func sampleRecord() patient.Record {
	return patient.Record{
		ID:        "000000018",
		FirstName: "Dana",
		LastName:  "Levi",
		HMO:       patient.HMOClalit,
		PhoneNumbers: []patient.PhoneEntry{
			{Type: patient.PhoneMobile, Number: "0501234567", IsMain: true},
		},
		Addresses: []patient.AddressEntry{
			{
				AddressType:  patient.AddressHome,
				CityCode:     "5000",
				CityName:     "Tel Aviv",
				StreetCode:   "100",
				StreetName:   "Herzl",
				StreetNumber: 12,
			},
		},
	}
}

func TestWebhookClient_Submit(t *testing.T) {
	var received patient.Record
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "success"}`))
	}))
	defer server.Close()

	client := NewWebhookClient(Options{WebhookURL: server.URL, Timeout: time.Second})

	err := client.Submit(context.Background(), sampleRecord())

	require.NoError(t, err)
	assert.Equal(t, sampleRecord(), received)
}

func TestWebhookClient_MissingURL(t *testing.T) {
	client := NewWebhookClient(Options{Timeout: time.Second})

	err := client.Submit(context.Background(), sampleRecord())

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConfig))
}

func TestWebhookClient_NonSuccessStatusField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "queued"}`))
	}))
	defer server.Close()

	client := NewWebhookClient(Options{WebhookURL: server.URL, Timeout: time.Second})

	err := client.Submit(context.Background(), sampleRecord())

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnavailable))
}

func TestWebhookClient_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewWebhookClient(Options{WebhookURL: server.URL, Timeout: time.Second})

	err := client.Submit(context.Background(), sampleRecord())

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnavailable))
}

func TestWebhookClient_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewWebhookClient(Options{WebhookURL: server.URL, Timeout: time.Second})

	err := client.Submit(context.Background(), sampleRecord())

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnavailable))
}

func TestWebhookClient_MalformedAcknowledgment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewWebhookClient(Options{WebhookURL: server.URL, Timeout: time.Second})

	err := client.Submit(context.Background(), sampleRecord())

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnavailable))
}
