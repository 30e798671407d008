package chapa

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializePostsWithBearer(t *testing.T) {
	var got InitializeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"status":"success","data":{"checkout_url":"https://checkout.chapa.co/x"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "sk_test", time.Second)
	body, err := c.Initialize(context.Background(), InitializeRequest{Amount: "250.00", Currency: "ETB", TxRef: "FEN-1-abc"})
	require.NoError(t, err)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "https://checkout.chapa.co/x", body["data"].(map[string]any)["checkout_url"])
	assert.Equal(t, "250.00", got.Amount)
	assert.Equal(t, "FEN-1-abc", got.TxRef)
}

func TestInitializeNon2xxIsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":"failed","message":"Invalid API Key"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "bad", time.Second).Initialize(context.Background(), InitializeRequest{})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Invalid API Key", apiErr.Message)
}

func TestVerifyDecodesAnyStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/transaction/verify/FEN-2-def", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":"failed","message":"Invalid transaction or Transaction not found"}`))
	}))
	defer srv.Close()

	body, err := NewClient(srv.URL, "sk", time.Second).Verify(context.Background(), "FEN-2-def")
	require.NoError(t, err)
	assert.Equal(t, "failed", body["status"])
	assert.False(t, IsSuccess(body))
}

func TestVerifyUnreachableProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, "sk", time.Second).Verify(context.Background(), "FEN-3-x")
	assert.Error(t, err)
}

func TestIsSuccess(t *testing.T) {
	cases := []struct {
		body map[string]any
		want bool
	}{
		{map[string]any{"status": "success"}, true},
		{map[string]any{"status": "failed", "data": map[string]any{"status": "success"}}, true},
		{map[string]any{"status": "failed", "data": map[string]any{"status": "pending"}}, false},
		{map[string]any{"data": nil}, false},
		{nil, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, IsSuccess(tc.body), "%v", tc.body)
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("", "sk", 0)
	assert.Equal(t, DefaultBaseURL, c.BaseURL)
	require.NotNil(t, c.HTTP)
}
