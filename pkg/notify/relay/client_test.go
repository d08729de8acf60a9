package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Send(t *testing.T) {
	var got sendRequest
	var authHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := New("key", srv.URL, "no-reply@fintrack.local")
	require.NoError(t, c.Send(context.Background(), "a@x.com", "subj", "<p>hi</p>"))

	assert.Equal(t, "Bearer key", authHeader)
	assert.Equal(t, sendRequest{From: "no-reply@fintrack.local", To: []string{"a@x.com"}, Subject: "subj", HTML: "<p>hi</p>"}, got)
}

func TestClient_SendErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"upstream"}`))
	}))
	defer srv.Close()

	err := New("", srv.URL, "x@y.z").Send(context.Background(), "a@x.com", "s", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestClient_EmptyBaseURL(t *testing.T) {
	assert.Error(t, New("", "", "x@y.z").Send(context.Background(), "a@x.com", "s", "b"))
}
