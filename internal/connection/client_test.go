package connection

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_Success(t *testing.T) {
	var gotRoom, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRoom = r.URL.Query().Get("room")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"serverUrl":"wss://lk","roomName":"daily","participantName":"you","participantToken":"tok-1"}`))
	}))
	defer srv.Close()

	details, err := NewClient(srv.URL).Fetch(context.Background(), "daily room&x")
	require.NoError(t, err)

	assert.Equal(t, Path, gotPath)
	assert.Equal(t, "daily room&x", gotRoom)
	assert.Equal(t, "tok-1", details.Token())
	assert.Equal(t, "wss://lk", details.ServerURL)
}

func TestFetch_TokenField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"abc"}`))
	}))
	defer srv.Close()

	details, err := NewClientWithHTTP(srv.URL, srv.Client()).Fetch(context.Background(), "r")
	require.NoError(t, err)
	assert.Equal(t, "abc", details.Token())
}

func TestDetails_TokenPrecedence(t *testing.T) {
	d := &Details{AccessToken: "primary", ParticipantToken: "fallback"}
	assert.Equal(t, "primary", d.Token())

	d.AccessToken = ""
	assert.Equal(t, "fallback", d.Token())
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Fetch(context.Background(), "r")
	assert.ErrorIs(t, err, ErrBadStatus)
}

func TestFetch_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Fetch(context.Background(), "r")
	assert.ErrorIs(t, err, ErrInvalidBody)
}

func TestFetch_MissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"roomName":"r"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Fetch(context.Background(), "r")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestFetch_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).Fetch(context.Background(), "r")
	assert.Error(t, err)
}

func TestDetails_TokenNil(t *testing.T) {
	var d *Details
	assert.Empty(t, d.Token())
}
