package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/connection"
	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/token"
)

type mockIssuer struct {
	issueFn func(room string, p token.Participant) (string, error)
}

func (m *mockIssuer) Issue(room string, p token.Participant) (string, error) {
	return m.issueFn(room, p)
}

func TestHealth(t *testing.T) {
	srv := New(&mockIssuer{}, "wss://lk")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestConnectionDetails_Success(t *testing.T) {
	var gotRoom string
	var gotParticipant token.Participant
	srv := New(&mockIssuer{issueFn: func(room string, p token.Participant) (string, error) {
		gotRoom, gotParticipant = room, p
		return "signed-token", nil
	}}, "wss://lk")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/connection-details?room=daily", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "daily", gotRoom)
	assert.Contains(t, gotParticipant.Identity, "voice_assistant_user_")

	var details connection.Details
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &details))
	assert.Equal(t, "signed-token", details.Token())
	assert.Equal(t, "signed-token", details.AccessToken)
	assert.Equal(t, "signed-token", details.ParticipantToken)
	assert.Contains(t, rec.Body.String(), `"token":"signed-token"`)
	assert.Equal(t, "wss://lk", details.ServerURL)
	assert.Equal(t, "daily", details.RoomName)
}

func TestConnectionDetails_MissingRoom(t *testing.T) {
	srv := New(&mockIssuer{}, "wss://lk")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/connection-details", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "room is required")
}

func TestConnectionDetails_IssuerFailure(t *testing.T) {
	srv := New(&mockIssuer{issueFn: func(string, token.Participant) (string, error) {
		return "", errors.New("no key")
	}}, "wss://lk")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/connection-details?room=r", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestConnectionDetails_MethodNotAllowed(t *testing.T) {
	srv := New(&mockIssuer{}, "wss://lk")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/connection-details?room=r", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// The client and server agree on the wire format end to end.
func TestConnectionDetails_RoundTripWithClient(t *testing.T) {
	issuer := token.NewIssuer("key", "secret", 0, clockwork.NewRealClock())
	ts := httptest.NewServer(New(issuer, "wss://lk").Handler())
	defer ts.Close()

	details, err := connection.NewClientWithHTTP(ts.URL, ts.Client()).Fetch(context.Background(), "evening")
	require.NoError(t, err)

	claims, err := issuer.Parse(details.Token())
	require.NoError(t, err)
	assert.Equal(t, "evening", claims.Video.Room)
}
