package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/connection"
	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/token"
)

// TokenIssuer mints participant credentials.
type TokenIssuer interface {
	Issue(roomName string, p token.Participant) (string, error)
}

// Server serves connection details to room views.
type Server struct {
	issuer      TokenIssuer
	serverURL   string
	newIdentity func() string
	mux         *http.ServeMux
}

// New creates a server handing out tokens for serverURL.
func New(issuer TokenIssuer, serverURL string) *Server {
	s := &Server{
		issuer:      issuer,
		serverURL:   serverURL,
		newIdentity: func() string { return "voice_assistant_user_" + uuid.NewString()[:8] },
		mux:         http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /health", healthCheckHandler)
	s.mux.HandleFunc("GET "+connection.Path, s.handleConnectionDetails)
	return s
}

// Handler returns the HTTP handler for all routes.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting connection-details server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Connection-details server is healthy."))
}

func (s *Server) handleConnectionDetails(w http.ResponseWriter, r *http.Request) {
	roomName := r.URL.Query().Get("room")
	if roomName == "" {
		writeError(w, http.StatusBadRequest, "room is required")
		return
	}

	identity := s.newIdentity()
	participant := token.Participant{Identity: identity, Name: "user"}

	signed, err := s.issuer.Issue(roomName, participant)
	if err != nil {
		slog.Error("failed to issue token", "room", roomName, "error", err)
		writeError(w, http.StatusInternalServerError, "could not issue credential")
		return
	}

	slog.Info("issued connection details", "room", roomName, "identity", identity)

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, connection.Details{
		ServerURL:        s.serverURL,
		RoomName:         roomName,
		ParticipantName:  participant.Name,
		AccessToken:      signed,
		ParticipantToken: signed,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
