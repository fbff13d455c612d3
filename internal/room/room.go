package room

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/connection"
)

// CredentialFetcher issues participant credentials for a room.
type CredentialFetcher interface {
	Fetch(ctx context.Context, roomID string) (*connection.Details, error)
}

// Joiner opens rooms. Every Join fetches a new credential and builds a new
// session; nothing is shared between rooms.
type Joiner struct {
	credentials CredentialFetcher
	dialer      Dialer
	serverURL   string
	logger      *slog.Logger
}

// NewJoiner creates a Joiner connecting to serverURL.
func NewJoiner(credentials CredentialFetcher, dialer Dialer, serverURL string) *Joiner {
	return &Joiner{
		credentials: credentials,
		dialer:      dialer,
		serverURL:   serverURL,
		logger:      slog.Default(),
	}
}

// WithLogger sets the logger used for join diagnostics.
func (j *Joiner) WithLogger(logger *slog.Logger) *Joiner {
	j.logger = logger
	return j
}

// Join connects to roomID and enables the microphone. onPreview receives
// every inbound message on PreviewTopic; other topics are dropped.
//
// On error the session, if one was created, has already been released.
func (j *Joiner) Join(ctx context.Context, roomID string, onPreview func(Message)) (*Room, error) {
	log := j.logger.With("room", roomID)

	details, err := j.credentials.Fetch(ctx, roomID)
	if err != nil {
		log.Error("failed to fetch credential", "error", err)
		return nil, newJoinError(StageCredential, roomID, err)
	}

	session := j.dialer.NewSession(Options{AdaptiveStream: true, Dynacast: true})
	session.OnData(func(msg Message) {
		if msg.Topic != PreviewTopic {
			log.Debug("ignoring data message", "topic", msg.Topic)
			return
		}
		if onPreview != nil {
			onPreview(msg)
		}
	})

	if j.serverURL == "" {
		session.Disconnect()
		log.Error("cannot connect", "error", ErrServerURLUnset)
		return nil, newJoinError(StageConnect, roomID, ErrServerURLUnset)
	}

	if err := session.Connect(ctx, j.serverURL, details.Token()); err != nil {
		session.Disconnect()
		log.Error("failed to connect session", "error", err)
		return nil, newJoinError(StageConnect, roomID, err)
	}

	if err := session.SetMicrophoneEnabled(true); err != nil {
		session.Disconnect()
		log.Error("failed to enable microphone", "error", err)
		return nil, newJoinError(StageMicrophone, roomID, err)
	}

	log.Info("joined room")
	return &Room{id: roomID, session: session, micEnabled: true}, nil
}

// Room owns one connected session until Close.
type Room struct {
	id      string
	session Session

	mu         sync.Mutex
	micEnabled bool
	closed     bool
}

// ID returns the room identifier.
func (r *Room) ID() string { return r.id }

// MicrophoneEnabled reports whether the local microphone is live.
func (r *Room) MicrophoneEnabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.micEnabled
}

// ToggleMicrophone flips the microphone and returns the new state.
func (r *Room) ToggleMicrophone() (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return r.micEnabled, ErrRoomClosed
	}
	next := !r.micEnabled
	if err := r.session.SetMicrophoneEnabled(next); err != nil {
		return r.micEnabled, err
	}
	r.micEnabled = next
	return next, nil
}

// Close disconnects the session. Subsequent calls are no-ops.
func (r *Room) Close() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	r.micEnabled = false
	r.session.Disconnect()
}
