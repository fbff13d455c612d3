package room

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/connection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	mu    sync.Mutex
	rooms []string
	err   error
}

func (f *fakeFetcher) Fetch(_ context.Context, roomID string) (*connection.Details, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rooms = append(f.rooms, roomID)
	if f.err != nil {
		return nil, f.err
	}
	return &connection.Details{RoomName: roomID, ParticipantToken: "token-" + roomID}, nil
}

type fakeSession struct {
	opts       Options
	handler    func(Message)
	connectFn  func(ctx context.Context, url, token string) error
	micFn      func(enabled bool) error
	connects   int
	micCalls   []bool
	disconnect int
	url, token string
}

func (s *fakeSession) OnData(h func(Message)) { s.handler = h }

func (s *fakeSession) Connect(ctx context.Context, url, token string) error {
	s.connects++
	s.url, s.token = url, token
	if s.connectFn != nil {
		return s.connectFn(ctx, url, token)
	}
	return nil
}

func (s *fakeSession) SetMicrophoneEnabled(enabled bool) error {
	s.micCalls = append(s.micCalls, enabled)
	if s.micFn != nil {
		return s.micFn(enabled)
	}
	return nil
}

func (s *fakeSession) Disconnect() { s.disconnect++ }

type fakeDialer struct {
	sessions []*fakeSession
	prepare  func(*fakeSession)
}

func (d *fakeDialer) NewSession(opts Options) Session {
	s := &fakeSession{opts: opts}
	if d.prepare != nil {
		d.prepare(s)
	}
	d.sessions = append(d.sessions, s)
	return s
}

func TestJoin_Success(t *testing.T) {
	fetcher := &fakeFetcher{}
	dialer := &fakeDialer{}

	r, err := NewJoiner(fetcher, dialer, "wss://lk.example").Join(context.Background(), "daily", nil)
	require.NoError(t, err)
	defer r.Close()

	require.Len(t, dialer.sessions, 1)
	s := dialer.sessions[0]
	assert.Equal(t, Options{AdaptiveStream: true, Dynacast: true}, s.opts)
	assert.Equal(t, 1, s.connects)
	assert.Equal(t, "wss://lk.example", s.url)
	assert.Equal(t, "token-daily", s.token)
	assert.Equal(t, []bool{true}, s.micCalls)
	assert.True(t, r.MicrophoneEnabled())
	assert.Equal(t, "daily", r.ID())
}

func TestJoin_CredentialFailureSkipsConnect(t *testing.T) {
	fetcher := &fakeFetcher{err: connection.ErrBadStatus}
	dialer := &fakeDialer{}

	r, err := NewJoiner(fetcher, dialer, "wss://lk").Join(context.Background(), "daily", nil)
	assert.Nil(t, r)
	assert.ErrorIs(t, err, ErrCredential)
	assert.ErrorIs(t, err, connection.ErrBadStatus)
	assert.Empty(t, dialer.sessions)

	var joinErr *JoinError
	require.ErrorAs(t, err, &joinErr)
	assert.Equal(t, StageCredential, joinErr.Stage)
}

func TestJoin_ConnectFailureReleasesSession(t *testing.T) {
	boom := errors.New("signal refused")
	dialer := &fakeDialer{prepare: func(s *fakeSession) {
		s.connectFn = func(context.Context, string, string) error { return boom }
	}}

	_, err := NewJoiner(&fakeFetcher{}, dialer, "wss://lk").Join(context.Background(), "daily", nil)
	assert.ErrorIs(t, err, ErrConnect)
	assert.ErrorIs(t, err, boom)

	s := dialer.sessions[0]
	assert.Empty(t, s.micCalls)
	assert.Equal(t, 1, s.disconnect)
}

func TestJoin_MissingServerURL(t *testing.T) {
	dialer := &fakeDialer{}

	_, err := NewJoiner(&fakeFetcher{}, dialer, "").Join(context.Background(), "daily", nil)
	assert.ErrorIs(t, err, ErrConnect)
	assert.ErrorIs(t, err, ErrServerURLUnset)
	assert.Equal(t, 0, dialer.sessions[0].connects)
	assert.Equal(t, 1, dialer.sessions[0].disconnect)
}

func TestJoin_MicrophoneFailureReleasesSession(t *testing.T) {
	dialer := &fakeDialer{prepare: func(s *fakeSession) {
		s.micFn = func(bool) error { return errors.New("permission denied") }
	}}

	_, err := NewJoiner(&fakeFetcher{}, dialer, "wss://lk").Join(context.Background(), "daily", nil)
	assert.ErrorIs(t, err, ErrMicrophone)
	assert.Equal(t, 1, dialer.sessions[0].disconnect)
}

func TestJoin_ForwardsOnlyPreviewTopic(t *testing.T) {
	dialer := &fakeDialer{}
	var got []Message

	r, err := NewJoiner(&fakeFetcher{}, dialer, "wss://lk").Join(context.Background(), "daily", func(m Message) {
		got = append(got, m)
	})
	require.NoError(t, err)
	defer r.Close()

	h := dialer.sessions[0].handler
	require.NotNil(t, h)
	h(Message{Topic: "chat", Payload: []byte("ignored")})
	h(Message{Topic: PreviewTopic, Payload: []byte("<b>hi</b>")})

	require.Len(t, got, 1)
	assert.Equal(t, "<b>hi</b>", string(got[0].Payload))
}

func TestJoin_RejoinUsesFreshFetchAndSession(t *testing.T) {
	fetcher := &fakeFetcher{}
	dialer := &fakeDialer{}
	joiner := NewJoiner(fetcher, dialer, "wss://lk")

	first, err := joiner.Join(context.Background(), "room-a", nil)
	require.NoError(t, err)
	first.Close()

	second, err := joiner.Join(context.Background(), "room-b", nil)
	require.NoError(t, err)
	defer second.Close()

	assert.Equal(t, []string{"room-a", "room-b"}, fetcher.rooms)
	require.Len(t, dialer.sessions, 2)
	assert.NotSame(t, dialer.sessions[0], dialer.sessions[1])
	assert.Equal(t, "token-room-b", dialer.sessions[1].token)
}

func TestJoin_LogsFailureWithRoom(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	joiner := NewJoiner(&fakeFetcher{err: connection.ErrBadStatus}, &fakeDialer{}, "wss://lk").WithLogger(logger)
	_, err := joiner.Join(context.Background(), "daily", nil)
	require.Error(t, err)

	assert.Contains(t, buf.String(), "room=daily")
	assert.Contains(t, buf.String(), "failed to fetch credential")
}

func TestRoom_ToggleMicrophone(t *testing.T) {
	dialer := &fakeDialer{}
	r, err := NewJoiner(&fakeFetcher{}, dialer, "wss://lk").Join(context.Background(), "daily", nil)
	require.NoError(t, err)

	on, err := r.ToggleMicrophone()
	require.NoError(t, err)
	assert.False(t, on)

	on, err = r.ToggleMicrophone()
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, []bool{true, false, true}, dialer.sessions[0].micCalls)

	r.Close()
	_, err = r.ToggleMicrophone()
	assert.ErrorIs(t, err, ErrRoomClosed)
}

func TestRoom_CloseIsIdempotent(t *testing.T) {
	dialer := &fakeDialer{}
	r, err := NewJoiner(&fakeFetcher{}, dialer, "wss://lk").Join(context.Background(), "daily", nil)
	require.NoError(t, err)

	r.Close()
	r.Close()
	assert.Equal(t, 1, dialer.sessions[0].disconnect)
	assert.False(t, r.MicrophoneEnabled())

	var nilRoom *Room
	nilRoom.Close()
}

func TestStatusMessages(t *testing.T) {
	assert.Equal(t, "Connected. You can start speaking anytime.", StatusConnected.Message())
	assert.Equal(t, "Failed to connect.", StatusFailed.Message())
	assert.Equal(t, "Connecting...", StatusConnecting.Message())
	assert.Equal(t, "failed", StatusFailed.String())
}

func TestJoinError_Message(t *testing.T) {
	err := newJoinError(StageMicrophone, "daily", errors.New("denied"))
	assert.Equal(t, "enable microphone daily: denied", err.Error())
	assert.ErrorIs(t, err, ErrMicrophone)
	assert.NotErrorIs(t, err, ErrConnect)
}
