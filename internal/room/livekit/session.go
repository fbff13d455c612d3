// Package livekit connects room sessions through the LiveKit Go SDK.
package livekit

import (
	"context"
	"log/slog"
	"sync"

	"github.com/livekit/protocol/livekit"
	lksdk "github.com/livekit/server-sdk-go/v2"
	"github.com/pion/webrtc/v4"

	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/room"
)

const microphoneTrackName = "microphone"

var opusCapability = webrtc.RTPCodecCapability{
	MimeType:  webrtc.MimeTypeOpus,
	ClockRate: 48000,
	Channels:  2,
}

// Session is a room.Session backed by an lksdk.Room.
type Session struct {
	opts room.Options

	mu      sync.Mutex
	handler func(room.Message)
	lkRoom  *lksdk.Room
	mic     *lksdk.LocalTrackPublication
	closed  bool
}

// NewSession returns an unconnected session.
func NewSession(opts room.Options) room.Session {
	return &Session{opts: opts}
}

// Dialer returns a room.Dialer producing LiveKit sessions.
func Dialer() room.Dialer {
	return room.DialerFunc(NewSession)
}

func (s *Session) OnData(h func(room.Message)) {
	s.mu.Lock()
	s.handler = h
	s.mu.Unlock()
}

// Connect joins the room. The SDK call is not cancellable, so a cancelled
// context abandons the attempt and disconnects the room once it completes.
func (s *Session) Connect(ctx context.Context, serverURL, token string) error {
	slog.Debug("connecting to livekit",
		"url", serverURL,
		"adaptive_stream", s.opts.AdaptiveStream,
		"dynacast", s.opts.Dynacast,
	)

	cb := &lksdk.RoomCallback{
		ParticipantCallback: lksdk.ParticipantCallback{
			OnDataPacket: s.onDataPacket,
		},
		OnDisconnected: func() {
			slog.Info("disconnected from livekit room")
		},
	}

	type result struct {
		room *lksdk.Room
		err  error
	}
	done := make(chan result, 1)
	go func() {
		r, err := lksdk.ConnectToRoomWithToken(serverURL, token, cb, lksdk.WithAutoSubscribe(true))
		done <- result{room: r, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return res.err
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			res.room.Disconnect()
			return room.ErrRoomClosed
		}
		s.lkRoom = res.room
		return nil
	case <-ctx.Done():
		go func() {
			if res := <-done; res.room != nil {
				res.room.Disconnect()
			}
		}()
		return ctx.Err()
	}
}

func (s *Session) onDataPacket(data lksdk.DataPacket, params lksdk.DataReceiveParams) {
	pkt, ok := data.(*lksdk.UserDataPacket)
	if !ok {
		return
	}

	s.mu.Lock()
	h := s.handler
	s.mu.Unlock()
	if h == nil {
		return
	}

	h(room.Message{
		Topic:   pkt.Topic,
		Payload: pkt.Payload,
		From:    params.SenderIdentity,
	})
}

// SetMicrophoneEnabled publishes the microphone track on first enable and
// mutes or unmutes it afterwards.
func (s *Session) SetMicrophoneEnabled(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return room.ErrRoomClosed
	}
	if s.lkRoom == nil {
		return room.ErrNotConnected
	}

	if s.mic == nil {
		if !enabled {
			return nil
		}
		track, err := lksdk.NewLocalTrack(opusCapability)
		if err != nil {
			return err
		}
		pub, err := s.lkRoom.LocalParticipant.PublishTrack(track, &lksdk.TrackPublicationOptions{
			Name:   microphoneTrackName,
			Source: livekit.TrackSource_MICROPHONE,
		})
		if err != nil {
			return err
		}
		s.mic = pub
		return nil
	}

	s.mic.SetMuted(!enabled)
	return nil
}

func (s *Session) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	if s.lkRoom != nil {
		s.lkRoom.Disconnect()
		s.lkRoom = nil
	}
	s.mic = nil
}
