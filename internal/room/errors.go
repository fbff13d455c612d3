package room

import (
	"errors"
	"fmt"
)

// Stage identifies the step of a join that failed.
type Stage string

const (
	StageCredential Stage = "fetch credential"
	StageConnect    Stage = "connect to room"
	StageMicrophone Stage = "enable microphone"
)

var (
	ErrCredential     = errors.New("credential fetch failed")
	ErrConnect        = errors.New("session connect failed")
	ErrMicrophone     = errors.New("microphone enable failed")
	ErrServerURLUnset = errors.New("server URL is not configured")
	ErrRoomClosed     = errors.New("room closed")
	ErrNotConnected   = errors.New("room not connected")
)

// JoinError records which stage of a join failed. errors.Is matches both the
// stage sentinel and the underlying cause.
type JoinError struct {
	Stage Stage
	Room  string
	Err   error
}

func (e *JoinError) Error() string {
	if e.Room != "" {
		return fmt.Sprintf("%s %s: %v", e.Stage, e.Room, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *JoinError) Unwrap() []error {
	return []error{e.sentinel(), e.Err}
}

func (e *JoinError) sentinel() error {
	switch e.Stage {
	case StageCredential:
		return ErrCredential
	case StageConnect:
		return ErrConnect
	default:
		return ErrMicrophone
	}
}

func newJoinError(stage Stage, room string, err error) *JoinError {
	return &JoinError{Stage: stage, Room: room, Err: err}
}
