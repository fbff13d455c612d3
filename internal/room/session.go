package room

import "context"

// PreviewTopic is the data topic carrying the wellness summary markup.
const PreviewTopic = "html-preview"

// Status is the user-visible state of a room view.
type Status int

const (
	StatusConnecting Status = iota
	StatusConnected
	StatusFailed
)

// Message returns the fixed status line shown for s.
func (s Status) Message() string {
	switch s {
	case StatusConnected:
		return "Connected. You can start speaking anytime."
	case StatusFailed:
		return "Failed to connect."
	default:
		return "Connecting..."
	}
}

func (s Status) String() string {
	switch s {
	case StatusConnected:
		return "connected"
	case StatusFailed:
		return "failed"
	default:
		return "connecting"
	}
}

// Message is one inbound data packet.
type Message struct {
	Topic   string
	Payload []byte
	From    string
}

// Options are passed through to the real-time platform unchanged.
type Options struct {
	AdaptiveStream bool
	Dynacast       bool
}

// Session is the platform's handle for one participant connection.
type Session interface {
	// OnData registers the inbound data handler. It must be called before Connect.
	OnData(func(Message))
	Connect(ctx context.Context, serverURL, token string) error
	SetMicrophoneEnabled(enabled bool) error
	// Disconnect releases the connection. It is safe to call more than once.
	Disconnect()
}

// Dialer constructs unconnected sessions.
type Dialer interface {
	NewSession(opts Options) Session
}

// DialerFunc adapts a function to Dialer.
type DialerFunc func(opts Options) Session

func (f DialerFunc) NewSession(opts Options) Session { return f(opts) }
