// Package preview turns inbound check-in summaries into terminal text.
//
// Summaries arrive as HTML fragments from the room. They are untrusted: only a
// small set of formatting elements survives sanitization, and the result is
// rendered as styled text rather than interpreted.
package preview

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/room"
)

// Topic is the data topic the pane listens to.
const Topic = room.PreviewTopic

// Placeholder is shown until the first summary arrives.
const Placeholder = "Your daily check-in summary will appear here after your conversation."

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"b", "strong", "i", "em", "u",
		"p", "br", "div", "span",
		"h1", "h2", "h3", "h4",
		"ul", "ol", "li",
	)
	return p
}

// Decode extracts the markup carried by msg. It reports false for any topic
// other than Topic. Invalid UTF-8 sequences are replaced.
func Decode(msg room.Message) (string, bool) {
	if msg.Topic != Topic {
		return "", false
	}
	return strings.ToValidUTF8(string(msg.Payload), "\uFFFD"), true
}

// Sanitize strips every element and attribute outside the formatting allow-list.
func Sanitize(fragment string) string {
	return policy.Sanitize(fragment)
}

// Pane holds the most recently received summary.
type Pane struct {
	mu       sync.RWMutex
	html     string
	rendered string
	width    int
}

// NewPane returns an empty pane.
func NewPane() *Pane {
	return &Pane{}
}

// Update stores msg if it carries a summary. Other topics leave the pane
// unchanged and report false.
func (p *Pane) Update(msg room.Message) bool {
	fragment, ok := Decode(msg)
	if !ok {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.html = fragment
	p.rendered = Render(fragment, p.width)
	return true
}

// SetWidth sets the wrap width used when rendering; 0 disables wrapping.
func (p *Pane) SetWidth(width int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if width == p.width {
		return
	}
	p.width = width
	if p.html != "" {
		p.rendered = Render(p.html, width)
	}
}

// HTML returns the raw fragment last received.
func (p *Pane) HTML() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.html
}

// Empty reports whether no summary has arrived yet.
func (p *Pane) Empty() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.html == ""
}

// View returns the rendered summary, or the placeholder.
func (p *Pane) View() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.html == "" {
		return Placeholder
	}
	return p.rendered
}
