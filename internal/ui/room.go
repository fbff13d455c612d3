package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/appconfig"
	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/journal"
	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/preview"
	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/room"
)

// Joiner opens a room; *room.Joiner satisfies it.
type Joiner interface {
	Join(ctx context.Context, roomID string, onPreview func(room.Message)) (*room.Room, error)
}

// Recorder stores received summaries.
type Recorder interface {
	Record(ctx context.Context, e journal.Entry) (int64, error)
}

type joinedMsg struct{ room *room.Room }

type joinFailedMsg struct{ err error }

type previewMsg room.Message

type micToggledMsg struct {
	enabled bool
	err     error
}

type keyMap struct {
	Mic  key.Binding
	Quit key.Binding
}

var keys = keyMap{
	Mic: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "toggle microphone"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "leave"),
	),
}

// roomHolder owns the connected room so it is released exactly once, even
// when the join finishes after the view has exited.
type roomHolder struct {
	mu     sync.Mutex
	room   *room.Room
	closed bool
}

func (h *roomHolder) attach(r *room.Room) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		r.Close()
		return false
	}
	h.room = r
	return true
}

func (h *roomHolder) release() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	if h.room != nil {
		h.room.Close()
		h.room = nil
	}
}

// RoomModel is the Bubble Tea model for one joined room
type RoomModel struct {
	roomID string
	cfg    appconfig.AppConfig
	theme  Theme

	joiner   Joiner
	recorder Recorder

	ctx    context.Context
	cancel context.CancelFunc
	holder *roomHolder

	status     room.Status
	err        error
	micEnabled bool

	pane     *preview.Pane
	spinner  spinner.Model
	viewport viewport.Model

	updates chan room.Message
	done    chan struct{}
	once    sync.Once

	width  int
	height int
}

// NewRoomModel creates the view for roomID. recorder may be nil.
func NewRoomModel(roomID string, cfg appconfig.AppConfig, joiner Joiner, recorder Recorder) *RoomModel {
	theme := NewTheme(cfg.AccentOr(""))

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.Spinner

	ctx, cancel := context.WithCancel(context.Background())

	m := &RoomModel{
		roomID:   roomID,
		cfg:      cfg,
		theme:    theme,
		joiner:   joiner,
		recorder: recorder,
		ctx:      ctx,
		cancel:   cancel,
		holder:   &roomHolder{},
		status:   room.StatusConnecting,
		pane:     preview.NewPane(),
		spinner:  s,
		viewport: viewport.New(76, 10),
		updates:  make(chan room.Message, 16),
		done:     make(chan struct{}),
		width:    80,
		height:   24,
	}
	m.viewport.SetContent(m.pane.View())
	return m
}

func (m *RoomModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.joinCmd(),
		m.waitForPreview(),
	)
}

func (m *RoomModel) joinCmd() tea.Cmd {
	return func() tea.Msg {
		r, err := m.joiner.Join(m.ctx, m.roomID, m.forwardPreview)
		if err != nil {
			return joinFailedMsg{err: err}
		}
		if !m.holder.attach(r) {
			return nil
		}
		return joinedMsg{room: r}
	}
}

// forwardPreview runs on the session's goroutine.
func (m *RoomModel) forwardPreview(msg room.Message) {
	select {
	case m.updates <- msg:
	case <-m.done:
	}
}

func (m *RoomModel) waitForPreview() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-m.updates:
			return previewMsg(msg)
		case <-m.done:
			return nil
		}
	}
}

func (m *RoomModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.Close()
			return m, tea.Quit
		case key.Matches(msg, keys.Mic):
			if m.status == room.StatusConnected {
				cmds = append(cmds, m.toggleMicCmd())
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = max(msg.Width-8, 20)
		m.viewport.Height = max(msg.Height-12, 3)
		m.pane.SetWidth(m.viewport.Width)
		m.viewport.SetContent(m.pane.View())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case joinedMsg:
		m.status = room.StatusConnected
		m.micEnabled = msg.room.MicrophoneEnabled()

	case joinFailedMsg:
		m.status = room.StatusFailed
		m.err = msg.err
		slog.Error("room setup failed", "room", m.roomID, "error", msg.err)

	case micToggledMsg:
		if msg.err != nil {
			slog.Warn("microphone toggle failed", "room", m.roomID, "error", msg.err)
		} else {
			m.micEnabled = msg.enabled
		}

	case previewMsg:
		if m.pane.Update(room.Message(msg)) {
			m.viewport.SetContent(m.pane.View())
			m.viewport.GotoTop()
			cmds = append(cmds, m.recordCmd(m.pane.HTML()))
		}
		cmds = append(cmds, m.waitForPreview())

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *RoomModel) toggleMicCmd() tea.Cmd {
	h := m.holder
	return func() tea.Msg {
		h.mu.Lock()
		r := h.room
		h.mu.Unlock()
		if r == nil {
			return micToggledMsg{err: room.ErrNotConnected}
		}
		enabled, err := r.ToggleMicrophone()
		return micToggledMsg{enabled: enabled, err: err}
	}
}

func (m *RoomModel) recordCmd(html string) tea.Cmd {
	if m.recorder == nil {
		return nil
	}
	return func() tea.Msg {
		if _, err := m.recorder.Record(m.ctx, journal.Entry{Room: m.roomID, HTML: html}); err != nil {
			slog.Warn("failed to record check-in", "room", m.roomID, "error", err)
		}
		return nil
	}
}

// Close cancels a pending join and releases the room. Safe to call repeatedly.
func (m *RoomModel) Close() {
	m.once.Do(func() {
		close(m.done)
		m.cancel()
		m.holder.release()
	})
}

// Status returns the current connection status.
func (m *RoomModel) Status() room.Status { return m.status }

// Err returns the tagged join error, if any.
func (m *RoomModel) Err() error { return m.err }

// MicrophoneEnabled reports the last known microphone state.
func (m *RoomModel) MicrophoneEnabled() bool { return m.micEnabled }

// Preview returns the preview pane.
func (m *RoomModel) Preview() *preview.Pane { return m.pane }

func (m *RoomModel) View() string {
	var b strings.Builder

	header := m.theme.Header.Render(m.cfg.PageTitle)
	b.WriteString(header + "\n")
	b.WriteString(MutedStyle.Render(fmt.Sprintf("%s Room: %s", IconRoom, m.roomID)) + "\n\n")

	switch m.status {
	case room.StatusConnecting:
		b.WriteString(m.viewConnecting())
	case room.StatusConnected:
		b.WriteString(m.viewConnected())
	case room.StatusFailed:
		b.WriteString(m.viewFailed())
	}

	b.WriteString("\n" + m.viewFooter())

	return ContainerStyle.Render(b.String())
}

func (m *RoomModel) viewConnecting() string {
	return fmt.Sprintf("%s %s\n", m.spinner.View(), m.status.Message())
}

func (m *RoomModel) viewConnected() string {
	var b strings.Builder

	b.WriteString(SuccessStyle.Render(m.status.Message()) + "\n")
	if m.micEnabled {
		b.WriteString(fmt.Sprintf("%s Microphone on\n\n", IconMicOn))
	} else {
		b.WriteString(MutedStyle.Render(fmt.Sprintf("%s Microphone muted", IconMicOff)) + "\n\n")
	}
	b.WriteString(m.viewPane())

	return b.String()
}

func (m *RoomModel) viewFailed() string {
	return ErrorBoxStyle.Render(m.status.Message()) + "\n\n" + m.viewPane()
}

func (m *RoomModel) viewPane() string {
	title := BoldStyle.Render(fmt.Sprintf("%s Wellness Summary", IconSummary))
	return title + "\n" + m.theme.Pane.Render(m.viewport.View()) + "\n"
}

func (m *RoomModel) viewFooter() string {
	if m.status == room.StatusConnected {
		return FooterStyle.Render(fmt.Sprintf("%s • %s", keys.Mic.Help().Key+" "+keys.Mic.Help().Desc, keys.Quit.Help().Key+" "+keys.Quit.Help().Desc))
	}
	return FooterStyle.Render("Press 'q' to exit")
}

// RunRoom runs the view in the alternate screen and releases the room when
// the program exits, whatever the exit path.
func RunRoom(m *RoomModel) error {
	defer m.Close()

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
