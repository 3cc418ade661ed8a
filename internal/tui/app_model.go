package tui

import (
	"context"
	"time"

	"trackup/internal/state"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Options configures a TUI session.
type Options struct {
	Backend Backend
	// UserID is the session identity sent with every chat request.
	UserID string
	Ctx    context.Context
	// Now is the clock used for transcript timestamps. Defaults to time.Now.
	Now func() time.Time
}

type appModel struct {
	ctx     context.Context
	backend Backend
	now     func() time.Time

	st state.Store

	width  int
	height int

	keys     keyMap
	help     help.Model
	showHelp bool

	chatInput textinput.Model
	chatView  viewport.Model
	teamsView viewport.Model
	spinner   spinner.Model

	// rows is the flattened roster shown in the teams view.
	rows   []teamRow
	cursor int
	// teamLine maps a team name to its header line in the teams viewport.
	teamLine map[string]int

	modalTask int
	confirm   *confirmRequest
	jump      *jumpState

	minibufferText string

	// initCmd is the first roster refresh, issued in newAppModel so its
	// sequence number is recorded on the model the program starts with.
	initCmd tea.Cmd
}

func newAppModel(opts Options) appModel {
	ctx := opts.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = "Ask TrackUp Buddy…"
	in.CharLimit = 2000

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = styleMuted()

	m := appModel{
		ctx:       ctx,
		backend:   opts.Backend,
		now:       now,
		st:        state.New(opts.UserID),
		keys:      newKeyMap(),
		help:      help.New(),
		chatInput: in,
		chatView:  viewport.New(0, 0),
		teamsView: viewport.New(0, 0),
		spinner:   sp,
		teamLine:  map[string]int{},
	}
	m.initCmd = (&m).startRefresh()
	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.initCmd, m.spinner.Tick, textinput.Blink)
}

func (m *appModel) showMinibuffer(s string) {
	m.minibufferText = s
}

// inputFocused reports whether a text input currently owns plain keys.
func (m appModel) inputFocused() bool {
	if m.jump != nil {
		return true
	}
	return m.chatInput.Focused()
}

// syncFocus focuses the chat input exactly when the chat view is active and
// nothing is layered on top of it.
func (m *appModel) syncFocus() {
	want := m.st.Router.IsActive(viewChat) && m.confirm == nil && m.jump == nil && !m.st.Modal.IsOpen()
	if want && !m.chatInput.Focused() {
		m.chatInput.Focus()
	}
	if !want && m.chatInput.Focused() {
		m.chatInput.Blur()
	}
}
