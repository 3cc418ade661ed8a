package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Dashboard key.Binding
	Chat      key.Binding
	Teams     key.Binding
	Contact   key.Binding
	DigitNav  key.Binding
	NextView  key.Binding
	PrevView  key.Binding
	Help      key.Binding
	Quit      key.Binding
	CopyID    key.Binding

	Up         key.Binding
	Down       key.Binding
	Open       key.Binding
	Message    key.Binding
	Remove     key.Binding
	DeleteTeam key.Binding
	PrevTeam   key.Binding
	NextTeam   key.Binding
	Jump       key.Binding
	Refresh    key.Binding

	Send       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding

	Confirm key.Binding
	Cancel  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Dashboard: key.NewBinding(key.WithKeys("f1", "alt+1"), key.WithHelp("1/f1", "dashboard")),
		Chat:      key.NewBinding(key.WithKeys("f2", "alt+2"), key.WithHelp("2/f2", "buddy")),
		Teams:     key.NewBinding(key.WithKeys("f3", "alt+3"), key.WithHelp("3/f3", "teams")),
		Contact:   key.NewBinding(key.WithKeys("f4", "alt+4"), key.WithHelp("4/f4", "contact")),
		DigitNav:  key.NewBinding(key.WithKeys("1", "2", "3", "4")),
		NextView:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
		PrevView:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev view")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		CopyID:    key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy user id")),

		Up:         key.NewBinding(key.WithKeys("up", "k", "ctrl+p"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j", "ctrl+n"), key.WithHelp("↓/j", "down")),
		Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "member details")),
		Message:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "message")),
		Remove:     key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove/delete")),
		DeleteTeam: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete team")),
		PrevTeam:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev team")),
		NextTeam:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next team")),
		Jump:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "jump to team")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),

		Send:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		ScrollUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		ScrollDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),

		Confirm: key.NewBinding(key.WithKeys("enter", "y"), key.WithHelp("enter/y", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("esc", "n", "ctrl+g"), key.WithHelp("esc/n", "cancel")),
	}
}

// helpKeys adapts the key map to the help bubble for the active context.
type helpKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

func (h helpKeys) ShortHelp() []key.Binding  { return h.short }
func (h helpKeys) FullHelp() [][]key.Binding { return h.full }

func (m appModel) contextHelp() helpKeys {
	k := m.keys
	nav := []key.Binding{k.Dashboard, k.Chat, k.Teams, k.Contact, k.NextView, k.Quit}
	switch {
	case m.confirm != nil:
		return helpKeys{short: []key.Binding{k.Confirm, k.Cancel}}
	case m.jump != nil:
		return helpKeys{short: []key.Binding{k.Up, k.Down, k.Open, k.Cancel}}
	case m.st.Modal.IsOpen():
		return helpKeys{short: []key.Binding{k.Up, k.Down, k.Message, k.Remove, k.Cancel}}
	}
	var local []key.Binding
	switch m.st.Router.Active() {
	case viewChat:
		local = []key.Binding{k.Send, k.ScrollUp, k.ScrollDown, k.CopyID}
	case viewTeams:
		local = []key.Binding{k.Up, k.Down, k.Open, k.Message, k.Remove, k.DeleteTeam, k.PrevTeam, k.NextTeam, k.Jump, k.Refresh}
	default:
		local = []key.Binding{k.Refresh, k.CopyID}
	}
	return helpKeys{
		short: append(append([]key.Binding{}, local...), k.Help, k.Quit),
		full:  [][]key.Binding{local, nav, {k.Help, k.CopyID}},
	}
}
