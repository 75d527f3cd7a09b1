package keys

import "github.com/charmbracelet/bubbles/key"

// WatchKeys are the key bindings of the watch TUI. The same set drives both
// the device picker and the stream view; bindings that do not apply to the
// current view are ignored there.
type WatchKeys struct {
	Quit      key.Binding
	Help      key.Binding
	Select    key.Binding
	Back      key.Binding
	Clear     key.Binding
	ToggleHex key.Binding
	ToggleDTR key.Binding
}

func NewWatchKeys() WatchKeys {
	return WatchKeys{
		Quit: key.NewBinding(
			key.WithKeys("q", "Q", "ctrl+c"),
			key.WithHelp("q/ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open device"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back to devices"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear buffer"),
		),
		ToggleHex: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "toggle hex"),
		),
		ToggleDTR: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "toggle DTR"),
		),
	}
}

func (k WatchKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Select, k.Clear, k.Quit}
}

func (k WatchKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Select, k.Back, k.Clear, k.ToggleHex, k.ToggleDTR},
		{k.Help, k.Quit},
	}
}
