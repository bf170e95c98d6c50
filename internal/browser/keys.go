package browser

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds every Normal-mode binding plus the few used inside the text
// viewer and editor.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	Open         key.Binding
	Left         key.Binding
	Right        key.Binding
	Cycle        key.Binding
	GoUp         key.Binding
	Back         key.Binding
	Forward      key.Binding
	Delete       key.Binding
	Address      key.Binding
	Create       key.Binding
	CreateDir    key.Binding
	Rename       key.Binding
	Move         key.Binding
	Filter       key.Binding
	Copy         key.Binding
	Cut          key.Binding
	Paste        key.Binding
	OpenExternal key.Binding
	ToggleHidden key.Binding
	Yank         key.Binding
	View         key.Binding
	Edit         key.Binding
	PlayPause    key.Binding
	Stop         key.Binding
	SeekBack     key.Binding
	SeekForward  key.Binding
	Help         key.Binding
	Cancel       key.Binding
	Quit         key.Binding
	ForceQuit    key.Binding

	Find      key.Binding
	FindNext  key.Binding
	Replace   key.Binding
	Save      key.Binding
	CloseView key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "files panel"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "actions"),
		),
		Cycle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch panel"),
		),
		GoUp: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "go up"),
		),
		Back: key.NewBinding(
			key.WithKeys("alt+left", "<"),
			key.WithHelp("<", "back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("alt+right", ">"),
			key.WithHelp(">", "forward"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Address: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "go to path"),
		),
		Create: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new file"),
		),
		CreateDir: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+", "new dir"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename"),
		),
		Move: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy"),
		),
		Cut: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "cut"),
		),
		Paste: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "paste"),
		),
		OpenExternal: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open"),
		),
		ToggleHidden: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "hidden"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yank path"),
		),
		View: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "view"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		PlayPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop"),
		),
		SeekBack: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "seek back"),
		),
		SeekForward: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "seek fwd"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Find: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "find"),
		),
		FindNext: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "next match"),
		),
		Replace: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "replace"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		CloseView: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Cycle, k.Address, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Left, k.Right, k.Cycle},
		{k.GoUp, k.Back, k.Forward, k.Address, k.Filter, k.ToggleHidden},
		{k.Copy, k.Cut, k.Paste, k.Delete, k.Rename, k.Move},
		{k.Create, k.CreateDir, k.OpenExternal, k.Yank, k.View, k.Edit},
		{k.PlayPause, k.Stop, k.SeekBack, k.SeekForward, k.Help, k.Quit},
	}
}

// modeHelp lists the bindings shown while a non-Normal mode is active.
type modeHelp []key.Binding

func (h modeHelp) ShortHelp() []key.Binding  { return h }
func (h modeHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h} }

// HelpKeys returns the bindings relevant to the active mode, for the help
// strip.
func (b *Browser) HelpKeys() help.KeyMap {
	k := b.Keys
	switch b.Mode.Kind {
	case Normal:
		return k
	case ConfirmDelete:
		return modeHelp{
			key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "move to trash")),
			key.NewBinding(key.WithKeys("n"), key.WithHelp("any", "cancel")),
		}
	case View:
		return modeHelp{k.Up, k.Down, k.Find, k.FindNext, k.CloseView, k.Quit}
	case Edit:
		return modeHelp{k.Save, k.Find, k.FindNext, k.Replace, k.Cancel}
	case AddressEdit:
		return modeHelp{
			key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete")),
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "go")),
			k.Cancel,
		}
	default:
		return modeHelp{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
			k.Cancel,
		}
	}
}
