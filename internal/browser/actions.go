package browser

// Action is one row of the actions panel. Run is the same handler the
// shortcut key triggers in Normal mode.
type Action struct {
	Label    string
	Shortcut string
	Run      func(b *Browser)
}

// Actions is the actions panel, top to bottom.
var Actions = []Action{
	{"Cut", "X", func(b *Browser) { b.copySelected(true) }},
	{"Copy", "C", func(b *Browser) { b.copySelected(false) }},
	{"Paste", "P", (*Browser).paste},
	{"Delete", "D", (*Browser).requestDelete},
	{"Rename", "R", func(b *Browser) { b.beginOnEntry(Rename) }},
	{"Create", "N", func(b *Browser) { b.enterText(Create) }},
	{"Create Directory", "+", func(b *Browser) { b.enterText(CreateDirectory) }},
	{"Move", "M", func(b *Browser) { b.beginOnEntry(Move) }},
	{"Open", "O", (*Browser).open},
	{"Toggle Hidden", "Shift+H", (*Browser).toggleHidden},
	{"View", "V", (*Browser).openViewer},
	{"Edit", "E", (*Browser).openEditor},
}

// TopBarControl is one button of the top bar.
type TopBarControl struct {
	Label string
	Run   func(b *Browser)
}

// TopBar lists the top bar controls, left to right.
var TopBar = []TopBarControl{
	{"Back", (*Browser).goBack},
	{"Forward", (*Browser).goForward},
	{"Up", (*Browser).goUp},
	{"Address", func(b *Browser) { b.enterText(AddressEdit) }},
	{"Hidden", (*Browser).toggleHidden},
}

// runAction performs the action at ActionIndex and hands focus back to the
// file list.
func (b *Browser) runAction() {
	i := clamp(b.ActionIndex, 0, len(Actions)-1)
	b.Focus = FocusFiles
	Actions[i].Run(b)
}

func (b *Browser) runTopBar() {
	i := clamp(b.TopBarIndex, 0, len(TopBar)-1)
	b.Focus = FocusFiles
	TopBar[i].Run(b)
}

func (b *Browser) cycleFocus() {
	switch b.Focus {
	case FocusFiles:
		b.Focus = FocusActions
	case FocusActions:
		b.Focus = FocusTopBar
	default:
		b.Focus = FocusFiles
	}
}
