package browser

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/LFroesch/karu/internal/fileops"
	"github.com/LFroesch/karu/internal/listing"
)

// Kind names the active input mode.
type Kind int

const (
	Normal Kind = iota
	ConfirmDelete
	AddressEdit
	Create
	Rename
	Filter
	CreateDirectory
	Move
	View
	Edit
	Find
	Replace
)

func (k Kind) String() string {
	if s, ok := textModes[k]; ok {
		return s.title
	}
	switch k {
	case Normal:
		return "Normal"
	case ConfirmDelete:
		return "Delete"
	case View:
		return "View"
	case Edit:
		return "Edit"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsText reports whether the kind owns a single-line input buffer.
func (k Kind) IsText() bool {
	_, ok := textModes[k]
	return ok
}

// Mode is the active mode. Input is only meaningful for text kinds. Target
// is the entry the mode acts on, captured on entry. Return is where Find and
// Replace go back to.
type Mode struct {
	Kind   Kind
	Input  textinput.Model
	Target listing.Entry
	Return Kind
}

// textMode drives every single-line text mode. Character, cursor, enter and
// escape handling is shared; only these hooks differ.
type textMode struct {
	title   string
	prompt  string
	prefill func(b *Browser) string
	commit  func(b *Browser, text string) error
	// cancel runs on escape, after the mode has been left.
	cancel func(b *Browser)
}

var textModes map[Kind]textMode

func init() {
	textModes = map[Kind]textMode{
		AddressEdit: {
			title:   "Go to",
			prompt:  "Path: ",
			prefill: func(b *Browser) string { return b.Path },
			commit:  (*Browser).commitAddress,
		},
		Create: {
			title:  "Create",
			prompt: "New file (end with / for a directory): ",
			commit: func(b *Browser, text string) error {
				if err := fileops.CreateFile(b.Path, text); err != nil {
					return err
				}
				b.setStatus("Created %s", text)
				return b.reload()
			},
		},
		CreateDirectory: {
			title:  "Create Directory",
			prompt: "New directory: ",
			commit: func(b *Browser, text string) error {
				if err := fileops.CreateDir(b.Path, text); err != nil {
					return err
				}
				b.setStatus("Created %s", text)
				return b.reload()
			},
		},
		Rename: {
			title:   "Rename",
			prompt:  "New name: ",
			prefill: func(b *Browser) string { return b.Mode.Target.Name },
			commit: func(b *Browser, text string) error {
				if err := fileops.Rename(b.Path, b.Mode.Target.Name, text); err != nil {
					return err
				}
				b.setStatus("Renamed %s to %s", b.Mode.Target.Name, text)
				return b.reload()
			},
		},
		Move: {
			title:   "Move",
			prompt:  "Move to: ",
			prefill: func(b *Browser) string { return b.Mode.Target.Name },
			commit: func(b *Browser, text string) error {
				if err := fileops.Move(b.Path, b.Mode.Target.Name, text, b.home); err != nil {
					return err
				}
				b.setStatus("Moved %s", b.Mode.Target.Name)
				return b.reload()
			},
		},
		Filter: {
			title:  "Filter",
			prompt: "Filter: ",
			commit: (*Browser).applyFilter,
			cancel: func(b *Browser) {
				if b.FilterText != "" {
					b.clearFilter()
				}
			},
		},
		Find: {
			title:   "Find",
			prompt:  "Find: ",
			prefill: func(b *Browser) string { return b.findQuery },
			commit:  (*Browser).commitFind,
		},
		Replace: {
			title:  "Replace",
			prompt: "Replace with: ",
			commit: (*Browser).commitReplace,
		},
	}
}

// enterText switches to a text kind, capturing the selected entry and
// initializing the buffer from the kind's prefill.
func (b *Browser) enterText(kind Kind) {
	tm := textModes[kind]
	ret := Normal
	if kind == Find || kind == Replace {
		ret = b.Mode.Kind
	}

	input := textinput.New()
	input.Prompt = tm.prompt
	input.CharLimit = 0
	input.Width = max(b.width-len(tm.prompt)-8, 10)

	b.Mode = Mode{Kind: kind, Input: input, Target: b.SelectedEntry(), Return: ret}
	if tm.prefill != nil {
		b.Mode.Input.SetValue(tm.prefill(b))
		b.Mode.Input.CursorEnd()
	}
	b.Mode.Input.Focus()
}

// leaveMode returns to Normal, or to the viewer or editor a Find or Replace
// was started from.
func (b *Browser) leaveMode() {
	ret := Normal
	if b.Mode.Kind == Find || b.Mode.Kind == Replace {
		ret = b.Mode.Return
	}
	b.Mode = Mode{Kind: ret}
}

func (b *Browser) commitAddress(text string) error {
	target := fileops.Resolve(b.Path, text, b.home)
	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		b.setStatus("Not a directory: %s", target)
		return nil
	}
	return b.navigate(target)
}
