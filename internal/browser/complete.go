package browser

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/LFroesch/karu/internal/fileops"
)

// completeAddress replaces the last path segment of the address buffer with
// the best fuzzy match among the subdirectories of the segment's parent.
func (b *Browser) completeAddress() {
	value := b.Mode.Input.Value()
	cut := strings.LastIndexAny(value, "/"+string(filepath.Separator))
	parent, partial := value[:cut+1], value[cut+1:]

	dir := b.Path
	if parent != "" {
		dir = fileops.Resolve(b.Path, parent, b.home)
	}
	names := subdirs(dir)
	if len(names) == 0 {
		b.setStatus("No directories to complete")
		return
	}

	var best string
	if partial == "" {
		if len(names) != 1 {
			b.setStatus("%d directories", len(names))
			return
		}
		best = names[0]
	} else {
		matches := fuzzy.Find(partial, names)
		if len(matches) == 0 {
			b.setStatus("No match for %q", partial)
			return
		}
		best = matches[0].Str
	}

	b.Mode.Input.SetValue(parent + best + string(filepath.Separator))
	b.Mode.Input.CursorEnd()
}

// subdirs returns the names of directories (and links to directories) in
// dir, hidden ones included.
func subdirs(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
			continue
		}
		if e.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(filepath.Join(dir, e.Name())); err == nil && info.IsDir() {
				names = append(names, e.Name())
			}
		}
	}
	return names
}
