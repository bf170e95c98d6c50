// Package listing reads and orders the children of one directory.
package listing

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/LFroesch/karu/internal/errors"
	"github.com/LFroesch/karu/internal/logger"
)

// ParentName is the synthetic entry that navigates to the parent directory.
const ParentName = ".."

// Entry is one child shown in the file list.
type Entry struct {
	Name      string
	Path      string
	IsDir     bool
	IsHidden  bool
	IsSymlink bool
	Size      int64
}

// IsParent reports whether e is the synthetic ".." entry.
func (e Entry) IsParent() bool {
	return e.Name == ParentName
}

// Listing is the ordered view of one directory. It always starts with the
// ".." entry, which at the filesystem root points at the root itself.
type Listing []Entry

// group orders entries: hidden dirs, dirs, hidden files, files.
func (e Entry) group() int {
	switch {
	case e.IsDir && e.IsHidden:
		return 0
	case e.IsDir:
		return 1
	case e.IsHidden:
		return 2
	default:
		return 3
	}
}

// List reads dir and returns its ordered listing. Children whose metadata
// cannot be read are skipped; only a failure to read dir itself is an error.
func List(dir string, showHidden bool) (Listing, error) {
	dir = filepath.Clean(dir)
	dirEntries, err := os.ReadDir(dir)
	if err != nil && len(dirEntries) == 0 {
		return nil, errors.IO("list", dir, err)
	}
	if err != nil {
		logger.Warn("Partial read of %s: %v", dir, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		if name == "." || name == ".." {
			continue
		}
		hidden := strings.HasPrefix(name, ".")
		if hidden && !showHidden {
			continue
		}

		// Lstat info, not following the link
		linfo, err := de.Info()
		if err != nil {
			continue
		}

		item := Entry{
			Name:     name,
			Path:     filepath.Join(dir, name),
			IsHidden: hidden,
			IsDir:    linfo.IsDir(),
			Size:     linfo.Size(),
		}

		if linfo.Mode()&os.ModeSymlink != 0 {
			item.IsSymlink = true
			// Dangling links and loops fall back to plain files
			if target, err := os.Stat(item.Path); err == nil {
				item.IsDir = target.IsDir()
				item.Size = target.Size()
			} else {
				item.IsDir = false
			}
		}
		if item.IsDir {
			item.Size = 0
		}

		entries = append(entries, item)
	}

	sortEntries(entries)

	out := make(Listing, 0, len(entries)+1)
	out = append(out, Entry{
		Name:  ParentName,
		Path:  filepath.Dir(dir),
		IsDir: true,
	})
	return append(out, entries...), nil
}

func sortEntries(entries []Entry) {
	fold := cases.Fold()
	sort.SliceStable(entries, func(i, j int) bool {
		gi, gj := entries[i].group(), entries[j].group()
		if gi != gj {
			return gi < gj
		}
		fi, fj := fold.String(entries[i].Name), fold.String(entries[j].Name)
		if fi != fj {
			return fi < fj
		}
		return entries[i].Name < entries[j].Name
	})
}

// Filter keeps entries whose name contains substr (case-sensitive),
// preserving order. The result may not start with "..".
func Filter(l Listing, substr string) Listing {
	out := make(Listing, 0, len(l))
	for _, e := range l {
		if strings.Contains(e.Name, substr) {
			out = append(out, e)
		}
	}
	return out
}

// Names returns the entry names in order.
func (l Listing) Names() []string {
	names := make([]string, len(l))
	for i, e := range l {
		names[i] = e.Name
	}
	return names
}

// Index returns the position of the entry called name, or -1.
func (l Listing) Index(name string) int {
	for i, e := range l {
		if e.Name == name {
			return i
		}
	}
	return -1
}
