package fileops

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/LFroesch/karu/internal/errors"
)

// Clipboard holds one pending copy or cut source.
type Clipboard struct {
	Path string
	Cut  bool
}

// Paste copies the clipboard source into dir, keeping its base name. A
// directory source is copied shallowly: its files are copied and its
// subdirectories are created empty. A cut source is removed permanently
// once the copy succeeded.
func Paste(dir string, cb Clipboard) error {
	srcInfo, err := os.Stat(cb.Path)
	if err != nil {
		return errors.IO("paste", cb.Path, err)
	}

	dst := filepath.Join(dir, filepath.Base(cb.Path))
	if srcInfo.IsDir() && within(dir, cb.Path) {
		return errors.IO("paste", dst, fmt.Errorf("cannot paste %s into itself", filepath.Base(cb.Path)))
	}
	if _, err := os.Lstat(dst); err == nil {
		return errors.IO("paste", dst, os.ErrExist)
	}

	if srcInfo.IsDir() {
		err = copyDirShallow(cb.Path, dst, srcInfo.Mode().Perm())
	} else {
		err = copyFile(cb.Path, dst, srcInfo.Mode().Perm())
	}
	if err != nil {
		return errors.IO("paste", dst, err)
	}

	if cb.Cut {
		if err := os.RemoveAll(cb.Path); err != nil {
			return errors.IO("remove", cb.Path, err)
		}
	}
	return nil
}

// within reports whether path is root or lies below it.
func within(path, root string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// ensureFree fails when target exists and is not the same file as src.
func ensureFree(op, src, target string) error {
	targetInfo, err := os.Lstat(target)
	if err != nil {
		return nil
	}
	if srcInfo, err := os.Lstat(src); err == nil && os.SameFile(srcInfo, targetInfo) {
		return nil
	}
	return errors.IO(op, target, os.ErrExist)
}

// copyFile copies a single file
func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// copyDirShallow copies the direct children of src only. Nested directories
// are recreated empty; a deep copy is a separate feature.
func copyDirShallow(src, dst string, perm os.FileMode) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dst, perm|0700); err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		info, err := os.Stat(srcPath)
		if err != nil {
			return err
		}
		if info.IsDir() {
			if err := os.Mkdir(dstPath, info.Mode().Perm()|0700); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(srcPath, dstPath, info.Mode().Perm()); err != nil {
			return err
		}
	}

	return nil
}

// Rename renames dir/oldName to dir/newName. An unchanged name succeeds
// without touching the filesystem.
func Rename(dir, oldName, newName string) error {
	if newName == "" {
		return errors.Invalid("rename", "empty name")
	}
	oldPath := filepath.Join(dir, oldName)
	newPath := filepath.Join(dir, newName)
	if oldPath == newPath {
		if _, err := os.Lstat(oldPath); err != nil {
			return errors.IO("rename", oldPath, err)
		}
		return nil
	}
	if err := ensureFree("rename", oldPath, newPath); err != nil {
		return err
	}
	return errors.IO("rename", oldPath, os.Rename(oldPath, newPath))
}

// Move renames dir/name to dest. A relative dest is resolved against dir and
// a leading ~ is expanded with home. When dest is an existing directory the
// entry is moved into it.
func Move(dir, name, dest, home string) error {
	if strings.TrimSpace(dest) == "" {
		return errors.Invalid("move", "empty destination")
	}
	src := filepath.Join(dir, name)
	target := Resolve(dir, dest, home)

	if info, err := os.Stat(target); err == nil && info.IsDir() {
		target = filepath.Join(target, name)
	}
	if target == src {
		return nil
	}
	if err := ensureFree("move", src, target); err != nil {
		return err
	}
	return errors.IO("move", src, os.Rename(src, target))
}

// CreateFile creates a new empty file. A name ending in a path separator
// creates the directory chain instead.
func CreateFile(dir, name string) error {
	if name == "" {
		return errors.Invalid("create", "empty name")
	}
	if strings.HasSuffix(name, "/") || strings.HasSuffix(name, string(filepath.Separator)) {
		return CreateDir(dir, name)
	}

	path := filepath.Join(dir, name)
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return errors.IO("create", path, err)
	}
	return errors.IO("create", path, file.Close())
}

// CreateDir creates a directory and any missing parents.
func CreateDir(dir, name string) error {
	if name == "" {
		return errors.Invalid("mkdir", "empty name")
	}
	path := filepath.Join(dir, name)
	return errors.IO("mkdir", path, os.MkdirAll(path, 0755))
}

// WriteFile replaces the content of an existing file, keeping its mode.
func WriteFile(path, content string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.IO("save", path, err)
	}
	if info.IsDir() {
		return errors.IO("save", path, fmt.Errorf("is a directory"))
	}
	return errors.IO("save", path, os.WriteFile(path, []byte(content), info.Mode().Perm()))
}

// Resolve turns user input into an absolute path: ~ expands to home and
// relative paths are joined to dir.
func Resolve(dir, input, home string) string {
	p := ExpandHome(strings.TrimSpace(input), home)
	if !filepath.IsAbs(p) {
		p = filepath.Join(dir, p)
	}
	return filepath.Clean(p)
}

// ExpandHome replaces a leading ~ with home.
func ExpandHome(p, home string) string {
	if home == "" {
		return p
	}
	if p == "~" {
		return home
	}
	if strings.HasPrefix(p, "~/") || strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		return filepath.Join(home, p[2:])
	}
	return p
}
