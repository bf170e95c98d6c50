// Package preview decides how the selected entry is shown in the preview
// panel. Classification is read-only and safe to recompute on every frame.
package preview

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/LFroesch/karu/internal/errors"
)

// Kind is the outcome of classifying an entry.
type Kind int

const (
	Unavailable Kind = iota
	Blocked
	Directory
	Oversized
	Image
	ImageError
	Binary
	Text
)

func (k Kind) String() string {
	switch k {
	case Blocked:
		return "blocked"
	case Directory:
		return "directory"
	case Oversized:
		return "oversized"
	case Image:
		return "image"
	case ImageError:
		return "image error"
	case Binary:
		return "binary"
	case Text:
		return "text"
	default:
		return "unavailable"
	}
}

const (
	// DefaultMaxSize is the largest file that is previewed at all.
	DefaultMaxSize int64 = 300 * 1024 * 1024

	sniffSize    = 1024
	maxLineBytes = 4096
	tabWidth     = 4
	ellipsis     = "..."
)

// DefaultDenyList holds names that are never previewed.
var DefaultDenyList = []string{".wget-hsts"}

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".ico": true, ".tiff": true, ".webp": true,
}

// Preview is what the view layer renders for one entry. Text is set for
// every kind except Image; Image is set only for Image.
type Preview struct {
	Kind  Kind
	Text  string
	Image image.Image
	Size  int64
}

// Classifier holds the limits used by Classify.
type Classifier struct {
	DenyList []string
	MaxSize  int64
}

// NewClassifier returns a classifier, falling back to the defaults for a nil
// deny list or a non-positive size.
func NewClassifier(deny []string, maxSize int64) *Classifier {
	if deny == nil {
		deny = DefaultDenyList
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Classifier{DenyList: deny, MaxSize: maxSize}
}

// Classify inspects path and returns the first matching outcome: blocked
// name, directory, oversized, image, binary, then text. Text keeps the first
// height lines, each cut to width display columns.
func (c *Classifier) Classify(path string, width, height int) Preview {
	name := filepath.Base(path)
	for _, denied := range c.DenyList {
		if name == denied {
			return Preview{Kind: Blocked, Text: fmt.Sprintf("'%s' file is blocked from preview.", name)}
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return unavailable(path, err)
	}
	if info.IsDir() {
		return Preview{Kind: Directory, Text: "Directory"}
	}

	size := info.Size()
	if size > c.MaxSize {
		return Preview{
			Kind: Oversized,
			Size: size,
			Text: fmt.Sprintf("File is too large for preview (%s). Max size is %d MB.",
				FormatSize(size), c.MaxSize/(1024*1024)),
		}
	}

	if IsImage(name) {
		img, err := DecodeImage(path)
		if err != nil {
			return Preview{Kind: ImageError, Size: size, Text: "Could not load image"}
		}
		return Preview{Kind: Image, Size: size, Image: img}
	}

	f, err := os.Open(path)
	if err != nil {
		return unavailable(path, err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	head, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return unavailable(path, err)
	}
	if bytes.IndexByte(head, 0) >= 0 {
		return Preview{Kind: Binary, Size: size, Text: "Binary file, no preview available."}
	}

	lines, err := readLines(br, height, width)
	if err != nil {
		return unavailable(path, err)
	}
	return Preview{Kind: Text, Size: size, Text: strings.Join(lines, "\n")}
}

func unavailable(path string, err error) Preview {
	return Preview{Kind: Unavailable, Text: errors.Unavailable(path, err).Error()}
}

// IsImage reports whether name has one of the raster image extensions.
func IsImage(name string) bool {
	return imageExts[strings.ToLower(filepath.Ext(name))]
}

// readLines returns at most n lines from r. Each line is capped in bytes
// before it is fitted to width, so a huge single-line file stays cheap.
func readLines(r *bufio.Reader, n, width int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	lines := make([]string, 0, n)
	var cur []byte
	for len(lines) < n {
		chunk, err := r.ReadSlice('\n')
		if room := maxLineBytes - len(cur); room > 0 {
			cur = append(cur, chunk[:min(len(chunk), room)]...)
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		if err != nil && err != io.EOF {
			return lines, err
		}
		if err == nil || len(cur) > 0 {
			lines = append(lines, FitLine(string(cur), width))
		}
		cur = cur[:0]
		if err == io.EOF {
			break
		}
	}
	return lines, nil
}

// FitLine strips the line ending, expands tabs and cuts s to width display
// columns, ending in "..." when something was dropped.
func FitLine(s string, width int) string {
	s = strings.TrimRight(s, "\r\n")
	s = strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, ellipsis)
}

// FormatSize renders a byte count as B, KB, MB or GB with one decimal above
// bytes.
func FormatSize(size int64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)
	switch {
	case size < kb:
		return fmt.Sprintf("%d B", size)
	case size < mb:
		return fmt.Sprintf("%.1f KB", float64(size)/kb)
	case size < gb:
		return fmt.Sprintf("%.1f MB", float64(size)/mb)
	default:
		return fmt.Sprintf("%.1f GB", float64(size)/gb)
	}
}
