package preview

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestClassifyDecisionOrder(t *testing.T) {
	dir := t.TempDir()
	c := NewClassifier(nil, 0)

	t.Run("deny list wins over everything", func(t *testing.T) {
		p := c.Classify(writeFile(t, dir, ".wget-hsts", []byte("x")), 80, 10)
		assert.Equal(t, Blocked, p.Kind)
		assert.Contains(t, p.Text, ".wget-hsts")
	})

	t.Run("directory", func(t *testing.T) {
		sub := filepath.Join(dir, "sub")
		require.NoError(t, os.Mkdir(sub, 0755))
		p := c.Classify(sub, 80, 10)
		assert.Equal(t, Directory, p.Kind)
		assert.Equal(t, "Directory", p.Text)
	})

	t.Run("image", func(t *testing.T) {
		p := c.Classify(writePNG(t, dir, "red.png", 4, 4), 80, 10)
		require.Equal(t, Image, p.Kind)
		assert.Equal(t, 4, p.Image.Bounds().Dx())
	})

	t.Run("broken image", func(t *testing.T) {
		p := c.Classify(writeFile(t, dir, "broken.jpg", []byte("not a jpeg")), 80, 10)
		assert.Equal(t, ImageError, p.Kind)
		assert.Equal(t, "Could not load image", p.Text)
	})

	t.Run("ico has no decoder", func(t *testing.T) {
		p := c.Classify(writeFile(t, dir, "favicon.ico", []byte{0, 0, 1, 0}), 80, 10)
		assert.Equal(t, ImageError, p.Kind)
	})

	t.Run("binary", func(t *testing.T) {
		p := c.Classify(writeFile(t, dir, "blob.bin", []byte{'a', 0, 'b'}), 80, 10)
		assert.Equal(t, Binary, p.Kind)
	})

	t.Run("text", func(t *testing.T) {
		p := c.Classify(writeFile(t, dir, "notes.txt", []byte("one\ntwo\nthree\n")), 80, 10)
		assert.Equal(t, Text, p.Kind)
		assert.Equal(t, "one\ntwo\nthree", p.Text)
	})

	t.Run("missing", func(t *testing.T) {
		p := c.Classify(filepath.Join(dir, "gone"), 80, 10)
		assert.Equal(t, Unavailable, p.Kind)
		assert.NotEmpty(t, p.Text)
	})
}

func TestClassifyOversized(t *testing.T) {
	dir := t.TempDir()
	c := NewClassifier(nil, 2*1024*1024)

	path := filepath.Join(dir, "big.txt")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(3*1024*1024))
	require.NoError(t, f.Close())

	p := c.Classify(path, 80, 10)
	assert.Equal(t, Oversized, p.Kind)
	assert.Equal(t, int64(3*1024*1024), p.Size)
	assert.Equal(t, "File is too large for preview (3.0 MB). Max size is 2 MB.", p.Text)
}

func TestClassifySizeCheckPrecedesImage(t *testing.T) {
	dir := t.TempDir()
	c := NewClassifier(nil, 10)
	p := c.Classify(writePNG(t, dir, "red.png", 8, 8), 80, 10)
	assert.Equal(t, Oversized, p.Kind)
}

func TestClassifyTextTruncation(t *testing.T) {
	dir := t.TempDir()
	c := NewClassifier(nil, 0)
	long := strings.Repeat("x", 50)
	path := writeFile(t, dir, "long.txt", []byte(long+"\nshort\n"+long+"\n"))

	p := c.Classify(path, 20, 2)
	require.Equal(t, Text, p.Kind)

	lines := strings.Split(p.Text, "\n")
	require.Len(t, lines, 2, "only height lines are kept")
	assert.Equal(t, 20, runewidth.StringWidth(lines[0]))
	assert.True(t, strings.HasSuffix(lines[0], "..."))
	assert.Equal(t, "short", lines[1])
}

func TestClassifyWideRunes(t *testing.T) {
	dir := t.TempDir()
	c := NewClassifier(nil, 0)
	path := writeFile(t, dir, "wide.txt", []byte(strings.Repeat("日本", 10)))

	p := c.Classify(path, 9, 5)
	require.Equal(t, Text, p.Kind)
	assert.LessOrEqual(t, runewidth.StringWidth(p.Text), 9)
}

func TestClassifyNoTrailingNewline(t *testing.T) {
	dir := t.TempDir()
	c := NewClassifier(nil, 0)
	p := c.Classify(writeFile(t, dir, "a.txt", []byte("a\r\nb")), 80, 10)
	assert.Equal(t, "a\nb", p.Text)
}

func TestClassifyEmptyFile(t *testing.T) {
	dir := t.TempDir()
	c := NewClassifier(nil, 0)
	p := c.Classify(writeFile(t, dir, "empty.txt", nil), 80, 10)
	assert.Equal(t, Text, p.Kind)
	assert.Equal(t, "", p.Text)
}

func TestCustomDenyList(t *testing.T) {
	dir := t.TempDir()
	c := NewClassifier([]string{"secret.env"}, 0)

	assert.Equal(t, Blocked, c.Classify(writeFile(t, dir, "secret.env", []byte("k=v")), 80, 10).Kind)
	assert.Equal(t, Text, c.Classify(writeFile(t, dir, ".wget-hsts", []byte("x")), 80, 10).Kind)
}

func TestFitLine(t *testing.T) {
	assert.Equal(t, "abc", FitLine("abc\n", 10))
	assert.Equal(t, "    x", FitLine("\tx", 10))
	assert.Equal(t, "ab...", FitLine("abcdefgh", 5))
	assert.Equal(t, "", FitLine("abc", 0))
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1024 * 1024, "1.0 MB"},
		{300 * 1024 * 1024, "300.0 MB"},
		{1024 * 1024 * 1024, "1.0 GB"},
		{5 * 1024 * 1024 * 1024 / 2, "2.5 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSize(tt.size), "size %d", tt.size)
	}
}

func TestIsImage(t *testing.T) {
	for _, name := range []string{"a.png", "b.JPG", "c.jpeg", "d.gif", "e.bmp", "f.ico", "g.tiff", "h.webp"} {
		assert.True(t, IsImage(name), name)
	}
	assert.False(t, IsImage("i.svg"))
	assert.False(t, IsImage("png"))
}

func TestRenderImage(t *testing.T) {
	dir := t.TempDir()
	img, err := DecodeImage(writePNG(t, dir, "red.png", 4, 4))
	require.NoError(t, err)

	out := RenderImage(img, 2, 1)
	assert.Equal(t, 2, lipgloss.Width(out))
	assert.Equal(t, 1, lipgloss.Height(out))

	assert.Empty(t, RenderImage(nil, 10, 10))
	assert.Empty(t, RenderImage(img, 0, 10))
}

func TestFitBox(t *testing.T) {
	w, h := fitBox(100, 50, 20, 20)
	assert.Equal(t, 20, w)
	assert.Equal(t, 10, h)

	w, h = fitBox(50, 100, 20, 20)
	assert.Equal(t, 10, w)
	assert.Equal(t, 20, h)

	w, h = fitBox(1000, 1, 10, 10)
	assert.Equal(t, 10, w)
	assert.Equal(t, 1, h)
}

func TestHighlight(t *testing.T) {
	assert.Equal(t, "", Highlight("", "main.go"))

	src := "package main\n\nfunc main() {}\n"
	out := Highlight(src, "main.go")
	assert.Contains(t, out, "package")
	assert.NotEqual(t, src, out, "go source should gain color codes")
}
