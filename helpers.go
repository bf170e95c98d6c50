package main

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/LFroesch/karu/internal/listing"
)

const (
	colorAccent   = lipgloss.Color("99")
	colorPurple   = lipgloss.Color("105")
	colorBar      = lipgloss.Color("235")
	colorDim      = lipgloss.Color("240")
	colorText     = lipgloss.Color("252")
	colorWarn     = lipgloss.Color("214")
	colorError    = lipgloss.Color("196")
	colorSelect   = lipgloss.Color("57")
	colorOnSelect = lipgloss.Color("230")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			Background(colorBar).
			Padding(0, 1)

	barStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorBar)

	controlStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorBar).
			Padding(0, 1)

	controlDisabledStyle = controlStyle.
				Foreground(colorDim)

	controlFocusedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorOnSelect).
				Background(colorSelect).
				Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorDim)

	panelFocusedStyle = panelStyle.
				BorderForeground(colorPurple)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPurple)

	rowStyle = lipgloss.NewStyle().
			Foreground(colorText)

	rowSelectedStyle = lipgloss.NewStyle().
				Background(colorSelect).
				Foreground(colorOnSelect)

	// Selection marker when another panel has focus.
	rowInactiveStyle = lipgloss.NewStyle().
				Background(colorDim).
				Foreground(colorText)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Italic(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(colorDim).
			Padding(0, 1)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPurple).
			Padding(1, 2)

	dialogTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorPurple)

	errorDialogStyle = dialogStyle.
				BorderForeground(colorError)

	errorTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorError)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

// fileIcon picks the list icon for e from its kind and extension.
func fileIcon(e listing.Entry) string {
	switch {
	case e.IsParent():
		return "⬆️"
	case e.IsDir:
		return "📁"
	case e.IsSymlink:
		return "🔗"
	}

	switch strings.ToLower(filepath.Ext(e.Name)) {
	case ".go":
		return "🐹"
	case ".js", ".ts", ".jsx", ".tsx":
		return "📜"
	case ".py":
		return "🐍"
	case ".rs":
		return "🦀"
	case ".c", ".cpp", ".h":
		return "⚙️"
	case ".html", ".htm", ".css":
		return "🌐"
	case ".json", ".yaml", ".yml", ".toml":
		return "📋"
	case ".md", ".markdown":
		return "📝"
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp", ".tif", ".tiff", ".ico", ".svg":
		return "🖼️"
	case ".mp4", ".mkv", ".mov", ".avi":
		return "🎬"
	case ".mp3", ".wav", ".flac", ".ogg", ".m4a", ".aac", ".opus":
		return "🎵"
	case ".zip", ".tar", ".gz", ".rar", ".7z":
		return "📦"
	case ".pdf":
		return "📕"
	case ".sh", ".bash", ".zsh":
		return "🖥️"
	default:
		return "📄"
	}
}

// sizeStyle colors a file size by magnitude.
func sizeStyle(size int64) lipgloss.Style {
	const (
		kb = 1024
		mb = 1024 * kb
	)
	switch {
	case size < kb:
		return lipgloss.NewStyle().Foreground(colorDim)
	case size < mb:
		return lipgloss.NewStyle().Foreground(colorText)
	case size < 100*mb:
		return lipgloss.NewStyle().Foreground(colorWarn).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(colorError).Bold(true)
	}
}

// listWindow returns the first visible row so that selected stays inside a
// window of rows lines.
func listWindow(selected, total, rows int) int {
	if rows <= 0 || total <= rows || selected < rows {
		return 0
	}
	start := selected - rows + 1
	if start > total-rows {
		start = total - rows
	}
	return start
}
