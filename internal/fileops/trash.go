package fileops

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/skratchdot/open-golang/open"

	"github.com/LFroesch/karu/internal/errors"
	"github.com/LFroesch/karu/internal/logger"
)

// Trasher moves a path to a recoverable trash location.
type Trasher interface {
	Trash(path string) error
}

// Opener hands a path to the default application without waiting for it.
type Opener interface {
	Open(path string) error
}

// SystemTrash uses the platform's trash facility.
type SystemTrash struct{}

// Trash moves a file or directory to the system trash/recycle bin
func (SystemTrash) Trash(path string) error {
	if _, err := os.Lstat(path); err != nil {
		return errors.IO("trash", path, err)
	}

	cmd, err := trashCommand(path)
	if err != nil {
		return errors.IO("trash", path, err)
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		logger.Error("Trash command failed for %s: %v: %s", path, err, strings.TrimSpace(string(out)))
		return errors.IO("trash", path, err)
	}
	return nil
}

func trashCommand(path string) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin": // macOS
		escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(path)
		script := fmt.Sprintf(`tell application "Finder" to delete POSIX file "%s"`, escaped)
		return exec.Command("osascript", "-e", script), nil

	case "windows":
		escaped := strings.ReplaceAll(path, "'", "''")
		return exec.Command("powershell", "-NoProfile", "-Command", fmt.Sprintf(`Add-Type -AssemblyName Microsoft.VisualBasic; if (Test-Path -LiteralPath '%[1]s' -PathType Container) { [Microsoft.VisualBasic.FileIO.FileSystem]::DeleteDirectory('%[1]s', 'OnlyErrorDialogs', 'SendToRecycleBin') } else { [Microsoft.VisualBasic.FileIO.FileSystem]::DeleteFile('%[1]s', 'OnlyErrorDialogs', 'SendToRecycleBin') }`, escaped)), nil

	default: // Linux and others
		if commandExists("gio") {
			return exec.Command("gio", "trash", "--", path), nil
		}
		if commandExists("trash-put") {
			return exec.Command("trash-put", "--", path), nil
		}
		return nil, fmt.Errorf("trash command not available (install trash-cli or gvfs)")
	}
}

// SystemOpener opens paths with the desktop's default application.
type SystemOpener struct{}

// Open starts the default application for path and returns immediately.
func (SystemOpener) Open(path string) error {
	return errors.IO("open", path, open.Start(path))
}

// commandExists checks if a command is available in PATH
func commandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}
