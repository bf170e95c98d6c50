// Package playback plays audio files through an external command-line
// player. The browser only ever holds a Handle.
package playback

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/LFroesch/karu/internal/errors"
	"github.com/LFroesch/karu/internal/logger"
)

// Handle identifies one playing track. The zero Handle is never issued.
type Handle uint64

// State of a track.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// Player is the playback service used by the browser.
type Player interface {
	Play(path string) (Handle, error)
	Pause(h Handle) error
	Resume(h Handle) error
	Stop(h Handle) error
	Seek(h Handle, delta time.Duration) error
	Position(h Handle) time.Duration
	State(h Handle) State
}

var audioExts = map[string]bool{
	".mp3": true, ".wav": true, ".flac": true, ".ogg": true,
	".m4a": true, ".aac": true, ".opus": true,
}

// IsAudio reports whether name looks like an audio file.
func IsAudio(name string) bool {
	return audioExts[strings.ToLower(filepath.Ext(name))]
}

// Backend describes how to launch one external player.
type Backend struct {
	Name string
	// Args builds the argument list starting at offset.
	Args func(path string, offset time.Duration) []string
	// Seekable is false when the player cannot start mid-track.
	Seekable bool
}

func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 1, 64)
}

// Backends lists the supported players in order of preference.
var Backends = []Backend{
	{
		Name: "mpv",
		Args: func(path string, offset time.Duration) []string {
			return []string{"--no-video", "--really-quiet", "--start=" + seconds(offset), "--", path}
		},
		Seekable: true,
	},
	{
		Name: "ffplay",
		Args: func(path string, offset time.Duration) []string {
			return []string{"-nodisp", "-autoexit", "-loglevel", "quiet", "-ss", seconds(offset), path}
		},
		Seekable: true,
	},
	{
		Name: "afplay",
		Args: func(path string, _ time.Duration) []string {
			return []string{path}
		},
	},
}

// DetectBackend returns the first backend found in PATH.
func DetectBackend() (Backend, bool) {
	for _, b := range Backends {
		if _, err := exec.LookPath(b.Name); err == nil {
			return b, true
		}
	}
	return Backend{}, false
}

type track struct {
	path    string
	cmd     *exec.Cmd
	state   State
	offset  time.Duration // position when the current process started
	started time.Time
	exited  bool
}

// ProcessPlayer runs one external process per playing track. Pausing kills
// the process and remembers the position; resuming and seeking start a new
// process at that position.
type ProcessPlayer struct {
	backend Backend
	now     func() time.Time

	mu     sync.Mutex
	next   Handle
	tracks map[Handle]*track
}

// NewProcessPlayer returns a player using backend.
func NewProcessPlayer(backend Backend) *ProcessPlayer {
	return &ProcessPlayer{
		backend: backend,
		now:     time.Now,
		tracks:  make(map[Handle]*track),
	}
}

// Play starts path from the beginning.
func (p *ProcessPlayer) Play(path string) (Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	t := &track{path: path}
	if err := p.start(t); err != nil {
		return 0, err
	}
	p.next++
	p.tracks[p.next] = t
	logger.Debug("playback: %s started %s (handle %d)", p.backend.Name, path, p.next)
	return p.next, nil
}

// Pause stops the process and keeps the position.
func (p *ProcessPlayer) Pause(h Handle) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	t, err := p.lookup(h)
	if err != nil {
		return err
	}
	if t.state != Playing {
		return nil
	}
	if !p.backend.Seekable {
		return errors.Invalid("pause", "%s cannot resume mid-track", p.backend.Name)
	}
	t.offset = p.position(t)
	p.kill(t)
	t.state = Paused
	return nil
}

// Resume restarts a paused track where it left off.
func (p *ProcessPlayer) Resume(h Handle) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	t, err := p.lookup(h)
	if err != nil {
		return err
	}
	if t.state != Paused {
		return nil
	}
	return p.start(t)
}

// Stop ends playback and forgets the handle.
func (p *ProcessPlayer) Stop(h Handle) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	t, err := p.lookup(h)
	if err != nil {
		return err
	}
	p.kill(t)
	t.state = Stopped
	delete(p.tracks, h)
	return nil
}

// Seek moves the position by delta, clamped at zero. A paused track stays
// paused at the new position.
func (p *ProcessPlayer) Seek(h Handle, delta time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	t, err := p.lookup(h)
	if err != nil {
		return err
	}
	if !p.backend.Seekable {
		return errors.Invalid("seek", "%s cannot seek", p.backend.Name)
	}

	pos := max(p.position(t)+delta, 0)
	if t.state == Paused {
		t.offset = pos
		return nil
	}
	p.kill(t)
	t.offset = pos
	return p.start(t)
}

// Position returns the elapsed playback time, or zero for an unknown handle.
func (p *ProcessPlayer) Position(h Handle) time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	t, ok := p.tracks[h]
	if !ok {
		return 0
	}
	return p.position(t)
}

// State reports Stopped once the player process has exited on its own.
func (p *ProcessPlayer) State(h Handle) State {
	p.mu.Lock()
	defer p.mu.Unlock()

	t, ok := p.tracks[h]
	if !ok {
		return Stopped
	}
	if t.state == Playing && t.exited {
		return Stopped
	}
	return t.state
}

func (p *ProcessPlayer) lookup(h Handle) (*track, error) {
	t, ok := p.tracks[h]
	if !ok {
		return nil, errors.Invalid("playback", "unknown handle %d", h)
	}
	return t, nil
}

func (p *ProcessPlayer) position(t *track) time.Duration {
	if t.state != Playing {
		return t.offset
	}
	return t.offset + p.now().Sub(t.started)
}

// start launches the backend at t.offset. Must hold mu.
func (p *ProcessPlayer) start(t *track) error {
	cmd := exec.Command(p.backend.Name, p.backend.Args(t.path, t.offset)...)
	if err := cmd.Start(); err != nil {
		return errors.IO("play", t.path, fmt.Errorf("%s: %w", p.backend.Name, err))
	}
	t.cmd = cmd
	t.state = Playing
	t.started = p.now()
	t.exited = false

	go func() {
		err := cmd.Wait()
		p.mu.Lock()
		defer p.mu.Unlock()
		// A newer process may have replaced this one.
		if t.cmd == cmd {
			t.exited = true
		}
		if err != nil && t.cmd == cmd && t.state == Playing {
			logger.Warn("playback: %s exited for %s: %v", p.backend.Name, t.path, err)
		}
	}()
	return nil
}

// kill ends the current process, if any. Must hold mu.
func (p *ProcessPlayer) kill(t *track) {
	if t.cmd == nil || t.cmd.Process == nil || t.exited {
		t.cmd = nil
		return
	}
	if err := t.cmd.Process.Kill(); err != nil {
		logger.Warn("playback: kill %s: %v", t.path, err)
	}
	t.cmd = nil
}
