package browser

import (
	"fmt"
	"time"

	"github.com/LFroesch/karu/internal/playback"
)

// playPause starts the selected audio file, or toggles the current track
// when the selection is the same file or not audio at all.
func (b *Browser) playPause() {
	if b.player == nil {
		b.setStatus("No audio player found (install mpv or ffplay)")
		return
	}

	e := b.SelectedEntry()
	isAudio := !e.IsDir && playback.IsAudio(e.Name)
	if b.track != 0 && (!isAudio || e.Path == b.trackPath) {
		b.togglePause()
		return
	}
	if !isAudio {
		b.setStatus("Not an audio file")
		return
	}

	b.stopPlayback()
	h, err := b.player.Play(e.Path)
	if err != nil {
		b.fail(err)
		return
	}
	b.track, b.trackName, b.trackPath = h, e.Name, e.Path
	b.setStatus("Playing %s", e.Name)
}

func (b *Browser) togglePause() {
	var err error
	switch b.player.State(b.track) {
	case playback.Playing:
		err = b.player.Pause(b.track)
	case playback.Paused:
		err = b.player.Resume(b.track)
	default:
		b.clearTrack()
		return
	}
	b.fail(err)
}

func (b *Browser) stopPlayback() {
	if b.player == nil || b.track == 0 {
		return
	}
	b.fail(b.player.Stop(b.track))
	b.clearTrack()
}

func (b *Browser) seek(delta time.Duration) {
	if b.player == nil || b.track == 0 {
		return
	}
	b.fail(b.player.Seek(b.track, delta))
}

func (b *Browser) clearTrack() {
	b.track, b.trackName, b.trackPath = 0, "", ""
}

// Tick is called on every playback tick. It forgets a track whose player
// finished on its own.
func (b *Browser) Tick() {
	if b.player == nil || b.track == 0 {
		return
	}
	if b.player.State(b.track) == playback.Stopped {
		b.setStatus("Finished %s", b.trackName)
		b.clearTrack()
	}
}

// Playing reports whether a track is loaded, paused or not.
func (b *Browser) Playing() bool {
	return b.track != 0
}

// PlaybackStatus renders the loaded track for the status line, or "".
func (b *Browser) PlaybackStatus() string {
	if b.player == nil || b.track == 0 {
		return ""
	}
	state := b.player.State(b.track)
	return fmt.Sprintf("♪ %s %s [%s]", b.trackName, formatClock(b.player.Position(b.track)), state)
}

func formatClock(d time.Duration) string {
	d = d.Round(time.Second)
	m := int(d / time.Minute)
	s := int((d % time.Minute) / time.Second)
	return fmt.Sprintf("%d:%02d", m, s)
}
