package browser

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LFroesch/karu/internal/errors"
	"github.com/LFroesch/karu/internal/playback"
)

type fakePlayer struct {
	next    playback.Handle
	played  []string
	states  map[playback.Handle]playback.State
	seeks   []time.Duration
	playErr error
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{states: make(map[playback.Handle]playback.State)}
}

func (p *fakePlayer) Play(path string) (playback.Handle, error) {
	if p.playErr != nil {
		return 0, errors.IO("play", path, p.playErr)
	}
	p.next++
	p.played = append(p.played, path)
	p.states[p.next] = playback.Playing
	return p.next, nil
}

func (p *fakePlayer) Pause(h playback.Handle) error {
	p.states[h] = playback.Paused
	return nil
}

func (p *fakePlayer) Resume(h playback.Handle) error {
	p.states[h] = playback.Playing
	return nil
}

func (p *fakePlayer) Stop(h playback.Handle) error {
	delete(p.states, h)
	return nil
}

func (p *fakePlayer) Seek(_ playback.Handle, d time.Duration) error {
	p.seeks = append(p.seeks, d)
	return nil
}

func (p *fakePlayer) Position(playback.Handle) time.Duration { return 75 * time.Second }

func (p *fakePlayer) State(h playback.Handle) playback.State {
	return p.states[h]
}

func newPlayFixture(t *testing.T) (*fixture, *fakePlayer) {
	t.Helper()
	f := newFixture(t)
	p := newFakePlayer()
	f.b.player = p
	f.writeDoc(t, "a.mp3", "ID3")
	f.writeDoc(t, "b.ogg", "OggS")
	return f, p
}

func TestPlayPauseResume(t *testing.T) {
	f, p := newPlayFixture(t)
	f.selectName(t, "a.mp3")

	f.press("space")
	require.True(t, f.b.Playing())
	assert.Equal(t, []string{filepath.Join(f.root, "a.mp3")}, p.played)
	assert.Equal(t, playback.Playing, p.State(f.b.track))

	f.press("space")
	assert.Equal(t, playback.Paused, p.State(f.b.track))
	assert.Contains(t, f.b.PlaybackStatus(), "paused")

	f.press("space")
	assert.Equal(t, playback.Playing, p.State(f.b.track))
	assert.Equal(t, "♪ a.mp3 1:15 [playing]", f.b.PlaybackStatus())
}

func TestPlayOtherTrackReplacesCurrent(t *testing.T) {
	f, p := newPlayFixture(t)
	f.selectName(t, "a.mp3")
	f.press("space")
	first := f.b.track

	f.selectName(t, "b.ogg")
	f.press("space")

	assert.Len(t, p.played, 2)
	assert.NotEqual(t, first, f.b.track)
	assert.Equal(t, playback.Stopped, p.State(first))
}

func TestSpaceOnNonAudioTogglesCurrentTrack(t *testing.T) {
	f, p := newPlayFixture(t)
	f.selectName(t, "a.mp3")
	f.press("space")

	f.selectName(t, "beta.txt")
	f.press("space")
	assert.Equal(t, playback.Paused, p.State(f.b.track))
	assert.Len(t, p.played, 1)
}

func TestSpaceOnNonAudioWithoutTrack(t *testing.T) {
	f, p := newPlayFixture(t)
	f.selectName(t, "beta.txt")
	f.press("space")
	assert.False(t, f.b.Playing())
	assert.Empty(t, p.played)
	assert.Equal(t, "Not an audio file", f.b.Status)
}

func TestSeekAndStop(t *testing.T) {
	f, p := newPlayFixture(t)
	f.selectName(t, "a.mp3")
	f.press("space", "]", "[", "[")

	assert.Equal(t, []time.Duration{5 * time.Second, -5 * time.Second, -5 * time.Second}, p.seeks)

	h := f.b.track
	f.press("s")
	assert.False(t, f.b.Playing())
	assert.Equal(t, playback.Stopped, p.State(h))
	assert.Empty(t, f.b.PlaybackStatus())

	// Seeking with nothing loaded is ignored
	f.press("]")
	assert.Len(t, p.seeks, 3)
}

func TestTickForgetsFinishedTrack(t *testing.T) {
	f, p := newPlayFixture(t)
	f.selectName(t, "a.mp3")
	f.press("space")

	f.b.Tick()
	assert.True(t, f.b.Playing())

	p.states[f.b.track] = playback.Stopped
	f.b.Tick()
	assert.False(t, f.b.Playing())
	assert.Equal(t, "Finished a.mp3", f.b.Status)
}

func TestPlayFailureSetsError(t *testing.T) {
	f, p := newPlayFixture(t)
	p.playErr = errors.New("no device")
	f.selectName(t, "a.mp3")

	f.press("space")
	assert.Equal(t, errors.IOFailure, errors.KindOf(f.b.Err))
	assert.False(t, f.b.Playing())
}

func TestNoPlayer(t *testing.T) {
	f := newFixture(t)
	f.writeDoc(t, "a.mp3", "ID3")

	f.press("space")
	assert.Contains(t, f.b.Status, "No audio player")
	assert.NoError(t, f.b.Err)
}

func TestQuitStopsPlayback(t *testing.T) {
	f, p := newPlayFixture(t)
	f.selectName(t, "a.mp3")
	f.press("space")
	h := f.b.track

	assert.True(t, isQuit(f.press("q")))
	assert.Equal(t, playback.Stopped, p.State(h))
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "0:00", formatClock(0))
	assert.Equal(t, "1:05", formatClock(65*time.Second))
	assert.Equal(t, "61:01", formatClock(time.Hour+61*time.Second))
}
