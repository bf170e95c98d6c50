package playback

import (
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LFroesch/karu/internal/errors"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// sleepPlayer stands in for a real audio player with a long-running process.
func sleepPlayer(t *testing.T, seekable bool) (*ProcessPlayer, *fakeClock) {
	t.Helper()
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}
	p := NewProcessPlayer(Backend{
		Name:     "sleep",
		Args:     func(string, time.Duration) []string { return []string{"30"} },
		Seekable: seekable,
	})
	clock := &fakeClock{t: time.Unix(1000, 0)}
	p.now = clock.now
	return p, clock
}

func TestPlayPauseResumeStop(t *testing.T) {
	p, clock := sleepPlayer(t, true)

	h, err := p.Play("song.mp3")
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Stop(h) })
	assert.NotZero(t, h)
	assert.Equal(t, Playing, p.State(h))

	clock.advance(3 * time.Second)
	assert.Equal(t, 3*time.Second, p.Position(h))

	require.NoError(t, p.Pause(h))
	assert.Equal(t, Paused, p.State(h))
	clock.advance(10 * time.Second)
	assert.Equal(t, 3*time.Second, p.Position(h), "paused position does not advance")

	require.NoError(t, p.Resume(h))
	assert.Equal(t, Playing, p.State(h))
	clock.advance(time.Second)
	assert.Equal(t, 4*time.Second, p.Position(h))

	require.NoError(t, p.Stop(h))
	assert.Equal(t, Stopped, p.State(h))
	assert.Zero(t, p.Position(h))
}

func TestSeek(t *testing.T) {
	p, clock := sleepPlayer(t, true)

	h, err := p.Play("song.mp3")
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Stop(h) })

	clock.advance(2 * time.Second)
	require.NoError(t, p.Seek(h, 5*time.Second))
	assert.Equal(t, 7*time.Second, p.Position(h))
	assert.Equal(t, Playing, p.State(h))

	require.NoError(t, p.Seek(h, -time.Minute))
	assert.Zero(t, p.Position(h), "seek clamps at zero")

	require.NoError(t, p.Pause(h))
	require.NoError(t, p.Seek(h, 4*time.Second))
	assert.Equal(t, Paused, p.State(h))
	assert.Equal(t, 4*time.Second, p.Position(h))
}

func TestUnseekableBackend(t *testing.T) {
	p, _ := sleepPlayer(t, false)

	h, err := p.Play("song.mp3")
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Stop(h) })

	assert.Equal(t, errors.InvalidInput, errors.KindOf(p.Seek(h, time.Second)))
	assert.Equal(t, errors.InvalidInput, errors.KindOf(p.Pause(h)))
	assert.Equal(t, Playing, p.State(h))
}

func TestUnknownHandle(t *testing.T) {
	p := NewProcessPlayer(Backends[0])

	assert.Equal(t, errors.InvalidInput, errors.KindOf(p.Pause(42)))
	assert.Equal(t, errors.InvalidInput, errors.KindOf(p.Resume(42)))
	assert.Equal(t, errors.InvalidInput, errors.KindOf(p.Stop(42)))
	assert.Equal(t, errors.InvalidInput, errors.KindOf(p.Seek(42, time.Second)))
	assert.Zero(t, p.Position(42))
	assert.Equal(t, Stopped, p.State(42))
}

func TestMissingBinary(t *testing.T) {
	p := NewProcessPlayer(Backend{
		Name: "karu-no-such-player",
		Args: func(path string, _ time.Duration) []string { return []string{path} },
	})
	_, err := p.Play("song.mp3")
	assert.Equal(t, errors.IOFailure, errors.KindOf(err))
}

func TestProcessExitStopsTrack(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}
	p := NewProcessPlayer(Backend{
		Name: "true",
		Args: func(string, time.Duration) []string { return nil },
	})
	h, err := p.Play("short.wav")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return p.State(h) == Stopped
	}, 5*time.Second, 20*time.Millisecond)
}

func TestBackendArgs(t *testing.T) {
	args := Backends[0].Args("/m/a.mp3", 90*time.Second)
	assert.Contains(t, args, "--start=90.0")
	assert.Equal(t, "/m/a.mp3", args[len(args)-1])

	args = Backends[1].Args("/m/a.mp3", 1500*time.Millisecond)
	assert.Contains(t, args, "1.5")
}

func TestIsAudio(t *testing.T) {
	assert.True(t, IsAudio("track.MP3"))
	assert.True(t, IsAudio("a.flac"))
	assert.False(t, IsAudio("a.txt"))
	assert.False(t, IsAudio("mp3"))
}
