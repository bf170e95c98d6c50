// Package history tracks visited directories for back/forward navigation.
package history

// History is an ordered list of visited paths and a cursor into it.
// The zero value is an empty history ready to use.
type History struct {
	paths []string
	index int
}

// New returns a history seeded with start.
func New(start string) *History {
	h := &History{}
	h.Push(start)
	return h
}

// Push records path as the newest entry. Forward history past the current
// index is discarded. Pushing the current path again does nothing.
func (h *History) Push(path string) {
	if len(h.paths) > 0 && h.paths[h.index] == path {
		return
	}

	// Truncate forward history if we're not at the end
	if len(h.paths) > 0 && h.index < len(h.paths)-1 {
		h.paths = h.paths[:h.index+1]
	}

	h.paths = append(h.paths, path)
	h.index = len(h.paths) - 1
}

// Back moves one step back and returns the path there.
func (h *History) Back() (string, bool) {
	if h.index == 0 || len(h.paths) == 0 {
		return "", false
	}
	h.index--
	return h.paths[h.index], true
}

// Forward moves one step forward and returns the path there.
func (h *History) Forward() (string, bool) {
	if h.index >= len(h.paths)-1 {
		return "", false
	}
	h.index++
	return h.paths[h.index], true
}

// Current returns the path at the cursor, or "" for an empty history.
func (h *History) Current() string {
	if len(h.paths) == 0 {
		return ""
	}
	return h.paths[h.index]
}

func (h *History) Len() int {
	return len(h.paths)
}

func (h *History) CanBack() bool {
	return h.index > 0
}

func (h *History) CanForward() bool {
	return h.index < len(h.paths)-1
}
