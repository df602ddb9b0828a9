// Package tui provides a Bubble Tea terminal UI for Trailhead.
package tui

import "strings"

// commandHistory keeps the exploration commands the player typed so the
// up and down keys can recall them. Storage is a fixed ring.
type commandHistory struct {
	ring  []string
	start int // index of the oldest entry
	size  int

	back  int    // 0 = editing the draft, n = n-th newest entry shown
	draft string // line being typed before recall started
}

func newCommandHistory(capacity int) *commandHistory {
	if capacity < 1 {
		capacity = 1
	}
	return &commandHistory{ring: make([]string, capacity)}
}

// record stores input typed while exploring and reports whether it was kept.
// Slash commands and fight input are left out, whitespace is collapsed, and
// a repeat of the newest entry is dropped. Recall always restarts.
func (h *commandHistory) record(input string, exploring bool) bool {
	h.back = 0
	h.draft = ""

	cmd := strings.Join(strings.Fields(input), " ")
	if cmd == "" || !exploring || strings.HasPrefix(cmd, "/") {
		return false
	}
	if h.size > 0 && h.newest(1) == cmd {
		return false
	}

	end := (h.start + h.size) % len(h.ring)
	h.ring[end] = cmd
	if h.size < len(h.ring) {
		h.size++
	} else {
		h.start = (h.start + 1) % len(h.ring)
	}
	return true
}

// newest returns the n-th newest entry, 1 being the latest.
func (h *commandHistory) newest(n int) string {
	return h.ring[(h.start+h.size-n)%len(h.ring)]
}

// older steps back one entry. current is the line in the input box and is
// kept as the draft when recall begins. It stops at the oldest entry.
func (h *commandHistory) older(current string) (string, bool) {
	if h.size == 0 {
		return "", false
	}
	if h.back == 0 {
		h.draft = current
	}
	if h.back < h.size {
		h.back++
	}
	return h.newest(h.back), true
}

// newer steps forward one entry. Stepping past the newest entry gives the
// draft back; false means recall was not active.
func (h *commandHistory) newer() (string, bool) {
	if h.back == 0 {
		return "", false
	}
	h.back--
	if h.back == 0 {
		return h.draft, true
	}
	return h.newest(h.back), true
}

// entries lists the stored commands oldest first.
func (h *commandHistory) entries() []string {
	out := make([]string, 0, h.size)
	for n := h.size; n >= 1; n-- {
		out = append(out, h.newest(n))
	}
	return out
}
