package store

import "github.com/terraincognita07/cyclia/internal/models"

// MaxHistoryDepth bounds the undo stack; the oldest snapshot is evicted
// when a push would exceed it.
const MaxHistoryDepth = 50

// stateSnapshot is a deep copy of the three mutable collections, taken
// immediately before a mutation. Snapshots live only in memory and are
// never persisted.
type stateSnapshot struct {
	levels   models.DayIntensity
	sex      map[string]models.SexEvent
	settings models.Settings
}

type history struct {
	undo []stateSnapshot
	redo []stateSnapshot
}

// record pushes a pre-mutation snapshot and invalidates the redo stack:
// a fresh action branches the timeline.
func (h *history) record(snap stateSnapshot) {
	h.undo = append(h.undo, snap)
	if len(h.undo) > MaxHistoryDepth {
		h.undo = h.undo[1:]
	}
	h.redo = h.redo[:0]
}

// stepBack exchanges the current state for the most recent undo snapshot.
// The second result is false when there is nothing to undo.
func (h *history) stepBack(current stateSnapshot) (stateSnapshot, bool) {
	if len(h.undo) == 0 {
		return stateSnapshot{}, false
	}
	restored := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, current)
	return restored, true
}

// stepForward is the symmetric inverse of stepBack.
func (h *history) stepForward(current stateSnapshot) (stateSnapshot, bool) {
	if len(h.redo) == 0 {
		return stateSnapshot{}, false
	}
	restored := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, current)
	if len(h.undo) > MaxHistoryDepth {
		h.undo = h.undo[1:]
	}
	return restored, true
}

func (h *history) undoDepth() int {
	return len(h.undo)
}

func (h *history) redoDepth() int {
	return len(h.redo)
}
