package model

import (
	"strings"
	"time"
)

// ToggleSubtask flips the completion of the subtask with the given id and
// stamps or clears CompletedAt. Unknown ids return the task unchanged.
func (t Task) ToggleSubtask(id string, now time.Time) Task {
	out := t.Clone()
	for i := range out.Subtasks {
		s := &out.Subtasks[i]
		if s.ID != id {
			continue
		}
		s.Completed = !s.Completed
		if s.Completed {
			at := now.UnixMilli()
			s.CompletedAt = &at
		} else {
			s.CompletedAt = nil
		}
		return out
	}
	return t
}

// AddSubtask appends a pending subtask. ok is false when text is blank.
func (t Task) AddSubtask(text string) (Task, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return t, false
	}
	out := t.Clone()
	out.Subtasks = append(out.Subtasks, SubTask{ID: NewID(), Text: text})
	return out, true
}

func (t Task) RemoveSubtask(id string) Task {
	for i, s := range t.Subtasks {
		if s.ID != id {
			continue
		}
		out := t.Clone()
		out.Subtasks = append(out.Subtasks[:i], out.Subtasks[i+1:]...)
		return out
	}
	return t
}

// Progress is the completed fraction of subtasks, 0 when there are none.
func (t Task) Progress() float64 {
	if len(t.Subtasks) == 0 {
		return 0
	}
	return float64(t.CompletedSubtasks()) / float64(len(t.Subtasks))
}

// CompletedSubtasks counts finished subtasks.
func (t Task) CompletedSubtasks() int {
	n := 0
	for _, s := range t.Subtasks {
		if s.Completed {
			n++
		}
	}
	return n
}
