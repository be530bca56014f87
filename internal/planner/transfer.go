package planner

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/hummingbird/internal/model"
	"github.com/sandeepkv93/hummingbird/internal/timeline"
)

var ErrInvalidTransfer = errors.New("planner: invalid transfer code")

// Transfer is the payload of a transfer code. Nil fields are absent and leave
// the corresponding state untouched on import.
type Transfer struct {
	Tasks      *[]model.Task    `json:"tasks,omitempty"`
	Categories *[]string        `json:"categories,omitempty"`
	Hours      *timeline.Window `json:"hours,omitempty"`
	Routine    *bool            `json:"routine,omitempty"`
}

func EncodeTransfer(t Transfer) (string, error) {
	b, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("encode transfer: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// DecodeTransfer parses and validates a code. Nothing is applied here, so a
// failure leaves the caller's state unchanged.
func DecodeTransfer(code string) (Transfer, error) {
	code = strings.Join(strings.Fields(code), "")
	if code == "" {
		return Transfer{}, fmt.Errorf("%w: empty code", ErrInvalidTransfer)
	}
	raw, err := base64.StdEncoding.DecodeString(code)
	if err != nil {
		return Transfer{}, fmt.Errorf("%w: %v", ErrInvalidTransfer, err)
	}
	var t Transfer
	if err := json.Unmarshal(raw, &t); err != nil {
		return Transfer{}, fmt.Errorf("%w: %v", ErrInvalidTransfer, err)
	}
	if t.Tasks != nil {
		seen := map[string]bool{}
		for i, task := range *t.Tasks {
			if err := task.Validate(); err != nil {
				return Transfer{}, fmt.Errorf("%w: task %d: %v", ErrInvalidTransfer, i, err)
			}
			if seen[task.ID] {
				return Transfer{}, fmt.Errorf("%w: duplicate task id %s", ErrInvalidTransfer, task.ID)
			}
			seen[task.ID] = true
		}
	}
	if t.Categories != nil {
		for _, c := range *t.Categories {
			if strings.TrimSpace(c) == "" {
				return Transfer{}, fmt.Errorf("%w: empty category", ErrInvalidTransfer)
			}
		}
	}
	if t.Hours != nil {
		if err := t.Hours.Validate(); err != nil {
			return Transfer{}, fmt.Errorf("%w: %v", ErrInvalidTransfer, err)
		}
	}
	return t, nil
}

// ExportTransfer encodes the full collection and settings.
func (p *Planner) ExportTransfer() (string, error) {
	tasks := p.Tasks()
	cats := p.UserCategories()
	hours := p.hours
	routine := p.routineActive
	return EncodeTransfer(Transfer{
		Tasks:      &tasks,
		Categories: &cats,
		Hours:      &hours,
		Routine:    &routine,
	})
}

// ApplyTransfer decodes code and replaces every field it carries. Imported
// tasks are kept as-is; the day window applies again on the next load.
func (p *Planner) ApplyTransfer(code string) error {
	t, err := DecodeTransfer(code)
	if err != nil {
		return err
	}
	if t.Tasks != nil {
		p.tasks = make([]model.Task, len(*t.Tasks))
		for i, task := range *t.Tasks {
			p.tasks[i] = task.Clone()
		}
		p.markDirty(KeyTasks)
	}
	if t.Categories != nil {
		p.userCategories = append([]string{}, (*t.Categories)...)
		p.markDirty(KeyUserCategories)
	}
	if t.Hours != nil {
		p.hours = *t.Hours
		p.markDirty(KeyWorkHours)
	}
	if t.Routine != nil {
		p.routineActive = *t.Routine
		p.markDirty(KeyRoutineActive)
	}
	p.log.Info("transfer code imported")
	return nil
}
