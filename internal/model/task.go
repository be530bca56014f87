package model

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTitleRequired    = errors.New("model: task title is required")
	ErrInvalidDuration  = errors.New("model: invalid task duration")
	ErrCategoryRequired = errors.New("model: task category is required")
	ErrInvalidDate      = errors.New("model: invalid task date")
	ErrInvalidSubtask   = errors.New("model: invalid subtask")
)

// DateLayout is the calendar-day key format used for Task.Date.
const DateLayout = "2006-01-02"

// MinimumDuration is applied to tasks whose computed duration is not positive,
// for example calendar events whose end is not after their start.
const MinimumDuration = 30

const DefaultCategory = "General"

// Palette holds the colour tokens handed out to newly captured tasks.
var Palette = []string{
	"#3495C0", "#66CCBD", "#F59E0B", "#EF4444",
	"#8B5CF6", "#EC4899", "#10B981", "#6366F1",
}

type SubTask struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Completed   bool   `json:"completed"`
	CompletedAt *int64 `json:"completedAt,omitempty"`
}

type Task struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Duration       int       `json:"duration"`
	StartTime      string    `json:"startTime,omitempty"`
	Completed      bool      `json:"completed"`
	ParentCategory string    `json:"parentCategory"`
	Color          string    `json:"color"`
	CreatedAt      int64     `json:"createdAt"`
	Date           string    `json:"date"`
	Subtasks       []SubTask `json:"subtasks"`
}

// Draft carries the fields every task source supplies: manual capture,
// calendar import and the daily routine all go through NewTask.
type Draft struct {
	Title     string
	Duration  int
	Category  string
	Color     string
	StartTime string
}

// CategoryOr returns the trimmed category, or DefaultCategory when it is blank.
// Capture surfaces apply it; NewTask itself rejects a blank category.
func CategoryOr(category string) string {
	if c := strings.TrimSpace(category); c != "" {
		return c
	}
	return DefaultCategory
}

// NewTask builds a validated task for the given day.
func NewTask(d Draft, date string, now time.Time) (Task, error) {
	category := strings.TrimSpace(d.Category)
	color := d.Color
	if color == "" {
		color = Palette[rand.IntN(len(Palette))]
	}
	t := Task{
		ID:             NewID(),
		Title:          strings.TrimSpace(d.Title),
		Duration:       d.Duration,
		StartTime:      strings.TrimSpace(d.StartTime),
		ParentCategory: category,
		Color:          color,
		CreatedAt:      now.UnixMilli(),
		Date:           date,
		Subtasks:       []SubTask{},
	}
	if t.StartTime != "" {
		c, err := ParseClock(t.StartTime)
		if err != nil {
			return Task{}, err
		}
		t.StartTime = c.String()
	}
	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	return t, nil
}

func NewID() string {
	return uuid.NewString()
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrTitleRequired
	}
	if t.Duration <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDuration, t.Duration)
	}
	if strings.TrimSpace(t.ParentCategory) == "" {
		return ErrCategoryRequired
	}
	if _, err := time.Parse(DateLayout, t.Date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, t.Date)
	}
	if t.StartTime != "" {
		if _, err := ParseClock(t.StartTime); err != nil {
			return err
		}
	}
	for _, s := range t.Subtasks {
		if strings.TrimSpace(s.ID) == "" {
			return fmt.Errorf("%w: id is required", ErrInvalidSubtask)
		}
		if s.Completed != (s.CompletedAt != nil) {
			return fmt.Errorf("%w: completedAt must be set iff completed (%s)", ErrInvalidSubtask, s.ID)
		}
	}
	return nil
}

// IsScheduled reports whether the task sits on the timeline.
func (t Task) IsScheduled() bool {
	return t.StartTime != ""
}

// Start returns the parsed start time. ok is false for backlog tasks and for
// start times that do not parse.
func (t Task) Start() (Clock, bool) {
	if !t.IsScheduled() {
		return Clock{}, false
	}
	c, err := ParseClock(t.StartTime)
	if err != nil {
		return Clock{}, false
	}
	return c, true
}

// EffectiveDuration is the duration used for layout and clock arithmetic.
func (t Task) EffectiveDuration() int {
	return NormalizeDuration(t.Duration)
}

func NormalizeDuration(minutes int) int {
	if minutes <= 0 {
		return MinimumDuration
	}
	return minutes
}

// Clone returns a copy that shares no subtask storage with t.
func (t Task) Clone() Task {
	out := t
	out.Subtasks = make([]SubTask, len(t.Subtasks))
	for i, s := range t.Subtasks {
		out.Subtasks[i] = s
		if s.CompletedAt != nil {
			at := *s.CompletedAt
			out.Subtasks[i].CompletedAt = &at
		}
	}
	return out
}
