package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/sandeepkv93/hummingbird/internal/model"
	"github.com/sandeepkv93/hummingbird/internal/storage"
	"github.com/sandeepkv93/hummingbird/internal/timeline"
)

var (
	ErrTaskNotFound   = errors.New("planner: task not found")
	ErrCategoryExists = errors.New("planner: category already exists")
)

type Options struct {
	Now    func() time.Time
	Logger *log.Entry
}

// Planner owns the task collection and the user settings of one session.
// It is not safe for concurrent use; callers serialise mutations.
type Planner struct {
	store storage.Store
	log   *log.Entry
	now   func() time.Time
	days  DayKeys

	tasks            []model.Task
	userCategories   []string
	hours            timeline.Window
	routineActive    bool
	routineAppliedOn string
	calendarID       string

	dirty map[string]bool

	// writeMu orders store writes issued from background saves and Flush.
	writeMu sync.Mutex
}

func New(store storage.Store, opts Options) *Planner {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.WithField("component", "planner")
	}
	return &Planner{
		store:          store,
		log:            logger,
		now:            now,
		days:           NewDayKeys(now()),
		tasks:          []model.Task{},
		userCategories: append([]string(nil), DefaultCategories...),
		hours:          timeline.DefaultWindow(),
		dirty:          map[string]bool{},
	}
}

// Load reads persisted state, prunes tasks outside the three-day window and
// applies the daily routine. Malformed values are logged and replaced by
// defaults.
func (p *Planner) Load(ctx context.Context) error {
	var tasks []model.Task
	found, err := p.loadJSON(ctx, KeyTasks, &tasks)
	if err != nil {
		return err
	}
	if found {
		kept := Prune(tasks, p.days)
		if len(kept) != len(tasks) {
			p.log.WithField("pruned", len(tasks)-len(kept)).Info("pruned tasks outside the day window")
			p.markDirty(KeyTasks)
		}
		if p.normaliseLoaded(kept) {
			p.markDirty(KeyTasks)
		}
		p.tasks = kept
	}

	var hours timeline.Window
	found, err = p.loadJSON(ctx, KeyWorkHours, &hours)
	if err != nil {
		return err
	}
	if found {
		if verr := hours.Validate(); verr != nil {
			p.log.WithError(verr).Warn("ignoring stored work hours")
		} else {
			p.hours = hours
		}
	}

	var cats []string
	found, err = p.loadJSON(ctx, KeyUserCategories, &cats)
	if err != nil {
		return err
	}
	if found && cats != nil {
		p.userCategories = cats
	}

	raw, err := p.loadRaw(ctx, KeyRoutineActive)
	if err != nil {
		return err
	}
	if raw != "" {
		on, perr := strconv.ParseBool(raw)
		if perr != nil {
			p.log.WithError(perr).WithField("key", KeyRoutineActive).Warn("malformed stored value")
		}
		p.routineActive = on
	}

	if p.routineAppliedOn, err = p.loadRaw(ctx, KeyLastRoutineDate); err != nil {
		return err
	}
	if p.calendarID, err = p.loadRaw(ctx, KeyCalendarID); err != nil {
		return err
	}

	p.ApplyRoutine()
	return nil
}

// normaliseLoaded fills missing subtask lists and rewrites start times in
// HH:MM form. A start time that does not parse is cleared, which returns the
// task to its day's backlog. It reports whether a start time changed.
func (p *Planner) normaliseLoaded(tasks []model.Task) bool {
	changed := false
	for i := range tasks {
		t := &tasks[i]
		if t.Subtasks == nil {
			t.Subtasks = []model.SubTask{}
		}
		if !t.IsScheduled() {
			continue
		}
		c, err := model.ParseClock(t.StartTime)
		if err != nil {
			p.log.WithError(err).WithField("task", t.ID).Warn("clearing unreadable start time")
			t.StartTime = ""
			changed = true
			continue
		}
		if s := c.String(); s != t.StartTime {
			t.StartTime = s
			changed = true
		}
	}
	return changed
}

func (p *Planner) loadRaw(ctx context.Context, key string) (string, error) {
	v, err := p.store.Load(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load %s: %w", key, err)
	}
	return v, nil
}

func (p *Planner) loadJSON(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := p.loadRaw(ctx, key)
	if err != nil || raw == "" {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		p.log.WithError(err).WithField("key", key).Warn("malformed stored value, using defaults")
		return false, nil
	}
	return true, nil
}

func (p *Planner) markDirty(keys ...string) {
	for _, k := range keys {
		p.dirty[k] = true
	}
}

// Write is one pending store update.
type Write struct {
	Key   string
	Value string
}

// DirtyWrites serialises every value changed since the previous call and
// clears the dirty set. The result can be saved from another goroutine.
func (p *Planner) DirtyWrites() []Write {
	var out []Write
	for _, key := range persistOrder {
		if !p.dirty[key] {
			continue
		}
		v, err := p.encode(key)
		if err != nil {
			p.log.WithError(err).WithField("key", key).Error("failed to encode state")
			continue
		}
		out = append(out, Write{Key: key, Value: v})
	}
	p.dirty = map[string]bool{}
	return out
}

func (p *Planner) encode(key string) (string, error) {
	var v any
	switch key {
	case KeyTasks:
		v = p.tasks
	case KeyWorkHours:
		v = p.hours
	case KeyUserCategories:
		v = p.userCategories
	case KeyRoutineActive:
		return strconv.FormatBool(p.routineActive), nil
	case KeyLastRoutineDate:
		return p.routineAppliedOn, nil
	case KeyCalendarID:
		return p.calendarID, nil
	default:
		return "", fmt.Errorf("planner: unknown key %q", key)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// SaveWrites stores the writes in order and reports every failure. It may run
// on another goroutine; writes from concurrent calls and Flush never interleave.
func (p *Planner) SaveWrites(ctx context.Context, writes []Write) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	var errs []error
	for _, w := range writes {
		if err := p.store.Save(ctx, w.Key, w.Value); err != nil {
			errs = append(errs, fmt.Errorf("save %s: %w", w.Key, err))
		}
	}
	return errors.Join(errs...)
}

// Requeue marks the keys of writes that could not be saved as dirty again so
// the next save retries them.
func (p *Planner) Requeue(writes []Write) {
	for _, w := range writes {
		p.markDirty(w.Key)
	}
}

// MarkAllDirty queues every key for the next save.
func (p *Planner) MarkAllDirty() {
	p.markDirty(persistOrder...)
}

// Flush synchronously persists pending changes. It waits for a background
// save still writing. Keys that fail to save stay dirty.
func (p *Planner) Flush(ctx context.Context) error {
	writes := p.DirtyWrites()
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	var errs []error
	for _, w := range writes {
		if err := p.store.Save(ctx, w.Key, w.Value); err != nil {
			p.markDirty(w.Key)
			errs = append(errs, fmt.Errorf("save %s: %w", w.Key, err))
		}
	}
	return errors.Join(errs...)
}

func (p *Planner) Store() storage.Store {
	return p.store
}

func (p *Planner) Days() DayKeys {
	return p.days
}

func (p *Planner) Now() time.Time {
	return p.now()
}

// Tasks returns a copy of the whole collection.
func (p *Planner) Tasks() []model.Task {
	out := make([]model.Task, len(p.tasks))
	for i, t := range p.tasks {
		out[i] = t.Clone()
	}
	return out
}

func (p *Planner) Task(id string) (model.Task, bool) {
	for _, t := range p.tasks {
		if t.ID == id {
			return t.Clone(), true
		}
	}
	return model.Task{}, false
}

func (p *Planner) TodayTasks() []model.Task {
	return AllFor(p.tasks, p.days.Today)
}

func (p *Planner) BacklogToday() []model.Task {
	return BacklogFor(p.tasks, p.days.Today)
}

func (p *Planner) ScheduledToday() []model.Task {
	return timeline.ScheduledTasks(ScheduledFor(p.tasks, p.days.Today))
}

func (p *Planner) PendingFromYesterday() []model.Task {
	return PendingFrom(p.tasks, p.days.Yesterday)
}

func (p *Planner) PlannedForTomorrow() []model.Task {
	return AllFor(p.tasks, p.days.Tomorrow)
}

func (p *Planner) update(id string, fn func(*model.Task)) bool {
	for i := range p.tasks {
		if p.tasks[i].ID != id {
			continue
		}
		fn(&p.tasks[i])
		p.markDirty(KeyTasks)
		return true
	}
	return false
}

// AddTask captures a task into today's or tomorrow's backlog.
func (p *Planner) AddTask(d model.Draft, forTomorrow bool) (model.Task, error) {
	date := p.days.Today
	if forTomorrow {
		date = p.days.Tomorrow
	}
	t, err := model.NewTask(d, date, p.now())
	if err != nil {
		return model.Task{}, err
	}
	p.tasks = append(p.tasks, t)
	p.markDirty(KeyTasks)
	return t.Clone(), nil
}

// UpdateTask replaces the stored task with the same id.
func (p *Planner) UpdateTask(t model.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	next := t.Clone()
	if !p.update(t.ID, func(cur *model.Task) {
		next.CreatedAt = cur.CreatedAt
		*cur = next
	}) {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, t.ID)
	}
	return nil
}

func (p *Planner) DeleteTask(id string) bool {
	for i := range p.tasks {
		if p.tasks[i].ID == id {
			p.tasks = append(p.tasks[:i], p.tasks[i+1:]...)
			p.markDirty(KeyTasks)
			return true
		}
	}
	return false
}

func (p *Planner) ToggleComplete(id string) bool {
	return p.update(id, func(t *model.Task) { t.Completed = !t.Completed })
}

// DropTask places a task on the timeline at start. Unknown ids are ignored.
func (p *Planner) DropTask(id string, start model.Clock) bool {
	return p.update(id, func(t *model.Task) { t.StartTime = start.String() })
}

// ClearStartTime returns a scheduled task to its day's backlog.
func (p *Planner) ClearStartTime(id string) bool {
	return p.update(id, func(t *model.Task) { t.StartTime = "" })
}

// MoveTask re-dates a task and clears its start time in one step.
func (p *Planner) MoveTask(id, date string) bool {
	return p.update(id, func(t *model.Task) { *t = MoveTask(*t, date) })
}

func (p *Planner) MoveToTomorrow(id string) bool {
	return p.MoveTask(id, p.days.Tomorrow)
}

func (p *Planner) BringToToday(id string) bool {
	return p.MoveTask(id, p.days.Today)
}

// SetDuration applies a detail edit of hours and minutes. Negative hours
// count as zero and minutes are clamped to 0..59.
func (p *Planner) SetDuration(id string, hours, minutes int) error {
	if hours < 0 {
		hours = 0
	}
	minutes = model.ClampClock(0, minutes).Minute
	total := hours*60 + minutes
	if total <= 0 {
		return fmt.Errorf("%w: %d", model.ErrInvalidDuration, total)
	}
	if !p.update(id, func(t *model.Task) { t.Duration = total }) {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return nil
}

// SetStartTime applies a detail edit of the start time with hour and minute
// clamped into range.
func (p *Planner) SetStartTime(id string, hour, minute int) error {
	c := model.ClampClock(hour, minute)
	if !p.update(id, func(t *model.Task) { t.StartTime = c.String() }) {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return nil
}

func (p *Planner) ToggleSubtask(taskID, subtaskID string) bool {
	now := p.now()
	return p.update(taskID, func(t *model.Task) { *t = t.ToggleSubtask(subtaskID, now) })
}

func (p *Planner) AddSubtask(taskID, text string) error {
	var added bool
	found := p.update(taskID, func(t *model.Task) {
		var next model.Task
		next, added = t.AddSubtask(text)
		*t = next
	})
	if !found {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	if !added {
		return fmt.Errorf("%w: text is required", model.ErrInvalidSubtask)
	}
	return nil
}

func (p *Planner) RemoveSubtask(taskID, subtaskID string) bool {
	return p.update(taskID, func(t *model.Task) { *t = t.RemoveSubtask(subtaskID) })
}

// Categories is the union of user categories and categories in use, user
// categories first.
func (p *Planner) Categories() []string {
	seen := map[string]bool{}
	var out []string
	add := func(c string) {
		if c == "" || seen[c] {
			return
		}
		seen[c] = true
		out = append(out, c)
	}
	for _, c := range p.userCategories {
		add(c)
	}
	for _, t := range p.tasks {
		add(t.ParentCategory)
	}
	return out
}

func (p *Planner) UserCategories() []string {
	return append([]string(nil), p.userCategories...)
}

func (p *Planner) AddCategory(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.ErrCategoryRequired
	}
	for _, c := range p.userCategories {
		if c == name {
			return fmt.Errorf("%w: %q", ErrCategoryExists, name)
		}
	}
	p.userCategories = append(p.userCategories, name)
	p.markDirty(KeyUserCategories)
	return nil
}

// DeleteCategory removes a user category. Tasks keep their category.
func (p *Planner) DeleteCategory(name string) bool {
	for i, c := range p.userCategories {
		if c == name {
			p.userCategories = append(p.userCategories[:i], p.userCategories[i+1:]...)
			p.markDirty(KeyUserCategories)
			return true
		}
	}
	return false
}

func (p *Planner) Hours() timeline.Window {
	return p.hours
}

func (p *Planner) SetHours(w timeline.Window) error {
	if err := w.Validate(); err != nil {
		return err
	}
	p.hours = w
	p.markDirty(KeyWorkHours)
	return nil
}

func (p *Planner) CalendarID() string {
	return p.calendarID
}

func (p *Planner) SetCalendarID(id string) {
	id = strings.TrimSpace(id)
	if id == p.calendarID {
		return
	}
	p.calendarID = id
	p.markDirty(KeyCalendarID)
}

// MergeImported adds calendar drafts to today, skipping drafts whose title,
// start time and date match an existing task. It returns how many were added.
func (p *Planner) MergeImported(drafts []model.Draft) int {
	existing := map[string]bool{}
	for _, t := range p.tasks {
		existing[dedupeKey(t.Title, t.StartTime, t.Date)] = true
	}
	now := p.now()
	added := 0
	for _, d := range drafts {
		if d.Category == "" {
			d.Category = ImportCategory
		}
		d.Duration = model.NormalizeDuration(d.Duration)
		t, err := model.NewTask(d, p.days.Today, now)
		if err != nil {
			p.log.WithError(err).WithField("title", d.Title).Warn("skipping imported event")
			continue
		}
		if existing[dedupeKey(t.Title, t.StartTime, t.Date)] {
			continue
		}
		p.tasks = append(p.tasks, t)
		added++
	}
	if added > 0 {
		p.markDirty(KeyTasks)
	}
	return added
}

func dedupeKey(title, start, date string) string {
	return title + "\x00" + start + "\x00" + date
}
