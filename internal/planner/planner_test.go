package planner

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/hummingbird/internal/model"
	"github.com/sandeepkv93/hummingbird/internal/storage"
	"github.com/sandeepkv93/hummingbird/internal/timeline"
)

type memStore struct {
	values  map[string]string
	failKey string
}

func newMemStore() *memStore {
	return &memStore{values: map[string]string{}}
}

func (s *memStore) Load(_ context.Context, key string) (string, error) {
	v, ok := s.values[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return v, nil
}

func (s *memStore) Save(_ context.Context, key, value string) error {
	if key == s.failKey {
		return errors.New("disk full")
	}
	s.values[key] = value
	return nil
}

func (s *memStore) Remove(_ context.Context, key string) error {
	delete(s.values, key)
	return nil
}

func (s *memStore) Close() error { return nil }

var fixedNow = time.Date(2026, 2, 9, 10, 0, 0, 0, time.UTC)

func newTestPlanner(t *testing.T, store storage.Store) *Planner {
	t.Helper()
	p := New(store, Options{Now: func() time.Time { return fixedNow }})
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return p
}

func TestNewDayKeys(t *testing.T) {
	got := NewDayKeys(time.Date(2026, 3, 1, 0, 30, 0, 0, time.UTC))
	want := DayKeys{Yesterday: "2026-02-28", Today: "2026-03-01", Tomorrow: "2026-03-02"}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestLoadPrunesOutsideWindow(t *testing.T) {
	store := newMemStore()
	store.values[KeyTasks] = `[
		{"id":"old","title":"old","duration":30,"parentCategory":"Work","date":"2026-02-07","subtasks":[]},
		{"id":"y","title":"y","duration":30,"parentCategory":"Work","date":"2026-02-08","subtasks":[]},
		{"id":"t","title":"t","duration":30,"parentCategory":"Work","date":"2026-02-09"},
		{"id":"tm","title":"tm","duration":30,"parentCategory":"Work","date":"2026-02-10","subtasks":[]},
		{"id":"far","title":"far","duration":30,"parentCategory":"Work","date":"2026-02-11","subtasks":[]}
	]`
	p := newTestPlanner(t, store)

	tasks := p.Tasks()
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks after prune, got %d", len(tasks))
	}
	for _, task := range tasks {
		if task.ID == "old" || task.ID == "far" {
			t.Fatalf("task %s should have been pruned", task.ID)
		}
		if task.Subtasks == nil {
			t.Fatalf("expected subtasks normalised for %s", task.ID)
		}
	}
	if err := p.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if strings.Contains(store.values[KeyTasks], `"far"`) {
		t.Fatal("pruned task was written back")
	}
}

func TestLoadMalformedStateFallsBackToDefaults(t *testing.T) {
	store := newMemStore()
	store.values[KeyTasks] = `{not json`
	store.values[KeyWorkHours] = `{"start":20,"end":6}`
	store.values[KeyUserCategories] = `"oops"`
	store.values[KeyRoutineActive] = `maybe`
	p := newTestPlanner(t, store)

	if len(p.Tasks()) != 0 {
		t.Fatalf("expected empty collection, got %d", len(p.Tasks()))
	}
	if p.Hours() != timeline.DefaultWindow() {
		t.Fatalf("expected default hours, got %+v", p.Hours())
	}
	if len(p.UserCategories()) != len(DefaultCategories) {
		t.Fatalf("expected default categories, got %v", p.UserCategories())
	}
	if p.RoutineActive() {
		t.Fatal("expected routine off")
	}
}

func TestLoadClearsUnreadableStartTimes(t *testing.T) {
	store := newMemStore()
	store.values[KeyTasks] = `[
		{"id":"bad","title":"bad","duration":30,"parentCategory":"Work","date":"2026-02-09","startTime":"half past","subtasks":[]},
		{"id":"short","title":"short","duration":30,"parentCategory":"Work","date":"2026-02-09","startTime":"9:05","subtasks":[]}
	]`
	p := newTestPlanner(t, store)

	backlog := p.BacklogToday()
	if len(backlog) != 1 || backlog[0].ID != "bad" {
		t.Fatalf("expected unreadable start moved to the backlog, got %+v", backlog)
	}
	scheduled := p.ScheduledToday()
	if len(scheduled) != 1 || scheduled[0].StartTime != "09:05" {
		t.Fatalf("expected normalised start time, got %+v", scheduled)
	}
	if err := p.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if strings.Contains(store.values[KeyTasks], "half past") {
		t.Fatal("unreadable start time was written back")
	}
}

type brokenStore struct{}

func (brokenStore) Load(context.Context, string) (string, error) {
	return "", errors.New("connection refused")
}

func (brokenStore) Save(context.Context, string, string) error { return nil }
func (brokenStore) Remove(context.Context, string) error       { return nil }
func (brokenStore) Close() error                               { return nil }

func TestLoadReturnsStoreFailure(t *testing.T) {
	p := New(brokenStore{}, Options{Now: func() time.Time { return fixedNow }})
	if err := p.Load(context.Background()); err == nil {
		t.Fatal("expected store failure to be reported")
	}
}

func TestAddTaskValidation(t *testing.T) {
	p := newTestPlanner(t, newMemStore())
	if _, err := p.AddTask(model.Draft{Title: " ", Duration: 30}, false); !errors.Is(err, model.ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
	if _, err := p.AddTask(model.Draft{Title: "x", Duration: 0}, false); !errors.Is(err, model.ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}
	if _, err := p.AddTask(model.Draft{Title: "x", Duration: 30}, false); !errors.Is(err, model.ErrCategoryRequired) {
		t.Fatalf("expected ErrCategoryRequired, got %v", err)
	}
	if len(p.Tasks()) != 0 {
		t.Fatal("rejected input created a task")
	}

	task, err := p.AddTask(model.Draft{Title: "Plan sprint", Duration: 45, Category: "Work"}, true)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if task.Date != p.Days().Tomorrow {
		t.Fatalf("expected tomorrow, got %s", task.Date)
	}
	if len(p.PlannedForTomorrow()) != 1 {
		t.Fatal("expected task planned for tomorrow")
	}
}

func TestMoveToTomorrowClearsStartTime(t *testing.T) {
	p := newTestPlanner(t, newMemStore())
	task, err := p.AddTask(model.Draft{Title: "Review", Duration: 30, StartTime: "11:00", Category: "Work"}, false)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(p.ScheduledToday()) != 1 {
		t.Fatal("expected task on today's timeline")
	}
	if !p.MoveToTomorrow(task.ID) {
		t.Fatal("expected move to succeed")
	}
	got, _ := p.Task(task.ID)
	if got.Date != p.Days().Tomorrow || got.StartTime != "" {
		t.Fatalf("unexpected task after move: %+v", got)
	}
	if len(p.ScheduledToday()) != 0 || len(p.BacklogToday()) != 0 {
		t.Fatal("moved task still visible today")
	}

	if !p.BringToToday(task.ID) {
		t.Fatal("expected bring to today to succeed")
	}
	if len(p.BacklogToday()) != 1 {
		t.Fatal("expected task back in today's backlog")
	}
}

func TestBuckets(t *testing.T) {
	days := NewDayKeys(fixedNow)
	tasks := []model.Task{
		{ID: "y-open", Date: days.Yesterday},
		{ID: "y-done", Date: days.Yesterday, Completed: true},
		{ID: "t-backlog", Date: days.Today},
		{ID: "t-sched", Date: days.Today, StartTime: "09:00"},
		{ID: "tm", Date: days.Tomorrow, StartTime: "10:00"},
	}
	if got := PendingFrom(tasks, days.Yesterday); len(got) != 1 || got[0].ID != "y-open" {
		t.Fatalf("unexpected pending: %+v", got)
	}
	if got := BacklogFor(tasks, days.Today); len(got) != 1 || got[0].ID != "t-backlog" {
		t.Fatalf("unexpected backlog: %+v", got)
	}
	if got := ScheduledFor(tasks, days.Today); len(got) != 1 || got[0].ID != "t-sched" {
		t.Fatalf("unexpected scheduled: %+v", got)
	}
	if got := AllFor(tasks, days.Tomorrow); len(got) != 1 {
		t.Fatalf("unexpected tomorrow: %+v", got)
	}
}

func TestDropAndUnknownIDs(t *testing.T) {
	p := newTestPlanner(t, newMemStore())
	task, _ := p.AddTask(model.Draft{Title: "Write", Duration: 60, Category: "Work"}, false)

	if p.DropTask("missing", model.Clock{Hour: 9}) {
		t.Fatal("drop of unknown id should be ignored")
	}
	if p.ToggleComplete("missing") {
		t.Fatal("toggle of unknown id should be ignored")
	}
	if !p.DropTask(task.ID, model.Clock{Hour: 9, Minute: 45}) {
		t.Fatal("expected drop to succeed")
	}
	got, _ := p.Task(task.ID)
	if got.StartTime != "09:45" {
		t.Fatalf("expected 09:45, got %q", got.StartTime)
	}
	if !p.ClearStartTime(task.ID) {
		t.Fatal("expected unschedule to succeed")
	}
	if len(p.BacklogToday()) != 1 {
		t.Fatal("expected task back in backlog")
	}
}

func TestDetailEdits(t *testing.T) {
	p := newTestPlanner(t, newMemStore())
	task, _ := p.AddTask(model.Draft{Title: "Write", Duration: 60, Category: "Work"}, false)

	if err := p.SetDuration(task.ID, 0, 0); !errors.Is(err, model.ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}
	if err := p.SetDuration(task.ID, 1, 75); err != nil {
		t.Fatalf("set duration: %v", err)
	}
	got, _ := p.Task(task.ID)
	if got.Duration != 119 {
		t.Fatalf("expected minutes clamped to 59, got %d", got.Duration)
	}
	if err := p.SetStartTime(task.ID, 30, -5); err != nil {
		t.Fatalf("set start: %v", err)
	}
	got, _ = p.Task(task.ID)
	if got.StartTime != "23:00" {
		t.Fatalf("expected clamped start 23:00, got %q", got.StartTime)
	}
	if err := p.SetStartTime("missing", 9, 0); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}

	updated := got
	updated.Title = "Write draft"
	updated.CreatedAt = 1
	if err := p.UpdateTask(updated); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = p.Task(task.ID)
	if got.Title != "Write draft" || got.CreatedAt != task.CreatedAt {
		t.Fatalf("unexpected update result: %+v", got)
	}

	if !p.DeleteTask(task.ID) || p.DeleteTask(task.ID) {
		t.Fatal("expected delete to succeed exactly once")
	}
}

func TestSubtaskOperations(t *testing.T) {
	p := newTestPlanner(t, newMemStore())
	task, _ := p.AddTask(model.Draft{Title: "Ship", Duration: 60, Category: "Work"}, false)

	if err := p.AddSubtask(task.ID, " "); !errors.Is(err, model.ErrInvalidSubtask) {
		t.Fatalf("expected ErrInvalidSubtask, got %v", err)
	}
	if err := p.AddSubtask(task.ID, "tag release"); err != nil {
		t.Fatalf("add subtask: %v", err)
	}
	got, _ := p.Task(task.ID)
	sub := got.Subtasks[0]

	if !p.ToggleSubtask(task.ID, sub.ID) {
		t.Fatal("expected toggle to succeed")
	}
	got, _ = p.Task(task.ID)
	if got.Subtasks[0].CompletedAt == nil || *got.Subtasks[0].CompletedAt != fixedNow.UnixMilli() {
		t.Fatalf("expected completion stamp, got %+v", got.Subtasks[0])
	}
	if got.Progress() != 1 {
		t.Fatalf("expected full progress, got %v", got.Progress())
	}
	p.RemoveSubtask(task.ID, sub.ID)
	got, _ = p.Task(task.ID)
	if len(got.Subtasks) != 0 || got.Progress() != 0 {
		t.Fatalf("expected no subtasks, got %+v", got.Subtasks)
	}
}

func TestCategories(t *testing.T) {
	p := newTestPlanner(t, newMemStore())
	if err := p.AddCategory("  "); !errors.Is(err, model.ErrCategoryRequired) {
		t.Fatalf("expected ErrCategoryRequired, got %v", err)
	}
	if err := p.AddCategory("Work"); !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}
	if err := p.AddCategory(" Reading "); err != nil {
		t.Fatalf("add category: %v", err)
	}
	if !p.DeleteCategory("Focus") {
		t.Fatal("expected delete to succeed")
	}
	if _, err := p.AddTask(model.Draft{Title: "x", Duration: 30, Category: "Garden"}, false); err != nil {
		t.Fatalf("add: %v", err)
	}
	got := p.Categories()
	want := []string{"General", "Work", "Personal", "Meetings", "Reading", "Garden"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSetHoursRejectsMidnightCrossing(t *testing.T) {
	p := newTestPlanner(t, newMemStore())
	if err := p.SetHours(timeline.Window{StartHour: 22, EndHour: 2}); !errors.Is(err, timeline.ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow, got %v", err)
	}
	if err := p.SetHours(timeline.Window{StartHour: 6, EndHour: 22}); err != nil {
		t.Fatalf("set hours: %v", err)
	}
	if p.Hours().StartHour != 6 {
		t.Fatalf("unexpected hours %+v", p.Hours())
	}
}

func TestMergeImportedDedupes(t *testing.T) {
	p := newTestPlanner(t, newMemStore())
	drafts := []model.Draft{
		{Title: "Standup", StartTime: "09:00", Duration: 15},
		{Title: "Zero length", StartTime: "11:00", Duration: 0},
	}
	if n := p.MergeImported(drafts); n != 2 {
		t.Fatalf("expected 2 added, got %d", n)
	}
	if n := p.MergeImported(drafts); n != 0 {
		t.Fatalf("expected re-import to add nothing, got %d", n)
	}
	for _, task := range p.ScheduledToday() {
		if task.ParentCategory != ImportCategory {
			t.Fatalf("expected imported category, got %q", task.ParentCategory)
		}
		if task.Title == "Zero length" && task.Duration != model.MinimumDuration {
			t.Fatalf("expected clamped duration, got %d", task.Duration)
		}
	}
}

func TestFlushWritesDirtyKeysAndKeepsFailures(t *testing.T) {
	store := newMemStore()
	p := newTestPlanner(t, store)
	if _, err := p.AddTask(model.Draft{Title: "x", Duration: 30, Category: "Work"}, false); err != nil {
		t.Fatalf("add: %v", err)
	}
	p.SetCalendarID("team@example.com")
	store.failKey = KeyCalendarID

	if err := p.Flush(context.Background()); err == nil {
		t.Fatal("expected flush error")
	}
	if _, ok := store.values[KeyTasks]; !ok {
		t.Fatal("expected tasks to be saved")
	}

	store.failKey = ""
	if err := p.Flush(context.Background()); err != nil {
		t.Fatalf("second flush: %v", err)
	}
	if store.values[KeyCalendarID] != "team@example.com" {
		t.Fatalf("expected calendar id retried, got %q", store.values[KeyCalendarID])
	}

	reloaded := newTestPlanner(t, store)
	if len(reloaded.Tasks()) != 1 || reloaded.CalendarID() != "team@example.com" {
		t.Fatal("state did not survive reload")
	}
}

func TestDirtyWritesClearsSet(t *testing.T) {
	p := newTestPlanner(t, newMemStore())
	if err := p.SetHours(timeline.Window{StartHour: 7, EndHour: 18}); err != nil {
		t.Fatalf("set hours: %v", err)
	}
	writes := p.DirtyWrites()
	if len(writes) != 1 || writes[0].Key != KeyWorkHours || writes[0].Value != `{"start":7,"end":18}` {
		t.Fatalf("unexpected writes: %+v", writes)
	}
	if len(p.DirtyWrites()) != 0 {
		t.Fatal("expected dirty set to be cleared")
	}
}
