package update

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	log "github.com/sirupsen/logrus"

	"github.com/sandeepkv93/hummingbird/internal/calendar"
	"github.com/sandeepkv93/hummingbird/internal/planner"
	"github.com/sandeepkv93/hummingbird/internal/scheduler"
	"github.com/sandeepkv93/hummingbird/internal/timeline"
)

type View string

const (
	ViewPlanner View = "Planner"
	ViewDetail  View = "Detail"
	ViewFocus   View = "Focus"
	ViewCapture View = "Capture"
)

// Pane is the list or grid that owns the cursor in the planner view.
type Pane string

const (
	PaneBacklog   Pane = "backlog"
	PaneTimeline  Pane = "timeline"
	PaneYesterday Pane = "yesterday"
	PaneTomorrow  Pane = "tomorrow"
)

var paneOrder = []Pane{PaneBacklog, PaneTimeline, PaneYesterday, PaneTomorrow}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Backlog   string
	Timeline  string
	Yesterday string
	Tomorrow  string
	Help      string
	Quit      string
}

// DragState tracks a task being placed on the timeline. Offset is the
// absolute grid position of the pointer, not yet snapped.
type DragState struct {
	Active bool
	TaskID string
	Title  string
	Offset float64
}

type DetailState struct {
	TaskID  string
	Cursor  int
	Editing bool
}

type CaptureState struct {
	Tomorrow bool
	Field    int
	Err      string
}

type FocusPhase string

const (
	FocusPhaseTask  FocusPhase = "task"
	FocusPhaseWork  FocusPhase = "work"
	FocusPhaseBreak FocusPhase = "break"
)

type FocusState struct {
	TaskID             string
	TaskTitle          string
	TaskDurationSec    int
	WorkDurationSec    int
	BreakDurationSec   int
	RemainingSec       int
	Running            bool
	Phase              FocusPhase
	CompletedPomodoros int
	// gen identifies the running tick chain; stale ticks are dropped
	gen int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

// FeedFactory builds the calendar feed for a calendar id.
type FeedFactory func(ctx context.Context, calendarID string) (calendar.Feed, error)

type Model struct {
	CurrentView    View
	Pane           Pane
	SelectedTaskID string
	Cursors        map[Pane]int
	Now            time.Time
	Relations      timeline.Relations
	Scroll         float64
	Drag           DragState
	Detail         DetailState
	Capture        CaptureState
	Focus          FocusState
	Scheduler      *scheduler.Engine
	AlertLog       []scheduler.Alert
	Palette        CommandPaletteState
	HelpVisible    bool
	Notifications  []Notification
	DesktopEnabled bool
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error
	Width          int
	Height         int

	planner  *planner.Planner
	cfg      RuntimeConfig
	loc      *time.Location
	clock    func() time.Time
	feeds    FeedFactory
	notifier DesktopNotifier
	log      *log.Entry

	commandInput   textinput.Model
	captureInputs  []textinput.Model
	subtaskInput   textinput.Model
	focusProgress  progress.Model
	detailProgress progress.Model
	syncSpinner    spinner.Model
	spinnerActive  bool
	saving         bool
	helpModel      help.Model
	detailViewport viewport.Model
}

type Options struct {
	Config    RuntimeConfig
	Scheduler *scheduler.Engine
	Notifier  DesktopNotifier
	Feeds     FeedFactory
	Clock     func() time.Time
	Logger    *log.Entry
}

// NewModel builds the UI state around a loaded planner.
func NewModel(p *planner.Planner, opts Options) Model {
	cfg := opts.Config
	if cfg.CellsPerHour <= 0 {
		cfg.CellsPerHour = DefaultRuntimeConfig().CellsPerHour
	}
	clock := opts.Clock
	if clock == nil {
		clock = p.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.WithField("component", "ui")
	}
	m := Model{
		CurrentView: ViewPlanner,
		Pane:        PaneBacklog,
		Cursors:     map[Pane]int{},
		Focus: FocusState{
			WorkDurationSec:  25 * 60,
			BreakDurationSec: 5 * 60,
			Phase:            FocusPhaseWork,
		},
		Scheduler:      opts.Scheduler,
		DesktopEnabled: cfg.DesktopNotifications,
		Keys: GlobalKeyMap{
			Backlog:   "1",
			Timeline:  "2",
			Yesterday: "3",
			Tomorrow:  "4",
			Help:      "?",
			Quit:      "q",
		},
		planner:  p,
		cfg:      cfg,
		loc:      cfg.Location(),
		clock:    clock,
		feeds:    opts.Feeds,
		notifier: NoopDesktopNotifier{},
		log:      logger,
	}
	if opts.Notifier != nil {
		m.notifier = opts.Notifier
	}
	if cfg.FocusWorkMinutes > 0 {
		m.Focus.WorkDurationSec = cfg.FocusWorkMinutes * 60
	}
	if cfg.FocusBreakMinutes > 0 {
		m.Focus.BreakDurationSec = cfg.FocusBreakMinutes * 60
	}
	m.Focus.RemainingSec = m.Focus.WorkDurationSec
	m.initBubbleComponents()
	m.refreshClock()
	m.scrollToNow()
	m.syncSelection()
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	labels := []string{"title", "duration", "category"}
	placeholders := []string{"What needs doing?", "30m, 1h, 1h30", "General"}
	m.captureInputs = make([]textinput.Model, len(labels))
	for i := range labels {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 128
		in.Width = 40
		in.Placeholder = placeholders[i]
		m.captureInputs[i] = in
	}

	m.subtaskInput = textinput.New()
	m.subtaskInput.Prompt = "subtask> "
	m.subtaskInput.CharLimit = 256
	m.subtaskInput.Width = 40

	m.focusProgress = progress.New(progress.WithDefaultGradient())
	m.detailProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(20))

	m.syncSpinner = spinner.New()
	m.syncSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.detailViewport = viewport.New(54, 10)
}

// Grid is the timeline grid at the configured cell density.
func (m Model) Grid() timeline.Grid {
	return timeline.NewGrid(m.planner.Hours(), m.cfg.PxPerMinute())
}

// Planner exposes the underlying state for callers that own the program.
func (m Model) Planner() *planner.Planner {
	return m.planner
}
