package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/hummingbird/internal/model"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeTomorrow Type = "tomorrow"
	TypeAt       Type = "at"
	TypeMove     Type = "move"
	TypeHours    Type = "hours"
	TypeSync     Type = "sync"
	TypeRoutine  Type = "routine"
	TypeCategory Type = "category"
	TypeExport   Type = "export"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

// DefaultDuration is used by add when no duration token is given.
const DefaultDuration = 30

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func invalid(format string, a ...any) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, a...)}
}

// AddArgs captures a task. Tokens like 45m, 1h or 1h30 set the duration and
// @Name sets the category.
type AddArgs struct {
	Title    string
	Duration int
	Category string
	Tomorrow bool
}

type AtArgs struct {
	Start model.Clock
}

type MoveArgs struct {
	Tomorrow bool
}

type HoursArgs struct {
	Start int
	End   int
}

type SyncArgs struct {
	Calendar string
}

type RoutineArgs struct {
	On bool
}

type CategoryArgs struct {
	Remove bool
	Name   string
}

type ExportArgs struct {
	Path string
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	At       *AtArgs
	Move     *MoveArgs
	Hours    *HoursArgs
	Sync     *SyncArgs
	Routine  *RoutineArgs
	Category *CategoryArgs
	Export   *ExportArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args, false)
	case TypeTomorrow:
		return parseAdd(input, args, true)
	case TypeAt:
		return parseAt(input, args)
	case TypeMove:
		return parseMove(input, args)
	case TypeHours:
		return parseHours(input, args)
	case TypeSync:
		return Command{Type: TypeSync, Raw: input, Sync: &SyncArgs{Calendar: strings.Join(args, " ")}}, nil
	case TypeRoutine:
		return parseRoutine(input, args)
	case TypeCategory:
		return parseCategory(input, args)
	case TypeExport:
		return Command{Type: TypeExport, Raw: input, Export: &ExportArgs{Path: strings.Join(args, " ")}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string, tomorrow bool) (Command, error) {
	out := AddArgs{Duration: DefaultDuration, Tomorrow: tomorrow}
	var title []string
	for _, arg := range args {
		if strings.HasPrefix(arg, "@") && len(arg) > 1 {
			out.Category = arg[1:]
			continue
		}
		if d, ok := ParseDuration(arg); ok {
			out.Duration = d
			continue
		}
		title = append(title, arg)
	}
	out.Title = strings.TrimSpace(strings.Join(title, " "))
	if out.Title == "" {
		return Command{}, invalid("add requires a title")
	}
	typ := TypeAdd
	if tomorrow {
		typ = TypeTomorrow
	}
	return Command{Type: typ, Raw: raw, Add: &out}, nil
}

// ParseDuration reads 45m, 2h, 1h30 and 1h30m. Zero durations are rejected.
func ParseDuration(tok string) (int, bool) {
	s := strings.ToLower(tok)
	hours, minutes := 0, 0
	if h, rest, ok := strings.Cut(s, "h"); ok {
		n, err := strconv.Atoi(h)
		if err != nil || n < 0 {
			return 0, false
		}
		hours = n
		s = strings.TrimSuffix(rest, "m")
		if s == "" {
			return positive(hours * 60)
		}
	} else {
		var found bool
		s, found = strings.CutSuffix(s, "m")
		if !found {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	minutes = n
	return positive(hours*60 + minutes)
}

func positive(n int) (int, bool) {
	return n, n > 0
}

func parseAt(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("at requires a time like 09:30")
	}
	c, err := model.ParseClock(args[0])
	if err != nil {
		return Command{}, invalid("at requires a time like 09:30, got %q", args[0])
	}
	return Command{Type: TypeAt, Raw: raw, At: &AtArgs{Start: c}}, nil
}

func parseMove(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("move requires today or tomorrow")
	}
	switch strings.ToLower(args[0]) {
	case "today":
		return Command{Type: TypeMove, Raw: raw, Move: &MoveArgs{}}, nil
	case "tomorrow":
		return Command{Type: TypeMove, Raw: raw, Move: &MoveArgs{Tomorrow: true}}, nil
	default:
		return Command{}, invalid("move requires today or tomorrow, got %q", args[0])
	}
}

func parseHours(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, invalid("hours requires start and end hours")
	}
	start, err1 := strconv.Atoi(args[0])
	end, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		return Command{}, invalid("hours must be numbers, got %q %q", args[0], args[1])
	}
	return Command{Type: TypeHours, Raw: raw, Hours: &HoursArgs{Start: start, End: end}}, nil
}

func parseRoutine(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("routine requires on or off")
	}
	switch strings.ToLower(args[0]) {
	case "on":
		return Command{Type: TypeRoutine, Raw: raw, Routine: &RoutineArgs{On: true}}, nil
	case "off":
		return Command{Type: TypeRoutine, Raw: raw, Routine: &RoutineArgs{On: false}}, nil
	default:
		return Command{}, invalid("routine requires on or off, got %q", args[0])
	}
}

func parseCategory(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, invalid("category requires add or del and a name")
	}
	name := strings.Join(args[1:], " ")
	switch strings.ToLower(args[0]) {
	case "add":
		return Command{Type: TypeCategory, Raw: raw, Category: &CategoryArgs{Name: name}}, nil
	case "del", "rm":
		return Command{Type: TypeCategory, Raw: raw, Category: &CategoryArgs{Remove: true, Name: name}}, nil
	default:
		return Command{}, invalid("category requires add or del, got %q", args[0])
	}
}
