package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add      func(AddArgs) (Result, error)
	At       func(AtArgs) (Result, error)
	Move     func(MoveArgs) (Result, error)
	Hours    func(HoursArgs) (Result, error)
	Sync     func(SyncArgs) (Result, error)
	Routine  func(RoutineArgs) (Result, error)
	Category func(CategoryArgs) (Result, error)
	Export   func(ExportArgs) (Result, error)
}

func missing(name string) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: name + " handler not configured"}
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd, TypeTomorrow:
		if handlers.Add == nil {
			return Result{}, missing("add")
		}
		return handlers.Add(*cmd.Add)
	case TypeAt:
		if handlers.At == nil {
			return Result{}, missing("at")
		}
		return handlers.At(*cmd.At)
	case TypeMove:
		if handlers.Move == nil {
			return Result{}, missing("move")
		}
		return handlers.Move(*cmd.Move)
	case TypeHours:
		if handlers.Hours == nil {
			return Result{}, missing("hours")
		}
		return handlers.Hours(*cmd.Hours)
	case TypeSync:
		if handlers.Sync == nil {
			return Result{}, missing("sync")
		}
		return handlers.Sync(*cmd.Sync)
	case TypeRoutine:
		if handlers.Routine == nil {
			return Result{}, missing("routine")
		}
		return handlers.Routine(*cmd.Routine)
	case TypeCategory:
		if handlers.Category == nil {
			return Result{}, missing("category")
		}
		return handlers.Category(*cmd.Category)
	case TypeExport:
		if handlers.Export == nil {
			return Result{}, missing("export")
		}
		return handlers.Export(*cmd.Export)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
