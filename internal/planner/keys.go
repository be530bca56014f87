package planner

// Storage keys. Values are JSON except the routine flag ("true"/"false"),
// the routine marker (a date key) and the calendar id (raw text).
const (
	KeyTasks           = "hummingbird_v1_tasks"
	KeyWorkHours       = "hummingbird_work_hours"
	KeyUserCategories  = "hummingbird_user_categories"
	KeyRoutineActive   = "hummingbird_routine_active"
	KeyLastRoutineDate = "hummingbird_last_routine_date"
	KeyCalendarID      = "hummingbird_gcal_url"
)

var persistOrder = []string{
	KeyTasks,
	KeyWorkHours,
	KeyUserCategories,
	KeyRoutineActive,
	KeyLastRoutineDate,
	KeyCalendarID,
}

// DefaultCategories seed the category list of a fresh install.
var DefaultCategories = []string{"General", "Work", "Personal", "Focus", "Meetings"}

// ImportCategory is assigned to every task that comes from a calendar feed.
const ImportCategory = "Meetings"
