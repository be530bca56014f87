package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/hummingbird/internal/planner"
)

const bom = "\uFEFF"

const notApplicable = "N/A"

var header = []string{
	"ID", "Category", "Title", "Duration (min)", "Completed",
	"Subtask", "Subtask Status", "Completed At",
}

// completedAtLayout formats subtask completion stamps in the export location.
const completedAtLayout = "2006-01-02 15:04:05"

// WriteCSV writes rows as UTF-8 CSV with a byte order mark so spreadsheet
// tools pick the right encoding.
func WriteCSV(w io.Writer, rows []planner.ExportRow, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}
	if _, err := io.WriteString(w, bom); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			MeaningfulID(r.Task.ParentCategory, r.Seq, r.Task.Date),
			r.Task.ParentCategory,
			r.Task.Title,
			strconv.Itoa(r.Task.Duration),
			yesNo(r.Task.Completed),
			notApplicable,
			notApplicable,
			notApplicable,
		}
		if s := r.Subtask; s != nil {
			record[5] = s.Text
			record[6] = "Pending"
			if s.Completed {
				record[6] = "Completed"
			}
			if s.CompletedAt != nil {
				record[7] = time.UnixMilli(*s.CompletedAt).In(loc).Format(completedAtLayout)
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// MeaningfulID builds CAT-NN-YYYYMMDD from the first three letters of the
// category, the task's sequence number and its date.
func MeaningfulID(category string, seq int, date string) string {
	prefix := []rune(category)
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return fmt.Sprintf("%s-%02d-%s", strings.ToUpper(string(prefix)), seq, strings.ReplaceAll(date, "-", ""))
}

// Filename is the default export file name for a day.
func Filename(now time.Time) string {
	return "hummingbird_planner_" + now.Format("2006-01-02") + ".csv"
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
