package domain

import "time"

// DueDateSLAWorkingDays is the number of working days a document may sit
// before it is due.
const DueDateSLAWorkingDays = 3

// DeadlineStatus classifies a document against its due date.
type DeadlineStatus int

const (
	NotDue DeadlineStatus = iota
	DueSoon
	Overdue
)

func (s DeadlineStatus) String() string {
	switch s {
	case DueSoon:
		return "due_soon"
	case Overdue:
		return "overdue"
	}
	return "not_due"
}

// WorkCalendar counts working days, skipping one weekly rest day.
type WorkCalendar struct {
	RestDay time.Weekday
}

// DefaultCalendar rests on Sunday.
var DefaultCalendar = WorkCalendar{RestDay: time.Sunday}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ElapsedWorkingDays counts the days in (start, end] that are not the rest
// day. Times of day are ignored. Returns 0 when end is not after start.
func (c WorkCalendar) ElapsedWorkingDays(start, end time.Time) int {
	from := truncateToDate(start)
	to := truncateToDate(end.In(start.Location()))
	days := 0
	for from.Before(to) {
		from = from.AddDate(0, 0, 1)
		if from.Weekday() != c.RestDay {
			days++
		}
	}
	return days
}

// ProjectedDueDate walks forward from start until DueDateSLAWorkingDays
// working days have been added. The time of day is kept.
func (c WorkCalendar) ProjectedDueDate(start time.Time) time.Time {
	due := start
	added := 0
	for added < DueDateSLAWorkingDays {
		due = due.AddDate(0, 0, 1)
		if due.Weekday() != c.RestDay {
			added++
		}
	}
	return due
}

// ClassifyDeadline maps elapsed working days onto a deadline status.
func ClassifyDeadline(elapsed int) DeadlineStatus {
	switch {
	case elapsed < 1:
		return NotDue
	case elapsed < 2:
		return DueSoon
	default:
		return Overdue
	}
}
