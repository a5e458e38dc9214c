package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/docflow_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d, hh int) time.Time {
	return time.Date(y, m, d, hh, 0, 0, 0, time.UTC)
}

func TestElapsedWorkingDays(t *testing.T) {
	cal := domain.DefaultCalendar

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"same instant", date(2024, 1, 3, 9), date(2024, 1, 3, 9), 0},
		{"same day later hour", date(2024, 1, 3, 9), date(2024, 1, 3, 18), 0},
		{"end before start", date(2024, 1, 5, 9), date(2024, 1, 3, 9), 0},
		{"monday to tuesday", date(2024, 1, 1, 23), date(2024, 1, 2, 1), 1},
		{"monday to saturday", date(2024, 1, 1, 9), date(2024, 1, 6, 9), 5},
		{"saturday to monday skips sunday", date(2024, 1, 6, 9), date(2024, 1, 8, 9), 1},
		{"ending on sunday", date(2024, 1, 6, 9), date(2024, 1, 7, 9), 0},
		{"two full weeks", date(2024, 1, 1, 9), date(2024, 1, 15, 9), 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cal.ElapsedWorkingDays(tt.start, tt.end))
		})
	}
}

func TestProjectedDueDate(t *testing.T) {
	cal := domain.DefaultCalendar

	t.Run("monday lands on thursday", func(t *testing.T) {
		due := cal.ProjectedDueDate(date(2024, 1, 1, 10))
		assert.Equal(t, date(2024, 1, 4, 10), due)
		assert.Equal(t, time.Thursday, due.Weekday())
	})

	t.Run("friday crosses sunday to tuesday", func(t *testing.T) {
		due := cal.ProjectedDueDate(date(2024, 1, 5, 10))
		assert.Equal(t, date(2024, 1, 9, 10), due)
		assert.Equal(t, time.Tuesday, due.Weekday())
	})

	t.Run("never lands on the rest day", func(t *testing.T) {
		start := date(2024, 1, 1, 8)
		for i := 0; i < 14; i++ {
			s := start.AddDate(0, 0, i)
			due := cal.ProjectedDueDate(s)
			assert.NotEqual(t, time.Sunday, due.Weekday(), "start %s", s.Weekday())
			assert.Equal(t, domain.DueDateSLAWorkingDays, cal.ElapsedWorkingDays(s, due), "start %s", s.Weekday())
		}
	})

	t.Run("custom rest day", func(t *testing.T) {
		sat := domain.WorkCalendar{RestDay: time.Saturday}
		// Thursday + Fri, (skip Sat), Sun, Mon
		assert.Equal(t, date(2024, 1, 8, 10), sat.ProjectedDueDate(date(2024, 1, 4, 10)))
	})
}

func TestClassifyDeadline(t *testing.T) {
	assert.Equal(t, domain.NotDue, domain.ClassifyDeadline(0))
	assert.Equal(t, domain.DueSoon, domain.ClassifyDeadline(1))
	assert.Equal(t, domain.Overdue, domain.ClassifyDeadline(2))
	assert.Equal(t, domain.Overdue, domain.ClassifyDeadline(9))
}
