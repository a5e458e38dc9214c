package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardPeriod is a preset date range relative to today.
type DashboardPeriod int

const (
	PeriodCustom DashboardPeriod = 0
	PeriodDay    DashboardPeriod = 1
	PeriodWeek   DashboardPeriod = 2
	PeriodMonth  DashboardPeriod = 3
	PeriodYear   DashboardPeriod = 4
)

// Range resolves the period to [from, to) around today. Custom and
// unknown periods return ok=false.
func (p DashboardPeriod) Range(today time.Time) (from, to time.Time, ok bool) {
	day := truncateToDate(today)
	switch p {
	case PeriodDay:
		return day, day.AddDate(0, 0, 1), true
	case PeriodWeek:
		offset := (int(day.Weekday()) + 6) % 7 // Monday start
		start := day.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7), true
	case PeriodMonth:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return start, start.AddDate(0, 1, 0), true
	case PeriodYear:
		start := time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, day.Location())
		return start, start.AddDate(1, 0, 0), true
	}
	return time.Time{}, time.Time{}, false
}

// NamedCount is a label with a document count.
type NamedCount struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Share is a label with a percentage of a whole.
type Share struct {
	Label      string          `json:"label"`
	Count      int             `json:"count"`
	Percentage decimal.Decimal `json:"percentage"`
}

// Dashboard aggregates document counts over a period.
type Dashboard struct {
	From             *time.Time   `json:"from,omitempty"`
	To               *time.Time   `json:"to,omitempty"`
	ByState          []NamedCount `json:"byState"`
	ByClassification []NamedCount `json:"byClassification"`
	Progress         []Share      `json:"progress"`
	ByDocumentType   []NamedCount `json:"byDocumentType"`
}
