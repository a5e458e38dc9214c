package dto

import "time"

// DashboardParams selects the dashboard period.
type DashboardParams struct {
	PeriodID int        `form:"periodID"`
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
}

// ReportParams filters the document report.
type ReportParams struct {
	StateID          *int64     `form:"stateID"`
	ClassificationID *int64     `form:"classificationID"`
	From             *time.Time `form:"from" time_format:"2006-01-02"`
	To               *time.Time `form:"to" time_format:"2006-01-02"`
	PageNumber       int        `form:"pageNumber,default=1"`
	PageSize         int        `form:"pageSize,default=10"`
}

// ActionHistoryParams bounds the caller's action history.
type ActionHistoryParams struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}
