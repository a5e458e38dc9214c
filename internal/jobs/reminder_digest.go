package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/docflow_app/internal/core/domain"
	"github.com/robfig/cron/v3"
)

// digestTimeout bounds a single digest run.
const digestTimeout = 2 * time.Minute

// DigestSource supplies the reminders and summary the digest reports.
type DigestSource interface {
	DueReminders(ctx context.Context) ([]domain.DueReminder, error)
	WeeklySummary(ctx context.Context) ([]domain.StateCount, error)
}

// Digest is the outcome of one run.
type Digest struct {
	Reminders []domain.DueReminder
	// Summary is only filled on the summary weekday.
	Summary []domain.StateCount
}

// ReminderDigest periodically logs documents that are about to expire or
// have expired, and once a week a count of last week's documents by state.
type ReminderDigest struct {
	source         DigestSource
	logger         *slog.Logger
	location       *time.Location
	summaryWeekday time.Weekday
	now            func() time.Time
	cron           *cron.Cron
}

// NewReminderDigest builds a digest whose schedule is evaluated in loc.
func NewReminderDigest(source DigestSource, logger *slog.Logger, loc *time.Location) *ReminderDigest {
	if loc == nil {
		loc = time.UTC
	}
	cronLogger := slogCronLogger{logger: logger}
	return &ReminderDigest{
		source:         source,
		logger:         logger,
		location:       loc,
		summaryWeekday: time.Monday,
		now:            time.Now,
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
	}
}

// Start schedules the digest with a standard five-field cron spec. An
// empty spec leaves the job disabled.
func (d *ReminderDigest) Start(spec string) error {
	if spec == "" {
		d.logger.Info("Reminder digest disabled")
		return nil
	}
	_, err := d.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), digestTimeout)
		defer cancel()
		if _, err := d.Run(ctx); err != nil {
			d.logger.Error("Reminder digest failed", slog.String("error", err.Error()))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule reminder digest %q: %w", spec, err)
	}
	d.cron.Start()
	d.logger.Info("Reminder digest scheduled", slog.String("spec", spec))
	return nil
}

// Stop waits for a running digest to finish.
func (d *ReminderDigest) Stop() {
	<-d.cron.Stop().Done()
}

// Run computes and logs one digest.
func (d *ReminderDigest) Run(ctx context.Context) (*Digest, error) {
	reminders, err := d.source.DueReminders(ctx)
	if err != nil {
		return nil, fmt.Errorf("due reminders: %w", err)
	}
	for _, r := range reminders {
		attrs := []any{slog.Int64("document_id", r.DocumentID), slog.String("due_date", r.DueDate.Format(time.DateOnly))}
		if r.AssigneeID != nil {
			attrs = append(attrs, slog.Int64("assignee_id", *r.AssigneeID))
		}
		d.logger.Info(r.Message, attrs...)
	}

	digest := &Digest{Reminders: reminders}
	if d.now().In(d.location).Weekday() != d.summaryWeekday {
		d.logger.Info("Reminder digest completed", slog.Int("reminders", len(reminders)))
		return digest, nil
	}

	summary, err := d.source.WeeklySummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("weekly summary: %w", err)
	}
	for _, s := range summary {
		d.logger.Info(s.Message, slog.String("state", s.StateName), slog.Int("count", s.Count))
	}
	digest.Summary = summary

	d.logger.Info("Reminder digest completed", slog.Int("reminders", len(reminders)), slog.Int("summary_states", len(summary)))
	return digest, nil
}

// slogCronLogger adapts slog to cron's logger.
type slogCronLogger struct {
	logger *slog.Logger
}

func (l slogCronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l slogCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append([]interface{}{slog.String("error", err.Error())}, keysAndValues...)...)
}
