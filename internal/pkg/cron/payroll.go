package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	attendanceservice "github.com/opspay/payroll-backend-go/internal/service/attendance"
)

// PayrollJobs holds the payroll engine's scheduled work.
type PayrollJobs struct {
	attendanceService *attendanceservice.AttendanceService
	cutoff            string // "HH:MM", sweep runs after this time of day
}

func NewPayrollJobs(attendanceService *attendanceservice.AttendanceService, cutoff string) *PayrollJobs {
	return &PayrollJobs{
		attendanceService: attendanceService,
		cutoff:            cutoff,
	}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("sweep_absent_employees", interval, j.SweepAbsentees)
}

// SweepAbsentees marks every active employee without an attendance record
// today as absent, once the daily cutoff has passed. The sweep is idempotent,
// so running it on every tick after the cutoff is harmless.
func (j *PayrollJobs) SweepAbsentees(ctx context.Context) error {
	now := time.Now()

	cutoff, err := time.Parse("15:04", j.cutoff)
	if err != nil {
		return fmt.Errorf("invalid attendance cutoff %q: %w", j.cutoff, err)
	}
	cutoffToday := time.Date(now.Year(), now.Month(), now.Day(), cutoff.Hour(), cutoff.Minute(), 0, 0, now.Location())
	if now.Before(cutoffToday) {
		return nil
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	created, err := j.attendanceService.SweepAll(ctx, today)
	if err != nil {
		return fmt.Errorf("absence sweep failed: %w", err)
	}

	if created > 0 {
		slog.Info("Cron: absence sweep marked employees absent", "date", today.Format("2006-01-02"), "count", created)
	}
	return nil
}
