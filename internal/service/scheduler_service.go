package service

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// SchedulerService wraps the cron runner behind the two job shapes the
// server needs: a periodic cache sweep and a daily overdue report.
type SchedulerService struct {
	cron *cron.Cron
}

func NewSchedulerService(loc *time.Location) *SchedulerService {
	return &SchedulerService{
		cron: cron.New(cron.WithLocation(loc)),
	}
}

// ScheduleDaily registers a job to run once per day at the given HH:MM.
func (s *SchedulerService) ScheduleDaily(timeStr string, job func()) (cron.EntryID, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(timeStr, "%d:%d", &hour, &minute); err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", timeStr)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time %q out of range", timeStr)
	}
	return s.cron.AddFunc(fmt.Sprintf("%d %d * * *", minute, hour), job)
}

// ScheduleInterval registers a job to run every given duration.
func (s *SchedulerService) ScheduleInterval(interval time.Duration, job func()) (cron.EntryID, error) {
	if interval <= 0 {
		return 0, fmt.Errorf("interval must be positive")
	}
	return s.cron.AddFunc(fmt.Sprintf("@every %s", interval), job)
}

func (s *SchedulerService) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for any running job to finish.
func (s *SchedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
