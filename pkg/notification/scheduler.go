package notification

import (
	"context"
	"log"
	"sync"

	"github.com/robfig/cron/v3"
)

// ExpirySchedule fires the expiry sweep twice a day, morning and evening.
const ExpirySchedule = "0 9,18 * * *"

type schedulerState int

const (
	schedulerStopped schedulerState = iota
	schedulerRunning
)

// Scheduler owns the recurring expiry sweep. Start and Stop are idempotent,
// so repeated wiring during startup can never register the job twice.
type Scheduler struct {
	mu      sync.Mutex
	state   schedulerState
	cron    *cron.Cron
	service NotificationService
}

func NewScheduler(service NotificationService) *Scheduler {
	return &Scheduler{
		state:   schedulerStopped,
		service: service,
	}
}

func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == schedulerRunning {
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(ExpirySchedule, func() {
		s.service.TriggerNotificationCheck(context.Background())
	}); err != nil {
		return err
	}

	c.Start()
	s.cron = c
	s.state = schedulerRunning
	log.Printf("expiry scheduler started with schedule %q", ExpirySchedule)
	return nil
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == schedulerStopped {
		return
	}

	s.cron.Stop()
	s.cron = nil
	s.state = schedulerStopped
}

func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == schedulerRunning
}
