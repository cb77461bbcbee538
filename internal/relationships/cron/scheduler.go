package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/cerebro-sinaptico/synapse-backend/internal/relationships/service"
)

// Scheduler runs the nightly full synapse recompute.
type Scheduler struct {
	svc *service.SyncService
	c   *cron.Cron
}

func NewScheduler(svc *service.SyncService) *Scheduler {
	return &Scheduler{svc: svc}
}

// Start initializes cron tasks (nightly at 12:00AM).
func (s *Scheduler) Start() {
	s.c = cron.New(cron.WithSeconds())

	_, err := s.c.AddFunc("0 0 0 * * *", func() {
		s.runNightlyRecompute()
	})
	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return
	}

	log.Println("Cron scheduler started (synapse recompute nightly at 12:00AM)")
	s.c.Start()
}

// Stop halts the scheduler; running jobs finish first.
func (s *Scheduler) Stop() {
	if s.c != nil {
		<-s.c.Stop().Done()
	}
}

func (s *Scheduler) runNightlyRecompute() {
	log.Println("Nightly synapse recompute started...")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
	defer cancel()

	total, err := s.svc.RecomputeAll(ctx)
	if err != nil {
		log.Printf("Nightly recompute failed: %v", err)
		return
	}

	log.Printf("Nightly recompute completed, %d synapses stored, at: %s",
		total, time.Now().Format(time.RFC1123))
}
