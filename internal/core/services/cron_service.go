package services

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// CronService drives the background tick: every interval it advances
// the clock of each slot so that scheduled payroll, rent and
// investment effects land even while nobody is calling the API.
type CronService struct {
	sim  *SimulationService
	cron *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(sim *SimulationService) *CronService {
	return &CronService{
		sim:  sim,
		cron: cron.New(),
	}
}

// Start registers the tick job and starts the scheduler
func (s *CronService) Start() error {
	spec := "@every " + s.sim.Config().TickInterval.String()
	_, err := s.cron.AddFunc(spec, s.tick)
	if err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("⏰ Simulation tick scheduled (%s)", spec)
	return nil
}

// Stop stops the scheduler, waiting for a running tick to finish
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("⏰ Simulation tick stopped")
}

func (s *CronService) tick() {
	ctx := context.Background()
	for slotID := 1; slotID <= s.sim.SlotCount(); slotID++ {
		if _, err := s.sim.Advance(ctx, slotID); err != nil {
			log.Printf("⚠️ Tick failed for slot %d: %v", slotID, err)
		}
	}
}
