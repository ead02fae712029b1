package services

import (
	"context"
	"errors"
	"log"

	"alkicorp-banksim/internal/adapters/persistence/models"
	"alkicorp-banksim/internal/adapters/persistence/repositories"
	"alkicorp-banksim/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EmploymentService assigns catalog jobs to clients. Monthly income is
// the job's annual salary spread over twelve payments.
type EmploymentService struct {
	sim         *SimulationService
	clientRepo  repositories.ClientRepository
	catalogRepo repositories.CatalogRepository
}

// NewEmploymentService creates a new employment service
func NewEmploymentService(
	sim *SimulationService,
	clientRepo repositories.ClientRepository,
	catalogRepo repositories.CatalogRepository,
) *EmploymentService {
	return &EmploymentService{
		sim:         sim,
		clientRepo:  clientRepo,
		catalogRepo: catalogRepo,
	}
}

// ListJobs returns the job catalog
func (s *EmploymentService) ListJobs(ctx context.Context) ([]*models.Job, error) {
	return s.catalogRepo.ListJobs(ctx)
}

// AssignJob puts a client on a catalog job's payroll, replacing any
// previous job.
func (s *EmploymentService) AssignJob(ctx context.Context, slotID int, clientID uint, jobID uint) (*models.Client, error) {
	job, err := s.catalogRepo.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrJobNotFound
		}
		return nil, err
	}

	var client *models.Client
	err = s.sim.WithSlot(ctx, slotID, func(state *models.BankState) error {
		client, err = s.clientRepo.GetBySlotAndID(ctx, slotID, clientID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrClientNotFound
			}
			return err
		}
		client.EmploymentStatus = domain.EmploymentActive
		client.JobID = &job.ID
		client.MonthlyIncome = job.AnnualSalary.DivRound(decimal.NewFromInt(12), 2)
		client.LastActivityDay = state.GameDay
		return s.clientRepo.Update(ctx, client)
	})
	if err != nil {
		return nil, err
	}
	log.Printf("💼 Slot %d: client %d hired as %q", slotID, client.ID, job.Title)
	return client, nil
}

// QuitJob takes a client off payroll
func (s *EmploymentService) QuitJob(ctx context.Context, slotID int, clientID uint) (*models.Client, error) {
	var client *models.Client
	err := s.sim.WithSlot(ctx, slotID, func(state *models.BankState) error {
		var err error
		client, err = s.clientRepo.GetBySlotAndID(ctx, slotID, clientID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrClientNotFound
			}
			return err
		}
		client.EmploymentStatus = domain.EmploymentUnemployed
		client.JobID = nil
		client.MonthlyIncome = decimal.Zero
		client.LastActivityDay = state.GameDay
		return s.clientRepo.Update(ctx, client)
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}
