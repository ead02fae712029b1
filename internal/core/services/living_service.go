package services

import (
	"context"
	"errors"
	"log"

	"alkicorp-banksim/internal/adapters/persistence/models"
	"alkicorp-banksim/internal/adapters/persistence/repositories"
	"alkicorp-banksim/internal/core/domain"
	"alkicorp-banksim/internal/pkg/gameclock"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LivingService manages each client's single living arrangement:
// renting from the catalog, owning a property, or nothing. The
// arrangement drives the client's mandatory monthly outflow.
type LivingService struct {
	sim         *SimulationService
	clientRepo  repositories.ClientRepository
	livingRepo  repositories.LivingRepository
	productRepo repositories.ProductRepository
	catalogRepo repositories.CatalogRepository
	txRepo      repositories.TransactionRepository
	bankRepo    repositories.BankStateRepository
}

// NewLivingService creates a new living service
func NewLivingService(
	sim *SimulationService,
	clientRepo repositories.ClientRepository,
	livingRepo repositories.LivingRepository,
	productRepo repositories.ProductRepository,
	catalogRepo repositories.CatalogRepository,
	txRepo repositories.TransactionRepository,
	bankRepo repositories.BankStateRepository,
) *LivingService {
	return &LivingService{
		sim:         sim,
		clientRepo:  clientRepo,
		livingRepo:  livingRepo,
		productRepo: productRepo,
		catalogRepo: catalogRepo,
		txRepo:      txRepo,
		bankRepo:    bankRepo,
	}
}

// ListRentals returns the rental catalog
func (s *LivingService) ListRentals(ctx context.Context) ([]*models.Rental, error) {
	return s.catalogRepo.ListRentals(ctx)
}

// ListProducts returns a slot's property market. With all=false only
// listings still on the market are returned.
func (s *LivingService) ListProducts(ctx context.Context, slotID int, all bool) ([]*models.Product, error) {
	if _, err := s.sim.Advance(ctx, slotID); err != nil {
		return nil, err
	}
	if all {
		return s.productRepo.ListBySlot(ctx, slotID)
	}
	return s.productRepo.ListAvailableBySlot(ctx, slotID)
}

// GetLiving returns a client's current arrangement, or a NONE
// placeholder when the client has never had one.
func (s *LivingService) GetLiving(ctx context.Context, slotID int, clientID uint) (*models.ClientLiving, error) {
	if _, err := s.sim.Advance(ctx, slotID); err != nil {
		return nil, err
	}
	if _, err := s.clientRepo.GetBySlotAndID(ctx, slotID, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	living, err := s.livingRepo.GetByClient(ctx, slotID, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.ClientLiving{
				SlotID:      slotID,
				ClientID:    clientID,
				LivingType:  domain.LivingNone,
				MonthlyRent: decimal.Zero,
			}, nil
		}
		return nil, err
	}
	return living, nil
}

// SetRental moves a client into a catalog rental, replacing any
// previous arrangement. The rental's monthly rent becomes the client's
// mandatory outflow.
func (s *LivingService) SetRental(ctx context.Context, slotID int, clientID uint, rentalID uint) (*models.ClientLiving, error) {
	rental, err := s.catalogRepo.GetRental(ctx, rentalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRentalNotFound
		}
		return nil, err
	}

	var living *models.ClientLiving
	err = s.sim.WithSlot(ctx, slotID, func(state *models.BankState) error {
		return s.sim.DB().Transaction(func(tx *gorm.DB) error {
			client, err := s.clientRepo.WithTx(tx).GetBySlotAndID(ctx, slotID, clientID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrClientNotFound
				}
				return err
			}

			living, err = s.upsertLiving(ctx, tx, slotID, clientID, func(l *models.ClientLiving) {
				l.LivingType = domain.LivingRental
				l.RentalID = &rental.ID
				l.ProductID = nil
				l.MonthlyRent = rental.MonthlyRent
			})
			if err != nil {
				return err
			}

			client.MonthlyMandatory = rental.MonthlyRent
			client.LastActivityDay = state.GameDay
			return s.clientRepo.WithTx(tx).Update(ctx, client)
		})
	})
	if err != nil {
		return nil, err
	}
	log.Printf("🏠 Slot %d: client %d renting %q", slotID, clientID, rental.Name)
	return living, nil
}

// ClearLiving resets a client's arrangement to NONE and zeroes the
// mandatory outflow. Owned property is not touched; use SellProperty
// to dispose of it.
func (s *LivingService) ClearLiving(ctx context.Context, slotID int, clientID uint) error {
	return s.sim.WithSlot(ctx, slotID, func(state *models.BankState) error {
		return s.sim.DB().Transaction(func(tx *gorm.DB) error {
			client, err := s.clientRepo.WithTx(tx).GetBySlotAndID(ctx, slotID, clientID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrClientNotFound
				}
				return err
			}
			if _, err := s.upsertLiving(ctx, tx, slotID, clientID, func(l *models.ClientLiving) {
				l.LivingType = domain.LivingNone
				l.RentalID = nil
				l.ProductID = nil
				l.MonthlyRent = decimal.Zero
			}); err != nil {
				return err
			}
			client.MonthlyMandatory = decimal.Zero
			client.LastActivityDay = state.GameDay
			return s.clientRepo.WithTx(tx).Update(ctx, client)
		})
	})
}

// BuyProperty is the outright cash purchase path: the full price is
// debited from checking and the client moves into the property with no
// ongoing obligation.
func (s *LivingService) BuyProperty(ctx context.Context, slotID int, clientID uint, productID uint) (*models.Product, error) {
	var product *models.Product
	err := s.sim.WithSlot(ctx, slotID, func(state *models.BankState) error {
		return s.sim.DB().Transaction(func(tx *gorm.DB) error {
			client, err := s.clientRepo.WithTx(tx).GetBySlotAndID(ctx, slotID, clientID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrClientNotFound
				}
				return err
			}
			if client.Bankrupt {
				return domain.ErrClientBankrupt
			}

			product, err = s.productRepo.WithTx(tx).GetBySlotAndID(ctx, slotID, productID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrProductNotFound
				}
				return err
			}
			if product.Status != domain.ProductAvailable {
				return domain.ErrPropertyTaken
			}
			if client.CheckingBalance.LessThan(product.Price) {
				return domain.ErrInsufficientFunds
			}

			client.CheckingBalance = client.CheckingBalance.Sub(product.Price)
			client.MonthlyMandatory = decimal.Zero
			client.LastActivityDay = state.GameDay
			s.sim.EvaluateClient(client, state.GameDay)
			if err := s.clientRepo.WithTx(tx).Update(ctx, client); err != nil {
				return err
			}

			entry := &models.Transaction{
				ClientID: client.ID,
				Type:     domain.TxMortgageDownPayment,
				Amount:   product.Price,
				GameDay:  gameclock.WholeDay(state.GameDay),
			}
			if err := s.txRepo.WithTx(tx).Append(ctx, entry); err != nil {
				return err
			}

			product.Status = domain.ProductOwned
			product.OwnerClientID = &client.ID
			if err := s.productRepo.WithTx(tx).Update(ctx, product); err != nil {
				return err
			}

			if _, err := s.upsertLiving(ctx, tx, slotID, clientID, func(l *models.ClientLiving) {
				l.LivingType = domain.LivingOwned
				l.RentalID = nil
				l.ProductID = &product.ID
				l.MonthlyRent = decimal.Zero
			}); err != nil {
				return err
			}

			// Sale proceeds flow into the bank's inventory account
			state.LiquidCash = state.LiquidCash.Add(product.Price)
			return s.bankRepo.WithTx(tx).Save(ctx, state)
		})
	})
	if err != nil {
		return nil, err
	}
	log.Printf("🏡 Slot %d: client %d bought %q outright", slotID, clientID, product.Name)
	return product, nil
}

// SellProperty returns an owned property to the catalog and credits
// the owner the full price.
func (s *LivingService) SellProperty(ctx context.Context, slotID int, clientID uint, productID uint) (*models.Product, error) {
	var product *models.Product
	err := s.sim.WithSlot(ctx, slotID, func(state *models.BankState) error {
		return s.sim.DB().Transaction(func(tx *gorm.DB) error {
			client, err := s.clientRepo.WithTx(tx).GetBySlotAndID(ctx, slotID, clientID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrClientNotFound
				}
				return err
			}

			product, err = s.productRepo.WithTx(tx).GetBySlotAndID(ctx, slotID, productID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrProductNotFound
				}
				return err
			}
			if product.Status != domain.ProductOwned || product.OwnerClientID == nil || *product.OwnerClientID != client.ID {
				return domain.ErrInvalidState
			}

			product.Status = domain.ProductAvailable
			product.OwnerClientID = nil
			if err := s.productRepo.WithTx(tx).Update(ctx, product); err != nil {
				return err
			}

			// The arrangement only resets when the client actually
			// lives in the sold property. A rental stays in place,
			// rent obligation included.
			living, err := s.livingRepo.WithTx(tx).GetByClient(ctx, slotID, clientID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			livesHere := living != nil &&
				living.LivingType == domain.LivingOwned &&
				living.ProductID != nil && *living.ProductID == product.ID

			client.CheckingBalance = client.CheckingBalance.Add(product.Price)
			if livesHere {
				client.MonthlyMandatory = decimal.Zero
			}
			client.LastActivityDay = state.GameDay
			s.sim.EvaluateClient(client, state.GameDay)
			if err := s.clientRepo.WithTx(tx).Update(ctx, client); err != nil {
				return err
			}

			entry := &models.Transaction{
				ClientID: client.ID,
				Type:     domain.TxPropertySale,
				Amount:   product.Price,
				GameDay:  gameclock.WholeDay(state.GameDay),
			}
			if err := s.txRepo.WithTx(tx).Append(ctx, entry); err != nil {
				return err
			}

			if livesHere {
				if _, err := s.upsertLiving(ctx, tx, slotID, clientID, func(l *models.ClientLiving) {
					l.LivingType = domain.LivingNone
					l.RentalID = nil
					l.ProductID = nil
					l.MonthlyRent = decimal.Zero
				}); err != nil {
					return err
				}
			}

			// The bank buys the property back into inventory
			state.LiquidCash = state.LiquidCash.Sub(product.Price)
			return s.bankRepo.WithTx(tx).Save(ctx, state)
		})
	})
	if err != nil {
		return nil, err
	}
	log.Printf("🏡 Slot %d: client %d sold %q back", slotID, clientID, product.Name)
	return product, nil
}

// upsertLiving loads-or-creates the client's single arrangement row
// and applies mutate before saving.
func (s *LivingService) upsertLiving(ctx context.Context, tx *gorm.DB, slotID int, clientID uint, mutate func(*models.ClientLiving)) (*models.ClientLiving, error) {
	livingRepo := s.livingRepo.WithTx(tx)
	living, err := livingRepo.GetByClient(ctx, slotID, clientID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		living = &models.ClientLiving{SlotID: slotID, ClientID: clientID}
	}
	mutate(living)
	if err := livingRepo.Save(ctx, living); err != nil {
		return nil, err
	}
	return living, nil
}
