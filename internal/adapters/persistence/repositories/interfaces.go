package repositories

import (
	"context"

	"alkicorp-banksim/internal/adapters/persistence/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	GetByUserID(ctx context.Context, userID uint) ([]*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
	CountActiveByUserID(ctx context.Context, userID uint) (int64, error)
}

// BankStateRepository defines bank state repository interface
type BankStateRepository interface {
	WithTx(tx *gorm.DB) BankStateRepository
	GetBySlot(ctx context.Context, slotID int) (*models.BankState, error)
	Save(ctx context.Context, state *models.BankState) error
}

// ClientRepository defines client repository interface
type ClientRepository interface {
	WithTx(tx *gorm.DB) ClientRepository
	Create(ctx context.Context, client *models.Client) error
	GetBySlotAndID(ctx context.Context, slotID int, id uint) (*models.Client, error)
	ListBySlot(ctx context.Context, slotID int) ([]*models.Client, error)
	CountBySlot(ctx context.Context, slotID int) (int64, error)
	ListEmployedBySlot(ctx context.Context, slotID int) ([]*models.Client, error)
	Update(ctx context.Context, client *models.Client) error
	ResetDailyWithdrawn(ctx context.Context, slotID int) error
	DeleteBySlot(ctx context.Context, slotID int) error
}

// TransactionRepository defines ledger entry repository interface
type TransactionRepository interface {
	WithTx(tx *gorm.DB) TransactionRepository
	Append(ctx context.Context, entry *models.Transaction) error
	ListByClient(ctx context.Context, clientID uint, offset, limit int) ([]*models.Transaction, int64, error)
	ListByClients(ctx context.Context, clientIDs []uint) ([]*models.Transaction, error)
	SumWithdrawnOnDay(ctx context.Context, clientID uint, gameDay int) (decimal.Decimal, error)
	DeleteByClients(ctx context.Context, clientIDs []uint) error
}

// InvestmentEventRepository defines investment event repository interface
type InvestmentEventRepository interface {
	WithTx(tx *gorm.DB) InvestmentEventRepository
	Append(ctx context.Context, event *models.InvestmentEvent) error
	ListBySlot(ctx context.Context, slotID int, limit int) ([]*models.InvestmentEvent, error)
	DeleteBySlot(ctx context.Context, slotID int) error
}

// ProductRepository defines property listing repository interface
type ProductRepository interface {
	WithTx(tx *gorm.DB) ProductRepository
	Create(ctx context.Context, product *models.Product) error
	GetBySlotAndID(ctx context.Context, slotID int, id uint) (*models.Product, error)
	ListBySlot(ctx context.Context, slotID int) ([]*models.Product, error)
	ListAvailableBySlot(ctx context.Context, slotID int) ([]*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	DeleteBySlot(ctx context.Context, slotID int) error
}

// CatalogRepository defines the static job/rental catalog interface
type CatalogRepository interface {
	ListJobs(ctx context.Context) ([]*models.Job, error)
	GetJob(ctx context.Context, id uint) (*models.Job, error)
	ListRentals(ctx context.Context) ([]*models.Rental, error)
	GetRental(ctx context.Context, id uint) (*models.Rental, error)
}

// LoanRepository defines loan application repository interface
type LoanRepository interface {
	WithTx(tx *gorm.DB) LoanRepository
	Create(ctx context.Context, loan *models.Loan) error
	GetBySlotAndID(ctx context.Context, slotID int, id uint) (*models.Loan, error)
	ListBySlot(ctx context.Context, slotID int) ([]*models.Loan, error)
	ListByClient(ctx context.Context, slotID int, clientID uint) ([]*models.Loan, error)
	Update(ctx context.Context, loan *models.Loan) error
	DeleteBySlot(ctx context.Context, slotID int) error
}

// MortgageRepository defines mortgage application repository interface
type MortgageRepository interface {
	WithTx(tx *gorm.DB) MortgageRepository
	Create(ctx context.Context, mortgage *models.Mortgage) error
	GetBySlotAndID(ctx context.Context, slotID int, id uint) (*models.Mortgage, error)
	ListBySlot(ctx context.Context, slotID int) ([]*models.Mortgage, error)
	ListByClient(ctx context.Context, slotID int, clientID uint) ([]*models.Mortgage, error)
	ExistsOpenForProduct(ctx context.Context, slotID int, productID uint) (bool, error)
	Update(ctx context.Context, mortgage *models.Mortgage) error
	DeleteBySlot(ctx context.Context, slotID int) error
}

// LivingRepository defines living arrangement repository interface
type LivingRepository interface {
	WithTx(tx *gorm.DB) LivingRepository
	GetByClient(ctx context.Context, slotID int, clientID uint) (*models.ClientLiving, error)
	Save(ctx context.Context, living *models.ClientLiving) error
	DeleteByClient(ctx context.Context, slotID int, clientID uint) error
	DeleteBySlot(ctx context.Context, slotID int) error
}
