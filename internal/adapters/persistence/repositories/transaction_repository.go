package repositories

import (
	"context"

	"alkicorp-banksim/internal/adapters/persistence/models"
	"alkicorp-banksim/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// transactionRepository implements TransactionRepository interface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *transactionRepository) WithTx(tx *gorm.DB) TransactionRepository {
	return &transactionRepository{db: tx}
}

// Append appends one immutable ledger entry
func (r *transactionRepository) Append(ctx context.Context, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// ListByClient lists a client's ledger in game-day order with pagination
func (r *transactionRepository) ListByClient(ctx context.Context, clientID uint, offset, limit int) ([]*models.Transaction, int64, error) {
	var transactions []*models.Transaction
	var total int64

	r.db.WithContext(ctx).Model(&models.Transaction{}).Where("client_id = ?", clientID).Count(&total)

	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("game_day ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&transactions).Error

	return transactions, total, err
}

// ListByClients lists the full ledger of many clients (chart aggregation)
func (r *transactionRepository) ListByClients(ctx context.Context, clientIDs []uint) ([]*models.Transaction, error) {
	if len(clientIDs) == 0 {
		return nil, nil
	}
	var transactions []*models.Transaction
	err := r.db.WithContext(ctx).
		Where("client_id IN ?", clientIDs).
		Order("game_day ASC, id ASC").
		Find(&transactions).Error
	return transactions, err
}

// SumWithdrawnOnDay sums a client's WITHDRAWAL amounts stamped with the
// given game day; the daily-limit check is defined on this sum.
func (r *transactionRepository) SumWithdrawnOnDay(ctx context.Context, clientID uint, gameDay int) (decimal.Decimal, error) {
	var raw *string
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("SUM(amount)").
		Where("client_id = ? AND type = ? AND game_day = ?", clientID, domain.TxWithdrawal, gameDay).
		Scan(&raw).Error
	if err != nil || raw == nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(*raw)
}

// DeleteByClients hard-deletes the ledgers of clients (slot reset only)
func (r *transactionRepository) DeleteByClients(ctx context.Context, clientIDs []uint) error {
	if len(clientIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("client_id IN ?", clientIDs).Delete(&models.Transaction{}).Error
}
