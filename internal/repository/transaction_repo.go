package repository

import (
	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"gorm.io/gorm"
)

// TransactionRepository payment transaction data access
type TransactionRepository interface {
	Create(transaction *domain.Transaction) error
	FindByID(id uint64) (*domain.Transaction, error)
	FindByReference(reference string) (*domain.Transaction, error)
	Update(transaction *domain.Transaction) error
	ListByUser(userID uint64, page, limit int) ([]*domain.Transaction, int64, error)
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(transaction *domain.Transaction) error {
	return r.db.Create(transaction).Error
}

func (r *transactionRepository) FindByID(id uint64) (*domain.Transaction, error) {
	var tx domain.Transaction
	if err := r.db.First(&tx, id).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepository) FindByReference(reference string) (*domain.Transaction, error) {
	var tx domain.Transaction
	if err := r.db.Where("reference = ?", reference).First(&tx).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepository) Update(transaction *domain.Transaction) error {
	return r.db.Save(transaction).Error
}

func (r *transactionRepository) ListByUser(userID uint64, page, limit int) ([]*domain.Transaction, int64, error) {
	query := r.db.Model(&domain.Transaction{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var transactions []*domain.Transaction
	offset := (page - 1) * limit
	err := query.Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&transactions).Error
	if err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}
