package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smartedu_backend/internals/features/finance/payments/model"
	database "smartedu_backend/internals/databases"
	"smartedu_backend/internals/helpers/apperror"
	"smartedu_backend/internals/helpers/paginate"
)

type PaymentRepository struct {
	db   *gorm.DB
	coll *paginate.GormCollection[model.Payment]
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db, coll: paginate.NewGormCollection[model.Payment](db, "payments")}
}

func (r *PaymentRepository) Collection() paginate.Collection[model.Payment] { return r.coll }

func (r *PaymentRepository) Create(ctx context.Context, p *model.Payment) error {
	if err := database.Conn(ctx, r.db).Create(p).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return apperror.Conflict("transaction id already exists")
		}
		return apperror.Store("create payment failed", err)
	}
	return nil
}

// FindByTransactionID returns nil, nil when absent.
func (r *PaymentRepository) FindByTransactionID(ctx context.Context, txID string) (*model.Payment, error) {
	return r.first(database.Conn(ctx, r.db).Where("payment_transaction_id = ?", txID))
}

// LockByTransactionID takes a row lock; call inside WithinTx.
func (r *PaymentRepository) LockByTransactionID(ctx context.Context, txID string) (*model.Payment, error) {
	return r.first(database.Conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("payment_transaction_id = ?", txID))
}

func (r *PaymentRepository) first(q *gorm.DB) (*model.Payment, error) {
	var p model.Payment
	if err := q.Take(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.Store("load payment failed", err)
	}
	return &p, nil
}

// Update writes every column of p (status, payload, metadata, refund).
func (r *PaymentRepository) Update(ctx context.Context, p *model.Payment) error {
	if err := database.Conn(ctx, r.db).Save(p).Error; err != nil {
		return apperror.Store("update payment failed", err)
	}
	return nil
}
