package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smartedu_backend/internals/features/finance/fees/model"
	database "smartedu_backend/internals/databases"
	"smartedu_backend/internals/helpers/apperror"
	"smartedu_backend/internals/helpers/paginate"
)

type FeeRepository struct {
	db   *gorm.DB
	coll *paginate.GormCollection[model.Fee]
}

func NewFeeRepository(db *gorm.DB) *FeeRepository {
	return &FeeRepository{db: db, coll: paginate.NewGormCollection[model.Fee](db, "fees")}
}

func (r *FeeRepository) Collection() paginate.Collection[model.Fee] { return r.coll }

func (r *FeeRepository) Create(ctx context.Context, fees ...*model.Fee) error {
	if len(fees) == 0 {
		return nil
	}
	if err := database.Conn(ctx, r.db).Create(fees).Error; err != nil {
		return apperror.Store("create fee failed", err)
	}
	return nil
}

// FindByID returns nil, nil when the fee does not exist.
func (r *FeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Fee, error) {
	return r.first(database.Conn(ctx, r.db).Where("fee_id = ?", id))
}

// LockByID is FindByID with a row lock; call it inside a transaction.
func (r *FeeRepository) LockByID(ctx context.Context, id uuid.UUID) (*model.Fee, error) {
	return r.first(database.Conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("fee_id = ?", id))
}

// FindActiveByUser returns the oldest fee of the user that is not yet PAID.
func (r *FeeRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*model.Fee, error) {
	return r.first(database.Conn(ctx, r.db).
		Where("fee_user_id = ? AND fee_status <> ?", userID, model.FeeStatusPaid).
		Order("fee_due_date ASC").
		Order("fee_created_at ASC"))
}

func (r *FeeRepository) first(q *gorm.DB) (*model.Fee, error) {
	var f model.Fee
	if err := q.Take(&f).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.Store("load fee failed", err)
	}
	return &f, nil
}

// UpdateLedger writes paid amount and status together.
func (r *FeeRepository) UpdateLedger(ctx context.Context, f *model.Fee) error {
	err := database.Conn(ctx, r.db).
		Model(&model.Fee{}).
		Where("fee_id = ?", f.FeeID).
		Updates(map[string]any{
			"fee_paid_amount": f.FeePaidAmount,
			"fee_status":      f.FeeStatus,
			"fee_updated_at":  time.Now(),
		}).Error
	if err != nil {
		return apperror.Store("update fee failed", err)
	}
	return nil
}

// MarkOverdue flips open fees past their due date to OVERDUE.
func (r *FeeRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	res := database.Conn(ctx, r.db).
		Model(&model.Fee{}).
		Where("fee_status IN ? AND fee_due_date < ?",
			[]model.FeeStatus{model.FeeStatusPending, model.FeeStatusPartiallyPaid}, now).
		Updates(map[string]any{
			"fee_status":     model.FeeStatusOverdue,
			"fee_updated_at": now,
		})
	if res.Error != nil {
		return 0, apperror.Store("mark overdue failed", res.Error)
	}
	return res.RowsAffected, nil
}
