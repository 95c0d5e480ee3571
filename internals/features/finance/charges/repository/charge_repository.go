package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartedu_backend/internals/features/finance/charges/model"
	database "smartedu_backend/internals/databases"
	"smartedu_backend/internals/helpers/apperror"
	"smartedu_backend/internals/helpers/paginate"
)

type ChargeRepository struct {
	db   *gorm.DB
	coll *paginate.GormCollection[model.Charge]
}

func NewChargeRepository(db *gorm.DB) *ChargeRepository {
	return &ChargeRepository{db: db, coll: paginate.NewGormCollection[model.Charge](db, "charges")}
}

func (r *ChargeRepository) Collection() paginate.Collection[model.Charge] { return r.coll }

func (r *ChargeRepository) Create(ctx context.Context, ch *model.Charge) error {
	if err := database.Conn(ctx, r.db).Create(ch).Error; err != nil {
		return apperror.Store("create charge failed", err)
	}
	return nil
}

// FindByID returns nil, nil when absent.
func (r *ChargeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Charge, error) {
	return r.first(database.Conn(ctx, r.db).Where("charge_id = ?", id))
}

// FindLatest returns the most recently created charge.
func (r *ChargeRepository) FindLatest(ctx context.Context) (*model.Charge, error) {
	return r.first(database.Conn(ctx, r.db).Order("charge_created_at DESC"))
}

func (r *ChargeRepository) first(q *gorm.DB) (*model.Charge, error) {
	var ch model.Charge
	if err := q.Take(&ch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.Store("load charge failed", err)
	}
	return &ch, nil
}
