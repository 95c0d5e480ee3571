package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartedu_backend/internals/features/finance/payments/model"
	database "smartedu_backend/internals/databases"
	"smartedu_backend/internals/helpers/apperror"
	"smartedu_backend/internals/helpers/paginate"
)

// GatewayEventRepository = log callback / notifikasi gateway (audit & replay)
type GatewayEventRepository struct {
	db   *gorm.DB
	coll *paginate.GormCollection[model.PaymentGatewayEvent]
}

func NewGatewayEventRepository(db *gorm.DB) *GatewayEventRepository {
	return &GatewayEventRepository{db: db, coll: paginate.NewGormCollection[model.PaymentGatewayEvent](db, "payment_gateway_events")}
}

func (r *GatewayEventRepository) Collection() paginate.Collection[model.PaymentGatewayEvent] {
	return r.coll
}

func (r *GatewayEventRepository) Create(ctx context.Context, ev *model.PaymentGatewayEvent) error {
	if err := database.Conn(ctx, r.db).Create(ev).Error; err != nil {
		return apperror.Store("log gateway event failed", err)
	}
	return nil
}

// Finish moves an event out of "received". errMsg is stored only when non-empty.
func (r *GatewayEventRepository) Finish(ctx context.Context, id uuid.UUID, paymentID *uuid.UUID, status model.GatewayEventStatus, errMsg string) error {
	now := time.Now()
	upd := map[string]any{
		"gateway_event_status":       status,
		"gateway_event_processed_at": now,
		"gateway_event_updated_at":   now,
	}
	if paymentID != nil {
		upd["gateway_event_payment_id"] = *paymentID
	}
	if errMsg != "" {
		upd["gateway_event_error"] = errMsg
	}
	err := database.Conn(ctx, r.db).
		Model(&model.PaymentGatewayEvent{}).
		Where("gateway_event_id = ?", id).
		Updates(upd).Error
	if err != nil {
		return apperror.Store("update gateway event failed", err)
	}
	return nil
}
