package paymentrepo

import (
	"context"
	"errors"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/core/domain/model/payment"
	"proxybuy/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPaymentRepository implements ports.PaymentRepository using GORM.
//
// Status writes carry "WHERE status = ?" with the status the change started
// from, so a gateway callback racing another settlement loses cleanly with a
// ConflictError instead of overwriting it.
type GormPaymentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPaymentRepository creates a new GORM payment repository.
func NewGormPaymentRepository(db *gorm.DB, tracker aggregateTracker) *GormPaymentRepository {
	return &GormPaymentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new payment record.
func (r *GormPaymentRepository) Add(ctx context.Context, aggregate *payment.Payment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewUnavailableError("create payment", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update persists a payment status change conditionally on the stored row
// still holding fromStatus.
func (r *GormPaymentRepository) Update(ctx context.Context, aggregate *payment.Payment, fromStatus payment.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&PaymentDTO{}).
		Where("id = ? AND status = ?", dto.ID, fromStatus.String()).
		Updates(map[string]any{
			"status":              dto.Status,
			"external_payment_id": dto.ExternalPaymentID,
			"paid_at":             dto.PaidAt,
			"updated_at":          dto.UpdatedAt,
		})
	if result.Error != nil {
		return errs.NewUnavailableError("update payment", result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&PaymentDTO{}).
			Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return errs.NewUnavailableError("count payments", err)
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("payment", aggregate.ID().String())
		}
		return errs.NewConflictError("payment", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a payment by ID.
func (r *GormPaymentRepository) Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PaymentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("payment", id.String())
		}
		return nil, errs.NewUnavailableError("get payment", err)
	}

	return toDomain(dto)
}

// GetCompletedForOrder retrieves a completed payment for an order.
func (r *GormPaymentRepository) GetCompletedForOrder(ctx context.Context, orderID kernel.UUID) (*payment.Payment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto PaymentDTO
	err := r.db.WithContext(ctx).
		Order("paid_at DESC, id DESC").
		First(&dto, "order_id = ? AND status = ?", orderID.Bytes(), payment.StatusCompleted.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("completed payment for order", orderID.String())
		}
		return nil, errs.NewUnavailableError("get completed payment", err)
	}

	return toDomain(dto)
}

// ListForOrder retrieves all payment records for an order, newest first.
func (r *GormPaymentRepository) ListForOrder(ctx context.Context, orderID kernel.UUID) ([]*payment.Payment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []PaymentDTO
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, errs.NewUnavailableError("list payments", err)
	}

	payments := make([]*payment.Payment, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		payments = append(payments, aggregate)
	}

	return payments, nil
}
