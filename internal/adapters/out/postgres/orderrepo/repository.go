package orderrepo

import (
	"context"
	"errors"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/core/domain/model/order"
	"proxybuy/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

// GormOrderRepository implements ports.OrderRepository using GORM.
//
// Updates are conditional on the stored version column: the UPDATE carries
// "WHERE id = ? AND version = ?" and bumps version by one, so a lost-update
// race surfaces as RowsAffected == 0 and is mapped to a ConflictError.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order. A colliding order number maps to a ConflictError so
// the caller can regenerate the number and retry.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewConflictError("order number", dto.OrderNumber)
		}
		return errs.NewUnavailableError("create order", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order under optimistic concurrency.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Updates(map[string]any{
			"quantity":             dto.Quantity,
			"address_id":           dto.AddressID,
			"option":               dto.Option,
			"special_request":      dto.SpecialRequest,
			"status":               dto.Status,
			"estimate_subtotal":    dto.EstimateSubtotal,
			"estimate_service_fee": dto.EstimateServiceFee,
			"estimate_shipping":    dto.EstimateShipping,
			"estimate_total":       dto.EstimateTotal,
			"version":              aggregate.Version() + 1,
			"updated_at":           dto.UpdatedAt,
		})
	if result.Error != nil {
		return errs.NewUnavailableError("update order", result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderDTO{}).
			Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return errs.NewUnavailableError("count orders", err)
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return errs.NewConflictError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, errs.NewUnavailableError("get order", err)
	}

	return toDomain(dto)
}

// GetByOrderNumber retrieves an order by its human-readable number.
func (r *GormOrderRepository) GetByOrderNumber(ctx context.Context, number kernel.OrderNumber) (*order.Order, error) {
	if err := number.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_number = ?", number.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", number.String())
		}
		return nil, errs.NewUnavailableError("get order by number", err)
	}

	return toDomain(dto)
}

// AddHistory appends one status history entry.
func (r *GormOrderRepository) AddHistory(ctx context.Context, entry *order.StatusHistoryEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := historyFromDomain(entry)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewUnavailableError("append order history", err)
	}
	return nil
}

// GetHistory retrieves all history entries for an order in chronological order.
func (r *GormOrderRepository) GetHistory(ctx context.Context, orderID kernel.UUID) ([]*order.StatusHistoryEntry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StatusHistoryDTO
	err := r.db.WithContext(ctx).
		Order("created_at, id").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, errs.NewUnavailableError("get order history", err)
	}

	entries := make([]*order.StatusHistoryEntry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := historyToDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
