package quoterepo

import (
	"context"
	"errors"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/core/domain/model/quote"
	"proxybuy/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

// GormQuoteRepository implements ports.QuoteRepository using GORM.
//
// Resolution writes carry "WHERE approval_state = 'pending'", so two
// concurrent resolutions of the same quote settle to exactly one winner.
type GormQuoteRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormQuoteRepository creates a new GORM quote repository.
func NewGormQuoteRepository(db *gorm.DB, tracker aggregateTracker) *GormQuoteRepository {
	return &GormQuoteRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new quote. The pending partial unique index rejects a second
// open quote for the same order; that violation maps to a ConflictError.
func (r *GormQuoteRepository) Add(ctx context.Context, aggregate *quote.Quote) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewConflictError("pending quote", aggregate.OrderID().String())
		}
		return errs.NewUnavailableError("create quote", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update persists a quote resolution conditionally on the stored row still
// being pending.
func (r *GormQuoteRepository) Update(ctx context.Context, aggregate *quote.Quote) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&QuoteDTO{}).
		Where("id = ? AND approval_state = ?", dto.ID, quote.ApprovalStatePending.String()).
		Updates(map[string]any{
			"approval_state": dto.ApprovalState,
			"approved_at":    dto.ApprovedAt,
			"rejected_at":    dto.RejectedAt,
			"notes":          dto.Notes,
		})
	if result.Error != nil {
		return errs.NewUnavailableError("update quote", result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&QuoteDTO{}).
			Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return errs.NewUnavailableError("count quotes", err)
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("quote", aggregate.ID().String())
		}
		return errs.NewConflictError("quote", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a quote by ID.
func (r *GormQuoteRepository) Get(ctx context.Context, id kernel.UUID) (*quote.Quote, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto QuoteDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("quote", id.String())
		}
		return nil, errs.NewUnavailableError("get quote", err)
	}

	return toDomain(dto)
}

// GetLatestForOrder retrieves the most recently created quote for an order.
func (r *GormQuoteRepository) GetLatestForOrder(ctx context.Context, orderID kernel.UUID) (*quote.Quote, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto QuoteDTO
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		First(&dto, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("quote for order", orderID.String())
		}
		return nil, errs.NewUnavailableError("get latest quote", err)
	}

	return toDomain(dto)
}

// ListForOrder retrieves all quotes for an order, newest first.
func (r *GormQuoteRepository) ListForOrder(ctx context.Context, orderID kernel.UUID) ([]*quote.Quote, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []QuoteDTO
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, errs.NewUnavailableError("list quotes", err)
	}

	quotes := make([]*quote.Quote, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, aggregate)
	}

	return quotes, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
