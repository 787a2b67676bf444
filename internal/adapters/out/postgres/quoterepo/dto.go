// Package quoterepo persists quote aggregates. The quotes table carries a
// partial unique index on order_id for rows in the pending approval state,
// so the database enforces at-most-one open quote per order.
package quoterepo

import (
	"time"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/core/domain/model/quote"
	"proxybuy/internal/pkg/errs"

	"github.com/google/uuid"
	"golang.org/x/text/currency"
)

// QuoteDTO represents the database structure for persisting quotes.
// Money columns hold minor units in the row's currency.
type QuoteDTO struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID               uuid.UUID  `gorm:"type:uuid;index;index:idx_quotes_pending_order,unique,where:approval_state = 'pending'"`
	ProductCost           int64      `gorm:"type:bigint"`
	DomesticShipping      int64      `gorm:"type:bigint"`
	InternationalShipping int64      `gorm:"type:bigint"`
	Fee                   int64      `gorm:"type:bigint"`
	TotalAmount           int64      `gorm:"type:bigint"`
	Currency              string     `gorm:"type:varchar(3)"`
	PaymentMethod         string     `gorm:"type:varchar(64)"`
	ApprovalState         string     `gorm:"type:varchar(16)"`
	ValidUntil            time.Time  `gorm:"type:timestamptz"`
	ApprovedAt            *time.Time `gorm:"type:timestamptz"`
	RejectedAt            *time.Time `gorm:"type:timestamptz"`
	Notes                 string     `gorm:"type:text"`
	CreatedAt             time.Time
}

// TableName specifies the database table name for quote rows.
func (QuoteDTO) TableName() string {
	return "quotes"
}

func fromDomain(aggregate *quote.Quote) QuoteDTO {
	return QuoteDTO{
		ID:                    aggregate.ID().Bytes(),
		OrderID:               aggregate.OrderID().Bytes(),
		ProductCost:           aggregate.ProductCost().Amount().IntPart(),
		DomesticShipping:      aggregate.DomesticShipping().Amount().IntPart(),
		InternationalShipping: aggregate.InternationalShipping().Amount().IntPart(),
		Fee:                   aggregate.Fee().Amount().IntPart(),
		TotalAmount:           aggregate.TotalAmount().Amount().IntPart(),
		Currency:              aggregate.ProductCost().CurrencyCode(),
		PaymentMethod:         aggregate.PaymentMethod(),
		ApprovalState:         aggregate.ApprovalState().String(),
		ValidUntil:            aggregate.ValidUntil(),
		ApprovedAt:            aggregate.ApprovedAt(),
		RejectedAt:            aggregate.RejectedAt(),
		Notes:                 aggregate.Notes(),
		CreatedAt:             aggregate.CreatedAt(),
	}
}

func toDomain(dto QuoteDTO) (*quote.Quote, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	unit, err := currency.ParseISO(dto.Currency)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("currency", err)
	}

	approvalState, err := quote.ToApprovalState(dto.ApprovalState)
	if err != nil {
		return nil, err
	}

	return quote.RestoreQuote(
		id,
		orderID,
		kernel.NewMoneyFromMinorUnits(dto.ProductCost, unit),
		kernel.NewMoneyFromMinorUnits(dto.DomesticShipping, unit),
		kernel.NewMoneyFromMinorUnits(dto.InternationalShipping, unit),
		kernel.NewMoneyFromMinorUnits(dto.Fee, unit),
		kernel.NewMoneyFromMinorUnits(dto.TotalAmount, unit),
		dto.PaymentMethod,
		approvalState,
		dto.ValidUntil,
		dto.ApprovedAt,
		dto.RejectedAt,
		dto.Notes,
		dto.CreatedAt,
	)
}
