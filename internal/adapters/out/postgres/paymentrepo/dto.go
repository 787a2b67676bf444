// Package paymentrepo persists payment records for orders.
package paymentrepo

import (
	"time"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/core/domain/model/payment"
	"proxybuy/internal/pkg/errs"

	"github.com/google/uuid"
	"golang.org/x/text/currency"
)

// PaymentDTO represents the database structure for persisting payments.
type PaymentDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID           uuid.UUID  `gorm:"type:uuid;index"`
	QuoteID           *uuid.UUID `gorm:"type:uuid"`
	Amount            int64      `gorm:"type:bigint"`
	Currency          string     `gorm:"type:varchar(3)"`
	PaymentMethod     string     `gorm:"type:varchar(64)"`
	ExternalPaymentID string     `gorm:"type:varchar(128)"`
	Status            string     `gorm:"type:varchar(16);index"`
	PaidAt            *time.Time `gorm:"type:timestamptz"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName specifies the database table name for payment rows.
func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(aggregate *payment.Payment) PaymentDTO {
	var quoteID *uuid.UUID
	if id := aggregate.QuoteID(); id != nil {
		raw := id.Bytes()
		quoteID = &raw
	}

	return PaymentDTO{
		ID:                aggregate.ID().Bytes(),
		OrderID:           aggregate.OrderID().Bytes(),
		QuoteID:           quoteID,
		Amount:            aggregate.Amount().Amount().IntPart(),
		Currency:          aggregate.Amount().CurrencyCode(),
		PaymentMethod:     aggregate.PaymentMethod(),
		ExternalPaymentID: aggregate.ExternalPaymentID(),
		Status:            aggregate.Status().String(),
		PaidAt:            aggregate.PaidAt(),
		CreatedAt:         aggregate.CreatedAt(),
		UpdatedAt:         aggregate.UpdatedAt(),
	}
}

func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var quoteID *kernel.UUID
	if dto.QuoteID != nil {
		qid, qErr := kernel.UUIDFromBytes((*dto.QuoteID)[:])
		if qErr != nil {
			return nil, qErr
		}
		quoteID = &qid
	}

	unit, err := currency.ParseISO(dto.Currency)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("currency", err)
	}

	status, err := payment.ToStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(
		id,
		orderID,
		quoteID,
		kernel.NewMoneyFromMinorUnits(dto.Amount, unit),
		dto.PaymentMethod,
		dto.ExternalPaymentID,
		status,
		dto.PaidAt,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
