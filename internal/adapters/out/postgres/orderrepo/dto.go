// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate and its append-only status history, handling the conversion
// between domain entities and database rows.
package orderrepo

import (
	"time"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/core/domain/model/order"
	"proxybuy/internal/pkg/errs"

	"github.com/google/uuid"
	"golang.org/x/text/currency"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Money columns hold minor units in the row's currency; the version column is
// the optimistic-concurrency token checked by conditional updates.
type OrderDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber        string     `gorm:"type:varchar(32);uniqueIndex"`
	UserID             uuid.UUID  `gorm:"type:uuid;index"`
	ProductTitle       string     `gorm:"type:varchar(512)"`
	ProductUnitPrice   int64      `gorm:"type:bigint"`
	ProductSourceURL   string     `gorm:"type:text"`
	ProductHotdealID   *uuid.UUID `gorm:"type:uuid"`
	Quantity           int        `gorm:"type:int"`
	AddressID          *uuid.UUID `gorm:"type:uuid"`
	Option             string     `gorm:"type:text"`
	SpecialRequest     string     `gorm:"type:text"`
	Status             string     `gorm:"type:varchar(32);index"`
	EstimateSubtotal   int64      `gorm:"type:bigint"`
	EstimateServiceFee int64      `gorm:"type:bigint"`
	EstimateShipping   int64      `gorm:"type:bigint"`
	EstimateTotal      int64      `gorm:"type:bigint"`
	Currency           string     `gorm:"type:varchar(3)"`
	Version            int64      `gorm:"type:bigint"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName specifies the database table name for order rows.
func (OrderDTO) TableName() string {
	return "orders"
}

// StatusHistoryDTO represents one append-only status history row.
// FromStatus is null only for the creation entry.
type StatusHistoryDTO struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID         `gorm:"type:uuid;index"`
	FromStatus *string           `gorm:"type:varchar(32)"`
	ToStatus   string            `gorm:"type:varchar(32)"`
	ChangedBy  uuid.UUID         `gorm:"type:uuid"`
	Note       string            `gorm:"type:text"`
	Metadata   map[string]string `gorm:"serializer:json;type:jsonb"`
	CreatedAt  time.Time
}

// TableName specifies the database table name for history rows.
func (StatusHistoryDTO) TableName() string {
	return "order_status_history"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var hotdealID *uuid.UUID
	if id := aggregate.Product().HotdealID(); id != nil {
		raw := id.Bytes()
		hotdealID = &raw
	}

	var addressID *uuid.UUID
	if id := aggregate.AddressID(); id != nil {
		raw := id.Bytes()
		addressID = &raw
	}

	estimate := aggregate.Estimate()

	return OrderDTO{
		ID:                 aggregate.ID().Bytes(),
		OrderNumber:        aggregate.OrderNumber().String(),
		UserID:             aggregate.UserID().Bytes(),
		ProductTitle:       aggregate.Product().Title(),
		ProductUnitPrice:   aggregate.Product().UnitPrice().Amount().IntPart(),
		ProductSourceURL:   aggregate.Product().SourceURL(),
		ProductHotdealID:   hotdealID,
		Quantity:           aggregate.Quantity(),
		AddressID:          addressID,
		Option:             aggregate.Option(),
		SpecialRequest:     aggregate.SpecialRequest(),
		Status:             aggregate.Status().String(),
		EstimateSubtotal:   estimate.Subtotal.Amount().IntPart(),
		EstimateServiceFee: estimate.ServiceFee.Amount().IntPart(),
		EstimateShipping:   estimate.Shipping.Amount().IntPart(),
		EstimateTotal:      estimate.Total.Amount().IntPart(),
		Currency:           aggregate.Product().UnitPrice().CurrencyCode(),
		Version:            aggregate.Version(),
		CreatedAt:          aggregate.CreatedAt(),
		UpdatedAt:          aggregate.UpdatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	orderNumber, err := kernel.OrderNumberFromString(dto.OrderNumber)
	if err != nil {
		return nil, err
	}

	var hotdealID *kernel.UUID
	if dto.ProductHotdealID != nil {
		hid, hErr := kernel.UUIDFromBytes((*dto.ProductHotdealID)[:])
		if hErr != nil {
			return nil, hErr
		}
		hotdealID = &hid
	}

	var addressID *kernel.UUID
	if dto.AddressID != nil {
		aid, aErr := kernel.UUIDFromBytes((*dto.AddressID)[:])
		if aErr != nil {
			return nil, aErr
		}
		addressID = &aid
	}

	unit, err := currency.ParseISO(dto.Currency)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("currency", err)
	}

	product, err := order.NewProductSnapshot(
		dto.ProductTitle,
		kernel.NewMoneyFromMinorUnits(dto.ProductUnitPrice, unit),
		dto.ProductSourceURL,
		hotdealID,
	)
	if err != nil {
		return nil, err
	}

	status, err := order.ToStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	estimate := order.PriceEstimate{
		Subtotal:   kernel.NewMoneyFromMinorUnits(dto.EstimateSubtotal, unit),
		ServiceFee: kernel.NewMoneyFromMinorUnits(dto.EstimateServiceFee, unit),
		Shipping:   kernel.NewMoneyFromMinorUnits(dto.EstimateShipping, unit),
		Total:      kernel.NewMoneyFromMinorUnits(dto.EstimateTotal, unit),
	}

	return order.RestoreOrder(
		id,
		orderNumber,
		userID,
		product,
		dto.Quantity,
		addressID,
		dto.Option,
		dto.SpecialRequest,
		status,
		estimate,
		dto.Version,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func historyFromDomain(entry *order.StatusHistoryEntry) StatusHistoryDTO {
	var fromStatus *string
	if from := entry.FromStatus(); from != nil {
		s := from.String()
		fromStatus = &s
	}

	return StatusHistoryDTO{
		ID:         entry.ID().Bytes(),
		OrderID:    entry.OrderID().Bytes(),
		FromStatus: fromStatus,
		ToStatus:   entry.ToStatus().String(),
		ChangedBy:  entry.ChangedBy().Bytes(),
		Note:       entry.Note(),
		Metadata:   entry.Metadata(),
		CreatedAt:  entry.CreatedAt(),
	}
}

func historyToDomain(dto StatusHistoryDTO) (*order.StatusHistoryEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	changedBy, err := kernel.UUIDFromBytes(dto.ChangedBy[:])
	if err != nil {
		return nil, err
	}

	var fromStatus *order.Status
	if dto.FromStatus != nil {
		from, fErr := order.ToStatus(*dto.FromStatus)
		if fErr != nil {
			return nil, fErr
		}
		fromStatus = &from
	}

	toStatus, err := order.ToStatus(dto.ToStatus)
	if err != nil {
		return nil, err
	}

	return order.RestoreStatusHistoryEntry(
		id,
		orderID,
		fromStatus,
		toStatus,
		changedBy,
		dto.Note,
		dto.Metadata,
		dto.CreatedAt,
	)
}
