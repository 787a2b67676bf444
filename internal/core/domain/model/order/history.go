package order

import (
	"errors"
	"time"

	"proxybuy/internal/core/domain/model/kernel"
)

// ErrHistoryEntryIsNotConstructed is returned when a StatusHistoryEntry was not
// created through NewStatusHistoryEntry or RestoreStatusHistoryEntry.
var ErrHistoryEntryIsNotConstructed = errors.New(
	"StatusHistoryEntry must be created via NewStatusHistoryEntry or RestoreStatusHistoryEntry",
)

// StatusHistoryEntry is an immutable, append-only audit record of one status
// transition on an order. One entry is written in the same transaction as
// every accepted transition, including the creation event, for which
// FromStatus is nil.
//
// The chronologically last entry's ToStatus always equals the order's current
// status; the service enforces this by writing the pair atomically.
type StatusHistoryEntry struct {
	id         kernel.UUID
	orderID    kernel.UUID
	fromStatus *Status
	toStatus   Status
	changedBy  kernel.UUID
	note       string
	metadata   map[string]string
	createdAt  time.Time

	isConstructed bool
}

// NewStatusHistoryEntry creates an audit record for a status transition.
// fromStatus must be nil only for the creation event.
func NewStatusHistoryEntry(
	id kernel.UUID,
	orderID kernel.UUID,
	fromStatus *Status,
	toStatus Status,
	changedBy kernel.UUID,
	note string,
	metadata map[string]string,
	now time.Time,
) (*StatusHistoryEntry, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		changedBy.Validate(),
		toStatus.Validate(),
	); err != nil {
		return nil, err
	}
	if fromStatus != nil {
		if err := fromStatus.Validate(); err != nil {
			return nil, err
		}
	}

	return &StatusHistoryEntry{
		id:            id,
		orderID:       orderID,
		fromStatus:    fromStatus,
		toStatus:      toStatus,
		changedBy:     changedBy,
		note:          note,
		metadata:      metadata,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreStatusHistoryEntry reconstructs an audit record from persistence.
func RestoreStatusHistoryEntry(
	id kernel.UUID,
	orderID kernel.UUID,
	fromStatus *Status,
	toStatus Status,
	changedBy kernel.UUID,
	note string,
	metadata map[string]string,
	createdAt time.Time,
) (*StatusHistoryEntry, error) {
	return NewStatusHistoryEntry(id, orderID, fromStatus, toStatus, changedBy, note, metadata, createdAt)
}

// Validate ensures the entry was created through a factory function.
func (e *StatusHistoryEntry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrHistoryEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *StatusHistoryEntry) ID() kernel.UUID {
	return e.id
}

// OrderID returns the order the entry belongs to.
func (e *StatusHistoryEntry) OrderID() kernel.UUID {
	return e.orderID
}

// FromStatus returns the status before the transition, or nil for the creation event.
func (e *StatusHistoryEntry) FromStatus() *Status {
	return e.fromStatus
}

// ToStatus returns the status after the transition.
func (e *StatusHistoryEntry) ToStatus() Status {
	return e.toStatus
}

// ChangedBy returns the actor who triggered the transition.
func (e *StatusHistoryEntry) ChangedBy() kernel.UUID {
	return e.changedBy
}

// Note returns the optional free-text note.
func (e *StatusHistoryEntry) Note() string {
	return e.note
}

// Metadata returns the optional structured metadata.
func (e *StatusHistoryEntry) Metadata() map[string]string {
	return e.metadata
}

// CreatedAt returns when the transition was recorded.
func (e *StatusHistoryEntry) CreatedAt() time.Time {
	return e.createdAt
}
