package commands

import (
	"errors"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/pkg/guard"
)

var ErrRejectQuoteCommandIsNotConstructed = errors.New(
	"RejectQuoteCommand must be created via NewRejectQuoteCommand constructor",
)

// RejectQuoteCommand is the user's refusal of a pending quote. The reason is
// optional and is appended to the quote's notes.
type RejectQuoteCommand struct { //nolint:recvcheck //using for validation
	quoteID kernel.UUID
	actor   kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewRejectQuoteCommand creates a command to reject a quote.
func NewRejectQuoteCommand(quoteID, actor kernel.UUID, reason string) (RejectQuoteCommand, error) {
	cmd := RejectQuoteCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setQuoteID(quoteID),
		cmd.setActor(actor),
	); err != nil {
		return RejectQuoteCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectQuoteCommand) Validate() error {
	return c.guard.Validate(ErrRejectQuoteCommandIsNotConstructed)
}

// QuoteID returns the quote to reject.
func (c RejectQuoteCommand) QuoteID() kernel.UUID {
	return c.quoteID
}

// Actor returns the user rejecting the quote.
func (c RejectQuoteCommand) Actor() kernel.UUID {
	return c.actor
}

// Reason returns the optional rejection reason.
func (c RejectQuoteCommand) Reason() string {
	return c.reason
}

func (c *RejectQuoteCommand) setQuoteID(quoteID kernel.UUID) error {
	if err := quoteID.Validate(); err != nil {
		return err
	}
	c.quoteID = quoteID
	return nil
}

func (c *RejectQuoteCommand) setActor(actor kernel.UUID) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
