package commands

import (
	"errors"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/pkg/guard"
)

var ErrApproveQuoteCommandIsNotConstructed = errors.New(
	"ApproveQuoteCommand must be created via NewApproveQuoteCommand constructor",
)

// ApproveQuoteCommand is the user's acceptance of a pending quote.
type ApproveQuoteCommand struct { //nolint:recvcheck //using for validation
	quoteID kernel.UUID
	actor   kernel.UUID

	guard guard.ConstructorGuard
}

// NewApproveQuoteCommand creates a command to approve a quote.
func NewApproveQuoteCommand(quoteID, actor kernel.UUID) (ApproveQuoteCommand, error) {
	cmd := ApproveQuoteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setQuoteID(quoteID),
		cmd.setActor(actor),
	); err != nil {
		return ApproveQuoteCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveQuoteCommand) Validate() error {
	return c.guard.Validate(ErrApproveQuoteCommandIsNotConstructed)
}

// QuoteID returns the quote to approve.
func (c ApproveQuoteCommand) QuoteID() kernel.UUID {
	return c.quoteID
}

// Actor returns the user approving the quote.
func (c ApproveQuoteCommand) Actor() kernel.UUID {
	return c.actor
}

func (c *ApproveQuoteCommand) setQuoteID(quoteID kernel.UUID) error {
	if err := quoteID.Validate(); err != nil {
		return err
	}
	c.quoteID = quoteID
	return nil
}

func (c *ApproveQuoteCommand) setActor(actor kernel.UUID) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
