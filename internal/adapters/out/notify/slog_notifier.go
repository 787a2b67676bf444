// Package notify provides outbound notification adapters.
package notify

import (
	"context"
	"log/slog"

	"proxybuy/internal/core/domain/model/kernel"
)

// SlogQuoteExpiryNotifier reports expired quotes to the structured log.
// Stands in for a real push channel until the notification service exists.
type SlogQuoteExpiryNotifier struct {
	logger *slog.Logger
}

// NewSlogQuoteExpiryNotifier creates a log-backed quote expiry notifier.
func NewSlogQuoteExpiryNotifier(logger *slog.Logger) *SlogQuoteExpiryNotifier {
	return &SlogQuoteExpiryNotifier{
		logger: logger.With("component", "quote_expiry_notifier"),
	}
}

// NotifyQuoteExpired logs the expired quote.
func (n *SlogQuoteExpiryNotifier) NotifyQuoteExpired(ctx context.Context, quoteID, orderID kernel.UUID) error {
	n.logger.InfoContext(ctx, "Quote passed its validity deadline",
		"quote_id", quoteID.String(), "order_id", orderID.String())
	return nil
}
