package ports

import (
	"context"

	"proxybuy/internal/core/domain/model/kernel"
)

// QuoteExpiryNotifier is notified when a pending quote passes its validity
// deadline. Expiry itself stays implicit (the quote keeps its pending state
// and approval attempts fail with QuoteExpired); the notifier only lets the
// presentation layer prompt the operator to re-quote.
type QuoteExpiryNotifier interface {
	NotifyQuoteExpired(ctx context.Context, quoteID, orderID kernel.UUID) error
}
