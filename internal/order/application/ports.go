package application

import (
	"context"

	"github.com/riservarotundo/order-service/internal/order/domain"
)

// OrderRepository stores a validated order under the named collection and
// returns the generated identifier. Identifiers are unique and never reused.
type OrderRepository interface {
	Save(ctx context.Context, collection string, o domain.Order) (string, error)
}

// Notifier delivers a formatted message to the recipient. Implementations
// must be a silent no-op when the transport is not configured.
type Notifier interface {
	Notify(ctx context.Context, recipient, subject, body string) error
}
