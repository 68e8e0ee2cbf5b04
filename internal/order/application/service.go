package application

import (
	"context"
	"log/slog"

	"github.com/riservarotundo/order-service/internal/order/domain"
	"github.com/riservarotundo/order-service/internal/order/notification"
)

type Service struct {
	log       *slog.Logger
	repo      OrderRepository
	notifier  Notifier
	recipient string
}

func NewService(log *slog.Logger, repo OrderRepository, notifier Notifier, recipient string) *Service {
	return &Service{log: log, repo: repo, notifier: notifier, recipient: recipient}
}

// Submit persists the order and attempts the merchant notification.
// A repository failure aborts the submission; a notification failure is
// logged and discarded, the order counts as received once it is stored.
func (s *Service) Submit(ctx context.Context, o domain.Order) (string, error) {
	id, err := s.repo.Save(ctx, domain.OrderCollection, o)
	if err != nil {
		return "", err
	}

	subject, body := notification.Format(o, id)
	if err := s.notifier.Notify(ctx, s.recipient, subject, body); err != nil {
		s.log.Warn("order notification failed", "order_id", id, "err", err)
	}

	return id, nil
}
