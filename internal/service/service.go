package service

import (
	"context"

	"go.uber.org/zap"

	"demo/marketplace/internal/model"
	"demo/marketplace/internal/store"
	"demo/marketplace/internal/validate"
)

// Service drives the order lifecycle: submissions are upserted by orderHash,
// purchases move an order from active to sold.
type Service struct {
	repo store.Repository
	log  *zap.Logger
}

func New(repo store.Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, log: log}
}

// SubmitOrder rejects incomplete submissions before the store is touched.
func (s *Service) SubmitOrder(ctx context.Context, o model.NewOrder) (model.OrderSummary, error) {
	if err := validate.Order(o); err != nil {
		return model.OrderSummary{}, err
	}

	summary, err := s.repo.UpsertOrder(ctx, o)
	if err != nil {
		return model.OrderSummary{}, err
	}
	s.log.Debug("order upserted",
		zap.String("orderId", summary.ID),
		zap.String("orderHash", o.OrderHash))
	return summary, nil
}

func (s *Service) ListActiveOrders(ctx context.Context, limit int) ([]model.Order, error) {
	orders, err := s.repo.ListActiveOrders(ctx, validate.Limit(limit))
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

func (s *Service) RecordPurchase(ctx context.Context, orderHash, buyerAddress string) (model.Order, error) {
	if err := validate.Purchase(orderHash, buyerAddress); err != nil {
		return model.Order{}, err
	}

	o, err := s.repo.MarkSold(ctx, orderHash, buyerAddress)
	if err != nil {
		return model.Order{}, err
	}
	s.log.Info("order sold",
		zap.String("orderId", o.ID),
		zap.String("orderHash", orderHash))
	return o, nil
}
