package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/railzway-stripe/internal/payment/domain"
)

// PreviousSources lists the saved Stripe sources of the order's customer.
// Guest orders have none.
func (s *Service) PreviousSources(ctx context.Context, order *domain.Order) ([]*domain.PaymentSource, error) {
	if order == nil || order.UserID == nil {
		return []*domain.PaymentSource{}, nil
	}
	sources, err := s.walletRepo.ListPaymentSources(ctx, s.db, *order.UserID)
	if err != nil {
		return nil, err
	}
	if sources == nil {
		sources = []*domain.PaymentSource{}
	}
	return sources, nil
}

func (s *Service) PreviousSourcesForOrder(ctx context.Context, orderID snowflake.ID) ([]*domain.PaymentSource, error) {
	order, err := s.orderRepo.FindByID(ctx, s.db, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return s.PreviousSources(ctx, order)
}
