package service

import (
	"context"

	"github.com/JeffMenca/pitstop-manager/internal/api"
	"github.com/JeffMenca/pitstop-manager/internal/model"
)

// PaymentService wraps the backend's /pago resource (supplier payments).
type PaymentService struct {
	api *api.Client
}

func NewPaymentService(client *api.Client) *PaymentService {
	return &PaymentService{api: client}
}

func (s *PaymentService) List(ctx context.Context) ([]model.SupplierPayment, error) {
	var payments []model.SupplierPayment
	if err := s.api.Get(ctx, "/pago", &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func (s *PaymentService) Create(ctx context.Context, payment model.SupplierPayment) error {
	return s.api.Post(ctx, "/pago", payment, nil)
}
