package service

import (
	"context"
	"fmt"

	"github.com/JeffMenca/pitstop-manager/internal/api"
	"github.com/JeffMenca/pitstop-manager/internal/model"
)

// InvoiceService wraps the backend's /factura resource.
type InvoiceService struct {
	api *api.Client
}

func NewInvoiceService(client *api.Client) *InvoiceService {
	return &InvoiceService{api: client}
}

func (s *InvoiceService) List(ctx context.Context) ([]model.Invoice, error) {
	var invoices []model.Invoice
	if err := s.api.Get(ctx, "/factura", &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

func (s *InvoiceService) Create(ctx context.Context, invoice model.Invoice) error {
	return s.api.Post(ctx, "/factura", invoice, nil)
}

func (s *InvoiceService) Update(ctx context.Context, id int, invoice model.Invoice) error {
	return s.api.Put(ctx, fmt.Sprintf("/factura/%d", id), invoice, nil)
}
