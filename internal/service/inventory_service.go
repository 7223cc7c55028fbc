package service

import (
	"context"
	"fmt"

	"github.com/JeffMenca/pitstop-manager/internal/api"
	"github.com/JeffMenca/pitstop-manager/internal/model"
)

// InventoryService wraps the backend's /inventario resource.
type InventoryService struct {
	api *api.Client
}

func NewInventoryService(client *api.Client) *InventoryService {
	return &InventoryService{api: client}
}

func (s *InventoryService) List(ctx context.Context) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	if err := s.api.Get(ctx, "/inventario", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *InventoryService) Create(ctx context.Context, item model.InventoryItem) error {
	return s.api.Post(ctx, "/inventario", item, nil)
}

func (s *InventoryService) UpdateStock(ctx context.Context, id int, quantity int) error {
	return s.api.Put(ctx, fmt.Sprintf("/inventario/updateStock/%d", id), map[string]int{"cantidad": quantity}, nil)
}

func (s *InventoryService) UpdateColumn(ctx context.Context, id int, column string, value any) error {
	return s.api.Put(ctx, fmt.Sprintf("/inventario/%d", id), model.ColumnUpdate{ColumnName: column, Value: value}, nil)
}
