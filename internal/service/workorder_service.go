package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/JeffMenca/pitstop-manager/internal/api"
	"github.com/JeffMenca/pitstop-manager/internal/model"
)

// WorkOrderService wraps the backend's /ordenreparacion resource, including
// the filtered lookups the order screens use.
type WorkOrderService struct {
	api *api.Client
}

func NewWorkOrderService(client *api.Client) *WorkOrderService {
	return &WorkOrderService{api: client}
}

func (s *WorkOrderService) List(ctx context.Context) ([]model.WorkOrder, error) {
	var orders []model.WorkOrder
	if err := s.api.Get(ctx, "/ordenreparacion", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *WorkOrderService) ByVehicle(ctx context.Context, vehicleID int) ([]model.WorkOrder, error) {
	var orders []model.WorkOrder
	if err := s.api.Get(ctx, fmt.Sprintf("/ordenreparacion/idVehiculo/%d", vehicleID), &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *WorkOrderService) ByPlates(ctx context.Context, plates string) ([]model.WorkOrder, error) {
	var orders []model.WorkOrder
	if err := s.api.Get(ctx, "/ordenreparacion/placas/"+url.PathEscape(plates), &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *WorkOrderService) ByStatus(ctx context.Context, statusID int) ([]model.WorkOrder, error) {
	var orders []model.WorkOrder
	if err := s.api.Get(ctx, fmt.Sprintf("/ordenreparacion/estado/%d", statusID), &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *WorkOrderService) Create(ctx context.Context, order model.WorkOrder) error {
	return s.api.Post(ctx, "/ordenreparacion", order, nil)
}

func (s *WorkOrderService) Delete(ctx context.Context, id int) error {
	return s.api.Delete(ctx, fmt.Sprintf("/ordenreparacion/%d", id))
}
