package service

import (
	"context"
	"fmt"

	"github.com/JeffMenca/pitstop-manager/internal/api"
	"github.com/JeffMenca/pitstop-manager/internal/model"
)

// VehicleService is data-entry glue over the backend's /vehiculo resource.
type VehicleService struct {
	api *api.Client
}

func NewVehicleService(client *api.Client) *VehicleService {
	return &VehicleService{api: client}
}

func (s *VehicleService) List(ctx context.Context) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	if err := s.api.Get(ctx, "/vehiculo", &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (s *VehicleService) Create(ctx context.Context, v model.Vehicle) error {
	return s.api.Post(ctx, "/vehiculo", v, nil)
}

// UpdateColumn performs the backend's generic single-column edit, the same
// call the admin tables use for inline updates.
func (s *VehicleService) UpdateColumn(ctx context.Context, id int, column string, value any) error {
	return s.api.Put(ctx, fmt.Sprintf("/vehiculo/%d", id), model.ColumnUpdate{ColumnName: column, Value: value}, nil)
}

func (s *VehicleService) Delete(ctx context.Context, id int) error {
	return s.api.Delete(ctx, fmt.Sprintf("/vehiculo/%d", id))
}
