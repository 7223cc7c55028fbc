package handler

import (
	"net/http"

	"github.com/JeffMenca/pitstop-manager/internal/service"
)

// ResourceHandler re-exposes the backend's CRUD lists to the gateway's own
// pages. Each call rides the transport wrapper, so tokens rotate and a 401
// tears the session down no matter which screen triggered it.
type ResourceHandler struct {
	vehicles  *service.VehicleService
	orders    *service.WorkOrderService
	inventory *service.InventoryService
	invoices  *service.InvoiceService
	payments  *service.PaymentService
}

func NewResourceHandler(
	vehicles *service.VehicleService,
	orders *service.WorkOrderService,
	inventory *service.InventoryService,
	invoices *service.InvoiceService,
	payments *service.PaymentService,
) *ResourceHandler {
	return &ResourceHandler{
		vehicles:  vehicles,
		orders:    orders,
		inventory: inventory,
		invoices:  invoices,
		payments:  payments,
	}
}

func (h *ResourceHandler) Vehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicles.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, vehicles)
}

func (h *ResourceHandler) WorkOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, orders)
}

func (h *ResourceHandler) Inventory(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventory.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, items)
}

func (h *ResourceHandler) Invoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.invoices.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, invoices)
}

func (h *ResourceHandler) Payments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.payments.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, payments)
}
