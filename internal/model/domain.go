package model

// Domain records returned by the backend's CRUD resources. These mirror the
// backend tables one-to-one; the client does no validation beyond decoding.

type Vehicle struct {
	ID        int    `json:"id"`
	IDUsuario int    `json:"id_usuario"`
	Marca     string `json:"marca"`
	Modelo    string `json:"modelo"`
	Placas    string `json:"placas"`
}

type WorkOrder struct {
	ID           int    `json:"id"`
	IDVehiculo   int    `json:"id_vehiculo"`
	IDEstado     int    `json:"id_estado"`
	FechaIngreso string `json:"fecha_ingreso"`
	HoraIngreso  string `json:"hora_ingreso"`
}

type InventoryItem struct {
	ID             int     `json:"id"`
	IDRepuesto     int     `json:"id_repuesto"`
	Cantidad       int     `json:"cantidad"`
	PrecioUnitario float64 `json:"precio_unitario"`
}

type Invoice struct {
	ID       int     `json:"id"`
	IDOrden  int     `json:"id_orden"`
	Total    float64 `json:"total"`
	Fecha    string  `json:"fecha"`
	Pagada   bool    `json:"pagada"`
	IDEstado int     `json:"id_estado"`
}

type SupplierPayment struct {
	ID        int     `json:"id"`
	IDFactura int     `json:"id_factura"`
	Monto     float64 `json:"monto"`
	Fecha     string  `json:"fecha"`
}

// ColumnUpdate is the backend's generic single-column PUT body, used by the
// admin tables for inline edits.
type ColumnUpdate struct {
	ColumnName string `json:"columnName"`
	Value      any    `json:"value"`
}
