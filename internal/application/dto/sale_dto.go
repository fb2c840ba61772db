package dto

// SaleProductRef referencia a un producto al crear una venta.
type SaleProductRef struct {
	ProductID int64 `json:"product_id"`
}

// CreateSaleRequest entrada para crear una venta con sus líneas.
type CreateSaleRequest struct {
	BuyerID  int64            `json:"buyer_id"`
	Products []SaleProductRef `json:"products"`
}

// SaleResponse venta con sus líneas desnormalizadas (categoría, descripción, precio).
type SaleResponse struct {
	ID       int64           `json:"id"`
	BuyerID  int64           `json:"buyer_id"`
	Products []ProductPublic `json:"products"`
}

// SaleListResponse listado de ventas activas.
type SaleListResponse struct {
	Sales []SaleResponse `json:"sales"`
}
