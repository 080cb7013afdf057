package dto

import "github.com/shopspring/decimal"

// ProductResponse producto del catálogo (solo lectura; el catálogo se carga con cmd/seed_catalog).
type ProductResponse struct {
	ID              string          `json:"id"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	MinSellingPrice decimal.Decimal `json:"min_selling_price"`
}

// ProductListResponse página del catálogo.
type ProductListResponse struct {
	Items  []ProductResponse `json:"items"`
	Total  int               `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}
