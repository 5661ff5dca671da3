// AngelaMos | 2026
// dto.go

package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	Name        string          `json:"name"        validate:"required,min=1,max=60"`
	Description *string         `json:"description" validate:"omitempty,max=400"`
	Price       decimal.Decimal `json:"price"       validate:"price"`
	StoreID     string          `json:"store_id"    validate:"required,uuid"`
}

type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	StoreID     string          `json:"store_id"`
	CreatedAt   time.Time       `json:"created_at"`
}

func ToProductResponse(p *Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		StoreID:     p.StoreID,
		CreatedAt:   p.CreatedAt,
	}
}

func ToProductResponseList(products []Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, ToProductResponse(&products[i]))
	}
	return out
}
