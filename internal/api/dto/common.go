package dto

import (
	"bytes"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/repository"
)

// Decimal reads a JSON number or numeric string and always writes a bare
// number with two fraction digits, so 180 is rendered as 180.00.
type Decimal struct {
	decimal.Decimal
}

func NewDecimal(d decimal.Decimal) Decimal {
	return Decimal{Decimal: d}
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(d.StringFixed(2)), nil
}

func (d *Decimal) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	return d.Decimal.UnmarshalJSON(data)
}

// decimalPtr unwraps an optional request value.
func decimalPtr(d *Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := d.Decimal
	return &v
}

// Meta is the identity and lifecycle block of every response.
type Meta struct {
	ID        string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	IsActive  bool      `json:"is_active" example:"true"`
	CreatedAt time.Time `json:"created_at" example:"2025-05-20T14:03:11Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2025-05-20T14:03:11Z"`
}

func metaOf(b domain.Base) Meta {
	return Meta{ID: b.ID, IsActive: b.IsActive, CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt}
}

// TenantMeta adds the owning subscriber.
type TenantMeta struct {
	Meta
	SubscriberID string `json:"subscriber_id" example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
}

func tenantMetaOf(b domain.TenantBase) TenantMeta {
	return TenantMeta{Meta: metaOf(b.Base), SubscriberID: b.SubscriberID}
}

// PageResponse is one page of a collection listing.
type PageResponse[T any] struct {
	Total int64 `json:"total" example:"42"`
	Page  int   `json:"page" example:"1"`
	Size  int   `json:"size" example:"10"`
	Items []T   `json:"items"`
}

func NewPageResponse[E any, R any](p *repository.Page[E], render func(*E) R) PageResponse[R] {
	items := make([]R, len(p.Items))
	for i := range p.Items {
		items[i] = render(&p.Items[i])
	}
	return PageResponse[R]{Total: p.Total, Page: p.Page, Size: p.Size, Items: items}
}
