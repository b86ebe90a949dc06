package domain

import "time"

// Record is what the generic repositories need from an entity. Base and
// TenantBase implement it; entities get it by embedding one of them.
type Record interface {
	GetID() string
	Tenant() string
	TenantScoped() bool
	Active() bool
	Created() time.Time
	Stamp(id, tenantID string, now time.Time)
	Touch(now time.Time)
	SetActive(active bool, now time.Time)
}

// Base is the shape shared by every row: identity, lifecycle flag and timestamps.
// Global lookup tables embed it directly.
type Base struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	IsActive  bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt time.Time `gorm:"type:timestamp with time zone;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp with time zone;not null" json:"updated_at"`
}

func (b *Base) GetID() string      { return b.ID }
func (b *Base) Tenant() string     { return "" }
func (b *Base) TenantScoped() bool { return false }
func (b *Base) Active() bool       { return b.IsActive }
func (b *Base) Created() time.Time { return b.CreatedAt }

// Stamp initializes identity and lifecycle for a new row. The tenant id is
// ignored for global rows.
func (b *Base) Stamp(id, _ string, now time.Time) {
	b.ID = id
	b.IsActive = true
	b.CreatedAt = now
	b.UpdatedAt = now
}

func (b *Base) Touch(now time.Time) {
	if now.Before(b.CreatedAt) {
		now = b.CreatedAt
	}
	b.UpdatedAt = now
}

func (b *Base) SetActive(active bool, now time.Time) {
	b.IsActive = active
	b.Touch(now)
}

// Activate and Deactivate are the entity-level soft delete toggles.
func (b *Base) Activate(now time.Time)   { b.SetActive(true, now) }
func (b *Base) Deactivate(now time.Time) { b.SetActive(false, now) }

// TenantBase is embedded by every row owned by a subscriber.
type TenantBase struct {
	Base
	SubscriberID string `gorm:"type:uuid;not null;index" json:"subscriber_id"`
}

func (b *TenantBase) Tenant() string     { return b.SubscriberID }
func (b *TenantBase) TenantScoped() bool { return true }

func (b *TenantBase) Stamp(id, tenantID string, now time.Time) {
	b.Base.Stamp(id, tenantID, now)
	b.SubscriberID = tenantID
}
