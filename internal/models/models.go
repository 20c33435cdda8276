package models

import (
	"time"
)

// Operation ledger operation type
type Operation string

const (
	OperationInsert Operation = "insert"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// ParseOperation maps a host-reported operation onto the ledger vocabulary.
// Anything that is not an insert or a delete is recorded as an update.
func ParseOperation(op string) Operation {
	switch Operation(op) {
	case OperationInsert:
		return OperationInsert
	case OperationDelete:
		return OperationDelete
	default:
		return OperationUpdate
	}
}

// Origin context values
const (
	ContextAdminBackend = "admin-backend"
	ContextAPI          = "api"
	ContextSystem       = "system"
	ContextCobby        = "cobby"
	ContextBackend      = "backend"

	ActorSystem = "System"
)

// Origin who caused a change and through which surface
type Origin struct {
	Context string `json:"context"`
	Actor   string `json:"user_name"`
}

// SystemOrigin fallback origin for changes without a usable call context
func SystemOrigin() Origin {
	return Origin{Context: ContextBackend, Actor: ActorSystem}
}

// Entity types
const (
	EntityProduct             = "product"
	EntityProductPrice        = "product_price"
	EntityProductCategory     = "product_category"
	EntityProductMedia        = "product_media"
	EntityCategory            = "category"
	EntityCurrency            = "currency"
	EntityTax                 = "tax"
	EntityUnit                = "unit"
	EntityRule                = "rule"
	EntitySalesChannel        = "sales_channel"
	EntityDeliveryTime        = "delivery_time"
	EntityTag                 = "tag"
	EntityPropertyGroup       = "property_group"
	EntityPropertyGroupOption = "property_group_option"
	EntityMedia               = "media"
	EntityManufacturer        = "product_manufacturer"
)

// CreatedAtLayout wire format of record timestamps (UTC, millisecond precision)
const CreatedAtLayout = "2006-01-02 15:04:05.000"

// ChangeRecord one ledger row. Sequence and CreatedAt are assigned by the store.
type ChangeRecord struct {
	Sequence   uint64    `gorm:"column:queue_id;primaryKey" json:"queue_id"`
	EntityType string    `gorm:"column:entity_type" json:"entity_type"`
	EntityID   string    `gorm:"column:entity_id" json:"entity_ids"`
	Operation  Operation `gorm:"column:operation" json:"operation"`
	UserName   *string   `gorm:"column:user_name" json:"user_name"`
	Context    string    `gorm:"column:context" json:"context"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName ledger table
func (ChangeRecord) TableName() string {
	return "change_ledger"
}

// Actor returns the recorded actor label, or an empty string when none was stored.
func (r ChangeRecord) Actor() string {
	if r.UserName == nil {
		return ""
	}
	return *r.UserName
}

// Setting persistent key/value configuration row
type Setting struct {
	Key       string    `gorm:"column:config_key;primaryKey;size:255" json:"key"`
	Value     string    `gorm:"column:config_value;type:text" json:"value"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName settings table
func (Setting) TableName() string {
	return "bridge_settings"
}
