package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes the sort order to ASC or DESC.
// Anything other than asc falls back to DESC.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField checks the sort field against a whitelist. User input never
// reaches ORDER BY directly.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" || !allowedFields[trimmed] {
		return defaultField
	}
	return trimmed
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"internal_code": true,
	"name":          true,
	"active":        true,
}

// SiteSortFields contains allowed sort fields for warehouses and branches
var SiteSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"tax_id":     true,
}

// StockRecordSortFields contains allowed sort fields for stock records
var StockRecordSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"quantity":     true,
	"min_quantity": true,
	"max_quantity": true,
}

// StockMovementSortFields contains allowed sort fields for stock movements
var StockMovementSortFields = map[string]bool{
	"id":          true,
	"occurred_at": true,
	"delta":       true,
}

// OrderSortFields contains allowed sort fields for orders
var OrderSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"status":     true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"name":          true,
	"email":         true,
	"role":          true,
	"last_login_at": true,
}

// NotificationSortFields contains allowed sort fields for notifications
var NotificationSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"read":       true,
}
