package inventory

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ordena/backend/internal/domain/shared"
)

// LocationKind identifies which kind of stock-holding site a LocationRef points at
type LocationKind string

const (
	// LocationKindWarehouse refers to a central warehouse
	LocationKindWarehouse LocationKind = "warehouse"
	// LocationKindBranch refers to a retail branch
	LocationKindBranch LocationKind = "branch"
)

// String returns the string representation of LocationKind
func (k LocationKind) String() string {
	return string(k)
}

// IsValid returns true if the location kind is valid
func (k LocationKind) IsValid() bool {
	switch k {
	case LocationKindWarehouse, LocationKindBranch:
		return true
	}
	return false
}

// LocationRef identifies exactly one stock-holding site: a warehouse or a branch.
// It is embedded into stock records and movements as (kind, id) columns.
type LocationRef struct {
	Kind LocationKind `gorm:"type:varchar(20);not null" json:"kind"`
	ID   uuid.UUID    `gorm:"type:uuid;not null" json:"id"`
}

// NewWarehouseRef creates a LocationRef pointing at a warehouse
func NewWarehouseRef(warehouseID uuid.UUID) LocationRef {
	return LocationRef{Kind: LocationKindWarehouse, ID: warehouseID}
}

// NewBranchRef creates a LocationRef pointing at a branch
func NewBranchRef(branchID uuid.UUID) LocationRef {
	return LocationRef{Kind: LocationKindBranch, ID: branchID}
}

// Validate checks that the reference points at exactly one real site
func (l LocationRef) Validate() error {
	if !l.Kind.IsValid() {
		return shared.NewDomainError("INVALID_LOCATION", "Location kind must be warehouse or branch")
	}
	if l.ID == uuid.Nil {
		return shared.NewDomainError("INVALID_LOCATION", "Location ID cannot be empty")
	}
	return nil
}

// IsWarehouse returns true if the reference points at a warehouse
func (l LocationRef) IsWarehouse() bool {
	return l.Kind == LocationKindWarehouse
}

// IsBranch returns true if the reference points at a branch
func (l LocationRef) IsBranch() bool {
	return l.Kind == LocationKindBranch
}

// Equals compares two location references
func (l LocationRef) Equals(other LocationRef) bool {
	return l.Kind == other.Kind && l.ID == other.ID
}

// String returns a kind:id representation for logs and cache keys
func (l LocationRef) String() string {
	return fmt.Sprintf("%s:%s", l.Kind, l.ID)
}
