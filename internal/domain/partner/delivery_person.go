package partner

import (
	"strings"
	"time"

	"github.com/ordena/backend/internal/domain/shared"
)

// DeliveryPerson represents delivery personnel assigned to orders
type DeliveryPerson struct {
	shared.BaseAggregateRoot
	Name         string `gorm:"type:varchar(100);not null"`
	Description  string `gorm:"type:text"`
	VehiclePlate string `gorm:"type:varchar(10);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (DeliveryPerson) TableName() string {
	return "delivery_persons"
}

// NewDeliveryPerson creates a new delivery person
func NewDeliveryPerson(name, description, vehiclePlate string) (*DeliveryPerson, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Delivery person name is required")
	}
	vehiclePlate = strings.ToUpper(strings.TrimSpace(vehiclePlate))
	if vehiclePlate == "" {
		return nil, shared.NewDomainError("INVALID_PLATE", "Vehicle plate is required")
	}
	if len(vehiclePlate) > 10 {
		return nil, shared.NewDomainError("INVALID_PLATE", "Vehicle plate cannot exceed 10 characters")
	}

	return &DeliveryPerson{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		VehiclePlate:      vehiclePlate,
	}, nil
}

// Update updates the delivery person details
func (d *DeliveryPerson) Update(name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Delivery person name is required")
	}

	d.Name = name
	d.Description = description
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}
