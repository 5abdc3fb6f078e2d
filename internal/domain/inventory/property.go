package inventory

import (
	"time"

	"github.com/Kilat-Pet-Delivery/service-lodging/internal/domain"
	"github.com/google/uuid"
)

// Property is an accommodation administered by exactly one owner.
type Property struct {
	id        uuid.UUID
	ownerID   uuid.UUID
	name      string
	address   string
	city      string
	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewProperty creates a property owned by ownerID.
func NewProperty(ownerID uuid.UUID, name, address, city string) (*Property, error) {
	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("owner ID is required")
	}
	if name == "" {
		return nil, domain.NewValidationError("property name is required")
	}

	now := time.Now().UTC()
	return &Property{
		id:        uuid.New(),
		ownerID:   ownerID,
		name:      name,
		address:   address,
		city:      city,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructProperty rebuilds a Property from persistence data (no validation).
func ReconstructProperty(
	id, ownerID uuid.UUID,
	name, address, city string,
	version int64,
	createdAt, updatedAt time.Time,
) *Property {
	return &Property{
		id:        id,
		ownerID:   ownerID,
		name:      name,
		address:   address,
		city:      city,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the property identifier.
func (p *Property) ID() uuid.UUID { return p.id }

// OwnerID returns the accommodation owner who owns the property.
func (p *Property) OwnerID() uuid.UUID { return p.ownerID }

// Name returns the property name.
func (p *Property) Name() string { return p.name }

// Address returns the street address.
func (p *Property) Address() string { return p.address }

// City returns the city the property is in.
func (p *Property) City() string { return p.city }

// Version returns the optimistic-locking version.
func (p *Property) Version() int64 { return p.version }

// CreatedAt returns when the property was created.
func (p *Property) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns when the property was last modified.
func (p *Property) UpdatedAt() time.Time { return p.updatedAt }

// IsOwnedBy reports whether userID administers the property.
func (p *Property) IsOwnedBy(userID uuid.UUID) bool {
	return p.ownerID == userID
}

// Update applies partial changes; empty strings leave fields untouched.
func (p *Property) Update(name, address, city string) {
	if name != "" {
		p.name = name
	}
	if address != "" {
		p.address = address
	}
	if city != "" {
		p.city = city
	}
	p.updatedAt = time.Now().UTC()
}

// TransferTo reassigns the property to another owner.
func (p *Property) TransferTo(ownerID uuid.UUID) error {
	if ownerID == uuid.Nil {
		return domain.NewValidationError("owner ID is required")
	}
	p.ownerID = ownerID
	p.updatedAt = time.Now().UTC()
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (p *Property) IncrementVersion() {
	p.version++
	p.updatedAt = time.Now().UTC()
}
