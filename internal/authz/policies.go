package authz

// Roles returns a policy that allows exactly the listed roles.
func Roles(allowed ...Role) Policy {
	return func(r Role) Access {
		for _, a := range allowed {
			if a == r {
				return Allow
			}
		}
		return Deny
	}
}

// SuperadminOrOwner allows superadmins unconditionally and accommodation
// owners only on resources of a property they own.
func SuperadminOrOwner(r Role) Access {
	switch r {
	case RoleSuperadmin:
		return Allow
	case RoleAccommodationOwner:
		return AllowIfOwner
	case RoleCustomer:
		return Deny
	default:
		return Deny
	}
}

// Per-operation policies.
var (
	CreateBookingPolicy     = Roles(RoleCustomer)
	ReadBookingPolicy       = Roles(RoleSuperadmin, RoleAccommodationOwner, RoleCustomer)
	UpdateBookingPolicy     = Roles(RoleCustomer)
	CancelBookingPolicy     = Roles(RoleCustomer)
	RefundBookingPolicy     = Roles(RoleSuperadmin, RoleAccommodationOwner)
	StatisticsPolicy        = Roles(RoleSuperadmin, RoleAccommodationOwner)
	CheckAvailabilityPolicy = Roles(RoleSuperadmin, RoleAccommodationOwner, RoleCustomer)

	// CreatePropertyPolicy admits owners; the service forces ownerID to the caller.
	CreatePropertyPolicy = Roles(RoleSuperadmin, RoleAccommodationOwner)
	ReadPropertyPolicy   = Roles(RoleSuperadmin, RoleAccommodationOwner, RoleCustomer)
	ListPropertiesPolicy = Roles(RoleSuperadmin, RoleAccommodationOwner, RoleCustomer)

	MutatePropertyPolicy Policy = SuperadminOrOwner
	MutateRoomTypePolicy Policy = SuperadminOrOwner
	MutateRoomPolicy     Policy = SuperadminOrOwner
	MaintainRoomPolicy   Policy = SuperadminOrOwner
)
