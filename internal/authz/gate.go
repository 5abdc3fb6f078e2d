package authz

import (
	"context"

	"github.com/Kilat-Pet-Delivery/service-lodging/internal/domain"
	"github.com/google/uuid"
)

// Operation is a single core operation taking one request value.
type Operation[Req, Res any] func(ctx context.Context, req Req) (Res, error)

// Target carries the ownership facts a policy may need about the resource.
type Target struct {
	// OwnerID is the owner of the property the resource belongs to.
	OwnerID uuid.UUID
	// CustomerID is the customer who made the booking.
	CustomerID uuid.UUID
}

// TargetResolver loads the ownership facts of the resource addressed by req.
type TargetResolver[Req any] func(ctx context.Context, req Req) (Target, error)

// Access is the outcome a policy assigns to a role.
type Access int

const (
	Deny Access = iota
	Allow
	// AllowIfOwner admits the caller only when Target.OwnerID is the caller.
	AllowIfOwner
	// AllowIfCustomer admits the caller only when Target.CustomerID is the caller.
	AllowIfCustomer
)

// Policy maps a role to the access it has on one operation.
type Policy func(Role) Access

// Authorize wraps next so that it only runs once policy admits the caller
// found in ctx. The target is resolved only for ownership-scoped decisions.
// Every denial is an AccessDenied error and happens before next is invoked.
func Authorize[Req, Res any](op string, policy Policy, resolve TargetResolver[Req], next Operation[Req, Res]) Operation[Req, Res] {
	return func(ctx context.Context, req Req) (Res, error) {
		var zero Res

		caller, ok := CallerFrom(ctx)
		if !ok || !caller.Role.IsValid() {
			return zero, domain.NewAccessDeniedError(string(caller.Role), op)
		}

		access := policy(caller.Role)
		switch access {
		case Allow:
		case AllowIfOwner, AllowIfCustomer:
			if resolve == nil {
				return zero, domain.NewAccessDeniedError(string(caller.Role), op)
			}
			target, err := resolve(ctx, req)
			if err != nil {
				return zero, err
			}
			if !target.admits(caller.UserID, access) {
				return zero, domain.NewAccessDeniedError(string(caller.Role), op)
			}
		default:
			return zero, domain.NewAccessDeniedError(string(caller.Role), op)
		}

		return next(ctx, req)
	}
}

func (t Target) admits(userID uuid.UUID, access Access) bool {
	if userID == uuid.Nil {
		return false
	}
	switch access {
	case AllowIfOwner:
		return t.OwnerID == userID
	case AllowIfCustomer:
		return t.CustomerID == userID
	default:
		return false
	}
}
