package authorization

import (
	"fmt"
	"slices"

	"marketplace/internal/entities"
	"marketplace/internal/service/transition"
)

// Decision результат успешной проверки.
type Decision struct {
	// OwnerOrAssignee актор владеет предложением, назначен на него или является администратором.
	OwnerOrAssignee bool
	AdminOverride   bool
}

// Authorize проверяет роль, затем владение, затем применяет право администратора.
// offer равен nil только для create.
func Authorize(actor entities.Actor, offer *entities.Offer, kind entities.TransitionKind) (Decision, error) {
	rule, ok := transition.Lookup(kind)
	if !ok {
		return Decision{}, fmt.Errorf("%w: unknown transition %q", ErrWrongRole, kind)
	}

	if !slices.Contains(rule.Roles, actor.Role) {
		return Decision{}, fmt.Errorf("%w: %s cannot %s", ErrWrongRole, actor.Role, kind)
	}

	if actor.Role == entities.RoleAdmin {
		return Decision{OwnerOrAssignee: true, AdminOverride: true}, nil
	}

	owner := IsOwnerOrAssignee(actor, offer)
	if rule.Scoped && !owner {
		return Decision{}, fmt.Errorf("%w: %s %s is not bound to offer", ErrNotOwner, actor.Role, actor.ID)
	}

	return Decision{OwnerOrAssignee: owner}, nil
}

func IsOwnerOrAssignee(actor entities.Actor, offer *entities.Offer) bool {
	if offer == nil || actor.ID == "" {
		return false
	}

	switch actor.Role {
	case entities.RoleBusiness:
		return offer.BusinessID == actor.ID
	case entities.RoleRider:
		return offer.RiderID != nil && *offer.RiderID == actor.ID
	case entities.RoleAdmin:
		return true
	default:
		return false
	}
}

// CanView правила чтения: владелец, назначенный курьер, администратор
// и любой курьер, пока предложение свободно.
func CanView(actor entities.Actor, offer *entities.Offer) error {
	if offer == nil {
		return ErrNotOwner
	}
	if IsOwnerOrAssignee(actor, offer) {
		return nil
	}
	if actor.Role == entities.RoleRider && offer.Status == entities.OfferCreated {
		return nil
	}
	return fmt.Errorf("%w: %s %s cannot view offer", ErrNotOwner, actor.Role, actor.ID)
}
