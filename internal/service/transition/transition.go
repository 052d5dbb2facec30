// Package transition описывает таблицу допустимых переходов статуса
// предложения доставки. Все функции пакета чистые и не обращаются к
// хранилищу.
package transition

import (
	"fmt"
	"slices"

	"marketplace/internal/entities"
)

// Rule строка таблицы переходов.
type Rule struct {
	Kind  entities.TransitionKind
	From  []entities.OfferStatusType
	To    entities.OfferStatusType
	Roles []entities.ActorRole
	// Scoped требует, чтобы бизнес был владельцем, а курьер назначенным
	// исполнителем. Администратор проходит без проверки.
	Scoped bool
}

var nonTerminal = []entities.OfferStatusType{
	entities.OfferCreated,
	entities.OfferAccepted,
	entities.OfferPickedUp,
	entities.OfferDelivered,
}

var rules = map[entities.TransitionKind]Rule{
	entities.TransitionCreate: {
		Kind:  entities.TransitionCreate,
		To:    entities.OfferCreated,
		Roles: []entities.ActorRole{entities.RoleBusiness},
	},
	entities.TransitionAccept: {
		Kind:  entities.TransitionAccept,
		From:  []entities.OfferStatusType{entities.OfferCreated},
		To:    entities.OfferAccepted,
		Roles: []entities.ActorRole{entities.RoleRider},
	},
	entities.TransitionConfirmPickup: {
		Kind:   entities.TransitionConfirmPickup,
		From:   []entities.OfferStatusType{entities.OfferAccepted},
		To:     entities.OfferPickedUp,
		Roles:  []entities.ActorRole{entities.RoleRider},
		Scoped: true,
	},
	entities.TransitionConfirmDelivery: {
		Kind:   entities.TransitionConfirmDelivery,
		From:   []entities.OfferStatusType{entities.OfferPickedUp},
		To:     entities.OfferDelivered,
		Roles:  []entities.ActorRole{entities.RoleRider},
		Scoped: true,
	},
	entities.TransitionComplete: {
		Kind:   entities.TransitionComplete,
		From:   []entities.OfferStatusType{entities.OfferDelivered},
		To:     entities.OfferCompleted,
		Roles:  []entities.ActorRole{entities.RoleBusiness, entities.RoleAdmin},
		Scoped: true,
	},
	entities.TransitionCancel: {
		Kind:   entities.TransitionCancel,
		From:   []entities.OfferStatusType{entities.OfferCreated, entities.OfferAccepted},
		To:     entities.OfferCancelled,
		Roles:  []entities.ActorRole{entities.RoleBusiness, entities.RoleRider, entities.RoleAdmin},
		Scoped: true,
	},
	entities.TransitionDispute: {
		Kind:   entities.TransitionDispute,
		From:   nonTerminal,
		To:     entities.OfferDisputed,
		Roles:  []entities.ActorRole{entities.RoleBusiness, entities.RoleRider, entities.RoleAdmin},
		Scoped: true,
	},
}

// order фиксирует порядок вывода в Available.
var order = []entities.TransitionKind{
	entities.TransitionAccept,
	entities.TransitionConfirmPickup,
	entities.TransitionConfirmDelivery,
	entities.TransitionComplete,
	entities.TransitionCancel,
	entities.TransitionDispute,
}

func Lookup(kind entities.TransitionKind) (Rule, bool) {
	rule, ok := rules[kind]
	return rule, ok
}

// Target возвращает статус, в который переводит переход.
func Target(kind entities.TransitionKind) (entities.OfferStatusType, bool) {
	rule, ok := rules[kind]
	if !ok {
		return "", false
	}
	return rule.To, true
}

func AllowedRoles(kind entities.TransitionKind) []entities.ActorRole {
	rule, ok := rules[kind]
	if !ok {
		return nil
	}
	return slices.Clone(rule.Roles)
}

// Available перечисляет переходы, допустимые из статуса current без учёта ролей.
func Available(current entities.OfferStatusType) []entities.TransitionKind {
	if current.IsTerminal() {
		return []entities.TransitionKind{}
	}

	result := make([]entities.TransitionKind, 0, len(order))
	for _, kind := range order {
		if slices.Contains(rules[kind].From, current) {
			result = append(result, kind)
		}
	}
	return result
}

// Validate решает, допустим ли переход kind из статуса current для роли role.
// Для create current должен быть пустым: предложения ещё не существует.
func Validate(
	current entities.OfferStatusType,
	kind entities.TransitionKind,
	role entities.ActorRole,
	isOwnerOrAssignee bool,
) error {
	if current.IsTerminal() {
		return fmt.Errorf("%w: %s is final, %s rejected", ErrTerminalState, current, kind)
	}

	rule, ok := rules[kind]
	if !ok {
		return fmt.Errorf("%w: unknown transition %q", ErrInvalidTransition, kind)
	}

	if kind == entities.TransitionCreate {
		if current != "" {
			return fmt.Errorf("%w: offer already exists", ErrInvalidTransition)
		}
	} else if !slices.Contains(rule.From, current) {
		return fmt.Errorf("%w: %s is not allowed from %s", ErrInvalidTransition, kind, current)
	}

	if !slices.Contains(rule.Roles, role) {
		return fmt.Errorf("%w: role %s cannot %s", ErrInvalidTransition, role, kind)
	}

	if rule.Scoped && role != entities.RoleAdmin && !isOwnerOrAssignee {
		return fmt.Errorf("%w: %s requires the owner or the assigned rider", ErrInvalidTransition, kind)
	}

	return nil
}
