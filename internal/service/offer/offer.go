package offer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"marketplace/internal/entities"
	"marketplace/internal/service/authorization"
	"marketplace/internal/service/rider"
	"marketplace/internal/service/transition"
	"marketplace/pkg/logger"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

var milestones = map[entities.TransitionKind]entities.Milestone{
	entities.TransitionCreate:          entities.MilestoneCreated,
	entities.TransitionAccept:          entities.MilestoneAccepted,
	entities.TransitionConfirmPickup:   entities.MilestonePickedUp,
	entities.TransitionConfirmDelivery: entities.MilestoneDelivered,
	entities.TransitionComplete:        entities.MilestoneCompleted,
	entities.TransitionCancel:          entities.MilestoneCancelled,
	entities.TransitionDispute:         entities.MilestoneDisputed,
}

type Service struct {
	log           serviceLogger
	repository    Repository
	riderService  RiderService
	dispatcher    Dispatcher
	notifications NotificationFactory
	now           func() time.Time
}

func New(
	log serviceLogger,
	repository Repository,
	riderService RiderService,
	dispatcher Dispatcher,
	notifications NotificationFactory,
) *Service {
	return &Service{
		log: log.With(
			logger.NewField("component", "offer-lifecycle"),
		),
		repository:    repository,
		riderService:  riderService,
		dispatcher:    dispatcher,
		notifications: notifications,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (s *Service) CreateOffer(ctx context.Context, actor entities.Actor, draft entities.OfferDraft) (offer *entities.Offer, err error) {
	defer func() {
		TransitionsTotal.WithLabelValues(entities.TransitionCreate.String(), resultLabel(err)).Inc()
	}()

	_, err = authorization.Authorize(actor, nil, entities.TransitionCreate)
	if err != nil {
		s.logDenied(actor, "", entities.TransitionCreate, err)
		return nil, err
	}

	err = transition.Validate("", entities.TransitionCreate, actor.Role, false)
	if err != nil {
		return nil, err
	}

	err = validateDraft(draft)
	if err != nil {
		return nil, err
	}

	now := s.now()
	offerCreate := entities.OfferCreate{
		ID:                 uuid.NewString(),
		BusinessID:         actor.ID,
		Description:        strings.TrimSpace(draft.Description),
		PackageSize:        draft.PackageSize,
		Price:              draft.Price,
		Currency:           draft.Currency,
		PickupCodeRequired: draft.PickupCode != nil,
		Pickup: entities.Leg{
			Address:          strings.TrimSpace(draft.PickupAddress),
			PlannedLocation:  *draft.PickupLocation,
			ConfirmationCode: draft.PickupCode,
		},
		Delivery: entities.Leg{
			Address:         strings.TrimSpace(draft.DeliveryAddress),
			PlannedLocation: *draft.DeliveryLocation,
		},
		Timeline: map[entities.Milestone]time.Time{
			entities.MilestoneCreated: now,
		},
		InitialEntry: entities.StatusHistoryEntry{
			Status:    entities.OfferCreated,
			Timestamp: now,
			UpdatedBy: actor.ID,
			Notes:     draft.Notes,
		},
		CreatedAt: now,
	}

	offer, err = s.repository.Create(ctx, offerCreate)
	if err != nil {
		return nil, fmt.Errorf("create offer: %w", err)
	}

	s.log.Info("offer created",
		logger.NewField("offer_id", offer.ID),
		logger.NewField("actor_id", actor.ID),
		logger.NewField("version", offer.Version),
	)

	return offer, nil
}

// ApplyTransition проводит предложение через один переход: чтение, проверка
// прав и таблицы, условная запись по версии, передача побочных эффектов.
// Проигравший гонку получает ErrConcurrentModification без повторной попытки.
func (s *Service) ApplyTransition(
	ctx context.Context,
	offerID string,
	kind entities.TransitionKind,
	actor entities.Actor,
	payload entities.TransitionPayload,
) (result *entities.TransitionResult, err error) {
	defer func() {
		TransitionsTotal.WithLabelValues(kind.String(), resultLabel(err)).Inc()
	}()

	if !isValidOfferID(offerID) {
		return nil, ErrInvalidOfferID
	}
	if kind == entities.TransitionCreate {
		return nil, fmt.Errorf("%w: use offer creation instead", transition.ErrInvalidTransition)
	}

	current, err := s.repository.GetByID(ctx, offerID)
	if err != nil {
		return nil, fmt.Errorf("load offer: %w", err)
	}

	if current.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: %s is final, %s rejected", transition.ErrTerminalState, current.Status, kind)
	}

	decision, err := authorization.Authorize(actor, current, kind)
	if err != nil {
		s.logDenied(actor, offerID, kind, err)
		return nil, err
	}

	// Опоздавший на accept проиграл ту же гонку, что и конкурент на записи.
	if kind == entities.TransitionAccept && current.Status != entities.OfferCreated {
		return nil, ErrOfferNoLongerAvailable
	}

	err = transition.Validate(current.Status, kind, actor.Role, decision.OwnerOrAssignee)
	if err != nil {
		return nil, err
	}

	if kind == entities.TransitionAccept {
		err = s.checkAcceptPreconditions(ctx, current, actor)
		if err != nil {
			return nil, err
		}
	}

	delta, err := s.buildDelta(current, kind, actor, payload)
	if err != nil {
		return nil, err
	}

	updated, err := s.repository.ConditionalUpdate(ctx, current.ID, current.Version, delta)
	if err != nil {
		if errors.Is(err, ErrConcurrentModification) {
			s.log.Info("transition lost the race",
				logger.NewField("offer_id", offerID),
				logger.NewField("transition", kind.String()),
				logger.NewField("actor_id", actor.ID),
				logger.NewField("read_version", current.Version),
			)
			if kind == entities.TransitionAccept {
				return nil, ErrOfferNoLongerAvailable
			}
			return nil, fmt.Errorf("apply %s: %w", kind, ErrConcurrentModification)
		}
		return nil, fmt.Errorf("apply %s: %w", kind, err)
	}

	s.log.Info("offer transition applied",
		logger.NewField("offer_id", updated.ID),
		logger.NewField("transition", kind.String()),
		logger.NewField("actor_id", actor.ID),
		logger.NewField("status", updated.Status.String()),
		logger.NewField("version", updated.Version),
	)

	submission := s.dispatch(ctx, updated, kind, actor, payload)

	return &entities.TransitionResult{
		Offer:    presentFor(actor, updated),
		Dispatch: submission,
	}, nil
}

func (s *Service) GetOffer(ctx context.Context, actor entities.Actor, offerID string) (*entities.Offer, error) {
	if !isValidOfferID(offerID) {
		return nil, ErrInvalidOfferID
	}

	offer, err := s.repository.GetByID(ctx, offerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}

	err = authorization.CanView(actor, offer)
	if err != nil {
		s.logDenied(actor, offerID, "", err)
		return nil, err
	}

	return presentFor(actor, offer), nil
}

// GetHistory возвращает аудит в порядке записи. Видимость та же, что у
// GetOffer: чужой оффер даёт ErrForbidden, а не пустую историю.
func (s *Service) GetHistory(ctx context.Context, actor entities.Actor, offerID string) ([]entities.StatusHistoryEntry, error) {
	offer, err := s.GetOffer(ctx, actor, offerID)
	if err != nil {
		return nil, err
	}

	return offer.StatusHistory, nil
}

// GetAvailableOffers лента свободных предложений для курьеров.
func (s *Service) GetAvailableOffers(ctx context.Context, actor entities.Actor, limit, offset uint64) ([]entities.Offer, error) {
	if actor.Role != entities.RoleRider && actor.Role != entities.RoleAdmin {
		return nil, fmt.Errorf("%w: %s cannot browse available offers", authorization.ErrWrongRole, actor.Role)
	}

	if limit == 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		return nil, ErrInvalidPagination
	}

	offers, err := s.repository.GetByStatus(ctx, entities.OfferCreated, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get available offers: %w", err)
	}

	for i := range offers {
		offers[i] = *presentFor(actor, &offers[i])
	}
	return offers, nil
}

func (s *Service) GetDispatchStatus(
	ctx context.Context,
	actor entities.Actor,
	offerID string,
	version int64,
) ([]entities.DispatchRecord, error) {
	offer, err := s.GetOffer(ctx, actor, offerID)
	if err != nil {
		return nil, err
	}
	if version < 1 || version > offer.Version {
		return nil, fmt.Errorf("%w: version %d", ErrValidation, version)
	}

	records, err := s.dispatcher.GetStatus(ctx, offerID, version)
	if err != nil {
		return nil, fmt.Errorf("failed to get dispatch status: %w", err)
	}
	return records, nil
}

func (s *Service) checkAcceptPreconditions(ctx context.Context, current *entities.Offer, actor entities.Actor) error {
	if current.RiderID != nil {
		return ErrOfferNoLongerAvailable
	}

	r, err := s.riderService.GetRider(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, rider.ErrRiderNotFound) {
			return fmt.Errorf("%w: rider %s is not registered", ErrRiderNotAvailable, actor.ID)
		}
		return fmt.Errorf("check rider: %w", err)
	}
	if r.Status != entities.RiderAvailable {
		return fmt.Errorf("%w: rider status is %s", ErrRiderNotAvailable, r.Status)
	}
	return nil
}

func (s *Service) buildDelta(
	current *entities.Offer,
	kind entities.TransitionKind,
	actor entities.Actor,
	payload entities.TransitionPayload,
) (entities.OfferDelta, error) {
	if payload.Location != nil && !isValidLocation(*payload.Location) {
		return entities.OfferDelta{}, ErrInvalidLocation
	}
	if payload.PhotoURL != nil && !isValidPhotoURL(*payload.PhotoURL) {
		return entities.OfferDelta{}, ErrInvalidPhotoURL
	}
	if !isValidNotes(payload.Notes) {
		return entities.OfferDelta{}, fmt.Errorf("%w: notes are too long", ErrValidation)
	}

	target, _ := transition.Target(kind)
	now := s.now()

	delta := entities.OfferDelta{
		Status: target,
		TimelineAdd: map[entities.Milestone]time.Time{
			milestones[kind]: now,
		},
		HistoryAppend: entities.StatusHistoryEntry{
			Status:    target,
			Timestamp: now,
			UpdatedBy: actor.ID,
			Notes:     payload.Notes,
			Location:  payload.Location,
		},
		UpdatedAt: now,
	}

	switch kind {
	case entities.TransitionAccept:
		riderID := actor.ID
		delta.RiderID = &riderID

	case entities.TransitionConfirmPickup:
		if current.PickupCodeRequired {
			if !hasText(payload.ConfirmationCode) {
				return entities.OfferDelta{}, ErrMissingConfirmationCode
			}
			if current.Pickup.ConfirmationCode == nil || *current.Pickup.ConfirmationCode != *payload.ConfirmationCode {
				return entities.OfferDelta{}, ErrConfirmationCodeMismatch
			}
		}
		leg := stampLeg(current.Pickup, now, payload)
		delta.Pickup = &leg

	case entities.TransitionConfirmDelivery:
		if payload.Location == nil {
			return entities.OfferDelta{}, ErrMissingLocation
		}
		leg := stampLeg(current.Delivery, now, payload)
		if payload.ConfirmationCode != nil {
			leg.ConfirmationCode = payload.ConfirmationCode
		}
		delta.Delivery = &leg

	case entities.TransitionComplete:
		payment, err := buildPayment(actor, payload)
		if err != nil {
			return entities.OfferDelta{}, err
		}
		delta.Payment = payment

	case entities.TransitionCancel:
		var reason *string
		if hasText(payload.Reason) {
			reason = payload.Reason
		}
		delta.Cancellation = &entities.Cancellation{
			Reason:      reason,
			CancelledBy: actor.ID,
		}

	case entities.TransitionDispute:
		if !hasText(payload.Reason) {
			return entities.OfferDelta{}, ErrMissingDisputeReason
		}
		delta.Dispute = &entities.Dispute{
			Reason:   strings.TrimSpace(*payload.Reason),
			OpenedBy: actor.ID,
		}
	}

	return delta, nil
}

// buildPayment: отказ от оплаты только явный и с причиной, роль уже проверена.
func buildPayment(actor entities.Actor, payload entities.TransitionPayload) (*entities.Payment, error) {
	if payload.WaivePayment {
		if !hasText(payload.Reason) {
			return nil, ErrMissingWaiverReason
		}
		waivedBy := actor.ID
		reason := strings.TrimSpace(*payload.Reason)
		return &entities.Payment{
			Waived:       true,
			WaivedBy:     &waivedBy,
			WaiverReason: &reason,
		}, nil
	}

	if !hasText(payload.PaymentReference) {
		return nil, ErrPaymentNotSettled
	}
	reference := strings.TrimSpace(*payload.PaymentReference)
	return &entities.Payment{Reference: &reference}, nil
}

func stampLeg(leg entities.Leg, now time.Time, payload entities.TransitionPayload) entities.Leg {
	actualTime := now
	leg.ActualTime = &actualTime
	leg.ActualLocation = payload.Location
	if payload.PhotoURL != nil {
		leg.PhotoURL = payload.PhotoURL
	}
	if payload.Notes != nil {
		leg.Notes = payload.Notes
	}
	return leg
}

// dispatch передаёт эффекты диспетчеру. Ошибки доставки не откатывают переход.
func (s *Service) dispatch(
	ctx context.Context,
	offer *entities.Offer,
	kind entities.TransitionKind,
	actor entities.Actor,
	payload entities.TransitionPayload,
) entities.DispatchSubmission {
	submission := entities.DispatchSubmission{
		OfferID:    offer.ID,
		Version:    offer.Version,
		Transition: kind,
		Records:    []entities.DispatchRecord{},
	}

	for _, request := range s.notifications.Build(offer, kind, actor, payload) {
		submission.Records = append(submission.Records, s.dispatcher.Notify(ctx, request))
	}

	if kind == entities.TransitionComplete && offer.Payment != nil && !offer.Payment.Waived && offer.RiderID != nil {
		request := entities.PaymentRequest{
			OfferID:  offer.ID,
			Version:  offer.Version,
			Amount:   offer.Price,
			Currency: offer.Currency,
			PayerID:  offer.BusinessID,
			PayeeID:  *offer.RiderID,
		}
		if offer.Payment.Reference != nil {
			request.Reference = *offer.Payment.Reference
		}
		submission.Records = append(submission.Records, s.dispatcher.SettlePayment(ctx, request))
	}

	if !submission.Accepted() {
		s.log.Warn("side effects rejected by dispatcher",
			logger.NewField("offer_id", offer.ID),
			logger.NewField("transition", kind.String()),
			logger.NewField("version", offer.Version),
		)
	}

	return submission
}

func (s *Service) logDenied(actor entities.Actor, offerID string, kind entities.TransitionKind, err error) {
	s.log.Warn("offer access denied",
		logger.NewField("offer_id", offerID),
		logger.NewField("transition", kind.String()),
		logger.NewField("actor_id", actor.ID),
		logger.NewField("role", actor.Role.String()),
		logger.NewField("reason", err.Error()),
	)
}

// presentFor скрывает код забора от всех, кроме владельца и администратора.
func presentFor(actor entities.Actor, offer *entities.Offer) *entities.Offer {
	if offer == nil || offer.Pickup.ConfirmationCode == nil {
		return offer
	}
	if actor.Role == entities.RoleAdmin || (actor.Role == entities.RoleBusiness && actor.ID == offer.BusinessID) {
		return offer
	}

	redacted := *offer
	redacted.Pickup.ConfirmationCode = nil
	return &redacted
}

func validateDraft(draft entities.OfferDraft) error {
	if draft.PickupLocation == nil || draft.DeliveryLocation == nil {
		return ErrMissingLocation
	}
	if !isValidDescription(draft.Description) {
		return ErrInvalidDescription
	}
	if !isValidPackageSize(draft.PackageSize) {
		return ErrInvalidPackageSize
	}
	if draft.Price <= 0 {
		return ErrInvalidPrice
	}
	if !isValidCurrency(draft.Currency) {
		return ErrInvalidCurrency
	}
	if !isValidAddress(draft.PickupAddress) || !isValidAddress(draft.DeliveryAddress) {
		return ErrInvalidAddress
	}
	if !isValidLocation(*draft.PickupLocation) || !isValidLocation(*draft.DeliveryLocation) {
		return ErrInvalidLocation
	}
	if draft.PickupCode != nil && !isValidCode(*draft.PickupCode) {
		return ErrInvalidConfirmationCode
	}
	if !isValidNotes(draft.Notes) {
		return fmt.Errorf("%w: notes are too long", ErrValidation)
	}
	return nil
}
