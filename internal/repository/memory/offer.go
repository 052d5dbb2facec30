package memory

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"marketplace/internal/entities"
	"marketplace/internal/service/offer"
)

var _ offer.Repository = (*OfferRepository)(nil)

// OfferRepository хранилище предложений в памяти процесса. Условная запись
// сравнивает версию под мьютексом, наружу отдаются только копии.
type OfferRepository struct {
	mu     sync.RWMutex
	offers map[string]*entities.Offer
}

func NewOfferRepository() *OfferRepository {
	return &OfferRepository{offers: map[string]*entities.Offer{}}
}

func (r *OfferRepository) Create(_ context.Context, offerCreate entities.OfferCreate) (*entities.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.offers[offerCreate.ID]; ok {
		return nil, offer.ErrConflict
	}

	stored := &entities.Offer{
		ID:                 offerCreate.ID,
		BusinessID:         offerCreate.BusinessID,
		Status:             entities.OfferCreated,
		Description:        offerCreate.Description,
		PackageSize:        offerCreate.PackageSize,
		Price:              offerCreate.Price,
		Currency:           offerCreate.Currency,
		PickupCodeRequired: offerCreate.PickupCodeRequired,
		Pickup:             offerCreate.Pickup,
		Delivery:           offerCreate.Delivery,
		Timeline:           maps.Clone(offerCreate.Timeline),
		StatusHistory:      []entities.StatusHistoryEntry{offerCreate.InitialEntry},
		Version:            1,
		CreatedAt:          offerCreate.CreatedAt,
		UpdatedAt:          offerCreate.CreatedAt,
	}
	if stored.Timeline == nil {
		stored.Timeline = map[entities.Milestone]time.Time{}
	}
	r.offers[stored.ID] = stored

	return cloneOffer(stored), nil
}

func (r *OfferRepository) GetByID(_ context.Context, id string) (*entities.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.offers[id]
	if !ok {
		return nil, offer.ErrOfferNotFound
	}
	return cloneOffer(stored), nil
}

func (r *OfferRepository) GetByStatus(
	_ context.Context,
	status entities.OfferStatusType,
	limit, offset uint64,
) ([]entities.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*entities.Offer, 0, len(r.offers))
	for _, stored := range r.offers {
		if stored.Status == status {
			matched = append(matched, stored)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	result := make([]entities.Offer, 0, limit)
	for i := offset; i < uint64(len(matched)) && uint64(len(result)) < limit; i++ {
		result = append(result, *cloneOffer(matched[i]))
	}
	return result, nil
}

func (r *OfferRepository) ConditionalUpdate(
	_ context.Context,
	id string,
	expectedVersion int64,
	delta entities.OfferDelta,
) (*entities.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.offers[id]
	if !ok {
		return nil, offer.ErrOfferNotFound
	}
	if stored.Version != expectedVersion {
		return nil, offer.ErrConcurrentModification
	}

	next := cloneOffer(stored)
	next.Status = delta.Status
	if delta.RiderID != nil {
		riderID := *delta.RiderID
		next.RiderID = &riderID
	}
	if delta.Pickup != nil {
		next.Pickup = *delta.Pickup
	}
	if delta.Delivery != nil {
		next.Delivery = *delta.Delivery
	}
	if delta.Payment != nil {
		payment := *delta.Payment
		next.Payment = &payment
	}
	if delta.Dispute != nil {
		dispute := *delta.Dispute
		next.Dispute = &dispute
	}
	if delta.Cancellation != nil {
		cancellation := *delta.Cancellation
		next.Cancellation = &cancellation
	}
	for milestone, at := range delta.TimelineAdd {
		if _, exists := next.Timeline[milestone]; !exists {
			next.Timeline[milestone] = at
		}
	}
	next.StatusHistory = append(next.StatusHistory, delta.HistoryAppend)
	next.Version++
	next.UpdatedAt = delta.UpdatedAt

	r.offers[id] = next
	return cloneOffer(next), nil
}

func cloneOffer(src *entities.Offer) *entities.Offer {
	clone := *src
	clone.Timeline = maps.Clone(src.Timeline)
	clone.StatusHistory = slices.Clone(src.StatusHistory)
	return &clone
}
