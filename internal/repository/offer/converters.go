package offer

import (
	"encoding/json"
	"fmt"
	"time"

	"marketplace/internal/entities"
)

func ToDomain(o *OfferDB, history []HistoryDB) (*entities.Offer, error) {
	if o == nil {
		return nil, nil
	}

	offer := &entities.Offer{
		ID:                 o.ID,
		BusinessID:         o.BusinessID,
		RiderID:            o.RiderID,
		Status:             entities.OfferStatusType(o.Status),
		Description:        o.Description,
		PackageSize:        entities.PackageSizeType(o.PackageSize),
		Price:              o.Price,
		Currency:           o.Currency,
		PickupCodeRequired: o.PickupCodeRequired,
		Timeline:           map[entities.Milestone]time.Time{},
		StatusHistory:      make([]entities.StatusHistoryEntry, 0, len(history)),
		Version:            o.Version,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}

	err := json.Unmarshal(o.Pickup, &offer.Pickup)
	if err != nil {
		return nil, fmt.Errorf("decode pickup: %w", err)
	}
	err = json.Unmarshal(o.Delivery, &offer.Delivery)
	if err != nil {
		return nil, fmt.Errorf("decode delivery: %w", err)
	}
	if len(o.Timeline) > 0 {
		err = json.Unmarshal(o.Timeline, &offer.Timeline)
		if err != nil {
			return nil, fmt.Errorf("decode timeline: %w", err)
		}
	}

	offer.Payment, err = decodeNullable[entities.Payment](o.Payment)
	if err != nil {
		return nil, fmt.Errorf("decode payment: %w", err)
	}
	offer.Dispute, err = decodeNullable[entities.Dispute](o.Dispute)
	if err != nil {
		return nil, fmt.Errorf("decode dispute: %w", err)
	}
	offer.Cancellation, err = decodeNullable[entities.Cancellation](o.Cancellation)
	if err != nil {
		return nil, fmt.Errorf("decode cancellation: %w", err)
	}

	for _, h := range history {
		entry, err := HistoryToDomain(h)
		if err != nil {
			return nil, err
		}
		offer.StatusHistory = append(offer.StatusHistory, entry)
	}

	return offer, nil
}

func HistoryToDomain(h HistoryDB) (entities.StatusHistoryEntry, error) {
	location, err := decodeNullable[entities.Location](h.Location)
	if err != nil {
		return entities.StatusHistoryEntry{}, fmt.Errorf("decode history location: %w", err)
	}

	return entities.StatusHistoryEntry{
		Status:    entities.OfferStatusType(h.Status),
		Timestamp: h.CreatedAt,
		UpdatedBy: h.UpdatedBy,
		Notes:     h.Notes,
		Location:  location,
	}, nil
}

func FromDomainCreate(c entities.OfferCreate) (*OfferDB, error) {
	pickup, err := json.Marshal(c.Pickup)
	if err != nil {
		return nil, fmt.Errorf("encode pickup: %w", err)
	}
	delivery, err := json.Marshal(c.Delivery)
	if err != nil {
		return nil, fmt.Errorf("encode delivery: %w", err)
	}
	timeline, err := json.Marshal(c.Timeline)
	if err != nil {
		return nil, fmt.Errorf("encode timeline: %w", err)
	}

	return &OfferDB{
		ID:                 c.ID,
		BusinessID:         c.BusinessID,
		Status:             entities.OfferCreated.String(),
		Description:        c.Description,
		PackageSize:        c.PackageSize.String(),
		Price:              c.Price,
		Currency:           c.Currency,
		PickupCodeRequired: c.PickupCodeRequired,
		Pickup:             pickup,
		Delivery:           delivery,
		Timeline:           timeline,
		Version:            1,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.CreatedAt,
	}, nil
}

func FromDomainDelta(d entities.OfferDelta) (*OfferDeltaDB, error) {
	deltaDB := &OfferDeltaDB{
		Status:    d.Status.String(),
		RiderID:   d.RiderID,
		UpdatedAt: d.UpdatedAt,
	}

	var err error
	if deltaDB.Pickup, err = encodeNullable(d.Pickup); err != nil {
		return nil, fmt.Errorf("encode pickup: %w", err)
	}
	if deltaDB.Delivery, err = encodeNullable(d.Delivery); err != nil {
		return nil, fmt.Errorf("encode delivery: %w", err)
	}
	if deltaDB.Payment, err = encodeNullable(d.Payment); err != nil {
		return nil, fmt.Errorf("encode payment: %w", err)
	}
	if deltaDB.Dispute, err = encodeNullable(d.Dispute); err != nil {
		return nil, fmt.Errorf("encode dispute: %w", err)
	}
	if deltaDB.Cancellation, err = encodeNullable(d.Cancellation); err != nil {
		return nil, fmt.Errorf("encode cancellation: %w", err)
	}

	timeline := d.TimelineAdd
	if timeline == nil {
		timeline = map[entities.Milestone]time.Time{}
	}
	if deltaDB.TimelineAdd, err = json.Marshal(timeline); err != nil {
		return nil, fmt.Errorf("encode timeline: %w", err)
	}

	return deltaDB, nil
}

func FromDomainHistory(offerID string, seq int64, e entities.StatusHistoryEntry) (HistoryDB, error) {
	location, err := encodeNullable(e.Location)
	if err != nil {
		return HistoryDB{}, fmt.Errorf("encode history location: %w", err)
	}

	return HistoryDB{
		OfferID:   offerID,
		Seq:       seq,
		Status:    e.Status.String(),
		UpdatedBy: e.UpdatedBy,
		Notes:     e.Notes,
		Location:  location,
		CreatedAt: e.Timestamp,
	}, nil
}

func encodeNullable[T any](v *T) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func decodeNullable[T any](raw []byte) (*T, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var v T
	err := json.Unmarshal(raw, &v)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
