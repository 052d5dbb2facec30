package rider

import (
	"marketplace/internal/entities"
)

func ToDomain(r *RiderDB) *entities.Rider {
	if r == nil {
		return nil
	}

	rider := &entities.Rider{
		ID:            r.ID,
		Name:          r.Name,
		Phone:         r.Phone,
		Status:        entities.RiderStatusType(r.Status),
		TransportType: entities.RiderTransportType(r.TransportType),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	if r.LastSeenAt != nil {
		rider.LastSeenAt = *r.LastSeenAt
	}
	return rider
}

func FromDomainModify(riderModify *entities.RiderModify) *RiderModifyDB {
	if riderModify == nil {
		return nil
	}
	riderDB := &RiderModifyDB{
		ID:         riderModify.ID,
		Name:       riderModify.Name,
		Phone:      riderModify.Phone,
		LastSeenAt: riderModify.LastSeenAt,
	}

	if riderModify.Status != nil {
		statusType := riderModify.Status.String()
		riderDB.Status = &statusType
	}
	if riderModify.TransportType != nil {
		transportType := riderModify.TransportType.String()
		riderDB.TransportType = &transportType
	}

	return riderDB
}

func ToDomainList(ridersDB []RiderDB) []entities.Rider {
	if len(ridersDB) == 0 {
		return []entities.Rider{}
	}

	result := make([]entities.Rider, len(ridersDB))
	for i := range ridersDB {
		result[i] = *ToDomain(&ridersDB[i])
	}
	return result
}
