package converters

import (
	"time"

	"marketplace/internal/entities"
	"marketplace/internal/generated/dto"
)

func LocationFromDTO(location *dto.Location) *entities.Location {
	if location == nil {
		return nil
	}
	return &entities.Location{Lat: location.Lat, Lng: location.Lng}
}

func locationToDTO(location *entities.Location) *dto.Location {
	if location == nil {
		return nil
	}
	return &dto.Location{Lat: location.Lat, Lng: location.Lng}
}

func OfferDraftFromDTO(body dto.OfferCreate) entities.OfferDraft {
	return entities.OfferDraft{
		Description:      body.Description,
		PackageSize:      entities.PackageSizeType(body.PackageSize),
		Price:            body.Price,
		Currency:         body.Currency,
		PickupAddress:    body.PickupAddress,
		PickupLocation:   LocationFromDTO(body.PickupLocation),
		PickupCode:       body.PickupCode,
		DeliveryAddress:  body.DeliveryAddress,
		DeliveryLocation: LocationFromDTO(body.DeliveryLocation),
		Notes:            body.Notes,
	}
}

func TransitionPayloadFromDTO(body dto.TransitionRequest) entities.TransitionPayload {
	payload := entities.TransitionPayload{
		Notes:            body.Notes,
		Location:         LocationFromDTO(body.Location),
		ConfirmationCode: body.ConfirmationCode,
		PhotoURL:         body.PhotoURL,
		Reason:           body.Reason,
		PaymentReference: body.PaymentReference,
	}
	if body.WaivePayment != nil {
		payload.WaivePayment = *body.WaivePayment
	}
	return payload
}

func legToDTO(leg entities.Leg) dto.Leg {
	return dto.Leg{
		Address:          leg.Address,
		PlannedLocation:  dto.Location{Lat: leg.PlannedLocation.Lat, Lng: leg.PlannedLocation.Lng},
		ActualTime:       leg.ActualTime,
		ActualLocation:   locationToDTO(leg.ActualLocation),
		ConfirmationCode: leg.ConfirmationCode,
		PhotoURL:         leg.PhotoURL,
		Notes:            leg.Notes,
	}
}

func HistoryToDTO(history []entities.StatusHistoryEntry) []dto.StatusHistoryEntry {
	result := make([]dto.StatusHistoryEntry, 0, len(history))
	for _, entry := range history {
		result = append(result, dto.StatusHistoryEntry{
			Status:    entry.Status.String(),
			Timestamp: entry.Timestamp,
			UpdatedBy: entry.UpdatedBy,
			Notes:     entry.Notes,
			Location:  locationToDTO(entry.Location),
		})
	}
	return result
}

func OfferToDTO(offer *entities.Offer) dto.Offer {
	timeline := make(map[string]time.Time, len(offer.Timeline))
	for milestone, at := range offer.Timeline {
		timeline[string(milestone)] = at
	}

	result := dto.Offer{
		ID:                 offer.ID,
		BusinessID:         offer.BusinessID,
		RiderID:            offer.RiderID,
		Status:             offer.Status.String(),
		Description:        offer.Description,
		PackageSize:        offer.PackageSize.String(),
		Price:              offer.Price,
		Currency:           offer.Currency,
		PickupCodeRequired: offer.PickupCodeRequired,
		Pickup:             legToDTO(offer.Pickup),
		Delivery:           legToDTO(offer.Delivery),
		Timeline:           timeline,
		StatusHistory:      HistoryToDTO(offer.StatusHistory),
		Version:            offer.Version,
		CreatedAt:          offer.CreatedAt,
		UpdatedAt:          offer.UpdatedAt,
	}

	if offer.Payment != nil {
		result.Payment = &dto.Payment{
			Reference:    offer.Payment.Reference,
			Waived:       offer.Payment.Waived,
			WaivedBy:     offer.Payment.WaivedBy,
			WaiverReason: offer.Payment.WaiverReason,
		}
	}
	if offer.Dispute != nil {
		result.Dispute = &dto.Dispute{
			Reason:   offer.Dispute.Reason,
			OpenedBy: offer.Dispute.OpenedBy,
		}
	}
	if offer.Cancellation != nil {
		result.Cancellation = &dto.Cancellation{
			Reason:      offer.Cancellation.Reason,
			CancelledBy: offer.Cancellation.CancelledBy,
		}
	}

	return result
}

func OffersToDTO(offers []entities.Offer) []dto.Offer {
	result := make([]dto.Offer, 0, len(offers))
	for i := range offers {
		result = append(result, OfferToDTO(&offers[i]))
	}
	return result
}

func DispatchRecordsToDTO(records []entities.DispatchRecord) []dto.DispatchRecord {
	result := make([]dto.DispatchRecord, 0, len(records))
	for _, record := range records {
		item := dto.DispatchRecord{
			ID:          record.ID,
			Kind:        record.Kind.String(),
			RecipientID: record.RecipientID,
			State:       record.State.String(),
			UpdatedAt:   record.UpdatedAt,
		}
		if record.Error != "" {
			errText := record.Error
			item.Error = &errText
		}
		result = append(result, item)
	}
	return result
}

func TransitionResultToDTO(result *entities.TransitionResult) dto.TransitionResponse {
	return dto.TransitionResponse{
		Offer: OfferToDTO(result.Offer),
		Dispatch: dto.DispatchSubmission{
			Accepted: result.Dispatch.Accepted(),
			Records:  DispatchRecordsToDTO(result.Dispatch.Records),
		},
	}
}

func RiderToDTO(rider *entities.Rider) dto.Rider {
	return dto.Rider{
		ID:            rider.ID,
		Name:          rider.Name,
		Phone:         rider.Phone,
		Status:        rider.Status.String(),
		TransportType: rider.TransportType.String(),
		LastSeenAt:    rider.LastSeenAt,
		CreatedAt:     rider.CreatedAt,
		UpdatedAt:     rider.UpdatedAt,
	}
}

func RidersToDTO(riders []entities.Rider) []dto.Rider {
	result := make([]dto.Rider, 0, len(riders))
	for i := range riders {
		result = append(result, RiderToDTO(&riders[i]))
	}
	return result
}

func RiderCreateFromDTO(body dto.RiderCreate) entities.RiderModify {
	name := body.Name
	phone := body.Phone
	return entities.RiderModify{
		ID:            body.ID,
		Name:          &name,
		Phone:         &phone,
		Status:        riderStatusFromDTO(body.Status),
		TransportType: transportFromDTO(body.TransportType),
	}
}

func RiderUpdateFromDTO(body dto.RiderUpdate) entities.RiderModify {
	var id *string
	if body.ID != "" {
		id = &body.ID
	}
	return entities.RiderModify{
		ID:            id,
		Name:          body.Name,
		Phone:         body.Phone,
		Status:        riderStatusFromDTO(body.Status),
		TransportType: transportFromDTO(body.TransportType),
	}
}

func riderStatusFromDTO(status *string) *entities.RiderStatusType {
	if status == nil {
		return nil
	}
	result := entities.RiderStatusType(*status)
	return &result
}

func transportFromDTO(transport *string) *entities.RiderTransportType {
	if transport == nil {
		return nil
	}
	result := entities.RiderTransportType(*transport)
	return &result
}
