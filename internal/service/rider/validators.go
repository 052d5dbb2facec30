package rider

import (
	"strings"

	"marketplace/internal/entities"
)

const maxRiderIDLength = 128

func isValidRiderID(id string) bool {
	id = strings.TrimSpace(id)
	return id != "" && len(id) <= maxRiderIDLength
}

func isValidName(name string) bool {
	return strings.TrimSpace(name) != ""
}

func isValidPhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	if !strings.HasPrefix(phone, "+") || len(phone) < 2 {
		return false
	}

	for _, char := range phone[1:] {
		if char < '0' || char > '9' {
			return false
		}
	}
	return true
}

func isValidStatus(status entities.RiderStatusType) bool {
	switch status {
	case entities.RiderAvailable, entities.RiderBusy, entities.RiderPaused:
		return true
	default:
		return false
	}
}

func isValidTransport(transport entities.RiderTransportType) bool {
	switch transport {
	case entities.OnFoot, entities.Bicycle, entities.Scooter, entities.Car:
		return true
	default:
		return false
	}
}
