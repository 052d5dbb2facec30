package offer

import (
	"math"
	"net/url"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"marketplace/internal/entities"
)

const (
	maxDescriptionLength = 500
	maxNotesLength       = 1000
	minCodeLength        = 4
	maxCodeLength        = 8
)

func isValidOfferID(id string) bool {
	return uuid.Validate(id) == nil
}

func isValidDescription(description string) bool {
	description = strings.TrimSpace(description)
	return description != "" && len(description) <= maxDescriptionLength
}

func isValidPackageSize(size entities.PackageSizeType) bool {
	switch size {
	case entities.PackageSmall, entities.PackageMedium, entities.PackageLarge:
		return true
	default:
		return false
	}
}

// isValidCurrency ISO 4217: три заглавные латинские буквы.
func isValidCurrency(currency string) bool {
	if len(currency) != 3 {
		return false
	}
	for _, char := range currency {
		if char < 'A' || char > 'Z' {
			return false
		}
	}
	return true
}

func isValidAddress(address string) bool {
	return strings.TrimSpace(address) != ""
}

// isValidLocation проверяет только диапазоны, геофенсинг делает внешняя сторона.
func isValidLocation(location entities.Location) bool {
	if math.IsNaN(location.Lat) || math.IsNaN(location.Lng) {
		return false
	}
	return location.Lat >= -90 && location.Lat <= 90 &&
		location.Lng >= -180 && location.Lng <= 180
}

func isValidPhotoURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func isValidCode(code string) bool {
	if len(code) < minCodeLength || len(code) > maxCodeLength {
		return false
	}
	for _, char := range code {
		if !unicode.IsDigit(char) {
			return false
		}
	}
	return true
}

func isValidNotes(notes *string) bool {
	return notes == nil || len(*notes) <= maxNotesLength
}

func hasText(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}
