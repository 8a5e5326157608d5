package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Константы валидации
const (
	MinDisplayNameLength      = 2
	MaxDisplayNameLength      = 100
	MinSlotNameLength         = 3
	MaxSlotNameLength         = 120
	MaxLocationLength         = 200
	MinDisputeTitleLength     = 3
	MaxDisputeTitleLength     = 200
	MinDisputeDescriptionLen  = 10
	MaxDisputeDescriptionLen  = 5000
	MaxResolutionNoteLength   = 2000
	MaxChatMessageLength      = 2000
	MinPricePerHour           = 1.0
	MaxPricePerHour           = 100000.0
	MaxTopUpAmount            = 1000000.0
	MaxPlateNumberLength      = 16
)

// ValidateLength проверяет длину строки в рунах.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s must be at least %d characters", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s must be at most %d characters", fieldName, max)
	}
	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}

	email = strings.ToLower(strings.TrimSpace(email))

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("invalid email format")
	}

	localPart, domainPart := parts[0], parts[1]
	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("email local part must be 1 to 64 characters")
	}
	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("email domain must be 1 to 255 characters")
	}

	localRegex := regexp.MustCompile(`^[a-z0-9._+-]+$`)
	if !localRegex.MatchString(localPart) {
		return fmt.Errorf("email local part contains invalid characters")
	}

	domainRegex := regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	if !domainRegex.MatchString(domainPart) {
		return fmt.Errorf("email domain has invalid format")
	}

	return nil
}

// ValidatePlateNumber проверяет госномер транспортного средства.
func ValidatePlateNumber(plate string) error {
	plate = strings.TrimSpace(plate)
	if plate == "" {
		return fmt.Errorf("plate number is required")
	}
	if utf8.RuneCountInString(plate) > MaxPlateNumberLength {
		return fmt.Errorf("plate number must be at most %d characters", MaxPlateNumberLength)
	}

	plateRegex := regexp.MustCompile(`^[A-Za-z0-9 -]+$`)
	if !plateRegex.MatchString(plate) {
		return fmt.Errorf("plate number may contain only letters, digits, spaces and dashes")
	}
	return nil
}

// ValidatePricePerHour проверяет тариф парковочного места.
func ValidatePricePerHour(price float64) error {
	if price < MinPricePerHour {
		return fmt.Errorf("price per hour must be at least %.0f", MinPricePerHour)
	}
	if price > MaxPricePerHour {
		return fmt.Errorf("price per hour cannot exceed %.0f", MaxPricePerHour)
	}
	return nil
}

// ValidateTopUpAmount проверяет сумму пополнения кошелька.
func ValidateTopUpAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("top-up amount must be positive")
	}
	if amount > MaxTopUpAmount {
		return fmt.Errorf("top-up amount cannot exceed %.0f", MaxTopUpAmount)
	}
	return nil
}

// ValidateDisputeTitle проверяет заголовок спора.
func ValidateDisputeTitle(title string) error {
	if err := ValidateNonEmpty("dispute title", title); err != nil {
		return err
	}
	return ValidateLength("dispute title", strings.TrimSpace(title), MinDisputeTitleLength, MaxDisputeTitleLength)
}

// ValidateDisputeDescription проверяет описание спора.
func ValidateDisputeDescription(description string) error {
	if err := ValidateNonEmpty("dispute description", description); err != nil {
		return err
	}
	return ValidateLength("dispute description", strings.TrimSpace(description), MinDisputeDescriptionLen, MaxDisputeDescriptionLen)
}

// ValidateChatMessage проверяет сообщение ассистенту.
func ValidateChatMessage(content string) error {
	if err := ValidateNonEmpty("message", content); err != nil {
		return err
	}
	return ValidateLength("message", strings.TrimSpace(content), 1, MaxChatMessageLength)
}
