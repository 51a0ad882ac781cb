package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MaxNameLen максимальная длина имени контакта или названия компании
	MaxNameLen = 255
	// MaxCityLen максимальная длина названия города
	MaxCityLen = 128
	// MaxPhoneLen максимальная длина телефона, формат не проверяется
	MaxPhoneLen = 64
)

// ValidateName проверяет имя контакта или название компании
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name cannot be empty")
	}

	if utf8.RuneCountInString(name) > MaxNameLen {
		return fmt.Errorf("name must not exceed %d characters", MaxNameLen)
	}

	return nil
}

// ValidatePhone проверяет телефон контакта
func ValidatePhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return fmt.Errorf("phone cannot be empty")
	}

	if utf8.RuneCountInString(phone) > MaxPhoneLen {
		return fmt.Errorf("phone must not exceed %d characters", MaxPhoneLen)
	}

	return nil
}

// ValidateCity проверяет опциональный город
func ValidateCity(city string) error {
	if utf8.RuneCountInString(city) > MaxCityLen {
		return fmt.Errorf("city must not exceed %d characters", MaxCityLen)
	}
	return nil
}

// ValidateCompanyID проверяет ссылку на компанию (0 - не выбрана)
func ValidateCompanyID(id int64) error {
	if id < 0 {
		return fmt.Errorf("company id must not be negative")
	}
	return nil
}
