package models

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// User owns all other resources.
type User struct {
	DefaultModel
	Name     string
	Note     string
	Locale   string // BCP 47 language tag, e.g. "de-DE"
	Currency string // Currency symbol. Derived from the locale if empty
}

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Note = strings.TrimSpace(u.Note)
	u.Locale = strings.TrimSpace(u.Locale)
	u.Currency = strings.TrimSpace(u.Currency)

	if u.Locale == "" {
		return nil
	}

	tag, err := language.Parse(u.Locale)
	if err != nil {
		return ErrUserLocaleInvalid
	}

	if u.Currency == "" {
		u.Currency = currencySymbol(tag)
	}

	return nil
}

// currencySymbol returns the symbol of the currency used in the region
// of the tag or an empty string if the region has no currency.
func currencySymbol(tag language.Tag) string {
	cur, confidence := currency.FromTag(tag)
	if confidence == language.No {
		return ""
	}

	return fmt.Sprintf("%s", currency.Symbol(cur))
}
