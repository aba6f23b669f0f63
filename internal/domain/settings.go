package domain

import (
	"fmt"
	"strconv"
)

// Settings is the flat record of user preferences. A single copy is
// persisted; there is no history and the last write wins.
type Settings struct {
	CompanyName        string  `json:"companyName"`
	CompanyAddress     string  `json:"companyAddress"`
	CompanyEmail       string  `json:"companyEmail"`
	CompanyPhone       string  `json:"companyPhone"`
	TaxRate            float64 `json:"taxRate"`
	Currency           string  `json:"currency"`
	EmailNotifications bool    `json:"emailNotifications"`
	AutoSave           bool    `json:"autoSave"`
	DarkMode           bool    `json:"darkMode"`
	Language           string  `json:"language"`
	InvoicePrefix      string  `json:"invoicePrefix"`
	PaymentTerms       int     `json:"paymentTerms"`
}

// DefaultSettings returns the documented default record
func DefaultSettings() *Settings {
	return &Settings{
		CompanyName:        "",
		CompanyAddress:     "",
		CompanyEmail:       "",
		CompanyPhone:       "",
		TaxRate:            10,
		Currency:           "USD",
		EmailNotifications: true,
		AutoSave:           true,
		DarkMode:           false,
		Language:           "en",
		InvoicePrefix:      "INV-",
		PaymentTerms:       30,
	}
}

// SettingsFieldNames lists the recognized field names in display order
var SettingsFieldNames = []string{
	"companyName",
	"companyAddress",
	"companyEmail",
	"companyPhone",
	"taxRate",
	"currency",
	"emailNotifications",
	"autoSave",
	"darkMode",
	"language",
	"invoicePrefix",
	"paymentTerms",
}

// SetField assigns a single named field from its string representation,
// parsing numeric and boolean fields. Unknown field names and unparsable
// values are errors; the record is unchanged on error.
func (s *Settings) SetField(name, value string) error {
	switch name {
	case "companyName":
		s.CompanyName = value
	case "companyAddress":
		s.CompanyAddress = value
	case "companyEmail":
		s.CompanyEmail = value
	case "companyPhone":
		s.CompanyPhone = value
	case "taxRate":
		rate, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("tax rate must be a number: %w", err)
		}
		s.TaxRate = rate
	case "currency":
		s.Currency = value
	case "emailNotifications":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("emailNotifications must be true or false: %w", err)
		}
		s.EmailNotifications = b
	case "autoSave":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("autoSave must be true or false: %w", err)
		}
		s.AutoSave = b
	case "darkMode":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("darkMode must be true or false: %w", err)
		}
		s.DarkMode = b
	case "language":
		s.Language = value
	case "invoicePrefix":
		s.InvoicePrefix = value
	case "paymentTerms":
		days, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("payment terms must be a number of days: %w", err)
		}
		s.PaymentTerms = days
	default:
		return fmt.Errorf("unknown settings field %q", name)
	}
	return nil
}

// Field returns the string representation of a single named field
func (s *Settings) Field(name string) (string, error) {
	switch name {
	case "companyName":
		return s.CompanyName, nil
	case "companyAddress":
		return s.CompanyAddress, nil
	case "companyEmail":
		return s.CompanyEmail, nil
	case "companyPhone":
		return s.CompanyPhone, nil
	case "taxRate":
		return strconv.FormatFloat(s.TaxRate, 'f', -1, 64), nil
	case "currency":
		return s.Currency, nil
	case "emailNotifications":
		return strconv.FormatBool(s.EmailNotifications), nil
	case "autoSave":
		return strconv.FormatBool(s.AutoSave), nil
	case "darkMode":
		return strconv.FormatBool(s.DarkMode), nil
	case "language":
		return s.Language, nil
	case "invoicePrefix":
		return s.InvoicePrefix, nil
	case "paymentTerms":
		return strconv.Itoa(s.PaymentTerms), nil
	default:
		return "", fmt.Errorf("unknown settings field %q", name)
	}
}
