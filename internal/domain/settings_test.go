package domain

import "testing"

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.TaxRate != 10 {
		t.Fatalf("expected default tax rate 10, got %v", s.TaxRate)
	}
	if s.Currency != "USD" {
		t.Fatalf("expected default currency USD, got %q", s.Currency)
	}
	if !s.AutoSave || !s.EmailNotifications {
		t.Fatalf("expected auto-save and email notifications enabled by default")
	}
	if s.DarkMode {
		t.Fatalf("expected dark mode off by default")
	}
	if s.InvoicePrefix != "INV-" || s.PaymentTerms != 30 || s.Language != "en" {
		t.Fatalf("unexpected defaults: %+v", s)
	}
}

func TestSettingsSetField(t *testing.T) {
	s := DefaultSettings()

	if err := s.SetField("companyName", "ACME Corp"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.CompanyName != "ACME Corp" {
		t.Fatalf("expected company name set, got %q", s.CompanyName)
	}

	if err := s.SetField("taxRate", "7.25"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.TaxRate != 7.25 {
		t.Fatalf("expected tax rate 7.25, got %v", s.TaxRate)
	}

	if err := s.SetField("darkMode", "true"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.DarkMode {
		t.Fatalf("expected dark mode enabled")
	}

	if err := s.SetField("paymentTerms", "45"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.PaymentTerms != 45 {
		t.Fatalf("expected payment terms 45, got %d", s.PaymentTerms)
	}
}

func TestSettingsSetField_Errors(t *testing.T) {
	s := DefaultSettings()

	if err := s.SetField("nonsense", "x"); err == nil {
		t.Fatalf("expected error for unknown field")
	}
	if err := s.SetField("taxRate", "lots"); err == nil {
		t.Fatalf("expected error for unparsable tax rate")
	}
	if s.TaxRate != 10 {
		t.Fatalf("expected record unchanged on error, got tax rate %v", s.TaxRate)
	}
	if err := s.SetField("autoSave", "maybe"); err == nil {
		t.Fatalf("expected error for unparsable bool")
	}
}

func TestSettingsField_RoundTrip(t *testing.T) {
	s := DefaultSettings()
	s.CompanyName = "ACME Corp"
	s.TaxRate = 7.25

	for _, name := range SettingsFieldNames {
		value, err := s.Field(name)
		if err != nil {
			t.Fatalf("Field(%q): %v", name, err)
		}
		if err := s.SetField(name, value); err != nil {
			t.Fatalf("SetField(%q, %q): %v", name, value, err)
		}
	}

	if s.TaxRate != 7.25 || s.CompanyName != "ACME Corp" {
		t.Fatalf("expected values preserved through round trip: %+v", s)
	}
}
