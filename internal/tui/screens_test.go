package tui

import "testing"

func TestHistoryModelCapturesInput(t *testing.T) {
	cases := []struct {
		name string
		mode historyMode
		want bool
	}{
		{"list", historyModeList, false},
		{"search", historyModeSearch, true},
		{"confirm delete", historyModeConfirmDelete, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := &HistoryModel{mode: tc.mode}
			if got := m.IsCapturingInput(); got != tc.want {
				t.Fatalf("expected IsCapturingInput %v in %s mode, got %v", tc.want, tc.name, got)
			}
		})
	}
}

func TestSettingsModelCapturesInput(t *testing.T) {
	cases := []struct {
		name string
		mode settingsMode
		want bool
	}{
		{"view", settingsModeView, false},
		{"edit", settingsModeEdit, true},
		{"confirm reset", settingsModeConfirmReset, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := &SettingsModel{mode: tc.mode}
			if got := m.IsCapturingInput(); got != tc.want {
				t.Fatalf("expected IsCapturingInput %v in %s mode, got %v", tc.want, tc.name, got)
			}
		})
	}
}

func TestBillingModelCapturesInput(t *testing.T) {
	cases := []struct {
		name string
		mode billingMode
		want bool
	}{
		{"list", billingModeList, false},
		{"add item", billingModeAddItem, true},
		{"customer", billingModeCustomer, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := &BillingModel{mode: tc.mode}
			if got := m.IsCapturingInput(); got != tc.want {
				t.Fatalf("expected IsCapturingInput %v in %s mode, got %v", tc.want, tc.name, got)
			}
		})
	}
}
