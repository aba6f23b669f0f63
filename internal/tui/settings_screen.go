package tui

import (
	"context"
	"fmt"

	"github.com/andy/smartbill/internal/app"
	"github.com/andy/smartbill/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type settingsMode int

const (
	settingsModeView settingsMode = iota
	settingsModeEdit
	settingsModeConfirmReset
)

var settingsFieldLabels = map[string]string{
	"companyName":        "Company Name",
	"companyAddress":     "Company Address",
	"companyEmail":       "Company Email",
	"companyPhone":       "Company Phone",
	"taxRate":            "Tax Rate (%)",
	"currency":           "Currency",
	"emailNotifications": "Email Notifications",
	"autoSave":           "Auto Save",
	"darkMode":           "Dark Mode",
	"language":           "Language",
	"invoicePrefix":      "Invoice Prefix",
	"paymentTerms":       "Payment Terms (days)",
}

// SettingsModel manages the preferences record: a read-only view plus an
// edit form where each committed field is written through the service, so
// auto-save persistence applies per field.
type SettingsModel struct {
	app  *app.App
	mode settingsMode

	settings *domain.Settings

	inputs []textinput.Model
	focus  int

	err       error
	statusMsg string
}

// NewSettingsModel creates a new settings screen
func NewSettingsModel(a *app.App) tea.Model {
	return &SettingsModel{
		app:  a,
		mode: settingsModeView,
	}
}

// IsCapturingInput returns true while the edit form or the reset
// confirmation is active, so navigation keys cannot leave a confirmation
// pending.
func (m *SettingsModel) IsCapturingInput() bool {
	return m.mode == settingsModeEdit || m.mode == settingsModeConfirmReset
}

func (m *SettingsModel) Init() tea.Cmd {
	settings, err := m.app.SettingsService.Get(context.Background())
	if err != nil {
		m.err = err
		return nil
	}
	m.settings = settings
	return nil
}

func (m *SettingsModel) initForm() {
	m.inputs = make([]textinput.Model, len(domain.SettingsFieldNames))
	for i, name := range domain.SettingsFieldNames {
		input := textinput.New()
		input.CharLimit = 128
		input.Width = 36
		value, err := m.settings.Field(name)
		if err == nil {
			input.SetValue(value)
		}
		m.inputs[i] = input
	}
	m.focus = 0
	m.inputs[0].Focus()
}

// commitField writes the focused input through the service. Parse errors
// keep the form open with the message shown; the record keeps its old
// value.
func (m *SettingsModel) commitField() {
	name := domain.SettingsFieldNames[m.focus]
	value := m.inputs[m.focus].Value()

	current, err := m.settings.Field(name)
	if err == nil && current == value {
		return
	}

	saved, err := m.app.SettingsService.UpdateField(context.Background(), name, value)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	if saved {
		m.statusMsg = "Settings auto-saved"
	} else {
		m.statusMsg = "Changed (not saved - press ctrl+s to save)"
	}
}

func (m *SettingsModel) moveFocus(delta int) tea.Cmd {
	m.commitField()
	m.inputs[m.focus].Blur()
	n := len(m.inputs)
	m.focus = (m.focus + delta + n) % n
	return m.inputs[m.focus].Focus()
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case settingsModeView:
			return m.updateView(msg)
		case settingsModeEdit:
			return m.updateEdit(msg)
		case settingsModeConfirmReset:
			return m.updateConfirmReset(msg)
		}
	}

	if m.mode == settingsModeEdit {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *SettingsModel) updateView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, DefaultKeyMap.Select) || msg.String() == "e":
		if m.settings == nil {
			return m, nil
		}
		m.mode = settingsModeEdit
		m.statusMsg = ""
		m.err = nil
		m.initForm()
		return m, textinput.Blink
	case msg.String() == "r":
		m.mode = settingsModeConfirmReset
		m.statusMsg = ""
	}
	return m, nil
}

func (m *SettingsModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.commitField()
		m.mode = settingsModeView
		return m, nil

	case "tab", "down", "enter":
		return m, m.moveFocus(1)

	case "shift+tab", "up":
		return m, m.moveFocus(-1)

	case "ctrl+s":
		m.commitField()
		if err := m.app.SettingsService.Save(context.Background()); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.statusMsg = "Settings saved"
		m.mode = settingsModeView
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *SettingsModel) updateConfirmReset(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = settingsModeView
		settings, err := m.app.SettingsService.Reset(context.Background())
		if err != nil {
			m.err = err
			return m, nil
		}
		m.settings = settings
		m.statusMsg = "Settings reset to defaults"
	case "n", "N", "esc":
		m.mode = settingsModeView
	}
	return m, nil
}

func (m *SettingsModel) View() string {
	var s string
	s += titleStyle.Render("Settings") + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}
	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  %v", m.err)) + "\n\n"
	}

	if m.settings == nil {
		s += subtitleStyle.Render("  Settings unavailable") + "\n"
		return s
	}

	switch m.mode {
	case settingsModeEdit:
		for i, name := range domain.SettingsFieldNames {
			indicator := "  "
			labelStyle := subtitleStyle
			if i == m.focus {
				indicator = "> "
				labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
			}
			s += fmt.Sprintf("%s%-22s %s\n", indicator,
				labelStyle.Render(settingsFieldLabels[name]), m.inputs[i].View())
		}
		s += "\n" + helpStyle.Render("  tab/enter: next field  ctrl+s: save all  esc: done")

	default:
		for _, name := range domain.SettingsFieldNames {
			value, err := m.settings.Field(name)
			if err != nil {
				continue
			}
			if value == "" {
				value = "-"
			}
			s += fmt.Sprintf("  %-22s %s\n", subtitleStyle.Render(settingsFieldLabels[name]), value)
		}
		if m.mode == settingsModeConfirmReset {
			s += "\n" + lipgloss.NewStyle().Foreground(errorColor).Bold(true).
				Render("  Reset all settings to defaults? (y/n)") + "\n"
		}
		s += "\n" + helpStyle.Render("  enter/e: edit  r: reset to defaults")
	}

	return s
}
