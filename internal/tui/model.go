package tui

import (
	"fmt"
	"strings"

	"github.com/andy/smartbill/internal/app"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen represents the current active screen
type Screen int

const (
	ScreenBilling Screen = iota
	ScreenHistory
	ScreenSettings
)

// String returns the screen name
func (s Screen) String() string {
	switch s {
	case ScreenBilling:
		return "Billing"
	case ScreenHistory:
		return "History"
	case ScreenSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}

// Model is the root Bubble Tea model
type Model struct {
	app           *app.App
	currentScreen Screen
	width         int
	height        int

	// Screen models (lazy initialized)
	billing  tea.Model
	history  tea.Model
	settings tea.Model

	// Error state
	err error
}

// New creates a new root model
func New(a *app.App) Model {
	billing := NewBillingModel(a)
	return Model{
		app:           a,
		currentScreen: ScreenBilling,
		billing:       billing,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	if m.billing != nil {
		return m.billing.Init()
	}
	return nil
}

// initScreen lazy-initializes a screen on first visit,
// and sends a RefreshDataMsg on subsequent visits so screens reload data.
func (m *Model) initScreen(screen Screen) tea.Cmd {
	switch screen {
	case ScreenBilling:
		if m.billing == nil {
			m.billing = NewBillingModel(m.app)
			return m.billing.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	case ScreenHistory:
		if m.history == nil {
			m.history = NewHistoryModel(m.app)
			return m.history.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	case ScreenSettings:
		if m.settings == nil {
			m.settings = NewSettingsModel(m.app)
			return m.settings.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	}
	return nil
}

// InputCapturer is implemented by screens that capture keyboard input (e.g. text forms).
// When active, global navigation keys (B, H, Q) are suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

// activeScreenCapturingInput returns true if the current screen is capturing text input
func (m *Model) activeScreenCapturingInput() bool {
	var screen tea.Model
	switch m.currentScreen {
	case ScreenBilling:
		screen = m.billing
	case ScreenHistory:
		screen = m.history
	case ScreenSettings:
		screen = m.settings
	}
	if ic, ok := screen.(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

// Update implements tea.Model - routes keys to screens
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Skip global navigation when a screen is capturing text input
		if !m.activeScreenCapturingInput() {
			// Global key handlers (screen navigation)
			switch {
			case key.Matches(msg, DefaultKeyMap.Quit):
				return m, tea.Quit

			case key.Matches(msg, DefaultKeyMap.Billing):
				m.currentScreen = ScreenBilling
				cmd := m.initScreen(ScreenBilling)
				return m, cmd

			case key.Matches(msg, DefaultKeyMap.History):
				m.currentScreen = ScreenHistory
				cmd := m.initScreen(ScreenHistory)
				return m, cmd

			case key.Matches(msg, DefaultKeyMap.Settings):
				m.currentScreen = ScreenSettings
				cmd := m.initScreen(ScreenSettings)
				return m, cmd
			}
		}

	case SwitchScreenMsg:
		m.currentScreen = msg.Screen
		cmd := m.initScreen(msg.Screen)
		return m, cmd

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	// Route message to current screen
	var cmd tea.Cmd
	switch m.currentScreen {
	case ScreenBilling:
		if m.billing != nil {
			m.billing, cmd = m.billing.Update(msg)
		}
	case ScreenHistory:
		if m.history != nil {
			m.history, cmd = m.history.Update(msg)
		}
	case ScreenSettings:
		if m.settings != nil {
			m.settings, cmd = m.settings.Update(msg)
		}
	}

	return m, cmd
}

// View implements tea.Model - renders header + current screen + footer
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	// Header
	header := headerStyle.Render(fmt.Sprintf("smartbill - %s", m.currentScreen.String()))

	// Footer with navigation keys
	footer := footerStyle.Render("[B]illing  [H]istory  [,] Settings  [Q]uit")

	// Current screen content
	var content string
	switch m.currentScreen {
	case ScreenBilling:
		if m.billing != nil {
			content = m.billing.View()
		} else {
			content = "Loading..."
		}
	case ScreenHistory:
		if m.history != nil {
			content = m.history.View()
		} else {
			content = "Loading..."
		}
	case ScreenSettings:
		if m.settings != nil {
			content = m.settings.View()
		} else {
			content = "Loading..."
		}
	}

	// Error display
	errorDisplay := ""
	if m.err != nil {
		errorDisplay = lipgloss.NewStyle().
			Foreground(errorColor).
			Render(fmt.Sprintf("\nError: %s", m.err.Error()))
	}

	// Divider line between header and content
	innerWidth := m.width - 6 // account for border (2) + padding (4)
	if innerWidth < 20 {
		innerWidth = 20
	}
	dividerWidth := innerWidth - 12
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(
		strings.Repeat("─", dividerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n\n%s%s\n\n%s\n%s", header, divider, content, errorDisplay, divider, footer)

	// Wrap in border, sized to terminal
	frame := appBorderStyle.
		Width(innerWidth).
		Height(m.height - 4) // leave room for border top/bottom
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

// Run starts the TUI
func Run(a *app.App) error {
	p := tea.NewProgram(New(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
