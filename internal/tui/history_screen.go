package tui

import (
	"context"
	"fmt"

	"github.com/andy/smartbill/internal/app"
	"github.com/andy/smartbill/internal/domain"
	"github.com/andy/smartbill/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type historyMode int

const (
	historyModeList historyMode = iota
	historyModeSearch
	historyModeConfirmDelete
)

type billsLoadedMsg struct {
	bills []domain.Bill
	err   error
}

type billDeletedMsg struct {
	err error
}

type pdfSavedMsg struct {
	path string
	err  error
}

// HistoryModel shows finalized bills with search, date filtering and
// sortable columns.
type HistoryModel struct {
	app  *app.App
	mode historyMode

	filter      service.HistoryFilter
	searchInput textinput.Model

	bills     []domain.Bill
	cursor    int
	err       error
	statusMsg string
}

// NewHistoryModel creates a new history screen
func NewHistoryModel(a *app.App) tea.Model {
	return &HistoryModel{
		app:    a,
		mode:   historyModeList,
		filter: service.DefaultHistoryFilter(),
	}
}

// IsCapturingInput returns true while the search field or the delete
// confirmation is active, so navigation keys cannot leave a confirmation
// pending.
func (m *HistoryModel) IsCapturingInput() bool {
	return m.mode == historyModeSearch || m.mode == historyModeConfirmDelete
}

func (m *HistoryModel) Init() tea.Cmd {
	return m.loadBills()
}

func (m *HistoryModel) loadBills() tea.Cmd {
	a := m.app
	filter := m.filter
	return func() tea.Msg {
		bills, err := a.HistoryService.List(context.Background(), filter)
		return billsLoadedMsg{bills: bills, err: err}
	}
}

func (m *HistoryModel) deleteBill(id int64) tea.Cmd {
	a := m.app
	return func() tea.Msg {
		_, err := a.BillingService.DeleteBill(context.Background(), id, nil)
		return billDeletedMsg{err: err}
	}
}

func (m *HistoryModel) savePDF(id int64) tea.Cmd {
	a := m.app
	return func() tea.Msg {
		path, err := a.BillingService.RegeneratePDF(context.Background(), id)
		return pdfSavedMsg{path: path, err: err}
	}
}

func (m *HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		return m, m.loadBills()

	case billsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.bills = msg.bills
		if m.cursor >= len(m.bills) {
			m.cursor = max(0, len(m.bills)-1)
		}
		return m, nil

	case billDeletedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = "Bill deleted"
		return m, m.loadBills()

	case pdfSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("PDF saved -> %s", msg.path)
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case historyModeList:
			return m.updateList(msg)
		case historyModeSearch:
			return m.updateSearch(msg)
		case historyModeConfirmDelete:
			return m.updateConfirmDelete(msg)
		}
	}

	if m.mode == historyModeSearch {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *HistoryModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil

	switch {
	case key.Matches(msg, DefaultKeyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, DefaultKeyMap.Down):
		if m.cursor < len(m.bills)-1 {
			m.cursor++
		}
	case msg.String() == "/":
		m.mode = historyModeSearch
		m.statusMsg = ""
		m.searchInput = textinput.New()
		m.searchInput.Placeholder = "item, bill number or customer"
		m.searchInput.CharLimit = 64
		m.searchInput.Width = 40
		m.searchInput.SetValue(m.filter.SearchTerm)
		m.searchInput.Focus()
		return m, textinput.Blink
	case msg.String() == "f":
		m.filter.DateRange = nextDateRange(m.filter.DateRange)
		return m, m.loadBills()
	case msg.String() == "1":
		m.filter.Toggle(service.SortByDate)
		return m, m.loadBills()
	case msg.String() == "2":
		m.filter.Toggle(service.SortByAmount)
		return m, m.loadBills()
	case msg.String() == "3":
		m.filter.Toggle(service.SortByItems)
		return m, m.loadBills()
	case msg.String() == "p":
		if len(m.bills) > 0 && m.cursor < len(m.bills) {
			m.statusMsg = ""
			return m, m.savePDF(m.bills[m.cursor].ID)
		}
	case key.Matches(msg, DefaultKeyMap.Delete):
		if len(m.bills) > 0 && m.cursor < len(m.bills) {
			m.mode = historyModeConfirmDelete
			m.statusMsg = ""
		}
	}

	return m, nil
}

func (m *HistoryModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = historyModeList
		return m, nil
	case "enter":
		m.filter.SearchTerm = m.searchInput.Value()
		m.mode = historyModeList
		return m, m.loadBills()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *HistoryModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = historyModeList
		if m.cursor < len(m.bills) {
			return m, m.deleteBill(m.bills[m.cursor].ID)
		}
	case "n", "N", "esc":
		m.mode = historyModeList
	}
	return m, nil
}

func nextDateRange(r service.DateRange) service.DateRange {
	switch r {
	case service.RangeAll:
		return service.RangeToday
	case service.RangeToday:
		return service.RangeWeek
	case service.RangeWeek:
		return service.RangeMonth
	default:
		return service.RangeAll
	}
}

func sortIndicator(f service.HistoryFilter, k service.SortKey) string {
	if f.SortBy != k {
		return ""
	}
	if f.Order == service.SortAsc {
		return " ^"
	}
	return " v"
}

func (m *HistoryModel) View() string {
	if m.mode == historyModeSearch {
		var s string
		s += titleStyle.Render("Search Bills") + "\n\n"
		s += "  " + m.searchInput.View() + "\n\n"
		s += helpStyle.Render("  enter: apply  esc: cancel")
		return s
	}

	var s string
	s += titleStyle.Render("Bill History") + "\n\n"

	filterLine := fmt.Sprintf("  Range: %s", m.filter.DateRange)
	if m.filter.SearchTerm != "" {
		filterLine += fmt.Sprintf("   Search: %q", m.filter.SearchTerm)
	}
	s += subtitleStyle.Render(filterLine) + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}
	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  %v", m.err)) + "\n\n"
	}

	if len(m.bills) == 0 {
		s += subtitleStyle.Render("  No bills found") + "\n"
	} else {
		s += fmt.Sprintf("  %-8s %-12s %-20s %8s %12s\n",
			"Bill #",
			"Date"+sortIndicator(m.filter, service.SortByDate),
			"Customer",
			"Items"+sortIndicator(m.filter, service.SortByItems),
			"Amount"+sortIndicator(m.filter, service.SortByAmount),
		)
		s += subtitleStyle.Render("  "+fmt.Sprintf("%-8s %-12s %-20s %8s %12s",
			"-------", "-----------", "-------------------", "-------", "-----------")) + "\n"

		for i, bill := range m.bills {
			customer := bill.CustomerName
			if customer == "" {
				customer = "-"
			}
			row := fmt.Sprintf("  %-8d %-12s %-20s %8d %12s",
				bill.BillNumber,
				bill.Date.Format("2006-01-02"),
				truncateStr(customer, 20),
				len(bill.Items),
				formatMoney(bill.TotalAmount),
			)
			if i == m.cursor {
				row = selectedStyle.Render(row)
			}
			s += row + "\n"
		}
	}

	if m.mode == historyModeConfirmDelete && m.cursor < len(m.bills) {
		s += "\n" + lipgloss.NewStyle().Foreground(errorColor).Bold(true).
			Render(fmt.Sprintf("  Delete bill %d? (y/n)", m.bills[m.cursor].BillNumber)) + "\n"
	}

	s += "\n" + helpStyle.Render("  /: search  f: date range  1/2/3: sort date/amount/items  p: save PDF  d: delete")
	return s
}
