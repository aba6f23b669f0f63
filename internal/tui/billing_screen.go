package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/andy/smartbill/internal/app"
	"github.com/andy/smartbill/internal/domain"
	"github.com/andy/smartbill/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type billingMode int

const (
	billingModeList billingMode = iota
	billingModeAddItem
	billingModeCustomer
)

// add-item form field indices
const (
	itemFieldName = iota
	itemFieldQuantity
	itemFieldPrice
	itemFieldCount
)

type billGeneratedMsg struct {
	bill *domain.Bill
	path string
	err  error
}

type draftPrintedMsg struct {
	path string
	err  error
}

// BillingModel manages the draft invoice: the item entry form, the item
// table, and the generate/print actions.
type BillingModel struct {
	app  *app.App
	mode billingMode

	fields     []textinput.Model
	fieldFocus int

	customerInput textinput.Model
	customerName  string

	cursor    int
	err       error
	statusMsg string
}

// NewBillingModel creates a new billing screen
func NewBillingModel(a *app.App) tea.Model {
	return &BillingModel{
		app:  a,
		mode: billingModeList,
	}
}

// IsCapturingInput returns true while a text form is active
func (m *BillingModel) IsCapturingInput() bool {
	return m.mode == billingModeAddItem || m.mode == billingModeCustomer
}

func (m *BillingModel) Init() tea.Cmd {
	return nil
}

func (m *BillingModel) initItemForm() {
	m.fields = make([]textinput.Model, itemFieldCount)

	m.fields[itemFieldName] = textinput.New()
	m.fields[itemFieldName].Placeholder = "Enter item name"
	m.fields[itemFieldName].CharLimit = 64
	m.fields[itemFieldName].Width = 32

	m.fields[itemFieldQuantity] = textinput.New()
	m.fields[itemFieldQuantity].Placeholder = "1"
	m.fields[itemFieldQuantity].CharLimit = 6
	m.fields[itemFieldQuantity].Width = 10
	m.fields[itemFieldQuantity].SetValue("1")

	m.fields[itemFieldPrice] = textinput.New()
	m.fields[itemFieldPrice].Placeholder = "0.00"
	m.fields[itemFieldPrice].CharLimit = 12
	m.fields[itemFieldPrice].Width = 10
	m.fields[itemFieldPrice].SetValue("0")

	m.fieldFocus = itemFieldName
	m.fields[itemFieldName].Focus()
}

// addItem submits the form. Missing or zero inputs are rejected the same
// way the form treats them: nothing is added and the fields are left
// as typed so the user can fix them.
func (m *BillingModel) addItem() {
	name := m.fields[itemFieldName].Value()
	quantity, _ := strconv.Atoi(m.fields[itemFieldQuantity].Value())
	price, _ := strconv.ParseFloat(m.fields[itemFieldPrice].Value(), 64)

	if !m.app.Draft.AddItem(name, quantity, price) {
		return
	}

	// Reset to form defaults for the next item
	m.fields[itemFieldName].SetValue("")
	m.fields[itemFieldQuantity].SetValue("1")
	m.fields[itemFieldPrice].SetValue("0")
	m.fields[m.fieldFocus].Blur()
	m.fieldFocus = itemFieldName
	m.fields[itemFieldName].Focus()
}

func (m *BillingModel) generateBill() tea.Cmd {
	a := m.app
	customer := m.customerName
	return func() tea.Msg {
		bill, path, err := a.BillingService.Generate(context.Background(), a.Draft, customer)
		return billGeneratedMsg{bill: bill, path: path, err: err}
	}
}

func (m *BillingModel) printDraft() tea.Cmd {
	a := m.app
	customer := m.customerName
	return func() tea.Msg {
		path, err := a.BillingService.Print(context.Background(), a.Draft, customer)
		return draftPrintedMsg{path: path, err: err}
	}
}

func (m *BillingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		return m, nil

	case billGeneratedMsg:
		if msg.err != nil {
			var pdfErr *service.PDFError
			if errors.As(msg.err, &pdfErr) {
				// Bill recorded, only the artifact is missing
				m.customerName = ""
				m.cursor = 0
				m.statusMsg = fmt.Sprintf("Bill %d recorded, but PDF failed: %v", pdfErr.Bill.BillNumber, pdfErr.Err)
				return m, nil
			}
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.customerName = ""
		m.cursor = 0
		m.statusMsg = fmt.Sprintf("Bill %d generated -> %s", msg.bill.BillNumber, msg.path)
		return m, nil

	case draftPrintedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.statusMsg = fmt.Sprintf("Draft rendered -> %s", msg.path)
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case billingModeList:
			return m.updateList(msg)
		case billingModeAddItem:
			return m.updateItemForm(msg)
		case billingModeCustomer:
			return m.updateCustomerForm(msg)
		}
	}

	// Forward non-key messages to whichever input is active (cursor blink)
	var cmd tea.Cmd
	switch m.mode {
	case billingModeAddItem:
		m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	case billingModeCustomer:
		m.customerInput, cmd = m.customerInput.Update(msg)
	}
	return m, cmd
}

func (m *BillingModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil

	switch {
	case key.Matches(msg, DefaultKeyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, DefaultKeyMap.Down):
		if m.cursor < len(m.app.Draft.Items)-1 {
			m.cursor++
		}
	case key.Matches(msg, DefaultKeyMap.Add):
		m.mode = billingModeAddItem
		m.statusMsg = ""
		m.initItemForm()
		return m, textinput.Blink
	case key.Matches(msg, DefaultKeyMap.Delete):
		items := m.app.Draft.Items
		if len(items) > 0 && m.cursor < len(items) {
			m.app.Draft.RemoveItem(items[m.cursor].ID)
			if m.cursor >= len(m.app.Draft.Items) && m.cursor > 0 {
				m.cursor--
			}
		}
	case msg.String() == "c":
		m.mode = billingModeCustomer
		m.statusMsg = ""
		m.customerInput = textinput.New()
		m.customerInput.Placeholder = "Customer name (optional)"
		m.customerInput.CharLimit = 64
		m.customerInput.Width = 40
		m.customerInput.SetValue(m.customerName)
		m.customerInput.Focus()
		return m, textinput.Blink
	case msg.String() == "g":
		m.statusMsg = ""
		return m, m.generateBill()
	case msg.String() == "p":
		m.statusMsg = ""
		return m, m.printDraft()
	}

	return m, nil
}

func (m *BillingModel) updateItemForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = billingModeList
		return m, nil

	case "tab", "down":
		m.fields[m.fieldFocus].Blur()
		m.fieldFocus = (m.fieldFocus + 1) % itemFieldCount
		return m, m.fields[m.fieldFocus].Focus()

	case "shift+tab", "up":
		m.fields[m.fieldFocus].Blur()
		m.fieldFocus = (m.fieldFocus - 1 + itemFieldCount) % itemFieldCount
		return m, m.fields[m.fieldFocus].Focus()

	case "enter":
		if m.fieldFocus == itemFieldCount-1 {
			m.addItem()
			return m, nil
		}
		m.fields[m.fieldFocus].Blur()
		m.fieldFocus++
		return m, m.fields[m.fieldFocus].Focus()
	}

	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *BillingModel) updateCustomerForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = billingModeList
		return m, nil
	case "enter":
		m.customerName = m.customerInput.Value()
		m.mode = billingModeList
		return m, nil
	}

	var cmd tea.Cmd
	m.customerInput, cmd = m.customerInput.Update(msg)
	return m, cmd
}

func (m *BillingModel) View() string {
	switch m.mode {
	case billingModeAddItem:
		return m.viewItemForm()
	case billingModeCustomer:
		return m.viewCustomerForm()
	}
	return m.viewList()
}

func (m *BillingModel) viewList() string {
	var s string
	s += titleStyle.Render("Create Bill") + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}
	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  %v", m.err)) + "\n\n"
	}

	if m.customerName != "" {
		s += subtitleStyle.Render("  Customer: ") + m.customerName + "\n\n"
	}

	items := m.app.Draft.Items
	if len(items) == 0 {
		s += subtitleStyle.Render("  No items added yet - press 'a' to add the first one") + "\n"
	} else {
		s += fmt.Sprintf("  %-28s %6s %10s %10s\n", "Item", "Qty", "Price", "Total")
		s += subtitleStyle.Render("  "+fmt.Sprintf("%-28s %6s %10s %10s",
			"----------------------------", "-----", "---------", "---------")) + "\n"

		for i, item := range items {
			row := fmt.Sprintf("  %-28s %6d %10s %10s",
				truncateStr(item.ItemName, 28),
				item.Quantity,
				formatMoney(item.Price),
				formatMoney(item.Total),
			)
			if i == m.cursor {
				row = selectedStyle.Render(row)
			}
			s += row + "\n"
		}

		s += "\n  " + subtitleStyle.Render("Total Amount: ") +
			totalStyle.Render(formatMoney(m.app.Draft.Total())) + "\n"
	}

	s += "\n" + helpStyle.Render("  a: add item  d: remove item  c: customer  g: generate bill  p: print")
	return s
}

func (m *BillingModel) viewItemForm() string {
	var s string
	s += titleStyle.Render("Add Item") + "\n\n"

	labels := []string{"Item Name:", "Quantity:", "Price:"}
	for i, label := range labels {
		indicator := "  "
		if i == m.fieldFocus {
			indicator = "> "
		}
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), m.fields[i].View())
	}

	s += helpStyle.Render("  tab/shift+tab: navigate  enter: next/add  esc: back")
	return s
}

func (m *BillingModel) viewCustomerForm() string {
	var s string
	s += titleStyle.Render("Customer") + "\n\n"
	s += "  " + m.customerInput.View() + "\n\n"
	s += helpStyle.Render("  enter: set  esc: cancel")
	return s
}
