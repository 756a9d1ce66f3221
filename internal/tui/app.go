// Package tui is the interactive terminal frontend: tabbed resource
// tables, a global busy spinner, and a toast stack. All shared state
// arrives through the Bridge; the TUI never talks to the gateway outside
// the composed pipeline.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/storekeep/internal/core/notify"
	"github.com/colonyops/storekeep/internal/core/styles"
	"github.com/colonyops/storekeep/internal/gateway"
	"github.com/colonyops/storekeep/internal/storekeep"
)

const (
	tabCustomers = iota
	tabProducts
	tabBills
	tabCount
)

var tabNames = [tabCount]string{"Customers", "Products", "Bills"}

type (
	customersMsg []gateway.Customer
	productsMsg  []gateway.Product
	billsMsg     []gateway.Bill

	// requestFailedMsg signals a load/mutation failure. The pipeline has
	// already published the classified notification; the model only clears
	// transient UI state.
	requestFailedMsg struct{}

	// mutationDoneMsg triggers a refresh of the affected tab.
	mutationDoneMsg struct{ tab int }
)

// Model is the root Bubble Tea model.
type Model struct {
	app    *storekeep.App
	bridge *Bridge
	detach func()

	keys    keyMap
	spinner spinner.Model
	tables  [tabCount]table.Model

	activeTab     int
	busy          bool
	notifications []notify.Notification
	confirmDelete bool

	width  int
	height int
}

// NewModel constructs the TUI model and attaches the state bridge.
func NewModel(app *storekeep.App) *Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.SpinnerStyle))

	bridge := NewBridge()
	detach := bridge.Attach(app.Busy, app.Notifications)

	m := &Model{
		app:     app,
		bridge:  bridge,
		detach:  detach,
		keys:    defaultKeyMap(),
		spinner: sp,
	}

	m.tables[tabCustomers] = newResourceTable(customerColumns())
	m.tables[tabProducts] = newResourceTable(productColumns())
	m.tables[tabBills] = newResourceTable(billColumns())

	// Replay-on-subscribe means the bridge already has current state.
	m.busy, m.notifications = bridge.State()

	return m
}

// Run starts the program and blocks until exit.
func Run(app *storekeep.App) error {
	model := NewModel(app)
	defer model.detach()

	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.bridge.WaitForUpdate(),
		m.loadCustomers(),
		m.loadProducts(),
		m.loadBills(),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeTables()
		return m, nil

	case stateMsg:
		m.busy = msg.busy
		m.notifications = msg.notifications
		return m, m.bridge.WaitForUpdate()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case customersMsg:
		m.tables[tabCustomers].SetRows(customerRows(msg))
		return m, nil

	case productsMsg:
		m.tables[tabProducts].SetRows(productRows(msg))
		return m, nil

	case billsMsg:
		m.tables[tabBills].SetRows(billRows(msg))
		return m, nil

	case mutationDoneMsg:
		return m, m.reload(msg.tab)

	case requestFailedMsg:
		m.confirmDelete = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A pending delete confirmation captures y/n before anything else.
	if m.confirmDelete {
		switch msg.String() {
		case "y", "Y":
			m.confirmDelete = false
			return m, m.deleteSelected()
		default:
			m.confirmDelete = false
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextTab):
		m.activeTab = (m.activeTab + 1) % tabCount
		return m, nil

	case key.Matches(msg, m.keys.PrevTab):
		m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.reload(m.activeTab)

	case key.Matches(msg, m.keys.Delete):
		if m.activeTab == tabBills {
			return m, nil // bills are generated, not deleted
		}
		if len(m.tables[m.activeTab].Rows()) == 0 {
			return m, nil
		}
		m.confirmDelete = true
		return m, nil

	case key.Matches(msg, m.keys.Generate):
		if m.activeTab != tabBills {
			return m, nil
		}
		return m, m.generateBills()

	case key.Matches(msg, m.keys.Dismiss):
		if id, ok := newestID(m.notifications); ok {
			m.app.Notifications.Remove(id)
		}
		return m, nil

	case key.Matches(msg, m.keys.DismissAll):
		m.app.Notifications.Clear()
		return m, nil
	}

	var cmd tea.Cmd
	m.tables[m.activeTab], cmd = m.tables[m.activeTab].Update(msg)
	return m, cmd
}

func (m *Model) reload(tab int) tea.Cmd {
	switch tab {
	case tabCustomers:
		return m.loadCustomers()
	case tabProducts:
		return m.loadProducts()
	default:
		return m.loadBills()
	}
}

func (m *Model) loadCustomers() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		customers, err := app.Gateway.ListCustomers(context.Background())
		if err != nil {
			log.Debug().Err(err).Msg("load customers failed")
			return requestFailedMsg{}
		}
		return customersMsg(customers)
	}
}

func (m *Model) loadProducts() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		products, err := app.Gateway.ListProducts(context.Background())
		if err != nil {
			log.Debug().Err(err).Msg("load products failed")
			return requestFailedMsg{}
		}
		return productsMsg(products)
	}
}

func (m *Model) loadBills() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		bills, err := app.Gateway.ListBills(context.Background())
		if err != nil {
			log.Debug().Err(err).Msg("load bills failed")
			return requestFailedMsg{}
		}
		return billsMsg(bills)
	}
}

func (m *Model) generateBills() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		if err := app.GenerateBills(context.Background()); err != nil {
			return requestFailedMsg{}
		}
		return mutationDoneMsg{tab: tabBills}
	}
}

func (m *Model) deleteSelected() tea.Cmd {
	tab := m.activeTab
	row := m.tables[tab].SelectedRow()
	if row == nil {
		return nil
	}
	id := row[0]
	app := m.app

	return func() tea.Msg {
		var err error
		switch tab {
		case tabCustomers:
			var customerID int64
			if _, scanErr := fmt.Sscanf(id, "%d", &customerID); scanErr != nil {
				return requestFailedMsg{}
			}
			err = app.DeleteCustomer(context.Background(), customerID)
		case tabProducts:
			err = app.DeleteProduct(context.Background(), id)
		}
		if err != nil {
			return requestFailedMsg{}
		}
		return mutationDoneMsg{tab: tab}
	}
}
