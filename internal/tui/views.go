package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/storekeep/internal/core/styles"
	"github.com/colonyops/storekeep/internal/gateway"
)

const defaultTableHeight = 12

func newResourceTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(defaultTableHeight),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.Foreground(styles.TableHeaderFg).Bold(true)
	s.Selected = s.Selected.Background(styles.TableSelectedBg)
	t.SetStyles(s)

	return t
}

func customerColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Name", Width: 24},
		{Title: "Email", Width: 32},
	}
}

func customerRows(customers []gateway.Customer) []table.Row {
	rows := make([]table.Row, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, table.Row{fmt.Sprintf("%d", c.ID), c.Name, c.Email})
	}
	return rows
}

func productColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 24},
		{Title: "Name", Width: 24},
		{Title: "Price", Width: 10},
		{Title: "Qty", Width: 8},
	}
}

func productRows(products []gateway.Product) []table.Row {
	rows := make([]table.Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, table.Row{
			p.ID,
			p.Name,
			fmt.Sprintf("%.2f", p.Price),
			fmt.Sprintf("%d", p.Quantity),
		})
	}
	return rows
}

func billColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Date", Width: 12},
		{Title: "Customer", Width: 24},
		{Title: "Items", Width: 7},
		{Title: "Total", Width: 12},
	}
}

func billRows(bills []gateway.Bill) []table.Row {
	rows := make([]table.Row, 0, len(bills))
	for _, b := range bills {
		customer := fmt.Sprintf("#%d", b.CustomerID)
		if b.Customer != nil {
			customer = b.Customer.Name
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", b.ID),
			b.BillingDate,
			customer,
			fmt.Sprintf("%d", len(b.ProductItems)),
			fmt.Sprintf("%.2f", billTotal(b)),
		})
	}
	return rows
}

// billTotal sums the line items; the billing service does not send a
// precomputed total.
func billTotal(b gateway.Bill) float64 {
	var total float64
	for _, item := range b.ProductItems {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

func (m *Model) resizeTables() {
	height := m.height - 8 // header, tabs, status bar, margins
	if height < 4 {
		height = 4
	}
	for i := range m.tables {
		m.tables[i].SetHeight(height)
	}
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("storekeep"))
	b.WriteString("  ")
	b.WriteString(m.renderBusy())
	b.WriteString("\n\n")

	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.tables[m.activeTab].View())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	view := b.String()

	if toasts := renderToasts(m.notifications); toasts != "" {
		view += "\n" + toasts
	}
	return view
}

func (m *Model) renderBusy() string {
	if !m.busy {
		return styles.TextMutedStyle.Render("idle")
	}
	return m.spinner.View() + styles.TextStyle.Render("working…")
}

func (m *Model) renderTabs() string {
	tabs := make([]string, 0, tabCount)
	for i, name := range tabNames {
		if i == m.activeTab {
			tabs = append(tabs, styles.ActiveTabStyle.Render(name))
			continue
		}
		tabs = append(tabs, styles.TabStyle.Render(name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) renderStatusBar() string {
	if m.confirmDelete {
		return styles.WarningStyle.Render("Delete selected? (y/n)")
	}

	help := "tab: switch • r: refresh • d: delete • x: dismiss toast • q: quit"
	if m.activeTab == tabBills {
		help = "tab: switch • r: refresh • g: generate bills • x: dismiss toast • q: quit"
	}
	return styles.StatusBarStyle.Render(help)
}
