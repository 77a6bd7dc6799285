package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/sahajm/finledger/internal/client"
	"github.com/sahajm/finledger/internal/ledger"
)

type netWorthLoadedMsg struct {
	report *ledger.NetWorthReport
	err    error
}

type netWorthModel struct {
	report  *ledger.NetWorthReport
	loading bool
	err     error
	width   int
	height  int
}

func (m *netWorthModel) init(c *client.Client) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		report, err := c.NetWorth(context.Background())
		return netWorthLoadedMsg{report: report, err: err}
	}
}

func (m netWorthModel) update(msg tea.Msg) (netWorthModel, tea.Cmd) {
	switch msg := msg.(type) {
	case netWorthLoadedMsg:
		m.loading = false
		m.report = msg.report
		m.err = msg.err
	}
	return m, nil
}

func (m *netWorthModel) view() string {
	if m.loading {
		return "Loading net worth..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.report == nil {
		return dimStyle.Render("No data available.")
	}

	var b strings.Builder
	w := m.width
	if w < 50 {
		w = 70
	}

	nameW := w - 30
	if nameW > 36 {
		nameW = 36
	}

	b.WriteString(titleStyle.Render(centerStr("NET WORTH", w)))
	b.WriteString("\n\n")

	renderSection := func(title string, lines []ledger.NetWorthLine, total decimal.Decimal) {
		if len(lines) == 0 {
			return
		}
		b.WriteString(fmt.Sprintf("  %s\n", headerStyle.Render(title)))
		for _, l := range lines {
			name := l.AccountName
			if len(name) > nameW-2 {
				name = name[:nameW-2] + ".."
			}
			b.WriteString(fmt.Sprintf("    %-*s %14s\n", nameW, name, l.Balance.StringFixed(2)))
		}
		b.WriteString(fmt.Sprintf("    %s\n", strings.Repeat("─", nameW+15)))
		b.WriteString(fmt.Sprintf("    %-*s %14s\n\n", nameW, "Total "+title, total.StringFixed(2)))
	}

	renderSection("Assets", m.report.Assets, m.report.TotalAssets)
	renderSection("Receivables", m.report.Receivables, m.report.TotalReceivables)
	renderSection("Liabilities", m.report.Liabilities, m.report.TotalLiabilities)
	renderSection("Payables", m.report.Payables, m.report.TotalPayables)

	b.WriteString(fmt.Sprintf("    %s\n", strings.Repeat("═", nameW+15)))
	line := fmt.Sprintf("    %-*s %14s", nameW, "NET WORTH", m.report.NetWorth.StringFixed(2))
	if m.report.NetWorth.Sign() >= 0 {
		b.WriteString(successStyle.Render(line))
	} else {
		b.WriteString(errorStyle.Render(line))
	}
	b.WriteString("\n")

	return b.String()
}

func centerStr(s string, w int) string {
	if len(s) >= w {
		return s
	}
	pad := (w - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}
