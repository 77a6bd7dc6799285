package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sahajm/finledger/internal/client"
	"github.com/sahajm/finledger/internal/ledger"
)

type loansLoadedMsg struct {
	loans []ledger.LoanPosition
	err   error
}

type loansModel struct {
	loans   []ledger.LoanPosition
	loading bool
	err     error
	width   int
	height  int
}

func (m *loansModel) init(c *client.Client) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		loans, err := c.OutstandingLoans(context.Background())
		return loansLoadedMsg{loans: loans, err: err}
	}
}

func (m loansModel) update(msg tea.Msg) (loansModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loansLoadedMsg:
		m.loading = false
		m.loans = msg.loans
		m.err = msg.err
	}
	return m, nil
}

func (m *loansModel) view() string {
	if m.loading {
		return "Loading loans..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if len(m.loans) == 0 {
		return dimStyle.Render("No loan positions.")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Outstanding Loans"))
	b.WriteString("\n")

	header := fmt.Sprintf("  %-24s %14s %14s", "COUNTERPARTY", "OWED TO ME", "I OWE")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	for _, l := range m.loans {
		name := l.Counterparty
		if len(name) > 22 {
			name = name[:20] + ".."
		}
		line := fmt.Sprintf("  %-24s %14s %14s", name, l.OwedToMe.StringFixed(2), l.OwedByMe.StringFixed(2))
		switch {
		case l.OwedToMe.IsPositive():
			b.WriteString(debitStyle.Render(line))
		case l.OwedByMe.IsPositive():
			b.WriteString(creditStyle.Render(line))
		default:
			b.WriteString(dimStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}
