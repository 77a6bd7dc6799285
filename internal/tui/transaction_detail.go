package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sahajm/finledger/internal/client"
	"github.com/sahajm/finledger/internal/ledger"
)

type txnDetailLoadedMsg struct {
	txn *ledger.Transaction
	err error
}

type txnDetailModel struct {
	txn     *ledger.Transaction
	loading bool
	err     error
	width   int
}

func (m *txnDetailModel) init(c *client.Client, id string) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		txn, err := c.GetTransaction(context.Background(), id)
		return txnDetailLoadedMsg{txn: txn, err: err}
	}
}

func (m txnDetailModel) update(msg tea.Msg) (txnDetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case txnDetailLoadedMsg:
		m.loading = false
		m.txn = msg.txn
		m.err = msg.err
	}
	return m, nil
}

func (m *txnDetailModel) view() string {
	if m.loading {
		return "Loading transaction..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.txn == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Transaction: %s", m.txn.ID)))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("%s %s / %s\n", labelStyle.Render("Type:"), m.txn.Type, m.txn.Nature))
	b.WriteString(fmt.Sprintf("%s %s %s\n", labelStyle.Render("Amount:"), m.txn.Amount.StringFixed(2), m.txn.Currency))
	if m.txn.Category != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Category:"), m.txn.Category))
	}
	if m.txn.Counterparty != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Counterparty:"), m.txn.Counterparty))
	}
	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Description:"), m.txn.Description))
	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Date:"), m.txn.Date.Format("2006-01-02")))
	b.WriteString("\n")

	header := fmt.Sprintf("  %-4s %-18s %14s %14s", "TYPE", "ACCOUNT", "DEBIT", "CREDIT")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	for _, e := range m.txn.Entries {
		debit := ""
		credit := ""
		direction := "DR"
		style := debitStyle
		if e.Debit.IsZero() {
			direction = "CR"
			style = creditStyle
			credit = e.Credit.StringFixed(2)
		} else {
			debit = e.Debit.StringFixed(2)
		}

		line := fmt.Sprintf("  %-4s %-18s %14s %14s", direction, e.Account.String(), debit, credit)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n" + dimStyle.Render("  Press ESC to go back"))
	return b.String()
}
