package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sahajm/finledger/internal/client"
	"github.com/sahajm/finledger/internal/ledger"
)

type accountDetailLoadedMsg struct {
	account *ledger.Account
	balance *client.BalanceResponse
	entries []ledger.Entry
	err     error
}

type accountDetailModel struct {
	account *ledger.Account
	balance *client.BalanceResponse
	entries []ledger.Entry
	loading bool
	err     error
	width   int
}

func (m *accountDetailModel) init(c *client.Client, id int64) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		acct, err := c.GetAccount(context.Background(), id)
		if err != nil {
			return accountDetailLoadedMsg{err: err}
		}
		bal, err := c.GetAccountBalance(context.Background(), id)
		if err != nil {
			return accountDetailLoadedMsg{account: acct, err: err}
		}
		entries, err := c.ListAccountEntries(context.Background(), id)
		return accountDetailLoadedMsg{account: acct, balance: bal, entries: entries, err: err}
	}
}

func (m accountDetailModel) update(msg tea.Msg) (accountDetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case accountDetailLoadedMsg:
		m.loading = false
		m.account = msg.account
		m.balance = msg.balance
		m.entries = msg.entries
		m.err = msg.err
	}
	return m, nil
}

func (m *accountDetailModel) view() string {
	if m.loading {
		return "Loading account..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.account == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Account #%d", m.account.ID)))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Name:"), m.account.Name))
	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Type:"), m.account.Type))
	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Class:"), m.account.Class()))
	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Currency:"), m.account.Currency))
	if m.balance != nil {
		b.WriteString(fmt.Sprintf("%s %s %s\n", labelStyle.Render("Balance:"), m.balance.Balance.StringFixed(2), m.balance.Currency))
	}
	b.WriteString("\n")

	if len(m.entries) == 0 {
		b.WriteString(dimStyle.Render("  No entries."))
	} else {
		header := fmt.Sprintf("  %-4s %-36s %14s %-12s %s", "TYPE", "TRANSACTION", "AMOUNT", "DATE", "MEMO")
		b.WriteString(headerStyle.Render(header))
		b.WriteString("\n")

		for _, e := range m.entries {
			direction := "DR"
			amt := e.Debit
			style := debitStyle
			if e.Debit.IsZero() {
				direction = "CR"
				amt = e.Credit
				style = creditStyle
			}
			txnShort := e.TransactionID
			if len(txnShort) > 34 {
				txnShort = txnShort[:34] + ".."
			}
			memo := e.Description
			if len(memo) > 24 {
				memo = memo[:22] + ".."
			}
			line := fmt.Sprintf("  %-4s %-36s %14s %-12s %s",
				direction, txnShort, amt.StringFixed(2), e.EntryDate.Format("2006-01-02"), memo)
			b.WriteString(style.Render(line))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n" + dimStyle.Render("  Press ESC to go back"))
	return b.String()
}
