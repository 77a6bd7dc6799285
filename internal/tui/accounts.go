package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sahajm/finledger/internal/client"
	"github.com/sahajm/finledger/internal/ledger"
)

type accountsLoadedMsg struct {
	accounts []ledger.Account
	err      error
}

// accountDeleteConfirmedMsg is sent when the user confirms deletion.
type accountDeleteConfirmedMsg struct {
	id int64
}

// accountDeletedMsg is sent after the server processes the delete.
type accountDeletedMsg struct {
	id  int64
	err error
}

type accountListModel struct {
	accounts      []ledger.Account
	cursor        int
	loading       bool
	err           error
	width         int
	height        int
	confirmDelete bool
	deleteTarget  int64
}

func (m *accountListModel) init(c *client.Client) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		accounts, err := c.ListAccounts(context.Background(), "", "")
		return accountsLoadedMsg{accounts: accounts, err: err}
	}
}

func (m accountListModel) update(msg tea.Msg) (accountListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case accountsLoadedMsg:
		m.loading = false
		m.accounts = msg.accounts
		m.err = msg.err

	case accountDeletedMsg:
		m.confirmDelete = false
		m.deleteTarget = 0
		if msg.err != nil {
			m.err = msg.err
		}

	case tea.KeyMsg:
		if m.confirmDelete {
			switch msg.String() {
			case "y", "Y":
				id := m.deleteTarget
				m.confirmDelete = false
				return m, func() tea.Msg {
					return accountDeleteConfirmedMsg{id: id}
				}
			default:
				m.confirmDelete = false
				m.deleteTarget = 0
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.accounts)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Delete):
			if id := m.selectedID(); id != 0 {
				m.confirmDelete = true
				m.deleteTarget = id
				m.err = nil
			}
		}
	}
	return m, nil
}

func (m *accountListModel) selectedID() int64 {
	if m.cursor >= 0 && m.cursor < len(m.accounts) {
		return m.accounts[m.cursor].ID
	}
	return 0
}

func (m *accountListModel) view() string {
	if m.loading {
		return "Loading accounts..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if len(m.accounts) == 0 {
		return dimStyle.Render("No accounts found. Press 'n' to create one.")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Accounts"))
	b.WriteString("\n")

	header := fmt.Sprintf("  %6s %-30s %-14s %-12s %s", "ID", "NAME", "TYPE", "CLASS", "CCY")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	maxRows := m.height - 4
	if maxRows < 1 {
		maxRows = 10
	}

	start := 0
	if m.cursor >= maxRows {
		start = m.cursor - maxRows + 1
	}

	for i := start; i < len(m.accounts) && i < start+maxRows; i++ {
		a := m.accounts[i]
		name := a.Name
		if len(name) > 28 {
			name = name[:28] + ".."
		}

		line := fmt.Sprintf("  %6d %-30s %-14s %-12s %s", a.ID, name, a.Type, a.Class(), a.Currency)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line[2:]))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	if m.confirmDelete {
		b.WriteString("\n" + errorStyle.Render(fmt.Sprintf("  Delete account %d? (y/n)", m.deleteTarget)))
	} else {
		b.WriteString(fmt.Sprintf("\n  %d accounts", len(m.accounts)))
	}

	return b.String()
}
