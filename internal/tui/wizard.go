package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sahajm/finledger/internal/client"
	"github.com/sahajm/finledger/internal/ledger"
)

type wizardStep int

const (
	wizStepName wizardStep = iota
	wizStepType
	wizStepCurrency
	wizStepConfirm
)

type accountCreatedMsg struct {
	account *ledger.Account
	err     error
}

// wizardModel walks the user through creating an account.
type wizardModel struct {
	step      wizardStep
	nameInput textinput.Model
	typeIdx   int
	ccyIdx    int
	ccyCodes  []string

	err       error
	done      bool
	cancelled bool
	statusMsg string
	width     int
}

func newWizard() wizardModel {
	nameInput := textinput.New()
	nameInput.Placeholder = "e.g. HDFC Savings"
	nameInput.CharLimit = 60
	nameInput.Focus()

	return wizardModel{
		step:      wizStepName,
		nameInput: nameInput,
		ccyCodes:  ledger.CurrencyCodes(),
	}
}

func (m wizardModel) update(msg tea.Msg, c *client.Client) (wizardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case accountCreatedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.step = wizStepConfirm
			return m, nil
		}
		m.done = true
		m.statusMsg = fmt.Sprintf("Account #%d %q created", msg.account.ID, msg.account.Name)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Escape) {
			m.cancelled = true
			return m, nil
		}

		switch m.step {
		case wizStepName:
			if key.Matches(msg, keys.Enter) {
				if m.nameInput.Value() == "" {
					m.err = fmt.Errorf("name is required")
					return m, nil
				}
				m.err = nil
				m.step = wizStepType
				return m, nil
			}
			var cmd tea.Cmd
			m.nameInput, cmd = m.nameInput.Update(msg)
			return m, cmd

		case wizStepType:
			switch {
			case key.Matches(msg, keys.Up):
				if m.typeIdx > 0 {
					m.typeIdx--
				}
			case key.Matches(msg, keys.Down):
				if m.typeIdx < len(ledger.AccountTypes)-1 {
					m.typeIdx++
				}
			case key.Matches(msg, keys.Enter):
				m.step = wizStepCurrency
				// Preselect the default currency.
				for i, code := range m.ccyCodes {
					if code == ledger.DefaultCurrency {
						m.ccyIdx = i
						break
					}
				}
			}
			return m, nil

		case wizStepCurrency:
			switch {
			case key.Matches(msg, keys.Up):
				if m.ccyIdx > 0 {
					m.ccyIdx--
				}
			case key.Matches(msg, keys.Down):
				if m.ccyIdx < len(m.ccyCodes)-1 {
					m.ccyIdx++
				}
			case key.Matches(msg, keys.Enter):
				m.step = wizStepConfirm
			}
			return m, nil

		case wizStepConfirm:
			switch msg.String() {
			case "y", "Y", "enter":
				acct := &ledger.Account{
					Name:     m.nameInput.Value(),
					Type:     ledger.AccountTypes[m.typeIdx].Label,
					Currency: m.ccyCodes[m.ccyIdx],
				}
				return m, func() tea.Msg {
					created, err := c.CreateAccount(context.Background(), acct)
					return accountCreatedMsg{account: created, err: err}
				}
			case "n", "N":
				m.cancelled = true
			}
			return m, nil
		}
	}
	return m, nil
}

func (m *wizardModel) view() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("New Account"))
	b.WriteString("\n\n")

	switch m.step {
	case wizStepName:
		b.WriteString("  Account name:\n\n")
		b.WriteString("  " + m.nameInput.View() + "\n")

	case wizStepType:
		b.WriteString(fmt.Sprintf("  Name: %s\n", m.nameInput.Value()))
		b.WriteString("  Select account type:\n\n")

		start := m.typeIdx - 5
		if start < 0 {
			start = 0
		}
		end := start + 11
		if end > len(ledger.AccountTypes) {
			end = len(ledger.AccountTypes)
		}
		for i := start; i < end; i++ {
			t := ledger.AccountTypes[i]
			label := fmt.Sprintf("%-14s %-12s %s", t.Label, t.Class, t.Description)
			if i == m.typeIdx {
				b.WriteString(selectedStyle.Render("  > "+label) + "\n")
			} else {
				b.WriteString("    " + label + "\n")
			}
		}

	case wizStepCurrency:
		b.WriteString(fmt.Sprintf("  Name: %s | Type: %s\n", m.nameInput.Value(), ledger.AccountTypes[m.typeIdx].Label))
		b.WriteString("  Select currency:\n\n")

		for i, code := range m.ccyCodes {
			if i == m.ccyIdx {
				b.WriteString(selectedStyle.Render("  > "+code) + "\n")
			} else {
				b.WriteString("    " + code + "\n")
			}
		}

	case wizStepConfirm:
		t := ledger.AccountTypes[m.typeIdx]
		var summary strings.Builder
		summary.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Name:"), m.nameInput.Value()))
		summary.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Type:"), t.Label))
		summary.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Class:"), t.Class))
		summary.WriteString(fmt.Sprintf("%s %s", labelStyle.Render("Currency:"), m.ccyCodes[m.ccyIdx]))

		b.WriteString(boxStyle.Render(summary.String()))
		b.WriteString("\n\n")
		b.WriteString("  Create this account? (y/n)\n")
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("  Error: "+m.err.Error()) + "\n")
	}

	b.WriteString("\n" + dimStyle.Render("  ESC to cancel"))
	return b.String()
}
