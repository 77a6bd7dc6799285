package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/sahajm/finledger/internal/client"
	"github.com/sahajm/finledger/internal/ledger"
)

type txnFormStep int

const (
	tfStepType txnFormStep = iota
	tfStepNature
	tfStepAmount
	tfStepFromAccount
	tfStepToAccount
	tfStepCategory
	tfStepCounterparty
	tfStepDescription
	tfStepConfirm
)

type txnFormAccountsMsg struct {
	accounts []ledger.Account
	err      error
}

type txnPostedMsg struct {
	txn *ledger.Transaction
	err error
}

// txnFormModel walks the user through posting a transaction. The steps
// shown depend on the chosen nature: transfers ask for both accounts,
// loans ask for a counterparty, expenses ask for a category.
type txnFormModel struct {
	step    txnFormStep
	typeIdx int
	natures []ledger.TransactionNature
	natIdx  int

	amountInput       textinput.Model
	categoryInput     textinput.Model
	counterpartyInput textinput.Model
	descriptionInput  textinput.Model

	accounts   []ledger.Account
	acctCursor int
	fromID     int64
	toID       int64

	hints ledger.FormHints

	err       error
	done      bool
	cancelled bool
	statusMsg string
	width     int
}

func newTxnForm() txnFormModel {
	amount := textinput.New()
	amount.Placeholder = "e.g. 500.00"
	amount.CharLimit = 20

	category := textinput.New()
	category.Placeholder = "e.g. groceries"
	category.CharLimit = 40

	counterparty := textinput.New()
	counterparty.Placeholder = "e.g. Ravi"
	counterparty.CharLimit = 40

	description := textinput.New()
	description.Placeholder = "e.g. Weekly shop"
	description.CharLimit = 100

	return txnFormModel{
		step:              tfStepType,
		amountInput:       amount,
		categoryInput:     category,
		counterpartyInput: counterparty,
		descriptionInput:  description,
	}
}

func (m *txnFormModel) loadAccounts(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		accounts, err := c.ListAccounts(context.Background(), "", "")
		return txnFormAccountsMsg{accounts: accounts, err: err}
	}
}

func (m txnFormModel) selectedType() ledger.TransactionType {
	return ledger.AllTypes[m.typeIdx]
}

func (m txnFormModel) update(msg tea.Msg, c *client.Client) (txnFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case txnFormAccountsMsg:
		m.accounts = msg.accounts
		if msg.err != nil {
			m.err = msg.err
		}
		return m, nil

	case txnPostedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.step = tfStepConfirm
			return m, nil
		}
		m.done = true
		m.statusMsg = fmt.Sprintf("Transaction %s posted", msg.txn.ID[:8])
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Escape) {
			m.cancelled = true
			return m, nil
		}

		switch m.step {
		case tfStepType:
			return m.updateType(msg)
		case tfStepNature:
			return m.updateNature(msg)
		case tfStepAmount:
			return m.updateAmount(msg)
		case tfStepFromAccount, tfStepToAccount:
			return m.updateAccountPick(msg)
		case tfStepCategory:
			return m.updateText(msg, &m.categoryInput, m.afterCategory)
		case tfStepCounterparty:
			return m.updateCounterparty(msg)
		case tfStepDescription:
			return m.updateText(msg, &m.descriptionInput, func(mm txnFormModel) txnFormModel {
				mm.step = tfStepConfirm
				return mm
			})
		case tfStepConfirm:
			return m.updateConfirm(msg, c)
		}
	}
	return m, nil
}

func (m txnFormModel) updateType(msg tea.KeyMsg) (txnFormModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.typeIdx > 0 {
			m.typeIdx--
		}
	case key.Matches(msg, keys.Down):
		if m.typeIdx < len(ledger.AllTypes)-1 {
			m.typeIdx++
		}
	case key.Matches(msg, keys.Enter):
		m.natures = ledger.NaturesForType(m.selectedType())
		m.natIdx = 0
		m.step = tfStepNature
	}
	return m, nil
}

func (m txnFormModel) updateNature(msg tea.KeyMsg) (txnFormModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.natIdx > 0 {
			m.natIdx--
		}
	case key.Matches(msg, keys.Down):
		if m.natIdx < len(m.natures)-1 {
			m.natIdx++
		}
	case key.Matches(msg, keys.Enter):
		m.hints = ledger.HintsFor(m.selectedType(), m.natures[m.natIdx])
		m.step = tfStepAmount
		m.amountInput.SetValue("")
		m.amountInput.Focus()
	}
	return m, nil
}

func (m txnFormModel) updateAmount(msg tea.KeyMsg) (txnFormModel, tea.Cmd) {
	if key.Matches(msg, keys.Enter) {
		amt, err := decimal.NewFromString(m.amountInput.Value())
		if err != nil || !amt.IsPositive() {
			m.err = fmt.Errorf("amount must be a positive number")
			return m, nil
		}
		m.err = nil
		m.acctCursor = 0
		switch m.selectedType() {
		case ledger.TypeIncome:
			m.step = tfStepToAccount
		default:
			m.step = tfStepFromAccount
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.amountInput, cmd = m.amountInput.Update(msg)
	return m, cmd
}

func (m txnFormModel) updateAccountPick(msg tea.KeyMsg) (txnFormModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.acctCursor > 0 {
			m.acctCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.acctCursor < len(m.accounts)-1 {
			m.acctCursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(m.accounts) == 0 {
			m.err = fmt.Errorf("no accounts available")
			return m, nil
		}
		id := m.accounts[m.acctCursor].ID
		m.err = nil
		if m.step == tfStepFromAccount {
			m.fromID = id
			if m.hints.RequireBothAccounts || m.selectedType() == ledger.TypeIncome {
				m.acctCursor = 0
				m.step = tfStepToAccount
				return m, nil
			}
			m = m.afterAccounts()
			return m, nil
		}
		m.toID = id
		if m.hints.RequireBothAccounts && m.fromID == 0 {
			m.acctCursor = 0
			m.step = tfStepFromAccount
			return m, nil
		}
		m = m.afterAccounts()
	}
	return m, nil
}

// afterAccounts picks the next step once the account endpoints are chosen.
func (m txnFormModel) afterAccounts() txnFormModel {
	if m.hints.ShowCategory {
		m.step = tfStepCategory
		m.categoryInput.SetValue("")
		m.categoryInput.Focus()
		return m
	}
	return m.afterCategory(m)
}

func (m txnFormModel) afterCategory(mm txnFormModel) txnFormModel {
	if mm.hints.RequireCounterparty {
		mm.step = tfStepCounterparty
		mm.counterpartyInput.SetValue("")
		mm.counterpartyInput.Focus()
		return mm
	}
	mm.step = tfStepDescription
	mm.descriptionInput.SetValue("")
	mm.descriptionInput.Focus()
	return mm
}

func (m txnFormModel) updateCounterparty(msg tea.KeyMsg) (txnFormModel, tea.Cmd) {
	if key.Matches(msg, keys.Enter) {
		if m.counterpartyInput.Value() == "" {
			m.err = fmt.Errorf("counterparty is required for this nature")
			return m, nil
		}
		m.err = nil
		m.step = tfStepDescription
		m.descriptionInput.SetValue("")
		m.descriptionInput.Focus()
		return m, nil
	}
	var cmd tea.Cmd
	m.counterpartyInput, cmd = m.counterpartyInput.Update(msg)
	return m, cmd
}

func (m txnFormModel) updateText(msg tea.KeyMsg, input *textinput.Model, next func(txnFormModel) txnFormModel) (txnFormModel, tea.Cmd) {
	if key.Matches(msg, keys.Enter) {
		m.err = nil
		m = next(m)
		return m, nil
	}
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	return m, cmd
}

func (m txnFormModel) updateConfirm(msg tea.KeyMsg, c *client.Client) (txnFormModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		amount, _ := decimal.NewFromString(m.amountInput.Value())
		txn := &ledger.Transaction{
			Type:         m.selectedType(),
			Nature:       m.natures[m.natIdx],
			Amount:       amount,
			FromAccount:  m.fromID,
			ToAccount:    m.toID,
			Category:     m.categoryInput.Value(),
			Counterparty: m.counterpartyInput.Value(),
			Description:  m.descriptionInput.Value(),
		}
		return m, func() tea.Msg {
			posted, err := c.PostTransaction(context.Background(), txn)
			return txnPostedMsg{txn: posted, err: err}
		}
	case "n", "N":
		m.cancelled = true
	}
	return m, nil
}

func (m *txnFormModel) accountName(id int64) string {
	for _, a := range m.accounts {
		if a.ID == id {
			return fmt.Sprintf("#%d %s", a.ID, a.Name)
		}
	}
	return "-"
}

func (m *txnFormModel) view() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("New Transaction"))
	b.WriteString("\n\n")

	switch m.step {
	case tfStepType:
		b.WriteString("  Select transaction type:\n\n")
		for i, t := range ledger.AllTypes {
			if i == m.typeIdx {
				b.WriteString(selectedStyle.Render("  > "+string(t)) + "\n")
			} else {
				b.WriteString("    " + string(t) + "\n")
			}
		}

	case tfStepNature:
		b.WriteString(fmt.Sprintf("  Type: %s\n", m.selectedType()))
		b.WriteString("  Select nature:\n\n")
		for i, n := range m.natures {
			if i == m.natIdx {
				b.WriteString(selectedStyle.Render("  > "+string(n)) + "\n")
			} else {
				b.WriteString("    " + string(n) + "\n")
			}
		}

	case tfStepAmount:
		b.WriteString(fmt.Sprintf("  %s / %s\n", m.selectedType(), m.natures[m.natIdx]))
		b.WriteString("  Enter amount:\n\n")
		b.WriteString("  " + m.amountInput.View() + "\n")

	case tfStepFromAccount, tfStepToAccount:
		prompt := "Select source account:"
		if m.step == tfStepToAccount {
			prompt = "Select destination account:"
		}
		b.WriteString("  " + prompt + "\n\n")
		for i, a := range m.accounts {
			label := fmt.Sprintf("#%-4d %-28s %s", a.ID, a.Name, a.Type)
			if i == m.acctCursor {
				b.WriteString(selectedStyle.Render("  > "+label) + "\n")
			} else {
				b.WriteString("    " + label + "\n")
			}
		}

	case tfStepCategory:
		b.WriteString("  Category:\n\n")
		b.WriteString("  " + m.categoryInput.View() + "\n")

	case tfStepCounterparty:
		b.WriteString("  Counterparty (who is on the other side of this loan):\n\n")
		b.WriteString("  " + m.counterpartyInput.View() + "\n")

	case tfStepConfirm:
		var summary strings.Builder
		summary.WriteString(fmt.Sprintf("%s %s / %s\n", labelStyle.Render("Type:"), m.selectedType(), m.natures[m.natIdx]))
		summary.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Amount:"), m.amountInput.Value()))
		if m.fromID != 0 {
			summary.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("From:"), m.accountName(m.fromID)))
		}
		if m.toID != 0 {
			summary.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("To:"), m.accountName(m.toID)))
		}
		if m.categoryInput.Value() != "" {
			summary.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Category:"), m.categoryInput.Value()))
		}
		if m.counterpartyInput.Value() != "" {
			summary.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Counterparty:"), m.counterpartyInput.Value()))
		}
		summary.WriteString(fmt.Sprintf("%s %s", labelStyle.Render("Description:"), m.descriptionInput.Value()))

		b.WriteString(boxStyle.Render(summary.String()))
		b.WriteString("\n\n")
		b.WriteString("  Post this transaction? (y/n)\n")
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("  Error: "+m.err.Error()) + "\n")
	}

	b.WriteString("\n" + dimStyle.Render("  ESC to cancel"))
	return b.String()
}
