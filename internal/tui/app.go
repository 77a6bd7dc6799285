// Package tui is a bubbletea front end over the REST client: account and
// transaction browsing, guided posting forms, and the net-worth and loan
// views.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sahajm/finledger/internal/client"
)

type mode int

const (
	modeAccountList mode = iota
	modeAccountDetail
	modeTransactionList
	modeTransactionDetail
	modeNetWorth
	modeLoans
	modeWizard
	modeTxnForm
)

var tabModes = []mode{modeAccountList, modeTransactionList, modeNetWorth, modeLoans}

func tabLabel(m mode) string {
	switch m {
	case modeAccountList:
		return "Accounts"
	case modeTransactionList:
		return "Transactions"
	case modeNetWorth:
		return "Net Worth"
	case modeLoans:
		return "Loans"
	default:
		return ""
	}
}

type App struct {
	client        *client.Client
	mode          mode
	tabIndex      int
	width, height int
	err           error
	statusMsg     string

	accountList   accountListModel
	accountDetail accountDetailModel
	txnList       txnListModel
	txnDetail     txnDetailModel
	netWorth      netWorthModel
	loans         loansModel
	wizard        wizardModel
	txnForm       txnFormModel
}

func NewApp(c *client.Client) *App {
	return &App{
		client:   c,
		mode:     modeAccountList,
		tabIndex: 0,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.accountList.init(a.client),
		a.txnList.init(a.client),
		a.netWorth.init(a.client),
		a.loans.init(a.client),
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.accountList.width = msg.Width
		a.accountList.height = msg.Height - 6
		a.txnList.width = msg.Width
		a.txnList.height = msg.Height - 6
		a.netWorth.width = msg.Width
		a.netWorth.height = msg.Height - 6
		a.loans.width = msg.Width
		a.loans.height = msg.Height - 6
		a.accountDetail.width = msg.Width
		a.txnDetail.width = msg.Width
		a.wizard.width = msg.Width
		a.txnForm.width = msg.Width
		return a, nil
	}

	// Route data-loaded messages to the owning sub-model regardless of the
	// active mode: Init() fires all loads concurrently but the bottom
	// delegation only routes to the active mode's model.
	switch typedMsg := msg.(type) {
	case accountsLoadedMsg:
		var cmd tea.Cmd
		a.accountList, cmd = a.accountList.update(msg)
		return a, cmd
	case txnsLoadedMsg:
		var cmd tea.Cmd
		a.txnList, cmd = a.txnList.update(msg)
		return a, cmd
	case netWorthLoadedMsg:
		var cmd tea.Cmd
		a.netWorth, cmd = a.netWorth.update(msg)
		return a, cmd
	case loansLoadedMsg:
		var cmd tea.Cmd
		a.loans, cmd = a.loans.update(msg)
		return a, cmd
	case accountDetailLoadedMsg:
		var cmd tea.Cmd
		a.accountDetail, cmd = a.accountDetail.update(msg)
		return a, cmd
	case txnDetailLoadedMsg:
		var cmd tea.Cmd
		a.txnDetail, cmd = a.txnDetail.update(msg)
		return a, cmd
	case accountDeleteConfirmedMsg:
		id := typedMsg.id
		return a, func() tea.Msg {
			err := a.client.DeleteAccount(context.Background(), id)
			return accountDeletedMsg{id: id, err: err}
		}
	case accountDeletedMsg:
		if typedMsg.err != nil {
			a.accountList, _ = a.accountList.update(msg)
			return a, nil
		}
		a.statusMsg = fmt.Sprintf("Account %d deleted", typedMsg.id)
		return a, tea.Batch(
			a.accountList.init(a.client),
			a.netWorth.init(a.client),
		)
	}

	// Modal modes: delegate ALL message types, not just keys.
	if a.mode == modeWizard {
		var cmd tea.Cmd
		a.wizard, cmd = a.wizard.update(msg, a.client)
		if a.wizard.done {
			a.mode = modeAccountList
			a.statusMsg = a.wizard.statusMsg
			return a, a.accountList.init(a.client)
		}
		if a.wizard.cancelled {
			a.mode = modeAccountList
			a.statusMsg = "Account creation cancelled"
		}
		return a, cmd
	}

	if a.mode == modeTxnForm {
		var cmd tea.Cmd
		a.txnForm, cmd = a.txnForm.update(msg, a.client)
		if a.txnForm.done {
			a.mode = modeTransactionList
			a.statusMsg = a.txnForm.statusMsg
			return a, tea.Batch(
				a.txnList.init(a.client),
				a.netWorth.init(a.client),
				a.loans.init(a.client),
			)
		}
		if a.txnForm.cancelled {
			a.mode = modeTransactionList
			a.statusMsg = "Transaction cancelled"
		}
		return a, cmd
	}

	// Delete confirmation captures all keys.
	if a.mode == modeAccountList && a.accountList.confirmDelete {
		var cmd tea.Cmd
		a.accountList, cmd = a.accountList.update(msg)
		return a, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit

		case key.Matches(msg, keys.Tab):
			a.tabIndex = (a.tabIndex + 1) % len(tabModes)
			a.mode = tabModes[a.tabIndex]
			a.statusMsg = ""
			return a, a.refreshTab()

		case key.Matches(msg, keys.ShiftTab):
			a.tabIndex = (a.tabIndex - 1 + len(tabModes)) % len(tabModes)
			a.mode = tabModes[a.tabIndex]
			a.statusMsg = ""
			return a, a.refreshTab()

		case key.Matches(msg, keys.Escape):
			switch a.mode {
			case modeAccountDetail:
				a.mode = modeAccountList
			case modeTransactionDetail:
				a.mode = modeTransactionList
			}
			return a, nil

		case key.Matches(msg, keys.New):
			if a.mode == modeAccountList {
				a.mode = modeWizard
				a.wizard = newWizard()
				return a, nil
			}

		case key.Matches(msg, keys.NewTxn):
			if a.mode == modeTransactionList {
				a.mode = modeTxnForm
				a.txnForm = newTxnForm()
				return a, a.txnForm.loadAccounts(a.client)
			}

		case key.Matches(msg, keys.Enter):
			switch a.mode {
			case modeAccountList:
				if acctID := a.accountList.selectedID(); acctID != 0 {
					a.mode = modeAccountDetail
					return a, a.accountDetail.init(a.client, acctID)
				}
				return a, nil
			case modeTransactionList:
				if txnID := a.txnList.selectedID(); txnID != "" {
					a.mode = modeTransactionDetail
					return a, a.txnDetail.init(a.client, txnID)
				}
				return a, nil
			}
		}
	}

	// Delegate to the active sub-model.
	var cmd tea.Cmd
	switch a.mode {
	case modeAccountList:
		a.accountList, cmd = a.accountList.update(msg)
	case modeAccountDetail:
		a.accountDetail, cmd = a.accountDetail.update(msg)
	case modeTransactionList:
		a.txnList, cmd = a.txnList.update(msg)
	case modeTransactionDetail:
		a.txnDetail, cmd = a.txnDetail.update(msg)
	case modeNetWorth:
		a.netWorth, cmd = a.netWorth.update(msg)
	case modeLoans:
		a.loans, cmd = a.loans.update(msg)
	}
	return a, cmd
}

func (a *App) refreshTab() tea.Cmd {
	switch a.mode {
	case modeAccountList:
		return a.accountList.init(a.client)
	case modeTransactionList:
		return a.txnList.init(a.client)
	case modeNetWorth:
		return a.netWorth.init(a.client)
	case modeLoans:
		return a.loans.init(a.client)
	}
	return nil
}

func (a *App) View() string {
	tabs := ""
	for i, m := range tabModes {
		label := tabLabel(m)
		if i == a.tabIndex && a.mode != modeWizard && a.mode != modeTxnForm {
			tabs += activeTabStyle.Render(label)
		} else {
			tabs += inactiveTabStyle.Render(label)
		}
		if i < len(tabModes)-1 {
			tabs += " "
		}
	}

	var content string
	switch a.mode {
	case modeAccountList:
		content = a.accountList.view()
	case modeAccountDetail:
		content = a.accountDetail.view()
	case modeTransactionList:
		content = a.txnList.view()
	case modeTransactionDetail:
		content = a.txnDetail.view()
	case modeNetWorth:
		content = a.netWorth.view()
	case modeLoans:
		content = a.loans.view()
	case modeWizard:
		content = a.wizard.view()
	case modeTxnForm:
		content = a.txnForm.view()
	}

	status := ""
	if a.statusMsg != "" {
		status = successStyle.Render(a.statusMsg)
	}
	if a.err != nil {
		status = errorStyle.Render(a.err.Error())
	}

	helpText := dimStyle.Render("tab:switch  enter:select  esc:back  n:new account  t:new txn  d:delete  q:quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		tabs,
		"",
		content,
		"",
		status,
		helpText,
	)
}
