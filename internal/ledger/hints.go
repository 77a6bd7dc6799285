package ledger

// FormHints tells a form (CLI prompt, web UI) which fields a given
// type/nature combination needs, mirroring the validation rules.
type FormHints struct {
	ShowCategory        bool `json:"show_category"`
	RequireCounterparty bool `json:"require_counterparty"`
	RequireBothAccounts bool `json:"require_both_accounts"`
	AffectsNetWorth     bool `json:"affects_net_worth"`
}

// HintsFor derives form hints for a type/nature pair. Transfers and loans
// never affect net worth; they only redistribute it.
func HintsFor(t TransactionType, n TransactionNature) FormHints {
	isTransfer := t == TypeTransfer
	return FormHints{
		ShowCategory: !isTransfer,
		RequireCounterparty: n.IsLoan() ||
			n == NatureReimbursementPaid || n == NatureReimbursementReceived,
		RequireBothAccounts: isTransfer,
		AffectsNetWorth:     t == TypeIncome || t == TypeExpense,
	}
}
