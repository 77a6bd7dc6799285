package ledger

// AccountingClass is the double-entry classification of an account.
// Assets and Receivables are debit-normal: they grow on debit and shrink
// on credit. Liabilities and Payables are the mirror image.
type AccountingClass string

const (
	ClassAsset      AccountingClass = "asset"      // bank, cash, wallet, investments
	ClassLiability  AccountingClass = "liability"  // credit card, overdraft
	ClassReceivable AccountingClass = "receivable" // someone owes me
	ClassPayable    AccountingClass = "payable"    // I owe someone
)

var AllClasses = []AccountingClass{ClassAsset, ClassLiability, ClassReceivable, ClassPayable}

// DebitNormal reports whether the class increases on the debit side.
func (c AccountingClass) DebitNormal() bool {
	return c == ClassAsset || c == ClassReceivable
}

// AccountTypeInfo describes one account-type label users pick when
// creating an account, and the accounting class it maps to.
type AccountTypeInfo struct {
	Label       string          `json:"label"`
	Class       AccountingClass `json:"class"`
	Description string          `json:"description"`
}

// AccountTypes is the full table of recognized account-type labels.
var AccountTypes = []AccountTypeInfo{
	// Banking
	{Label: "savings", Class: ClassAsset, Description: "Savings bank account"},
	{Label: "current", Class: ClassAsset, Description: "Current / checking account"},
	{Label: "salary", Class: ClassAsset, Description: "Salary account"},
	{Label: "NRO", Class: ClassAsset, Description: "Non-resident ordinary account"},
	{Label: "NRE", Class: ClassAsset, Description: "Non-resident external account"},
	// Credit
	{Label: "credit_card", Class: ClassLiability, Description: "Credit card"},
	{Label: "overdraft", Class: ClassLiability, Description: "Overdraft facility"},
	// Deposits
	{Label: "FD", Class: ClassAsset, Description: "Fixed deposit"},
	{Label: "RD", Class: ClassAsset, Description: "Recurring deposit"},
	// Retirement
	{Label: "PPF", Class: ClassAsset, Description: "Public provident fund"},
	{Label: "EPF", Class: ClassAsset, Description: "Employee provident fund"},
	{Label: "NPS", Class: ClassAsset, Description: "National pension scheme"},
	// Investments
	{Label: "stocks", Class: ClassAsset, Description: "Equity holdings"},
	{Label: "mutual_funds", Class: ClassAsset, Description: "Mutual fund holdings"},
	{Label: "bonds", Class: ClassAsset, Description: "Bond holdings"},
	{Label: "crypto", Class: ClassAsset, Description: "Cryptocurrency"},
	// Other
	{Label: "wallet", Class: ClassAsset, Description: "Digital wallet"},
	{Label: "cash", Class: ClassAsset, Description: "Physical cash"},
	{Label: "other", Class: ClassAsset, Description: "Anything else"},
	// Person-to-person
	{Label: "receivable", Class: ClassReceivable, Description: "Money a person owes me"},
	{Label: "payable", Class: ClassPayable, Description: "Money I owe a person"},
}

var classByLabel = func() map[string]AccountingClass {
	m := make(map[string]AccountingClass, len(AccountTypes))
	for _, at := range AccountTypes {
		m[at.Label] = at.Class
	}
	return m
}()

// ClassForAccountType maps an account-type label to its AccountingClass.
// Unknown labels default to Asset; the function never fails.
func ClassForAccountType(label string) AccountingClass {
	if c, ok := classByLabel[label]; ok {
		return c
	}
	return ClassAsset
}

// ValidAccountType checks whether the label is in the table.
func ValidAccountType(label string) bool {
	_, ok := classByLabel[label]
	return ok
}

// ClassLabel returns a human-readable label for a class.
func ClassLabel(c AccountingClass) string {
	switch c {
	case ClassAsset:
		return "Asset"
	case ClassLiability:
		return "Liability"
	case ClassReceivable:
		return "Receivable"
	case ClassPayable:
		return "Payable"
	default:
		return string(c)
	}
}
