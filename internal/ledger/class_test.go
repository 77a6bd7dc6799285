package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassForAccountType(t *testing.T) {
	tests := []struct {
		label string
		want  AccountingClass
	}{
		{"savings", ClassAsset},
		{"current", ClassAsset},
		{"credit_card", ClassLiability},
		{"overdraft", ClassLiability},
		{"receivable", ClassReceivable},
		{"payable", ClassPayable},
		{"PPF", ClassAsset},
		{"crypto", ClassAsset},
		{"cash", ClassAsset},
		{"unknown_type", ClassAsset}, // safe default
		{"", ClassAsset},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassForAccountType(tt.label), "label %q", tt.label)
	}
}

// classify is pure: same input, same output.
func TestClassForAccountTypeIsIdempotent(t *testing.T) {
	for _, at := range AccountTypes {
		assert.Equal(t, ClassForAccountType(at.Label), ClassForAccountType(at.Label))
	}
}

func TestEveryAccountTypeMapsToOneClass(t *testing.T) {
	for _, at := range AccountTypes {
		assert.Contains(t, AllClasses, at.Class, "label %q", at.Label)
		assert.Equal(t, at.Class, ClassForAccountType(at.Label))
	}
}

func TestDebitNormal(t *testing.T) {
	assert.True(t, ClassAsset.DebitNormal())
	assert.True(t, ClassReceivable.DebitNormal())
	assert.False(t, ClassLiability.DebitNormal())
	assert.False(t, ClassPayable.DebitNormal())
}

func TestValidAccountType(t *testing.T) {
	assert.True(t, ValidAccountType("savings"))
	assert.True(t, ValidAccountType("payable"))
	assert.False(t, ValidAccountType("hedge_fund"))
}
