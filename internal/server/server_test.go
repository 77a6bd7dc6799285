package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahajm/finledger/internal/ledger"
	"github.com/sahajm/finledger/internal/store"
)

type recordingPublisher struct {
	topics []string
	events []any
}

func (p *recordingPublisher) Publish(topic string, event any) error {
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func newTestServer(t *testing.T) (*httptest.Server, *recordingPublisher) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	pub := &recordingPublisher{}
	srv := New(st, ":0", Options{Publisher: pub})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, pub
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func createTestAccount(t *testing.T, base, name, accountType string) int64 {
	t.Helper()
	resp := doJSON(t, http.MethodPost, base+"/api/v1/accounts", map[string]any{
		"name": name, "type": accountType,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	acct := decode[ledger.Account](t, resp)
	return acct.ID
}

func TestAccountLifecycle(t *testing.T) {
	ts, _ := newTestServer(t)
	id := createTestAccount(t, ts.URL, "HDFC Savings", "savings")

	resp := doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/v1/accounts/%d", ts.URL, id), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	acct := decode[ledger.Account](t, resp)
	assert.Equal(t, "HDFC Savings", acct.Name)
	assert.Equal(t, "INR", acct.Currency)

	resp = doJSON(t, http.MethodPatch, fmt.Sprintf("%s/api/v1/accounts/%d", ts.URL, id), map[string]string{"name": "HDFC Primary"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	acct = decode[ledger.Account](t, resp)
	assert.Equal(t, "HDFC Primary", acct.Name)

	resp = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/v1/accounts/%d", ts.URL, id), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/v1/accounts/%d", ts.URL, id), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCreateAccountRejectsUnknownType(t *testing.T) {
	ts, _ := newTestServer(t)
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/accounts", map[string]string{
		"name": "x", "type": "hedge_fund",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestPostTransactionAndPublishEvent(t *testing.T) {
	ts, pub := newTestServer(t)
	savings := createTestAccount(t, ts.URL, "Savings", "savings")

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/transactions", map[string]any{
		"type":          "income",
		"nature":        "salary",
		"amount":        "50000",
		"to_account_id": savings,
		"category":      "Salary",
		"description":   "August salary",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	txn := decode[ledger.Transaction](t, resp)
	assert.NotEmpty(t, txn.ID)
	assert.Len(t, txn.Entries, 2)

	require.Len(t, pub.events, 1)
	assert.Equal(t, "finledger.transactions.posted", pub.topics[0])

	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/v1/accounts/%d/balance", ts.URL, savings), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	balance := decode[map[string]any](t, resp)
	assert.Equal(t, "50000", balance["balance"])
}

func TestPostTransactionValidationError(t *testing.T) {
	ts, pub := newTestServer(t)
	savings := createTestAccount(t, ts.URL, "Savings", "savings")

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/transactions", map[string]any{
		"type":            "expense",
		"nature":          "purchase",
		"amount":          "500",
		"from_account_id": savings,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[struct {
		Error      string   `json:"error"`
		Violations []string `json:"violations"`
	}](t, resp)
	assert.Contains(t, body.Violations, "expense transactions require a category")
	assert.Empty(t, pub.events, "rejected transaction must not emit an event")
}

func TestValidateEndpointIsDryRun(t *testing.T) {
	ts, _ := newTestServer(t)
	savings := createTestAccount(t, ts.URL, "Savings", "savings")

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/transactions/validate", map[string]any{
		"type":            "transfer",
		"nature":          "internal_transfer",
		"amount":          "100",
		"from_account_id": savings,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[struct {
		Valid      bool     `json:"valid"`
		Violations []string `json:"violations"`
	}](t, resp)
	assert.False(t, out.Valid)
	assert.NotEmpty(t, out.Violations)

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/v1/transactions", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	txns := decode[[]ledger.Transaction](t, resp)
	assert.Empty(t, txns)
}

func TestDeleteAccountWithEntriesConflicts(t *testing.T) {
	ts, _ := newTestServer(t)
	savings := createTestAccount(t, ts.URL, "Savings", "savings")

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/transactions", map[string]any{
		"type": "income", "nature": "salary", "amount": "100",
		"to_account_id": savings, "category": "Salary",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/v1/accounts/%d", ts.URL, savings), nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestSuggestEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/suggest", map[string]any{
		"description": "UPI: loan to Ravi",
		"amount":      "-3000",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sug := decode[struct {
		Type   string `json:"type"`
		Nature string `json:"nature"`
	}](t, resp)
	assert.Equal(t, "transfer", sug.Type)
	assert.Equal(t, "loan_given", sug.Nature)
}

func TestMetaEndpoints(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/v1/meta/account-types", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	types := decode[[]ledger.AccountTypeInfo](t, resp)
	assert.NotEmpty(t, types)

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/v1/meta/hints?type=transfer&nature=loan_given", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	hints := decode[ledger.FormHints](t, resp)
	assert.True(t, hints.RequireCounterparty)

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/v1/meta/hints?type=income&nature=loan_given", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/v1/meta/currencies", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	currencies := decode[[]string](t, resp)
	assert.Contains(t, currencies, "INR")
}

func TestReportsEndToEnd(t *testing.T) {
	ts, _ := newTestServer(t)
	savings := createTestAccount(t, ts.URL, "Savings", "savings")
	card := createTestAccount(t, ts.URL, "Visa", "credit_card")

	post := func(body map[string]any) {
		t.Helper()
		resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/transactions", body)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}
	post(map[string]any{"type": "income", "nature": "salary", "amount": "50000",
		"to_account_id": savings, "category": "Salary"})
	post(map[string]any{"type": "expense", "nature": "purchase", "amount": "15000",
		"from_account_id": card, "category": "electronics"})

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/v1/reports/net-worth", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	nw := decode[ledger.NetWorthReport](t, resp)
	// 50000 asset minus 15000 liability.
	assert.Equal(t, "35000", nw.NetWorth.String())

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/v1/reports/income-expense", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := decode[ledger.IncomeExpenseSummary](t, resp)
	assert.Equal(t, "50000", summary.TotalIncome.String())
	assert.Equal(t, "15000", summary.TotalExpense.String())
}
