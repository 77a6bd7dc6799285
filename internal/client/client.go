// Package client is a thin HTTP client over the REST API, shared by the CLI
// and the TUI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sahajm/finledger/internal/ledger"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) CreateAccount(ctx context.Context, acct *ledger.Account) (*ledger.Account, error) {
	body := map[string]any{
		"name":     acct.Name,
		"type":     acct.Type,
		"currency": acct.Currency,
	}
	var result ledger.Account
	if err := c.post(ctx, "/api/v1/accounts", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListAccounts(ctx context.Context, accountType string, class ledger.AccountingClass) ([]ledger.Account, error) {
	params := url.Values{}
	if accountType != "" {
		params.Set("type", accountType)
	}
	if class != "" {
		params.Set("class", string(class))
	}
	var result []ledger.Account
	if err := c.get(ctx, "/api/v1/accounts?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) GetAccount(ctx context.Context, id int64) (*ledger.Account, error) {
	var result ledger.Account
	if err := c.get(ctx, accountPath(id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type BalanceResponse struct {
	AccountID int64                  `json:"account_id"`
	Name      string                 `json:"name"`
	Class     ledger.AccountingClass `json:"class"`
	Balance   decimal.Decimal        `json:"balance"`
	Currency  string                 `json:"currency"`
}

func (c *Client) GetAccountBalance(ctx context.Context, id int64) (*BalanceResponse, error) {
	var result BalanceResponse
	if err := c.get(ctx, accountPath(id)+"/balance", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListAccountEntries(ctx context.Context, id int64) ([]ledger.Entry, error) {
	var result []ledger.Entry
	if err := c.get(ctx, accountPath(id)+"/entries", &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) RenameAccount(ctx context.Context, id int64, newName string) (*ledger.Account, error) {
	body := map[string]any{"name": newName}
	var result ledger.Account
	if err := c.patch(ctx, accountPath(id), body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) DeleteAccount(ctx context.Context, id int64) error {
	return c.del(ctx, accountPath(id))
}

func (c *Client) PostTransaction(ctx context.Context, txn *ledger.Transaction) (*ledger.Transaction, error) {
	var result ledger.Transaction
	if err := c.post(ctx, "/api/v1/transactions", txn, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ValidationResult reports the dry-run outcome for a would-be transaction.
type ValidationResult struct {
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations"`
}

func (c *Client) ValidateTransaction(ctx context.Context, txn *ledger.Transaction) (*ValidationResult, error) {
	var result ValidationResult
	if err := c.post(ctx, "/api/v1/transactions/validate", txn, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListTransactions(ctx context.Context, accountID int64, nature ledger.TransactionNature) ([]ledger.Transaction, error) {
	params := url.Values{}
	if accountID != 0 {
		params.Set("account_id", strconv.FormatInt(accountID, 10))
	}
	if nature != "" {
		params.Set("nature", string(nature))
	}
	var result []ledger.Transaction
	if err := c.get(ctx, "/api/v1/transactions?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) GetTransaction(ctx context.Context, id string) (*ledger.Transaction, error) {
	var result ledger.Transaction
	if err := c.get(ctx, "/api/v1/transactions/"+id, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) NetWorth(ctx context.Context) (*ledger.NetWorthReport, error) {
	var result ledger.NetWorthReport
	if err := c.get(ctx, "/api/v1/reports/net-worth", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) NetWorthTimeline(ctx context.Context) ([]ledger.NetWorthPoint, error) {
	var result []ledger.NetWorthPoint
	if err := c.get(ctx, "/api/v1/reports/net-worth/timeline", &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) CashFlow(ctx context.Context, start, end string) (*ledger.CashFlowReport, error) {
	var result ledger.CashFlowReport
	if err := c.get(ctx, "/api/v1/reports/cashflow?"+periodParams(start, end), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) IncomeExpenseSummary(ctx context.Context, start, end string) (*ledger.IncomeExpenseSummary, error) {
	var result ledger.IncomeExpenseSummary
	if err := c.get(ctx, "/api/v1/reports/income-expense?"+periodParams(start, end), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) OutstandingLoans(ctx context.Context) ([]ledger.LoanPosition, error) {
	var result []ledger.LoanPosition
	if err := c.get(ctx, "/api/v1/reports/loans", &result); err != nil {
		return nil, err
	}
	return result, nil
}

type SuggestRequest struct {
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	FromAccountType string          `json:"from_account_type,omitempty"`
	ToAccountType   string          `json:"to_account_type,omitempty"`
}

type Suggestion struct {
	Type       ledger.TransactionType   `json:"type"`
	Nature     ledger.TransactionNature `json:"nature"`
	Confidence float64                  `json:"confidence"`
	Reasoning  string                   `json:"reasoning"`
}

func (c *Client) Suggest(ctx context.Context, req SuggestRequest) (*Suggestion, error) {
	var result Suggestion
	if err := c.post(ctx, "/api/v1/suggest", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) AccountTypes(ctx context.Context) ([]ledger.AccountTypeInfo, error) {
	var result []ledger.AccountTypeInfo
	if err := c.get(ctx, "/api/v1/meta/account-types", &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) FormHints(ctx context.Context, t ledger.TransactionType, n ledger.TransactionNature) (*ledger.FormHints, error) {
	params := url.Values{}
	params.Set("type", string(t))
	params.Set("nature", string(n))
	var result ledger.FormHints
	if err := c.get(ctx, "/api/v1/meta/hints?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Ping checks if the server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/api/v1/meta/currencies", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func accountPath(id int64) string {
	return "/api/v1/accounts/" + strconv.FormatInt(id, 10)
}

func periodParams(start, end string) string {
	params := url.Values{}
	if start != "" {
		params.Set("start", start)
	}
	if end != "" {
		params.Set("end", end)
	}
	return params.Encode()
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.doRequest(req, result)
}

func (c *Client) del(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, "DELETE", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.doRequest(req, nil)
}

func (c *Client) patch(ctx context.Context, path string, body any, result any) error {
	return c.send(ctx, "PATCH", path, body, result)
}

func (c *Client) post(ctx context.Context, path string, body any, result any) error {
	return c.send(ctx, "POST", path, body, result)
}

func (c *Client) send(ctx context.Context, method, path string, body any, result any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doRequest(req, result)
}

type apiError struct {
	Error      string   `json:"error"`
	Violations []string `json:"violations"`
}

func (c *Client) doRequest(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(bodyBytes, &apiErr) == nil && apiErr.Error != "" {
			if len(apiErr.Violations) > 0 {
				return fmt.Errorf("server error (%d): %s", resp.StatusCode, strings.Join(apiErr.Violations, "; "))
			}
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	if result != nil && len(bodyBytes) > 0 {
		if err := json.Unmarshal(bodyBytes, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
