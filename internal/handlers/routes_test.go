package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"fintrack/internal/period"
	"fintrack/internal/services"
	"fintrack/internal/store"
	"fintrack/internal/testutil"
)

// setupApp builds the full router over an isolated in-memory sqlite database.
func setupApp(t *testing.T, token string) *gin.Engine {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })
	return SetupRouter(services.New(store.New(db)), RouterConfig{APIToken: token, UpcomingDays: 7})
}

func authedRequest(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func mustStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) map[string]interface{} {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)
}

func TestRouter_HealthAndAuth(t *testing.T) {
	r := setupApp(t, "s3cret")

	t.Run("health is public", func(t *testing.T) {
		mustStatus(t, authedRequest(r, "GET", "/api/health", "", ""), http.StatusOK)
	})

	t.Run("api requires the token", func(t *testing.T) {
		result := mustStatus(t, authedRequest(r, "GET", "/api/v1/categories", "", ""), http.StatusUnauthorized)
		assertErrorCode(t, result, "UNAUTHORIZED")
	})

	t.Run("api accepts the token", func(t *testing.T) {
		result := mustStatus(t, authedRequest(r, "GET", "/api/v1/categories", "", "s3cret"), http.StatusOK)
		if n := len(result["categories"].([]interface{})); n != 5 {
			t.Errorf("expected the 5 seeded categories, got %d", n)
		}
	})
}

func TestRouter_LoanAndDebtFlow(t *testing.T) {
	r := setupApp(t, "")
	today := time.Now().UTC()
	month := period.MonthYear(today)

	// Register a received loan: one gain in the loans category.
	result := mustStatus(t, authedRequest(r, "POST", "/api/v1/loans",
		`{"type":"received","involved_party":"Bank","original_value":100000,"interest_rate":0,"num_installments":2}`, ""),
		http.StatusCreated)
	loanID := result["loan"].(map[string]interface{})["id"].(string)

	balance := mustStatus(t, authedRequest(r, "GET", "/api/v1/balances/"+month, "", ""), http.StatusOK)
	totals := balance["totals"].(map[string]interface{})
	if totals["gains"].(float64) != 100000 {
		t.Fatalf("expected gains 100000 after registration, got %v", totals["gains"])
	}

	// Below the minimum installment.
	result = mustStatus(t, authedRequest(r, "POST", "/api/v1/loans/"+loanID+"/payments",
		fmt.Sprintf(`{"month_year":%q,"amount":49999}`, month), ""), http.StatusUnprocessableEntity)
	assertErrorCode(t, result, "PAYMENT_BELOW_MINIMUM")

	// Two installments close the loan.
	result = mustStatus(t, authedRequest(r, "POST", "/api/v1/loans/"+loanID+"/payments",
		fmt.Sprintf(`{"month_year":%q,"amount":50000}`, month), ""), http.StatusOK)
	loan := result["loan"].(map[string]interface{})
	if loan["installments_paid"].(float64) != 1 || loan["original_value"].(float64) != 50000 {
		t.Fatalf("unexpected loan after first payment: %v", loan)
	}
	result = mustStatus(t, authedRequest(r, "POST", "/api/v1/loans/"+loanID+"/payments",
		fmt.Sprintf(`{"month_year":%q,"amount":50000}`, month), ""), http.StatusOK)
	if result["loan"].(map[string]interface{})["status"] != "closed" {
		t.Fatalf("expected the loan to be closed")
	}
	result = mustStatus(t, authedRequest(r, "POST", "/api/v1/loans/"+loanID+"/payments",
		fmt.Sprintf(`{"month_year":%q,"amount":50000}`, month), ""), http.StatusConflict)
	assertErrorCode(t, result, "LOAN_CLOSED")

	active := mustStatus(t, authedRequest(r, "GET", "/api/v1/loans", "", ""), http.StatusOK)
	if n := len(active["loans"].([]interface{})); n != 0 {
		t.Errorf("expected no active loans, got %d", n)
	}

	// An open debt past its due date shows up as overdue.
	due := today.AddDate(0, 0, -3).Format(period.DateLayout)
	result = mustStatus(t, authedRequest(r, "POST", "/api/v1/debts",
		fmt.Sprintf(`{"description":"Internet","value":20000,"due_date":%q,"category":"Boletos"}`, due), ""),
		http.StatusCreated)
	debtID := result["debts"].([]interface{})[0].(map[string]interface{})["id"].(string)

	upcoming := mustStatus(t, authedRequest(r, "GET", "/api/v1/debts/upcoming", "", ""), http.StatusOK)
	debts := upcoming["debts"].([]interface{})
	if len(debts) != 1 || debts[0].(map[string]interface{})["status"] != "overdue" {
		t.Fatalf("expected one overdue debt, got %v", debts)
	}

	mustStatus(t, authedRequest(r, "POST", "/api/v1/debts/"+debtID+"/pay",
		fmt.Sprintf(`{"month_year":%q}`, month), ""), http.StatusOK)
	result = mustStatus(t, authedRequest(r, "POST", "/api/v1/debts/"+debtID+"/pay",
		fmt.Sprintf(`{"month_year":%q}`, month), ""), http.StatusConflict)
	assertErrorCode(t, result, "DEBT_ALREADY_PAID")

	// 100000 in, 100000 repaid, 20000 debt.
	balance = mustStatus(t, authedRequest(r, "GET", "/api/v1/balances/"+month, "", ""), http.StatusOK)
	totals = balance["totals"].(map[string]interface{})
	if totals["balance"].(float64) != -20000 {
		t.Errorf("expected balance -20000, got %v", totals["balance"])
	}

	// The report over the month agrees with the ledger.
	start, end, _ := period.Bounds(month)
	summary := mustStatus(t, authedRequest(r, "GET", fmt.Sprintf("/api/v1/reports/summary?start_date=%s&end_date=%s",
		start.Format(period.DateLayout), end.Format(period.DateLayout)), "", ""), http.StatusOK)
	s := summary["summary"].(map[string]interface{})
	if s["total_expenses"].(float64) != 120000 || s["net_balance"].(float64) != -20000 {
		t.Errorf("unexpected summary %v", s)
	}

	rec := authedRequest(r, "GET", fmt.Sprintf("/api/v1/reports/export/csv?start_date=%s&end_date=%s",
		start.Format(period.DateLayout), end.Format(period.DateLayout)), "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Empréstimos") {
		t.Errorf("expected csv with the loans category, got %d: %s", rec.Code, rec.Body.String())
	}

	// Two accepted installments left two audit entries on the loan.
	audit := mustStatus(t, authedRequest(r, "GET", "/api/v1/audit?resource_type=loan", "", ""), http.StatusOK)
	payments := 0
	for _, e := range audit["entries"].([]interface{}) {
		if e.(map[string]interface{})["action"] == "PAY_LOAN_INSTALLMENT" {
			payments++
		}
	}
	if payments != 2 {
		t.Errorf("expected 2 installment audit entries, got %d", payments)
	}
}

func TestRouter_TransferAndBudgetFlow(t *testing.T) {
	r := setupApp(t, "")

	mustStatus(t, authedRequest(r, "POST", "/api/v1/transactions/05-2025",
		`{"date":"2025-05-03","type":"expense","description":"Groceries","category":"Mercado","amount":30000}`, ""),
		http.StatusCreated)

	// The category was created on first use.
	cats := mustStatus(t, authedRequest(r, "GET", "/api/v1/categories", "", ""), http.StatusOK)
	found := false
	for _, c := range cats["categories"].([]interface{}) {
		if c == "Mercado" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected Mercado to be auto-created")
	}

	mustStatus(t, authedRequest(r, "POST", "/api/v1/budgets/05-2025", `{"category":"Mercado","limit":25000}`, ""), http.StatusOK)
	check := mustStatus(t, authedRequest(r, "GET", "/api/v1/budgets/05-2025/check", "", ""), http.StatusOK)
	exceeded := check["exceeded"].([]interface{})
	if len(exceeded) != 1 || exceeded[0].(map[string]interface{})["overage"].(float64) != 5000 {
		t.Fatalf("expected an overage of 5000, got %v", exceeded)
	}

	mustStatus(t, authedRequest(r, "POST", "/api/v1/transfers/05-2025",
		`{"amount":10000,"from":"account","to":"cash_in_hand"}`, ""), http.StatusCreated)

	cash := mustStatus(t, authedRequest(r, "GET", "/api/v1/balances/05-2025?payment_method=cash_in_hand", "", ""), http.StatusOK)
	if cash["totals"].(map[string]interface{})["balance"].(float64) != 10000 {
		t.Errorf("expected cash balance 10000, got %v", cash["totals"])
	}
	all := mustStatus(t, authedRequest(r, "GET", "/api/v1/balances/05-2025", "", ""), http.StatusOK)
	if all["totals"].(map[string]interface{})["balance"].(float64) != -30000 {
		t.Errorf("a transfer must not change the month balance, got %v", all["totals"])
	}

	mustStatus(t, authedRequest(r, "DELETE", "/api/v1/categories/Transfer%C3%AAncia", "", ""), http.StatusForbidden)
}
