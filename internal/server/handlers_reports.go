package server

import (
	"net/http"
	"time"
)

func (s *Server) netWorth(w http.ResponseWriter, r *http.Request) {
	report, err := s.store.NetWorth(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) netWorthTimeline(w http.ResponseWriter, r *http.Request) {
	points, err := s.store.NetWorthTimeline(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, points)
}

// reportPeriod parses optional ?start=/&end= (YYYY-MM-DD), defaulting to the
// current calendar month.
func reportPeriod(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)

	if v := r.URL.Query().Get("start"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return start, end, err
		}
		start = t
	}
	if v := r.URL.Query().Get("end"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return start, end, err
		}
		end = t.AddDate(0, 0, 1).Add(-time.Second)
	}
	return start, end, nil
}

func (s *Server) cashFlow(w http.ResponseWriter, r *http.Request) {
	start, end, err := reportPeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD: "+err.Error())
		return
	}
	report, err := s.store.CashFlow(r.Context(), start, end)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) incomeExpense(w http.ResponseWriter, r *http.Request) {
	start, end, err := reportPeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD: "+err.Error())
		return
	}
	summary, err := s.store.IncomeExpenseSummary(r.Context(), start, end)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) outstandingLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := s.store.OutstandingLoans(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, loans)
}
