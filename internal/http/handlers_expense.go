package http

import (
	"errors"
	"net/http"

	"collie/internal/core"
)

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var expense core.Expense
	if err := decodeJSON(r, &expense); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	expense = expense.Normalize()
	if err := expense.Validate(); err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidAmount):
			writeError(w, http.StatusBadRequest, "Amount must be > 0")
		case errors.Is(err, core.ErrEmptyPayer):
			writeError(w, http.StatusBadRequest, "paid_by is required")
		case errors.Is(err, core.ErrEmptySplit):
			writeError(w, http.StatusBadRequest, "split_between must contain at least one name")
		default:
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		}
		return
	}

	ctx := r.Context()
	tripID := r.PathValue("id")
	if err := s.store.AddExpense(ctx, tripID, expense); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record expense")
		return
	}

	ledger, err := s.store.Expenses(ctx, tripID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load expenses")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":          true,
		"expense":     expense,
		"total_spent": round2(core.TotalSpent(ledger)),
	})
}

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	ledger, err := s.store.Expenses(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load expenses")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"expenses":    ledger,
		"total_spent": round2(core.TotalSpent(ledger)),
	})
}

func (s *Server) handleSettle(w http.ResponseWriter, r *http.Request) {
	tripID := r.PathValue("id")
	ledger, err := s.store.Expenses(r.Context(), tripID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load expenses")
		return
	}

	if len(ledger) == 0 {
		writeJSON(w, http.StatusOK, map[string]any{
			"trip_id":        tripID,
			"transfers":      []core.Transfer{},
			"total_expenses": 0.0,
			"summary":        "No expenses to settle",
		})
		return
	}

	transfers := core.Settle(ledger)
	for i := range transfers {
		transfers[i].Amount = round2(transfers[i].Amount)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"trip_id":        tripID,
		"transfers":      transfers,
		"total_expenses": round2(core.TotalSpent(ledger)),
		"summary":        core.FormatSummary(transfers),
	})
}
