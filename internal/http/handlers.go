package http

import (
	"log/slog"
	"net/http"

	"tally/internal/core"
	"tally/internal/view"
)

// transactionResponse is the wire shape for a stored transaction.
type transactionResponse struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	AmountCents int64  `json:"amount_cents"`
	Type        string `json:"type"`
	Date        string `json:"date"`
	CreatedAt   string `json:"created_at"`
}

func toTransactionResponse(t core.Transaction) transactionResponse {
	return transactionResponse{
		ID:          t.ID,
		Description: t.Description,
		AmountCents: t.Amount.Cents,
		Type:        string(t.Type),
		Date:        t.Date.ISO(),
		CreatedAt:   t.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

type listResponse struct {
	Transactions []transactionResponse `json:"transactions"`
	Count        int                   `json:"count"`
}

type summaryResponse struct {
	IncomeCents  int64 `json:"income_cents"`
	ExpenseCents int64 `json:"expense_cents"`
	BalanceCents int64 `json:"balance_cents"`
}

// handleIndex renders the ledger overview page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	vm, err := s.buildOverview(r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to build overview", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if s.templates == nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "index.html", vm); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render overview page", "error", err)
	}
}

// handleTransactions dispatches the collection endpoint.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListTransactions(w, r)
	case http.MethodPost:
		s.handleCreateTransaction(w, r)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

// handleListTransactions returns every record in insertion order.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	records, err := s.ledger.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list transactions", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}

	resp := listResponse{
		Transactions: make([]transactionResponse, len(records)),
		Count:        len(records),
	}
	for i, t := range records {
		resp.Transactions[i] = toTransactionResponse(t)
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleCreateTransaction validates the submitted fields and appends a
// new record. Every invalid field is reported, not just the first.
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	description := parser.Get("description")
	amount := parser.Get("amount")
	date := parser.Get("date")
	rawType := parser.Get("type")

	fields := core.ValidateInput(description, amount, date)
	txType, err := core.ParseTxType(rawType)
	if err != nil {
		fields = append(fields, core.FieldType)
	}
	if !fields.OK() {
		slog.InfoContext(r.Context(), "Transaction rejected",
			"field_errors", len(fields))
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation failed",
			"fields": fields,
		})
		return
	}

	cents, err := core.ParseAmountToCents(amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}
	txDate, err := core.ParseDate(date)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date")
		return
	}

	stored, err := s.ledger.Append(r.Context(), core.Transaction{
		Description: description,
		Amount:      core.Money{Cents: cents},
		Type:        txType,
		Date:        txDate,
	})
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to append transaction", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save transaction")
		return
	}

	s.invalidateReadCaches()
	slog.InfoContext(r.Context(), "Transaction created",
		"id", stored.ID,
		"type", string(stored.Type),
		"amount_cents", stored.Amount.Cents)
	writeJSON(w, http.StatusCreated, toTransactionResponse(stored))
}

// handleTransactionByID serves DELETE /transactions/{id}. Deleting a
// missing id is a no-op and still succeeds.
func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, http.MethodDelete)
		return
	}

	id, ok := parseIDFromPath(r.URL.Path, "/transactions/")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	removed, err := s.ledger.Remove(r.Context(), id)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to remove transaction", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to remove transaction")
		return
	}

	if removed {
		s.invalidateReadCaches()
		slog.InfoContext(r.Context(), "Transaction removed", "id", id)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": removed})
}

// handleSummary returns the running totals in cents.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	sum, ok := s.summaryCache.Get(summaryCacheKey)
	if !ok {
		records, err := s.ledger.List(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "Failed to list transactions", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to compute summary")
			return
		}
		sum = core.Summarize(records)
		s.summaryCache.Set(summaryCacheKey, sum)
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		IncomeCents:  sum.Income.Cents,
		ExpenseCents: sum.Expense.Cents,
		BalanceCents: sum.Balance.Cents,
	})
}

// handleOverview returns the display projection as JSON.
func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	vm, err := s.buildOverview(r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to build overview", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build overview")
		return
	}
	writeJSON(w, http.StatusOK, vm)
}

// buildOverview projects the ledger for display, going through the
// cache when the projection is still fresh.
func (s *Server) buildOverview(r *http.Request) (view.ViewModel, error) {
	if cached, ok := s.overviewCache.Get(overviewCacheKey); ok {
		return cached, nil
	}

	records, err := s.ledger.List(r.Context())
	if err != nil {
		return view.ViewModel{}, err
	}

	vm := view.Project(records, core.Summarize(records))
	s.overviewCache.Set(overviewCacheKey, vm)
	return vm, nil
}
