package api

import (
	"net/http"

	"github.com/splitsmart-dev/splitsmart/internal/service"
)

type createExpenseRequest struct {
	Title        string             `json:"title"`
	Amount       float64            `json:"amount"`
	Date         int64              `json:"date,omitempty"`
	PayerID      string             `json:"payer_id"`
	SplitMode    string             `json:"split_mode,omitempty"`
	Participants []string           `json:"participants,omitempty"`
	Shares       map[string]float64 `json:"shares,omitempty"`
	Description  string             `json:"description,omitempty"`
	Category     string             `json:"category,omitempty"`
	ReceiptURL   string             `json:"receipt_url,omitempty"`
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Title == "" {
		badRequest(w, "title is required")
		return
	}

	expense, err := s.expenses.RecordExpense(r.Context(), r.PathValue("groupID"), service.Draft{
		Title:        req.Title,
		Amount:       req.Amount,
		Date:         req.Date,
		PayerID:      req.PayerID,
		SplitMode:    service.SplitMode(req.SplitMode),
		Participants: req.Participants,
		Shares:       req.Shares,
		Description:  req.Description,
		Category:     req.Category,
		ReceiptURL:   req.ReceiptURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toExpenseResponse(expense))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.expenses.ListExpenses(r.Context(), r.PathValue("groupID"))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]expenseResponse, 0, len(expenses))
	for _, expense := range expenses {
		resp = append(resp, toExpenseResponse(expense))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := s.expenses.GetExpense(r.Context(), r.PathValue("groupID"), r.PathValue("expenseID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseResponse(expense))
}

func (s *Server) handleSettleExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := s.expenses.SettleExpense(r.Context(), r.PathValue("groupID"), r.PathValue("expenseID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseResponse(expense))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.expenses.DeleteExpense(r.Context(), r.PathValue("groupID"), r.PathValue("expenseID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
