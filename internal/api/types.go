package api

import (
	"time"

	"github.com/splitsmart-dev/splitsmart/internal/models"
)

// Wire types for the JSON API. Internal models stay free of serialization
// concerns; these mirror them field by field and nothing else.

type memberPayload struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type groupResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Members      []memberPayload `json:"members"`
	TotalExpense float64         `json:"total_expense"`
	CreatedAt    int64           `json:"created_at"`
	CreatedBy    string          `json:"created_by,omitempty"`
}

type expenseResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Amount      float64            `json:"amount"`
	Date        int64              `json:"date"`
	PayerID     string             `json:"payer_id"`
	Split       map[string]float64 `json:"split"`
	Description string             `json:"description,omitempty"`
	Category    string             `json:"category,omitempty"`
	ReceiptURL  string             `json:"receipt_url,omitempty"`
	Settled     bool               `json:"settled"`
}

type userResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	CreatedAt   int64  `json:"created_at"`
}

type receiptResponse struct {
	TotalAmount  *float64 `json:"total_amount"`
	MerchantName *string  `json:"merchant_name"`
	Date         *string  `json:"date"`
	RawText      string   `json:"raw_text"`
}

func toGroupResponse(group *models.Group) groupResponse {
	members := make([]memberPayload, 0, len(group.Members))
	for _, m := range group.Members {
		members = append(members, memberPayload{ID: m.ID, Name: m.Name, Email: m.Email})
	}
	return groupResponse{
		ID:           group.ID,
		Name:         group.Name,
		Members:      members,
		TotalExpense: group.TotalExpense,
		CreatedAt:    group.CreatedAt,
		CreatedBy:    group.CreatedBy,
	}
}

func toExpenseResponse(expense *models.Expense) expenseResponse {
	return expenseResponse{
		ID:          expense.ID,
		Title:       expense.Title,
		Amount:      expense.Amount,
		Date:        expense.Date,
		PayerID:     expense.PayerID,
		Split:       expense.Split,
		Description: expense.Description,
		Category:    expense.Category,
		ReceiptURL:  expense.ReceiptURL,
		Settled:     expense.Settled,
	}
}

func toUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		CreatedAt:   user.CreatedAt,
	}
}

func toReceiptResponse(data models.ExtractedReceiptData) receiptResponse {
	resp := receiptResponse{
		TotalAmount:  data.TotalAmount,
		MerchantName: data.MerchantName,
		RawText:      data.RawText,
	}
	if data.Date != nil {
		formatted := data.Date.Format(time.DateOnly)
		resp.Date = &formatted
	}
	return resp
}
