package api

import (
	"net/http"
	"strings"

	"github.com/splitsmart-dev/splitsmart/internal/receipt"
)

type extractReceiptRequest struct {
	// Text is the full OCR output for the receipt.
	Text string `json:"text"`

	// Blocks are the OCR text blocks in reading order, used for merchant
	// detection. Optional; falls back to line splitting of Text.
	Blocks []string `json:"blocks,omitempty"`
}

func (s *Server) handleExtractReceipt(w http.ResponseWriter, r *http.Request) {
	var req extractReceiptRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Text == "" {
		badRequest(w, "text is required")
		return
	}

	blocks := req.Blocks
	if len(blocks) == 0 {
		blocks = strings.Split(req.Text, "\n")
	}

	data := receipt.Extract(req.Text, blocks)
	writeJSON(w, http.StatusOK, toReceiptResponse(data))
}
