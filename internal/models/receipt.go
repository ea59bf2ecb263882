package models

import "time"

// ExtractedReceiptData holds the best-guess fields pulled out of receipt
// OCR text. It is produced once per scan and consumed to pre-fill an
// expense draft; it is never persisted as a source of truth.
//
// Every field except RawText is optional: a nil pointer means the
// corresponding heuristic found nothing. Callers must treat each value as
// a suggestion to be confirmed by the user, not a fact.
type ExtractedReceiptData struct {
	// TotalAmount is the detected grand total.
	TotalAmount *float64

	// MerchantName is the detected merchant, usually from the top of the
	// receipt.
	MerchantName *string

	// Date is the detected transaction date.
	Date *time.Time

	// RawText is the cleaned-up receipt text, suitable as an expense
	// description. Truncated to 500 characters.
	RawText string
}
