// Package receipt turns raw OCR text into a structured best guess of
// merchant name, total amount, and transaction date.
//
// The OCR engine upstream is an opaque, possibly-noisy text source, so
// this package deliberately runs a list of independent heuristic passes
// instead of a single grammar: each pass can fail to find its field
// (returning nil) without blocking the others, and each can be tested and
// tuned in isolation. All passes are deterministic pure functions.
package receipt

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/splitsmart-dev/splitsmart/internal/models"
)

// dateLayouts are the supported date formats, tried in order.
// Go's time.Parse also accepts single-digit day/month for these layouts.
var dateLayouts = []string{
	"01/02/2006", // MM/dd/yyyy
	"01-02-2006", // MM-dd-yyyy
	"2006-01-02", // yyyy-MM-dd
	"02/01/2006", // dd/MM/yyyy
	"01/02/06",   // MM/dd/yy
}

// totalIndicators are words that mark a line as carrying the grand total.
var totalIndicators = []string{
	"total",
	"balance",
	"amount due",
	"amount to pay",
	"grand total",
	"final total",
	"payment total",
}

// excludedTotalWords disqualify a line from being the grand total even if
// it contains an indicator ("subtotal" contains "total").
var excludedTotalWords = []string{
	"subtotal",
	"sub-total",
	"sub total",
	"tax",
	"tip",
	"discount",
}

var (
	amountPattern    = regexp.MustCompile(`\$?(\d+,?\d*\.\d{2})`)
	dateShapePattern = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`)

	// Merchant-name exclusions.
	merchantDatePattern   = regexp.MustCompile(`\d{2}[/-]\d{2}[/-]\d{2,4}`)
	merchantAmountPattern = regexp.MustCompile(`\$?\d+\.\d{2}`)
	longDigitRunPattern   = regexp.MustCompile(`\d{5,}`) // phone numbers, postal codes

	// Description cleanup.
	separatorLinePattern = regexp.MustCompile(`^[-=_*]{3,}$`)
	phoneLinePattern     = regexp.MustCompile(`\d{3,}[-.]\d{3,}[-.]\d{4}`)
	emailLinePattern     = regexp.MustCompile(`@.*\.`)
)

// maxDescriptionLen caps the cleaned description.
const maxDescriptionLen = 500

// Extract runs all heuristic passes over the recognized text.
// rawText is the full recognized text; blocks are the recognized text
// blocks in reading order, earliest blocks being the top of the receipt.
// Absence of any field never blocks the others.
func Extract(rawText string, blocks []string) models.ExtractedReceiptData {
	lines := cleanLines(rawText)

	return models.ExtractedReceiptData{
		TotalAmount:  findTotalAmount(lines),
		MerchantName: findMerchantName(blocks),
		Date:         findDate(rawText),
		RawText:      formatDescription(lines),
	}
}

// cleanLines splits text into trimmed, non-empty lines.
func cleanLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// findTotalAmount looks for the grand total. Receipts put it near the
// bottom, after subtotal/tax lines, so the scan runs last-to-first and
// skips lines with excluded keywords to avoid misreading "Subtotal $9.00"
// as the total. If no keyword line yields an amount, it falls back to the
// last currency-shaped amount on a non-excluded line. Returns nil if no
// amount exists anywhere; never defaults to zero.
func findTotalAmount(lines []string) *float64 {
	for i := len(lines) - 1; i >= 0; i-- {
		lower := strings.ToLower(lines[i])
		if !containsAny(lower, totalIndicators) || containsAny(lower, excludedTotalWords) {
			continue
		}
		if amount := extractAmount(lines[i]); amount != nil {
			return amount
		}
		break
	}

	// No clear total: take the last currency amount on the receipt.
	for i := len(lines) - 1; i >= 0; i-- {
		if containsAny(strings.ToLower(lines[i]), excludedTotalWords) {
			continue
		}
		if amount := extractAmount(lines[i]); amount != nil {
			return amount
		}
	}
	return nil
}

// extractAmount pulls the first currency-shaped substring out of a line:
// optional $, digits with an optional comma separator, and exactly two
// decimal digits. A malformed match is treated as no match, never as zero.
func extractAmount(text string) *float64 {
	m := amountPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return nil
	}
	return &value
}

// findMerchantName scans the first up to 3 text blocks for a line that
// looks like a merchant name. Returns nil if none qualifies.
func findMerchantName(blocks []string) *string {
	for i := 0; i < len(blocks) && i < 3; i++ {
		for _, line := range strings.Split(blocks[i], "\n") {
			line = strings.TrimSpace(line)
			if isLikelyMerchantName(line) {
				return &line
			}
		}
	}
	return nil
}

// isLikelyMerchantName rejects lines that look like dates, amounts,
// phone/postal numbers, contact details, or are implausibly short or long.
func isLikelyMerchantName(line string) bool {
	if len(line) < 3 || len(line) > 50 {
		return false
	}
	lower := strings.ToLower(line)
	return !merchantDatePattern.MatchString(line) &&
		!merchantAmountPattern.MatchString(line) &&
		!longDigitRunPattern.MatchString(line) &&
		!strings.Contains(lower, "tel:") &&
		!strings.Contains(lower, "phone") &&
		!strings.Contains(line, "@")
}

// findDate tries each supported layout in turn against every date-shaped
// substring of the text, returning the first successful parse in
// format-then-occurrence order. A match that fails to parse under the
// current layout is skipped, not treated as an error.
func findDate(text string) *time.Time {
	candidates := dateShapePattern.FindAllString(text, -1)
	for _, layout := range dateLayouts {
		for _, candidate := range candidates {
			if parsed, err := time.Parse(layout, candidate); err == nil {
				return &parsed
			}
		}
	}
	return nil
}

// formatDescription joins the meaningful lines of the receipt into a
// description, dropping separators, wifi/password mentions, phone-shaped
// lines, and email-shaped lines, then truncating to maxDescriptionLen.
// The filtering is lossy on purpose (privacy and noise reduction);
// truncated content is not recoverable.
func formatDescription(lines []string) string {
	var kept []string
	for _, line := range lines {
		lower := strings.ToLower(line)
		if len(line) <= 3 ||
			separatorLinePattern.MatchString(line) ||
			strings.Contains(lower, "wifi") ||
			strings.Contains(lower, "password") ||
			phoneLinePattern.MatchString(line) ||
			emailLinePattern.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}

	description := strings.Join(kept, "\n")
	if runes := []rune(description); len(runes) > maxDescriptionLen {
		description = string(runes[:maxDescriptionLen])
	}
	return description
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
