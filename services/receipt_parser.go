// services/receipt_parser.go
package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"jobtract-backend/ledger"
	"jobtract-backend/utils"
)

// ReceiptDraft is the pre-filled expense form produced from OCR text. The
// OCR step itself (image to text) happens in an external service; this
// parser only interprets the text it produced. Date keeps the string as
// printed on the receipt; ExpenseDate carries it parsed when the format
// is one the forms understand.
type ReceiptDraft struct {
	Vendor        string            `json:"vendor"`
	Date          string            `json:"date"`
	ExpenseDate   *time.Time        `json:"expenseDate"`
	ReceiptNumber string            `json:"receiptNumber"`
	LineItems     []ledger.LineItem `json:"lineItems"`
	Subtotal      float64           `json:"subtotal"`
	GSTAmount     float64           `json:"gstAmount"`
	PSTAmount     float64           `json:"pstAmount"`
	Total         float64           `json:"total"`
}

var (
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})\b`),
		regexp.MustCompile(`\b(\d{4}[/\-]\d{1,2}[/\-]\d{1,2})\b`),
		regexp.MustCompile(`(?i)\b((?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{1,2},?\s+\d{4})\b`),
	}
	receiptNumberPattern = regexp.MustCompile(`(?i)(?:receipt|ref|transaction|order|invoice)[\s#:]*([A-Za-z0-9\-]{3,})`)
	moneyPattern         = regexp.MustCompile(`\$?(\d+\.\d{2})`)
	numbersOnlyPattern   = regexp.MustCompile(`^[\d\s\-/]+$`)
	stripAmountsPattern  = regexp.MustCompile(`\$?\d+\.?\d*`)
	whitespacePattern    = regexp.MustCompile(`\s+`)
)

var (
	totalKeywords    = []string{"grand total", "amount due", "balance", "total"}
	subtotalKeywords = []string{"subtotal", "sub total", "sub-total"}
	gstKeywords      = []string{"gst", "hst"}
	pstKeywords      = []string{"pst"}
	taxKeywords      = []string{"tax", "gst", "hst", "pst", "vat"}
)

// ParseReceiptText extracts vendor, date and amounts from OCR receipt text
// and drafts per-line expense entries. Best effort: anything it cannot
// read is simply left blank for the user to fill in.
func ParseReceiptText(text string) *ReceiptDraft {
	draft := &ReceiptDraft{}
	lines := splitLines(text)

	draft.Vendor = extractVendor(lines)
	draft.Date = firstMatch(lines, datePatterns)
	if t, ok := utils.ParseDate(draft.Date); ok {
		draft.ExpenseDate = &t
	}
	draft.ReceiptNumber = extractReceiptNumber(lines)

	type candidate struct {
		line   string
		amount float64
	}
	var itemCandidates []candidate

	for _, line := range lines {
		lower := strings.ToLower(line)
		for _, m := range moneyPattern.FindAllStringSubmatch(line, -1) {
			amount, err := strconv.ParseFloat(m[1], 64)
			if err != nil || amount <= 0 {
				continue
			}
			switch {
			case containsAny(lower, subtotalKeywords):
				draft.Subtotal = maxFloat(draft.Subtotal, amount)
			case containsAny(lower, gstKeywords):
				draft.GSTAmount = maxFloat(draft.GSTAmount, amount)
			case containsAny(lower, pstKeywords):
				draft.PSTAmount = maxFloat(draft.PSTAmount, amount)
			case containsAny(lower, totalKeywords):
				draft.Total = maxFloat(draft.Total, amount)
			case containsAny(lower, taxKeywords):
				// Unlabelled tax lines: attribute to GST, the common case.
				draft.GSTAmount = maxFloat(draft.GSTAmount, amount)
			default:
				itemCandidates = append(itemCandidates, candidate{line: line, amount: amount})
			}
		}
	}

	var id int64 = 1
	for _, cand := range itemCandidates {
		// Very small amounts are usually unit prices or deposit lines.
		if cand.amount < 0.50 {
			continue
		}
		description := strings.TrimSpace(stripAmountsPattern.ReplaceAllString(cand.line, ""))
		description = whitespacePattern.ReplaceAllString(description, " ")
		if len(description) <= 2 {
			continue
		}
		draft.LineItems = append(draft.LineItems, ledger.LineItem{
			ID:          id,
			Description: description,
			Quantity:    1,
			UnitPrice:   cand.amount,
			LineTotal:   utils.Round(cand.amount),
		})
		id++
	}

	// Fill in whatever totals the receipt did not state outright.
	if draft.Total == 0 {
		for _, cand := range itemCandidates {
			draft.Total = maxFloat(draft.Total, cand.amount)
		}
	}
	if draft.Subtotal == 0 {
		switch {
		case len(draft.LineItems) > 0:
			var sum float64
			for _, item := range draft.LineItems {
				sum += item.LineTotal
			}
			draft.Subtotal = utils.Round(sum)
		case draft.GSTAmount+draft.PSTAmount > 0:
			draft.Subtotal = utils.Round(draft.Total - draft.GSTAmount - draft.PSTAmount)
		default:
			draft.Subtotal = draft.Total
		}
	}

	return draft
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// extractVendor picks the first early line that is not just numbers/dates.
func extractVendor(lines []string) string {
	limit := len(lines)
	if limit > 5 {
		limit = 5
	}
	for _, line := range lines[:limit] {
		if !numbersOnlyPattern.MatchString(line) {
			return line
		}
	}
	return ""
}

func extractReceiptNumber(lines []string) string {
	for _, line := range lines {
		if m := receiptNumberPattern.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	}
	return ""
}

func firstMatch(lines []string, patterns []*regexp.Regexp) string {
	for _, line := range lines {
		for _, p := range patterns {
			if m := p.FindStringSubmatch(line); m != nil {
				return m[1]
			}
		}
	}
	return ""
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
