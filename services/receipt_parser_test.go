package services

import (
	"testing"
	"time"
)

func TestParseReceiptTextFullReceipt(t *testing.T) {
	text := `HOME DEPOT
123 Main St
Date: 04/15/2024
Receipt #: R-445821
2x4 Lumber 8ft    45.98
Drywall Sheets    89.50
Subtotal          135.48
GST 5%            6.77
PST 7%            9.48
Total             151.73`

	draft := ParseReceiptText(text)

	if draft.Vendor != "HOME DEPOT" {
		t.Errorf("Vendor = %q, want %q", draft.Vendor, "HOME DEPOT")
	}
	if draft.Date != "04/15/2024" {
		t.Errorf("Date = %q, want %q", draft.Date, "04/15/2024")
	}
	if draft.ExpenseDate == nil {
		t.Fatal("ExpenseDate = nil, want parsed date")
	}
	if y, m, d := draft.ExpenseDate.Date(); y != 2024 || m != time.April || d != 15 {
		t.Errorf("ExpenseDate = %v, want 2024-04-15", draft.ExpenseDate)
	}
	if draft.ReceiptNumber != "R-445821" {
		t.Errorf("ReceiptNumber = %q, want %q", draft.ReceiptNumber, "R-445821")
	}
	if draft.Subtotal != 135.48 {
		t.Errorf("Subtotal = %v, want 135.48", draft.Subtotal)
	}
	if draft.GSTAmount != 6.77 {
		t.Errorf("GSTAmount = %v, want 6.77", draft.GSTAmount)
	}
	if draft.PSTAmount != 9.48 {
		t.Errorf("PSTAmount = %v, want 9.48", draft.PSTAmount)
	}
	if draft.Total != 151.73 {
		t.Errorf("Total = %v, want 151.73", draft.Total)
	}
	if len(draft.LineItems) != 2 {
		t.Fatalf("got %d line items, want 2", len(draft.LineItems))
	}
	if draft.LineItems[1].Description != "Drywall Sheets" {
		t.Errorf("item description = %q, want %q", draft.LineItems[1].Description, "Drywall Sheets")
	}
	if draft.LineItems[1].LineTotal != 89.50 {
		t.Errorf("item line total = %v, want 89.50", draft.LineItems[1].LineTotal)
	}
}

func TestParseReceiptTextComputesMissingSubtotal(t *testing.T) {
	text := `JOE'S COFFEE
Latte 4.50
Muffin 3.25
TOTAL 7.75`

	draft := ParseReceiptText(text)

	if draft.Vendor != "JOE'S COFFEE" {
		t.Errorf("Vendor = %q, want %q", draft.Vendor, "JOE'S COFFEE")
	}
	if draft.Total != 7.75 {
		t.Errorf("Total = %v, want 7.75", draft.Total)
	}
	// No subtotal line on the receipt; it comes from the drafted items.
	if draft.Subtotal != 7.75 {
		t.Errorf("Subtotal = %v, want 7.75", draft.Subtotal)
	}
	if len(draft.LineItems) != 2 {
		t.Fatalf("got %d line items, want 2", len(draft.LineItems))
	}
	if draft.GSTAmount != 0 || draft.PSTAmount != 0 {
		t.Errorf("tax amounts = %v/%v, want 0/0", draft.GSTAmount, draft.PSTAmount)
	}
}

func TestParseReceiptTextVendorSkipsNumericLines(t *testing.T) {
	text := `04/15/2024
RONA BUILDING SUPPLY
Paint 34.99`

	draft := ParseReceiptText(text)

	if draft.Vendor != "RONA BUILDING SUPPLY" {
		t.Errorf("Vendor = %q, want %q", draft.Vendor, "RONA BUILDING SUPPLY")
	}
	if draft.Date != "04/15/2024" {
		t.Errorf("Date = %q, want %q", draft.Date, "04/15/2024")
	}
}

func TestParseReceiptTextUnlabelledTaxGoesToGST(t *testing.T) {
	text := `ACME SUPPLY
Widgets 100.00
Tax 5.00
Total 105.00`

	draft := ParseReceiptText(text)

	if draft.GSTAmount != 5.00 {
		t.Errorf("GSTAmount = %v, want 5.00", draft.GSTAmount)
	}
	if draft.PSTAmount != 0 {
		t.Errorf("PSTAmount = %v, want 0", draft.PSTAmount)
	}
	if draft.Total != 105.00 {
		t.Errorf("Total = %v, want 105.00", draft.Total)
	}
}

func TestParseReceiptTextEmptyInput(t *testing.T) {
	draft := ParseReceiptText("")

	if draft.Vendor != "" || draft.Date != "" || draft.ReceiptNumber != "" {
		t.Errorf("expected blank headers, got %q %q %q", draft.Vendor, draft.Date, draft.ReceiptNumber)
	}
	if draft.ExpenseDate != nil {
		t.Errorf("ExpenseDate = %v, want nil", draft.ExpenseDate)
	}
	if draft.Subtotal != 0 || draft.Total != 0 {
		t.Errorf("expected zero totals, got subtotal %v total %v", draft.Subtotal, draft.Total)
	}
	if len(draft.LineItems) != 0 {
		t.Errorf("got %d line items, want 0", len(draft.LineItems))
	}
}

func TestParseReceiptTextTinyAmountsSkipped(t *testing.T) {
	text := `CORNER STORE
Bag fee 0.10
Lumber strapping 12.00
Total 12.10`

	draft := ParseReceiptText(text)

	if len(draft.LineItems) != 1 {
		t.Fatalf("got %d line items, want 1", len(draft.LineItems))
	}
	if draft.LineItems[0].Description != "Lumber strapping" {
		t.Errorf("item description = %q, want %q", draft.LineItems[0].Description, "Lumber strapping")
	}
}
