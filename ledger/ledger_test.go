package ledger

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func TestToNonNegativeNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected float64
	}{
		{"Plain float", 12.5, 12.5},
		{"Plain int", 3, 3},
		{"Numeric string", "4.25", 4.25},
		{"Currency string", "$1,250.00", 1250},
		{"Whitespace around number", "  42 ", 42},
		{"Empty string", "", 0},
		{"Partial entry", ".", 0},
		{"Garbage string", "abc", 0},
		{"Negative number", -5.0, 0},
		{"Negative string", "-12", 0},
		{"Nil", nil, 0},
		{"NaN", math.NaN(), 0},
		{"Positive infinity", math.Inf(1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ToNonNegativeNumber(tt.input)
			if math.Abs(result-tt.expected) > tolerance {
				t.Errorf("ToNonNegativeNumber(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNewRejectsUnknownPolicy(t *testing.T) {
	if _, err := New(TaxPolicy("flat")); err == nil {
		t.Error("New with unknown policy should fail")
	}
}

func TestNewStartsWithOneBlankItem(t *testing.T) {
	l, err := New(PerLine)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if l.Len() != 1 {
		t.Fatalf("new ledger has %d items, expected 1", l.Len())
	}
	if l.Subtotal() != 0 || l.Total() != 0 {
		t.Errorf("blank ledger should total 0, got subtotal %v total %v", l.Subtotal(), l.Total())
	}
}

func setItem(t *testing.T, l *Ledger, id int64, desc string, qty, price interface{}, gst, pst bool) {
	t.Helper()
	for field, value := range map[string]interface{}{
		"description": desc,
		"quantity":    qty,
		"unitPrice":   price,
		"hasGST":      gst,
		"hasPST":      pst,
	} {
		if err := l.UpdateLineItem(id, field, value); err != nil {
			t.Fatalf("UpdateLineItem(%d, %s): %v", id, field, err)
		}
	}
}

func TestPerLineTaxTotals(t *testing.T) {
	l, _ := New(PerLine)
	setItem(t, l, 1, "Gravel", 2, 10.0, true, false)
	second := l.AddLineItem()
	setItem(t, l, second.ID, "Rebar", 1, 5.0, false, true)

	if got := l.Subtotal(); math.Abs(got-25) > tolerance {
		t.Errorf("Subtotal = %v, expected 25", got)
	}
	if got := l.GST(); math.Abs(got-1.00) > tolerance {
		t.Errorf("GST = %v, expected 1.00", got)
	}
	if got := l.PST(); math.Abs(got-0.35) > tolerance {
		t.Errorf("PST = %v, expected 0.35", got)
	}
	if got := l.Total(); math.Abs(got-26.35) > tolerance {
		t.Errorf("Total = %v, expected 26.35", got)
	}
}

func TestPerLineNoFlagsMeansNoTax(t *testing.T) {
	l, _ := New(PerLine)
	setItem(t, l, 1, "Lumber", 10, 99.99, false, false)
	item := l.AddLineItem()
	setItem(t, l, item.ID, "Nails", 3, "7.50", false, false)

	if got := l.GST(); got != 0 {
		t.Errorf("GST = %v, expected 0 with no flagged items", got)
	}
	if got := l.PST(); got != 0 {
		t.Errorf("PST = %v, expected 0 with no flagged items", got)
	}
	if got, want := l.Total(), l.Subtotal(); math.Abs(got-want) > tolerance {
		t.Errorf("Total = %v, expected subtotal %v", got, want)
	}
}

func TestTotalIdentityHoldsForBothPolicies(t *testing.T) {
	for _, policy := range []TaxPolicy{PerLine, PerDocument} {
		l, _ := New(policy)
		setItem(t, l, 1, "Excavation", 3, 333.33, true, true)
		item := l.AddLineItem()
		setItem(t, l, item.ID, "Backfill", "2.5", "$80.00", true, false)

		sum := l.Subtotal() + l.GST() + l.PST()
		if math.Abs(l.Total()-sum) > tolerance {
			t.Errorf("policy %s: Total %v != subtotal+gst+pst %v", policy, l.Total(), sum)
		}
	}
}

func TestDocumentLevelTaxAndExemption(t *testing.T) {
	l, _ := New(PerDocument)
	setItem(t, l, 1, "Site prep", 1, 1000.0, false, false)

	if got := l.GST(); math.Abs(got-50.00) > tolerance {
		t.Errorf("GST = %v, expected 50.00", got)
	}
	if got := l.PST(); math.Abs(got-70.00) > tolerance {
		t.Errorf("PST = %v, expected 70.00", got)
	}
	if got := l.Total(); math.Abs(got-1120.00) > tolerance {
		t.Errorf("Total = %v, expected 1120.00", got)
	}

	if err := l.SetTaxExempt(true); err != nil {
		t.Fatalf("SetTaxExempt(true): %v", err)
	}
	if got := l.GST(); got != 0 {
		t.Errorf("exempt GST = %v, expected 0", got)
	}
	if got := l.PST(); got != 0 {
		t.Errorf("exempt PST = %v, expected 0", got)
	}
	if got := l.Total(); math.Abs(got-1000.00) > tolerance {
		t.Errorf("exempt Total = %v, expected 1000.00", got)
	}
	if _, ok := l.DeliverySentinel(); !ok {
		t.Error("exempt invoice should carry a Delivery line item")
	}
}

func TestTaxExemptRoundTripRestoresState(t *testing.T) {
	l, _ := New(PerDocument)
	setItem(t, l, 1, "Framing", 4, 250.0, false, false)
	item := l.AddLineItem()
	setItem(t, l, item.ID, "Roofing", 2, 175.5, false, false)
	before := l.Items()

	if err := l.SetTaxExempt(true); err != nil {
		t.Fatalf("SetTaxExempt(true): %v", err)
	}
	if err := l.SetTaxExempt(false); err != nil {
		t.Fatalf("SetTaxExempt(false): %v", err)
	}

	gst, pst := l.Rates()
	if gst != DefaultGSTRate || pst != DefaultPSTRate {
		t.Errorf("rates after round trip = %v/%v, expected %v/%v", gst, pst, DefaultGSTRate, DefaultPSTRate)
	}
	if _, ok := l.DeliverySentinel(); ok {
		t.Error("Delivery sentinel should be removed when exemption is cleared")
	}
	after := l.Items()
	if len(after) != len(before) {
		t.Fatalf("item count changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i].ID != after[i].ID || before[i].Description != after[i].Description ||
			before[i].LineTotal != after[i].LineTotal {
			t.Errorf("item %d changed across exemption round trip: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestSetTaxExemptRequiresDocumentPolicy(t *testing.T) {
	l, _ := New(PerLine)
	if err := l.SetTaxExempt(true); err == nil {
		t.Error("SetTaxExempt on a per-line ledger should fail")
	}
}

func TestUpdateUnknownIDIsNoOp(t *testing.T) {
	l, _ := New(PerLine)
	if err := l.UpdateLineItem(999, "quantity", 5); err != nil {
		t.Errorf("update of unknown id should be a no-op, got %v", err)
	}
	if l.Subtotal() != 0 {
		t.Errorf("no-op update changed subtotal to %v", l.Subtotal())
	}
}

func TestUpdateUnknownFieldFails(t *testing.T) {
	l, _ := New(PerLine)
	if err := l.UpdateLineItem(1, "color", "red"); err == nil {
		t.Error("update of unknown field should fail")
	}
}

func TestInvalidInputNeverBreaksTotals(t *testing.T) {
	l, _ := New(PerLine)
	setItem(t, l, 1, "Mid-edit", "", "12.", true, true)

	if math.IsNaN(l.Subtotal()) || math.IsNaN(l.Total()) {
		t.Fatal("totals became NaN on partial input")
	}
	// Raw entry survives for continued editing.
	item := l.Items()[0]
	if item.Quantity != "" || item.UnitPrice != "12." {
		t.Errorf("raw values not preserved: qty=%v price=%v", item.Quantity, item.UnitPrice)
	}
}

func TestRemoveAllItemsYieldsZeroTotals(t *testing.T) {
	l, _ := New(PerLine)
	setItem(t, l, 1, "Demo work", 5, 100.0, true, true)
	item := l.AddLineItem()
	setItem(t, l, item.ID, "Hauling", 2, 50.0, false, false)

	for _, it := range l.Items() {
		l.RemoveLineItem(it.ID)
	}
	if l.Len() != 0 {
		t.Fatalf("ledger still has %d items", l.Len())
	}
	if l.Subtotal() != 0 || l.GST() != 0 || l.PST() != 0 || l.Total() != 0 {
		t.Errorf("empty ledger totals not zero: %v %v %v %v", l.Subtotal(), l.GST(), l.PST(), l.Total())
	}
}

func TestIDsAreNeverReused(t *testing.T) {
	l, _ := New(PerLine)
	l.RemoveLineItem(1)
	item := l.AddLineItem()
	if item.ID == 1 {
		t.Error("removed id was reused")
	}
}

func TestUpdateRecomputesLineTotal(t *testing.T) {
	l, _ := New(PerLine)
	if err := l.UpdateLineItem(1, "quantity", "3"); err != nil {
		t.Fatal(err)
	}
	if err := l.UpdateLineItem(1, "unitPrice", "19.99"); err != nil {
		t.Fatal(err)
	}
	if got := l.Items()[0].LineTotal; math.Abs(got-59.97) > tolerance {
		t.Errorf("LineTotal = %v, expected 59.97", got)
	}
}

func TestFromItemsRecomputesStoredTotals(t *testing.T) {
	stored := []LineItem{
		{Description: "Fuel", Quantity: 2, UnitPrice: 10.0, HasGST: true, LineTotal: 999},
		{Description: "Permit fee", Quantity: "1", UnitPrice: "5", HasPST: true},
	}
	l, err := FromItems(PerLine, stored)
	if err != nil {
		t.Fatalf("FromItems: %v", err)
	}
	items := l.Items()
	if items[0].LineTotal != 20 {
		t.Errorf("stale stored line total trusted: got %v, expected 20", items[0].LineTotal)
	}
	if got := l.Total(); math.Abs(got-26.35) > tolerance {
		t.Errorf("Total = %v, expected 26.35", got)
	}
	// Fresh ids were assigned in order.
	if items[0].ID != 1 || items[1].ID != 2 {
		t.Errorf("unexpected ids %d, %d", items[0].ID, items[1].ID)
	}
}

func TestSnapshotMatchesComputedTotals(t *testing.T) {
	l, _ := New(PerLine)
	setItem(t, l, 1, "Concrete", 10, 85.25, true, true)

	snap := l.Snapshot()
	if snap.Subtotal != l.Subtotal() || snap.GSTTotal != l.GST() ||
		snap.PSTTotal != l.PST() || snap.Total != l.Total() {
		t.Errorf("snapshot totals diverge from computed totals: %+v", snap)
	}
	if len(snap.Items) != l.Len() {
		t.Errorf("snapshot has %d items, ledger has %d", len(snap.Items), l.Len())
	}
}
