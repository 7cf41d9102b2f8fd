// Package ledger holds the in-memory line items and tax math for a single
// financial document (expense, quote, purchase order or invoice). Totals are
// always recomputed from the line items; stored totals are never trusted.
package ledger

import (
	"fmt"

	"jobtract-backend/utils"

	"github.com/shockerli/cvt"
)

// TaxPolicy selects how GST/PST attach to a document.
type TaxPolicy string

const (
	// PerLine applies GST/PST per line item based on each item's flags.
	// Used by expenses, quotes and purchase orders.
	PerLine TaxPolicy = "per_line"
	// PerDocument applies a single rate pair to the whole subtotal.
	// Used by invoices, where tax exemption is a document-level toggle.
	PerDocument TaxPolicy = "per_document"
)

const (
	DefaultGSTRate = 5.0
	DefaultPSTRate = 7.0

	// DeliveryDescription marks the sentinel line item that records the
	// delivery address required for band tax-exempt invoices.
	DeliveryDescription = "Delivery"
)

// LineItem is one row of a financial document. Quantity and UnitPrice keep
// the raw value as entered (possibly an empty or partial string mid-edit);
// LineTotal is derived from the normalized values.
type LineItem struct {
	ID              int64       `json:"id"`
	Description     string      `json:"description"`
	Quantity        interface{} `json:"quantity"`
	UnitPrice       interface{} `json:"unitPrice"`
	HasGST          bool        `json:"hasGST"`
	HasPST          bool        `json:"hasPST"`
	LineTotal       float64     `json:"lineTotal"`
	DeliveryAddress string      `json:"deliveryAddress,omitempty"`
}

// QuantityValue returns the normalized quantity used for computation.
func (li LineItem) QuantityValue() float64 {
	return ToNonNegativeNumber(li.Quantity)
}

// UnitPriceValue returns the normalized unit price used for computation.
func (li LineItem) UnitPriceValue() float64 {
	return ToNonNegativeNumber(li.UnitPrice)
}

// Ledger owns the ordered line items of one document. Instances are owned
// by a single edit session and are not safe for concurrent use.
type Ledger struct {
	policy    TaxPolicy
	items     []LineItem
	nextID    int64
	taxExempt bool
	gstRate   float64
	pstRate   float64
}

// Snapshot is the serializable view of a ledger handed to persistence.
type Snapshot struct {
	Items     []LineItem `json:"lineItems"`
	Subtotal  float64    `json:"subtotal"`
	GSTTotal  float64    `json:"gstTotal"`
	PSTTotal  float64    `json:"pstTotal"`
	Total     float64    `json:"total"`
	TaxExempt bool       `json:"taxExempt"`
	GSTRate   float64    `json:"gstRate"`
	PSTRate   float64    `json:"pstRate"`
}

// New creates an empty ledger with one blank line item, matching the state
// of a freshly opened document form.
func New(policy TaxPolicy) (*Ledger, error) {
	if policy != PerLine && policy != PerDocument {
		return nil, fmt.Errorf("unrecognized tax policy: %q", policy)
	}
	l := &Ledger{
		policy:  policy,
		nextID:  1,
		gstRate: DefaultGSTRate,
		pstRate: DefaultPSTRate,
	}
	l.AddLineItem()
	return l, nil
}

// FromItems rebuilds a ledger from stored line items, e.g. when editing a
// persisted document. Line totals are recomputed rather than trusted.
func FromItems(policy TaxPolicy, items []LineItem) (*Ledger, error) {
	if policy != PerLine && policy != PerDocument {
		return nil, fmt.Errorf("unrecognized tax policy: %q", policy)
	}
	l := &Ledger{
		policy:  policy,
		nextID:  1,
		gstRate: DefaultGSTRate,
		pstRate: DefaultPSTRate,
	}
	for _, item := range items {
		item.ID = l.nextID
		l.nextID++
		item.LineTotal = utils.Round(item.QuantityValue() * item.UnitPriceValue())
		l.items = append(l.items, item)
	}
	return l, nil
}

// Policy reports the tax-attachment policy the ledger was created with.
func (l *Ledger) Policy() TaxPolicy { return l.policy }

// TaxExempt reports the document-level exemption flag.
func (l *Ledger) TaxExempt() bool { return l.taxExempt }

// Rates returns the current GST and PST percentages.
func (l *Ledger) Rates() (gst, pst float64) { return l.gstRate, l.pstRate }

// Items returns a copy of the line items in display order.
func (l *Ledger) Items() []LineItem {
	out := make([]LineItem, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of line items.
func (l *Ledger) Len() int { return len(l.items) }

// AddLineItem appends a blank line item and returns it. IDs are assigned
// from a per-ledger counter and never reused after removal.
func (l *Ledger) AddLineItem() LineItem {
	item := LineItem{
		ID:        l.nextID,
		Quantity:  "",
		UnitPrice: "",
	}
	l.nextID++
	l.items = append(l.items, item)
	return item
}

// UpdateLineItem sets one field of the identified line item. An unknown id
// is a no-op since the form may race with a removal; an unknown field name
// is a programming error. Quantity and unit price keep the raw value as
// given and refresh the derived line total from normalized values.
func (l *Ledger) UpdateLineItem(id int64, field string, value interface{}) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return nil
	}
	item := &l.items[idx]

	switch field {
	case "description":
		item.Description = cvt.String(value)
	case "quantity":
		item.Quantity = value
	case "unitPrice":
		item.UnitPrice = value
	case "hasGST":
		item.HasGST = cvt.Bool(value)
	case "hasPST":
		item.HasPST = cvt.Bool(value)
	case "deliveryAddress":
		item.DeliveryAddress = cvt.String(value)
	default:
		return fmt.Errorf("unknown line item field: %q", field)
	}

	if field == "quantity" || field == "unitPrice" {
		item.LineTotal = utils.Round(item.QuantityValue() * item.UnitPriceValue())
	}
	return nil
}

// RemoveLineItem deletes the identified line item. Unknown ids are a no-op.
// An emptied ledger computes all totals as exactly 0.
func (l *Ledger) RemoveLineItem(id int64) {
	idx := l.indexOf(id)
	if idx < 0 {
		return
	}
	l.items = append(l.items[:idx], l.items[idx+1:]...)
}

// SetTaxExempt toggles the document-level band exemption. Exempt invoices
// collapse both rates to 0 and must record a delivery address, so a
// Delivery sentinel line item is kept in lockstep with the flag.
func (l *Ledger) SetTaxExempt(exempt bool) error {
	if l.policy != PerDocument {
		return fmt.Errorf("tax exemption requires the %s policy", PerDocument)
	}
	l.taxExempt = exempt
	if exempt {
		l.gstRate = 0
		l.pstRate = 0
		if _, ok := l.DeliverySentinel(); !ok {
			l.items = append(l.items, LineItem{
				ID:          l.nextID,
				Description: DeliveryDescription,
				Quantity:    "",
				UnitPrice:   "",
			})
			l.nextID++
		}
		return nil
	}
	l.gstRate = DefaultGSTRate
	l.pstRate = DefaultPSTRate
	kept := l.items[:0]
	for _, item := range l.items {
		if item.Description != DeliveryDescription {
			kept = append(kept, item)
		}
	}
	l.items = kept
	return nil
}

// SetRates overrides the GST/PST percentages for this document.
func (l *Ledger) SetRates(gst, pst float64) {
	l.gstRate = gst
	l.pstRate = pst
}

// DeliverySentinel returns the Delivery line item if present.
func (l *Ledger) DeliverySentinel() (LineItem, bool) {
	for _, item := range l.items {
		if item.Description == DeliveryDescription {
			return item, true
		}
	}
	return LineItem{}, false
}

// Subtotal is the sum of quantity times unit price over all line items,
// computed from normalized values only.
func (l *Ledger) Subtotal() float64 {
	var sum float64
	for _, item := range l.items {
		sum += item.QuantityValue() * item.UnitPriceValue()
	}
	return utils.Round(sum)
}

// GST returns the GST portion under the active policy.
func (l *Ledger) GST() float64 {
	return l.taxTotal(l.gstRate, func(li LineItem) bool { return li.HasGST })
}

// PST returns the PST portion under the active policy.
func (l *Ledger) PST() float64 {
	return l.taxTotal(l.pstRate, func(li LineItem) bool { return li.HasPST })
}

// Total is always subtotal + GST + PST; there is no independent override.
func (l *Ledger) Total() float64 {
	return utils.Round(l.Subtotal() + l.GST() + l.PST())
}

// Snapshot captures the line items and recomputed totals for persistence.
func (l *Ledger) Snapshot() Snapshot {
	return Snapshot{
		Items:     l.Items(),
		Subtotal:  l.Subtotal(),
		GSTTotal:  l.GST(),
		PSTTotal:  l.PST(),
		Total:     l.Total(),
		TaxExempt: l.taxExempt,
		GSTRate:   l.gstRate,
		PSTRate:   l.pstRate,
	}
}

func (l *Ledger) taxTotal(rate float64, flagged func(LineItem) bool) float64 {
	if rate == 0 {
		return 0
	}
	switch l.policy {
	case PerDocument:
		if l.taxExempt {
			return 0
		}
		return utils.Round(l.Subtotal() * rate / 100)
	default:
		var sum float64
		for _, item := range l.items {
			if flagged(item) {
				sum += item.QuantityValue() * item.UnitPriceValue() * rate / 100
			}
		}
		return utils.Round(sum)
	}
}

func (l *Ledger) indexOf(id int64) int {
	for i, item := range l.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
