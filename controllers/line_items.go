package controllers

import (
	"jobtract-backend/ledger"
	"jobtract-backend/models"
)

// LineItemInput is one line item as submitted by a document form. Quantity
// and unit price come through untyped so a value the user was still typing
// ("", "12.") survives the round trip instead of failing to bind.
type LineItemInput struct {
	Description     string      `json:"description"`
	Quantity        interface{} `json:"quantity"`
	UnitPrice       interface{} `json:"unitPrice"`
	HasGST          bool        `json:"hasGST"`
	HasPST          bool        `json:"hasPST"`
	DeliveryAddress string      `json:"deliveryAddress"`
}

// buildLedger rebuilds a ledger from submitted line items so totals are
// always recomputed server-side; totals sent by the client are ignored.
func buildLedger(policy ledger.TaxPolicy, inputs []LineItemInput) (*ledger.Ledger, error) {
	items := make([]ledger.LineItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, ledger.LineItem{
			Description:     in.Description,
			Quantity:        in.Quantity,
			UnitPrice:       in.UnitPrice,
			HasGST:          in.HasGST,
			HasPST:          in.HasPST,
			DeliveryAddress: in.DeliveryAddress,
		})
	}
	return ledger.FromItems(policy, items)
}

func storedLineItems(snap ledger.Snapshot) models.LineItemList {
	return models.LineItemList(snap.Items)
}

// ledgerNumber coerces an untyped numeric form value the same way line item
// amounts are coerced, so "1,200.50" and 1200.5 land as the same number.
func ledgerNumber(raw interface{}) float64 {
	return ledger.ToNonNegativeNumber(raw)
}
