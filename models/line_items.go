package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"jobtract-backend/ledger"
)

// LineItemList stores a document's ledger line items as a JSONB column,
// raw entered values included, so a reopened form can resume editing.
type LineItemList []ledger.LineItem

func (l LineItemList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]ledger.LineItem{})
	}
	return json.Marshal(l)
}

func (l *LineItemList) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, l)
}
