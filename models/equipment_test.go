package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestEquipmentModelNameSerializesAsModel(t *testing.T) {
	eq := Equipment{
		ID:        uuid.New(),
		Name:      "Excavator",
		ModelName: "CAT 320",
	}

	b, err := json.Marshal(eq)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var out map[string]interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if out["model"] != "CAT 320" {
		t.Errorf(`model = %v, want "CAT 320"`, out["model"])
	}
	// The soft-delete base still promotes its own fields alongside.
	if _, ok := out["CreatedAt"]; !ok {
		t.Error("expected CreatedAt from the embedded base")
	}
}
