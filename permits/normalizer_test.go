package permits

import (
	"math"
	"testing"
)

func TestNormalizeMixedSchemaRecord(t *testing.T) {
	raw := []interface{}{
		map[string]interface{}{
			"fields": map[string]interface{}{
				"permitnumber": "BP123",
			},
			"street":       "100 Main St",
			"projectvalue": "$45,000.00",
		},
	}

	records := NewNormalizer(nil).Normalize(raw)
	if len(records) != 1 {
		t.Fatalf("got %d records, expected 1", len(records))
	}
	rec := records[0]
	if rec.PermitNumber != "BP123" {
		t.Errorf("PermitNumber = %q, expected BP123", rec.PermitNumber)
	}
	if rec.Street != "100 Main St" {
		t.Errorf("Street = %q, expected 100 Main St", rec.Street)
	}
	if rec.ProjectValue == nil || math.Abs(*rec.ProjectValue-45000.0) > 1e-9 {
		t.Errorf("ProjectValue = %v, expected 45000", rec.ProjectValue)
	}
}

func TestNormalizeFallbackOrder(t *testing.T) {
	// Nested fields win over flat alt, flat alt wins over flat primary.
	raw := []interface{}{
		map[string]interface{}{
			"fields":       map[string]interface{}{"typeofwork": "New Building"},
			"typeofwork":   "Addition",
			"type_of_work": "Demolition",
		},
		map[string]interface{}{
			"typeofwork":   "Addition",
			"type_of_work": "Demolition",
		},
		map[string]interface{}{
			"type_of_work": "Demolition",
		},
	}

	records := NewNormalizer(nil).Normalize(raw)
	expected := []string{"New Building", "Addition", "Demolition"}
	for i, want := range expected {
		if records[i].TypeOfWork != want {
			t.Errorf("record %d: TypeOfWork = %q, expected %q", i, records[i].TypeOfWork, want)
		}
	}
}

func TestNormalizeEmptyRecordDefaults(t *testing.T) {
	records := NewNormalizer(nil).Normalize([]interface{}{
		map[string]interface{}{},
	})
	if len(records) != 1 {
		t.Fatalf("got %d records, expected 1", len(records))
	}
	rec := records[0]
	for name, got := range map[string]string{
		"PermitNumber":     rec.PermitNumber,
		"Street":           rec.Street,
		"PropertyUse":      rec.PropertyUse,
		"TypeOfWork":       rec.TypeOfWork,
		"IssuedDate":       rec.IssuedDate,
		"Applicant":        rec.Applicant,
		"ApplicantAddress": rec.ApplicantAddress,
		"GeographicArea":   rec.GeographicArea,
		"SpecificUse":      rec.SpecificUse,
	} {
		if got != "N/A" {
			t.Errorf("%s = %q, expected N/A", name, got)
		}
	}
	if rec.ProjectValue != nil {
		t.Errorf("ProjectValue = %v, expected nil", rec.ProjectValue)
	}
}

func TestNormalizeBatchLengthPreserved(t *testing.T) {
	raw := []interface{}{
		map[string]interface{}{"permitnumber": "BP1"},
		"not an object",
		map[string]interface{}{"permitnumber": "BP3"},
	}
	records := NewNormalizer(nil).Normalize(raw)
	if len(records) != 3 {
		t.Fatalf("got %d records, expected input length 3", len(records))
	}
	if records[0].PermitNumber != "BP1" || records[2].PermitNumber != "BP3" {
		t.Error("sibling records corrupted by malformed entry")
	}
}

// hostileValue is a Stringer that blows up when read, standing in for an
// upstream value the coercion layer cannot survive.
type hostileValue struct{}

func (hostileValue) String() string { panic("unreadable upstream value") }

func TestNormalizeRecoversToPlaceholder(t *testing.T) {
	raw := []interface{}{
		map[string]interface{}{"permitnumber": "BP1"},
		map[string]interface{}{"permitnumber": hostileValue{}, "address": "200 Oak St"},
	}
	records := NewNormalizer(nil).Normalize(raw)
	if len(records) != 2 {
		t.Fatalf("got %d records, expected input length 2", len(records))
	}
	if records[0].PermitNumber != "BP1" {
		t.Errorf("sibling record = %q, expected BP1", records[0].PermitNumber)
	}
	bad := records[1]
	if bad.Street != "Error processing record" {
		t.Errorf("Street = %q, expected the processing-error marker", bad.Street)
	}
	if bad.PermitNumber != "N/A" {
		t.Errorf("PermitNumber = %q, expected N/A", bad.PermitNumber)
	}
	if bad.ProjectValue != nil {
		t.Errorf("ProjectValue = %v, expected nil", bad.ProjectValue)
	}
	if bad.Raw == nil {
		t.Error("placeholder lost its raw reference")
	}
}

func TestNormalizeNonSliceInput(t *testing.T) {
	n := NewNormalizer(nil)
	for _, input := range []interface{}{nil, "garbage", 42, map[string]interface{}{"a": 1}} {
		if got := n.Normalize(input); len(got) != 0 {
			t.Errorf("Normalize(%v) returned %d records, expected 0", input, len(got))
		}
	}
}

func TestNormalizeArrayFieldsJoined(t *testing.T) {
	records := NewNormalizer(nil).Normalize([]interface{}{
		map[string]interface{}{
			"propertyuse":         []interface{}{"Dwelling Uses", "Office Uses"},
			"specificusecategory": []interface{}{"Multiple Dwelling"},
		},
	})
	if records[0].PropertyUse != "Dwelling Uses, Office Uses" {
		t.Errorf("PropertyUse = %q", records[0].PropertyUse)
	}
	if records[0].SpecificUse != "Multiple Dwelling" {
		t.Errorf("SpecificUse = %q", records[0].SpecificUse)
	}
}

func TestNormalizePreservesOrderAndRaw(t *testing.T) {
	raw := []interface{}{
		map[string]interface{}{"permitnumber": "BP1"},
		map[string]interface{}{"permitnumber": "BP2"},
		map[string]interface{}{"permitnumber": "BP1"}, // duplicates stay
	}
	records := NewNormalizer(nil).Normalize(raw)
	want := []string{"BP1", "BP2", "BP1"}
	for i, w := range want {
		if records[i].PermitNumber != w {
			t.Errorf("record %d = %q, expected %q", i, records[i].PermitNumber, w)
		}
		if records[i].Raw == nil {
			t.Errorf("record %d lost its raw reference", i)
		}
	}
}

func TestParseProjectValue(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected *float64
	}{
		{"Currency string", "$45,000.00", ptr(45000)},
		{"Plain string", "1200.5", ptr(1200.5)},
		{"Float", 98765.0, ptr(98765)},
		{"Integer", 500, ptr(500)},
		{"Zero", 0, ptr(0)},
		{"Nil", nil, nil},
		{"Empty string", "", nil},
		{"Garbage", "tbd", nil},
		{"Negative", -100.0, nil},
		{"Negative string", "-$5,000", nil},
		{"NaN", math.NaN(), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseProjectValue(tt.input)
			switch {
			case got == nil && tt.expected == nil:
			case got == nil || tt.expected == nil:
				t.Errorf("ParseProjectValue(%v) = %v, expected %v", tt.input, got, tt.expected)
			case math.Abs(*got-*tt.expected) > 1e-9:
				t.Errorf("ParseProjectValue(%v) = %v, expected %v", tt.input, *got, *tt.expected)
			}
		})
	}
}

func ptr(f float64) *float64 { return &f }
