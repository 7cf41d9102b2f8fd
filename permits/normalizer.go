// Package permits normalizes City of Vancouver issued-building-permit
// search results into one canonical record shape. The upstream open-data
// API has shipped two response layouts over time: flat snake_case keys, and
// an older layout where values nest under a "fields" object with squashed
// names. A single response may mix both styles across fields, so resolution
// falls back per field, never per record.
package permits

import (
	"math"
	"strconv"
	"strings"

	"github.com/shockerli/cvt"
	"go.uber.org/zap"
)

// RawRecord is one untyped upstream permit record.
type RawRecord = map[string]interface{}

// Record is the canonical, immutable permit representation used for
// display and pagination.
type Record struct {
	ID               string    `json:"id"`
	PermitNumber     string    `json:"permitNumber"`
	Street           string    `json:"street"`
	PropertyUse      string    `json:"propertyUse"`
	TypeOfWork       string    `json:"typeOfWork"`
	IssuedDate       string    `json:"issuedDate"`
	ProjectValue     *float64  `json:"projectValue"`
	Applicant        string    `json:"applicant"`
	ApplicantAddress string    `json:"applicantAddress"`
	GeographicArea   string    `json:"geographicArea"`
	SpecificUse      string    `json:"specificUse"`
	Raw              RawRecord `json:"-"`
}

const missingValue = "N/A"

// fieldAlias maps a canonical field onto its two upstream spellings.
// The nested "fields" layout and the flat layout both use alt; primary is
// the snake_case spelling seen in exported datasets.
type fieldAlias struct {
	primary string
	alt     string
}

var aliases = map[string]fieldAlias{
	"id":               {"id", "recordid"},
	"permitNumber":     {"permit_number", "permitnumber"},
	"street":           {"street", "address"},
	"propertyUse":      {"property_use", "propertyuse"},
	"typeOfWork":       {"type_of_work", "typeofwork"},
	"issuedDate":       {"issue_date", "issuedate"},
	"projectValue":     {"project_value", "projectvalue"},
	"applicant":        {"applicant_name", "applicant"},
	"applicantAddress": {"applicant_address", "applicantaddress"},
	"geographicArea":   {"geographic_area", "geolocalarea"},
	"specificUse":      {"specific_use", "specificusecategory"},
}

// Normalizer converts raw upstream batches into canonical records. A
// malformed record degrades to a placeholder; it never drops siblings.
type Normalizer struct {
	logger *zap.Logger
}

func NewNormalizer(logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{logger: logger}
}

// Normalize produces exactly one canonical record per input record, in
// input order. A non-slice or nil input yields an empty result so the
// paginator never sees an invalid length.
func (n *Normalizer) Normalize(input interface{}) []Record {
	raws := toRecordSlice(input)
	records := make([]Record, 0, len(raws))
	for i, raw := range raws {
		records = append(records, n.normalizeOne(i, raw))
	}
	return records
}

func (n *Normalizer) normalizeOne(index int, raw RawRecord) (rec Record) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Warn("failed to normalize permit record",
				zap.Int("index", index),
				zap.Any("cause", r),
			)
			rec = placeholderRecord(raw)
		}
	}()

	return Record{
		ID:               resolveString(raw, "id"),
		PermitNumber:     resolveString(raw, "permitNumber"),
		Street:           resolveString(raw, "street"),
		PropertyUse:      resolveString(raw, "propertyUse"),
		TypeOfWork:       resolveString(raw, "typeOfWork"),
		IssuedDate:       resolveString(raw, "issuedDate"),
		ProjectValue:     ParseProjectValue(resolve(raw, "projectValue")),
		Applicant:        resolveString(raw, "applicant"),
		ApplicantAddress: resolveString(raw, "applicantAddress"),
		GeographicArea:   resolveString(raw, "geographicArea"),
		SpecificUse:      resolveString(raw, "specificUse"),
		Raw:              raw,
	}
}

// placeholderRecord stands in for a record that blew up during processing,
// keeping the batch length equal to the input length.
func placeholderRecord(raw RawRecord) Record {
	return Record{
		ID:               missingValue,
		PermitNumber:     missingValue,
		Street:           "Error processing record",
		PropertyUse:      missingValue,
		TypeOfWork:       missingValue,
		IssuedDate:       missingValue,
		Applicant:        missingValue,
		ApplicantAddress: missingValue,
		GeographicArea:   missingValue,
		SpecificUse:      missingValue,
		Raw:              raw,
	}
}

// resolve looks a canonical field up through the layered upstream shapes:
// nested fields[alt], then top-level alt, then top-level primary.
func resolve(raw RawRecord, canonical string) interface{} {
	alias, ok := aliases[canonical]
	if !ok {
		return nil
	}
	if nested, ok := raw["fields"].(map[string]interface{}); ok {
		if v, ok := nested[alias.alt]; ok && v != nil {
			return v
		}
	}
	if v, ok := raw[alias.alt]; ok && v != nil {
		return v
	}
	if v, ok := raw[alias.primary]; ok && v != nil {
		return v
	}
	return nil
}

func resolveString(raw RawRecord, canonical string) string {
	v := resolve(raw, canonical)
	if v == nil {
		return missingValue
	}
	// propertyuse and specificusecategory arrive as arrays on some records.
	if list, ok := v.([]interface{}); ok {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			if s := strings.TrimSpace(cvt.String(item)); s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			return missingValue
		}
		return strings.Join(parts, ", ")
	}
	s := strings.TrimSpace(cvt.String(v))
	if s == "" {
		return missingValue
	}
	return s
}

// ParseProjectValue coerces an upstream project value to a finite
// non-negative number, or nil when it cannot be read as one. Currency
// symbols and thousands separators are tolerated ("$45,000.00" -> 45000).
func ParseProjectValue(v interface{}) *float64 {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		cleaned := strings.Map(func(r rune) rune {
			if (r >= '0' && r <= '9') || r == '.' || r == '-' {
				return r
			}
			return -1
		}, val)
		if cleaned == "" {
			return nil
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return nil
		}
		return sanitizeValue(f)
	default:
		f, err := cvt.Float64E(v)
		if err != nil {
			return nil
		}
		return sanitizeValue(f)
	}
}

func sanitizeValue(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return nil
	}
	return &f
}

// toRecordSlice accepts the shapes a decoded JSON response can take and
// flattens them to a slice of raw records. Anything else is treated as an
// empty batch.
func toRecordSlice(input interface{}) []RawRecord {
	switch v := input.(type) {
	case nil:
		return nil
	case []RawRecord:
		return v
	case []interface{}:
		out := make([]RawRecord, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]interface{}); ok {
				out = append(out, m)
			} else {
				// Keep batch length stable even for non-object entries.
				out = append(out, RawRecord{})
			}
		}
		return out
	default:
		return nil
	}
}
