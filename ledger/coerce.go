package ledger

import (
	"math"
	"strings"

	"github.com/shockerli/cvt"
)

// ToNonNegativeNumber converts a user-entered quantity or price to a value
// safe for arithmetic. Empty strings, unparseable input, negatives, NaN and
// infinities all come back as 0. Currency symbols and thousands separators
// are tolerated ("$1,250.00" -> 1250).
func ToNonNegativeNumber(raw interface{}) float64 {
	if raw == nil {
		return 0
	}

	if s, ok := raw.(string); ok {
		cleaned := cleanNumericString(s)
		if cleaned == "" {
			return 0
		}
		v, err := cvt.Float64E(cleaned)
		if err != nil {
			return 0
		}
		return sanitize(v)
	}

	v, err := cvt.Float64E(raw)
	if err != nil {
		return 0
	}
	return sanitize(v)
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// cleanNumericString strips everything except digits, '.' and '-'.
func cleanNumericString(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
