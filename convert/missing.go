package convert

import (
	"strconv"
	"strings"

	"github.com/robert-malhotra/go-dsg/datatype"
)

var defaultMissingTokens = []string{"", "NA", "N/A", "NAN", "NULL"}

var missingNumbers = []float64{
	-999.0, -999.9, -999.99, -999.999,
	-9999.0, -9999.9, -9999.99,
	-99999.0, -99999.9,
}

// Missing decides which raw strings are missing values.
// The zero Missing uses the default tokens.
type Missing struct {
	token    string
	explicit bool
	numeric  bool
}

// DefaultMissing returns the rule for columns without a declared
// missing-value token: empty, NA, N/A, NaN, NULL and runs of one to five
// dashes, compared without case. Numeric rules also treat the usual fill
// numbers such as -999 and -9999.9 as missing.
func DefaultMissing(numeric bool) Missing {
	return Missing{numeric: numeric}
}

// ExplicitMissing returns the rule for a declared token: only that token,
// compared without case, is missing.
func ExplicitMissing(token string) Missing {
	return Missing{token: strings.TrimSpace(token), explicit: true}
}

// missingFor returns the explicit rule for a non-empty token, else the
// default rule.
func missingFor(token string, numeric bool) Missing {
	if strings.TrimSpace(token) == "" {
		return DefaultMissing(numeric)
	}
	return ExplicitMissing(token)
}

// IsMissing reports whether raw is a missing value.
func (m Missing) IsMissing(raw string) bool {
	s := strings.TrimSpace(raw)
	if m.explicit {
		return strings.EqualFold(s, m.token)
	}
	for _, tok := range defaultMissingTokens {
		if strings.EqualFold(s, tok) {
			return true
		}
	}
	if len(s) <= 5 && strings.Trim(s, "-") == "" {
		return true
	}
	if !m.numeric {
		return false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	for _, n := range missingNumbers {
		if datatype.CloseTo(v, n, 1.0e-10, 1.0e-6) {
			return true
		}
	}
	return false
}
